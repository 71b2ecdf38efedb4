package scheduling

import (
	"strconv"

	"schedly/models"
)

// BackendToAppointment flattens a backend calendar event into the canonical
// appointment model. The first entry of each resource array is taken as the
// primary; the rest are ignored. Missing arrays yield empty display fields
// and nil IDs. Timestamps are copied verbatim, preserving the backend's
// timezone offsets.
func BackendToAppointment(be models.BackendCalendarEvent) models.Appointment {
	appt := models.Appointment{
		ID:        strconv.Itoa(be.ID),
		StartTime: be.Starting,
		EndTime:   be.Ending,
		Conflicts: be.Conflicts,
	}

	if len(be.Clients) > 0 {
		appt.ClientName = be.Clients[0].Name
		id := be.Clients[0].ID
		appt.ClientID = &id
	}
	if len(be.Services) > 0 {
		appt.Service = be.Services[0].Name
		id := be.Services[0].ID
		appt.ServiceID = &id
	}
	if len(be.Workers) > 0 {
		appt.Provider = be.Workers[0].Name
		id := be.Workers[0].ID
		appt.ProviderID = &id
		lk := be.Workers[0].IsLocked
		appt.ProviderLocked = &lk
	}
	if len(be.Locations) > 0 {
		appt.Room = be.Locations[0].Name
		id := be.Locations[0].ID
		appt.RoomID = &id
		lk := be.Locations[0].IsLocked
		appt.RoomLocked = &lk
	}
	return appt
}

// BackendToAppointments maps a batch of events.
func BackendToAppointments(events []models.BackendCalendarEvent) []models.Appointment {
	appts := make([]models.Appointment, 0, len(events))
	for _, be := range events {
		appts = append(appts, BackendToAppointment(be))
	}
	return appts
}
