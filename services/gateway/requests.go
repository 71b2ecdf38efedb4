package gateway

import (
	"fmt"
	"strconv"
	"time"

	"schedly/models"
)

// AppointmentToCreateRequest builds the booking-create payload for an
// appointment. Resource categories without a resolved ID are omitted as empty
// arrays, never sent as null. Timestamps are re-serialized to full ISO 8601.
func AppointmentToCreateRequest(appt models.Appointment, calendarID int) (models.CreateBookingRequest, error) {
	starting, err := reserializeTime(appt.StartTime)
	if err != nil {
		return models.CreateBookingRequest{}, fmt.Errorf("invalid start time %q: %w", appt.StartTime, err)
	}
	ending, err := reserializeTime(appt.EndTime)
	if err != nil {
		return models.CreateBookingRequest{}, fmt.Errorf("invalid end time %q: %w", appt.EndTime, err)
	}

	req := models.CreateBookingRequest{
		CalendarID:  calendarID,
		Name:        fmt.Sprintf("%s - %s", appt.ClientName, appt.Service),
		Description: appt.Service,
		Starting:    starting,
		Ending:      ending,
		Locations:   []models.ResourceRef{},
		Workers:     []models.ResourceRef{},
		Clients:     []models.ResourceRef{},
		ServicesIDs: []int{},
	}

	if appt.RoomID != nil {
		req.Locations = append(req.Locations, models.ResourceRef{ID: *appt.RoomID, IsLocked: locked(appt.RoomLocked)})
	}
	if appt.ProviderID != nil {
		req.Workers = append(req.Workers, models.ResourceRef{ID: *appt.ProviderID, IsLocked: locked(appt.ProviderLocked)})
	}
	if appt.ClientID != nil {
		req.Clients = append(req.Clients, models.ResourceRef{ID: *appt.ClientID})
	}
	if appt.ServiceID != nil {
		req.ServicesIDs = append(req.ServicesIDs, *appt.ServiceID)
	}
	return req, nil
}

// AppointmentToUpdateRequest builds the booking-update payload. The
// appointment must carry a persisted numeric ID; draft sentinels and blank
// IDs are rejected. Create omits the ID, update requires it; that asymmetry
// is the backend contract.
func AppointmentToUpdateRequest(appt models.Appointment, calendarID int) (models.UpdateBookingRequest, error) {
	id, err := strconv.Atoi(appt.ID)
	if err != nil {
		return models.UpdateBookingRequest{}, fmt.Errorf("appointment %q has no persisted booking ID", appt.ID)
	}
	base, err := AppointmentToCreateRequest(appt, calendarID)
	if err != nil {
		return models.UpdateBookingRequest{}, err
	}
	return models.UpdateBookingRequest{CreateBookingRequest: base, ID: id}, nil
}

func locked(b *bool) bool {
	return b != nil && *b
}

func reserializeTime(s string) (string, error) {
	t, err := time.Parse(time.RFC3339, s)
	if err != nil {
		return "", err
	}
	return t.Format(time.RFC3339), nil
}
