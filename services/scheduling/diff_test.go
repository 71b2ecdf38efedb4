package scheduling

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"schedly/models"
)

func diffAppt(id, start, room string) models.Appointment {
	return models.Appointment{
		ID: id, ClientName: "Jane Doe", Service: "Massage",
		Provider: "John", Room: room,
		StartTime: start, EndTime: "2025-07-16T11:00:00-04:00",
	}
}

func TestDiffAppointmentsIdenticalLists(t *testing.T) {
	before := []models.Appointment{diffAppt("1", "2025-07-16T10:00:00-04:00", "R1")}
	after := []models.Appointment{diffAppt("1", "2025-07-16T10:00:00-04:00", "R1")}

	changed, omitted := DiffAppointments(before, after)
	assert.Empty(t, changed)
	assert.Empty(t, omitted)
}

func TestDiffAppointmentsFieldChanges(t *testing.T) {
	base := diffAppt("1", "2025-07-16T10:00:00-04:00", "R1")

	testCases := []struct {
		name   string
		mutate func(*models.Appointment)
	}{
		{"start time", func(a *models.Appointment) { a.StartTime = "2025-07-16T12:00:00-04:00" }},
		{"end time", func(a *models.Appointment) { a.EndTime = "2025-07-16T13:00:00-04:00" }},
		{"provider", func(a *models.Appointment) { a.Provider = "Anna" }},
		{"room", func(a *models.Appointment) { a.Room = "R9" }},
		{"service", func(a *models.Appointment) { a.Service = "Physio" }},
		{"client name", func(a *models.Appointment) { a.ClientName = "Mark Smith" }},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			proposed := base
			tc.mutate(&proposed)
			changed, _ := DiffAppointments([]models.Appointment{base}, []models.Appointment{proposed})
			assert.Equal(t, []string{"1"}, changed)
		})
	}
}

func TestDiffAppointmentsNewEntry(t *testing.T) {
	before := []models.Appointment{diffAppt("1", "2025-07-16T10:00:00-04:00", "R1")}
	after := append([]models.Appointment{}, before...)
	after = append(after, diffAppt("99", "2025-07-16T14:00:00-04:00", "R2"))

	changed, omitted := DiffAppointments(before, after)
	assert.Equal(t, []string{"99"}, changed)
	assert.Empty(t, omitted)
}

func TestDiffAppointmentsOmittedEntry(t *testing.T) {
	before := []models.Appointment{
		diffAppt("1", "2025-07-16T10:00:00-04:00", "R1"),
		diffAppt("2", "2025-07-16T12:00:00-04:00", "R2"),
	}
	after := before[:1]

	changed, omitted := DiffAppointments(before, after)
	assert.Empty(t, changed)
	assert.Equal(t, []string{"2"}, omitted)
}

func TestDiffAppointmentsIgnoresResourceIDChurn(t *testing.T) {
	before := diffAppt("1", "2025-07-16T10:00:00-04:00", "R1")
	before.RoomID = intPtr(20)
	after := before
	after.RoomID = intPtr(21) // same display name, renumbered ID

	changed, _ := DiffAppointments([]models.Appointment{before}, []models.Appointment{after})
	assert.Empty(t, changed)
}
