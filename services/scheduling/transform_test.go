package scheduling

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"schedly/models"
)

func backendEvent(id int) models.BackendCalendarEvent {
	return models.BackendCalendarEvent{
		ID:       id,
		Starting: "2025-07-16T06:00:00-04:00",
		Ending:   "2025-07-16T11:00:00-04:00",
		Clients: []models.BackendClient{
			{ID: 100, Name: "Jane Doe"},
			{ID: 101, Name: "Ignored Second Client"},
		},
		Services:  []models.BackendServiceRef{{ID: 200, Name: "Massage"}},
		Workers:   []models.BackendWorker{{ID: 300, Name: "John", IsLocked: true}},
		Locations: []models.BackendLocation{{ID: 400, Name: "Room 1"}},
	}
}

func TestBackendToAppointmentPrimaryProjection(t *testing.T) {
	appt := BackendToAppointment(backendEvent(17))

	assert.Equal(t, "17", appt.ID)
	assert.Equal(t, "Jane Doe", appt.ClientName)
	assert.Equal(t, "Massage", appt.Service)
	assert.Equal(t, "John", appt.Provider)
	assert.Equal(t, "Room 1", appt.Room)

	require.NotNil(t, appt.ClientID)
	assert.Equal(t, 100, *appt.ClientID)
	require.NotNil(t, appt.ServiceID)
	assert.Equal(t, 200, *appt.ServiceID)
	require.NotNil(t, appt.ProviderID)
	assert.Equal(t, 300, *appt.ProviderID)
	require.NotNil(t, appt.RoomID)
	assert.Equal(t, 400, *appt.RoomID)

	require.NotNil(t, appt.ProviderLocked)
	assert.True(t, *appt.ProviderLocked)
	require.NotNil(t, appt.RoomLocked)
	assert.False(t, *appt.RoomLocked)
}

func TestBackendToAppointmentPreservesTimezoneOffsets(t *testing.T) {
	appt := BackendToAppointment(backendEvent(1))

	// Verbatim passthrough, no normalization to UTC.
	assert.Equal(t, "2025-07-16T06:00:00-04:00", appt.StartTime)
	assert.Equal(t, "2025-07-16T11:00:00-04:00", appt.EndTime)
}

func TestBackendToAppointmentMissingArrays(t *testing.T) {
	appt := BackendToAppointment(models.BackendCalendarEvent{
		ID:       9,
		Starting: "2025-07-16T06:00:00-04:00",
		Ending:   "2025-07-16T07:00:00-04:00",
	})

	assert.Equal(t, "", appt.ClientName)
	assert.Equal(t, "", appt.Service)
	assert.Equal(t, "", appt.Provider)
	assert.Equal(t, "", appt.Room)
	assert.Nil(t, appt.ClientID)
	assert.Nil(t, appt.ServiceID)
	assert.Nil(t, appt.ProviderID)
	assert.Nil(t, appt.RoomID)
}

func TestBackendToAppointmentConflictsPassThrough(t *testing.T) {
	be := backendEvent(3)
	be.Conflicts = []models.ConflictRecord{{
		EvaluationCriteria: CriteriaDoubleBooked,
		Results:            []models.ConflictResult{{BookingID: 3, Locations: []int{400}}},
	}}

	appt := BackendToAppointment(be)

	require.Len(t, appt.Conflicts, 1)
	assert.Equal(t, CriteriaDoubleBooked, appt.Conflicts[0].EvaluationCriteria)
}

func TestBackendToAppointments(t *testing.T) {
	appts := BackendToAppointments([]models.BackendCalendarEvent{backendEvent(1), backendEvent(2)})

	require.Len(t, appts, 2)
	assert.Equal(t, "1", appts[0].ID)
	assert.Equal(t, "2", appts[1].ID)
}
