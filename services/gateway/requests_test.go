package gateway

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"schedly/models"
)

func intPtr(i int) *int    { return &i }
func boolPtr(b bool) *bool { return &b }

func fullAppointment() models.Appointment {
	return models.Appointment{
		ID:             "17",
		ClientName:     "Jane Doe",
		Service:        "Massage",
		Provider:       "John",
		Room:           "Room 1",
		ClientID:       intPtr(100),
		ServiceID:      intPtr(200),
		ProviderID:     intPtr(300),
		RoomID:         intPtr(400),
		ProviderLocked: boolPtr(true),
		StartTime:      "2025-07-16T10:00:00-04:00",
		EndTime:        "2025-07-16T11:00:00-04:00",
	}
}

func TestAppointmentToCreateRequest(t *testing.T) {
	req, err := AppointmentToCreateRequest(fullAppointment(), 2)
	require.NoError(t, err)

	assert.Equal(t, 2, req.CalendarID)
	assert.Equal(t, "Jane Doe - Massage", req.Name)
	assert.Equal(t, "Massage", req.Description)
	assert.Equal(t, "2025-07-16T10:00:00-04:00", req.Starting)
	assert.Equal(t, "2025-07-16T11:00:00-04:00", req.Ending)

	require.Len(t, req.Locations, 1)
	assert.Equal(t, models.ResourceRef{ID: 400}, req.Locations[0])
	require.Len(t, req.Workers, 1)
	assert.Equal(t, models.ResourceRef{ID: 300, IsLocked: true}, req.Workers[0])
	require.Len(t, req.Clients, 1)
	assert.Equal(t, models.ResourceRef{ID: 100}, req.Clients[0])
	assert.Equal(t, []int{200}, req.ServicesIDs)
}

func TestAppointmentToCreateRequestOmitsUnresolvedResources(t *testing.T) {
	appt := models.Appointment{
		ClientName: "Walk In",
		Service:    "Massage",
		StartTime:  "2025-07-16T10:00:00-04:00",
		EndTime:    "2025-07-16T11:00:00-04:00",
	}

	req, err := AppointmentToCreateRequest(appt, 2)
	require.NoError(t, err)

	// Unresolved categories are empty arrays, never null, on the wire.
	data, err := json.Marshal(req)
	require.NoError(t, err)
	assert.Contains(t, string(data), `"locations":[]`)
	assert.Contains(t, string(data), `"workers":[]`)
	assert.Contains(t, string(data), `"clients":[]`)
	assert.Contains(t, string(data), `"servicesIds":[]`)
}

func TestAppointmentToCreateRequestRejectsBadTimes(t *testing.T) {
	appt := fullAppointment()
	appt.StartTime = "yesterday"

	_, err := AppointmentToCreateRequest(appt, 2)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid start time")

	appt = fullAppointment()
	appt.EndTime = ""
	_, err = AppointmentToCreateRequest(appt, 2)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid end time")
}

func TestAppointmentToUpdateRequest(t *testing.T) {
	req, err := AppointmentToUpdateRequest(fullAppointment(), 2)
	require.NoError(t, err)

	assert.Equal(t, 17, req.ID)
	assert.Equal(t, "Jane Doe - Massage", req.Name)
}

func TestAppointmentToUpdateRequestRejectsNonNumericIDs(t *testing.T) {
	for _, id := range []string{"", "draft-1699999999999", "abc"} {
		appt := fullAppointment()
		appt.ID = id

		_, err := AppointmentToUpdateRequest(appt, 2)
		require.Error(t, err, "id %q", id)
		assert.Contains(t, err.Error(), "has no persisted booking ID")
	}
}

func TestResourceRefWireCasing(t *testing.T) {
	data, err := json.Marshal(models.ResourceRef{ID: 7, IsLocked: true})
	require.NoError(t, err)

	// The backend expects Pascal-case IsLocked next to lower-case id.
	assert.JSONEq(t, `{"id":7,"IsLocked":true}`, string(data))
}
