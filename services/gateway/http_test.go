package gateway

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"schedly/models"
)

func testGateway(t *testing.T, handler http.HandlerFunc) *HTTPGateway {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	return NewHTTPGateway(srv.URL, 2, 5*time.Second, zap.NewNop())
}

func TestFetchEventsBareArray(t *testing.T) {
	var gotQuery string
	gw := testGateway(t, func(w http.ResponseWriter, r *http.Request) {
		gotQuery = r.URL.RawQuery
		w.Write([]byte(`[{"id":1,"starting":"2025-07-16T10:00:00-04:00","ending":"2025-07-16T11:00:00-04:00"}]`))
	})

	res := gw.FetchEvents(context.Background(), models.DateRange{
		From: "2025-07-14T00:00:00Z", To: "2025-07-20T23:59:59Z",
	})

	require.True(t, res.Success)
	require.Len(t, res.Events, 1)
	assert.Equal(t, 1, res.Events[0].ID)
	assert.Contains(t, gotQuery, "calendarId=2")
	assert.Contains(t, gotQuery, "from=2025-07-14T00%3A00%3A00Z")
}

func TestFetchEventsEnvelopes(t *testing.T) {
	testCases := []struct {
		name string
		body string
	}{
		{"events key", `{"events":[{"id":7}]}`},
		{"bookings key", `{"bookings":[{"id":7}]}`},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			gw := testGateway(t, func(w http.ResponseWriter, r *http.Request) {
				w.Write([]byte(tc.body))
			})

			res := gw.FetchEvents(context.Background(), models.DateRange{})
			require.True(t, res.Success)
			require.Len(t, res.Events, 1)
			assert.Equal(t, 7, res.Events[0].ID)
		})
	}
}

func TestFetchEventsEmptyBody(t *testing.T) {
	gw := testGateway(t, func(w http.ResponseWriter, r *http.Request) {})

	res := gw.FetchEvents(context.Background(), models.DateRange{})
	require.True(t, res.Success)
	assert.Empty(t, res.Events)
}

func TestFetchEventsServerError(t *testing.T) {
	gw := testGateway(t, func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "calendar unavailable", http.StatusServiceUnavailable)
	})

	res := gw.FetchEvents(context.Background(), models.DateRange{})

	assert.False(t, res.Success)
	assert.Contains(t, res.Error, "HTTP error! status: 503")
	assert.Contains(t, res.Error, "calendar unavailable")
	assert.NotNil(t, res.Events)
}

func TestCreateBookingPostsPayload(t *testing.T) {
	var gotMethod string
	var gotBody models.CreateBookingRequest
	gw := testGateway(t, func(w http.ResponseWriter, r *http.Request) {
		gotMethod = r.Method
		data, _ := io.ReadAll(r.Body)
		require.NoError(t, json.Unmarshal(data, &gotBody))
		w.Write([]byte(`{"id":55}`))
	})

	res := gw.CreateBooking(context.Background(), models.Appointment{
		ClientName: "Jane Doe", Service: "Massage",
		RoomID:    intPtr(400),
		StartTime: "2025-07-16T10:00:00-04:00", EndTime: "2025-07-16T11:00:00-04:00",
	})

	require.True(t, res.Success)
	assert.Equal(t, http.MethodPost, gotMethod)
	assert.Equal(t, "Jane Doe - Massage", gotBody.Name)
	assert.Equal(t, 2, gotBody.CalendarID)
	require.Len(t, gotBody.Locations, 1)
	assert.Equal(t, 400, gotBody.Locations[0].ID)
	assert.NotNil(t, res.Data)
}

func TestUpdateBookingSendsOneElementArray(t *testing.T) {
	var gotBody []models.UpdateBookingRequest
	gw := testGateway(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPut, r.Method)
		data, _ := io.ReadAll(r.Body)
		require.NoError(t, json.Unmarshal(data, &gotBody))
	})

	res := gw.UpdateBooking(context.Background(), fullAppointment())

	require.True(t, res.Success)
	require.Len(t, gotBody, 1)
	assert.Equal(t, 17, gotBody[0].ID)
}

func TestUpdateBookingRejectsDraftWithoutCalling(t *testing.T) {
	called := false
	gw := testGateway(t, func(w http.ResponseWriter, r *http.Request) { called = true })

	appt := fullAppointment()
	appt.ID = "draft-1699999999999"
	res := gw.UpdateBooking(context.Background(), appt)

	assert.False(t, res.Success)
	assert.Contains(t, res.Error, "has no persisted booking ID")
	assert.False(t, called)
}

func TestDeleteBookingQuery(t *testing.T) {
	var gotQuery string
	gw := testGateway(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodDelete, r.Method)
		gotQuery = r.URL.RawQuery
	})

	res := gw.DeleteBooking(context.Background(), "17")

	require.True(t, res.Success)
	assert.Equal(t, "id=17&calendarId=2", gotQuery)
}

func TestEvaluateBookings(t *testing.T) {
	var gotBody []models.UpdateBookingRequest
	gw := testGateway(t, func(w http.ResponseWriter, r *http.Request) {
		data, _ := io.ReadAll(r.Body)
		require.NoError(t, json.Unmarshal(data, &gotBody))
		w.Write([]byte(`[{"evaluationCriteria":"SolutionResourceDoubleBooked","results":[{"bookingId":17,"locations":[400]}]}]`))
	})

	res := gw.EvaluateBookings(context.Background(), []models.Appointment{fullAppointment()})

	require.True(t, res.Success)
	require.Len(t, gotBody, 1)
	assert.Equal(t, 17, gotBody[0].ID)
	require.Len(t, res.Conflicts, 1)
	assert.Equal(t, "SolutionResourceDoubleBooked", res.Conflicts[0].EvaluationCriteria)
	require.Len(t, res.Conflicts[0].Results, 1)
	assert.Equal(t, 17, res.Conflicts[0].Results[0].BookingID)
}

func TestOptimizeBookings(t *testing.T) {
	testCases := []struct {
		name string
		body string
	}{
		{"optimizedEvents key", `{"optimizedEvents":[{"id":3}],"isValid":true}`},
		{"events key", `{"events":[{"id":3}],"isValid":true}`},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			gw := testGateway(t, func(w http.ResponseWriter, r *http.Request) {
				assert.Equal(t, http.MethodPost, r.Method)
				w.Write([]byte(tc.body))
			})

			res := gw.OptimizeBookings(context.Background(), "2025-07-14T00:00:00Z", "2025-07-20T23:59:59Z")

			require.True(t, res.Success)
			assert.True(t, res.IsValid)
			require.Len(t, res.OptimizedEvents, 1)
			assert.Equal(t, 3, res.OptimizedEvents[0].ID)
		})
	}
}

func TestOptimizeBookingsInvalidSolution(t *testing.T) {
	gw := testGateway(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"optimizedEvents":[],"isValid":false}`))
	})

	res := gw.OptimizeBookings(context.Background(), "a", "b")

	require.True(t, res.Success)
	assert.False(t, res.IsValid)
}

func TestFetchDirectoriesDegradeToEmpty(t *testing.T) {
	gw := testGateway(t, func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "nope", http.StatusInternalServerError)
	})

	assert.Empty(t, gw.FetchClients(context.Background()))
	assert.Empty(t, gw.FetchServices(context.Background()))
	assert.Empty(t, gw.FetchWorkers(context.Background()))
	assert.Empty(t, gw.FetchLocations(context.Background()))
}

func TestFetchWorkersDirectory(t *testing.T) {
	var gotPath string
	gw := testGateway(t, func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		w.Write([]byte(`[{"id":300,"name":"John"}]`))
	})

	workers := gw.FetchWorkers(context.Background())

	assert.Equal(t, "/worker/all", gotPath)
	require.Len(t, workers, 1)
	assert.Equal(t, "John", workers[0].Name)
}
