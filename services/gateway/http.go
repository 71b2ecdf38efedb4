package gateway

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"go.uber.org/zap"

	"schedly/models"
)

// HTTPGateway talks to the scheduling backend's REST API.
type HTTPGateway struct {
	BaseURL    string
	CalendarID int
	Client     *http.Client
	Logger     *zap.Logger
}

// NewHTTPGateway creates a gateway for the given backend base URL
// (e.g. "https://host/api").
func NewHTTPGateway(baseURL string, calendarID int, timeout time.Duration, logger *zap.Logger) *HTTPGateway {
	return &HTTPGateway{
		BaseURL:    strings.TrimRight(baseURL, "/"),
		CalendarID: calendarID,
		Client:     &http.Client{Timeout: timeout},
		Logger:     logger,
	}
}

var _ Gateway = (*HTTPGateway)(nil)

// FetchEvents lists bookings overlapping a date range.
func (g *HTTPGateway) FetchEvents(ctx context.Context, rng models.DateRange) FetchEventsResult {
	q := url.Values{}
	q.Set("from", rng.From)
	q.Set("to", rng.To)
	q.Set("calendarId", fmt.Sprintf("%d", g.CalendarID))

	body, err := g.do(ctx, http.MethodGet, "/booking?"+q.Encode(), nil)
	if err != nil {
		g.Logger.Error("fetch events failed", zap.Error(err))
		return FetchEventsResult{Events: []models.BackendCalendarEvent{}, Success: false, Error: err.Error()}
	}

	events, err := decodeEventList(body)
	if err != nil {
		g.Logger.Error("fetch events: bad payload", zap.Error(err))
		return FetchEventsResult{Events: []models.BackendCalendarEvent{}, Success: false, Error: err.Error()}
	}
	return FetchEventsResult{Events: events, Success: true}
}

// The backend answers either with a bare array or an envelope keyed
// "events" or "bookings".
func decodeEventList(body []byte) ([]models.BackendCalendarEvent, error) {
	trimmed := bytes.TrimSpace(body)
	if len(trimmed) == 0 {
		return []models.BackendCalendarEvent{}, nil
	}
	if trimmed[0] == '[' {
		var events []models.BackendCalendarEvent
		if err := json.Unmarshal(trimmed, &events); err != nil {
			return nil, fmt.Errorf("decoding event list: %w", err)
		}
		return events, nil
	}
	var envelope struct {
		Events   []models.BackendCalendarEvent `json:"events"`
		Bookings []models.BackendCalendarEvent `json:"bookings"`
	}
	if err := json.Unmarshal(trimmed, &envelope); err != nil {
		return nil, fmt.Errorf("decoding event envelope: %w", err)
	}
	if envelope.Events != nil {
		return envelope.Events, nil
	}
	if envelope.Bookings != nil {
		return envelope.Bookings, nil
	}
	return []models.BackendCalendarEvent{}, nil
}

// FetchClients returns the full client directory; failures degrade to empty.
func (g *HTTPGateway) FetchClients(ctx context.Context) []models.BackendClient {
	var out []models.BackendClient
	g.fetchDirectory(ctx, "/client/all", &out)
	return out
}

func (g *HTTPGateway) FetchServices(ctx context.Context) []models.BackendServiceRef {
	var out []models.BackendServiceRef
	g.fetchDirectory(ctx, "/service/all", &out)
	return out
}

func (g *HTTPGateway) FetchWorkers(ctx context.Context) []models.BackendWorker {
	var out []models.BackendWorker
	g.fetchDirectory(ctx, "/worker/all", &out)
	return out
}

func (g *HTTPGateway) FetchLocations(ctx context.Context) []models.BackendLocation {
	var out []models.BackendLocation
	g.fetchDirectory(ctx, "/location/all", &out)
	return out
}

func (g *HTTPGateway) fetchDirectory(ctx context.Context, path string, out any) {
	body, err := g.do(ctx, http.MethodGet, fmt.Sprintf("%s?calendarId=%d", path, g.CalendarID), nil)
	if err != nil {
		g.Logger.Error("fetch directory failed", zap.String("path", path), zap.Error(err))
		return
	}
	if err := json.Unmarshal(body, out); err != nil {
		g.Logger.Error("fetch directory: bad payload", zap.String("path", path), zap.Error(err))
	}
}

// CreateBooking persists a new booking built from the appointment.
func (g *HTTPGateway) CreateBooking(ctx context.Context, appt models.Appointment) MutationResult {
	req, err := AppointmentToCreateRequest(appt, g.CalendarID)
	if err != nil {
		return MutationResult{Success: false, Error: err.Error()}
	}
	body, err := g.do(ctx, http.MethodPost, "/booking", req)
	if err != nil {
		g.Logger.Error("create booking failed", zap.Error(err))
		return MutationResult{Success: false, Error: err.Error()}
	}
	return MutationResult{Success: true, Data: decodeOptionalJSON(body)}
}

// UpdateBooking updates a persisted booking. The backend expects an array of
// booking objects on PUT.
func (g *HTTPGateway) UpdateBooking(ctx context.Context, appt models.Appointment) MutationResult {
	req, err := AppointmentToUpdateRequest(appt, g.CalendarID)
	if err != nil {
		return MutationResult{Success: false, Error: err.Error()}
	}
	body, err := g.do(ctx, http.MethodPut, "/booking", []models.UpdateBookingRequest{req})
	if err != nil {
		g.Logger.Error("update booking failed", zap.String("id", appt.ID), zap.Error(err))
		return MutationResult{Success: false, Error: err.Error()}
	}
	return MutationResult{Success: true, Data: decodeOptionalJSON(body)}
}

// DeleteBooking removes a persisted booking by its stringified numeric ID.
func (g *HTTPGateway) DeleteBooking(ctx context.Context, id string) MutationResult {
	path := fmt.Sprintf("/booking?id=%s&calendarId=%d", url.QueryEscape(id), g.CalendarID)
	if _, err := g.do(ctx, http.MethodDelete, path, nil); err != nil {
		g.Logger.Error("delete booking failed", zap.String("id", id), zap.Error(err))
		return MutationResult{Success: false, Error: err.Error()}
	}
	return MutationResult{Success: true}
}

// EvaluateBookings runs the backend's constraint evaluator over the given
// candidate set without persisting anything.
func (g *HTTPGateway) EvaluateBookings(ctx context.Context, appts []models.Appointment) EvaluateResult {
	reqs := make([]models.UpdateBookingRequest, 0, len(appts))
	for _, appt := range appts {
		req, err := AppointmentToUpdateRequest(appt, g.CalendarID)
		if err != nil {
			return EvaluateResult{Success: false, Error: err.Error()}
		}
		reqs = append(reqs, req)
	}

	body, err := g.do(ctx, http.MethodPost, fmt.Sprintf("/booking/evaluate?calendarId=%d", g.CalendarID), reqs)
	if err != nil {
		g.Logger.Error("evaluate bookings failed", zap.Error(err))
		return EvaluateResult{Success: false, Error: err.Error()}
	}

	var conflicts []models.ConflictRecord
	if err := json.Unmarshal(body, &conflicts); err != nil {
		g.Logger.Error("evaluate bookings: bad payload", zap.Error(err))
		return EvaluateResult{Success: false, Error: err.Error()}
	}
	return EvaluateResult{Success: true, Conflicts: conflicts}
}

// OptimizeBookings asks the backend optimizer for a proposed booking set.
func (g *HTTPGateway) OptimizeBookings(ctx context.Context, from, to string) OptimizeResult {
	q := url.Values{}
	q.Set("from", from)
	q.Set("to", to)
	q.Set("calendarId", fmt.Sprintf("%d", g.CalendarID))

	body, err := g.do(ctx, http.MethodPost, "/booking/optimize?"+q.Encode(), nil)
	if err != nil {
		g.Logger.Error("optimize bookings failed", zap.Error(err))
		return OptimizeResult{Success: false, Error: err.Error()}
	}

	var resp struct {
		OptimizedEvents []models.BackendCalendarEvent `json:"optimizedEvents"`
		Events          []models.BackendCalendarEvent `json:"events"`
		IsValid         bool                          `json:"isValid"`
	}
	if err := json.Unmarshal(body, &resp); err != nil {
		g.Logger.Error("optimize bookings: bad payload", zap.Error(err))
		return OptimizeResult{Success: false, Error: err.Error()}
	}
	events := resp.OptimizedEvents
	if events == nil {
		events = resp.Events
	}
	return OptimizeResult{Success: true, OptimizedEvents: events, IsValid: resp.IsValid}
}

// do issues one request and returns the raw response body. Non-2xx statuses
// become errors carrying the response text.
func (g *HTTPGateway) do(ctx context.Context, method, path string, payload any) ([]byte, error) {
	var reqBody io.Reader
	if payload != nil {
		data, err := json.Marshal(payload)
		if err != nil {
			return nil, fmt.Errorf("encoding request: %w", err)
		}
		reqBody = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, g.BaseURL+path, reqBody)
	if err != nil {
		return nil, fmt.Errorf("building request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := g.Client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("HTTP request failed: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("reading response: %w", err)
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, fmt.Errorf("HTTP error! status: %d, %s", resp.StatusCode, strings.TrimSpace(string(body)))
	}
	return body, nil
}

func decodeOptionalJSON(body []byte) any {
	trimmed := bytes.TrimSpace(body)
	if len(trimmed) == 0 {
		return nil
	}
	var data any
	if err := json.Unmarshal(trimmed, &data); err != nil {
		return nil
	}
	return data
}
