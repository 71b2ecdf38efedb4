package scheduling

import (
	"context"
	"sync"

	"schedly/models"
	"schedly/services/gateway"
)

// fakeGateway records calls and serves canned results.
type fakeGateway struct {
	mu sync.Mutex

	fetchResults []gateway.FetchEventsResult // consumed in order; the last one repeats
	fetchCalls   int

	createResult   gateway.MutationResult
	updateResults  map[string]gateway.MutationResult // keyed by appointment ID
	deleteResult   gateway.MutationResult
	evaluateResult gateway.EvaluateResult
	optimizeResult gateway.OptimizeResult

	created   []models.Appointment
	updated   []string
	deleted   []string
	evaluated [][]models.Appointment
}

func newFakeGateway() *fakeGateway {
	return &fakeGateway{
		fetchResults:   []gateway.FetchEventsResult{{Events: []models.BackendCalendarEvent{}, Success: true}},
		createResult:   gateway.MutationResult{Success: true},
		updateResults:  map[string]gateway.MutationResult{},
		deleteResult:   gateway.MutationResult{Success: true},
		evaluateResult: gateway.EvaluateResult{Success: true},
		optimizeResult: gateway.OptimizeResult{Success: true, IsValid: true},
	}
}

func (f *fakeGateway) FetchEvents(context.Context, models.DateRange) gateway.FetchEventsResult {
	f.mu.Lock()
	defer f.mu.Unlock()
	res := f.fetchResults[0]
	if len(f.fetchResults) > 1 {
		f.fetchResults = f.fetchResults[1:]
	}
	f.fetchCalls++
	return res
}

func (f *fakeGateway) FetchClients(context.Context) []models.BackendClient { return nil }

func (f *fakeGateway) FetchServices(context.Context) []models.BackendServiceRef { return nil }

func (f *fakeGateway) FetchWorkers(context.Context) []models.BackendWorker { return nil }

func (f *fakeGateway) FetchLocations(context.Context) []models.BackendLocation { return nil }

func (f *fakeGateway) CreateBooking(_ context.Context, appt models.Appointment) gateway.MutationResult {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.created = append(f.created, appt)
	return f.createResult
}

func (f *fakeGateway) UpdateBooking(_ context.Context, appt models.Appointment) gateway.MutationResult {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.updated = append(f.updated, appt.ID)
	if res, ok := f.updateResults[appt.ID]; ok {
		return res
	}
	return gateway.MutationResult{Success: true}
}

func (f *fakeGateway) DeleteBooking(_ context.Context, id string) gateway.MutationResult {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.deleted = append(f.deleted, id)
	return f.deleteResult
}

func (f *fakeGateway) EvaluateBookings(_ context.Context, appts []models.Appointment) gateway.EvaluateResult {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.evaluated = append(f.evaluated, appts)
	return f.evaluateResult
}

func (f *fakeGateway) OptimizeBookings(context.Context, string, string) gateway.OptimizeResult {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.optimizeResult
}

// fakeEnqueuer records scheduled refreshes.
type fakeEnqueuer struct {
	mu    sync.Mutex
	calls []int64
}

func (f *fakeEnqueuer) EnqueueConflictRefresh(_ string, revision int64) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls = append(f.calls, revision)
	return nil
}
