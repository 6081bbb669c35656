package round

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/osse101/JackpotEngine_Go/internal/archive"
	"github.com/osse101/JackpotEngine_Go/internal/domain"
	"github.com/osse101/JackpotEngine_Go/internal/event"
)

// MockChecker is a mock implementation of inventory.Checker
type MockChecker struct {
	mock.Mock
}

func (m *MockChecker) Check(ctx context.Context, ownerID, itemID string) (domain.Item, error) {
	args := m.Called(ctx, ownerID, itemID)
	return args.Get(0).(domain.Item), args.Error(1)
}

// MockStore is a mock implementation of archive.Store
type MockStore struct {
	mock.Mock
}

func (m *MockStore) Append(ctx context.Context, entry domain.ArchiveEntry) error {
	args := m.Called(ctx, entry)
	return args.Error(0)
}

func (m *MockStore) Get(ctx context.Context, roundHash string) (*domain.ArchiveEntry, error) {
	args := m.Called(ctx, roundHash)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.ArchiveEntry), args.Error(1)
}

func (m *MockStore) List(ctx context.Context, limit, offset int) ([]domain.ArchiveEntry, error) {
	args := m.Called(ctx, limit, offset)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.ArchiveEntry), args.Error(1)
}

func (m *MockStore) Count(ctx context.Context) (int, error) {
	args := m.Called(ctx)
	return args.Int(0), args.Error(1)
}

func (m *MockStore) LatestSequence(ctx context.Context) (int64, error) {
	args := m.Called(ctx)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockStore) Walk(ctx context.Context, fn func(domain.ArchiveEntry) error) error {
	args := m.Called(ctx, fn)
	return args.Error(0)
}

func (m *MockStore) Close() error {
	args := m.Called()
	return args.Error(0)
}

// fakeScheduler holds callbacks until a test fires them
type fakeScheduler struct {
	mu      sync.Mutex
	pending map[string]fakeTimer
	closed  bool
}

type fakeTimer struct {
	delay time.Duration
	fn    func(ctx context.Context)
}

func newFakeScheduler() *fakeScheduler {
	return &fakeScheduler{pending: make(map[string]fakeTimer)}
}

func (f *fakeScheduler) Schedule(key string, d time.Duration, fn func(ctx context.Context)) bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.closed {
		return false
	}
	f.pending[key] = fakeTimer{delay: d, fn: fn}
	return true
}

func (f *fakeScheduler) Cancel(key string) bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	_, ok := f.pending[key]
	delete(f.pending, key)
	return ok
}

func (f *fakeScheduler) Shutdown(ctx context.Context) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.closed = true
	f.pending = make(map[string]fakeTimer)
	return nil
}

// Fire runs the callback under key outside the scheduler lock, like worker.Timers does
func (f *fakeScheduler) Fire(key string) bool {
	f.mu.Lock()
	t, ok := f.pending[key]
	delete(f.pending, key)
	f.mu.Unlock()
	if !ok {
		return false
	}
	t.fn(context.Background())
	return true
}

func (f *fakeScheduler) Delay(key string) (time.Duration, bool) {
	f.mu.Lock()
	defer f.mu.Unlock()
	t, ok := f.pending[key]
	return t.delay, ok
}

// eventRecorder captures every round event published on a bus
type eventRecorder struct {
	mu     sync.Mutex
	events []event.Event
}

func newEventRecorder(bus event.Bus) *eventRecorder {
	r := &eventRecorder{}
	for _, t := range event.RoundTypes {
		bus.Subscribe(t, func(_ context.Context, evt event.Event) error {
			r.mu.Lock()
			defer r.mu.Unlock()
			r.events = append(r.events, evt)
			return nil
		})
	}
	return r
}

func (r *eventRecorder) Types() []event.Type {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]event.Type, len(r.events))
	for i, e := range r.events {
		out[i] = e.Type
	}
	return out
}

func (r *eventRecorder) Count(t event.Type) int {
	n := 0
	for _, got := range r.Types() {
		if got == t {
			n++
		}
	}
	return n
}

func (r *eventRecorder) Last(t event.Type) (event.Event, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for i := len(r.events) - 1; i >= 0; i-- {
		if r.events[i].Type == t {
			return r.events[i], true
		}
	}
	return event.Event{}, false
}

func (r *eventRecorder) Reset() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.events = nil
}

var testNow = time.UnixMilli(1_700_000_000_000).UTC()

type harness struct {
	svc     *service
	store   *archive.MemoryStore
	checker *MockChecker
	timers  *fakeScheduler
	events  *eventRecorder
}

func testPolicy() Policy {
	return Policy{
		MinParticipants:    2,
		Countdown:          30 * time.Second,
		MaxItemsPerDeposit: 5,
		RevealLead:         2 * time.Second,
		RevealDuration:     8 * time.Second,
		CommissionBps:      500,
	}
}

func newHarness(t *testing.T, policy Policy) *harness {
	t.Helper()
	store := archive.NewMemoryStore()
	checker := &MockChecker{}
	timers := newFakeScheduler()
	bus := event.NewMemoryBus()
	h := &harness{
		svc:     newService(policy, store, checker, bus, timers),
		store:   store,
		checker: checker,
		timers:  timers,
		events:  newEventRecorder(bus),
	}
	h.svc.clock = func() time.Time { return testNow }
	h.svc.retry = archive.RetryPolicy{Attempts: 1}
	return h
}

func (h *harness) start(t *testing.T) domain.Round {
	t.Helper()
	require.NoError(t, h.svc.Start(context.Background()))
	return h.svc.Current(context.Background())
}

func (h *harness) stock(owner, itemID string, value domain.Cents) {
	h.checker.On("Check", mock.Anything, owner, itemID).
		Return(domain.Item{ID: itemID, Name: "item " + itemID, Value: value}, nil)
}

func (h *harness) join(t *testing.T, owner string, itemIDs ...string) domain.Round {
	t.Helper()
	r, err := h.svc.Contribute(context.Background(), domain.Identity{ID: owner, DisplayName: owner}, ContributeRequest{ItemIDs: itemIDs})
	require.NoError(t, err)
	return r
}

func (h *harness) countdownKey() string {
	return TimerKeyCountdown + h.svc.Current(context.Background()).Hash
}

func (h *harness) completeKey() string {
	return TimerKeyComplete + h.svc.Current(context.Background()).Hash
}
