package round

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/osse101/JackpotEngine_Go/internal/archive"
	"github.com/osse101/JackpotEngine_Go/internal/domain"
	"github.com/osse101/JackpotEngine_Go/internal/event"
	"github.com/osse101/JackpotEngine_Go/internal/fairness"
)

func TestStart_OpensCommittedRound(t *testing.T) {
	h := newHarness(t, testPolicy())

	r := h.start(t)

	assert.Equal(t, domain.RoundStatusOpen, r.Status)
	assert.Equal(t, int64(1), r.Sequence)
	assert.Len(t, r.Commitment, 64)
	assert.NotEmpty(t, r.Hash)
	assert.Empty(t, r.ServerSeed, "seed must stay hidden while the round is open")
	assert.Equal(t, []event.Type{event.RoundOpened}, h.events.Types())
}

func TestStart_InvalidPolicy(t *testing.T) {
	p := testPolicy()
	p.MinParticipants = 0
	h := newHarness(t, p)

	err := h.svc.Start(context.Background())
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestStart_ContinuesSequenceAndRemembersArchivedItems(t *testing.T) {
	h := newHarness(t, testPolicy())
	old := domain.ArchiveEntry{
		Round: domain.Round{
			Hash:     "old-round",
			Sequence: 7,
			Status:   domain.RoundStatusCompleted,
			Participants: []domain.Participant{
				{Identity: domain.Identity{ID: "zed"}, Items: []domain.Item{{ID: "old-item", Value: 100}}, Weight: 100},
			},
			TotalValue: 100,
			WinnerID:   "zed",
		},
		Proof: domain.Proof{RoundHash: "old-round"},
	}
	require.NoError(t, h.store.Append(context.Background(), old))

	r := h.start(t)
	assert.Equal(t, int64(8), r.Sequence)

	_, err := h.svc.Contribute(context.Background(), domain.Identity{ID: "zed"}, ContributeRequest{ItemIDs: []string{"old-item"}})
	assert.ErrorIs(t, err, domain.ErrDuplicateContribution)
	h.checker.AssertNotCalled(t, "Check", mock.Anything, mock.Anything, mock.Anything)
}

func TestStart_StoreErrors(t *testing.T) {
	store := &MockStore{}
	store.On("LatestSequence", mock.Anything).Return(int64(0), errors.New("disk on fire"))
	svc := newService(testPolicy(), store, &MockChecker{}, event.NewMemoryBus(), newFakeScheduler())

	err := svc.Start(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), ErrContextLatestSequence)
}

func TestContribute_Validation(t *testing.T) {
	h := newHarness(t, testPolicy())
	h.start(t)
	ctx := context.Background()
	alice := domain.Identity{ID: "alice"}

	tests := []struct {
		name    string
		who     domain.Identity
		req     ContributeRequest
		wantErr error
	}{
		{"no identity", domain.Identity{}, ContributeRequest{ItemIDs: []string{"a"}}, domain.ErrUnauthenticated},
		{"no items", alice, ContributeRequest{}, domain.ErrInvalidInput},
		{"too many items", alice, ContributeRequest{ItemIDs: []string{"1", "2", "3", "4", "5", "6"}}, domain.ErrTooManyItems},
		{"repeated item", alice, ContributeRequest{ItemIDs: []string{"a", "a"}}, domain.ErrDuplicateContribution},
		{"empty item id", alice, ContributeRequest{ItemIDs: []string{""}}, domain.ErrInvalidInput},
		{"client seed too long", alice, ContributeRequest{ItemIDs: []string{"a"}, ClientSeed: string(make([]byte, MaxClientSeedLength+1))}, domain.ErrInvalidInput},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := h.svc.Contribute(ctx, tt.who, tt.req)
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}
	h.checker.AssertNotCalled(t, "Check", mock.Anything, mock.Anything, mock.Anything)
	assert.Equal(t, domain.Cents(0), h.svc.Current(ctx).TotalValue)
}

func TestContribute_AdmitsAndPublishesLedger(t *testing.T) {
	h := newHarness(t, testPolicy())
	h.start(t)
	h.stock("alice", "a1", 150)
	h.stock("alice", "a2", 50)

	r, err := h.svc.Contribute(context.Background(), domain.Identity{ID: "alice", DisplayName: "Alice"},
		ContributeRequest{ItemIDs: []string{"a1", "a2"}, ClientSeed: "lucky"})
	require.NoError(t, err)

	assert.Equal(t, domain.RoundStatusOpen, r.Status)
	assert.Equal(t, domain.Cents(200), r.TotalValue)
	require.Len(t, r.Participants, 1)
	assert.Equal(t, "Alice", r.Participants[0].Identity.DisplayName)
	assert.Equal(t, 2, r.Participants[0].ItemCount())
	assert.Nil(t, r.CountdownEndsAt, "one participant is below the minimum")

	evt, ok := h.events.Last(event.LedgerUpdated)
	require.True(t, ok)
	payload := evt.Payload.(event.LedgerUpdatedPayloadV1)
	assert.Equal(t, domain.Cents(200), payload.TotalValue)
	assert.Equal(t, r.Revision, payload.Revision)
}

func TestContribute_InvalidItemRejectsWholeDeposit(t *testing.T) {
	h := newHarness(t, testPolicy())
	h.start(t)
	h.stock("alice", "good", 100)
	h.checker.On("Check", mock.Anything, "alice", "bad").
		Return(domain.Item{}, fmt.Errorf("not tradable: %w", domain.ErrInvalidItem))

	_, err := h.svc.Contribute(context.Background(), domain.Identity{ID: "alice"}, ContributeRequest{ItemIDs: []string{"good", "bad"}})
	assert.ErrorIs(t, err, domain.ErrInvalidItem)
	assert.Equal(t, domain.Cents(0), h.svc.Current(context.Background()).TotalValue)

	// The good item was never claimed
	r := h.join(t, "alice", "good")
	assert.Equal(t, domain.Cents(100), r.TotalValue)
}

func TestContribute_CheckerReturnsDifferentItem(t *testing.T) {
	h := newHarness(t, testPolicy())
	h.start(t)
	h.checker.On("Check", mock.Anything, "alice", "x").Return(domain.Item{ID: "y", Value: 10}, nil)

	_, err := h.svc.Contribute(context.Background(), domain.Identity{ID: "alice"}, ContributeRequest{ItemIDs: []string{"x"}})
	assert.ErrorIs(t, err, domain.ErrInvalidItem)
}

func TestCountdown_LocksDrawsAndCompletes(t *testing.T) {
	h := newHarness(t, testPolicy())
	h.start(t)
	h.stock("alice", "a1", 100)
	h.stock("bob", "b1", 300)
	ctx := context.Background()

	h.join(t, "alice", "a1")
	_, scheduled := h.timers.Delay(h.countdownKey())
	assert.False(t, scheduled)

	r := h.join(t, "bob", "b1")
	require.NotNil(t, r.CountdownEndsAt)
	assert.Equal(t, testNow.Add(30*time.Second), *r.CountdownEndsAt)
	delay, scheduled := h.timers.Delay(h.countdownKey())
	require.True(t, scheduled)
	assert.Equal(t, 30*time.Second, delay)

	require.True(t, h.timers.Fire(h.countdownKey()))

	drawn := h.svc.Current(ctx)
	assert.Equal(t, domain.RoundStatusDrawing, drawn.Status)
	assert.Contains(t, []string{"alice", "bob"}, drawn.WinnerID)
	require.NotNil(t, drawn.Ticket)
	assert.GreaterOrEqual(t, *drawn.Ticket, int64(0))
	assert.Less(t, *drawn.Ticket, int64(400))
	require.NotNil(t, drawn.Reveal)
	assert.Equal(t, testNow.Add(2*time.Second), drawn.Reveal.StartAt)
	assert.Equal(t, 8*time.Second, drawn.Reveal.Duration)
	assert.NotEmpty(t, drawn.Nonce)
	assert.Empty(t, drawn.ServerSeed)

	locked, ok := h.events.Last(event.RoundLocked)
	require.True(t, ok)
	assert.Equal(t, TriggerCountdown, locked.Payload.(event.RoundLockedPayloadV1).Trigger)

	delay, scheduled = h.timers.Delay(h.completeKey())
	require.True(t, scheduled)
	assert.Equal(t, 10*time.Second, delay)

	drawnHash := drawn.Hash
	require.True(t, h.timers.Fire(h.completeKey()))

	assert.Equal(t, []event.Type{
		event.RoundOpened,
		event.LedgerUpdated,
		event.LedgerUpdated,
		event.RoundLocked,
		event.DrawScheduled,
		event.RoundCompleted,
		event.RoundOpened,
	}, h.events.Types())

	next := h.svc.Current(ctx)
	assert.Equal(t, domain.RoundStatusOpen, next.Status)
	assert.Equal(t, int64(2), next.Sequence)
	assert.NotEqual(t, drawnHash, next.Hash)

	entry, err := h.svc.HistoryEntry(ctx, drawnHash)
	require.NoError(t, err)
	assert.Equal(t, domain.RoundStatusCompleted, entry.Round.Status)
	assert.Equal(t, domain.Cents(20), entry.Round.Commission)
	assert.Equal(t, domain.Cents(380), entry.Round.Payout)
	assert.Equal(t, drawn.WinnerID, entry.Proof.WinnerID)
	assert.Equal(t, *drawn.Ticket, entry.Proof.Ticket)
	assert.NotEmpty(t, entry.Round.ServerSeed)

	out, err := h.svc.VerifyRound(ctx, drawnHash)
	require.NoError(t, err)
	assert.Equal(t, drawn.WinnerID, out.WinnerID)

	completed, ok := h.events.Last(event.RoundCompleted)
	require.True(t, ok)
	payload := completed.Payload.(event.RoundCompletedPayloadV1)
	assert.Equal(t, entry.Proof.ServerSeed, payload.Proof.ServerSeed)
}

func TestCountdown_ZeroLocksImmediately(t *testing.T) {
	p := testPolicy()
	p.Countdown = 0
	h := newHarness(t, p)
	h.start(t)
	h.stock("alice", "a1", 100)
	h.stock("bob", "b1", 100)

	h.join(t, "alice", "a1")
	r := h.join(t, "bob", "b1")

	assert.Equal(t, domain.RoundStatusDrawing, r.Status)
}

func TestCaps_LockImmediately(t *testing.T) {
	tests := []struct {
		name    string
		policy  func(*Policy)
		trigger string
	}{
		{"max participants", func(p *Policy) { p.MaxParticipants = 2 }, TriggerMaxParticipants},
		{"max pot", func(p *Policy) { p.MinParticipants = 3; p.MaxPot = 350 }, TriggerMaxPot},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := testPolicy()
			tt.policy(&p)
			h := newHarness(t, p)
			h.start(t)
			h.stock("alice", "a1", 100)
			h.stock("bob", "b1", 300)

			h.join(t, "alice", "a1")
			r := h.join(t, "bob", "b1")

			assert.Equal(t, domain.RoundStatusDrawing, r.Status)
			locked, ok := h.events.Last(event.RoundLocked)
			require.True(t, ok)
			assert.Equal(t, tt.trigger, locked.Payload.(event.RoundLockedPayloadV1).Trigger)
			_, pending := h.timers.Delay(TimerKeyCountdown + r.Hash)
			assert.False(t, pending)
		})
	}
}

func TestContribute_AfterLockIsClosedAndPotUnchanged(t *testing.T) {
	h := newHarness(t, testPolicy())
	h.start(t)
	h.stock("alice", "a1", 100)
	h.stock("bob", "b1", 300)
	h.join(t, "alice", "a1")
	h.join(t, "bob", "b1")
	require.NoError(t, h.svc.ForceLock(context.Background()))
	before := h.svc.Current(context.Background())

	_, err := h.svc.Contribute(context.Background(), domain.Identity{ID: "carol"}, ContributeRequest{ItemIDs: []string{"c1"}})
	assert.ErrorIs(t, err, domain.ErrRoundClosed)
	h.checker.AssertNotCalled(t, "Check", mock.Anything, "carol", "c1")

	after := h.svc.Current(context.Background())
	assert.Equal(t, before.TotalValue, after.TotalValue)
	assert.Equal(t, before.Revision, after.Revision)
}

func TestContribute_DuplicateReportedBeforeClosed(t *testing.T) {
	h := newHarness(t, testPolicy())
	h.start(t)
	h.stock("alice", "a1", 100)
	h.join(t, "alice", "a1")

	_, err := h.svc.Contribute(context.Background(), domain.Identity{ID: "alice"}, ContributeRequest{ItemIDs: []string{"a1"}})
	assert.ErrorIs(t, err, domain.ErrDuplicateContribution)

	require.NoError(t, h.svc.ForceLock(context.Background()))
	_, err = h.svc.Contribute(context.Background(), domain.Identity{ID: "alice"}, ContributeRequest{ItemIDs: []string{"a1"}})
	assert.ErrorIs(t, err, domain.ErrDuplicateContribution)
}

func TestContribute_LockDuringValuation(t *testing.T) {
	h := newHarness(t, testPolicy())
	h.start(t)
	h.stock("alice", "a1", 100)
	h.join(t, "alice", "a1")

	// Lock the round while carol's item is being valued
	h.checker.On("Check", mock.Anything, "carol", "c1").
		Run(func(mock.Arguments) { require.NoError(t, h.svc.ForceLock(context.Background())) }).
		Return(domain.Item{ID: "c1", Value: 500}, nil)

	_, err := h.svc.Contribute(context.Background(), domain.Identity{ID: "carol"}, ContributeRequest{ItemIDs: []string{"c1"}})
	assert.ErrorIs(t, err, domain.ErrRoundClosed)

	r := h.svc.Current(context.Background())
	assert.Equal(t, domain.Cents(100), r.TotalValue)
	assert.Len(t, r.Participants, 1)
}

func TestForceLock_EmptyPotAbortsAndReopens(t *testing.T) {
	h := newHarness(t, testPolicy())
	first := h.start(t)

	err := h.svc.ForceLock(context.Background())
	assert.ErrorIs(t, err, domain.ErrEmptyPot)

	assert.Equal(t, []event.Type{
		event.RoundOpened,
		event.RoundLocked,
		event.RoundAborted,
		event.RoundOpened,
	}, h.events.Types())

	aborted, _ := h.events.Last(event.RoundAborted)
	payload := aborted.Payload.(event.RoundAbortedPayloadV1)
	assert.Equal(t, first.Hash, payload.RoundHash)
	assert.Equal(t, domain.ErrMsgEmptyPot, payload.Reason)
	assert.False(t, payload.Halted)

	next := h.svc.Current(context.Background())
	assert.Equal(t, domain.RoundStatusOpen, next.Status)
	assert.Equal(t, int64(2), next.Sequence)
	assert.NotEqual(t, first.Commitment, next.Commitment)

	count, err := h.store.Count(context.Background())
	require.NoError(t, err)
	assert.Zero(t, count, "aborted rounds are not archived")
}

func TestForceLock_NotOpen(t *testing.T) {
	h := newHarness(t, testPolicy())
	h.start(t)
	h.stock("alice", "a1", 100)
	h.join(t, "alice", "a1")
	require.NoError(t, h.svc.ForceLock(context.Background()))

	assert.ErrorIs(t, h.svc.ForceLock(context.Background()), domain.ErrRoundClosed)
}

func TestObservers_SeeSameDrawingView(t *testing.T) {
	h := newHarness(t, testPolicy())
	h.start(t)
	h.stock("alice", "a1", 100)
	h.stock("bob", "b1", 300)
	h.join(t, "alice", "a1")
	h.join(t, "bob", "b1")
	require.NoError(t, h.svc.ForceLock(context.Background()))

	first := h.svc.Current(context.Background())
	second := h.svc.Current(context.Background())

	assert.Equal(t, first, second)
	require.NotNil(t, first.Reveal)
	assert.Equal(t, first.Reveal.StartAt, second.Reveal.StartAt)

	// Views are copies
	first.Participants[0].Weight = 0
	assert.Equal(t, domain.Cents(100), h.svc.Current(context.Background()).Participants[0].Weight)
}

func TestCompletion_HappensOnce(t *testing.T) {
	h := newHarness(t, testPolicy())
	h.start(t)
	h.stock("alice", "a1", 100)
	h.join(t, "alice", "a1")
	require.NoError(t, h.svc.ForceLock(context.Background()))
	hash := h.svc.Current(context.Background()).Hash

	var wg sync.WaitGroup
	for i := 0; i < 5; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			h.svc.complete(context.Background(), hash)
		}()
	}
	wg.Wait()

	count, err := h.store.Count(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 1, count)
	assert.Equal(t, 1, h.events.Count(event.RoundCompleted))
}

func TestConcurrentLockTriggers_DrawOnce(t *testing.T) {
	h := newHarness(t, testPolicy())
	h.start(t)
	h.stock("alice", "a1", 100)
	h.stock("bob", "b1", 100)
	h.join(t, "alice", "a1")
	h.join(t, "bob", "b1")
	key := h.countdownKey()

	var wg sync.WaitGroup
	wg.Add(2)
	go func() {
		defer wg.Done()
		h.timers.Fire(key)
	}()
	go func() {
		defer wg.Done()
		_ = h.svc.ForceLock(context.Background())
	}()
	wg.Wait()

	assert.Equal(t, 1, h.events.Count(event.RoundLocked))
	assert.Equal(t, 1, h.events.Count(event.DrawScheduled))
}

func TestConcurrentContributions(t *testing.T) {
	p := testPolicy()
	p.MinParticipants = 1000
	h := newHarness(t, p)
	h.start(t)

	const users = 25
	for i := 0; i < users; i++ {
		h.stock(fmt.Sprintf("u%d", i), fmt.Sprintf("item-%d", i), domain.Cents(i+1))
	}

	var wg sync.WaitGroup
	for i := 0; i < users; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_, err := h.svc.Contribute(context.Background(), domain.Identity{ID: fmt.Sprintf("u%d", i)},
				ContributeRequest{ItemIDs: []string{fmt.Sprintf("item-%d", i)}})
			assert.NoError(t, err)
		}(i)
	}
	wg.Wait()

	r := h.svc.Current(context.Background())
	assert.Len(t, r.Participants, users)
	assert.Equal(t, domain.Cents(users*(users+1)/2), r.TotalValue)

	colors := make(map[string]bool)
	for _, part := range r.Participants {
		colors[part.Color] = true
	}
	assert.Len(t, colors, users)
}

func wrongTicket(seed, nonce, hash string, entries []domain.WeightEntry) (fairness.Outcome, error) {
	out, err := fairness.Draw(seed, nonce, hash, entries)
	if err != nil {
		return out, err
	}
	out.Ticket = (out.Ticket + 1) % int64(out.Total)
	return out, nil
}

func TestVerificationMismatch_HaltsUntilResume(t *testing.T) {
	h := newHarness(t, testPolicy())
	h.start(t)
	h.svc.drawFn = wrongTicket
	h.stock("alice", "a1", 100)
	h.stock("bob", "b1", 300)
	h.stock("carol", "c1", 50)
	h.join(t, "alice", "a1")
	h.join(t, "bob", "b1")
	ctx := context.Background()

	require.NoError(t, h.svc.ForceLock(ctx))

	assert.True(t, h.svc.Halted())
	r := h.svc.Current(ctx)
	assert.Equal(t, domain.RoundStatusAborted, r.Status)
	assert.Empty(t, r.WinnerID)
	assert.Zero(t, h.events.Count(event.DrawScheduled), "a failed draw is never announced")

	aborted, ok := h.events.Last(event.RoundAborted)
	require.True(t, ok)
	payload := aborted.Payload.(event.RoundAbortedPayloadV1)
	assert.True(t, payload.Halted)
	assert.Equal(t, domain.ErrMsgVerificationMismatch, payload.Reason)

	_, err := h.svc.Contribute(ctx, domain.Identity{ID: "carol"}, ContributeRequest{ItemIDs: []string{"c1"}})
	assert.ErrorIs(t, err, domain.ErrEngineHalted)
	assert.ErrorIs(t, h.svc.ForceLock(ctx), domain.ErrEngineHalted)

	// an item of the aborted round is still a duplicate while halted
	_, err = h.svc.Contribute(ctx, domain.Identity{ID: "alice"}, ContributeRequest{ItemIDs: []string{"a1"}})
	assert.ErrorIs(t, err, domain.ErrDuplicateContribution)

	h.svc.drawFn = fairness.Draw
	require.NoError(t, h.svc.Resume(ctx))
	assert.False(t, h.svc.Halted())
	next := h.svc.Current(ctx)
	assert.Equal(t, domain.RoundStatusOpen, next.Status)
	assert.NotEqual(t, r.Hash, next.Hash)

	h.join(t, "carol", "c1")
	assert.ErrorIs(t, h.svc.Resume(ctx), domain.ErrNotHalted)
}

func TestArchiveFailure_StillCompletesAndReopens(t *testing.T) {
	store := &MockStore{}
	store.On("LatestSequence", mock.Anything).Return(int64(0), nil)
	store.On("Walk", mock.Anything, mock.Anything).Return(nil)
	store.On("Append", mock.Anything, mock.Anything).Return(errors.New("connection reset"))

	checker := &MockChecker{}
	checker.On("Check", mock.Anything, "alice", "a1").Return(domain.Item{ID: "a1", Value: 100}, nil)
	bus := event.NewMemoryBus()
	events := newEventRecorder(bus)
	timers := newFakeScheduler()

	svc := newService(testPolicy(), store, checker, bus, timers)
	svc.retry = archive.RetryPolicy{Attempts: 3, BaseDelay: time.Millisecond}
	ctx := context.Background()
	require.NoError(t, svc.Start(ctx))
	_, err := svc.Contribute(ctx, domain.Identity{ID: "alice"}, ContributeRequest{ItemIDs: []string{"a1"}})
	require.NoError(t, err)
	require.NoError(t, svc.ForceLock(ctx))

	require.True(t, timers.Fire(TimerKeyComplete+svc.Current(ctx).Hash))

	store.AssertNumberOfCalls(t, "Append", 3)
	assert.Equal(t, 1, events.Count(event.RoundCompleted))
	assert.Equal(t, domain.RoundStatusOpen, svc.Current(ctx).Status)
}

func TestShutdown_SettlesDrawingRound(t *testing.T) {
	h := newHarness(t, testPolicy())
	h.start(t)
	h.stock("alice", "a1", 100)
	h.join(t, "alice", "a1")
	require.NoError(t, h.svc.ForceLock(context.Background()))
	hash := h.svc.Current(context.Background()).Hash

	require.NoError(t, h.svc.Shutdown(context.Background()))

	r := h.svc.Current(context.Background())
	assert.Equal(t, hash, r.Hash, "no round opens after shutdown")
	assert.Equal(t, domain.RoundStatusCompleted, r.Status)
	_, err := h.store.Get(context.Background(), hash)
	assert.NoError(t, err)

	_, err = h.svc.Contribute(context.Background(), domain.Identity{ID: "bob"}, ContributeRequest{ItemIDs: []string{"b1"}})
	assert.ErrorIs(t, err, domain.ErrEngineStopped)

	_, err = h.svc.Contribute(context.Background(), domain.Identity{ID: "alice"}, ContributeRequest{ItemIDs: []string{"a1"}})
	assert.ErrorIs(t, err, domain.ErrDuplicateContribution)
}

func TestShutdown_AbortsOpenRound(t *testing.T) {
	h := newHarness(t, testPolicy())
	h.start(t)
	h.stock("alice", "a1", 100)
	h.stock("bob", "b1", 100)
	h.join(t, "alice", "a1")
	h.join(t, "bob", "b1")

	require.NoError(t, h.svc.Shutdown(context.Background()))

	r := h.svc.Current(context.Background())
	assert.Equal(t, domain.RoundStatusAborted, r.Status)
	assert.Equal(t, domain.ErrMsgEngineStopped, r.AbortReason)
	assert.False(t, h.timers.Fire(TimerKeyCountdown+r.Hash), "countdown is cancelled")
	assert.ErrorIs(t, h.svc.Resume(context.Background()), domain.ErrEngineStopped)
}

func TestHistory_Pagination(t *testing.T) {
	h := newHarness(t, testPolicy())
	h.start(t)
	ctx := context.Background()

	for i := 0; i < 3; i++ {
		id := fmt.Sprintf("a%d", i)
		h.stock("alice", id, 100)
		h.join(t, "alice", id)
		require.NoError(t, h.svc.ForceLock(ctx))
		require.True(t, h.timers.Fire(h.completeKey()))
	}

	page, err := h.svc.History(ctx, 2, 0)
	require.NoError(t, err)
	assert.Equal(t, 3, page.Total)
	require.Len(t, page.Entries, 2)
	assert.Equal(t, int64(3), page.Entries[0].Round.Sequence)
	assert.Equal(t, int64(2), page.Entries[1].Round.Sequence)

	page, err = h.svc.History(ctx, 0, -5)
	require.NoError(t, err)
	assert.Equal(t, archive.DefaultPageSize, page.Limit)
	assert.Equal(t, 0, page.Offset)

	_, err = h.svc.HistoryEntry(ctx, "missing")
	assert.ErrorIs(t, err, domain.ErrRoundNotFound)
	_, err = h.svc.VerifyRound(ctx, "missing")
	assert.ErrorIs(t, err, domain.ErrRoundNotFound)
}

func TestCommission(t *testing.T) {
	tests := []struct {
		total domain.Cents
		bps   int
		want  domain.Cents
	}{
		{400, 500, 20},
		{399, 500, 19},
		{1, 500, 0},
		{100, 0, 0},
		{100, 10000, 100},
		{0, 500, 0},
		{domain.Cents(1 << 62), 9999, domain.Cents(1<<62)/10000*9999 + 7903},
	}
	for _, tt := range tests {
		t.Run(fmt.Sprintf("%d@%d", tt.total, tt.bps), func(t *testing.T) {
			assert.Equal(t, tt.want, Commission(tt.total, tt.bps))
		})
	}
}

func TestPolicy_Validate(t *testing.T) {
	assert.NoError(t, DefaultPolicy().Validate())

	bad := []func(*Policy){
		func(p *Policy) { p.MinParticipants = 0 },
		func(p *Policy) { p.Countdown = -time.Second },
		func(p *Policy) { p.MaxItemsPerDeposit = 0 },
		func(p *Policy) { p.CommissionBps = 10001 },
		func(p *Policy) { p.MaxParticipants = 1 },
		func(p *Policy) { p.MaxPot = -1 },
	}
	for i, mutate := range bad {
		p := DefaultPolicy()
		mutate(&p)
		assert.ErrorIs(t, p.Validate(), domain.ErrInvalidInput, "case %d", i)
	}
}
