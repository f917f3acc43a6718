package bookings

import (
	"context"
	"errors"
	"sort"
	"sync"
	"testing"
	"time"

	"villa/internal/availability"
)

type memoryRepo struct {
	mu       sync.Mutex
	bookings map[string]*Booking
	failWith error
}

func newMemoryRepo() *memoryRepo {
	return &memoryRepo{bookings: make(map[string]*Booking)}
}

func (r *memoryRepo) CreateBooking(_ context.Context, booking *Booking) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.failWith != nil {
		return r.failWith
	}
	cp := *booking
	r.bookings[booking.ID] = &cp
	return nil
}

func (r *memoryRepo) GetBookingByID(_ context.Context, id string) (*Booking, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	b, ok := r.bookings[id]
	if !ok {
		return nil, ErrNotFound
	}
	cp := *b
	return &cp, nil
}

func (r *memoryRepo) ListBookings(_ context.Context, query BookingListQuery) ([]Booking, int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var all []Booking
	for _, b := range r.bookings {
		if query.Status == "" || string(b.Status) == query.Status {
			all = append(all, *b)
		}
	}
	sort.Slice(all, func(i, j int) bool { return all[i].CreatedAt.After(all[j].CreatedAt) })

	total := int64(len(all))
	start := (query.Page - 1) * query.Limit
	if start > len(all) {
		start = len(all)
	}
	end := start + query.Limit
	if end > len(all) {
		end = len(all)
	}
	return all[start:end], total, nil
}

func (r *memoryRepo) TransitionStatus(_ context.Context, id string, from, to Status, decidedAt time.Time) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	b, ok := r.bookings[id]
	if !ok || b.Status != from {
		return false, nil
	}
	b.Status = to
	b.DecidedAt = &decidedAt
	return true, nil
}

func (r *memoryRepo) DeleteBooking(_ context.Context, id string) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.bookings[id]; !ok {
		return false, nil
	}
	delete(r.bookings, id)
	return true, nil
}

func (r *memoryRepo) AcceptedStays(_ context.Context) ([]availability.Stay, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.failWith != nil {
		return nil, r.failWith
	}
	var stays []availability.Stay
	for _, b := range r.bookings {
		if b.Status.BlocksDates() {
			stays = append(stays, availability.Stay{BookingID: b.ID, CheckIn: b.CheckIn, CheckOut: b.CheckOut})
		}
	}
	return stays, nil
}

func (r *memoryRepo) put(b Booking) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.bookings[b.ID] = &b
}

type staticContent struct {
	blocked []string
	pricing availability.Pricing
}

func (c *staticContent) BlockedDates(context.Context) ([]string, error) { return c.blocked, nil }
func (c *staticContent) Pricing(context.Context) (*availability.Pricing, error) {
	return &c.pricing, nil
}

type recordingHook struct {
	mu     sync.Mutex
	events []LifecycleEvent
	err    error
}

func (h *recordingHook) OnBookingEvent(_ context.Context, event LifecycleEvent) error {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.events = append(h.events, event)
	return h.err
}

func (h *recordingHook) last() LifecycleEvent {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.events[len(h.events)-1]
}

var errStorage = errors.New("connection refused")

// fixed clock: 2024-12-01 10:00 UTC
func freezeTime(t *testing.T) time.Time {
	t.Helper()
	now := time.Date(2024, 12, 1, 10, 0, 0, 0, time.UTC)
	prev := timeNow
	timeNow = func() time.Time { return now }
	t.Cleanup(func() { timeNow = prev })
	return now
}

type fixture struct {
	repo    *memoryRepo
	content *staticContent
	hook    *recordingHook
	svc     Service
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	freezeTime(t)

	repo := newMemoryRepo()
	content := &staticContent{
		blocked: []string{"2024-12-25"},
		pricing: availability.Pricing{DefaultPrice: 100},
	}
	hook := &recordingHook{}

	svc := NewService(repo, availability.NewService(content, repo, "EUR"), time.UTC)
	svc.SetPostCommitHook(hook)
	return &fixture{repo: repo, content: content, hook: hook, svc: svc}
}

func validRequest(checkIn, checkOut string) CreateBookingRequest {
	return CreateBookingRequest{
		Name:     "Ana García",
		Email:    "Ana@Example.com ",
		Guests:   2,
		CheckIn:  checkIn,
		CheckOut: checkOut,
	}
}
