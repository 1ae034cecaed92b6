package kvstore

import (
	"context"

	"github.com/google/uuid"

	"campusevents/internal/domain"
)

type eventRepository struct {
	s *Store
}

func (r *eventRepository) Create(ctx context.Context, event *domain.Event) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	events := r.s.events.ReadOrSeed(ctx, nil)
	if event.ID == "" {
		event.ID = uuid.NewString()
	}
	if event.CreatedAt.IsZero() {
		event.CreatedAt = r.s.now()
	}
	cp := *event
	r.s.events.Write(ctx, append(events, &cp))
	return nil
}

func (r *eventRepository) GetByID(ctx context.Context, id string) (*domain.Event, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, e := range r.s.events.ReadOrSeed(ctx, nil) {
		if e.ID == id {
			return e, nil
		}
	}
	return nil, domain.ErrNotFound
}

func (r *eventRepository) List(ctx context.Context) ([]*domain.Event, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	return r.s.events.ReadOrSeed(ctx, nil), nil
}

func (r *eventRepository) ListByOrganizerID(ctx context.Context, organizerID string) ([]*domain.Event, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	var out []*domain.Event
	for _, e := range r.s.events.ReadOrSeed(ctx, nil) {
		if e.OrganizerID == organizerID {
			out = append(out, e)
		}
	}
	return out, nil
}
