package kvstore

import (
	"context"

	"github.com/google/uuid"

	"campusevents/internal/domain"
)

type organizerRequestRepository struct {
	s *Store
}

func (r *organizerRequestRepository) Create(ctx context.Context, req *domain.OrganizerRequest) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	reqs := r.s.requests.ReadOrSeed(ctx, nil)
	if req.ID == "" {
		req.ID = uuid.NewString()
	}
	if req.Status == "" {
		req.Status = domain.RequestPending
	}
	if req.CreatedAt.IsZero() {
		req.CreatedAt = r.s.now()
	}
	cp := *req
	r.s.requests.Write(ctx, append(reqs, &cp))
	return nil
}

func (r *organizerRequestRepository) GetByID(ctx context.Context, id string) (*domain.OrganizerRequest, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, req := range r.s.requests.ReadOrSeed(ctx, nil) {
		if req.ID == id {
			return req, nil
		}
	}
	return nil, domain.ErrNotFound
}

func (r *organizerRequestRepository) List(ctx context.Context) ([]*domain.OrganizerRequest, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	return r.s.requests.ReadOrSeed(ctx, nil), nil
}

func (r *organizerRequestRepository) UpdateStatus(ctx context.Context, id string, status domain.OrganizerRequestStatus) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	reqs := r.s.requests.ReadOrSeed(ctx, nil)
	for _, req := range reqs {
		if req.ID == id {
			req.Status = status
			r.s.requests.Write(ctx, reqs)
			return nil
		}
	}
	return domain.ErrNotFound
}
