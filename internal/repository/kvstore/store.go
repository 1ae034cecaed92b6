package kvstore

import (
	"log/slog"
	"sync"
	"time"

	"campusevents/internal/domain"
)

// Store is a domain.AccountStore over a Backend.
//
// mu serializes every read-modify-write within this process. Two processes
// sharing one backend can still overwrite each other's changes.
type Store struct {
	mu       sync.Mutex
	users    *Collection[[]*domain.UserProfile]
	creds    *Collection[[]*domain.Credential]
	events   *Collection[[]*domain.Event]
	requests *Collection[[]*domain.OrganizerRequest]
	now      func() time.Time
}

// NewStore returns a Store on backend. A nil logger discards storage errors.
func NewStore(backend Backend, logger *slog.Logger) *Store {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &Store{
		users:    NewCollection[[]*domain.UserProfile](backend, domain.CollectionUsers, logger),
		creds:    NewCollection[[]*domain.Credential](backend, domain.CollectionCredentials, logger),
		events:   NewCollection[[]*domain.Event](backend, domain.CollectionEvents, logger),
		requests: NewCollection[[]*domain.OrganizerRequest](backend, domain.CollectionOrganizerRequests, logger),
		now:      utcNow,
	}
}

var _ domain.AccountStore = (*Store)(nil)

// utcNow matches what a JSON round trip gives back.
func utcNow() time.Time { return time.Now().UTC().Truncate(time.Microsecond) }

func (s *Store) Users() domain.UserRepository             { return &userRepository{s: s} }
func (s *Store) Credentials() domain.CredentialRepository { return &credentialRepository{s: s} }
func (s *Store) Events() domain.EventRepository           { return &eventRepository{s: s} }
func (s *Store) OrganizerRequests() domain.OrganizerRequestRepository {
	return &organizerRequestRepository{s: s}
}

var seedTime = time.Date(2024, time.January, 1, 0, 0, 0, 0, time.UTC)

// SeedUserIDs are the ids of the profiles present in a never-written store.
const (
	SeedSuperAdminID  = "super_admin"
	SeedAttendeeID    = "user_01"
	SeedInstitutionID = "inst_01"
)

// seedUsers returns a fresh copy of the initial accounts on every call.
func seedUsers() []*domain.UserProfile {
	return []*domain.UserProfile{
		{
			ID:        SeedSuperAdminID,
			Name:      "Platform Admin",
			Role:      domain.RoleSuperAdmin,
			Avatar:    domain.DefaultAvatar("Admin"),
			CreatedAt: seedTime,
			UpdatedAt: seedTime,
		},
		{
			ID:        SeedAttendeeID,
			Name:      "Rohan (User)",
			Email:     "rohan@buildforge.io",
			Role:      domain.RoleUser,
			Avatar:    domain.DefaultAvatar("Rohan"),
			Bio:       "Tech enthusiast attending events.",
			CreatedAt: seedTime,
			UpdatedAt: seedTime,
		},
		{
			ID:        SeedInstitutionID,
			Name:      "Tech Institute",
			Email:     "admin@institute.edu",
			Role:      domain.RoleInstitution,
			Avatar:    domain.DefaultAvatar("Tech Institute"),
			CreatedAt: seedTime,
			UpdatedAt: seedTime,
		},
	}
}
