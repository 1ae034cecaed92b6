package domain

// Collection keys shared by every AccountStore implementation.
const (
	CollectionUsers             = "users"
	CollectionCredentials       = "credentials"
	CollectionEvents            = "events"
	CollectionOrganizerRequests = "organizer_requests"
)

// AccountStore is the backend capability consumed by the services. The
// Postgres and key-value adapters both implement it.
type AccountStore interface {
	Users() UserRepository
	Credentials() CredentialRepository
	Events() EventRepository
	OrganizerRequests() OrganizerRequestRepository
}
