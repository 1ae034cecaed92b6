package domain

import (
	"context"
	"errors"
	"io"
	"time"
)

// ErrMediaDisabled is returned by image uploads when no media store is configured.
var ErrMediaDisabled = errors.New("media uploads disabled")

// Event represents a campus event. ID is assigned by the store at creation.
// swagger:model Event
type Event struct {
	ID               string    `json:"id"`
	OrganizerID      string    `json:"organizer_id,omitempty"`
	Title            string    `json:"title"`
	Date             string    `json:"date"`
	Time             string    `json:"time"`
	Location         string    `json:"location"`
	Description      string    `json:"description"`
	ImageURL         string    `json:"image_url"`
	RegistrationLink string    `json:"registration_link"`
	MapEmbedURL      string    `json:"map_embed_url,omitempty"`
	SheetLink        string    `json:"sheet_link,omitempty"`
	CreatedAt        time.Time `json:"created_at"`
}

// EventInput holds the organizer-supplied event fields.
type EventInput struct {
	Title            string
	Date             string
	Time             string
	Location         string
	Description      string
	ImageURL         string
	RegistrationLink string
	MapEmbedURL      string
	SheetLink        string
}

// EventRepository defines the interface for dynamic event storage.
type EventRepository interface {
	Create(ctx context.Context, event *Event) error
	GetByID(ctx context.Context, id string) (*Event, error)
	// List returns events in creation order.
	List(ctx context.Context) ([]*Event, error)
	ListByOrganizerID(ctx context.Context, organizerID string) ([]*Event, error)
}

// MediaStore stores uploaded event media and returns a public URL.
type MediaStore interface {
	Upload(ctx context.Context, key, contentType string, body io.Reader) (url string, err error)
}

// ImageUpload is an uploaded poster image.
type ImageUpload struct {
	Filename    string
	ContentType string
	Body        io.Reader
}

// CatalogService defines the event catalog.
type CatalogService interface {
	CreateEvent(ctx context.Context, organizerID string, in EventInput) (*Event, error)
	// ListEvents returns seed events first, then created events in creation order.
	ListEvents(ctx context.Context) ([]*Event, error)
	ListByOrganizer(ctx context.Context, organizerID string) ([]*Event, error)
	// GetEvent returns nil, nil when no event has the id.
	GetEvent(ctx context.Context, id string) (*Event, error)
	UploadEventImage(ctx context.Context, organizerID string, img ImageUpload) (string, error)
}
