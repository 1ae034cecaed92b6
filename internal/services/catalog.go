package services

import (
	"context"
	"errors"
	"fmt"
	"path"
	"strings"
	"time"

	"github.com/google/uuid"

	"campusevents/internal/domain"
)

// DefaultEventImageURL is used when an event is created without an image.
const DefaultEventImageURL = "https://images.unsplash.com/photo-1540575467063-178a50c2df87?ixlib=rb-4.0.3"

const (
	seedRegistrationLink = "https://docs.google.com/forms"
	techSummitMapEmbed   = "https://www.google.com/maps/embed?pb=!1m18!1m12!1m3!1d3501.7615367683!2d77.2273!3d28.6369!2m3!1f0!2f0!3f0!3m2!1i1024!2i768!4f13.1!3m3!1m2!1s0x0%3A0x0!2zMjjCsDM4JzEyLjgiTiA3N8KwMTMnMzguMyJF!5e0!3m2!1sen!2sin!4v1632823829000!5m2!1sen!2sin"
)

// imageExtensions are the accepted poster content types.
var imageExtensions = map[string]string{
	"image/jpeg": ".jpg",
	"image/png":  ".png",
	"image/webp": ".webp",
	"image/gif":  ".gif",
}

// SeedEvents returns the built-in catalog listed ahead of created events.
func SeedEvents() []*domain.Event {
	return []*domain.Event{
		{
			ID:               "evt_01",
			Title:            "Tech Summit 2024",
			Date:             "Oct 25, 2024",
			Time:             "10:00 AM - 4:00 PM",
			Location:         "Main Auditorium, Innovation Block",
			Description:      "Join us for the biggest tech gathering of the year. Featuring speakers from Google, Microsoft, and leading startups. Topics include AI, Blockchain, and Future of Work.",
			ImageURL:         "https://images.unsplash.com/photo-1540575467063-178a50c2df87?ixlib=rb-4.0.3&auto=format&fit=crop&w=1000&q=80",
			RegistrationLink: seedRegistrationLink,
			MapEmbedURL:      techSummitMapEmbed,
		},
		{
			ID:               "evt_02",
			Title:            "Hackathon: Code for Good",
			Date:             "Nov 12, 2024",
			Time:             "9:00 AM (24 Hours)",
			Location:         "CS Dept Labs",
			Description:      "A 24-hour coding marathon to solve real-world problems. Great prizes and internship opportunities for winners.",
			ImageURL:         "https://images.unsplash.com/photo-1504384308090-c54be3855833?ixlib=rb-4.0.3&auto=format&fit=crop&w=1000&q=80",
			RegistrationLink: seedRegistrationLink,
		},
		{
			ID:               "evt_03",
			Title:            "Startup Pitch Night",
			Date:             "Nov 20, 2024",
			Time:             "6:00 PM - 8:00 PM",
			Location:         "Incubation Center",
			Description:      "Watch 10 selected startups pitch to VCs and Angel Investors. Networking dinner to follow.",
			ImageURL:         "https://images.unsplash.com/photo-1559223607-a43c990ed9bb?ixlib=rb-4.0.3&auto=format&fit=crop&w=1000&q=80",
			RegistrationLink: seedRegistrationLink,
		},
	}
}

type catalogService struct {
	store          domain.AccountStore
	media          domain.MediaStore
	contextTimeout time.Duration
	now            func() time.Time
}

// NewCatalogService creates the event catalog. media may be nil, which disables image uploads.
func NewCatalogService(store domain.AccountStore, media domain.MediaStore, timeout time.Duration) domain.CatalogService {
	return &catalogService{store: store, media: media, contextTimeout: timeout, now: storeNow}
}

func (s *catalogService) CreateEvent(ctx context.Context, organizerID string, in domain.EventInput) (*domain.Event, error) {
	ctx, cancel := withTimeout(ctx, s.contextTimeout)
	defer cancel()

	if err := s.requirePublisher(ctx, organizerID); err != nil {
		return nil, err
	}
	title := strings.TrimSpace(in.Title)
	if title == "" {
		return nil, fmt.Errorf("event title is required: %w", domain.ErrInvalidInput)
	}

	event := &domain.Event{
		OrganizerID:      organizerID,
		Title:            title,
		Date:             strings.TrimSpace(in.Date),
		Time:             strings.TrimSpace(in.Time),
		Location:         strings.TrimSpace(in.Location),
		Description:      in.Description,
		ImageURL:         strings.TrimSpace(in.ImageURL),
		RegistrationLink: strings.TrimSpace(in.RegistrationLink),
		MapEmbedURL:      strings.TrimSpace(in.MapEmbedURL),
		SheetLink:        strings.TrimSpace(in.SheetLink),
		CreatedAt:        s.now(),
	}
	if event.ImageURL == "" {
		event.ImageURL = DefaultEventImageURL
	}
	if err := s.store.Events().Create(ctx, event); err != nil {
		return nil, fmt.Errorf("failed to create event: %w", err)
	}
	return event, nil
}

// ListEvents returns the seed events followed by created events in creation
// order. A stored event reusing a seed id is skipped.
func (s *catalogService) ListEvents(ctx context.Context) ([]*domain.Event, error) {
	ctx, cancel := withTimeout(ctx, s.contextTimeout)
	defer cancel()

	seeds := SeedEvents()
	created, err := s.store.Events().List(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list events: %w", err)
	}
	seen := make(map[string]struct{}, len(seeds))
	for _, e := range seeds {
		seen[e.ID] = struct{}{}
	}
	out := seeds
	for _, e := range created {
		if _, dup := seen[e.ID]; dup {
			continue
		}
		out = append(out, e)
	}
	return out, nil
}

func (s *catalogService) ListByOrganizer(ctx context.Context, organizerID string) ([]*domain.Event, error) {
	ctx, cancel := withTimeout(ctx, s.contextTimeout)
	defer cancel()

	events, err := s.store.Events().ListByOrganizerID(ctx, organizerID)
	if err != nil {
		return nil, fmt.Errorf("failed to list organizer events: %w", err)
	}
	return events, nil
}

func (s *catalogService) GetEvent(ctx context.Context, id string) (*domain.Event, error) {
	ctx, cancel := withTimeout(ctx, s.contextTimeout)
	defer cancel()

	for _, e := range SeedEvents() {
		if e.ID == id {
			return e, nil
		}
	}
	event, err := s.store.Events().GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get event: %w", err)
	}
	return event, nil
}

// UploadEventImage stores a poster under events/{organizerID}/{uuid}{ext} and
// returns its public URL.
func (s *catalogService) UploadEventImage(ctx context.Context, organizerID string, img domain.ImageUpload) (string, error) {
	if s.media == nil {
		return "", domain.ErrMediaDisabled
	}
	ctx, cancel := withTimeout(ctx, s.contextTimeout)
	defer cancel()

	if err := s.requirePublisher(ctx, organizerID); err != nil {
		return "", err
	}
	contentType := strings.ToLower(strings.TrimSpace(strings.Split(img.ContentType, ";")[0]))
	ext, ok := imageExtensions[contentType]
	if !ok {
		return "", fmt.Errorf("unsupported image type %q: %w", img.ContentType, domain.ErrInvalidInput)
	}
	if ext == ".jpg" && strings.EqualFold(path.Ext(img.Filename), ".jpeg") {
		ext = ".jpeg"
	}
	key := "events/" + organizerID + "/" + uuid.NewString() + ext
	url, err := s.media.Upload(ctx, key, contentType, img.Body)
	if err != nil {
		return "", fmt.Errorf("failed to upload image: %w", err)
	}
	return url, nil
}

// requirePublisher checks that organizerID is an unblocked INSTITUTION account.
func (s *catalogService) requirePublisher(ctx context.Context, organizerID string) error {
	user, err := s.store.Users().GetByID(ctx, organizerID)
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			return domain.ErrForbidden
		}
		return fmt.Errorf("failed to get organizer: %w", err)
	}
	if !user.Role.CanPublishEvents() {
		return domain.ErrForbidden
	}
	if user.Blocked {
		return domain.ErrAccountBlocked
	}
	return nil
}
