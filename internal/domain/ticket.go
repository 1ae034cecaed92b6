package domain

import "context"

// TicketStatus is the classification of a scanned code.
type TicketStatus string

const (
	TicketValid   TicketStatus = "VALID"
	TicketInvalid TicketStatus = "INVALID"
	TicketUsed    TicketStatus = "USED"
)

// TicketValidation is the derived, unpersisted result of a scan.
// swagger:model TicketValidation
type TicketValidation struct {
	Status       TicketStatus `json:"status"`
	IsValid      bool         `json:"is_valid"`
	AttendeeName string       `json:"attendee_name,omitempty"`
	EventTitle   string       `json:"event_title,omitempty"`
}

// QRRenderer renders content as a PNG QR code of the given pixel size.
type QRRenderer interface {
	PNG(content string, size int) ([]byte, error)
}

// TicketService defines door scanning.
type TicketService interface {
	Validate(ctx context.Context, code string) (*TicketValidation, error)
	RenderQR(code string, size int) ([]byte, error)
}
