package services

import (
	"context"
	"fmt"
	"strings"

	"campusevents/internal/domain"
)

// Placeholder values returned by the scan stub.
const (
	stubEventTitle   = "Tech Summit 2024"
	stubAttendeeName = "John Doe"
)

// QR code pixel sizes.
const (
	DefaultQRSize = 256
	MinQRSize     = 64
	MaxQRSize     = 1024
)

type ticketService struct {
	qr domain.QRRenderer
}

// NewTicketService returns the ticket scan stub. There is no ticket ledger:
// codes are classified by content alone.
func NewTicketService(qr domain.QRRenderer) domain.TicketService {
	return &ticketService{qr: qr}
}

func (s *ticketService) Validate(_ context.Context, code string) (*domain.TicketValidation, error) {
	if !strings.Contains(code, "TICKET") {
		return &domain.TicketValidation{Status: domain.TicketInvalid}, nil
	}
	if strings.Contains(code, "USED") {
		return &domain.TicketValidation{Status: domain.TicketUsed, EventTitle: stubEventTitle}, nil
	}
	return &domain.TicketValidation{
		Status:       domain.TicketValid,
		IsValid:      true,
		AttendeeName: stubAttendeeName,
		EventTitle:   stubEventTitle,
	}, nil
}

// RenderQR renders code as a PNG. size 0 means DefaultQRSize; other sizes are
// clamped to [MinQRSize, MaxQRSize].
func (s *ticketService) RenderQR(code string, size int) ([]byte, error) {
	if strings.TrimSpace(code) == "" {
		return nil, fmt.Errorf("ticket code is required: %w", domain.ErrInvalidInput)
	}
	switch {
	case size == 0:
		size = DefaultQRSize
	case size < MinQRSize:
		size = MinQRSize
	case size > MaxQRSize:
		size = MaxQRSize
	}
	png, err := s.qr.PNG(code, size)
	if err != nil {
		// go-qrcode only fails on content it cannot fit in a symbol.
		return nil, fmt.Errorf("ticket code cannot be encoded: %w: %w", domain.ErrInvalidInput, err)
	}
	return png, nil
}
