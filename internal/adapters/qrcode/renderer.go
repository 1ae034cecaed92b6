package qrcode

import (
	"fmt"

	goqrcode "github.com/skip2/go-qrcode"

	"campusevents/internal/domain"
)

// EncodeFunc matches goqrcode.Encode so tests can swap the encoder.
type EncodeFunc func(content string, level goqrcode.RecoveryLevel, size int) ([]byte, error)

// Renderer renders ticket codes as PNG QR codes.
type Renderer struct {
	encode EncodeFunc
	level  goqrcode.RecoveryLevel
}

var _ domain.QRRenderer = (*Renderer)(nil)

// NewRenderer returns a renderer using medium error correction.
func NewRenderer() *Renderer {
	return &Renderer{encode: goqrcode.Encode, level: goqrcode.Medium}
}

func (r *Renderer) PNG(content string, size int) ([]byte, error) {
	png, err := r.encode(content, r.level, size)
	if err != nil {
		return nil, fmt.Errorf("failed to encode qr code: %w", err)
	}
	return png, nil
}
