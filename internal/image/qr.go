package imagepkg

import (
	"fmt"
	"image/color"

	qrcode "github.com/skip2/go-qrcode"
)

// GenerateQRPNG returns PNG bytes of a black-on-white QR code for text.
func GenerateQRPNG(text string, size int) ([]byte, error) {
	b, err := qrcode.Encode(text, qrcode.Medium, size)
	if err != nil {
		return nil, fmt.Errorf("encode qr: %w", err)
	}
	return b, nil
}

// GenerateBrandedQRPNG draws the QR modules in fg on a white field, used for
// the store listing badge next to the screenshots.
func GenerateBrandedQRPNG(text string, size int, fg color.Color) ([]byte, error) {
	q, err := qrcode.New(text, qrcode.Medium)
	if err != nil {
		return nil, fmt.Errorf("encode qr: %w", err)
	}
	q.ForegroundColor = opaque(fg)
	q.BackgroundColor = color.White
	b, err := q.PNG(size)
	if err != nil {
		return nil, fmt.Errorf("render qr: %w", err)
	}
	return b, nil
}
