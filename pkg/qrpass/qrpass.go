// Package qrpass mints the opaque tokens embedded in guest QR codes and
// renders them as PNG. Tokens are random UUIDs stored next to the guest row;
// they are deliberately decoupled from primary keys so a QR payload cannot
// be guessed by enumerating ids.
package qrpass

import (
	"github.com/google/uuid"
	qrcode "github.com/skip2/go-qrcode"
)

// PNGSize is the edge length of generated QR images in pixels.
const PNGSize = 256

// NewToken returns a fresh opaque QR token.
func NewToken() string {
	return uuid.NewString()
}

// EncodePNG renders the token as a QR PNG.
func EncodePNG(token string) ([]byte, error) {
	return qrcode.Encode(token, qrcode.Medium, PNGSize)
}
