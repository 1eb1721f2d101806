package render

import (
	"encoding/base64"
	"fmt"

	"github.com/skip2/go-qrcode"
)

const (
	DefaultSize = 256
	MinSize     = 64
	MaxSize     = 1024
)

// Renderer turns a finished payload into an image.
type Renderer interface {
	Render(payload string) ([]byte, error)
}

// QRRenderer renders PNG QR codes.
type QRRenderer struct {
	size  int
	level qrcode.RecoveryLevel
}

func NewQRRenderer(size int) *QRRenderer {
	if size < MinSize || size > MaxSize {
		size = DefaultSize
	}
	return &QRRenderer{
		size:  size,
		level: qrcode.Medium,
	}
}

func (q *QRRenderer) Size() int {
	return q.size
}

func (q *QRRenderer) Render(payload string) ([]byte, error) {
	if payload == "" {
		return nil, fmt.Errorf("render: empty payload")
	}
	png, err := qrcode.Encode(payload, q.level, q.size)
	if err != nil {
		return nil, fmt.Errorf("render: encode qr code: %w", err)
	}
	return png, nil
}

// DataURL wraps png for direct use in an <img src>.
func DataURL(png []byte) string {
	return "data:image/png;base64," + base64.StdEncoding.EncodeToString(png)
}
