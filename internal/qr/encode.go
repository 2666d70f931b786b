// Package qr renders text as a QR code PNG and embeds it as a data URI.
package qr

import (
	"bytes"
	"encoding/base64"
	"errors"
	"fmt"
	"image"
	"image/color"
	"image/png"
	"strings"

	qrcode "github.com/skip2/go-qrcode"
	"golang.org/x/image/draw"
)

// DataURIPrefix starts every URI returned by DataURI.
const DataURIPrefix = "data:image/png;base64,"

const (
	DefaultBoxSize = 10
	DefaultBorder  = 2
)

// ErrPayloadTooLarge is returned when the text does not fit in the largest
// QR version at the configured recovery level.
var ErrPayloadTooLarge = errors.New("qr payload too large")

var palette = color.Palette{color.White, color.Black}

// Level is a QR error-correction level.
type Level = qrcode.RecoveryLevel

// ParseLevel maps a config value (low, medium, high, highest) to a Level.
func ParseLevel(value string) (Level, error) {
	switch strings.ToLower(strings.TrimSpace(value)) {
	case "", "low", "l":
		return qrcode.Low, nil
	case "medium", "m":
		return qrcode.Medium, nil
	case "high", "q":
		return qrcode.High, nil
	case "highest", "h":
		return qrcode.Highest, nil
	default:
		return qrcode.Low, fmt.Errorf("unknown QR error correction level %q", value)
	}
}

// Encoder renders QR symbols as black modules on a white background.
// The smallest symbol version that fits the payload is always chosen.
type Encoder struct {
	Level   Level
	BoxSize int // pixels per module
	Border  int // quiet zone width in modules
}

// NewEncoder returns an encoder with low error correction, 10px modules and
// a two-module border.
func NewEncoder() Encoder {
	return Encoder{Level: qrcode.Low, BoxSize: DefaultBoxSize, Border: DefaultBorder}
}

// Encode returns the rendered symbol for text.
func (e Encoder) Encode(text string) (image.Image, error) {
	code, err := qrcode.New(text, e.Level)
	if err != nil {
		return nil, fmt.Errorf("%w (%d bytes): %v", ErrPayloadTooLarge, len(text), err)
	}
	code.DisableBorder = true
	bitmap := code.Bitmap()

	box := e.BoxSize
	if box < 1 {
		box = DefaultBoxSize
	}
	border := e.Border
	if border < 0 {
		border = 0
	}

	modules := len(bitmap) + 2*border
	src := image.NewPaletted(image.Rect(0, 0, modules, modules), palette)
	for y, row := range bitmap {
		for x, dark := range row {
			if dark {
				src.SetColorIndex(x+border, y+border, 1)
			}
		}
	}

	if box == 1 {
		return src, nil
	}
	dst := image.NewPaletted(image.Rect(0, 0, modules*box, modules*box), palette)
	draw.NearestNeighbor.Scale(dst, dst.Bounds(), src, src.Bounds(), draw.Src, nil)
	return dst, nil
}

// PNG returns the rendered symbol encoded as PNG bytes.
func (e Encoder) PNG(text string) ([]byte, error) {
	img, err := e.Encode(text)
	if err != nil {
		return nil, err
	}
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		return nil, fmt.Errorf("encode png: %w", err)
	}
	return buf.Bytes(), nil
}

// DataURI returns the PNG symbol as a base64 data URI.
func (e Encoder) DataURI(text string) (string, error) {
	data, err := e.PNG(text)
	if err != nil {
		return "", err
	}
	return DataURIPrefix + base64.StdEncoding.EncodeToString(data), nil
}

// DecodeDataURI extracts the PNG bytes from a URI produced by DataURI.
func DecodeDataURI(uri string) ([]byte, error) {
	payload, ok := strings.CutPrefix(uri, DataURIPrefix)
	if !ok {
		return nil, errors.New("not a PNG data URI")
	}
	data, err := base64.StdEncoding.DecodeString(payload)
	if err != nil {
		return nil, fmt.Errorf("decode data uri: %w", err)
	}
	return data, nil
}
