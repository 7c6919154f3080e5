// Package qr renders short URLs into scannable images.
package qr

import (
	"encoding/base64"

	qrcode "github.com/skip2/go-qrcode"
)

const imageSize = 256

// Encoder produces base64-encoded PNG QR codes. Low recovery level keeps the
// image small; short URLs carry no payload worth armoring.
type Encoder struct{}

func NewEncoder() *Encoder {
	return &Encoder{}
}

func (e *Encoder) Encode(text string) (string, error) {
	png, err := qrcode.Encode(text, qrcode.Low, imageSize)
	if err != nil {
		return "", err
	}
	return base64.StdEncoding.EncodeToString(png), nil
}
