package org

import (
	"time"

	"github.com/google/uuid"
)

// PlaceholderEIN is the schema default carried by legacy rows only. Real
// registrations always persist a caller-supplied EIN; the placeholder is never
// exposed through the API.
const PlaceholderEIN = "00-0000000"

// Organization is one registered nonprofit. Email, EIN, and ShortCode are
// globally unique; the directory store enforces all three atomically.
type Organization struct {
	ID           uuid.UUID
	Name         string
	Email        string
	PasswordHash []byte
	Verified     bool
	CharityID    string
	ShortCode    string
	TargetURL    string
	EIN          string
	QRCode       string
	CreatedAt    time.Time
}

// RegisterRequest carries the five caller-supplied registration fields.
type RegisterRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
	LongURL  string `json:"long_url"`
	EIN      string `json:"ein"`
}

// RegisterResult is returned on successful registration. The password hash
// never leaves the service.
type RegisterResult struct {
	ID          uuid.UUID
	Name        string
	Email       string
	ShortCode   string
	ShortURL    string
	QRCode      string
	AccessToken string
}
