package validate

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestEmail(t *testing.T) {
	cases := []struct {
		name  string
		input string
		want  bool
	}{
		{"plain address", "donations@redcross.org", true},
		{"subdomain and plus tag", "ops+intake@mail.charity.example.com", true},
		{"dotted local part", "first.last@example.io", true},
		{"empty", "", false},
		{"missing at sign", "donations.redcross.org", false},
		{"missing tld", "donations@redcross", false},
		{"single letter tld", "a@b.c", false},
		{"spaces", "don ations@redcross.org", false},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, Email(tc.input))
		})
	}
}

func TestURL(t *testing.T) {
	cases := []struct {
		name  string
		input string
		want  bool
	}{
		{"https", "https://donate.example.org/campaign", true},
		{"http with query", "http://example.org/give?ref=qr", true},
		{"empty", "", false},
		{"no scheme", "donate.example.org", false},
		{"scheme only", "https://", false},
		{"relative path", "/donate", false},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, URL(tc.input))
		})
	}
}

func TestEIN(t *testing.T) {
	cases := []struct {
		name  string
		input string
		want  bool
	}{
		{"well formed", "12-3456789", true},
		{"placeholder shape is still well formed", "00-0000000", true},
		{"empty", "", false},
		{"no hyphen", "123456789", false},
		{"short suffix", "12-345678", false},
		{"long suffix", "12-34567890", false},
		{"letters", "ab-cdefghi", false},
		{"leading whitespace", " 12-3456789", false},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, EIN(tc.input))
		})
	}
}
