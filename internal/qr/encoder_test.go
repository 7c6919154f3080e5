package qr

import (
	"bytes"
	"encoding/base64"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var pngMagic = []byte{0x89, 'P', 'N', 'G'}

func TestEncode_ProducesBase64PNG(t *testing.T) {
	enc := NewEncoder()

	payload, err := enc.Encode("https://give.example.org/abcd1234")
	require.NoError(t, err)

	raw, err := base64.StdEncoding.DecodeString(payload)
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(raw, pngMagic), "payload must decode to a PNG")
}

func TestEncode_EmptyTextFails(t *testing.T) {
	enc := NewEncoder()
	_, err := enc.Encode("")
	assert.Error(t, err)
}
