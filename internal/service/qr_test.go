package service

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCreateQRCode(t *testing.T) {
	svc := NewQRCodeService()

	data, err := svc.CreateQRCode("https://t.me/test_bot?startapp=collection%7Cabc")
	require.NoError(t, err)
	require.NotEmpty(t, data)

	// PNG-сигнатура
	assert.Equal(t, []byte{0x89, 'P', 'N', 'G', '\r', '\n', 0x1a, '\n'}, data[:8])
}

func TestCreateQRCode_DiffersByPayload(t *testing.T) {
	svc := NewQRCodeService()

	a, err := svc.CreateQRCode("payload-a")
	require.NoError(t, err)
	b, err := svc.CreateQRCode("payload-b")
	require.NoError(t, err)

	assert.NotEqual(t, a, b)
}
