package services

import (
	"mime/multipart"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSanitizePrefix(t *testing.T) {
	assert.Equal(t, "reject", sanitizePrefix("reject"))
	assert.Equal(t, "reject_42", sanitizePrefix("  Reject 42 "))
	assert.Equal(t, "cong-van_so", sanitizePrefix("Cong-Van/So"))
	assert.Equal(t, "file", sanitizePrefix(""))
	assert.Equal(t, "file", sanitizePrefix("   "))
}

func TestSaveRejectsBadUploads(t *testing.T) {
	storage := NewLocalFileStorage(t.TempDir())

	_, err := storage.Save(nil, "reject")
	var vErr *ValidationError
	require.ErrorAs(t, err, &vErr)

	_, err = storage.Save(&multipart.FileHeader{Filename: "virus.exe", Size: 100}, "reject")
	require.ErrorAs(t, err, &vErr)

	_, err = storage.Save(&multipart.FileHeader{Filename: "big.pdf", Size: maxUploadSize + 1}, "reject")
	require.ErrorAs(t, err, &vErr)
}
