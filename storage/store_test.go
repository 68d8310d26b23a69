package storage

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestObjectKey(t *testing.T) {
	key := ObjectKey("quote-attachments", "Site Photo.JPG")

	assert.True(t, strings.HasPrefix(key, "quote-attachments/"))
	assert.True(t, strings.HasSuffix(key, ".jpg"))

	// no extension falls back to .bin
	assert.True(t, strings.HasSuffix(ObjectKey("media", "README"), ".bin"))

	// keys are unique even for the same filename
	assert.NotEqual(t, key, ObjectKey("quote-attachments", "Site Photo.JPG"))
}

func TestGCSKeyFromURL(t *testing.T) {
	s := &GCSStore{bucket: "aws-assets"}

	key, err := s.KeyFromURL("https://storage.googleapis.com/aws-assets/media/1-abc.jpg")
	require.NoError(t, err)
	assert.Equal(t, "media/1-abc.jpg", key)

	key, err = s.KeyFromURL("https://aws-assets.storage.googleapis.com/media/1-abc.jpg")
	require.NoError(t, err)
	assert.Equal(t, "media/1-abc.jpg", key)

	_, err = s.KeyFromURL("https://storage.googleapis.com/other-bucket/media/1-abc.jpg")
	assert.Error(t, err)
}

func TestGCSPublicURL(t *testing.T) {
	s := &GCSStore{bucket: "aws-assets"}
	assert.Equal(t, "https://storage.googleapis.com/aws-assets/k.png", s.PublicURL("k.png"))
}

func TestR2KeyFromURL(t *testing.T) {
	s := &R2Store{bucket: "aws-assets", publicDomain: "https://cdn.auswindowshrouds.com.au"}

	key, err := s.KeyFromURL("https://cdn.auswindowshrouds.com.au/aws-assets/media/1-abc.jpg")
	require.NoError(t, err)
	assert.Equal(t, "media/1-abc.jpg", key)

	// r2.dev style fallback
	key, err = s.KeyFromURL("https://pub-123.r2.dev/media/1-abc.jpg")
	require.NoError(t, err)
	assert.Equal(t, "media/1-abc.jpg", key)

	_, err = s.KeyFromURL("not-a-url")
	assert.Error(t, err)
}
