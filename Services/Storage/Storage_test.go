package storage

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestObjectKey(t *testing.T) {
	key := objectKey(KindVideo, "clip.mp4")
	assert.True(t, strings.HasPrefix(key, "videos/"))
	assert.True(t, strings.HasSuffix(key, ".mp4"))

	key = objectKey(KindThumbnail, "thumb.jpg")
	assert.True(t, strings.HasPrefix(key, "thumbnails/"))

	key = objectKey(KindLogo, "logo.png")
	assert.True(t, strings.HasPrefix(key, "logos/"))

	// No extension on the source filename is fine.
	key = objectKey(KindLogo, "logo")
	assert.True(t, strings.HasPrefix(key, "logos/"))
	assert.False(t, strings.Contains(key, "."))

	// Keys are unique per upload.
	assert.NotEqual(t, objectKey(KindVideo, "a.mp4"), objectKey(KindVideo, "a.mp4"))
}

func TestNewS3GatewayRequiresConfig(t *testing.T) {
	_, err := NewS3Gateway(context.Background(), Config{})
	require.Error(t, err)
}
