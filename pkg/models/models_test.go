package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestVideoMetadata_DisplayTitle(t *testing.T) {
	var nilMeta *VideoMetadata
	assert.Equal(t, "Video", nilMeta.DisplayTitle())
	assert.Equal(t, "Video", (&VideoMetadata{}).DisplayTitle())
	assert.Equal(t, "Never Gonna", (&VideoMetadata{Title: "Never Gonna"}).DisplayTitle())
}
