package model_test

import (
	"testing"

	"github.com/dangerclosesec/tabbedjournal/internal/model"
	"github.com/stretchr/testify/assert"
)

func TestSlugify(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"simple", "Family Updates", "family-updates"},
		{"punctuation dropped", "Family & Friends!", "family-friends"},
		{"accents folded", "Crème Brûlée", "creme-brulee"},
		{"hyphen runs collapse", "a -- b", "a-b"},
		{"underscore kept", "road_trip 2024", "road_trip-2024"},
		{"empty falls back", "!!!", "tab"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, model.Slugify(tt.in))
		})
	}
}

func TestSlugCandidate(t *testing.T) {
	assert.Equal(t, "family-updates", model.SlugCandidate("family-updates", 1))
	assert.Equal(t, "family-updates-2", model.SlugCandidate("family-updates", 2))
	assert.Equal(t, "family-updates-3", model.SlugCandidate("family-updates", 3))
}

func TestNormalizeTabName(t *testing.T) {
	assert.Equal(t, "Family Updates", model.NormalizeTabName("  Family \t  Updates \n"))
	assert.Equal(t, "", model.NormalizeTabName("   "))
}
