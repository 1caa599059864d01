package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "8080", cfg.Port)
	assert.Equal(t, "Asia/Tokyo", cfg.Timezone)
	assert.Equal(t, "12:30:00", cfg.VoteDeadline)
	assert.Equal(t, "/images/no-image.png", cfg.IconPlaceholder)
	assert.NotEmpty(t, cfg.AllowedOrigins)
}

func TestLoadOverrides(t *testing.T) {
	t.Setenv("PORT", "9000")
	t.Setenv("TIMEZONE", "UTC")
	t.Setenv("VOTE_DEADLINE", "18:00:00")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "9000", cfg.Port)
	assert.Equal(t, "UTC", cfg.Timezone)
	assert.Equal(t, "18:00:00", cfg.VoteDeadline)
}

func TestParseOrigins(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  []string
	}{
		{
			name:  "multiple origins",
			input: "http://a.example.com,http://b.example.com",
			want:  []string{"http://a.example.com", "http://b.example.com"},
		},
		{
			name:  "whitespace trimmed",
			input: " http://a.example.com , http://b.example.com ",
			want:  []string{"http://a.example.com", "http://b.example.com"},
		},
		{
			name:  "empty segments dropped",
			input: "http://a.example.com,,",
			want:  []string{"http://a.example.com"},
		},
		{
			name:  "empty string",
			input: "",
			want:  []string{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, parseOrigins(tt.input))
		})
	}
}
