package common

import (
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestGetServerHost(t *testing.T) {
	t.Run("returns default 127.0.0.1 when SR_SERVER_HOST unset", func(t *testing.T) {
		os.Unsetenv("SR_SERVER_HOST")
		assert.Equal(t, "127.0.0.1", GetServerHost())
	})

	t.Run("returns SR_SERVER_HOST when set", func(t *testing.T) {
		t.Setenv("SR_SERVER_HOST", "0.0.0.0")
		assert.Equal(t, "0.0.0.0", GetServerHost())
	})
}

func TestGetServerPort(t *testing.T) {
	t.Run("returns default 8855 when SR_SERVER_PORT unset", func(t *testing.T) {
		os.Unsetenv("SR_SERVER_PORT")
		assert.Equal(t, 8855, GetServerPort())
	})

	t.Run("returns SR_SERVER_PORT when set", func(t *testing.T) {
		t.Setenv("SR_SERVER_PORT", "9000")
		assert.Equal(t, 9000, GetServerPort())
	})

	t.Run("panics on garbage", func(t *testing.T) {
		t.Setenv("SR_SERVER_PORT", "eighty")
		assert.Panics(t, func() { GetServerPort() })
	})
}

func TestGetOllamaBaseURL(t *testing.T) {
	tests := []struct {
		value string
		want  string
	}{
		{"", ""},
		{"localhost:11434", "http://localhost:11434"},
		{"http://ollama:11434", "http://ollama:11434"},
		{"https://ollama.example.com", "https://ollama.example.com"},
	}

	for _, tt := range tests {
		t.Run(tt.value, func(t *testing.T) {
			t.Setenv("OLLAMA_HOST", tt.value)
			assert.Equal(t, tt.want, GetOllamaBaseURL())
		})
	}
}
