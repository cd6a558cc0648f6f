//nolint:goconst // test cases intentionally repeat strings for readability
package errmsg

import (
	"errors"
	"testing"
)

func TestFormat(t *testing.T) {
	tests := []struct {
		name     string
		op       Op
		err      error
		expected string
	}{
		{
			name:     "nil error returns empty string",
			op:       OpCatalogLoad,
			err:      nil,
			expected: "",
		},
		{
			name:     "formats error with operation",
			op:       OpCatalogLoad,
			err:      errors.New("connection refused"),
			expected: "Failed to load songs: connection refused",
		},
		{
			name:     "like toggle",
			op:       OpLikeToggle,
			err:      errors.New("database is locked"),
			expected: "Failed to update likes: database is locked",
		},
		{
			name:     "playback start",
			op:       OpPlaybackStart,
			err:      errors.New("no stream"),
			expected: "Failed to start playback: no stream",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := Format(tt.op, tt.err)
			if result != tt.expected {
				t.Errorf("Format(%q, %v) = %q, want %q", tt.op, tt.err, result, tt.expected)
			}
		})
	}
}

func TestFormatWith(t *testing.T) {
	tests := []struct {
		name     string
		op       Op
		context  string
		err      error
		expected string
	}{
		{
			name:     "nil error returns empty string",
			op:       OpLyricsFetch,
			context:  "Lucid Dreams",
			err:      nil,
			expected: "",
		},
		{
			name:     "formats error with context",
			op:       OpLyricsFetch,
			context:  "Lucid Dreams",
			err:      errors.New("timeout"),
			expected: "Failed to fetch lyrics 'Lucid Dreams': timeout",
		},
		{
			name:     "empty context falls back to Format",
			op:       OpLyricsFetch,
			context:  "",
			err:      errors.New("timeout"),
			expected: "Failed to fetch lyrics: timeout",
		},
		{
			name:     "cover search with track context",
			op:       OpCoverSearch,
			context:  "Robbery",
			err:      errors.New("status 503"),
			expected: "Failed to search cover art 'Robbery': status 503",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := FormatWith(tt.op, tt.context, tt.err)
			if result != tt.expected {
				t.Errorf("FormatWith(%q, %q, %v) = %q, want %q", tt.op, tt.context, tt.err, result, tt.expected)
			}
		})
	}
}

func TestOpConstants(t *testing.T) {
	ops := []Op{
		OpCatalogLoad, OpCatalogOptions, OpRadioLoad,
		OpPlaybackStart, OpMediaLoad,
		OpLyricsFetch, OpCoverSearch,
		OpLikeToggle, OpStateLoad, OpStateSave,
		OpInitialize,
	}

	testErr := errors.New("test error")

	for _, op := range ops {
		t.Run(string(op), func(t *testing.T) {
			if op == "" {
				t.Error("Op constant should not be empty")
			}
			expected := "Failed to " + string(op) + ": test error"
			if result := Format(op, testErr); result != expected {
				t.Errorf("Format = %q, want %q", result, expected)
			}
		})
	}
}
