package shared

import (
	"bytes"
	"errors"
	"fmt"
	"testing"
)

func TestNormalizeQueryKey(t *testing.T) {
	tc := []struct {
		name  string
		query string
		want  string
	}{
		{
			name:  "basic normalization",
			query: "Never Gonna Give You Up",
			want:  "never gonna give you up",
		},
		{
			name:  "extra whitespace",
			query: "  Never   Gonna  Give You Up ",
			want:  "never gonna give you up",
		},
		{
			name:  "mixed case",
			query: "NeVeR GoNnA",
			want:  "never gonna",
		},
		{
			name:  "empty",
			query: "   ",
			want:  "",
		},
	}

	for _, tt := range tc {
		t.Run(tt.name, func(t *testing.T) {
			got := NormalizeQueryKey(tt.query)
			if got != tt.want {
				t.Errorf("NormalizeQueryKey() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestMarshalJSON(t *testing.T) {
	v := map[string]string{"isrc": "USRC12345678"}

	t.Run("Compact", func(t *testing.T) {
		data, err := MarshalJSON(v, false)
		if err != nil {
			t.Fatalf("MarshalJSON failed: %v", err)
		}
		if bytes.Contains(data, []byte("\n")) {
			t.Error("compact output should not contain newlines")
		}
	})

	t.Run("Pretty", func(t *testing.T) {
		data, err := MarshalJSON(v, true)
		if err != nil {
			t.Fatalf("MarshalJSON failed: %v", err)
		}
		if !bytes.Contains(data, []byte("  ")) {
			t.Error("pretty output should be indented")
		}
	})

	t.Run("Unmarshalable", func(t *testing.T) {
		if _, err := MarshalJSON(make(chan int), false); err == nil {
			t.Error("expected error for unmarshalable value")
		}
	})
}

func TestSentinelErrors(t *testing.T) {
	wrapped := fmt.Errorf("token exchange: %w", ErrCredentialsExpired)
	if !errors.Is(wrapped, ErrCredentialsExpired) {
		t.Error("wrapped sentinel should match with errors.Is")
	}
}
