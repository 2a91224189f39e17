package validation

import (
	"errors"
	"testing"
)

type level string

var levels = []level{"Low", "Normal", "High", "Urgent"}

func TestFormatValidValues(t *testing.T) {
	tests := []struct {
		name   string
		values []level
		want   string
	}{
		{"none", nil, ""},
		{"one", levels[:1], "Low"},
		{"all", levels, "Low, Normal, High, Urgent"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := FormatValidValues(tt.values); got != tt.want {
				t.Fatalf("expected %q, got %q", tt.want, got)
			}
		})
	}
}

func TestFormatInvalidValueError(t *testing.T) {
	errInvalidLevel := errors.New("invalid priority")

	err := FormatInvalidValueError(errInvalidLevel, level("Critical"), levels)
	if !errors.Is(err, errInvalidLevel) {
		t.Fatalf("expected error to wrap %v, got %v", errInvalidLevel, err)
	}

	want := `invalid priority: "Critical" (valid: Low, Normal, High, Urgent)`
	if err.Error() != want {
		t.Fatalf("expected %q, got %q", want, err.Error())
	}
}
