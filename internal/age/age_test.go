package age

import (
	"testing"
	"time"
)

func TestAgeData(t *testing.T) {
	now := time.Date(2025, 1, 1, 12, 0, 0, 0, time.UTC)

	cases := []struct {
		name string
		then time.Time
		want time.Duration
		ok   bool
	}{
		{name: "past", then: now.Add(-10 * time.Minute), want: 10 * time.Minute, ok: true},
		{name: "now", then: now, want: 0, ok: true},
		{name: "future clamps", then: now.Add(4 * time.Minute), want: 0, ok: true},
		{name: "zero time", then: time.Time{}, want: 0, ok: false},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got, ok := AgeData(tc.then, now)
			if ok != tc.ok {
				t.Fatalf("expected ok %v, got %v", tc.ok, ok)
			}
			if got != tc.want {
				t.Fatalf("expected %s, got %s", tc.want, got)
			}
		})
	}
}
