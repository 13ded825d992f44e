package schedule

import (
	"testing"
	"time"
)

// A fixed Wednesday afternoon keeps the arithmetic assertions readable.
var wedAfternoon = time.Date(2025, time.March, 5, 15, 30, 0, 0, time.UTC)

func TestLeadTime(t *testing.T) {
	due := time.Date(2025, time.March, 6, 18, 0, 0, 0, time.UTC)
	got := LeadTime(due, 30*time.Minute)
	want := time.Date(2025, time.March, 6, 17, 30, 0, 0, time.UTC)
	if !got.Equal(want) {
		t.Fatalf("LeadTime = %v, want %v", got, want)
	}
}

func TestNextDaily(t *testing.T) {
	t.Run("later today", func(t *testing.T) {
		got := NextDaily(wedAfternoon, 21, 0)
		want := time.Date(2025, time.March, 5, 21, 0, 0, 0, time.UTC)
		if !got.Equal(want) {
			t.Fatalf("got %v, want %v", got, want)
		}
	})

	t.Run("already past rolls to tomorrow", func(t *testing.T) {
		got := NextDaily(wedAfternoon, 9, 0)
		want := time.Date(2025, time.March, 6, 9, 0, 0, 0, time.UTC)
		if !got.Equal(want) {
			t.Fatalf("got %v, want %v", got, want)
		}
	})

	t.Run("exact current minute rolls to tomorrow", func(t *testing.T) {
		got := NextDaily(wedAfternoon, 15, 30)
		want := time.Date(2025, time.March, 6, 15, 30, 0, 0, time.UTC)
		if !got.Equal(want) {
			t.Fatalf("got %v, want %v", got, want)
		}
	})
}

func TestNextWeekly(t *testing.T) {
	t.Run("next sunday morning", func(t *testing.T) {
		got := NextWeekly(wedAfternoon, time.Sunday, 9, 0)
		want := time.Date(2025, time.March, 9, 9, 0, 0, 0, time.UTC)
		if !got.Equal(want) {
			t.Fatalf("got %v, want %v", got, want)
		}
		if got.Weekday() != time.Sunday {
			t.Fatalf("expected a Sunday, got %v", got.Weekday())
		}
	})

	t.Run("same weekday later time stays today", func(t *testing.T) {
		got := NextWeekly(wedAfternoon, time.Wednesday, 20, 0)
		want := time.Date(2025, time.March, 5, 20, 0, 0, 0, time.UTC)
		if !got.Equal(want) {
			t.Fatalf("got %v, want %v", got, want)
		}
	})

	t.Run("same weekday past time rolls a full week", func(t *testing.T) {
		got := NextWeekly(wedAfternoon, time.Wednesday, 9, 0)
		want := time.Date(2025, time.March, 12, 9, 0, 0, 0, time.UTC)
		if !got.Equal(want) {
			t.Fatalf("got %v, want %v", got, want)
		}
	})
}

func TestParseClock(t *testing.T) {
	h, m, err := ParseClock("23:15")
	if err != nil {
		t.Fatalf("ParseClock error: %v", err)
	}
	if h != 23 || m != 15 {
		t.Fatalf("unexpected result: %d:%d", h, m)
	}

	for _, bad := range []string{"24:00", "12:60", "noon", "9", "9:5"} {
		if _, _, err := ParseClock(bad); err == nil {
			t.Fatalf("expected error for %q", bad)
		}
	}
}

func TestParseSpec(t *testing.T) {
	tests := []struct {
		name string
		raw  string
		want string
	}{
		{name: "daily", raw: "daily 21:00", want: "0 21 * * *"},
		{name: "daily with minutes", raw: "daily 07:45", want: "45 7 * * *"},
		{name: "weekly short day", raw: "weekly sun 09:00", want: "0 9 * * 0"},
		{name: "weekly long day", raw: "weekly friday 18:30", want: "30 18 * * 5"},
		{name: "mixed case", raw: "Weekly Sun 09:00", want: "0 9 * * 0"},
		{name: "raw cron passthrough", raw: "*/5 * * * *", want: "*/5 * * * *"},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got, err := ParseSpec(tc.raw)
			if err != nil {
				t.Fatalf("ParseSpec(%q) error: %v", tc.raw, err)
			}
			if got != tc.want {
				t.Fatalf("ParseSpec(%q) = %q, want %q", tc.raw, got, tc.want)
			}
		})
	}
}

func TestParseSpec_Invalid(t *testing.T) {
	for _, bad := range []string{
		"", "daily", "daily 25:00", "weekly 09:00", "weekly someday 09:00", "not-a-schedule",
	} {
		if _, err := ParseSpec(bad); err == nil {
			t.Fatalf("expected error for %q", bad)
		}
	}
}
