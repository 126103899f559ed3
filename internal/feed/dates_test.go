package feed

import (
	"testing"
	"time"
)

func TestParseDateRFC1123Z(t *testing.T) {
	got, err := ParseDate("Mon, 16 Dec 2024 10:00:00 +0000")
	if err != nil {
		t.Fatalf("ParseDate error: %v", err)
	}
	want := time.Date(2024, 12, 16, 10, 0, 0, 0, time.UTC)
	if !got.Equal(want) {
		t.Fatalf("expected %s, got %s", want, got)
	}
}

func TestParseDateNormalizesZoneToUTC(t *testing.T) {
	got, err := ParseDate("Mon, 16 Dec 2024 15:00:00 +0500")
	if err != nil {
		t.Fatalf("ParseDate error: %v", err)
	}
	want := time.Date(2024, 12, 16, 10, 0, 0, 0, time.UTC)
	if !got.Equal(want) {
		t.Fatalf("expected %s, got %s", want, got)
	}
	if got.Location() != time.UTC {
		t.Fatalf("expected UTC location, got %s", got.Location())
	}
}

func TestParseDateResolvesNamedZones(t *testing.T) {
	cases := []struct {
		value string
		want  time.Time
	}{
		{"Mon, 16 Dec 2024 10:00:00 EST", time.Date(2024, 12, 16, 15, 0, 0, 0, time.UTC)},
		{"Mon, 16 Dec 2024 10:00:00 PDT", time.Date(2024, 12, 16, 17, 0, 0, 0, time.UTC)},
		{"16 Dec 24 10:00 PST", time.Date(2024, 12, 16, 18, 0, 0, 0, time.UTC)},
		{"Mon, 16 Dec 2024 10:00:00 GMT", time.Date(2024, 12, 16, 10, 0, 0, 0, time.UTC)},
	}
	for _, tc := range cases {
		got, err := ParseDate(tc.value)
		if err != nil {
			t.Fatalf("ParseDate(%q) error: %v", tc.value, err)
		}
		if !got.Equal(tc.want) {
			t.Fatalf("ParseDate(%q) = %s, want %s", tc.value, got, tc.want)
		}
	}
}

func TestParseDateRejectsUnknownZoneName(t *testing.T) {
	if _, err := ParseDate("Mon, 16 Dec 2024 10:00:00 XYZ"); err == nil {
		t.Fatal("expected error for unknown zone abbreviation")
	}
}

func TestParseDateSupportedForms(t *testing.T) {
	cases := []struct {
		value string
		want  time.Time
	}{
		{"16 Dec 24 10:00 UTC", time.Date(2024, 12, 16, 10, 0, 0, 0, time.UTC)},
		{"2024-12-16T10:00:00Z", time.Date(2024, 12, 16, 10, 0, 0, 0, time.UTC)},
		{"2024-12-16T10:00:00", time.Date(2024, 12, 16, 10, 0, 0, 0, time.UTC)},
		{"2024-12-16 10:00:00", time.Date(2024, 12, 16, 10, 0, 0, 0, time.UTC)},
		{"2024-12-16", time.Date(2024, 12, 16, 0, 0, 0, 0, time.UTC)},
		{"16 December 2024", time.Date(2024, 12, 16, 0, 0, 0, 0, time.UTC)},
		{"December 16, 2024", time.Date(2024, 12, 16, 0, 0, 0, 0, time.UTC)},
		{"Dec 16, 2024", time.Date(2024, 12, 16, 0, 0, 0, 0, time.UTC)},
		{"  Mon, 16 Dec 2024 10:00:00 +0000  ", time.Date(2024, 12, 16, 10, 0, 0, 0, time.UTC)},
	}
	for _, tc := range cases {
		got, err := ParseDate(tc.value)
		if err != nil {
			t.Fatalf("ParseDate(%q) error: %v", tc.value, err)
		}
		if !got.Equal(tc.want) {
			t.Fatalf("ParseDate(%q) = %s, want %s", tc.value, got, tc.want)
		}
	}
}

func TestParseDateRejectsUnknownForms(t *testing.T) {
	for _, value := range []string{"", "   ", "not a date", "16/12/2024", "timestamp:1734343200"} {
		if _, err := ParseDate(value); err == nil {
			t.Fatalf("expected error for %q", value)
		}
	}
}
