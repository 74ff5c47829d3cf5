package zone

import (
	"errors"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
)

var fixedInstant = time.Date(2024, time.June, 1, 12, 0, 0, 0, time.UTC)

func TestResolve_AcceptedIdentifiers(t *testing.T) {
	cases := []struct {
		id   string
		want string
	}{
		{id: "UTC", want: "2024-06-01 12:00:00 UTC"},
		{id: "Z", want: "2024-06-01 12:00:00 UTC"},
		{id: "UTC+3", want: "2024-06-01 15:00:00 +03"},
		{id: "UTC+03:00", want: "2024-06-01 15:00:00 +03"},
		{id: "GMT-05:30", want: "2024-06-01 06:30:00 -0530"},
		{id: "UT+0", want: "2024-06-01 12:00:00 UTC"},
		{id: "+02:00", want: "2024-06-01 14:00:00 +02"},
		{id: "-0800", want: "2024-06-01 04:00:00 -08"},
		{id: "+5", want: "2024-06-01 17:00:00 +05"},
		{id: "America/New_York", want: "2024-06-01 08:00:00 EDT"},
		{id: "Europe/Helsinki", want: "2024-06-01 15:00:00 EEST"},
		{id: "EST", want: "2024-06-01 07:00:00 -05"},
		{id: "JST", want: "2024-06-01 21:00:00 JST"},
	}

	for _, tc := range cases {
		t.Run(tc.id, func(t *testing.T) {
			got, err := Now(fixedInstant, tc.id)
			if err != nil {
				t.Fatalf("expected %q to resolve, got %v", tc.id, err)
			}
			if got != tc.want {
				t.Fatalf("unexpected rendering for %q: want %q got %q", tc.id, tc.want, got)
			}
		})
	}
}

func TestResolve_RejectsInvalidIdentifiers(t *testing.T) {
	ids := []string{
		"",
		"Not/AZone",
		"UTC+19",
		"UTC+3:",
		"GMT+05:60",
		"++3",
		"UTC 3",
		"Local",
		"../etc/passwd",
		"America/New York",
		"<script>",
		"UTCx",
	}
	for _, id := range ids {
		t.Run(id, func(t *testing.T) {
			_, err := Resolve(id)
			if err == nil {
				t.Fatalf("expected %q to be rejected", id)
			}
			if !errors.Is(err, ErrInvalidTimezone) {
				t.Fatalf("expected ErrInvalidTimezone, got %v", err)
			}
			if Valid(id) {
				t.Fatalf("Valid(%q) returned true", id)
			}
		})
	}
}

func TestNormalize_RestoresPlusSigns(t *testing.T) {
	cases := map[string]string{
		"UTC 3":        "UTC+3",
		" GMT 05:00 ":  "+GMT+05:00+",
		"Europe/Paris": "Europe/Paris",
		"":             "",
		"UTC-2":        "UTC-2",
	}
	for in, want := range cases {
		if got := Normalize(in); got != want {
			t.Fatalf("Normalize(%q) = %q, want %q", in, got, want)
		}
	}
}

func TestFormat_NilLocationUsesUTC(t *testing.T) {
	got := Format(fixedInstant, nil)
	if got != "2024-06-01 12:00:00 UTC" {
		t.Fatalf("unexpected format: %q", got)
	}
}

func TestAliases_TargetsResolve(t *testing.T) {
	table, err := loadAliases()
	if err != nil {
		t.Fatalf("aliases: %v", err)
	}
	if table["EST"] != "-05:00" {
		t.Fatalf("unexpected EST alias %q", table["EST"])
	}
	for id, target := range table {
		if _, err := resolve(target, false); err != nil {
			t.Fatalf("alias %s -> %s does not resolve: %v", id, target, err)
		}
	}
}

func TestResolve_RejectsZoneinfoHelperFiles(t *testing.T) {
	for _, id := range []string{
		"posixrules",
		"Factory",
		"localtime",
		"zone.tab",
		"right/UTC",
		"posix/Europe/Paris",
	} {
		if _, err := Resolve(id); !errors.Is(err, ErrInvalidTimezone) {
			t.Fatalf("expected %q to be rejected, got %v", id, err)
		}
	}

	if _, err := Resolve("Europe/Paris"); err != nil {
		t.Fatalf("region ids must still resolve: %v", err)
	}
}

func TestParseAliases_SkipsBlankEntries(t *testing.T) {
	got, err := parseAliases([]byte("ABC: Europe/Paris\nEMPTY: \"\"\n"))
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	want := map[string]string{"ABC": "Europe/Paris"}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("aliases mismatch (-want +got):\n%s", diff)
	}
}

func TestParseOffset_Range(t *testing.T) {
	cases := []struct {
		raw  string
		want int
		ok   bool
	}{
		{raw: "+18", want: 18 * 3600, ok: true},
		{raw: "-18:00", want: -18 * 3600, ok: true},
		{raw: "+18:00:01", ok: false},
		{raw: "+01:02:03", want: 3723, ok: true},
		{raw: "+010203", want: 3723, ok: true},
		{raw: "+123", ok: false},
		{raw: "3", ok: false},
	}
	for _, tc := range cases {
		got, err := parseOffset(tc.raw)
		if tc.ok && err != nil {
			t.Fatalf("parseOffset(%q): unexpected error %v", tc.raw, err)
		}
		if !tc.ok && err == nil {
			t.Fatalf("parseOffset(%q): expected error, got %d", tc.raw, got)
		}
		if tc.ok && got != tc.want {
			t.Fatalf("parseOffset(%q) = %d, want %d", tc.raw, got, tc.want)
		}
	}
}
