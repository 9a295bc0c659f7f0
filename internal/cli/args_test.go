package cli

import (
	"reflect"
	"testing"
	"time"
)

func TestNormalizeArgs(t *testing.T) {
	tests := []struct {
		name string
		in   []string
		want []string
	}{
		{
			name: "flags after positional",
			in:   []string{"urikit", "rebase", "abc", "--to", "https://example.com/", "--dry-run"},
			want: []string{"urikit", "rebase", "--to", "https://example.com/", "--dry-run", "abc"},
		},
		{
			name: "equals form",
			in:   []string{"urikit", "history", "--json", "--limit=5"},
			want: []string{"urikit", "history", "--json", "--limit=5"},
		},
		{
			name: "global flags before command",
			in:   []string{"urikit", "--db", "h.db", "--history", "merge", "http://a/", "b", "--json"},
			want: []string{"urikit", "--db", "h.db", "--history", "merge", "--json", "http://a/", "b"},
		},
		{
			name: "unknown flag stays positional",
			in:   []string{"urikit", "see", "text", "--nope", "--uri", "u"},
			want: []string{"urikit", "see", "--uri", "u", "text", "--nope"},
		},
		{
			name: "double dash ends flags",
			in:   []string{"urikit", "merge", "http://a/", "--", "--json"},
			want: []string{"urikit", "merge", "http://a/", "--", "--json"},
		},
		{
			name: "command without flags",
			in:   []string{"urikit", "host", "http://a/"},
			want: []string{"urikit", "host", "http://a/"},
		},
		{
			name: "no command",
			in:   []string{"urikit", "--db", "h.db"},
			want: []string{"urikit", "--db", "h.db"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := NormalizeArgs(tt.in)
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("NormalizeArgs(%q) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}

func TestParseDuration(t *testing.T) {
	tests := []struct {
		input   string
		want    time.Duration
		wantErr bool
	}{
		{"1h", time.Hour, false},
		{"90m", 90 * time.Minute, false},
		{"7d", 7 * 24 * time.Hour, false},
		{" 30D ", 30 * 24 * time.Hour, false},
		{"", 0, true},
		{"xd", 0, true},
		{"-1d", 0, true},
		{"soon", 0, true},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := parseDuration(tt.input)
			if (err != nil) != tt.wantErr {
				t.Fatalf("parseDuration(%q) error = %v, wantErr %v", tt.input, err, tt.wantErr)
			}
			if got != tt.want {
				t.Errorf("parseDuration(%q) = %v, want %v", tt.input, got, tt.want)
			}
		})
	}
}

func TestParseTime(t *testing.T) {
	now := time.Date(2024, 1, 15, 12, 0, 0, 0, time.UTC)

	tests := []struct {
		name     string
		input    string
		isFrom   bool
		wantTime time.Time
		wantErr  bool
	}{
		{"RFC 3339 with Z", "2024-01-15T10:30:00Z", true, time.Date(2024, 1, 15, 10, 30, 0, 0, time.UTC), false},
		{"RFC 3339 with offset", "2024-01-15T10:30:00+01:00", true, time.Date(2024, 1, 15, 9, 30, 0, 0, time.UTC), false},
		{"date lower bound", "2024-01-15", true, time.Date(2024, 1, 15, 0, 0, 0, 0, time.UTC), false},
		{"date upper bound", "2024-01-15", false, time.Date(2024, 1, 15, 23, 59, 59, 999999999, time.UTC), false},
		{"relative days", "7d", true, now.Add(-7 * 24 * time.Hour), false},
		{"relative hours", "1h", false, now.Add(-time.Hour), false},
		{"invalid", "not-a-date", true, time.Time{}, true},
		{"empty", "", true, time.Time{}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := parseTimeWithReference(tt.input, tt.isFrom, now)
			if (err != nil) != tt.wantErr {
				t.Fatalf("parseTimeWithReference(%q, %v) error = %v, wantErr %v", tt.input, tt.isFrom, err, tt.wantErr)
			}
			if !tt.wantErr && !got.Equal(tt.wantTime) {
				t.Errorf("parseTimeWithReference(%q, %v) = %v, want %v", tt.input, tt.isFrom, got, tt.wantTime)
			}
		})
	}
}
