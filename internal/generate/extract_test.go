package generate

import (
	"errors"
	"testing"
)

func TestExtractJSONArray(t *testing.T) {
	tests := []struct {
		name    string
		raw     string
		want    string
		wantErr bool
	}{
		{
			name: "bare array",
			raw:  `[{"title":"A","description":"B"}]`,
			want: `[{"title":"A","description":"B"}]`,
		},
		{
			name: "markdown fenced",
			raw:  "Sure! Here's your plan:\n```json\n[{\"title\":\"A\",\"description\":\"B\"}]\n```",
			want: `[{"title":"A","description":"B"}]`,
		},
		{
			name: "prose before and after",
			raw:  `Of course. [{"html":"<p>hi</p>"}] Let me know if you need more.`,
			want: `[{"html":"<p>hi</p>"}]`,
		},
		{
			name: "control characters inside span",
			raw:  "[\n\t{\"title\":\"A\",\r\"description\":\"B\"}\n]",
			want: `[{"title":"A","description":"B"}]`,
		},
		{
			name: "non-breaking spaces stripped",
			raw:  "[{\"title\": \"A\",\"description\":\"B\"}]",
			want: `[{"title":"A","description":"B"}]`,
		},
		{
			name: "empty array",
			raw:  `the plan is []`,
			want: `[]`,
		},
		{
			name:    "no brackets",
			raw:     "no brackets here",
			wantErr: true,
		},
		{
			name:    "only opening bracket",
			raw:     `[{"title":"A"`,
			wantErr: true,
		},
		{
			name:    "closing before opening",
			raw:     `] nothing [`,
			wantErr: true,
		},
		{
			name:    "brackets but invalid json",
			raw:     `[{"title": unquoted}]`,
			wantErr: true,
		},
		{
			name:    "empty input",
			raw:     "",
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ExtractJSONArray(tt.raw)
			if tt.wantErr {
				if err == nil {
					t.Fatalf("expected error, got %q", got)
				}
				var perr *ParseError
				if !errors.As(err, &perr) {
					t.Errorf("expected *ParseError, got %T", err)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if got != tt.want {
				t.Errorf("got %q, want %q", got, tt.want)
			}
		})
	}
}

func TestParseErrorCarriesRawText(t *testing.T) {
	raw := "the model rambled with no JSON"
	_, err := ExtractJSONArray(raw)
	var perr *ParseError
	if !errors.As(err, &perr) {
		t.Fatalf("expected *ParseError, got %T", err)
	}
	if perr.Raw != raw {
		t.Errorf("expected raw text preserved for the event log, got %q", perr.Raw)
	}
}
