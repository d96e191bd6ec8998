// Peercorr - Nearest-Peer Correlation for Rating Datasets
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/peercorr

package output

import (
	"errors"
	"testing"

	"github.com/tomtom215/peercorr/internal/match"
)

func TestFormatLine(t *testing.T) {
	tests := []struct {
		name   string
		result match.Result
		want   string
	}{
		{
			name:   "no match is the bare id",
			result: match.Result{UserID: 3},
			want:   "3",
		},
		{
			name:   "match rounds pcc to two decimals",
			result: match.Result{UserID: 1, Match: &match.Match{PeerID: 2, PCC: 0.9999998750000235, Overlap: 2}},
			want:   "1 (2,1.00,2)",
		},
		{
			name:   "negative pcc",
			result: match.Result{UserID: 10, Match: &match.Match{PeerID: 7, PCC: -0.456, Overlap: 12}},
			want:   "10 (7,-0.46,12)",
		},
		{
			name:   "zero pcc",
			result: match.Result{UserID: 3, Match: &match.Match{PeerID: 1, PCC: 0, Overlap: 2}},
			want:   "3 (1,0.00,2)",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := FormatLine(tt.result); got != tt.want {
				t.Errorf("FormatLine() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestParseFormat(t *testing.T) {
	tests := []struct {
		input   string
		want    Format
		wantErr bool
	}{
		{"", FormatText, false},
		{"text", FormatText, false},
		{"TEXT", FormatText, false},
		{"jsonl", FormatJSONL, false},
		{"json", FormatJSONL, false},
		{" jsonl ", FormatJSONL, false},
		{"csv", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := ParseFormat(tt.input)
			if tt.wantErr {
				if !errors.Is(err, ErrUnknownFormat) {
					t.Errorf("ParseFormat(%q) error = %v, want ErrUnknownFormat", tt.input, err)
				}
				return
			}
			if err != nil {
				t.Fatalf("ParseFormat(%q) error = %v", tt.input, err)
			}
			if got != tt.want {
				t.Errorf("ParseFormat(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}

func TestEncodeJSONLine(t *testing.T) {
	got, err := encodeJSONLine(match.Result{UserID: 3})
	if err != nil {
		t.Fatalf("encodeJSONLine() error = %v", err)
	}
	if string(got) != `{"user_id":3}` {
		t.Errorf("encodeJSONLine() = %s", got)
	}

	got, err = encodeJSONLine(match.Result{UserID: 1, Match: &match.Match{PeerID: 2, PCC: 0.5, Overlap: 4}})
	if err != nil {
		t.Fatalf("encodeJSONLine() error = %v", err)
	}
	if string(got) != `{"user_id":1,"peer_id":2,"pcc":0.5,"overlap":4}` {
		t.Errorf("encodeJSONLine() = %s", got)
	}
}
