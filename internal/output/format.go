// Peercorr - Nearest-Peer Correlation for Rating Datasets
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/peercorr

package output

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/goccy/go-json"

	"github.com/tomtom215/peercorr/internal/match"
)

// Format selects the output encoding.
type Format string

const (
	// FormatText is "<id> (<peer>,<pcc>,<overlap>)" or "<id>".
	FormatText Format = "text"

	// FormatJSONL is one JSON object per line.
	FormatJSONL Format = "jsonl"
)

// ErrUnknownFormat is returned for an unsupported Format.
var ErrUnknownFormat = errors.New("unknown output format")

// ParseFormat converts a user supplied name to a Format.
func ParseFormat(s string) (Format, error) {
	switch Format(strings.ToLower(strings.TrimSpace(s))) {
	case FormatText, "":
		return FormatText, nil
	case FormatJSONL, "json":
		return FormatJSONL, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnknownFormat, s)
	}
}

// FormatLine renders a result in the text format, without a newline.
func FormatLine(r match.Result) string {
	if !r.Found() {
		return strconv.Itoa(r.UserID)
	}
	return fmt.Sprintf("%d (%d,%.2f,%d)", r.UserID, r.Match.PeerID, r.Match.PCC, r.Match.Overlap)
}

// jsonLine is the jsonl record shape.
type jsonLine struct {
	UserID  int      `json:"user_id"`
	PeerID  *int     `json:"peer_id,omitempty"`
	PCC     *float64 `json:"pcc,omitempty"`
	Overlap *int     `json:"overlap,omitempty"`
}

// encodeJSONLine renders a result as a JSON object, without a newline.
func encodeJSONLine(r match.Result) ([]byte, error) {
	line := jsonLine{UserID: r.UserID}
	if r.Found() {
		m := *r.Match
		line.PeerID = &m.PeerID
		line.PCC = &m.PCC
		line.Overlap = &m.Overlap
	}
	return json.Marshal(line)
}
