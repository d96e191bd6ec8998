// Peercorr - Nearest-Peer Correlation for Rating Datasets
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/peercorr

package ratings

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/cespare/xxhash/v2"
)

// maxLineBytes bounds a single input line.
const maxLineBytes = 1 << 20

// Parse reads whitespace separated "<user> <item> <rating>" lines from r.
//
// Any line that is not exactly three integers fails the whole parse with a
// *MalformedRecordError. Nothing is skipped.
func Parse(r io.Reader) ([]Record, error) {
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), maxLineBytes)

	var records []Record
	line := 0
	for scanner.Scan() {
		line++
		rec, err := parseLine(line, scanner.Text())
		if err != nil {
			return nil, err
		}
		records = append(records, rec)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("read input at line %d: %w", line+1, err)
	}

	return records, nil
}

func parseLine(line int, text string) (Record, error) {
	fields := strings.Fields(text)
	if len(fields) != 3 {
		return Record{}, &MalformedRecordError{
			Line:   line,
			Text:   text,
			Reason: fmt.Sprintf("expected 3 fields, got %d", len(fields)),
		}
	}

	var vals [3]int
	names := [3]string{"user id", "item id", "rating"}
	for i, f := range fields {
		v, err := strconv.Atoi(f)
		if err != nil {
			return Record{}, &MalformedRecordError{
				Line:   line,
				Text:   text,
				Reason: fmt.Sprintf("%s %q is not an integer", names[i], f),
			}
		}
		vals[i] = v
	}

	return Record{UserID: vals[0], ItemID: vals[1], Rating: vals[2]}, nil
}

// LoadFile parses the file at path and builds a Store from it.
// The returned stats carry the record and user counts plus an xxhash digest
// of the raw bytes, which identifies the input for checkpointing.
func LoadFile(ctx context.Context, path string) (*Store, LoadStats, error) {
	if err := ctx.Err(); err != nil {
		return nil, LoadStats{}, err
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, LoadStats{}, fmt.Errorf("open ratings file: %w", err)
	}
	defer f.Close()

	digest := xxhash.New()
	records, err := Parse(io.TeeReader(f, digest))
	if err != nil {
		return nil, LoadStats{}, fmt.Errorf("parse %s: %w", path, err)
	}

	if err := ctx.Err(); err != nil {
		return nil, LoadStats{}, err
	}

	store := Build(records)
	return store, LoadStats{
		Lines:  len(records),
		Users:  store.Len(),
		Digest: digest.Sum64(),
	}, nil
}
