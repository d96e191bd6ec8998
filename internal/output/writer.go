// Peercorr - Nearest-Peer Correlation for Rating Datasets
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/peercorr

package output

import (
	"bufio"
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"

	"github.com/tomtom215/peercorr/internal/match"
)

// ErrDuplicateUser is returned when results contain the same user twice.
var ErrDuplicateUser = errors.New("duplicate user in results")

// Emit writes one line per result to w, in ascending user id order.
// It returns the number of lines written.
func Emit(w io.Writer, results []match.Result, format Format) (int, error) {
	ordered, err := ordered(results)
	if err != nil {
		return 0, err
	}

	bw := bufio.NewWriter(w)
	for _, r := range ordered {
		if err := writeLine(bw, r, format); err != nil {
			return 0, err
		}
	}
	if err := bw.Flush(); err != nil {
		return 0, fmt.Errorf("flush output: %w", err)
	}

	return len(ordered), nil
}

func writeLine(w *bufio.Writer, r match.Result, format Format) error {
	switch format {
	case FormatText:
		if _, err := w.WriteString(FormatLine(r)); err != nil {
			return fmt.Errorf("write user %d: %w", r.UserID, err)
		}
	case FormatJSONL:
		data, err := encodeJSONLine(r)
		if err != nil {
			return fmt.Errorf("encode user %d: %w", r.UserID, err)
		}
		if _, err := w.Write(data); err != nil {
			return fmt.Errorf("write user %d: %w", r.UserID, err)
		}
	default:
		return fmt.Errorf("%w: %q", ErrUnknownFormat, format)
	}
	return w.WriteByte('\n')
}

// ordered returns results sorted by user id, rejecting duplicates.
// The input is not modified.
func ordered(results []match.Result) ([]match.Result, error) {
	sorted := true
	for i := 1; i < len(results); i++ {
		if results[i].UserID <= results[i-1].UserID {
			sorted = false
			break
		}
	}
	if sorted {
		return results, nil
	}

	out := make([]match.Result, len(results))
	copy(out, results)
	sort.Slice(out, func(i, j int) bool { return out[i].UserID < out[j].UserID })

	for i := 1; i < len(out); i++ {
		if out[i].UserID == out[i-1].UserID {
			return nil, fmt.Errorf("%w: %d", ErrDuplicateUser, out[i].UserID)
		}
	}
	return out, nil
}

// WriteFile atomically replaces path with the rendered results.
// It returns the number of lines written.
func WriteFile(path string, results []match.Result, format Format) (int, error) {
	var buf bytes.Buffer
	n, err := Emit(&buf, results, format)
	if err != nil {
		return 0, err
	}

	dir := filepath.Dir(path)
	tmp, err := os.CreateTemp(dir, "."+filepath.Base(path)+".*.tmp")
	if err != nil {
		return 0, fmt.Errorf("create temp output: %w", err)
	}
	tmpName := tmp.Name()

	// Remove the temp file on any failure below.
	committed := false
	defer func() {
		if !committed {
			_ = tmp.Close()
			_ = os.Remove(tmpName)
		}
	}()

	if _, err := tmp.Write(buf.Bytes()); err != nil {
		return 0, fmt.Errorf("write temp output: %w", err)
	}
	if err := tmp.Sync(); err != nil {
		return 0, fmt.Errorf("sync temp output: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return 0, fmt.Errorf("close temp output: %w", err)
	}
	if err := os.Chmod(tmpName, 0o644); err != nil {
		return 0, fmt.Errorf("chmod temp output: %w", err)
	}
	if err := os.Rename(tmpName, path); err != nil {
		return 0, fmt.Errorf("rename output into place: %w", err)
	}
	committed = true

	return n, nil
}
