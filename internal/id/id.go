// Package id formats and parses allocation round identifiers.
package id

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

// FormatRoundID returns a round ID like "2025-08-007".
func FormatRoundID(year, month, seq int) string {
	return fmt.Sprintf("%04d-%02d-%03d", year, month, seq)
}

// RoundIDFor returns the round ID for the seq-th round in the month of t.
func RoundIDFor(t time.Time, seq int) string {
	return FormatRoundID(t.Year(), int(t.Month()), seq)
}

// ParseRoundID parses "2025-08-007" into year, month, seq.
func ParseRoundID(id string) (year, month, seq int, err error) {
	parts := strings.SplitN(id, "-", 3)
	if len(parts) != 3 {
		return 0, 0, 0, fmt.Errorf("invalid round ID format: %q", id)
	}

	year, err = strconv.Atoi(parts[0])
	if err != nil {
		return 0, 0, 0, fmt.Errorf("invalid year in round ID %q: %w", id, err)
	}

	month, err = strconv.Atoi(parts[1])
	if err != nil {
		return 0, 0, 0, fmt.Errorf("invalid month in round ID %q: %w", id, err)
	}
	if month < 1 || month > 12 {
		return 0, 0, 0, fmt.Errorf("month out of range in round ID %q", id)
	}

	seq, err = strconv.Atoi(parts[2])
	if err != nil {
		return 0, 0, 0, fmt.Errorf("invalid sequence in round ID %q: %w", id, err)
	}

	return year, month, seq, nil
}

// NextSeq returns one past the highest sequence among ids in the given month.
// Unparseable IDs are ignored.
func NextSeq(ids []string, year, month int) int {
	maxSeq := 0
	for _, s := range ids {
		y, m, seq, err := ParseRoundID(s)
		if err != nil || y != year || m != month {
			continue
		}
		if seq > maxSeq {
			maxSeq = seq
		}
	}
	return maxSeq + 1
}
