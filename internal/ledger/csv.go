// Package ledger stores per-bucket allocation records as delimited text files.
package ledger

import (
	"bufio"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"github.com/splitledger/splitledger/internal/model"
)

// Header is the header row of every ledger file.
const Header = "date;time;amount"

// Delimiter separates fields within a record.
const Delimiter = ';'

const (
	numFields  = 3
	dateFormat = "2006-01-02"
	timeFormat = "15:04:05"
	colDate    = 0
	colTime    = 1
	colAmount  = 2
)

// MarshalEntry converts an entry to a record.
func MarshalEntry(e model.LedgerEntry) []string {
	row := make([]string, numFields)
	row[colDate] = e.Timestamp.Format(dateFormat)
	row[colTime] = e.Timestamp.Format(timeFormat)
	row[colAmount] = strconv.FormatInt(e.Amount, 10)
	return row
}

// UnmarshalEntry converts a record to an entry. Timestamps are read in loc.
func UnmarshalEntry(record []string, loc *time.Location) (model.LedgerEntry, error) {
	if len(record) != numFields {
		return model.LedgerEntry{}, fmt.Errorf("expected %d fields, got %d", numFields, len(record))
	}

	ts, err := time.ParseInLocation(dateFormat+" "+timeFormat, record[colDate]+" "+record[colTime], loc)
	if err != nil {
		return model.LedgerEntry{}, fmt.Errorf("parsing timestamp %q %q: %w", record[colDate], record[colTime], err)
	}

	amount, err := ParseAmount(record)
	if err != nil {
		return model.LedgerEntry{}, err
	}

	return model.LedgerEntry{Timestamp: ts, Amount: amount}, nil
}

// ParseAmount extracts only the amount field of a record.
func ParseAmount(record []string) (int64, error) {
	if len(record) != numFields {
		return 0, fmt.Errorf("expected %d fields, got %d", numFields, len(record))
	}
	amount, err := strconv.ParseInt(strings.TrimSpace(record[colAmount]), 10, 64)
	if err != nil {
		return 0, fmt.Errorf("parsing amount %q: %w", record[colAmount], err)
	}
	return amount, nil
}

// WriteHeader writes the header row.
func WriteHeader(w io.Writer) error {
	cw := newWriter(w)
	if err := cw.Write(strings.Split(Header, string(Delimiter))); err != nil {
		return fmt.Errorf("writing header: %w", err)
	}
	cw.Flush()
	return cw.Error()
}

// AppendEntries appends records to w (no header).
func AppendEntries(w io.Writer, entries []model.LedgerEntry) error {
	cw := newWriter(w)
	for i, e := range entries {
		if err := cw.Write(MarshalEntry(e)); err != nil {
			return fmt.Errorf("writing row %d: %w", i, err)
		}
	}
	cw.Flush()
	return cw.Error()
}

// EachRecord calls fn for every non-blank line after the header, split on
// Delimiter. Lines are never quoted, so each line is read as its own record
// and a damaged line cannot swallow the ones after it. Only I/O errors stop
// the scan.
func EachRecord(r io.Reader, fn func(record []string)) error {
	br := bufio.NewReader(r)
	header := true
	for {
		line, err := br.ReadString('\n')
		if err != nil && !errors.Is(err, io.EOF) {
			return fmt.Errorf("reading ledger: %w", err)
		}
		if line != "" {
			if header {
				header = false
			} else if rec := splitRecord(line); rec != nil {
				fn(rec)
			}
		}
		if err != nil {
			return nil
		}
	}
}

func splitRecord(line string) []string {
	line = strings.TrimRight(line, "\r\n")
	if strings.TrimSpace(line) == "" {
		return nil
	}
	return strings.Split(line, string(Delimiter))
}

// ReadEntries returns every well-formed entry in r, skipping malformed rows.
func ReadEntries(r io.Reader, loc *time.Location) ([]model.LedgerEntry, error) {
	var entries []model.LedgerEntry
	err := EachRecord(r, func(rec []string) {
		e, err := UnmarshalEntry(rec, loc)
		if err != nil {
			return
		}
		entries = append(entries, e)
	})
	if err != nil {
		return nil, err
	}
	return entries, nil
}

func newWriter(w io.Writer) *csv.Writer {
	cw := csv.NewWriter(w)
	cw.Comma = Delimiter
	return cw
}
