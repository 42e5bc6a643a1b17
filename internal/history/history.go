// Package history keeps an append-only log of allocation rounds.
package history

import (
	"bufio"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/splitledger/splitledger/internal/id"
	"github.com/splitledger/splitledger/internal/model"
)

// Entry is one row in the activity log: a single allocation round.
type Entry struct {
	Timestamp  time.Time
	RoundID    string
	Source     string // "split", "shell", "import:<file>"
	Input      string // raw input as typed, or the imported amount
	Amount     int64  // amount after rounding
	Allocation model.Allocation
}

// Header is the CSV header for activity.csv.
const Header = "timestamp,round_id,source,input,amount,income,savings,reserve"

// DefaultFile is the activity log location relative to the project root.
const DefaultFile = "logs/activity.csv"

const (
	numFields  = 8
	colTime    = 0
	colRoundID = 1
	colSource  = 2
	colInput   = 3
	colAmount  = 4
	colIncome  = 5
	colSavings = 6
	colReserve = 7
)

// MarshalEntry converts an Entry to a CSV row.
func MarshalEntry(e Entry) []string {
	row := make([]string, numFields)
	row[colTime] = e.Timestamp.Format(time.RFC3339)
	row[colRoundID] = e.RoundID
	row[colSource] = e.Source
	row[colInput] = e.Input
	row[colAmount] = strconv.FormatInt(e.Amount, 10)
	row[colIncome] = strconv.FormatInt(e.Allocation.Income, 10)
	row[colSavings] = strconv.FormatInt(e.Allocation.Savings, 10)
	row[colReserve] = strconv.FormatInt(e.Allocation.Reserve, 10)
	return row
}

// UnmarshalEntry converts a CSV row to an Entry.
func UnmarshalEntry(record []string) (Entry, error) {
	if len(record) != numFields {
		return Entry{}, fmt.Errorf("expected %d fields, got %d", numFields, len(record))
	}

	ts, err := time.Parse(time.RFC3339, record[colTime])
	if err != nil {
		return Entry{}, fmt.Errorf("parsing timestamp %q: %w", record[colTime], err)
	}

	var ints [4]int64
	for i, col := range []int{colAmount, colIncome, colSavings, colReserve} {
		ints[i], err = strconv.ParseInt(record[col], 10, 64)
		if err != nil {
			return Entry{}, fmt.Errorf("parsing column %d %q: %w", col, record[col], err)
		}
	}

	return Entry{
		Timestamp: ts,
		RoundID:   record[colRoundID],
		Source:    record[colSource],
		Input:     record[colInput],
		Amount:    ints[0],
		Allocation: model.Allocation{
			Income:  ints[1],
			Savings: ints[2],
			Reserve: ints[3],
		},
	}, nil
}

// Log is the activity log file of one project.
type Log struct {
	path string
}

// NewLog returns the activity log stored at path.
func NewLog(path string) *Log {
	return &Log{path: path}
}

// Path returns the log file location.
func (l *Log) Path() string {
	return l.path
}

// Append writes entries, creating the file and header if needed.
func (l *Log) Append(entries ...Entry) error {
	if err := os.MkdirAll(filepath.Dir(l.path), 0o755); err != nil {
		return fmt.Errorf("creating logs dir: %w", err)
	}

	needsHeader := false
	if _, err := os.Stat(l.path); errors.Is(err, fs.ErrNotExist) {
		needsHeader = true
	}

	f, err := os.OpenFile(l.path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
	if err != nil {
		return fmt.Errorf("opening activity log: %w", err)
	}
	defer f.Close()

	cw := csv.NewWriter(f)
	if needsHeader {
		if err := cw.Write(strings.Split(Header, ",")); err != nil {
			return fmt.Errorf("writing header: %w", err)
		}
	}
	for i, e := range entries {
		if err := cw.Write(MarshalEntry(e)); err != nil {
			return fmt.Errorf("writing entry %d: %w", i, err)
		}
	}
	cw.Flush()
	return cw.Error()
}

// Read returns all entries. A missing file yields no entries.
func (l *Log) Read() ([]Entry, error) {
	f, err := os.Open(l.path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, nil
		}
		return nil, fmt.Errorf("opening activity log: %w", err)
	}
	defer f.Close()

	return readEntries(f)
}

// NextRoundID returns the ID for a new round at t.
func (l *Log) NextRoundID(t time.Time) (string, error) {
	entries, err := l.Read()
	if err != nil {
		return "", err
	}
	ids := make([]string, len(entries))
	for i, e := range entries {
		ids[i] = e.RoundID
	}
	return id.RoundIDFor(t, id.NextSeq(ids, t.Year(), int(t.Month()))), nil
}

// readEntries parses the log line by line. Rows that do not parse are
// skipped so one damaged line does not hide the rest of the log.
func readEntries(r io.Reader) ([]Entry, error) {
	br := bufio.NewReader(r)
	header := true
	var entries []Entry
	for {
		line, err := br.ReadString('\n')
		if err != nil && !errors.Is(err, io.EOF) {
			return nil, fmt.Errorf("reading activity log: %w", err)
		}
		if strings.TrimSpace(line) != "" {
			if header {
				header = false
			} else if e, perr := parseLine(line); perr == nil {
				entries = append(entries, e)
			}
		}
		if err != nil {
			return entries, nil
		}
	}
}

func parseLine(line string) (Entry, error) {
	rec, err := csv.NewReader(strings.NewReader(line)).Read()
	if err != nil {
		return Entry{}, err
	}
	return UnmarshalEntry(rec)
}
