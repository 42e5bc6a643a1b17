package ledger

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"time"

	"github.com/splitledger/splitledger/internal/model"
)

// ErrStorageUnavailable wraps every failure to read or write a ledger file.
var ErrStorageUnavailable = errors.New("storage unavailable")

// Store reads and appends ledger files, one per bucket. Nothing is cached:
// every read scans the file on disk.
type Store struct {
	paths map[model.Bucket]string
	loc   *time.Location
}

// NewStore creates a Store over the given bucket→file mapping.
func NewStore(paths map[model.Bucket]string) *Store {
	cp := make(map[model.Bucket]string, len(paths))
	for b, p := range paths {
		cp[b] = p
	}
	return &Store{paths: cp, loc: time.Local}
}

// DefaultPaths maps every bucket to <dir>/<bucket>.csv.
func DefaultPaths(dir string) map[model.Bucket]string {
	paths := make(map[model.Bucket]string)
	for _, info := range model.Buckets() {
		paths[info.Bucket] = filepath.Join(dir, string(info.Bucket)+".csv")
	}
	return paths
}

// Path returns the file backing bucket b.
func (s *Store) Path(b model.Bucket) (string, error) {
	p, ok := s.paths[b]
	if !ok || p == "" {
		return "", fmt.Errorf("no ledger configured for bucket %q", b)
	}
	return p, nil
}

// Init creates every missing ledger file with its header.
func (s *Store) Init() error {
	for _, info := range model.Buckets() {
		path, err := s.Path(info.Bucket)
		if err != nil {
			return err
		}
		if err := ensureFile(path); err != nil {
			return fmt.Errorf("initializing %s ledger: %w", info.Bucket, err)
		}
	}
	return nil
}

// Append adds one entry to the end of bucket b's ledger. The file is opened,
// written, synced and closed within the call.
func (s *Store) Append(b model.Bucket, ts time.Time, amount int64) error {
	path, err := s.Path(b)
	if err != nil {
		return err
	}
	if err := ensureFile(path); err != nil {
		return fmt.Errorf("appending to %s ledger: %w", b, err)
	}

	f, err := os.OpenFile(path, os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return fmt.Errorf("opening %s ledger: %w: %w", b, ErrStorageUnavailable, err)
	}

	entry := model.LedgerEntry{Timestamp: ts, Amount: amount}
	if err := AppendEntries(f, []model.LedgerEntry{entry}); err != nil {
		f.Close()
		return fmt.Errorf("appending to %s ledger: %w: %w", b, ErrStorageUnavailable, err)
	}
	if err := f.Sync(); err != nil {
		f.Close()
		return fmt.Errorf("syncing %s ledger: %w: %w", b, ErrStorageUnavailable, err)
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("closing %s ledger: %w: %w", b, ErrStorageUnavailable, err)
	}
	return nil
}

// Total sums the amount of every well-formed record in bucket b's ledger.
// A missing ledger totals 0.
func (s *Store) Total(b model.Bucket) (int64, error) {
	var total int64
	err := s.scan(b, func(rec []string) {
		amount, err := ParseAmount(rec)
		if err != nil {
			return
		}
		total += amount
	})
	if err != nil {
		return 0, err
	}
	return total, nil
}

// Last returns the amount of the most recent record in bucket b's ledger, or
// 0 if the ledger is empty, unreadable, or its last record is malformed.
func (s *Store) Last(b model.Bucket) int64 {
	var last []string
	err := s.scan(b, func(rec []string) {
		last = rec
	})
	if err != nil || last == nil {
		return 0
	}
	amount, err := ParseAmount(last)
	if err != nil {
		return 0
	}
	return amount
}

// Entries returns the well-formed entries of bucket b's ledger in order.
func (s *Store) Entries(b model.Bucket) ([]model.LedgerEntry, error) {
	f, err := s.open(b)
	if err != nil || f == nil {
		return nil, err
	}
	defer f.Close()

	entries, err := ReadEntries(f, s.loc)
	if err != nil {
		return nil, fmt.Errorf("reading %s ledger: %w: %w", b, ErrStorageUnavailable, err)
	}
	return entries, nil
}

func (s *Store) scan(b model.Bucket, fn func(rec []string)) error {
	f, err := s.open(b)
	if err != nil || f == nil {
		return err
	}
	defer f.Close()

	if err := EachRecord(f, fn); err != nil {
		return fmt.Errorf("reading %s ledger: %w: %w", b, ErrStorageUnavailable, err)
	}
	return nil
}

// open returns bucket b's ledger for reading, or nil if it does not exist.
func (s *Store) open(b model.Bucket) (*os.File, error) {
	path, err := s.Path(b)
	if err != nil {
		return nil, err
	}

	f, err := os.Open(path)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("opening %s ledger: %w: %w", b, ErrStorageUnavailable, err)
	}
	return f, nil
}

// ensureFile creates path and its parent directory, writing the header, if
// the file does not exist yet.
func ensureFile(path string) error {
	if _, err := os.Stat(path); err == nil {
		return nil
	} else if !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("%w: %w", ErrStorageUnavailable, err)
	}

	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("creating ledger dir: %w: %w", ErrStorageUnavailable, err)
	}

	f, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0o644)
	if errors.Is(err, fs.ErrExist) {
		return nil
	}
	if err != nil {
		return fmt.Errorf("creating ledger: %w: %w", ErrStorageUnavailable, err)
	}
	if err := WriteHeader(f); err != nil {
		f.Close()
		return fmt.Errorf("%w: %w", ErrStorageUnavailable, err)
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("closing ledger: %w: %w", ErrStorageUnavailable, err)
	}
	return nil
}
