// Package tracker is the synchronous command interface behind every UI:
// submit an amount, reload the totals, and get back a View.
package tracker

import (
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"github.com/splitledger/splitledger/internal/allocate"
	"github.com/splitledger/splitledger/internal/history"
	"github.com/splitledger/splitledger/internal/ledger"
	"github.com/splitledger/splitledger/internal/model"
)

// HistoryWriter records completed rounds.
type HistoryWriter interface {
	NextRoundID(t time.Time) (string, error)
	Append(entries ...history.Entry) error
}

// Committer snapshots the project after a round, e.g. as a git commit.
type Committer interface {
	Commit(message string) (string, error)
}

// Params configures a Tracker. Store is required.
type Params struct {
	Store     *ledger.Store
	Step      int64            // rounding step; 0 means allocate.DefaultStep
	Now       func() time.Time // defaults to time.Now
	History   HistoryWriter    // optional
	Committer Committer        // optional
	Logger    zerolog.Logger
}

// Tracker runs allocation rounds against a ledger store.
type Tracker struct {
	store     *ledger.Store
	step      int64
	now       func() time.Time
	history   HistoryWriter
	committer Committer
	log       zerolog.Logger
}

// New creates a Tracker and makes sure every ledger file exists.
func New(p Params) (*Tracker, error) {
	if p.Store == nil {
		return nil, fmt.Errorf("tracker: store is required")
	}
	if p.Step == 0 {
		p.Step = allocate.DefaultStep
	}
	if p.Now == nil {
		p.Now = time.Now
	}

	if err := p.Store.Init(); err != nil {
		return nil, fmt.Errorf("initializing ledgers: %w", err)
	}

	return &Tracker{
		store:     p.Store,
		step:      p.Step,
		now:       p.Now,
		history:   p.History,
		committer: p.Committer,
		log:       p.Logger,
	}, nil
}

// Submit validates raw input, splits it, records the round and returns the
// refreshed view with the split breakdown as status.
func (t *Tracker) Submit(raw string) (View, error) {
	amount, err := ParseAmount(raw, t.step)
	if err != nil {
		t.log.Debug().Str("input", raw).Err(err).Msg("input rejected")
		return View{}, err
	}

	alloc, err := t.record(amount, t.now(), "split", raw)
	if err != nil {
		return View{}, err
	}

	view, err := t.read()
	if err != nil {
		return View{}, err
	}
	view.Status = SplitStatus(alloc)
	return view, nil
}

// Record splits an already-parsed amount at the given time. The amount is
// rounded to the tracker's step first; source labels the round in history.
func (t *Tracker) Record(amount int64, at time.Time, source string) (model.Allocation, error) {
	rounded, err := checkRounded(amount, t.step)
	if err != nil {
		return model.Allocation{}, err
	}
	return t.record(rounded, at, source, fmt.Sprintf("%d", amount))
}

// Reload re-reads every ledger.
func (t *Tracker) Reload() (View, error) {
	view, err := t.read()
	if err != nil {
		return View{}, err
	}
	view.Status = StatusReloaded
	return view, nil
}

// record appends one entry per bucket. Appends are not rolled back if a
// later one fails.
func (t *Tracker) record(amount int64, at time.Time, source, input string) (model.Allocation, error) {
	alloc, err := allocate.Allocate(amount)
	if err != nil {
		return model.Allocation{}, fmt.Errorf("allocating %d: %w", amount, err)
	}

	for _, info := range model.Buckets() {
		part := alloc.For(info.Bucket)
		if err := t.store.Append(info.Bucket, at, part); err != nil {
			t.log.Error().Err(err).Str("bucket", string(info.Bucket)).Int64("amount", part).Msg("ledger append failed")
			return model.Allocation{}, err
		}
	}

	t.log.Info().
		Str("source", source).
		Int64("amount", amount).
		Int64("income", alloc.Income).
		Int64("savings", alloc.Savings).
		Int64("reserve", alloc.Reserve).
		Msg("split recorded")

	roundID := t.writeHistory(amount, at, source, input, alloc)
	t.commit(roundID, amount, alloc)

	return alloc, nil
}

func (t *Tracker) writeHistory(amount int64, at time.Time, source, input string, alloc model.Allocation) string {
	if t.history == nil {
		return ""
	}
	roundID, err := t.history.NextRoundID(at)
	if err != nil {
		t.log.Warn().Err(err).Msg("could not assign round ID")
		return ""
	}
	entry := history.Entry{
		Timestamp:  at,
		RoundID:    roundID,
		Source:     source,
		Input:      input,
		Amount:     amount,
		Allocation: alloc,
	}
	if err := t.history.Append(entry); err != nil {
		t.log.Warn().Err(err).Msg("could not write activity log")
		return ""
	}
	return roundID
}

func (t *Tracker) commit(roundID string, amount int64, alloc model.Allocation) {
	if t.committer == nil {
		return
	}
	msg := fmt.Sprintf("split: %d -> %d/%d/%d", amount, alloc.Income, alloc.Savings, alloc.Reserve)
	if roundID != "" {
		msg = fmt.Sprintf("split %s: %d -> %d/%d/%d", roundID, amount, alloc.Income, alloc.Savings, alloc.Reserve)
	}
	hash, err := t.committer.Commit(msg)
	if err != nil {
		t.log.Warn().Err(err).Msg("auto-commit failed")
		return
	}
	t.log.Debug().Str("commit", hash).Msg("committed")
}

func (t *Tracker) read() (View, error) {
	var view View
	for _, info := range model.Buckets() {
		total, err := t.store.Total(info.Bucket)
		if err != nil {
			return View{}, fmt.Errorf("reading totals: %w", err)
		}
		view.Rows = append(view.Rows, Row{
			Bucket: info.Bucket,
			Label:  info.Label,
			Last:   t.store.Last(info.Bucket),
			Total:  total,
		})
	}
	return view, nil
}
