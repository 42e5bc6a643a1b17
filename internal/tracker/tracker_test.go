package tracker

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/splitledger/splitledger/internal/history"
	"github.com/splitledger/splitledger/internal/ledger"
	"github.com/splitledger/splitledger/internal/model"
)

var fixedNow = time.Date(2025, 8, 26, 14, 5, 3, 0, time.Local)

type fakeCommitter struct {
	messages []string
	err      error
}

func (f *fakeCommitter) Commit(message string) (string, error) {
	if f.err != nil {
		return "", f.err
	}
	f.messages = append(f.messages, message)
	return "abc1234", nil
}

type testEnv struct {
	root    string
	store   *ledger.Store
	history *history.Log
	commits *fakeCommitter
	tracker *Tracker
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	root := t.TempDir()
	env := &testEnv{
		root:    root,
		store:   ledger.NewStore(ledger.DefaultPaths(filepath.Join(root, "ledgers"))),
		history: history.NewLog(filepath.Join(root, history.DefaultFile)),
		commits: &fakeCommitter{},
	}
	tr, err := New(Params{
		Store:     env.store,
		Now:       func() time.Time { return fixedNow },
		History:   env.history,
		Committer: env.commits,
	})
	require.NoError(t, err)
	env.tracker = tr
	return env
}

func (e *testEnv) ledgerFile(b model.Bucket) string {
	return filepath.Join(e.root, "ledgers", string(b)+".csv")
}

func TestNew_CreatesLedgers(t *testing.T) {
	env := newTestEnv(t)
	for _, info := range model.Buckets() {
		data, err := os.ReadFile(env.ledgerFile(info.Bucket))
		require.NoError(t, err)
		assert.Equal(t, ledger.Header+"\n", string(data))
	}
}

func TestNew_RequiresStore(t *testing.T) {
	_, err := New(Params{})
	assert.Error(t, err)
}

func TestReload_Empty(t *testing.T) {
	env := newTestEnv(t)
	view, err := env.tracker.Reload()
	require.NoError(t, err)

	assert.Equal(t, StatusReloaded, view.Status)
	require.Len(t, view.Rows, 3)
	for _, row := range view.Rows {
		assert.Zero(t, row.Last)
		assert.Zero(t, row.Total)
	}
	assert.Equal(t, "Income 60%", view.Rows[0].Label)
}

func TestSubmit_EndToEnd(t *testing.T) {
	env := newTestEnv(t)

	// Prior appends.
	for _, raw := range []string{"100", "17"} {
		_, err := env.tracker.Submit(raw)
		require.NoError(t, err)
	}
	// 100 -> 60/25/15, 17 -> 15 -> 9/3/3

	view, err := env.tracker.Submit("1000")
	require.NoError(t, err)
	assert.Equal(t, "Split OK: Income 600 | Savings 250 | Reserve 150", view.Status)

	reloaded, err := env.tracker.Reload()
	require.NoError(t, err)

	want := map[model.Bucket][2]int64{
		model.BucketIncome:  {600, 60 + 9 + 600},
		model.BucketSavings: {250, 25 + 3 + 250},
		model.BucketReserve: {150, 15 + 3 + 150},
	}
	for b, w := range want {
		row, ok := reloaded.Row(b)
		require.True(t, ok, "bucket %s", b)
		assert.Equal(t, w[0], row.Last, "last %s", b)
		assert.Equal(t, w[1], row.Total, "total %s", b)
	}

	var sum int64
	for _, row := range reloaded.Rows {
		sum += row.Total
	}
	assert.Equal(t, int64(100+15+1000), sum)
}

func TestSubmit_SharedTimestamp(t *testing.T) {
	env := newTestEnv(t)
	_, err := env.tracker.Submit("1000")
	require.NoError(t, err)

	for _, info := range model.Buckets() {
		entries, err := env.store.Entries(info.Bucket)
		require.NoError(t, err)
		require.Len(t, entries, 1)
		assert.True(t, entries[0].Timestamp.Equal(fixedNow), "bucket %s", info.Bucket)
	}
}

func TestSubmit_RejectsWithoutWriting(t *testing.T) {
	env := newTestEnv(t)

	for _, raw := range []string{"", "abc", "2", "-50"} {
		_, err := env.tracker.Submit(raw)
		require.Error(t, err, "raw %q", raw)
		assert.True(t, IsInputError(err), "raw %q", raw)
	}

	for _, info := range model.Buckets() {
		data, err := os.ReadFile(env.ledgerFile(info.Bucket))
		require.NoError(t, err)
		assert.Equal(t, ledger.Header+"\n", string(data))
	}
	entries, err := env.history.Read()
	require.NoError(t, err)
	assert.Empty(t, entries)
	assert.Empty(t, env.commits.messages)
}

func TestSubmit_DistinctRejections(t *testing.T) {
	env := newTestEnv(t)

	_, err := env.tracker.Submit(" ")
	assert.ErrorIs(t, err, ErrInputEmpty)
	_, err = env.tracker.Submit("ten")
	assert.ErrorIs(t, err, ErrInputNotInteger)
	_, err = env.tracker.Submit("1")
	assert.ErrorIs(t, err, ErrInputNonPositive)
}

func TestSubmit_HistoryAndCommit(t *testing.T) {
	env := newTestEnv(t)
	_, err := env.tracker.Submit("998")
	require.NoError(t, err)
	_, err = env.tracker.Submit("20")
	require.NoError(t, err)

	entries, err := env.history.Read()
	require.NoError(t, err)
	require.Len(t, entries, 2)
	assert.Equal(t, "2025-08-001", entries[0].RoundID)
	assert.Equal(t, "998", entries[0].Input)
	assert.Equal(t, int64(1000), entries[0].Amount)
	assert.Equal(t, model.Allocation{Income: 600, Savings: 250, Reserve: 150}, entries[0].Allocation)
	assert.Equal(t, "2025-08-002", entries[1].RoundID)

	require.Len(t, env.commits.messages, 2)
	assert.Equal(t, "split 2025-08-001: 1000 -> 600/250/150", env.commits.messages[0])
}

func TestSubmit_HandEditedActivityLog(t *testing.T) {
	env := newTestEnv(t)
	_, err := env.tracker.Submit("100")
	require.NoError(t, err)

	f, err := os.OpenFile(env.history.Path(), os.O_APPEND|os.O_WRONLY, 0o644)
	require.NoError(t, err)
	_, err = f.WriteString("edited by hand\n")
	require.NoError(t, err)
	require.NoError(t, f.Close())

	_, err = env.tracker.Submit("20")
	require.NoError(t, err)
	_, err = env.tracker.Submit("20")
	require.NoError(t, err)

	entries, err := env.history.Read()
	require.NoError(t, err)
	require.Len(t, entries, 3)
	assert.Equal(t, "2025-08-003", entries[2].RoundID)

	require.Len(t, env.commits.messages, 3)
	assert.Equal(t, "split 2025-08-002: 20 -> 12/5/3", env.commits.messages[1])
	assert.Equal(t, "split 2025-08-003: 20 -> 12/5/3", env.commits.messages[2])
}

func TestSubmit_CommitFailureDoesNotFailRound(t *testing.T) {
	env := newTestEnv(t)
	env.commits.err = errors.New("git missing")

	view, err := env.tracker.Submit("1000")
	require.NoError(t, err)
	row, _ := view.Row(model.BucketIncome)
	assert.Equal(t, int64(600), row.Total)
}

func TestSubmit_PartialFailureIsNotRolledBack(t *testing.T) {
	root := t.TempDir()
	savingsDir := filepath.Join(root, "savings")
	store := ledger.NewStore(map[model.Bucket]string{
		model.BucketIncome:  filepath.Join(root, "income.csv"),
		model.BucketSavings: filepath.Join(savingsDir, "savings.csv"),
		model.BucketReserve: filepath.Join(root, "reserve.csv"),
	})
	tr, err := New(Params{Store: store, Now: func() time.Time { return fixedNow }})
	require.NoError(t, err)

	// Make the savings ledger unwritable.
	require.NoError(t, os.RemoveAll(savingsDir))
	require.NoError(t, os.WriteFile(savingsDir, []byte("blocked"), 0o644))

	_, err = tr.Submit("1000")
	require.Error(t, err)
	assert.ErrorIs(t, err, ledger.ErrStorageUnavailable)
	assert.False(t, IsInputError(err))

	income, err := store.Total(model.BucketIncome)
	require.NoError(t, err)
	assert.Equal(t, int64(600), income, "income append stays persisted")

	reserve, err := store.Total(model.BucketReserve)
	require.NoError(t, err)
	assert.Zero(t, reserve, "reserve append never ran")

	// The tracker stays usable once storage recovers.
	require.NoError(t, os.Remove(savingsDir))
	_, err = tr.Submit("20")
	require.NoError(t, err)
	savings, err := store.Total(model.BucketSavings)
	require.NoError(t, err)
	assert.Equal(t, int64(5), savings)
}

func TestRecord(t *testing.T) {
	env := newTestEnv(t)
	at := time.Date(2025, 1, 3, 0, 0, 0, 0, time.Local)

	alloc, err := env.tracker.Record(3502, at, "import:chase.csv")
	require.NoError(t, err)
	assert.Equal(t, model.Allocation{Income: 2100, Savings: 875, Reserve: 525}, alloc)

	entries, err := env.store.Entries(model.BucketIncome)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.True(t, entries[0].Timestamp.Equal(at))

	hist, err := env.history.Read()
	require.NoError(t, err)
	require.Len(t, hist, 1)
	assert.Equal(t, "2025-01-001", hist[0].RoundID)
	assert.Equal(t, "import:chase.csv", hist[0].Source)
	assert.Equal(t, "3502", hist[0].Input)

	_, err = env.tracker.Record(2, at, "import:chase.csv")
	assert.ErrorIs(t, err, ErrInputNonPositive)
}

func TestReload_SeesExternalEdits(t *testing.T) {
	env := newTestEnv(t)
	_, err := env.tracker.Submit("1000")
	require.NoError(t, err)

	f, err := os.OpenFile(env.ledgerFile(model.BucketReserve), os.O_APPEND|os.O_WRONLY, 0o644)
	require.NoError(t, err)
	_, err = f.WriteString("2025-08-27;09:00:00;50\n2025-08-27;09:00:01;oops\n")
	require.NoError(t, err)
	require.NoError(t, f.Close())

	view, err := env.tracker.Reload()
	require.NoError(t, err)
	row, _ := view.Row(model.BucketReserve)
	assert.Equal(t, int64(200), row.Total)
	assert.Zero(t, row.Last)
}
