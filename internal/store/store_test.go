package store

import (
	"context"
	"database/sql"
	"os"
	"path/filepath"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/roach88/numconform/internal/backend"
	"github.com/roach88/numconform/internal/harness"
	"github.com/roach88/numconform/internal/testutil"
)

// createTestStore opens a fresh store with fixed run IDs and a
// deterministic clock.
func createTestStore(t *testing.T, ids ...string) *Store {
	t.Helper()
	path := filepath.Join(t.TempDir(), "test.db")
	s, err := Open(path,
		WithIDGenerator(testutil.NewFixedIDGenerator(ids...)),
		WithClock(testutil.NewDeterministicClock()),
	)
	require.NoError(t, err)
	t.Cleanup(func() { s.Close() })
	return s
}

func testReport(suite string, verdicts ...harness.Verdict) *harness.Report {
	r := harness.NewReport(suite, backend.Legacy)
	for _, v := range verdicts {
		r.Add(v)
	}
	return r
}

func verdict(name string, op backend.Op, st harness.Status) harness.Verdict {
	return harness.Verdict{Scenario: name, Op: op, Status: st}
}

func TestOpen_CreatesNewDatabase(t *testing.T) {
	path := filepath.Join(t.TempDir(), "test.db")

	s, err := Open(path)
	require.NoError(t, err)
	defer s.Close()

	_, err = os.Stat(path)
	assert.NoError(t, err, "database file was not created")
}

func TestOpen_Idempotent(t *testing.T) {
	path := filepath.Join(t.TempDir(), "test.db")

	for i := 0; i < 3; i++ {
		s, err := Open(path)
		require.NoError(t, err, "Open() iteration %d", i)
		s.Close()
	}

	s, err := Open(path)
	require.NoError(t, err)
	defer s.Close()

	for _, table := range []string{"runs", "verdicts"} {
		var name string
		err := s.db.QueryRow(
			"SELECT name FROM sqlite_master WHERE type='table' AND name=?", table,
		).Scan(&name)
		assert.NoError(t, err, "table %q not found after idempotent opens", table)
	}

	var version int
	require.NoError(t, s.db.QueryRow("PRAGMA user_version").Scan(&version))
	assert.Equal(t, currentSchemaVersion, version)
}

func TestOpen_Pragmas(t *testing.T) {
	s := createTestStore(t)
	ctx := context.Background()

	assert.NoError(t, s.verifyPragma(ctx, "journal_mode", "wal"))
	assert.NoError(t, s.verifyPragma(ctx, "synchronous", "1"))
	assert.NoError(t, s.verifyPragma(ctx, "busy_timeout", "5000"))
	assert.NoError(t, s.verifyPragma(ctx, "foreign_keys", "1"))
}

func TestClose_NilDB(t *testing.T) {
	var s Store
	assert.NoError(t, s.Close())
}

func TestSaveReport_RoundTrip(t *testing.T) {
	s := createTestStore(t, "run-1")
	ctx := context.Background()

	report := testReport("basic",
		verdict("a", backend.OpFormat, harness.StatusPass),
		harness.Verdict{
			Scenario:   "b",
			Op:         backend.OpParse,
			Status:     harness.StatusGap,
			Diagnostic: "Expected: 1, got: 2",
			Gaps:       []string{"parseCaseSensitive"},
		},
	)
	report.Incomplete = true

	id, err := s.SaveReport(ctx, report)
	require.NoError(t, err)
	assert.Equal(t, "run-1", id)

	run, err := s.ReadRun(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, int64(1), run.Seq)
	assert.Equal(t, "basic", run.Suite)
	assert.Equal(t, backend.Legacy, run.Backend)
	assert.True(t, run.StartedAt.Equal(testutil.Epoch))
	assert.True(t, run.Incomplete)
	assert.Equal(t, harness.Summary{Total: 2, Pass: 1, Gap: 1}, run.Summary)

	got, err := s.ReadReport(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, report, got)
}

func TestReadRun_NotFound(t *testing.T) {
	s := createTestStore(t)

	_, err := s.ReadRun(context.Background(), "missing")
	require.ErrorIs(t, err, ErrRunNotFound)
	assert.NotErrorIs(t, err, sql.ErrNoRows)
}

func TestReadVerdicts_EmptyRun(t *testing.T) {
	s := createTestStore(t, "run-1")
	ctx := context.Background()

	id, err := s.SaveReport(ctx, testReport("empty"))
	require.NoError(t, err)

	verdicts, err := s.ReadVerdicts(ctx, id)
	require.NoError(t, err)
	assert.NotNil(t, verdicts)
	assert.Empty(t, verdicts)
}

func TestListRuns_FilterAndOrder(t *testing.T) {
	s := createTestStore(t, "r1", "r2", "r3")
	ctx := context.Background()

	_, err := s.SaveReport(ctx, testReport("alpha"))
	require.NoError(t, err)
	platform := harness.NewReport("alpha", backend.Platform)
	_, err = s.SaveReport(ctx, platform)
	require.NoError(t, err)
	_, err = s.SaveReport(ctx, testReport("beta"))
	require.NoError(t, err)

	all, err := s.ListRuns(ctx, RunFilter{})
	require.NoError(t, err)
	require.Len(t, all, 3)
	assert.Equal(t, []string{"r1", "r2", "r3"}, []string{all[0].ID, all[1].ID, all[2].ID})
	assert.Equal(t, []int64{1, 2, 3}, []int64{all[0].Seq, all[1].Seq, all[2].Seq})

	alpha, err := s.ListRuns(ctx, RunFilter{Suite: "alpha"})
	require.NoError(t, err)
	assert.Len(t, alpha, 2)

	legacyAlpha, err := s.ListRuns(ctx, RunFilter{Suite: "alpha", Backend: backend.Legacy})
	require.NoError(t, err)
	require.Len(t, legacyAlpha, 1)
	assert.Equal(t, "r1", legacyAlpha[0].ID)

	none, err := s.ListRuns(ctx, RunFilter{Suite: "gamma"})
	require.NoError(t, err)
	assert.NotNil(t, none)
	assert.Empty(t, none)
}

func TestSaveReport_DuplicateIDFails(t *testing.T) {
	s := createTestStore(t, "same", "same")
	ctx := context.Background()

	_, err := s.SaveReport(ctx, testReport("x", verdict("a", backend.OpFormat, harness.StatusPass)))
	require.NoError(t, err)
	_, err = s.SaveReport(ctx, testReport("x", verdict("a", backend.OpFormat, harness.StatusFail)))
	require.Error(t, err)

	// The failed transaction left nothing behind.
	runs, err := s.ListRuns(ctx, RunFilter{})
	require.NoError(t, err)
	assert.Len(t, runs, 1)
	verdicts, err := s.ReadVerdicts(ctx, "same")
	require.NoError(t, err)
	require.Len(t, verdicts, 1)
	assert.Equal(t, harness.StatusPass, verdicts[0].Status)
}

func TestUUIDv7Generator(t *testing.T) {
	g := UUIDv7Generator{}
	a, b := g.Generate(), g.Generate()

	parsed, err := uuid.Parse(a)
	require.NoError(t, err)
	assert.Equal(t, uuid.Version(7), parsed.Version())
	assert.NotEqual(t, a, b)
}

func TestOpen_DefaultsToUUIDv7(t *testing.T) {
	s, err := Open(filepath.Join(t.TempDir(), "test.db"))
	require.NoError(t, err)
	defer s.Close()

	id, err := s.SaveReport(context.Background(), testReport("x"))
	require.NoError(t, err)
	_, err = uuid.Parse(id)
	assert.NoError(t, err)
}
