package scheduler

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	json "github.com/goccy/go-json"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"mihrab/internal/models"
	"mihrab/internal/services"
	"mihrab/internal/testutil"
)

func newJournalService(t *testing.T) services.JournalServiceInterface {
	t.Helper()
	logger := &testutil.MockLogger{}
	metrics := testutil.NewMockMetrics()
	ledger := models.NewMilestoneLedger()
	milestones := services.NewMilestoneService(ledger, &testutil.MockNotifier{}, logger, metrics)
	return services.NewJournalService(models.NewJournal(), ledger, milestones, logger)
}

func TestFileManager_SaveLoadRoundtrip(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "journal.db")
	now := time.Date(2026, 8, 25, 12, 0, 0, 0, time.UTC)

	src := newJournalService(t)
	_, _, err := src.Log(models.DomainPrayer, "daily", "2026-08-25", 5, now)
	require.NoError(t, err)
	_, _, err = src.Log(models.DomainHabit, "fasting", "2026-08-24", 1, now)
	require.NoError(t, err)

	fm := NewFileManager(&testutil.MockCompressor{}, src, &testutil.MockLogger{})
	require.NoError(t, fm.SaveToFile(path))

	dst := newJournalService(t)
	fm2 := NewFileManager(&testutil.MockCompressor{}, dst, &testutil.MockLogger{})
	require.NoError(t, fm2.LoadFromFile(path))

	records := dst.Records(models.DomainPrayer, "daily")
	require.Len(t, records, 1)
	assert.Equal(t, 5, records[0].Count)
	assert.Equal(t, 2, dst.TotalRecords())

	// Milestones travel with the snapshot.
	snap := dst.GetSnapshot()
	assert.NotEmpty(t, snap.Milestones)
}

func TestFileManager_LoadMissingFileIsFreshInstall(t *testing.T) {
	svc := newJournalService(t)
	fm := NewFileManager(&testutil.MockCompressor{}, svc, &testutil.MockLogger{})
	require.NoError(t, fm.LoadFromFile(filepath.Join(t.TempDir(), "nope.db")))
	assert.Equal(t, 0, svc.TotalRecords())
}

func TestFileManager_LoadPlainJSONFallback(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "journal.db")

	snap := models.Snapshot{
		Journal: map[models.Domain]map[string]map[string]*models.DailyRecord{
			models.DomainScripture: {
				"quran": {"2026-08-25": {Date: "2026-08-25", Count: 10}},
			},
		},
	}
	data, err := json.Marshal(snap)
	require.NoError(t, err)
	require.NoError(t, os.WriteFile(path, data, 0644))

	svc := newJournalService(t)
	// A compressor that rejects the payload forces the plain-JSON path.
	comp := &testutil.MockCompressor{
		DecompressFn: func([]byte) ([]byte, error) { return nil, errors.New("not zstd") },
	}
	fm := NewFileManager(comp, svc, &testutil.MockLogger{})
	require.NoError(t, fm.LoadFromFile(path))

	records := svc.Records(models.DomainScripture, "quran")
	require.Len(t, records, 1)
	assert.Equal(t, 10, records[0].Count)
}

func TestFileManager_LoadGarbageFails(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "journal.db")
	require.NoError(t, os.WriteFile(path, []byte("not json at all"), 0644))

	svc := newJournalService(t)
	fm := NewFileManager(&testutil.MockCompressor{}, svc, &testutil.MockLogger{})
	assert.Error(t, fm.LoadFromFile(path))
}

func TestFileManager_SaveLeavesNoTmpFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "journal.db")

	fm := NewFileManager(&testutil.MockCompressor{}, newJournalService(t), &testutil.MockLogger{})
	require.NoError(t, fm.SaveToFile(path))

	_, err := os.Stat(path)
	assert.NoError(t, err)
	_, err = os.Stat(path + ".tmp")
	assert.True(t, os.IsNotExist(err))
}
