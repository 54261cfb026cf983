package logging

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

func reset(t *testing.T) {
	t.Helper()
	t.Cleanup(func() {
		SetBase(nil)
		require.NoError(t, Initialize(Options{}))
	})
}

func TestProductionModeIsSilent(t *testing.T) {
	reset(t)
	require.NoError(t, Initialize(Options{}))

	assert.False(t, IsDebugMode())
	for _, cat := range AllCategories() {
		assert.False(t, IsCategoryEnabled(cat), "category %s", cat)
	}
	// Must not panic on the no-op path.
	KB("asserted %d facts", 3)
	Get(CategorySim).With("tick", 1).Warn("noop")
}

func TestAllCategoriesLog(t *testing.T) {
	reset(t)
	dir := t.TempDir()
	require.NoError(t, Initialize(Options{DebugMode: true, Level: "debug", Dir: dir}))

	for _, cat := range AllCategories() {
		Get(cat).Info("hello from %s", cat)
	}
	CloseAll()

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	names := make([]string, 0, len(entries))
	for _, e := range entries {
		names = append(names, e.Name())
	}
	date := time.Now().Format("2006-01-02")
	for _, cat := range AllCategories() {
		want := date + "_" + string(cat) + ".log"
		require.Contains(t, names, want)
		data, err := os.ReadFile(filepath.Join(dir, want))
		require.NoError(t, err)
		assert.True(t, strings.Contains(string(data), "hello from "+string(cat)))
	}
}

func TestCategoryFilter(t *testing.T) {
	reset(t)
	require.NoError(t, Initialize(Options{
		DebugMode:  true,
		Categories: map[string]bool{"kb": false, "brain": true},
	}))

	assert.False(t, IsCategoryEnabled(CategoryKB))
	assert.True(t, IsCategoryEnabled(CategoryBrain))
	// Unlisted categories default to enabled.
	assert.True(t, IsCategoryEnabled(CategoryPath))
}

func TestSetBaseRoutesCategories(t *testing.T) {
	reset(t)
	core, logs := observer.New(zapcore.DebugLevel)
	require.NoError(t, Initialize(Options{DebugMode: true, Level: "debug"}))
	SetBase(zap.New(core))

	BrainDebug("goal %d,%d", 3, 4)
	WithEpisode(CategorySim, "ep-1").Info("tick %d", 7)

	entries := logs.All()
	require.Len(t, entries, 2)
	assert.Equal(t, "brain", entries[0].LoggerName)
	assert.Equal(t, "goal 3,4", entries[0].Message)
	assert.Equal(t, "sim", entries[1].LoggerName)
	assert.Equal(t, "ep-1", entries[1].ContextMap()["episode"])
}

func TestInvalidLevel(t *testing.T) {
	reset(t)
	err := Initialize(Options{DebugMode: true, Level: "loud"})
	require.Error(t, err)
}

func TestTimerThreshold(t *testing.T) {
	reset(t)
	core, logs := observer.New(zapcore.DebugLevel)
	require.NoError(t, Initialize(Options{DebugMode: true, Level: "debug"}))
	SetBase(zap.New(core))

	timer := StartTimer(CategoryPath, "FindPath")
	elapsed := timer.StopWithThreshold(-time.Nanosecond)
	assert.GreaterOrEqual(t, int64(elapsed), int64(0))
	require.Equal(t, 1, logs.FilterLevelExact(zapcore.WarnLevel).Len())
}
