package cli

import (
	"bytes"
	"context"
	"log/slog"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dukerupert/chartmaker/internal/config"
	"github.com/dukerupert/chartmaker/internal/model"
)

// Wednesday; the week starts Monday 2026-02-02.
var wednesday = time.Date(2026, 2, 4, 9, 0, 0, 0, time.UTC)

func fixedNow() time.Time { return wednesday }

func discardLogger() *slog.Logger {
	return slog.New(slog.DiscardHandler)
}

func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	cmd := newRootCmd(fixedNow)
	var out, errOut bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&errOut)
	cmd.SetArgs(args)
	err := cmd.ExecuteContext(context.Background())
	return out.String(), err
}

// useTempDB points the commands at a fresh database file.
func useTempDB(t *testing.T) config.Config {
	t.Helper()
	t.Setenv("CHARTMAKER_CONFIG", "")
	t.Setenv("CHARTMAKER_PROGRESS_BACKEND", "sqlite")
	t.Setenv("CHARTMAKER_DB_PATH", filepath.Join(t.TempDir(), "chartmaker.db"))
	cfg, err := config.Load("")
	require.NoError(t, err)
	return cfg
}

func seed(t *testing.T, cfg config.Config, fn func(a *app)) {
	t.Helper()
	a, err := openApp(cfg, fixedNow, discardLogger())
	require.NoError(t, err)
	defer a.Close()
	fn(a)
}

func TestWeekCmd(t *testing.T) {
	out, err := execute(t, "week")
	require.NoError(t, err)
	assert.Equal(t, "2026-02-02 (today is day 2, Wednesday)\n", out)
}

func TestSetup_InstallsDefaultLogger(t *testing.T) {
	useTempDB(t)
	prev := slog.Default()
	t.Cleanup(func() { slog.SetDefault(prev) })

	cmd := newRootCmd(fixedNow)
	var out, errOut bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&errOut)
	cmd.SetArgs([]string{"reset", "ada", "--yes", "--log-level", "debug"})
	require.NoError(t, cmd.ExecuteContext(context.Background()))

	slog.Debug("after reset", "child", "ada")
	assert.Contains(t, errOut.String(), "after reset")
}

func TestResetCmd_RequiresYes(t *testing.T) {
	useTempDB(t)

	_, err := execute(t, "reset", "ada")
	assert.ErrorIs(t, err, errResetNotConfirmed)
}

func TestResetCmd(t *testing.T) {
	cfg := useTempDB(t)
	ctx := context.Background()
	var taskID string
	seed(t, cfg, func(a *app) {
		task, err := a.svc.AddTask("ada", "Brush teeth", model.CategoryMorning)
		require.NoError(t, err)
		taskID = task.ID
		_, err = a.svc.ToggleTaskCheck(ctx, "ada", task.ID, 0)
		require.NoError(t, err)
	})

	out, err := execute(t, "reset", "ada", "--yes")
	require.NoError(t, err)
	assert.Contains(t, out, "reset ada for week starting 2026-02-02")

	seed(t, cfg, func(a *app) {
		p, err := a.svc.Progress(ctx, "ada")
		require.NoError(t, err)
		assert.NotContains(t, p.TaskChecks, taskID)
	})
}

func TestPrintCmd(t *testing.T) {
	cfg := useTempDB(t)
	ctx := context.Background()
	seed(t, cfg, func(a *app) {
		_, err := a.svc.UpdateChild("ada", "Ada", "7")
		require.NoError(t, err)
		for _, title := range []string{"Brush teeth", "Get dressed", "Make bed", "Breakfast", "Pack bag"} {
			_, err := a.svc.AddTask("ada", title, model.CategoryMorning)
			require.NoError(t, err)
		}
		bath, err := a.svc.AddTask("ada", "Bath", model.CategoryEvening)
		require.NoError(t, err)
		_, err = a.svc.ToggleTaskCheck(ctx, "ada", bath.ID, 2)
		require.NoError(t, err)
		_, err = a.svc.AddChore("ada", "Dishes", "50p")
		require.NoError(t, err)
		require.NoError(t, a.svc.SetRewardGoal("ada", model.RewardGoal{Name: "Lego", TargetAmount: "20", CurrencySymbol: "£"}))
	})

	out, err := execute(t, "print", "ada", "--page-size", "4")
	require.NoError(t, err)

	assert.Contains(t, out, "Ada: week of 2026-02-02")
	assert.Contains(t, out, "Page 1 of 2")
	assert.Contains(t, out, "Page 2 of 2")
	assert.Contains(t, out, "Dishes 50p")
	assert.Contains(t, out, "Saving for: Lego (£20)")

	var bathLine string
	for _, line := range strings.Split(out, "\n") {
		if strings.HasPrefix(line, "Bath") {
			bathLine = line
		}
	}
	require.NotEmpty(t, bathLine)
	assert.Equal(t, 1, strings.Count(bathLine, "[x]"))
	assert.Equal(t, 6, strings.Count(bathLine, "[ ]"))
}

func TestPrintCmd_InvalidPageSize(t *testing.T) {
	useTempDB(t)

	_, err := execute(t, "print", "ada", "--page-size", "5")
	assert.ErrorContains(t, err, "page size 5")
}

func TestProgressKV_Backends(t *testing.T) {
	cfg := config.Default()

	cfg.Progress.Backend = config.BackendMemory
	kv, err := progressKV(cfg, nil)
	require.NoError(t, err)
	assert.NotNil(t, kv)

	cfg.Progress.Backend = config.BackendS3
	_, err = progressKV(cfg, nil)
	assert.Error(t, err)

	cfg.Progress.S3 = config.S3Config{Bucket: "charts", AccessKey: "a", SecretKey: "s", Region: "auto"}
	kv, err = progressKV(cfg, nil)
	require.NoError(t, err)
	assert.NotNil(t, kv)
}
