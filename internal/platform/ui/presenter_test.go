// internal/platform/ui/presenter_test.go
package ui

import (
	"bytes"
	"encoding/json"
	"os"
	"strings"
	"testing"
	"time"

	"github.com/pterm/pterm"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"examguard/internal/core/domain"
	"examguard/internal/platform/config"
)

var fixedNow = func() time.Time {
	return time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC)
}

func failedVerdict() domain.Verdict {
	start := fixedNow()
	v := domain.Checking("run-1", start)
	v.Stages = []domain.StageReport{
		{Name: "resolve-executable", Outcome: domain.StageOutcomePassed, Duration: 3 * time.Millisecond},
		{Name: "liveness", Outcome: domain.StageOutcomeFailed, Duration: time.Millisecond},
		{Name: "config-discovery", Outcome: domain.StageOutcomeSkipped},
	}
	return v.Failed(domain.NewFailure(domain.FailureAlreadyRunning), start.Add(2*time.Second))
}

func TestRawPresenter_Text(t *testing.T) {
	var buf bytes.Buffer
	r := NewRawPresenter(&buf, LogFormatText)
	r.now = fixedNow

	r.StatusChanged(domain.StatusChecking)
	r.StageStarted("liveness")
	r.StageFinished(domain.StageReport{Name: "liveness", Outcome: domain.StageOutcomeFailed, Duration: time.Millisecond})
	r.ValidationFinished(failedVerdict())

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	require.Len(t, lines, 4, buf.String())

	assert.Equal(t, `2026-03-01T10:00:00Z INFO  status_changed status=checking label=Checking...`, lines[0])
	assert.Contains(t, lines[1], "stage_started stage=liveness")
	assert.Contains(t, lines[2], "ERROR stage_finished stage=liveness outcome=failed duration=1ms")
	assert.Contains(t, lines[3], `kind=AlreadyRunning reason="Suricata is already running"`)
}

func TestRawPresenter_JSON(t *testing.T) {
	var buf bytes.Buffer
	r := NewRawPresenter(&buf, LogFormatJSON)
	r.now = fixedNow

	r.StageFinished(domain.StageReport{Name: "interfaces", Outcome: domain.StageOutcomePassed, Duration: 2 * time.Second, Detail: "eth0"})

	var entry struct {
		Timestamp string         `json:"timestamp"`
		Level     string         `json:"level"`
		Message   string         `json:"message"`
		Data      map[string]any `json:"data"`
	}
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))

	assert.Equal(t, "stage_finished", entry.Message)
	assert.Equal(t, "INFO", entry.Level)
	assert.Equal(t, "2s", entry.Data["duration"])
	assert.Equal(t, "eth0", entry.Data["detail"])
}

func TestRawPresenter_NeverRetries(t *testing.T) {
	r := NewRawPresenter(&bytes.Buffer{}, LogFormatText)
	assert.False(t, r.ConfirmRetry(failedVerdict()))
}

func TestFormatValue(t *testing.T) {
	tests := []struct {
		in   any
		want string
	}{
		{"eth0", "eth0"},
		{"two words", `"two words"`},
		{"", `""`},
		{[]string{"a", "b"}, "a,b"},
		{1500 * time.Millisecond, "1.5s"},
		{3, "3"},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, formatValue(tt.in), "formatValue(%v)", tt.in)
	}
}

func TestFormatDuration(t *testing.T) {
	tests := []struct {
		in   time.Duration
		want string
	}{
		{250 * time.Millisecond, "250ms"},
		{2500 * time.Millisecond, "2.5s"},
		{90 * time.Second, "1m30s"},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, formatDuration(tt.in))
	}
}

func TestStageTitle(t *testing.T) {
	stages := []string{"a", "b", "c"}

	assert.Equal(t, "[2/3] b", stageTitle(stages, "b"))
	assert.Equal(t, "z", stageTitle(stages, "z"), "unknown stage name unchanged")
}

func TestStageTable(t *testing.T) {
	pterm.DisableStyling()
	defer pterm.EnableStyling()

	data := StageTable(failedVerdict().Stages)

	require.Len(t, data, 4, "header + 3 rows")
	assert.Equal(t, "✗ failed", data[2][1])
	assert.Equal(t, "-", data[3][2], "skipped stage without duration")
}

func TestStatusFromOutcome(t *testing.T) {
	assert.Equal(t, StatusSuccess, statusFromOutcome(domain.StageOutcomePassed))
	assert.Equal(t, StatusError, statusFromOutcome(domain.StageOutcomeFailed))
	assert.Equal(t, StatusSkipped, statusFromOutcome(domain.StageOutcomeSkipped))
}

func TestResolveMode(t *testing.T) {
	f, err := os.CreateTemp(t.TempDir(), "out")
	require.NoError(t, err)
	defer f.Close()

	assert.Equal(t, config.UIRaw, ResolveMode(config.UIAuto, f), "regular file is not a terminal")
	assert.Equal(t, config.UIJSON, ResolveMode(config.UIJSON, f), "explicit mode kept")
	assert.Equal(t, config.UIRaw, ResolveMode("", nil))
}

func TestNew_Modes(t *testing.T) {
	f, err := os.CreateTemp(t.TempDir(), "out")
	require.NoError(t, err)
	defer f.Close()

	assert.IsType(t, &NoopPresenter{}, New(config.UINone, f))
	assert.IsType(t, &PTermPresenter{}, New(config.UIPretty, f))

	p, ok := New(config.UIJSON, f).(*RawPresenter)
	require.True(t, ok)
	assert.Equal(t, LogFormatJSON, p.format)
}

func TestPTermPresenter_Flow(t *testing.T) {
	pterm.DisableOutput()
	defer pterm.EnableOutput()

	p := NewPTermPresenter(false)
	p.Start(RunInfo{Stages: []string{"resolve-executable", "liveness"}, Attempt: 1})
	p.StatusChanged(domain.StatusChecking)

	p.StageStarted("resolve-executable")
	p.StageFinished(domain.StageReport{Name: "resolve-executable", Outcome: domain.StageOutcomePassed})
	p.StageStarted("liveness")
	p.StageFinished(domain.StageReport{Name: "liveness", Outcome: domain.StageOutcomeFailed})

	v := failedVerdict()
	p.ValidationFinished(v)

	assert.Len(t, p.Reports(), 2)
	assert.False(t, p.ConfirmRetry(v), "non-interactive presenter must not retry")
	assert.NoError(t, p.Close())
}

func TestVerdictSummary(t *testing.T) {
	pterm.DisableStyling()
	defer pterm.EnableStyling()

	start := fixedNow()
	ok := domain.Checking("run-2", start).Succeeded(domain.SuccessInfo{
		Executable: "/usr/bin/suricata",
		ConfigPath: "/etc/suricata/suricata.yaml",
		LogPath:    "/var/log/suricata/fast.log",
		Interface:  "eth0",
	}, start.Add(time.Second))

	summary := verdictSummary(ok)
	for _, want := range []string{"/usr/bin/suricata", "fast.log", "eth0", "1.0s"} {
		assert.Contains(t, summary, want)
	}

	assert.Contains(t, verdictSummary(failedVerdict()), "Suricata is already running")
}
