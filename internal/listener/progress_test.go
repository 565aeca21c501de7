package listener

import (
	"fmt"
	"strings"
	"testing"

	"github.com/dotsoulja/dotgo-watchcode/internal/media"
	"github.com/dotsoulja/dotgo-watchcode/internal/worker"
)

type captureLogger struct {
	infos []string
}

func (c *captureLogger) Debugf(format string, args ...any) {}
func (c *captureLogger) Infof(format string, args ...any) {
	c.infos = append(c.infos, fmt.Sprintf(format, args...))
}
func (c *captureLogger) Warnf(format string, args ...any)  {}
func (c *captureLogger) Errorf(format string, args ...any) {}

func TestAverageFramerateParsesRational(t *testing.T) {
	input := &media.InputMedia{Streams: []media.InputStream{
		{CodecType: media.CodecVideo, Extra: map[string]any{"avg_frame_rate": "25/1"}},
	}}
	got := averageFramerate(input)
	if got != 25 {
		t.Fatalf("got %v, want 25", got)
	}
}

func TestAverageFramerateDefaultsToOneWhenAbsent(t *testing.T) {
	input := &media.InputMedia{Streams: []media.InputStream{
		{CodecType: media.CodecVideo, Extra: map[string]any{}},
	}}
	if got := averageFramerate(input); got != 1 {
		t.Fatalf("got %v, want 1", got)
	}
}

func TestAverageFramerateDefaultsToOneWhenNoVideoStream(t *testing.T) {
	input := &media.InputMedia{Streams: []media.InputStream{
		{CodecType: media.CodecAudio, Extra: map[string]any{"avg_frame_rate": "48000/1"}},
	}}
	if got := averageFramerate(input); got != 1 {
		t.Fatalf("got %v, want 1", got)
	}
}

func TestProgressOnlyReportsOnFiveMultiples(t *testing.T) {
	logger := &captureLogger{}
	input := &media.InputMedia{Format: map[string]any{"duration": 100.0}}
	p := NewProgress(input, logger)
	p.OnStart(nil)

	p.OnProgress(worker.Progress{Percent: 3, TimemarkSeconds: 3})
	if len(logger.infos) != 0 {
		t.Fatalf("did not expect a report at 3%%, got %v", logger.infos)
	}

	p.OnProgress(worker.Progress{Percent: 25, TimemarkSeconds: 25, CurrentFps: 10})
	if len(logger.infos) != 1 {
		t.Fatalf("expected exactly one report at 25%%, got %v", logger.infos)
	}
	if !strings.Contains(logger.infos[0], "25%") {
		t.Fatalf("expected report to mention 25%%, got %q", logger.infos[0])
	}

	// A later, lower percent than already reported must never re-report.
	p.OnProgress(worker.Progress{Percent: 20, TimemarkSeconds: 20})
	if len(logger.infos) != 1 {
		t.Fatalf("did not expect a report for a percent already surpassed, got %v", logger.infos)
	}
}

func TestFormatDurationSpansDays(t *testing.T) {
	got := formatDuration(90000) // 1 day, 01:00:00
	if got != "1d 01:00:00" {
		t.Fatalf("got %q", got)
	}
	got = formatDuration(3661)
	if got != "01:01:01" {
		t.Fatalf("got %q", got)
	}
}
