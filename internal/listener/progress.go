package listener

import (
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"

	"github.com/dotsoulja/dotgo-watchcode/internal/applog"
	"github.com/dotsoulja/dotgo-watchcode/internal/media"
	"github.com/dotsoulja/dotgo-watchcode/internal/worker"
)

// Progress reports periodic human-readable progress lines: every
// time the Worker's computed percent, truncated to an integer, is a
// multiple of 5 greater than the last one reported, it logs
// percent, frame count, timemark, current fps, elapsed wall time, ETA, and
// speed (currentFps over the input's average framerate).
type Progress struct {
	Logger    applog.Logger
	Duration  float64 // input.format.duration, 0 if absent
	Framerate float64 // average framerate of the first video stream, 1 if absent

	start        time.Time
	lastReported int
}

// NewProgress derives Duration/Framerate from input.
func NewProgress(input *media.InputMedia, logger applog.Logger) *Progress {
	return &Progress{
		Logger:       logger,
		Duration:     input.Duration(),
		Framerate:    averageFramerate(input),
		lastReported: -1,
	}
}

func averageFramerate(input *media.InputMedia) float64 {
	for _, s := range input.Streams {
		if s.CodecType != media.CodecVideo {
			continue
		}
		raw, ok := s.Extra["avg_frame_rate"].(string)
		if !ok || raw == "" {
			return 1
		}
		parts := strings.SplitN(raw, "/", 2)
		if len(parts) != 2 {
			return 1
		}
		num, errN := strconv.ParseFloat(parts[0], 64)
		den, errD := strconv.ParseFloat(parts[1], 64)
		if errN != nil || errD != nil || den == 0 {
			return 1
		}
		return num / den
	}
	return 1
}

func (p *Progress) OnStart([]string) {
	p.start = time.Now()
}

func (p *Progress) OnLine(string) {}

func (p *Progress) OnProgress(pr worker.Progress) {
	percent := int(pr.Percent)
	if percent <= p.lastReported || percent%5 != 0 {
		return
	}
	p.lastReported = percent

	elapsed := time.Since(p.start)
	speed := 0.0
	if p.Framerate > 0 {
		speed = pr.CurrentFps / p.Framerate
	}

	eta := "--:--:--"
	if speed > 0 && p.Duration > 0 {
		remaining := p.Duration - pr.TimemarkSeconds
		etaSeconds := remaining / speed
		if !math.IsNaN(etaSeconds) && !math.IsInf(etaSeconds, 0) && etaSeconds >= 0 {
			eta = formatDuration(etaSeconds)
		}
	}

	if p.Logger != nil {
		p.Logger.Infof("progress %d%% frame=%d timemark=%s fps=%.2f elapsed=%s eta=%s speed=%.2fx",
			percent, pr.Frames, pr.Timemark, pr.CurrentFps, formatDuration(elapsed.Seconds()), eta, speed)
	}
}

func (p *Progress) OnEnd() {}

func (p *Progress) OnFailed(error) {}

// formatDuration renders seconds as "HH:mm:ss", prefixed with "Dd " when
// it spans a day or more.
func formatDuration(seconds float64) string {
	total := int64(seconds)
	days := total / 86400
	total %= 86400
	h := total / 3600
	total %= 3600
	m := total / 60
	s := total % 60
	if days > 0 {
		return fmt.Sprintf("%dd %02d:%02d:%02d", days, h, m, s)
	}
	return fmt.Sprintf("%02d:%02d:%02d", h, m, s)
}
