// Package listener implements the three canonical WorkerListeners:
// Logging, Progress, and Post. Each is a worker.Observer driven by the
// Worker's fixed event sequence.
package listener

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/dotsoulja/dotgo-watchcode/internal/applog"
	"github.com/dotsoulja/dotgo-watchcode/internal/worker"
)

// Logging buffers the command line plus every stderr Line event for one
// job, then writes that buffer to a per-run log file on success (only if
// WriteLog is set) or unconditionally on failure.
type Logging struct {
	OutputDir string
	InputStem string // input.Path.Filename, used in the log filename
	WriteLog  bool
	Logger    applog.Logger

	lines []string
}

func NewLogging(outputDir, inputStem string, writeLog bool, logger applog.Logger) *Logging {
	return &Logging{OutputDir: outputDir, InputStem: inputStem, WriteLog: writeLog, Logger: logger}
}

func (l *Logging) OnStart(commandLine []string) {
	l.lines = append(l.lines, strings.Join(commandLine, " "))
}

func (l *Logging) OnLine(line string) {
	l.lines = append(l.lines, line)
}

func (l *Logging) OnProgress(worker.Progress) {}

func (l *Logging) OnEnd() {
	if !l.WriteLog {
		return
	}
	if _, err := l.write(); err != nil && l.Logger != nil {
		l.Logger.Warnf("logging listener: failed to write log: %v", err)
	}
}

func (l *Logging) OnFailed(error) {
	path, err := l.write()
	if err != nil {
		if l.Logger != nil {
			l.Logger.Errorf("logging listener: failed to write failure log: %v", err)
		}
		return
	}
	if l.Logger != nil {
		l.Logger.Errorf("transcode failed, log written to %s", path)
	}
}

// write unconditionally writes the buffered lines to
// <output_dir>/<input_stem>.<YYYYMMDD-HHmmssSSS>.log and returns the path.
func (l *Logging) write() (string, error) {
	if err := os.MkdirAll(l.OutputDir, 0o755); err != nil {
		return "", err
	}
	stamp := time.Now().Format("20060102-150405000")
	path := filepath.Join(l.OutputDir, fmt.Sprintf("%s.%s.log", l.InputStem, stamp))
	if err := os.WriteFile(path, []byte(strings.Join(l.lines, "\n")+"\n"), 0o644); err != nil {
		return "", err
	}
	return path, nil
}
