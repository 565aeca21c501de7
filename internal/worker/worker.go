package worker

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"regexp"
	"strconv"
	"strings"
	"syscall"

	"github.com/dotsoulja/dotgo-watchcode/internal/media"
)

var (
	frameLineRe = regexp.MustCompile(`^frame=\s*\d+`)
	frameRe     = regexp.MustCompile(`frame=\s*(\d+)`)
	fpsRe       = regexp.MustCompile(`fps=\s*([\d.]+)`)
	timeRe      = regexp.MustCompile(`time=(\d+):(\d+):(\d+(?:\.\d+)?)`)
)

// Worker assembles one validated plan (an InputMedia plus its resolved
// OutputMedia list) into a single ffmpeg subprocess invocation and drives
// its lifecycle through a fixed, ordered set of Observers: stream stderr,
// parse progress lines, and surface start/line/progress/end/failed events
// to whatever observers were registered at construction time.
//
// A Worker is single-use: Run may be called at most once.
type Worker struct {
	BinaryName string // defaults to "ffmpeg"
	InputRoot  string // absolute directory input.Path is relative to
	OutputRoot string // absolute directory each OutputMedia.Path is relative to

	Input *media.InputMedia
	Plan  []*media.OutputMedia

	observers []Observer
	executed  bool
}

// New builds a Worker for one plan. inputRoot/outputRoot are the absolute
// directories the InputMedia/OutputMedia paths are kept relative to.
func New(input *media.InputMedia, plan []*media.OutputMedia, inputRoot, outputRoot string) *Worker {
	return &Worker{Input: input, Plan: plan, InputRoot: inputRoot, OutputRoot: outputRoot}
}

// Use registers observers, in the order given, as the fixed list driven by
// Run. Per the Observer design note this is a known ordered list owned by
// the Worker, not a dynamic pub/sub bus — callers wire the canonical
// Logging/Progress/Post listeners here once, at construction time.
func (w *Worker) Use(observers ...Observer) *Worker {
	w.observers = append(w.observers, observers...)
	return w
}

func (w *Worker) binary() string {
	if w.BinaryName == "" {
		return "ffmpeg"
	}
	return w.BinaryName
}

// OutputPaths returns the absolute path of every planned output, in
// builder order — used by PostListener to clean up on failure and by
// Run to create output directories up front.
func (w *Worker) OutputPaths() []string {
	paths := make([]string, len(w.Plan))
	for i, om := range w.Plan {
		paths[i] = filepath.Join(w.OutputRoot, om.Path.String())
	}
	return paths
}

// Run assembles and launches the ffmpeg invocation, streaming stderr and
// emitting the fixed Worker event sequence: exactly one Start, then any
// number of Line/Progress, then exactly one of End or Failed.
func (w *Worker) Run(ctx context.Context) error {
	if w.executed {
		return &WorkerError{Kind: KindAlreadyExecuted, Op: "run", Err: fmt.Errorf("worker already executed")}
	}
	w.executed = true

	for _, p := range w.OutputPaths() {
		if err := os.MkdirAll(filepath.Dir(p), 0o755); err != nil {
			return &WorkerError{Kind: KindFileSystemError, Op: "mkdir_output", Err: err}
		}
	}

	args := w.assembleArgs()
	w.notifyStart(append([]string{w.binary()}, args...))

	cmd := exec.CommandContext(ctx, w.binary(), args...)
	stderr, err := cmd.StderrPipe()
	if err != nil {
		werr := &WorkerError{Kind: KindTranscodeFailed, Op: "stderr_pipe", Err: err}
		w.notifyFailed(werr)
		return werr
	}

	if err := cmd.Start(); err != nil {
		werr := &WorkerError{Kind: KindTranscodeFailed, Op: "start", Err: err}
		w.notifyFailed(werr)
		return werr
	}

	var tail []string
	duration := w.Input.Duration()
	scanner := bufio.NewScanner(stderr)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	for scanner.Scan() {
		line := scanner.Text()
		tail = append(tail, line)
		if len(tail) > 50 {
			tail = tail[len(tail)-50:]
		}

		if strings.Contains(line, "Press ") {
			continue
		}
		if frameLineRe.MatchString(line) {
			w.notifyProgress(parseProgress(line, duration))
			continue
		}
		w.notifyLine(line)
	}

	waitErr := cmd.Wait()
	if waitErr != nil {
		if cmd.Process != nil {
			_ = cmd.Process.Signal(syscall.SIGINT)
		}
		msg := trimTrailingBlankLines(strings.Join(tail, "\n"))
		werr := &WorkerError{Kind: KindTranscodeFailed, Op: "wait", Err: fmt.Errorf("%s: %w", msg, waitErr)}
		w.notifyFailed(werr)
		return werr
	}

	w.notifyEnd()
	return nil
}

// assembleArgs builds the ffmpeg argument list: input path and input
// options, then for each OutputMedia (in builder order) its
// streams' options followed by its own global options, then the output
// path. -y is passed unconditionally since an unattended watcher has no
// terminal to answer ffmpeg's overwrite prompt.
func (w *Worker) assembleArgs() []string {
	args := []string{"-y", "-i", filepath.Join(w.InputRoot, w.Input.Path.String())}
	args = append(args, flattenParams(w.Input.Params)...)

	for _, om := range w.Plan {
		for _, os := range om.Streams {
			args = append(args, flattenParams(os.Params)...)
		}
		args = append(args, flattenParams(om.Params)...)
		args = append(args, filepath.Join(w.OutputRoot, om.Path.String()))
	}
	return args
}

// flattenParams splits each resolved param string ("-map 0:0", "-c:0
// copy") on whitespace into the separate argv entries exec.Command needs.
func flattenParams(params []string) []string {
	var out []string
	for _, p := range params {
		out = append(out, strings.Fields(p)...)
	}
	return out
}

func (w *Worker) notifyStart(cmdLine []string) {
	for _, o := range w.observers {
		o.OnStart(cmdLine)
	}
}

func (w *Worker) notifyLine(line string) {
	for _, o := range w.observers {
		o.OnLine(line)
	}
}

func (w *Worker) notifyProgress(p Progress) {
	for _, o := range w.observers {
		o.OnProgress(p)
	}
}

func (w *Worker) notifyEnd() {
	for _, o := range w.observers {
		o.OnEnd()
	}
}

func (w *Worker) notifyFailed(err error) {
	for _, o := range w.observers {
		o.OnFailed(err)
	}
}

// parseProgress extracts frame count, fps, and timemark from one ffmpeg
// stats line ("frame=  123 fps= 25 ... time=00:00:05.00 ...") and computes
// percent against duration (0 when duration is unknown).
func parseProgress(line string, duration float64) Progress {
	p := Progress{}
	if m := frameRe.FindStringSubmatch(line); m != nil {
		p.Frames, _ = strconv.Atoi(m[1])
	}
	if m := fpsRe.FindStringSubmatch(line); m != nil {
		p.CurrentFps, _ = strconv.ParseFloat(m[1], 64)
	}
	if m := timeRe.FindStringSubmatch(line); m != nil {
		p.Timemark = fmt.Sprintf("%s:%s:%s", m[1], m[2], m[3])
		h, _ := strconv.ParseFloat(m[1], 64)
		mi, _ := strconv.ParseFloat(m[2], 64)
		s, _ := strconv.ParseFloat(m[3], 64)
		p.TimemarkSeconds = h*3600 + mi*60 + s
		if duration > 0 {
			p.Percent = (p.TimemarkSeconds / duration) * 100
		}
	}
	return p
}

// trimTrailingBlankLines removes trailing empty lines from a buffered
// stderr tail before it's surfaced as an error message.
func trimTrailingBlankLines(s string) string {
	lines := strings.Split(s, "\n")
	for len(lines) > 0 && strings.TrimSpace(lines[len(lines)-1]) == "" {
		lines = lines[:len(lines)-1]
	}
	return strings.Join(lines, "\n")
}
