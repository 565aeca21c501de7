// Package orchestrator wires the Watcher, Scheduler, MappingBuilder, and
// Worker together into one data flow: watch a directory, debounce,
// filter, schedule; when a job's turn comes, probe the file, build its
// InputMedia, expand the profile into a plan, hand the plan to a Worker
// with the canonical Logging/Progress/Post listeners attached.
package orchestrator

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/dotsoulja/dotgo-watchcode/internal/applog"
	"github.com/dotsoulja/dotgo-watchcode/internal/excludelist"
	"github.com/dotsoulja/dotgo-watchcode/internal/listener"
	"github.com/dotsoulja/dotgo-watchcode/internal/mapping"
	"github.com/dotsoulja/dotgo-watchcode/internal/media"
	"github.com/dotsoulja/dotgo-watchcode/internal/probe"
	"github.com/dotsoulja/dotgo-watchcode/internal/profile"
	"github.com/dotsoulja/dotgo-watchcode/internal/scheduler"
	"github.com/dotsoulja/dotgo-watchcode/internal/snippet"
	"github.com/dotsoulja/dotgo-watchcode/internal/watcher"
	"github.com/dotsoulja/dotgo-watchcode/internal/worker"
)

// Orchestrator runs one Profile end to end: an initial directory scan,
// optionally followed by a live Watcher, feeding a single-flight
// Scheduler that probes, maps, and transcodes each surviving file.
type Orchestrator struct {
	Profile       *profile.Profile
	Logger        applog.Logger
	FFmpegBinary  string
	FFprobeBinary string
	KeepWatching  bool

	resolver  *snippet.Resolver
	prober    probe.Prober
	excludes  *excludelist.List
	scheduler *scheduler.Scheduler
}

// New builds an Orchestrator for p. FFmpegBinary/FFprobeBinary default to
// "ffmpeg"/"ffprobe" from PATH when empty.
func New(p *profile.Profile, logger applog.Logger, keepWatching bool) *Orchestrator {
	return &Orchestrator{Profile: p, Logger: logger, KeepWatching: keepWatching}
}

// Run performs the initial scan and, when KeepWatching is set, then
// blocks driving the live Watcher until ctx is cancelled. With
// KeepWatching false it returns once the initial scan's jobs have drained.
func (o *Orchestrator) Run(ctx context.Context) error {
	o.resolver = snippet.NewResolver()
	o.prober = probe.Prober{BinaryName: o.FFprobeBinary}
	o.excludes = excludelist.New(o.Profile.Output.Directory)
	o.scheduler = scheduler.New(o.processFile, o.Logger)
	o.scheduler.Start(ctx)

	filters, err := o.buildFilters()
	if err != nil {
		return fmt.Errorf("build filters: %w", err)
	}

	if err := o.scanExisting(filters); err != nil {
		return fmt.Errorf("initial scan: %w", err)
	}

	if !o.KeepWatching {
		o.waitDrain(ctx)
		return nil
	}

	w, err := watcher.New(o.Profile.Input.Directory, filters,
		func(file string) { o.scheduler.Schedule(file) },
		func(file string) { o.scheduler.Cancel(file) },
		o.Logger)
	if err != nil {
		return fmt.Errorf("start watcher: %w", err)
	}
	return w.Run(ctx)
}

func (o *Orchestrator) buildFilters() ([]watcher.Filter, error) {
	include, err := o.Profile.Input.IncludeRegexp()
	if err != nil {
		return nil, err
	}
	exclude, err := o.Profile.Input.ExcludeRegexp()
	if err != nil {
		return nil, err
	}
	return []watcher.Filter{
		watcher.ExcludeListFilter{Excludes: o.excludes, Root: o.Profile.Input.Directory},
		watcher.ExtensionFilter{Include: include, Exclude: exclude},
		watcher.ProbeFilter{Prober: o.prober},
	}, nil
}

// scanExisting walks the input directory once at startup, scheduling
// every file that survives the filter chain — the same chain the live
// Watcher applies to newly arriving files.
func (o *Orchestrator) scanExisting(filters []watcher.Filter) error {
	return filepath.Walk(o.Profile.Input.Directory, func(path string, info os.FileInfo, err error) error {
		if err != nil {
			return err
		}
		if info.IsDir() {
			return nil
		}
		pass, reason, err := watcher.RunFilters(filters, path)
		if err != nil {
			if o.Logger != nil {
				o.Logger.Warnf("initial scan: filter error for %q: %v", path, err)
			}
			return nil
		}
		if !pass {
			if o.Logger != nil {
				o.Logger.Debugf("IGNORE: '%s': %s", path, reason)
			}
			return nil
		}
		o.scheduler.Schedule(path)
		return nil
	})
}

// waitDrain blocks until the scheduler has no queued or running job left,
// or ctx is cancelled.
func (o *Orchestrator) waitDrain(ctx context.Context) {
	ticker := time.NewTicker(250 * time.Millisecond)
	defer ticker.Stop()
	for {
		if o.scheduler.Idle() {
			return
		}
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
		}
	}
}

// processFile is the Scheduler's Handler: probe, build the InputMedia,
// expand the profile into a plan, and run it through a Worker with the
// three canonical listeners attached.
func (o *Orchestrator) processFile(ctx context.Context, file string) error {
	rel, err := filepath.Rel(o.Profile.Input.Directory, file)
	if err != nil {
		return err
	}

	result, err := o.prober.Probe(file, "-show_chapters")
	if err != nil {
		if o.Logger != nil {
			o.Logger.Warnf("skipping %q: %v", rel, err)
		}
		return nil
	}

	input := &media.InputMedia{
		ID:       0,
		Path:     media.NewPath(rel),
		Streams:  result.Streams,
		Format:   result.Format,
		Chapters: result.Chapters,
	}
	if err := o.resolveInputParams(input); err != nil {
		return err
	}

	plan, err := mapping.BuildPlan(o.Profile, input, o.resolver, o.Logger)
	if err != nil {
		return err
	}
	if len(plan) == 0 {
		if o.Logger != nil {
			o.Logger.Warnf("No output: skip (%s)", rel)
		}
		return nil
	}

	w := worker.New(input, plan, o.Profile.Input.Directory, o.Profile.Output.Directory)
	w.BinaryName = o.FFmpegBinary

	logging := listener.NewLogging(o.Profile.Output.Directory, input.Path.Filename, o.Profile.Output.WriteLog, o.Logger)
	progress := listener.NewProgress(input, o.Logger)
	post := &listener.Post{
		OutputRoot:         o.Profile.Output.Directory,
		OutputPaths:        w.OutputPaths(),
		InputAbsPath:       file,
		InputRelPath:       rel,
		DeleteAfterProcess: o.Profile.Input.DeleteAfterProcess,
		Excludes:           o.excludes,
		Logger:             o.Logger,
	}
	w.Use(logging, progress, post)

	return w.Run(ctx)
}

// resolveInputParams rewrites InputMedia.Params once, against the base
// {profile, input} context, before any output/stream context exists.
func (o *Orchestrator) resolveInputParams(input *media.InputMedia) error {
	ctx := snippet.Context{Profile: o.Profile.SnippetValue(), Input: input.SnippetValue()}
	resolved := make([]string, len(o.Profile.Input.Params))
	for i, p := range o.Profile.Input.Params {
		v, err := o.resolver.ResolveString(p, ctx)
		if err != nil {
			return err
		}
		resolved[i] = v
	}
	input.Params = resolved
	return nil
}
