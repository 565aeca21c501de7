package mapping

import (
	"testing"

	"github.com/dotsoulja/dotgo-watchcode/internal/applog"
	"github.com/dotsoulja/dotgo-watchcode/internal/media"
	"github.com/dotsoulja/dotgo-watchcode/internal/profile"
	"github.com/dotsoulja/dotgo-watchcode/internal/snippet"
)

func testLogger() applog.Logger { return &applog.ConsoleLogger{Verbose: false} }

func mustBuild(t *testing.T, p *profile.Profile, input *media.InputMedia) []*media.OutputMedia {
	t.Helper()
	plan, err := BuildPlan(p, input, snippet.NewResolver(), testLogger())
	if err != nil {
		t.Fatalf("BuildPlan error: %v", err)
	}
	return plan
}

// Scenario A: default copy of a two-stream file.
func TestScenarioA_DefaultCopyTwoStreams(t *testing.T) {
	p := &profile.Profile{
		Output: profile.OutputConfig{
			DefaultExtension: "mkv",
			Mappings: []profile.Mapping{
				{ID: "m1", Output: "{fn}", Format: "mkv"},
			},
		},
	}
	input := &media.InputMedia{
		ID:   0,
		Path: media.NewPath("film.mp4"),
		Streams: []media.InputStream{
			{Index: 0, CodecType: media.CodecVideo, CodecName: "h264"},
			{Index: 1, CodecType: media.CodecAudio, CodecName: "aac"},
		},
	}

	plan := mustBuild(t, p, input)
	if len(plan) != 1 {
		t.Fatalf("got %d outputs, want 1", len(plan))
	}
	om := plan[0]
	if om.Path.String() != "film.mkv" {
		t.Fatalf("got path %q, want film.mkv", om.Path.String())
	}
	if len(om.Streams) != 2 {
		t.Fatalf("got %d streams, want 2", len(om.Streams))
	}
	if om.Streams[0].Params[0] != "-map 0:0" || om.Streams[0].Params[1] != "-c:0 copy" {
		t.Fatalf("stream 0 params = %v", om.Streams[0].Params)
	}
	if om.Streams[1].Params[0] != "-map 0:1" || om.Streams[1].Params[1] != "-c:1 copy" {
		t.Fatalf("stream 1 params = %v", om.Streams[1].Params)
	}
}

// Scenario B: conditional mapping skipped.
func TestScenarioB_ConditionalMappingSkipped(t *testing.T) {
	p := &profile.Profile{
		Output: profile.OutputConfig{
			DefaultExtension: "mkv",
			Mappings: []profile.Mapping{
				{ID: "m1", Output: "{fn}", When: "input.format.duration > 3600"},
			},
		},
	}
	input := &media.InputMedia{
		Path:   media.NewPath("film.mp4"),
		Format: map[string]any{"duration": float64(1200)},
		Streams: []media.InputStream{
			{Index: 0, CodecType: media.CodecVideo},
		},
	}
	plan := mustBuild(t, p, input)
	if len(plan) != 0 {
		t.Fatalf("got %d outputs, want 0 (skipped)", len(plan))
	}
}

// Scenario C: per-audio-stream extraction.
func TestScenarioC_PerAudioStreamExtraction(t *testing.T) {
	p := &profile.Profile{
		Output: profile.OutputConfig{
			DefaultExtension: "mkv",
			Mappings: []profile.Mapping{
				{ID: "m1", On: "audio", Output: "{fn}.{lng}", Params: []string{"-c:a copy"}},
			},
		},
	}
	input := &media.InputMedia{
		Path: media.NewPath("film.mp4"),
		Streams: []media.InputStream{
			{Index: 0, CodecType: media.CodecVideo, CodecName: "h264"},
			{Index: 1, CodecType: media.CodecAudio, CodecName: "aac", Tags: map[string]any{"language": "eng"}},
			{Index: 2, CodecType: media.CodecAudio, CodecName: "aac", Tags: map[string]any{"language": "fra"}},
		},
	}
	plan := mustBuild(t, p, input)
	if len(plan) != 2 {
		t.Fatalf("got %d outputs, want 2", len(plan))
	}
	if plan[0].Path.String() != "film.eng.aac" {
		t.Fatalf("got %q, want film.eng.aac", plan[0].Path.String())
	}
	if plan[0].Streams[0].Params[0] != "-map 0:1" {
		t.Fatalf("got %v", plan[0].Streams[0].Params)
	}
	if plan[1].Path.String() != "film.fra.aac" {
		t.Fatalf("got %q, want film.fra.aac", plan[1].Path.String())
	}
	if plan[1].Streams[0].Params[0] != "-map 0:2" {
		t.Fatalf("got %v", plan[1].Streams[0].Params)
	}
}

// Scenario D: chapters, no synthetic chapter needed.
func TestScenarioD_Chapters(t *testing.T) {
	p := &profile.Profile{
		Output: profile.OutputConfig{
			DefaultExtension: "mkv",
			Mappings: []profile.Mapping{
				{ID: "m1", On: "chapters", Output: "{fn}.ch{{chapter.number}}"},
			},
		},
	}
	input := &media.InputMedia{
		Path:   media.NewPath("film.mp4"),
		Format: map[string]any{"duration": float64(300)},
		Streams: []media.InputStream{
			{Index: 0, CodecType: media.CodecVideo},
		},
		Chapters: []media.Chapter{
			{TimeBase: "1/1000", Start: 0, StartTime: 0, End: 100000, EndTime: 100},
			{TimeBase: "1/1000", Start: 100000, StartTime: 100, End: 200000, EndTime: 200},
			{TimeBase: "1/1000", Start: 200000, StartTime: 200, End: 300000, EndTime: 300},
		},
	}
	plan := mustBuild(t, p, input)
	if len(plan) != 3 {
		t.Fatalf("got %d outputs, want 3", len(plan))
	}
	want := []string{"film.ch1.mkv", "film.ch2.mkv", "film.ch3.mkv"}
	for i, w := range want {
		if plan[i].Path.String() != w {
			t.Fatalf("output %d: got %q, want %q", i, plan[i].Path.String(), w)
		}
	}
}

func TestOutputIdsContiguous(t *testing.T) {
	p := &profile.Profile{
		Output: profile.OutputConfig{
			DefaultExtension: "mkv",
			Mappings: []profile.Mapping{
				{ID: "m1", On: "audio", Output: "{fn}.{lng}"},
			},
		},
	}
	input := &media.InputMedia{
		Path: media.NewPath("film.mp4"),
		Streams: []media.InputStream{
			{Index: 0, CodecType: media.CodecAudio, CodecName: "aac", Tags: map[string]any{"language": "eng"}},
			{Index: 1, CodecType: media.CodecAudio, CodecName: "aac", Tags: map[string]any{"language": "fra"}},
		},
	}
	plan := mustBuild(t, p, input)
	for i, om := range plan {
		if om.ID != i {
			t.Fatalf("output %d has id %d, want contiguous ids from 0", i, om.ID)
		}
	}
}
