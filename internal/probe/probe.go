// Package probe invokes the external ffprobe tool and decodes its output
// into the media package's InputStream/Chapter/format shapes: run the
// command, decode the JSON, and let every probed field survive (via an
// Extra passthrough map) rather than being narrowed to the handful of
// fields used for stream resolution and selection.
package probe

import (
	"bytes"
	"encoding/json"
	"fmt"
	"math"
	"os/exec"
	"strconv"

	"github.com/dotsoulja/dotgo-watchcode/internal/media"
)

// Result is the probe's raw findings for one file, before the builder
// assembles them into an InputMedia (which additionally needs the file's
// relative Path and resolved input.params).
type Result struct {
	Streams  []media.InputStream
	Format   map[string]any
	Chapters []media.Chapter
}

// Duration returns Format["duration"] as a float64, or 0 if absent.
func (r Result) Duration() float64 {
	switch v := r.Format["duration"].(type) {
	case float64:
		return v
	}
	return 0
}

// Prober wraps the ffprobe binary. The zero value uses "ffprobe" from PATH.
type Prober struct {
	BinaryName string
}

func (p Prober) binary() string {
	if p.BinaryName == "" {
		return "ffprobe"
	}
	return p.BinaryName
}

// Probe runs ffprobe against path with -show_format, -show_streams, and
// -show_chapters, plus any caller-supplied extraArgs (the ProbeFilter and
// the orchestrator both pass "-show_chapters" again). Returns NotAMedia when ffprobe succeeds but the decoded
// duration is not a finite number, and ProbeFailed for exec/decode
// failures.
func (p Prober) Probe(path string, extraArgs ...string) (*Result, error) {
	args := []string{
		"-v", "error",
		"-print_format", "json",
		"-show_format",
		"-show_streams",
		"-show_chapters",
	}
	args = append(args, extraArgs...)
	args = append(args, path)

	cmd := exec.Command(p.binary(), args...)
	var out bytes.Buffer
	cmd.Stdout = &out
	if err := cmd.Run(); err != nil {
		return nil, &ProbeError{Kind: KindProbeFailed, Op: "exec_ffprobe", Path: path, Err: err}
	}

	var doc struct {
		Streams  []json.RawMessage `json:"streams"`
		Format   json.RawMessage   `json:"format"`
		Chapters []json.RawMessage `json:"chapters"`
	}
	if err := json.Unmarshal(out.Bytes(), &doc); err != nil {
		return nil, &ProbeError{Kind: KindProbeFailed, Op: "unmarshal_ffprobe", Path: path, Err: err}
	}

	result := &Result{}

	for _, raw := range doc.Streams {
		stream, err := decodeStream(raw)
		if err != nil {
			return nil, &ProbeError{Kind: KindProbeFailed, Op: "unmarshal_stream", Path: path, Err: err}
		}
		result.Streams = append(result.Streams, stream)
	}

	format, err := decodeFormat(doc.Format)
	if err != nil {
		return nil, &ProbeError{Kind: KindProbeFailed, Op: "unmarshal_format", Path: path, Err: err}
	}
	result.Format = format

	for _, raw := range doc.Chapters {
		chapter, err := decodeChapter(raw)
		if err != nil {
			return nil, &ProbeError{Kind: KindProbeFailed, Op: "unmarshal_chapter", Path: path, Err: err}
		}
		result.Chapters = append(result.Chapters, chapter)
	}

	if d := result.Duration(); d == 0 || math.IsNaN(d) || math.IsInf(d, 0) {
		return nil, &ProbeError{Kind: KindNotAMedia, Op: "validate_duration", Path: path, Err: fmt.Errorf("no finite duration in probe output")}
	}

	return result, nil
}

func decodeStream(raw json.RawMessage) (media.InputStream, error) {
	var known struct {
		Index       int                  `json:"index"`
		CodecName   string               `json:"codec_name"`
		CodecType   string               `json:"codec_type"`
		Disposition map[string]int       `json:"disposition"`
		Tags        map[string]any       `json:"tags"`
	}
	if err := json.Unmarshal(raw, &known); err != nil {
		return media.InputStream{}, err
	}
	extra, err := extraFields(raw, "index", "codec_name", "codec_type", "disposition", "tags")
	if err != nil {
		return media.InputStream{}, err
	}
	return media.InputStream{
		Index:       known.Index,
		CodecName:   known.CodecName,
		CodecType:   known.CodecType,
		Disposition: known.Disposition,
		Tags:        known.Tags,
		Extra:       extra,
	}, nil
}

func decodeChapter(raw json.RawMessage) (media.Chapter, error) {
	var known struct {
		TimeBase  string          `json:"time_base"`
		Start     int64           `json:"start"`
		StartTime flexibleFloat   `json:"start_time"`
		End       int64           `json:"end"`
		EndTime   flexibleFloat   `json:"end_time"`
	}
	if err := json.Unmarshal(raw, &known); err != nil {
		return media.Chapter{}, err
	}
	extra, err := extraFields(raw, "time_base", "start", "start_time", "end", "end_time", "id")
	if err != nil {
		return media.Chapter{}, err
	}
	return media.Chapter{
		TimeBase:  known.TimeBase,
		Start:     known.Start,
		StartTime: float64(known.StartTime),
		End:       known.End,
		EndTime:   float64(known.EndTime),
		Extra:     extra,
	}, nil
}

// decodeFormat returns the format object as a generic map, coercing the
// duration and bit_rate fields (which ffprobe reports as JSON strings)
// to float64 so snippet arithmetic and the ProbeFilter's finite-
// duration check work without an extra cast at every call site.
func decodeFormat(raw json.RawMessage) (map[string]any, error) {
	if len(raw) == 0 {
		return map[string]any{}, nil
	}
	var m map[string]any
	if err := json.Unmarshal(raw, &m); err != nil {
		return nil, err
	}
	if s, ok := m["duration"].(string); ok {
		if f, err := strconv.ParseFloat(s, 64); err == nil {
			m["duration"] = f
		}
	}
	if s, ok := m["bit_rate"].(string); ok {
		if f, err := strconv.ParseFloat(s, 64); err == nil {
			m["bit_rate"] = f
		}
	}
	return m, nil
}

// extraFields decodes raw into a generic map and strips the keys already
// surfaced as named Go fields, leaving only opaque passthrough data.
func extraFields(raw json.RawMessage, known ...string) (map[string]any, error) {
	var m map[string]any
	if err := json.Unmarshal(raw, &m); err != nil {
		return nil, err
	}
	skip := make(map[string]struct{}, len(known))
	for _, k := range known {
		skip[k] = struct{}{}
	}
	for k := range m {
		if _, ok := skip[k]; ok {
			delete(m, k)
		}
	}
	return m, nil
}

// flexibleFloat tolerates ffprobe reporting a numeric field as either a
// JSON number or a quoted string.
type flexibleFloat float64

func (f *flexibleFloat) UnmarshalJSON(data []byte) error {
	var num float64
	if err := json.Unmarshal(data, &num); err == nil {
		*f = flexibleFloat(num)
		return nil
	}
	var str string
	if err := json.Unmarshal(data, &str); err == nil {
		parsed, err := strconv.ParseFloat(str, 64)
		if err != nil {
			return fmt.Errorf("invalid float string: %s", str)
		}
		*f = flexibleFloat(parsed)
		return nil
	}
	return fmt.Errorf("unsupported JSON value for flexibleFloat: %s", string(data))
}
