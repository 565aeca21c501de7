package media

// Codec-type values recognized by StreamSelector dispatch and the
// MappingBuilder's per-stream matching.
const (
	CodecVideo      = "video"
	CodecAudio      = "audio"
	CodecSubtitle   = "subtitle"
	CodecAttachment = "attachment"
	CodecData       = "data"
)

// InputStream is one probed stream of an InputMedia. Index is the stable
// integer ffprobe assigned; Disposition and Tags follow ffprobe's own
// shapes (flag->0|1, arbitrary string map). Extra carries any other
// passthrough fields a profile snippet might reach for (avg_frame_rate,
// channel_layout, …) without the media package needing a named field per
// ffprobe key, tolerating ffprobe's loosely-typed probe output.
type InputStream struct {
	Index       int
	CodecName   string
	CodecType   string
	Disposition map[string]int
	Tags        map[string]any
	Extra       map[string]any
}

// SnippetValue exposes the stream as the generic map shape the snippet
// evaluator navigates ("stream.tags.language", "stream.disposition.forced").
func (s InputStream) SnippetValue() map[string]any {
	disposition := make(map[string]any, len(s.Disposition))
	for k, v := range s.Disposition {
		disposition[k] = float64(v)
	}
	v := map[string]any{
		"index":       float64(s.Index),
		"codec_name":  s.CodecName,
		"codec_type":  s.CodecType,
		"disposition": disposition,
		"tags":        s.Tags,
	}
	for k, val := range s.Extra {
		if _, exists := v[k]; !exists {
			v[k] = val
		}
	}
	return v
}

// Chapter is a single chapter entry, 1-based Number assigned by the
// builder. TimeBase is the rational string ffprobe reports ("1/1000").
type Chapter struct {
	Number    int
	TimeBase  string
	Start     int64
	StartTime float64
	End       int64
	EndTime   float64
	Extra     map[string]any
}

func (c Chapter) SnippetValue() map[string]any {
	v := map[string]any{
		"number":     float64(c.Number),
		"time_base":  c.TimeBase,
		"start":      float64(c.Start),
		"start_time": c.StartTime,
		"end":        float64(c.End),
		"end_time":   c.EndTime,
	}
	for k, val := range c.Extra {
		if _, exists := v[k]; !exists {
			v[k] = val
		}
	}
	return v
}

// InputMedia is the probed representation of one source file. Id is 0 for
// the primary input (the core never probes secondary inputs). Params is
// resolved once, by the input-parameter resolver, from the profile's
// input.params snippet sequence.
type InputMedia struct {
	ID       int
	Path     Path
	Params   []string
	Streams  []InputStream
	Format   map[string]any
	Chapters []Chapter
}

func (m InputMedia) SnippetValue() map[string]any {
	return map[string]any{
		"id":     float64(m.ID),
		"path":   m.Path.SnippetValue(),
		"params": m.Params,
		"format": m.Format,
	}
}

// Duration returns format.duration as a float, or 0 if absent/non-numeric.
func (m InputMedia) Duration() float64 {
	if m.Format == nil {
		return 0
	}
	switch v := m.Format["duration"].(type) {
	case float64:
		return v
	case int:
		return float64(v)
	}
	return 0
}

// OutputStream is one stream of a planned OutputMedia. Source is a
// non-owning pointer to the InputStream it was mapped from; InputStream
// holds no reference back, so there is no ownership cycle (per the
// cyclic-reference design note).
type OutputStream struct {
	Index  int
	Source *InputStream
	Params []string
}

func (s OutputStream) SnippetValue() map[string]any {
	return map[string]any{
		"index":  float64(s.Index),
		"params": s.Params,
	}
}

// OutputMedia is one planned output file: a sequential id, a non-owning
// reference back to the InputMedia it was derived from, and an ordered
// list of OutputStream. Created by a MappingBuilder, mutated in place by
// the PostResolver, consumed exactly once by a Worker.
type OutputMedia struct {
	ID      int
	Source  *InputMedia
	Path    Path
	Params  []string
	Streams []OutputStream
}

func (m OutputMedia) SnippetValue() map[string]any {
	return map[string]any{
		"id":     float64(m.ID),
		"path":   m.Path.SnippetValue(),
		"params": m.Params,
	}
}
