package mapping

import (
	"github.com/dotsoulja/dotgo-watchcode/internal/applog"
	"github.com/dotsoulja/dotgo-watchcode/internal/media"
	"github.com/dotsoulja/dotgo-watchcode/internal/profile"
	"github.com/dotsoulja/dotgo-watchcode/internal/snippet"
)

// buildMany implements ManyMappingBuilder: one output per
// matching input stream, ignoring mapping.options entirely.
func buildMany(m profile.Mapping, kind profile.StreamSelectorKind, types []string, input *media.InputMedia, baseCtx snippet.Context, resolver *snippet.Resolver, pp *snippet.PredicateParser, nextID *int, logger applog.Logger) ([]*media.OutputMedia, error) {
	if len(m.Options) > 0 && logger != nil {
		logger.Warnf("mapping %q: options are ignored when on selects streams directly", m.ID)
	}

	var result []*media.OutputMedia
	for idx := range input.Streams {
		s := &input.Streams[idx]
		if !selectorMatchesStream(kind, types, s.CodecType) {
			continue
		}
		streamCtx := baseCtx.WithStream(s.SnippetValue())

		ok, err := pp.CompileSequence(profile.AsStringSlice(m.When)).Eval(streamCtx)
		if err != nil {
			return nil, err
		}
		if !ok {
			continue
		}

		filename, err := resolver.ResolveString(m.Output, streamCtx)
		if err != nil {
			return nil, err
		}
		ext := m.Format
		if ext == "" {
			ext = ExtensionForCodec(s.CodecName, logger)
		}

		om := &media.OutputMedia{
			ID:     *nextID,
			Source: input,
			Path:   media.Path{Parent: input.Path.Parent, Filename: filename, Extension: ext},
			Streams: []media.OutputStream{{
				Index:  0,
				Source: s,
				Params: append([]string{"-map {iid}"}, m.Params...),
			}},
		}
		*nextID++
		result = append(result, om)
	}
	return result, nil
}
