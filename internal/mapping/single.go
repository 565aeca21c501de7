package mapping

import (
	"github.com/dotsoulja/dotgo-watchcode/internal/applog"
	"github.com/dotsoulja/dotgo-watchcode/internal/media"
	"github.com/dotsoulja/dotgo-watchcode/internal/profile"
	"github.com/dotsoulja/dotgo-watchcode/internal/snippet"
)

// buildSingle implements SingleMappingBuilder: one output from
// the whole input. ctx is the mapping-level context (profile, input, and
// optionally chapter when delegated to from ChapterMappingBuilder) —
// narrower per-stream contexts are derived from it as needed.
func buildSingle(m profile.Mapping, input *media.InputMedia, ctx snippet.Context, nextID *int, resolver *snippet.Resolver, pp *snippet.PredicateParser, logger applog.Logger, defaultExt string) (*media.OutputMedia, error) {
	pred := pp.CompileSequence(profile.AsStringSlice(m.When))
	ok, err := pred.Eval(ctx)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, nil
	}

	globalParams := append([]string{}, m.Params...)
	var taskOptions []profile.MappingOption
	for _, opt := range m.Options {
		kind, _ := profile.ClassifySelector(opt.On)
		if kind != profile.SelectorNone {
			taskOptions = append(taskOptions, opt)
			continue
		}
		optOk, err := pp.CompileSequence(profile.AsStringSlice(opt.When)).Eval(ctx)
		if err != nil {
			return nil, err
		}
		if optOk {
			globalParams = append(globalParams, opt.Params...)
		}
	}

	ordered := orderStreams(input.Streams, m.Order)
	var streams []media.OutputStream

	for idx := range ordered {
		s := &ordered[idx]
		streamCtx := ctx.WithStream(s.SnippetValue())

		var matched []profile.MappingOption
		for _, opt := range taskOptions {
			kind, types := profile.ClassifySelector(opt.On)
			if !selectorMatchesStream(kind, types, s.CodecType) {
				continue
			}
			optOk, err := pp.CompileSequence(profile.AsStringSlice(opt.When)).Eval(streamCtx)
			if err != nil {
				return nil, err
			}
			if optOk {
				matched = append(matched, opt)
			}
		}

		excluded := false
		for _, opt := range matched {
			if opt.Exclude {
				excluded = true
				break
			}
		}
		if excluded {
			continue
		}

		var accumulated []string
		for _, opt := range matched {
			if opt.Duplicate {
				streams = append(streams, media.OutputStream{
					Index:  len(streams),
					Source: s,
					Params: append([]string{}, opt.Params...),
				})
			} else {
				accumulated = append(accumulated, opt.Params...)
			}
		}

		if len(matched) == 0 {
			streams = append(streams, media.OutputStream{
				Index:  len(streams),
				Source: s,
				Params: []string{"-map {iid}", "-c:{oid} copy"},
			})
		} else {
			params := append([]string{"-map {iid}"}, accumulated...)
			streams = append(streams, media.OutputStream{Index: len(streams), Source: s, Params: params})
		}
	}

	if len(streams) == 0 {
		return nil, nil
	}

	filename, err := resolver.ResolveString(m.Output, ctx)
	if err != nil {
		return nil, err
	}
	ext := m.Format
	if ext == "" {
		ext = defaultExt
	}

	om := &media.OutputMedia{
		ID:      *nextID,
		Source:  input,
		Path:    media.Path{Parent: input.Path.Parent, Filename: filename, Extension: ext},
		Params:  globalParams,
		Streams: streams,
	}
	*nextID++
	return om, nil
}
