package mapping

import (
	"fmt"

	"github.com/dotsoulja/dotgo-watchcode/internal/applog"
	"github.com/dotsoulja/dotgo-watchcode/internal/media"
	"github.com/dotsoulja/dotgo-watchcode/internal/profile"
	"github.com/dotsoulja/dotgo-watchcode/internal/snippet"
)

// BuildPlan is the MappingBuilder entry point: given a profile and
// a probed InputMedia, it dispatches each non-skipped mapping to
// SingleMappingBuilder, ChapterMappingBuilder, or ManyMappingBuilder per
// its `on` selector, then runs the PostResolver over the assembled plan.
//
// Output ids are assigned contiguously starting at 0 across the whole
// plan, in mapping declaration order, counting only outputs that survive
// (an output discarded for having zero streams never consumes an id).
func BuildPlan(p *profile.Profile, input *media.InputMedia, resolver *snippet.Resolver, logger applog.Logger) ([]*media.OutputMedia, error) {
	retained := 0
	for _, m := range p.Output.Mappings {
		if !m.Skip && m.Output != "" {
			retained++
		}
	}
	if retained == 0 {
		return nil, &MappingError{Kind: KindInvalidProfile, Err: fmt.Errorf("no non-skipped mapping with a non-empty output")}
	}

	pp := snippet.NewPredicateParser(resolver)
	profileVal := p.SnippetValue()
	inputVal := input.SnippetValue()
	nextID := 0
	var plan []*media.OutputMedia

	for _, m := range p.Output.Mappings {
		if m.Skip {
			continue
		}
		if m.Output == "" {
			return nil, &MappingError{Kind: KindInvalidProfile, MappingID: m.ID, Err: fmt.Errorf("mapping has empty output")}
		}

		baseCtx := snippet.Context{Profile: profileVal, Input: inputVal}
		kind, types := profile.ClassifySelector(m.On)

		switch kind {
		case profile.SelectorChapters:
			outs, err := buildChapters(m, input, inputVal, baseCtx, p.Output.DefaultExtension, &nextID, resolver, pp, logger)
			if err != nil {
				return nil, err
			}
			plan = append(plan, outs...)
		case profile.SelectorAll, profile.SelectorCodecTypes:
			outs, err := buildMany(m, kind, types, input, baseCtx, resolver, pp, &nextID, logger)
			if err != nil {
				return nil, err
			}
			plan = append(plan, outs...)
		default:
			om, err := buildSingle(m, input, baseCtx, &nextID, resolver, pp, logger, p.Output.DefaultExtension)
			if err != nil {
				return nil, err
			}
			if om != nil {
				plan = append(plan, om)
			}
		}
	}

	if err := ResolvePlan(plan, profileVal, inputVal, resolver, nil); err != nil {
		return nil, err
	}
	return plan, nil
}
