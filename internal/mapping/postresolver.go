package mapping

import (
	"github.com/dotsoulja/dotgo-watchcode/internal/media"
	"github.com/dotsoulja/dotgo-watchcode/internal/snippet"
)

// ResolvePlan is the PostResolver: it walks every OutputMedia in
// plan and replaces each params entry — both the OutputMedia's own global
// params and every OutputStream's params — with the resolver's output,
// narrowing the context per entry. chapterValue is included in every
// narrowed context when non-nil (used by ChapterMappingBuilder to resolve
// a single freshly-built output immediately, before the generic final
// pass over the whole plan runs with no chapter in scope).
func ResolvePlan(plan []*media.OutputMedia, profileValue, inputValue any, resolver *snippet.Resolver, chapterValue any) error {
	for _, om := range plan {
		outputCtx := snippet.Context{Profile: profileValue, Input: inputValue, Output: om.SnippetValue(), Chapter: chapterValue}

		for i, p := range om.Params {
			resolved, err := resolver.ResolveString(p, outputCtx)
			if err != nil {
				return err
			}
			om.Params[i] = resolved
		}

		for si := range om.Streams {
			os := &om.Streams[si]
			streamCtx := outputCtx
			if os.Source != nil {
				streamCtx.Stream = os.Source.SnippetValue()
			}
			streamCtx.OutputStream = os.SnippetValue()

			for i, p := range os.Params {
				resolved, err := resolver.ResolveString(p, streamCtx)
				if err != nil {
					return err
				}
				os.Params[i] = resolved
			}
		}
	}
	return nil
}
