package mapping

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/dotsoulja/dotgo-watchcode/internal/applog"
	"github.com/dotsoulja/dotgo-watchcode/internal/media"
	"github.com/dotsoulja/dotgo-watchcode/internal/profile"
	"github.com/dotsoulja/dotgo-watchcode/internal/snippet"
)

// buildChapters implements ChapterMappingBuilder: one output per
// chapter, delegating to SingleMappingBuilder with the context narrowed
// to each chapter in turn, then resolving that output's params
// immediately (the chapter is not in scope for the generic final
// PostResolver pass that runs after BuildPlan's main loop).
func buildChapters(m profile.Mapping, input *media.InputMedia, inputVal any, baseCtx snippet.Context, defaultExt string, nextID *int, resolver *snippet.Resolver, pp *snippet.PredicateParser, logger applog.Logger) ([]*media.OutputMedia, error) {
	if len(input.Chapters) == 0 {
		if logger != nil {
			logger.Warnf("mapping %q: on=chapters but input has no chapters", m.ID)
		}
		return nil, nil
	}

	chapters := append([]media.Chapter{}, input.Chapters...)
	last := chapters[len(chapters)-1]
	duration := input.Duration()
	if duration != 0 && last.EndTime != duration {
		num, den, err := parseRational(last.TimeBase)
		if err != nil {
			return nil, fmt.Errorf("chapter mapping %q: %w", m.ID, err)
		}
		var end float64
		if num != 0 {
			end = duration * den / num
		}
		chapters = append(chapters, media.Chapter{
			TimeBase:  last.TimeBase,
			Start:     last.End,
			StartTime: last.EndTime,
			End:       int64(end),
			EndTime:   duration,
		})
	}
	for i := range chapters {
		chapters[i].Number = i + 1
	}

	var result []*media.OutputMedia
	for _, ch := range chapters {
		chapterCtx := baseCtx.WithChapter(ch.SnippetValue())
		om, err := buildSingle(m, input, chapterCtx, nextID, resolver, pp, logger, defaultExt)
		if err != nil {
			return nil, err
		}
		if om == nil {
			continue
		}
		if err := ResolvePlan([]*media.OutputMedia{om}, baseCtx.Profile, inputVal, resolver, ch.SnippetValue()); err != nil {
			return nil, err
		}
		result = append(result, om)
	}
	return result, nil
}

// parseRational parses a ffprobe time_base string like "1/1000" into its
// numerator and denominator as floats.
func parseRational(s string) (num, den float64, err error) {
	parts := strings.SplitN(s, "/", 2)
	if len(parts) != 2 {
		return 0, 0, fmt.Errorf("invalid time_base %q", s)
	}
	n, err := strconv.ParseFloat(parts[0], 64)
	if err != nil {
		return 0, 0, fmt.Errorf("invalid time_base numerator %q: %w", s, err)
	}
	d, err := strconv.ParseFloat(parts[1], 64)
	if err != nil {
		return 0, 0, fmt.Errorf("invalid time_base denominator %q: %w", s, err)
	}
	return n, d, nil
}
