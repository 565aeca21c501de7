package mapping

import (
	"sort"

	"github.com/dotsoulja/dotgo-watchcode/internal/media"
	"github.com/dotsoulja/dotgo-watchcode/internal/profile"
)

// orderStreams returns a copy of streams ordered per mapping.order: codec
// types named in order come first in that order; any type not listed is
// placed last, preserving its original relative order (a stable sort by
// group index).
func orderStreams(streams []media.InputStream, order []string) []media.InputStream {
	rank := make(map[string]int, len(order))
	for i, t := range order {
		rank[t] = i
	}
	out := make([]media.InputStream, len(streams))
	copy(out, streams)
	sort.SliceStable(out, func(i, j int) bool {
		ri, oki := rank[out[i].CodecType]
		rj, okj := rank[out[j].CodecType]
		if !oki {
			ri = len(order)
		}
		if !okj {
			rj = len(order)
		}
		return ri < rj
	})
	return out
}

// selectorMatchesStream reports whether a stream selector (as classified
// by profile.ClassifySelector) matches the given codec type.
func selectorMatchesStream(kind profile.StreamSelectorKind, types []string, codecType string) bool {
	switch kind {
	case profile.SelectorAll:
		return true
	case profile.SelectorCodecTypes:
		for _, t := range types {
			if t == codecType {
				return true
			}
		}
	}
	return false
}
