package mapping

import (
	"regexp"
	"strings"

	"github.com/dotsoulja/dotgo-watchcode/internal/applog"
)

// codecExtensionRule is one row of the codec->extension table.
type codecExtensionRule struct {
	Pattern   *regexp.Regexp
	Extension string
}

var codecExtensionTable = []codecExtensionRule{
	{Pattern: regexp.MustCompile(`subrip`), Extension: "srt"},
}

// ExtensionForCodec resolves the output extension ManyMappingBuilder uses
// when a mapping doesn't set an explicit `format`. When multiple rules
// match, the first declared wins and a warning names every match. When
// none match, the codec name itself is used as the extension.
func ExtensionForCodec(codecName string, logger applog.Logger) string {
	var matched []string
	for _, rule := range codecExtensionTable {
		if rule.Pattern.MatchString(codecName) {
			matched = append(matched, rule.Extension)
		}
	}
	if len(matched) == 0 {
		if logger != nil {
			logger.Debugf("no codec->extension rule matched %q, using codec name as extension", codecName)
		}
		return codecName
	}
	if len(matched) > 1 && logger != nil {
		logger.Warnf("codec %q matched multiple extension rules %s, using first declared %q", codecName, strings.Join(matched, ", "), matched[0])
	}
	return matched[0]
}
