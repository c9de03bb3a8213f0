package insight

import (
	"encoding/json"
	"math"
	"regexp"
	"strconv"
	"strings"

	"github.com/bowerhall/cadence/internal/logger"
)

var fractionPattern = regexp.MustCompile(`(\d+)\s*/\s*(\d+)`)

// extractJSON pulls a JSON object out of model output that may be wrapped in
// markdown fences. With fences present, the first segment that starts with {
// and ends with } wins; with none, the trimmed text is used as-is.
func extractJSON(text string) string {
	text = strings.TrimSpace(text)

	if !strings.Contains(text, "```") {
		return text
	}

	for _, part := range strings.Split(text, "```") {
		part = strings.TrimSpace(part)
		if strings.HasPrefix(part, "{") && strings.HasSuffix(part, "}") {
			return part
		}
	}

	return ""
}

// normalizeFractions rewrites every <int>/<int> as a decimal rounded to 3
// places. Models occasionally emit fractions where strict JSON requires
// numbers. A zero denominator is left untouched.
func normalizeFractions(text string) string {
	return fractionPattern.ReplaceAllStringFunc(text, func(match string) string {
		groups := fractionPattern.FindStringSubmatch(match)
		a, errA := strconv.ParseFloat(groups[1], 64)
		b, errB := strconv.ParseFloat(groups[2], 64)
		if errA != nil || errB != nil || b == 0 {
			return match
		}
		return strconv.FormatFloat(math.Round(a/b*1000)/1000, 'f', -1, 64)
	})
}

// parseReview runs the repair pipeline and attempts a lenient parse.
// ok is false when the repaired text still isn't a JSON object, which sends
// the caller down the fallback path.
func parseReview(text string) (map[string]any, bool) {
	cleaned := normalizeFractions(extractJSON(text))

	var parsed map[string]any
	if err := json.Unmarshal([]byte(cleaned), &parsed); err != nil {
		logger.Warn("review output is not valid JSON", "error", err)
		return nil, false
	}

	return parsed, true
}

// enforceSchema fills missing or mistyped fields with safe defaults and caps
// the recommendation list.
func enforceSchema(parsed map[string]any, maxRecs int) ReviewRecord {
	r := ReviewRecord{
		Patterns:        stringField(parsed, "patterns"),
		RootCauses:      stringField(parsed, "root_causes"),
		Notable:         stringField(parsed, "notable"),
		Recommendations: []string{},
	}

	if raw, ok := parsed["recommendations"].([]any); ok {
		for _, item := range raw {
			if s, ok := item.(string); ok {
				r.Recommendations = append(r.Recommendations, s)
			}
		}
	}

	if len(r.Recommendations) > maxRecs {
		r.Recommendations = r.Recommendations[:maxRecs]
	}

	return r
}

func stringField(m map[string]any, key string) string {
	if s, ok := m[key].(string); ok {
		return s
	}
	return ""
}
