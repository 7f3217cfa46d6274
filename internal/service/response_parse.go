package service

import (
	"encoding/json"
	"fmt"
	"regexp"
	"strings"

	"github.com/examlens/examlens-api/internal/dto"
)

var codeFence = regexp.MustCompile("(?i)```json|```")

// extractJSONArray strips markdown code fences from the raw model text and
// isolates the substring from the first '[' to the last ']'. When no such
// bracketed span exists the fence-stripped text is returned unchanged so a
// genuinely malformed response fails at parse time instead of being masked
// as a successful empty evaluation.
func extractJSONArray(raw string) string {
	cleaned := strings.TrimSpace(codeFence.ReplaceAllString(raw, ""))

	start := strings.Index(cleaned, "[")
	end := strings.LastIndex(cleaned, "]")
	if start >= 0 && end > start {
		return cleaned[start : end+1]
	}

	return cleaned
}

// parseEvaluations deserializes the candidate as an array of per-question
// evaluation records. Syntax failures are reported as ErrResponseParse with
// a truncated copy of the candidate for diagnostics; individual field values
// are not range-checked here.
func parseEvaluations(candidate string) ([]dto.QuestionEvaluation, error) {
	var evaluations []dto.QuestionEvaluation
	if err := json.Unmarshal([]byte(candidate), &evaluations); err != nil {
		return nil, fmt.Errorf("%w: %v (candidate=%q)", ErrResponseParse, err, truncateForLog(candidate))
	}
	return evaluations, nil
}

func truncateForLog(s string) string {
	const limit = 400
	out := strings.ReplaceAll(strings.TrimSpace(s), "\n", "\\n")
	if len(out) <= limit {
		return out
	}
	return out[:limit] + "...(truncated)"
}
