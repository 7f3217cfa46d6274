package service

import (
	"fmt"
	"regexp"
	"strings"
)

const evaluatorSystemPrompt = "You are an exam question quality reviewer. Evaluate each numbered question " +
	"independently for clarity, grammar, spelling, Bloom's taxonomy level and cognitive order. For every " +
	"question emit one JSON object with exactly these fields: question, bloom, higherOrder, clarityScore, " +
	"grammarScore, spellingScore, overallScore, suggestions. Scores are integers from 0 to 100. bloom is the " +
	"Bloom's taxonomy level of the question. higherOrder is true when the question demands analysis, synthesis " +
	"or evaluation rather than recall. suggestions is an array of short improvement hints. Respond with the " +
	"JSON array only."

var (
	glyphFolder = strings.NewReplacer(
		"•", "-",
		"‘", "'",
		"’", "'",
		"“", `"`,
		"”", `"`,
	)

	blankLines = regexp.MustCompile(`\n\s*\n`)
)

// sanitizeQuestionText folds bullet glyphs and curly quotes into their ASCII
// equivalents. Idempotent.
func sanitizeQuestionText(text string) string {
	return glyphFolder.Replace(text)
}

// segmentQuestions splits a question block on blank lines. A line containing
// only whitespace separates questions; chunks that trim to nothing are
// dropped. Order is preserved, so the first chunk is question 1.
func segmentQuestions(block string) []string {
	chunks := blankLines.Split(block, -1)
	questions := make([]string, 0, len(chunks))
	for _, chunk := range chunks {
		trimmed := strings.TrimSpace(chunk)
		if trimmed != "" {
			questions = append(questions, trimmed)
		}
	}
	return questions
}

// buildUserPrompt renders the 1-indexed numbered listing submitted to the
// evaluator. The numbering is advisory only: responses are correlated with
// questions by array position, never by re-parsing the numbers.
func buildUserPrompt(questions []string) string {
	builder := strings.Builder{}
	for i, question := range questions {
		if i > 0 {
			builder.WriteString("\n")
		}
		builder.WriteString(fmt.Sprintf("%d. %s", i+1, question))
	}
	return builder.String()
}
