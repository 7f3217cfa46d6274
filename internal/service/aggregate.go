package service

import (
	"math"

	"github.com/examlens/examlens-api/internal/dto"
)

// Placeholder values for metrics that a future collaborator will compute
// against course outcomes and syllabus content.
const (
	placeholderCOMatch       = 70
	placeholderSyllabusMatch = 75
	placeholderUnitCoverage  = "3 / 5"
	placeholderDifficulty    = "Medium"

	bloomUnknown = "N/A"
)

// aggregateReport reduces the parsed evaluations into the UI-ready report:
// per-metric averages, the dominant Bloom level, the higher-order thinking
// percentage and the overall score. Averaging over zero evaluations yields
// zeros, never a division fault.
func aggregateReport(evaluations []dto.QuestionEvaluation) dto.EvaluationReport {
	n := len(evaluations)

	var spelling, grammar, clarity, overall float64
	higherOrder := 0
	bloomCounts := make(map[string]int)
	bloomOrder := make([]string, 0, n)

	for _, evaluation := range evaluations {
		spelling += clampScore(evaluation.SpellingScore)
		grammar += clampScore(evaluation.GrammarScore)
		clarity += clampScore(evaluation.ClarityScore)
		overall += clampScore(evaluation.OverallScore)

		if evaluation.HigherOrder {
			higherOrder++
		}

		if evaluation.Bloom != "" {
			if _, seen := bloomCounts[evaluation.Bloom]; !seen {
				bloomOrder = append(bloomOrder, evaluation.Bloom)
			}
			bloomCounts[evaluation.Bloom]++
		}
	}

	// Ties go to the label encountered first, so the dominant level is
	// stable across runs regardless of map iteration order.
	dominantBloom := bloomUnknown
	best := 0
	for _, label := range bloomOrder {
		if bloomCounts[label] > best {
			best = bloomCounts[label]
			dominantBloom = label
		}
	}

	if evaluations == nil {
		evaluations = []dto.QuestionEvaluation{}
	}

	return dto.EvaluationReport{
		TotalScore: roundedMean(overall, n),
		Metrics: []dto.Metric{
			{Label: "Spelling", Score: roundedMean(spelling, n)},
			{Label: "Grammar", Score: roundedMean(grammar, n)},
			{Label: "Clarity", Score: roundedMean(clarity, n)},
			{Label: "Bloom Level", Score: dominantBloom},
			{Label: "Higher Order", Score: roundedPercent(higherOrder, n)},
			{Label: "CO Match", Score: placeholderCOMatch},
			{Label: "Syllabus Match", Score: placeholderSyllabusMatch},
		},
		UnitCoverage: placeholderUnitCoverage,
		Difficulty:   placeholderDifficulty,
		Evaluations:  evaluations,
	}
}

// clampScore keeps a single out-of-range score from corrupting the averages.
func clampScore(score float64) float64 {
	if score < 0 {
		return 0
	}
	if score > 100 {
		return 100
	}
	return score
}

func roundedMean(sum float64, n int) int {
	if n == 0 {
		return 0
	}
	return int(math.Round(sum / float64(n)))
}

func roundedPercent(count, n int) int {
	if n == 0 {
		return 0
	}
	return int(math.Round(100 * float64(count) / float64(n)))
}
