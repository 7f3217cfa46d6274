package service

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/examlens/examlens-api/internal/dto"
)

func TestAggregateReportEmpty(t *testing.T) {
	report := aggregateReport(nil)

	require.Equal(t, 0, report.TotalScore)
	require.Len(t, report.Metrics, 7)
	require.Equal(t, 0, report.Metrics[0].Score)
	require.Equal(t, 0, report.Metrics[1].Score)
	require.Equal(t, 0, report.Metrics[2].Score)
	require.Equal(t, "N/A", report.Metrics[3].Score)
	require.Equal(t, 0, report.Metrics[4].Score)
	require.NotNil(t, report.Evaluations)
	require.Empty(t, report.Evaluations)
}

func TestAggregateReportAverages(t *testing.T) {
	evaluations := []dto.QuestionEvaluation{
		{OverallScore: 80, SpellingScore: 90, GrammarScore: 85, ClarityScore: 70, Bloom: "Apply", HigherOrder: true},
		{OverallScore: 60, SpellingScore: 80, GrammarScore: 75, ClarityScore: 60, Bloom: "Apply", HigherOrder: false},
	}

	report := aggregateReport(evaluations)

	require.Equal(t, 70, report.TotalScore)
	require.Equal(t, 85, report.Metrics[0].Score)
	require.Equal(t, 80, report.Metrics[1].Score)
	require.Equal(t, 65, report.Metrics[2].Score)
	require.Equal(t, "Apply", report.Metrics[3].Score)
	require.Equal(t, 50, report.Metrics[4].Score)
}

func TestAggregateReportMetricOrderAndPlaceholders(t *testing.T) {
	report := aggregateReport(nil)

	labels := make([]string, 0, len(report.Metrics))
	for _, metric := range report.Metrics {
		labels = append(labels, metric.Label)
	}
	require.Equal(t, []string{"Spelling", "Grammar", "Clarity", "Bloom Level", "Higher Order", "CO Match", "Syllabus Match"}, labels)

	require.Equal(t, 70, report.Metrics[5].Score)
	require.Equal(t, 75, report.Metrics[6].Score)
	require.Equal(t, "3 / 5", report.UnitCoverage)
	require.Equal(t, "Medium", report.Difficulty)
}

func TestAggregateReportRoundsHalfUp(t *testing.T) {
	evaluations := []dto.QuestionEvaluation{
		{OverallScore: 70},
		{OverallScore: 71},
	}

	report := aggregateReport(evaluations)
	require.Equal(t, 71, report.TotalScore)
}

func TestAggregateReportBloomTieFirstEncountered(t *testing.T) {
	evaluations := []dto.QuestionEvaluation{
		{Bloom: "Analyze"},
		{Bloom: "Apply"},
	}

	report := aggregateReport(evaluations)
	require.Equal(t, "Analyze", report.Metrics[3].Score)
}

func TestAggregateReportSkipsEmptyBloomLabels(t *testing.T) {
	evaluations := []dto.QuestionEvaluation{
		{Bloom: ""},
		{Bloom: ""},
		{Bloom: "Evaluate"},
	}

	report := aggregateReport(evaluations)
	require.Equal(t, "Evaluate", report.Metrics[3].Score)
}

func TestAggregateReportNoBloomLabels(t *testing.T) {
	report := aggregateReport([]dto.QuestionEvaluation{{}, {}})
	require.Equal(t, "N/A", report.Metrics[3].Score)
}

func TestAggregateReportClampsOutOfRangeScores(t *testing.T) {
	evaluations := []dto.QuestionEvaluation{
		{OverallScore: 150},
		{OverallScore: -50},
	}

	report := aggregateReport(evaluations)
	require.Equal(t, 50, report.TotalScore)
}

func TestAggregateReportHigherOrderPercent(t *testing.T) {
	evaluations := []dto.QuestionEvaluation{
		{HigherOrder: true},
		{HigherOrder: true},
		{HigherOrder: false},
	}

	report := aggregateReport(evaluations)
	require.Equal(t, 67, report.Metrics[4].Score)
}
