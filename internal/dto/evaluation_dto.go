package dto

// EvaluationRequest is the inbound payload for a question set evaluation.
// Outcomes and Syllabus are accepted and validated but not yet consumed by
// the pipeline; they are reserved for the CO/Syllabus match extension.
type EvaluationRequest struct {
	Outcomes string `json:"outcomes" validate:"required"`
	Syllabus string `json:"syllabus" validate:"required"`
	Set1     string `json:"set1" validate:"required"`
}

// QuestionEvaluation is one per-question record as returned by the AI
// evaluator. Scores are parsed as floats so a model emitting 87.5 does not
// fail the whole batch; they are treated as 0-100 during aggregation.
type QuestionEvaluation struct {
	Question      string   `json:"question"`
	Bloom         string   `json:"bloom"`
	HigherOrder   bool     `json:"higherOrder"`
	ClarityScore  float64  `json:"clarityScore"`
	GrammarScore  float64  `json:"grammarScore"`
	SpellingScore float64  `json:"spellingScore"`
	OverallScore  float64  `json:"overallScore"`
	Suggestions   []string `json:"suggestions"`
}

// Metric is one label/score pair shown on the report. Score is an int for
// numeric metrics and the dominant Bloom label string for "Bloom Level".
type Metric struct {
	Label string      `json:"label"`
	Score interface{} `json:"score"`
}

// EvaluationReport is the terminal artifact returned to API clients.
type EvaluationReport struct {
	TotalScore   int                  `json:"totalScore"`
	Metrics      []Metric             `json:"metrics"`
	UnitCoverage string               `json:"unitCoverage"`
	Difficulty   string               `json:"difficulty"`
	Evaluations  []QuestionEvaluation `json:"evaluations"`
}
