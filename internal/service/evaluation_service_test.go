package service

import (
	"context"
	"errors"
	"io"
	"testing"

	"github.com/go-playground/validator/v10"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"

	"github.com/examlens/examlens-api/internal/dto"
	"github.com/examlens/examlens-api/pkg/ai"
)

func testLogger() zerolog.Logger {
	return zerolog.New(io.Discard)
}

type stubCompleter struct {
	response   string
	err        error
	calls      int
	lastPrompt ai.Prompt
}

func (s *stubCompleter) Complete(_ context.Context, prompt ai.Prompt) (string, error) {
	s.calls++
	s.lastPrompt = prompt
	if s.err != nil {
		return "", s.err
	}
	return s.response, nil
}

func validRequest() dto.EvaluationRequest {
	return dto.EvaluationRequest{
		Outcomes: "CO1: apply arithmetic\nCO2: explain biological processes",
		Syllabus: "Unit 1: arithmetic. Unit 2: plant biology.",
		Set1:     "What is 2+2?\n\nExplain photosynthesis.",
	}
}

func TestEvaluationServiceEndToEnd(t *testing.T) {
	completer := &stubCompleter{
		response: "Here is the result:\n```json\n[" +
			`{"question":"What is 2+2?","bloom":"Remember","higherOrder":false,"clarityScore":95,"grammarScore":95,"spellingScore":100,"overallScore":80,"suggestions":[]},` +
			`{"question":"Explain photosynthesis.","bloom":"Understand","higherOrder":true,"clarityScore":85,"grammarScore":90,"spellingScore":95,"overallScore":60,"suggestions":["narrow the scope"]}` +
			"]\n```",
	}
	svc := NewEvaluationService(completer, validator.New(validator.WithRequiredStructEnabled()), testLogger())

	report, err := svc.Evaluate(context.Background(), validRequest())
	require.NoError(t, err)

	require.Equal(t, 1, completer.calls)
	require.Equal(t, "1. What is 2+2?\n2. Explain photosynthesis.", completer.lastPrompt.User)
	require.Contains(t, completer.lastPrompt.System, "JSON array only")

	require.Len(t, report.Evaluations, 2)
	require.Len(t, report.Metrics, 7)
	require.Equal(t, 70, report.TotalScore)
	require.Equal(t, 50, report.Metrics[4].Score)
}

func TestEvaluationServiceMissingOutcomes(t *testing.T) {
	completer := &stubCompleter{response: "[]"}
	svc := NewEvaluationService(completer, validator.New(validator.WithRequiredStructEnabled()), testLogger())

	req := validRequest()
	req.Outcomes = ""

	_, err := svc.Evaluate(context.Background(), req)
	require.ErrorIs(t, err, ErrInvalidInput)
	require.Zero(t, completer.calls)
}

func TestEvaluationServiceSanitizesBeforeSegmenting(t *testing.T) {
	completer := &stubCompleter{
		response: `[{"question":"q","bloom":"Apply","higherOrder":true,"clarityScore":80,"grammarScore":80,"spellingScore":80,"overallScore":80,"suggestions":[]}]`,
	}
	svc := NewEvaluationService(completer, validator.New(validator.WithRequiredStructEnabled()), testLogger())

	req := validRequest()
	req.Set1 = "• Explain “osmosis”."

	_, err := svc.Evaluate(context.Background(), req)
	require.NoError(t, err)
	require.Equal(t, `1. - Explain "osmosis".`, completer.lastPrompt.User)
}

func TestEvaluationServiceCompleterFailure(t *testing.T) {
	completer := &stubCompleter{err: errors.New("connection refused")}
	svc := NewEvaluationService(completer, validator.New(validator.WithRequiredStructEnabled()), testLogger())

	_, err := svc.Evaluate(context.Background(), validRequest())
	require.ErrorIs(t, err, ErrEvaluatorUnavailable)
}

func TestEvaluationServiceUnparseableResponse(t *testing.T) {
	completer := &stubCompleter{response: "I cannot evaluate these questions."}
	svc := NewEvaluationService(completer, validator.New(validator.WithRequiredStructEnabled()), testLogger())

	_, err := svc.Evaluate(context.Background(), validRequest())
	require.ErrorIs(t, err, ErrResponseParse)
}

func TestEvaluationServiceCountMismatch(t *testing.T) {
	completer := &stubCompleter{
		response: `[{"question":"only one","bloom":"Apply","higherOrder":false,"clarityScore":80,"grammarScore":80,"spellingScore":80,"overallScore":80,"suggestions":[]}]`,
	}
	svc := NewEvaluationService(completer, validator.New(validator.WithRequiredStructEnabled()), testLogger())

	_, err := svc.Evaluate(context.Background(), validRequest())
	require.ErrorIs(t, err, ErrEvaluationCountMismatch)
}

func TestEvaluationServiceEmptyQuestionBlock(t *testing.T) {
	completer := &stubCompleter{response: "[]"}
	svc := NewEvaluationService(completer, validator.New(validator.WithRequiredStructEnabled()), testLogger())

	req := validRequest()
	req.Set1 = "   \n\n   "

	report, err := svc.Evaluate(context.Background(), req)
	require.NoError(t, err)
	require.Zero(t, completer.calls)
	require.Equal(t, 0, report.TotalScore)
	require.Equal(t, "N/A", report.Metrics[3].Score)
}
