package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/go-playground/validator/v10"
	"github.com/rs/zerolog"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/examlens/examlens-api/internal/dto"
	"github.com/examlens/examlens-api/internal/observability"
	"github.com/examlens/examlens-api/pkg/ai"
)

var (
	// ErrInvalidInput indicates a missing or non-textual request field. The
	// completer is never invoked for such a request.
	ErrInvalidInput = errors.New("invalid evaluation request")
	// ErrEvaluatorUnavailable indicates the completion call failed or returned
	// no usable message content.
	ErrEvaluatorUnavailable = errors.New("evaluator unavailable")
	// ErrResponseParse indicates the extracted candidate was not a valid JSON
	// array of evaluation records.
	ErrResponseParse = errors.New("evaluator response could not be parsed")
	// ErrEvaluationCountMismatch indicates the evaluator returned a different
	// number of records than questions submitted.
	ErrEvaluationCountMismatch = errors.New("evaluation count does not match question count")
)

// EvaluationService runs the question evaluation pipeline against an AI
// completer and aggregates the result into a report.
type EvaluationService interface {
	Evaluate(ctx context.Context, req dto.EvaluationRequest) (dto.EvaluationReport, error)
}

type evaluationService struct {
	completer ai.Completer
	validator *validator.Validate
	logger    zerolog.Logger
	tracer    trace.Tracer
}

// NewEvaluationService constructs the evaluation pipeline service. The
// completer is injected so tests can substitute a deterministic stub.
func NewEvaluationService(completer ai.Completer, validate *validator.Validate, logger zerolog.Logger) EvaluationService {
	return &evaluationService{
		completer: completer,
		validator: validate,
		logger:    logger.With().Str("component", "evaluation_service").Logger(),
		tracer:    otel.Tracer("github.com/examlens/examlens-api/internal/service/evaluation"),
	}
}

// Evaluate runs sanitize -> segment -> prompt -> complete -> extract ->
// parse -> aggregate for one request. Exactly one outbound completion call
// is made; there is no retry and no partial report.
func (s *evaluationService) Evaluate(ctx context.Context, req dto.EvaluationRequest) (dto.EvaluationReport, error) {
	ctx, span := s.tracer.Start(ctx, "evaluation.evaluate")
	defer span.End()

	if err := s.validator.Struct(req); err != nil {
		span.SetStatus(codes.Error, "validation failed")
		observability.EvaluationOutcomes().WithLabelValues("invalid_input").Inc()
		return dto.EvaluationReport{}, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}

	questions := segmentQuestions(sanitizeQuestionText(req.Set1))
	span.SetAttributes(attribute.Int("evaluation.question_count", len(questions)))

	if len(questions) == 0 {
		// Nothing to ask the model; an empty report is still well defined.
		observability.EvaluationOutcomes().WithLabelValues("completed").Inc()
		return aggregateReport(nil), nil
	}

	raw, err := s.completer.Complete(ctx, ai.Prompt{
		System: evaluatorSystemPrompt,
		User:   buildUserPrompt(questions),
	})
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "completion failed")
		observability.EvaluationOutcomes().WithLabelValues("evaluator_error").Inc()
		return dto.EvaluationReport{}, fmt.Errorf("%w: %v", ErrEvaluatorUnavailable, err)
	}

	candidate := extractJSONArray(raw)
	evaluations, err := parseEvaluations(candidate)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "parse failed")
		observability.EvaluationOutcomes().WithLabelValues("parse_error").Inc()
		s.logger.Error().Str("candidate", truncateForLog(candidate)).Msg("failed to parse evaluator response")
		return dto.EvaluationReport{}, err
	}

	if len(evaluations) != len(questions) {
		span.SetStatus(codes.Error, "count mismatch")
		observability.EvaluationOutcomes().WithLabelValues("count_mismatch").Inc()
		s.logger.Error().
			Int("questions", len(questions)).
			Int("evaluations", len(evaluations)).
			Msg("evaluator returned wrong number of records")
		return dto.EvaluationReport{}, fmt.Errorf("%w: got %d records for %d questions",
			ErrEvaluationCountMismatch, len(evaluations), len(questions))
	}

	report := aggregateReport(evaluations)
	observability.EvaluationOutcomes().WithLabelValues("completed").Inc()
	s.logger.Info().
		Int("questions", len(questions)).
		Int("total_score", report.TotalScore).
		Msg("evaluation completed")
	span.SetStatus(codes.Ok, "completed")

	return report, nil
}
