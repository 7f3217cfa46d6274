package handler

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"

	"github.com/examlens/examlens-api/internal/dto"
	"github.com/examlens/examlens-api/internal/service"
	"github.com/examlens/examlens-api/internal/utils"
)

// EvaluationHandler handles question set evaluation requests.
type EvaluationHandler struct {
	service service.EvaluationService
	logger  zerolog.Logger
}

// NewEvaluationHandler constructs an evaluation handler.
func NewEvaluationHandler(service service.EvaluationService, logger zerolog.Logger) *EvaluationHandler {
	return &EvaluationHandler{
		service: service,
		logger:  logger.With().Str("component", "evaluation_handler").Logger(),
	}
}

// Register wires evaluation routes.
func (h *EvaluationHandler) Register(router fiber.Router) {
	router.Post("", h.evaluate)
}

func (h *EvaluationHandler) evaluate(c *fiber.Ctx) error {
	var payload dto.EvaluationRequest
	if err := c.BodyParser(&payload); err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid payload")
	}

	report, err := h.service.Evaluate(c.Context(), payload)
	if err != nil {
		log := requestLogger(h.logger, c)
		switch {
		case errors.Is(err, service.ErrInvalidInput) || isValidationError(err):
			return utils.SendError(c, fiber.StatusBadRequest, "invalid evaluation request")
		case errors.Is(err, service.ErrEvaluatorUnavailable):
			log.Error().Err(err).Msg("evaluator unavailable")
			return utils.SendError(c, fiber.StatusBadGateway, "evaluation service unavailable")
		case errors.Is(err, service.ErrResponseParse), errors.Is(err, service.ErrEvaluationCountMismatch):
			log.Error().Err(err).Msg("evaluator response unusable")
			return utils.SendError(c, fiber.StatusBadGateway, "AI response could not be parsed")
		default:
			log.Error().Err(err).Msg("evaluation failed")
			return utils.SendError(c, fiber.StatusInternalServerError, "failed to evaluate questions")
		}
	}

	return utils.SendSuccess(c, "questions evaluated", report)
}
