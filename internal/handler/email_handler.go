package handler

import (
	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"

	"github.com/noah-isme/portfolio-api/internal/dto"
	"github.com/noah-isme/portfolio-api/internal/service"
	"github.com/noah-isme/portfolio-api/internal/utils"
)

// EmailHandler serves the store-less direct send endpoint.
type EmailHandler struct {
	submissions service.SubmissionService
	logger      zerolog.Logger
}

// NewEmailHandler constructs the handler; submissions should be the store-less pipeline.
func NewEmailHandler(submissions service.SubmissionService, logger zerolog.Logger) *EmailHandler {
	return &EmailHandler{
		submissions: submissions,
		logger:      logger.With().Str("component", "email_handler").Logger(),
	}
}

// Register attaches routes.
func (h *EmailHandler) Register(router fiber.Router) {
	router.Post("/send", h.send)
}

// send surfaces notifier failures to the caller; nothing was stored, so the
// notification is the whole operation.
func (h *EmailHandler) send(c *fiber.Ctx) error {
	var payload dto.EmailRequest
	if err := c.BodyParser(&payload); err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid payload")
	}

	result, err := h.submissions.Submit(c.UserContext(), payload.ToSubmission())
	if err != nil {
		if service.IsValidationError(err) {
			return utils.SendError(c, fiber.StatusBadRequest, err.Error())
		}
		requestLogger(h.logger, c).Error().Err(err).Msg("failed to process email request")
		return utils.SendError(c, fiber.StatusInternalServerError, "failed to send email")
	}

	if !result.Delivered() {
		requestLogger(h.logger, c).Error().Err(result.Notified).Msg("failed to send email")
		return utils.SendError(c, fiber.StatusInternalServerError, "failed to send email")
	}

	return utils.SendMessage(c, fiber.StatusOK, "Email sent successfully")
}
