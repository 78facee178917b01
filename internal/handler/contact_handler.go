package handler

import (
	"errors"
	"fmt"
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"

	"github.com/noah-isme/portfolio-api/internal/dto"
	"github.com/noah-isme/portfolio-api/internal/service"
	"github.com/noah-isme/portfolio-api/internal/utils"
)

// ContactHandler serves the store-backed contact endpoints.
type ContactHandler struct {
	submissions service.SubmissionService
	contacts    service.ContactService
	logger      zerolog.Logger
}

// NewContactHandler constructs a contact handler.
func NewContactHandler(submissions service.SubmissionService, contacts service.ContactService, logger zerolog.Logger) *ContactHandler {
	return &ContactHandler{
		submissions: submissions,
		contacts:    contacts,
		logger:      logger.With().Str("component", "contact_handler").Logger(),
	}
}

// Register wires contact routes.
func (h *ContactHandler) Register(router fiber.Router) {
	router.Get("", h.list)
	router.Get("/:id", h.get)
	router.Post("", h.create)
	router.Put("/:id", h.update)
	router.Delete("/:id", h.delete)
}

func (h *ContactHandler) list(c *fiber.Ctx) error {
	contacts, err := h.contacts.List(c.UserContext())
	if err != nil {
		requestLogger(h.logger, c).Error().Err(err).Msg("failed to list contacts")
		return utils.SendError(c, fiber.StatusInternalServerError, "failed to list contacts")
	}
	return utils.SendJSON(c, fiber.StatusOK, contacts)
}

func (h *ContactHandler) get(c *fiber.Ctx) error {
	id, err := parseUintParam(c, "id")
	if err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, err.Error())
	}

	contact, err := h.contacts.Get(c.UserContext(), id)
	if err != nil {
		return h.respondError(c, err, "failed to fetch contact")
	}
	return utils.SendJSON(c, fiber.StatusOK, contact)
}

// create accepts the submission even when the owner notification fails; the
// failure is only logged.
func (h *ContactHandler) create(c *fiber.Ctx) error {
	var payload dto.ContactRequest
	if err := c.BodyParser(&payload); err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid payload")
	}

	result, err := h.submissions.Submit(c.UserContext(), payload.ToSubmission())
	if err != nil {
		return h.respondError(c, err, "failed to save contact")
	}

	if !result.Delivered() {
		requestLogger(h.logger, c).Warn().Err(result.Notified).Uint("contact_id", result.Contact.ID).Msg("contact saved but owner notification failed")
	}

	c.Location(fmt.Sprintf("%s/%d", strings.TrimRight(c.Path(), "/"), result.Contact.ID))
	return utils.SendJSON(c, fiber.StatusCreated, result.Contact)
}

func (h *ContactHandler) update(c *fiber.Ctx) error {
	id, err := parseUintParam(c, "id")
	if err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, err.Error())
	}

	var payload dto.ContactUpdateRequest
	if err := c.BodyParser(&payload); err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid payload")
	}

	if err := h.contacts.Update(c.UserContext(), id, payload); err != nil {
		return h.respondError(c, err, "failed to update contact")
	}
	return c.SendStatus(fiber.StatusNoContent)
}

func (h *ContactHandler) delete(c *fiber.Ctx) error {
	id, err := parseUintParam(c, "id")
	if err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, err.Error())
	}

	if err := h.contacts.Delete(c.UserContext(), id); err != nil {
		return h.respondError(c, err, "failed to delete contact")
	}
	return c.SendStatus(fiber.StatusNoContent)
}

func (h *ContactHandler) respondError(c *fiber.Ctx, err error, message string) error {
	var validationErr *service.ValidationError
	switch {
	case errors.As(err, &validationErr):
		return utils.SendError(c, fiber.StatusBadRequest, validationErr.Error())
	case errors.Is(err, service.ErrContactNotFound):
		return utils.SendError(c, fiber.StatusNotFound, "contact not found")
	default:
		requestLogger(h.logger, c).Error().Err(err).Msg(message)
		return utils.SendError(c, fiber.StatusInternalServerError, message)
	}
}
