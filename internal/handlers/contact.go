package handlers

import (
	"errors"

	"etude/internal/models"
	"etude/internal/services/contact"
	"etude/internal/utils"
	"etude/internal/utils/pagination"
	"etude/internal/utils/response"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog/log"
)

type ContactHandler struct {
	svc *contact.Service
}

func NewContactHandler(svc *contact.Service) *ContactHandler {
	return &ContactHandler{svc: svc}
}

// Submit receives the public contact form.
func (h *ContactHandler) Submit(c *fiber.Ctx) error {
	var input contact.Input
	if ok, err := bindAndValidate(c, &input); !ok {
		return err
	}
	if !input.Consent {
		return response.ValidationError(c, map[string]string{"consent": "is required"})
	}
	// Honeypot: pretend success so bots do not retry.
	if input.Website != "" {
		log.Info().Str("ip", c.IP()).Msg("contact honeypot triggered")
		return c.Status(fiber.StatusAccepted).JSON(fiber.Map{"message": "Message received"})
	}

	req, err := h.svc.Submit(c.UserContext(), input, contact.Meta{
		IPAddress: c.IP(),
		UserAgent: c.Get(fiber.HeaderUserAgent),
		Referer:   c.Get(fiber.HeaderReferer),
	})
	if err != nil {
		if errors.Is(err, contact.ErrConsentRequired) {
			return response.ValidationError(c, map[string]string{"consent": "is required"})
		}
		log.Error().Err(err).Msg("contact submission failed")
		return response.ServerError(c, "Failed to send message")
	}
	return c.Status(fiber.StatusAccepted).JSON(fiber.Map{
		"message":   "Message received",
		"reference": req.Reference,
	})
}

func (h *ContactHandler) AdminList(c *fiber.Ctx) error {
	status := c.Query("status")
	if status != "" && status != models.ContactStatusNew && status != models.ContactStatusHandled {
		return response.ValidationError(c, map[string]string{"status": "must be one of: new handled"})
	}
	p := pagination.ParseFromRequest(c)
	items, total, err := h.svc.List(c.UserContext(), status, p.Offset, p.Limit)
	if err != nil {
		log.Error().Err(err).Msg("list contact requests failed")
		return response.ServerError(c, "Failed to fetch contact requests")
	}
	p.Total = total
	return c.JSON(pagination.Response(p, items))
}

func (h *ContactHandler) MarkHandled(c *fiber.Ctx) error {
	id, ok := paramID(c, "id")
	if !ok {
		return response.BadRequest(c, "Invalid contact request ID")
	}
	claims, err := utils.GetUserClaims(c)
	if err != nil {
		return response.Unauthorized(c)
	}
	req, err := h.svc.MarkHandled(c.UserContext(), id, claims.UserID)
	if err != nil {
		if errors.Is(err, contact.ErrNotFound) {
			return response.NotFound(c, "Contact request not found")
		}
		log.Error().Err(err).Uint("contact_id", id).Msg("mark handled failed")
		return response.ServerError(c, "Failed to update contact request")
	}
	return response.Success(c, "Contact request handled", req)
}
