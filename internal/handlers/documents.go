package handlers

import (
	"bytes"
	"errors"
	"fmt"

	"etude/internal/services/documents"
	"etude/internal/utils/response"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog/log"
)

type DocumentsHandler struct {
	catalogue *documents.Catalogue
	renderer  *documents.Renderer
}

func NewDocumentsHandler(catalogue *documents.Catalogue, renderer *documents.Renderer) *DocumentsHandler {
	return &DocumentsHandler{catalogue: catalogue, renderer: renderer}
}

func (h *DocumentsHandler) ListChecklists(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{"checklists": h.catalogue.List()})
}

func (h *DocumentsHandler) GetChecklist(c *fiber.Ctx) error {
	cl, err := h.catalogue.Get(c.Params("id"))
	if err != nil {
		if errors.Is(err, documents.ErrChecklistNotFound) {
			return response.NotFound(c, "Checklist not found")
		}
		return response.ServerError(c, "Failed to load checklist")
	}
	return c.JSON(cl)
}

func (h *DocumentsHandler) ChecklistPDF(c *fiber.Ctx) error {
	cl, err := h.catalogue.Get(c.Params("id"))
	if err != nil {
		if errors.Is(err, documents.ErrChecklistNotFound) {
			return response.NotFound(c, "Checklist not found")
		}
		return response.ServerError(c, "Failed to load checklist")
	}
	var buf bytes.Buffer
	if err := h.renderer.Checklist(&buf, cl); err != nil {
		log.Error().Err(err).Str("checklist", cl.ID).Msg("checklist rendering failed")
		return response.ServerError(c, "Failed to generate document")
	}
	return sendPDF(c, "liste-"+cl.ID+".pdf", buf.Bytes())
}

func (h *DocumentsHandler) FichePDF(c *fiber.Ctx) error {
	var input documents.FicheInput
	if err := c.BodyParser(&input); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}
	if fields := input.Validate(); fields != nil {
		return response.ValidationError(c, fields)
	}
	var buf bytes.Buffer
	if err := h.renderer.Fiche(&buf, input); err != nil {
		log.Error().Err(err).Msg("fiche rendering failed")
		return response.ServerError(c, "Failed to generate document")
	}
	return sendPDF(c, "fiche-de-renseignements.pdf", buf.Bytes())
}

func sendPDF(c *fiber.Ctx, filename string, data []byte) error {
	c.Set(fiber.HeaderContentType, "application/pdf")
	c.Set(fiber.HeaderContentDisposition, fmt.Sprintf("attachment; filename=%q", filename))
	return c.Send(data)
}
