package handlers

import (
	"errors"

	"etude/internal/repositories/media"
	"etude/internal/services/property"
	"etude/internal/utils/pagination"
	"etude/internal/utils/response"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog/log"
)

type PropertyHandler struct {
	svc *property.Service
}

func NewPropertyHandler(svc *property.Service) *PropertyHandler {
	return &PropertyHandler{svc: svc}
}

func (h *PropertyHandler) writeError(c *fiber.Ctx, err error, action string) error {
	switch {
	case errors.Is(err, property.ErrNotFound):
		return response.NotFound(c, "Property not found")
	case errors.Is(err, property.ErrImageNotFound):
		return response.NotFound(c, "Image not found")
	case errors.Is(err, property.ErrUnknownCategory):
		return response.ValidationError(c, map[string]string{"category": "is invalid"})
	case errors.Is(err, property.ErrReferenceTaken):
		return response.Conflict(c, "Reference already used by another listing")
	case errors.Is(err, media.ErrUnsupportedType):
		return response.Error(c, fiber.StatusUnsupportedMediaType, "Only JPEG, PNG and WebP images are accepted")
	case errors.Is(err, media.ErrTooLarge):
		return response.Error(c, fiber.StatusRequestEntityTooLarge, "Image too large")
	case errors.Is(err, media.ErrEmpty):
		return response.BadRequest(c, "Empty upload")
	}
	log.Error().Err(err).Str("action", action).Msg("property request failed")
	return response.ServerError(c, "Failed to "+action)
}

// Categories returns the category form configurations.
func (h *PropertyHandler) Categories(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{"categories": property.Categories()})
}

// ListPublished is the public catalogue.
func (h *PropertyHandler) ListPublished(c *fiber.Ctx) error {
	var filter property.Filter
	if err := c.QueryParser(&filter); err != nil {
		return response.BadRequest(c, "Invalid query parameters")
	}
	p := pagination.ParseFromRequest(c)

	page, err := h.svc.ListPublished(c.UserContext(), filter, p.Offset, p.Limit)
	if err != nil {
		return h.writeError(c, err, "list properties")
	}
	p.Total = page.Total
	return c.JSON(pagination.Response(p, page.Items))
}

func (h *PropertyHandler) GetPublished(c *fiber.Ctx) error {
	id, ok := paramID(c, "id")
	if !ok {
		return response.BadRequest(c, "Invalid property ID")
	}
	listing, err := h.svc.GetPublished(c.UserContext(), id)
	if err != nil {
		return h.writeError(c, err, "get property")
	}
	return c.JSON(listing)
}

func (h *PropertyHandler) AdminList(c *fiber.Ctx) error {
	p := pagination.ParseFromRequest(c)
	page, err := h.svc.ListAdmin(c.UserContext(), p.Offset, p.Limit)
	if err != nil {
		return h.writeError(c, err, "list properties")
	}
	p.Total = page.Total
	return c.JSON(pagination.Response(p, page.Items))
}

func (h *PropertyHandler) AdminGet(c *fiber.Ctx) error {
	id, ok := paramID(c, "id")
	if !ok {
		return response.BadRequest(c, "Invalid property ID")
	}
	p, err := h.svc.Get(c.UserContext(), id)
	if err != nil {
		return h.writeError(c, err, "get property")
	}
	return response.Success(c, "Property retrieved", fiber.Map{
		"property":     p,
		"fee_estimate": h.svc.EstimateFor(p),
	})
}

func (h *PropertyHandler) Create(c *fiber.Ctx) error {
	var input property.Input
	if ok, err := bindAndValidate(c, &input); !ok {
		return err
	}
	p, err := h.svc.Create(c.UserContext(), input)
	if err != nil {
		return h.writeError(c, err, "create property")
	}
	return response.Created(c, "Property created", p)
}

func (h *PropertyHandler) Update(c *fiber.Ctx) error {
	id, ok := paramID(c, "id")
	if !ok {
		return response.BadRequest(c, "Invalid property ID")
	}
	var input property.Input
	if ok, err := bindAndValidate(c, &input); !ok {
		return err
	}
	p, err := h.svc.Update(c.UserContext(), id, input)
	if err != nil {
		return h.writeError(c, err, "update property")
	}
	return response.Success(c, "Property updated", p)
}

func (h *PropertyHandler) Delete(c *fiber.Ctx) error {
	id, ok := paramID(c, "id")
	if !ok {
		return response.BadRequest(c, "Invalid property ID")
	}
	if err := h.svc.Delete(c.UserContext(), id); err != nil {
		return h.writeError(c, err, "delete property")
	}
	return c.SendStatus(fiber.StatusNoContent)
}

type publishRequest struct {
	Published *bool `json:"published" validate:"required"`
}

func (h *PropertyHandler) SetPublished(c *fiber.Ctx) error {
	id, ok := paramID(c, "id")
	if !ok {
		return response.BadRequest(c, "Invalid property ID")
	}
	var input publishRequest
	if ok, err := bindAndValidate(c, &input); !ok {
		return err
	}
	p, err := h.svc.SetPublished(c.UserContext(), id, *input.Published)
	if err != nil {
		return h.writeError(c, err, "change publication")
	}
	return response.Success(c, "Publication updated", p)
}

// UploadImage expects a multipart form with an "image" file field.
func (h *PropertyHandler) UploadImage(c *fiber.Ctx) error {
	id, ok := paramID(c, "id")
	if !ok {
		return response.BadRequest(c, "Invalid property ID")
	}
	fh, err := c.FormFile("image")
	if err != nil {
		return response.ValidationError(c, map[string]string{"image": "is required"})
	}
	f, err := fh.Open()
	if err != nil {
		return response.BadRequest(c, "Unreadable upload")
	}
	defer f.Close()

	img, err := h.svc.AddImage(c.UserContext(), id, f)
	if err != nil {
		return h.writeError(c, err, "upload image")
	}
	return response.Created(c, "Image uploaded", img)
}

func (h *PropertyHandler) DeleteImage(c *fiber.Ctx) error {
	id, ok := paramID(c, "id")
	if !ok {
		return response.BadRequest(c, "Invalid property ID")
	}
	imageID, ok := paramID(c, "imageId")
	if !ok {
		return response.BadRequest(c, "Invalid image ID")
	}
	if err := h.svc.DeleteImage(c.UserContext(), id, imageID); err != nil {
		return h.writeError(c, err, "delete image")
	}
	return c.SendStatus(fiber.StatusNoContent)
}
