package handlers

import (
	"strconv"

	"etude/internal/utils/response"
	"etude/internal/validation"

	"github.com/gofiber/fiber/v2"
)

// bindAndValidate parses the JSON body into dst and validates it. When it
// returns false the error response has already been written.
func bindAndValidate(c *fiber.Ctx, dst interface{}) (bool, error) {
	if err := c.BodyParser(dst); err != nil {
		return false, response.BadRequest(c, "Invalid request body")
	}
	if fields := validation.Struct(dst); fields != nil {
		return false, response.ValidationError(c, fields)
	}
	return true, nil
}

func paramID(c *fiber.Ctx, name string) (uint, bool) {
	id, err := strconv.ParseUint(c.Params(name), 10, 32)
	if err != nil || id == 0 {
		return 0, false
	}
	return uint(id), true
}
