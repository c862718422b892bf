package pagination

import (
	"encoding/json"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseFromRequest(t *testing.T) {
	tests := []struct {
		query string
		want  Pagination
	}{
		{"", Pagination{Page: 1, Limit: DefaultLimit, Offset: 0}},
		{"?page=3&limit=10", Pagination{Page: 3, Limit: 10, Offset: 20}},
		{"?page=0&limit=-4", Pagination{Page: 1, Limit: DefaultLimit, Offset: 0}},
		{"?page=abc&limit=500", Pagination{Page: 1, Limit: MaxLimit, Offset: 0}},
	}

	for _, tt := range tests {
		t.Run(tt.query, func(t *testing.T) {
			app := fiber.New()
			var got Pagination
			app.Get("/", func(c *fiber.Ctx) error {
				got = ParseFromRequest(c)
				return c.SendStatus(fiber.StatusNoContent)
			})
			_, err := app.Test(httptest.NewRequest("GET", "/"+tt.query, nil))
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestResponse(t *testing.T) {
	p := Pagination{Page: 2, Limit: 10, Total: 21}
	body, err := json.Marshal(Response(p, []int{1}))
	require.NoError(t, err)
	assert.JSONEq(t, `{"data":[1],"meta":{"current_page":2,"per_page":10,"total_items":21,"total_pages":3}}`, string(body))
}
