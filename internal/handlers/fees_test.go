package handlers

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"etude/internal/services/fees"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newFeesApp(t *testing.T) *fiber.App {
	t.Helper()
	schedule, err := fees.DefaultSchedule()
	require.NoError(t, err)
	h := NewFeesHandler(fees.NewCalculator(schedule))

	app := fiber.New()
	app.Get("/estimate", h.Estimate)
	app.Post("/estimate", h.Estimate)
	app.Get("/schedule", h.Schedule)
	return app
}

type estimateResponse struct {
	Computable bool               `json:"computable"`
	Breakdown  *fees.FeeBreakdown `json:"breakdown"`
}

func readEstimate(t *testing.T, app *fiber.App, req *http.Request) estimateResponse {
	t.Helper()
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var out estimateResponse
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&out))
	return out
}

func TestFeesHandler_EstimatePriceFormats(t *testing.T) {
	app := newFeesApp(t)

	tests := []struct {
		name       string
		body       string
		computable bool
	}{
		{"json number", `{"price": 250000, "jurisdiction_code": "75"}`, true},
		{"json exponent", `{"price": 2.5e5, "jurisdiction_code": "75"}`, true},
		{"json decimal", `{"price": 250000.0, "jurisdiction_code": "75"}`, true},
		{"json out of range", `{"price": 1e400}`, false},
		{"subnormal string", `{"price": "0,` + strings.Repeat("0", 310) + `1"}`, false},
		{"near max float", `{"price": 17` + strings.Repeat("0", 307) + `}`, false},
		{"french string", `{"price": "250 000,00", "jurisdiction_code": "75"}`, true},
		{"empty", `{"price": ""}`, false},
		{"null", `{"price": null}`, false},
		{"zero", `{"price": 0}`, false},
		{"negative", `{"price": "-10"}`, false},
		{"garbage", `{"price": "beaucoup"}`, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodPost, "/estimate", strings.NewReader(tt.body))
			req.Header.Set("Content-Type", "application/json")
			out := readEstimate(t, app, req)
			assert.Equal(t, tt.computable, out.Computable)
			if tt.computable {
				require.NotNil(t, out.Breakdown)
				assert.Equal(t, 250000.0, out.Breakdown.Price)
			}
		})
	}
}

func TestFeesHandler_ExtremeQueryPrice(t *testing.T) {
	app := newFeesApp(t)

	req := httptest.NewRequest(http.MethodGet, "/estimate?price=17"+strings.Repeat("0", 307), nil)
	out := readEstimate(t, app, req)
	assert.False(t, out.Computable)
}

func TestFeesHandler_PostalCodeFallback(t *testing.T) {
	app := newFeesApp(t)

	req := httptest.NewRequest(http.MethodGet, "/estimate?price=300000&postal_code=38100&apply_increase=true", nil)
	out := readEstimate(t, app, req)
	require.True(t, out.Computable)
	assert.Equal(t, "38", out.Breakdown.Jurisdiction.Code)
	assert.False(t, out.Breakdown.IncreaseApplied)

	req = httptest.NewRequest(http.MethodGet, "/estimate?price=300000&jurisdiction_code=69&apply_increase=true", nil)
	out = readEstimate(t, app, req)
	require.True(t, out.Computable)
	assert.True(t, out.Breakdown.IncreaseApplied)
}

func TestFeesHandler_MalformedBody(t *testing.T) {
	app := newFeesApp(t)
	req := httptest.NewRequest(http.MethodPost, "/estimate", strings.NewReader(`{"price":`))
	req.Header.Set("Content-Type", "application/json")
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestFeesHandler_ScheduleLabels(t *testing.T) {
	app := newFeesApp(t)
	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/schedule", nil), -1)
	require.NoError(t, err)
	raw, err := io.ReadAll(resp.Body)
	require.NoError(t, err)

	var out struct {
		Emoluments struct {
			Brackets []map[string]interface{} `json:"brackets"`
		} `json:"emoluments"`
	}
	require.NoError(t, json.Unmarshal(raw, &out))
	require.Len(t, out.Emoluments.Brackets, 4)
	for _, b := range out.Emoluments.Brackets {
		assert.NotEmpty(t, b["label"])
		assert.Contains(t, b, "rate_percent")
	}
}
