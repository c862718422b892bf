package handlers

import (
	"bytes"
	"encoding/json"
	"errors"
	"math"
	"strconv"
	"strings"

	"etude/internal/services/fees"
	"etude/internal/utils/response"

	"github.com/gofiber/fiber/v2"
)

type FeesHandler struct {
	calc *fees.Calculator
}

func NewFeesHandler(calc *fees.Calculator) *FeesHandler {
	return &FeesHandler{calc: calc}
}

// priceField accepts a JSON number or a French formatted string.
type priceField struct {
	text     string
	number   float64
	isNumber bool
}

func (p *priceField) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	switch {
	case string(data) == "null":
		*p = priceField{}
	case len(data) > 0 && data[0] == '"':
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*p = priceField{text: s}
	default:
		// Out of range numbers come back as ±Inf and are rejected later.
		v, err := strconv.ParseFloat(string(data), 64)
		if err != nil && !errors.Is(err, strconv.ErrRange) {
			return err
		}
		*p = priceField{number: v, isNumber: true}
	}
	return nil
}

func (p priceField) value() (float64, bool) {
	if p.isNumber {
		return p.number, !math.IsNaN(p.number) && !math.IsInf(p.number, 0)
	}
	return fees.ParsePrice(p.text)
}

type estimateRequest struct {
	Price            priceField `json:"price" query:"price"`
	JurisdictionCode string     `json:"jurisdiction_code" query:"jurisdiction_code"`
	PostalCode       string     `json:"postal_code" query:"postal_code"`
	IsNewBuild       bool       `json:"is_new_build" query:"is_new_build"`
	ApplyIncrease    bool       `json:"apply_increase" query:"apply_increase"`
}

func (r estimateRequest) input() (fees.EstimateInput, bool) {
	price, ok := r.Price.value()
	if !ok {
		return fees.EstimateInput{}, false
	}
	code := strings.TrimSpace(r.JurisdictionCode)
	if code == "" && r.PostalCode != "" {
		code = fees.JurisdictionForPostalCode(r.PostalCode)
	}
	return fees.EstimateInput{
		Price:            price,
		JurisdictionCode: code,
		IsNewBuild:       r.IsNewBuild,
		ApplyIncrease:    r.ApplyIncrease,
	}, true
}

// Jurisdictions lists the départements for the calculator select.
func (h *FeesHandler) Jurisdictions(c *fiber.Ctx) error {
	s := h.calc.Schedule()
	return c.JSON(fiber.Map{
		"default":       s.DefaultJurisdiction,
		"jurisdictions": s.Jurisdictions(),
	})
}

type bracketView struct {
	fees.BracketRow
	Label       string  `json:"label"`
	RatePercent float64 `json:"rate_percent"`
}

func (b bracketView) MarshalJSON() ([]byte, error) {
	row, err := b.BracketRow.MarshalJSON()
	if err != nil {
		return nil, err
	}
	var m map[string]interface{}
	if err := json.Unmarshal(row, &m); err != nil {
		return nil, err
	}
	m["label"] = b.Label
	m["rate_percent"] = b.RatePercent
	return json.Marshal(m)
}

// Schedule publishes the reference constants so the front end can show
// how the estimate is built.
func (h *FeesHandler) Schedule(c *fiber.Ctx) error {
	s := h.calc.Schedule()
	brackets := make([]bracketView, 0, len(s.Brackets))
	for _, b := range s.Brackets {
		brackets = append(brackets, bracketView{
			BracketRow:  b,
			Label:       fees.BracketLabel(b),
			RatePercent: b.Rate * 100,
		})
	}
	return c.JSON(fiber.Map{
		"version":  s.Version,
		"currency": s.Currency,
		"emoluments": fiber.Map{
			"vat_rate": s.VATRate,
			"brackets": brackets,
		},
		"transfer_tax": fiber.Map{
			"commune_rate":        s.CommuneRate,
			"assessment_rate":     s.AssessmentRate,
			"increased_base_rate": s.IncreasedBaseRate,
			"new_build_rate":      s.NewBuildRate,
		},
		"land_registry": fiber.Map{
			"rate":    s.ContributionRate,
			"minimum": s.ContributionMinimum,
		},
		"disbursements": s.Disbursements,
	})
}

// Estimate accepts POST JSON or GET query parameters. A missing or
// non-positive price is not an error: the response says the estimate is
// not computable yet.
func (h *FeesHandler) Estimate(c *fiber.Ctx) error {
	var req estimateRequest
	if c.Method() == fiber.MethodGet {
		req = estimateRequest{
			Price:            priceField{text: c.Query("price")},
			JurisdictionCode: c.Query("jurisdiction_code"),
			PostalCode:       c.Query("postal_code"),
			IsNewBuild:       queryBool(c, "is_new_build"),
			ApplyIncrease:    queryBool(c, "apply_increase"),
		}
	} else if err := c.BodyParser(&req); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}

	in, ok := req.input()
	if !ok {
		return c.JSON(fiber.Map{"computable": false})
	}
	breakdown, ok := h.calc.Estimate(in)
	if !ok {
		return c.JSON(fiber.Map{"computable": false})
	}
	return c.JSON(fiber.Map{
		"computable": true,
		"breakdown":  breakdown,
		"display":    fees.Present(breakdown),
	})
}

func queryBool(c *fiber.Ctx, key string) bool {
	v, err := strconv.ParseBool(c.Query(key, "false"))
	return err == nil && v
}
