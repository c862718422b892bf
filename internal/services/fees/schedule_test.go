package fees

import (
	"encoding/json"
	"math"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const minimalSchedule = `
version: "test"
currency: EUR
default_jurisdiction: "01"
emoluments:
  vat_rate: 0.2
  brackets:
%s
transfer_tax:
  commune_rate: 0.012
  assessment_rate: 0.001
  increased_base_rate: 0.05
  new_build_rate: 0.007
land_registry:
  rate: 0.001
  minimum: 15
disbursements: 1200
jurisdictions:
  - { code: "01", name: "Ain", base_rate_percent: 4.5, increase_eligible_2025: true }
`

func TestDefaultSchedule(t *testing.T) {
	s, err := DefaultSchedule()
	require.NoError(t, err)

	require.Len(t, s.Brackets, 4)
	assert.Equal(t, BracketRow{Lower: 0, Upper: 6500, Rate: 0.0387}, s.Brackets[0])
	assert.Equal(t, BracketRow{Lower: 6500, Upper: 17000, Rate: 0.01596}, s.Brackets[1])
	assert.Equal(t, BracketRow{Lower: 17000, Upper: 60000, Rate: 0.01064}, s.Brackets[2])
	assert.Equal(t, 60000.0, s.Brackets[3].Lower)
	assert.True(t, s.Brackets[3].Unbounded())
	assert.Equal(t, 0.00799, s.Brackets[3].Rate)

	assert.Equal(t, 0.2, s.VATRate)
	assert.Equal(t, 0.012, s.CommuneRate)
	assert.Equal(t, 0.001, s.AssessmentRate)
	assert.Equal(t, 0.05, s.IncreasedBaseRate)
	assert.Equal(t, 0.007, s.NewBuildRate)
	assert.Equal(t, 0.001, s.ContributionRate)
	assert.Equal(t, 15.0, s.ContributionMinimum)
	assert.Equal(t, 1200.0, s.Disbursements)

	for _, j := range s.Jurisdictions() {
		assert.Equal(t, 4.5, j.BaseRatePercent, j.Code)
	}
	for _, code := range []string{"36", "38", "56"} {
		j, ok := s.Jurisdiction(code)
		require.True(t, ok)
		assert.False(t, j.IncreaseEligible2025, code)
	}
	j, ok := s.Jurisdiction("2a")
	require.True(t, ok)
	assert.Equal(t, "Corse-du-Sud", j.Name)
}

func TestLoadSchedule_Validation(t *testing.T) {
	tests := []struct {
		name     string
		brackets string
		wantErr  error
	}{
		{
			name: "valid",
			brackets: `    - { lower: 0, upper: 100, rate: 0.01 }
    - { lower: 100, rate: 0.005 }`,
		},
		{
			name: "gap between rows",
			brackets: `    - { lower: 0, upper: 100, rate: 0.01 }
    - { lower: 150, rate: 0.005 }`,
			wantErr: ErrBracketNotContiguous,
		},
		{
			name: "first row not at zero",
			brackets: `    - { lower: 10, upper: 100, rate: 0.01 }
    - { lower: 100, rate: 0.005 }`,
			wantErr: ErrBracketNotContiguous,
		},
		{
			name: "last row bounded",
			brackets: `    - { lower: 0, upper: 100, rate: 0.01 }
    - { lower: 100, upper: 200, rate: 0.005 }`,
			wantErr: ErrLastBracketBounded,
		},
		{
			name: "unbounded row in the middle",
			brackets: `    - { lower: 0, rate: 0.01 }
    - { lower: 100, rate: 0.005 }`,
			wantErr: ErrBracketOrder,
		},
		{
			name:     "rate out of range",
			brackets: `    - { lower: 0, rate: 1.5 }`,
			wantErr:  ErrInvalidRate,
		},
		{
			name:     "no brackets",
			brackets: `    []`,
			wantErr:  ErrEmptySchedule,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			doc := strings.Replace(minimalSchedule, "%s", tt.brackets, 1)
			_, err := LoadSchedule(strings.NewReader(doc))
			if tt.wantErr == nil {
				assert.NoError(t, err)
				return
			}
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}
}

func TestLoadSchedule_Jurisdictions(t *testing.T) {
	base := strings.Replace(minimalSchedule, "%s", `    - { lower: 0, rate: 0.01 }`, 1)

	t.Run("unknown default", func(t *testing.T) {
		doc := strings.Replace(base, `default_jurisdiction: "01"`, `default_jurisdiction: "99"`, 1)
		_, err := LoadSchedule(strings.NewReader(doc))
		assert.ErrorIs(t, err, ErrUnknownDefault)
	})

	t.Run("duplicate code", func(t *testing.T) {
		doc := base + `  - { code: "01", name: "Ain bis", base_rate_percent: 4.5, increase_eligible_2025: false }` + "\n"
		_, err := LoadSchedule(strings.NewReader(doc))
		assert.ErrorIs(t, err, ErrDuplicateJurisdiction)
	})

	t.Run("unknown field rejected", func(t *testing.T) {
		doc := base + "surprise: true\n"
		_, err := LoadSchedule(strings.NewReader(doc))
		assert.Error(t, err)
	})
}

func TestSchedule_Resolve(t *testing.T) {
	s, err := DefaultSchedule()
	require.NoError(t, err)

	assert.Equal(t, "33", s.Resolve(" 33 ").Code)
	assert.Equal(t, s.DefaultJurisdiction, s.Resolve("").Code)
	assert.Equal(t, s.DefaultJurisdiction, s.Resolve("00").Code)
}

func TestBracketRow_MarshalJSON(t *testing.T) {
	data, err := json.Marshal([]BracketRow{
		{Lower: 0, Upper: 6500, Rate: 0.0387},
		{Lower: 60000, Upper: math.Inf(1), Rate: 0.00799},
	})
	require.NoError(t, err)
	assert.JSONEq(t, `[{"lower":0,"upper":6500,"rate":0.0387},{"lower":60000,"upper":null,"rate":0.00799}]`, string(data))
}
