package fees

import (
	"bytes"
	_ "embed"
	"fmt"
	"io"
	"math"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

//go:embed schedule.yaml
var embeddedSchedule []byte

// Schedule is the immutable, validated reference data used by the calculator.
type Schedule struct {
	Version             string
	Currency            string
	DefaultJurisdiction string

	Brackets []BracketRow
	VATRate  float64

	CommuneRate       float64
	AssessmentRate    float64
	IncreasedBaseRate float64
	NewBuildRate      float64

	ContributionRate    float64
	ContributionMinimum float64

	Disbursements float64

	jurisdictions []JurisdictionRate
	byCode        map[string]JurisdictionRate
}

type scheduleFile struct {
	Version             string `yaml:"version"`
	Currency            string `yaml:"currency"`
	DefaultJurisdiction string `yaml:"default_jurisdiction"`
	Emoluments          struct {
		VATRate  float64 `yaml:"vat_rate"`
		Brackets []struct {
			Lower float64  `yaml:"lower"`
			Upper *float64 `yaml:"upper"`
			Rate  float64  `yaml:"rate"`
		} `yaml:"brackets"`
	} `yaml:"emoluments"`
	TransferTax struct {
		CommuneRate       float64 `yaml:"commune_rate"`
		AssessmentRate    float64 `yaml:"assessment_rate"`
		IncreasedBaseRate float64 `yaml:"increased_base_rate"`
		NewBuildRate      float64 `yaml:"new_build_rate"`
	} `yaml:"transfer_tax"`
	LandRegistry struct {
		Rate    float64 `yaml:"rate"`
		Minimum float64 `yaml:"minimum"`
	} `yaml:"land_registry"`
	Disbursements float64            `yaml:"disbursements"`
	Jurisdictions []JurisdictionRate `yaml:"jurisdictions"`
}

// DefaultSchedule returns the schedule compiled into the binary.
func DefaultSchedule() (*Schedule, error) {
	return LoadSchedule(bytes.NewReader(embeddedSchedule))
}

// ScheduleFromPath loads the edition at path, or the compiled-in one when
// path is empty.
func ScheduleFromPath(path string) (*Schedule, error) {
	if path == "" {
		return DefaultSchedule()
	}
	return LoadScheduleFile(path)
}

// LoadScheduleFile reads and validates a schedule edition from disk.
func LoadScheduleFile(path string) (*Schedule, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open fee schedule: %w", err)
	}
	defer f.Close()
	return LoadSchedule(f)
}

// LoadSchedule decodes a YAML schedule and validates it.
func LoadSchedule(r io.Reader) (*Schedule, error) {
	var file scheduleFile
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(&file); err != nil {
		return nil, fmt.Errorf("failed to decode fee schedule: %w", err)
	}

	s := &Schedule{
		Version:             file.Version,
		Currency:            file.Currency,
		DefaultJurisdiction: file.DefaultJurisdiction,
		VATRate:             file.Emoluments.VATRate,
		CommuneRate:         file.TransferTax.CommuneRate,
		AssessmentRate:      file.TransferTax.AssessmentRate,
		IncreasedBaseRate:   file.TransferTax.IncreasedBaseRate,
		NewBuildRate:        file.TransferTax.NewBuildRate,
		ContributionRate:    file.LandRegistry.Rate,
		ContributionMinimum: file.LandRegistry.Minimum,
		Disbursements:       file.Disbursements,
	}
	for _, b := range file.Emoluments.Brackets {
		row := BracketRow{Lower: b.Lower, Upper: math.Inf(1), Rate: b.Rate}
		if b.Upper != nil {
			row.Upper = *b.Upper
		}
		s.Brackets = append(s.Brackets, row)
	}
	s.jurisdictions = file.Jurisdictions

	if err := s.Validate(); err != nil {
		return nil, err
	}

	s.byCode = make(map[string]JurisdictionRate, len(s.jurisdictions))
	for _, j := range s.jurisdictions {
		s.byCode[j.Code] = j
	}
	return s, nil
}

// Validate checks bracket contiguity, rates and the jurisdiction table.
func (s *Schedule) Validate() error {
	if len(s.Brackets) == 0 {
		return ErrEmptySchedule
	}
	if s.Brackets[0].Lower != 0 {
		return fmt.Errorf("%w: first bracket starts at %v", ErrBracketNotContiguous, s.Brackets[0].Lower)
	}
	last := len(s.Brackets) - 1
	for i, b := range s.Brackets {
		if !validRate(b.Rate) {
			return fmt.Errorf("%w: bracket %d rate %v", ErrInvalidRate, i, b.Rate)
		}
		if i == last {
			if !b.Unbounded() {
				return ErrLastBracketBounded
			}
			break
		}
		if b.Unbounded() || b.Upper <= b.Lower {
			return fmt.Errorf("%w: bracket %d", ErrBracketOrder, i)
		}
		if b.Upper != s.Brackets[i+1].Lower {
			return fmt.Errorf("%w: bracket %d ends at %v, next starts at %v",
				ErrBracketNotContiguous, i, b.Upper, s.Brackets[i+1].Lower)
		}
	}

	for name, rate := range map[string]float64{
		"vat_rate":            s.VATRate,
		"commune_rate":        s.CommuneRate,
		"assessment_rate":     s.AssessmentRate,
		"increased_base_rate": s.IncreasedBaseRate,
		"new_build_rate":      s.NewBuildRate,
		"land_registry.rate":  s.ContributionRate,
	} {
		if !validRate(rate) {
			return fmt.Errorf("%w: %s %v", ErrInvalidRate, name, rate)
		}
	}
	if s.ContributionMinimum < 0 {
		return ErrInvalidContribution
	}
	if s.Disbursements < 0 {
		return ErrInvalidDisbursements
	}

	if len(s.jurisdictions) == 0 {
		return ErrNoJurisdictions
	}
	seen := make(map[string]bool, len(s.jurisdictions))
	for _, j := range s.jurisdictions {
		if strings.TrimSpace(j.Code) == "" || j.BaseRatePercent <= 0 || j.BaseRatePercent >= 100 {
			return fmt.Errorf("%w: %q", ErrInvalidJurisdiction, j.Code)
		}
		if seen[j.Code] {
			return fmt.Errorf("%w: %q", ErrDuplicateJurisdiction, j.Code)
		}
		seen[j.Code] = true
	}
	if !seen[s.DefaultJurisdiction] {
		return fmt.Errorf("%w: %q", ErrUnknownDefault, s.DefaultJurisdiction)
	}
	return nil
}

func validRate(r float64) bool {
	return r >= 0 && r < 1 && !math.IsNaN(r)
}

// Jurisdictions returns the jurisdiction table in schedule order.
func (s *Schedule) Jurisdictions() []JurisdictionRate {
	out := make([]JurisdictionRate, len(s.jurisdictions))
	copy(out, s.jurisdictions)
	return out
}

// Jurisdiction looks up a jurisdiction by code.
func (s *Schedule) Jurisdiction(code string) (JurisdictionRate, bool) {
	j, ok := s.byCode[strings.ToUpper(strings.TrimSpace(code))]
	return j, ok
}

// Resolve returns the jurisdiction for code, falling back to the default.
func (s *Schedule) Resolve(code string) JurisdictionRate {
	if j, ok := s.Jurisdiction(code); ok {
		return j
	}
	return s.byCode[s.DefaultJurisdiction]
}
