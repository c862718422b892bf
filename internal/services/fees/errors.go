package fees

import "errors"

var (
	ErrEmptySchedule         = errors.New("schedule has no brackets")
	ErrBracketNotContiguous  = errors.New("brackets are not contiguous")
	ErrBracketOrder          = errors.New("bracket upper bound must exceed lower bound")
	ErrLastBracketBounded    = errors.New("last bracket must be unbounded")
	ErrInvalidRate           = errors.New("rate must be within [0, 1)")
	ErrNoJurisdictions       = errors.New("schedule has no jurisdictions")
	ErrDuplicateJurisdiction = errors.New("duplicate jurisdiction code")
	ErrUnknownDefault        = errors.New("default jurisdiction is not in the table")
	ErrInvalidJurisdiction   = errors.New("invalid jurisdiction entry")
	ErrInvalidContribution   = errors.New("invalid land registry contribution")
	ErrInvalidDisbursements  = errors.New("disbursements estimate must not be negative")
)
