package fees

import "strings"

// JurisdictionForPostalCode derives the département code from a French
// postal code. It returns "" when the code is malformed; Estimate then
// falls back to the default jurisdiction.
func JurisdictionForPostalCode(postalCode string) string {
	pc := strings.TrimSpace(postalCode)
	if len(pc) != 5 {
		return ""
	}
	for _, r := range pc {
		if r < '0' || r > '9' {
			return ""
		}
	}

	switch {
	case strings.HasPrefix(pc, "97"), strings.HasPrefix(pc, "98"):
		return pc[:3]
	case strings.HasPrefix(pc, "20"):
		if pc < "20200" {
			return "2A"
		}
		return "2B"
	}
	return pc[:2]
}
