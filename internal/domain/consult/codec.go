package consult

import (
	"strconv"
	"strings"
	"time"
)

// Wire formats for form input. datetime-local inputs carry no zone or
// seconds; dates are plain ISO.
const (
	datetimeLayout = "2006-01-02T15:04"
	dateLayout     = "2006-01-02"
)

// parseTriState decodes a yes/no form token. Only the exact tokens "yes"
// and "no" are recognized; anything else, including the empty string,
// decodes to unset without error.
func parseTriState(s string) TriState {
	switch s {
	case "yes":
		return TriYes
	case "no":
		return TriNo
	}
	return TriUnset
}

// normalizeReasons decodes a submitted reason set into the stored ordered
// list: duplicates collapse, order follows the vocabulary's presentation
// order rather than submission order. Unknown tags are reported back.
func normalizeReasons(raw []string) ([]ReasonTag, []string) {
	chosen := make(map[ReasonTag]bool, len(raw))
	var unknown []string
	for _, s := range raw {
		tag := ReasonTag(s)
		if !validReasons[tag] {
			unknown = append(unknown, s)
			continue
		}
		chosen[tag] = true
	}

	var ordered []ReasonTag
	for _, tag := range reasonOrder {
		if chosen[tag] {
			ordered = append(ordered, tag)
		}
	}
	return ordered, unknown
}

func hasReason(reasons []ReasonTag, tag ReasonTag) bool {
	for _, r := range reasons {
		if r == tag {
			return true
		}
	}
	return false
}

// ageFromDOB computes full elapsed years from dob to today, decremented by
// one when today's (month, day) falls before the birth (month, day).
func ageFromDOB(dob, today time.Time) int {
	age := today.Year() - dob.Year()
	if today.Month() < dob.Month() ||
		(today.Month() == dob.Month() && today.Day() < dob.Day()) {
		age--
	}
	return age
}

func parseOptionalInt(s string) (*int, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil, true
	}
	n, err := strconv.Atoi(s)
	if err != nil || n < 0 {
		return nil, false
	}
	return &n, true
}

func parseOptionalFloat(s string) (*float64, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil, true
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return nil, false
	}
	return &f, true
}

func parseOptionalDatetime(s string) (*time.Time, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil, true
	}
	t, err := time.Parse(datetimeLayout, s)
	if err != nil {
		return nil, false
	}
	return &t, true
}

func parseOptionalDate(s string) (*time.Time, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil, true
	}
	t, err := time.Parse(dateLayout, s)
	if err != nil {
		return nil, false
	}
	return &t, true
}

func formatOptionalInt(n *int) string {
	if n == nil {
		return ""
	}
	return strconv.Itoa(*n)
}

func formatOptionalFloat(f *float64) string {
	if f == nil {
		return ""
	}
	return strconv.FormatFloat(*f, 'f', -1, 64)
}

func formatOptionalDatetime(t *time.Time) string {
	if t == nil {
		return ""
	}
	return t.Format(datetimeLayout)
}

func formatOptionalDate(t *time.Time) string {
	if t == nil {
		return ""
	}
	return t.Format(dateLayout)
}

func strPtrVal(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

func optionalStr(s string) *string {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil
	}
	return &s
}
