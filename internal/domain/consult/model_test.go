package consult

import (
	"testing"
	"time"
)

func intPtr(n int) *int { return &n }

func TestCalculatedAge(t *testing.T) {
	today := time.Date(2024, 3, 10, 0, 0, 0, 0, time.UTC)
	dob := time.Date(2000, 3, 11, 0, 0, 0, 0, time.UTC)

	// DOB wins over a stale manual age.
	c := &Consultation{DateOfBirth: &dob, Age: intPtr(99)}
	if got := c.CalculatedAge(today); got == nil || *got != 23 {
		t.Errorf("expected derived age 23, got %v", got)
	}

	// Manual age stands when there is no DOB.
	c = &Consultation{Age: intPtr(57)}
	if got := c.CalculatedAge(today); got == nil || *got != 57 {
		t.Errorf("expected manual age 57, got %v", got)
	}

	// Neither known.
	c = &Consultation{}
	if got := c.CalculatedAge(today); got != nil {
		t.Errorf("expected nil age, got %v", got)
	}
}

func TestDisplayLine(t *testing.T) {
	today := time.Date(2024, 3, 10, 0, 0, 0, 0, time.UTC)

	c := &Consultation{PatientName: "Jane Doe", Age: intPtr(41)}
	if got := c.DisplayLine(today); got != "Jane Doe (41 yrs)" {
		t.Errorf("unexpected display line %q", got)
	}

	c = &Consultation{PatientName: "Jane Doe"}
	if got := c.DisplayLine(today); got != "Jane Doe" {
		t.Errorf("unexpected display line %q", got)
	}
}

func TestVocabularies(t *testing.T) {
	if len(validWards) != 21 {
		t.Errorf("expected 21 wards, got %d", len(validWards))
	}
	if len(validDisciplines) != 17 {
		t.Errorf("expected 17 disciplines, got %d", len(validDisciplines))
	}
	if len(reasonOrder) != 7 {
		t.Errorf("expected 7 reason tags, got %d", len(reasonOrder))
	}
	for _, r := range reasonOrder {
		if !validReasons[r] {
			t.Errorf("reason %q missing from valid set", r)
		}
	}
}
