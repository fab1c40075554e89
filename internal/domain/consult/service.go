package consult

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// Section identifies one wizard state. The flow is strictly linear:
// a → b → c → d → e → f → g → summary → complete.
type Section string

const (
	SectionA Section = "a"
	SectionB Section = "b"
	SectionC Section = "c"
	SectionD Section = "d"
	SectionE Section = "e"
	SectionF Section = "f"
	SectionG Section = "g"

	StateSummary  Section = "summary"
	StateComplete Section = "complete"
)

var sectionOrder = []Section{
	SectionA, SectionB, SectionC, SectionD, SectionE, SectionF, SectionG,
	StateSummary, StateComplete,
}

// Next returns the single forward edge out of a state. COMPLETE has no
// successor and returns itself.
func (s Section) Next() Section {
	for i, sec := range sectionOrder {
		if sec == s && i+1 < len(sectionOrder) {
			return sectionOrder[i+1]
		}
	}
	return StateComplete
}

// ParseSection resolves a route parameter to a record-bound section (b-g).
// Section A is excluded: it has its own entry point with no record id.
func ParseSection(s string) (Section, bool) {
	switch sec := Section(s); sec {
	case SectionB, SectionC, SectionD, SectionE, SectionF, SectionG:
		return sec, true
	}
	return "", false
}

// Service is the wizard controller. Each call loads the record fresh,
// validates the section, and writes at most once; a validation failure
// leaves the record untouched.
type Service struct {
	repo Repository
	now  func() time.Time
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo, now: time.Now}
}

// SaveSectionA validates the patient details and creates a new record.
// This is the only way a consultation comes into existence.
func (s *Service) SaveSectionA(ctx context.Context, in SectionAInput) (*Consultation, error) {
	vals, verr := validateSectionA(in, s.now())
	if verr != nil {
		return nil, verr
	}
	c := &Consultation{}
	vals.apply(c)
	if err := s.repo.Create(ctx, c); err != nil {
		return nil, err
	}
	return c, nil
}

func (s *Service) SaveSectionB(ctx context.Context, id uuid.UUID, in SectionBInput) (*Consultation, error) {
	c, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	vals, verr := validateSectionB(in)
	if verr != nil {
		return nil, verr
	}
	vals.apply(c)
	if err := s.repo.Update(ctx, c); err != nil {
		return nil, err
	}
	return c, nil
}

func (s *Service) SaveSectionC(ctx context.Context, id uuid.UUID, in SectionCInput) (*Consultation, error) {
	c, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	vals, verr := validateSectionC(in)
	if verr != nil {
		return nil, verr
	}
	vals.apply(c)
	if err := s.repo.Update(ctx, c); err != nil {
		return nil, err
	}
	return c, nil
}

func (s *Service) SaveSectionD(ctx context.Context, id uuid.UUID, in SectionDInput) (*Consultation, error) {
	c, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	vals, verr := validateSectionD(in)
	if verr != nil {
		return nil, verr
	}
	vals.apply(c)
	if err := s.repo.Update(ctx, c); err != nil {
		return nil, err
	}
	return c, nil
}

func (s *Service) SaveSectionE(ctx context.Context, id uuid.UUID, in SectionEInput) (*Consultation, error) {
	c, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	vals, verr := validateSectionE(in)
	if verr != nil {
		return nil, verr
	}
	vals.apply(c)
	if err := s.repo.Update(ctx, c); err != nil {
		return nil, err
	}
	return c, nil
}

func (s *Service) SaveSectionF(ctx context.Context, id uuid.UUID, in SectionFInput) (*Consultation, error) {
	c, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	vals, _ := validateSectionF(in)
	vals.apply(c)
	if err := s.repo.Update(ctx, c); err != nil {
		return nil, err
	}
	return c, nil
}

func (s *Service) SaveSectionG(ctx context.Context, id uuid.UUID, in SectionGInput) (*Consultation, error) {
	c, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	vals, verr := validateSectionG(in)
	if verr != nil {
		return nil, verr
	}
	vals.apply(c)
	if err := s.repo.Update(ctx, c); err != nil {
		return nil, err
	}
	return c, nil
}

// Prefill returns the section's input fields populated from the stored
// record. The round-trip invariant holds: re-submitting a prefill for the
// same section validates cleanly without modification.
func (s *Service) Prefill(ctx context.Context, id uuid.UUID, sec Section) (interface{}, error) {
	c, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	switch sec {
	case SectionA:
		return sectionAInputFrom(c), nil
	case SectionB:
		return sectionBInputFrom(c), nil
	case SectionC:
		return sectionCInputFrom(c), nil
	case SectionD:
		return sectionDInputFrom(c), nil
	case SectionE:
		return sectionEInputFrom(c), nil
	case SectionF:
		return sectionFInputFrom(c), nil
	case SectionG:
		return sectionGInputFrom(c), nil
	}
	return nil, ErrNotFound
}

// Summary is the read-only projection of the full record. It is available
// at any time for a valid id, before or after submission.
func (s *Service) Summary(ctx context.Context, id uuid.UUID) (*Consultation, error) {
	return s.repo.GetByID(ctx, id)
}

// Submit flips the record from draft to final. Idempotent: submitting an
// already-submitted record is a no-op success. There is no un-submit.
func (s *Service) Submit(ctx context.Context, id uuid.UUID) (*Consultation, error) {
	c, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if c.Submitted {
		return c, nil
	}
	if err := s.repo.SetSubmitted(ctx, id); err != nil {
		return nil, err
	}
	c.Submitted = true
	return c, nil
}

// ListSubmitted returns the public listing: submitted records only,
// newest-created-first.
func (s *Service) ListSubmitted(ctx context.Context, limit, offset int) ([]*Consultation, int, error) {
	return s.repo.ListSubmitted(ctx, limit, offset)
}
