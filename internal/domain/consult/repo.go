package consult

import (
	"context"

	"github.com/google/uuid"
)

// Repository is the record store. Implementations must map a missing id to
// ErrNotFound and support atomic single-record create/read/update; no
// multi-record transactions are required.
type Repository interface {
	Create(ctx context.Context, c *Consultation) error
	GetByID(ctx context.Context, id uuid.UUID) (*Consultation, error)
	Update(ctx context.Context, c *Consultation) error
	SetSubmitted(ctx context.Context, id uuid.UUID) error
	ListSubmitted(ctx context.Context, limit, offset int) ([]*Consultation, int, error)
}
