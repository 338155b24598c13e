package patient

import (
	"context"

	"github.com/Pash-Data/Nutricare/internal/nutrition"
)

// Repository defines the persistence operations for patient records.
type Repository interface {
	// Create inserts a new patient record and fills in its assigned ID.
	Create(ctx context.Context, p *Patient) error

	// List returns all patient records in insertion order.
	List(ctx context.Context) ([]*Patient, error)

	// CountByStatus returns the number of stored records per nutrition
	// status.
	CountByStatus(ctx context.Context) (map[nutrition.Status]int64, error)
}
