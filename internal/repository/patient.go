// Package repository provides the GORM-backed implementations of the
// domain repository interfaces.
package repository

import (
	"context"
	"fmt"

	"gorm.io/gorm"

	"github.com/Pash-Data/Nutricare/internal/domain/patient"
	"github.com/Pash-Data/Nutricare/internal/nutrition"
)

// PatientRepository persists patient records through GORM.
type PatientRepository struct {
	db *gorm.DB
}

// NewPatientRepository returns a patient repository backed by db.
func NewPatientRepository(db *gorm.DB) *PatientRepository {
	return &PatientRepository{db: db}
}

// Create inserts the record and fills in the assigned ID.
func (r *PatientRepository) Create(ctx context.Context, p *patient.Patient) error {
	if err := r.db.WithContext(ctx).Create(p).Error; err != nil {
		return fmt.Errorf("inserting patient: %w", err)
	}
	return nil
}

// List returns every patient record in insertion order.
func (r *PatientRepository) List(ctx context.Context) ([]*patient.Patient, error) {
	var patients []*patient.Patient
	if err := r.db.WithContext(ctx).Order("id ASC").Find(&patients).Error; err != nil {
		return nil, fmt.Errorf("listing patients: %w", err)
	}
	return patients, nil
}

// CountByStatus returns the number of stored records per nutrition status,
// aggregated in SQL.
func (r *PatientRepository) CountByStatus(ctx context.Context) (map[nutrition.Status]int64, error) {
	var rows []struct {
		NutritionStatus nutrition.Status
		Count           int64
	}
	err := r.db.WithContext(ctx).
		Model(&patient.Patient{}).
		Select("nutrition_status, COUNT(*) AS count").
		Group("nutrition_status").
		Find(&rows).Error
	if err != nil {
		return nil, fmt.Errorf("counting patients: %w", err)
	}

	counts := make(map[nutrition.Status]int64, len(rows))
	for _, row := range rows {
		counts[row.NutritionStatus] = row.Count
	}
	return counts, nil
}
