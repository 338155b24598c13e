// Package patient defines the patient record persisted by the service and
// the repository contract for storing it.
package patient

import (
	"time"

	"github.com/Pash-Data/Nutricare/internal/nutrition"
)

// Patient is a screened child together with the measurements taken at
// registration and the derived screening outcome. Derived fields are
// computed once at registration and stored; reads serve the stored values.
type Patient struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	CreatedAt time.Time `gorm:"autoCreateTime;index" json:"-"`

	Name     string  `gorm:"column:name;type:varchar(255);not null;index" json:"name"`
	Age      int     `gorm:"column:age;not null" json:"age"`
	WeightKg float64 `gorm:"column:weight_kg;not null" json:"weight_kg"`
	HeightCm float64 `gorm:"column:height_cm;not null" json:"height_cm"`
	MuacMM   float64 `gorm:"column:muac_mm;not null" json:"muac_mm"`

	BMI             float64          `gorm:"column:bmi;not null" json:"bmi"`
	Build           nutrition.Build  `gorm:"column:build;type:varchar(32);not null" json:"build"`
	NutritionStatus nutrition.Status `gorm:"column:nutrition_status;type:varchar(16);not null;index" json:"nutrition_status"`
	Recommendation  string           `gorm:"column:recommendation;type:text;not null" json:"recommendation"`
}

// TableName overrides the table name used by GORM.
func (Patient) TableName() string {
	return "patients"
}

// CreatePatientCommand carries the raw measurements submitted for a new
// patient, before validation and classification.
type CreatePatientCommand struct {
	Name     string
	Age      int
	WeightKg float64
	HeightCm float64
	MuacMM   float64
}
