package repository

import (
	"context"
	"database/sql"
	"errors"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"github.com/Pash-Data/Nutricare/internal/domain/patient"
	"github.com/Pash-Data/Nutricare/internal/nutrition"
)

func newMockDB(t *testing.T) (*gorm.DB, sqlmock.Sqlmock, *sql.DB) {
	t.Helper()

	db, mock, err := sqlmock.New()
	require.NoError(t, err)

	gdb, err := gorm.Open(postgres.New(postgres.Config{Conn: db}), &gorm.Config{})
	require.NoError(t, err)

	return gdb, mock, db
}

func TestPatientRepositoryCreate(t *testing.T) {
	gdb, mock, db := newMockDB(t)
	defer db.Close()

	mock.ExpectBegin()
	mock.ExpectQuery(`INSERT INTO "patients"`).
		WithArgs(
			sqlmock.AnyArg(), // created_at
			"Amina",
			3,
			float64(12),
			float64(90),
			float64(112),
			14.81,
			string(nutrition.BuildSeverelyUnderweight),
			string(nutrition.StatusSAM),
			nutrition.Recommendation(nutrition.StatusSAM),
		).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(1))
	mock.ExpectCommit()

	repo := NewPatientRepository(gdb)
	p := &patient.Patient{
		Name:            "Amina",
		Age:             3,
		WeightKg:        12,
		HeightCm:        90,
		MuacMM:          112,
		BMI:             14.81,
		Build:           nutrition.BuildSeverelyUnderweight,
		NutritionStatus: nutrition.StatusSAM,
		Recommendation:  nutrition.Recommendation(nutrition.StatusSAM),
	}

	err := repo.Create(context.Background(), p)
	require.NoError(t, err)
	assert.Equal(t, uint(1), p.ID)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPatientRepositoryCreateError(t *testing.T) {
	gdb, mock, db := newMockDB(t)
	defer db.Close()

	mock.ExpectBegin()
	mock.ExpectQuery(`INSERT INTO "patients"`).
		WillReturnError(errors.New("connection refused"))
	mock.ExpectRollback()

	repo := NewPatientRepository(gdb)
	err := repo.Create(context.Background(), &patient.Patient{Name: "Amina", Age: 3})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "inserting patient")
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPatientRepositoryList(t *testing.T) {
	gdb, mock, db := newMockDB(t)
	defer db.Close()

	now := time.Now()
	rows := sqlmock.NewRows([]string{
		"id", "created_at", "name", "age", "weight_kg", "height_cm", "muac_mm",
		"bmi", "build", "nutrition_status", "recommendation",
	}).
		AddRow(1, now, "Amina", 3, 12.0, 90.0, 112.0, 14.81, "Severely underweight", "SAM", nutrition.Recommendation(nutrition.StatusSAM)).
		AddRow(2, now, "Kofi", 4, 16.0, 100.0, 130.0, 16.0, "Underweight", "Normal", nutrition.Recommendation(nutrition.StatusNormal))

	mock.ExpectQuery(`SELECT \* FROM "patients" ORDER BY id ASC`).WillReturnRows(rows)

	repo := NewPatientRepository(gdb)
	patients, err := repo.List(context.Background())
	require.NoError(t, err)
	require.Len(t, patients, 2)

	assert.Equal(t, uint(1), patients[0].ID)
	assert.Equal(t, "Amina", patients[0].Name)
	assert.Equal(t, nutrition.StatusSAM, patients[0].NutritionStatus)
	assert.Equal(t, uint(2), patients[1].ID)
	assert.Equal(t, nutrition.StatusNormal, patients[1].NutritionStatus)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPatientRepositoryCountByStatus(t *testing.T) {
	gdb, mock, db := newMockDB(t)
	defer db.Close()

	rows := sqlmock.NewRows([]string{"nutrition_status", "count"}).
		AddRow("SAM", 2).
		AddRow("Normal", 5)

	mock.ExpectQuery(`SELECT nutrition_status, COUNT\(\*\) AS count FROM "patients" GROUP BY`).
		WillReturnRows(rows)

	repo := NewPatientRepository(gdb)
	counts, err := repo.CountByStatus(context.Background())
	require.NoError(t, err)

	assert.Equal(t, map[nutrition.Status]int64{
		nutrition.StatusSAM:    2,
		nutrition.StatusNormal: 5,
	}, counts)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPatientRepositoryListError(t *testing.T) {
	gdb, mock, db := newMockDB(t)
	defer db.Close()

	mock.ExpectQuery(`SELECT \* FROM "patients"`).
		WillReturnError(errors.New("relation does not exist"))

	repo := NewPatientRepository(gdb)
	_, err := repo.List(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "listing patients")
	assert.NoError(t, mock.ExpectationsWereMet())
}
