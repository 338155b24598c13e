package service

import (
	"bytes"
	"context"
	"encoding/csv"
	"fmt"
	"math"
	"strconv"
	"strings"

	"go.uber.org/zap"

	"github.com/Pash-Data/Nutricare/internal/domain/patient"
	"github.com/Pash-Data/Nutricare/internal/nutrition"
	"github.com/Pash-Data/Nutricare/pkg/metrics"
)

// csvHeader is the column layout of the patient export.
var csvHeader = []string{
	"id", "name", "age", "weight_kg", "height_cm", "muac_mm",
	"bmi", "build", "nutrition_status", "recommendation",
}

type PatientService struct {
	repo      patient.Repository
	collector *metrics.Collector // nil disables business counters
	log       *zap.Logger
}

func NewPatientService(repo patient.Repository, collector *metrics.Collector, log *zap.Logger) *PatientService {
	return &PatientService{
		repo:      repo,
		collector: collector,
		log:       log,
	}
}

// Register validates the submitted measurements, derives BMI, build and
// nutrition status, and persists the resulting record.
func (s *PatientService) Register(ctx context.Context, cmd *patient.CreatePatientCommand) (*patient.Patient, error) {
	if err := validateCreateCommand(cmd); err != nil {
		return nil, err
	}

	bmi := nutrition.BMI(cmd.WeightKg, cmd.HeightCm)
	status := nutrition.ClassifyMUAC(cmd.Age, cmd.MuacMM)

	p := &patient.Patient{
		Name:            strings.TrimSpace(cmd.Name),
		Age:             cmd.Age,
		WeightKg:        cmd.WeightKg,
		HeightCm:        cmd.HeightCm,
		MuacMM:          cmd.MuacMM,
		BMI:             bmi,
		Build:           nutrition.ClassifyBuild(bmi),
		NutritionStatus: status,
		Recommendation:  nutrition.Recommendation(status),
	}

	if err := s.repo.Create(ctx, p); err != nil {
		s.log.Error("failed to create patient", zap.Error(err))
		return nil, &StorageError{Op: "create patient", Err: err}
	}

	if s.collector != nil {
		s.collector.PatientsRegisteredTotal.WithLabelValues(string(status)).Inc()
	}

	s.log.Info("patient registered",
		zap.Uint("patient_id", p.ID),
		zap.String("nutrition_status", string(status)),
	)

	return p, nil
}

// List returns all stored patient records in insertion order.
func (s *PatientService) List(ctx context.Context) ([]*patient.Patient, error) {
	patients, err := s.repo.List(ctx)
	if err != nil {
		s.log.Error("failed to list patients", zap.Error(err))
		return nil, &StorageError{Op: "list patients", Err: err}
	}
	return patients, nil
}

// Summary aggregates the stored records by nutrition status.
type Summary struct {
	Total  int
	SAM    int
	MAM    int
	Normal int
}

// Summarize counts stored records per nutrition status.
func (s *PatientService) Summarize(ctx context.Context) (*Summary, error) {
	counts, err := s.repo.CountByStatus(ctx)
	if err != nil {
		s.log.Error("failed to count patients", zap.Error(err))
		return nil, &StorageError{Op: "summarize patients", Err: err}
	}

	sum := &Summary{
		SAM:    int(counts[nutrition.StatusSAM]),
		MAM:    int(counts[nutrition.StatusMAM]),
		Normal: int(counts[nutrition.StatusNormal]),
	}
	sum.Total = sum.SAM + sum.MAM + sum.Normal
	return sum, nil
}

// ExportCSV renders every stored record as CSV, header row first.
func (s *PatientService) ExportCSV(ctx context.Context) ([]byte, error) {
	patients, err := s.List(ctx)
	if err != nil {
		return nil, err
	}

	var buf bytes.Buffer
	w := csv.NewWriter(&buf)

	if err := w.Write(csvHeader); err != nil {
		return nil, fmt.Errorf("writing csv header: %w", err)
	}
	for _, p := range patients {
		record := []string{
			strconv.FormatUint(uint64(p.ID), 10),
			p.Name,
			strconv.Itoa(p.Age),
			strconv.FormatFloat(p.WeightKg, 'f', -1, 64),
			strconv.FormatFloat(p.HeightCm, 'f', -1, 64),
			strconv.FormatFloat(p.MuacMM, 'f', -1, 64),
			strconv.FormatFloat(p.BMI, 'f', 2, 64),
			string(p.Build),
			string(p.NutritionStatus),
			p.Recommendation,
		}
		if err := w.Write(record); err != nil {
			return nil, fmt.Errorf("writing csv record: %w", err)
		}
	}

	w.Flush()
	if err := w.Error(); err != nil {
		return nil, fmt.Errorf("flushing csv: %w", err)
	}

	if s.collector != nil {
		s.collector.ExportsTotal.Inc()
	}
	return buf.Bytes(), nil
}

func validateCreateCommand(cmd *patient.CreatePatientCommand) error {
	var errs []string

	if strings.TrimSpace(cmd.Name) == "" {
		errs = append(errs, "name is required")
	}
	if cmd.Age < 1 {
		errs = append(errs, "age must be at least 1 year")
	}
	if !positiveFinite(cmd.WeightKg) {
		errs = append(errs, "weight_kg must be positive")
	}
	if !positiveFinite(cmd.HeightCm) {
		errs = append(errs, "height_cm must be positive")
	}
	if !positiveFinite(cmd.MuacMM) {
		errs = append(errs, "muac_mm must be positive")
	}

	if len(errs) > 0 {
		return &ValidationError{Fields: errs}
	}
	return nil
}

// positiveFinite reports whether v is strictly positive and finite. Form
// and chat measurements arrive through ParseFloat, which also accepts
// "NaN" and "Inf".
func positiveFinite(v float64) bool {
	return v > 0 && !math.IsInf(v, 1)
}
