// Package v1 exposes the HTTP surface of the service.
package v1

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/Pash-Data/Nutricare/internal/domain/patient"
	"github.com/Pash-Data/Nutricare/internal/service"
)

// CreatePatientRequest carries the measurements for a new patient. It binds
// from both JSON bodies and dashboard form posts.
type CreatePatientRequest struct {
	Name     string  `json:"name" form:"name"`
	Age      int     `json:"age" form:"age"`
	WeightKg float64 `json:"weight_kg" form:"weight_kg"`
	HeightCm float64 `json:"height_cm" form:"height_cm"`
	MuacMM   float64 `json:"muac_mm" form:"muac_mm"`
}

func (r *CreatePatientRequest) toCommand() *patient.CreatePatientCommand {
	return &patient.CreatePatientCommand{
		Name:     r.Name,
		Age:      r.Age,
		WeightKg: r.WeightKg,
		HeightCm: r.HeightCm,
		MuacMM:   r.MuacMM,
	}
}

type PatientHandler struct {
	svc *service.PatientService
	log *zap.Logger
}

func NewPatientHandler(svc *service.PatientService, log *zap.Logger) *PatientHandler {
	return &PatientHandler{svc: svc, log: log}
}

// Root confirms the API is up.
func (h *PatientHandler) Root(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"message": "Nutricare Web API is running!"})
}

// Create registers a patient from a JSON body and returns the stored
// record, derived fields included.
func (h *PatientHandler) Create(c *gin.Context) {
	var req CreatePatientRequest
	if !bindJSON(c, &req) {
		return
	}

	p, err := h.svc.Register(c.Request.Context(), req.toCommand())
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusCreated, p)
}

// List returns every stored patient record.
func (h *PatientHandler) List(c *gin.Context) {
	patients, err := h.svc.List(c.Request.Context())
	if err != nil {
		respondServiceError(c, err)
		return
	}

	// An empty store serves [] rather than null.
	if patients == nil {
		patients = make([]*patient.Patient, 0)
	}
	c.JSON(http.StatusOK, patients)
}

// Export serves the patient table as a CSV attachment.
func (h *PatientHandler) Export(c *gin.Context) {
	data, err := h.svc.ExportCSV(c.Request.Context())
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.Header("Content-Disposition", "attachment; filename=patients.csv")
	c.Data(http.StatusOK, "text/csv; charset=utf-8", data)
}
