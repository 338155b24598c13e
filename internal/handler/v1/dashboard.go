package v1

import (
	"html/template"
	"net/http"

	"github.com/gin-gonic/gin"
)

const dashboardTemplateName = "dashboard.html"

const dashboardHTML = `{{define "dashboard.html"}}<!DOCTYPE html>
<html lang="en">
<head>
<meta charset="UTF-8">
<title>Nutricare Dashboard</title>
<style>
body { font-family: sans-serif; margin: 2rem; color: #222; }
h1 { margin-bottom: 0.25rem; }
.summary span { margin-right: 1.5rem; }
table { border-collapse: collapse; margin: 1rem 0; width: 100%; }
th, td { border: 1px solid #ccc; padding: 0.4rem 0.6rem; text-align: left; }
th { background: #f0f0f0; }
tr.sam td { background: #fdecea; }
tr.mam td { background: #fff4e5; }
form { margin-top: 1.5rem; }
form label { display: inline-block; margin-right: 1rem; }
</style>
</head>
<body>
<h1>Nutricare Dashboard</h1>
<p class="summary">
<span>Total: <strong>{{.Summary.Total}}</strong></span>
<span>SAM: <strong>{{.Summary.SAM}}</strong></span>
<span>MAM: <strong>{{.Summary.MAM}}</strong></span>
<span>Normal: <strong>{{.Summary.Normal}}</strong></span>
</p>
<table>
<tr>
<th>ID</th><th>Name</th><th>Age</th><th>Weight (kg)</th><th>Height (cm)</th>
<th>MUAC (mm)</th><th>BMI</th><th>Build</th><th>Status</th><th>Recommendation</th>
</tr>
{{range .Patients}}<tr class="{{if eq .NutritionStatus "SAM"}}sam{{else if eq .NutritionStatus "MAM"}}mam{{end}}">
<td>{{.ID}}</td>
<td>{{.Name}}</td>
<td>{{.Age}}</td>
<td>{{.WeightKg}}</td>
<td>{{.HeightCm}}</td>
<td>{{.MuacMM}}</td>
<td>{{printf "%.2f" .BMI}}</td>
<td>{{.Build}}</td>
<td>{{.NutritionStatus}}</td>
<td>{{.Recommendation}}</td>
</tr>{{end}}
</table>
<h2>Add patient</h2>
<form method="post" action="/dashboard/add">
<label>Name <input type="text" name="name" required></label>
<label>Age <input type="number" name="age" min="1" required></label>
<label>Weight (kg) <input type="number" name="weight_kg" step="0.1" min="0" required></label>
<label>Height (cm) <input type="number" name="height_cm" step="0.1" min="0" required></label>
<label>MUAC (mm) <input type="number" name="muac_mm" step="0.1" min="0" required></label>
<button type="submit">Add</button>
</form>
</body>
</html>{{end}}`

// DashboardTemplate parses the embedded dashboard page for the router to
// install on the gin engine.
func DashboardTemplate() *template.Template {
	return template.Must(template.New(dashboardTemplateName).Parse(dashboardHTML))
}

// Dashboard renders the patient table with a per-status summary and an
// add-patient form.
func (h *PatientHandler) Dashboard(c *gin.Context) {
	ctx := c.Request.Context()

	patients, err := h.svc.List(ctx)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	summary, err := h.svc.Summarize(ctx)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.HTML(http.StatusOK, dashboardTemplateName, gin.H{
		"Patients": patients,
		"Summary":  summary,
	})
}

// DashboardAdd registers a patient from the dashboard form. It shares the
// API create path and returns the stored record.
func (h *PatientHandler) DashboardAdd(c *gin.Context) {
	var req CreatePatientRequest
	if !bindForm(c, &req) {
		return
	}

	p, err := h.svc.Register(c.Request.Context(), req.toCommand())
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusCreated, p)
}
