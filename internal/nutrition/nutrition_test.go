package nutrition

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestBMI(t *testing.T) {
	tests := []struct {
		name     string
		weightKg float64
		heightCm float64
		want     float64
	}{
		{name: "one metre fifteen kilos", weightKg: 15, heightCm: 100, want: 15.00},
		{name: "rounds to two decimals", weightKg: 14.5, heightCm: 97, want: 15.41},
		{name: "taller child", weightKg: 18, heightCm: 110, want: 14.88},
		{name: "adult proportions", weightKg: 70, heightCm: 175, want: 22.86},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, BMI(tt.weightKg, tt.heightCm))
		})
	}
}

func TestClassifyMUAC(t *testing.T) {
	tests := []struct {
		name     string
		ageYears int
		muacMM   float64
		want     Status
	}{
		{name: "well below severe cutoff", ageYears: 3, muacMM: 110, want: StatusSAM},
		{name: "just under severe cutoff", ageYears: 2, muacMM: 114.9, want: StatusSAM},
		{name: "severe cutoff is moderate", ageYears: 4, muacMM: 115, want: StatusMAM},
		{name: "mid moderate band", ageYears: 5, muacMM: 120, want: StatusMAM},
		{name: "moderate cutoff inclusive", ageYears: 1, muacMM: 125, want: StatusMAM},
		{name: "just above moderate cutoff", ageYears: 3, muacMM: 125.1, want: StatusNormal},
		{name: "healthy reading", ageYears: 2, muacMM: 130, want: StatusNormal},
		{name: "older child same cutoffs", ageYears: 9, muacMM: 118, want: StatusMAM},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ClassifyMUAC(tt.ageYears, tt.muacMM))
		})
	}
}

func TestClassifyBuild(t *testing.T) {
	tests := []struct {
		name string
		bmi  float64
		want Build
	}{
		{name: "severely underweight", bmi: 15, want: BuildSeverelyUnderweight},
		{name: "underweight lower bound", bmi: 16, want: BuildUnderweight},
		{name: "normal lower bound", bmi: 18.5, want: BuildNormal},
		{name: "normal upper range", bmi: 24.99, want: BuildNormal},
		{name: "overweight lower bound", bmi: 25, want: BuildOverweight},
		{name: "obese lower bound", bmi: 30, want: BuildObese},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ClassifyBuild(tt.bmi))
		})
	}
}

func TestRecommendation(t *testing.T) {
	assert.True(t, strings.HasPrefix(Recommendation(StatusSAM), "Severe Acute Malnutrition"))
	assert.True(t, strings.HasPrefix(Recommendation(StatusMAM), "Moderate Acute Malnutrition"))
	assert.True(t, strings.HasPrefix(Recommendation(StatusNormal), "Normal"))
	assert.Equal(t, "Consult a healthcare provider.", Recommendation(Status("bogus")))
}
