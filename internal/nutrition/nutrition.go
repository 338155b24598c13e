// Package nutrition implements the anthropometric calculations used to
// screen children for acute malnutrition: BMI derivation and the WHO
// mid-upper-arm-circumference (MUAC) cutoffs.
package nutrition

import "math"

// Status is the screening outcome for a patient.
type Status string

const (
	StatusSAM    Status = "SAM"
	StatusMAM    Status = "MAM"
	StatusNormal Status = "Normal"
)

// Build is the body-build band derived from BMI.
type Build string

const (
	BuildSeverelyUnderweight Build = "Severely underweight"
	BuildUnderweight         Build = "Underweight"
	BuildNormal              Build = "Normal"
	BuildOverweight          Build = "Overweight"
	BuildObese               Build = "Obese"
)

// MUAC cutoffs in millimetres. Below samCutoffMM is severe acute
// malnutrition; up to and including mamCutoffMM is moderate.
const (
	samCutoffMM = 115.0
	mamCutoffMM = 125.0
)

// BMI computes the body mass index for a weight in kilograms and a height
// in centimetres, rounded to two decimal places.
func BMI(weightKg, heightCm float64) float64 {
	heightM := heightCm / 100
	return math.Round(weightKg/(heightM*heightM)*100) / 100
}

// ClassifyMUAC maps a MUAC reading in millimetres to a nutrition status.
// The 115/125 mm cutoffs follow the WHO bands for children aged one to
// five years; older children are screened against the same bands.
func ClassifyMUAC(ageYears int, muacMM float64) Status {
	switch {
	case muacMM < samCutoffMM:
		return StatusSAM
	case muacMM <= mamCutoffMM:
		return StatusMAM
	default:
		return StatusNormal
	}
}

// ClassifyBuild maps a BMI value to its body-build band.
func ClassifyBuild(bmi float64) Build {
	switch {
	case bmi < 16:
		return BuildSeverelyUnderweight
	case bmi < 18.5:
		return BuildUnderweight
	case bmi < 25:
		return BuildNormal
	case bmi < 30:
		return BuildOverweight
	default:
		return BuildObese
	}
}

// Recommendation returns the care guidance for a nutrition status.
func Recommendation(s Status) string {
	switch s {
	case StatusSAM:
		return "Severe Acute Malnutrition - Immediate referral to therapeutic feeding program, medical evaluation, and supplementary feeding."
	case StatusMAM:
		return "Moderate Acute Malnutrition - Provide supplementary feeding, monitor closely, and educate on balanced diet."
	case StatusNormal:
		return "Normal - Maintain healthy diet and regular check-ups."
	default:
		return "Consult a healthcare provider."
	}
}
