package consult

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var testToday = time.Date(2024, 3, 10, 0, 0, 0, 0, time.UTC)

func validSectionA() SectionAInput {
	return SectionAInput{
		PatientName:          "Jane Doe",
		DateOfBirth:          "2000-03-11",
		Gender:               "female",
		HospitalNumber:       "H123456",
		Ward:                 "emergency unit",
		RequestDatetime:      "2024-03-10T08:15",
		RequestingDiscipline: "internal medicine",
	}
}

func TestValidateSectionA_DerivesAgeFromDOB(t *testing.T) {
	in := validSectionA()
	in.Age = "99" // manual entry must be overwritten

	v, verr := validateSectionA(in, testToday)
	require.Nil(t, verr)
	require.NotNil(t, v.age)
	assert.Equal(t, 23, *v.age)
	require.NotNil(t, v.dateOfBirth)
}

func TestValidateSectionA_AnniversaryBoundary(t *testing.T) {
	in := validSectionA()
	in.DateOfBirth = "2000-03-10"

	v, verr := validateSectionA(in, testToday)
	require.Nil(t, verr)
	require.NotNil(t, v.age)
	assert.Equal(t, 24, *v.age)
}

func TestValidateSectionA_AgeOnly(t *testing.T) {
	in := validSectionA()
	in.DateOfBirth = ""
	in.Age = "57"

	v, verr := validateSectionA(in, testToday)
	require.Nil(t, verr)
	require.NotNil(t, v.age)
	assert.Equal(t, 57, *v.age)
	assert.Nil(t, v.dateOfBirth)
}

func TestValidateSectionA_NeitherAgeNorDOB(t *testing.T) {
	in := validSectionA()
	in.DateOfBirth = ""
	in.Age = ""

	_, verr := validateSectionA(in, testToday)
	require.NotNil(t, verr)
	assert.Equal(t, []string{msgAgeOrDOB}, verr.Form)
	assert.Empty(t, verr.Fields)
}

func TestValidateSectionA_RequiredFields(t *testing.T) {
	_, verr := validateSectionA(SectionAInput{}, testToday)
	require.NotNil(t, verr)
	for _, field := range []string{
		"patient_name", "gender", "hospital_number", "ward",
		"request_datetime", "requesting_discipline",
	} {
		assert.Contains(t, verr.Fields, field)
	}
}

func TestValidateSectionA_InvalidChoices(t *testing.T) {
	in := validSectionA()
	in.Gender = "unknown"
	in.Ward = "ward z"
	in.RequestingDiscipline = "astrology"

	_, verr := validateSectionA(in, testToday)
	require.NotNil(t, verr)
	assert.Equal(t, []string{msgInvalidChoice}, verr.Fields["gender"])
	assert.Equal(t, []string{msgInvalidChoice}, verr.Fields["ward"])
	assert.Equal(t, []string{msgInvalidChoice}, verr.Fields["requesting_discipline"])
}

func TestValidateSectionA_FutureDOB(t *testing.T) {
	in := validSectionA()
	in.DateOfBirth = "2030-01-01"
	in.Age = ""

	_, verr := validateSectionA(in, testToday)
	require.NotNil(t, verr)
	assert.Equal(t, []string{msgFutureDOB}, verr.Fields["date_of_birth"])
	assert.Empty(t, verr.Form)
}

func TestValidateSectionA_BadDOBDoesNotTriggerFormError(t *testing.T) {
	in := validSectionA()
	in.DateOfBirth = "not-a-date"
	in.Age = ""

	_, verr := validateSectionA(in, testToday)
	require.NotNil(t, verr)
	assert.Equal(t, []string{msgInvalidDate}, verr.Fields["date_of_birth"])
	assert.Empty(t, verr.Form)
}

func TestValidateSectionB_SingleReason(t *testing.T) {
	v, verr := validateSectionB(SectionBInput{Reasons: []string{"sepsis_syndrome"}})
	require.Nil(t, verr)
	assert.Equal(t, []ReasonTag{ReasonSepsisSyndrome}, v.reasons)
	assert.Empty(t, v.reasonOther)
}

func TestValidateSectionB_OtherRequiresDetail(t *testing.T) {
	_, verr := validateSectionB(SectionBInput{Reasons: []string{"other"}})
	require.NotNil(t, verr)
	assert.Equal(t, []string{msgOtherReason}, verr.Fields["reason_other"])
	assert.NotContains(t, verr.Fields, "reason")
	assert.Empty(t, verr.Form)
}

func TestValidateSectionB_OtherWithDetail(t *testing.T) {
	v, verr := validateSectionB(SectionBInput{
		Reasons:     []string{"other", "respiratory_failure"},
		ReasonOther: "refractory seizures",
	})
	require.Nil(t, verr)
	assert.Equal(t, []ReasonTag{ReasonRespiratoryFailure, ReasonOther}, v.reasons)
	assert.Equal(t, "refractory seizures", v.reasonOther)
}

func TestValidateSectionB_NoReasons(t *testing.T) {
	_, verr := validateSectionB(SectionBInput{})
	require.NotNil(t, verr)
	assert.Equal(t, []string{msgRequired}, verr.Fields["reason"])
}

func TestValidateSectionC(t *testing.T) {
	v, verr := validateSectionC(SectionCInput{ClinicalSummary: "72h of worsening dyspnoea"})
	require.Nil(t, verr)
	assert.Equal(t, "72h of worsening dyspnoea", v.clinicalSummary)

	_, verr = validateSectionC(SectionCInput{ClinicalSummary: "   \n\t"})
	require.NotNil(t, verr)
	assert.Equal(t, []string{msgRequired}, verr.Fields["clinical_summary"])
}

func TestValidateSectionD_AllEmpty(t *testing.T) {
	v, verr := validateSectionD(SectionDInput{})
	require.Nil(t, verr)
	assert.Equal(t, TriUnset, v.intubated)
	assert.Nil(t, v.breathingSpO2)
	assert.Nil(t, v.temperature)
	assert.Equal(t, FluidType(""), v.fluidType)
}

func TestValidateSectionD_TriStatePassThrough(t *testing.T) {
	v, verr := validateSectionD(SectionDInput{
		Intubated:         "yes",
		BreathingDistress: "no",
		Sedation:          "YES", // unrecognized token stores as unset, no error
	})
	require.Nil(t, verr)
	assert.Equal(t, TriYes, v.intubated)
	assert.Equal(t, TriNo, v.breathingDistress)
	assert.Equal(t, TriUnset, v.sedation)
}

func TestValidateSectionD_Numerics(t *testing.T) {
	v, verr := validateSectionD(SectionDInput{
		BreathingSpO2:    "94",
		BPSystolic:       "110",
		BPDiastolic:      "70",
		HeartRate:        "118",
		FluidUrineOutput: "0.5",
		Temperature:      "38.2",
	})
	require.Nil(t, verr)
	assert.Equal(t, 94, *v.breathingSpO2)
	assert.Equal(t, 110, *v.bpSystolic)
	assert.Equal(t, 70, *v.bpDiastolic)
	assert.Equal(t, 118, *v.heartRate)
	assert.Equal(t, 0.5, *v.fluidUrineOutput)
	assert.Equal(t, 38.2, *v.temperature)
}

func TestValidateSectionD_BadNumeric(t *testing.T) {
	_, verr := validateSectionD(SectionDInput{HeartRate: "fast"})
	require.NotNil(t, verr)
	assert.Equal(t, []string{msgInvalidNumber}, verr.Fields["heart_rate"])
}

func TestValidateSectionD_FluidType(t *testing.T) {
	v, verr := validateSectionD(SectionDInput{FluidType: "fluid_type2"})
	require.Nil(t, verr)
	assert.Equal(t, FluidType("fluid_type2"), v.fluidType)

	_, verr = validateSectionD(SectionDInput{FluidType: "tea"})
	require.NotNil(t, verr)
	assert.Equal(t, []string{msgInvalidChoice}, verr.Fields["fluid_type"])
}

func TestValidateSectionE(t *testing.T) {
	v, verr := validateSectionE(SectionEInput{
		LatestABG:     "pH 7.21, pCO2 8.1",
		TimeTestsDone: "2024-03-10T06:00",
	})
	require.Nil(t, verr)
	assert.Equal(t, "pH 7.21, pCO2 8.1", v.latestABG)
	require.NotNil(t, v.timeTestsDone)

	_, verr = validateSectionE(SectionEInput{TimeTestsDone: "this morning"})
	require.NotNil(t, verr)
	assert.Equal(t, []string{msgInvalidTime}, verr.Fields["time_tests_done"])
}

func TestValidateSectionF_NeverFails(t *testing.T) {
	v, verr := validateSectionF(SectionFInput{Ventilation: "HFNO 50L 60%"})
	assert.Nil(t, verr)
	assert.Equal(t, "HFNO 50L 60%", v.ventilation)

	_, verr = validateSectionF(SectionFInput{})
	assert.Nil(t, verr)
}

func TestValidateSectionG_Valid(t *testing.T) {
	v, verr := validateSectionG(SectionGInput{
		Decision:       "admit",
		ConsultantName: "Dr. M. Patel",
		Signature:      "MP",
		Datetime:       "2024-03-10T09:45",
		Assessment:     "Septic shock, needs organ support",
	})
	require.Nil(t, verr)
	assert.Equal(t, DecisionAdmit, v.decision)
	assert.False(t, v.decisionDatetime.IsZero())
}

func TestValidateSectionG_Required(t *testing.T) {
	_, verr := validateSectionG(SectionGInput{})
	require.NotNil(t, verr)
	for _, field := range []string{"decision", "consultant_name", "signature", "datetime"} {
		assert.Contains(t, verr.Fields, field)
	}
}

func TestValidateSectionG_BadDecision(t *testing.T) {
	_, verr := validateSectionG(SectionGInput{
		Decision:       "discharge",
		ConsultantName: "Dr. M. Patel",
		Signature:      "MP",
		Datetime:       "2024-03-10T09:45",
	})
	require.NotNil(t, verr)
	assert.Equal(t, []string{msgInvalidChoice}, verr.Fields["decision"])
}
