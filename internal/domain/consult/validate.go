package consult

import (
	"strings"
	"time"
)

// Section inputs carry raw wire values exactly as submitted. Each validator
// turns an input into a typed value set or a ValidationError; values are
// applied to the record only after the whole section validates, so a
// failed submission never touches stored state.

// SectionAInput holds the patient and requesting team fields.
type SectionAInput struct {
	PatientName           string   `json:"patient_name" form:"patient_name"`
	DateOfBirth           string   `json:"date_of_birth" form:"date_of_birth"`
	Age                   string   `json:"age" form:"age"`
	Gender                string   `json:"gender" form:"gender"`
	HospitalNumber        string   `json:"hospital_number" form:"hospital_number"`
	Ward                  string   `json:"ward" form:"ward"`
	RequestDatetime       string   `json:"request_datetime" form:"request_datetime"`
	RequestingDiscipline  string   `json:"requesting_discipline" form:"requesting_discipline"`
	RequestingDr          string   `json:"requesting_dr" form:"requesting_dr"`
	RequestingDrContact   string   `json:"requesting_dr_contact" form:"requesting_dr_contact"`
	RequestingDrSpeedDial string   `json:"requesting_dr_speed_dial" form:"requesting_dr_speed_dial"`
}

type sectionAValues struct {
	patientName           string
	age                   *int
	dateOfBirth           *time.Time
	gender                Gender
	hospitalNumber        string
	ward                  Ward
	requestDatetime       time.Time
	requestingDiscipline  Discipline
	requestingDr          *string
	requestingDrContact   *string
	requestingDrSpeedDial *string
}

func (v sectionAValues) apply(c *Consultation) {
	c.PatientName = v.patientName
	c.Age = v.age
	c.DateOfBirth = v.dateOfBirth
	c.Gender = v.gender
	c.HospitalNumber = v.hospitalNumber
	c.Ward = v.ward
	c.RequestDatetime = v.requestDatetime
	c.RequestingDiscipline = v.requestingDiscipline
	c.RequestingDr = v.requestingDr
	c.RequestingDrContact = v.requestingDrContact
	c.RequestingDrSpeedDial = v.requestingDrSpeedDial
}

// validateSectionA checks the required patient fields and resolves the age.
// A supplied date of birth always wins: the derived age overwrites any
// manual entry, and the caller sees the correction in the saved record.
func validateSectionA(in SectionAInput, today time.Time) (sectionAValues, *ValidationError) {
	verr := newValidationError()
	var v sectionAValues

	v.patientName = strings.TrimSpace(in.PatientName)
	if v.patientName == "" {
		verr.addField("patient_name", msgRequired)
	}

	switch g := Gender(strings.TrimSpace(in.Gender)); {
	case g == "":
		verr.addField("gender", msgRequired)
	case !validGenders[g]:
		verr.addField("gender", msgInvalidChoice)
	default:
		v.gender = g
	}

	v.hospitalNumber = strings.TrimSpace(in.HospitalNumber)
	if v.hospitalNumber == "" {
		verr.addField("hospital_number", msgRequired)
	}

	switch w := Ward(strings.TrimSpace(in.Ward)); {
	case w == "":
		verr.addField("ward", msgRequired)
	case !validWards[w]:
		verr.addField("ward", msgInvalidChoice)
	default:
		v.ward = w
	}

	switch d := Discipline(strings.TrimSpace(in.RequestingDiscipline)); {
	case d == "":
		verr.addField("requesting_discipline", msgRequired)
	case !validDisciplines[d]:
		verr.addField("requesting_discipline", msgInvalidChoice)
	default:
		v.requestingDiscipline = d
	}

	if strings.TrimSpace(in.RequestDatetime) == "" {
		verr.addField("request_datetime", msgRequired)
	} else if t, ok := parseOptionalDatetime(in.RequestDatetime); !ok {
		verr.addField("request_datetime", msgInvalidTime)
	} else {
		v.requestDatetime = *t
	}

	dob, ok := parseOptionalDate(in.DateOfBirth)
	if !ok {
		verr.addField("date_of_birth", msgInvalidDate)
	} else if dob != nil && dob.After(today) {
		// A future birth date would derive a negative age.
		verr.addField("date_of_birth", msgFutureDOB)
	}
	age, ok := parseOptionalInt(in.Age)
	if !ok {
		verr.addField("age", msgInvalidNumber)
	}

	v.dateOfBirth = dob
	v.age = age
	if dob != nil {
		derived := ageFromDOB(*dob, today)
		v.age = &derived
	} else if age == nil && verr.Fields["date_of_birth"] == nil && verr.Fields["age"] == nil {
		verr.addForm(msgAgeOrDOB)
	}

	v.requestingDr = optionalStr(in.RequestingDr)
	v.requestingDrContact = optionalStr(in.RequestingDrContact)
	v.requestingDrSpeedDial = optionalStr(in.RequestingDrSpeedDial)

	return v, verr.orNil()
}

func sectionAInputFrom(c *Consultation) SectionAInput {
	return SectionAInput{
		PatientName:           c.PatientName,
		DateOfBirth:           formatOptionalDate(c.DateOfBirth),
		Age:                   formatOptionalInt(c.Age),
		Gender:                string(c.Gender),
		HospitalNumber:        c.HospitalNumber,
		Ward:                  string(c.Ward),
		RequestDatetime:       c.RequestDatetime.Format(datetimeLayout),
		RequestingDiscipline:  string(c.RequestingDiscipline),
		RequestingDr:          strPtrVal(c.RequestingDr),
		RequestingDrContact:   strPtrVal(c.RequestingDrContact),
		RequestingDrSpeedDial: strPtrVal(c.RequestingDrSpeedDial),
	}
}

// SectionBInput holds the reason multi-select.
type SectionBInput struct {
	Reasons     []string `json:"reasons" form:"reasons"`
	ReasonOther string   `json:"reason_other" form:"reason_other"`
}

type sectionBValues struct {
	reasons     []ReasonTag
	reasonOther string
}

func (v sectionBValues) apply(c *Consultation) {
	c.Reasons = v.reasons
	c.ReasonOther = v.reasonOther
}

// validateSectionB requires at least one recognized reason; the free-text
// detail is required only when the "other" tag is ticked, and that failure
// is pinned to reason_other rather than the form.
func validateSectionB(in SectionBInput) (sectionBValues, *ValidationError) {
	verr := newValidationError()
	var v sectionBValues

	reasons, unknown := normalizeReasons(in.Reasons)
	for range unknown {
		verr.addField("reason", msgInvalidChoice)
	}
	if len(reasons) == 0 && len(unknown) == 0 {
		verr.addField("reason", msgRequired)
	}
	v.reasons = reasons

	v.reasonOther = strings.TrimSpace(in.ReasonOther)
	if hasReason(reasons, ReasonOther) && v.reasonOther == "" {
		verr.addField("reason_other", msgOtherReason)
	}

	return v, verr.orNil()
}

func sectionBInputFrom(c *Consultation) SectionBInput {
	raw := make([]string, len(c.Reasons))
	for i, r := range c.Reasons {
		raw[i] = string(r)
	}
	return SectionBInput{Reasons: raw, ReasonOther: c.ReasonOther}
}

// SectionCInput holds the clinical summary.
type SectionCInput struct {
	ClinicalSummary string `json:"clinical_summary" form:"clinical_summary"`
}

type sectionCValues struct {
	clinicalSummary string
}

func (v sectionCValues) apply(c *Consultation) {
	c.ClinicalSummary = v.clinicalSummary
}

func validateSectionC(in SectionCInput) (sectionCValues, *ValidationError) {
	verr := newValidationError()
	v := sectionCValues{clinicalSummary: strings.TrimSpace(in.ClinicalSummary)}
	if v.clinicalSummary == "" {
		verr.addField("clinical_summary", msgRequired)
	}
	return v, verr.orNil()
}

func sectionCInputFrom(c *Consultation) SectionCInput {
	return SectionCInput{ClinicalSummary: c.ClinicalSummary}
}

// SectionDInput holds the current clinical status observations.
type SectionDInput struct {
	AirwayPatent         string `json:"airway_patent" form:"airway_patent"`
	AirwayThreatened     string `json:"airway_threatened" form:"airway_threatened"`
	Intubated            string `json:"intubated" form:"intubated"`
	BreathingSpO2        string `json:"breathing_spo2" form:"breathing_spo2"`
	BreathingDistress    string `json:"breathing_distress" form:"breathing_distress"`
	BreathingDevice      string `json:"breathing_device" form:"breathing_device"`
	BPSystolic           string `json:"bp_systolic" form:"bp_systolic"`
	BPDiastolic          string `json:"bp_diastolic" form:"bp_diastolic"`
	CirculationInotropes string `json:"circulation_inotropes" form:"circulation_inotropes"`
	CirculationAntiHpt   string `json:"circulation_anti_hpt" form:"circulation_anti_hpt"`
	HeartRate            string `json:"heart_rate" form:"heart_rate"`
	HeartRhythm          string `json:"heart_rhythm" form:"heart_rhythm"`
	FluidType            string `json:"fluid_type" form:"fluid_type"`
	FluidUrineOutput     string `json:"fluid_urine_output" form:"fluid_urine_output"`
	Temperature          string `json:"temperature" form:"temperature"`
	Measures             string `json:"measures" form:"measures"`
	GCS                  string `json:"gcs" form:"gcs"`
	Sedation             string `json:"sedation" form:"sedation"`
	PupilLeftSize        string `json:"pupil_left_size" form:"pupil_left_size"`
	PupilLeftReactivity  string `json:"pupil_left_reactivity" form:"pupil_left_reactivity"`
	PupilRightSize       string `json:"pupil_right_size" form:"pupil_right_size"`
	PupilRightReactivity string `json:"pupil_right_reactivity" form:"pupil_right_reactivity"`
}

type sectionDValues struct {
	airwayPatent         bool
	airwayThreatened     bool
	intubated            TriState
	breathingSpO2        *int
	breathingDistress    TriState
	breathingDevice      string
	bpSystolic           *int
	bpDiastolic          *int
	circulationInotropes TriState
	circulationAntiHpt   TriState
	heartRate            *int
	heartRhythm          string
	fluidType            FluidType
	fluidUrineOutput     *float64
	temperature          *float64
	measures             string
	gcs                  string
	sedation             TriState
	pupilLeftSize        string
	pupilLeftReactivity  string
	pupilRightSize       string
	pupilRightReactivity string
}

func (v sectionDValues) apply(c *Consultation) {
	c.AirwayPatent = v.airwayPatent
	c.AirwayThreatened = v.airwayThreatened
	c.Intubated = v.intubated
	c.BreathingSpO2 = v.breathingSpO2
	c.BreathingDistress = v.breathingDistress
	c.BreathingDevice = v.breathingDevice
	c.BPSystolic = v.bpSystolic
	c.BPDiastolic = v.bpDiastolic
	c.CirculationInotropes = v.circulationInotropes
	c.CirculationAntiHpt = v.circulationAntiHpt
	c.HeartRate = v.heartRate
	c.HeartRhythm = v.heartRhythm
	c.FluidType = v.fluidType
	c.FluidUrineOutput = v.fluidUrineOutput
	c.Temperature = v.temperature
	c.Measures = v.measures
	c.GCS = v.gcs
	c.Sedation = v.sedation
	c.PupilLeftSize = v.pupilLeftSize
	c.PupilLeftReactivity = v.pupilLeftReactivity
	c.PupilRightSize = v.pupilRightSize
	c.PupilRightReactivity = v.pupilRightReactivity
}

// validateSectionD accepts a flat bag of independently optional
// observations. Yes/no tokens outside the vocabulary store as unset rather
// than erroring; numeric text must parse when present.
func validateSectionD(in SectionDInput) (sectionDValues, *ValidationError) {
	verr := newValidationError()
	var v sectionDValues

	v.airwayPatent = in.AirwayPatent == "on" || in.AirwayPatent == "true"
	v.airwayThreatened = in.AirwayThreatened == "on" || in.AirwayThreatened == "true"
	v.intubated = parseTriState(in.Intubated)
	v.breathingDistress = parseTriState(in.BreathingDistress)
	v.circulationInotropes = parseTriState(in.CirculationInotropes)
	v.circulationAntiHpt = parseTriState(in.CirculationAntiHpt)
	v.sedation = parseTriState(in.Sedation)

	var ok bool
	if v.breathingSpO2, ok = parseOptionalInt(in.BreathingSpO2); !ok {
		verr.addField("breathing_spo2", msgInvalidNumber)
	}
	if v.bpSystolic, ok = parseOptionalInt(in.BPSystolic); !ok {
		verr.addField("bp_systolic", msgInvalidNumber)
	}
	if v.bpDiastolic, ok = parseOptionalInt(in.BPDiastolic); !ok {
		verr.addField("bp_diastolic", msgInvalidNumber)
	}
	if v.heartRate, ok = parseOptionalInt(in.HeartRate); !ok {
		verr.addField("heart_rate", msgInvalidNumber)
	}
	if v.fluidUrineOutput, ok = parseOptionalFloat(in.FluidUrineOutput); !ok {
		verr.addField("fluid_urine_output", msgInvalidNumber)
	}
	if v.temperature, ok = parseOptionalFloat(in.Temperature); !ok {
		verr.addField("temperature", msgInvalidNumber)
	}

	if ft := FluidType(strings.TrimSpace(in.FluidType)); ft == "" || validFluidTypes[ft] {
		v.fluidType = ft
	} else {
		verr.addField("fluid_type", msgInvalidChoice)
	}

	v.breathingDevice = strings.TrimSpace(in.BreathingDevice)
	v.heartRhythm = strings.TrimSpace(in.HeartRhythm)
	v.measures = strings.TrimSpace(in.Measures)
	v.gcs = strings.TrimSpace(in.GCS)
	v.pupilLeftSize = strings.TrimSpace(in.PupilLeftSize)
	v.pupilLeftReactivity = strings.TrimSpace(in.PupilLeftReactivity)
	v.pupilRightSize = strings.TrimSpace(in.PupilRightSize)
	v.pupilRightReactivity = strings.TrimSpace(in.PupilRightReactivity)

	return v, verr.orNil()
}

func sectionDInputFrom(c *Consultation) SectionDInput {
	checkbox := func(b bool) string {
		if b {
			return "on"
		}
		return ""
	}
	return SectionDInput{
		AirwayPatent:         checkbox(c.AirwayPatent),
		AirwayThreatened:     checkbox(c.AirwayThreatened),
		Intubated:            string(c.Intubated),
		BreathingSpO2:        formatOptionalInt(c.BreathingSpO2),
		BreathingDistress:    string(c.BreathingDistress),
		BreathingDevice:      c.BreathingDevice,
		BPSystolic:           formatOptionalInt(c.BPSystolic),
		BPDiastolic:          formatOptionalInt(c.BPDiastolic),
		CirculationInotropes: string(c.CirculationInotropes),
		CirculationAntiHpt:   string(c.CirculationAntiHpt),
		HeartRate:            formatOptionalInt(c.HeartRate),
		HeartRhythm:          c.HeartRhythm,
		FluidType:            string(c.FluidType),
		FluidUrineOutput:     formatOptionalFloat(c.FluidUrineOutput),
		Temperature:          formatOptionalFloat(c.Temperature),
		Measures:             c.Measures,
		GCS:                  c.GCS,
		Sedation:             string(c.Sedation),
		PupilLeftSize:        c.PupilLeftSize,
		PupilLeftReactivity:  c.PupilLeftReactivity,
		PupilRightSize:       c.PupilRightSize,
		PupilRightReactivity: c.PupilRightReactivity,
	}
}

// SectionEInput holds the investigation notes.
type SectionEInput struct {
	LatestABG       string `json:"latest_abg" form:"latest_abg"`
	KeyLabs         string `json:"key_labs" form:"key_labs"`
	ImagingFindings string `json:"imaging_findings" form:"imaging_findings"`
	TimeTestsDone   string `json:"time_tests_done" form:"time_tests_done"`
}

type sectionEValues struct {
	latestABG       string
	keyLabs         string
	imagingFindings string
	timeTestsDone   *time.Time
}

func (v sectionEValues) apply(c *Consultation) {
	c.LatestABG = v.latestABG
	c.KeyLabs = v.keyLabs
	c.ImagingFindings = v.imagingFindings
	c.TimeTestsDone = v.timeTestsDone
}

func validateSectionE(in SectionEInput) (sectionEValues, *ValidationError) {
	verr := newValidationError()
	v := sectionEValues{
		latestABG:       strings.TrimSpace(in.LatestABG),
		keyLabs:         strings.TrimSpace(in.KeyLabs),
		imagingFindings: strings.TrimSpace(in.ImagingFindings),
	}
	t, ok := parseOptionalDatetime(in.TimeTestsDone)
	if !ok {
		verr.addField("time_tests_done", msgInvalidTime)
	}
	v.timeTestsDone = t
	return v, verr.orNil()
}

func sectionEInputFrom(c *Consultation) SectionEInput {
	return SectionEInput{
		LatestABG:       c.LatestABG,
		KeyLabs:         c.KeyLabs,
		ImagingFindings: c.ImagingFindings,
		TimeTestsDone:   formatOptionalDatetime(c.TimeTestsDone),
	}
}

// SectionFInput holds the current or planned interventions.
type SectionFInput struct {
	Airway             string `json:"airway" form:"airway"`
	Ventilation        string `json:"ventilation" form:"ventilation"`
	IVFluids           string `json:"iv_fluids" form:"iv_fluids"`
	Inotropes          string `json:"inotropes" form:"inotropes"`
	Antibiotics        string `json:"antibiotics" form:"antibiotics"`
	OtherInterventions string `json:"other_interventions" form:"other_interventions"`
}

type sectionFValues struct {
	airway             string
	ventilation        string
	ivFluids           string
	inotropes          string
	antibiotics        string
	otherInterventions string
}

func (v sectionFValues) apply(c *Consultation) {
	c.Airway = v.airway
	c.Ventilation = v.ventilation
	c.IVFluids = v.ivFluids
	c.Inotropes = v.inotropes
	c.Antibiotics = v.antibiotics
	c.OtherInterventions = v.otherInterventions
}

// validateSectionF never fails: six independently optional text fields.
func validateSectionF(in SectionFInput) (sectionFValues, *ValidationError) {
	return sectionFValues{
		airway:             strings.TrimSpace(in.Airway),
		ventilation:        strings.TrimSpace(in.Ventilation),
		ivFluids:           strings.TrimSpace(in.IVFluids),
		inotropes:          strings.TrimSpace(in.Inotropes),
		antibiotics:        strings.TrimSpace(in.Antibiotics),
		otherInterventions: strings.TrimSpace(in.OtherInterventions),
	}, nil
}

func sectionFInputFrom(c *Consultation) SectionFInput {
	return SectionFInput{
		Airway:             c.Airway,
		Ventilation:        c.Ventilation,
		IVFluids:           c.IVFluids,
		Inotropes:          c.Inotropes,
		Antibiotics:        c.Antibiotics,
		OtherInterventions: c.OtherInterventions,
	}
}

// SectionGInput holds the ICU doctor's assessment and decision.
type SectionGInput struct {
	Assessment     string `json:"assessment" form:"assessment"`
	Decision       string `json:"decision" form:"decision"`
	PlanComments   string `json:"plan_comments" form:"plan_comments"`
	ConsultantName string `json:"consultant_name" form:"consultant_name"`
	Signature      string `json:"signature" form:"signature"`
	Datetime       string `json:"datetime" form:"datetime"`
	ContactNo      string `json:"contact_no" form:"contact_no"`
}

type sectionGValues struct {
	assessment       string
	decision         Decision
	planComments     string
	consultantName   string
	signature        string
	decisionDatetime time.Time
	contactNo        string
}

func (v sectionGValues) apply(c *Consultation) {
	c.Assessment = v.assessment
	c.Decision = v.decision
	c.PlanComments = v.planComments
	c.ConsultantName = v.consultantName
	c.Signature = v.signature
	t := v.decisionDatetime
	c.DecisionDatetime = &t
	c.ContactNo = v.contactNo
}

func validateSectionG(in SectionGInput) (sectionGValues, *ValidationError) {
	verr := newValidationError()
	var v sectionGValues

	switch d := Decision(strings.TrimSpace(in.Decision)); {
	case d == "":
		verr.addField("decision", msgRequired)
	case !validDecisions[d]:
		verr.addField("decision", msgInvalidChoice)
	default:
		v.decision = d
	}

	v.consultantName = strings.TrimSpace(in.ConsultantName)
	if v.consultantName == "" {
		verr.addField("consultant_name", msgRequired)
	}

	v.signature = strings.TrimSpace(in.Signature)
	if v.signature == "" {
		verr.addField("signature", msgRequired)
	}

	if strings.TrimSpace(in.Datetime) == "" {
		verr.addField("datetime", msgRequired)
	} else if t, ok := parseOptionalDatetime(in.Datetime); !ok {
		verr.addField("datetime", msgInvalidTime)
	} else {
		v.decisionDatetime = *t
	}

	v.assessment = strings.TrimSpace(in.Assessment)
	v.planComments = strings.TrimSpace(in.PlanComments)
	v.contactNo = strings.TrimSpace(in.ContactNo)

	return v, verr.orNil()
}

func sectionGInputFrom(c *Consultation) SectionGInput {
	return SectionGInput{
		Assessment:     c.Assessment,
		Decision:       string(c.Decision),
		PlanComments:   c.PlanComments,
		ConsultantName: c.ConsultantName,
		Signature:      c.Signature,
		Datetime:       formatOptionalDatetime(c.DecisionDatetime),
		ContactNo:      c.ContactNo,
	}
}
