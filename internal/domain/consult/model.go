package consult

import (
	"fmt"
	"time"

	"github.com/google/uuid"
)

// Gender is the patient gender vocabulary.
type Gender string

const (
	GenderMale   Gender = "male"
	GenderFemale Gender = "female"
	GenderOther  Gender = "other"
)

var validGenders = map[Gender]bool{
	GenderMale:   true,
	GenderFemale: true,
	GenderOther:  true,
}

// Ward is the requesting ward vocabulary.
type Ward string

var validWards = map[Ward]bool{
	"emergency unit": true,
	"ward a":         true,
	"ward b":         true,
	"ward c":         true,
	"ward d":         true,
	"ward e":         true,
	"ward f":         true,
	"ward g":         true,
	"ward h":         true,
	"ward i":         true,
	"ward j":         true,
	"ward k":         true,
	"ward l":         true,
	"ward m":         true,
	"ward n":         true,
	"ward o":         true,
	"ward p":         true,
	"ward q":         true,
	"ward r":         true,
	"ward s":         true,
	"ward t":         true,
}

// Discipline is the requesting discipline vocabulary.
type Discipline string

var validDisciplines = map[Discipline]bool{
	"anaesthesia":                true,
	"cardiology":                 true,
	"cardiothoracic surgery":     true,
	"dermatology":                true,
	"ent surgery":                true,
	"gastroenterology surgery":   true,
	"General Surgery":            true,
	"internal medicine":          true,
	"maxillofacial surgery":      true,
	"nephrology":                 true,
	"neurology":                  true,
	"neurosurgery":               true,
	"obstetrics and gynaecology": true,
	"oncology":                   true,
	"orthopaedics surgery":       true,
	"paediatrics":                true,
	"urology":                    true,
}

// ReasonTag is one entry of the consult-reason multi-select.
type ReasonTag string

const (
	ReasonHaemodynamicInstability ReasonTag = "haemodynamic_instability"
	ReasonRespiratoryFailure      ReasonTag = "respiratory_failure"
	ReasonAlteredConsciousness    ReasonTag = "altered_level_of_consciousness"
	ReasonPostOpManagement        ReasonTag = "post_op_management"
	ReasonSepsisSyndrome          ReasonTag = "sepsis_syndrome"
	ReasonMultiOrganDysfunction   ReasonTag = "multi_organ_dysfunction"
	ReasonOther                   ReasonTag = "other"
)

// reasonOrder is the presentation order of the vocabulary. Stored reason
// lists preserve this order regardless of submission order.
var reasonOrder = []ReasonTag{
	ReasonHaemodynamicInstability,
	ReasonRespiratoryFailure,
	ReasonAlteredConsciousness,
	ReasonPostOpManagement,
	ReasonSepsisSyndrome,
	ReasonMultiOrganDysfunction,
	ReasonOther,
}

var validReasons = func() map[ReasonTag]bool {
	m := make(map[ReasonTag]bool, len(reasonOrder))
	for _, r := range reasonOrder {
		m[r] = true
	}
	return m
}()

// FluidType is the maintenance-fluid vocabulary.
type FluidType string

var validFluidTypes = map[FluidType]bool{
	"fluid_type1": true,
	"fluid_type2": true,
	"fluid_type3": true,
}

// Decision is the ICU consultant's terminal decision.
type Decision string

const (
	DecisionAdmit       Decision = "admit"
	DecisionNotForICU   Decision = "not_for_icu"
	DecisionReviewLater Decision = "review_later"
)

var validDecisions = map[Decision]bool{
	DecisionAdmit:       true,
	DecisionNotForICU:   true,
	DecisionReviewLater: true,
}

// TriState is a yes/no field that may also be unset.
type TriState string

const (
	TriYes   TriState = "yes"
	TriNo    TriState = "no"
	TriUnset TriState = ""
)

// Consultation maps to the consultation table. One row per ICU consult
// request; field groups correspond to wizard sections A-G.
type Consultation struct {
	ID uuid.UUID `db:"id" json:"id"`

	// Section A: patient and requesting team
	PatientName           string     `db:"patient_name" json:"patient_name"`
	Age                   *int       `db:"age" json:"age,omitempty"`
	DateOfBirth           *time.Time `db:"date_of_birth" json:"date_of_birth,omitempty"`
	Gender                Gender     `db:"gender" json:"gender"`
	HospitalNumber        string     `db:"hospital_number" json:"hospital_number"`
	Ward                  Ward       `db:"ward" json:"ward"`
	RequestDatetime       time.Time  `db:"request_datetime" json:"request_datetime"`
	RequestingDiscipline  Discipline `db:"requesting_discipline" json:"requesting_discipline"`
	RequestingDr          *string    `db:"requesting_dr" json:"requesting_dr,omitempty"`
	RequestingDrContact   *string    `db:"requesting_dr_contact" json:"requesting_dr_contact,omitempty"`
	RequestingDrSpeedDial *string    `db:"requesting_dr_speed_dial" json:"requesting_dr_speed_dial,omitempty"`

	// Section B: reason for consult
	Reasons     []ReasonTag `db:"reason" json:"reasons"`
	ReasonOther string      `db:"reason_other" json:"reason_other,omitempty"`

	// Section C
	ClinicalSummary string `db:"clinical_summary" json:"clinical_summary,omitempty"`

	// Section D: current clinical status
	AirwayPatent         bool      `db:"airway_patent" json:"airway_patent"`
	AirwayThreatened     bool      `db:"airway_threatened" json:"airway_threatened"`
	Intubated            TriState  `db:"intubated" json:"intubated,omitempty"`
	BreathingSpO2        *int      `db:"breathing_spo2" json:"breathing_spo2,omitempty"`
	BreathingDistress    TriState  `db:"breathing_distress" json:"breathing_distress,omitempty"`
	BreathingDevice      string    `db:"breathing_device" json:"breathing_device,omitempty"`
	BPSystolic           *int      `db:"bp_systolic" json:"bp_systolic,omitempty"`
	BPDiastolic          *int      `db:"bp_diastolic" json:"bp_diastolic,omitempty"`
	CirculationInotropes TriState  `db:"circulation_inotropes" json:"circulation_inotropes,omitempty"`
	CirculationAntiHpt   TriState  `db:"circulation_anti_hpt" json:"circulation_anti_hpt,omitempty"`
	HeartRate            *int      `db:"heart_rate" json:"heart_rate,omitempty"`
	HeartRhythm          string    `db:"heart_rhythm" json:"heart_rhythm,omitempty"`
	FluidType            FluidType `db:"fluid_type" json:"fluid_type,omitempty"`
	FluidUrineOutput     *float64  `db:"fluid_urine_output" json:"fluid_urine_output,omitempty"`
	Temperature          *float64  `db:"temperature" json:"temperature,omitempty"`
	Measures             string    `db:"measures" json:"measures,omitempty"`
	GCS                  string    `db:"gcs" json:"gcs,omitempty"`
	Sedation             TriState  `db:"sedation" json:"sedation,omitempty"`
	PupilLeftSize        string    `db:"pupil_left_size" json:"pupil_left_size,omitempty"`
	PupilLeftReactivity  string    `db:"pupil_left_reactivity" json:"pupil_left_reactivity,omitempty"`
	PupilRightSize       string    `db:"pupil_right_size" json:"pupil_right_size,omitempty"`
	PupilRightReactivity string    `db:"pupil_right_reactivity" json:"pupil_right_reactivity,omitempty"`

	// Section E: investigations
	LatestABG       string     `db:"latest_abg" json:"latest_abg,omitempty"`
	KeyLabs         string     `db:"key_labs" json:"key_labs,omitempty"`
	ImagingFindings string     `db:"imaging_findings" json:"imaging_findings,omitempty"`
	TimeTestsDone   *time.Time `db:"time_tests_done" json:"time_tests_done,omitempty"`

	// Section F: current / planned interventions
	Airway             string `db:"airway" json:"airway,omitempty"`
	Ventilation        string `db:"ventilation" json:"ventilation,omitempty"`
	IVFluids           string `db:"iv_fluids" json:"iv_fluids,omitempty"`
	Inotropes          string `db:"inotropes" json:"inotropes,omitempty"`
	Antibiotics        string `db:"antibiotics" json:"antibiotics,omitempty"`
	OtherInterventions string `db:"other_interventions" json:"other_interventions,omitempty"`

	// Section G: ICU doctor's assessment
	Assessment       string     `db:"assessment" json:"assessment,omitempty"`
	Decision         Decision   `db:"decision" json:"decision,omitempty"`
	PlanComments     string     `db:"plan_comments" json:"plan_comments,omitempty"`
	ConsultantName   string     `db:"consultant_name" json:"consultant_name,omitempty"`
	Signature        string     `db:"signature" json:"signature,omitempty"`
	DecisionDatetime *time.Time `db:"decision_datetime" json:"decision_datetime,omitempty"`
	ContactNo        string     `db:"contact_no" json:"contact_no,omitempty"`

	Submitted bool      `db:"submitted" json:"submitted"`
	CreatedAt time.Time `db:"created_at" json:"created_at"`
	UpdatedAt time.Time `db:"updated_at" json:"updated_at"`
}

// CalculatedAge resolves the patient's age at the given date: derived from
// the date of birth when present, otherwise the manually entered age.
func (c *Consultation) CalculatedAge(today time.Time) *int {
	if c.DateOfBirth != nil {
		age := ageFromDOB(*c.DateOfBirth, today)
		return &age
	}
	return c.Age
}

// DisplayLine is the short listing line for a consultation.
func (c *Consultation) DisplayLine(today time.Time) string {
	if age := c.CalculatedAge(today); age != nil {
		return fmt.Sprintf("%s (%d yrs)", c.PatientName, *age)
	}
	return c.PatientName
}
