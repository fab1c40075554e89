package consult

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type repoPG struct {
	pool *pgxpool.Pool
}

func NewRepo(pool *pgxpool.Pool) Repository {
	return &repoPG{pool: pool}
}

const consultCols = `id, patient_name, age, date_of_birth, gender, hospital_number, ward,
	request_datetime, requesting_discipline, requesting_dr, requesting_dr_contact, requesting_dr_speed_dial,
	reason, reason_other, clinical_summary,
	airway_patent, airway_threatened, intubated,
	breathing_spo2, breathing_distress, breathing_device,
	bp_systolic, bp_diastolic, circulation_inotropes, circulation_anti_hpt,
	heart_rate, heart_rhythm, fluid_type, fluid_urine_output,
	temperature, measures, gcs, sedation,
	pupil_left_size, pupil_left_reactivity, pupil_right_size, pupil_right_reactivity,
	latest_abg, key_labs, imaging_findings, time_tests_done,
	airway, ventilation, iv_fluids, inotropes, antibiotics, other_interventions,
	assessment, decision, plan_comments, consultant_name, signature, decision_datetime, contact_no,
	submitted, created_at, updated_at`

func (r *repoPG) Create(ctx context.Context, c *Consultation) error {
	c.ID = uuid.New()
	return r.pool.QueryRow(ctx, `
		INSERT INTO consultation (
			id, patient_name, age, date_of_birth, gender, hospital_number, ward,
			request_datetime, requesting_discipline, requesting_dr, requesting_dr_contact, requesting_dr_speed_dial,
			reason, reason_other, clinical_summary,
			airway_patent, airway_threatened, intubated,
			breathing_spo2, breathing_distress, breathing_device,
			bp_systolic, bp_diastolic, circulation_inotropes, circulation_anti_hpt,
			heart_rate, heart_rhythm, fluid_type, fluid_urine_output,
			temperature, measures, gcs, sedation,
			pupil_left_size, pupil_left_reactivity, pupil_right_size, pupil_right_reactivity,
			latest_abg, key_labs, imaging_findings, time_tests_done,
			airway, ventilation, iv_fluids, inotropes, antibiotics, other_interventions,
			assessment, decision, plan_comments, consultant_name, signature, decision_datetime, contact_no,
			submitted
		) VALUES (
			$1,$2,$3,$4,$5,$6,$7,$8,$9,$10,
			$11,$12,$13,$14,$15,$16,$17,$18,$19,$20,
			$21,$22,$23,$24,$25,$26,$27,$28,$29,$30,
			$31,$32,$33,$34,$35,$36,$37,$38,$39,$40,
			$41,$42,$43,$44,$45,$46,$47,$48,$49,$50,
			$51,$52,$53,$54,$55
		) RETURNING created_at, updated_at`,
		c.ID, c.PatientName, c.Age, c.DateOfBirth, c.Gender, c.HospitalNumber, c.Ward,
		c.RequestDatetime, c.RequestingDiscipline, c.RequestingDr, c.RequestingDrContact, c.RequestingDrSpeedDial,
		reasonsToStrings(c.Reasons), c.ReasonOther, c.ClinicalSummary,
		c.AirwayPatent, c.AirwayThreatened, c.Intubated,
		c.BreathingSpO2, c.BreathingDistress, c.BreathingDevice,
		c.BPSystolic, c.BPDiastolic, c.CirculationInotropes, c.CirculationAntiHpt,
		c.HeartRate, c.HeartRhythm, c.FluidType, c.FluidUrineOutput,
		c.Temperature, c.Measures, c.GCS, c.Sedation,
		c.PupilLeftSize, c.PupilLeftReactivity, c.PupilRightSize, c.PupilRightReactivity,
		c.LatestABG, c.KeyLabs, c.ImagingFindings, c.TimeTestsDone,
		c.Airway, c.Ventilation, c.IVFluids, c.Inotropes, c.Antibiotics, c.OtherInterventions,
		c.Assessment, c.Decision, c.PlanComments, c.ConsultantName, c.Signature, c.DecisionDatetime, c.ContactNo,
		c.Submitted,
	).Scan(&c.CreatedAt, &c.UpdatedAt)
}

func (r *repoPG) GetByID(ctx context.Context, id uuid.UUID) (*Consultation, error) {
	c, err := scanConsult(r.pool.QueryRow(ctx, `SELECT `+consultCols+` FROM consultation WHERE id = $1`, id))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrNotFound
	}
	return c, err
}

func (r *repoPG) Update(ctx context.Context, c *Consultation) error {
	tag, err := r.pool.Exec(ctx, `
		UPDATE consultation SET
			patient_name=$2, age=$3, date_of_birth=$4, gender=$5, hospital_number=$6, ward=$7,
			request_datetime=$8, requesting_discipline=$9, requesting_dr=$10, requesting_dr_contact=$11, requesting_dr_speed_dial=$12,
			reason=$13, reason_other=$14, clinical_summary=$15,
			airway_patent=$16, airway_threatened=$17, intubated=$18,
			breathing_spo2=$19, breathing_distress=$20, breathing_device=$21,
			bp_systolic=$22, bp_diastolic=$23, circulation_inotropes=$24, circulation_anti_hpt=$25,
			heart_rate=$26, heart_rhythm=$27, fluid_type=$28, fluid_urine_output=$29,
			temperature=$30, measures=$31, gcs=$32, sedation=$33,
			pupil_left_size=$34, pupil_left_reactivity=$35, pupil_right_size=$36, pupil_right_reactivity=$37,
			latest_abg=$38, key_labs=$39, imaging_findings=$40, time_tests_done=$41,
			airway=$42, ventilation=$43, iv_fluids=$44, inotropes=$45, antibiotics=$46, other_interventions=$47,
			assessment=$48, decision=$49, plan_comments=$50, consultant_name=$51, signature=$52, decision_datetime=$53, contact_no=$54,
			updated_at=NOW()
		WHERE id = $1`,
		c.ID, c.PatientName, c.Age, c.DateOfBirth, c.Gender, c.HospitalNumber, c.Ward,
		c.RequestDatetime, c.RequestingDiscipline, c.RequestingDr, c.RequestingDrContact, c.RequestingDrSpeedDial,
		reasonsToStrings(c.Reasons), c.ReasonOther, c.ClinicalSummary,
		c.AirwayPatent, c.AirwayThreatened, c.Intubated,
		c.BreathingSpO2, c.BreathingDistress, c.BreathingDevice,
		c.BPSystolic, c.BPDiastolic, c.CirculationInotropes, c.CirculationAntiHpt,
		c.HeartRate, c.HeartRhythm, c.FluidType, c.FluidUrineOutput,
		c.Temperature, c.Measures, c.GCS, c.Sedation,
		c.PupilLeftSize, c.PupilLeftReactivity, c.PupilRightSize, c.PupilRightReactivity,
		c.LatestABG, c.KeyLabs, c.ImagingFindings, c.TimeTestsDone,
		c.Airway, c.Ventilation, c.IVFluids, c.Inotropes, c.Antibiotics, c.OtherInterventions,
		c.Assessment, c.Decision, c.PlanComments, c.ConsultantName, c.Signature, c.DecisionDatetime, c.ContactNo,
	)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *repoPG) SetSubmitted(ctx context.Context, id uuid.UUID) error {
	tag, err := r.pool.Exec(ctx,
		`UPDATE consultation SET submitted = TRUE, updated_at = NOW() WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *repoPG) ListSubmitted(ctx context.Context, limit, offset int) ([]*Consultation, int, error) {
	var total int
	if err := r.pool.QueryRow(ctx, `SELECT COUNT(*) FROM consultation WHERE submitted`).Scan(&total); err != nil {
		return nil, 0, err
	}
	rows, err := r.pool.Query(ctx,
		`SELECT `+consultCols+` FROM consultation WHERE submitted ORDER BY created_at DESC LIMIT $1 OFFSET $2`,
		limit, offset)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	var result []*Consultation
	for rows.Next() {
		c, err := scanConsult(rows)
		if err != nil {
			return nil, 0, err
		}
		result = append(result, c)
	}
	return result, total, rows.Err()
}

func scanConsult(row pgx.Row) (*Consultation, error) {
	var c Consultation
	var reasons []string
	err := row.Scan(
		&c.ID, &c.PatientName, &c.Age, &c.DateOfBirth, &c.Gender, &c.HospitalNumber, &c.Ward,
		&c.RequestDatetime, &c.RequestingDiscipline, &c.RequestingDr, &c.RequestingDrContact, &c.RequestingDrSpeedDial,
		&reasons, &c.ReasonOther, &c.ClinicalSummary,
		&c.AirwayPatent, &c.AirwayThreatened, &c.Intubated,
		&c.BreathingSpO2, &c.BreathingDistress, &c.BreathingDevice,
		&c.BPSystolic, &c.BPDiastolic, &c.CirculationInotropes, &c.CirculationAntiHpt,
		&c.HeartRate, &c.HeartRhythm, &c.FluidType, &c.FluidUrineOutput,
		&c.Temperature, &c.Measures, &c.GCS, &c.Sedation,
		&c.PupilLeftSize, &c.PupilLeftReactivity, &c.PupilRightSize, &c.PupilRightReactivity,
		&c.LatestABG, &c.KeyLabs, &c.ImagingFindings, &c.TimeTestsDone,
		&c.Airway, &c.Ventilation, &c.IVFluids, &c.Inotropes, &c.Antibiotics, &c.OtherInterventions,
		&c.Assessment, &c.Decision, &c.PlanComments, &c.ConsultantName, &c.Signature, &c.DecisionDatetime, &c.ContactNo,
		&c.Submitted, &c.CreatedAt, &c.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	c.Reasons = stringsToReasons(reasons)
	return &c, nil
}

func reasonsToStrings(reasons []ReasonTag) []string {
	out := make([]string, len(reasons))
	for i, r := range reasons {
		out[i] = string(r)
	}
	return out
}

func stringsToReasons(raw []string) []ReasonTag {
	if len(raw) == 0 {
		return nil
	}
	out := make([]ReasonTag, len(raw))
	for i, s := range raw {
		out[i] = ReasonTag(s)
	}
	return out
}
