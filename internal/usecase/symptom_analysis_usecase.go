package usecase

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"medassist/internal/converter"
	"medassist/internal/delivery/dto"
	"medassist/internal/domain/entity"
	"medassist/internal/domain/repository"
	"medassist/internal/service"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

var ErrUnusableModelOutput = errors.New("model output cannot be stored")

// SymptomAnalysisUsecase runs the symptom record -> diagnosis -> treatment chain.
//
// The chain is not atomic. Every row is committed as soon as it is written, so
// a failure in a later step leaves the earlier rows in place.
type SymptomAnalysisUsecase interface {
	Analyze(ctx context.Context, doctorID, patientID uuid.UUID, req *dto.CreateAnalysisRequest) (*dto.AnalysisResponse, error)
	GetHistory(ctx context.Context, doctorID, patientID uuid.UUID) (*dto.SymptomRecordListResponse, error)
}

type symptomAnalysisUsecase struct {
	db                *gorm.DB
	log               *logrus.Logger
	patientRepo       repository.PatientRepository
	symptomRecordRepo repository.SymptomRecordRepository
	diagnosisRepo     repository.DiagnosisRepository
	treatmentRepo     repository.TreatmentRepository
	clinicalAI        service.ClinicalAIService
	auditService      service.AuditService
	now               func() time.Time
}

func NewSymptomAnalysisUsecase(
	db *gorm.DB,
	log *logrus.Logger,
	patientRepo repository.PatientRepository,
	symptomRecordRepo repository.SymptomRecordRepository,
	diagnosisRepo repository.DiagnosisRepository,
	treatmentRepo repository.TreatmentRepository,
	clinicalAI service.ClinicalAIService,
	auditService service.AuditService,
) SymptomAnalysisUsecase {
	return &symptomAnalysisUsecase{
		db:                db,
		log:               log,
		patientRepo:       patientRepo,
		symptomRecordRepo: symptomRecordRepo,
		diagnosisRepo:     diagnosisRepo,
		treatmentRepo:     treatmentRepo,
		clinicalAI:        clinicalAI,
		auditService:      auditService,
		now:               time.Now,
	}
}

// diagnosisResult is the part of a provide_diagnosis payload that gets stored
type diagnosisResult struct {
	PrimaryDiagnosis      string   `json:"primary_diagnosis"`
	Confidence            string   `json:"confidence"`
	Reasoning             string   `json:"reasoning"`
	DifferentialDiagnoses []string `json:"differential_diagnoses"`
}

// treatmentResult is the part of a provide_treatment payload that gets stored
type treatmentResult struct {
	TreatmentPlan string   `json:"treatment_plan"`
	Medications   []string `json:"medications"`
	Priority      string   `json:"priority"`
	Precautions   string   `json:"precautions"`
	FollowUp      string   `json:"follow_up"`
}

func validConfidence(c string) bool {
	switch entity.DiagnosisConfidence(c) {
	case entity.ConfidenceLow, entity.ConfidenceMedium, entity.ConfidenceHigh, entity.ConfidenceVeryHigh:
		return true
	}
	return false
}

func validPriority(p string) bool {
	switch entity.TreatmentPriority(p) {
	case entity.PriorityRoutine, entity.PriorityUrgent, entity.PriorityEmergency:
		return true
	}
	return false
}

// patientInfo describes the patient for the treatment prompt from what is on file
func patientInfo(patient *entity.Patient, now time.Time) string {
	var parts []string
	if patient.Gender != "" {
		parts = append(parts, "Gender: "+patient.Gender)
	}
	if patient.DateOfBirth != nil {
		dob := *patient.DateOfBirth
		age := now.Year() - dob.Year()
		if now.Month() < dob.Month() || (now.Month() == dob.Month() && now.Day() < dob.Day()) {
			age--
		}
		parts = append(parts, fmt.Sprintf("Age: %d", age))
	}
	return strings.Join(parts, ", ")
}

func (u *symptomAnalysisUsecase) Analyze(ctx context.Context, doctorID, patientID uuid.UUID, req *dto.CreateAnalysisRequest) (*dto.AnalysisResponse, error) {
	patient, err := u.patientRepo.FindByID(ctx, u.db, doctorID, patientID)
	if err != nil {
		u.log.Warnf("Failed to find patient: %+v", err)
		return nil, err
	}
	if patient == nil {
		return nil, ErrPatientNotFound
	}

	// 1. symptom record
	record := &entity.SymptomRecord{
		PatientID:       patient.ID,
		DoctorID:        doctorID,
		Symptoms:        req.Symptoms,
		Severity:        entity.SymptomSeverity(req.Severity),
		Duration:        req.Duration,
		AdditionalNotes: req.AdditionalNotes,
	}
	if err := u.symptomRecordRepo.Create(ctx, u.db, record); err != nil {
		u.log.Warnf("Failed to create symptom record: %+v", err)
		return nil, err
	}
	u.audit(ctx, doctorID, entity.AuditActionSymptomRecordCreate, "symptom_record", record.ID)

	// 2. analysis
	analysis, err := u.clinicalAI.AnalyzeSymptoms(ctx, service.SymptomInput{
		Symptoms:       req.Symptoms,
		Severity:       req.Severity,
		Duration:       req.Duration,
		PatientHistory: patient.MedicalHistory,
	})
	if err != nil {
		return nil, err
	}

	var diag diagnosisResult
	if err := json.Unmarshal(analysis, &diag); err != nil {
		u.log.Warnf("Failed to decode diagnosis payload: %+v", err)
		return nil, ErrUnusableModelOutput
	}
	if diag.PrimaryDiagnosis == "" || !validConfidence(diag.Confidence) {
		u.log.WithField("payload", string(analysis)).Warn("Diagnosis payload is missing required values")
		return nil, ErrUnusableModelOutput
	}

	// 3. diagnosis
	diagnosis := &entity.Diagnosis{
		SymptomRecordID:       record.ID,
		DoctorID:              doctorID,
		Diagnosis:             diag.PrimaryDiagnosis,
		Confidence:            entity.DiagnosisConfidence(diag.Confidence),
		Reasoning:             diag.Reasoning,
		DifferentialDiagnoses: diag.DifferentialDiagnoses,
	}
	if err := u.diagnosisRepo.Create(ctx, u.db, diagnosis); err != nil {
		u.log.Warnf("Failed to create diagnosis: %+v", err)
		return nil, err
	}
	u.audit(ctx, doctorID, entity.AuditActionDiagnosisCreate, "diagnosis", diagnosis.ID)

	// 4. treatment suggestion
	plan, err := u.clinicalAI.SuggestTreatment(ctx, service.TreatmentInput{
		Diagnosis:          diag.PrimaryDiagnosis,
		PatientInfo:        patientInfo(patient, u.now()),
		Allergies:          patient.Allergies,
		CurrentMedications: patient.CurrentMedications,
	})
	if err != nil {
		return nil, err
	}

	var treat treatmentResult
	if err := json.Unmarshal(plan, &treat); err != nil {
		u.log.Warnf("Failed to decode treatment payload: %+v", err)
		return nil, ErrUnusableModelOutput
	}
	if treat.TreatmentPlan == "" || !validPriority(treat.Priority) {
		u.log.WithField("payload", string(plan)).Warn("Treatment payload is missing required values")
		return nil, ErrUnusableModelOutput
	}

	// 5. treatment
	treatment := &entity.Treatment{
		DiagnosisID:          diagnosis.ID,
		DoctorID:             doctorID,
		TreatmentPlan:        treat.TreatmentPlan,
		Medications:          treat.Medications,
		Priority:             entity.TreatmentPriority(treat.Priority),
		Precautions:          treat.Precautions,
		FollowUpInstructions: treat.FollowUp,
	}
	if err := u.treatmentRepo.Create(ctx, u.db, treatment); err != nil {
		u.log.Warnf("Failed to create treatment: %+v", err)
		return nil, err
	}
	u.audit(ctx, doctorID, entity.AuditActionTreatmentCreate, "treatment", treatment.ID)

	return &dto.AnalysisResponse{
		SymptomRecord: converter.SymptomRecordToResponse(record),
		Diagnosis:     converter.DiagnosisToResponse(diagnosis),
		Treatment:     converter.TreatmentToResponse(treatment),
		Analysis:      analysis,
		TreatmentPlan: plan,
	}, nil
}

func (u *symptomAnalysisUsecase) GetHistory(ctx context.Context, doctorID, patientID uuid.UUID) (*dto.SymptomRecordListResponse, error) {
	patient, err := u.patientRepo.FindByID(ctx, u.db, doctorID, patientID)
	if err != nil {
		u.log.Warnf("Failed to find patient: %+v", err)
		return nil, err
	}
	if patient == nil {
		return nil, ErrPatientNotFound
	}

	records, err := u.symptomRecordRepo.FindByPatientID(ctx, u.db, doctorID, patientID)
	if err != nil {
		u.log.Warnf("Failed to find symptom records: %+v", err)
		return nil, err
	}

	return &dto.SymptomRecordListResponse{
		Records: converter.SymptomRecordsToResponses(records),
		Total:   len(records),
	}, nil
}

func (u *symptomAnalysisUsecase) audit(ctx context.Context, doctorID uuid.UUID, action, entityName string, id uuid.UUID) {
	if err := u.auditService.LogCreate(ctx, u.db, &doctorID, action, entityName, id.String(), nil); err != nil {
		u.log.Warnf("Failed to create audit log: %+v", err)
	}
}
