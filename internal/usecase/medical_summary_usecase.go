package usecase

import (
	"context"
	"encoding/json"

	"medassist/internal/converter"
	"medassist/internal/delivery/dto"
	"medassist/internal/domain/entity"
	"medassist/internal/domain/repository"
	"medassist/internal/service"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

type MedicalSummaryUsecase interface {
	Summarize(ctx context.Context, doctorID, patientID uuid.UUID, req *dto.CreateSummaryRequest) (*dto.SummaryResultResponse, error)
	GetSummaries(ctx context.Context, doctorID, patientID uuid.UUID) (*dto.MedicalSummaryListResponse, error)
}

type medicalSummaryUsecase struct {
	db           *gorm.DB
	log          *logrus.Logger
	patientRepo  repository.PatientRepository
	summaryRepo  repository.MedicalSummaryRepository
	clinicalAI   service.ClinicalAIService
	auditService service.AuditService
}

func NewMedicalSummaryUsecase(
	db *gorm.DB,
	log *logrus.Logger,
	patientRepo repository.PatientRepository,
	summaryRepo repository.MedicalSummaryRepository,
	clinicalAI service.ClinicalAIService,
	auditService service.AuditService,
) MedicalSummaryUsecase {
	return &medicalSummaryUsecase{
		db:           db,
		log:          log,
		patientRepo:  patientRepo,
		summaryRepo:  summaryRepo,
		clinicalAI:   clinicalAI,
		auditService: auditService,
	}
}

type summaryResult struct {
	Summary     string   `json:"summary"`
	KeyFindings []string `json:"key_findings"`
}

func (u *medicalSummaryUsecase) Summarize(ctx context.Context, doctorID, patientID uuid.UUID, req *dto.CreateSummaryRequest) (*dto.SummaryResultResponse, error) {
	patient, err := u.patientRepo.FindByID(ctx, u.db, doctorID, patientID)
	if err != nil {
		u.log.Warnf("Failed to find patient: %+v", err)
		return nil, err
	}
	if patient == nil {
		return nil, ErrPatientNotFound
	}

	result, err := u.clinicalAI.SummarizeRecord(ctx, service.SummaryInput{MedicalRecordText: req.MedicalRecordText})
	if err != nil {
		return nil, err
	}

	var parsed summaryResult
	if err := json.Unmarshal(result, &parsed); err != nil || parsed.Summary == "" {
		u.log.WithField("payload", string(result)).Warn("Summary payload is missing required values")
		return nil, ErrUnusableModelOutput
	}

	summary := &entity.MedicalSummary{
		PatientID:    patient.ID,
		DoctorID:     doctorID,
		OriginalText: req.MedicalRecordText,
		Summary:      parsed.Summary,
		KeyFindings:  parsed.KeyFindings,
	}
	if err := u.summaryRepo.Create(ctx, u.db, summary); err != nil {
		u.log.Warnf("Failed to create medical summary: %+v", err)
		return nil, err
	}

	if err := u.auditService.LogCreate(ctx, u.db, &doctorID, entity.AuditActionMedicalSummaryCreate, "medical_summary", summary.ID.String(), nil); err != nil {
		u.log.Warnf("Failed to create audit log: %+v", err)
	}

	return &dto.SummaryResultResponse{
		MedicalSummary: converter.MedicalSummaryToResponse(summary),
		Result:         result,
	}, nil
}

func (u *medicalSummaryUsecase) GetSummaries(ctx context.Context, doctorID, patientID uuid.UUID) (*dto.MedicalSummaryListResponse, error) {
	patient, err := u.patientRepo.FindByID(ctx, u.db, doctorID, patientID)
	if err != nil {
		u.log.Warnf("Failed to find patient: %+v", err)
		return nil, err
	}
	if patient == nil {
		return nil, ErrPatientNotFound
	}

	summaries, err := u.summaryRepo.FindByPatientID(ctx, u.db, doctorID, patientID)
	if err != nil {
		u.log.Warnf("Failed to find medical summaries: %+v", err)
		return nil, err
	}

	return &dto.MedicalSummaryListResponse{
		Summaries: converter.MedicalSummariesToResponses(summaries),
		Total:     len(summaries),
	}, nil
}
