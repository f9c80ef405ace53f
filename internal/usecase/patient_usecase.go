package usecase

import (
	"context"
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

// PatientUsecase manages the patients of the calling doctor. A patient owned
// by someone else is reported as not found.
type PatientUsecase interface {
	CreatePatient(ctx context.Context, doctorID uuid.UUID, req *dto.CreatePatientRequest) (*dto.PatientResponse, error)
	GetPatient(ctx context.Context, doctorID, patientID uuid.UUID) (*dto.PatientResponse, error)
	GetAllPatients(ctx context.Context, doctorID uuid.UUID) (*dto.PatientListResponse, error)
	UpdatePatient(ctx context.Context, doctorID, patientID uuid.UUID, req *dto.UpdatePatientRequest) (*dto.PatientResponse, error)
	DeletePatient(ctx context.Context, doctorID, patientID uuid.UUID) error
}

type patientUsecase struct {
	db           *gorm.DB
	log          *logrus.Logger
	patientRepo  repository.PatientRepository
	auditService service.AuditService
}

func NewPatientUsecase(
	db *gorm.DB,
	log *logrus.Logger,
	patientRepo repository.PatientRepository,
	auditService service.AuditService,
) PatientUsecase {
	return &patientUsecase{
		db:           db,
		log:          log,
		patientRepo:  patientRepo,
		auditService: auditService,
	}
}

func parseDate(value string) (*time.Time, error) {
	if value == "" {
		return nil, nil
	}
	t, err := time.Parse(converter.DateLayout, value)
	if err != nil {
		return nil, ErrInvalidDateFormat
	}
	return &t, nil
}

func (u *patientUsecase) CreatePatient(ctx context.Context, doctorID uuid.UUID, req *dto.CreatePatientRequest) (*dto.PatientResponse, error) {
	dob, err := parseDate(req.DateOfBirth)
	if err != nil {
		return nil, err
	}

	tx := u.db.WithContext(ctx).Begin()
	defer tx.Rollback()

	patient := &entity.Patient{
		DoctorID:           doctorID,
		FullName:           req.FullName,
		DateOfBirth:        dob,
		Gender:             req.Gender,
		MedicalHistory:     req.MedicalHistory,
		Allergies:          req.Allergies,
		CurrentMedications: req.CurrentMedications,
	}

	if err := u.patientRepo.Create(ctx, tx, patient); err != nil {
		u.log.Warnf("Failed to create patient: %+v", err)
		return nil, err
	}

	if err := tx.Commit().Error; err != nil {
		u.log.Warnf("Failed commit transaction: %+v", err)
		return nil, err
	}

	result := converter.PatientToResponse(patient)
	if err := u.auditService.LogCreate(ctx, u.db, &doctorID, entity.AuditActionPatientCreate, "patient", patient.ID.String(), result); err != nil {
		u.log.Warnf("Failed to create audit log: %+v", err)
	}

	return result, nil
}

func (u *patientUsecase) GetPatient(ctx context.Context, doctorID, patientID uuid.UUID) (*dto.PatientResponse, error) {
	patient, err := u.patientRepo.FindByID(ctx, u.db, doctorID, patientID)
	if err != nil {
		u.log.Warnf("Failed to find patient: %+v", err)
		return nil, err
	}
	if patient == nil {
		return nil, ErrPatientNotFound
	}

	return converter.PatientToResponse(patient), nil
}

func (u *patientUsecase) GetAllPatients(ctx context.Context, doctorID uuid.UUID) (*dto.PatientListResponse, error) {
	patients, err := u.patientRepo.FindByDoctorID(ctx, u.db, doctorID)
	if err != nil {
		u.log.Warnf("Failed to find patients: %+v", err)
		return nil, err
	}

	return &dto.PatientListResponse{
		Patients: converter.PatientsToResponses(patients),
		Total:    len(patients),
	}, nil
}

func (u *patientUsecase) UpdatePatient(ctx context.Context, doctorID, patientID uuid.UUID, req *dto.UpdatePatientRequest) (*dto.PatientResponse, error) {
	tx := u.db.WithContext(ctx).Begin()
	defer tx.Rollback()

	patient, err := u.patientRepo.FindByID(ctx, tx, doctorID, patientID)
	if err != nil {
		u.log.Warnf("Failed to find patient: %+v", err)
		return nil, err
	}
	if patient == nil {
		return nil, ErrPatientNotFound
	}

	oldValue := converter.PatientToResponse(patient)

	if req.FullName != nil {
		patient.FullName = *req.FullName
	}
	if req.DateOfBirth != nil {
		dob, err := parseDate(*req.DateOfBirth)
		if err != nil {
			return nil, err
		}
		patient.DateOfBirth = dob
	}
	if req.Gender != nil {
		patient.Gender = *req.Gender
	}
	if req.MedicalHistory != nil {
		patient.MedicalHistory = *req.MedicalHistory
	}
	if req.Allergies != nil {
		patient.Allergies = *req.Allergies
	}
	if req.CurrentMedications != nil {
		patient.CurrentMedications = *req.CurrentMedications
	}

	if err := u.patientRepo.Update(ctx, tx, patient); err != nil {
		u.log.Warnf("Failed to update patient: %+v", err)
		return nil, err
	}

	if err := tx.Commit().Error; err != nil {
		u.log.Warnf("Failed commit transaction: %+v", err)
		return nil, err
	}

	result := converter.PatientToResponse(patient)
	if err := u.auditService.LogUpdate(ctx, u.db, &doctorID, entity.AuditActionPatientUpdate, "patient", patient.ID.String(), oldValue, result); err != nil {
		u.log.Warnf("Failed to create audit log: %+v", err)
	}

	return result, nil
}

func (u *patientUsecase) DeletePatient(ctx context.Context, doctorID, patientID uuid.UUID) error {
	tx := u.db.WithContext(ctx).Begin()
	defer tx.Rollback()

	patient, err := u.patientRepo.FindByID(ctx, tx, doctorID, patientID)
	if err != nil {
		u.log.Warnf("Failed to find patient: %+v", err)
		return err
	}
	if patient == nil {
		return ErrPatientNotFound
	}

	if err := u.patientRepo.Delete(ctx, tx, doctorID, patientID); err != nil {
		u.log.Warnf("Failed to delete patient: %+v", err)
		return err
	}

	if err := tx.Commit().Error; err != nil {
		u.log.Warnf("Failed commit transaction: %+v", err)
		return err
	}

	if err := u.auditService.LogDelete(ctx, u.db, &doctorID, entity.AuditActionPatientDelete, "patient", patientID.String(), converter.PatientToResponse(patient)); err != nil {
		u.log.Warnf("Failed to create audit log: %+v", err)
	}

	return nil
}
