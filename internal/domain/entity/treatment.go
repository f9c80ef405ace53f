package entity

import (
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"
)

// TreatmentPriority is the urgency suggested for a treatment plan
type TreatmentPriority string

const (
	PriorityRoutine   TreatmentPriority = "routine"
	PriorityUrgent    TreatmentPriority = "urgent"
	PriorityEmergency TreatmentPriority = "emergency"
)

// Treatment is derived from one Diagnosis
type Treatment struct {
	ID                   uuid.UUID         `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"id"`
	DiagnosisID          uuid.UUID         `gorm:"type:uuid;not null;index" json:"diagnosis_id"`
	DoctorID             uuid.UUID         `gorm:"type:uuid;not null;index" json:"doctor_id"`
	TreatmentPlan        string            `gorm:"type:text;not null" json:"treatment_plan"`
	Medications          pq.StringArray    `gorm:"type:text[]" json:"medications"`
	Priority             TreatmentPriority `gorm:"type:treatment_priority;not null" json:"priority"`
	Precautions          string            `gorm:"type:text" json:"precautions,omitempty"`
	FollowUpInstructions string            `gorm:"type:text" json:"follow_up_instructions,omitempty"`
	CreatedAt            time.Time         `gorm:"autoCreateTime" json:"created_at"`
}

func (Treatment) TableName() string {
	return "treatments"
}
