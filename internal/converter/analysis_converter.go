package converter

import (
	"medassist/internal/delivery/dto"
	"medassist/internal/domain/entity"
)

func TreatmentToResponse(t *entity.Treatment) dto.TreatmentResponse {
	return dto.TreatmentResponse{
		ID:                   t.ID,
		DiagnosisID:          t.DiagnosisID,
		TreatmentPlan:        t.TreatmentPlan,
		Medications:          nonNil(t.Medications),
		Priority:             string(t.Priority),
		Precautions:          t.Precautions,
		FollowUpInstructions: t.FollowUpInstructions,
		CreatedAt:            t.CreatedAt,
	}
}

func DiagnosisToResponse(d *entity.Diagnosis) dto.DiagnosisResponse {
	response := dto.DiagnosisResponse{
		ID:                    d.ID,
		SymptomRecordID:       d.SymptomRecordID,
		Diagnosis:             d.Diagnosis,
		Confidence:            string(d.Confidence),
		Reasoning:             d.Reasoning,
		DifferentialDiagnoses: nonNil(d.DifferentialDiagnoses),
		CreatedAt:             d.CreatedAt,
	}
	for i := range d.Treatments {
		response.Treatments = append(response.Treatments, TreatmentToResponse(&d.Treatments[i]))
	}
	return response
}

func SymptomRecordToResponse(r *entity.SymptomRecord) dto.SymptomRecordResponse {
	response := dto.SymptomRecordResponse{
		ID:              r.ID,
		PatientID:       r.PatientID,
		Symptoms:        r.Symptoms,
		Severity:        string(r.Severity),
		Duration:        r.Duration,
		AdditionalNotes: r.AdditionalNotes,
		CreatedAt:       r.CreatedAt,
	}
	for i := range r.Diagnoses {
		response.Diagnoses = append(response.Diagnoses, DiagnosisToResponse(&r.Diagnoses[i]))
	}
	return response
}

func SymptomRecordsToResponses(records []entity.SymptomRecord) []dto.SymptomRecordResponse {
	responses := make([]dto.SymptomRecordResponse, len(records))
	for i := range records {
		responses[i] = SymptomRecordToResponse(&records[i])
	}
	return responses
}

func MedicalSummaryToResponse(s *entity.MedicalSummary) dto.MedicalSummaryResponse {
	return dto.MedicalSummaryResponse{
		ID:           s.ID,
		PatientID:    s.PatientID,
		OriginalText: s.OriginalText,
		Summary:      s.Summary,
		KeyFindings:  nonNil(s.KeyFindings),
		CreatedAt:    s.CreatedAt,
	}
}

func MedicalSummariesToResponses(summaries []entity.MedicalSummary) []dto.MedicalSummaryResponse {
	responses := make([]dto.MedicalSummaryResponse, len(summaries))
	for i := range summaries {
		responses[i] = MedicalSummaryToResponse(&summaries[i])
	}
	return responses
}

// nonNil keeps empty arrays as [] in JSON
func nonNil(values []string) []string {
	if values == nil {
		return []string{}
	}
	return values
}
