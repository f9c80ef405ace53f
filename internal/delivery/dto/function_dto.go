package dto

import (
	"bytes"
	"encoding/json"
)

// Bodies of the /functions/v1 endpoints. Fields are never validated;
// absent ones reach the prompt as empty text.

// PromptText accepts any JSON value. Strings are taken as is, null becomes
// empty text and anything else keeps its compact JSON form.
type PromptText string

func (t *PromptText) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err == nil {
		*t = PromptText(s)
		return nil
	}

	var buf bytes.Buffer
	if err := json.Compact(&buf, data); err != nil {
		return err
	}
	*t = PromptText(buf.String())
	return nil
}

type AnalyzeSymptomsRequest struct {
	Symptoms       PromptText `json:"symptoms"`
	Severity       PromptText `json:"severity"`
	Duration       PromptText `json:"duration"`
	PatientHistory PromptText `json:"patientHistory"`
}

type SuggestTreatmentRequest struct {
	Diagnosis          PromptText `json:"diagnosis"`
	PatientInfo        PromptText `json:"patientInfo"`
	Allergies          PromptText `json:"allergies"`
	CurrentMedications PromptText `json:"currentMedications"`
}

type SummarizeRecordsRequest struct {
	MedicalRecordText PromptText `json:"medicalRecordText"`
}
