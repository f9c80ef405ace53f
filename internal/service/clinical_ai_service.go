package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"medassist/internal/infrastructure/ai"

	"github.com/sirupsen/logrus"
)

var (
	ErrNoAnalysis  = errors.New("No valid analysis returned from AI")
	ErrNoTreatment = errors.New("No valid treatment plan returned from AI")
	ErrNoSummary   = errors.New("No valid summary returned from AI")
)

// SymptomInput feeds provide_diagnosis. PatientHistory is optional.
type SymptomInput struct {
	Symptoms       string
	Severity       string
	Duration       string
	PatientHistory string
}

// TreatmentInput feeds provide_treatment. Everything but Diagnosis is optional.
type TreatmentInput struct {
	Diagnosis          string
	PatientInfo        string
	Allergies          string
	CurrentMedications string
}

type SummaryInput struct {
	MedicalRecordText string
}

// ClinicalAIService builds the fixed prompt pairs and returns the tool-call
// arguments produced by the model without reshaping them.
type ClinicalAIService interface {
	AnalyzeSymptoms(ctx context.Context, input SymptomInput) (json.RawMessage, error)
	SuggestTreatment(ctx context.Context, input TreatmentInput) (json.RawMessage, error)
	SummarizeRecord(ctx context.Context, input SummaryInput) (json.RawMessage, error)
}

type clinicalAIService struct {
	log    *logrus.Logger
	caller ai.ToolCaller
}

func NewClinicalAIService(log *logrus.Logger, caller ai.ToolCaller) ClinicalAIService {
	return &clinicalAIService{
		log:    log,
		caller: caller,
	}
}

const diagnosisSystemPrompt = `You are an AI medical assistant helping doctors analyze patient symptoms and suggest possible diagnoses.

IMPORTANT GUIDELINES:
- Provide differential diagnoses based on the symptoms
- Assign a confidence level (low, medium, high, very_high)
- Explain your reasoning clearly
- Consider the severity and duration
- Include relevant red flags or urgent considerations
- Always remind that this is AI-assisted analysis and requires doctor's clinical judgment

Format your response as structured data that will be used in a medical interface.`

const treatmentSystemPrompt = `You are an AI medical assistant helping doctors create treatment plans based on diagnoses.

IMPORTANT GUIDELINES:
- Provide evidence-based treatment recommendations
- Consider patient allergies and current medications
- Suggest priority level (routine, urgent, emergency)
- Include medication names, dosages, and frequencies
- Provide precautions and contraindications
- Include follow-up recommendations
- Always emphasize that this requires doctor's review and approval

Format your response as structured treatment data.`

const summarySystemPrompt = `You are an AI medical assistant that summarizes medical records for doctors.

IMPORTANT GUIDELINES:
- Extract key clinical findings
- Highlight important diagnoses and treatments
- Identify critical lab results and vital signs
- Note allergies and medication history
- Summarize chronologically if applicable
- Flag any urgent or concerning information
- Keep summaries concise but comprehensive

Format your response as structured summary data.`

// optionalLine renders "label: value", or fallback when value is empty
func optionalLine(label, value, fallback string) string {
	if value == "" {
		return fallback
	}
	return label + ": " + value
}

func diagnosisUserPrompt(input SymptomInput) string {
	return fmt.Sprintf(`Patient Symptoms Analysis Request:

Symptoms: %s
Severity: %s
Duration: %s
%s

Please provide:
1. Primary diagnosis suggestion with confidence level
2. Differential diagnoses (2-3 alternatives)
3. Clinical reasoning
4. Any red flags or urgent considerations
5. Recommended diagnostic tests or examinations`,
		input.Symptoms, input.Severity, input.Duration,
		optionalLine("Patient History", input.PatientHistory, ""))
}

func treatmentUserPrompt(input TreatmentInput) string {
	return fmt.Sprintf(`Treatment Planning Request:

Diagnosis: %s
%s
%s
%s

Please provide:
1. Treatment plan overview
2. Specific medications with dosages
3. Priority level (routine, urgent, emergency)
4. Precautions and contraindications
5. Follow-up instructions
6. Lifestyle recommendations`,
		input.Diagnosis,
		optionalLine("Patient Info", input.PatientInfo, ""),
		optionalLine("Allergies", input.Allergies, "No known allergies"),
		optionalLine("Current Medications", input.CurrentMedications, "No current medications"))
}

func summaryUserPrompt(input SummaryInput) string {
	return fmt.Sprintf(`Please summarize the following medical record:

%s

Provide:
1. A concise summary (2-3 paragraphs)
2. Key findings (bullet points)
3. Important diagnoses
4. Current medications
5. Allergies
6. Any urgent flags or concerns`, input.MedicalRecordText)
}

func (s *clinicalAIService) AnalyzeSymptoms(ctx context.Context, input SymptomInput) (json.RawMessage, error) {
	s.log.WithFields(logrus.Fields{
		"severity": input.Severity,
		"duration": input.Duration,
	}).Info("Analyzing symptoms")

	return s.call(ctx, diagnosisSystemPrompt, diagnosisUserPrompt(input), ai.DiagnosisTool, ErrNoAnalysis)
}

func (s *clinicalAIService) SuggestTreatment(ctx context.Context, input TreatmentInput) (json.RawMessage, error) {
	s.log.WithField("diagnosis", input.Diagnosis).Info("Suggesting treatment")

	return s.call(ctx, treatmentSystemPrompt, treatmentUserPrompt(input), ai.TreatmentTool, ErrNoTreatment)
}

func (s *clinicalAIService) SummarizeRecord(ctx context.Context, input SummaryInput) (json.RawMessage, error) {
	s.log.WithField("length", len(input.MedicalRecordText)).Info("Summarizing medical record")

	return s.call(ctx, summarySystemPrompt, summaryUserPrompt(input), ai.SummaryTool, ErrNoSummary)
}

func (s *clinicalAIService) call(ctx context.Context, systemPrompt, userPrompt string, tool ai.Tool, errEmpty error) (json.RawMessage, error) {
	result, err := s.caller.CallTool(ctx, systemPrompt, userPrompt, tool)
	if err != nil {
		if errors.Is(err, ai.ErrNoToolCall) {
			return nil, errEmpty
		}
		s.log.Warnf("Failed to call %s: %+v", tool.Name, err)
		return nil, err
	}
	return result, nil
}
