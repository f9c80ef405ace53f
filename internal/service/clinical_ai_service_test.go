package service

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"testing"

	"medassist/internal/infrastructure/ai"

	"github.com/google/go-cmp/cmp"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type recordedCall struct {
	systemPrompt string
	userPrompt   string
	toolName     string
}

type fakeToolCaller struct {
	calls  []recordedCall
	result json.RawMessage
	err    error
}

func (f *fakeToolCaller) CallTool(_ context.Context, systemPrompt, userPrompt string, tool ai.Tool) (json.RawMessage, error) {
	f.calls = append(f.calls, recordedCall{systemPrompt: systemPrompt, userPrompt: userPrompt, toolName: tool.Name})
	return f.result, f.err
}

func quietLogger() *logrus.Logger {
	log := logrus.New()
	log.SetOutput(io.Discard)
	return log
}

func TestClinicalAIService_AnalyzeSymptoms(t *testing.T) {
	caller := &fakeToolCaller{result: json.RawMessage(`{"primary_diagnosis":"Flu"}`)}
	svc := NewClinicalAIService(quietLogger(), caller)

	got, err := svc.AnalyzeSymptoms(context.Background(), SymptomInput{
		Symptoms:       "fever, cough",
		Severity:       "moderate",
		Duration:       "3 days",
		PatientHistory: "asthma",
	})
	require.NoError(t, err)
	assert.JSONEq(t, `{"primary_diagnosis":"Flu"}`, string(got))

	require.Len(t, caller.calls, 1)
	call := caller.calls[0]
	assert.Equal(t, ai.ToolProvideDiagnosis, call.toolName)
	assert.Equal(t, diagnosisSystemPrompt, call.systemPrompt)
	assert.Contains(t, call.userPrompt, "Symptoms: fever, cough\nSeverity: moderate\nDuration: 3 days\nPatient History: asthma\n")
}

func TestClinicalAIService_AnalyzeSymptoms_AbsentFieldsInterpolateEmpty(t *testing.T) {
	caller := &fakeToolCaller{result: json.RawMessage(`{}`)}
	svc := NewClinicalAIService(quietLogger(), caller)

	_, err := svc.AnalyzeSymptoms(context.Background(), SymptomInput{})
	require.NoError(t, err)

	require.Len(t, caller.calls, 1)
	assert.Contains(t, caller.calls[0].userPrompt, "Symptoms: \nSeverity: \nDuration: \n\n")
	assert.NotContains(t, caller.calls[0].userPrompt, "Patient History")
}

func TestClinicalAIService_SuggestTreatment_Fallbacks(t *testing.T) {
	tests := []struct {
		name  string
		input TreatmentInput
		want  []string
	}{
		{
			name:  "nothing on file",
			input: TreatmentInput{Diagnosis: "Migraine"},
			want:  []string{"Diagnosis: Migraine\n\nNo known allergies\nNo current medications\n"},
		},
		{
			name: "everything on file",
			input: TreatmentInput{
				Diagnosis:          "Migraine",
				PatientInfo:        "Gender: female, Age: 34",
				Allergies:          "penicillin",
				CurrentMedications: "ibuprofen",
			},
			want: []string{
				"Patient Info: Gender: female, Age: 34\n",
				"Allergies: penicillin\n",
				"Current Medications: ibuprofen\n",
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			caller := &fakeToolCaller{result: json.RawMessage(`{}`)}
			svc := NewClinicalAIService(quietLogger(), caller)

			_, err := svc.SuggestTreatment(context.Background(), tt.input)
			require.NoError(t, err)
			require.Len(t, caller.calls, 1)
			assert.Equal(t, ai.ToolProvideTreatment, caller.calls[0].toolName)
			for _, fragment := range tt.want {
				assert.Contains(t, caller.calls[0].userPrompt, fragment)
			}
		})
	}
}

func TestClinicalAIService_SummarizeRecord(t *testing.T) {
	caller := &fakeToolCaller{result: json.RawMessage(`{"summary":"ok","key_findings":[]}`)}
	svc := NewClinicalAIService(quietLogger(), caller)

	_, err := svc.SummarizeRecord(context.Background(), SummaryInput{MedicalRecordText: "BP 120/80"})
	require.NoError(t, err)

	want := []recordedCall{{
		systemPrompt: summarySystemPrompt,
		userPrompt:   summaryUserPrompt(SummaryInput{MedicalRecordText: "BP 120/80"}),
		toolName:     ai.ToolProvideSummary,
	}}
	if diff := cmp.Diff(want, caller.calls, cmp.AllowUnexported(recordedCall{})); diff != "" {
		t.Errorf("calls mismatch (-want +got):\n%s", diff)
	}
	assert.Contains(t, caller.calls[0].userPrompt, "following medical record:\n\nBP 120/80\n")
}

func TestClinicalAIService_NoToolCallMapsPerOperation(t *testing.T) {
	svc := NewClinicalAIService(quietLogger(), &fakeToolCaller{err: ai.ErrNoToolCall})
	ctx := context.Background()

	_, err := svc.AnalyzeSymptoms(ctx, SymptomInput{})
	assert.ErrorIs(t, err, ErrNoAnalysis)
	assert.EqualError(t, err, "No valid analysis returned from AI")

	_, err = svc.SuggestTreatment(ctx, TreatmentInput{})
	assert.ErrorIs(t, err, ErrNoTreatment)

	_, err = svc.SummarizeRecord(ctx, SummaryInput{})
	assert.ErrorIs(t, err, ErrNoSummary)
}

func TestClinicalAIService_PassesUpstreamErrorsThrough(t *testing.T) {
	for _, upstream := range []error{ai.ErrRateLimited, ai.ErrPaymentRequired, errors.New("dial tcp: refused")} {
		svc := NewClinicalAIService(quietLogger(), &fakeToolCaller{err: upstream})

		_, err := svc.AnalyzeSymptoms(context.Background(), SymptomInput{})
		assert.ErrorIs(t, err, upstream)
	}
}

func TestOptionalLine(t *testing.T) {
	tests := []struct {
		name     string
		value    string
		fallback string
		want     string
	}{
		{name: "value present", value: "penicillin", fallback: "No known allergies", want: "Allergies: penicillin"},
		{name: "empty uses fallback", value: "", fallback: "No known allergies", want: "No known allergies"},
		{name: "empty without fallback", value: "", fallback: "", want: ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, optionalLine("Allergies", tt.value, tt.fallback))
		})
	}
}
