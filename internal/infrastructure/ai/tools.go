package ai

// Tool is a function the model is forced to call. Parameters is a JSON schema.
type Tool struct {
	Name        string
	Description string
	Parameters  map[string]any
}

const (
	ToolProvideDiagnosis = "provide_diagnosis"
	ToolProvideTreatment = "provide_treatment"
	ToolProvideSummary   = "provide_summary"
)

func stringProp(description string) map[string]any {
	return map[string]any{"type": "string", "description": description}
}

func enumProp(description string, values ...string) map[string]any {
	return map[string]any{"type": "string", "enum": values, "description": description}
}

func listProp(description string) map[string]any {
	return map[string]any{
		"type":        "array",
		"items":       map[string]any{"type": "string"},
		"description": description,
	}
}

func objectSchema(properties map[string]any, required ...string) map[string]any {
	return map[string]any{
		"type":                 "object",
		"properties":           properties,
		"required":             required,
		"additionalProperties": false,
	}
}

var DiagnosisTool = Tool{
	Name:        ToolProvideDiagnosis,
	Description: "Provide structured diagnosis analysis",
	Parameters: objectSchema(map[string]any{
		"primary_diagnosis":      stringProp("The most likely diagnosis"),
		"confidence":             enumProp("Confidence level in the diagnosis", "low", "medium", "high", "very_high"),
		"reasoning":              stringProp("Clinical reasoning for the diagnosis"),
		"differential_diagnoses": listProp("Alternative possible diagnoses"),
		"red_flags":              listProp("Urgent considerations or warning signs"),
		"recommended_tests":      listProp("Recommended diagnostic tests"),
	}, "primary_diagnosis", "confidence", "reasoning", "differential_diagnoses"),
}

var TreatmentTool = Tool{
	Name:        ToolProvideTreatment,
	Description: "Provide structured treatment plan",
	Parameters: objectSchema(map[string]any{
		"treatment_plan":            stringProp("Overview of the treatment approach"),
		"medications":               listProp("List of medications with dosages"),
		"priority":                  enumProp("Treatment priority level", "routine", "urgent", "emergency"),
		"precautions":               stringProp("Important precautions and contraindications"),
		"follow_up":                 stringProp("Follow-up instructions and timeline"),
		"lifestyle_recommendations": listProp("Lifestyle and self-care recommendations"),
	}, "treatment_plan", "medications", "priority", "follow_up"),
}

var SummaryTool = Tool{
	Name:        ToolProvideSummary,
	Description: "Provide structured medical record summary",
	Parameters: objectSchema(map[string]any{
		"summary":      stringProp("Concise narrative summary of the medical record"),
		"key_findings": listProp("Important clinical findings and observations"),
		"diagnoses":    listProp("Diagnoses mentioned in the record"),
		"medications":  listProp("Current medications"),
		"allergies":    listProp("Known allergies"),
		"urgent_flags": listProp("Urgent concerns or red flags"),
	}, "summary", "key_findings"),
}
