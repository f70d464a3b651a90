package models

// Submission is the raw form input for a new endpoint. Only the fields that
// make up Endpoint are persisted; the examples, the JSON flag and the test
// cases are checked and then dropped.
type Submission struct {
	EndpointID      string          `json:"endpointId" yaml:"endpointId"`
	Method          string          `json:"method" yaml:"method"`
	Description     string          `json:"description" yaml:"description"`
	URL             string          `json:"url" yaml:"url"`
	PromptExample   string          `json:"promptExample" yaml:"promptExample"`
	ResponseExample string          `json:"responseExample" yaml:"responseExample"`
	IsJSONResponse  bool            `json:"isJsonResponse" yaml:"isJsonResponse"`
	Creator         string          `json:"creator" yaml:"creator"`
	TestCases       []TestCaseInput `json:"testCases,omitempty" yaml:"testCases,omitempty"`
}

// NewSubmission returns a Submission with the form defaults applied.
func NewSubmission() Submission {
	return Submission{
		Method:         string(MethodPost),
		IsJSONResponse: true,
	}
}
