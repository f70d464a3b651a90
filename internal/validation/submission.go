package validation

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/shohag/airegistry/internal/models"
)

type Validator struct{}

func New() *Validator {
	return &Validator{}
}

// ValidateSubmission checks s and, when every rule passes, returns the typed
// record it describes. ID and CreatedAt are left for the caller to assign.
func (v *Validator) ValidateSubmission(s models.Submission) (models.Endpoint, error) {
	errs := &Errors{}

	if blank(s.EndpointID) {
		errs.add(FieldEndpointID, MsgEndpointIDRequired)
	}

	method, known := models.ParseMethod(s.Method)
	switch {
	case method == "":
		errs.add(FieldMethod, MsgMethodRequired)
	case !known:
		errs.add(FieldMethod, MsgMethodUnsupported)
	}

	if blank(s.Description) {
		errs.add(FieldDescription, MsgDescriptionRequired)
	}

	if !ValidURL(s.URL) {
		errs.add(FieldURL, MsgInvalidURL)
	}

	if blank(s.PromptExample) {
		errs.add(FieldPromptExample, MsgPromptExampleRequired)
	}

	switch {
	case blank(s.ResponseExample):
		errs.add(FieldResponseExample, MsgResponseExampleRequired)
	case s.IsJSONResponse && !json.Valid([]byte(s.ResponseExample)):
		errs.add(FieldResponseExample, MsgInvalidJSON)
	}

	if blank(s.Creator) {
		errs.add(FieldCreator, MsgCreatorRequired)
	}

	for i, tc := range s.TestCases {
		if err := v.validateTestCase(tc); err != nil {
			errs.merge(fmt.Sprintf("testCases[%d]", i), err)
		}
	}

	if err := errs.orNil(); err != nil {
		return models.Endpoint{}, err
	}

	return models.Endpoint{
		EndpointID:  strings.TrimSpace(s.EndpointID),
		Method:      method,
		Description: strings.TrimSpace(s.Description),
		URL:         strings.TrimSpace(s.URL),
		Creator:     strings.TrimSpace(s.Creator),
	}, nil
}

func (v *Validator) ValidateTestCase(tc models.TestCaseInput) error {
	if err := v.validateTestCase(tc); err != nil {
		return err
	}
	return nil
}

// ValidateBatch validates every submission and reports all rejected entries
// together.
func (v *Validator) ValidateBatch(subs []models.Submission) ([]models.Endpoint, error) {
	endpoints := make([]models.Endpoint, 0, len(subs))
	var batchErrors []IndexedError

	for i, s := range subs {
		ep, err := v.ValidateSubmission(s)
		if err != nil {
			batchErrors = append(batchErrors, IndexedError{Index: i, Err: err.(*Errors)})
			continue
		}
		endpoints = append(endpoints, ep)
	}

	if len(batchErrors) > 0 {
		return nil, &BatchError{Errors: batchErrors}
	}
	return endpoints, nil
}

func (v *Validator) validateTestCase(tc models.TestCaseInput) *Errors {
	errs := &Errors{}
	if blank(tc.Input) {
		errs.add(FieldInput, MsgInputRequired)
	}
	if blank(tc.ExpectedOutput) {
		errs.add(FieldExpectedOutput, MsgExpectedOutputRequired)
	}
	if len(errs.Fields) == 0 {
		return nil
	}
	return errs
}

func blank(s string) bool {
	return strings.TrimSpace(s) == ""
}
