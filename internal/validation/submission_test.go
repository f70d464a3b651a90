package validation_test

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/shohag/airegistry/internal/models"
	"github.com/shohag/airegistry/internal/validation"
)

func validSubmission() models.Submission {
	return models.Submission{
		EndpointID:      "text-generation",
		Method:          "POST",
		Description:     "Generates text based on a prompt",
		URL:             "https://api.example.com/generate",
		PromptExample:   "What is the capital of France?",
		ResponseExample: `{"result": "The capital of France is Paris."}`,
		IsJSONResponse:  true,
		Creator:         "John Doe",
	}
}

func TestValidateSubmission_Valid(t *testing.T) {
	v := validation.New()

	ep, err := v.ValidateSubmission(validSubmission())
	require.NoError(t, err)

	assert.Equal(t, "text-generation", ep.EndpointID)
	assert.Equal(t, models.MethodPost, ep.Method)
	assert.Equal(t, "Generates text based on a prompt", ep.Description)
	assert.Equal(t, "https://api.example.com/generate", ep.URL)
	assert.Equal(t, "John Doe", ep.Creator)
	assert.Empty(t, ep.ID)
	assert.True(t, ep.CreatedAt.IsZero())
}

func TestValidateSubmission_SingleViolation(t *testing.T) {
	v := validation.New()

	tests := []struct {
		name    string
		mutate  func(s *models.Submission)
		field   string
		message string
	}{
		{"empty endpoint id", func(s *models.Submission) { s.EndpointID = "" }, validation.FieldEndpointID, validation.MsgEndpointIDRequired},
		{"blank endpoint id", func(s *models.Submission) { s.EndpointID = "   " }, validation.FieldEndpointID, validation.MsgEndpointIDRequired},
		{"empty method", func(s *models.Submission) { s.Method = "" }, validation.FieldMethod, validation.MsgMethodRequired},
		{"unknown method", func(s *models.Submission) { s.Method = "PATCH" }, validation.FieldMethod, validation.MsgMethodUnsupported},
		{"empty description", func(s *models.Submission) { s.Description = "" }, validation.FieldDescription, validation.MsgDescriptionRequired},
		{"empty url", func(s *models.Submission) { s.URL = "" }, validation.FieldURL, validation.MsgInvalidURL},
		{"relative url", func(s *models.Submission) { s.URL = "/generate" }, validation.FieldURL, validation.MsgInvalidURL},
		{"url without scheme", func(s *models.Submission) { s.URL = "api.example.com/generate" }, validation.FieldURL, validation.MsgInvalidURL},
		{"empty prompt example", func(s *models.Submission) { s.PromptExample = "" }, validation.FieldPromptExample, validation.MsgPromptExampleRequired},
		{"empty response example", func(s *models.Submission) { s.ResponseExample = "" }, validation.FieldResponseExample, validation.MsgResponseExampleRequired},
		{"invalid json response", func(s *models.Submission) { s.ResponseExample = "not json" }, validation.FieldResponseExample, validation.MsgInvalidJSON},
		{"truncated json response", func(s *models.Submission) { s.ResponseExample = `{"result": ` }, validation.FieldResponseExample, validation.MsgInvalidJSON},
		{"empty creator", func(s *models.Submission) { s.Creator = "" }, validation.FieldCreator, validation.MsgCreatorRequired},
		{"empty test case input", func(s *models.Submission) {
			s.TestCases = []models.TestCaseInput{{Input: "", ExpectedOutput: "Paris"}}
		}, "testCases[0].input", validation.MsgInputRequired},
		{"empty test case output", func(s *models.Submission) {
			s.TestCases = []models.TestCaseInput{{Input: "hi", ExpectedOutput: "hello"}, {Input: "capital?", ExpectedOutput: ""}}
		}, "testCases[1].expectedOutput", validation.MsgExpectedOutputRequired},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := validSubmission()
			tt.mutate(&s)

			_, err := v.ValidateSubmission(s)
			require.Error(t, err)

			var verrs *validation.Errors
			require.True(t, errors.As(err, &verrs))
			require.Len(t, verrs.Fields, 1)
			assert.Equal(t, tt.field, verrs.Fields[0].Field)
			assert.Equal(t, tt.message, verrs.Fields[0].Message)
		})
	}
}

func TestValidateSubmission_JSONFlag(t *testing.T) {
	v := validation.New()

	s := validSubmission()
	s.ResponseExample = "not json"

	s.IsJSONResponse = true
	_, err := v.ValidateSubmission(s)
	require.Error(t, err)
	var verrs *validation.Errors
	require.ErrorAs(t, err, &verrs)
	msg, ok := verrs.Message(validation.FieldResponseExample)
	assert.True(t, ok)
	assert.Equal(t, validation.MsgInvalidJSON, msg)

	s.IsJSONResponse = false
	_, err = v.ValidateSubmission(s)
	assert.NoError(t, err)
}

func TestValidateSubmission_JSONScalarsAccepted(t *testing.T) {
	v := validation.New()

	for _, body := range []string{`"Paris"`, `42`, `true`, `null`, `[1, 2]`} {
		s := validSubmission()
		s.ResponseExample = body
		_, err := v.ValidateSubmission(s)
		assert.NoError(t, err, body)
	}
}

func TestValidateSubmission_AllErrorsReported(t *testing.T) {
	v := validation.New()

	_, err := v.ValidateSubmission(models.Submission{IsJSONResponse: true})
	require.Error(t, err)

	var verrs *validation.Errors
	require.ErrorAs(t, err, &verrs)
	assert.Equal(t, map[string]string{
		validation.FieldEndpointID:      validation.MsgEndpointIDRequired,
		validation.FieldMethod:          validation.MsgMethodRequired,
		validation.FieldDescription:     validation.MsgDescriptionRequired,
		validation.FieldURL:             validation.MsgInvalidURL,
		validation.FieldPromptExample:   validation.MsgPromptExampleRequired,
		validation.FieldResponseExample: validation.MsgResponseExampleRequired,
		validation.FieldCreator:         validation.MsgCreatorRequired,
	}, verrs.Map())
}

func TestValidateSubmission_NormalizesMethod(t *testing.T) {
	v := validation.New()

	s := validSubmission()
	s.Method = "get"

	ep, err := v.ValidateSubmission(s)
	require.NoError(t, err)
	assert.Equal(t, models.MethodGet, ep.Method)
}

func TestValidateSubmission_TrimsStoredFields(t *testing.T) {
	v := validation.New()

	s := validSubmission()
	s.EndpointID = " a "
	s.Description = "  padded  "
	s.URL = " https://x.com "
	s.Creator = "\tSam\n"

	ep, err := v.ValidateSubmission(s)
	require.NoError(t, err)
	assert.Equal(t, "a", ep.EndpointID)
	assert.Equal(t, "padded", ep.Description)
	assert.Equal(t, "https://x.com", ep.URL)
	assert.Equal(t, "Sam", ep.Creator)
}

func TestValidateTestCase(t *testing.T) {
	v := validation.New()

	assert.NoError(t, v.ValidateTestCase(models.TestCaseInput{Input: "2+2", ExpectedOutput: "4"}))

	err := v.ValidateTestCase(models.TestCaseInput{})
	require.Error(t, err)
	var verrs *validation.Errors
	require.ErrorAs(t, err, &verrs)
	assert.Equal(t, map[string]string{
		validation.FieldInput:          validation.MsgInputRequired,
		validation.FieldExpectedOutput: validation.MsgExpectedOutputRequired,
	}, verrs.Map())
}

func TestValidateBatch(t *testing.T) {
	v := validation.New()

	t.Run("all valid", func(t *testing.T) {
		eps, err := v.ValidateBatch([]models.Submission{validSubmission(), validSubmission()})
		require.NoError(t, err)
		assert.Len(t, eps, 2)
	})

	t.Run("invalid entries reported by index", func(t *testing.T) {
		bad := validSubmission()
		bad.URL = "nope"

		_, err := v.ValidateBatch([]models.Submission{validSubmission(), bad, validSubmission()})
		var batchErr *validation.BatchError
		require.ErrorAs(t, err, &batchErr)
		require.Len(t, batchErr.Errors, 1)
		assert.Equal(t, 1, batchErr.Errors[0].Index)
		msg, ok := batchErr.Errors[0].Err.Message(validation.FieldURL)
		assert.True(t, ok)
		assert.Equal(t, validation.MsgInvalidURL, msg)
	})
}
