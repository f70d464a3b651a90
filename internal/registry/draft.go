package registry

import (
	"github.com/shohag/airegistry/internal/models"
	"github.com/shohag/airegistry/internal/validation"
)

// TestCaseDraft collects the test cases of a submission that is still being
// edited.
type TestCaseDraft struct {
	validator *validation.Validator
	newID     func(prefix string) string
	items     []models.TestCase
}

func NewTestCaseDraft(validator *validation.Validator) *TestCaseDraft {
	return &TestCaseDraft{
		validator: validator,
		newID:     models.NewID,
	}
}

func (d *TestCaseDraft) Add(in models.TestCaseInput) (models.TestCase, error) {
	if err := d.validator.ValidateTestCase(in); err != nil {
		return models.TestCase{}, err
	}

	tc := models.TestCase{
		ID:             d.newID(models.TestCaseIDPrefix),
		Input:          in.Input,
		ExpectedOutput: in.ExpectedOutput,
	}
	d.items = append(d.items, tc)
	return tc, nil
}

// Items returns the accepted test cases in the order they were added.
func (d *TestCaseDraft) Items() []models.TestCase {
	out := make([]models.TestCase, len(d.items))
	copy(out, d.items)
	return out
}

func (d *TestCaseDraft) Inputs() []models.TestCaseInput {
	out := make([]models.TestCaseInput, 0, len(d.items))
	for _, tc := range d.items {
		out = append(out, models.TestCaseInput{Input: tc.Input, ExpectedOutput: tc.ExpectedOutput})
	}
	return out
}
