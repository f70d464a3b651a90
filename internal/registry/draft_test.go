package registry

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/shohag/airegistry/internal/models"
	"github.com/shohag/airegistry/internal/validation"
)

func TestTestCaseDraft(t *testing.T) {
	d := NewTestCaseDraft(validation.New())

	first, err := d.Add(models.TestCaseInput{Input: "2+2", ExpectedOutput: "4"})
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(first.ID, "tc_"))

	second, err := d.Add(models.TestCaseInput{Input: "capital of France", ExpectedOutput: "Paris"})
	require.NoError(t, err)
	assert.NotEqual(t, first.ID, second.ID)

	assert.Equal(t, []models.TestCase{first, second}, d.Items())
	assert.Equal(t, []models.TestCaseInput{
		{Input: "2+2", ExpectedOutput: "4"},
		{Input: "capital of France", ExpectedOutput: "Paris"},
	}, d.Inputs())
}

func TestTestCaseDraft_RejectsInvalid(t *testing.T) {
	d := NewTestCaseDraft(validation.New())

	_, err := d.Add(models.TestCaseInput{Input: "only input"})
	var verrs *validation.Errors
	require.ErrorAs(t, err, &verrs)
	msg, ok := verrs.Message(validation.FieldExpectedOutput)
	assert.True(t, ok)
	assert.Equal(t, validation.MsgExpectedOutputRequired, msg)

	assert.Empty(t, d.Items())
}

func TestTestCaseDraft_ItemsIsACopy(t *testing.T) {
	d := NewTestCaseDraft(validation.New())
	_, err := d.Add(models.TestCaseInput{Input: "a", ExpectedOutput: "b"})
	require.NoError(t, err)

	items := d.Items()
	items[0].Input = "mutated"
	assert.Equal(t, "a", d.Items()[0].Input)
}
