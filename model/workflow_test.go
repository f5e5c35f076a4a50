package model

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func validDefinition() WorkflowDefinition {
	return WorkflowDefinition{
		Name: "test-flow",
		Steps: []StepDefinition{
			{Label: "One", Fields: []string{"a"}},
			{Label: "Two", Fields: []string{"b"}},
		},
		Fields: []FieldSpec{
			{Name: "a", Kind: FIELD_KIND_STRING, Required: true},
			{Name: "b", Kind: FIELD_KIND_NUMBER},
		},
		SuccessMessage: "done",
	}
}

func TestDefinitionValidate(t *testing.T) {
	def := validDefinition()
	require.NoError(t, def.Validate())

	def = validDefinition()
	def.Steps = nil
	require.Error(t, def.Validate())

	def = validDefinition()
	def.Steps[1].Fields = []string{"a"}
	require.ErrorContains(t, def.Validate(), "owned by two steps")

	def = validDefinition()
	def.Fields = append(def.Fields, FieldSpec{Name: "c", Kind: FIELD_KIND_STRING})
	require.ErrorContains(t, def.Validate(), "not owned by any step")

	def = validDefinition()
	def.Steps[0].Fields = []string{"missing"}
	require.ErrorContains(t, def.Validate(), "undeclared field")

	def = validDefinition()
	def.Fields[0].Pattern = "(["
	require.ErrorContains(t, def.Validate(), "invalid pattern")

	def = validDefinition()
	def.Rules = []RecordRule{{Anchor: "nope", Expression: "true", Message: "m"}}
	require.ErrorContains(t, def.Validate(), "undeclared field nope")

	def = validDefinition()
	def.RejectPattern = "^FAIL"
	require.ErrorContains(t, def.Validate(), "without a reject field")
}

func TestStepFields(t *testing.T) {
	def := validDefinition()
	specs := def.StepFields(0)
	require.Len(t, specs, 1)
	require.Equal(t, "a", specs[0].Name)
	require.Nil(t, def.StepFields(5))
}
