package flow

import (
	"fmt"

	"github.com/votecard/cardflow/logger"
	"github.com/votecard/cardflow/model"
	"github.com/votecard/cardflow/validate"
	"go.uber.org/zap"
)

// VerificationDispatcher hands the normalized record of a succeeded run to
// the verification gateway, fire-and-forget.
type VerificationDispatcher interface {
	Dispatch(workflow string, runId string, spec *model.VerificationSpec, record map[string]any)
}

// Machine drives one SubmissionRecord through a WorkflowDefinition. Every
// transition runs to completion before the next is accepted; terminal states
// are absorbing.
type Machine struct {
	def        *model.WorkflowDefinition
	record     *model.SubmissionRecord
	dispatcher VerificationDispatcher
	predicates []TerminalPredicate
}

func NewMachine(def *model.WorkflowDefinition, record *model.SubmissionRecord, dispatcher VerificationDispatcher, predicates ...TerminalPredicate) *Machine {
	return &Machine{
		def:        def,
		record:     record,
		dispatcher: dispatcher,
		predicates: predicates,
	}
}

// Advance merges the entered values and validates the active step's fields.
// On all-pass the record moves to the next step; on any failure it stays put
// with the per-field messages stored on the record. The merge happens before
// validation, so a failed advance still keeps what the user typed — the form
// re-renders with their input intact rather than blank fields.
func (m *Machine) Advance(values map[string]any) error {
	if m.record.Terminal() {
		return fmt.Errorf("run %s is already terminal", m.record.Id)
	}
	if m.record.Step >= len(m.def.Steps)-1 {
		return fmt.Errorf("run %s is on the final step, submit is required", m.record.Id)
	}
	m.merge(values)
	_, errors := validate.Validate(m.record.Values, m.def.StepFields(m.record.Step))
	if len(errors) > 0 {
		m.record.Errors = errors
		return nil
	}
	m.record.Errors = make(map[string]string)
	m.record.Step++
	return nil
}

// Back moves to the previous step unconditionally. Entered values are
// preserved, including those of steps ahead of the new active index.
func (m *Machine) Back() error {
	if m.record.Terminal() {
		return fmt.Errorf("run %s is already terminal", m.record.Id)
	}
	if m.record.Step == 0 {
		return fmt.Errorf("run %s is on the first step", m.record.Id)
	}
	m.record.Errors = make(map[string]string)
	m.record.Step--
	return nil
}

// Submit is fireable only from the final step. It validates the full record
// including record-level rules, then applies the terminal predicates, then
// resolves to Succeeded or Failed. Verification, when configured, is
// dispatched after the outcome is decided and never alters it.
func (m *Machine) Submit(values map[string]any) (*model.WorkflowResult, error) {
	if m.record.Terminal() {
		return nil, fmt.Errorf("run %s is already terminal", m.record.Id)
	}
	if m.record.Step != len(m.def.Steps)-1 {
		return nil, fmt.Errorf("run %s is not on the final step", m.record.Id)
	}
	m.merge(values)
	normalized, errors := validate.ValidateRecord(m.record.Values, m.def)
	if len(errors) > 0 {
		m.record.Errors = errors
		m.record.State = model.RUN_FAILED
		return &model.WorkflowResult{
			Status:      model.RESULT_ERROR,
			Message:     validate.FirstError(m.def.Fields, errors),
			FieldErrors: errors,
		}, nil
	}
	for _, predicate := range m.predicates {
		if msg, rejected := predicate(normalized); rejected {
			logger.Info("submission rejected by policy", zap.String("workflow", m.def.Name), zap.String("id", m.record.Id))
			m.record.State = model.RUN_FAILED
			return &model.WorkflowResult{
				Status:  model.RESULT_ERROR,
				Message: msg,
			}, nil
		}
	}
	m.record.State = model.RUN_SUCCEEDED
	if m.def.Verification != nil && m.dispatcher != nil {
		m.dispatcher.Dispatch(m.def.Name, m.record.Id, m.def.Verification, normalized)
	}
	return &model.WorkflowResult{
		Status:   model.RESULT_SUCCESS,
		Message:  m.def.SuccessMessage,
		Redirect: m.def.Redirect,
	}, nil
}

func (m *Machine) merge(values map[string]any) {
	for k, v := range values {
		m.record.Values[k] = v
	}
}
