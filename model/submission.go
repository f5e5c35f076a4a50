package model

type RunState int

const RUN_RUNNING RunState = 1
const RUN_SUCCEEDED RunState = 2
const RUN_FAILED RunState = 3

// SubmissionRecord is the state of one workflow run: raw values as entered,
// the active step index and the field errors of the last failed transition.
// It is owned exclusively by its run and discarded on a terminal state.
type SubmissionRecord struct {
	Id       string            `json:"id"`
	Workflow string            `json:"workflow"`
	Step     int               `json:"step"`
	Values   map[string]any    `json:"values"`
	Errors   map[string]string `json:"errors"`
	State    RunState          `json:"state"`
}

func NewSubmissionRecord(id string, workflow string) *SubmissionRecord {
	return &SubmissionRecord{
		Id:       id,
		Workflow: workflow,
		Step:     0,
		Values:   make(map[string]any),
		Errors:   make(map[string]string),
		State:    RUN_RUNNING,
	}
}

func (r *SubmissionRecord) Terminal() bool {
	return r.State == RUN_SUCCEEDED || r.State == RUN_FAILED
}

const RESULT_SUCCESS string = "success"
const RESULT_ERROR string = "error"

type WorkflowResult struct {
	Status      string            `json:"status"`
	Message     string            `json:"message"`
	Redirect    string            `json:"redirect,omitempty"`
	FieldErrors map[string]string `json:"fieldErrors,omitempty"`
}

// VerificationResult always carries an in-range score: a transport or
// protocol fault yields the safe default instead of an error.
type VerificationResult struct {
	Verdict     bool    `json:"verdict"`
	Score       float64 `json:"score"`
	Explanation string  `json:"explanation"`
}

type RunTransitionRequest struct {
	Workflow string         `json:"workflow"`
	Values   map[string]any `json:"values"`
}
