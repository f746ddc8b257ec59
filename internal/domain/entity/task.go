package entity

// ActionResult is the outcome tag of a recorded action. The zero value
// ResultNone is only ever returned as "no result yet" and is never stored.
type ActionResult string

const (
	ResultNone    ActionResult = ""
	ResultFail    ActionResult = "FAIL"
	ResultPending ActionResult = "PENDING"
	ResultSuccess ActionResult = "SUCCESS"
)

func (r ActionResult) String() string {
	if r == ResultNone {
		return "None"
	}
	return string(r)
}

func (r ActionResult) Valid() bool {
	switch r {
	case ResultFail, ResultPending, ResultSuccess:
		return true
	}
	return false
}

// ActionExecution pairs an action with its recorded result.
type ActionExecution struct {
	Action *Action      `json:"action"`
	Result ActionResult `json:"result"`
}
