package cprompt

import "fmt"

type resultKind int

const (
	resultContinue resultKind = iota
	resultTerminate
	resultFatal
)

// Result is what a Condition tells the edit loop after a keystroke.
type Result struct {
	kind resultKind
	err  error
}

var (
	// Continue lets the loop carry on.
	Continue = Result{kind: resultContinue}

	// Terminate ends the loop once the current keystroke has been applied.
	Terminate = Result{kind: resultTerminate}
)

// Fatal aborts the prompt with err.
func Fatal(err error) Result {
	return Result{kind: resultFatal, err: err}
}

func (r Result) Err() error {
	return r.err
}

// Condition is called once per keystroke, after the key has been recorded
// as the prompt's LastKey and before it is applied to the buffer.
type Condition func(p Prompt) Result

// conditionMachine holds the conditions of a prompt in registration order.
type conditionMachine struct {
	conditions []Condition
}

func newConditionMachine(conditions []Condition) (*conditionMachine, error) {
	m := &conditionMachine{}
	for _, c := range conditions {
		if err := m.register(c); err != nil {
			return nil, err
		}
	}
	return m, nil
}

func (m *conditionMachine) register(c Condition) error {
	if c == nil {
		return fmt.Errorf("%w: condition %d is nil", ErrConditionNotCallable, len(m.conditions))
	}
	m.conditions = append(m.conditions, c)
	return nil
}

// keyPressed runs every condition. A terminate request does not stop the
// remaining conditions from running; a fatal one does.
func (m *conditionMachine) keyPressed(p Prompt) (exit bool, err error) {
	for i, c := range m.conditions {
		res := c(p)
		switch res.kind {
		case resultContinue:
		case resultTerminate:
			logger.Debug("condition requested exit", "condition", i, "key", p.LastKey())
			exit = true
		case resultFatal:
			if res.err == nil {
				return exit, fmt.Errorf("cprompt: condition %d failed", i)
			}
			return exit, fmt.Errorf("cprompt: condition %d: %w", i, res.err)
		}
	}
	return exit, nil
}
