package grammar

import (
	"fmt"
	"strconv"
	"strings"
)

// ActionKind classifies a parser action.
type ActionKind uint8

const (
	KindShift ActionKind = iota + 1
	KindReduce
	KindAccept
	KindError
)

func (k ActionKind) String() string {
	switch k {
	case KindShift:
		return "shift"
	case KindReduce:
		return "reduce"
	case KindAccept:
		return "accept"
	case KindError:
		return "error"
	default:
		return "unknown"
	}
}

// Action is the closed set of parser actions: ShiftAction, ReduceAction,
// AcceptAction and ErrorAction. The unexported method keeps other packages
// from adding variants.
type Action interface {
	Kind() ActionKind
	String() string
	sealedAction()
}

// ShiftAction consumes the lookahead and moves to Target.
type ShiftAction struct {
	Target StateID
}

// ReduceAction pops the right-hand side of Rule and takes the goto on its LHS.
type ReduceAction struct {
	Rule RuleID
}

// AcceptAction finishes the parse.
type AcceptAction struct{}

// ErrorAction reports a syntax error.
type ErrorAction struct{}

func (ShiftAction) Kind() ActionKind  { return KindShift }
func (ReduceAction) Kind() ActionKind { return KindReduce }
func (AcceptAction) Kind() ActionKind { return KindAccept }
func (ErrorAction) Kind() ActionKind  { return KindError }

func (a ShiftAction) String() string  { return "shift " + strconv.Itoa(int(a.Target)) }
func (a ReduceAction) String() string { return "reduce " + strconv.Itoa(int(a.Rule)) }
func (AcceptAction) String() string   { return "accept" }
func (ErrorAction) String() string    { return "error" }

func (ShiftAction) sealedAction()  {}
func (ReduceAction) sealedAction() {}
func (AcceptAction) sealedAction() {}
func (ErrorAction) sealedAction()  {}

// ParseAction reads the textual form used by model files:
// "shift N", "reduce N", "accept" or "error".
func ParseAction(s string) (Action, error) {
	fields := strings.Fields(strings.ToLower(s))
	if len(fields) == 0 {
		return nil, fmt.Errorf("empty action")
	}
	switch fields[0] {
	case "accept", "error":
		if len(fields) != 1 {
			return nil, fmt.Errorf("action %q takes no operand", fields[0])
		}
		if fields[0] == "accept" {
			return AcceptAction{}, nil
		}
		return ErrorAction{}, nil
	case "shift", "reduce":
		if len(fields) != 2 {
			return nil, fmt.Errorf("action %q needs exactly one operand", fields[0])
		}
		n, err := strconv.Atoi(fields[1])
		if err != nil {
			return nil, fmt.Errorf("bad %s operand %q: %w", fields[0], fields[1], err)
		}
		if n < 0 {
			return nil, fmt.Errorf("negative %s operand %d", fields[0], n)
		}
		if fields[0] == "shift" {
			return ShiftAction{Target: StateID(n)}, nil
		}
		return ReduceAction{Rule: RuleID(n)}, nil
	default:
		return nil, fmt.Errorf("unknown action %q (expected shift|reduce|accept|error)", fields[0])
	}
}

// ActionText wraps an Action so it can be decoded from text-based formats.
type ActionText struct {
	Action Action
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (a *ActionText) UnmarshalText(b []byte) error {
	act, err := ParseAction(string(b))
	if err != nil {
		return err
	}
	a.Action = act
	return nil
}

// MarshalText implements encoding.TextMarshaler.
func (a ActionText) MarshalText() ([]byte, error) {
	if a.Action == nil {
		return nil, fmt.Errorf("nil action")
	}
	return []byte(a.Action.String()), nil
}
