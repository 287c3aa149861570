package tables

import (
	"errors"
	"fmt"

	"racc/internal/grammar"
)

// ErrInternal marks a defect in the upstream automaton: an action value the
// encoder does not know. Emission must stop when it is seen.
var ErrInternal = errors.New("internal consistency failure")

// InternalError carries the location of an unencodable action.
type InternalError struct {
	State  grammar.StateID
	Token  grammar.TokenID // DefaultTokenID for the default action
	Action grammar.Action
}

func (e *InternalError) Error() string {
	where := fmt.Sprintf("state %d token %d", e.State, e.Token)
	if e.Token == DefaultTokenID {
		where = fmt.Sprintf("state %d default action", e.State)
	}
	return fmt.Sprintf("%s: wrong action type %T in %s", ErrInternal, e.Action, where)
}

func (e *InternalError) Unwrap() error { return ErrInternal }

// Sentinels are the codes reserved for Accept and Error. Shift targets are
// always below Shift and rule ids are always below Reduce, so
// +Shift and -Reduce never collide with a real shift or reduce code.
type Sentinels struct {
	Shift  int
	Reduce int
}

// SentinelsFor computes the sentinels of g once, before anything is encoded.
func SentinelsFor(g *grammar.Grammar) Sentinels {
	return Sentinels{Shift: g.ShiftN(), Reduce: g.ReduceN()}
}

// Accept is the code of the accept action.
func (s Sentinels) Accept() int { return s.Shift }

// Error is the code of the error action.
func (s Sentinels) Error() int { return -s.Reduce }

// Encoder maps actions into the shared signed code space:
// shift t -> +t, reduce r -> -r, accept -> +Shift, error -> -Reduce.
type Encoder struct {
	Sentinels Sentinels
}

// NewEncoder returns an encoder bound to the sentinels of g.
func NewEncoder(g *grammar.Grammar) Encoder {
	return Encoder{Sentinels: SentinelsFor(g)}
}

// Encode returns the code of act. Only the four action variants are
// encodable; anything else (including nil) is an *InternalError.
func (e Encoder) Encode(act grammar.Action) (int, error) {
	switch a := act.(type) {
	case grammar.ShiftAction:
		return int(a.Target), nil
	case grammar.ReduceAction:
		return -int(a.Rule), nil
	case grammar.AcceptAction:
		return e.Sentinels.Accept(), nil
	case grammar.ErrorAction:
		return e.Sentinels.Error(), nil
	default:
		return 0, &InternalError{Action: act}
	}
}

// encodeAt is Encode with the failure located at (state, tok).
func (e Encoder) encodeAt(state grammar.StateID, tok grammar.TokenID, act grammar.Action) (int, error) {
	code, err := e.Encode(act)
	if err != nil {
		var ie *InternalError
		if errors.As(err, &ie) {
			ie.State = state
			ie.Token = tok
		}
		return 0, err
	}
	return code, nil
}

// Decode is the inverse of Encode, used by lookups and the report.
func (e Encoder) Decode(code int) grammar.Action {
	switch {
	case code == e.Sentinels.Accept():
		return grammar.AcceptAction{}
	case code == e.Sentinels.Error():
		return grammar.ErrorAction{}
	case code > 0:
		return grammar.ShiftAction{Target: grammar.StateID(code)}
	default:
		return grammar.ReduceAction{Rule: grammar.RuleID(-code)}
	}
}
