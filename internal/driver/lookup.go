package driver

import (
	"context"
	"fmt"
	"strconv"

	"racc/internal/grammar"
	"racc/internal/tables"
)

// LookupRequest asks what the generated tables do in State on Token.
// Token is a symbol name or a numeric token id.
type LookupRequest struct {
	ModelPath string
	State     int
	Token     string
	Jobs      int
}

// LookupResult is the answer of both encodings for one cell.
type LookupResult struct {
	State int
	Token *grammar.Token

	// Model is the action the model records, Default when the state has no
	// explicit entry for the token. Only set for terminals.
	Model   grammar.Action
	Default bool

	// Code is the encoded action (terminals) shared by both encodings.
	Code   int
	Action grammar.Action

	// Goto is the destination (nonterminals); HasGoto is false if there is none.
	Goto    int
	HasGoto bool
}

// MismatchError reports that the flat and packed tables disagree.
type MismatchError struct {
	State        int
	Token        string
	Flat, Packed string
}

func (e *MismatchError) Error() string {
	return fmt.Sprintf("state %d token %s: flat tables give %s, packed tables give %s",
		e.State, e.Token, e.Flat, e.Packed)
}

// Lookup builds both encodings of the model and resolves one cell through
// each of them. A disagreement is a *MismatchError.
func Lookup(ctx context.Context, req *LookupRequest) (res *LookupResult, err error) {
	r := newRun(ctx, "lookup", nil, nil, 0)
	defer func() { r.finish(err) }()
	ctx = r.ctx(ctx)

	m, err := r.loadModel(ctx, req.ModelPath)
	if err != nil {
		return nil, err
	}
	g := m.g
	if req.State < 0 || req.State >= len(g.States) {
		return nil, fmt.Errorf("state %d out of range [0, %d)", req.State, len(g.States))
	}
	tok, err := resolveToken(g, req.Token)
	if err != nil {
		return nil, err
	}

	var flat, packed *tables.Result
	err = r.stage(ctx, StageTables, func() (string, error) {
		var err error
		if flat, err = tables.Build(ctx, g, tables.Options{Encoding: tables.EncodingFlat}); err != nil {
			return "", err
		}
		if packed, err = tables.Build(ctx, g, tables.Options{Encoding: tables.EncodingPacked, Jobs: req.Jobs}); err != nil {
			return "", err
		}
		return "flat+packed", nil
	})
	if err != nil {
		return nil, err
	}

	res = &LookupResult{State: req.State, Token: tok}
	if !tok.Terminal {
		fd, fok, err := flat.Goto(req.State, int(tok.ID))
		if err != nil {
			return nil, err
		}
		pd, pok, err := packed.Goto(req.State, int(tok.ID))
		if err != nil {
			return nil, err
		}
		if fok != pok || (fok && fd != pd) {
			return nil, &MismatchError{State: req.State, Token: tok.Name,
				Flat: gotoString(fd, fok), Packed: gotoString(pd, pok)}
		}
		res.Goto, res.HasGoto = fd, fok
		return res, nil
	}

	s := g.States[req.State]
	if act, ok := s.ActionOn(tok.ID); ok {
		res.Model = act
	} else {
		res.Model, res.Default = s.Default, true
	}
	fc, err := flat.Action(req.State, int(tok.ID))
	if err != nil {
		return nil, err
	}
	pc, err := packed.Action(req.State, int(tok.ID))
	if err != nil {
		return nil, err
	}
	if fc != pc {
		return nil, &MismatchError{State: req.State, Token: tok.Name,
			Flat: strconv.Itoa(fc), Packed: strconv.Itoa(pc)}
	}
	res.Code = fc
	res.Action = tables.NewEncoder(g).Decode(fc)
	return res, nil
}

func resolveToken(g *grammar.Grammar, s string) (*grammar.Token, error) {
	for _, t := range g.Tokens {
		if t.Name == s {
			return t, nil
		}
	}
	if id, err := strconv.Atoi(s); err == nil {
		if t := g.Token(grammar.TokenID(id)); t != nil {
			return t, nil
		}
	}
	return nil, fmt.Errorf("unknown token %q", s)
}

func gotoString(dest int, ok bool) string {
	if !ok {
		return "no goto"
	}
	return "goto " + strconv.Itoa(dest)
}
