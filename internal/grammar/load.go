package grammar

import (
	"fmt"
	"io"

	"github.com/BurntSushi/toml"
)

// modelFile mirrors the TOML layout of a grammar model file.
type modelFile struct {
	ShiftN  int          `toml:"shift_n"`
	ReduceN int          `toml:"reduce_n"`
	Tokens  []tokenEntry `toml:"token"`
	Rules   []ruleEntry  `toml:"rule"`
	States  []stateEntry `toml:"state"`
}

type tokenEntry struct {
	ID       int    `toml:"id"`
	Name     string `toml:"name"`
	Terminal bool   `toml:"terminal"`
	Useless  bool   `toml:"useless"`
}

type ruleEntry struct {
	ID     int    `toml:"id"`
	LHS    int    `toml:"lhs"`
	RHS    []int  `toml:"rhs"`
	Action string `toml:"action"`
	Line   int    `toml:"line"`
}

type actionEntry struct {
	Token  int        `toml:"token"`
	Action ActionText `toml:"action"`
}

type gotoEntry struct {
	Token  int `toml:"token"`
	Target int `toml:"target"`
}

type itemEntry struct {
	Rule int `toml:"rule"`
	Dot  int `toml:"dot"`
}

type srEntry struct {
	Shift  int `toml:"shift"`
	Reduce int `toml:"reduce"`
}

type rrEntry struct {
	Token   int `toml:"token"`
	LowPrec int `toml:"low_prec"`
}

type stateEntry struct {
	ID          int           `toml:"id"`
	Default     ActionText    `toml:"default"`
	Actions     []actionEntry `toml:"actions"`
	Gotos       []gotoEntry   `toml:"gotos"`
	Seed        []itemEntry   `toml:"seed"`
	Closure     []itemEntry   `toml:"closure"`
	SRConflicts []srEntry     `toml:"sr_conflicts"`
	RRConflicts []rrEntry     `toml:"rr_conflicts"`
}

// LoadFile decodes a TOML model file and validates it.
func LoadFile(path string) (*Grammar, error) {
	var mf modelFile
	meta, err := toml.DecodeFile(path, &mf)
	if err != nil {
		return nil, fmt.Errorf("%s: failed to parse model: %w", path, err)
	}
	g, err := fromModel(&mf, meta)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return g, nil
}

// Load decodes a TOML model from r and validates it.
func Load(r io.Reader) (*Grammar, error) {
	var mf modelFile
	meta, err := toml.NewDecoder(r).Decode(&mf)
	if err != nil {
		return nil, fmt.Errorf("failed to parse model: %w", err)
	}
	return fromModel(&mf, meta)
}

func fromModel(mf *modelFile, meta toml.MetaData) (*Grammar, error) {
	if undecoded := meta.Undecoded(); len(undecoded) > 0 {
		return nil, fmt.Errorf("unknown model key %q", undecoded[0].String())
	}
	if !meta.IsDefined("token") {
		return nil, fmt.Errorf("missing [[token]]")
	}
	if !meta.IsDefined("rule") {
		return nil, fmt.Errorf("missing [[rule]]")
	}

	tokens := make([]*Token, len(mf.Tokens))
	for i, te := range mf.Tokens {
		tokens[i] = &Token{
			ID:       TokenID(te.ID),
			Name:     te.Name,
			Terminal: te.Terminal,
			Useless:  te.Useless,
		}
	}

	rules := make([]*Rule, len(mf.Rules))
	for i, re := range mf.Rules {
		rhs := make([]TokenID, len(re.RHS))
		for j, id := range re.RHS {
			rhs[j] = TokenID(id)
		}
		rules[i] = &Rule{
			ID:     RuleID(re.ID),
			LHS:    TokenID(re.LHS),
			RHS:    rhs,
			Action: re.Action,
			Line:   re.Line,
		}
	}

	states := make([]*State, len(mf.States))
	for i, se := range mf.States {
		st := &State{
			ID:      StateID(se.ID),
			Default: se.Default.Action,
		}
		for _, ae := range se.Actions {
			st.Actions = append(st.Actions, TokenAction{Token: TokenID(ae.Token), Action: ae.Action.Action})
		}
		for _, ge := range se.Gotos {
			st.Gotos = append(st.Gotos, Goto{Token: TokenID(ge.Token), Target: StateID(ge.Target)})
		}
		st.Seed = toItems(se.Seed)
		st.Closure = toItems(se.Closure)
		for _, c := range se.SRConflicts {
			st.SRConflicts = append(st.SRConflicts, SRConflict{Shift: TokenID(c.Shift), Reduce: RuleID(c.Reduce)})
		}
		for _, c := range se.RRConflicts {
			st.RRConflicts = append(st.RRConflicts, RRConflict{Token: TokenID(c.Token), LowPrec: RuleID(c.LowPrec)})
		}
		// a state without an explicit default reports errors
		if st.Default == nil {
			st.Default = ErrorAction{}
		}
		states[i] = st
	}

	g := New(tokens, rules, states, mf.ShiftN, mf.ReduceN)
	if err := g.Validate(); err != nil {
		return nil, err
	}
	return g, nil
}

func toItems(entries []itemEntry) []Item {
	if len(entries) == 0 {
		return nil
	}
	items := make([]Item, len(entries))
	for i, e := range entries {
		items[i] = Item{Rule: RuleID(e.Rule), Dot: e.Dot}
	}
	return items
}
