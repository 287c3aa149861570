package diag

import (
	"fmt"
	"strings"
)

// Site locates a diagnostic in the grammar model. State, Token and Rule
// are -1 when they do not apply.
type Site struct {
	File  string
	State int
	Token int
	Rule  int
}

// FileSite points at the model file as a whole.
func FileSite(file string) Site {
	return Site{File: file, State: -1, Token: -1, Rule: -1}
}

// StateSite points at a state, optionally narrowed to a token.
func StateSite(file string, state, token int) Site {
	return Site{File: file, State: state, Token: token, Rule: -1}
}

// RuleSite points at a rule.
func RuleSite(file string, rule int) Site {
	return Site{File: file, State: -1, Token: -1, Rule: rule}
}

func (s Site) String() string {
	parts := make([]string, 0, 4)
	if s.File != "" {
		parts = append(parts, s.File)
	}
	if s.State >= 0 {
		parts = append(parts, fmt.Sprintf("state %d", s.State))
	}
	if s.Token >= 0 {
		parts = append(parts, fmt.Sprintf("token %d", s.Token))
	}
	if s.Rule >= 0 {
		parts = append(parts, fmt.Sprintf("rule %d", s.Rule))
	}
	if len(parts) == 0 {
		return "<model>"
	}
	return strings.Join(parts, ": ")
}

// less orders sites by file, state, token, rule.
func (s Site) less(o Site) bool {
	if s.File != o.File {
		return s.File < o.File
	}
	if s.State != o.State {
		return s.State < o.State
	}
	if s.Token != o.Token {
		return s.Token < o.Token
	}
	return s.Rule < o.Rule
}
