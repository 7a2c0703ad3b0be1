package game

import (
	"strings"

	"github.com/pkg/errors"
)

const (
	StandardRulesName = "standard"
	MisereRulesName   = "misere"
)

// StandardRules: whoever takes the last stick wins.
type StandardRules struct{}

func NewStandardRules() *StandardRules {
	return &StandardRules{}
}

func (sr *StandardRules) Name() string {
	return StandardRulesName
}

func (sr *StandardRules) Winner(lastMover Player) Player {
	return lastMover
}

func (sr *StandardRules) Losing(pile int) bool {
	return pile%(MaxTake+1) == 0
}

// MisereRules: whoever takes the last stick loses.
type MisereRules struct{}

func NewMisereRules() *MisereRules {
	return &MisereRules{}
}

func (mr *MisereRules) Name() string {
	return MisereRulesName
}

func (mr *MisereRules) Winner(lastMover Player) Player {
	return lastMover.Other()
}

func (mr *MisereRules) Losing(pile int) bool {
	return pile%(MaxTake+1) == 1
}

// RulesByName resolves a configured rule set; the empty name means standard.
func RulesByName(name string) (Rules, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "", StandardRulesName:
		return NewStandardRules(), nil
	case MisereRulesName:
		return NewMisereRules(), nil
	default:
		return nil, errors.Errorf("unknown rules %q", name)
	}
}
