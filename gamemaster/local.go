package gamemaster

import (
	"sticks/agent"
	"sticks/engine"
	"sticks/game"

	"github.com/rs/zerolog/log"
)

// PlayerVsPlayer runs one game between two outside move sources. No policy
// table is involved.
func PlayerVsPlayer(pile int, first, second agent.Agent, rules game.Rules, observers ...engine.Observer) (engine.Result, error) {
	e := engine.LocalEngine(first, second, rules)
	for _, o := range observers {
		e.Observe(o)
	}
	result, err := e.Run(pile)
	if err != nil {
		return engine.Result{}, err
	}
	log.Info().Msgf("player vs player on %d sticks won by %s", pile, result.Winner)
	return result, nil
}
