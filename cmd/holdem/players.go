package main

import (
	"fmt"
	"math/rand"

	"github.com/vctt94/holdemengine/pkg/config"
	"github.com/vctt94/holdemengine/pkg/poker"
)

// buildPlayers seats the configured roster. Bots draw their randomness from
// rng so a seeded run is reproducible; the human seat answers through
// requests.
func buildPlayers(cfg *config.Config, rng *rand.Rand, requests chan<- poker.DecisionRequest) ([]poker.Player, error) {
	players := make([]poker.Player, 0, len(cfg.Players))
	for _, pc := range cfg.Players {
		var d poker.Decider
		switch pc.Kind {
		case config.KindBot:
			d = poker.NewRuleBot(pc.Aggression, rand.New(rand.NewSource(rng.Int63())))
		case config.KindPassive:
			d = poker.PassiveDecider{}
		case config.KindHuman:
			if requests == nil {
				return nil, fmt.Errorf("player %s is human but no interactive surface is available", pc.Name)
			}
			d = poker.NewChannelDecider(requests)
		default:
			return nil, fmt.Errorf("player %s has unknown kind %q", pc.Name, pc.Kind)
		}
		players = append(players, poker.NewPlayer(pc.Name, pc.Chips, d))
	}
	return players, nil
}

// humanName returns the interactive seat's name, or "".
func humanName(cfg *config.Config) string {
	for _, p := range cfg.Players {
		if p.Kind == config.KindHuman {
			return p.Name
		}
	}
	return ""
}
