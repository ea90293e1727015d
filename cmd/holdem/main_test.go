package main

import (
	"context"
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vctt94/holdemengine/pkg/config"
	"github.com/vctt94/holdemengine/pkg/poker"
)

func TestBuildPlayers(t *testing.T) {
	cfg, err := config.Parse([]byte(`
startingchips: 300
players:
  - {name: you, kind: human}
  - {name: rob, kind: bot, aggression: 0.7}
  - {name: pat, kind: passive, chips: 50}
`))
	require.NoError(t, err)
	require.NoError(t, cfg.Validate())

	requests := make(chan poker.DecisionRequest)
	players, err := buildPlayers(cfg, rand.New(rand.NewSource(1)), requests)
	require.NoError(t, err)
	require.Len(t, players, 3)

	assert.IsType(t, &poker.ChannelDecider{}, players[0].Decider())
	assert.IsType(t, &poker.RuleBot{}, players[1].Decider())
	assert.IsType(t, poker.PassiveDecider{}, players[2].Decider())
	assert.EqualValues(t, 300, players[0].Chips)
	assert.EqualValues(t, 50, players[2].Chips)
	assert.Equal(t, "you", humanName(cfg))

	_, err = buildPlayers(cfg, rand.New(rand.NewSource(1)), nil)
	assert.Error(t, err, "human seat needs a surface")
}

func TestHeadlessSession(t *testing.T) {
	cfg, err := config.Parse([]byte(`
players:
  - {name: a, kind: bot, aggression: 0.2}
  - {name: b, kind: bot, aggression: 0.9}
  - {name: c, kind: passive}
hands: 20
`))
	require.NoError(t, err)
	assert.Empty(t, humanName(cfg))

	rng := rand.New(rand.NewSource(42))
	players, err := buildPlayers(cfg, rng, nil)
	require.NoError(t, err)

	s, err := poker.NewSession(poker.NewEngine(poker.EngineConfig{}), players, poker.SessionConfig{
		Blinds: poker.Blinds{Small: cfg.SmallBlind, Big: cfg.BigBlind},
		Hands:  cfg.Hands,
		Rand:   rng,
	})
	require.NoError(t, err)
	require.NoError(t, s.Run(testContext(t)))

	var total int64
	for _, p := range s.Players() {
		total += p.Chips
	}
	assert.EqualValues(t, 3000, total)
	assert.LessOrEqual(t, s.HandsPlayed(), 20)
}

// testContext returns a context canceled when the test finishes
// (stand-in for testing.T.Context, which needs Go 1.24).
func testContext(t *testing.T) context.Context {
	ctx, cancel := context.WithCancel(context.Background())
	t.Cleanup(cancel)
	return ctx
}
