package poker

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuildPots(t *testing.T) {
	tests := []struct {
		name     string
		bets     []int64
		folded   []bool
		amounts  []int64
		eligible [][]int
	}{
		{
			name:     "single pot",
			bets:     []int64{100, 100, 100},
			folded:   []bool{false, false, false},
			amounts:  []int64{300},
			eligible: [][]int{{0, 1, 2}},
		},
		{
			// A=50 all-in, B=150 all-in, C=100 folded.
			name:     "side pots with a folded middle stack",
			bets:     []int64{50, 150, 100},
			folded:   []bool{false, false, true},
			amounts:  []int64{150, 100, 50},
			eligible: [][]int{{0, 1}, {1}, {1}},
		},
		{
			name:     "player who put nothing in is ignored",
			bets:     []int64{0, 40, 40},
			folded:   []bool{true, false, false},
			amounts:  []int64{80},
			eligible: [][]int{{1, 2}},
		},
		{
			name:     "three all-in levels",
			bets:     []int64{30, 70, 120, 120},
			folded:   []bool{false, false, false, false},
			amounts:  []int64{120, 120, 100},
			eligible: [][]int{{0, 1, 2, 3}, {1, 2, 3}, {2, 3}},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			stacks := make([]int64, len(tt.bets))
			for i, b := range tt.bets {
				stacks[i] = b
			}
			s := withBets(dealt(fixedStack(nil, stacks...), 0, 20), tt.bets, tt.folded)

			pots := BuildPots(s.Players)
			require.Len(t, pots, len(tt.amounts))
			var total int64
			for i, pot := range pots {
				assert.Equal(t, tt.amounts[i], pot.Amount, "pot %d", i)
				assert.Equal(t, tt.eligible[i], pot.Eligible, "pot %d", i)
				total += pot.Amount
			}
			assert.Equal(t, s.Pot, total)
		})
	}
}

func TestResolvePayoutsSidePots(t *testing.T) {
	// Seat 0 holds the nuts and wins the main pot; seat 1 takes the rest.
	s := dealt(fixedStack(nil, 50, 150, 100), 0, 20)
	s = setHoles(s, "2h 7d 9c Jd Kh", "Ac Ad", "Qs Qc", "3s 4s")
	s = withBets(s, []int64{50, 150, 100}, []bool{false, false, true})

	out, payouts, events := ResolvePayouts(s)

	require.Len(t, payouts, 3)
	assert.Equal(t, []int{0}, payouts[0].Winners)
	assert.Equal(t, []int64{150}, payouts[0].Shares)
	assert.Equal(t, Pair, payouts[0].Hand.Category)
	assert.Equal(t, []int{1}, payouts[1].Winners)
	assert.Equal(t, []int{1}, payouts[2].Winners)

	assert.EqualValues(t, 150, out.Players[0].Chips)
	assert.EqualValues(t, 150, out.Players[1].Chips)
	assert.EqualValues(t, 0, out.Players[2].Chips)
	assert.EqualValues(t, 300, out.TotalChips())

	require.Len(t, events, 3)
	assert.Equal(t, "Pot 150 to p0 (Pair)", events[0].Message)
	assert.Equal(t, "Pot 100 to p1 (uncontested)", events[1].Message)
	assert.Equal(t, []string{"p1"}, events[2].Winners)
}

func TestResolvePayoutsClearsHand(t *testing.T) {
	s := dealt(fixedStack(nil, 100, 100), 0, 20)
	s = withBets(s, []int64{40, 40}, []bool{false, true})

	out, _, _ := ResolvePayouts(s)

	assert.EqualValues(t, 0, out.Pot)
	assert.Empty(t, out.Community)
	assert.EqualValues(t, 0, out.CurrentBet)
	for _, p := range out.Players {
		assert.Nil(t, p.Hole)
		assert.False(t, p.Folded)
		assert.False(t, p.AllIn)
		assert.Zero(t, p.StreetBet)
		assert.Zero(t, p.HandBet)
	}
	assert.EqualValues(t, 140, out.Players[0].Chips)
	assert.EqualValues(t, 60, out.Players[1].Chips)
}

func TestResolvePayoutsOddChips(t *testing.T) {
	// Everyone plays the board. Seat 2 folded a single chip, so the first
	// tier holds 3 chips for two winners. The dealer is seat 1, so seat 2
	// and then seat 0 are first in line for odd chips.
	s := dealt(fixedStack(nil, 100, 100, 100), 1, 20)
	s = setHoles(s, "As Kd Qh Jc Th", "2c 3d", "2d 3c", "4c 5d")
	s = withBets(s, []int64{5, 5, 1}, []bool{false, false, true})

	out, payouts, _ := ResolvePayouts(s)

	require.Len(t, payouts, 2)
	assert.Equal(t, []int{0, 1}, payouts[0].Winners)
	assert.Equal(t, []int64{2, 1}, payouts[0].Shares)
	assert.Equal(t, []int64{4, 4}, payouts[1].Shares)
	assert.EqualValues(t, 101, out.Players[0].Chips)
	assert.EqualValues(t, 100, out.Players[1].Chips)
	assert.EqualValues(t, 99, out.Players[2].Chips)
}

func TestResolvePayoutsRefundsUnclaimedTier(t *testing.T) {
	// The only contributor to the top tier folded; it goes back to them.
	s := dealt(fixedStack(nil, 100, 50), 0, 20)
	s = withBets(s, []int64{100, 50}, []bool{true, false})

	out, payouts, events := ResolvePayouts(s)

	require.Len(t, payouts, 2)
	assert.False(t, payouts[0].Refund)
	assert.Equal(t, []int{1}, payouts[0].Winners)
	assert.True(t, payouts[1].Refund)
	assert.Equal(t, []int{0}, payouts[1].Winners)
	assert.Equal(t, EventRefund, events[1].Kind)

	assert.EqualValues(t, 50, out.Players[0].Chips)
	assert.EqualValues(t, 100, out.Players[1].Chips)
}
