package policy

import (
	"testing"

	"sticks/game"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/require"
)

// lastToken always draws the last token, i.e. the largest move left.
type lastToken struct{}

func (lastToken) Intn(n int) int { return n - 1 }

// firstToken always draws the first token, i.e. the smallest move left.
type firstToken struct{}

func (firstToken) Intn(n int) int { return 0 }

func TestNewTable(t *testing.T) {
	t.Run("one token per legal move", func(t *testing.T) {
		table, err := NewTable(20)
		require.NoError(t, err)
		require.Equal(t, 20, table.Size())

		require.Equal(t, [3]int{1, 0, 0}, table.Counts(1))
		require.Equal(t, [3]int{1, 1, 0}, table.Counts(2))
		for pile := 3; pile <= 20; pile++ {
			require.Equal(t, [3]int{1, 1, 1}, table.Counts(pile), "Hat %d should be uniform", pile)
		}
	})

	t.Run("rejects non-positive sizes", func(t *testing.T) {
		_, err := NewTable(0)
		require.True(t, errors.Is(err, game.ErrInvalidPile))
	})
}

func TestSample(t *testing.T) {
	t.Run("drawing sets the token aside", func(t *testing.T) {
		table, _ := NewTable(5)
		var trajectory Trajectory

		m := table.Sample(5, lastToken{}, &trajectory)

		require.Equal(t, game.Move(3), m)
		require.Equal(t, [3]int{1, 1, 0}, table.Counts(5), "Drawn token should leave the hat")
		require.Equal(t, Trajectory{{Pile: 5, Move: 3}}, trajectory)
	})

	t.Run("drawing is weighted by count", func(t *testing.T) {
		table, _ := NewTable(5)
		table.hats[4] = [3]int{3, 0, 2}
		var trajectory Trajectory

		// Tokens are ordered 1,1,1,3,3
		require.Equal(t, game.Move(1), table.Sample(5, fixedToken(2), &trajectory))
		require.Equal(t, game.Move(3), table.Sample(5, fixedToken(2), &trajectory))
		require.Equal(t, [3]int{2, 0, 1}, table.Counts(5))
	})

	t.Run("drawn moves never exceed the pile", func(t *testing.T) {
		table, _ := NewTable(2)
		var trajectory Trajectory

		require.Equal(t, game.Move(1), table.Sample(1, lastToken{}, &trajectory))
		require.Equal(t, game.Move(2), table.Sample(2, lastToken{}, &trajectory))
	})

	t.Run("panics on an empty hat", func(t *testing.T) {
		table, _ := NewTable(1)
		var trajectory Trajectory
		table.Sample(1, firstToken{}, &trajectory)

		require.Panics(t, func() {
			table.Sample(1, firstToken{}, &trajectory)
		}, "Should panic when the hat is empty")
	})

	t.Run("panics outside the table", func(t *testing.T) {
		table, _ := NewTable(3)
		var trajectory Trajectory

		require.Panics(t, func() { table.Sample(4, firstToken{}, &trajectory) })
		require.Panics(t, func() { table.Sample(0, firstToken{}, &trajectory) })
	})
}

type fixedToken int

func (f fixedToken) Intn(n int) int { return int(f) }

func TestReinforce(t *testing.T) {
	t.Run("a win returns two tokens per drawn move", func(t *testing.T) {
		table, _ := NewTable(10)
		var trajectory Trajectory
		table.Sample(10, firstToken{}, &trajectory)
		table.Sample(7, lastToken{}, &trajectory)

		table.Reinforce(&trajectory, true)

		require.Equal(t, [3]int{2, 1, 1}, table.Counts(10), "Winning move should gain one token")
		require.Equal(t, [3]int{1, 1, 2}, table.Counts(7), "Winning move should gain one token")
		require.Empty(t, trajectory, "Trajectory should be used once")
	})

	t.Run("a loss does not return a move still in the hat", func(t *testing.T) {
		table, _ := NewTable(10)
		table.hats[9] = [3]int{3, 1, 1}
		var trajectory Trajectory
		table.Sample(10, firstToken{}, &trajectory)

		table.Reinforce(&trajectory, false)

		require.Equal(t, [3]int{2, 1, 1}, table.Counts(10), "Losing move should lose its token")
	})

	t.Run("a loss returns the last token of a move", func(t *testing.T) {
		table, _ := NewTable(10)
		var trajectory Trajectory
		table.Sample(10, firstToken{}, &trajectory)
		require.Equal(t, 0, table.Count(10, 1))

		table.Reinforce(&trajectory, false)

		require.Equal(t, [3]int{1, 1, 1}, table.Counts(10), "No legal move should die out")
	})

	t.Run("a loss on a present move changes nothing", func(t *testing.T) {
		table, _ := NewTable(10)
		table.hats[9] = [3]int{4, 2, 1}
		before := table.Counts(10)
		trajectory := Trajectory{{Pile: 10, Move: 2}}

		table.Reinforce(&trajectory, false)

		require.Equal(t, before, table.Counts(10))
	})

	t.Run("panics on moves larger than the pile", func(t *testing.T) {
		table, _ := NewTable(10)
		trajectory := Trajectory{{Pile: 2, Move: 3}}

		require.Panics(t, func() { table.Reinforce(&trajectory, true) })
	})
}

func TestRestore(t *testing.T) {
	table, _ := NewTable(6)
	table.hats[5] = [3]int{2, 5, 1}
	before := table.Clone()
	var trajectory Trajectory
	table.Sample(6, lastToken{}, &trajectory)
	table.Sample(4, firstToken{}, &trajectory)

	table.Restore(&trajectory)

	require.Equal(t, before, table)
	require.Empty(t, trajectory)
}

func TestReadingTheTable(t *testing.T) {
	table, _ := NewTable(4)
	table.hats[3] = [3]int{1, 3, 0}

	require.Equal(t, 4, table.Total(4))
	require.InDelta(t, 0.75, table.Frequency(4, 2), 1e-9)
	require.Equal(t, 0.0, table.Frequency(4, 3))
	require.Equal(t, game.Move(2), table.Best(4))
	require.Equal(t, game.Move(1), table.Best(3), "Ties go to the smaller move")
	require.Equal(t, 0, table.Count(4, 4))

	t.Run("clones are independent", func(t *testing.T) {
		clone := table.Clone()
		var trajectory Trajectory
		clone.Sample(4, firstToken{}, &trajectory)

		require.Equal(t, [3]int{1, 3, 0}, table.Counts(4))
		require.Equal(t, [3]int{0, 3, 0}, clone.Counts(4))
	})
}
