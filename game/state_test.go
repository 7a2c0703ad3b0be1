package game

import (
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/require"
)

func TestNewState(t *testing.T) {
	t.Run("rejects empty and negative piles", func(t *testing.T) {
		for _, pile := range []int{0, -1} {
			_, err := NewState(pile)
			require.True(t, errors.Is(err, ErrInvalidPile), "Pile %d should be invalid", pile)
		}
	})

	t.Run("player 1 opens", func(t *testing.T) {
		s, err := NewState(10)

		require.NoError(t, err)
		require.Equal(t, State{Pile: 10, Turn: Player1}, s)
		require.False(t, s.GameOver())
		require.Equal(t, NoPlayer, s.Winner(NewStandardRules()), "No winner before the pile is empty")
	})
}

func TestLegalMoves(t *testing.T) {
	require.Equal(t, []Move{1}, LegalMoves(1))
	require.Equal(t, []Move{1, 2}, LegalMoves(2))
	require.Equal(t, []Move{1, 2, 3}, LegalMoves(3))
	require.Equal(t, []Move{1, 2, 3}, LegalMoves(100))
	require.Empty(t, LegalMoves(0))

	require.False(t, IsLegal(2, 3), "Cannot take more sticks than remain")
	require.False(t, IsLegal(10, 4), "Cannot take more than three sticks")
	require.False(t, IsLegal(10, 0), "Must take at least one stick")
}

func TestStatePlay(t *testing.T) {
	t.Run("taking sticks hands the turn over", func(t *testing.T) {
		s, _ := NewState(4)

		next, err := s.Play(3)

		require.NoError(t, err)
		require.Equal(t, State{Pile: 1, Turn: Player2, LastMover: Player1}, next)
		require.Equal(t, 4, s.Pile, "Play should not modify the original state")
	})

	t.Run("illegal moves are rejected", func(t *testing.T) {
		s, _ := NewState(2)

		_, err := s.Play(3)

		require.True(t, errors.Is(err, ErrIllegalMove))
	})

	t.Run("no moves after the last stick", func(t *testing.T) {
		s, _ := NewState(1)
		over, err := s.Play(1)
		require.NoError(t, err)

		_, err = over.Play(1)

		require.True(t, over.GameOver())
		require.Empty(t, over.LegalMoves())
		require.True(t, errors.Is(err, ErrGameOver))
	})
}

func TestRules(t *testing.T) {
	s, _ := NewState(1)
	over, _ := s.Play(1)

	t.Run("standard rules: last stick wins", func(t *testing.T) {
		require.Equal(t, Player1, over.Winner(NewStandardRules()))
	})

	t.Run("misere rules: last stick loses", func(t *testing.T) {
		require.Equal(t, Player2, over.Winner(NewMisereRules()))
	})

	t.Run("resolving by name", func(t *testing.T) {
		r, err := RulesByName("")
		require.NoError(t, err)
		require.Equal(t, StandardRulesName, r.Name())

		r, err = RulesByName(" Misere ")
		require.NoError(t, err)
		require.Equal(t, MisereRulesName, r.Name())

		_, err = RulesByName("chess")
		require.Error(t, err)
	})
}

func TestOptimalMove(t *testing.T) {
	t.Run("standard rules leave a multiple of four", func(t *testing.T) {
		rules := NewStandardRules()
		for pile := 1; pile <= 40; pile++ {
			m, ok := OptimalMove(pile, rules)
			if pile%4 == 0 {
				require.False(t, ok, "Pile %d is lost against perfect play", pile)
				continue
			}
			require.True(t, ok)
			require.Equal(t, 0, (pile-int(m))%4, "Pile %d should leave a multiple of four", pile)
		}
	})

	t.Run("misere rules leave one more than a multiple of four", func(t *testing.T) {
		rules := NewMisereRules()
		for pile := 1; pile <= 40; pile++ {
			m, ok := OptimalMove(pile, rules)
			if pile%4 == 1 {
				require.False(t, ok, "Pile %d is lost against perfect play", pile)
				continue
			}
			require.True(t, ok)
			require.Equal(t, 1, (pile-int(m))%4, "Pile %d should leave 4k+1", pile)
		}
	})
}
