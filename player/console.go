package player

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"

	"sticks/agent"
	"sticks/engine"
	"sticks/game"

	"github.com/pkg/errors"
)

// Console asks a human for input, reprompting until the answer is valid.
// All seats share one Console so they read from the same buffered input.
type Console struct {
	scanner *bufio.Scanner
	out     io.Writer
}

// NewConsole reads answers from in and writes prompts to out.
func NewConsole(in io.Reader, out io.Writer) *Console {
	return &Console{
		scanner: bufio.NewScanner(in),
		out:     out,
	}
}

// readLine prints question and returns the next line, or io.EOF once the
// input is exhausted.
func (c *Console) readLine(question string) (string, error) {
	fmt.Fprint(c.out, question)
	if !c.scanner.Scan() {
		if err := c.scanner.Err(); err != nil {
			return "", errors.Wrap(err, "failed to read input")
		}
		return "", io.EOF
	}
	return strings.TrimSpace(c.scanner.Text()), nil
}

// readNumber reprompts until the answer is a non-negative integer.
func (c *Console) readNumber(question string) (int, error) {
	for {
		line, err := c.readLine(question)
		if err != nil {
			return 0, err
		}
		if n, ok := parseDigits(line); ok {
			return n, nil
		}
		fmt.Fprintln(c.out, "You must enter a numerical value. Please try again.")
	}
}

func parseDigits(s string) (int, bool) {
	if s == "" {
		return 0, false
	}
	for _, r := range s {
		if r < '0' || r > '9' {
			return 0, false
		}
	}
	n, err := strconv.Atoi(s)
	return n, err == nil
}

// AskMove asks who for a number of sticks until the answer is legal on pile.
func (c *Console) AskMove(who game.Player, pile int) (game.Move, error) {
	upper := min(game.MaxTake, pile)
	question := fmt.Sprintf("%s: How many sticks do you want to take (1-%d)? ", SeatName(who), upper)
	for {
		n, err := c.readNumber(question)
		if err != nil {
			return 0, err
		}
		if game.IsLegal(pile, game.Move(n)) {
			return game.Move(n), nil
		}
		fmt.Fprintf(c.out, "Please enter a number between 1 and %d\n", upper)
	}
}

// AskInt asks until the answer lies within lo..hi.
func (c *Console) AskInt(question string, lo, hi int) (int, error) {
	for {
		n, err := c.readNumber(question)
		if err != nil {
			return 0, err
		}
		if n >= lo && n <= hi {
			return n, nil
		}
		fmt.Fprintf(c.out, "Please enter a number between %d and %d: \n", lo, hi)
	}
}

// AskYesNo accepts 1/yes and 2/no in any case.
func (c *Console) AskYesNo(question string) (bool, error) {
	prompt := question + "\n1: Yes\n2: No\n"
	for {
		line, err := c.readLine(prompt)
		if err != nil {
			return false, err
		}
		switch strings.ToLower(line) {
		case "1", "yes":
			return true, nil
		case "2", "no":
			return false, nil
		}
	}
}

// Seat returns an agent that asks the human at seat who for every move.
func (c *Console) Seat(who game.Player) agent.Agent {
	return agent.Func(func(state game.State) (game.Move, error) {
		return c.AskMove(who, state.Pile)
	})
}

// Narrate returns an observer printing each move and the sticks left. The
// seat ai, if any, is announced as the computer.
func (c *Console) Narrate(ai game.Player) engine.Observer {
	return func(u engine.Update, state game.State) {
		name := SeatName(u.Player)
		if u.Player == ai {
			name = "AI"
		}
		fmt.Fprintf(c.out, "%s takes %d sticks.\n", name, u.Move)
		fmt.Fprintf(c.out, "There are %d sticks on the board.\n\n", state.Pile)
	}
}

// SeatName is how a seat is addressed on the console.
func SeatName(p game.Player) string {
	switch p {
	case game.Player1:
		return "Player 1"
	case game.Player2:
		return "Player 2"
	default:
		return "Player"
	}
}
