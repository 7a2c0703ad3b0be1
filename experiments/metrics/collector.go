package metrics

import (
	"time"

	"sticks/game"
)

// TrainingMetric summarises one self-play training session.
type TrainingMetric struct {
	Rounds     int
	Moves      int
	FirstWins  int // Rounds won by the agent moving first
	SecondWins int
	StartTime  time.Time
	Duration   time.Duration
}

// MeanGameLength is the average number of moves per round.
func (m TrainingMetric) MeanGameLength() float64 {
	if m.Rounds == 0 {
		return 0
	}
	return float64(m.Moves) / float64(m.Rounds)
}

type Collector interface {
	Start()
	AddRound(winner game.Player, moves int)
	Complete() TrainingMetric
}

// Training sessions run on a single goroutine, so the collector needs no
// synchronisation.
type collector struct {
	metric TrainingMetric
}

func NewCollector() Collector {
	return &collector{}
}

func (c *collector) Start() {
	c.metric = TrainingMetric{StartTime: time.Now()}
}

func (c *collector) AddRound(winner game.Player, moves int) {
	c.metric.Rounds++
	c.metric.Moves += moves
	switch winner {
	case game.Player1:
		c.metric.FirstWins++
	case game.Player2:
		c.metric.SecondWins++
	}
}

func (c *collector) Complete() TrainingMetric {
	c.metric.Duration = time.Since(c.metric.StartTime)
	return c.metric
}

type dummyCollector struct{}

func NewDummyCollector() Collector {
	return &dummyCollector{}
}

func (c *dummyCollector) Start()                    {}
func (c *dummyCollector) AddRound(game.Player, int) {}
func (c *dummyCollector) Complete() TrainingMetric  { return TrainingMetric{} }
