package metrics

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"sticks/game"
	"sticks/policy"

	"github.com/google/uuid"
)

// SessionConfig describes one independent training session.
type SessionConfig struct {
	ID     int    `json:"id"`
	Pile   int    `json:"pile"`
	Rounds int    `json:"rounds"`
	Seed   uint64 `json:"seed"`
}

// SessionRecord is a trained session together with its evaluation.
type SessionRecord struct {
	SessionConfig
	TrainingMetric
	EvalGames int
	EvalWins  int
	// OptimalShare is the fraction of winnable piles whose best move is optimal
	OptimalShare float64
	Policy       *policy.Table
}

// WinRate is the share of evaluation games won.
func (r SessionRecord) WinRate() float64 {
	if r.EvalGames == 0 {
		return 0
	}
	return float64(r.EvalWins) / float64(r.EvalGames)
}

type Setup struct {
	Name      string          `json:"name"`
	RunID     string          `json:"runId"`
	Rules     string          `json:"rules"`
	Sessions  []SessionConfig `json:"sessions"`
	EvalGames int             `json:"evalGames"` // per session
	StartTime time.Time       `json:"startTime"`
	EndTime   time.Time       `json:"endTime"`
	Duration  time.Duration   `json:"duration"`
}

type Writer struct {
	baseDir string
	runID   string
}

// NewWriter creates <root>/<name>/<run id>/ for one experiment run.
func NewWriter(root, name string) (*Writer, error) {
	runID := uuid.NewString()
	baseDir := filepath.Join(root, name, runID)
	if err := os.MkdirAll(baseDir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create directory: %w", err)
	}

	return &Writer{
		baseDir: baseDir,
		runID:   runID,
	}, nil
}

func (w *Writer) Dir() string {
	return w.baseDir
}

func (w *Writer) RunID() string {
	return w.runID
}

func (w *Writer) WriteSetup(setup Setup) error {
	setup.RunID = w.runID
	setup.Duration = setup.EndTime.Sub(setup.StartTime)

	path := filepath.Join(w.baseDir, "setup.json")
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create setup file: %w", err)
	}
	defer f.Close()

	encoder := json.NewEncoder(f)
	encoder.SetIndent("", "  ")
	if err := encoder.Encode(setup); err != nil {
		return fmt.Errorf("failed to write setup: %w", err)
	}

	return nil
}

func (w *Writer) WriteSessionRecords(records []SessionRecord) error {
	path := filepath.Join(w.baseDir, "sessions.csv")
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create session records file: %w", err)
	}
	defer f.Close()

	header := []string{"id", "pile", "rounds", "seed", "first_wins", "second_wins", "mean_game_length",
		"duration", "eval_games", "eval_wins", "win_rate", "optimal_share"}
	rows := make([][]string, 0, len(records))
	for _, record := range records {
		rows = append(rows, []string{
			strconv.Itoa(record.ID),
			strconv.Itoa(record.Pile),
			strconv.Itoa(record.SessionConfig.Rounds),
			strconv.FormatUint(record.Seed, 10),
			strconv.Itoa(record.FirstWins),
			strconv.Itoa(record.SecondWins),
			strconv.FormatFloat(record.MeanGameLength(), 'f', 3, 64),
			record.Duration.String(),
			strconv.Itoa(record.EvalGames),
			strconv.Itoa(record.EvalWins),
			strconv.FormatFloat(record.WinRate(), 'f', 4, 64),
			strconv.FormatFloat(record.OptimalShare, 'f', 4, 64),
		})
	}

	if err := writeCSV(f, header, rows); err != nil {
		return fmt.Errorf("failed to write session records: %w", err)
	}
	return nil
}

// WritePolicy stores a session's trained table, one row per pile, with the
// frequency of the optimal move where one exists.
func (w *Writer) WritePolicy(id int, table *policy.Table, rules game.Rules) error {
	path := filepath.Join(w.baseDir, fmt.Sprintf("policy_%d.csv", id))
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create policy file for session %d: %w", id, err)
	}
	defer f.Close()

	header := []string{"pile", "ones", "twos", "threes", "optimal_move", "optimal_frequency"}
	rows := make([][]string, 0, table.Size())
	for pile := 1; pile <= table.Size(); pile++ {
		c := table.Counts(pile)
		optimal, frequency := "", ""
		if m, ok := game.OptimalMove(pile, rules); ok {
			optimal = strconv.Itoa(int(m))
			frequency = strconv.FormatFloat(table.Frequency(pile, m), 'f', 4, 64)
		}
		rows = append(rows, []string{
			strconv.Itoa(pile),
			strconv.Itoa(c[0]),
			strconv.Itoa(c[1]),
			strconv.Itoa(c[2]),
			optimal,
			frequency,
		})
	}

	if err := writeCSV(f, header, rows); err != nil {
		return fmt.Errorf("failed to write policy for session %d: %w", id, err)
	}
	return nil
}

// writeCSV writes the header and rows and reports any error the final flush
// hits.
func writeCSV(out io.Writer, header []string, rows [][]string) error {
	writer := csv.NewWriter(out)
	if err := writer.Write(header); err != nil {
		return fmt.Errorf("failed to write header: %w", err)
	}
	for _, row := range rows {
		if err := writer.Write(row); err != nil {
			return fmt.Errorf("failed to write row: %w", err)
		}
	}
	writer.Flush()
	if err := writer.Error(); err != nil {
		return fmt.Errorf("failed to flush: %w", err)
	}
	return nil
}
