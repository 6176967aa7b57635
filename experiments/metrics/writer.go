package metrics

import (
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"time"
)

type SolveConfig struct {
	ID    int
	Size  int
	First string // Player to move at the root
}

type SolveRecord struct {
	Config SolveConfig
	Winner string // "" for a tie
	SolveMetric
}

type Writer struct {
	baseDir string
}

func NewWriter(root string) (*Writer, error) {
	// Create a subfolder named by current timestamp
	timestamp := time.Now().UTC().Format("20060102T150405Z")
	baseDir := filepath.Join(root, timestamp)
	err := os.MkdirAll(baseDir, 0755)
	if err != nil {
		return nil, fmt.Errorf("failed to create directory: %w", err)
	}

	return &Writer{
		baseDir: baseDir,
	}, nil
}

func (w *Writer) Dir() string {
	return w.baseDir
}

func (w *Writer) WriteSolveRecords(records []SolveRecord) error {
	path := filepath.Join(w.baseDir, "solve_records.csv")
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create solve records file: %w", err)
	}
	defer f.Close()

	writer := csv.NewWriter(f)

	header := []string{"id", "size", "first", "winner", "value", "nodes", "terminals", "evaluations", "build_duration", "solve_duration"}
	err = writer.Write(header)
	if err != nil {
		return fmt.Errorf("failed to write solve records header: %w", err)
	}

	for _, record := range records {
		row := []string{
			strconv.Itoa(record.Config.ID),
			strconv.Itoa(record.Config.Size),
			record.Config.First,
			record.Winner,
			strconv.FormatFloat(record.Value, 'g', -1, 64),
			strconv.Itoa(record.Nodes),
			strconv.Itoa(record.Terminals),
			strconv.Itoa(record.Evaluations),
			record.BuildDuration.String(),
			record.SolveDuration.String(),
		}
		err = writer.Write(row)
		if err != nil {
			return fmt.Errorf("failed to write solve record row: %w", err)
		}
	}

	writer.Flush()
	if err := writer.Error(); err != nil {
		return fmt.Errorf("failed to flush solve records: %w", err)
	}
	return nil
}
