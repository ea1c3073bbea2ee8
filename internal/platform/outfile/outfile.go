// Package outfile writes the output files of every flow: CSV tables, text
// excerpts and raw downloads.
package outfile

import (
	"encoding/csv"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
)

// WriteCSV writes header followed by rows to path, creating parent
// directories. The header is written even when rows is empty.
func WriteCSV(path string, header []string, rows [][]string) (err error) {
	f, err := create(path)
	if err != nil {
		return err
	}
	defer func() {
		if cerr := f.Close(); cerr != nil && err == nil {
			err = fmt.Errorf("close %s: %w", path, cerr)
		}
	}()

	w := csv.NewWriter(f)
	if err := w.Write(header); err != nil {
		return fmt.Errorf("write header %s: %w", path, err)
	}
	if err := w.WriteAll(rows); err != nil {
		return fmt.Errorf("write rows %s: %w", path, err)
	}
	slog.Info("saved csv", "path", path, "rows", len(rows))
	return nil
}

// WriteColumn writes a single-column CSV.
func WriteColumn(path, column string, values []string) error {
	rows := make([][]string, len(values))
	for i, v := range values {
		rows[i] = []string{v}
	}
	return WriteCSV(path, []string{column}, rows)
}

// WriteFile writes data to path, creating parent directories.
func WriteFile(path string, data []byte) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("create dir for %s: %w", path, err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}
	slog.Info("saved file", "path", path, "bytes", len(data))
	return nil
}

func create(path string) (*os.File, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("create dir for %s: %w", path, err)
	}
	f, err := os.Create(path)
	if err != nil {
		return nil, fmt.Errorf("create %s: %w", path, err)
	}
	return f, nil
}
