// Package backup dumps the ledger tables to compressed archives and prunes
// old ones. Failures are logged, never fatal: a missed backup must not take
// the service down.
package backup

import (
	"archive/zip"
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"go.uber.org/zap"

	"gigflow.io/ledger/driver"
)

const (
	defaultRetentionDays = 14
	archivePrefix        = "ledger-backup-"
)

var tables = []string{"users", "gigs", "expenses", "mileage_logs", "receipts"}

// Result describes one completed backup run.
type Result struct {
	Archive   string         `json:"archive"`
	RowCounts map[string]int `json:"row_counts"`
	Pruned    int            `json:"pruned"`
	Took      time.Duration  `json:"took"`
}

type Job struct {
	conn      driver.PostgresPool
	dir       string
	retention time.Duration
	logger    *zap.Logger
}

func NewJob(conn driver.PostgresPool, dir string, retentionDays int, logger *zap.Logger) *Job {

	if retentionDays <= 0 {
		retentionDays = defaultRetentionDays
	}

	return &Job{
		conn:      conn,
		dir:       dir,
		retention: time.Duration(retentionDays) * 24 * time.Hour,
		logger:    logger,
	}
}

// Run dumps every table to a JSON entry inside a timestamped zip, then
// prunes archives older than the retention window.
func (j *Job) Run(ctx context.Context) (*Result, error) {

	started := time.Now()

	if err := os.MkdirAll(j.dir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create backup dir: %w", err)
	}

	name := archivePrefix + started.UTC().Format("2006-01-02T15-04-05") + ".zip"
	path := filepath.Join(j.dir, name)

	counts, err := j.writeArchive(ctx, path)
	if err != nil {
		// A partial archive is worse than none.
		if rmErr := os.Remove(path); rmErr != nil && !os.IsNotExist(rmErr) {
			j.logger.Warn("failed to remove partial backup", zap.Error(rmErr))
		}
		return nil, err
	}

	pruned := j.prune()

	result := &Result{
		Archive:   path,
		RowCounts: counts,
		Pruned:    pruned,
		Took:      time.Since(started),
	}

	j.logger.Info("backup completed",
		zap.String("archive", path),
		zap.Int("pruned", pruned),
		zap.Duration("took", result.Took))

	return result, nil
}

func (j *Job) writeArchive(ctx context.Context, path string) (map[string]int, error) {

	file, err := os.Create(path)
	if err != nil {
		return nil, fmt.Errorf("failed to create archive: %w", err)
	}
	defer file.Close()

	zw := zip.NewWriter(file)
	counts := make(map[string]int, len(tables))

	for _, table := range tables {
		rows, err := j.dumpTable(ctx, table)
		if err != nil {
			zw.Close()
			return nil, fmt.Errorf("failed to dump %s: %w", table, err)
		}
		counts[table] = len(rows)

		entry, err := zw.Create(table + ".json")
		if err != nil {
			zw.Close()
			return nil, fmt.Errorf("failed to create archive entry for %s: %w", table, err)
		}

		enc := json.NewEncoder(entry)
		if err = enc.Encode(rows); err != nil {
			zw.Close()
			return nil, fmt.Errorf("failed to encode %s: %w", table, err)
		}
	}

	if err = zw.Close(); err != nil {
		return nil, fmt.Errorf("failed to finalize archive: %w", err)
	}

	return counts, nil
}

// dumpTable captures a table generically: column names from the row
// description, values as returned by the driver.
func (j *Job) dumpTable(ctx context.Context, table string) ([]map[string]any, error) {

	rows, err := j.conn.Query(ctx, "SELECT * FROM "+table)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	fields := rows.FieldDescriptions()
	out := make([]map[string]any, 0)

	for rows.Next() {
		values, err := rows.Values()
		if err != nil {
			return nil, err
		}

		record := make(map[string]any, len(fields))
		for i, fd := range fields {
			record[fd.Name] = values[i]
		}
		out = append(out, record)
	}

	return out, rows.Err()
}

// prune removes archives older than the retention window, judged by mtime.
func (j *Job) prune() int {

	entries, err := os.ReadDir(j.dir)
	if err != nil {
		j.logger.Warn("failed to read backup dir for pruning", zap.Error(err))
		return 0
	}

	cutoff := time.Now().Add(-j.retention)
	pruned := 0

	for _, entry := range entries {
		if entry.IsDir() || !strings.HasPrefix(entry.Name(), archivePrefix) {
			continue
		}

		info, err := entry.Info()
		if err != nil {
			continue
		}
		if info.ModTime().After(cutoff) {
			continue
		}

		if err = os.Remove(filepath.Join(j.dir, entry.Name())); err != nil {
			j.logger.Warn("failed to prune old backup", zap.String("file", entry.Name()), zap.Error(err))
			continue
		}
		pruned++
	}

	return pruned
}
