package backup

import (
	"archive/zip"
	"context"
	"encoding/json"
	"io"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"go.uber.org/zap"
)

type fakeRows struct {
	fields []pgconn.FieldDescription
	values [][]any
	pos    int
}

func (f *fakeRows) Close()                                       {}
func (f *fakeRows) Err() error                                   { return nil }
func (f *fakeRows) CommandTag() pgconn.CommandTag                { return pgconn.CommandTag{} }
func (f *fakeRows) FieldDescriptions() []pgconn.FieldDescription { return f.fields }
func (f *fakeRows) Next() bool {
	f.pos++
	return f.pos <= len(f.values)
}
func (f *fakeRows) Scan(dest ...any) error { return nil }
func (f *fakeRows) Values() ([]any, error) { return f.values[f.pos-1], nil }
func (f *fakeRows) RawValues() [][]byte    { return nil }
func (f *fakeRows) Conn() *pgx.Conn        { return nil }

type fakePool struct {
	rowsByTable map[string][][]any
}

func (f *fakePool) Begin(ctx context.Context) (pgx.Tx, error) { return nil, nil }
func (f *fakePool) BeginTx(ctx context.Context, txOptions pgx.TxOptions) (pgx.Tx, error) {
	return nil, nil
}
func (f *fakePool) Exec(ctx context.Context, sql string, arguments ...any) (pgconn.CommandTag, error) {
	return pgconn.CommandTag{}, nil
}
func (f *fakePool) Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error) {
	for table, values := range f.rowsByTable {
		if sql == "SELECT * FROM "+table {
			return &fakeRows{
				fields: []pgconn.FieldDescription{{Name: "id"}, {Name: "name"}},
				values: values,
			}, nil
		}
	}
	return &fakeRows{fields: []pgconn.FieldDescription{{Name: "id"}}}, nil
}
func (f *fakePool) QueryRow(ctx context.Context, sql string, args ...any) pgx.Row { return nil }
func (f *fakePool) Close()                                                        {}

func TestJobRunWritesArchive(t *testing.T) {
	dir := t.TempDir()
	pool := &fakePool{rowsByTable: map[string][][]any{
		"users": {{int64(1), "sam"}, {int64(2), "alex"}},
		"gigs":  {{int64(10), "delivery"}},
	}}

	job := NewJob(pool, dir, 14, zap.NewNop())

	result, err := job.Run(context.Background())
	if err != nil {
		t.Fatalf("Run: %v", err)
	}

	if result.RowCounts["users"] != 2 || result.RowCounts["gigs"] != 1 {
		t.Errorf("unexpected row counts: %+v", result.RowCounts)
	}

	zr, err := zip.OpenReader(result.Archive)
	if err != nil {
		t.Fatalf("archive unreadable: %v", err)
	}
	defer zr.Close()

	if len(zr.File) != len(tables) {
		t.Errorf("expected %d entries, got %d", len(tables), len(zr.File))
	}

	for _, file := range zr.File {
		if file.Name != "users.json" {
			continue
		}
		rc, err := file.Open()
		if err != nil {
			t.Fatalf("open users.json: %v", err)
		}
		raw, _ := io.ReadAll(rc)
		rc.Close()

		var rows []map[string]any
		if err = json.Unmarshal(raw, &rows); err != nil {
			t.Fatalf("users.json not valid JSON: %v", err)
		}
		if len(rows) != 2 || rows[0]["name"] != "sam" {
			t.Errorf("unexpected users dump: %+v", rows)
		}
	}
}

func TestJobPrunesOldArchives(t *testing.T) {
	dir := t.TempDir()

	old := filepath.Join(dir, archivePrefix+"2020-01-01T00-00-00.zip")
	if err := os.WriteFile(old, []byte("stale"), 0o644); err != nil {
		t.Fatal(err)
	}
	stale := time.Now().Add(-30 * 24 * time.Hour)
	if err := os.Chtimes(old, stale, stale); err != nil {
		t.Fatal(err)
	}

	// Unrelated files are left alone regardless of age.
	other := filepath.Join(dir, "notes.txt")
	if err := os.WriteFile(other, []byte("keep"), 0o644); err != nil {
		t.Fatal(err)
	}
	if err := os.Chtimes(other, stale, stale); err != nil {
		t.Fatal(err)
	}

	job := NewJob(&fakePool{}, dir, 14, zap.NewNop())

	result, err := job.Run(context.Background())
	if err != nil {
		t.Fatalf("Run: %v", err)
	}

	if result.Pruned != 1 {
		t.Errorf("expected 1 pruned archive, got %d", result.Pruned)
	}
	if _, err = os.Stat(old); !os.IsNotExist(err) {
		t.Error("stale archive should be gone")
	}
	if _, err = os.Stat(other); err != nil {
		t.Error("unrelated file should survive pruning")
	}
	if _, err = os.Stat(result.Archive); err != nil {
		t.Error("fresh archive should exist")
	}
}
