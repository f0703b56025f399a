package storage

import (
	"context"
	"testing"
)

func TestFilesystemStoreRoundTrip(t *testing.T) {
	store, err := NewFilesystemStore(t.TempDir())
	if err != nil {
		t.Fatalf("NewFilesystemStore: %v", err)
	}

	ctx := context.Background()
	data := []byte("receipt bytes")

	location, err := store.Put(ctx, "42/receipt.png", data, "image/png")
	if err != nil {
		t.Fatalf("Put: %v", err)
	}
	if location == "" {
		t.Error("expected a location")
	}

	got, err := store.Get(ctx, "42/receipt.png")
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if string(got) != string(data) {
		t.Errorf("round trip mismatch: %q", got)
	}

	if err = store.Delete(ctx, "42/receipt.png"); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	if _, err = store.Get(ctx, "42/receipt.png"); err == nil {
		t.Error("expected error reading deleted object")
	}

	// Deleting a missing key is not an error.
	if err = store.Delete(ctx, "42/receipt.png"); err != nil {
		t.Errorf("Delete of missing key: %v", err)
	}
}

func TestFilesystemStoreRejectsTraversal(t *testing.T) {
	dir := t.TempDir()
	store, err := NewFilesystemStore(dir)
	if err != nil {
		t.Fatalf("NewFilesystemStore: %v", err)
	}

	if _, err := store.Put(context.Background(), "../outside.txt", []byte("x"), "text/plain"); err != nil {
		t.Fatalf("Put: %v", err)
	}

	// The write must land inside the storage dir.
	if _, err := store.Get(context.Background(), "outside.txt"); err != nil {
		t.Errorf("expected traversal key to be flattened into the dir: %v", err)
	}
}
