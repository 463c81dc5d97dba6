package storage

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestLocalStorePutAndDelete(t *testing.T) {
	store, err := NewLocalStore(t.TempDir())
	if err != nil {
		t.Fatalf("NewLocalStore: %v", err)
	}
	ctx := context.Background()

	url, err := store.Put(ctx, "applications/3/doc.pdf", strings.NewReader("%PDF"), "application/pdf")
	if err != nil {
		t.Fatalf("Put: %v", err)
	}
	if url != "/files/applications/3/doc.pdf" {
		t.Errorf("url = %q", url)
	}

	data, err := os.ReadFile(filepath.Join(store.Root(), "applications/3/doc.pdf"))
	if err != nil {
		t.Fatalf("reading stored file: %v", err)
	}
	if string(data) != "%PDF" {
		t.Errorf("stored content = %q", data)
	}

	if err := store.Delete(ctx, "applications/3/doc.pdf"); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	if _, err := os.Stat(filepath.Join(store.Root(), "applications/3/doc.pdf")); !os.IsNotExist(err) {
		t.Error("file still present after Delete")
	}

	// Deleting again is not an error.
	if err := store.Delete(ctx, "applications/3/doc.pdf"); err != nil {
		t.Errorf("second Delete: %v", err)
	}
}

func TestLocalStoreNeutralizesTraversal(t *testing.T) {
	root := t.TempDir()
	store, err := NewLocalStore(root)
	if err != nil {
		t.Fatalf("NewLocalStore: %v", err)
	}

	outside := filepath.Join(filepath.Dir(root), "escaped.txt")
	if _, err := store.Put(context.Background(), "../escaped.txt", strings.NewReader("x"), "text/plain"); err != nil {
		// Rejecting the key outright is fine too.
		return
	}
	if _, err := os.Stat(outside); err == nil {
		t.Fatal("traversal key wrote outside the root")
	}
}
