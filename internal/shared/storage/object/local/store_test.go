package local

import (
	"context"
	"io"
	"strings"
	"testing"
)

func TestSaveOpenDelete(t *testing.T) {
	store := New(t.TempDir())

	key, size, _, err := store.Save(context.Background(), "user-1", "resume.txt", strings.NewReader("hello resume"))
	if err != nil {
		t.Fatalf("save: %v", err)
	}
	if size != int64(len("hello resume")) {
		t.Fatalf("expected size %d, got %d", len("hello resume"), size)
	}

	rc, err := store.Open(context.Background(), key)
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	data, err := io.ReadAll(rc)
	rc.Close()
	if err != nil {
		t.Fatalf("read: %v", err)
	}
	if string(data) != "hello resume" {
		t.Fatalf("unexpected content %q", data)
	}

	deleter := store.(interface {
		Delete(ctx context.Context, storageKey string) error
	})
	if err := deleter.Delete(context.Background(), key); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if _, err := store.Open(context.Background(), key); err == nil {
		t.Fatalf("expected open after delete to fail")
	}
}

func TestOpenRejectsTraversal(t *testing.T) {
	store := New(t.TempDir())
	if _, err := store.Open(context.Background(), "../outside"); err == nil {
		t.Fatalf("expected traversal key to be rejected")
	}
}
