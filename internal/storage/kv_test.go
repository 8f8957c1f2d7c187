package storage

import (
	"bytes"
	"context"
	"errors"
	"path/filepath"
	"testing"
)

func kvBackends(t *testing.T) map[string]KV {
	t.Helper()
	fileKV, err := NewFileKV(t.TempDir())
	if err != nil {
		t.Fatalf("new file kv: %v", err)
	}
	sqliteKV, err := OpenSQLiteKV(filepath.Join(t.TempDir(), "zend-test.db"))
	if err != nil {
		t.Fatalf("open sqlite kv: %v", err)
	}
	t.Cleanup(func() { _ = sqliteKV.Close() })
	return map[string]KV{"file": fileKV, "sqlite": sqliteKV}
}

func TestKVMissingKey(t *testing.T) {
	ctx := context.Background()
	for name, kv := range kvBackends(t) {
		if _, err := kv.Get(ctx, "absent"); !errors.Is(err, ErrNotFound) {
			t.Fatalf("%s: expected ErrNotFound, got: %v", name, err)
		}
	}
}

func TestKVSetGetOverwrite(t *testing.T) {
	ctx := context.Background()
	for name, kv := range kvBackends(t) {
		if err := kv.Set(ctx, "slot", []byte("one")); err != nil {
			t.Fatalf("%s: set: %v", name, err)
		}
		if err := kv.Set(ctx, "slot", []byte("two")); err != nil {
			t.Fatalf("%s: overwrite: %v", name, err)
		}
		got, err := kv.Get(ctx, "slot")
		if err != nil {
			t.Fatalf("%s: get: %v", name, err)
		}
		if !bytes.Equal(got, []byte("two")) {
			t.Fatalf("%s: expected last write to win, got %q", name, got)
		}
	}
}

func TestKVDeleteIsIdempotent(t *testing.T) {
	ctx := context.Background()
	for name, kv := range kvBackends(t) {
		if err := kv.Set(ctx, "slot", []byte("value")); err != nil {
			t.Fatalf("%s: set: %v", name, err)
		}
		if err := kv.Delete(ctx, "slot"); err != nil {
			t.Fatalf("%s: delete: %v", name, err)
		}
		if err := kv.Delete(ctx, "slot"); err != nil {
			t.Fatalf("%s: second delete: %v", name, err)
		}
		if _, err := kv.Get(ctx, "slot"); !errors.Is(err, ErrNotFound) {
			t.Fatalf("%s: expected ErrNotFound after delete, got: %v", name, err)
		}
	}
}
