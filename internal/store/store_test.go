package store

import (
	"errors"
	"path/filepath"
	"sync"
	"testing"
)

func openTestSQLite(t *testing.T) *SQLite {
	t.Helper()
	s, err := OpenSQLite(filepath.Join(t.TempDir(), "lines.db"))
	if err != nil {
		t.Fatalf("OpenSQLite: %v", err)
	}
	t.Cleanup(func() { s.Close() })
	return s
}

func TestStores(t *testing.T) {
	stores := map[string]func(t *testing.T) Store{
		"memory": func(t *testing.T) Store { return NewMemory() },
		"sqlite": func(t *testing.T) Store { return openTestSQLite(t) },
	}

	for name, open := range stores {
		t.Run(name, func(t *testing.T) {
			s := open(t)

			if _, err := s.Get("lines_missing"); !errors.Is(err, ErrNotFound) {
				t.Fatalf("Get missing: got err %v, want ErrNotFound", err)
			}

			if err := s.Set("lines_default", `{"numPoints":12}`); err != nil {
				t.Fatalf("Set: %v", err)
			}
			got, err := s.Get("lines_default")
			if err != nil {
				t.Fatalf("Get: %v", err)
			}
			if got != `{"numPoints":12}` {
				t.Errorf("Get = %q", got)
			}

			if err := s.Set("lines_default", `{"numPoints":3}`); err != nil {
				t.Fatalf("Set overwrite: %v", err)
			}
			got, _ = s.Get("lines_default")
			if got != `{"numPoints":3}` {
				t.Errorf("Get after overwrite = %q", got)
			}

			// Keys are independent namespaces.
			if _, err := s.Get("other_default"); !errors.Is(err, ErrNotFound) {
				t.Errorf("Get other namespace: got err %v, want ErrNotFound", err)
			}
		})
	}
}

func TestSQLitePersistsAcrossReopen(t *testing.T) {
	path := filepath.Join(t.TempDir(), "lines.db")

	s, err := OpenSQLite(path)
	if err != nil {
		t.Fatalf("OpenSQLite: %v", err)
	}
	if err := s.Set("lines_x", "value"); err != nil {
		t.Fatalf("Set: %v", err)
	}
	s.Close()

	s, err = OpenSQLite(path)
	if err != nil {
		t.Fatalf("reopen: %v", err)
	}
	defer s.Close()
	got, err := s.Get("lines_x")
	if err != nil || got != "value" {
		t.Fatalf("Get after reopen = %q, %v", got, err)
	}
}

func TestMemoryConcurrentAccess(t *testing.T) {
	m := NewMemory()
	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < 100; j++ {
				_ = m.Set("k", "v")
				_, _ = m.Get("k")
			}
		}()
	}
	wg.Wait()
	if got, err := m.Get("k"); err != nil || got != "v" {
		t.Fatalf("Get = %q, %v", got, err)
	}
}

func TestOpen(t *testing.T) {
	mem, err := Open("")
	if err != nil {
		t.Fatal(err)
	}
	if _, ok := mem.(*Memory); !ok {
		t.Errorf("Open(\"\") = %T, want *Memory", mem)
	}
	if err := mem.Close(); err != nil {
		t.Error(err)
	}

	db, err := Open(filepath.Join(t.TempDir(), "lines.db"))
	if err != nil {
		t.Fatal(err)
	}
	defer db.Close()
	if _, ok := db.(*SQLite); !ok {
		t.Errorf("Open(path) = %T, want *SQLite", db)
	}
}
