package library

import (
	"context"
	"errors"
	"reflect"
	"testing"
)

type storeFactory struct {
	name string
	new  func(t *testing.T) (Store, func())
}

func TestStoreContract(t *testing.T) {
	factories := []storeFactory{
		{
			name: "memory",
			new: func(t *testing.T) (Store, func()) {
				s := NewMemoryStore()
				return s, func() { _ = s.Close() }
			},
		},
		{
			name: "redis",
			new: func(t *testing.T) (Store, func()) {
				t.Helper()
				return newRedisStoreForTest(t), func() {}
			},
		},
	}

	for _, f := range factories {
		t.Run(f.name, func(t *testing.T) {
			store, cleanup := f.new(t)
			defer cleanup()

			contractPutGet(t, store)
			contractList(t, store)
			contractDelete(t, store)
			contractInvalidName(t, store)
		})
	}
}

func contractPutGet(t *testing.T, s Store) {
	t.Helper()
	ctx := context.Background()
	data := []byte("Key Press|||KeyA|||0.1\n")

	if err := s.Put(ctx, "greet", data); err != nil {
		t.Fatalf("Put() error = %v", err)
	}
	got, err := s.Get(ctx, "greet")
	if err != nil {
		t.Fatalf("Get() error = %v", err)
	}
	if string(got) != string(data) {
		t.Errorf("Get() = %q, want %q", got, data)
	}

	if err := s.Put(ctx, "greet", []byte("Key Press|||KeyB|||0.2\n")); err != nil {
		t.Fatalf("overwrite Put() error = %v", err)
	}
	got, _ = s.Get(ctx, "greet")
	if string(got) != "Key Press|||KeyB|||0.2\n" {
		t.Errorf("Put() should overwrite, got %q", got)
	}

	if _, err := s.Get(ctx, "missing"); !errors.Is(err, ErrNotFound) {
		t.Errorf("Get(missing) error = %v, want ErrNotFound", err)
	}
}

func contractList(t *testing.T, s Store) {
	t.Helper()
	ctx := context.Background()
	for _, name := range []string{"zeta", "alpha"} {
		if err := s.Put(ctx, name, []byte("x")); err != nil {
			t.Fatal(err)
		}
	}
	names, err := s.List(ctx)
	if err != nil {
		t.Fatalf("List() error = %v", err)
	}
	want := []string{"alpha", "greet", "zeta"}
	if !reflect.DeepEqual(names, want) {
		t.Errorf("List() = %v, want %v", names, want)
	}
}

func contractDelete(t *testing.T, s Store) {
	t.Helper()
	ctx := context.Background()
	if err := s.Delete(ctx, "zeta"); err != nil {
		t.Fatalf("Delete() error = %v", err)
	}
	if _, err := s.Get(ctx, "zeta"); !errors.Is(err, ErrNotFound) {
		t.Errorf("Get after Delete error = %v, want ErrNotFound", err)
	}
	if err := s.Delete(ctx, "zeta"); !errors.Is(err, ErrNotFound) {
		t.Errorf("second Delete() error = %v, want ErrNotFound", err)
	}
	names, _ := s.List(ctx)
	for _, n := range names {
		if n == "zeta" {
			t.Error("deleted macro still listed")
		}
	}
}

func contractInvalidName(t *testing.T, s Store) {
	t.Helper()
	for _, name := range []string{"", "has space", "a/b"} {
		if err := s.Put(context.Background(), name, []byte("x")); err == nil {
			t.Errorf("Put(%q) should fail", name)
		}
	}
}
