package tenant

import (
	"errors"
	"testing"
)

func TestScope_As_RestoresOnSuccess(t *testing.T) {
	s := NewScope("origin")

	err := s.As("canonical", func() error {
		if s.Current() != "canonical" {
			t.Fatalf("expected canonical inside scope, got %s", s.Current())
		}
		return nil
	})
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if s.Current() != "origin" {
		t.Fatalf("expected origin after scope, got %s", s.Current())
	}
}

func TestScope_As_RestoresOnError(t *testing.T) {
	s := NewScope("origin")
	boom := errors.New("boom")

	err := s.As("canonical", func() error { return boom })
	if !errors.Is(err, boom) {
		t.Fatalf("expected boom, got %v", err)
	}
	if s.Current() != "origin" {
		t.Fatalf("expected origin after failed scope, got %s", s.Current())
	}
}

func TestScope_As_RestoresOnPanic(t *testing.T) {
	s := NewScope("origin")

	func() {
		defer func() { _ = recover() }()
		_ = s.As("canonical", func() error { panic("boom") })
	}()

	if s.Current() != "origin" {
		t.Fatalf("expected origin after panic, got %s", s.Current())
	}
}

func TestScope_As_Nested(t *testing.T) {
	s := NewScope("origin")

	err := s.As("canonical", func() error {
		return s.As("emea", func() error {
			if s.Current() != "emea" {
				t.Fatalf("expected emea, got %s", s.Current())
			}
			return nil
		})
	})
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if s.Current() != "origin" {
		t.Fatalf("expected origin, got %s", s.Current())
	}
}
