package store

import (
	"errors"
	"strings"
	"testing"
)

func TestValidUsername(t *testing.T) {
	cases := map[string]bool{
		"alice":                 true,
		"bot_7":                 true,
		"j.doe-2":               true,
		"":                      false,
		"two words":             false,
		"émile":                 false,
		"semi;colon":            false,
		strings.Repeat("a", 64): true,
		strings.Repeat("a", 65): false,
	}
	for name, want := range cases {
		if got := validUsername(name); got != want {
			t.Fatalf("validUsername(%q): expected %v, got %v", name, want, got)
		}
	}
}

func TestInvalidInputNamesFields(t *testing.T) {
	err := newValidator().Struct(newUser{Username: "bad name"})
	if err == nil {
		t.Fatalf("expected validation to fail")
	}
	wrapped := invalidInput("create user", err)
	if !errors.Is(wrapped, ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput, got %v", wrapped)
	}
	for _, part := range []string{"username fails username", "password fails min", "salt fails min"} {
		if !strings.Contains(wrapped.Error(), part) {
			t.Fatalf("expected %q in %q", part, wrapped.Error())
		}
	}
}

func TestNewValidatorRegistersUsername(t *testing.T) {
	v := newValidator()
	if err := v.Var("alice", "username"); err != nil {
		t.Fatalf("expected alice to pass, got %v", err)
	}
	if err := v.Var("two words", "username"); err == nil {
		t.Fatalf("expected a spaced username to fail")
	}
}
