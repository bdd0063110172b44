package apperr

import (
	"errors"
	"fmt"
	"net/http"
	"testing"
)

func TestStatusOf(t *testing.T) {
	tests := []struct {
		kind Kind
		want int
	}{
		{Validation, http.StatusBadRequest},
		{Conflict, http.StatusBadRequest},
		{Unauthorized, http.StatusUnauthorized},
		{NotFound, http.StatusNotFound},
		{Transport, http.StatusInternalServerError},
	}
	for _, tt := range tests {
		if got := StatusOf(New(tt.kind, "x")); got != tt.want {
			t.Errorf("StatusOf(kind %d) = %d, want %d", tt.kind, got, tt.want)
		}
	}
}

func TestKindOfUnclassified(t *testing.T) {
	if got := KindOf(errors.New("plain")); got != Transport {
		t.Errorf("KindOf(plain error) = %d, want Transport", got)
	}
}

func TestKindOfWrapped(t *testing.T) {
	inner := New(NotFound, "missing")
	outer := fmt.Errorf("loading: %w", inner)
	if got := KindOf(outer); got != NotFound {
		t.Errorf("KindOf(wrapped) = %d, want NotFound", got)
	}
	if got := MessageOf(outer); got != "missing" {
		t.Errorf("MessageOf(wrapped) = %q, want %q", got, "missing")
	}
}

func TestMessageOfUnclassified(t *testing.T) {
	if got := MessageOf(errors.New("db exploded")); got != "internal server error" {
		t.Errorf("MessageOf leaked internal detail: %q", got)
	}
}
