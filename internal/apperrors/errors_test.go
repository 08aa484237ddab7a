package apperrors

import (
	"errors"
	"fmt"
	"testing"

	"github.com/lib/pq"
)

func TestFromDB(t *testing.T) {
	if FromDB("op", nil) != nil {
		t.Error("nil should stay nil")
	}

	dup := FromDB("insert like", &pq.Error{Code: "23505"})
	if !IsAlreadyExists(dup) {
		t.Errorf("Unique violation should map to ErrAlreadyExists, got %v", dup)
	}

	denied := FromDB("delete article", &pq.Error{Code: "42501"})
	if !IsPermission(denied) {
		t.Errorf("Privilege rejection should map to ErrPermission, got %v", denied)
	}

	other := FromDB("query", errors.New("connection reset"))
	var pe *PersistenceError
	if !errors.As(other, &pe) {
		t.Fatalf("Unclassified errors should wrap as PersistenceError, got %T", other)
	}
	if pe.Op != "query" {
		t.Errorf("Op should be preserved, got %q", pe.Op)
	}
	if IsNotFound(other) || IsPermission(other) || IsAlreadyExists(other) {
		t.Error("PersistenceError must not match any sentinel kind")
	}
}

func TestSentinelWrapping(t *testing.T) {
	wrapped := fmt.Errorf("article abc: %w", ErrNotFound)
	if !IsNotFound(wrapped) {
		t.Error("Wrapped sentinel should still match")
	}
	if IsPermission(wrapped) {
		t.Error("Kinds must not cross-match")
	}
}
