package service

import (
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/google/uuid"
)

var (
	// ErrNotFound is returned when the requested entity or relation does not exist
	ErrNotFound = errors.New("not found")
	// ErrAlreadyExists is returned when a favorite/cart/subscription pair already exists
	ErrAlreadyExists = errors.New("already exists")
	// ErrSelfSubscribe is returned when a user tries to subscribe to themselves
	ErrSelfSubscribe = errors.New("cannot subscribe to yourself")
	// ErrNotOwner is returned when a user mutates a recipe they do not own
	ErrNotOwner = errors.New("only the author may modify this recipe")
	// ErrEmptyIngredients is returned when a recipe carries no ingredients
	ErrEmptyIngredients = errors.New("at least one ingredient is required")
	// ErrInvalidCredentials is returned on failed login
	ErrInvalidCredentials = errors.New("invalid credentials")
)

// DuplicateIngredientsError reports which ingredient ids were repeated in a
// recipe payload.
type DuplicateIngredientsError struct {
	IDs []uuid.UUID
}

func (e *DuplicateIngredientsError) Error() string {
	ids := make([]string, len(e.IDs))
	for i, id := range e.IDs {
		ids[i] = id.String()
	}
	sort.Strings(ids)
	return fmt.Sprintf("ingredients must not repeat, duplicates: %s", strings.Join(ids, ", "))
}

// ValidationError carries a field-level message for 4xx responses
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}
