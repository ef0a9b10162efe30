package domain_test

import (
	"errors"
	"fmt"
	"strings"
	"testing"

	"github.com/GOKULKRISHNA7868/tas-insight/internal/domain"
)

func TestCollectionFetchError_WrapsCause(t *testing.T) {
	cause := fmt.Errorf("connection refused")
	err := &domain.CollectionFetchError{Collection: "tasks", Err: cause}

	if !strings.Contains(err.Error(), "tasks") {
		t.Errorf("error message should name the collection, got: %q", err.Error())
	}
	if !errors.Is(err, cause) {
		t.Error("errors.Is should find the wrapped cause")
	}
}

func TestEmployeeNotFoundError(t *testing.T) {
	err := &domain.EmployeeNotFoundError{EmployeeID: "emp-42"}
	if !strings.Contains(err.Error(), "emp-42") {
		t.Errorf("error message should contain employee ID, got: %q", err.Error())
	}
}

func TestErrorTypesImplementError(t *testing.T) {
	var _ error = &domain.CollectionFetchError{}
	var _ error = &domain.EmployeeNotFoundError{}
}
