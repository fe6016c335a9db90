package commands

import (
	"context"
	"errors"

	goerrors "github.com/goliatone/go-errors"
)

// Text codes attached to command failures.
const (
	TextCodeValidation = "AWESOME_COMMAND_INVALID"
	TextCodeCanceled   = "AWESOME_COMMAND_CANCELED"
	TextCodeTimeout    = "AWESOME_COMMAND_TIMEOUT"
	TextCodeContext    = "AWESOME_COMMAND_CONTEXT"
	TextCodeFailed     = "AWESOME_COMMAND_FAILED"
)

// categorise wraps err unless a handler already attached a category.
func categorise(err error, category goerrors.Category, message, code string) error {
	if err == nil {
		return nil
	}
	if goerrors.IsWrapped(err) {
		return err
	}
	return goerrors.Wrap(err, category, message).WithTextCode(code)
}

func wrapValidationError(err error) error {
	return categorise(err, goerrors.CategoryValidation, "command message invalid", TextCodeValidation)
}

func wrapContextError(err error) error {
	switch {
	case errors.Is(err, context.Canceled):
		return categorise(err, goerrors.CategoryCommand, "command cancelled", TextCodeCanceled)
	case errors.Is(err, context.DeadlineExceeded):
		return categorise(err, goerrors.CategoryCommand, "command timed out", TextCodeTimeout)
	default:
		return categorise(err, goerrors.CategoryCommand, "command context failed", TextCodeContext)
	}
}

func wrapExecuteError(err error) error {
	return categorise(err, goerrors.CategoryCommand, "command failed", TextCodeFailed)
}
