package errors

import "errors"

var (
	ErrWrongStep = errors.New("operation is not available in the current step")

	ErrNoCategorySelected = errors.New("a booking category must be selected first")

	ErrCategoryNotOffered = errors.New("booking category is not offered")

	ErrUnknownField = errors.New("unknown field")

	ErrFieldNotEditable = errors.New("field cannot be edited in the current step")

	ErrSubmissionInFlight = errors.New("a submission is already in progress")

	ErrSubmissionFailed = errors.New("booking submission failed")

	ErrWizardCancelled = errors.New("wizard was cancelled")

	ErrWizardCompleted = errors.New("wizard is already complete")
)
