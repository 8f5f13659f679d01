package handlers

import (
	"errors"
	"fmt"

	"github.com/go-playground/validator/v10"

	"bikeshare-dashboard/internal/dataset"
	apperrors "bikeshare-dashboard/internal/errors"
	"bikeshare-dashboard/internal/services"
)

// toAppError maps loader and pipeline failures onto response codes.
func toAppError(err error) *apperrors.AppError {
	var appErr *apperrors.AppError
	if errors.As(err, &appErr) {
		return appErr
	}

	var schemaErr *dataset.SchemaError
	var validationErrs validator.ValidationErrors

	switch {
	case errors.Is(err, dataset.ErrDataNotFound):
		return apperrors.DataNotFound(err)
	case errors.Is(err, dataset.ErrEmptyDataset):
		return apperrors.EmptyDataset(err)
	case errors.As(err, &schemaErr):
		e := apperrors.Wrap(err, apperrors.CodeServiceUnavail, "The data file is malformed.")
		e.Details = schemaErr.Error()
		return e
	case errors.Is(err, services.ErrNotLoaded):
		return apperrors.ServiceUnavailable("The dataset has not been loaded yet.")
	case errors.Is(err, services.ErrUnknownVariant):
		return apperrors.NotFound("Unknown dashboard variant.")
	case errors.Is(err, services.ErrInvalidCriteria):
		e := apperrors.ValidationWrap(err, "Invalid filter selection.")
		e.Details = err.Error()
		return e
	case errors.As(err, &validationErrs):
		e := apperrors.ValidationWrap(err, "Invalid filter parameters.")
		e.Details = describeValidation(validationErrs)
		return e
	default:
		return apperrors.InternalWrap(err, "An unexpected error occurred")
	}
}

func describeValidation(errs validator.ValidationErrors) string {
	fe := errs[0]
	return fmt.Sprintf("%s must satisfy %s, got %q", fe.Field(), fe.Tag(), fmt.Sprint(fe.Value()))
}

// userMessage is the text shown on the page for a failed render.
func userMessage(err error) string {
	appErr := toAppError(err)
	switch appErr.Code {
	case apperrors.CodeDataNotFound:
		return "Data file not found. Make sure the dataset is available and try again."
	case apperrors.CodeEmptyDataset:
		return "The dataset is empty. There is nothing to display."
	case apperrors.CodeValidation:
		return appErr.Details
	case apperrors.CodeInternal:
		return "An unexpected error occurred."
	}
	if appErr.Details != "" {
		return appErr.Message + " " + appErr.Details
	}
	return appErr.Message
}
