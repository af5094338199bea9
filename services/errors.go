package services

import "errors"

var (
	ErrForbidden    = errors.New("forbidden")
	ErrInvalidInput = errors.New("invalid input")
	ErrNoRecipient  = errors.New("quotation has no customer email")
	ErrMailDisabled = errors.New("smtp is not configured")
)
