package entity

import "errors"

// Domain errors
var (
	// Ticket errors
	ErrTicketNotFound = errors.New("ticket not found")

	// Generation errors
	ErrModelResponse       = errors.New("model response is not extractable JSON")
	ErrStorageVerification = errors.New("stored ticket could not be read back")

	// Ingestion errors
	ErrNoDocuments = errors.New("no documents were successfully loaded")

	// Validation errors
	ErrMissingField  = errors.New("required field is missing")
	ErrInvalidFormat = errors.New("invalid format")
)
