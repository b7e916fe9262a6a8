package rag

import "errors"

var (
	// ErrBadDestination is returned when a routing decision is outside the
	// two enumerated destinations
	ErrBadDestination = errors.New("invalid routing destination")

	// ErrUnknownPersona is returned when no persona exists for a user id
	ErrUnknownPersona = errors.New("unknown persona")

	// ErrMissingCredential is returned by config validation when a required
	// service credential is absent
	ErrMissingCredential = errors.New("missing credential")

	// ErrEmptyCorpus is returned by ingestion when the data directory holds
	// no loadable documents
	ErrEmptyCorpus = errors.New("no documents found")
)
