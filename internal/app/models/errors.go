package models

import "errors"

// Domain specific errors for the analysis flow.
var (
	ErrValidation         = errors.New("validation failed")
	ErrAnalysisInProgress = errors.New("an analysis is already running")
	ErrNoRoute            = errors.New("no route available")
)
