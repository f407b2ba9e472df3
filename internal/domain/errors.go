package domain

import "errors"

var (
	ErrNotFound         = errors.New("resource not found")
	ErrSessionNotFound  = errors.New("session not found")
	ErrAnalysisNotFound = errors.New("analysis not found")
	ErrRequestInvalid   = errors.New("analysis request is invalid")
	ErrEmptyFeedback    = errors.New("feedback payload is empty")
	ErrNotReviewable    = errors.New("analysis is not in a reviewable state")
	ErrStatusTransition = errors.New("analysis status cannot move backward")
)
