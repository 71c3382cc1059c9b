package service

import "errors"

// ErrInvalidInput marks errors caused by bad request parameters.
var ErrInvalidInput = errors.New("invalid input")
