package errs

import "errors"

var ErrNotFound = errors.New("not found")
var ErrInvalidState = errors.New("invalid state for operation")
var ErrInsufficientBalance = errors.New("insufficient balance")
var ErrNotAuthorized = errors.New("not authorized")
var ErrAlreadyProcessed = errors.New("already processed")
var ErrUpstreamFailure = errors.New("upstream call failed")

var ErrUserNotFound = errors.New("user not found")
var ErrInvalidToken = errors.New("invalid token")
var ErrLoginAlreadyExists = errors.New("login already exists")
