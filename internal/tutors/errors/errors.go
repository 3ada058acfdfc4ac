package errors

import "errors"

var ErrNotFound = errors.New("tutor not found")
