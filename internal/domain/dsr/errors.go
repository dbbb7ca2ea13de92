package dsr

import "errors"

var ErrRequestNotFound = errors.New("dsr request not found")
