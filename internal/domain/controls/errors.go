package controls

import "errors"

var (
	ErrControlNotFound  = errors.New("control instance not found")
	ErrAlreadyActivated = errors.New("library control is already activated")
)
