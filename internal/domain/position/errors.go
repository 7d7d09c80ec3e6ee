package position

import "errors"

var (
	ErrPositionNotFound    = errors.New("position not found")
	ErrPositionInUse       = errors.New("position is assigned to employees")
	ErrPositionTitleExists = errors.New("position with this title already exists in the department")
)
