package sample

import "errors"

var (
	// ErrEmpty is returned for a matrix without rows or columns.
	ErrEmpty = errors.New("sample: empty matrix")
	// ErrRagged is returned when columns or rows differ in length.
	ErrRagged = errors.New("sample: columns have different lengths")
	// ErrGroupLength is returned when a group label vector does not cover every column.
	ErrGroupLength = errors.New("sample: group labels do not match column count")
	// ErrUnknownUse is returned for an unrecognised missing-data mode.
	ErrUnknownUse = errors.New("sample: unknown use mode")
)
