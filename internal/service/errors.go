package service

import (
	"errors"
	"fmt"
)

var (
	ErrInvalidArgument = errors.New("invalid argument")
	ErrInvalidFormat   = errors.New("invalid format")

	ErrInvalidLimit = fmt.Errorf("%w: rounding limit must be positive", ErrInvalidArgument)
	ErrInvalidDate  = fmt.Errorf("%w: date must be YYYY-MM-DD", ErrInvalidFormat)
)
