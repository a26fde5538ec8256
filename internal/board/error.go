package board

import "errors"

var ErrInvalidArgument = errors.New("invalid argument")
