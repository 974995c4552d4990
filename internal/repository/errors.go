package repository

import "errors"

var ErrNoRows = errors.New("no rows")
