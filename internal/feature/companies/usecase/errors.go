package usecase

import "errors"

// ErrNoRepository is returned when persistence is requested without a database.
var ErrNoRepository = errors.New("companies: no database configured")
