package entity

import "errors"

var ErrIdentityMismatch = errors.New("resource identity mismatch")
