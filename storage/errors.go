package storage

import "errors"

var ErrRecordNotFound = errors.New("record not found in storage")
var ErrRecordAlreadyExists = errors.New("record already exists at derived address")
