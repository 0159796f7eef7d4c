package voting

import "errors"

var ErrMissingSigner = errors.New("request has no authenticated signer")
var ErrTextTooLong = errors.New("text field exceeds length limit")
