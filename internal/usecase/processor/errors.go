package processor

import "errors"

var ErrDecode = errors.New("image decoding failed")
