package export

import "errors"

var ErrEmptySource = errors.New("empty source image")
