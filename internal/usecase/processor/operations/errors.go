package operations

import "errors"

var (
	ErrEncode    = errors.New("image encoding failed")
	ErrWatermark = errors.New("watermark rendering failed")
)
