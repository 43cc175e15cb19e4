package operations

import (
	"bytes"
	"fmt"
	"image"
	"image/jpeg"
	"image/png"
	"math"

	"image-exporter/internal/domain"
)

const (
	qualityMin       = 0.01
	qualityMax       = 1.0
	searchIterations = 10
)

type Encoder struct{}

func NewEncoder() *Encoder {
	return &Encoder{}
}

func (e *Encoder) Encode(img image.Image, format domain.OutputFormat, ceilingBytes int64) ([]byte, error) {
	if format == domain.FormatPNG {
		return e.encodePNG(img)
	}

	if ceilingBytes <= 0 {
		return e.encodeJPEG(img, qualityMax)
	}

	return e.encodeJPEGUnderCeiling(img, ceilingBytes)
}

func (e *Encoder) encodePNG(img image.Image) ([]byte, error) {
	buf := new(bytes.Buffer)
	if err := png.Encode(buf, img); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrEncode, err)
	}
	return buf.Bytes(), nil
}

func (e *Encoder) encodeJPEG(img image.Image, quality float64) ([]byte, error) {
	buf := new(bytes.Buffer)
	if err := jpeg.Encode(buf, img, &jpeg.Options{Quality: jpegQuality(quality)}); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrEncode, err)
	}
	return buf.Bytes(), nil
}

func (e *Encoder) encodeJPEGUnderCeiling(img image.Image, ceiling int64) ([]byte, error) {
	data, err := e.encodeJPEG(img, qualityMax)
	if err != nil {
		return nil, err
	}
	if int64(len(data)) <= ceiling {
		return data, nil
	}

	var best []byte
	low, high := qualityMin, qualityMax

	for i := 0; i < searchIterations; i++ {
		mid := (low + high) / 2

		candidate, err := e.encodeJPEG(img, mid)
		if err != nil || int64(len(candidate)) > ceiling {
			high = mid
			continue
		}

		best = candidate
		low = mid
	}

	if best != nil {
		return best, nil
	}

	// Nothing fit within the window: the floor encoding ships even oversized.
	return e.encodeJPEG(img, qualityMin)
}

func jpegQuality(q float64) int {
	quality := int(math.Round(q * 100))
	if quality < 1 {
		return 1
	}
	if quality > 100 {
		return 100
	}
	return quality
}
