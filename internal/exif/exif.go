package exif

import (
	"context"
	"io"
	"time"

	"image-exporter/internal/domain"

	goexif "github.com/rwcarlsen/goexif/exif"
	"github.com/wb-go/wbf/zlog"
)

const DefaultReadTimeout = 2 * time.Second

type Reader struct {
	timeout time.Duration
	logger  *zlog.Zerolog
}

func NewReader(timeout time.Duration, logger *zlog.Zerolog) *Reader {
	if timeout <= 0 {
		timeout = DefaultReadTimeout
	}
	return &Reader{
		timeout: timeout,
		logger:  logger,
	}
}

func (r *Reader) Read(ctx context.Context, src io.Reader) domain.OrientationCode {
	result := make(chan domain.OrientationCode, 1)

	go func() {
		result <- r.decode(src)
	}()

	timer := time.NewTimer(r.timeout)
	defer timer.Stop()

	select {
	case code := <-result:
		return code
	case <-timer.C:
		r.logger.Warn().Dur("timeout", r.timeout).Msg("Orientation read timed out, assuming upright image")
		return domain.OrientationTopLeft
	case <-ctx.Done():
		r.logger.Debug().Err(ctx.Err()).Msg("Orientation read cancelled, assuming upright image")
		return domain.OrientationTopLeft
	}
}

func (r *Reader) decode(src io.Reader) (code domain.OrientationCode) {
	code = domain.OrientationTopLeft

	defer func() {
		if rec := recover(); rec != nil {
			r.logger.Warn().Interface("panic", rec).Msg("Panic recovered while parsing image metadata")
		}
	}()

	meta, err := goexif.Decode(src)
	if err != nil {
		r.logger.Debug().Err(err).Msg("No readable metadata, assuming upright image")
		return code
	}

	tag, err := meta.Get(goexif.Orientation)
	if err != nil {
		return code
	}

	value, err := tag.Int(0)
	if err != nil {
		r.logger.Debug().Err(err).Msg("Malformed orientation tag, assuming upright image")
		return code
	}

	parsed := domain.OrientationCode(value)
	if !parsed.Valid() {
		r.logger.Debug().Int("orientation", value).Msg("Orientation value out of range, assuming upright image")
		return code
	}

	return parsed
}
