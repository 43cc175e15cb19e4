package processor

import (
	"bytes"
	"context"
	"fmt"
	"image"
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"

	"image-exporter/internal/domain"
	"image-exporter/internal/usecase/processor/operations"

	"github.com/wb-go/wbf/zlog"
	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/tiff"
	_ "golang.org/x/image/webp"
)

type ImageProcessor struct {
	renderer    *operations.Renderer
	watermarker *operations.Watermarker
	encoder     *operations.Encoder
	logger      *zlog.Zerolog
}

func NewImageProcessor(logger *zlog.Zerolog) *ImageProcessor {
	return &ImageProcessor{
		renderer:    operations.NewRenderer(),
		watermarker: operations.NewWatermarker(),
		encoder:     operations.NewEncoder(),
		logger:      logger,
	}
}

func (p *ImageProcessor) Process(ctx context.Context, data []byte, req domain.ProcessingRequest) (*domain.ProcessedResult, error) {
	if err := req.Validate(); err != nil {
		p.logger.Warn().Err(err).Msg("Rejected processing request")
		return nil, err
	}

	src, sourceFormat, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		p.logger.Error().Err(err).Msg("Failed to decode image")
		return nil, fmt.Errorf("%w: %v", ErrDecode, err)
	}

	format := resolveFormat(req.Format, sourceFormat, req.SizeCeilingBytes)

	bounds := src.Bounds()
	geom, err := operations.ResolveGeometry(bounds.Dx(), bounds.Dy(), req)
	if err != nil {
		p.logger.Warn().Err(err).Msg("Failed to resolve output geometry")
		return nil, err
	}

	p.logger.Debug().
		Int("source_width", bounds.Dx()).
		Int("source_height", bounds.Dy()).
		Int("width", geom.Width).
		Int("height", geom.Height).
		Int("rotation", int(geom.Rotation)).
		Str("source_format", sourceFormat).
		Str("format", string(format)).
		Msg("Resolved output geometry")

	canvas := p.renderer.Render(src, geom)

	if req.Watermark.Enabled() {
		if err := p.watermarker.Stamp(canvas, req.Watermark); err != nil {
			p.logger.Error().Err(err).Msg("Failed to stamp watermark")
			return nil, err
		}
	}

	encoded, err := p.encoder.Encode(canvas, format, req.SizeCeilingBytes)
	if err != nil {
		p.logger.Error().Err(err).Str("format", string(format)).Msg("Failed to encode image")
		return nil, err
	}

	if req.SizeCeilingBytes > 0 && int64(len(encoded)) > req.SizeCeilingBytes {
		p.logger.Warn().
			Int("size", len(encoded)).
			Int64("ceiling", req.SizeCeilingBytes).
			Msg("Encoded image exceeds size ceiling at minimum quality")
	}

	p.logger.Info().
		Int("width", geom.Width).
		Int("height", geom.Height).
		Int("size", len(encoded)).
		Str("format", string(format)).
		Msg("Image processed")

	return &domain.ProcessedResult{
		Data:     encoded,
		Width:    geom.Width,
		Height:   geom.Height,
		MimeType: format.MimeType(),
	}, nil
}

func resolveFormat(requested domain.OutputFormat, sourceFormat string, ceiling int64) domain.OutputFormat {
	switch requested {
	case domain.FormatPNG:
		return domain.FormatPNG
	case domain.FormatJPEG:
		return domain.FormatJPEG
	}

	if ceiling > 0 {
		return domain.FormatJPEG
	}
	if sourceFormat == "png" {
		return domain.FormatPNG
	}
	return domain.FormatJPEG
}
