package export

import (
	"context"
	"io"

	"image-exporter/internal/domain"
)

type imageProcessor interface {
	Process(ctx context.Context, data []byte, req domain.ProcessingRequest) (*domain.ProcessedResult, error)
}

type orientationReader interface {
	Read(ctx context.Context, src io.Reader) domain.OrientationCode
}
