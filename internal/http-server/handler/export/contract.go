package export

import (
	"context"

	"image-exporter/internal/domain"
	export_uc "image-exporter/internal/usecase/export"
)

type exportUsecase interface {
	Export(ctx context.Context, item export_uc.Item, opts domain.ExportOptions) (*domain.ProcessedResult, error)
	ExportBatch(ctx context.Context, items []export_uc.Item, opts domain.ExportOptions) []export_uc.ItemResult
}
