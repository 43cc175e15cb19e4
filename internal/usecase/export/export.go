package export

import (
	"bytes"
	"context"
	"fmt"
	"sync"

	"image-exporter/internal/domain"

	"github.com/google/uuid"
	"github.com/wb-go/wbf/zlog"
)

type Item struct {
	ID       string
	Filename string
	Data     []byte
}

func NewItem(filename string, data []byte) Item {
	return Item{
		ID:       uuid.New().String(),
		Filename: filename,
		Data:     data,
	}
}

type ItemResult struct {
	Item   Item
	Result *domain.ProcessedResult
	Err    error
}

type ExportUsecase struct {
	processor   imageProcessor
	orientation orientationReader
	concurrency int
	logger      *zlog.Zerolog
}

func NewExportUsecase(processor imageProcessor, orientation orientationReader, concurrency int, logger *zlog.Zerolog) *ExportUsecase {
	if concurrency < 1 {
		concurrency = 1
	}
	return &ExportUsecase{
		processor:   processor,
		orientation: orientation,
		concurrency: concurrency,
		logger:      logger,
	}
}

func (e *ExportUsecase) Export(ctx context.Context, item Item, opts domain.ExportOptions) (result *domain.ProcessedResult, err error) {
	defer func() {
		if rec := recover(); rec != nil {
			e.logger.Error().
				Interface("panic", rec).
				Str("item_id", item.ID).
				Str("filename", item.Filename).
				Msg("Panic recovered while exporting image")
			result = nil
			err = fmt.Errorf("panic: %v", rec)
		}
	}()

	if len(item.Data) == 0 {
		return nil, ErrEmptySource
	}

	req := e.buildRequest(ctx, item, opts)

	result, err = e.processor.Process(ctx, item.Data, req)
	if err != nil {
		e.logger.Error().
			Err(err).
			Str("item_id", item.ID).
			Str("filename", item.Filename).
			Msg("Export failed")
		return nil, fmt.Errorf("export %s: %w", item.Filename, err)
	}

	e.logger.Info().
		Str("item_id", item.ID).
		Str("filename", item.Filename).
		Int("width", result.Width).
		Int("height", result.Height).
		Int("size", len(result.Data)).
		Msg("Image exported")

	return result, nil
}

func (e *ExportUsecase) ExportBatch(ctx context.Context, items []Item, opts domain.ExportOptions) []ItemResult {
	results := make([]ItemResult, len(items))
	if len(items) == 0 {
		return results
	}

	workers := e.concurrency
	if workers > len(items) {
		workers = len(items)
	}

	jobs := make(chan int)
	var wg sync.WaitGroup

	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for idx := range jobs {
				result, err := e.Export(ctx, items[idx], opts)
				results[idx] = ItemResult{Item: items[idx], Result: result, Err: err}
			}
		}()
	}

	for idx := range items {
		select {
		case jobs <- idx:
		case <-ctx.Done():
			results[idx] = ItemResult{Item: items[idx], Err: ctx.Err()}
		}
	}
	close(jobs)
	wg.Wait()

	failed := 0
	for _, r := range results {
		if r.Err != nil {
			failed++
		}
	}

	e.logger.Info().
		Int("items", len(items)).
		Int("failed", failed).
		Int("workers", workers).
		Msg("Batch export finished")

	return results
}

func (e *ExportUsecase) buildRequest(ctx context.Context, item Item, opts domain.ExportOptions) domain.ProcessingRequest {
	orientation := domain.OrientationTopLeft
	if opts.AutoOrient {
		orientation = e.orientation.Read(ctx, bytes.NewReader(item.Data))
		if orientation.Mirrored() {
			e.logger.Debug().
				Str("item_id", item.ID).
				Int("orientation", int(orientation)).
				Msg("Mirrored orientation detected, flip is not applied")
		}
	}

	format := opts.Format
	if format == "" {
		format = domain.FormatAuto
	}

	return domain.ProcessingRequest{
		Orientation:      orientation,
		Rotation:         opts.Rotation,
		Resize:           opts.Resize,
		SizeCeilingBytes: opts.SizeCeilingBytes,
		Format:           format,
		Watermark:        opts.Watermark,
	}
}
