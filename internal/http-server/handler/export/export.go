package export

import (
	"archive/zip"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"path/filepath"
	"strconv"
	"strings"

	"image-exporter/internal/domain"
	"image-exporter/internal/http-server/handler/export/dto"
	export_uc "image-exporter/internal/usecase/export"
	"image-exporter/internal/usecase/processor"

	"github.com/go-playground/validator/v10"
	"github.com/wb-go/wbf/zlog"
)

const (
	maxMemory       = 32 << 20
	archiveFilename = "export.zip"
)

type ExportHandler struct {
	usecase       exportUsecase
	validate      *validator.Validate
	maxUploadSize int64
	logger        *zlog.Zerolog
}

func NewExportHandler(usecase exportUsecase, maxUploadSize int64, logger *zlog.Zerolog) *ExportHandler {
	if maxUploadSize <= 0 {
		maxUploadSize = domain.DefaultMaxUploadSize
	}
	return &ExportHandler{
		usecase:       usecase,
		validate:      validator.New(),
		maxUploadSize: maxUploadSize,
		logger:        logger,
	}
}

func (h *ExportHandler) Export(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	r.Body = http.MaxBytesReader(w, r.Body, h.maxUploadSize)

	if err := r.ParseMultipartForm(maxMemory); err != nil {
		h.logger.Warn().Err(err).Msg("Failed to parse multipart form")
		h.respondError(w, http.StatusBadRequest, "Invalid request format", nil)
		return
	}

	form, err := h.parseOptionsForm(r)
	if err != nil {
		h.respondError(w, http.StatusBadRequest, err.Error(), nil)
		return
	}

	if err := h.validate.Struct(form); err != nil {
		h.logger.Warn().Err(err).Msg("Invalid export options")
		h.respondError(w, http.StatusBadRequest, "Invalid export options", err)
		return
	}

	opts := toExportOptions(form)

	if err := validateOptions(opts); err != nil {
		h.respondError(w, http.StatusBadRequest, err.Error(), nil)
		return
	}

	headers := r.MultipartForm.File["files"]
	if len(headers) == 0 {
		headers = r.MultipartForm.File["file"]
	}
	if len(headers) == 0 {
		h.respondError(w, http.StatusBadRequest, "At least one file is required", nil)
		return
	}

	items, err := h.readItems(headers)
	if err != nil {
		h.respondError(w, http.StatusBadRequest, err.Error(), nil)
		return
	}

	if len(items) == 1 {
		h.exportSingle(ctx, w, items[0], opts)
		return
	}

	h.exportArchive(ctx, w, items, opts)
}

func (h *ExportHandler) exportSingle(ctx context.Context, w http.ResponseWriter, item export_uc.Item, opts domain.ExportOptions) {
	result, err := h.usecase.Export(ctx, item, opts)
	if err != nil {
		h.handleExportError(w, err, item.Filename)
		return
	}

	filename := exportFilename(item.Filename, result.MimeType)
	w.Header().Set("Content-Type", result.MimeType)
	w.Header().Set("Content-Length", strconv.Itoa(len(result.Data)))
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=\"%s\"", filename))

	if _, err := w.Write(result.Data); err != nil {
		h.logger.Error().
			Err(err).
			Str("item_id", item.ID).
			Str("filename", item.Filename).
			Msg("Failed to stream exported image")
	}
}

func (h *ExportHandler) exportArchive(ctx context.Context, w http.ResponseWriter, items []export_uc.Item, opts domain.ExportOptions) {
	results := h.usecase.ExportBatch(ctx, items, opts)

	var failures []dto.BatchFailure
	succeeded := 0
	for _, res := range results {
		if res.Err != nil {
			failures = append(failures, dto.BatchFailure{
				Filename: res.Item.Filename,
				Message:  exportErrorMessage(res.Err),
			})
			continue
		}
		succeeded++
	}

	if succeeded == 0 {
		h.logger.Warn().Int("items", len(items)).Msg("All batch items failed")
		h.respondError(w, http.StatusUnprocessableEntity, "All items failed to export", nil)
		return
	}

	w.Header().Set("Content-Type", "application/zip")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=\"%s\"", archiveFilename))

	zw := zip.NewWriter(w)
	defer zw.Close()

	taken := make(map[string]bool)
	for _, res := range results {
		if res.Err != nil {
			continue
		}

		name := uniqueName(taken, exportFilename(res.Item.Filename, res.Result.MimeType))
		entry, err := zw.Create(name)
		if err != nil {
			h.logger.Error().Err(err).Str("entry", name).Msg("Failed to create archive entry")
			return
		}
		if _, err := entry.Write(res.Result.Data); err != nil {
			h.logger.Error().Err(err).Str("entry", name).Msg("Failed to write archive entry")
			return
		}
	}

	if len(failures) > 0 {
		entry, err := zw.Create("errors.json")
		if err != nil {
			h.logger.Error().Err(err).Msg("Failed to create archive error report")
			return
		}
		if err := json.NewEncoder(entry).Encode(failures); err != nil {
			h.logger.Error().Err(err).Msg("Failed to write archive error report")
			return
		}
	}

	h.logger.Info().
		Int("items", len(items)).
		Int("succeeded", succeeded).
		Int("failed", len(failures)).
		Msg("Batch export archived")
}

func (h *ExportHandler) readItems(headers []*multipart.FileHeader) ([]export_uc.Item, error) {
	items := make([]export_uc.Item, 0, len(headers))

	for _, header := range headers {
		if err := h.validateFile(header); err != nil {
			return nil, err
		}

		file, err := header.Open()
		if err != nil {
			return nil, fmt.Errorf("failed to open %s", header.Filename)
		}

		data, err := io.ReadAll(file)
		file.Close()
		if err != nil {
			return nil, fmt.Errorf("failed to read %s", header.Filename)
		}

		items = append(items, export_uc.NewItem(header.Filename, data))
	}

	return items, nil
}

func (h *ExportHandler) validateFile(header *multipart.FileHeader) error {
	if header.Size > h.maxUploadSize {
		return fmt.Errorf("file %s is too large (max %d MB)", header.Filename, h.maxUploadSize/(1024*1024))
	}

	ext := strings.ToLower(filepath.Ext(header.Filename))
	if !allowedExtensions[ext] {
		return fmt.Errorf("unsupported file format %s, allowed: jpg, jpeg, png, gif, webp, bmp, tiff", ext)
	}

	contentType := header.Header.Get("Content-Type")
	if contentType != "" && !strings.HasPrefix(contentType, "image/") && contentType != "application/octet-stream" {
		return fmt.Errorf("file %s must be an image", header.Filename)
	}

	return nil
}

var allowedExtensions = map[string]bool{
	".jpg":  true,
	".jpeg": true,
	".png":  true,
	".gif":  true,
	".webp": true,
	".bmp":  true,
	".tiff": true,
	".tif":  true,
}

func (h *ExportHandler) parseOptionsForm(r *http.Request) (dto.ExportOptionsRequest, error) {
	form := dto.ExportOptionsRequest{
		AutoOrient:        r.FormValue("auto_orient") == "true",
		ResizeMode:        r.FormValue("resize_mode"),
		Format:            r.FormValue("format"),
		WatermarkText:     r.FormValue("watermark_text"),
		WatermarkPosition: r.FormValue("watermark_position"),
	}

	var err error
	if form.Rotate, err = formInt(r, "rotate"); err != nil {
		return form, err
	}
	if form.TargetWidth, err = formInt(r, "target_width"); err != nil {
		return form, err
	}
	if form.TargetHeight, err = formInt(r, "target_height"); err != nil {
		return form, err
	}
	if form.MaxBytes, err = formInt64(r, "max_bytes"); err != nil {
		return form, err
	}
	if form.WatermarkOpacity, err = formFloat(r, "watermark_opacity"); err != nil {
		return form, err
	}

	return form, nil
}

func formInt(r *http.Request, key string) (int, error) {
	value := r.FormValue(key)
	if value == "" {
		return 0, nil
	}
	n, err := strconv.Atoi(value)
	if err != nil {
		return 0, fmt.Errorf("invalid %s value", key)
	}
	return n, nil
}

func formInt64(r *http.Request, key string) (int64, error) {
	value := r.FormValue(key)
	if value == "" {
		return 0, nil
	}
	n, err := strconv.ParseInt(value, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid %s value", key)
	}
	return n, nil
}

func formFloat(r *http.Request, key string) (float64, error) {
	value := r.FormValue(key)
	if value == "" {
		return 0, nil
	}
	n, err := strconv.ParseFloat(value, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid %s value", key)
	}
	return n, nil
}

func toExportOptions(form dto.ExportOptionsRequest) domain.ExportOptions {
	mode := domain.ResizeMode(form.ResizeMode)
	if form.ResizeMode == "" {
		mode = domain.ResizeNone
	}

	format := domain.OutputFormat(form.Format)
	if form.Format == "" {
		format = domain.FormatAuto
	}

	return domain.ExportOptions{
		AutoOrient: form.AutoOrient,
		Rotation:   domain.RotationDegrees(form.Rotate),
		Resize: domain.ResizePolicy{
			Mode:         mode,
			TargetWidth:  form.TargetWidth,
			TargetHeight: form.TargetHeight,
		},
		SizeCeilingBytes: form.MaxBytes,
		Format:           format,
		Watermark: domain.WatermarkSpec{
			Text:     form.WatermarkText,
			Position: domain.WatermarkPosition(form.WatermarkPosition),
			Opacity:  form.WatermarkOpacity,
		},
	}
}

func validateOptions(opts domain.ExportOptions) error {
	probe := domain.ProcessingRequest{
		Orientation:      domain.OrientationTopLeft,
		Rotation:         opts.Rotation,
		Resize:           opts.Resize,
		SizeCeilingBytes: opts.SizeCeilingBytes,
		Format:           opts.Format,
		Watermark:        opts.Watermark,
	}
	return probe.Validate()
}

func (h *ExportHandler) handleExportError(w http.ResponseWriter, err error, filename string) {
	switch {
	case errors.Is(err, domain.ErrInvalidRotation),
		errors.Is(err, domain.ErrInvalidResizeMode),
		errors.Is(err, domain.ErrInvalidResizeTarget),
		errors.Is(err, domain.ErrInvalidSizeCeiling),
		errors.Is(err, domain.ErrInvalidFormat):
		h.logger.Warn().Err(err).Str("filename", filename).Msg("Invalid export parameters")
		h.respondError(w, http.StatusBadRequest, exportErrorMessage(err), nil)
	case errors.Is(err, processor.ErrDecode):
		h.logger.Warn().Err(err).Str("filename", filename).Msg("Undecodable image")
		h.respondError(w, http.StatusUnprocessableEntity, "Unsupported or corrupted image", nil)
	case errors.Is(err, export_uc.ErrEmptySource):
		h.respondError(w, http.StatusBadRequest, "Empty file", nil)
	default:
		h.logger.Error().Err(err).Str("filename", filename).Msg("Export failed")
		h.respondError(w, http.StatusInternalServerError, "Failed to export image", err)
	}
}

func exportErrorMessage(err error) string {
	switch {
	case errors.Is(err, processor.ErrDecode):
		return "unsupported or corrupted image"
	case errors.Is(err, export_uc.ErrEmptySource):
		return "empty file"
	case errors.Is(err, domain.ErrInvalidRotation):
		return domain.ErrInvalidRotation.Error()
	case errors.Is(err, domain.ErrInvalidResizeMode):
		return domain.ErrInvalidResizeMode.Error()
	case errors.Is(err, domain.ErrInvalidResizeTarget):
		return domain.ErrInvalidResizeTarget.Error()
	case errors.Is(err, domain.ErrInvalidSizeCeiling):
		return domain.ErrInvalidSizeCeiling.Error()
	case errors.Is(err, domain.ErrInvalidFormat):
		return domain.ErrInvalidFormat.Error()
	default:
		return "export failed"
	}
}

func exportFilename(original, mimeType string) string {
	ext := ".jpg"
	if mimeType == "image/png" {
		ext = ".png"
	}

	base := strings.TrimSuffix(filepath.Base(original), filepath.Ext(original))
	if base == "" || base == "." {
		base = "image"
	}

	return base + ext
}

func uniqueName(taken map[string]bool, name string) string {
	if !taken[name] {
		taken[name] = true
		return name
	}

	ext := filepath.Ext(name)
	base := strings.TrimSuffix(name, ext)
	for i := 2; ; i++ {
		candidate := fmt.Sprintf("%s_%d%s", base, i, ext)
		if !taken[candidate] {
			taken[candidate] = true
			return candidate
		}
	}
}

func (h *ExportHandler) respondJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	if err := json.NewEncoder(w).Encode(data); err != nil {
		h.logger.Error().Err(err).Interface("data", data).Msg("Failed to encode response")
		http.Error(w, "Failed to encode response", http.StatusInternalServerError)
	}
}

func (h *ExportHandler) respondError(w http.ResponseWriter, status int, message string, err error) {
	response := dto.ErrorResponse{
		Error:   http.StatusText(status),
		Message: message,
	}

	if err != nil {
		response.Details = err.Error()
	}

	h.respondJSON(w, status, response)
}
