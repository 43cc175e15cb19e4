package dto

type ExportOptionsRequest struct {
	AutoOrient        bool    `form:"auto_orient"`
	Rotate            int     `form:"rotate" validate:"oneof=0 90 180 270"`
	ResizeMode        string  `form:"resize_mode" validate:"omitempty,oneof=none fit_width fit_height fit_box force_box"`
	TargetWidth       int     `form:"target_width" validate:"omitempty,min=1,max=16384"`
	TargetHeight      int     `form:"target_height" validate:"omitempty,min=1,max=16384"`
	MaxBytes          int64   `form:"max_bytes" validate:"omitempty,min=1"`
	Format            string  `form:"format" validate:"omitempty,oneof=auto png jpeg"`
	WatermarkText     string  `form:"watermark_text" validate:"omitempty,max=128"`
	WatermarkPosition string  `form:"watermark_position" validate:"omitempty,oneof=top-left top-right top-center bottom-left bottom-right bottom-center center"`
	WatermarkOpacity  float64 `form:"watermark_opacity" validate:"omitempty,gt=0,lte=1"`
}
