package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestProcessingRequest_Validate(t *testing.T) {
	valid := ProcessingRequest{
		Orientation: OrientationTopLeft,
		Rotation:    Rotate0,
		Resize:      ResizePolicy{Mode: ResizeNone},
		Format:      FormatAuto,
	}

	tests := []struct {
		name    string
		mutate  func(r *ProcessingRequest)
		wantErr error
	}{
		{
			name:   "valid request",
			mutate: func(r *ProcessingRequest) {},
		},
		{
			name:   "empty resize mode treated as none",
			mutate: func(r *ProcessingRequest) { r.Resize.Mode = "" },
		},
		{
			name:   "empty format treated as auto",
			mutate: func(r *ProcessingRequest) { r.Format = "" },
		},
		{
			name: "fit width with target",
			mutate: func(r *ProcessingRequest) {
				r.Resize = ResizePolicy{Mode: ResizeFitWidth, TargetWidth: 800}
			},
		},
		{
			name:    "rotation not a quarter turn",
			mutate:  func(r *ProcessingRequest) { r.Rotation = 45 },
			wantErr: ErrInvalidRotation,
		},
		{
			name:    "negative rotation",
			mutate:  func(r *ProcessingRequest) { r.Rotation = -90 },
			wantErr: ErrInvalidRotation,
		},
		{
			name:    "fit width without target",
			mutate:  func(r *ProcessingRequest) { r.Resize = ResizePolicy{Mode: ResizeFitWidth} },
			wantErr: ErrInvalidResizeTarget,
		},
		{
			name:    "fit height without target",
			mutate:  func(r *ProcessingRequest) { r.Resize = ResizePolicy{Mode: ResizeFitHeight} },
			wantErr: ErrInvalidResizeTarget,
		},
		{
			name: "fit box missing one target",
			mutate: func(r *ProcessingRequest) {
				r.Resize = ResizePolicy{Mode: ResizeFitBox, TargetWidth: 800}
			},
			wantErr: ErrInvalidResizeTarget,
		},
		{
			name: "force box with negative target",
			mutate: func(r *ProcessingRequest) {
				r.Resize = ResizePolicy{Mode: ResizeForceBox, TargetWidth: 800, TargetHeight: -1}
			},
			wantErr: ErrInvalidResizeTarget,
		},
		{
			name:    "unknown resize mode",
			mutate:  func(r *ProcessingRequest) { r.Resize.Mode = "crop" },
			wantErr: ErrInvalidResizeMode,
		},
		{
			name:    "negative size ceiling",
			mutate:  func(r *ProcessingRequest) { r.SizeCeilingBytes = -1 },
			wantErr: ErrInvalidSizeCeiling,
		},
		{
			name:    "unknown format",
			mutate:  func(r *ProcessingRequest) { r.Format = "webp" },
			wantErr: ErrInvalidFormat,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := valid
			tt.mutate(&req)

			err := req.Validate()
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				return
			}
			assert.NoError(t, err)
		})
	}
}

func TestOrientationCode_Helpers(t *testing.T) {
	assert.True(t, OrientationTopLeft.Valid())
	assert.True(t, OrientationLeftBottom.Valid())
	assert.False(t, OrientationCode(0).Valid())
	assert.False(t, OrientationCode(9).Valid())

	assert.False(t, OrientationTopLeft.Mirrored())
	assert.True(t, OrientationTopRight.Mirrored())
	assert.True(t, OrientationBottomLeft.Mirrored())
	assert.True(t, OrientationLeftTop.Mirrored())
	assert.True(t, OrientationRightBottom.Mirrored())
	assert.False(t, OrientationRightTop.Mirrored())

	assert.False(t, OrientationBottomRight.Sideways())
	assert.True(t, OrientationLeftTop.Sideways())
	assert.True(t, OrientationRightTop.Sideways())
	assert.True(t, OrientationLeftBottom.Sideways())
}

func TestOutputFormat_MimeType(t *testing.T) {
	assert.Equal(t, "image/png", FormatPNG.MimeType())
	assert.Equal(t, "image/jpeg", FormatJPEG.MimeType())
	assert.Equal(t, "image/jpeg", FormatAuto.MimeType())

	assert.Equal(t, ".png", FormatPNG.Extension())
	assert.Equal(t, ".jpg", FormatJPEG.Extension())
}

func TestWatermarkSpec_Enabled(t *testing.T) {
	assert.False(t, WatermarkSpec{}.Enabled())
	assert.True(t, WatermarkSpec{Text: "draft"}.Enabled())
}
