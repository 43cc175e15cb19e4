package domain

type OrientationCode int

const (
	OrientationTopLeft     OrientationCode = 1
	OrientationTopRight    OrientationCode = 2
	OrientationBottomRight OrientationCode = 3
	OrientationBottomLeft  OrientationCode = 4
	OrientationLeftTop     OrientationCode = 5
	OrientationRightTop    OrientationCode = 6
	OrientationRightBottom OrientationCode = 7
	OrientationLeftBottom  OrientationCode = 8
)

func (c OrientationCode) Valid() bool {
	return c >= OrientationTopLeft && c <= OrientationLeftBottom
}

func (c OrientationCode) Mirrored() bool {
	switch c {
	case OrientationTopRight, OrientationBottomLeft, OrientationLeftTop, OrientationRightBottom:
		return true
	}
	return false
}

func (c OrientationCode) Sideways() bool {
	return c >= OrientationLeftTop && c <= OrientationLeftBottom
}

type RotationDegrees int

const (
	Rotate0   RotationDegrees = 0
	Rotate90  RotationDegrees = 90
	Rotate180 RotationDegrees = 180
	Rotate270 RotationDegrees = 270
)

func (r RotationDegrees) Valid() bool {
	switch r {
	case Rotate0, Rotate90, Rotate180, Rotate270:
		return true
	}
	return false
}

type ResizeMode string

const (
	ResizeNone      ResizeMode = "none"
	ResizeFitWidth  ResizeMode = "fit_width"
	ResizeFitHeight ResizeMode = "fit_height"
	ResizeFitBox    ResizeMode = "fit_box"
	ResizeForceBox  ResizeMode = "force_box"
)

type ResizePolicy struct {
	Mode         ResizeMode
	TargetWidth  int
	TargetHeight int
}

type OutputFormat string

const (
	FormatAuto OutputFormat = "auto"
	FormatPNG  OutputFormat = "png"
	FormatJPEG OutputFormat = "jpeg"
)

func (f OutputFormat) MimeType() string {
	switch f {
	case FormatPNG:
		return "image/png"
	default:
		return "image/jpeg"
	}
}

func (f OutputFormat) Extension() string {
	switch f {
	case FormatPNG:
		return ".png"
	default:
		return ".jpg"
	}
}

type WatermarkPosition string

const (
	WatermarkTopLeft      WatermarkPosition = "top-left"
	WatermarkTopRight     WatermarkPosition = "top-right"
	WatermarkTopCenter    WatermarkPosition = "top-center"
	WatermarkBottomLeft   WatermarkPosition = "bottom-left"
	WatermarkBottomRight  WatermarkPosition = "bottom-right"
	WatermarkBottomCenter WatermarkPosition = "bottom-center"
	WatermarkCenter       WatermarkPosition = "center"
)

type WatermarkSpec struct {
	Text      string
	Position  WatermarkPosition
	Opacity   float64
	FontSize  float64
	FontColor string
}

func (w WatermarkSpec) Enabled() bool {
	return w.Text != ""
}

type ExportOptions struct {
	AutoOrient       bool
	Rotation         RotationDegrees
	Resize           ResizePolicy
	SizeCeilingBytes int64
	Format           OutputFormat
	Watermark        WatermarkSpec
}

type ProcessingRequest struct {
	Orientation      OrientationCode
	Rotation         RotationDegrees
	Resize           ResizePolicy
	SizeCeilingBytes int64
	Format           OutputFormat
	Watermark        WatermarkSpec
}

func (r ProcessingRequest) Validate() error {
	if !r.Rotation.Valid() {
		return ErrInvalidRotation
	}

	switch r.Resize.Mode {
	case ResizeNone, "":
	case ResizeFitWidth:
		if r.Resize.TargetWidth < 1 {
			return ErrInvalidResizeTarget
		}
	case ResizeFitHeight:
		if r.Resize.TargetHeight < 1 {
			return ErrInvalidResizeTarget
		}
	case ResizeFitBox, ResizeForceBox:
		if r.Resize.TargetWidth < 1 || r.Resize.TargetHeight < 1 {
			return ErrInvalidResizeTarget
		}
	default:
		return ErrInvalidResizeMode
	}

	if r.SizeCeilingBytes < 0 {
		return ErrInvalidSizeCeiling
	}

	switch r.Format {
	case FormatAuto, FormatPNG, FormatJPEG, "":
	default:
		return ErrInvalidFormat
	}

	return nil
}

type ProcessedResult struct {
	Data     []byte
	Width    int
	Height   int
	MimeType string
}

const (
	DefaultMaxUploadSize    = 32 << 20
	DefaultWatermarkOpacity = 0.5
	DefaultWatermarkSize    = 36
)
