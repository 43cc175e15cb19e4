package operations

import (
	"math"

	"image-exporter/internal/domain"
)

type Geometry struct {
	Width    int
	Height   int
	Rotation domain.RotationDegrees
}

func ResolveGeometry(srcWidth, srcHeight int, req domain.ProcessingRequest) (Geometry, error) {
	orientRotation := orientationRotation(req.Orientation)

	width, height := srcWidth, srcHeight
	if req.Orientation.Sideways() {
		width, height = height, width
	}

	rotation := domain.RotationDegrees((int(orientRotation) + int(req.Rotation)) % 360)
	if rotation == domain.Rotate90 || rotation == domain.Rotate270 {
		width, height = height, width
	}

	width, height, err := applyResize(width, height, req.Resize)
	if err != nil {
		return Geometry{}, err
	}

	return Geometry{
		Width:    width,
		Height:   height,
		Rotation: rotation,
	}, nil
}

func orientationRotation(code domain.OrientationCode) domain.RotationDegrees {
	switch code {
	case domain.OrientationBottomRight:
		return domain.Rotate180
	case domain.OrientationRightTop:
		return domain.Rotate90
	case domain.OrientationLeftBottom:
		return domain.Rotate270
	default:
		return domain.Rotate0
	}
}

func applyResize(width, height int, policy domain.ResizePolicy) (int, int, error) {
	switch policy.Mode {
	case domain.ResizeNone, "":
		return width, height, nil
	case domain.ResizeFitWidth:
		if policy.TargetWidth < 1 {
			return 0, 0, domain.ErrInvalidResizeTarget
		}
		scale := float64(policy.TargetWidth) / float64(width)
		return policy.TargetWidth, roundDimension(float64(height) * scale), nil
	case domain.ResizeFitHeight:
		if policy.TargetHeight < 1 {
			return 0, 0, domain.ErrInvalidResizeTarget
		}
		scale := float64(policy.TargetHeight) / float64(height)
		return roundDimension(float64(width) * scale), policy.TargetHeight, nil
	case domain.ResizeFitBox:
		if policy.TargetWidth < 1 || policy.TargetHeight < 1 {
			return 0, 0, domain.ErrInvalidResizeTarget
		}
		scale := math.Min(
			float64(policy.TargetWidth)/float64(width),
			float64(policy.TargetHeight)/float64(height),
		)
		return roundDimension(float64(width) * scale), roundDimension(float64(height) * scale), nil
	case domain.ResizeForceBox:
		if policy.TargetWidth < 1 || policy.TargetHeight < 1 {
			return 0, 0, domain.ErrInvalidResizeTarget
		}
		return policy.TargetWidth, policy.TargetHeight, nil
	default:
		return 0, 0, domain.ErrInvalidResizeMode
	}
}

func roundDimension(v float64) int {
	rounded := int(math.Round(v))
	if rounded < 1 {
		return 1
	}
	return rounded
}
