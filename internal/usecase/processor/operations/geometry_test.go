package operations

import (
	"testing"

	"image-exporter/internal/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func noResize() domain.ResizePolicy {
	return domain.ResizePolicy{Mode: domain.ResizeNone}
}

func TestResolveGeometry_OrientationAndRotation(t *testing.T) {
	tests := []struct {
		name         string
		orientation  domain.OrientationCode
		rotation     domain.RotationDegrees
		wantWidth    int
		wantHeight   int
		wantRotation domain.RotationDegrees
	}{
		{"upright untouched", domain.OrientationTopLeft, domain.Rotate0, 4000, 3000, domain.Rotate0},
		{"upright manual 90", domain.OrientationTopLeft, domain.Rotate90, 3000, 4000, domain.Rotate90},
		{"upright manual 180", domain.OrientationTopLeft, domain.Rotate180, 4000, 3000, domain.Rotate180},
		{"upright manual 270", domain.OrientationTopLeft, domain.Rotate270, 3000, 4000, domain.Rotate270},
		{"code 3", domain.OrientationBottomRight, domain.Rotate0, 4000, 3000, domain.Rotate180},
		{"code 3 manual 180 cancels out", domain.OrientationBottomRight, domain.Rotate180, 4000, 3000, domain.Rotate0},
		{"code 3 manual 90", domain.OrientationBottomRight, domain.Rotate90, 3000, 4000, domain.Rotate270},
		{"code 6", domain.OrientationRightTop, domain.Rotate0, 4000, 3000, domain.Rotate90},
		{"code 6 manual 90", domain.OrientationRightTop, domain.Rotate90, 3000, 4000, domain.Rotate180},
		{"code 6 manual 270 cancels out", domain.OrientationRightTop, domain.Rotate270, 3000, 4000, domain.Rotate0},
		{"code 8", domain.OrientationLeftBottom, domain.Rotate0, 4000, 3000, domain.Rotate270},
		{"code 8 manual 90 cancels out", domain.OrientationLeftBottom, domain.Rotate90, 3000, 4000, domain.Rotate0},
		{"code 8 manual 180", domain.OrientationLeftBottom, domain.Rotate180, 4000, 3000, domain.Rotate90},
		{"mirrored code 2 is not corrected", domain.OrientationTopRight, domain.Rotate0, 4000, 3000, domain.Rotate0},
		{"mirrored code 4 is not corrected", domain.OrientationBottomLeft, domain.Rotate0, 4000, 3000, domain.Rotate0},
		{"mirrored sideways code 5 swaps only", domain.OrientationLeftTop, domain.Rotate0, 3000, 4000, domain.Rotate0},
		{"mirrored sideways code 7 swaps only", domain.OrientationRightBottom, domain.Rotate0, 3000, 4000, domain.Rotate0},
		{"unknown code treated as upright", domain.OrientationCode(0), domain.Rotate0, 4000, 3000, domain.Rotate0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			geom, err := ResolveGeometry(4000, 3000, domain.ProcessingRequest{
				Orientation: tt.orientation,
				Rotation:    tt.rotation,
				Resize:      noResize(),
			})
			require.NoError(t, err)

			assert.Equal(t, tt.wantWidth, geom.Width, "width")
			assert.Equal(t, tt.wantHeight, geom.Height, "height")
			assert.Equal(t, tt.wantRotation, geom.Rotation, "rotation")
		})
	}
}

func TestResolveGeometry_SwapMatchesNetRotation(t *testing.T) {
	orientations := []domain.OrientationCode{
		domain.OrientationTopLeft,
		domain.OrientationBottomRight,
		domain.OrientationRightTop,
		domain.OrientationLeftBottom,
	}
	rotations := []domain.RotationDegrees{
		domain.Rotate0, domain.Rotate90, domain.Rotate180, domain.Rotate270,
	}

	for _, orientation := range orientations {
		for _, rotation := range rotations {
			geom, err := ResolveGeometry(640, 480, domain.ProcessingRequest{
				Orientation: orientation,
				Rotation:    rotation,
				Resize:      noResize(),
			})
			require.NoError(t, err)

			quarterTurn := geom.Rotation == domain.Rotate90 || geom.Rotation == domain.Rotate270
			swapped := geom.Width == 480 && geom.Height == 640

			sideways := orientation.Sideways()
			if sideways {
				swapped = !swapped
			}

			assert.Equal(t, quarterTurn, swapped,
				"orientation %d rotation %d: swap must follow the net quarter turn", orientation, rotation)
		}
	}
}

func TestResolveGeometry_FitWidth(t *testing.T) {
	geom, err := ResolveGeometry(4000, 3000, domain.ProcessingRequest{
		Orientation: domain.OrientationRightTop,
		Rotation:    domain.Rotate0,
		Resize:      domain.ResizePolicy{Mode: domain.ResizeFitWidth, TargetWidth: 800},
	})
	require.NoError(t, err)

	assert.Equal(t, 800, geom.Width)
	assert.Equal(t, 600, geom.Height)
	assert.Equal(t, domain.Rotate90, geom.Rotation)
}

func TestResolveGeometry_FitHeight(t *testing.T) {
	geom, err := ResolveGeometry(4000, 3000, domain.ProcessingRequest{
		Orientation: domain.OrientationTopLeft,
		Rotation:    domain.Rotate0,
		Resize:      domain.ResizePolicy{Mode: domain.ResizeFitHeight, TargetHeight: 600},
	})
	require.NoError(t, err)

	assert.Equal(t, 800, geom.Width)
	assert.Equal(t, 600, geom.Height)
}

func TestResolveGeometry_FitBox(t *testing.T) {
	tests := []struct {
		name       string
		srcW, srcH int
		boxW, boxH int
		wantW      int
		wantH      int
	}{
		{"width bound", 4000, 3000, 1000, 1000, 1000, 750},
		{"height bound", 3000, 4000, 1000, 1000, 750, 1000},
		{"exact fit", 800, 600, 800, 600, 800, 600},
		{"upscale allowed", 100, 50, 400, 400, 400, 200},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			geom, err := ResolveGeometry(tt.srcW, tt.srcH, domain.ProcessingRequest{
				Orientation: domain.OrientationTopLeft,
				Rotation:    domain.Rotate0,
				Resize:      domain.ResizePolicy{Mode: domain.ResizeFitBox, TargetWidth: tt.boxW, TargetHeight: tt.boxH},
			})
			require.NoError(t, err)

			assert.Equal(t, tt.wantW, geom.Width)
			assert.Equal(t, tt.wantH, geom.Height)
			assert.LessOrEqual(t, geom.Width, tt.boxW, "must not overflow the box")
			assert.LessOrEqual(t, geom.Height, tt.boxH, "must not overflow the box")
		})
	}
}

func TestResolveGeometry_ForceBox(t *testing.T) {
	geom, err := ResolveGeometry(4000, 3000, domain.ProcessingRequest{
		Orientation: domain.OrientationTopLeft,
		Rotation:    domain.Rotate0,
		Resize:      domain.ResizePolicy{Mode: domain.ResizeForceBox, TargetWidth: 500, TargetHeight: 500},
	})
	require.NoError(t, err)

	assert.Equal(t, 500, geom.Width)
	assert.Equal(t, 500, geom.Height)
}

func TestResolveGeometry_RoundsAndClamps(t *testing.T) {
	geom, err := ResolveGeometry(3, 2, domain.ProcessingRequest{
		Orientation: domain.OrientationTopLeft,
		Rotation:    domain.Rotate0,
		Resize:      domain.ResizePolicy{Mode: domain.ResizeFitWidth, TargetWidth: 2},
	})
	require.NoError(t, err)
	assert.Equal(t, 2, geom.Width)
	assert.Equal(t, 1, geom.Height)

	geom, err = ResolveGeometry(4000, 10, domain.ProcessingRequest{
		Orientation: domain.OrientationTopLeft,
		Rotation:    domain.Rotate0,
		Resize:      domain.ResizePolicy{Mode: domain.ResizeFitWidth, TargetWidth: 100},
	})
	require.NoError(t, err)
	assert.Equal(t, 100, geom.Width)
	assert.Equal(t, 1, geom.Height, "dimensions never round down to zero")
}

func TestResolveGeometry_InvalidPolicy(t *testing.T) {
	_, err := ResolveGeometry(800, 600, domain.ProcessingRequest{
		Orientation: domain.OrientationTopLeft,
		Rotation:    domain.Rotate0,
		Resize:      domain.ResizePolicy{Mode: domain.ResizeFitWidth},
	})
	assert.ErrorIs(t, err, domain.ErrInvalidResizeTarget)

	_, err = ResolveGeometry(800, 600, domain.ProcessingRequest{
		Orientation: domain.OrientationTopLeft,
		Rotation:    domain.Rotate0,
		Resize:      domain.ResizePolicy{Mode: "stretch"},
	})
	assert.ErrorIs(t, err, domain.ErrInvalidResizeMode)
}
