package operations

import (
	"image"

	"image-exporter/internal/domain"

	xdraw "golang.org/x/image/draw"
	"golang.org/x/image/math/f64"
)

type Renderer struct{}

func NewRenderer() *Renderer {
	return &Renderer{}
}

func (r *Renderer) Render(src image.Image, geom Geometry) *image.RGBA {
	dst := image.NewRGBA(image.Rect(0, 0, geom.Width, geom.Height))

	bounds := src.Bounds()
	srcWidth := float64(bounds.Dx())
	srcHeight := float64(bounds.Dy())

	// Scales run along the source axes, so a quarter turn trades them.
	var scaleX, scaleY float64
	if geom.Rotation == domain.Rotate90 || geom.Rotation == domain.Rotate270 {
		scaleX = float64(geom.Height) / srcWidth
		scaleY = float64(geom.Width) / srcHeight
	} else {
		scaleX = float64(geom.Width) / srcWidth
		scaleY = float64(geom.Height) / srcHeight
	}

	sin, cos := rotationSinCos(geom.Rotation)

	srcCX := float64(bounds.Min.X) + srcWidth/2
	srcCY := float64(bounds.Min.Y) + srcHeight/2
	dstCX := float64(geom.Width) / 2
	dstCY := float64(geom.Height) / 2

	m := f64.Aff3{
		cos * scaleX, -sin * scaleY, dstCX - cos*scaleX*srcCX + sin*scaleY*srcCY,
		sin * scaleX, cos * scaleY, dstCY - sin*scaleX*srcCX - cos*scaleY*srcCY,
	}

	xdraw.BiLinear.Transform(dst, m, src, bounds, xdraw.Over, nil)

	return dst
}

func rotationSinCos(rotation domain.RotationDegrees) (sin, cos float64) {
	switch rotation {
	case domain.Rotate90:
		return 1, 0
	case domain.Rotate180:
		return 0, -1
	case domain.Rotate270:
		return -1, 0
	default:
		return 0, 1
	}
}
