package operations

import (
	"fmt"
	"image"
	"image/color"
	"math"
	"strconv"
	"strings"

	"image-exporter/internal/domain"

	"github.com/golang/freetype"
	"github.com/golang/freetype/truetype"
	"golang.org/x/image/font"
	"golang.org/x/image/font/gofont/goregular"
	"golang.org/x/image/math/fixed"
)

type Watermarker struct {
	font *truetype.Font
}

func NewWatermarker() *Watermarker {
	f, err := truetype.Parse(goregular.TTF)
	if err != nil {
		return &Watermarker{}
	}
	return &Watermarker{font: f}
}

func (w *Watermarker) Stamp(canvas *image.RGBA, spec domain.WatermarkSpec) error {
	if !spec.Enabled() {
		return nil
	}

	if w.font == nil {
		f, err := truetype.Parse(goregular.TTF)
		if err != nil {
			return fmt.Errorf("%w: %v", ErrWatermark, err)
		}
		w.font = f
	}

	opacity := spec.Opacity
	if opacity <= 0 || opacity > 1 {
		opacity = domain.DefaultWatermarkOpacity
	}

	fontSize := spec.FontSize
	if fontSize <= 0 {
		fontSize = domain.DefaultWatermarkSize
	}

	c := freetype.NewContext()
	c.SetDPI(72)
	c.SetFont(w.font)
	c.SetFontSize(fontSize)
	c.SetClip(canvas.Bounds())
	c.SetDst(canvas)
	c.SetSrc(image.NewUniform(parseColor(spec.FontColor, opacity)))
	c.SetHinting(font.HintingFull)

	pt := anchorPoint(canvas.Bounds(), spec.Text, spec.Position, fontSize)
	if _, err := c.DrawString(spec.Text, pt); err != nil {
		return fmt.Errorf("%w: %v", ErrWatermark, err)
	}

	return nil
}

func anchorPoint(bounds image.Rectangle, text string, position domain.WatermarkPosition, fontSize float64) fixed.Point26_6 {
	textWidth := int(float64(len(text)) * fontSize * 0.6)
	textHeight := int(fontSize * 1.2)
	margin := 20

	switch position {
	case domain.WatermarkTopLeft:
		return freetype.Pt(margin, margin+int(fontSize))
	case domain.WatermarkTopRight:
		return freetype.Pt(bounds.Dx()-textWidth-margin, margin+int(fontSize))
	case domain.WatermarkTopCenter:
		return freetype.Pt((bounds.Dx()-textWidth)/2, margin+int(fontSize))
	case domain.WatermarkBottomLeft:
		return freetype.Pt(margin, bounds.Dy()-margin)
	case domain.WatermarkBottomCenter:
		return freetype.Pt((bounds.Dx()-textWidth)/2, bounds.Dy()-margin)
	case domain.WatermarkCenter:
		return freetype.Pt((bounds.Dx()-textWidth)/2, (bounds.Dy()+textHeight)/2)
	default:
		return freetype.Pt(bounds.Dx()-textWidth-margin, bounds.Dy()-margin)
	}
}

func parseColor(colorStr string, opacity float64) color.RGBA {
	fallback := color.RGBA{255, 255, 255, uint8(255 * opacity)}

	colorStr = strings.ReplaceAll(colorStr, " ", "")
	parts := strings.Split(colorStr, ",")
	if len(parts) != 3 && len(parts) != 4 {
		return fallback
	}

	r, err1 := strconv.Atoi(parts[0])
	g, err2 := strconv.Atoi(parts[1])
	b, err3 := strconv.Atoi(parts[2])
	if err1 != nil || err2 != nil || err3 != nil {
		return fallback
	}

	a := uint8(255 * opacity)
	if len(parts) == 4 {
		if aVal, err := strconv.Atoi(parts[3]); err == nil {
			a = uint8(clamp(aVal, 0, 255))
		}
	}

	return color.RGBA{
		R: uint8(clamp(r, 0, 255)),
		G: uint8(clamp(g, 0, 255)),
		B: uint8(clamp(b, 0, 255)),
		A: a,
	}
}

func clamp(value, min, max int) int {
	return int(math.Max(float64(min), math.Min(float64(max), float64(value))))
}
