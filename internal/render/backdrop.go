package render

import (
	"github.com/hajimehoshi/ebiten/v2"
)

// Backdrop is an image stretched to cover the whole viewport, drawn behind
// the stage. OffsetX/OffsetY shift it in screen pixels.
type Backdrop struct {
	Image   *ebiten.Image
	Zoom    float64
	OffsetX float64
	OffsetY float64
}

// CoverScale returns the smallest uniform scale at which an image of the given
// size fully covers the viewport.
func CoverScale(imgW, imgH, viewW, viewH float64) float64 {
	if imgW <= 0 || imgH <= 0 {
		return 0
	}
	return max(viewW/imgW, viewH/imgH)
}

// Draw renders the backdrop centred on the viewport
func (b *Backdrop) Draw(dst *ebiten.Image) {
	if b.Image == nil {
		return
	}
	bounds := b.Image.Bounds()
	view := dst.Bounds()
	iw, ih := float64(bounds.Dx()), float64(bounds.Dy())
	vw, vh := float64(view.Dx()), float64(view.Dy())

	zoom := b.Zoom
	if zoom <= 0 {
		zoom = 1
	}
	scale := CoverScale(iw, ih, vw, vh) * zoom

	op := &ebiten.DrawImageOptions{}
	op.Filter = ebiten.FilterNearest
	op.GeoM.Scale(scale, scale)
	op.GeoM.Translate((vw-iw*scale)/2+b.OffsetX, (vh-ih*scale)/2+b.OffsetY)
	dst.DrawImage(b.Image, op)
}
