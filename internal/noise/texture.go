package noise

import (
	"fmt"
	"image"
	"io"
	"math"

	// Registered decoders for the supported noise texture formats.
	_ "image/png"

	"github.com/go-gl/mathgl/mgl32"
	_ "golang.org/x/image/bmp"
	xdraw "golang.org/x/image/draw"
	_ "golang.org/x/image/tiff"
)

// Texture is a wrapped RGBA float texture sampled bilinearly.
type Texture struct {
	width, height int
	pix           []mgl32.Vec4
}

// Size returns the texture dimensions in pixels.
func (t *Texture) Size() (int, int) {
	return t.width, t.height
}

// Pixel returns the texel at (x, y), wrapping both axes.
func (t *Texture) Pixel(x, y int) mgl32.Vec4 {
	x %= t.width
	if x < 0 {
		x += t.width
	}
	y %= t.height
	if y < 0 {
		y += t.height
	}
	return t.pix[y*t.width+x]
}

// SampleBilinear samples at normalized coordinates with repeat wrapping.
// Texel centers sit at half-pixel offsets.
func (t *Texture) SampleBilinear(u, v float32) mgl32.Vec4 {
	fx := float64(u)*float64(t.width) - 0.5
	fy := float64(v)*float64(t.height) - 0.5
	x0 := math.Floor(fx)
	y0 := math.Floor(fy)
	tx := float32(fx - x0)
	ty := float32(fy - y0)
	ix, iy := int(x0), int(y0)

	p00 := t.Pixel(ix, iy)
	p10 := t.Pixel(ix+1, iy)
	p01 := t.Pixel(ix, iy+1)
	p11 := t.Pixel(ix+1, iy+1)

	top := p00.Add(p10.Sub(p00).Mul(tx))
	bottom := p01.Add(p11.Sub(p01).Mul(tx))
	return top.Add(bottom.Sub(top).Mul(ty))
}

// FromImage converts img into a Texture. When size is positive the image is
// resampled to size×size first.
func FromImage(img image.Image, size int) *Texture {
	b := img.Bounds()
	dst := image.NewNRGBA(image.Rect(0, 0, b.Dx(), b.Dy()))
	if size > 0 {
		dst = image.NewNRGBA(image.Rect(0, 0, size, size))
	}
	xdraw.BiLinear.Scale(dst, dst.Bounds(), img, b, xdraw.Src, nil)

	w, h := dst.Bounds().Dx(), dst.Bounds().Dy()
	t := &Texture{width: w, height: h, pix: make([]mgl32.Vec4, w*h)}
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			c := dst.NRGBAAt(x, y)
			t.pix[y*w+x] = mgl32.Vec4{
				float32(c.R) / 255,
				float32(c.G) / 255,
				float32(c.B) / 255,
				float32(c.A) / 255,
			}
		}
	}
	return t
}

// Decode reads a PNG, BMP or TIFF noise image.
func Decode(r io.Reader, size int) (*Texture, error) {
	img, format, err := image.Decode(r)
	if err != nil {
		return nil, fmt.Errorf("decode noise image: %w", err)
	}
	if b := img.Bounds(); b.Empty() {
		return nil, fmt.Errorf("decode noise image: empty %s image", format)
	}
	return FromImage(img, size), nil
}
