package renderer

import (
	"image"
	"image/color"

	"github.com/df07/go-whitted-raytracer/pkg/core"
)

// FrameBuffer is a dense height x width grid of RGB colors with channels in [0,1].
// Row 0 is the top of the image.
type FrameBuffer struct {
	Width  int
	Height int
	Pixels []core.Vec3 // Row-major
}

// NewFrameBuffer allocates a black frame buffer
func NewFrameBuffer(width, height int) *FrameBuffer {
	return &FrameBuffer{
		Width:  width,
		Height: height,
		Pixels: make([]core.Vec3, width*height),
	}
}

// Bounds returns the sampling-space rectangle covered by the buffer
func (fb *FrameBuffer) Bounds() image.Rectangle {
	return image.Rect(0, 0, fb.Width, fb.Height)
}

// At returns the color stored at image row and column
func (fb *FrameBuffer) At(row, col int) core.Vec3 {
	return fb.Pixels[row*fb.Width+col]
}

// SetSample stores the color for sampling coordinate (px, py) at row height-py-1
func (fb *FrameBuffer) SetSample(px, py int, c core.Vec3) {
	row := fb.Height - py - 1
	fb.Pixels[row*fb.Width+px] = c
}

// RowForSample returns the image row that sampling row py is stored in
func (fb *FrameBuffer) RowForSample(py int) int {
	return fb.Height - py - 1
}

// Equal reports whether both buffers hold bit-identical pixels
func (fb *FrameBuffer) Equal(other *FrameBuffer) bool {
	if fb.Width != other.Width || fb.Height != other.Height {
		return false
	}
	for i := range fb.Pixels {
		if fb.Pixels[i] != other.Pixels[i] {
			return false
		}
	}
	return true
}

// AverageLuminance returns the mean luminance of all pixels, clamped to [0,1]
func (fb *FrameBuffer) AverageLuminance() float64 {
	if len(fb.Pixels) == 0 {
		return 0
	}
	total := 0.0
	for _, c := range fb.Pixels {
		total += c.Clamp(0.0, 1.0).Luminance()
	}
	return total / float64(len(fb.Pixels))
}

// ToImage converts the buffer to an 8-bit RGBA image for encoding
func (fb *FrameBuffer) ToImage() *image.RGBA {
	img := image.NewRGBA(fb.Bounds())
	for row := 0; row < fb.Height; row++ {
		for col := 0; col < fb.Width; col++ {
			img.SetRGBA(col, row, vec3ToColor(fb.At(row, col)))
		}
	}
	return img
}

// vec3ToColor converts a Vec3 color to RGBA with clamping
func vec3ToColor(colorVec core.Vec3) color.RGBA {
	colorVec = colorVec.Clamp(0.0, 1.0)

	return color.RGBA{
		R: uint8(255 * colorVec.X),
		G: uint8(255 * colorVec.Y),
		B: uint8(255 * colorVec.Z),
		A: 255,
	}
}
