// Package transform applies named image operations to raw byte buffers.
// Operations are pure: bytes in, bytes out, no persistence side effects.
// Output is always re-encoded as PNG.
package transform

import (
	"bytes"
	"fmt"
	"image"
	"image/png"
	"math"
	"strconv"

	_ "image/gif"
	_ "image/jpeg"

	"golang.org/x/image/draw"
	"golang.org/x/image/math/f64"

	"github.com/santhosh-gopisetti/Pixperfect-backend/internal/common"
)

// Axis names the two mirror directions. The names are kept as an opaque
// pair on purpose: axisA mirrors top-to-bottom, axisB mirrors
// left-to-right. Callers send the literal strings "axisA" / "axisB".
type Axis string

const (
	// AxisA flips across the horizontal midline (top-to-bottom).
	AxisA Axis = "axisA"
	// AxisB flips across the vertical midline (left-to-right).
	AxisB Axis = "axisB"
)

// Rotation degrees must stay within one full turn either way.
const (
	MinDegrees = -360
	MaxDegrees = 360
)

// ParseDegrees parses caller input into a rotation angle.
func ParseDegrees(s string) (int, error) {
	deg, err := strconv.Atoi(s)
	if err != nil {
		return 0, fmt.Errorf("%w: degrees must be an integer, got %q", common.ErrInvalidParameter, s)
	}
	if deg < MinDegrees || deg > MaxDegrees {
		return 0, fmt.Errorf("%w: degrees must be within [%d, %d], got %d", common.ErrInvalidParameter, MinDegrees, MaxDegrees, deg)
	}
	return deg, nil
}

// ParseAxis parses caller input into a mirror axis.
func ParseAxis(s string) (Axis, error) {
	switch Axis(s) {
	case AxisA, AxisB:
		return Axis(s), nil
	}
	return "", fmt.Errorf("%w: axis must be %q or %q, got %q", common.ErrInvalidParameter, AxisA, AxisB, s)
}

// Rotate rotates the image clockwise by the given degrees. Right-angle
// rotations are exact pixel moves; any other angle goes through a bilinear
// affine transform onto an expanded canvas.
func Rotate(src []byte, degrees int) ([]byte, error) {
	if degrees < MinDegrees || degrees > MaxDegrees {
		return nil, fmt.Errorf("%w: degrees must be within [%d, %d], got %d", common.ErrInvalidParameter, MinDegrees, MaxDegrees, degrees)
	}

	img, err := decode(src)
	if err != nil {
		return nil, err
	}

	norm := ((degrees % 360) + 360) % 360
	var out *image.NRGBA
	switch norm {
	case 0:
		out = img
	case 90, 180, 270:
		out = rotateRight(img, norm)
	default:
		out = rotateArbitrary(img, norm)
	}

	return encode(out)
}

// Mirror flips the image along the given axis.
func Mirror(src []byte, axis Axis) ([]byte, error) {
	if axis != AxisA && axis != AxisB {
		return nil, fmt.Errorf("%w: axis must be %q or %q, got %q", common.ErrInvalidParameter, AxisA, AxisB, axis)
	}

	img, err := decode(src)
	if err != nil {
		return nil, err
	}

	b := img.Bounds()
	out := image.NewNRGBA(image.Rect(0, 0, b.Dx(), b.Dy()))
	for y := 0; y < b.Dy(); y++ {
		for x := 0; x < b.Dx(); x++ {
			switch axis {
			case AxisA:
				out.Set(x, b.Dy()-1-y, img.At(b.Min.X+x, b.Min.Y+y))
			case AxisB:
				out.Set(b.Dx()-1-x, y, img.At(b.Min.X+x, b.Min.Y+y))
			}
		}
	}

	return encode(out)
}

func decode(src []byte) (*image.NRGBA, error) {
	img, _, err := image.Decode(bytes.NewReader(src))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", common.ErrUnprocessableImage, err)
	}
	b := img.Bounds()
	dst := image.NewNRGBA(image.Rect(0, 0, b.Dx(), b.Dy()))
	draw.Draw(dst, dst.Bounds(), img, b.Min, draw.Src)
	return dst, nil
}

func encode(img *image.NRGBA) ([]byte, error) {
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		return nil, fmt.Errorf("%w: %v", common.ErrUnprocessableImage, err)
	}
	return buf.Bytes(), nil
}

// rotateRight rotates clockwise by 90, 180 or 270 degrees with exact
// pixel moves.
func rotateRight(img *image.NRGBA, degrees int) *image.NRGBA {
	var (
		w = img.Bounds().Dx()
		h = img.Bounds().Dy()
	)

	var out *image.NRGBA
	switch degrees {
	case 90:
		out = image.NewNRGBA(image.Rect(0, 0, h, w))
	case 270:
		out = image.NewNRGBA(image.Rect(0, 0, h, w))
	default:
		out = image.NewNRGBA(image.Rect(0, 0, w, h))
	}

	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			c := img.NRGBAAt(x, y)
			switch degrees {
			case 90:
				out.SetNRGBA(h-1-y, x, c)
			case 180:
				out.SetNRGBA(w-1-x, h-1-y, c)
			case 270:
				out.SetNRGBA(y, w-1-x, c)
			}
		}
	}
	return out
}

// rotateArbitrary rotates clockwise by any angle, expanding the canvas to
// fit the rotated bounding box. Uncovered corners stay transparent.
func rotateArbitrary(img *image.NRGBA, degrees int) *image.NRGBA {
	var (
		rad = float64(degrees) * math.Pi / 180
		sin = math.Sin(rad)
		cos = math.Cos(rad)
		w   = float64(img.Bounds().Dx())
		h   = float64(img.Bounds().Dy())
	)

	outW := int(math.Ceil(math.Abs(w*cos) + math.Abs(h*sin)))
	outH := int(math.Ceil(math.Abs(w*sin) + math.Abs(h*cos)))
	out := image.NewNRGBA(image.Rect(0, 0, outW, outH))

	var (
		cx, cy   = w / 2, h / 2
		dcx, dcy = float64(outW) / 2, float64(outH) / 2
	)
	m := f64.Aff3{
		cos, -sin, dcx - cos*cx + sin*cy,
		sin, cos, dcy - sin*cx - cos*cy,
	}
	draw.BiLinear.Transform(out, m, img, img.Bounds(), draw.Src, nil)
	return out
}
