package transform

import (
	"bytes"
	"image"
	"image/color"
	"image/png"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/santhosh-gopisetti/Pixperfect-backend/internal/common"
)

var (
	red   = color.NRGBA{R: 255, A: 255}
	green = color.NRGBA{G: 255, A: 255}
	blue  = color.NRGBA{B: 255, A: 255}
	white = color.NRGBA{R: 255, G: 255, B: 255, A: 255}
)

// testPNG is a 2x2 image with distinct corners:
//
//	red   green
//	blue  white
func testPNG(t *testing.T) []byte {
	t.Helper()
	img := image.NewNRGBA(image.Rect(0, 0, 2, 2))
	img.SetNRGBA(0, 0, red)
	img.SetNRGBA(1, 0, green)
	img.SetNRGBA(0, 1, blue)
	img.SetNRGBA(1, 1, white)

	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, img))
	return buf.Bytes()
}

func decodePNG(t *testing.T, data []byte) *image.NRGBA {
	t.Helper()
	img, err := png.Decode(bytes.NewReader(data))
	require.NoError(t, err)
	out := image.NewNRGBA(img.Bounds())
	for y := img.Bounds().Min.Y; y < img.Bounds().Max.Y; y++ {
		for x := img.Bounds().Min.X; x < img.Bounds().Max.X; x++ {
			out.Set(x, y, img.At(x, y))
		}
	}
	return out
}

func TestParseDegrees(t *testing.T) {
	tests := []struct {
		name    string
		in      string
		want    int
		wantErr bool
	}{
		{name: "positive", in: "90", want: 90},
		{name: "negative", in: "-270", want: -270},
		{name: "zero", in: "0", want: 0},
		{name: "full turn", in: "360", want: 360},
		{name: "non-numeric", in: "abc", wantErr: true},
		{name: "float", in: "90.5", wantErr: true},
		{name: "over range", in: "361", wantErr: true},
		{name: "under range", in: "-400", wantErr: true},
		{name: "empty", in: "", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseDegrees(tt.in)
			if tt.wantErr {
				require.ErrorIs(t, err, common.ErrInvalidParameter)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestParseAxis(t *testing.T) {
	a, err := ParseAxis("axisA")
	require.NoError(t, err)
	assert.Equal(t, AxisA, a)

	b, err := ParseAxis("axisB")
	require.NoError(t, err)
	assert.Equal(t, AxisB, b)

	for _, in := range []string{"", "diagonal", "AXISA", "axisC"} {
		_, err := ParseAxis(in)
		assert.ErrorIs(t, err, common.ErrInvalidParameter, "axis %q", in)
	}
}

func TestRotateQuarterTurn(t *testing.T) {
	out, err := Rotate(testPNG(t), 90)
	require.NoError(t, err)

	img := decodePNG(t, out)
	require.Equal(t, 2, img.Bounds().Dx())
	require.Equal(t, 2, img.Bounds().Dy())

	// Clockwise: the bottom-left corner ends up top-left.
	assert.Equal(t, blue, img.NRGBAAt(0, 0))
	assert.Equal(t, red, img.NRGBAAt(1, 0))
	assert.Equal(t, white, img.NRGBAAt(0, 1))
	assert.Equal(t, green, img.NRGBAAt(1, 1))
}

func TestRotateHalfTurn(t *testing.T) {
	out, err := Rotate(testPNG(t), 180)
	require.NoError(t, err)

	img := decodePNG(t, out)
	assert.Equal(t, white, img.NRGBAAt(0, 0))
	assert.Equal(t, blue, img.NRGBAAt(1, 0))
	assert.Equal(t, green, img.NRGBAAt(0, 1))
	assert.Equal(t, red, img.NRGBAAt(1, 1))
}

func TestRotateDimensionSwap(t *testing.T) {
	src := image.NewNRGBA(image.Rect(0, 0, 3, 1))
	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, src))

	out, err := Rotate(buf.Bytes(), 270)
	require.NoError(t, err)

	img := decodePNG(t, out)
	assert.Equal(t, 1, img.Bounds().Dx())
	assert.Equal(t, 3, img.Bounds().Dy())
}

func TestRotateNoOpAngles(t *testing.T) {
	for _, deg := range []int{0, 360, -360} {
		out, err := Rotate(testPNG(t), deg)
		require.NoError(t, err, "degrees %d", deg)

		img := decodePNG(t, out)
		assert.Equal(t, red, img.NRGBAAt(0, 0), "degrees %d", deg)
		assert.Equal(t, white, img.NRGBAAt(1, 1), "degrees %d", deg)
	}
}

func TestRotateArbitraryAngleExpandsCanvas(t *testing.T) {
	out, err := Rotate(testPNG(t), 45)
	require.NoError(t, err)

	img := decodePNG(t, out)
	assert.Greater(t, img.Bounds().Dx(), 2)
	assert.Greater(t, img.Bounds().Dy(), 2)
}

func TestRotateOutOfRange(t *testing.T) {
	_, err := Rotate(testPNG(t), 720)
	assert.ErrorIs(t, err, common.ErrInvalidParameter)
}

func TestMirrorAxisA(t *testing.T) {
	// axisA mirrors top-to-bottom.
	out, err := Mirror(testPNG(t), AxisA)
	require.NoError(t, err)

	img := decodePNG(t, out)
	assert.Equal(t, blue, img.NRGBAAt(0, 0))
	assert.Equal(t, white, img.NRGBAAt(1, 0))
	assert.Equal(t, red, img.NRGBAAt(0, 1))
	assert.Equal(t, green, img.NRGBAAt(1, 1))
}

func TestMirrorAxisB(t *testing.T) {
	// axisB mirrors left-to-right.
	out, err := Mirror(testPNG(t), AxisB)
	require.NoError(t, err)

	img := decodePNG(t, out)
	assert.Equal(t, green, img.NRGBAAt(0, 0))
	assert.Equal(t, red, img.NRGBAAt(1, 0))
	assert.Equal(t, white, img.NRGBAAt(0, 1))
	assert.Equal(t, blue, img.NRGBAAt(1, 1))
}

func TestMirrorInvalidAxis(t *testing.T) {
	_, err := Mirror(testPNG(t), Axis("diagonal"))
	assert.ErrorIs(t, err, common.ErrInvalidParameter)
}

func TestUndecodableInput(t *testing.T) {
	garbage := []byte("definitely not an image")

	_, err := Rotate(garbage, 90)
	assert.ErrorIs(t, err, common.ErrUnprocessableImage)

	_, err = Mirror(garbage, AxisA)
	assert.ErrorIs(t, err, common.ErrUnprocessableImage)
}
