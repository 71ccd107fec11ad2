package detect

import (
	"bytes"
	"encoding/base64"
	"fmt"
	"image"
	"strings"

	_ "image/jpeg"
	_ "image/png"

	"golang.org/x/image/draw"
)

// Tensor is a normalized RGB pixel buffer in the classifier's input shape:
// Size*Size*3 float32 values in [0,1], row-major.
type Tensor struct {
	Size   int
	Pixels []float32
}

// DecodeFrame turns an encoded still frame into a classifier input tensor.
// The payload may carry a data-URI prefix ("data:image/jpeg;base64,...");
// everything up to the first comma is stripped before decoding. The frame
// is cropped to the centered square region of interest, resized to
// size x size and normalized.
func DecodeFrame(data string, size int) (Tensor, error) {
	if i := strings.IndexByte(data, ','); i >= 0 {
		data = data[i+1:]
	}

	raw, err := base64.StdEncoding.DecodeString(data)
	if err != nil {
		return Tensor{}, fmt.Errorf("%w: base64: %v", ErrDecode, err)
	}

	img, _, err := image.Decode(bytes.NewReader(raw))
	if err != nil {
		return Tensor{}, fmt.Errorf("%w: %v", ErrDecode, err)
	}

	b := img.Bounds()
	edge := b.Dx()
	if b.Dy() < edge {
		edge = b.Dy()
	}
	if edge == 0 {
		return Tensor{}, fmt.Errorf("%w: empty image", ErrDecode)
	}
	x0 := b.Min.X + (b.Dx()-edge)/2
	y0 := b.Min.Y + (b.Dy()-edge)/2
	roi := image.Rect(x0, y0, x0+edge, y0+edge)

	dst := image.NewRGBA(image.Rect(0, 0, size, size))
	draw.BiLinear.Scale(dst, dst.Bounds(), img, roi, draw.Src, nil)

	pixels := make([]float32, 0, size*size*3)
	for y := 0; y < size; y++ {
		row := dst.Pix[y*dst.Stride : y*dst.Stride+size*4]
		for x := 0; x < size; x++ {
			pixels = append(pixels,
				float32(row[x*4])/255,
				float32(row[x*4+1])/255,
				float32(row[x*4+2])/255,
			)
		}
	}
	return Tensor{Size: size, Pixels: pixels}, nil
}
