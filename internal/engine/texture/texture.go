// Package texture decodes texture images and uploads them to the GPU.
package texture

import (
	"bytes"
	"fmt"
	"image"
	"image/color"
	"image/draw"

	_ "image/jpeg" // register decoder
	_ "image/png"  // register decoder

	"github.com/go-gl/gl/v4.1-core/gl"
	_ "golang.org/x/image/bmp" // register decoder
)

// Decode decodes texture bytes into an image. PNG, JPEG, and BMP are handled
// by the stdlib image registry; anything it rejects is retried as TGA, which
// has no magic bytes to sniff.
func Decode(data []byte) (image.Image, error) {
	img, _, err := image.Decode(bytes.NewReader(data))
	if err == nil {
		return img, nil
	}

	img, tgaErr := DecodeTGA(data)
	if tgaErr != nil {
		return nil, fmt.Errorf("decoding texture: %w", err)
	}
	return img, nil
}

// ToRGBA converts any image to *image.RGBA, the layout the GPU upload expects.
func ToRGBA(img image.Image) *image.RGBA {
	if rgba, ok := img.(*image.RGBA); ok {
		return rgba
	}
	bounds := img.Bounds()
	rgba := image.NewRGBA(bounds)
	draw.Draw(rgba, bounds, img, bounds.Min, draw.Src)
	return rgba
}

// Upload creates an OpenGL texture from an RGBA image and returns its ID.
// Must be called on the thread that owns the GL context.
func Upload(img *image.RGBA) uint32 {
	var tex uint32
	gl.GenTextures(1, &tex)
	gl.BindTexture(gl.TEXTURE_2D, tex)

	bounds := img.Bounds()
	gl.TexImage2D(gl.TEXTURE_2D, 0, gl.RGBA,
		int32(bounds.Dx()), int32(bounds.Dy()), 0,
		gl.RGBA, gl.UNSIGNED_BYTE, gl.Ptr(img.Pix))

	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_WRAP_S, gl.REPEAT)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_WRAP_T, gl.REPEAT)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_MIN_FILTER, gl.LINEAR_MIPMAP_LINEAR)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_MAG_FILTER, gl.LINEAR)
	gl.GenerateMipmap(gl.TEXTURE_2D)

	gl.BindTexture(gl.TEXTURE_2D, 0)
	return tex
}

// Checkerboard returns a small placeholder image, useful when running without
// a texture on disk.
func Checkerboard(size int) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, size, size))
	for y := 0; y < size; y++ {
		for x := 0; x < size; x++ {
			c := color.RGBA{R: 40, G: 40, B: 48, A: 255}
			if (x/4+y/4)%2 == 0 {
				c = color.RGBA{R: 200, G: 200, B: 210, A: 255}
			}
			img.SetRGBA(x, y, c)
		}
	}
	return img
}
