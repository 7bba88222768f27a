package renderer

import (
	"bufio"
	"fmt"
	"io"

	"github.com/df07/go-whitted-raytracer/pkg/core"
)

// WritePPM encodes a flat row-major linear RGB buffer as a binary P6 PPM:
// the header "P6\n<width> <height> 255\n" followed by 3 raw bytes per
// pixel. Channels quantize through min(1, c) * 255, the same mapping as
// the PNG path.
func WritePPM(w io.Writer, pixels []core.Vec3, width, height int) error {
	if len(pixels) != width*height {
		return fmt.Errorf("pixel buffer size %d does not match %dx%d raster", len(pixels), width, height)
	}

	bw := bufio.NewWriter(w)
	if _, err := fmt.Fprintf(bw, "P6\n%d %d 255\n", width, height); err != nil {
		return err
	}

	row := make([]byte, width*3)
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			c := pixels[y*width+x].Clamp(0, 1)
			row[x*3+0] = byte(255 * c.X)
			row[x*3+1] = byte(255 * c.Y)
			row[x*3+2] = byte(255 * c.Z)
		}
		if _, err := bw.Write(row); err != nil {
			return err
		}
	}

	return bw.Flush()
}
