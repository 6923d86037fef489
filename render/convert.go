package render

import (
	"image"

	"github.com/pkg/errors"
	"github.com/swdee/go-kinectlite"
	"gocv.io/x/gocv"
	"golang.org/x/image/draw"
)

// ToMat converts an RGB PixelBuffer into a BGR gocv Mat.  The caller must
// close the returned Mat.
func ToMat(buf *kinectlite.PixelBuffer) (gocv.Mat, error) {

	rgb, err := gocv.NewMatFromBytes(buf.Height, buf.Width, gocv.MatTypeCV8UC3, buf.Pix)

	if err != nil {
		return gocv.NewMat(), errors.Wrap(err, "error creating Mat from pixel buffer")
	}

	defer rgb.Close()

	bgr := gocv.NewMat()
	gocv.CvtColor(rgb, &bgr, gocv.ColorRGBToBGR)

	return bgr, nil
}

// ScaleToCanvas resizes the PixelBuffer to width x height using the given
// scaler.  The buffer is returned unchanged when it already has that size.
func ScaleToCanvas(buf *kinectlite.PixelBuffer, width, height int,
	scaler draw.Scaler) (*kinectlite.PixelBuffer, error) {

	if buf.Width == width && buf.Height == height {
		return buf, nil
	}

	if width <= 0 || height <= 0 || buf.Width <= 0 || buf.Height <= 0 {
		return nil, errors.Errorf("can not scale %dx%d pixel buffer to %dx%d",
			buf.Width, buf.Height, width, height)
	}

	dst := image.NewRGBA(image.Rect(0, 0, width, height))
	scaler.Scale(dst, dst.Bounds(), buf, buf.Bounds(), draw.Src, nil)

	out, err := kinectlite.NewPixelBuffer(width, height)

	if err != nil {
		return nil, err
	}

	total := width * height

	for i := 0; i < total; i++ {
		copy(out.Pix[i*kinectlite.BytesPerPixel:(i+1)*kinectlite.BytesPerPixel], dst.Pix[i*4:i*4+3])
	}

	return out, nil
}
