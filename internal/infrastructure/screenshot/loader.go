package screenshot

import (
	"bytes"
	"fmt"

	"github.com/disintegration/imaging"

	"screen-agent/internal/application/port/output"
)

const mimePNG = "image/png"

// Load opens the image at path, downscales it to maxWidth keeping the aspect
// ratio (0 disables resizing) and re-encodes it as PNG.
func Load(path string, maxWidth int) (output.Image, error) {
	img, err := imaging.Open(path, imaging.AutoOrientation(true))
	if err != nil {
		return output.Image{}, fmt.Errorf("open screenshot: %w", err)
	}

	if maxWidth > 0 && img.Bounds().Dx() > maxWidth {
		img = imaging.Resize(img, maxWidth, 0, imaging.Lanczos)
	}

	var buf bytes.Buffer
	if err := imaging.Encode(&buf, img, imaging.PNG); err != nil {
		return output.Image{}, fmt.Errorf("encode screenshot: %w", err)
	}

	return output.Image{Data: buf.Bytes(), MIMEType: mimePNG}, nil
}
