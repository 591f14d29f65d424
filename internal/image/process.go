// Package image provides optional photo downscaling before upload to cut
// bandwidth on slow connections. By default photos are sent as selected.
package image

import (
	"bytes"
	"fmt"
	"image"
	"image/jpeg"

	// Import image decoders
	_ "image/gif"
	_ "image/png"

	"github.com/amani1505/tailoring-bridge/internal/config"
)

// Processor handles image resizing and quality adjustment
type Processor struct {
	config *config.Image
}

// NewProcessor creates a new image processor with the given settings.
// A nil config means passthrough.
func NewProcessor(cfg *config.Image) *Processor {
	return &Processor{config: cfg}
}

// Enabled reports whether any transformation is configured
func (p *Processor) Enabled() bool {
	return p.config != nil && p.config.NeedsProcessing()
}

// Process applies configured transformations to photo data.
// Returns the processed JPEG data, or the original if no processing is needed.
func (p *Processor) Process(data []byte) ([]byte, error) {
	if p.config == nil || !p.config.NeedsProcessing() {
		return data, nil
	}

	img, _, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("decode image: %w", err)
	}

	if p.config.MaxWidth > 0 || p.config.MaxHeight > 0 {
		img = p.resize(img)
	}

	quality := p.config.GetQuality()
	if quality == 0 {
		quality = 85
	}

	var buf bytes.Buffer
	if err := jpeg.Encode(&buf, img, &jpeg.Options{Quality: quality}); err != nil {
		return nil, fmt.Errorf("encode JPEG: %w", err)
	}
	return buf.Bytes(), nil
}

// resize scales the image to fit within MaxWidth and MaxHeight,
// maintaining aspect ratio
func (p *Processor) resize(img image.Image) image.Image {
	bounds := img.Bounds()
	origWidth := bounds.Dx()
	origHeight := bounds.Dy()

	maxW := p.config.MaxWidth
	maxH := p.config.MaxHeight

	scaleW := 1.0
	scaleH := 1.0

	if maxW > 0 && origWidth > maxW {
		scaleW = float64(maxW) / float64(origWidth)
	}
	if maxH > 0 && origHeight > maxH {
		scaleH = float64(maxH) / float64(origHeight)
	}

	// Use the smaller scale to fit within both bounds
	scale := scaleW
	if scaleH < scale {
		scale = scaleH
	}
	if scale >= 1.0 {
		return img
	}

	newWidth := int(float64(origWidth) * scale)
	newHeight := int(float64(origHeight) * scale)
	return resizeImage(img, newWidth, newHeight)
}

// resizeImage performs a nearest-neighbor resize. Measurement accuracy is
// driven by the backend's model, which tolerates moderate downscaling.
func resizeImage(src image.Image, width, height int) image.Image {
	bounds := src.Bounds()
	srcW := bounds.Dx()
	srcH := bounds.Dy()

	dst := image.NewRGBA(image.Rect(0, 0, width, height))

	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			px := int(float64(x) * float64(srcW) / float64(width))
			py := int(float64(y) * float64(srcH) / float64(height))

			if px >= srcW {
				px = srcW - 1
			}
			if py >= srcH {
				py = srcH - 1
			}

			dst.Set(x, y, src.At(bounds.Min.X+px, bounds.Min.Y+py))
		}
	}

	return dst
}
