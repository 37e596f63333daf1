package photo

import (
	"bytes"
	"errors"
	"fmt"
	"image"
	_ "image/gif"
	"image/jpeg"
	_ "image/png"

	"golang.org/x/image/draw"
	_ "golang.org/x/image/webp"

	"github.com/heronet/sellnet/internal/core/domain"
	"github.com/heronet/sellnet/internal/core/ports"
)

const (
	defaultQuality = 75
	// maxPixels bounds the decoded size; a few hundred kilobytes of PNG can
	// describe a gigapixel image.
	maxPixels = 40_000_000
)

// Transform decodes a JPEG, PNG, GIF or WebP image, shrinks it to fit the
// requested box keeping its aspect ratio and re-encodes it as JPEG. Images
// already inside the box are only re-encoded. Images above maxPixels are
// rejected from their header, before any pixel is decoded.
func Transform(data []byte, t ports.Transformation) ([]byte, error) {
	if len(data) == 0 {
		return nil, domain.ErrEmptyPhoto
	}

	cfg, _, err := image.DecodeConfig(bytes.NewReader(data))
	if err != nil {
		return nil, decodeError(err)
	}
	if cfg.Width <= 0 || cfg.Height <= 0 {
		return nil, domain.ErrUnsupportedImage
	}
	if int64(cfg.Width)*int64(cfg.Height) > maxPixels {
		return nil, domain.ErrImageTooLarge
	}

	src, _, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, decodeError(err)
	}

	w, h := fitWithin(src.Bounds().Dx(), src.Bounds().Dy(), t.Width, t.Height)
	dst := image.NewRGBA(image.Rect(0, 0, w, h))
	draw.CatmullRom.Scale(dst, dst.Bounds(), src, src.Bounds(), draw.Over, nil)

	quality := t.Quality
	if quality <= 0 || quality > 100 {
		quality = defaultQuality
	}

	var buf bytes.Buffer
	if err := jpeg.Encode(&buf, dst, &jpeg.Options{Quality: quality}); err != nil {
		return nil, fmt.Errorf("encode image: %w", err)
	}
	return buf.Bytes(), nil
}

func decodeError(err error) error {
	if errors.Is(err, image.ErrFormat) {
		return domain.ErrUnsupportedImage
	}
	return fmt.Errorf("decode image: %w", err)
}

// fitWithin returns the largest size with the source's aspect ratio that fits
// in maxW x maxH. A zero bound leaves that dimension unconstrained.
func fitWithin(w, h, maxW, maxH int) (int, int) {
	if w <= 0 || h <= 0 {
		return 1, 1
	}
	scale := 1.0
	if maxW > 0 && w > maxW {
		scale = float64(maxW) / float64(w)
	}
	if maxH > 0 && float64(h)*scale > float64(maxH) {
		scale = float64(maxH) / float64(h)
	}
	nw, nh := int(float64(w)*scale+0.5), int(float64(h)*scale+0.5)
	if nw < 1 {
		nw = 1
	}
	if nh < 1 {
		nh = 1
	}
	return nw, nh
}
