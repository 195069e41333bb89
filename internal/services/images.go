package services

import (
	"bytes"
	"image"
	"image/jpeg"
	"image/png"
	"io"
	"strings"

	"github.com/kingdavid103/Tracking-payment6/internal/apperrors"
	"github.com/kingdavid103/Tracking-payment6/internal/models"

	"github.com/nfnt/resize"
)

// MaxImageBytes is the largest upload accepted before anything is sent.
const MaxImageBytes = 5 << 20

// MaxImagePixels bounds width*height of an image we agree to decode. A small
// compressed file can declare enormous dimensions.
const MaxImagePixels = 4096 * 4096

// PrepareImage checks an uploaded image and scales PNG and JPEG files down
// to maxWidth, keeping the aspect ratio. Other image types are forwarded
// untouched.
func PrepareImage(up models.Upload, maxWidth uint) (models.Upload, error) {
	if !strings.HasPrefix(up.ContentType, "image/") {
		return up, apperrors.NewValidationError("image", "Please select a valid image file")
	}
	if len(up.Data) > MaxImageBytes {
		return up, apperrors.NewValidationError("image", "Image size must be less than 5MB")
	}

	var (
		decodeConfig func(io.Reader) (image.Config, error)
		decode       func(io.Reader) (image.Image, error)
	)
	switch up.ContentType {
	case "image/png":
		decodeConfig, decode = png.DecodeConfig, png.Decode
	case "image/jpeg", "image/jpg":
		decodeConfig, decode = jpeg.DecodeConfig, jpeg.Decode
	default:
		return up, nil
	}

	cfg, err := decodeConfig(bytes.NewReader(up.Data))
	if err != nil {
		return up, apperrors.NewValidationError("image", "Please select a valid image file")
	}
	if cfg.Width <= 0 || cfg.Height <= 0 || int64(cfg.Width)*int64(cfg.Height) > MaxImagePixels {
		return up, apperrors.NewValidationError("image", "Image dimensions are too large")
	}
	img, err := decode(bytes.NewReader(up.Data))
	if err != nil {
		return up, apperrors.NewValidationError("image", "Please select a valid image file")
	}
	if uint(img.Bounds().Dx()) <= maxWidth {
		return up, nil
	}

	scaled := resize.Resize(maxWidth, 0, img, resize.Lanczos3)
	var buf bytes.Buffer
	if up.ContentType == "image/png" {
		err = png.Encode(&buf, scaled)
	} else {
		err = jpeg.Encode(&buf, scaled, &jpeg.Options{Quality: 80})
	}
	if err != nil {
		return up, err
	}
	up.Data = buf.Bytes()
	return up, nil
}
