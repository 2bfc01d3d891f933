package ocr

import (
	"bytes"
	"fmt"

	"github.com/disintegration/imaging"
)

// Preprocess selects the image normalization applied before
// recognition. It is a policy choice, not a contract difference: the
// recognizer always accepts the bytes either way.
type Preprocess string

const (
	// PreprocessPlain passes the uploaded image through unchanged.
	PreprocessPlain Preprocess = "plain"
	// PreprocessGrayscale normalizes to single-channel luminance and
	// boosts contrast before recognition.
	PreprocessGrayscale Preprocess = "grayscale"
)

func ParsePreprocess(s string) (Preprocess, error) {
	switch Preprocess(s) {
	case PreprocessPlain, PreprocessGrayscale:
		return Preprocess(s), nil
	case "":
		return PreprocessPlain, nil
	}
	return "", fmt.Errorf("unknown preprocess mode %q", s)
}

// Apply runs the selected normalization over the image bytes. Failures
// to decode count as recognition failures so callers degrade the same
// way they would on a corrupt image.
func (p Preprocess) Apply(image []byte) ([]byte, error) {
	if p != PreprocessGrayscale {
		return image, nil
	}

	src, err := imaging.Decode(bytes.NewReader(image))
	if err != nil {
		return nil, fmt.Errorf("%w: decode image: %v", ErrRecognition, err)
	}

	img := imaging.Grayscale(src)
	img = imaging.AdjustContrast(img, 30)
	img = imaging.Sharpen(img, 1.5)

	var buf bytes.Buffer
	if err := imaging.Encode(&buf, img, imaging.JPEG, imaging.JPEGQuality(92)); err != nil {
		return nil, fmt.Errorf("%w: encode image: %v", ErrRecognition, err)
	}
	return buf.Bytes(), nil
}
