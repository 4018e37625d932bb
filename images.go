package main

import (
	"bytes"
	"image/png"

	"github.com/disintegration/imaging"
)

// recompressImage re-encodes a JPEG or PNG at web quality and returns the
// smaller of the original and re-encoded bytes, so recompression can never
// grow a file in the output tree. WebP would compress better but every Go
// encoder for it needs cgo; quality-85 JPEG and best-compression PNG keep
// the build portable.
func recompressImage(src []byte, ext string) ([]byte, error) {
	img, err := imaging.Decode(bytes.NewReader(src))
	if err != nil {
		return nil, err
	}

	var buf bytes.Buffer
	switch ext {
	case "png":
		err = imaging.Encode(&buf, img, imaging.PNG, imaging.PNGCompressionLevel(png.BestCompression))
	default:
		err = imaging.Encode(&buf, img, imaging.JPEG, imaging.JPEGQuality(JPEGQuality))
	}
	if err != nil {
		return nil, err
	}

	if buf.Len() >= len(src) {
		return src, nil
	}
	return buf.Bytes(), nil
}
