package storage

import (
	"encoding/base64"
	"errors"
	"strings"

	"github.com/gabriel-vasile/mimetype"
)

var ErrInvalidDataURI = errors.New("invalid image data URI")

// Image is a decoded upload; Ext carries the leading dot.
type Image struct {
	Data []byte
	Ext  string
}

// DecodeDataURI parses "data:image/<ext>;base64,<data>". The extension from the
// header becomes the stored extension; the payload itself must sniff as an image.
func DecodeDataURI(uri string) (Image, error) {
	header, payload, ok := strings.Cut(uri, ";base64,")
	if !ok || !strings.HasPrefix(header, "data:image/") {
		return Image{}, ErrInvalidDataURI
	}

	ext := strings.ToLower(strings.TrimPrefix(header, "data:image/"))
	if ext == "" || strings.ContainsAny(ext, "/;") {
		return Image{}, ErrInvalidDataURI
	}

	data, err := base64.StdEncoding.DecodeString(payload)
	if err != nil || len(data) == 0 {
		return Image{}, ErrInvalidDataURI
	}

	if !strings.HasPrefix(mimetype.Detect(data).String(), "image/") {
		return Image{}, ErrInvalidDataURI
	}

	return Image{Data: data, Ext: "." + ext}, nil
}
