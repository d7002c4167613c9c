package blob

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/gabriel-vasile/mimetype"
)

const sniffLen = 3072

var ErrUnsupportedType = errors.New("unsupported file type")

var allowedImageTypes = []string{
	"image/png",
	"image/jpeg",
	"image/webp",
	"image/gif",
	"image/avif",
	"image/svg+xml",
}

// SniffImage detects the content type from the first bytes of r and rejects
// anything that is not an allowed image. The returned reader replays the
// consumed header.
func SniffImage(r io.Reader) (io.Reader, string, error) {
	head := make([]byte, sniffLen)
	n, err := io.ReadFull(r, head)
	if err != nil && !errors.Is(err, io.ErrUnexpectedEOF) && !errors.Is(err, io.EOF) {
		return nil, "", fmt.Errorf("read upload header: %w", err)
	}
	head = head[:n]
	if n == 0 {
		return nil, "", fmt.Errorf("%w: empty file", ErrUnsupportedType)
	}

	detected := mimetype.Detect(head)
	for _, allowed := range allowedImageTypes {
		if detected.Is(allowed) {
			return io.MultiReader(bytes.NewReader(head), r), strings.SplitN(detected.String(), ";", 2)[0], nil
		}
	}
	return nil, "", fmt.Errorf("%w: %s", ErrUnsupportedType, detected.String())
}
