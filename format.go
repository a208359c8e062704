package bctex

import (
	"fmt"

	"github.com/woozymasta/bcn"
)

// Format identifies how a texture payload is stored.
type Format int

const (
	// FormatUnknown is the zero Format.
	FormatUnknown Format = iota
	// FormatUncompressed24 stores 3 bytes per pixel.
	FormatUncompressed24
	// FormatUncompressed32 stores 4 bytes per pixel.
	FormatUncompressed32
	// FormatBC1 stores BC1 (DXT1) blocks.
	FormatBC1
)

func (f Format) String() string {
	switch f {
	case FormatUncompressed24:
		return "Uncompressed24"
	case FormatUncompressed32:
		return "Uncompressed32"
	case FormatBC1:
		return "BC1"
	default:
		return fmt.Sprintf("Format(%d)", int(f))
	}
}

// BytesPerPixel returns the pixel size of uncompressed formats and 0
// otherwise.
func (f Format) BytesPerPixel() int {
	switch f {
	case FormatUncompressed24:
		return 3
	case FormatUncompressed32:
		return 4
	default:
		return 0
	}
}

// detectFormat maps the pixel format to a Format. Four-character codes
// other than DXT1 are rejected rather than guessed at.
// Unlike the plain alpha-flag rule, a bit count of 24 or 32 decides the
// uncompressed size before ALPHAPIXELS is consulted.
func detectFormat(h *bcn.DDSHeader) (Format, error) {
	pf := h.PixelFormat
	flags := PixelFormatFlags(pf.Flags)

	if flags.Has(PixelFourCC) {
		switch code := fourCCString(pf.FourCC); code {
		case "DXT1":
			return FormatBC1, nil
		default:
			return FormatUnknown, fmt.Errorf("%w: FourCC %q", ErrUnsupportedFormat, code)
		}
	}

	switch pf.RGBBitCount {
	case 24:
		return FormatUncompressed24, nil
	case 32:
		return FormatUncompressed32, nil
	}
	if flags.Has(PixelHasAlpha) {
		return FormatUncompressed32, nil
	}

	return FormatUncompressed24, nil
}

// expectedDataLength returns the payload size of the top-level image.
func expectedDataLength(format Format, width, height uint32) (int, error) {
	switch format {
	case FormatBC1:
		columns, rows := BlockGrid(width, height)
		return sizeProduct(columns, rows, BlockSize)
	case FormatUncompressed24, FormatUncompressed32:
		// #nosec G115 -- BytesPerPixel is 3 or 4.
		return sizeProduct(width, height, uint32(format.BytesPerPixel()))
	default:
		return 0, fmt.Errorf("%w: %s", ErrUnsupportedFormat, format)
	}
}

func fourCCString(v uint32) string {
	return string([]byte{byte(v), byte(v >> 8), byte(v >> 16), byte(v >> 24)})
}
