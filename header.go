package bctex

import (
	"bytes"
	"encoding/binary"
	"errors"
	"fmt"

	"github.com/woozymasta/bcn"
)

const (
	// Magic is the four bytes every DDS stream starts with.
	Magic = "DDS "

	// HeaderSize is the size of the DDS header following the magic.
	HeaderSize = 124
	// PixelFormatSize is the size of the pixel format nested in the header.
	PixelFormatSize = 32

	pixelFormatOffset = 72
)

// HeaderFlags is the DDS header flags bitset.
type HeaderFlags uint32

// Header flags. Writers are expected to set FlagsRequired, but readers
// must not rely on it.
const (
	FlagCaps              = HeaderFlags(bcn.DDSFlagCaps)
	FlagHeight            = HeaderFlags(bcn.DDSFlagHeight)
	FlagWidth             = HeaderFlags(bcn.DDSFlagWidth)
	FlagPitch             = HeaderFlags(bcn.DDSFlagPitch)
	FlagPixelFormat       = HeaderFlags(bcn.DDSFlagPixelFormat)
	FlagMipmapCount       = HeaderFlags(bcn.DDSFlagMipmapCount)
	FlagLinearSize        = HeaderFlags(bcn.DDSFlagLinearSize)
	FlagDepth HeaderFlags = 0x800000

	FlagsRequired = FlagCaps | FlagHeight | FlagWidth | FlagPixelFormat
)

// Has reports whether all bits of f are set.
func (h HeaderFlags) Has(f HeaderFlags) bool { return h&f == f }

// PixelFormatFlags is the DDS pixel format flags bitset.
type PixelFormatFlags uint32

// Pixel format flags.
const (
	PixelHasAlpha                  = PixelFormatFlags(bcn.DDSPFAlphaPixels)
	PixelAlpha    PixelFormatFlags = 0x2
	PixelFourCC                    = PixelFormatFlags(bcn.DDSPFFourCC)
	PixelRGB                       = PixelFormatFlags(bcn.DDSPFRGB)
)

// Has reports whether all bits of f are set.
func (p PixelFormatFlags) Has(f PixelFormatFlags) bool { return p&f == f }

// parseHeader decodes the magic and header bytes with bcn, which checks
// the header size before the pixel format size. The raw bytes only feed
// error messages.
func parseHeader(magic *[4]byte, raw *[HeaderSize]byte) (*bcn.DDSHeader, error) {
	src := make([]byte, 0, len(magic)+len(raw))
	src = append(src, magic[:]...)
	src = append(src, raw[:]...)

	h, err := bcn.ReadDDSHeader(bytes.NewReader(src))
	switch {
	case err == nil:
		return h, nil
	case errors.Is(err, bcn.ErrInvalidDDSMagic):
		return nil, fmt.Errorf("%w: found %q", ErrInvalidMagic, magic[:])
	case errors.Is(err, bcn.ErrInvalidDDSHeaderSize):
		size := binary.LittleEndian.Uint32(raw[0:4])
		return nil, fmt.Errorf("%w: expected %d bytes, found %d bytes", ErrHeaderSize, HeaderSize, size)
	case errors.Is(err, bcn.ErrInvalidDDSPixelFormatSize):
		size := binary.LittleEndian.Uint32(raw[pixelFormatOffset : pixelFormatOffset+4])
		return nil, fmt.Errorf("%w: expected %d bytes, found %d bytes", ErrPixelFormatSize, PixelFormatSize, size)
	default:
		return nil, fmt.Errorf("%w: %w", ErrMalformed, err)
	}
}

// mipCount returns the number of stored mip levels, at least one.
func mipCount(h *bcn.DDSHeader) uint32 {
	if (h.Caps&bcn.DDSCapsMipmap) != 0 && h.MipMapCount > 0 {
		return h.MipMapCount
	}

	return 1
}
