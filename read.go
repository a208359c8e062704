package bctex

import (
	"bytes"
	"fmt"
	"image"
	"image/color"
	"io"

	"github.com/woozymasta/bcn"
)

// Read reads a DDS stream and returns its top-level image. BC1 payloads are
// returned as raw blocks; pass them to DecodeBC1 or use Texture.RGB.
//
// Bytes following the top-level image (mip levels) are left unread.
// EDDS streams share the DDS magic; when the payload starts with an EDDS
// block table Read fails with ErrEDDSContainer and ReadEDDS must be used.
func Read(r io.Reader) (*Texture, error) {
	h, format, err := readHeader(r)
	if err != nil {
		return nil, err
	}

	size, err := expectedDataLength(format, h.Width, h.Height)
	if err != nil {
		return nil, err
	}

	// Compressed EDDS bodies are often shorter than the image, so the
	// table check also runs on a short payload.
	payload, err := readPayload(r, size)
	if hasBlockTable(payload, mipCount(h), size) {
		return nil, fmt.Errorf("%w: payload starts with %q", ErrEDDSContainer, payload[:4])
	}
	if err != nil {
		return nil, err
	}

	return newTexture(h, format, payload), nil
}

// ReadConfig reads the DDS header only and reports the image dimensions.
// Unsupported formats fail the same way they fail in Read.
func ReadConfig(r io.Reader) (image.Config, error) {
	h, _, err := readHeader(r)
	if err != nil {
		return image.Config{}, err
	}

	return image.Config{
		Width:      int(h.Width),
		Height:     int(h.Height),
		ColorModel: color.NRGBAModel,
	}, nil
}

// readHeader reads and validates the magic, header and pixel format.
// Short reads are stream failures; everything bcn rejects is malformed.
func readHeader(r io.Reader) (*bcn.DDSHeader, Format, error) {
	var magic [4]byte
	if _, err := io.ReadFull(r, magic[:]); err != nil {
		return nil, FormatUnknown, fmt.Errorf("%w: %w", ErrMagicRead, err)
	}
	if string(magic[:]) != Magic {
		return nil, FormatUnknown, fmt.Errorf("%w: found %q", ErrInvalidMagic, magic[:])
	}

	var buf [HeaderSize]byte
	if _, err := io.ReadFull(r, buf[:]); err != nil {
		return nil, FormatUnknown, fmt.Errorf("%w: %w", ErrHeaderRead, err)
	}

	h, err := parseHeader(&magic, &buf)
	if err != nil {
		return nil, FormatUnknown, err
	}

	format, err := detectFormat(h)
	if err != nil {
		return nil, FormatUnknown, err
	}

	return h, format, nil
}

// readPayload reads exactly size bytes. The buffer grows with the data
// actually received, so a forged header cannot force a large allocation.
// On a short read the bytes received so far are returned with the error.
func readPayload(r io.Reader, size int) ([]byte, error) {
	var buf bytes.Buffer
	n, err := io.CopyN(&buf, r, int64(size))
	if err != nil {
		if err == io.EOF {
			err = io.ErrUnexpectedEOF
		}
		return buf.Bytes(), fmt.Errorf("%w: expected %d bytes, got %d: %w", ErrPayloadRead, size, n, err)
	}

	return buf.Bytes(), nil
}
