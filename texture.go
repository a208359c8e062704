package bctex

import "github.com/woozymasta/bcn"

// ChannelMasks holds the bit masks locating each channel inside an
// uncompressed pixel.
type ChannelMasks struct {
	R, G, B, A uint32
}

// Texture is the top-level image of a DDS or EDDS stream.
// The payload is owned by the caller.
type Texture struct {
	// Payload holds raw pixels for uncompressed formats and BC1 blocks
	// for FormatBC1, in both cases exactly the size of the top-level image.
	Payload []byte
	// Masks is set for uncompressed formats only.
	Masks  ChannelMasks
	Width  uint32
	Height uint32
	Format Format
}

// Dimensions returns the texture width and height in pixels.
func (t *Texture) Dimensions() (width, height uint32) {
	return t.Width, t.Height
}

// Bytes returns the raw payload.
func (t *Texture) Bytes() []byte {
	return t.Payload
}

// BytesPerPixel returns the pixel size of uncompressed textures and 0 for
// block-compressed ones.
func (t *Texture) BytesPerPixel() int {
	return t.Format.BytesPerPixel()
}

func newTexture(h *bcn.DDSHeader, format Format, payload []byte) *Texture {
	t := &Texture{
		Payload: payload,
		Width:   h.Width,
		Height:  h.Height,
		Format:  format,
	}
	if format != FormatBC1 {
		pf := &h.PixelFormat
		t.Masks = ChannelMasks{R: pf.RBitMask, G: pf.GBitMask, B: pf.BBitMask, A: pf.ABitMask}
	}

	return t
}
