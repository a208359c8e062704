package bctex

import (
	"fmt"
	"image"
	"io"
	"math/bits"
)

func init() {
	image.RegisterFormat("dds", Magic, Decode, DecodeConfig)
}

// Decode reads a DDS stream and decodes its top-level image.
func Decode(r io.Reader) (image.Image, error) {
	t, err := Read(r)
	if err != nil {
		return nil, err
	}

	return t.Image(nil)
}

// DecodeConfig reads the DDS header and reports the image dimensions.
func DecodeConfig(r io.Reader) (image.Config, error) {
	return ReadConfig(r)
}

// RGB returns the texture as a Width*Height*3 byte RGB888 raster, decoding
// BC1 blocks with opts. Nil opts uses defaults.
func (t *Texture) RGB(opts *DecodeOptions) ([]byte, error) {
	if t.Format == FormatBC1 {
		return DecodeBC1WithOptions(t.Payload, t.Width, t.Height, opts)
	}

	u, err := t.unpacker()
	if err != nil {
		return nil, err
	}

	outLen, err := sizeProduct(t.Width, t.Height, 3)
	if err != nil {
		return nil, err
	}

	out := make([]byte, outLen)
	for i, j := 0, 0; j < len(out); i, j = i+u.bpp, j+3 {
		px := u.load(t.Payload[i:])
		out[j+0] = u.r.extract(px)
		out[j+1] = u.g.extract(px)
		out[j+2] = u.b.extract(px)
	}

	return out, nil
}

// Image returns the texture as an NRGBA image. BC1 textures are opaque;
// uncompressed textures keep the alpha channel when the pixel format has one.
func (t *Texture) Image(opts *DecodeOptions) (*image.NRGBA, error) {
	if t.Format == FormatBC1 {
		rgb, err := t.RGB(opts)
		if err != nil {
			return nil, err
		}

		img := image.NewNRGBA(image.Rect(0, 0, int(t.Width), int(t.Height)))
		for i, j := 0, 0; i < len(rgb); i, j = i+3, j+4 {
			img.Pix[j+0] = rgb[i+0]
			img.Pix[j+1] = rgb[i+1]
			img.Pix[j+2] = rgb[i+2]
			img.Pix[j+3] = 0xff
		}
		return img, nil
	}

	u, err := t.unpacker()
	if err != nil {
		return nil, err
	}

	img := image.NewNRGBA(image.Rect(0, 0, int(t.Width), int(t.Height)))
	for i, j := 0, 0; j < len(img.Pix); i, j = i+u.bpp, j+4 {
		px := u.load(t.Payload[i:])
		img.Pix[j+0] = u.r.extract(px)
		img.Pix[j+1] = u.g.extract(px)
		img.Pix[j+2] = u.b.extract(px)
		img.Pix[j+3] = 0xff
		if u.a.mask != 0 {
			img.Pix[j+3] = u.a.extract(px)
		}
	}

	return img, nil
}

// channel extracts one masked channel and rescales it to 8 bits.
type channel struct {
	mask  uint32
	shift int
	max   uint32
}

func newChannel(mask uint32) channel {
	if mask == 0 {
		return channel{}
	}
	shift := bits.TrailingZeros32(mask)
	return channel{mask: mask, shift: shift, max: mask >> shift}
}

func (c channel) extract(px uint32) uint8 {
	if c.mask == 0 {
		return 0
	}
	v := (px & c.mask) >> c.shift
	if c.max == 0xff {
		return uint8(v)
	}
	// #nosec G115 -- v <= max, result <= 255.
	return uint8(uint64(v) * 255 / uint64(c.max))
}

type unpacker struct {
	r, g, b, a channel
	bpp        int
}

func (u *unpacker) load(p []byte) uint32 {
	px := uint32(p[0]) | uint32(p[1])<<8 | uint32(p[2])<<16
	if u.bpp == 4 {
		px |= uint32(p[3]) << 24
	}
	return px
}

// unpacker validates the payload size and resolves channel masks. DDS
// stores uncompressed pixels as BGR(A) when no masks are given.
func (t *Texture) unpacker() (*unpacker, error) {
	bpp := t.BytesPerPixel()
	if bpp == 0 {
		return nil, fmt.Errorf("%w: %s", ErrUnsupportedFormat, t.Format)
	}

	want, err := sizeProduct(t.Width, t.Height, uint32(bpp)) // #nosec G115 -- 3 or 4.
	if err != nil {
		return nil, err
	}
	if len(t.Payload) < want {
		return nil, fmt.Errorf("%w: payload %d bytes, need %d", ErrMalformed, len(t.Payload), want)
	}

	m := t.Masks
	if m.R == 0 && m.G == 0 && m.B == 0 {
		m.R, m.G, m.B = 0x00ff0000, 0x0000ff00, 0x000000ff
	}
	if bpp == 3 {
		m.A = 0
	}

	return &unpacker{
		r:   newChannel(m.R),
		g:   newChannel(m.G),
		b:   newChannel(m.B),
		a:   newChannel(m.A),
		bpp: bpp,
	}, nil
}
