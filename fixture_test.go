package bctex

import (
	"bytes"
	"encoding/binary"
	"os"
	"path/filepath"
	"testing"

	"github.com/pierrec/lz4/v4"
	"github.com/woozymasta/bcn"
)

// ddsHeaderBytes builds the magic and a 124-byte header field by field.
type ddsHeaderBytes [4 + HeaderSize]byte

func (b *ddsHeaderBytes) put(off int, v uint32) {
	binary.LittleEndian.PutUint32(b[4+off:], v)
}

// rawHeader returns a valid header for the format. Tests corrupt fields
// through put before serializing.
func rawHeader(width, height uint32, format Format) *ddsHeaderBytes {
	b := &ddsHeaderBytes{}
	copy(b[:4], Magic)
	b.put(0, HeaderSize)
	b.put(8, height)
	b.put(12, width)
	b.put(pixelFormatOffset, PixelFormatSize)
	b.put(104, uint32(bcn.DDSCapsTexture))

	flags := FlagsRequired
	switch format {
	case FormatBC1:
		flags |= FlagLinearSize
		b.put(pixelFormatOffset+4, uint32(PixelFourCC))
		b.put(pixelFormatOffset+8, makeFourCC('D', 'X', 'T', '1'))
	case FormatUncompressed24:
		flags |= FlagPitch
		b.put(pixelFormatOffset+4, uint32(PixelRGB))
		b.put(pixelFormatOffset+12, 24)
		b.put(pixelFormatOffset+16, 0x00ff0000)
		b.put(pixelFormatOffset+20, 0x0000ff00)
		b.put(pixelFormatOffset+24, 0x000000ff)
	case FormatUncompressed32:
		flags |= FlagPitch
		b.put(pixelFormatOffset+4, uint32(PixelRGB|PixelHasAlpha))
		b.put(pixelFormatOffset+12, 32)
		b.put(pixelFormatOffset+16, 0x00ff0000)
		b.put(pixelFormatOffset+20, 0x0000ff00)
		b.put(pixelFormatOffset+24, 0x000000ff)
		b.put(pixelFormatOffset+28, 0xff000000)
	}
	b.put(4, uint32(flags))

	return b
}

func makeFourCC(a, b, c, d byte) uint32 {
	return uint32(a) | uint32(b)<<8 | uint32(c)<<16 | uint32(d)<<24
}

// stream concatenates the header and payload.
func (b *ddsHeaderBytes) stream(payload ...[]byte) *bytes.Reader {
	out := append([]byte(nil), b[:]...)
	for _, p := range payload {
		out = append(out, p...)
	}
	return bytes.NewReader(out)
}

// makeBCNHeader builds a header with bcn the way EDDS writers do.
func makeBCNHeader(t testing.TB, width, height, mipMapCount int) *bcn.DDSHeader {
	t.Helper()

	w32, err := u32FromInt(width)
	if err != nil {
		t.Fatalf("width: %v", err)
	}
	h32, err := u32FromInt(height)
	if err != nil {
		t.Fatalf("height: %v", err)
	}
	mip32, err := u32FromInt(mipMapCount)
	if err != nil {
		t.Fatalf("mipmaps: %v", err)
	}

	flags := uint32(bcn.DDSFlagCaps | bcn.DDSFlagHeight | bcn.DDSFlagWidth | bcn.DDSFlagPixelFormat)
	caps := uint32(bcn.DDSCapsTexture)
	if mip32 > 1 {
		flags |= bcn.DDSFlagMipmapCount
		caps |= bcn.DDSCapsComplex | bcn.DDSCapsMipmap
	}

	hdr := &bcn.DDSHeader{
		Size:        bcn.DDSHeaderSize,
		Flags:       flags | bcn.DDSFlagLinearSize,
		Height:      h32,
		Width:       w32,
		Depth:       1,
		MipMapCount: mip32,
		Caps:        caps,
	}
	hdr.PixelFormat.Size = bcn.DDSPixelFormatSize
	hdr.PixelFormat.Flags = bcn.DDSPFFourCC
	hdr.PixelFormat.FourCC = makeFourCC('D', 'X', 'T', '1')

	return hdr
}

// u32FromInt converts a fixture dimension to a uint32.
func u32FromInt(n int) (uint32, error) {
	if n < 0 || uint64(n) > uint64(^uint32(0)) {
		return 0, ErrSizeOverflow
	}

	return uint32(n), nil
}

func writeBCNHeader(t testing.TB, buf *bytes.Buffer, hdr *bcn.DDSHeader) {
	t.Helper()

	if err := bcn.WriteDDSMagic(buf); err != nil {
		t.Fatalf("WriteDDSMagic: %v", err)
	}
	if err := bcn.WriteDDSHeader(buf, hdr); err != nil {
		t.Fatalf("WriteDDSHeader: %v", err)
	}
}

// lz4ChunkStream compresses data into an Enfusion chunk stream prefixed
// with the uncompressed size.
func lz4ChunkStream(t testing.TB, data []byte) []byte {
	t.Helper()

	var out bytes.Buffer
	_ = binary.Write(&out, binary.LittleEndian, uint32(len(data)))

	compressBuf := make([]byte, lz4.CompressBlockBound(ChunkSize))
	for i := 0; i < len(data); i += ChunkSize {
		end := min(i+ChunkSize, len(data))
		cn, err := lz4.CompressBlockHC(data[i:end], compressBuf, 0, nil, nil)
		if err != nil {
			t.Fatalf("CompressBlockHC: %v", err)
		}
		if cn == 0 {
			t.Fatalf("chunk at %d is incompressible", i)
		}

		out.WriteByte(byte(cn))
		out.WriteByte(byte(cn >> 8))
		out.WriteByte(byte(cn >> 16))
		if end == len(data) {
			out.WriteByte(lastChunkFlag)
		} else {
			out.WriteByte(0)
		}
		out.Write(compressBuf[:cn])
	}

	return out.Bytes()
}

// eddsBlock is a table entry plus body for an EDDS fixture.
type eddsBlock struct {
	magic string
	body  []byte
}

// writeEDDSBlocks appends the block table and bodies, smallest level first.
func writeEDDSBlocks(buf *bytes.Buffer, blocks []eddsBlock) {
	for _, b := range blocks {
		buf.WriteString(b.magic)
		_ = binary.Write(buf, binary.LittleEndian, int32(len(b.body)))
	}
	for _, b := range blocks {
		buf.Write(b.body)
	}
}

func readFixture(t testing.TB, name string) []byte {
	t.Helper()

	data, err := os.ReadFile(filepath.Join("testdata", name))
	if err != nil {
		t.Fatalf("read fixture: %v", err)
	}
	return data
}
