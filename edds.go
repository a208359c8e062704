package bctex

import (
	"bytes"
	"encoding/binary"
	"fmt"
	"io"

	"github.com/pierrec/lz4/v4"
)

const (
	// BlockMagicCOPY marks an uncompressed EDDS block.
	BlockMagicCOPY = "COPY"
	// BlockMagicLZ4 marks an LZ4-compressed EDDS block.
	BlockMagicLZ4 = "LZ4 "

	// ChunkSize is the Enfusion chunk size for LZ4 streams.
	ChunkSize = 64 * 1024

	lastChunkFlag = 0x80
)

// ReadEDDS reads an Arma/DayZ EDDS (Enfusion DDS) stream and returns its
// top-level image.
//
// EDDS keeps the DDS header but stores each mip level as a COPY or LZ4
// block, smallest level first. Smaller levels are skipped.
func ReadEDDS(r io.Reader) (*Texture, error) {
	h, format, err := readHeader(r)
	if err != nil {
		return nil, err
	}

	size, err := expectedDataLength(format, h.Width, h.Height)
	if err != nil {
		return nil, err
	}

	table, err := readBlockTable(r, mipCount(h))
	if err != nil {
		return nil, err
	}

	top := len(table) - 1
	for i, bh := range table[:top] {
		if _, err := io.CopyN(io.Discard, r, int64(bh.Size)); err != nil {
			return nil, fmt.Errorf("%w: skipping mipmap %d: %w", ErrBlockBodyRead, i, err)
		}
	}

	body, err := readBlockBody(r, table[top])
	if err != nil {
		return nil, err
	}

	payload, err := decompressBlock(body, size)
	if err != nil {
		return nil, err
	}

	return newTexture(h, format, payload), nil
}

type blockHeader struct {
	Magic string
	Size  int32
}

// block is one EDDS block body.
type block struct {
	Magic string
	Data  []byte
}

func readBlockTable(r io.Reader, mipMapCount uint32) ([]blockHeader, error) {
	// Entries are validated as they arrive, so a forged count fails at the
	// first bad entry instead of allocating up front.
	var hdrs []blockHeader
	for i := uint32(0); i < mipMapCount; i++ {
		var entry [8]byte
		if _, err := io.ReadFull(r, entry[:]); err != nil {
			return nil, fmt.Errorf("%w: entry %d: %w", ErrBlockTableRead, i, err)
		}

		magic := string(entry[:4])
		// #nosec G115 -- two's complement reinterpretation, checked below.
		size := int32(binary.LittleEndian.Uint32(entry[4:]))

		if magic != BlockMagicCOPY && magic != BlockMagicLZ4 {
			return nil, fmt.Errorf("%w: entry %d: %q", ErrBlockTableUnknownMagic, i, magic)
		}

		if size < 0 {
			return nil, fmt.Errorf("%w: entry %d: %d", ErrBlockTableInvalidSize, i, size)
		}

		hdrs = append(hdrs, blockHeader{Magic: magic, Size: size})
	}

	return hdrs, nil
}

func readBlockBody(r io.Reader, h blockHeader) (*block, error) {
	var buf bytes.Buffer
	if _, err := io.CopyN(&buf, r, int64(h.Size)); err != nil {
		if err == io.EOF {
			err = io.ErrUnexpectedEOF
		}
		return nil, fmt.Errorf("%w: %s: %w", ErrBlockBodyRead, h.Magic, err)
	}

	return &block{Magic: h.Magic, Data: buf.Bytes()}, nil
}

// hasBlockTable reports whether payload opens with an EDDS block table of
// mips entries whose last (top-level) entry fits a size-byte image.
func hasBlockTable(payload []byte, mips uint32, size int) bool {
	if uint64(len(payload)) < uint64(mips)*8 {
		return false
	}

	for i := range int(mips) {
		entry := payload[i*8 : i*8+8]
		magic := string(entry[:4])
		// #nosec G115 -- two's complement reinterpretation.
		n := int32(binary.LittleEndian.Uint32(entry[4:]))
		if n < 0 || (magic != BlockMagicCOPY && magic != BlockMagicLZ4) {
			return false
		}
		if i == int(mips)-1 && magic == BlockMagicCOPY && int(n) != size {
			return false
		}
	}

	return true
}

// decompressBlock inflates an EDDS block into exactly expectedSize bytes.
func decompressBlock(b *block, expectedSize int) ([]byte, error) {
	switch b.Magic {
	case BlockMagicCOPY:
		if len(b.Data) != expectedSize {
			return nil, fmt.Errorf("%w: expected %d, got %d", ErrCopySizeMismatch, expectedSize, len(b.Data))
		}
		return b.Data, nil
	case BlockMagicLZ4:
		return inflateChunkStream(stripSizePrefix(b.Data, expectedSize), expectedSize)
	default:
		return nil, fmt.Errorf("%w: %q", ErrBlockTableUnknownMagic, b.Magic)
	}
}

// stripSizePrefix drops the optional uncompressed-size word writers put in
// front of the chunk stream. The prefix is only recognized when it equals
// size and a plausible chunk header follows.
func stripSizePrefix(data []byte, size int) []byte {
	if len(data) < 8 || int(binary.LittleEndian.Uint32(data)) != size {
		return data
	}
	if n := chunkLen(data[4:8]); n == 0 || n > len(data)-8 {
		return data
	}

	return data[4:]
}

// chunkLen decodes the 3-byte little-endian length of a chunk header.
func chunkLen(hdr []byte) int {
	return int(hdr[0]) | int(hdr[1])<<8 | int(hdr[2])<<16
}

// chunkIter walks an Enfusion LZ4 chunk stream: each chunk is a 3-byte
// compressed length, a flag byte, then an LZ4 block.
type chunkIter struct {
	data []byte
	off  int
}

// next returns the compressed bytes of the following chunk and whether it
// is flagged as the last one.
func (it *chunkIter) next() ([]byte, bool, error) {
	left := len(it.data) - it.off
	if left < 4 {
		return nil, false, fmt.Errorf("%w: chunk header at %d, %d bytes left", ErrChunkStreamTruncated, it.off, left)
	}

	hdr := it.data[it.off : it.off+4]
	n, flags := chunkLen(hdr), hdr[3]
	it.off += 4

	if flags&^lastChunkFlag != 0 {
		return nil, false, fmt.Errorf("%w: 0x%02x", ErrUnknownLZ4Flags, flags)
	}
	if n == 0 || n > len(it.data)-it.off {
		return nil, false, fmt.Errorf("%w: %d at %d, %d bytes left", ErrInvalidChunkSize, n, it.off, len(it.data)-it.off)
	}

	src := it.data[it.off : it.off+n]
	it.off += n

	return src, flags&lastChunkFlag != 0, nil
}

func (it *chunkIter) remaining() int { return len(it.data) - it.off }

// inflateChunkStream decodes a chunk stream into size bytes. Every chunk
// may reference the preceding dictWindow bytes of output, which are taken
// straight from the output buffer.
func inflateChunkStream(data []byte, size int) ([]byte, error) {
	const dictWindow = 64 * 1024

	out := make([]byte, size)
	n := 0
	it := chunkIter{data: data}

	for last := false; !last; {
		src, isLast, err := it.next()
		if err != nil {
			return nil, err
		}
		last = isLast

		if n >= size {
			return nil, fmt.Errorf("%w: chunk past %d bytes", ErrDecodeOverrun, size)
		}

		dst := out[n:min(n+ChunkSize, size)]
		dict := out[max(0, n-dictWindow):n]
		m, err := lz4.UncompressBlockWithDict(src, dst, dict)
		if err != nil {
			return nil, fmt.Errorf("%w: at output offset %d: %w", ErrLZ4Decode, n, err)
		}
		n += m
	}

	if n != size {
		return nil, fmt.Errorf("%w: expected %d, got %d", ErrDecodedSizeMismatch, size, n)
	}
	if it.remaining() != 0 {
		return nil, fmt.Errorf("%w: %d bytes left after decode", ErrBlockLengthMismatch, it.remaining())
	}

	return out, nil
}
