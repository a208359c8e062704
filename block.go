package bctex

import "encoding/binary"

// BlockSize is the size in bytes of one BC1 block.
const BlockSize = 8

// Block is one BC1 block: two endpoint colors and sixteen 2-bit palette
// indices covering a 4x4 pixel tile. Index 0 occupies the lowest two bits.
type Block struct {
	Color0  Color565
	Color1  Color565
	Indices uint32
}

// ParseBlock reads a block from the first BlockSize bytes of b.
// It panics if b is shorter than BlockSize, like binary.LittleEndian.
func ParseBlock(b []byte) Block {
	_ = b[BlockSize-1]
	return Block{
		Color0:  Color565(binary.LittleEndian.Uint16(b[0:2])),
		Color1:  Color565(binary.LittleEndian.Uint16(b[2:4])),
		Indices: binary.LittleEndian.Uint32(b[4:8]),
	}
}

// Opaque reports whether the block uses the four-color mode. Endpoints are
// compared as packed integers, not as expanded colors.
func (b Block) Opaque() bool {
	return b.Color0 > b.Color1
}

// Palette derives the four block colors. In three-color mode the fourth
// entry is the transparent color, emitted as black.
func (b Block) Palette() [4]Color888 {
	c0 := b.Color0.Expand()
	c1 := b.Color1.Expand()

	if b.Opaque() {
		return [4]Color888{c0, c1, lerpThird(c0, c1), lerpThird(c1, c0)}
	}

	return [4]Color888{c0, c1, average(c0, c1), {}}
}

// Index returns the palette index of pixel n, where n = row*4 + column
// within the tile.
func (b Block) Index(n int) uint8 {
	return uint8((b.Indices >> (uint(n&15) * 2)) & 0x3)
}

// BlockGrid returns the number of block columns and rows covering a
// width x height image. Both are at least one.
func BlockGrid(width, height uint32) (columns, rows uint32) {
	return max(1, blockCount(width)), max(1, blockCount(height))
}

func blockCount(n uint32) uint32 {
	return uint32((uint64(n) + 3) / 4)
}
