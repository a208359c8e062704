package bctex

import (
	"fmt"
	"runtime"

	"golang.org/x/sync/errgroup"
)

// DecodeOptions configures BC1 decoding.
type DecodeOptions struct {
	// Workers limits concurrent block-row decoders.
	// 0 uses runtime.GOMAXPROCS(0), 1 decodes on the calling goroutine.
	Workers int
}

// minRowsPerTask keeps tiny images from being split into goroutines that
// cost more than they decode.
const minRowsPerTask = 4

// DecodeBC1 decodes BC1 blocks into a width*height*3 byte RGB888 raster.
func DecodeBC1(data []byte, width, height uint32) ([]byte, error) {
	return DecodeBC1WithOptions(data, width, height, &DecodeOptions{Workers: 1})
}

// DecodeBC1WithOptions decodes BC1 blocks with the given options.
// Nil opts uses defaults.
//
// Blocks are read in row-major order over the 4x4 block grid. Data longer
// than the grid is accepted and the surplus ignored; data that is not a
// multiple of BlockSize or shorter than the grid fails with ErrBlockLength.
// Pixels of edge blocks that fall outside the image are discarded.
func DecodeBC1WithOptions(data []byte, width, height uint32, opts *DecodeOptions) ([]byte, error) {
	if len(data)%BlockSize != 0 {
		return nil, fmt.Errorf("%w: %d bytes is not a multiple of %d", ErrBlockLength, len(data), BlockSize)
	}

	columns, rows := BlockGrid(width, height)
	need, err := sizeProduct(columns, rows, BlockSize)
	if err != nil {
		return nil, err
	}
	if len(data) < need {
		return nil, fmt.Errorf("%w: expected at least %d bytes for %dx%d, got %d", ErrBlockLength, need, width, height, len(data))
	}

	outLen, err := sizeProduct(width, height, 3)
	if err != nil {
		return nil, err
	}
	out := make([]byte, outLen)

	d := bc1Decoder{
		src:     data,
		dst:     out,
		width:   int(width),
		height:  int(height),
		columns: int(columns),
	}

	workers := 0
	if opts != nil {
		workers = opts.Workers
	}
	if workers <= 0 {
		workers = runtime.GOMAXPROCS(0)
	}

	tasks := min(workers, (int(rows)+minRowsPerTask-1)/minRowsPerTask)
	if tasks <= 1 {
		d.decodeRows(0, int(rows))
		return out, nil
	}

	// Each task owns a contiguous range of block rows and therefore a
	// contiguous, disjoint range of output scanlines.
	var g errgroup.Group
	g.SetLimit(workers)
	per := (int(rows) + tasks - 1) / tasks
	for first := 0; first < int(rows); first += per {
		last := min(first+per, int(rows))
		g.Go(func() error {
			d.decodeRows(first, last)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	return out, nil
}

type bc1Decoder struct {
	src     []byte
	dst     []byte
	width   int
	height  int
	columns int
}

// decodeRows decodes block rows [first, last).
func (d *bc1Decoder) decodeRows(first, last int) {
	for blockRow := first; blockRow < last; blockRow++ {
		for blockCol := 0; blockCol < d.columns; blockCol++ {
			off := (blockRow*d.columns + blockCol) * BlockSize
			d.decodeBlock(ParseBlock(d.src[off:off+BlockSize]), blockRow, blockCol)
		}
	}
}

func (d *bc1Decoder) decodeBlock(block Block, blockRow, blockCol int) {
	palette := block.Palette()

	for x := 0; x < 4; x++ {
		row := blockRow*4 + x
		for y := 0; y < 4; y++ {
			c := palette[block.Index(x*4+y)]

			col := blockCol*4 + y
			if row >= d.height || col >= d.width {
				continue
			}

			i := (row*d.width + col) * 3
			d.dst[i+0] = c.R
			d.dst[i+1] = c.G
			d.dst[i+2] = c.B
		}
	}
}
