package bctex

import (
	"errors"
	"fmt"
)

// Error kinds. Every error returned by this package matches exactly one of
// them with errors.Is.
var (
	// ErrMalformed indicates a structural violation in the input data.
	ErrMalformed = errors.New("malformed data")
	// ErrStream indicates the underlying reader could not supply the requested bytes.
	ErrStream = errors.New("stream failure")
)

var (
	// ErrInvalidMagic indicates the stream does not start with "DDS ".
	ErrInvalidMagic = fmt.Errorf("%w: DDS magic number not found", ErrMalformed)
	// ErrHeaderSize indicates the declared DDS header size is wrong.
	ErrHeaderSize = fmt.Errorf("%w: header size mismatch", ErrMalformed)
	// ErrPixelFormatSize indicates the declared pixel format size is wrong.
	ErrPixelFormatSize = fmt.Errorf("%w: pixel format size mismatch", ErrMalformed)
	// ErrUnsupportedFormat indicates a compression code this package does not decode.
	ErrUnsupportedFormat = fmt.Errorf("%w: unsupported format", ErrMalformed)
	// ErrSizeOverflow indicates a size or dimension exceeds supported limits.
	ErrSizeOverflow = fmt.Errorf("%w: size overflow", ErrMalformed)
	// ErrBlockLength indicates BC1 data is not a whole number of blocks or too short.
	ErrBlockLength = fmt.Errorf("%w: BC1 data length", ErrMalformed)

	// ErrBlockTableUnknownMagic indicates unknown block magic in the EDDS table.
	ErrBlockTableUnknownMagic = fmt.Errorf("%w: unknown block magic in table", ErrMalformed)
	// ErrBlockTableInvalidSize indicates invalid size in the EDDS table.
	ErrBlockTableInvalidSize = fmt.Errorf("%w: invalid block size in table", ErrMalformed)
	// ErrCopySizeMismatch indicates COPY block data size mismatch.
	ErrCopySizeMismatch = fmt.Errorf("%w: COPY block size mismatch", ErrMalformed)
	// ErrChunkStreamTruncated indicates LZ4 chunk stream is truncated.
	ErrChunkStreamTruncated = fmt.Errorf("%w: LZ4 chunk-stream truncated", ErrMalformed)
	// ErrUnknownLZ4Flags indicates unknown LZ4 chunk flags.
	ErrUnknownLZ4Flags = fmt.Errorf("%w: unknown LZ4 flags", ErrMalformed)
	// ErrInvalidChunkSize indicates invalid LZ4 chunk size.
	ErrInvalidChunkSize = fmt.Errorf("%w: invalid compressed chunk size", ErrMalformed)
	// ErrLZ4Decode indicates LZ4 decode failed.
	ErrLZ4Decode = fmt.Errorf("%w: LZ4 decode failed", ErrMalformed)
	// ErrDecodeOverrun indicates decoded data overruns target buffer.
	ErrDecodeOverrun = fmt.Errorf("%w: decoded LZ4 overruns target buffer", ErrMalformed)
	// ErrDecodedSizeMismatch indicates decoded size mismatch.
	ErrDecodedSizeMismatch = fmt.Errorf("%w: LZ4 decoded size mismatch", ErrMalformed)
	// ErrEDDSContainer indicates a DDS stream that carries an EDDS block table.
	ErrEDDSContainer = fmt.Errorf("%w: EDDS block table in DDS payload", ErrMalformed)
	// ErrBlockLengthMismatch indicates leftover bytes after decode.
	ErrBlockLengthMismatch = fmt.Errorf("%w: LZ4 block length mismatch", ErrMalformed)
)

var (
	// ErrMagicRead indicates the DDS magic could not be read.
	ErrMagicRead = fmt.Errorf("%w: reading DDS magic failed", ErrStream)
	// ErrHeaderRead indicates the DDS header could not be read.
	ErrHeaderRead = fmt.Errorf("%w: reading DDS header failed", ErrStream)
	// ErrPayloadRead indicates the texture payload could not be read.
	ErrPayloadRead = fmt.Errorf("%w: reading payload failed", ErrStream)
	// ErrBlockTableRead indicates the EDDS block table could not be read.
	ErrBlockTableRead = fmt.Errorf("%w: reading block table failed", ErrStream)
	// ErrBlockBodyRead indicates an EDDS block body could not be read.
	ErrBlockBodyRead = fmt.Errorf("%w: reading block body failed", ErrStream)
)
