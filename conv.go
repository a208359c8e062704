// SPDX-License-Identifier: MIT
// Copyright (c) 2026 WoozyMasta
// Source: github.com/woozymasta/bctex

package bctex

const maxInt32 = int(^uint32(0) >> 1)

// sizeProduct multiplies dimensions into a byte count no larger than maxInt32.
func sizeProduct(factors ...uint32) (int, error) {
	total := uint64(1)
	for _, f := range factors {
		total *= uint64(f)
		if total > uint64(maxInt32) {
			return 0, ErrSizeOverflow
		}
	}

	return int(total), nil
}
