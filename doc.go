/*
Package bctex reads DDS textures and decodes BC1 (DXT1) block compression.

Read parses the DDS container from any io.Reader and returns the top-level
image as a Texture: uncompressed 24/32-bit pixels, or raw BC1 blocks.
DecodeBC1 expands BC1 blocks into an RGB888 raster. The two are independent;
Texture.RGB and Texture.Image compose them, and the package registers itself
with the image package under the "dds" name.

ReadEDDS handles the Arma/DayZ EDDS variant, whose mip levels are stored as
COPY or LZ4 chunk-stream blocks.

Every error matches either ErrMalformed (the data is structurally invalid) or
ErrStream (the reader failed); reader errors such as io.ErrUnexpectedEOF stay
in the chain.
*/
package bctex
