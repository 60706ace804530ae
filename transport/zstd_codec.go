package transport

import (
	"encoding/binary"

	"github.com/DataDog/zstd"

	"github.com/phil-mansfield/haloflow/haloerr"
)

// This file wires github.com/DataDog/zstd — the compressor guppy's own
// lib/compress package uses to shrink converted snapshot files — into the
// exchange engine's optional wire codec. Compression is lossless, so a
// Copier built with UseCompression still satisfies spec invariants 5 and 7
// (exchange is a function of the plan; round-trip is exact) bit-for-bit.

// lengthPrefixBytes is the size of the encoded-length header EncodeCompressed
// writes ahead of the compressed payload.
const lengthPrefixBytes = 8

// CompressedBufSize returns the fixed buffer size a Motion2Way must
// allocate to carry a compressed payload of a message whose raw
// (uncompressed) size is decompressedLen bytes. The buffer is sized once,
// at Copier-construction time, to the worst case so message sizes stay
// fixed regardless of how well a particular exchange's data compresses.
func CompressedBufSize(decompressedLen int) int {
	return zstd.CompressBound(decompressedLen) + lengthPrefixBytes
}

// EncodeCompressed compresses src into dst, which must be at least
// CompressedBufSize(len(src)) bytes. Unused tail bytes are left untouched;
// DecodeCompressed only reads as many bytes as the embedded length prefix
// says were written.
func EncodeCompressed(dst, src []byte) {
	compressed, err := zstd.Compress(nil, src)
	if err != nil {
		haloerr.Internal("transport: zstd compression failed: %v", err)
	}
	if len(dst) < lengthPrefixBytes+len(compressed) {
		haloerr.Internal(
			"transport: compressed payload of %d bytes does not fit in %d-byte buffer",
			len(compressed), len(dst))
	}
	binary.LittleEndian.PutUint64(dst[:lengthPrefixBytes], uint64(len(compressed)))
	copy(dst[lengthPrefixBytes:], compressed)
}

// DecodeCompressed decompresses the payload EncodeCompressed wrote into buf,
// writing the result into out (which must be exactly the original
// decompressed length).
func DecodeCompressed(buf, out []byte) {
	n := binary.LittleEndian.Uint64(buf[:lengthPrefixBytes])
	end := lengthPrefixBytes + int(n)
	if end > len(buf) {
		haloerr.Internal("transport: corrupt compressed length prefix %d exceeds buffer", n)
	}
	decompressed, err := zstd.Decompress(out[:0], buf[lengthPrefixBytes:end])
	if err != nil {
		haloerr.Internal("transport: zstd decompression failed: %v", err)
	}
	copy(out, decompressed)
}
