// Package digest implements the hashing helpers of
// original_source/rs-core/digest.hpp: hex encode/decode, a CRC32
// wrapper (SHA256Hex derives namedmutex's lock-file path), and FastHash,
// a non-cryptographic fingerprint for uses where speed matters more than
// collision resistance -- grounded on moby-moby's use of
// github.com/cespare/xxhash/v2 for exactly that role.
package digest

import (
	"crypto/sha256"
	"encoding/hex"
	"hash/crc32"

	"github.com/cespare/xxhash/v2"
)

// Hex encodes b as lowercase hex, matching digest.hpp's hex(array) helper.
func Hex(b []byte) string { return hex.EncodeToString(b) }

// Unhex decodes a lowercase hex string back to bytes.
func Unhex(s string) ([]byte, error) { return hex.DecodeString(s) }

// CRC32 returns the IEEE CRC-32 checksum of data, matching digest.hpp's
// Crc32 class.
func CRC32(data []byte) uint32 { return crc32.ChecksumIEEE(data) }

// SHA256 returns the SHA-256 digest of data, matching digest.hpp's
// RS_DEFINE_HASH_CLASS(Sha256, 256).
func SHA256(data []byte) [32]byte { return sha256.Sum256(data) }

// SHA256Hex is SHA256 followed by Hex, a convenience combination used by
// namedmutex to derive a filesystem-safe lock-file name from an
// arbitrary string, matching original_source/rs-core/ipc.cpp's
// `path = '/' + hex(Sha256()(name))`.
func SHA256Hex(data []byte) string {
	sum := sha256.Sum256(data)
	return hex.EncodeToString(sum[:])
}

// FastHash returns a fast, non-cryptographic 64-bit fingerprint of data,
// filling the role digest.hpp's Fnv1a_std/Murmur3_32 family plays for
// in-process hash tables and sharding -- backed here by xxhash, the
// pack's own fast-hash dependency.
func FastHash(data []byte) uint64 { return xxhash.Sum64(data) }

// FastHashString is FastHash over a string without an intermediate copy.
func FastHashString(s string) uint64 { return xxhash.Sum64String(s) }
