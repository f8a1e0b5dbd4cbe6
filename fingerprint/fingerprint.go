// Package fingerprint computes content hashes used to detect unchanged
// sources and outputs.
package fingerprint

import (
	"github.com/minio/highwayhash"
)

var key = []byte("lojidoc-fingerprint-key-32-bytes")

// Sum returns a 64-bit HighwayHash of data.
func Sum(data []byte) uint64 {
	hash, err := highwayhash.New64(key)
	if err != nil {
		// only returned for keys that are not 32 bytes long
		panic(err)
	}
	hash.Write(data)
	return hash.Sum64()
}
