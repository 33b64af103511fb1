package store

import (
	"encoding/binary"
	"encoding/hex"

	"github.com/MKhiriev/go-diff-sync/models"
	"golang.org/x/crypto/blake2b"
)

// checksumSize is the number of digest bytes kept in a state checksum.
const checksumSize = 8

// computeChecksum fingerprints entries, which must be sorted by key. Keys and
// values are length-prefixed so that different splits of the same bytes
// never collide.
func computeChecksum(entries []models.KeyValue) string {
	h, _ := blake2b.New256(nil) // only fails for keys longer than 64 bytes

	var size [8]byte
	write := func(b []byte) {
		binary.BigEndian.PutUint64(size[:], uint64(len(b)))
		h.Write(size[:])
		h.Write(b)
	}
	for _, e := range entries {
		write([]byte(e.Key))
		write(e.Value)
	}

	return hex.EncodeToString(h.Sum(nil)[:checksumSize])
}
