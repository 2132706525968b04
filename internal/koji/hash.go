package koji

import (
	"encoding/binary"

	"github.com/cespare/xxhash/v2"
)

// hasher feeds a canonical, length-prefixed encoding of record fields into
// xxhash so that distinct field boundaries never produce the same stream.
type hasher struct {
	d   *xxhash.Digest
	buf [8]byte
}

func newHasher() *hasher {
	return &hasher{d: xxhash.New()}
}

func (h *hasher) int(v int64) {
	binary.LittleEndian.PutUint64(h.buf[:], uint64(v))
	_, _ = h.d.Write(h.buf[:])
}

func (h *hasher) uint(v uint64) {
	binary.LittleEndian.PutUint64(h.buf[:], v)
	_, _ = h.d.Write(h.buf[:])
}

func (h *hasher) str(s string) {
	h.int(int64(len(s)))
	_, _ = h.d.WriteString(s)
}

func (h *hasher) sum() uint64 {
	return h.d.Sum64()
}
