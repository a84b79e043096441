package doctree

import (
	"bytes"
	"encoding/hex"

	"github.com/zeebo/blake3"
)

// HashTree computes the BLAKE3 hash of a node's serialized form and
// returns it as a hex string. Two trees hash equal iff they serialize
// identically, which is what pipeline change detection needs.
func HashTree(n Node) string {
	var buf bytes.Buffer
	writeNode(&buf, n)
	sum := blake3.Sum256(buf.Bytes())
	return hex.EncodeToString(sum[:])
}

// HashDocument computes the BLAKE3 hash of a full document, covering
// both its name and its tree.
func HashDocument(d *Document) string {
	h := blake3.New()
	h.Write([]byte(d.Name))
	h.Write([]byte{0})
	h.Write(d.XML())
	return hex.EncodeToString(h.Sum(nil))
}
