// Package gom decodes a whole GOM export: a JSON array of records, each a node
// header paired with its typed fields.
package gom

import (
	"bytes"

	"github.com/thanhnguyen2187/gom-savior/gom/gnode"
)

type (
	Options struct {
		// Workers bounds the number of records decoded at once. Zero or less
		// falls back to GOMAXPROCS.
		Workers int
	}
	// Result is the outcome of decoding one record. Index is the position of
	// the record in the export array.
	Result struct {
		Index int
		Pair  gnode.NodeObjPair
		Err   error
	}
)

// IsExportFile checks the first meaningful byte only; the content is
// validated while decoding.
func IsExportFile(bs []byte) bool {
	trimmed := bytes.TrimSpace(bs)
	return len(trimmed) > 0 && trimmed[0] == '['
}
