// Package gbigint normalizes the export's sign/low32/high32 integer encoding
// into native 64-bit integers.
package gbigint

type (
	// Encoding is a 64-bit magnitude split across two 32-bit words, with the
	// sign kept apart. Len is carried by the export but means nothing to the
	// value.
	Encoding struct {
		Sign  int8   `json:"sign"`
		IntLo uint32 `json:"intLo"`
		IntHi uint32 `json:"intHi"`
		Len   uint8  `json:"len"`
	}
)

const (
	SignPositive = int8(1)
	SignNegative = int8(-1)

	KeySign  = "sign"
	KeyIntLo = "intLo"
	KeyIntHi = "intHi"
	KeyLen   = "len"
)
