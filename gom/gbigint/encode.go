package gbigint

import (
	"math/bits"
)

func byteLen(magnitude uint64) uint8 {
	if magnitude == 0 {
		return 1
	}
	return uint8((bits.Len64(magnitude) + 7) / 8)
}

func FromUint64(value uint64) Encoding {
	return Encoding{
		Sign:  SignPositive,
		IntLo: uint32(value),
		IntHi: uint32(value >> 32),
		Len:   byteLen(value),
	}
}

// FromInt64 is the inverse of Int64 for every value except math.MinInt64,
// whose magnitude of 2^63 sets the top bit of IntHi and is rejected on the
// way back.
func FromInt64(value int64) Encoding {
	sign := SignPositive
	magnitude := uint64(value)
	if value < 0 {
		sign = SignNegative
		magnitude = -magnitude
	}
	return Encoding{
		Sign:  sign,
		IntLo: uint32(magnitude),
		IntHi: uint32(magnitude >> 32),
		Len:   byteLen(magnitude),
	}
}
