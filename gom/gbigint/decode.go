package gbigint

import (
	"encoding/json"
	"fmt"
	"math"
	"strconv"

	"github.com/pkg/errors"
	"github.com/thanhnguyen2187/gom-savior/gom/gerror"
	"github.com/thanhnguyen2187/gom-savior/gom/gjson"
)

// Decode reads a `{"sign", "intLo", "intHi", "len"}` object. It checks the
// shape of every word but not the range of the final value; that depends on
// whether the caller wants Uint64 or Int64.
func Decode(raw json.RawMessage) (*Encoding, error) {
	const caller = "gbigint.Decode"
	obj, err := gjson.ParseObject(raw, caller)
	if err != nil {
		return nil, err
	}

	signNumber, err := obj.KeyNumber(KeySign, caller)
	if err != nil {
		return nil, err
	}
	sign, err := strconv.ParseInt(signNumber.String(), 10, 8)
	if err != nil || (int8(sign) != SignPositive && int8(sign) != SignNegative) {
		return nil, gerror.ShapeMismatch(caller, "sign of 1 or -1", signNumber.String())
	}

	intLo, err := decodeWord(obj, KeyIntLo)
	if err != nil {
		return nil, err
	}
	intHi, err := decodeWord(obj, KeyIntHi)
	if err != nil {
		return nil, err
	}

	encoding := Encoding{
		Sign:  int8(sign),
		IntLo: intLo,
		IntHi: intHi,
	}
	// len is informational; a missing or odd value is not worth failing over
	if lenRaw, ok := obj[KeyLen]; ok {
		if n, err := gjson.ParseUint(lenRaw, caller); err == nil && n <= math.MaxUint8 {
			encoding.Len = uint8(n)
		}
	}

	return &encoding, nil
}

func decodeWord(obj gjson.Object, key string) (uint32, error) {
	const caller = "gbigint.Decode"
	word, err := obj.KeyUint(key, caller)
	if err != nil {
		return 0, err
	}
	if word > math.MaxUint32 {
		return 0, gerror.ShapeMismatch(
			fmt.Sprintf("%s[%s]", caller, key),
			"32-bit word",
			strconv.FormatUint(word, 10),
		)
	}
	return uint32(word), nil
}

func (r Encoding) magnitude() uint64 {
	return uint64(r.IntHi)<<32 | uint64(r.IntLo)
}

// Uint64 is the unsigned path used by identifiers and enum references. No
// overflow is possible since both words are 32 bits wide; only the sign can
// be wrong.
func (r Encoding) Uint64() (uint64, error) {
	const caller = "gbigint.Encoding.Uint64"
	switch r.Sign {
	case SignPositive:
		return r.magnitude(), nil
	case SignNegative:
		return 0, gerror.NegativeIdentifier(
			caller,
			fmt.Sprintf(`negative value not permitted for identifier: %s`, r),
		)
	}
	return 0, gerror.ShapeMismatch(caller, "sign of 1 or -1", strconv.Itoa(int(r.Sign)))
}

// Int64 is the signed path. The magnitude has to stay below 2^63, which means
// the top bit of IntHi must be clear.
func (r Encoding) Int64() (int64, error) {
	const caller = "gbigint.Encoding.Int64"
	if r.Sign != SignPositive && r.Sign != SignNegative {
		return 0, gerror.ShapeMismatch(caller, "sign of 1 or -1", strconv.Itoa(int(r.Sign)))
	}
	if r.IntHi>>31 != 0 {
		return 0, gerror.IntegerOverflow(
			caller,
			fmt.Sprintf(`magnitude of %s does not fit a signed 64-bit integer`, r),
		)
	}
	return int64(r.magnitude()) * int64(r.Sign), nil
}

func (r Encoding) String() string {
	return fmt.Sprintf(
		`{sign: %d, intLo: %d, intHi: %d, len: %d}`,
		r.Sign, r.IntLo, r.IntHi, r.Len,
	)
}

// DecodeUint64 and DecodeInt64 chain Decode with the matching range check.
func DecodeUint64(raw json.RawMessage) (uint64, error) {
	encoding, err := Decode(raw)
	if err != nil {
		return 0, err
	}
	value, err := encoding.Uint64()
	if err != nil {
		return 0, errors.Wrap(err, "gbigint.DecodeUint64 error")
	}
	return value, nil
}

func DecodeInt64(raw json.RawMessage) (int64, error) {
	encoding, err := Decode(raw)
	if err != nil {
		return 0, err
	}
	value, err := encoding.Int64()
	if err != nil {
		return 0, errors.Wrap(err, "gbigint.DecodeInt64 error")
	}
	return value, nil
}
