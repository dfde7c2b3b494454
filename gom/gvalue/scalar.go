package gvalue

import (
	"encoding/json"
	"errors"
	"strconv"
	"strings"

	pkgerrors "github.com/pkg/errors"
	"github.com/thanhnguyen2187/gom-savior/gom/gbigint"
	"github.com/thanhnguyen2187/gom-savior/gom/gerror"
	"github.com/thanhnguyen2187/gom-savior/gom/gjson"
)

const expectedNumberOrBigInt = "number or BigInt object"

// decodeUnsigned reads a plain JSON integer directly and hands BigInt objects
// to gbigint.
func decodeUnsigned(raw json.RawMessage, caller string) (uint64, error) {
	switch gjson.KindOf(raw) {
	case gjson.KindNumber:
		n, err := gjson.ParseNumber(raw, caller)
		if err != nil {
			return 0, err
		}
		u, err := strconv.ParseUint(n.String(), 10, 64)
		if err == nil {
			return u, nil
		}
		if isNegativeIntegerLiteral(n.String()) {
			return 0, gerror.NegativeIdentifier(
				caller,
				`negative value not permitted for identifier: `+n.String(),
			)
		}
		return 0, gerror.ShapeMismatch(caller, "unsigned 64-bit integer", gjson.Describe(raw))
	case gjson.KindObject:
		value, err := gbigint.DecodeUint64(raw)
		if err != nil {
			return 0, pkgerrors.Wrap(err, caller+" error")
		}
		return value, nil
	}
	return 0, gerror.ShapeMismatch(caller, expectedNumberOrBigInt, gjson.Describe(raw))
}

func isNegativeIntegerLiteral(s string) bool {
	if !strings.HasPrefix(s, "-") || len(s) < 2 {
		return false
	}
	return strings.Trim(s[1:], "0123456789") == "" && strings.Trim(s[1:], "0") != ""
}

func decodeSigned(raw json.RawMessage, caller string) (int64, error) {
	switch gjson.KindOf(raw) {
	case gjson.KindNumber:
		n, err := gjson.ParseNumber(raw, caller)
		if err != nil {
			return 0, err
		}
		i, err := strconv.ParseInt(n.String(), 10, 64)
		if err == nil {
			return i, nil
		}
		if errors.Is(err, strconv.ErrRange) {
			return 0, gerror.IntegerOverflow(
				caller,
				n.String()+` does not fit a signed 64-bit integer`,
			)
		}
		return 0, gerror.ShapeMismatch(caller, "signed 64-bit integer", gjson.Describe(raw))
	case gjson.KindObject:
		value, err := gbigint.DecodeInt64(raw)
		if err != nil {
			return 0, pkgerrors.Wrap(err, caller+" error")
		}
		return value, nil
	}
	return 0, gerror.ShapeMismatch(caller, expectedNumberOrBigInt, gjson.Describe(raw))
}

func DecodeIdentifier(raw json.RawMessage) (Identifier, error) {
	value, err := decodeUnsigned(raw, "gvalue.DecodeIdentifier")
	return Identifier(value), err
}

func DecodeEnumRef(raw json.RawMessage) (EnumRef, error) {
	value, err := decodeUnsigned(raw, "gvalue.DecodeEnumRef")
	return EnumRef(value), err
}

func DecodeInteger(raw json.RawMessage) (Integer, error) {
	value, err := decodeSigned(raw, "gvalue.DecodeInteger")
	return Integer(value), err
}

func DecodeBoolean(raw json.RawMessage) (Boolean, error) {
	value, err := gjson.ParseBool(raw, "gvalue.DecodeBoolean")
	return Boolean(value), err
}

func DecodeText(raw json.RawMessage) (Text, error) {
	value, err := gjson.ParseString(raw, "gvalue.DecodeText")
	return Text(value), err
}

// DecodeFloat32 narrows the number to 32-bit precision, so
// 0.4000000059604645 becomes float32(0.4).
func DecodeFloat32(raw json.RawMessage) (Float32, error) {
	const caller = "gvalue.DecodeFloat32"
	n, err := gjson.ParseNumber(raw, caller)
	if err != nil {
		return 0, err
	}
	f, err := strconv.ParseFloat(n.String(), 32)
	// Out of range is an error here, not a cast to an infinity.
	if errors.Is(err, strconv.ErrRange) {
		return 0, gerror.ShapeMismatch(caller, "number within 32-bit float range", gjson.Describe(raw))
	}
	if err != nil {
		return 0, gerror.ShapeMismatch(caller, "finite number", gjson.Describe(raw))
	}
	return Float32(float32(f)), nil
}
