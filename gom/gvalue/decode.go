package gvalue

import (
	"encoding/json"
)

// Decode builds the variant selected by code. The type code alone decides
// the variant; the shape of raw is only checked against it. Codes without a
// decoder keep their raw JSON as Opaque instead of failing the whole record.
func Decode(raw json.RawMessage, code TypeCode) (FieldValue, error) {
	switch code {
	case TypeCodeIdentifier:
		return wrap(DecodeIdentifier(raw))
	case TypeCodeInteger:
		return wrap(DecodeInteger(raw))
	case TypeCodeBoolean:
		return wrap(DecodeBoolean(raw))
	case TypeCodeFloat32:
		return wrap(DecodeFloat32(raw))
	case TypeCodeEnumRef:
		return wrap(DecodeEnumRef(raw))
	case TypeCodeText:
		return wrap(DecodeText(raw))
	case TypeCodeList:
		return wrap(DecodeList(raw))
	case TypeCodeLookupList:
		return wrap(DecodeLookupList(raw))
	default:
		return NewOpaque(code, raw), nil
	}
}

// wrap turns a concrete decoder result into a FieldValue, dropping the
// zero value on failure so callers never see a half-decoded variant.
func wrap[T FieldValue](value T, err error) (FieldValue, error) {
	if err != nil {
		return nil, err
	}
	return value, nil
}
