package urlencoded

import (
	"bytes"

	"github.com/indigo-web/utils/uf"

	"github.com/bare-web/bare/http/status"
	"github.com/bare-web/bare/internal/hexconv"
)

// Decode percent-decodes src, appending the result to dst. If there's nothing to be decoded,
// src is returned as is and dst stays intact. dst may be src[:0] in order to decode "into
// itself".
func Decode(src, dst []byte) (decoded, buffer []byte, err error) {
	return decode(src, dst, false)
}

// ExtendedDecode is the same as Decode, but on top also decodes + as spaces, as
// application/x-www-form-urlencoded prescribes.
func ExtendedDecode(src, dst []byte) (decoded, buffer []byte, err error) {
	return decode(src, dst, true)
}

// DecodeString is Decode over strings. The result is a fresh string, unless nothing was
// escaped.
func DecodeString(src string) (string, error) {
	decoded, _, err := Decode(uf.S2B(src), nil)
	return string(decoded), err
}

// ExtendedDecodeString is ExtendedDecode over strings.
func ExtendedDecodeString(src string) (string, error) {
	decoded, _, err := ExtendedDecode(uf.S2B(src), nil)
	return string(decoded), err
}

func decode(src, dst []byte, plus bool) (decoded, buffer []byte, err error) {
	next := nextSpecial(src, plus)
	if next == -1 {
		return src, dst, nil
	}

	head := len(dst)

	for next != -1 {
		dst = append(dst, src[:next]...)

		if src[next] == '+' {
			dst = append(dst, ' ')
			src = src[next+1:]
		} else {
			if len(src)-next < 3 {
				return nil, dst, status.ErrURLDecoding
			}

			a, b := hexconv.Halfbyte[src[next+1]], hexconv.Halfbyte[src[next+2]]
			if a|b > 0x0f {
				return nil, dst, status.ErrURLDecoding
			}

			dst = append(dst, (a<<4)|b)
			src = src[next+3:]
		}

		next = nextSpecial(src, plus)
	}

	dst = append(dst, src...)
	return dst[head:], dst, nil
}

func nextSpecial(src []byte, plus bool) int {
	if !plus {
		return bytes.IndexByte(src, '%')
	}

	return bytes.IndexAny(src, "%+")
}
