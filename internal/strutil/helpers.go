package strutil

import "strings"

func LStripWS(str string) string {
	for i := 0; i < len(str); i++ {
		switch str[i] {
		case ' ', '\t':
		default:
			return str[i:]
		}
	}

	return ""
}

func RStripWS(str string) string {
	for i := len(str); i > 0; i-- {
		switch str[i-1] {
		case ' ', '\t':
		default:
			return str[:i]
		}
	}

	return ""
}

// StripWS strips spaces and tabs on both sides.
func StripWS(str string) string {
	return RStripWS(LStripWS(str))
}

// CutHeader splits a header value into the value itself and its parameters, if any.
func CutHeader(header string) (value, params string) {
	sep := strings.IndexByte(header, ';')
	if sep == -1 {
		return header, ""
	}

	return header[:sep], LStripWS(header[sep+1:])
}

// StripCR drops a trailing carriage return, so lines terminated by bare LF are handled
// the same way as CRLF-terminated ones.
func StripCR(line string) string {
	if len(line) > 0 && line[len(line)-1] == '\r' {
		return line[:len(line)-1]
	}

	return line
}
