package git

import (
	"fmt"
	"strconv"
	"strings"
	"unicode/utf8"
)

// NeedsQuoting reports whether git would quote path in porcelain output.
// Git quotes paths containing spaces, double quotes, backslashes, control
// characters and (with core.quotePath, the default) any byte >= 0x80.
func NeedsQuoting(path string) bool {
	for i := 0; i < len(path); i++ {
		c := path[i]
		if c == ' ' || c == '"' || c == '\\' || c < 0x20 || c >= 0x7f {
			return true
		}
	}
	return false
}

// QuotePath quotes path the way git does (C-style, octal escapes for bytes
// outside printable ASCII). Paths that do not need quoting are returned as-is.
func QuotePath(path string) string {
	if !NeedsQuoting(path) {
		return path
	}
	var sb strings.Builder
	sb.WriteByte('"')
	for i := 0; i < len(path); i++ {
		c := path[i]
		switch c {
		case '"':
			sb.WriteString(`\"`)
		case '\\':
			sb.WriteString(`\\`)
		case '\a':
			sb.WriteString(`\a`)
		case '\b':
			sb.WriteString(`\b`)
		case '\t':
			sb.WriteString(`\t`)
		case '\n':
			sb.WriteString(`\n`)
		case '\v':
			sb.WriteString(`\v`)
		case '\f':
			sb.WriteString(`\f`)
		case '\r':
			sb.WriteString(`\r`)
		default:
			if c < 0x20 || c >= 0x7f {
				_, _ = fmt.Fprintf(&sb, `\%03o`, c)
			} else {
				sb.WriteByte(c)
			}
		}
	}
	sb.WriteByte('"')
	return sb.String()
}

// UnquotePath decodes the body of a C-style quoted path (without the
// surrounding double quotes). Octal escapes produce raw bytes, so multi-byte
// UTF-8 sequences escaped byte by byte are reassembled.
func UnquotePath(body string) (string, error) {
	if !strings.ContainsRune(body, '\\') {
		return body, nil
	}
	buf := make([]byte, 0, len(body))
	s := body
	for len(s) > 0 {
		if s[0] != '\\' {
			// Copied byte-wise so invalid UTF-8 survives untouched.
			buf = append(buf, s[0])
			s = s[1:]
			continue
		}
		value, multibyte, tail, err := strconv.UnquoteChar(s, '"')
		if err != nil {
			return "", fmt.Errorf("invalid escape sequence in %q", body)
		}
		s = tail
		if value < utf8.RuneSelf || !multibyte {
			buf = append(buf, byte(value))
		} else {
			buf = utf8.AppendRune(buf, value)
		}
	}
	return string(buf), nil
}
