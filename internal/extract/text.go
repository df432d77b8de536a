package extract

import (
	"strconv"
	"strings"
	"unicode/utf8"

	"golang.org/x/text/encoding"
	"golang.org/x/text/encoding/charmap"
)

// decoders is the ordered fallback chain for text-like content. UTF-8 is
// the primary encoding; the legacy single-byte maps cover the bulk of
// non-UTF-8 documents seen in the wild.
var decoders = []*charmap.Charmap{
	charmap.ISO8859_1,
	charmap.Windows1252,
}

// decodeText decodes bytes using the first encoding in the chain that
// succeeds. When nothing decodes cleanly it falls back to a lossy UTF-8
// decode that drops invalid sequences: losing a few characters beats
// aborting the whole document, so decoding never fails.
func decodeText(data []byte) string {
	if utf8.Valid(data) {
		return string(data)
	}
	for _, cm := range decoders {
		if s, err := decodeWith(cm.NewDecoder(), data); err == nil {
			return s
		}
	}
	return strings.ToValidUTF8(string(data), "")
}

func decodeWith(dec *encoding.Decoder, data []byte) (string, error) {
	out, err := dec.Bytes(data)
	if err != nil {
		return "", err
	}
	return string(out), nil
}

// fromText handles plain text and markdown. It cannot fail: the worst
// case is a lossy decode of the primary encoding.
func fromText(data []byte) (string, error) {
	return decodeText(data), nil
}

// fromRTF decodes rich text and strips the formatting layer: groups,
// control words, and hex and unicode escapes, keeping only document
// text. Known destination groups whose payload is metadata rather than
// body text (fonttbl, stylesheet, etc.) are skipped entirely.
func fromRTF(data []byte) (string, error) {
	src := decodeText(data)
	var b strings.Builder
	// \ucN sets how many fallback chars follow each \uN escape.
	ucSkip := 1
	i := 0
	for i < len(src) {
		c := src[i]
		switch c {
		case '{', '}':
			i++
		case '\\':
			i++
			if i >= len(src) {
				break
			}
			switch {
			case src[i] == '\'':
				// \'hh hex escape for a single byte in the document charset
				if i+2 < len(src) {
					if r, ok := hexByte(src[i+1], src[i+2]); ok {
						b.WriteByte(r)
					}
					i += 3
				} else {
					i = len(src)
				}
			case src[i] == '\\' || src[i] == '{' || src[i] == '}':
				b.WriteByte(src[i])
				i++
			case src[i] == '~':
				b.WriteByte(' ')
				i++
			case isRTFAlpha(src[i]):
				word, param, hasParam, next := readControlWord(src, i)
				i = next
				switch word {
				case "par", "line", "sect", "page":
					b.WriteByte('\n')
				case "tab":
					b.WriteByte('\t')
				case "u":
					// \uN is a signed 16-bit code point followed by
					// ucSkip fallback chars for non-unicode readers.
					if hasParam {
						cp := param
						if cp < 0 {
							cp += 0x10000
						}
						b.WriteRune(rune(cp))
						i = skipFallback(src, i, ucSkip)
					}
				case "uc":
					if hasParam && param >= 0 {
						ucSkip = param
					}
				case "fonttbl", "colortbl", "stylesheet", "info", "pict", "header", "footer":
					i = skipGroup(src, i)
				}
			default:
				// unknown control symbol; drop it
				i++
			}
		case '\r':
			i++
		default:
			b.WriteByte(c)
			i++
		}
	}
	return b.String(), nil
}

func isRTFAlpha(c byte) bool {
	return (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z')
}

// readControlWord consumes a control word starting at src[i], including
// its optional signed numeric parameter and a single trailing space
// delimiter.
func readControlWord(src string, i int) (word string, param int, hasParam bool, next int) {
	start := i
	for i < len(src) && isRTFAlpha(src[i]) {
		i++
	}
	word = src[start:i]
	numStart := i
	if i < len(src) && src[i] == '-' {
		i++
	}
	for i < len(src) && src[i] >= '0' && src[i] <= '9' {
		i++
	}
	if i > numStart && src[i-1] >= '0' && src[i-1] <= '9' {
		if n, err := strconv.Atoi(src[numStart:i]); err == nil {
			param, hasParam = n, true
		}
	}
	if i < len(src) && src[i] == ' ' {
		i++
	}
	return word, param, hasParam, i
}

// skipFallback consumes the n fallback characters that trail a \uN
// escape. A fallback may itself be a \'hh escape; a group brace ends the
// run early.
func skipFallback(src string, i, n int) int {
	for ; n > 0 && i < len(src); n-- {
		switch {
		case src[i] == '{' || src[i] == '}':
			return i
		case src[i] == '\\' && i+3 < len(src) && src[i+1] == '\'':
			i += 4
		case src[i] == '\\':
			return i
		default:
			i++
		}
	}
	return i
}

// skipGroup consumes the remainder of the current brace group. The caller
// has already consumed the destination control word; i sits inside the
// group, which the preceding '{' opened at depth 1.
func skipGroup(src string, i int) int {
	depth := 1
	for i < len(src) && depth > 0 {
		switch src[i] {
		case '\\':
			i++ // skip escaped char
		case '{':
			depth++
		case '}':
			depth--
		}
		i++
	}
	return i
}

func hexByte(hi, lo byte) (byte, bool) {
	h, ok1 := hexVal(hi)
	l, ok2 := hexVal(lo)
	if !ok1 || !ok2 {
		return 0, false
	}
	return h<<4 | l, true
}

func hexVal(c byte) (byte, bool) {
	switch {
	case c >= '0' && c <= '9':
		return c - '0', true
	case c >= 'a' && c <= 'f':
		return c - 'a' + 10, true
	case c >= 'A' && c <= 'F':
		return c - 'A' + 10, true
	}
	return 0, false
}
