package tokenizer

import (
	"fmt"
	"strconv"
	"strings"
	"unicode/utf8"
)

// EncodeLabel converts a vocabulary key into its config artifact label.
//
// Special tokens are emitted bare. A character is emitted together with its
// codepoint, e.g. "a (0x0061)", so the artifact stays readable even for
// whitespace and control characters.
func EncodeLabel(token string, specials SpecialTokens) string {
	if specials.Contains(token) {
		return token
	}
	r, _ := utf8.DecodeRuneInString(token)
	return fmt.Sprintf("%c (0x%04x)", r, r)
}

// DecodeLabel converts a config artifact label back into a vocabulary key.
//
// Only the parenthesized hex codepoint is trusted. The literal character in
// front of it is ignored, so "b (0x0061)" decodes to "a".
func DecodeLabel(label string, specials SpecialTokens) (string, error) {
	if specials.Contains(label) {
		return label, nil
	}

	idx := strings.LastIndexByte(label, ' ')
	if idx < 0 {
		return "", &LabelError{Label: label, Reason: "missing codepoint segment"}
	}
	segment := label[idx+1:]
	if !strings.HasPrefix(segment, "(0x") || !strings.HasSuffix(segment, ")") {
		return "", &LabelError{Label: label, Reason: "codepoint segment must look like (0x<hex>)"}
	}
	hex := segment[len("(0x") : len(segment)-1]

	code, err := strconv.ParseUint(hex, 16, 32)
	if err != nil {
		return "", &LabelError{Label: label, Reason: fmt.Sprintf("invalid hex %q", hex)}
	}
	r := rune(code) //nolint:gosec // G115: bounded by ParseUint bitSize 32, checked below.
	if code > utf8.MaxRune || !utf8.ValidRune(r) {
		return "", &LabelError{Label: label, Reason: fmt.Sprintf("codepoint 0x%x is not a valid character", code)}
	}

	return string(r), nil
}
