package parser

import (
	"fmt"
	"io"
	"strings"

	"golang.org/x/text/encoding"
	"golang.org/x/text/encoding/unicode"
	"golang.org/x/text/transform"
)

// Encoding identifies the on-disk text encoding of an artifact.
type Encoding int

const (
	// EncodingNarrow is UTF-8 text, as written for PcaAppLaunchDic.txt.
	EncodingNarrow Encoding = iota

	// EncodingUTF16LE is little-endian UTF-16, as written for the PcaGeneralDb files.
	EncodingUTF16LE
)

// String returns the encoding name.
func (e Encoding) String() string {
	switch e {
	case EncodingNarrow:
		return "utf-8"
	case EncodingUTF16LE:
		return "utf-16le"
	default:
		return fmt.Sprintf("encoding(%d)", int(e))
	}
}

// Decoder returns a transformer converting the encoding to UTF-8.
// A leading byte order mark is consumed.
func (e Encoding) Decoder() transform.Transformer {
	switch e {
	case EncodingUTF16LE:
		return unicode.UTF16(unicode.LittleEndian, unicode.UseBOM).NewDecoder()
	default:
		return unicode.BOMOverride(encoding.Nop.NewDecoder())
	}
}

// Encoder returns an encoder producing text in this encoding without a BOM.
func (e Encoding) Encoder() *encoding.Encoder {
	switch e {
	case EncodingUTF16LE:
		return unicode.UTF16(unicode.LittleEndian, unicode.IgnoreBOM).NewEncoder()
	default:
		return encoding.Nop.NewEncoder()
	}
}

// Decode converts raw file contents to a UTF-8 string.
func (e Encoding) Decode(data []byte) (string, error) {
	out, _, err := transform.Bytes(e.Decoder(), data)
	if err != nil {
		return "", fmt.Errorf("decoding %s: %w", e, err)
	}
	return string(out), nil
}

// NewReader wraps r so that reads yield UTF-8.
func (e Encoding) NewReader(r io.Reader) io.Reader {
	return transform.NewReader(r, e.Decoder())
}

// SplitLines splits text on \n, \r\n and \r. A trailing line break does not
// produce an empty final line.
func SplitLines(text string) []string {
	text = strings.ReplaceAll(text, "\r\n", "\n")
	text = strings.ReplaceAll(text, "\r", "\n")
	text = strings.TrimSuffix(text, "\n")
	if text == "" {
		return nil
	}
	return strings.Split(text, "\n")
}
