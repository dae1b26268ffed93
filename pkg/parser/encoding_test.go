package parser

import (
	"io"
	"reflect"
	"strings"
	"testing"
)

func encodeUTF16LE(t *testing.T, s string) []byte {
	t.Helper()
	b, err := EncodingUTF16LE.Encoder().Bytes([]byte(s))
	if err != nil {
		t.Fatalf("encoding fixture: %v", err)
	}
	return b
}

func TestEncoding_Decode(t *testing.T) {
	tests := []struct {
		name string
		enc  Encoding
		data []byte
		want string
	}{
		{"narrow", EncodingNarrow, []byte("C:\\a.exe|x"), "C:\\a.exe|x"},
		{"narrow with BOM", EncodingNarrow, append([]byte{0xEF, 0xBB, 0xBF}, "abc"...), "abc"},
		{"utf16le", EncodingUTF16LE, []byte{'a', 0, '|', 0, 'b', 0}, "a|b"},
		{"utf16le with BOM", EncodingUTF16LE, []byte{0xFF, 0xFE, 'a', 0}, "a"},
		{"utf16le non-ascii", EncodingUTF16LE, []byte{0xE9, 0x00}, "é"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := tt.enc.Decode(tt.data)
			if err != nil {
				t.Fatalf("Decode() error = %v", err)
			}
			if got != tt.want {
				t.Errorf("Decode() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestEncoding_NewReader(t *testing.T) {
	data := encodeUTF16LE(t, "line one\r\nline two\r\n")
	r := EncodingUTF16LE.NewReader(strings.NewReader(string(data)))
	got, err := io.ReadAll(r)
	if err != nil {
		t.Fatalf("ReadAll() error = %v", err)
	}
	if string(got) != "line one\r\nline two\r\n" {
		t.Errorf("NewReader() yielded %q", got)
	}
}

func TestEncoding_String(t *testing.T) {
	if EncodingNarrow.String() != "utf-8" {
		t.Errorf("EncodingNarrow.String() = %q", EncodingNarrow.String())
	}
	if EncodingUTF16LE.String() != "utf-16le" {
		t.Errorf("EncodingUTF16LE.String() = %q", EncodingUTF16LE.String())
	}
}

func TestSplitLines(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want []string
	}{
		{"empty", "", nil},
		{"single", "a", []string{"a"}},
		{"trailing newline", "a\nb\n", []string{"a", "b"}},
		{"crlf", "a\r\nb\r\n", []string{"a", "b"}},
		{"bare cr", "a\rb", []string{"a", "b"}},
		{"blank middle", "a\n\nb", []string{"a", "", "b"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := SplitLines(tt.in)
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("SplitLines(%q) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}
