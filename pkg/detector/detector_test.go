package detector

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/ccollicutt/pcaparser/pkg/parser"
)

func utf16(t *testing.T, s string) []byte {
	t.Helper()
	b, err := parser.EncodingUTF16LE.Encoder().Bytes([]byte(s))
	if err != nil {
		t.Fatal(err)
	}
	return b
}

func TestDetectEncoding(t *testing.T) {
	tests := []struct {
		name    string
		sample  []byte
		want    parser.Encoding
		wantBOM bool
	}{
		{"utf16 BOM", []byte{0xFF, 0xFE, 'a', 0}, parser.EncodingUTF16LE, true},
		{"utf8 BOM", []byte{0xEF, 0xBB, 0xBF, 'a'}, parser.EncodingNarrow, true},
		{"ascii", []byte("C:\\Windows\\notepad.exe|2024-01-01 00:00:00.000"), parser.EncodingNarrow, false},
		{"utf16 without BOM", nil, parser.EncodingUTF16LE, false},
		{"empty", []byte{}, parser.EncodingNarrow, false},
	}
	tests[3].sample = utf16(t, "2024-01-01 00:00:00.000|0|C:\\x.exe")

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, conf, bom := DetectEncoding(tt.sample)
			if got != tt.want {
				t.Errorf("DetectEncoding() = %v, want %v", got, tt.want)
			}
			if bom != tt.wantBOM {
				t.Errorf("bom = %v, want %v", bom, tt.wantBOM)
			}
			if conf < 0 || conf > 1 {
				t.Errorf("confidence %v out of range", conf)
			}
		})
	}
}

func TestDetectFromFile_General(t *testing.T) {
	dir := t.TempDir()
	content := strings.Join([]string{
		"2024-01-01 00:00:00.000000|0|C:\\a.exe|P|C|V|I|M",
		"2024-01-02 00:00:00.000000|1|C:\\b.sys|P|C|V|I|M",
		"broken|line",
	}, "\r\n") + "\r\n"
	path := filepath.Join(dir, "PcaGeneralDb0.txt")
	if err := os.WriteFile(path, utf16(t, content), 0644); err != nil {
		t.Fatal(err)
	}

	a, _ := parser.LookupArtifact("PcaGeneralDb0.txt")
	result, err := New().DetectFromFile(context.Background(), path, a)
	if err != nil {
		t.Fatalf("DetectFromFile() error = %v", err)
	}

	if result.Encoding != parser.EncodingUTF16LE {
		t.Errorf("Encoding = %v, want utf-16le", result.Encoding)
	}
	if result.SampledLines != 3 {
		t.Errorf("SampledLines = %d, want 3", result.SampledLines)
	}
	if result.FieldCounts[8] != 2 || result.FieldCounts[2] != 1 {
		t.Errorf("FieldCounts = %v", result.FieldCounts)
	}
	if result.DominantFieldCount() != 8 {
		t.Errorf("DominantFieldCount() = %d, want 8", result.DominantFieldCount())
	}
	if result.TimestampsParsed != 2 {
		t.Errorf("TimestampsParsed = %d, want 2", result.TimestampsParsed)
	}
}

func TestDetectFromFile_SampleLimit(t *testing.T) {
	dir := t.TempDir()
	var b strings.Builder
	for i := 0; i < 100; i++ {
		b.WriteString("C:\\app.exe|2024-01-01 00:00:00.000000\n")
	}
	path := filepath.Join(dir, "PcaAppLaunchDic.txt")
	if err := os.WriteFile(path, []byte(b.String()), 0644); err != nil {
		t.Fatal(err)
	}

	a, _ := parser.LookupArtifact("PcaAppLaunchDic.txt")
	result, err := New(WithSampleSize(100)).DetectFromFile(context.Background(), path, a)
	if err != nil {
		t.Fatalf("DetectFromFile() error = %v", err)
	}

	if result.SampledBytes != 100 {
		t.Errorf("SampledBytes = %d, want 100", result.SampledBytes)
	}
	// 38 bytes per line: two whole lines fit, the partial third is dropped.
	if result.SampledLines != 2 {
		t.Errorf("SampledLines = %d, want 2", result.SampledLines)
	}
	if result.TimestampsParsed != 2 {
		t.Errorf("TimestampsParsed = %d, want 2", result.TimestampsParsed)
	}
}

func TestDetectFromFile_NotFound(t *testing.T) {
	a, _ := parser.LookupArtifact("PcaAppLaunchDic.txt")
	if _, err := New().DetectFromFile(context.Background(), "/nonexistent/file", a); err == nil {
		t.Error("DetectFromFile() expected error for missing file")
	}
}

func TestDominantFieldCount_Empty(t *testing.T) {
	r := &DetectionResult{FieldCounts: map[int]int{}}
	if r.DominantFieldCount() != 0 {
		t.Errorf("DominantFieldCount() = %d, want 0", r.DominantFieldCount())
	}
}
