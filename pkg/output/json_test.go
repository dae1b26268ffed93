package output

import (
	"bytes"
	"context"
	"encoding/json"
	"strings"
	"testing"
)

func TestNewJSONFormatter(t *testing.T) {
	f := NewJSONFormatter(FormatOptions{})
	if f.Name() != "json" {
		t.Errorf("Name() = %q, want %q", f.Name(), "json")
	}
}

func TestJSONFormatter_Format(t *testing.T) {
	f := NewJSONFormatter(FormatOptions{})

	var buf bytes.Buffer
	if err := f.Format(context.Background(), createTestReport(), &buf); err != nil {
		t.Fatalf("Format() error = %v", err)
	}

	var parsed Report
	if err := json.Unmarshal(buf.Bytes(), &parsed); err != nil {
		t.Fatalf("Output is not valid JSON: %v", err)
	}
	if parsed.Summary.ArtifactsParsed != 1 {
		t.Errorf("ArtifactsParsed = %d, want 1", parsed.Summary.ArtifactsParsed)
	}
	if len(parsed.Artifacts) != 1 || parsed.Artifacts[0].Rows != 3 {
		t.Errorf("Artifacts = %+v", parsed.Artifacts)
	}
	if parsed.Timeline.Entries != 4 {
		t.Errorf("Timeline.Entries = %d, want 4", parsed.Timeline.Entries)
	}
}

func TestJSONFormatter_Format_Quiet(t *testing.T) {
	f := NewJSONFormatter(FormatOptions{Quiet: true})

	var buf bytes.Buffer
	if err := f.Format(context.Background(), createTestReport(), &buf); err != nil {
		t.Fatalf("Format() error = %v", err)
	}

	var parsed quietReport
	if err := json.Unmarshal(buf.Bytes(), &parsed); err != nil {
		t.Fatalf("Output is not valid JSON: %v", err)
	}
	if parsed.Summary.TimelineEntries != 4 {
		t.Errorf("TimelineEntries = %d, want 4", parsed.Summary.TimelineEntries)
	}
	if parsed.Failed == nil || len(parsed.Failed) != 0 {
		t.Errorf("Failed = %v, want empty list", parsed.Failed)
	}
}

func TestJSONFormatter_Format_EmptyLists(t *testing.T) {
	f := NewJSONFormatter(FormatOptions{})

	var buf bytes.Buffer
	if err := f.Format(context.Background(), &Report{}, &buf); err != nil {
		t.Fatalf("Format() error = %v", err)
	}

	out := buf.String()
	for _, want := range []string{`"Artifacts": []`, `"Unrecognized": []`} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %s:\n%s", want, out)
		}
	}
}
