package processor

import (
	"bytes"
	"context"
	"encoding/csv"
	"errors"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ccollicutt/pcaparser/pkg/parser"
)

func writeArtifact(t *testing.T, dir, name, content string) {
	t.Helper()
	data := []byte(content)
	if a, ok := parser.LookupArtifact(name); ok && a.Encoding == parser.EncodingUTF16LE {
		var err error
		data, err = a.Encoding.Encoder().Bytes(data)
		require.NoError(t, err)
	}
	require.NoError(t, os.WriteFile(filepath.Join(dir, name), data, 0644))
}

func readRows(t *testing.T, path string) [][]string {
	t.Helper()
	f, err := os.Open(path)
	require.NoError(t, err)
	defer f.Close()

	rows, err := csv.NewReader(f).ReadAll()
	require.NoError(t, err)
	return rows
}

func newTestProcessor(progress, logs *bytes.Buffer, opts ...Option) *Processor {
	logger := slog.New(slog.NewTextHandler(logs, &slog.HandlerOptions{Level: slog.LevelDebug}))
	return New(append([]Option{WithLogger(logger), WithProgress(progress)}, opts...)...)
}

func TestRun_AllArtifacts(t *testing.T) {
	in := t.TempDir()
	out := t.TempDir()
	writeArtifact(t, in, "PcaAppLaunchDic.txt", "C:\\app.exe|2024-03-01 08:00:00.000000\r\n")
	writeArtifact(t, in, "PcaGeneralDb0.txt",
		"2024-02-01 10:00:00.500000|0|C:\\setup.exe|Setup|Contoso|1.0|0006aa|Installer failed\r\n"+
			"bad|line\r\n")
	writeArtifact(t, in, "PcaGeneralDb1.txt",
		"2024-02-15 11:00:00.000000|3|C:\\tool.exe|Tool|Fabrikam|2.0|0006bb|Resolve\r\n")

	var progress, logs bytes.Buffer
	report, err := newTestProcessor(&progress, &logs).Run(context.Background(), in, out)
	require.NoError(t, err)

	assert.Equal(t, 3, report.Summary.ArtifactsParsed)
	assert.Equal(t, 0, report.Summary.ArtifactsFailed)
	assert.Equal(t, 3, report.Summary.RowsWritten)
	assert.Equal(t, 1, report.Summary.LinesSkipped)
	assert.Equal(t, 3, report.Summary.TimelineEntries)

	general := readRows(t, filepath.Join(out, "PcaGeneralDb0.csv"))
	assert.Equal(t, [][]string{
		{"Creation Time", "Record Type", "File Path", "Product Name", "Company Name", "Product Version", "Program ID", "Message"},
		{"2024-02-01 10:00:00", "Installer failed (0)", "C:\\setup.exe", "Setup", "Contoso", "1.0", "0006aa", "Installer failed"},
	}, general)

	timelineRows := readRows(t, filepath.Join(out, "PCATimeline.csv"))
	assert.Equal(t, [][]string{
		{"Execution Time", "File Path"},
		{"2024-02-01 10:00:00", "C:\\setup.exe"},
		{"2024-02-15 11:00:00", "C:\\tool.exe"},
		{"2024-03-01 08:00:00", "C:\\app.exe"},
	}, timelineRows)

	assert.Contains(t, progress.String(), "[+] Parsing - ")
	assert.Contains(t, progress.String(), "[+] Created - ")
	assert.Contains(t, progress.String(), "[+] Created timeline at - ")
	assert.Contains(t, logs.String(), "Skipping malformed line: bad|line")
}

func TestRun_NoArtifacts(t *testing.T) {
	in := t.TempDir()
	out := t.TempDir()
	writeArtifact(t, in, "unrelated.log", "hello")

	var progress, logs bytes.Buffer
	report, err := newTestProcessor(&progress, &logs).Run(context.Background(), in, out)
	require.NoError(t, err)

	assert.Empty(t, report.Artifacts)
	assert.Equal(t, []string{filepath.Join(in, "unrelated.log")}, report.Unrecognized)
	assert.Contains(t, logs.String(), "New file found")

	data, err := os.ReadFile(filepath.Join(out, "PCATimeline.csv"))
	require.NoError(t, err)
	assert.Equal(t, "Execution Time,File Path\r\n", string(data))

	_, err = os.Stat(filepath.Join(out, "PcaAppLaunchDic.csv"))
	assert.True(t, os.IsNotExist(err), "no per-artifact CSV expected")
}

func TestRun_CreatesOutputFolder(t *testing.T) {
	in := t.TempDir()
	out := filepath.Join(t.TempDir(), "case", "reports")

	var progress, logs bytes.Buffer
	_, err := newTestProcessor(&progress, &logs).Run(context.Background(), in, out)
	require.NoError(t, err)

	info, err := os.Stat(out)
	require.NoError(t, err)
	assert.True(t, info.IsDir())
}

func TestRun_InputNotFound(t *testing.T) {
	var progress, logs bytes.Buffer
	_, err := newTestProcessor(&progress, &logs).Run(context.Background(), "/nonexistent/pca", t.TempDir())
	assert.True(t, errors.Is(err, ErrInputNotFound), "got %v", err)
}

func TestRun_ArtifactFailureContinues(t *testing.T) {
	in := t.TempDir()
	out := t.TempDir()
	writeArtifact(t, in, "PcaAppLaunchDic.txt", "C:\\app.exe|2024-03-01 08:00:00.000000\r\n")
	writeArtifact(t, in, "PcaGeneralDb0.txt", "2024-02-01 10:00:00.0|0|C:\\s.exe|P|C|V|I|M")

	// A directory where the CSV should go makes the write fail.
	require.NoError(t, os.Mkdir(filepath.Join(out, "PcaAppLaunchDic.csv"), 0755))

	var progress, logs bytes.Buffer
	report, err := newTestProcessor(&progress, &logs).Run(context.Background(), in, out)
	require.NoError(t, err)

	require.Len(t, report.Artifacts, 2)
	assert.True(t, report.Artifacts[0].Failed())
	assert.False(t, report.Artifacts[1].Failed())
	assert.True(t, report.HasFailures())
	assert.Equal(t, 2, report.Summary.TimelineEntries)
	assert.Contains(t, logs.String(), "Failed to process artifact")
}

func TestRun_LongLineKeepsTimeline(t *testing.T) {
	in := t.TempDir()
	out := t.TempDir()
	longPath := "C:\\" + strings.Repeat("x", 2<<20) + ".exe"
	writeArtifact(t, in, "PcaAppLaunchDic.txt",
		"C:\\app.exe|2024-03-01 08:00:00.000000\r\n"+longPath+"|2024-03-02 08:00:00.000000\r\n")
	writeArtifact(t, in, "PcaGeneralDb0.txt",
		"2024-02-01 10:00:00.000000|0|C:\\setup.exe|P|C|V|I|M\r\n")

	var progress, logs bytes.Buffer
	report, err := newTestProcessor(&progress, &logs).Run(context.Background(), in, out)
	require.NoError(t, err)

	assert.Equal(t, 2, report.Summary.ArtifactsParsed)
	assert.Empty(t, report.Timeline.Error)
	assert.Empty(t, report.Timeline.Incomplete)
	assert.False(t, report.HasFailures())
	assert.Equal(t, 3, report.Summary.TimelineEntries)

	rows := readRows(t, filepath.Join(out, "PCATimeline.csv"))
	require.Len(t, rows, 4)
	assert.Equal(t, "C:\\setup.exe", rows[1][1])
	assert.Equal(t, "C:\\app.exe", rows[2][1])
	assert.Equal(t, longPath, rows[3][1])

	launch := readRows(t, filepath.Join(out, "PcaAppLaunchDic.csv"))
	assert.Len(t, launch, 3)
}

func TestRun_CROnlyLineEndings(t *testing.T) {
	in := t.TempDir()
	out := t.TempDir()
	writeArtifact(t, in, "PcaAppLaunchDic.txt",
		"C:\\b.exe|2024-03-02 08:00:00.000000\rC:\\a.exe|2024-03-01 08:00:00.000000\r")

	var progress, logs bytes.Buffer
	_, err := newTestProcessor(&progress, &logs).Run(context.Background(), in, out)
	require.NoError(t, err)

	want := [][]string{
		{"Execution Time", "File Path"},
		{"2024-03-01 08:00:00", "C:\\a.exe"},
		{"2024-03-02 08:00:00", "C:\\b.exe"},
	}
	assert.Equal(t, want, readRows(t, filepath.Join(out, "PCATimeline.csv")))
	assert.Len(t, readRows(t, filepath.Join(out, "PcaAppLaunchDic.csv")), 3)
}

func TestRun_WithoutTimeline(t *testing.T) {
	in := t.TempDir()
	out := t.TempDir()

	var progress, logs bytes.Buffer
	_, err := newTestProcessor(&progress, &logs, WithoutTimeline()).Run(context.Background(), in, out)
	require.NoError(t, err)

	_, err = os.Stat(filepath.Join(out, "PCATimeline.csv"))
	assert.True(t, os.IsNotExist(err))
}

func TestNew_Defaults(t *testing.T) {
	p := New(WithLogger(nil), WithProgress(nil))
	assert.NotNil(t, p.logger)
	assert.Equal(t, io.Writer(os.Stdout), p.progress)
	assert.True(t, p.timeline)
}
