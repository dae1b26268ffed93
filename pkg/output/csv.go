package output

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"

	"github.com/ccollicutt/pcaparser/pkg/parser"
)

// CSV headers for each report.
var (
	LaunchHeader   = []string{"Execution Time", "File Path"}
	GeneralHeader  = []string{"Creation Time", "Record Type", "File Path", "Product Name", "Company Name", "Product Version", "Program ID", "Message"}
	TimelineHeader = []string{"Execution Time", "File Path"}
)

// TimelineFileName is the name of the merged timeline report.
const TimelineFileName = "PCATimeline.csv"

func newCSVWriter(w io.Writer) *csv.Writer {
	cw := csv.NewWriter(w)
	cw.UseCRLF = true
	return cw
}

func writeRows(w io.Writer, header []string, n int, row func(i int) []string) error {
	cw := newCSVWriter(w)
	if err := cw.Write(header); err != nil {
		return fmt.Errorf("writing header: %w", err)
	}
	for i := 0; i < n; i++ {
		if err := cw.Write(row(i)); err != nil {
			return fmt.Errorf("writing row %d: %w", i+1, err)
		}
	}
	cw.Flush()
	return cw.Error()
}

// WriteLaunchCSV writes app launch records in the order given.
func WriteLaunchCSV(w io.Writer, records []parser.LaunchRecord) error {
	return writeRows(w, LaunchHeader, len(records), func(i int) []string {
		r := records[i]
		return []string{r.ExecutionTime, r.FilePath}
	})
}

// WriteGeneralCSV writes general records in the order given.
func WriteGeneralCSV(w io.Writer, records []parser.GeneralRecord) error {
	return writeRows(w, GeneralHeader, len(records), func(i int) []string {
		r := records[i]
		return []string{
			r.CreationTime,
			r.RecordType.String(),
			r.FilePath,
			r.ProductName,
			r.CompanyName,
			r.ProductVersion,
			r.ProgramID,
			r.Message,
		}
	})
}

// WriteTimelineCSV writes timeline entries in the order given.
func WriteTimelineCSV(w io.Writer, entries []parser.TimelineEntry) error {
	return writeRows(w, TimelineHeader, len(entries), func(i int) []string {
		e := entries[i]
		return []string{e.ExecutionTime, e.FilePath}
	})
}

// WriteCSVFile creates path, calls write with the file and closes it.
// The file is closed on every path; a close error is reported when write succeeded.
func WriteCSVFile(path string, write func(io.Writer) error) (err error) {
	f, err := os.Create(path) // #nosec G304 -- output path is derived from the user's output folder
	if err != nil {
		return fmt.Errorf("creating %s: %w", path, err)
	}
	defer func() {
		if cerr := f.Close(); cerr != nil && err == nil {
			err = fmt.Errorf("closing %s: %w", path, cerr)
		}
	}()

	if err := write(f); err != nil {
		return fmt.Errorf("writing %s: %w", path, err)
	}
	return nil
}
