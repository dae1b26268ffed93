// Package parser reads Program Compatibility Assistant (PCA) artifact files.
package parser

// LaunchRecord is a single entry from PcaAppLaunchDic.txt.
type LaunchRecord struct {
	// ExecutionTime is the normalized last execution time.
	ExecutionTime string

	// FilePath is the executable path as recorded by PCA.
	FilePath string
}

// RecordType classifies an entry in the PcaGeneralDb files.
type RecordType int

const (
	RecordInstallerFailed RecordType = iota
	RecordDriverBlocked
	RecordAbnormalExit
	RecordPCAResolveCalled
	RecordUnknown
)

var recordTypeCodes = map[string]RecordType{
	"0": RecordInstallerFailed,
	"1": RecordDriverBlocked,
	"2": RecordAbnormalExit,
	"3": RecordPCAResolveCalled,
}

// ParseRecordType maps the numeric code field of a general record.
// Codes outside the known set map to RecordUnknown.
func ParseRecordType(code string) RecordType {
	if rt, ok := recordTypeCodes[code]; ok {
		return rt
	}
	return RecordUnknown
}

// String returns the label written to the CSV, including the code for known types.
func (r RecordType) String() string {
	switch r {
	case RecordInstallerFailed:
		return "Installer failed (0)"
	case RecordDriverBlocked:
		return "Driver was Blocked (1)"
	case RecordAbnormalExit:
		return "Abnormal Process Exit (2)"
	case RecordPCAResolveCalled:
		return "PCA Resolve is called (3)"
	default:
		return "Unknown"
	}
}

// GeneralRecord is a single entry from PcaGeneralDb0.txt or PcaGeneralDb1.txt.
type GeneralRecord struct {
	CreationTime   string
	RecordType     RecordType
	Code           string // raw record type field
	FilePath       string
	ProductName    string
	CompanyName    string
	ProductVersion string
	ProgramID      string
	Message        string
}

// TimelineEntry is the (time, path) projection used for the merged timeline.
type TimelineEntry struct {
	ExecutionTime string
	FilePath      string

	// Source is the artifact filename the entry was read from.
	Source string
}

// Stats counts what a parser did with the lines of one artifact.
type Stats struct {
	// Lines is the number of non-blank lines read.
	Lines int

	// Records is the number of records produced.
	Records int

	// Skipped is the number of malformed lines dropped.
	Skipped int
}
