package parser

import (
	"fmt"
	"os"
	"path/filepath"
)

// Kind selects the parser for an artifact.
type Kind int

const (
	KindAppLaunch Kind = iota
	KindGeneral
)

// String returns the kind name.
func (k Kind) String() string {
	switch k {
	case KindAppLaunch:
		return "app-launch"
	case KindGeneral:
		return "general"
	default:
		return fmt.Sprintf("kind(%d)", int(k))
	}
}

// Artifact describes one recognized PCA artifact file.
type Artifact struct {
	// Name is the exact, case-sensitive filename.
	Name string

	Kind     Kind
	Encoding Encoding

	// TimeIndex and PathIndex locate the timeline fields in a split line.
	TimeIndex int
	PathIndex int

	// CSVName is the filename of the per-artifact report.
	CSVName string
}

var artifacts = []Artifact{
	{
		Name:      "PcaAppLaunchDic.txt",
		Kind:      KindAppLaunch,
		Encoding:  EncodingNarrow,
		TimeIndex: 1,
		PathIndex: 0,
		CSVName:   "PcaAppLaunchDic.csv",
	},
	{
		Name:      "PcaGeneralDb0.txt",
		Kind:      KindGeneral,
		Encoding:  EncodingUTF16LE,
		TimeIndex: 0,
		PathIndex: 2,
		CSVName:   "PcaGeneralDb0.csv",
	},
	{
		Name:      "PcaGeneralDb1.txt",
		Kind:      KindGeneral,
		Encoding:  EncodingUTF16LE,
		TimeIndex: 0,
		PathIndex: 2,
		CSVName:   "PcaGeneralDb1.csv",
	},
}

// Artifacts returns the recognized artifacts.
func Artifacts() []Artifact {
	out := make([]Artifact, len(artifacts))
	copy(out, artifacts)
	return out
}

// LookupArtifact returns the artifact with the given filename.
func LookupArtifact(name string) (Artifact, bool) {
	for _, a := range artifacts {
		if a.Name == name {
			return a, true
		}
	}
	return Artifact{}, false
}

// FoundArtifact is a recognized artifact present in a directory.
type FoundArtifact struct {
	Artifact
	Path string
}

// ScanResult is the outcome of scanning an input directory.
type ScanResult struct {
	// Found lists recognized artifacts in directory listing order.
	Found []FoundArtifact

	// Unrecognized lists paths of entries that are not recognized artifacts,
	// including recognized names that are not regular files.
	Unrecognized []string
}

// ScanDir lists dir and sorts its entries into recognized artifacts and
// everything else. Entries are visited in filename order so repeated runs
// see the same sequence.
func ScanDir(dir string) (*ScanResult, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("listing %s: %w", dir, err)
	}

	result := &ScanResult{}
	for _, entry := range entries {
		path := filepath.Join(dir, entry.Name())

		a, ok := LookupArtifact(entry.Name())
		if !ok || !entry.Type().IsRegular() {
			// Symlinks to regular files still count.
			if ok && entry.Type()&os.ModeSymlink != 0 && isRegularFile(path) {
				result.Found = append(result.Found, FoundArtifact{Artifact: a, Path: path})
				continue
			}
			result.Unrecognized = append(result.Unrecognized, path)
			continue
		}
		result.Found = append(result.Found, FoundArtifact{Artifact: a, Path: path})
	}

	return result, nil
}

func isRegularFile(path string) bool {
	info, err := os.Stat(path)
	return err == nil && info.Mode().IsRegular()
}
