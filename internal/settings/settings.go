package settings

import "path/filepath"

// Settings mirrors mxfdump's report options.
type Settings struct {
	Verify                 bool
	GenerateTextSummary    bool
	ReportFileName         string
	IncludeVersionAndNotes bool
	SummaryOnly            bool
}

func Default(reportBaseDir string) Settings {
	return Settings{
		Verify:                 false,
		GenerateTextSummary:    true,
		ReportFileName:         filepath.Join(reportBaseDir, "mxfdump_{0}"),
		IncludeVersionAndNotes: true,
		SummaryOnly:            false,
	}
}
