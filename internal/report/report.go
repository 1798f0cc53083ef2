package report

import (
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strings"
	"time"

	"github.com/s0up4200/mxfkit/internal/settings"
	"github.com/s0up4200/mxfkit/internal/util"
	"github.com/s0up4200/mxfkit/pkg/mxfpartition"
)

const productVersion = "0.1.0.0"

// WriteReport renders result as a structural text report and writes it to
// path (or settings.ReportFileName if path is empty; "-" means stdout).
// Any file already at that name is backed up with a unix-timestamp suffix.
func WriteReport(path string, result mxfpartition.Result, s settings.Settings) (string, error) {
	reportName := s.ReportFileName
	if strings.Contains(reportName, "{0}") {
		reportName = strings.ReplaceAll(reportName, "{0}", filepath.Base(result.Path))
	} else if regexp.MustCompile(`\{\d+\}`).MatchString(reportName) {
		reportName = fmt.Sprintf(reportName, filepath.Base(result.Path))
	}
	if reportName != "-" && filepath.Ext(reportName) == "" {
		reportName = reportName + ".mxfdump"
	}
	if path != "" {
		reportName = path
	}

	if reportName != "-" {
		if _, err := os.Stat(reportName); err == nil {
			backup := fmt.Sprintf("%s.%d", reportName, time.Now().Unix())
			_ = os.Rename(reportName, backup)
		}
	}

	var output string
	if s.SummaryOnly {
		output = buildSummary(result)
	} else {
		output = buildFull(result, s)
	}

	if reportName == "-" {
		_, err := os.Stdout.WriteString(output)
		return reportName, err
	}
	return reportName, os.WriteFile(reportName, []byte(output), 0o644)
}

func buildSummary(result mxfpartition.Result) string {
	var b strings.Builder
	fmt.Fprintf(&b, "%-18s%s\n", "File:", result.Path)
	fmt.Fprintf(&b, "%-18s%d\n", "Run-in length:", result.RunInLen)
	fmt.Fprintf(&b, "%-18s%d\n", "Partitions:", len(result.Partitions))
	fmt.Fprintf(&b, "%-18s%v\n", "Has RIP:", result.HasRIP)
	return b.String()
}

func buildFull(result mxfpartition.Result, s settings.Settings) string {
	var b strings.Builder

	if s.IncludeVersionAndNotes {
		fmt.Fprintf(&b, "%-18s%s\n", "mxfdump:", productVersion)
	}
	fmt.Fprintf(&b, "%-18s%s\n", "File:", result.Path)
	fmt.Fprintf(&b, "%-18s%d\n", "Run-in length:", result.RunInLen)
	fmt.Fprintf(&b, "%-18s%s\n\n", "Partition count:", util.FormatNumber(int64(len(result.Partitions))))

	for i, p := range result.Partitions {
		kind := "body"
		switch {
		case p.IsHeader:
			kind = "header"
		case p.IsFooter:
			kind = "footer"
		}
		open := "closed"
		if !p.IsClosed {
			open = "open"
		}
		complete := "complete"
		if !p.IsComplete {
			complete = "incomplete"
		}

		fmt.Fprintf(&b, "Partition %d: %s (%s, %s)\n", i, kind, open, complete)
		fmt.Fprintf(&b, "  %-20s%s bytes\n", "This partition:", util.FormatNumber(int64(p.ThisPartition)))
		fmt.Fprintf(&b, "  %-20s%s bytes\n", "Previous partition:", util.FormatNumber(int64(p.PreviousPartition)))
		fmt.Fprintf(&b, "  %-20s%s bytes\n", "Footer partition:", util.FormatNumber(int64(p.FooterPartition)))
		fmt.Fprintf(&b, "  %-20s%s\n", "Header size:", util.FormatFileSize(float64(p.HeaderByteCount), true))
		fmt.Fprintf(&b, "  %-20s%s\n", "Index size:", util.FormatFileSize(float64(p.IndexByteCount), true))
		fmt.Fprintf(&b, "  %-20s%d\n", "KAG size:", p.KAGSize)
		fmt.Fprintf(&b, "  %-20s%d\n", "Body SID:", p.BodySID)
		if p.IndexSID != 0 {
			fmt.Fprintf(&b, "  %-20s%d\n", "Index SID:", p.IndexSID)
		}
		if p.OperationalPattern != "" {
			fmt.Fprintf(&b, "  %-20s%s\n", "Operational pattern:", p.OperationalPattern)
		}
		for _, l := range p.EssenceContainers {
			fmt.Fprintf(&b, "  %-20s%s\n", "Essence container:", l)
		}
		b.WriteString("\n")
	}

	if result.HasRIP {
		fmt.Fprintf(&b, "Random Index Pack (%d entries):\n", len(result.RIPEntries))
		for _, e := range result.RIPEntries {
			fmt.Fprintf(&b, "  bodySID=%-6d thisPartition=%s\n", e.BodySID, util.FormatNumber(int64(e.ThisPartition)))
		}
	} else {
		b.WriteString("No Random Index Pack present.\n")
	}

	return b.String()
}
