package report

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/s0up4200/mxfkit/internal/settings"
	"github.com/s0up4200/mxfkit/pkg/mxfpartition"
)

func sampleResult() mxfpartition.Result {
	return mxfpartition.Result{
		Path:     "/tmp/sample.mxf",
		RunInLen: 0,
		Partitions: []mxfpartition.PartitionInfo{
			{
				ThisPartition:      0,
				BodySID:            1,
				KAGSize:            512,
				IsHeader:           true,
				IsClosed:           true,
				IsComplete:         true,
				EssenceContainers:  []string{"060e2b34.04010101.0d010301.027f0100"},
				OperationalPattern: "060e2b34.04010102.0d010201.01000000",
			},
			{
				ThisPartition: 2048,
				BodySID:       1,
				IsFooter:      true,
				IsClosed:      true,
				IsComplete:    true,
			},
		},
		HasRIP: true,
		RIPEntries: []mxfpartition.RIPEntryInfo{
			{BodySID: 1, ThisPartition: 0},
			{BodySID: 1, ThisPartition: 2048},
		},
	}
}

func TestWriteReport_FullReportListsEveryPartitionAndRIPEntry(t *testing.T) {
	tmpDir := t.TempDir()
	outPath := filepath.Join(tmpDir, "out.mxfdump")
	cfg := settings.Default(tmpDir)

	name, err := WriteReport(outPath, sampleResult(), cfg)
	if err != nil {
		t.Fatalf("WriteReport: %v", err)
	}
	if name != outPath {
		t.Fatalf("reportName = %q, want %q", name, outPath)
	}

	data, err := os.ReadFile(outPath)
	if err != nil {
		t.Fatalf("ReadFile: %v", err)
	}
	text := string(data)

	for _, want := range []string{
		"Partition 0: header",
		"Partition 1: footer",
		"060e2b34.04010101.0d010301.027f0100",
		"Random Index Pack (2 entries)",
		"bodySID=1",
	} {
		if !strings.Contains(text, want) {
			t.Errorf("report missing %q, got:\n%s", want, text)
		}
	}
}

func TestWriteReport_SummaryOnlyOmitsPerPartitionDetail(t *testing.T) {
	tmpDir := t.TempDir()
	outPath := filepath.Join(tmpDir, "out.mxfdump")
	cfg := settings.Default(tmpDir)
	cfg.SummaryOnly = true

	if _, err := WriteReport(outPath, sampleResult(), cfg); err != nil {
		t.Fatalf("WriteReport: %v", err)
	}

	data, err := os.ReadFile(outPath)
	if err != nil {
		t.Fatalf("ReadFile: %v", err)
	}
	text := string(data)
	if strings.Contains(text, "Partition 0:") {
		t.Fatalf("summary-only report should not list individual partitions, got:\n%s", text)
	}
	if !strings.Contains(text, "Partitions:") {
		t.Fatalf("summary-only report should include a partition count, got:\n%s", text)
	}
}

func TestWriteReport_BacksUpExistingFile(t *testing.T) {
	tmpDir := t.TempDir()
	outPath := filepath.Join(tmpDir, "out.mxfdump")
	if err := os.WriteFile(outPath, []byte("stale"), 0o644); err != nil {
		t.Fatalf("seed file: %v", err)
	}
	cfg := settings.Default(tmpDir)

	if _, err := WriteReport(outPath, sampleResult(), cfg); err != nil {
		t.Fatalf("WriteReport: %v", err)
	}

	entries, err := os.ReadDir(tmpDir)
	if err != nil {
		t.Fatalf("ReadDir: %v", err)
	}
	backed := false
	for _, e := range entries {
		if strings.HasPrefix(e.Name(), "out.mxfdump.") {
			backed = true
		}
	}
	if !backed {
		t.Fatal("expected a timestamped backup of the pre-existing report file")
	}
}
