package partition

import (
	"testing"

	"github.com/s0up4200/mxfkit/internal/ul"
)

func TestNew_Defaults(t *testing.T) {
	p := New()
	if p.KAGSize != 1 {
		t.Errorf("KAGSize = %d, want 1", p.KAGSize)
	}
	if p.MajorVersion != 0x0001 || p.MinorVersion != 0x0002 {
		t.Errorf("version = %d.%d, want 1.2", p.MajorVersion, p.MinorVersion)
	}
	if p.HeaderMarkInPos() != -1 || p.IndexMarkInPos() != -1 {
		t.Errorf("marks = %d, %d, want -1, -1", p.HeaderMarkInPos(), p.IndexMarkInPos())
	}
	if p.Key != (ul.Key{}) {
		t.Errorf("Key = %v, want zero", p.Key)
	}
	if p.ThisPartition != 0 || p.PreviousPartition != 0 || p.FooterPartition != 0 {
		t.Error("offsets should be zero on a fresh partition")
	}
}

func TestCloneTemplate_CopiesLayoutOnly(t *testing.T) {
	p := New()
	p.Key = keyWith(0x02, 0x04)
	p.MajorVersion = 7
	p.MinorVersion = 9
	p.KAGSize = 512
	p.ThisPartition = 1024
	p.PreviousPartition = 512
	p.FooterPartition = 2048
	p.HeaderByteCount = 99
	p.IndexByteCount = 33
	p.IndexSID = 1
	p.BodySID = 2
	p.OperationalPattern = ul.Label{0xaa}
	p.AppendEssenceContainer(ul.Label{0x01, 0x02})
	p.AppendEssenceContainer(ul.Label{0x03, 0x04})

	clone := p.CloneTemplate()

	if clone.Key != (ul.Key{}) {
		t.Error("clone.Key should be zeroed")
	}
	if clone.ThisPartition != 0 || clone.PreviousPartition != 0 || clone.FooterPartition != 0 {
		t.Error("clone offsets should be zeroed")
	}
	if clone.HeaderByteCount != 0 || clone.IndexByteCount != 0 || clone.IndexSID != 0 || clone.BodySID != 0 {
		t.Error("clone byte counts / SIDs should be zeroed")
	}
	if clone.MajorVersion != 7 || clone.MinorVersion != 9 || clone.KAGSize != 512 {
		t.Errorf("clone version/KAG = %d.%d/%d, want 7.9/512", clone.MajorVersion, clone.MinorVersion, clone.KAGSize)
	}
	if clone.OperationalPattern != p.OperationalPattern {
		t.Error("clone should copy OperationalPattern")
	}
	if len(clone.EssenceContainers) != 2 || clone.EssenceContainers[0] != p.EssenceContainers[0] || clone.EssenceContainers[1] != p.EssenceContainers[1] {
		t.Fatalf("clone essence containers = %v, want copy of %v", clone.EssenceContainers, p.EssenceContainers)
	}

	// Deep copy: mutating the original's slice must not affect the clone.
	p.EssenceContainers[0][0] = 0xff
	if clone.EssenceContainers[0][0] == 0xff {
		t.Fatal("clone essence container labels should be deep-copied")
	}
}

func TestMarkHeader_StartEndRoundTrip(t *testing.T) {
	p := New()
	p.MarkHeaderStart(100)
	if err := p.MarkHeaderEnd(180); err != nil {
		t.Fatalf("MarkHeaderEnd: %v", err)
	}
	if p.HeaderByteCount != 80 {
		t.Errorf("HeaderByteCount = %d, want 80", p.HeaderByteCount)
	}
	if p.HeaderMarkInPos() != -1 {
		t.Errorf("mark should be reset after MarkHeaderEnd, got %d", p.HeaderMarkInPos())
	}
}

func TestMarkIndex_StartEndRoundTrip(t *testing.T) {
	p := New()
	p.MarkIndexStart(200)
	if err := p.MarkIndexEnd(250); err != nil {
		t.Fatalf("MarkIndexEnd: %v", err)
	}
	if p.IndexByteCount != 50 {
		t.Errorf("IndexByteCount = %d, want 50", p.IndexByteCount)
	}
}

func TestMarkEnd_WithoutStart_Fails(t *testing.T) {
	p := New()
	if err := p.MarkHeaderEnd(10); err != ErrMarkNotStarted {
		t.Fatalf("MarkHeaderEnd without start: err = %v, want ErrMarkNotStarted", err)
	}
	if err := p.MarkIndexEnd(10); err != ErrMarkNotStarted {
		t.Fatalf("MarkIndexEnd without start: err = %v, want ErrMarkNotStarted", err)
	}
}

func TestMarkEnd_PositionBeforeMark_Fails(t *testing.T) {
	p := New()
	p.MarkHeaderStart(500)
	if err := p.MarkHeaderEnd(100); err != ErrPositionBeforeMark {
		t.Fatalf("err = %v, want ErrPositionBeforeMark", err)
	}
}
