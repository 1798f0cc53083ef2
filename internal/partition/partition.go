package partition

import (
	"errors"

	"github.com/s0up4200/mxfkit/internal/ul"
)

// ErrMarkNotStarted is returned by MarkHeaderEnd/MarkIndexEnd when the
// matching start mark was never taken.
var ErrMarkNotStarted = errors.New("partition: mark end without a prior start")

// ErrPositionBeforeMark is returned when the current file position precedes
// the recorded mark start, which would make the byte count negative.
var ErrPositionBeforeMark = errors.New("partition: current position precedes mark start")

// unmarked is the sentinel value for headerMarkInPos/indexMarkInPos when no
// mark is currently open.
const unmarked = int64(-1)

// Partition is the in-memory representation of one partition pack and its
// essence-container label list.
type Partition struct {
	Key ul.Key

	MajorVersion uint16
	MinorVersion uint16
	KAGSize      uint32

	ThisPartition     uint64
	PreviousPartition uint64
	FooterPartition   uint64

	HeaderByteCount uint64
	IndexByteCount  uint64

	IndexSID uint32
	BodySID  uint32

	BodyOffset uint64

	OperationalPattern ul.Label
	EssenceContainers  []ul.Label

	headerMarkInPos int64
	indexMarkInPos  int64
}

// New returns a freshly initialised Partition: zeroed key, offsets, and byte
// counts; KAGSize 1; default major/minor version; both marks unset.
func New() *Partition {
	return &Partition{
		MajorVersion:    0x0001,
		MinorVersion:    0x0002,
		KAGSize:         1,
		headerMarkInPos: unmarked,
		indexMarkInPos:  unmarked,
	}
}

// CloneTemplate returns a fresh Partition carrying over MajorVersion,
// MinorVersion, KAGSize, OperationalPattern, and a deep copy of
// EssenceContainers from p. Key, offsets, byte counts, and SIDs are left
// zero, matching the "from_partition" clone rule: a new partition inherits
// the file-wide layout parameters but none of the per-partition state.
func (p *Partition) CloneTemplate() *Partition {
	clone := New()
	clone.MajorVersion = p.MajorVersion
	clone.MinorVersion = p.MinorVersion
	clone.KAGSize = p.KAGSize
	clone.OperationalPattern = p.OperationalPattern
	if len(p.EssenceContainers) > 0 {
		clone.EssenceContainers = make([]ul.Label, len(p.EssenceContainers))
		copy(clone.EssenceContainers, p.EssenceContainers)
	}
	return clone
}

// AppendEssenceContainer appends a deep copy of label to p's
// essence-container list.
func (p *Partition) AppendEssenceContainer(label ul.Label) {
	p.EssenceContainers = append(p.EssenceContainers, label)
}

// MarkHeaderStart records pos as the start of the header-metadata region.
func (p *Partition) MarkHeaderStart(pos int64) {
	p.headerMarkInPos = pos
}

// MarkHeaderEnd finalises HeaderByteCount as pos - (mark start), then clears
// the mark. Fails if no start mark is open, or pos precedes it.
func (p *Partition) MarkHeaderEnd(pos int64) error {
	if p.headerMarkInPos < 0 {
		return ErrMarkNotStarted
	}
	if pos < p.headerMarkInPos {
		return ErrPositionBeforeMark
	}
	p.HeaderByteCount = uint64(pos - p.headerMarkInPos)
	p.headerMarkInPos = unmarked
	return nil
}

// MarkIndexStart records pos as the start of the index-table region.
func (p *Partition) MarkIndexStart(pos int64) {
	p.indexMarkInPos = pos
}

// MarkIndexEnd finalises IndexByteCount as pos - (mark start), then clears
// the mark. Fails if no start mark is open, or pos precedes it.
func (p *Partition) MarkIndexEnd(pos int64) error {
	if p.indexMarkInPos < 0 {
		return ErrMarkNotStarted
	}
	if pos < p.indexMarkInPos {
		return ErrPositionBeforeMark
	}
	p.IndexByteCount = uint64(pos - p.indexMarkInPos)
	p.indexMarkInPos = unmarked
	return nil
}

// HeaderMarkInPos returns the currently open header mark, or -1 if unset.
func (p *Partition) HeaderMarkInPos() int64 { return p.headerMarkInPos }

// IndexMarkInPos returns the currently open index mark, or -1 if unset.
func (p *Partition) IndexMarkInPos() int64 { return p.indexMarkInPos }
