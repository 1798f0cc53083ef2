// Package align implements KLV Fill emission for byte-position padding and
// KAG (KLV Alignment Grid) alignment, grounded on mxf_fill_to_position /
// mxf_allocate_space / mxf_allocate_space_to_kag in
// original_source/mxf/mxf_partition.c.
package align

import (
	"errors"
	"fmt"

	"github.com/s0up4200/mxfkit/internal/klv"
	"github.com/s0up4200/mxfkit/internal/partition"
	"github.com/s0up4200/mxfkit/internal/ul"
)

// ErrTargetBehind is returned by FillToPosition when target lies before the
// current position, or too close to it to hold a syntactically valid fill
// item.
var ErrTargetBehind = errors.New("align: target position does not leave room for a fill item")

// ErrSizeTooSmall is returned by AllocateSpace when size cannot fit even an
// empty fill item's key and length field.
var ErrSizeTooSmall = errors.New("align: requested size too small for a fill item")

// ErrBadKAGSize is returned when a partition's KAGSize is not positive.
var ErrBadKAGSize = errors.New("align: partition KAGSize must be >= 1")

// ErrNotPastPartitionStart is returned when the current position does not
// lie after the partition's recorded start.
var ErrNotPastPartitionStart = errors.New("align: current position is not past partition start")

// writeFill emits a KLV Fill item whose BER length field encodes payload
// (the zero-byte count that follows).
func writeFill(f klv.File, payload uint64) error {
	if err := f.WriteK(ul.FillKey); err != nil {
		return fmt.Errorf("align: write fill key: %w", err)
	}
	if _, err := f.WriteL(payload); err != nil {
		return fmt.Errorf("align: write fill length: %w", err)
	}
	if err := f.WriteZeros(int(payload)); err != nil {
		return fmt.Errorf("align: write fill payload: %w", err)
	}
	return nil
}

// FillToPosition pads the file with a single KLV Fill item so that, after
// writing, f.Tell() == target. A no-op if the file is already at target.
func FillToPosition(f klv.File, target int64) error {
	now := f.Tell()
	if now == target {
		return nil
	}

	minLLen := int64(f.GetMinLLen())
	keyLen := int64(ul.KeyLen)
	if now > target-minLLen-keyLen {
		return ErrTargetBehind
	}

	gap := uint64(target - now - keyLen)
	llen := uint64(f.GetLLen(gap))
	for {
		payload := gap - llen
		needed := uint64(f.GetLLen(payload))
		if needed <= llen {
			return writeFill(f, payload)
		}
		llen = needed
	}
}

// AllocateSpace emits a KLV Fill item occupying exactly size bytes
// (key + length field + zero payload). Fails if size is too small to hold
// even an empty fill item.
func AllocateSpace(f klv.File, size uint32) error {
	minLLen := f.GetMinLLen()
	if int(size) < minLLen+ul.KeyLen {
		return ErrSizeTooSmall
	}

	gap := uint64(size) - uint64(ul.KeyLen)
	llen := uint64(f.GetLLen(gap))
	for {
		payload := gap - llen
		needed := uint64(f.GetLLen(payload))
		if needed <= llen {
			return writeFill(f, payload)
		}
		llen = needed
	}
}

// AllocateSpaceToKAG emits a KLV Fill item (if one is needed) that is at
// least size bytes long (key, length and zero payload together) and ends on
// a multiple of p.KAGSize relative to p.ThisPartition, so that right after
// the fill the file position is on the grid. When size is 0 and the
// position is already on the grid, nothing is written.
func AllocateSpaceToKAG(f klv.File, p *partition.Partition, size uint32) error {
	if p.KAGSize < 1 {
		return ErrBadKAGSize
	}
	if size == 0 && p.KAGSize == 1 {
		return nil
	}

	now := f.Tell()
	if now <= int64(p.ThisPartition) {
		return ErrNotPastPartitionStart
	}
	relative := uint64(now) + uint64(size) - p.ThisPartition

	if size == 0 && relative%uint64(p.KAGSize) == 0 {
		return nil
	}

	fillSize := int64(size) - int64(ul.KeyLen)
	if p.KAGSize > 1 {
		fillSize += int64(p.KAGSize) - int64(relative%uint64(p.KAGSize))
	}

	var llen int64
	if fillSize >= 0 {
		llen = int64(f.GetLLen(uint64(fillSize)))
	}
	for fillSize-llen < 0 {
		fillSize += int64(p.KAGSize)
		if fillSize >= 0 {
			llen = int64(f.GetLLen(uint64(fillSize)))
		} else {
			llen = 0
		}
	}
	payload := fillSize - llen

	return writeFill(f, uint64(payload))
}

// FillToKAG aligns the file to p's KAG boundary with no additional reserved
// space, equivalent to AllocateSpaceToKAG(f, p, 0).
func FillToKAG(f klv.File, p *partition.Partition) error {
	return AllocateSpaceToKAG(f, p, 0)
}
