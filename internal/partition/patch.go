package partition

import (
	"fmt"
	"io"

	"github.com/s0up4200/mxfkit/internal/klv"
)

// PatchOffsets walks list in order and sets each entry's PreviousPartition
// and, when the list ends in a footer pack, FooterPartition. This is the
// pure offset-computation half of the two-pass patcher: no I/O, so it can
// run (and be tested) independently of RewritePartitions.
//
// A footer partition already carries its own self-reference in
// FooterPartition from WritePartition; PatchOffsets reasserts the same
// value for every entry once it knows the footer exists.
func PatchOffsets(list *List) {
	items := list.All()
	if len(items) == 0 {
		return
	}

	last := items[len(items)-1]
	haveFooter := IsFooterPartitionPack(last.Key)

	var prev *Partition
	for i, entry := range items {
		if i > 0 {
			entry.PreviousPartition = prev.ThisPartition
		}
		if haveFooter {
			entry.FooterPartition = last.ThisPartition
		}
		prev = entry
	}
}

// RewritePartitions seeks to each partition's recorded ThisPartition offset
// (relative to runInLen) and rewrites its pack, so the now-patched
// PreviousPartition/FooterPartition values land on disk. Any seek or write
// failure aborts immediately; per spec the file is left in an indeterminate
// state on failure and callers must treat that as fatal.
//
// PatchOffsets must have already been called on list; RewritePartitions
// does not call it itself, since PatchOffsets is also useful standalone for
// tests that only need the computed offsets.
func RewritePartitions(f klv.File, runInLen int64, list *List) error {
	for _, entry := range list.All() {
		target := int64(entry.ThisPartition) + runInLen
		if _, err := f.Seek(target, io.SeekStart); err != nil {
			return fmt.Errorf("partition: seek to %d for rewrite: %w", target, err)
		}
		if err := WritePartition(f, entry); err != nil {
			return fmt.Errorf("partition: rewrite at %d: %w", target, err)
		}
	}
	if _, err := f.Seek(0, io.SeekEnd); err != nil {
		return fmt.Errorf("partition: seek to end of file: %w", err)
	}
	return nil
}
