package partition

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"golang.org/x/sync/errgroup"

	"github.com/s0up4200/mxfkit/internal/ul"
)

// ErrZeroLabel is reported when an essence-container label is the zero
// value — never a legitimate universal label, always a sign the batch was
// never populated.
var ErrZeroLabel = errors.New("partition: essence-container label is zero")

// ErrRIPMismatch is reported when a partition's recorded ThisPartition/
// BodySID disagrees with its corresponding Random Index Pack entry.
var ErrRIPMismatch = errors.New("partition: RIP entry disagrees with partition pack")

// RIPEntry mirrors the (bodySID, thisPartition) pair the rip package
// decodes. Declared independently here, rather than imported, because
// internal/rip already imports internal/partition for *List — a direct
// dependency the other way would cycle.
type RIPEntry struct {
	BodySID       uint32
	ThisPartition uint64
}

// VerifyLabels validates every partition in list: each essence-container
// label is non-zero, and — when ripEntries is non-nil — the partition at
// index i agrees with ripEntries[i] on BodySID and ThisPartition. One
// goroutine is spawned per partition; every partition is checked even after
// the first failure, and all failures are reported together.
//
// This is a read-only consistency check over an already-written or
// already-discovered file; callers must not run it concurrently with an
// in-progress write to the same list.
func VerifyLabels(ctx context.Context, list *List, ripEntries []RIPEntry) error {
	items := list.All()

	var (
		eg      errgroup.Group
		mu      sync.Mutex
		reports []error
	)

	report := func(err error) {
		mu.Lock()
		reports = append(reports, err)
		mu.Unlock()
	}

	for i, entry := range items {
		i, entry := i, entry
		eg.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			for j, label := range entry.EssenceContainers {
				if label == (ul.Label{}) {
					report(fmt.Errorf("partition %d essence container %d: %w", i, j, ErrZeroLabel))
				}
			}
			if ripEntries != nil && i < len(ripEntries) {
				want := ripEntries[i]
				if want.BodySID != entry.BodySID || want.ThisPartition != entry.ThisPartition {
					report(fmt.Errorf("partition %d (bodySID=%d thisPartition=%d) vs RIP entry (bodySID=%d thisPartition=%d): %w",
						i, entry.BodySID, entry.ThisPartition, want.BodySID, want.ThisPartition, ErrRIPMismatch))
				}
			}
			return nil
		})
	}

	if err := eg.Wait(); err != nil {
		return err
	}
	if len(reports) > 0 {
		return errors.Join(reports...)
	}
	return nil
}
