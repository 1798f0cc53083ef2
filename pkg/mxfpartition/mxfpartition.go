// Package mxfpartition is the public facade over the partition, discovery,
// align, and rip internals: a single Read entry point hides the internal
// package wiring from callers who just want a structural summary of an MXF
// file's partitions, grounded on pkg/bdinfo/bdinfo.go's Options/Result shape
// and progress-callback pattern.
package mxfpartition

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/s0up4200/mxfkit/internal/discovery"
	"github.com/s0up4200/mxfkit/internal/mxfio"
	"github.com/s0up4200/mxfkit/internal/partition"
	"github.com/s0up4200/mxfkit/internal/rip"
	"github.com/s0up4200/mxfkit/internal/ul"
)

// Stage represents a coarse progress stage for Read.
type Stage string

const (
	StageOpening            Stage = "opening"
	StageDiscoveringHeader  Stage = "discovering_header"
	StageDecodingPartitions Stage = "decoding_partitions"
	StageReadingRIP         Stage = "reading_rip"
	StageVerifying          Stage = "verifying"
	StageDone               Stage = "done"
)

// ProgressEvent is emitted when Read transitions between major phases.
type ProgressEvent struct {
	Stage          Stage
	Path           string
	PartitionCount int
	OccurredAt     time.Time
}

// Options configure one Read call for a single MXF file path.
type Options struct {
	Path       string
	Verify     bool
	OnProgress func(ProgressEvent)
}

// PartitionInfo is a read-only, display-friendly view of one decoded
// partition pack.
type PartitionInfo struct {
	ThisPartition      uint64
	PreviousPartition  uint64
	FooterPartition    uint64
	HeaderByteCount    uint64
	IndexByteCount     uint64
	IndexSID           uint32
	BodySID            uint32
	BodyOffset         uint64
	KAGSize            uint32
	IsHeader           bool
	IsBody             bool
	IsFooter           bool
	IsClosed           bool
	IsComplete         bool
	EssenceContainers  []string
	OperationalPattern string
}

// RIPEntryInfo is a display-friendly view of one Random Index Pack entry.
type RIPEntryInfo struct {
	BodySID       uint32
	ThisPartition uint64
}

// Result contains the structural summary of one MXF file.
type Result struct {
	Path       string
	RunInLen   uint16
	Partitions []PartitionInfo
	HasRIP     bool
	RIPEntries []RIPEntryInfo
}

// ErrNoHeaderPartition is returned when the file carries no discoverable
// header partition pack.
var ErrNoHeaderPartition = errors.New("mxfpartition: no header partition pack found")

// Read opens path, discovers its header partition pack, decodes every
// partition listed in the Random Index Pack, and optionally cross-verifies
// the result. When no RIP is present it decodes only the header and the
// footer found by the backward scan; body partitions are not decoded and
// previousPartition links are not followed.
func Read(ctx context.Context, options Options) (Result, error) {
	if options.Path == "" {
		return Result{}, errors.New("mxfpartition: path is required")
	}
	if ctx == nil {
		ctx = context.Background()
	}
	if err := ctx.Err(); err != nil {
		return Result{}, err
	}

	emit(options.OnProgress, ProgressEvent{Stage: StageOpening, Path: options.Path, OccurredAt: time.Now()})

	f, err := mxfio.OpenRead(options.Path)
	if err != nil {
		return Result{}, fmt.Errorf("mxfpartition: open %s: %w", options.Path, err)
	}
	defer f.Close()

	emit(options.OnProgress, ProgressEvent{Stage: StageDiscoveringHeader, Path: options.Path, OccurredAt: time.Now()})

	headerKey, err := discovery.FindHeaderPartition(f)
	if err != nil {
		return Result{}, fmt.Errorf("%w: %v", ErrNoHeaderPartition, err)
	}
	header, err := partition.ReadPartition(f, headerKey)
	if err != nil {
		return Result{}, fmt.Errorf("mxfpartition: decode header partition: %w", err)
	}

	emit(options.OnProgress, ProgressEvent{Stage: StageReadingRIP, Path: options.Path, OccurredAt: time.Now()})

	ripResult, _, err := rip.Read(f)
	if err != nil {
		return Result{}, fmt.Errorf("mxfpartition: read random index pack: %w", err)
	}

	list := partition.NewList()
	emit(options.OnProgress, ProgressEvent{Stage: StageDecodingPartitions, Path: options.Path, OccurredAt: time.Now()})

	if ripResult != nil && len(ripResult.Entries) > 0 {
		for _, entry := range ripResult.Entries {
			if err := ctx.Err(); err != nil {
				return Result{}, err
			}
			target := int64(entry.ThisPartition) + int64(f.GetRunInLen())
			if _, err := f.Seek(target, 0); err != nil {
				return Result{}, fmt.Errorf("mxfpartition: seek to RIP entry at %d: %w", entry.ThisPartition, err)
			}
			key, _, err := f.ReadKL()
			if err != nil {
				return Result{}, fmt.Errorf("mxfpartition: read KL at %d: %w", entry.ThisPartition, err)
			}
			p, err := partition.ReadPartition(f, key)
			if err != nil {
				return Result{}, fmt.Errorf("mxfpartition: decode partition at %d: %w", entry.ThisPartition, err)
			}
			list.Append(p)
		}
	} else {
		// No RIP: without a full index of offsets the only partitions we can
		// reach directly are the header and (if present) the footer: body
		// partitions in between would need a previousPartition walk back
		// from the footer, which this best-effort fallback doesn't attempt.
		list.Append(header)
		if err := discovery.FindFooterPartition(f); err == nil {
			footerKey, rerr := f.ReadK()
			if rerr == nil {
				if _, _, rerr := f.ReadL(); rerr == nil {
					if footer, rerr := partition.ReadPartition(f, footerKey); rerr == nil && footer.ThisPartition != header.ThisPartition {
						list.Append(footer)
					}
				}
			}
		}
	}

	var ripEntries []partition.RIPEntry
	var displayEntries []RIPEntryInfo
	hasRIP := ripResult != nil
	if hasRIP {
		ripEntries = make([]partition.RIPEntry, len(ripResult.Entries))
		displayEntries = make([]RIPEntryInfo, len(ripResult.Entries))
		for i, e := range ripResult.Entries {
			ripEntries[i] = partition.RIPEntry{BodySID: e.BodySID, ThisPartition: e.ThisPartition}
			displayEntries[i] = RIPEntryInfo{BodySID: e.BodySID, ThisPartition: e.ThisPartition}
		}
	}

	if options.Verify {
		emit(options.OnProgress, ProgressEvent{Stage: StageVerifying, Path: options.Path, PartitionCount: list.Len(), OccurredAt: time.Now()})
		if err := partition.VerifyLabels(ctx, list, ripEntries); err != nil {
			return Result{}, fmt.Errorf("mxfpartition: verification failed: %w", err)
		}
	}

	result := Result{
		Path:       options.Path,
		RunInLen:   f.GetRunInLen(),
		Partitions: buildPartitionInfo(list),
		HasRIP:     hasRIP,
		RIPEntries: displayEntries,
	}

	emit(options.OnProgress, ProgressEvent{Stage: StageDone, Path: options.Path, PartitionCount: list.Len(), OccurredAt: time.Now()})
	return result, nil
}

func emit(cb func(ProgressEvent), event ProgressEvent) {
	if cb != nil {
		cb(event)
	}
}

func buildPartitionInfo(list *partition.List) []PartitionInfo {
	items := list.All()
	out := make([]PartitionInfo, 0, len(items))
	for _, p := range items {
		labels := make([]string, 0, len(p.EssenceContainers))
		for _, l := range p.EssenceContainers {
			labels = append(labels, ul.Label(l).String())
		}
		out = append(out, PartitionInfo{
			ThisPartition:      p.ThisPartition,
			PreviousPartition:  p.PreviousPartition,
			FooterPartition:    p.FooterPartition,
			HeaderByteCount:    p.HeaderByteCount,
			IndexByteCount:     p.IndexByteCount,
			IndexSID:           p.IndexSID,
			BodySID:            p.BodySID,
			BodyOffset:         p.BodyOffset,
			KAGSize:            p.KAGSize,
			IsHeader:           partition.IsHeaderPartitionPack(p.Key),
			IsBody:             partition.IsBodyPartitionPack(p.Key),
			IsFooter:           partition.IsFooterPartitionPack(p.Key),
			IsClosed:           partition.IsClosed(p.Key),
			IsComplete:         partition.IsComplete(p.Key),
			EssenceContainers:  labels,
			OperationalPattern: ul.Label(p.OperationalPattern).String(),
		})
	}
	return out
}
