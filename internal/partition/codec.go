package partition

import (
	"fmt"

	"github.com/s0up4200/mxfkit/internal/klv"
	"github.com/s0up4200/mxfkit/internal/ul"
)

// fixedFieldsLen is the length, in bytes, of the partition pack's fixed
// fields (majorVersion through operationalPattern), before the
// essence-container batch header. ul.FixedPackPrefixLen (88) additionally
// counts the 8-byte batch header, matching the packLen = 88 + 16*N formula.
const fixedFieldsLen = 80
const batchHeaderLen = 8

// WritePartition serialises p to f at the file's current position. On
// entry the file must already be positioned where the pack should start.
//
// WritePartition records p.ThisPartition as the current position (minus
// run-in), and — for a footer key — also sets p.FooterPartition to the same
// value (the self-reference rule), before writing anything.
func WritePartition(f klv.File, p *Partition) error {
	p.ThisPartition = uint64(f.Tell()) - uint64(f.GetRunInLen())
	if p.Key[13] == subtypeFooter {
		p.FooterPartition = p.ThisPartition
	}

	packLen := uint64(ul.FixedPackPrefixLen) + uint64(ul.LabelLen)*uint64(len(p.EssenceContainers))

	if _, err := f.WriteKL(p.Key, packLen); err != nil {
		return fmt.Errorf("partition: write KL: %w", err)
	}
	if err := f.WriteU16(p.MajorVersion); err != nil {
		return err
	}
	if err := f.WriteU16(p.MinorVersion); err != nil {
		return err
	}
	if err := f.WriteU32(p.KAGSize); err != nil {
		return err
	}
	if err := f.WriteU64(p.ThisPartition); err != nil {
		return err
	}
	if err := f.WriteU64(p.PreviousPartition); err != nil {
		return err
	}
	if err := f.WriteU64(p.FooterPartition); err != nil {
		return err
	}
	if err := f.WriteU64(p.HeaderByteCount); err != nil {
		return err
	}
	if err := f.WriteU64(p.IndexByteCount); err != nil {
		return err
	}
	if err := f.WriteU32(p.IndexSID); err != nil {
		return err
	}
	if err := f.WriteU64(p.BodyOffset); err != nil {
		return err
	}
	if err := f.WriteU32(p.BodySID); err != nil {
		return err
	}
	if err := f.WriteUL(p.OperationalPattern); err != nil {
		return err
	}
	if err := f.WriteBatchHeader(uint32(len(p.EssenceContainers)), uint32(ul.LabelLen)); err != nil {
		return err
	}
	for _, label := range p.EssenceContainers {
		if err := f.WriteUL(label); err != nil {
			return fmt.Errorf("partition: write essence container label: %w", err)
		}
	}
	return nil
}

// ReadPartition reads a partition pack value from f. The caller has already
// consumed the KLV key and passes it in as key. On any read failure the
// partially built partition is discarded and the error is returned.
func ReadPartition(f klv.File, key ul.Key) (*Partition, error) {
	p := New()
	p.Key = key

	var err error
	if p.MajorVersion, err = f.ReadU16(); err != nil {
		return nil, fmt.Errorf("partition: read majorVersion: %w", err)
	}
	if p.MinorVersion, err = f.ReadU16(); err != nil {
		return nil, fmt.Errorf("partition: read minorVersion: %w", err)
	}
	if p.KAGSize, err = f.ReadU32(); err != nil {
		return nil, fmt.Errorf("partition: read kagSize: %w", err)
	}
	if p.ThisPartition, err = f.ReadU64(); err != nil {
		return nil, fmt.Errorf("partition: read thisPartition: %w", err)
	}
	if p.PreviousPartition, err = f.ReadU64(); err != nil {
		return nil, fmt.Errorf("partition: read previousPartition: %w", err)
	}
	if p.FooterPartition, err = f.ReadU64(); err != nil {
		return nil, fmt.Errorf("partition: read footerPartition: %w", err)
	}
	if p.HeaderByteCount, err = f.ReadU64(); err != nil {
		return nil, fmt.Errorf("partition: read headerByteCount: %w", err)
	}
	if p.IndexByteCount, err = f.ReadU64(); err != nil {
		return nil, fmt.Errorf("partition: read indexByteCount: %w", err)
	}
	if p.IndexSID, err = f.ReadU32(); err != nil {
		return nil, fmt.Errorf("partition: read indexSID: %w", err)
	}
	if p.BodyOffset, err = f.ReadU64(); err != nil {
		return nil, fmt.Errorf("partition: read bodyOffset: %w", err)
	}
	if p.BodySID, err = f.ReadU32(); err != nil {
		return nil, fmt.Errorf("partition: read bodySID: %w", err)
	}
	if p.OperationalPattern, err = f.ReadUL(); err != nil {
		return nil, fmt.Errorf("partition: read operationalPattern: %w", err)
	}

	count, _, err := f.ReadBatchHeader()
	if err != nil {
		return nil, fmt.Errorf("partition: read batch header: %w", err)
	}
	for i := uint32(0); i < count; i++ {
		label, err := f.ReadUL()
		if err != nil {
			return nil, fmt.Errorf("partition: read essence container label %d: %w", i, err)
		}
		p.EssenceContainers = append(p.EssenceContainers, label)
	}
	return p, nil
}
