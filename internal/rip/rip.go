// Package rip implements the Random Index Pack trailer: the
// (bodySID, thisPartition) seek map written at the very end of an MXF file.
// Grounded on mxf_write_rip / mxf_read_rip_and_size in
// original_source/mxf/mxf_partition.c.
package rip

import (
	"errors"
	"fmt"
	"io"

	"github.com/s0up4200/mxfkit/internal/klv"
	"github.com/s0up4200/mxfkit/internal/partition"
	"github.com/s0up4200/mxfkit/internal/ul"
)

// entryLen is the on-disk size of one RIP entry: bodySID (u32) +
// thisPartition (u64).
const entryLen = 4 + 8

// minRIPSize is the smallest possible trailing TotalLen: key (16) + the
// shortest BER length encoding (1) + a single degenerate entry's worth of
// value (12) + the length field's own 4-byte count suffix (4) = 33, per
// spec.md's boundary test.
const minRIPSize = 33

// ErrMalformed is returned when, after the RIP key and its BER length have
// been read, the (len-4) mod 12 == 0 structural invariant fails or an entry
// cannot be read. Unlike a missing RIP (many valid MXF files have none),
// this indicates a corrupt trailer.
var ErrMalformed = errors.New("rip: malformed random index pack")

// Entry is one (bodySID, thisPartition) pair.
type Entry struct {
	BodySID       uint32
	ThisPartition uint64
}

// RIP is the decoded Random Index Pack: an ordered list of entries.
type RIP struct {
	Entries []Entry
}

// Write emits the Random Index Pack for list's partitions: the RIP key, a
// BER length, one (bodySID, thisPartition) pair per partition in list
// order, then the trailing plain big-endian TotalLen.
func Write(f klv.File, list *partition.List) error {
	items := list.All()
	valueLen := uint64(entryLen*len(items) + 4)

	if err := f.WriteK(ul.RIPKey); err != nil {
		return fmt.Errorf("rip: write key: %w", err)
	}
	llen, err := f.WriteL(valueLen)
	if err != nil {
		return fmt.Errorf("rip: write length: %w", err)
	}
	for _, p := range items {
		if err := f.WriteU32(p.BodySID); err != nil {
			return fmt.Errorf("rip: write bodySID: %w", err)
		}
		if err := f.WriteU64(p.ThisPartition); err != nil {
			return fmt.Errorf("rip: write thisPartition: %w", err)
		}
	}
	totalLen := uint32(ul.KeyLen) + uint32(llen) + uint32(valueLen)
	if err := f.WriteU32(totalLen); err != nil {
		return fmt.Errorf("rip: write total length: %w", err)
	}
	return nil
}

// Read locates and decodes the Random Index Pack trailer at the end of f.
// A failure reading or validating the trailing size, the RIP key itself, or
// the BER length after the key, is reported as (nil, 0, nil): "no RIP",
// since many legitimate MXF files lack one. A bad value length or a short
// entry read after that is reported as ErrMalformed, since the structure is
// then known to be corrupt rather than merely absent.
func Read(f klv.File) (*RIP, uint32, error) {
	if _, err := f.Seek(-4, io.SeekEnd); err != nil {
		return nil, 0, nil
	}
	ripSize, err := f.ReadU32()
	if err != nil || ripSize < minRIPSize {
		return nil, 0, nil
	}

	if _, err := f.Seek(-int64(ripSize), io.SeekCurrent); err != nil {
		return nil, 0, nil
	}
	key, err := f.ReadK()
	if err != nil {
		return nil, 0, nil
	}
	if key != ul.RIPKey {
		return nil, 0, nil
	}
	_, length, err := f.ReadL()
	if err != nil {
		return nil, 0, nil
	}

	if length < 4 || (length-4)%entryLen != 0 {
		return nil, 0, fmt.Errorf("%w: value length %d not 4 + 12n", ErrMalformed, length)
	}
	n := (length - 4) / entryLen

	r := &RIP{}
	for i := uint64(0); i < n; i++ {
		bodySID, err := f.ReadU32()
		if err != nil {
			return nil, 0, fmt.Errorf("%w: read entry %d bodySID: %v", ErrMalformed, i, err)
		}
		thisPartition, err := f.ReadU64()
		if err != nil {
			return nil, 0, fmt.Errorf("%w: read entry %d thisPartition: %v", ErrMalformed, i, err)
		}
		r.Entries = append(r.Entries, Entry{BodySID: bodySID, ThisPartition: thisPartition})
	}
	return r, ripSize, nil
}
