// Package discovery locates the header partition pack past an optional
// run-in, and scans the tail of a file for the footer partition pack.
// Grounded on mxf_find_header_partition_pack / mxf_find_footer_partition in
// original_source/mxf/mxf_partition.c.
package discovery

import (
	"errors"
	"fmt"
	"io"

	"github.com/s0up4200/mxfkit/internal/klv"
	"github.com/s0up4200/mxfkit/internal/partition"
	"github.com/s0up4200/mxfkit/internal/ul"
)

// ErrNoHeaderFound is returned by FindHeaderPartition when no header
// partition pack key is located within ul.MaxRunInLen bytes of the start of
// the file.
var ErrNoHeaderFound = errors.New("discovery: no header partition pack key found within run-in limit")

// ErrNotHeader is returned when a candidate key matches the partition-pack
// prefix run but is not a header partition pack variant.
var ErrNotHeader = errors.New("discovery: candidate key is not a header partition pack")

// ErrNoFooterFound is returned by FindFooterPartition when the backward
// scan exhausts its iteration budget without finding a footer partition
// pack.
var ErrNoFooterFound = errors.New("discovery: no footer partition pack key found")

// matchLen is the length of the partition-pack universal-label prefix the
// run-in scanner resyncs against while skipping run-in bytes. This is a
// naive rewind, not a proper KMP failure function: adequate only because
// the SMPTE prefix has no internal self-overlap (see DESIGN.md).
const matchLen = ul.PartitionPackPrefixLen - 2

// FindHeaderPartition scans past an optional run-in (up to
// ul.MaxRunInLen bytes) to locate the header partition pack key at the
// start of the file. On success it records the run-in length on f via
// f.SetRunInLen and returns the full key (with the KL length already
// consumed so the caller can proceed straight to ReadPartition's value
// region).
func FindHeaderPartition(f klv.File) (ul.Key, error) {
	var k ul.Key
	var matched int
	var consumed uint32
	found := false

	for consumed < ul.MaxRunInLen+uint32(matchLen) {
		b, err := f.Getc()
		if err != nil {
			return ul.Key{}, fmt.Errorf("discovery: run-in scan: %w", err)
		}
		if b < 0 {
			return ul.Key{}, ErrNoHeaderFound
		}
		consumed++

		if byte(b) == ul.PartitionPackPrefix[matched] {
			k[matched] = byte(b)
			matched++
			if matched == matchLen {
				found = true
				break
			}
			continue
		}
		matched = 0
	}
	if !found {
		return ul.Key{}, ErrNoHeaderFound
	}

	for i := matched; i < ul.KeyLen; i++ {
		b, err := f.Getc()
		if err != nil {
			return ul.Key{}, fmt.Errorf("discovery: run-in scan: %w", err)
		}
		if b < 0 {
			return ul.Key{}, ErrNoHeaderFound
		}
		k[i] = byte(b)
	}

	if !partition.IsHeaderPartitionPack(k) {
		return ul.Key{}, ErrNotHeader
	}

	if _, _, err := f.ReadL(); err != nil {
		return ul.Key{}, fmt.Errorf("discovery: read header pack length: %w", err)
	}

	f.SetRunInLen(uint16(consumed - uint32(matchLen)))
	return k, nil
}

const (
	windowPayload   = 32768
	windowOverlap   = ul.PartitionPackPrefixLen + 2
	windowSize      = windowPayload + windowOverlap
	maxFooterWindows = 250
)

// FindFooterPartition searches backwards from EOF in overlapping windows
// (up to maxFooterWindows iterations, ~8MB) for a footer partition pack
// key. On success the file cursor is left positioned at the start of the
// footer's key. On failure the file position is left indeterminate.
func FindFooterPartition(f klv.File) error {
	if _, err := f.Seek(0, io.SeekEnd); err != nil {
		return fmt.Errorf("discovery: seek to end: %w", err)
	}
	offset, err := f.Seek(0, io.SeekCurrent)
	if err != nil {
		return fmt.Errorf("discovery: tell: %w", err)
	}

	buf := make([]byte, windowSize)
	lastIteration := false

	for i := 0; i < maxFooterWindows; i++ {
		if offset < 17 {
			break
		}
		numRead := int64(windowSize - windowOverlap)
		if numRead > offset {
			numRead = offset
		}

		if i > 0 {
			copy(buf[numRead:], buf[:windowOverlap])
		}

		if _, err := f.Seek(offset-numRead, io.SeekStart); err != nil {
			return ErrNoFooterFound
		}
		if _, err := f.Read(buf[:numRead]); err != nil {
			return ErrNoFooterFound
		}

		for j := int64(0); j < numRead; j++ {
			if buf[j] != ul.PartitionPackPrefix[0] || buf[j+1] != ul.PartitionPackPrefix[1] {
				continue
			}
			match := true
			for k := int64(2); k < ul.PartitionPackPrefixLen; k++ {
				if buf[j+k] != ul.PartitionPackPrefix[k] {
					match = false
					break
				}
			}
			if !match {
				continue
			}
			switch buf[j+ul.PartitionPackPrefixLen] {
			case 0x04:
				if _, err := f.Seek(offset-numRead+j, io.SeekStart); err != nil {
					return fmt.Errorf("discovery: seek to footer: %w", err)
				}
				return nil
			case 0x02, 0x03:
				lastIteration = true
			}
		}

		if lastIteration {
			break
		}
		offset -= numRead
	}

	return ErrNoFooterFound
}
