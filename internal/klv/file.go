// Package klv declares the file abstraction the partition, align, discovery,
// and rip components consume: a seekable cursor over a byte stream plus the
// KLV (Key-Length-Value) primitive read/write helpers those components build
// on. The KLV primitive layer itself — BER length coding, raw key/value
// I/O — is out of this subsystem's scope; klv.File is the seam a concrete
// implementation (internal/mxfio) fills in.
package klv

import "github.com/s0up4200/mxfkit/internal/ul"

// File is the cursor and KLV-primitive abstraction consumed by the
// partition, alignment, discovery, and RIP components.
type File interface {
	// Tell returns the current file offset.
	Tell() int64
	// Seek repositions the cursor; whence follows io.Seeker conventions.
	Seek(offset int64, whence int) (int64, error)
	// Read fills buf and returns the number of bytes read.
	Read(buf []byte) (int, error)
	// Getc reads a single byte, returning -1 on EOF instead of an error.
	Getc() (int16, error)
	// WriteBytes writes b verbatim.
	WriteBytes(b []byte) error
	// WriteZeros writes n zero bytes.
	WriteZeros(n int) error

	// WriteK writes a 16-byte key.
	WriteK(k ul.Key) error
	// WriteL writes a BER-coded length and returns the number of bytes the
	// length encoding itself occupied.
	WriteL(length uint64) (llenUsed int, err error)
	// WriteKL writes a key followed by its BER-coded length.
	WriteKL(k ul.Key, length uint64) (llenUsed int, err error)
	// ReadK reads a 16-byte key.
	ReadK() (ul.Key, error)
	// ReadL reads a BER-coded length, returning both the number of bytes the
	// encoding occupied and the decoded value.
	ReadL() (llen int, length uint64, err error)
	// ReadKL reads a key followed by its BER-coded length.
	ReadKL() (ul.Key, uint64, error)
	// Skip advances the cursor by n bytes without reading them.
	Skip(n int64) error

	WriteU16(v uint16) error
	WriteU32(v uint32) error
	WriteU64(v uint64) error
	ReadU16() (uint16, error)
	ReadU32() (uint32, error)
	ReadU64() (uint64, error)
	WriteUL(l ul.Label) error
	ReadUL() (ul.Label, error)

	// WriteBatchHeader writes an MXF batch header (element count + element
	// size) preceding a run of fixed-size elements.
	WriteBatchHeader(count, elementSize uint32) error
	// ReadBatchHeader reads an MXF batch header.
	ReadBatchHeader() (count, elementSize uint32, err error)

	// GetMinLLen returns the minimum number of bytes a BER length encoding
	// may use on this file.
	GetMinLLen() int
	// GetLLen returns the number of bytes needed to BER-encode value.
	GetLLen(value uint64) int
	// GetRunInLen returns the run-in length recorded for this file, 0 if
	// none was recorded.
	GetRunInLen() uint16
	// SetRunInLen records the run-in length discovered by header scanning.
	SetRunInLen(n uint16)
}
