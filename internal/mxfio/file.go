// Package mxfio is the concrete klv.File implementation over *os.File,
// grounded on internal/fs/udf.Reader's direct os.File + encoding/binary
// style: a thin cursor with typed big-endian helpers, no buffering layer of
// its own.
package mxfio

import (
	"encoding/binary"
	"fmt"
	"io"
	"os"

	"github.com/s0up4200/mxfkit/internal/ul"
)

// defaultMinLLen is the minimum number of bytes this file's BER length
// encoder will use for the length field, regardless of how small the value
// would otherwise fit in. Fixing a floor keeps partition-pack lengths a
// stable width across rewrites in the two-pass patcher.
const defaultMinLLen = 4

// File is a klv.File backed by an *os.File.
type File struct {
	f        *os.File
	minLLen  int
	runInLen uint16
}

// Open opens path for read/write, creating it if it does not exist.
func Open(path string) (*File, error) {
	f, err := os.OpenFile(path, os.O_RDWR|os.O_CREATE, 0o644)
	if err != nil {
		return nil, fmt.Errorf("mxfio: open %s: %w", path, err)
	}
	return &File{f: f, minLLen: defaultMinLLen}, nil
}

// OpenRead opens path read-only.
func OpenRead(path string) (*File, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("mxfio: open %s: %w", path, err)
	}
	return &File{f: f, minLLen: defaultMinLLen}, nil
}

// Close closes the underlying os.File.
func (mf *File) Close() error {
	return mf.f.Close()
}

// SetMinLLen overrides the minimum BER length-field width this file's
// writer will use. Mostly useful in tests that need to produce a specific
// on-disk byte layout.
func (mf *File) SetMinLLen(n int) {
	mf.minLLen = n
}

func (mf *File) Tell() int64 {
	off, err := mf.f.Seek(0, io.SeekCurrent)
	if err != nil {
		return -1
	}
	return off
}

func (mf *File) Seek(offset int64, whence int) (int64, error) {
	return mf.f.Seek(offset, whence)
}

func (mf *File) Read(buf []byte) (int, error) {
	return io.ReadFull(mf.f, buf)
}

func (mf *File) Getc() (int16, error) {
	var b [1]byte
	n, err := mf.f.Read(b[:])
	if err == io.EOF || n == 0 {
		return -1, nil
	}
	if err != nil {
		return -1, err
	}
	return int16(b[0]), nil
}

func (mf *File) WriteBytes(b []byte) error {
	_, err := mf.f.Write(b)
	return err
}

func (mf *File) WriteZeros(n int) error {
	if n <= 0 {
		return nil
	}
	zeros := make([]byte, n)
	_, err := mf.f.Write(zeros)
	return err
}

func (mf *File) WriteK(k ul.Key) error {
	return mf.WriteBytes(k[:])
}

func (mf *File) ReadK() (ul.Key, error) {
	var k ul.Key
	if _, err := mf.Read(k[:]); err != nil {
		return ul.Key{}, err
	}
	return k, nil
}

// WriteL writes length using BER long form, the whole length field (form
// octet plus data bytes) padded to at least minLLen bytes.
func (mf *File) WriteL(length uint64) (int, error) {
	llen := mf.GetLLen(length)
	n := llen - 1
	buf := make([]byte, llen)
	buf[0] = 0x80 | byte(n)
	v := length
	for i := n; i >= 1; i-- {
		buf[i] = byte(v)
		v >>= 8
	}
	if err := mf.WriteBytes(buf); err != nil {
		return 0, err
	}
	return llen, nil
}

func (mf *File) WriteKL(k ul.Key, length uint64) (int, error) {
	if err := mf.WriteK(k); err != nil {
		return 0, err
	}
	return mf.WriteL(length)
}

// ReadL reads a BER-coded length. llen is the total number of bytes the
// encoding occupied, including the leading form octet.
func (mf *File) ReadL() (int, uint64, error) {
	var first [1]byte
	if _, err := mf.Read(first[:]); err != nil {
		return 0, 0, err
	}
	if first[0] < 0x80 {
		return 1, uint64(first[0]), nil
	}
	n := int(first[0] & 0x7f)
	if n == 0 || n > 8 {
		return 0, 0, fmt.Errorf("mxfio: invalid BER length form octet 0x%02x", first[0])
	}
	buf := make([]byte, n)
	if _, err := mf.Read(buf); err != nil {
		return 0, 0, err
	}
	var v uint64
	for _, b := range buf {
		v = (v << 8) | uint64(b)
	}
	return 1 + n, v, nil
}

func (mf *File) ReadKL() (ul.Key, uint64, error) {
	k, err := mf.ReadK()
	if err != nil {
		return ul.Key{}, 0, err
	}
	_, length, err := mf.ReadL()
	if err != nil {
		return ul.Key{}, 0, err
	}
	return k, length, nil
}

func (mf *File) Skip(n int64) error {
	if n == 0 {
		return nil
	}
	_, err := mf.f.Seek(n, io.SeekCurrent)
	return err
}

func (mf *File) WriteU16(v uint16) error {
	var b [2]byte
	binary.BigEndian.PutUint16(b[:], v)
	return mf.WriteBytes(b[:])
}

func (mf *File) WriteU32(v uint32) error {
	var b [4]byte
	binary.BigEndian.PutUint32(b[:], v)
	return mf.WriteBytes(b[:])
}

func (mf *File) WriteU64(v uint64) error {
	var b [8]byte
	binary.BigEndian.PutUint64(b[:], v)
	return mf.WriteBytes(b[:])
}

func (mf *File) ReadU16() (uint16, error) {
	var b [2]byte
	if _, err := mf.Read(b[:]); err != nil {
		return 0, err
	}
	return binary.BigEndian.Uint16(b[:]), nil
}

func (mf *File) ReadU32() (uint32, error) {
	var b [4]byte
	if _, err := mf.Read(b[:]); err != nil {
		return 0, err
	}
	return binary.BigEndian.Uint32(b[:]), nil
}

func (mf *File) ReadU64() (uint64, error) {
	var b [8]byte
	if _, err := mf.Read(b[:]); err != nil {
		return 0, err
	}
	return binary.BigEndian.Uint64(b[:]), nil
}

func (mf *File) WriteUL(l ul.Label) error {
	return mf.WriteBytes(l[:])
}

func (mf *File) ReadUL() (ul.Label, error) {
	var l ul.Label
	if _, err := mf.Read(l[:]); err != nil {
		return ul.Label{}, err
	}
	return l, nil
}

func (mf *File) WriteBatchHeader(count, elementSize uint32) error {
	if err := mf.WriteU32(count); err != nil {
		return err
	}
	return mf.WriteU32(elementSize)
}

func (mf *File) ReadBatchHeader() (uint32, uint32, error) {
	count, err := mf.ReadU32()
	if err != nil {
		return 0, 0, err
	}
	elementSize, err := mf.ReadU32()
	if err != nil {
		return 0, 0, err
	}
	return count, elementSize, nil
}

func (mf *File) GetMinLLen() int {
	return mf.minLLen
}

// GetLLen returns the total number of bytes (including the leading BER form
// octet) a long-form length field needs to encode value, never less than
// GetMinLLen.
func (mf *File) GetLLen(value uint64) int {
	n := 1 // data bytes
	for v := value; v > 0xff; v >>= 8 {
		n++
	}
	total := 1 + n
	if total < mf.minLLen {
		total = mf.minLLen
	}
	return total
}

func (mf *File) GetRunInLen() uint16 {
	return mf.runInLen
}

func (mf *File) SetRunInLen(n uint16) {
	mf.runInLen = n
}
