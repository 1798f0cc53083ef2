package discovery

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/s0up4200/mxfkit/internal/mxfio"
	"github.com/s0up4200/mxfkit/internal/ul"
)

func openTempFile(t testing.TB) *mxfio.File {
	t.Helper()
	path := filepath.Join(t.TempDir(), "discovery.mxf")
	f, err := mxfio.Open(path)
	if err != nil {
		t.Fatalf("mxfio.Open: %v", err)
	}
	t.Cleanup(func() { f.Close() })
	return f
}

func keyBytes(subtype, status byte) []byte {
	k := ul.PartitionPackPrefix
	k[13] = subtype
	k[14] = status
	return k[:]
}

func TestFindHeaderPartition_ZeroRunIn_Succeeds(t *testing.T) {
	f := openTempFile(t)
	if err := f.WriteBytes(keyBytes(0x02, 0x04)); err != nil {
		t.Fatalf("WriteBytes: %v", err)
	}
	if err := f.WriteBytes([]byte{0x00}); err != nil { // BER short-form length 0
		t.Fatalf("WriteBytes: %v", err)
	}
	if _, err := f.Seek(0, 0); err != nil {
		t.Fatalf("seek: %v", err)
	}

	key, err := FindHeaderPartition(f)
	if err != nil {
		t.Fatalf("FindHeaderPartition: %v", err)
	}
	if key[13] != 0x02 || key[14] != 0x04 {
		t.Fatalf("key subtype/status = %#x/%#x, want 0x02/0x04", key[13], key[14])
	}
	if f.GetRunInLen() != 0 {
		t.Fatalf("GetRunInLen() = %d, want 0", f.GetRunInLen())
	}
}

func TestFindHeaderPartition_ExactMaxRunInBoundary_Succeeds(t *testing.T) {
	f := openTempFile(t)
	filler := make([]byte, ul.MaxRunInLen)
	if err := f.WriteBytes(filler); err != nil {
		t.Fatalf("WriteBytes filler: %v", err)
	}
	if err := f.WriteBytes(keyBytes(0x02, 0x04)); err != nil {
		t.Fatalf("WriteBytes key: %v", err)
	}
	if err := f.WriteBytes([]byte{0x00}); err != nil {
		t.Fatalf("WriteBytes length: %v", err)
	}
	if _, err := f.Seek(0, 0); err != nil {
		t.Fatalf("seek: %v", err)
	}

	if _, err := FindHeaderPartition(f); err != nil {
		t.Fatalf("FindHeaderPartition at exact MaxRunInLen boundary: %v", err)
	}
	if f.GetRunInLen() != ul.MaxRunInLen {
		t.Fatalf("GetRunInLen() = %d, want %d", f.GetRunInLen(), ul.MaxRunInLen)
	}
}

func TestFindHeaderPartition_PastMaxRunIn_Fails(t *testing.T) {
	f := openTempFile(t)
	filler := make([]byte, ul.MaxRunInLen+1)
	if err := f.WriteBytes(filler); err != nil {
		t.Fatalf("WriteBytes filler: %v", err)
	}
	if err := f.WriteBytes(keyBytes(0x02, 0x04)); err != nil {
		t.Fatalf("WriteBytes key: %v", err)
	}
	if _, err := f.Seek(0, 0); err != nil {
		t.Fatalf("seek: %v", err)
	}

	if _, err := FindHeaderPartition(f); err != ErrNoHeaderFound {
		t.Fatalf("err = %v, want ErrNoHeaderFound", err)
	}
}

func TestFindHeaderPartition_NoMatchAtAll_Fails(t *testing.T) {
	f := openTempFile(t)
	if err := f.WriteBytes(make([]byte, 100)); err != nil {
		t.Fatalf("WriteBytes: %v", err)
	}
	if _, err := f.Seek(0, 0); err != nil {
		t.Fatalf("seek: %v", err)
	}
	if _, err := FindHeaderPartition(f); err != ErrNoHeaderFound {
		t.Fatalf("err = %v, want ErrNoHeaderFound", err)
	}
}

func TestFindHeaderPartition_NonHeaderVariant_Fails(t *testing.T) {
	f := openTempFile(t)
	if err := f.WriteBytes(keyBytes(0x03, 0x04)); err != nil { // body, not header
		t.Fatalf("WriteBytes: %v", err)
	}
	if _, err := f.Seek(0, 0); err != nil {
		t.Fatalf("seek: %v", err)
	}
	if _, err := FindHeaderPartition(f); err != ErrNotHeader {
		t.Fatalf("err = %v, want ErrNotHeader", err)
	}
}

func TestFindFooterPartition_Succeeds(t *testing.T) {
	f := openTempFile(t)
	if err := f.WriteBytes(make([]byte, 50)); err != nil {
		t.Fatalf("WriteBytes junk: %v", err)
	}
	footerKeyPos := int64(50)
	if err := f.WriteBytes(keyBytes(0x04, 0x04)); err != nil {
		t.Fatalf("WriteBytes footer key: %v", err)
	}
	if err := f.WriteBytes(make([]byte, 20)); err != nil {
		t.Fatalf("WriteBytes trailing: %v", err)
	}

	if err := FindFooterPartition(f); err != nil {
		t.Fatalf("FindFooterPartition: %v", err)
	}
	if f.Tell() != footerKeyPos {
		t.Fatalf("Tell() = %d, want %d", f.Tell(), footerKeyPos)
	}
}

func TestFindFooterPartition_NoFooter_Fails(t *testing.T) {
	f := openTempFile(t)
	if err := f.WriteBytes(make([]byte, 20)); err != nil {
		t.Fatalf("WriteBytes: %v", err)
	}
	if err := FindFooterPartition(f); err != ErrNoFooterFound {
		t.Fatalf("err = %v, want ErrNoFooterFound", err)
	}
}

// FuzzFindHeaderPartition feeds arbitrary leading bytes: the scanner must
// never panic, returning ErrNoHeaderFound/ErrNotHeader or a located key.
func FuzzFindHeaderPartition(f *testing.F) {
	f.Add(append(keyBytes(0x02, 0x04), 0x00))
	f.Add(make([]byte, 100))
	f.Add([]byte{})
	f.Add(append(make([]byte, 30), keyBytes(0x02, 0x04)...))

	f.Fuzz(func(t *testing.T, body []byte) {
		path := filepath.Join(t.TempDir(), "fuzz-header.mxf")
		if err := os.WriteFile(path, body, 0o644); err != nil {
			t.Fatalf("WriteFile: %v", err)
		}
		mf, err := mxfio.Open(path)
		if err != nil {
			t.Fatalf("mxfio.Open: %v", err)
		}
		defer mf.Close()

		_, _ = FindHeaderPartition(mf)
	})
}

// FuzzFindFooterPartition feeds arbitrary trailing bytes: the backward
// scanner must never panic.
func FuzzFindFooterPartition(f *testing.F) {
	f.Add(append(make([]byte, 50), keyBytes(0x04, 0x04)...))
	f.Add(make([]byte, 20))
	f.Add([]byte{})

	f.Fuzz(func(t *testing.T, body []byte) {
		path := filepath.Join(t.TempDir(), "fuzz-footer.mxf")
		if err := os.WriteFile(path, body, 0o644); err != nil {
			t.Fatalf("WriteFile: %v", err)
		}
		mf, err := mxfio.Open(path)
		if err != nil {
			t.Fatalf("mxfio.Open: %v", err)
		}
		defer mf.Close()

		_ = FindFooterPartition(mf)
	})
}

func TestFindFooterPartition_StopsAtBodyOrHeaderBeforeFooter(t *testing.T) {
	f := openTempFile(t)
	// A header partition pack appears after where a footer would be expected;
	// scanning backward should stop once it's hit rather than running past it.
	if err := f.WriteBytes(keyBytes(0x02, 0x04)); err != nil {
		t.Fatalf("WriteBytes header: %v", err)
	}
	if err := f.WriteBytes(make([]byte, 50)); err != nil {
		t.Fatalf("WriteBytes: %v", err)
	}
	if err := FindFooterPartition(f); err != ErrNoFooterFound {
		t.Fatalf("err = %v, want ErrNoFooterFound", err)
	}
}
