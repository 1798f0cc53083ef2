// Package ul defines the 16-byte universal label types used throughout the
// MXF partition subsystem: the partition pack key, essence-container and
// operational-pattern labels, and the handful of process-wide identifiers
// (partition-pack prefix, KLV fill key, random index pack key) the
// classifier and codecs compare against.
package ul

import (
	"fmt"

	"github.com/google/uuid"
)

// Key is a 16-octet SMPTE universal label identifying a KLV item.
type Key [16]byte

// Label is a 16-octet universal label used for essence-container and
// operational-pattern values. Distinct type from Key so a Partition's label
// list can't be confused with its own identifying key.
type Label [16]byte

// String renders the label as a UUID-style hex dump for diagnostics. MXF
// universal labels aren't UUIDs, but the grouping uuid.UUID already
// produces is exactly the hex-dump shape partition dumps want, so reuse it
// instead of hand-rolling one.
func (l Label) String() string {
	return uuid.UUID(l).String()
}

func (k Key) String() string {
	return uuid.UUID(k).String()
}

// EqualPrefix reports whether a and b agree on their first n octets.
func EqualPrefix(a, b Key, n int) bool {
	if n < 0 || n > len(a) {
		panic(fmt.Sprintf("ul: EqualPrefix n=%d out of range", n))
	}
	for i := 0; i < n; i++ {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

// registryVersionOctet is the index (0-based) of the registry-version byte
// within a SMPTE universal label. Comparisons that are meant to recognise a
// label across registry revisions ignore this byte.
const registryVersionOctet = 7

// EqualModRegistryVersion reports whether a and b are equal ignoring octet 7
// (the registry-version byte), per SMPTE practice for recognising KLV Fill
// across registry revisions.
func EqualModRegistryVersion(a, b Key) bool {
	for i := range a {
		if i == registryVersionOctet {
			continue
		}
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

// PartitionPackPrefixLen is the number of leading octets that identify a key
// as some variant of the partition pack key; octets 13 and 14 (0-indexed)
// carry the subtype and status that vary across header/body/footer and
// open/closed/incomplete/complete.
const PartitionPackPrefixLen = 13

// PartitionPackPrefix is the first 13 octets shared by every partition pack
// key variant (header/body/footer x open/closed x incomplete/complete).
var PartitionPackPrefix = Key{
	0x06, 0x0e, 0x2b, 0x34, 0x02, 0x05, 0x01, 0x01,
	0x0d, 0x01, 0x02, 0x01, 0x01, 0x00, 0x00, 0x00,
}

// FillKey is the KLV Fill item universal label, compared modulo registry
// version.
var FillKey = Key{
	0x06, 0x0e, 0x2b, 0x34, 0x01, 0x01, 0x01, 0x01,
	0x03, 0x01, 0x02, 0x01, 0x01, 0x00, 0x00, 0x00,
}

// RIPKey is the Random Index Pack key.
var RIPKey = Key{
	0x06, 0x0e, 0x2b, 0x34, 0x02, 0x05, 0x01, 0x01,
	0x0d, 0x01, 0x02, 0x01, 0x01, 0x11, 0x01, 0x00,
}

// MaxRunInLen is the largest permitted run-in, per SMPTE 377.
const MaxRunInLen = 65535

// KeyLen is the byte length of a universal label / KLV key.
const KeyLen = 16

// LabelLen is the byte length of an essence-container or operational-pattern
// label; always equal to KeyLen but named separately since the two serve
// distinct roles in the partition pack layout.
const LabelLen = 16

// FixedPackPrefixLen is the length, in bytes, of the partition pack value
// preceding its essence-container labels: 80 bytes of fixed fields plus the
// 8-byte batch header.
const FixedPackPrefixLen = 88
