package partition

import "github.com/s0up4200/mxfkit/internal/ul"

// subtype octets (key[13]).
const (
	subtypeHeader = 0x02
	subtypeBody   = 0x03
	subtypeFooter = 0x04
)

// status octets (key[14]).
const (
	statusClosedIncomplete = 0x02
	statusOpenComplete     = 0x03
	statusClosedComplete   = 0x04
)

// IsPartitionPack reports whether k identifies some variant of a partition
// pack: a partition-pack prefix match on octets 0-12 and a recognised
// subtype octet.
func IsPartitionPack(k ul.Key) bool {
	if !ul.EqualPrefix(k, ul.PartitionPackPrefix, ul.PartitionPackPrefixLen) {
		return false
	}
	switch k[13] {
	case subtypeHeader, subtypeBody, subtypeFooter:
		return true
	default:
		return false
	}
}

// IsHeaderPartitionPack reports whether k is a header partition pack.
func IsHeaderPartitionPack(k ul.Key) bool {
	return ul.EqualPrefix(k, ul.PartitionPackPrefix, ul.PartitionPackPrefixLen) && k[13] == subtypeHeader
}

// IsBodyPartitionPack reports whether k is a body partition pack.
func IsBodyPartitionPack(k ul.Key) bool {
	return ul.EqualPrefix(k, ul.PartitionPackPrefix, ul.PartitionPackPrefixLen) && k[13] == subtypeBody
}

// IsFooterPartitionPack reports whether k is a footer partition pack.
func IsFooterPartitionPack(k ul.Key) bool {
	return ul.EqualPrefix(k, ul.PartitionPackPrefix, ul.PartitionPackPrefixLen) && k[13] == subtypeFooter
}

// IsClosed reports whether a partition pack key marks a closed partition.
// Only meaningful when IsPartitionPack(k) is true.
func IsClosed(k ul.Key) bool {
	if !IsPartitionPack(k) {
		return false
	}
	return k[14] == statusClosedIncomplete || k[14] == statusClosedComplete
}

// IsComplete reports whether a partition pack key marks a complete
// partition. Only meaningful when IsPartitionPack(k) is true.
func IsComplete(k ul.Key) bool {
	if !IsPartitionPack(k) {
		return false
	}
	return k[14] == statusOpenComplete || k[14] == statusClosedComplete
}

// IsClosedAndComplete reports whether k marks a closed, complete partition.
func IsClosedAndComplete(k ul.Key) bool {
	if !IsPartitionPack(k) {
		return false
	}
	return k[14] == statusClosedComplete
}

// IsFiller reports whether k is the KLV Fill key, compared modulo the
// registry-version octet.
func IsFiller(k ul.Key) bool {
	return ul.EqualModRegistryVersion(k, ul.FillKey)
}
