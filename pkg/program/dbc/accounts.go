package dbc

import "bytes"

var PoolConfigDiscriminator = []byte{26, 108, 14, 123, 116, 230, 129, 43}

var VirtualPoolDiscriminator = []byte{213, 224, 5, 209, 98, 69, 119, 92}

var VirtualPoolMetadataDiscriminator = []byte{217, 37, 82, 250, 43, 47, 228, 254}

var PartnerMetadataDiscriminator = []byte{68, 68, 130, 19, 16, 209, 98, 156}

// AccountKind names a program account from its discriminator, or returns "".
func AccountKind(data []byte) string {
	if len(data) < 8 {
		return ""
	}
	switch {
	case bytes.Equal(data[:8], PoolConfigDiscriminator):
		return "PoolConfig"
	case bytes.Equal(data[:8], VirtualPoolDiscriminator):
		return "VirtualPool"
	case bytes.Equal(data[:8], VirtualPoolMetadataDiscriminator):
		return "VirtualPoolMetadata"
	case bytes.Equal(data[:8], PartnerMetadataDiscriminator):
		return "PartnerMetadata"
	}
	return ""
}
