package bg3

import "fmt"

// Version is the 64-bit packed module version used by meta.lsx
// (major[63:55], minor[54:47], revision[46:31], build[30:0]).
type Version uint64

// NewVersion packs the four version components.
func NewVersion(major, minor, revision, build uint64) Version {
	return Version(major<<55 | (minor&0xFF)<<47 | (revision&0xFFFF)<<31 | build&0x7FFFFFFF)
}

// Major returns bits 63..55
func (v Version) Major() uint64 { return uint64(v) >> 55 }

// Minor returns bits 54..47
func (v Version) Minor() uint64 { return (uint64(v) >> 47) & 0xFF }

// Revision returns bits 46..31
func (v Version) Revision() uint64 { return (uint64(v) >> 31) & 0xFFFF }

// Build returns bits 30..0
func (v Version) Build() uint64 { return uint64(v) & 0x7FFFFFFF }

func (v Version) String() string {
	return fmt.Sprintf("%d.%d.%d.%d", v.Major(), v.Minor(), v.Revision(), v.Build())
}
