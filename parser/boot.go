package parser

import (
	"errors"
	"fmt"
	"io"

	"github.com/t9t/gomft/binutil"
)

var (
	GeometryError = errors.New("GeometryError")
)

const (
	// Every MFT entry is assumed to occupy exactly 1024 bytes. Real
	// NTFS derives the record size from the boot sector's
	// clusters-per-record field, but 1024 is the value on effectively
	// every volume and this is not a general purpose NTFS reader.
	EntrySize = 1024

	// Fixups are applied per 512 byte sector within an entry.
	SectorSize = 512
)

// NTFS_BOOT_SECTOR provides access to the fields of the volume boot
// sector.
type NTFS_BOOT_SECTOR struct {
	b      [512]byte
	Reader io.ReaderAt
	Offset int64
}

func NewBootSector(reader io.ReaderAt, offset int64) (*NTFS_BOOT_SECTOR, error) {
	self := &NTFS_BOOT_SECTOR{Reader: reader, Offset: offset}
	n, _ := reader.ReadAt(self.b[:], offset)
	if n < len(self.b) {
		return nil, GeometryError
	}
	return self, nil
}

func (self *NTFS_BOOT_SECTOR) Sector_size() uint16 {
	return binutil.NewLittleEndianReader(self.b[:]).Uint16(11)
}

func (self *NTFS_BOOT_SECTOR) _sectors_per_cluster() uint8 {
	return self.b[13]
}

func (self *NTFS_BOOT_SECTOR) _mft_cluster() uint64 {
	return binutil.NewLittleEndianReader(self.b[:]).Uint64(48)
}

func (self *NTFS_BOOT_SECTOR) Magic() uint16 {
	return binutil.NewLittleEndianReader(self.b[:]).Uint16(510)
}

func (self *NTFS_BOOT_SECTOR) ClusterSize() int64 {
	return int64(self._sectors_per_cluster()) * int64(self.Sector_size())
}

// IsValid applies the sanity checks a forensic tool wants before
// trusting the geometry. A single entry decode does not require it -
// a damaged boot sector still yields usable numbers - so only the
// CLI calls it.
func (self *NTFS_BOOT_SECTOR) IsValid() error {
	if self.Magic() != 0xaa55 {
		return errors.New("Invalid magic")
	}

	sector_size := self.Sector_size()
	if sector_size == 0 || (sector_size%512 != 0) {
		return errors.New("Invalid sector_size")
	}

	switch self.ClusterSize() {
	case 0x200, 0x400, 0x800, 0x1000,
		0x2000, 0x4000, 0x8000, 0x10000:
		break
	default:
		return fmt.Errorf("Invalid cluster size %x", self.ClusterSize())
	}

	return nil
}

// VolumeGeometry is the set of boot sector values one entry decode
// needs, computed once per session.
type VolumeGeometry struct {
	BytesPerSector    uint16
	SectorsPerCluster uint8
	MFTStartCluster   uint64

	// Byte offset of the first MFT entry. Assumes a contiguous MFT.
	MFTByteOffset int64
}

func (self *NTFS_BOOT_SECTOR) Geometry() VolumeGeometry {
	geometry := VolumeGeometry{
		BytesPerSector:    self.Sector_size(),
		SectorsPerCluster: self._sectors_per_cluster(),
		MFTStartCluster:   self._mft_cluster(),
	}
	geometry.MFTByteOffset = int64(geometry.MFTStartCluster) *
		int64(geometry.SectorsPerCluster) * int64(geometry.BytesPerSector)
	return geometry
}
