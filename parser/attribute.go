package parser

import (
	"encoding/binary"
	"errors"

	"github.com/t9t/gomft/binutil"
)

const (
	ATTR_TYPE_STANDARD_INFORMATION uint32 = 0x10
	ATTR_TYPE_FILE_NAME            uint32 = 0x30
	ATTR_TYPE_DATA                 uint32 = 0x80

	// Marks the end of the attribute sequence within an entry.
	ATTR_TYPE_TERMINATOR uint32 = 0xFFFFFFFF
)

var (
	MalformedAttributeError = errors.New("MalformedAttributeError")
	AttributeNotFoundError  = errors.New("AttributeNotFoundError")
)

// NTFS_ATTRIBUTE is one variable length attribute record inside a
// fixed up entry buffer. The record spans [Offset, Offset+Length) of
// the entry.
type NTFS_ATTRIBUTE struct {
	buffer []byte
	Offset int
}

func (self *NTFS_ATTRIBUTE) Type() uint32 {
	return binutil.NewLittleEndianReader(self.buffer).Uint32(0)
}

func (self *NTFS_ATTRIBUTE) Length() uint32 {
	return binutil.NewLittleEndianReader(self.buffer).Uint32(4)
}

func (self *NTFS_ATTRIBUTE) IsResident() bool {
	return self.buffer[8] == 0
}

// Content_size is the declared size of a resident attribute's
// content.
func (self *NTFS_ATTRIBUTE) Content_size() uint32 {
	return binutil.NewLittleEndianReader(self.buffer).Uint32(16)
}

// Content_offset is where the attribute content starts within the
// record. The layout differs between resident and non resident
// headers, so content is always located through this field and never
// at a fixed offset.
func (self *NTFS_ATTRIBUTE) Content_offset() uint16 {
	return binutil.NewLittleEndianReader(self.buffer).Uint16(20)
}

func (self *NTFS_ATTRIBUTE) Runlist_offset() uint16 {
	return binutil.NewLittleEndianReader(self.buffer).Uint16(32)
}

func (self *NTFS_ATTRIBUTE) Actual_size() uint64 {
	return binutil.NewLittleEndianReader(self.buffer).Uint64(48)
}

// Initialized_size occupies bytes 56-64 of the non resident header.
// Truncated records are padded with zeros rather than read past the
// record end.
func (self *NTFS_ATTRIBUTE) Initialized_size() uint64 {
	if len(self.buffer) < 57 {
		return 0
	}
	var b [8]byte
	copy(b[:], self.buffer[56:])
	return binary.LittleEndian.Uint64(b[:])
}

// Content returns the attribute content as declared by the header's
// own content offset.
func (self *NTFS_ATTRIBUTE) Content() ([]byte, error) {
	start := int(self.Content_offset())
	if start <= 0 || start > len(self.buffer) {
		return nil, MalformedAttributeError
	}
	return self.buffer[start:], nil
}

// FindAttribute scans the entry linearly for the next attribute with
// the given type code, starting at search_start. Attributes are laid
// out in increasing type code order so chained lookups pass the end
// offset of the previous hit. Returns the record and the offset
// immediately after it.
//
// Each iteration must make forward progress; a non positive record
// length is MalformedAttributeError. Running past the entry's used
// size, or hitting the 0xFFFFFFFF end marker, without a match is
// AttributeNotFoundError.
func FindAttribute(attr_type uint32, entry []byte, search_start int) (
	*NTFS_ATTRIBUTE, int, error) {

	used := entryUsedSize(entry)
	r := binutil.NewLittleEndianReader(entry)

	offset := search_start
	for {
		if offset < 0 || offset+8 > used {
			return nil, 0, AttributeNotFoundError
		}

		candidate := r.Uint32(offset)
		if candidate == ATTR_TYPE_TERMINATOR {
			return nil, 0, AttributeNotFoundError
		}

		length := int(r.Uint32(offset + 4))
		if length <= 0 || offset+length > len(entry) {
			return nil, 0, MalformedAttributeError
		}

		end := offset + length
		if candidate == attr_type {
			return &NTFS_ATTRIBUTE{
				buffer: entry[offset:end],
				Offset: offset,
			}, end, nil
		}

		offset = end
	}
}

func entryUsedSize(entry []byte) int {
	used := int(binutil.NewLittleEndianReader(entry).Uint32(24))
	if used <= 0 || used > len(entry) {
		used = len(entry)
	}
	return used
}
