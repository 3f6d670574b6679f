package parser

import (
	"bytes"
	"errors"
	"io"

	"github.com/t9t/gomft/binutil"
)

var (
	ShortReadError    = errors.New("ShortReadError")
	BadSignatureError = errors.New("BadSignatureError")
)

// GetRawEntry reads the 1024 byte MFT slot for the given address. All
// reads are at absolute offsets - the reader is never seeked, so many
// concurrent decodes may share it.
func GetRawEntry(reader io.ReaderAt, mft_offset int64, address int64) ([]byte, error) {
	if address < 0 {
		return nil, ShortReadError
	}

	buffer := make([]byte, EntrySize)
	n, err := reader.ReadAt(buffer, mft_offset+address*EntrySize)
	if err != nil && err != io.EOF {
		return nil, err
	}
	if n < EntrySize {
		return nil, ShortReadError
	}
	return buffer, nil
}

// FixUpRawEntry validates the FILE signature and writes the fixup
// array values back over the last two bytes of each sector. The
// volume driver displaces those bytes with a shared update sequence
// number; the real values live in the fixup array. The input buffer
// is not modified - a corrected copy is returned.
func FixUpRawEntry(entry []byte) ([]byte, error) {
	if len(entry) < EntrySize || !bytes.Equal(entry[:4], []byte("FILE")) {
		return nil, BadSignatureError
	}

	r := binutil.NewLittleEndianReader(entry)
	fixup_offset := int(r.Uint16(4))
	fixup_count := int(r.Uint16(6))

	buffer := make([]byte, EntrySize)
	copy(buffer, entry)

	// The first value of the fixup array is the update sequence
	// number itself, the rest are the displaced sector bytes.
	for idx := 1; idx < fixup_count; idx++ {
		src := fixup_offset + 2*idx
		dst := idx*SectorSize - 2
		if src+2 > len(entry) || dst+2 > len(buffer) {
			return nil, BadSignatureError
		}

		buffer[dst] = entry[src]
		buffer[dst+1] = entry[src+1]
	}

	return buffer, nil
}

// MFT_ENTRY provides access to the header fields of a fixed up entry
// buffer.
type MFT_ENTRY struct {
	buffer []byte
}

func NewMFTEntry(buffer []byte) *MFT_ENTRY {
	return &MFT_ENTRY{buffer: buffer}
}

func (self *MFT_ENTRY) Logfile_sequence_number() uint64 {
	return binutil.NewLittleEndianReader(self.buffer).Uint64(8)
}

func (self *MFT_ENTRY) Sequence_value() uint16 {
	return binutil.NewLittleEndianReader(self.buffer).Uint16(16)
}

func (self *MFT_ENTRY) Link_count() uint16 {
	return binutil.NewLittleEndianReader(self.buffer).Uint16(18)
}

// Attribute_offset is where the first attribute record starts. The
// common on disk value is 0x38.
func (self *MFT_ENTRY) Attribute_offset() uint16 {
	return binutil.NewLittleEndianReader(self.buffer).Uint16(20)
}

func (self *MFT_ENTRY) Flags() uint16 {
	return binutil.NewLittleEndianReader(self.buffer).Uint16(22)
}

func (self *MFT_ENTRY) IsAllocated() bool {
	return self.Flags()&0x01 != 0
}

// Mft_entry_size is the used length of the entry - attributes stop
// before this.
func (self *MFT_ENTRY) Mft_entry_size() uint32 {
	return binutil.NewLittleEndianReader(self.buffer).Uint32(24)
}

func (self *MFT_ENTRY) Header(address int64) EntryHeader {
	return EntryHeader{
		Address:       address,
		Sequence:      self.Sequence_value(),
		LogFileSeqNum: self.Logfile_sequence_number(),
		Links:         self.Link_count(),
		Allocated:     self.IsAllocated(),
	}
}
