package parser

import (
	"io"
)

// NTFSContext holds the volume geometry for a decode session. The
// reader is only ever used through offset addressed ReadAt calls so a
// single context may serve concurrent decodes.
type NTFSContext struct {
	DiskReader io.ReaderAt

	Boot     *NTFS_BOOT_SECTOR
	Geometry VolumeGeometry
}

// GetNTFSContext parses the boot sector and computes the geometry
// once; the context is then reusable across many entry decodes.
func GetNTFSContext(image io.ReaderAt, offset int64) (*NTFSContext, error) {
	if offset != 0 {
		image = &OffsetReader{Offset: offset, Reader: image}
	}

	boot, err := NewBootSector(image, 0)
	if err != nil {
		return nil, err
	}

	return &NTFSContext{
		DiskReader: image,
		Boot:       boot,
		Geometry:   boot.Geometry(),
	}, nil
}

// GetEntry decodes one MFT entry: fetch, fixup, header, then the
// $STANDARD_INFORMATION, $FILE_NAME and $DATA attributes in that
// order. Attributes are stored in increasing type code order, so each
// search starts where the previous attribute ended. Any failure
// aborts the decode with the specific error - there is no partial
// result.
func (self *NTFSContext) GetEntry(address int64) (*DecodedEntry, error) {
	DebugPrint("Decoding MFT entry %d @ %#x\n",
		address, self.Geometry.MFTByteOffset+address*EntrySize)

	raw, err := GetRawEntry(self.DiskReader, self.Geometry.MFTByteOffset, address)
	if err != nil {
		return nil, err
	}

	fixed, err := FixUpRawEntry(raw)
	if err != nil {
		return nil, err
	}

	mft := NewMFTEntry(fixed)

	std_info, err := ParseStandardInformation(fixed, int(mft.Attribute_offset()))
	if err != nil {
		return nil, err
	}

	file_name, err := ParseFileName(fixed, std_info.End)
	if err != nil {
		return nil, err
	}

	data, err := ParseData(fixed, file_name.End)
	if err != nil {
		return nil, err
	}

	return &DecodedEntry{
		Header:       mft.Header(address),
		StandardInfo: std_info,
		FileName:     file_name,
		Data:         data,
	}, nil
}
