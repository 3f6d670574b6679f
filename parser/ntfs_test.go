package parser_test

import (
	"bytes"
	"encoding/binary"
	"testing"

	"github.com/sebdah/goldie"
	"github.com/stretchr/testify/assert"

	"github.com/dfirtools/istat-ntfs/parser"
)

// 2020-01-01 00:00:00.1234567 UTC and the two hours after it, in 100ns
// ticks since 1601.
const (
	createdTicks  = 132223104000000000 + 1234567
	modifiedTicks = 132223104000000000 + 3600*10000000
	accessedTicks = 132223104000000000 + 7200*10000000
)

func putStandardInformation(entry []byte, offset int) int {
	attr := entry[offset:]
	binary.LittleEndian.PutUint32(attr[0:], 0x10)
	binary.LittleEndian.PutUint32(attr[4:], 96) // record length
	binary.LittleEndian.PutUint32(attr[16:], 72)
	binary.LittleEndian.PutUint16(attr[20:], 24)

	content := attr[24:]
	binary.LittleEndian.PutUint64(content[0:], createdTicks)
	binary.LittleEndian.PutUint64(content[8:], modifiedTicks)
	binary.LittleEndian.PutUint64(content[16:], modifiedTicks)
	binary.LittleEndian.PutUint64(content[24:], accessedTicks)
	binary.LittleEndian.PutUint32(content[32:], 0x20) // Archive

	return offset + 96
}

func putFileName(entry []byte, offset int) int {
	attr := entry[offset:]
	binary.LittleEndian.PutUint32(attr[0:], 0x30)
	binary.LittleEndian.PutUint32(attr[4:], 104) // record length
	binary.LittleEndian.PutUint32(attr[16:], 76)
	binary.LittleEndian.PutUint16(attr[20:], 24)

	content := attr[24:]
	binary.LittleEndian.PutUint64(content[0:], 5|5<<48) // parent reference
	binary.LittleEndian.PutUint64(content[8:], createdTicks)
	binary.LittleEndian.PutUint64(content[16:], modifiedTicks)
	binary.LittleEndian.PutUint64(content[24:], modifiedTicks)
	binary.LittleEndian.PutUint64(content[32:], accessedTicks)
	binary.LittleEndian.PutUint64(content[40:], 2048) // allocated size
	binary.LittleEndian.PutUint64(content[48:], 2000) // actual size
	binary.LittleEndian.PutUint32(content[56:], 0x20)

	content[64] = 5
	for i, unit := range []uint16{'a', '.', 't', 'x', 't'} {
		binary.LittleEndian.PutUint16(content[66+2*i:], unit)
	}

	return offset + 104
}

func putData(entry []byte, offset int) int {
	attr := entry[offset:]
	binary.LittleEndian.PutUint32(attr[0:], 0x80)
	binary.LittleEndian.PutUint32(attr[4:], 72) // record length
	attr[8] = 1                                 // non resident
	binary.LittleEndian.PutUint16(attr[32:], 64)
	binary.LittleEndian.PutUint64(attr[40:], 2048) // allocated size
	binary.LittleEndian.PutUint64(attr[48:], 2000) // actual size
	binary.LittleEndian.PutUint64(attr[56:], 2000) // initialized size

	// Four clusters starting at cluster 16.
	copy(attr[64:], []byte{0x11, 0x04, 0x10, 0x00})

	return offset + 72
}

// buildTestImage lays out a tiny volume: a boot sector placing the MFT
// at cluster 2 (byte 1024), one populated entry with the update
// sequence number displacing its sector tails, and one zeroed slot.
func buildTestImage() []byte {
	image := make([]byte, 3072)

	binary.LittleEndian.PutUint16(image[11:], 512) // bytes per sector
	image[13] = 1                                  // sectors per cluster
	binary.LittleEndian.PutUint64(image[48:], 2)   // MFT start cluster
	binary.LittleEndian.PutUint16(image[510:], 0xaa55)

	entry := image[1024:2048]
	copy(entry, "FILE")
	binary.LittleEndian.PutUint16(entry[4:], 48)  // fixup array offset
	binary.LittleEndian.PutUint16(entry[6:], 3)   // fixup count
	binary.LittleEndian.PutUint64(entry[8:], 123) // $LogFile sequence number
	binary.LittleEndian.PutUint16(entry[16:], 2)  // sequence
	binary.LittleEndian.PutUint16(entry[18:], 1)  // links
	binary.LittleEndian.PutUint16(entry[20:], 56) // first attribute
	binary.LittleEndian.PutUint16(entry[22:], 1)  // allocated

	offset := 56
	offset = putStandardInformation(entry, offset)
	offset = putFileName(entry, offset)
	offset = putData(entry, offset)
	binary.LittleEndian.PutUint32(entry[offset:], 0xFFFFFFFF)
	binary.LittleEndian.PutUint32(entry[24:], uint32(offset+8)) // used size

	// Displace the sector tails with the update sequence number. The
	// real tail bytes (zeros here) sit in the fixup array.
	binary.LittleEndian.PutUint16(entry[48:], 0xBEEF)
	binary.LittleEndian.PutUint16(entry[510:], 0xBEEF)
	binary.LittleEndian.PutUint16(entry[1022:], 0xBEEF)

	return image
}

func testContext(t *testing.T) *parser.NTFSContext {
	reader, err := parser.NewPagedReader(
		bytes.NewReader(buildTestImage()), 1024, 100)
	assert.NoError(t, err)

	ntfs_ctx, err := parser.GetNTFSContext(reader, 0)
	assert.NoError(t, err)
	return ntfs_ctx
}

func TestGetEntry(t *testing.T) {
	ntfs_ctx := testContext(t)
	assert.Equal(t, int64(1024), ntfs_ctx.Geometry.MFTByteOffset)

	entry, err := ntfs_ctx.GetEntry(0)
	assert.NoError(t, err)

	assert.Equal(t, parser.EntryHeader{
		Address:       0,
		Sequence:      2,
		LogFileSeqNum: 123,
		Links:         1,
		Allocated:     true,
	}, entry.Header)

	si := entry.StandardInfo
	assert.Equal(t, int64(1577836800), si.Created.Unix())
	assert.Equal(t, int64(1234567), si.Created.Fraction())
	assert.Equal(t, int64(1577840400), si.Modified.Unix())
	assert.Equal(t, int64(1577844000), si.Accessed.Unix())
	assert.Equal(t, uint32(0x20), si.Flags)

	fn := entry.FileName
	assert.Equal(t, "a.txt", fn.Name)
	assert.Equal(t, uint64(5), fn.Parent)
	assert.Equal(t, uint16(5), fn.ParentSequence)
	assert.Equal(t, uint64(2048), fn.AllocatedSize)
	assert.Equal(t, uint64(2000), fn.ActualSize)

	data, ok := entry.Data.(parser.NonResidentData)
	assert.True(t, ok)
	assert.Equal(t, int64(2000), data.Size)
	assert.Equal(t, int64(2000), data.InitializedSize)
	assert.Equal(t, []uint64{16, 17, 18, 19}, data.Clusters)
	assert.Equal(t, int64(0), data.SparseClusters)
	assert.Equal(t, int64(2000), data.DataSize())
}

func TestGetEntryErrors(t *testing.T) {
	ntfs_ctx := testContext(t)

	// The second slot is zeroed, the third is past the image.
	_, err := ntfs_ctx.GetEntry(1)
	assert.Equal(t, parser.BadSignatureError, err)

	_, err = ntfs_ctx.GetEntry(2)
	assert.Equal(t, parser.ShortReadError, err)
}

func TestIstat(t *testing.T) {
	ntfs_ctx := testContext(t)

	entry, err := ntfs_ctx.GetEntry(0)
	assert.NoError(t, err)

	goldie.Assert(t, "TestIstat", []byte(parser.Report(entry)))
}
