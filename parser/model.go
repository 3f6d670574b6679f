package parser

// This file defines the decoded model for one MFT entry. A
// DecodedEntry is built fresh for every request and never cached -
// callers get fully resolved values and never need to re-parse raw
// attribute bytes.

type EntryHeader struct {
	Address       int64
	Sequence      uint16
	LogFileSeqNum uint64
	Links         uint16
	Allocated     bool
}

type StandardInfo struct {
	Created     WinFileTime
	Modified    WinFileTime
	MFTModified WinFileTime
	Accessed    WinFileTime
	Flags       uint32

	// The attribute's declared content size.
	Size uint32

	// Where the next attribute record begins, for chaining.
	End int
}

type FileName struct {
	// The parent directory reference packs a 6 byte MFT entry number
	// and a 2 byte sequence into one 8 byte field.
	Parent         uint64
	ParentSequence uint16

	Created     WinFileTime
	Modified    WinFileTime
	MFTModified WinFileTime
	Accessed    WinFileTime

	AllocatedSize uint64
	ActualSize    uint64
	Flags         uint32
	Name          string

	Size uint32
	End  int
}

// DataInfo is the resident / non resident split of the $DATA
// attribute. Only the non resident form carries an initialized size
// and a cluster list, so the two cases are distinct types behind a
// common interface.
type DataInfo interface {
	DataSize() int64
}

type ResidentData struct {
	Size int64
}

func (self ResidentData) DataSize() int64 {
	return self.Size
}

type NonResidentData struct {
	Size            int64
	InitializedSize int64

	// The flat ordered cluster numbers backing the stream. Sparse
	// holes are excluded; SparseClusters counts them.
	Clusters       []uint64
	SparseClusters int64
}

func (self NonResidentData) DataSize() int64 {
	return self.Size
}

type DecodedEntry struct {
	Header       EntryHeader
	StandardInfo *StandardInfo
	FileName     *FileName
	Data         DataInfo
}
