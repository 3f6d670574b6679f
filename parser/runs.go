package parser

import (
	"encoding/binary"
	"errors"
)

var (
	RunListError = errors.New("RunListError")
)

// Run is one extent of a non resident attribute. The offset is in
// clusters, relative to the starting cluster of the previous run (the
// first run is relative to cluster 0). A sparse run has no offset
// bytes at all - it covers clusters with no physical location.
type Run struct {
	RelativeOffset int64
	Length         int64
	IsSparse       bool
}

// DecodeRunList parses a run list byte stream. Each run opens with a
// header byte: the high nibble is the width of the signed offset
// delta, the low nibble the width of the unsigned run length. A 0x00
// header terminates the list.
func DecodeRunList(buffer []byte) ([]Run, error) {
	result := []Run{}

	length_buffer := make([]byte, 8)
	offset_buffer := make([]byte, 8)

	for offset := 0; offset < len(buffer); {
		idx := buffer[offset]
		if idx == 0 {
			return result, nil
		}

		length_size := int(idx & 0xF)
		run_offset_size := int(idx >> 4)
		offset++

		// Every real run must advance the stream by at least one
		// cluster.
		if length_size == 0 {
			return nil, RunListError
		}
		if offset+length_size+run_offset_size > len(buffer) {
			return nil, RunListError
		}

		// Pad the length out to 8 bytes.
		for i := 0; i < 8; i++ {
			if i < length_size {
				length_buffer[i] = buffer[offset]
				offset++
			} else {
				length_buffer[i] = 0
			}
		}

		// Sign extend if the top bit of the last offset byte is set.
		var sign byte = 0x00
		for i := 0; i < 8; i++ {
			if i == run_offset_size-1 &&
				buffer[offset]&0x80 != 0 {
				sign = 0xFF
			}

			if i < run_offset_size {
				offset_buffer[i] = buffer[offset]
				offset++
			} else {
				offset_buffer[i] = sign
			}
		}

		result = append(result, Run{
			RelativeOffset: int64(binary.LittleEndian.Uint64(offset_buffer)),
			Length:         int64(binary.LittleEndian.Uint64(length_buffer)),
			IsSparse:       run_offset_size == 0,
		})
	}

	return result, nil
}

// MaterializeClusters flattens a run list into the ordered absolute
// cluster numbers backing the stream. The delta of each run
// accumulates onto the starting cluster of the previous non sparse
// run. Sparse runs are holes: they contribute no clusters to the
// list, only to the returned hole count.
func MaterializeClusters(runs []Run) ([]uint64, int64) {
	clusters := []uint64{}
	sparse := int64(0)
	current := int64(0)

	for _, run := range runs {
		if run.IsSparse {
			sparse += run.Length
			continue
		}

		current += run.RelativeOffset
		for i := int64(0); i < run.Length; i++ {
			clusters = append(clusters, uint64(current+i))
		}
	}

	return clusters, sparse
}
