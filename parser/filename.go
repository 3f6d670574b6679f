package parser

import (
	"encoding/binary"
	"errors"

	"github.com/t9t/gomft/binutil"
	"github.com/t9t/gomft/utf16"
)

var (
	NameDecodeError = errors.New("NameDecodeError")
)

// ParseFileName extracts the $FILE_NAME attribute, searching from
// search_start (normally the end of $STANDARD_INFORMATION).
func ParseFileName(entry []byte, search_start int) (*FileName, error) {
	attribute, end, err := FindAttribute(
		ATTR_TYPE_FILE_NAME, entry, search_start)
	if err != nil {
		return nil, err
	}

	content, err := attribute.Content()
	if err != nil {
		return nil, err
	}
	if len(content) < 66 {
		return nil, MalformedAttributeError
	}

	r := binutil.NewLittleEndianReader(content)

	// The name is length prefixed in UTF16 units; a length of 0 is a
	// valid empty name.
	name_units := int(r.Byte(64))
	name_end := 66 + 2*name_units
	if name_end > len(content) {
		return nil, NameDecodeError
	}
	name := utf16.DecodeString(content[66:name_end], binary.LittleEndian)

	reference := r.Uint64(0)

	return &FileName{
		Parent:         reference & 0xFFFFFFFFFFFF,
		ParentSequence: uint16(reference >> 48),
		Created:        WinFileTime{r.Uint64(8)},
		Modified:       WinFileTime{r.Uint64(16)},
		MFTModified:    WinFileTime{r.Uint64(24)},
		Accessed:       WinFileTime{r.Uint64(32)},
		AllocatedSize:  r.Uint64(40),
		ActualSize:     r.Uint64(48),
		Flags:          r.Uint32(56),
		Name:           name,
		Size:           attribute.Content_size(),
		End:            end,
	}, nil
}
