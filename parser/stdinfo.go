package parser

import (
	"github.com/t9t/gomft/binutil"
)

// ParseStandardInformation extracts the $STANDARD_INFORMATION
// attribute, searching from search_start. It is always the first
// attribute of an entry so the search normally starts at the entry
// header's declared first attribute offset.
func ParseStandardInformation(entry []byte, search_start int) (*StandardInfo, error) {
	attribute, end, err := FindAttribute(
		ATTR_TYPE_STANDARD_INFORMATION, entry, search_start)
	if err != nil {
		return nil, err
	}

	content, err := attribute.Content()
	if err != nil {
		return nil, err
	}
	if len(content) < 36 {
		return nil, MalformedAttributeError
	}

	r := binutil.NewLittleEndianReader(content)
	return &StandardInfo{
		Created:     WinFileTime{r.Uint64(0)},
		Modified:    WinFileTime{r.Uint64(8)},
		MFTModified: WinFileTime{r.Uint64(16)},
		Accessed:    WinFileTime{r.Uint64(24)},
		Flags:       r.Uint32(32),
		Size:        attribute.Content_size(),
		End:         end,
	}, nil
}
