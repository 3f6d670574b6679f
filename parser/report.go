package parser

import (
	"fmt"
	"strconv"
	"strings"
)

// Rendering of a DecodedEntry in the istat text layout. This is a
// thin presentation layer - everything here reads the already decoded
// model, never raw attribute bytes.

var attributeFlagNames = []struct {
	mask uint32
	name string
}{
	{0x0001, "Read Only"},
	{0x0002, "Hidden"},
	{0x0004, "System"},
	{0x0020, "Archive"},
	{0x0040, "Device"},
	{0x0080, "Normal"},
	{0x0100, "Temporary"},
	{0x0200, "Sparse file"},
	{0x0400, "Reparse point"},
	{0x0800, "Compressed"},
	{0x1000, "Offline"},
	{0x2000, "Not indexed"},
	{0x4000, "Encrypted"},
}

func flagString(value uint32) string {
	result := ""
	for _, flag := range attributeFlagNames {
		if value&flag.mask != 0 {
			result += flag.name + " "
		}
	}
	if result == "" {
		result = fmt.Sprintf("%#x (Unknown flag)", value)
	}
	return result
}

func Report(entry *DecodedEntry) string {
	result := &strings.Builder{}

	header := entry.Header
	allocated := "Allocated"
	if !header.Allocated {
		allocated = "Unallocated"
	}

	fmt.Fprintf(result, "MFT Entry Header Values:\n")
	fmt.Fprintf(result, "Entry: %d        Sequence: %d\n",
		header.Address, header.Sequence)
	fmt.Fprintf(result, "$LogFile Sequence Number: %d\n", header.LogFileSeqNum)
	fmt.Fprintf(result, "%s File\n", allocated)
	fmt.Fprintf(result, "Links: %d\n", header.Links)

	si := entry.StandardInfo
	fmt.Fprintf(result, "\n$STANDARD_INFORMATION Attribute Values:\n")
	fmt.Fprintf(result, "Flags: %s\n", flagString(si.Flags))
	fmt.Fprintf(result, "Owner ID: 0\n")
	fmt.Fprintf(result, "Created:\t%s\n", si.Created)
	fmt.Fprintf(result, "File Modified:\t%s\n", si.Modified)
	fmt.Fprintf(result, "MFT Modified:\t%s\n", si.MFTModified)
	fmt.Fprintf(result, "Accessed:\t%s\n", si.Accessed)

	fn := entry.FileName
	fmt.Fprintf(result, "\n$FILE_NAME Attribute Values:\n")
	fmt.Fprintf(result, "Flags: %s\n", flagString(fn.Flags))
	fmt.Fprintf(result, "Name: %s\n", fn.Name)
	fmt.Fprintf(result, "Parent MFT Entry: %-6d Sequence: %d\n",
		fn.Parent, fn.ParentSequence)
	fmt.Fprintf(result, "Allocated Size: %-8d Actual Size: %d\n",
		fn.AllocatedSize, fn.ActualSize)
	fmt.Fprintf(result, "Created:\t%s\n", fn.Created)
	fmt.Fprintf(result, "File Modified:\t%s\n", fn.Modified)
	fmt.Fprintf(result, "MFT Modified:\t%s\n", fn.MFTModified)
	fmt.Fprintf(result, "Accessed:\t%s\n", fn.Accessed)

	fmt.Fprintf(result, "\nAttributes:\n")
	fmt.Fprintf(result,
		"Type: $STANDARD_INFORMATION (16-0)   Name: N/A   Resident   size: %d\n",
		si.Size)
	fmt.Fprintf(result,
		"Type: $FILE_NAME (48-3)   Name: N/A   Resident   size: %d\n",
		fn.Size)

	switch data := entry.Data.(type) {
	case ResidentData:
		fmt.Fprintf(result,
			"Type: $DATA (128-2)   Name: N/A   Resident   size: %d\n",
			data.Size)

	case NonResidentData:
		fmt.Fprintf(result,
			"Type: $DATA (128-2)   Name: N/A   Non-Resident   size: %d  init_size: %d\n",
			data.Size, data.InitializedSize)
		result.WriteString(formatClusters(data.Clusters))
	}

	return result.String()
}

// formatClusters renders the cluster list eight per row.
func formatClusters(clusters []uint64) string {
	result := &strings.Builder{}

	for start := 0; start < len(clusters); start += 8 {
		end := start + 8
		if end > len(clusters) {
			end = len(clusters)
		}

		row := make([]string, 0, 8)
		for _, cluster := range clusters[start:end] {
			row = append(row, strconv.FormatUint(cluster, 10))
		}
		result.WriteString(strings.Join(row, " ") + "\n")
	}

	return result.String()
}
