package main

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/Velocidex/ordereddict"
	kingpin "gopkg.in/alecthomas/kingpin.v2"

	"github.com/dfirtools/istat-ntfs/parser"
)

var (
	istat_command = app.Command(
		"istat", "Display details of an MFT entry.")

	istat_command_file_arg = istat_command.Arg(
		"file", "Path to an NTFS raw (dd) image",
	).Required().OpenFile(os.O_RDONLY, os.FileMode(0666))

	istat_command_address_arg = istat_command.Arg(
		"address", "MFT entry number to display stats on",
	).Required().Int64()

	istat_command_image_offset = istat_command.Flag(
		"image_offset", "The offset in the image to use.",
	).Int64()

	istat_command_json = istat_command.Flag(
		"json", "Emit the decoded entry as JSON.").Bool()
)

func doIstat() {
	reader, err := parser.NewPagedReader(
		*istat_command_file_arg, 1024, 10000)
	kingpin.FatalIfError(err, "Can not open image")

	ntfs_ctx, err := parser.GetNTFSContext(
		reader, *istat_command_image_offset)
	kingpin.FatalIfError(err, "Can not read volume geometry")

	entry, err := ntfs_ctx.GetEntry(*istat_command_address_arg)
	kingpin.FatalIfError(err, "Can not decode MFT entry")

	if *istat_command_json {
		serialized, err := json.MarshalIndent(modelEntry(entry), " ", " ")
		kingpin.FatalIfError(err, "Marshal")

		fmt.Println(string(serialized))

	} else {
		fmt.Println(parser.Report(entry))
	}
}

func timestamps(created, modified, mft_modified, accessed parser.WinFileTime) *ordereddict.Dict {
	return ordereddict.NewDict().
		Set("Created", created.String()).
		Set("FileModified", modified.String()).
		Set("MFTModified", mft_modified.String()).
		Set("Accessed", accessed.String())
}

// modelEntry flattens a DecodedEntry into an ordered dict so the JSON
// output has a stable key order.
func modelEntry(entry *parser.DecodedEntry) *ordereddict.Dict {
	si := entry.StandardInfo
	fn := entry.FileName

	result := ordereddict.NewDict().
		Set("Entry", entry.Header.Address).
		Set("Sequence", entry.Header.Sequence).
		Set("LogFileSeqNum", entry.Header.LogFileSeqNum).
		Set("Allocated", entry.Header.Allocated).
		Set("Links", entry.Header.Links).
		Set("StandardInformation", timestamps(
			si.Created, si.Modified, si.MFTModified, si.Accessed).
			Set("Flags", si.Flags)).
		Set("FileName", ordereddict.NewDict().
			Set("Name", fn.Name).
			Set("Parent", fn.Parent).
			Set("ParentSequence", fn.ParentSequence).
			Set("AllocatedSize", fn.AllocatedSize).
			Set("ActualSize", fn.ActualSize).
			Set("Flags", fn.Flags).
			Set("Times", timestamps(
				fn.Created, fn.Modified, fn.MFTModified, fn.Accessed)))

	switch data := entry.Data.(type) {
	case parser.ResidentData:
		result.Set("Data", ordereddict.NewDict().
			Set("Resident", true).
			Set("Size", data.Size))

	case parser.NonResidentData:
		result.Set("Data", ordereddict.NewDict().
			Set("Resident", false).
			Set("Size", data.Size).
			Set("InitializedSize", data.InitializedSize).
			Set("SparseClusters", data.SparseClusters).
			Set("Clusters", data.Clusters))
	}

	return result
}

func init() {
	command_handlers = append(command_handlers, func(command string) bool {
		switch command {
		case "istat":
			doIstat()
		default:
			return false
		}
		return true
	})
}
