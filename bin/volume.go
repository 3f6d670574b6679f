package main

import (
	"fmt"
	"os"

	"github.com/olekukonko/tablewriter"
	kingpin "gopkg.in/alecthomas/kingpin.v2"

	"github.com/dfirtools/istat-ntfs/parser"
)

var (
	volume_command = app.Command(
		"volume", "Show the volume geometry from the boot sector.")

	volume_command_file_arg = volume_command.Arg(
		"file", "Path to an NTFS raw (dd) image",
	).Required().OpenFile(os.O_RDONLY, os.FileMode(0666))

	volume_command_image_offset = volume_command.Flag(
		"image_offset", "The offset in the image to use.",
	).Int64()
)

func doVolume() {
	ntfs_ctx, err := parser.GetNTFSContext(
		*volume_command_file_arg, *volume_command_image_offset)
	kingpin.FatalIfError(err, "Can not read volume geometry")

	err = ntfs_ctx.Boot.IsValid()
	kingpin.FatalIfError(err, "Boot sector is not a valid NTFS boot sector")

	geometry := ntfs_ctx.Geometry

	table := tablewriter.NewWriter(os.Stdout)
	table.SetHeader([]string{"Field", "Value"})
	table.SetCaption(true, "NTFS volume geometry")
	defer table.Render()

	table.Append([]string{"Bytes per sector",
		fmt.Sprintf("%v", geometry.BytesPerSector)})
	table.Append([]string{"Sectors per cluster",
		fmt.Sprintf("%v", geometry.SectorsPerCluster)})
	table.Append([]string{"Cluster size",
		fmt.Sprintf("%v", ntfs_ctx.Boot.ClusterSize())})
	table.Append([]string{"MFT start cluster",
		fmt.Sprintf("%v", geometry.MFTStartCluster)})
	table.Append([]string{"MFT byte offset",
		fmt.Sprintf("%v", geometry.MFTByteOffset)})
	table.Append([]string{"MFT entry size",
		fmt.Sprintf("%v", parser.EntrySize)})
}

func init() {
	command_handlers = append(command_handlers, func(command string) bool {
		switch command {
		case "volume":
			doVolume()
		default:
			return false
		}
		return true
	})
}
