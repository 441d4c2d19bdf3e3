// Command lasinfo prints a LAS/LAZ file's header summary.
package main

import (
	"fmt"
	"os"

	las "github.com/tmontaigu/las-go"
	"github.com/tmontaigu/las-go/lazcodec"
)

func main() {
	if len(os.Args) != 2 {
		fmt.Fprintf(os.Stderr, "Usage: %s FILE_PATH\n", os.Args[0])
		os.Exit(1)
	}

	reader, err := las.OpenFile(os.Args[1], las.WithReaderLazCodec(lazcodec.NewFlateFactory(-1)))
	if err != nil {
		fmt.Fprintf(os.Stderr, "%s\n", err)
		os.Exit(1)
	}
	defer reader.Close()

	h := reader.Header()
	std, _ := las.StandardSize(h.PointFormat.ID)
	recordSize, _ := h.PointFormat.RecordSize()

	fmt.Printf("Version: %d.%d\n", h.Version.Major, h.Version.Minor)
	fmt.Printf("Point Format ID: %d\n", h.PointFormat.ID)
	fmt.Printf("Point Format Standard Size: %d\n", std)
	fmt.Printf("Point Format Extra Bytes: %d\n", h.PointFormat.NumExtraBytes)
	fmt.Printf("Point Format Total Size: %d\n", recordSize)
	fmt.Printf("Point Count: %d\n", h.PointCount)
	fmt.Println()

	fmt.Printf("Scaling X: {Scale: %f, Offset: %f}\n", h.Scaling.Scales[las.AxisX], h.Scaling.Offsets[las.AxisX])
	fmt.Printf("Scaling Y: {Scale: %f, Offset: %f}\n", h.Scaling.Scales[las.AxisY], h.Scaling.Offsets[las.AxisY])
	fmt.Printf("Scaling Z: {Scale: %f, Offset: %f}\n", h.Scaling.Scales[las.AxisZ], h.Scaling.Offsets[las.AxisZ])
	fmt.Println()

	fmt.Printf("Extent X: [%f, %f] -> %f\n", h.MinX, h.MaxX, h.MaxX-h.MinX)
	fmt.Printf("Extent Y: [%f, %f] -> %f\n", h.MinY, h.MaxY, h.MaxY-h.MinY)
	fmt.Printf("Extent Z: [%f, %f] -> %f\n", h.MinZ, h.MaxZ, h.MaxZ-h.MinZ)
	fmt.Println()

	fmt.Printf("File Source Id: %d\n", h.FileSourceID)
	fmt.Printf("Global Encoding: %d\n", h.GlobalEncoding)
	fmt.Printf("System Identifier: %s\n", h.SystemIdentifier)
	fmt.Printf("Generating Software: %s\n", h.GeneratingSoftware)
	fmt.Printf("Creation day: %d\n", h.CreationDayOfYear)
	fmt.Printf("Creation year: %d\n", h.CreationYear)
	fmt.Printf("Number of extra header bytes: %d\n", len(h.ExtraHeaderBytes))
	fmt.Printf("Offset to point data: %d\n", h.OffsetToPointData())

	if h.Version.Minor >= 3 {
		fmt.Printf("Start of waveform data: %d\n", h.StartOfWaveformDataPacket)
	}
	if h.Version.Minor == 4 {
		fmt.Printf("Start of EVLRs: %d\n", h.StartOfEVLRs)
		fmt.Printf("Number of EVLRs: %d\n", h.NumberOfEVLRs)
	}

	fmt.Println("---")
	fmt.Printf("Number of VLRs: %d\n", len(h.VLRs))
	for i, v := range h.VLRs {
		fmt.Printf("VLR %d / %d\n", i+1, len(h.VLRs))
		fmt.Printf("\tUser ID: %s\n", v.UserID)
		fmt.Printf("\tRecord ID: %d\n", v.RecordID)
		fmt.Printf("\tDescription: %s\n", v.Description)
		fmt.Printf("\tData Size: %d\n", v.DataSize())
	}
}
