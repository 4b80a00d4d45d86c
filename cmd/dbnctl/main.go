// Copyright (c) 2024 Neomantra Corp
//
// Adapted from the teacher's cmd/dbn-go-file/main.go.

package main

import (
	"fmt"
	"io"
	"os"

	dbn "github.com/neomantra/dbncodec"
	dbn_file "github.com/neomantra/dbncodec/internal/file"

	"github.com/dustin/go-humanize"
	"github.com/segmentio/encoding/json"
	"github.com/spf13/cobra"
)

///////////////////////////////////////////////////////////////////////////////

var (
	verbose bool

	destDir string // split destination directory

	compressLevel int
	deleteSource  bool
)

func requireNoErrorWithoutPrint(err error) {
	if err != nil {
		os.Exit(1)
	}
}

///////////////////////////////////////////////////////////////////////////////

func main() {
	cobra.OnInitialize()

	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Verbose output")

	rootCmd.AddCommand(readCmd)
	rootCmd.AddCommand(inspectCmd)

	rootCmd.AddCommand(splitCmd)
	splitCmd.Flags().StringVarP(&destDir, "dest", "d", "", "Destination directory")
	splitCmd.MarkFlagRequired("dest")

	rootCmd.AddCommand(compressCmd)
	compressCmd.Flags().IntVarP(&compressLevel, "level", "l", 3, "Zstd encoder level")
	compressCmd.Flags().BoolVar(&deleteSource, "delete-source", false, "Delete the source file on success")

	err := rootCmd.Execute()
	requireNoErrorWithoutPrint(err)
}

///////////////////////////////////////////////////////////////////////////////

var rootCmd = &cobra.Command{
	Use:   "dbnctl",
	Short: "dbnctl reads, inspects, splits, and compresses DBN files",
	Long:  "dbnctl reads, inspects, splits, and compresses DBN files",
}

///////////////////////////////////////////////////////////////////////////////

var readCmd = &cobra.Command{
	Use:   "read file...",
	Short: "Prints each file's schema, record count, and time range",
	Args:  cobra.MinimumNArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		for _, sourceFile := range args {
			if err := readSummary(sourceFile); err != nil {
				fmt.Fprintf(os.Stderr, "error: reading %s: %s\n", sourceFile, err.Error())
			}
		}
	},
}

func readSummary(sourceFile string) error {
	r, closer, err := dbn.OpenTransportReader(sourceFile)
	if err != nil {
		return err
	}
	defer closer.Close()

	scanner := dbn.NewDbnScanner(r)
	metadata, err := scanner.Metadata()
	if err != nil {
		return fmt.Errorf("scanner failed to read metadata: %w", err)
	}

	var count uint64
	var minTs, maxTs int64
	for scanner.Next() {
		hdr, err := scanner.GetLastHeader()
		if err != nil {
			return err
		}
		if count == 0 || hdr.TsEvent < minTs {
			minTs = hdr.TsEvent
		}
		if count == 0 || hdr.TsEvent > maxTs {
			maxTs = hdr.TsEvent
		}
		count++

		if _, err := scanner.DecodeLastRecord(); err != nil {
			return err
		}
	}
	if serr := scanner.Error(); serr != nil && serr != io.EOF {
		return serr
	}

	for _, d := range scanner.Diagnostics() {
		fmt.Fprintf(os.Stderr, "%s: %s\n", sourceFile, d.String())
	}

	fmt.Printf("%s: dataset=%s schema=%s version=%d records=%d\n",
		sourceFile, metadata.Dataset, metadata.Schema, metadata.Version, count)
	if count > 0 {
		fmt.Printf("  time range: %s .. %s\n", dbn.TimestampToTime(uint64(minTs)), dbn.TimestampToTime(uint64(maxTs)))
	}
	return nil
}

///////////////////////////////////////////////////////////////////////////////

var inspectCmd = &cobra.Command{
	Use:   "inspect file...",
	Short: "Prints each file's metadata as JSON",
	Args:  cobra.MinimumNArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		for _, sourceFile := range args {
			if err := inspectMetadata(sourceFile); err != nil {
				fmt.Fprintf(os.Stderr, "error: reading %s: %s\n", sourceFile, err.Error())
			}
		}
	},
}

func inspectMetadata(sourceFile string) error {
	r, closer, err := dbn.OpenTransportReader(sourceFile)
	if err != nil {
		return err
	}
	defer closer.Close()

	scanner := dbn.NewDbnScanner(r)
	metadata, err := scanner.Metadata()
	if err != nil {
		return fmt.Errorf("scanner failed to read metadata: %w", err)
	}

	jstr, err := json.Marshal(metadata)
	if err != nil {
		return fmt.Errorf("failed to marshal metadata: %w", err)
	}
	fmt.Printf("%s\n", jstr)
	return nil
}

///////////////////////////////////////////////////////////////////////////////

var splitCmd = &cobra.Command{
	Use:   "split file...",
	Short: `Splits DBN files into "<dataset>/<symbol>/Y/M/D/<symbol>.YMD.<schema>.dbn.zst"`,
	Args:  cobra.MinimumNArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		if destDir == "" {
			fmt.Fprintf(os.Stderr, "error: --dest cannot be empty. Use '.' for current directory.\n")
			os.Exit(1)
		}
		if err := os.MkdirAll(destDir, os.ModePerm); err != nil {
			fmt.Fprintf(os.Stderr, "error: dest directory creation failed with: %s\n", err.Error())
			os.Exit(1)
		}
		for _, sourceFile := range args {
			if err := dbn_file.SplitFile(sourceFile, destDir, verbose); err != nil {
				fmt.Fprintf(os.Stderr, "error: splitting %s: %s\n", sourceFile, err.Error())
			}
		}
	},
}

///////////////////////////////////////////////////////////////////////////////

var compressCmd = &cobra.Command{
	Use:   "compress src dst",
	Short: "Recompresses a DBN stream at a given zstd level",
	Args:  cobra.ExactArgs(2),
	Run: func(cmd *cobra.Command, args []string) {
		result, err := dbn.CompressFile(args[0], args[1], compressLevel, deleteSource)
		if err != nil {
			fmt.Fprintf(os.Stderr, "error: compressing %s: %s\n", args[0], err.Error())
			os.Exit(1)
		}
		fmt.Printf("%s -> %s: %s -> %s (%s saved, %s ratio)\n",
			args[0], args[1],
			humanize.Bytes(uint64(result.OriginalSize)),
			humanize.Bytes(uint64(result.CompressedSize)),
			humanize.Bytes(uint64(result.SpaceSaved)),
			humanize.CommaFloat(result.Ratio*100)+"%")
	},
}
