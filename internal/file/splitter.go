// Copyright (c) 2024 Neomantra Corp
//
// Adapted from the teacher's internal/file/split.go.

package file

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"time"

	dbn "github.com/neomantra/dbncodec"
)

const ymdPathFormat = "2006" + string(filepath.Separator) + "01" + string(filepath.Separator) + "02"

// SplitFile splits a source DBN stream into one zstd-compressed file per
// (rtype, instrument, calendar day), under
// "<destDir>/<dataset>/<symbol>/Y/M/D/<symbol>.YYYYMMDD.<schema>.dbn.zst".
func SplitFile(sourceFilename string, destDir string, verbose bool) error {
	sourceReader, sourceCloser, err := dbn.OpenTransportReader(sourceFilename)
	if err != nil {
		return fmt.Errorf("failed to open '%s' for reading: %w", sourceFilename, err)
	}
	defer sourceCloser.Close()

	dbnScanner := dbn.NewDbnScanner(sourceReader)
	sourceMetadata, err := dbnScanner.Metadata()
	if err != nil {
		return fmt.Errorf("failed to read metadata for '%s': %w", sourceFilename, err)
	}
	dbnSymbolMap := dbn.NewTsSymbolMap()
	if err := dbnSymbolMap.FillFromMetadata(sourceMetadata); err != nil {
		return fmt.Errorf("failed to build symbol map for '%s': %w", sourceFilename, err)
	}

	singleMetadata := dbn.Metadata{
		Version:  dbn.MaxSupportedVersion,
		Dataset:  sourceMetadata.Dataset,
		Schema:   sourceMetadata.Schema,
		StartTs:  sourceMetadata.StartTs,
		EndTs:    sourceMetadata.EndTs,
		Limit:    sourceMetadata.Limit,
		StypeIn:  dbn.SType_Parent,
		StypeOut: dbn.SType_InstrumentId,
		TsOut:    sourceMetadata.TsOut,
	}

	writerMap := make(map[string]io.Writer)
	closerMap := make(map[string]func())
	defer func() {
		for _, closer := range closerMap {
			closer()
		}
	}()

	for dbnScanner.Next() {
		rheader, err := dbnScanner.GetLastHeader()
		if err != nil {
			return fmt.Errorf("failed to read record header: %w", err)
		}
		recordTime := time.Unix(0, rheader.TsEvent).UTC()
		recordYMD := dbn.TimeToYMD(recordTime)
		fileKey := fmt.Sprintf("%d-%d-%d", rheader.RType, rheader.InstrumentID, recordYMD)

		writer, ok := writerMap[fileKey]
		if !ok {
			dbnSymbol := dbnSymbolMap.Get(recordTime, rheader.InstrumentID)
			datePath := recordTime.Format(ymdPathFormat)
			destPath := filepath.Join(destDir, sourceMetadata.Dataset, dbnSymbol, datePath)
			if err := os.MkdirAll(destPath, os.ModePerm); err != nil {
				fmt.Fprintf(os.Stderr, "failed to create dest path '%s': %s\n", destPath, err.Error())
				return err
			}

			destFile := fmt.Sprintf("%s.%d.%s.dbn.zst", dbnSymbol, recordYMD, sourceMetadata.Schema.String())
			fullDestPath := filepath.Join(destPath, destFile)

			destWriter, destCloser, err := dbn.MakeCompressedWriter(fullDestPath, true)
			if err != nil {
				fmt.Fprintf(os.Stderr, "failed to create dest file '%s': %s\n", fullDestPath, err.Error())
				return err
			}
			writerMap[fileKey] = destWriter
			closerMap[fileKey] = destCloser
			writer = destWriter

			if verbose {
				fmt.Fprintf(os.Stderr, "writing to '%s'\n", fullDestPath)
			}

			singleMetadata.Symbols = []string{dbnSymbol}
			singleMetadata.Mappings = []dbn.SymbolMapping{
				{
					RawSymbol:    dbnSymbol,
					MappedSymbol: strconv.Itoa(int(rheader.InstrumentID)),
					StartDate:    recordYMD,
					EndDate:      dbn.TimeToYMD(recordTime.AddDate(0, 0, 1)),
				},
			}
			if err := dbn.WriteMetadata(writer, &singleMetadata); err != nil {
				fmt.Fprintf(os.Stderr, "failed to write file header '%s': %s\n", fullDestPath, err.Error())
				return err
			}
		}

		if _, err := writer.Write(dbnScanner.GetLastRecord()); err != nil {
			fmt.Fprintf(os.Stderr, "failed to write record: %s\n", err.Error())
			return err
		}
	}

	err = dbnScanner.Error()
	if err == io.EOF {
		err = nil
	}
	return err
}
