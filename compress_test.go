// Copyright (c) 2024 Neomantra Corp

package dbn_test

import (
	"os"

	dbn "github.com/neomantra/dbncodec"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

func writeSampleFile(path string) {
	f, err := os.Create(path)
	Expect(err).To(BeNil())
	defer f.Close()

	meta := dbn.Metadata{
		Version: dbn.MaxSupportedVersion,
		Dataset: "GLBX.MDP3",
		Schema:  dbn.Schema_Trades,
		StartTs: 1609160400000000000,
		EndTs:   1609160402000000000,
		Limit:   2,
	}
	bw, err := dbn.NewBulkWriter(f, meta)
	Expect(err).To(BeNil())
	Expect(bw.WriteRecord(&dbn.Mbp0Msg{Hdr: dbn.RHeader{RType: dbn.RType_Mbp0, InstrumentID: 5482, TsEvent: 1609160400000000000}, Size: 1})).To(Succeed())
	Expect(bw.WriteRecord(&dbn.Mbp0Msg{Hdr: dbn.RHeader{RType: dbn.RType_Mbp0, InstrumentID: 5482, TsEvent: 1609160402000000000}, Size: 2})).To(Succeed())
	Expect(bw.Close()).To(Succeed())
}

var _ = Describe("CompressFile", func() {
	It("recompresses a stream losslessly and reports accurate sizes", func() {
		srcPath := mustTempPath("compress-src-*.dbn")
		dstPath := mustTempPath("compress-dst-*.dbn.zst")
		defer os.Remove(srcPath)
		defer os.Remove(dstPath)

		writeSampleFile(srcPath)

		result, err := dbn.CompressFile(srcPath, dstPath, 3, false)
		Expect(err).To(BeNil())

		srcInfo, err := os.Stat(srcPath)
		Expect(err).To(BeNil())
		Expect(result.OriginalSize).To(Equal(srcInfo.Size()))

		dstInfo, err := os.Stat(dstPath)
		Expect(err).To(BeNil())
		Expect(result.CompressedSize).To(Equal(dstInfo.Size()))
		Expect(result.SpaceSaved).To(Equal(result.OriginalSize - result.CompressedSize))

		reader, closer, err := dbn.OpenTransportReader(dstPath)
		Expect(err).To(BeNil())
		defer closer.Close()

		records, metadata, err := dbn.ReadDBNToSlice[dbn.Mbp0Msg](reader)
		Expect(err).To(BeNil())
		Expect(metadata.Schema).To(Equal(dbn.Schema_Trades))
		Expect(records).To(HaveLen(2))
		Expect(records[0].Size).To(Equal(uint32(1)))
		Expect(records[1].Size).To(Equal(uint32(2)))
	})

	It("deletes the source file when deleteSource is true", func() {
		srcPath := mustTempPath("compress-src-del-*.dbn")
		dstPath := mustTempPath("compress-dst-del-*.dbn.zst")
		defer os.Remove(dstPath)

		writeSampleFile(srcPath)
		_, err := dbn.CompressFile(srcPath, dstPath, 3, true)
		Expect(err).To(BeNil())

		_, statErr := os.Stat(srcPath)
		Expect(os.IsNotExist(statErr)).To(BeTrue())
	})
})

func mustTempPath(pattern string) string {
	f, err := os.CreateTemp("", pattern)
	Expect(err).To(BeNil())
	path := f.Name()
	f.Close()
	os.Remove(path)
	return path
}
