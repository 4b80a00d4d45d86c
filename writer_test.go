// Copyright (c) 2024 Neomantra Corp

package dbn_test

import (
	"bytes"
	"os"

	dbn "github.com/neomantra/dbncodec"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

var _ = Describe("Writers", func() {
	Context("FinalizingWriter", func() {
		It("rewrites start_ts/end_ts/limit on Close from the observed records", func() {
			f, err := os.CreateTemp("", "finalizing-writer-*.dbn")
			Expect(err).To(BeNil())
			defer os.Remove(f.Name())
			defer f.Close()

			meta := dbn.Metadata{
				Version: dbn.MaxSupportedVersion,
				Dataset: "GLBX.MDP3",
				Schema:  dbn.Schema_Trades,
			}
			fw, err := dbn.NewFinalizingWriter(f, meta, 0)
			Expect(err).To(BeNil())

			ts := []int64{1609160401000000000, 1609160400000000000, 1609160402000000000}
			for _, t := range ts {
				rec := &dbn.Mbp0Msg{Hdr: dbn.RHeader{RType: dbn.RType_Mbp0, InstrumentID: 5482, TsEvent: t}}
				Expect(fw.WriteRecord(rec)).To(Succeed())
			}
			Expect(fw.Close()).To(Succeed())

			readBack, err := os.Open(f.Name())
			Expect(err).To(BeNil())
			defer readBack.Close()

			scanner := dbn.NewDbnScanner(readBack)
			gotMeta, err := scanner.Metadata()
			Expect(err).To(BeNil())
			Expect(gotMeta.StartTs).To(Equal(int64(1609160400000000000)))
			Expect(gotMeta.EndTs).To(Equal(int64(1609160402000000000)))
			Expect(gotMeta.Limit).To(Equal(uint64(3)))

			count := 0
			for scanner.Next() {
				count++
			}
			Expect(count).To(Equal(3))
		})

		It("writes a zeroed header when no records were ever written", func() {
			f, err := os.CreateTemp("", "finalizing-writer-empty-*.dbn")
			Expect(err).To(BeNil())
			defer os.Remove(f.Name())
			defer f.Close()

			fw, err := dbn.NewFinalizingWriter(f, dbn.Metadata{Version: dbn.MaxSupportedVersion, Schema: dbn.Schema_Trades}, 0)
			Expect(err).To(BeNil())
			Expect(fw.Close()).To(Succeed())

			readBack, err := os.Open(f.Name())
			Expect(err).To(BeNil())
			defer readBack.Close()
			gotMeta, err := dbn.ReadMetadata(readBack)
			Expect(err).To(BeNil())
			Expect(gotMeta.StartTs).To(Equal(int64(0)))
			Expect(gotMeta.Limit).To(Equal(uint64(0)))
		})

		It("rejects WriteRecord after Close", func() {
			f, err := os.CreateTemp("", "finalizing-writer-closed-*.dbn")
			Expect(err).To(BeNil())
			defer os.Remove(f.Name())
			defer f.Close()

			fw, err := dbn.NewFinalizingWriter(f, dbn.Metadata{Version: dbn.MaxSupportedVersion, Schema: dbn.Schema_Trades}, 0)
			Expect(err).To(BeNil())
			Expect(fw.Close()).To(Succeed())
			err = fw.WriteRecord(&dbn.Mbp0Msg{Hdr: dbn.RHeader{RType: dbn.RType_Mbp0}})
			Expect(err).ToNot(BeNil())
		})
	})

	Context("BulkWriter", func() {
		It("writes a header with caller-supplied bounds, then appends records without a rewrite", func() {
			var buf bytes.Buffer
			meta := dbn.Metadata{
				Version: dbn.MaxSupportedVersion,
				Dataset: "GLBX.MDP3",
				Schema:  dbn.Schema_Trades,
				StartTs: 1609160400000000000,
				EndTs:   1609160402000000000,
				Limit:   2,
			}
			bw, err := dbn.NewBulkWriter(&buf, meta)
			Expect(err).To(BeNil())

			Expect(bw.WriteRecord(&dbn.Mbp0Msg{Hdr: dbn.RHeader{RType: dbn.RType_Mbp0, TsEvent: 1609160400000000000}})).To(Succeed())
			Expect(bw.WriteRecord(&dbn.Mbp0Msg{Hdr: dbn.RHeader{RType: dbn.RType_Mbp0, TsEvent: 1609160402000000000}})).To(Succeed())
			Expect(bw.Close()).To(Succeed())

			scanner := dbn.NewDbnScanner(bytes.NewReader(buf.Bytes()))
			gotMeta, err := scanner.Metadata()
			Expect(err).To(BeNil())
			Expect(gotMeta.StartTs).To(Equal(meta.StartTs))
			Expect(gotMeta.EndTs).To(Equal(meta.EndTs))
			Expect(gotMeta.Limit).To(Equal(meta.Limit))

			count := 0
			for scanner.Next() {
				count++
			}
			Expect(count).To(Equal(2))
		})

		It("rejects WriteRecord after Close", func() {
			var buf bytes.Buffer
			bw, err := dbn.NewBulkWriter(&buf, dbn.Metadata{Version: dbn.MaxSupportedVersion, Schema: dbn.Schema_Trades})
			Expect(err).To(BeNil())
			Expect(bw.Close()).To(Succeed())
			err = bw.WriteRecord(&dbn.Mbp0Msg{Hdr: dbn.RHeader{RType: dbn.RType_Mbp0}})
			Expect(err).ToNot(BeNil())
		})
	})
})
