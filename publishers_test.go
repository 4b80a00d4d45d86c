// Copyright (c) 2024 Neomantra Corp

package dbn_test

import (
	"encoding/json"

	dbn "github.com/neomantra/dbncodec"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

var _ = Describe("Publisher catalog", func() {
	Context("Venue", func() {
		It("round-trips through String/VenueFromString", func() {
			v, err := dbn.VenueFromString("xnas")
			Expect(err).To(BeNil())
			Expect(v).To(Equal(dbn.Venue_Xnas))
			Expect(v.String()).To(Equal("XNAS"))
		})
		It("fails on an unknown venue", func() {
			_, err := dbn.VenueFromString("ZZZZ")
			Expect(err).ToNot(BeNil())
		})
		It("marshals and unmarshals as JSON strings", func() {
			b, err := json.Marshal(dbn.Venue_Glbx)
			Expect(err).To(BeNil())
			Expect(string(b)).To(Equal(`"GLBX"`))

			var v dbn.Venue
			Expect(json.Unmarshal([]byte(`"GLBX"`), &v)).To(Succeed())
			Expect(v).To(Equal(dbn.Venue_Glbx))
		})
	})

	Context("Dataset", func() {
		It("round-trips through String/DatasetFromString", func() {
			d, err := dbn.DatasetFromString("glbx.mdp3")
			Expect(err).To(BeNil())
			Expect(d).To(Equal(dbn.Dataset_GlbxMdp3))
			Expect(d.String()).To(Equal("GLBX.MDP3"))
		})
		It("lists every publisher for a dataset, including a multi-venue one", func() {
			Expect(dbn.Dataset_GlbxMdp3.Publishers()).To(Equal([]dbn.Publisher{dbn.Publisher_GlbxMdp3Glbx}))
			Expect(dbn.Dataset_DbeqBasic.Publishers()).To(Equal([]dbn.Publisher{dbn.Publisher_DbeqBasicXcis, dbn.Publisher_DbeqBasicIexg}))
		})
	})

	Context("Publisher", func() {
		It("round-trips through String/PublisherFromString", func() {
			p, err := dbn.PublisherFromString("dbeq.basic.iexg")
			Expect(err).To(BeNil())
			Expect(p).To(Equal(dbn.Publisher_DbeqBasicIexg))
			Expect(p.String()).To(Equal("DBEQ.BASIC.IEXG"))
		})

		It("reports the correct Venue and Dataset for each publisher", func() {
			Expect(dbn.Publisher_DbeqBasicXcis.Venue()).To(Equal(dbn.Venue_Xcis))
			Expect(dbn.Publisher_DbeqBasicXcis.Dataset()).To(Equal(dbn.Dataset_DbeqBasic))
			Expect(dbn.Publisher_DbeqBasicIexg.Venue()).To(Equal(dbn.Venue_Iexg))
			Expect(dbn.Publisher_XeurEobiXeur.Venue()).To(Equal(dbn.Venue_Xeur))
			Expect(dbn.Publisher_XeurEobiXeur.Dataset()).To(Equal(dbn.Dataset_XeurEobi))
		})

		It("resolves the publisher for a dataset/venue combination", func() {
			p, err := dbn.PublisherFromDatasetVenue(dbn.Dataset_DbeqBasic, dbn.Venue_Iexg)
			Expect(err).To(BeNil())
			Expect(p).To(Equal(dbn.Publisher_DbeqBasicIexg))
		})

		It("fails for a dataset/venue combination that isn't catalogued", func() {
			_, err := dbn.PublisherFromDatasetVenue(dbn.Dataset_GlbxMdp3, dbn.Venue_Xnas)
			Expect(err).ToNot(BeNil())
		})
	})

	Context("pflag.Value conformance", func() {
		It("implements Type/Set for Venue, Dataset, and Publisher", func() {
			var v dbn.Venue
			Expect(v.Type()).To(Equal("dbn.Venue"))
			Expect(v.Set("xnas")).To(Succeed())
			Expect(v).To(Equal(dbn.Venue_Xnas))

			var d dbn.Dataset
			Expect(d.Type()).To(Equal("dbn.Dataset"))
			Expect(d.Set("xnas.itch")).To(Succeed())
			Expect(d).To(Equal(dbn.Dataset_XnasItch))

			var p dbn.Publisher
			Expect(p.Type()).To(Equal("dbn.Publisher"))
			Expect(p.Set("xnas.itch.xnas")).To(Succeed())
			Expect(p).To(Equal(dbn.Publisher_XnasItchXnas))
		})
	})
})
