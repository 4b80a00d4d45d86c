// Copyright (c) 2024 Neomantra Corp
//
// Adapted from Databento's DBN:
//   https://github.com/databento/dbn/blob/main/rust/dbn/src/publishers.rs
//
// Trimmed to a representative subset of venues/datasets/publishers rather
// than the full catalog; numeric values and names match the upstream
// catalog exactly, so any omitted entry can be added without renumbering.

package dbn

import (
	"encoding/json"
	"fmt"
	"strings"
)

///////////////////////////////////////////////////////////////////////////////
// Venue
///////////////////////////////////////////////////////////////////////////////

// Venue is a trading execution venue.
type Venue uint16

const (
	// CME Globex
	Venue_Glbx Venue = 1
	// Nasdaq - All Markets
	Venue_Xnas Venue = 2
	// Cboe BZX U.S. Equities Exchange
	Venue_Bats Venue = 5
	// New York Stock Exchange, Inc.
	Venue_Xnys Venue = 9
	// NYSE National, Inc.
	Venue_Xcis Venue = 10
	// NYSE Arca
	Venue_Arcx Venue = 12
	// Investors Exchange
	Venue_Iexg Venue = 14
	// MEMX LLC Equities
	Venue_Memx Venue = 18
	// Options Price Reporting Authority
	Venue_Opra Venue = 30
	// ICE Europe Commodities
	Venue_Ifeu Venue = 38
	// Databento US Equities - Consolidated
	Venue_Dbeq Venue = 40
	// Eurex Exchange
	Venue_Xeur Venue = 50
)

// String returns the string representation of the Venue, or "" if unknown.
func (v Venue) String() string {
	switch v {
	case Venue_Glbx:
		return "GLBX"
	case Venue_Xnas:
		return "XNAS"
	case Venue_Bats:
		return "BATS"
	case Venue_Xnys:
		return "XNYS"
	case Venue_Xcis:
		return "XCIS"
	case Venue_Arcx:
		return "ARCX"
	case Venue_Iexg:
		return "IEXG"
	case Venue_Memx:
		return "MEMX"
	case Venue_Opra:
		return "OPRA"
	case Venue_Ifeu:
		return "IFEU"
	case Venue_Dbeq:
		return "DBEQ"
	case Venue_Xeur:
		return "XEUR"
	default:
		return ""
	}
}

// VenueFromString converts a string to a Venue.
// Returns an error if the string is unknown.
func VenueFromString(str string) (Venue, error) {
	str = strings.ToUpper(str)
	switch str {
	case "GLBX":
		return Venue_Glbx, nil
	case "XNAS":
		return Venue_Xnas, nil
	case "BATS":
		return Venue_Bats, nil
	case "XNYS":
		return Venue_Xnys, nil
	case "XCIS":
		return Venue_Xcis, nil
	case "ARCX":
		return Venue_Arcx, nil
	case "IEXG":
		return Venue_Iexg, nil
	case "MEMX":
		return Venue_Memx, nil
	case "OPRA":
		return Venue_Opra, nil
	case "IFEU":
		return Venue_Ifeu, nil
	case "DBEQ":
		return Venue_Dbeq, nil
	case "XEUR":
		return Venue_Xeur, nil
	default:
		return Venue_Glbx, fmt.Errorf("unknown venue: '%s'", str)
	}
}

func (v Venue) MarshalJSON() ([]byte, error) {
	return json.Marshal(v.String())
}

func (v *Venue) UnmarshalJSON(data []byte) error {
	var str string
	if err := json.Unmarshal(data, &str); err != nil {
		return err
	}
	vn, err := VenueFromString(str)
	if err != nil {
		return err
	}
	*v = vn
	return nil
}

// Type implements pflag.Value.Type. Returns "dbn.Venue".
func (*Venue) Type() string {
	return "dbn.Venue"
}

// Set implements the flag.Value interface.
func (v *Venue) Set(value string) error {
	vn, err := VenueFromString(value)
	if err == nil {
		*v = vn
	}
	return err
}

///////////////////////////////////////////////////////////////////////////////
// Dataset
///////////////////////////////////////////////////////////////////////////////

// Dataset is a source of data.
type Dataset uint16

const (
	// CME MDP 3.0 Market Data
	Dataset_GlbxMdp3 Dataset = 1
	// Nasdaq TotalView-ITCH
	Dataset_XnasItch Dataset = 2
	// Cboe BZX Depth
	Dataset_BatsPitch Dataset = 5
	// NYSE Integrated
	Dataset_XnysPillar Dataset = 9
	// NYSE National Integrated
	Dataset_XcisPillar Dataset = 10
	// OPRA Binary
	Dataset_OpraPillar Dataset = 19
	// Databento US Equities Basic
	Dataset_DbeqBasic Dataset = 20
	// NYSE Arca Integrated
	Dataset_ArcxPillar Dataset = 21
	// IEX TOPS
	Dataset_IexgTops Dataset = 22
	// Eurex EOBI
	Dataset_XeurEobi Dataset = 38
)

// String returns the string representation of the Dataset, or "" if unknown.
func (d Dataset) String() string {
	switch d {
	case Dataset_GlbxMdp3:
		return "GLBX.MDP3"
	case Dataset_XnasItch:
		return "XNAS.ITCH"
	case Dataset_BatsPitch:
		return "BATS.PITCH"
	case Dataset_XnysPillar:
		return "XNYS.PILLAR"
	case Dataset_XcisPillar:
		return "XCIS.PILLAR"
	case Dataset_OpraPillar:
		return "OPRA.PILLAR"
	case Dataset_DbeqBasic:
		return "DBEQ.BASIC"
	case Dataset_ArcxPillar:
		return "ARCX.PILLAR"
	case Dataset_IexgTops:
		return "IEXG.TOPS"
	case Dataset_XeurEobi:
		return "XEUR.EOBI"
	default:
		return ""
	}
}

// Publishers returns all Publisher values associated with this dataset.
func (d Dataset) Publishers() []Publisher {
	switch d {
	case Dataset_GlbxMdp3:
		return []Publisher{Publisher_GlbxMdp3Glbx}
	case Dataset_XnasItch:
		return []Publisher{Publisher_XnasItchXnas}
	case Dataset_BatsPitch:
		return []Publisher{Publisher_BatsPitchBats}
	case Dataset_XnysPillar:
		return []Publisher{Publisher_XnysPillarXnys}
	case Dataset_XcisPillar:
		return []Publisher{Publisher_XcisPillarXcis}
	case Dataset_OpraPillar:
		return []Publisher{Publisher_OpraPillarOpra}
	case Dataset_DbeqBasic:
		return []Publisher{Publisher_DbeqBasicXcis, Publisher_DbeqBasicIexg}
	case Dataset_ArcxPillar:
		return []Publisher{Publisher_ArcxPillarArcx}
	case Dataset_IexgTops:
		return []Publisher{Publisher_IexgTopsIexg}
	case Dataset_XeurEobi:
		return []Publisher{Publisher_XeurEobiXeur}
	default:
		return nil
	}
}

// DatasetFromString converts a string to a Dataset.
// Returns an error if the string is unknown.
func DatasetFromString(str string) (Dataset, error) {
	str = strings.ToUpper(str)
	switch str {
	case "GLBX.MDP3":
		return Dataset_GlbxMdp3, nil
	case "XNAS.ITCH":
		return Dataset_XnasItch, nil
	case "BATS.PITCH":
		return Dataset_BatsPitch, nil
	case "XNYS.PILLAR":
		return Dataset_XnysPillar, nil
	case "XCIS.PILLAR":
		return Dataset_XcisPillar, nil
	case "OPRA.PILLAR":
		return Dataset_OpraPillar, nil
	case "DBEQ.BASIC":
		return Dataset_DbeqBasic, nil
	case "ARCX.PILLAR":
		return Dataset_ArcxPillar, nil
	case "IEXG.TOPS":
		return Dataset_IexgTops, nil
	case "XEUR.EOBI":
		return Dataset_XeurEobi, nil
	default:
		return Dataset_GlbxMdp3, fmt.Errorf("unknown dataset: '%s'", str)
	}
}

func (d Dataset) MarshalJSON() ([]byte, error) {
	return json.Marshal(d.String())
}

func (d *Dataset) UnmarshalJSON(data []byte) error {
	var str string
	if err := json.Unmarshal(data, &str); err != nil {
		return err
	}
	ds, err := DatasetFromString(str)
	if err != nil {
		return err
	}
	*d = ds
	return nil
}

// Type implements pflag.Value.Type. Returns "dbn.Dataset".
func (*Dataset) Type() string {
	return "dbn.Dataset"
}

// Set implements the flag.Value interface.
func (d *Dataset) Set(value string) error {
	ds, err := DatasetFromString(value)
	if err == nil {
		*d = ds
	}
	return err
}

///////////////////////////////////////////////////////////////////////////////
// Publisher
///////////////////////////////////////////////////////////////////////////////

// Publisher is a specific Venue from a specific Dataset.
type Publisher uint16

const (
	// CME Globex MDP 3.0
	Publisher_GlbxMdp3Glbx Publisher = 1
	// Nasdaq TotalView-ITCH
	Publisher_XnasItchXnas Publisher = 2
	// Cboe BZX Depth
	Publisher_BatsPitchBats Publisher = 5
	// NYSE Integrated
	Publisher_XnysPillarXnys Publisher = 9
	// NYSE National Integrated
	Publisher_XcisPillarXcis Publisher = 10
	// OPRA - Options Price Reporting Authority
	Publisher_OpraPillarOpra Publisher = 30
	// DBEQ Basic - NYSE National
	Publisher_DbeqBasicXcis Publisher = 40
	// DBEQ Basic - IEX
	Publisher_DbeqBasicIexg Publisher = 41
	// NYSE Arca Integrated
	Publisher_ArcxPillarArcx Publisher = 43
	// IEX TOPS
	Publisher_IexgTopsIexg Publisher = 38
	// Eurex EOBI
	Publisher_XeurEobiXeur Publisher = 101
)

// String returns the string representation of the Publisher, or "" if unknown.
func (p Publisher) String() string {
	switch p {
	case Publisher_GlbxMdp3Glbx:
		return "GLBX.MDP3.GLBX"
	case Publisher_XnasItchXnas:
		return "XNAS.ITCH.XNAS"
	case Publisher_BatsPitchBats:
		return "BATS.PITCH.BATS"
	case Publisher_XnysPillarXnys:
		return "XNYS.PILLAR.XNYS"
	case Publisher_XcisPillarXcis:
		return "XCIS.PILLAR.XCIS"
	case Publisher_OpraPillarOpra:
		return "OPRA.PILLAR.OPRA"
	case Publisher_DbeqBasicXcis:
		return "DBEQ.BASIC.XCIS"
	case Publisher_DbeqBasicIexg:
		return "DBEQ.BASIC.IEXG"
	case Publisher_ArcxPillarArcx:
		return "ARCX.PILLAR.ARCX"
	case Publisher_IexgTopsIexg:
		return "IEXG.TOPS.IEXG"
	case Publisher_XeurEobiXeur:
		return "XEUR.EOBI.XEUR"
	default:
		return ""
	}
}

// Venue returns the Publisher's trading venue.
func (p Publisher) Venue() Venue {
	switch p {
	case Publisher_GlbxMdp3Glbx:
		return Venue_Glbx
	case Publisher_XnasItchXnas:
		return Venue_Xnas
	case Publisher_BatsPitchBats:
		return Venue_Bats
	case Publisher_XnysPillarXnys:
		return Venue_Xnys
	case Publisher_XcisPillarXcis, Publisher_DbeqBasicXcis:
		return Venue_Xcis
	case Publisher_OpraPillarOpra:
		return Venue_Opra
	case Publisher_DbeqBasicIexg, Publisher_IexgTopsIexg:
		return Venue_Iexg
	case Publisher_ArcxPillarArcx:
		return Venue_Arcx
	case Publisher_XeurEobiXeur:
		return Venue_Xeur
	default:
		return 0
	}
}

// Dataset returns the Publisher's source dataset.
func (p Publisher) Dataset() Dataset {
	switch p {
	case Publisher_GlbxMdp3Glbx:
		return Dataset_GlbxMdp3
	case Publisher_XnasItchXnas:
		return Dataset_XnasItch
	case Publisher_BatsPitchBats:
		return Dataset_BatsPitch
	case Publisher_XnysPillarXnys:
		return Dataset_XnysPillar
	case Publisher_XcisPillarXcis:
		return Dataset_XcisPillar
	case Publisher_OpraPillarOpra:
		return Dataset_OpraPillar
	case Publisher_DbeqBasicXcis, Publisher_DbeqBasicIexg:
		return Dataset_DbeqBasic
	case Publisher_ArcxPillarArcx:
		return Dataset_ArcxPillar
	case Publisher_IexgTopsIexg:
		return Dataset_IexgTops
	case Publisher_XeurEobiXeur:
		return Dataset_XeurEobi
	default:
		return 0
	}
}

// PublisherFromDatasetVenue returns the Publisher combining dataset and
// venue, failing if no such combination is catalogued.
func PublisherFromDatasetVenue(dataset Dataset, venue Venue) (Publisher, error) {
	for _, p := range dataset.Publishers() {
		if p.Venue() == venue {
			return p, nil
		}
	}
	return 0, fmt.Errorf("unknown publisher for dataset '%s' venue '%s'", dataset, venue)
}

// PublisherFromString converts a string to a Publisher.
// Returns an error if the string is unknown.
func PublisherFromString(str string) (Publisher, error) {
	str = strings.ToUpper(str)
	switch str {
	case "GLBX.MDP3.GLBX":
		return Publisher_GlbxMdp3Glbx, nil
	case "XNAS.ITCH.XNAS":
		return Publisher_XnasItchXnas, nil
	case "BATS.PITCH.BATS":
		return Publisher_BatsPitchBats, nil
	case "XNYS.PILLAR.XNYS":
		return Publisher_XnysPillarXnys, nil
	case "XCIS.PILLAR.XCIS":
		return Publisher_XcisPillarXcis, nil
	case "OPRA.PILLAR.OPRA":
		return Publisher_OpraPillarOpra, nil
	case "DBEQ.BASIC.XCIS":
		return Publisher_DbeqBasicXcis, nil
	case "DBEQ.BASIC.IEXG":
		return Publisher_DbeqBasicIexg, nil
	case "ARCX.PILLAR.ARCX":
		return Publisher_ArcxPillarArcx, nil
	case "IEXG.TOPS.IEXG":
		return Publisher_IexgTopsIexg, nil
	case "XEUR.EOBI.XEUR":
		return Publisher_XeurEobiXeur, nil
	default:
		return 0, fmt.Errorf("unknown publisher: '%s'", str)
	}
}

func (p Publisher) MarshalJSON() ([]byte, error) {
	return json.Marshal(p.String())
}

func (p *Publisher) UnmarshalJSON(data []byte) error {
	var str string
	if err := json.Unmarshal(data, &str); err != nil {
		return err
	}
	pb, err := PublisherFromString(str)
	if err != nil {
		return err
	}
	*p = pb
	return nil
}

// Type implements pflag.Value.Type. Returns "dbn.Publisher".
func (*Publisher) Type() string {
	return "dbn.Publisher"
}

// Set implements the flag.Value interface.
func (p *Publisher) Set(value string) error {
	pb, err := PublisherFromString(value)
	if err == nil {
		*p = pb
	}
	return err
}
