package layout

import "encoding/xml"

// The on-disk format:
//
//	<keyboard>
//	  <layout id="us">
//	    <row>
//	      <key obey-caps="true" width="2">
//	        <default display="a"/>
//	        <shifted display="A"/>
//	      </key>
//	      <space width="1"/>
//	    </row>
//	  </layout>
//	</keyboard>

type xmlKeyboard struct {
	XMLName xml.Name    `xml:"keyboard"`
	Layouts []xmlLayout `xml:"layout"`
}

type xmlLayout struct {
	ID   string   `xml:"id,attr"`
	Rows []xmlRow `xml:"row"`
}

// Keys and spaces are mixed in document order.
type xmlRow struct {
	Items []xmlItem `xml:",any"`
}

type xmlItem struct {
	XMLName  xml.Name
	Width    string     `xml:"width,attr"`
	ObeyCaps string     `xml:"obey-caps,attr"`
	Fill     string     `xml:"fill,attr"`
	States   []xmlState `xml:",any"`
}

type xmlState struct {
	XMLName xml.Name
	Display string  `xml:"display,attr"`
	Action  *string `xml:"action,attr"`
}

const (
	elemKey   = "key"
	elemSpace = "space"

	imagePrefix    = "image:"
	modifierPrefix = "modifier:"
)
