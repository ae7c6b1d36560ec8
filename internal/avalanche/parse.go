package avalanche

import (
	"encoding/xml"
	"strconv"
	"strings"

	"github.com/serac-weather/serac/internal/provider"
)

// BRA documents have varied over the years in how deeply the risk
// cartridge is nested, so the parser walks a generic node tree instead
// of committing to one fixed layout. The elements it looks for:
//
//	<root DATEBULLETIN="..." MASSIF="...">
//	  ...
//	  <CARTOUCHERISQUE>
//	    <RISQUE RISQUEMAXI=".." RISQUEMAXIJ2=".." RISQUE1=".." RISQUE2=".."
//	            ALTITUDE=".." COMMENTAIRE=".." DATE_RISQUE_J2=".."/>
//	    <ACCIDENTEL>...</ACCIDENTEL>
//	    <NATUREL>...</NATUREL>
//	    <RESUME>...</RESUME>
//	    <RisqueJ2>...</RisqueJ2>
//	    <CommentaireRisqueJ2>...</CommentaireRisqueJ2>
//	    <AVIS>...</AVIS>
//	  </CARTOUCHERISQUE>
//	</root>
type xmlNode struct {
	XMLName xml.Name
	Attrs   []xml.Attr `xml:",any,attr"`
	Content string     `xml:",chardata"`
	Nodes   []xmlNode  `xml:",any"`
}

func (n *xmlNode) attr(name string) string {
	for _, a := range n.Attrs {
		if a.Name.Local == name {
			return a.Value
		}
	}
	return ""
}

// find returns the first descendant element with the given local name.
func (n *xmlNode) find(name string) *xmlNode {
	for i := range n.Nodes {
		child := &n.Nodes[i]
		if child.XMLName.Local == name {
			return child
		}
		if found := child.find(name); found != nil {
			return found
		}
	}
	return nil
}

// text returns the trimmed text content of the first descendant with the
// given local name, or "".
func (n *xmlNode) text(name string) string {
	if found := n.find(name); found != nil {
		return strings.TrimSpace(found.Content)
	}
	return ""
}

// ParseBulletin parses a BRA XML document for the given massif.
//
// A document without the risk cartridge or risk element is not an
// error: it parses to a bulletin with HasData=false, which is how the
// upstream represents "no bulletin this season". Only malformed XML is
// a failure, surfaced as a parse-kind error.
func ParseBulletin(data []byte, massifID int) (Bulletin, error) {
	var root xmlNode
	if err := xml.Unmarshal(data, &root); err != nil {
		return Bulletin{}, provider.NewParseError(SourceName, err)
	}

	bulletin := Bulletin{
		MassifID:     massifID,
		MassifName:   root.attr("MASSIF"),
		BulletinDate: root.attr("DATEBULLETIN"),
	}

	cartridge := root.find("CARTOUCHERISQUE")
	if cartridge == nil {
		return bulletin, nil
	}
	risk := cartridge.find("RISQUE")
	if risk == nil {
		return bulletin, nil
	}

	bulletin.HasData = true
	bulletin.RiskToday = parseOrdinal(risk.attr("RISQUEMAXI"))
	bulletin.RiskTomorrow = parseOrdinal(risk.attr("RISQUEMAXIJ2"))
	bulletin.TomorrowDate = risk.attr("DATE_RISQUE_J2")
	bulletin.RiskHighAltitude = parseOrdinal(risk.attr("RISQUE1"))
	bulletin.RiskLowAltitude = parseOrdinal(risk.attr("RISQUE2"))
	bulletin.AltitudeLimit = parseOrdinal(risk.attr("ALTITUDE"))
	bulletin.RiskComment = strings.TrimSpace(risk.attr("COMMENTAIRE"))

	bulletin.AccidentalText = cartridge.text("ACCIDENTEL")
	bulletin.NaturalText = cartridge.text("NATUREL")
	bulletin.Summary = cartridge.text("RESUME")
	bulletin.TomorrowRiskText = cartridge.text("RisqueJ2")
	bulletin.TomorrowRiskComment = cartridge.text("CommentaireRisqueJ2")
	bulletin.Warning = cartridge.text("AVIS")

	return bulletin, nil
}

// parseOrdinal converts a numeric attribute to an int pointer; empty or
// non-numeric attributes map to nil rather than failing the bulletin.
func parseOrdinal(s string) *int {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil
	}
	v, err := strconv.Atoi(s)
	if err != nil {
		return nil
	}
	return &v
}
