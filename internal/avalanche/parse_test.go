package avalanche_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/serac-weather/serac/internal/avalanche"
	"github.com/serac-weather/serac/internal/provider"
)

const fullBulletin = `<?xml version="1.0" encoding="UTF-8"?>
<BULLETINS_NEIGE_AVALANCHE DATEBULLETIN="2026-02-10T16:00:00" MASSIF="MONT-BLANC">
  <DateValidite>2026-02-11T18:00:00</DateValidite>
  <CARTOUCHERISQUE>
    <RISQUE RISQUEMAXI="3" RISQUEMAXIJ2="2" RISQUE1="3" RISQUE2="2"
            ALTITUDE="2200" COMMENTAIRE="au-dessus de 2200m"
            DATE_RISQUE_J2="2026-02-12"/>
    <ACCIDENTEL>Plaques friables en versant nord.</ACCIDENTEL>
    <NATUREL>Quelques coulées humides attendues.</NATUREL>
    <RESUME>Risque marqué en altitude.</RESUME>
    <RisqueJ2>Risque limité</RisqueJ2>
    <CommentaireRisqueJ2>Amélioration progressive.</CommentaireRisqueJ2>
    <AVIS>Prudence en haute montagne.</AVIS>
  </CARTOUCHERISQUE>
</BULLETINS_NEIGE_AVALANCHE>`

func TestParseBulletin_FullDocument(t *testing.T) {
	b, err := avalanche.ParseBulletin([]byte(fullBulletin), 3)
	require.NoError(t, err)

	assert.True(t, b.HasData)
	assert.Equal(t, 3, b.MassifID)
	assert.Equal(t, "MONT-BLANC", b.MassifName)
	assert.Equal(t, "2026-02-10T16:00:00", b.BulletinDate)

	require.NotNil(t, b.RiskToday)
	assert.Equal(t, 3, *b.RiskToday)
	require.NotNil(t, b.RiskTomorrow)
	assert.Equal(t, 2, *b.RiskTomorrow)
	require.NotNil(t, b.RiskHighAltitude)
	assert.Equal(t, 3, *b.RiskHighAltitude)
	require.NotNil(t, b.RiskLowAltitude)
	assert.Equal(t, 2, *b.RiskLowAltitude)
	require.NotNil(t, b.AltitudeLimit)
	assert.Equal(t, 2200, *b.AltitudeLimit)

	assert.Equal(t, "au-dessus de 2200m", b.RiskComment)
	assert.Equal(t, "2026-02-12", b.TomorrowDate)
	assert.Equal(t, "Plaques friables en versant nord.", b.AccidentalText)
	assert.Equal(t, "Quelques coulées humides attendues.", b.NaturalText)
	assert.Equal(t, "Risque marqué en altitude.", b.Summary)
	assert.Equal(t, "Risque limité", b.TomorrowRiskText)
	assert.Equal(t, "Amélioration progressive.", b.TomorrowRiskComment)
	assert.Equal(t, "Prudence en haute montagne.", b.Warning)
}

func TestParseBulletin_NestedCartridge(t *testing.T) {
	// The cartridge is found wherever it sits in the tree.
	doc := `<root MASSIF="VERCORS" DATEBULLETIN="2026-02-10">
	  <Wrapper><Inner><CARTOUCHERISQUE>
	    <RISQUE RISQUEMAXI="4"/>
	  </CARTOUCHERISQUE></Inner></Wrapper>
	</root>`

	b, err := avalanche.ParseBulletin([]byte(doc), 14)
	require.NoError(t, err)
	assert.True(t, b.HasData)
	require.NotNil(t, b.RiskToday)
	assert.Equal(t, 4, *b.RiskToday)
}

func TestParseBulletin_NoRiskElementIsNotAnError(t *testing.T) {
	doc := `<root MASSIF="CHABLAIS" DATEBULLETIN="2026-07-01">
	  <CARTOUCHERISQUE></CARTOUCHERISQUE>
	</root>`

	b, err := avalanche.ParseBulletin([]byte(doc), 1)
	require.NoError(t, err)
	assert.False(t, b.HasData)
	assert.Equal(t, "CHABLAIS", b.MassifName)
	assert.Nil(t, b.RiskToday)
}

func TestParseBulletin_NoCartridgeIsNotAnError(t *testing.T) {
	b, err := avalanche.ParseBulletin([]byte(`<root MASSIF="QUEYRAS"/>`), 17)
	require.NoError(t, err)
	assert.False(t, b.HasData)
}

func TestParseBulletin_MalformedXMLIsParseError(t *testing.T) {
	_, err := avalanche.ParseBulletin([]byte("<root><unclosed>"), 1)
	require.Error(t, err)

	kind, ok := provider.KindOf(err)
	require.True(t, ok)
	assert.Equal(t, provider.KindParse, kind)
}

func TestParseBulletin_NonNumericOrdinalIsNil(t *testing.T) {
	doc := `<root><CARTOUCHERISQUE>
	  <RISQUE RISQUEMAXI="3" RISQUE1="n/a" ALTITUDE=""/>
	</CARTOUCHERISQUE></root>`

	b, err := avalanche.ParseBulletin([]byte(doc), 1)
	require.NoError(t, err)
	assert.True(t, b.HasData)
	require.NotNil(t, b.RiskToday)
	assert.Equal(t, 3, *b.RiskToday)
	assert.Nil(t, b.RiskHighAltitude)
	assert.Nil(t, b.AltitudeLimit)
}
