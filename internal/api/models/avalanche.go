package models

import "github.com/serac-weather/serac/internal/avalanche"

// AvalancheBulletin is one massif's bulletin. When HasData is false no
// bulletin is published for the massif and the risk fields are omitted.
type AvalancheBulletin struct {
	MassifID     int    `json:"massifId"`
	MassifName   string `json:"massifName,omitempty"`
	BulletinDate string `json:"bulletinDate,omitempty"`

	HasData bool `json:"hasData"`

	RiskToday        *int   `json:"riskToday,omitempty"`
	RiskHighAltitude *int   `json:"riskHighAltitude,omitempty"`
	RiskLowAltitude  *int   `json:"riskLowAltitude,omitempty"`
	AltitudeLimit    *int   `json:"altitudeLimit,omitempty"`
	RiskComment      string `json:"riskComment,omitempty"`

	RiskTomorrow        *int   `json:"riskTomorrow,omitempty"`
	TomorrowDate        string `json:"tomorrowDate,omitempty"`
	TomorrowRiskText    string `json:"tomorrowRiskText,omitempty"`
	TomorrowRiskComment string `json:"tomorrowRiskComment,omitempty"`

	AccidentalText string `json:"accidentalText,omitempty"`
	NaturalText    string `json:"naturalText,omitempty"`
	Summary        string `json:"summary,omitempty"`
	Warning        string `json:"warning,omitempty"`
}

// AvalancheResponse lists the bulletins of every monitored massif.
type AvalancheResponse struct {
	Bulletins []AvalancheBulletin `json:"bulletins"`
}

// AvalancheFromBulletin maps a domain bulletin to the response model.
func AvalancheFromBulletin(b *avalanche.Bulletin) AvalancheBulletin {
	out := AvalancheBulletin{
		MassifID:     b.MassifID,
		MassifName:   b.MassifName,
		BulletinDate: b.BulletinDate,
		HasData:      b.HasData,
	}
	if !b.HasData {
		return out
	}

	out.RiskToday = b.RiskToday
	out.RiskHighAltitude = b.RiskHighAltitude
	out.RiskLowAltitude = b.RiskLowAltitude
	out.AltitudeLimit = b.AltitudeLimit
	out.RiskComment = b.RiskComment
	out.RiskTomorrow = b.RiskTomorrow
	out.TomorrowDate = b.TomorrowDate
	out.TomorrowRiskText = b.TomorrowRiskText
	out.TomorrowRiskComment = b.TomorrowRiskComment
	out.AccidentalText = b.AccidentalText
	out.NaturalText = b.NaturalText
	out.Summary = b.Summary
	out.Warning = b.Warning
	return out
}
