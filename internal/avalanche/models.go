// Package avalanche provides the Météo-France avalanche bulletin (BRA)
// domain model and client.
package avalanche

// Bulletin is one massif's avalanche bulletin.
//
// HasData gates everything else: when false, no bulletin is published
// for the massif (typically out of season) and all remaining fields are
// undefined. Consumers must check HasData before reading them.
type Bulletin struct {
	MassifID   int
	MassifName string

	// BulletinDate is the issue date/time as reported by the upstream
	// document.
	BulletinDate string

	HasData bool

	// Risk levels are ordinal 1 (low) to 5 (very high). Today's risk may
	// split into separate high/low altitude bands around AltitudeLimit.
	RiskToday        *int
	RiskHighAltitude *int
	RiskLowAltitude  *int
	AltitudeLimit    *int
	RiskComment      string

	// Tomorrow's outlook.
	RiskTomorrow        *int
	TomorrowDate        string
	TomorrowRiskText    string
	TomorrowRiskComment string

	// Free-text hazard descriptions.
	AccidentalText string
	NaturalText    string
	Summary        string
	Warning        string
}
