package location

// Massif is one entry of the Météo-France avalanche-bulletin massif
// catalog: a numeric id accepted by the DPBRA API, the canonical name,
// and an approximate center coordinate used for nearest-massif lookup.
// Static reference data, never mutated.
type Massif struct {
	ID   int
	Name string
	Lat  float64
	Lon  float64
}

// massifs lists the French Alps, Pyrenees and Corsica massifs covered by
// the avalanche bulletin service.
var massifs = []Massif{
	// Northern Alps
	{ID: 1, Name: "Chablais", Lat: 46.3, Lon: 6.7},
	{ID: 2, Name: "Aravis", Lat: 45.9, Lon: 6.5},
	{ID: 3, Name: "Mont-Blanc", Lat: 45.9, Lon: 6.9},
	{ID: 4, Name: "Bauges", Lat: 45.7, Lon: 6.2},
	{ID: 5, Name: "Beaufortain", Lat: 45.7, Lon: 6.6},
	{ID: 6, Name: "Haute-Tarentaise", Lat: 45.5, Lon: 6.9},
	{ID: 7, Name: "Chartreuse", Lat: 45.4, Lon: 5.8},
	{ID: 8, Name: "Belledonne", Lat: 45.3, Lon: 6.0},
	{ID: 9, Name: "Maurienne", Lat: 45.2, Lon: 6.6},
	{ID: 10, Name: "Vanoise", Lat: 45.4, Lon: 6.8},
	{ID: 11, Name: "Haute-Maurienne", Lat: 45.2, Lon: 6.9},
	{ID: 12, Name: "Grandes-Rousses", Lat: 45.1, Lon: 6.1},
	{ID: 13, Name: "Thabor", Lat: 45.1, Lon: 6.5},
	{ID: 14, Name: "Vercors", Lat: 45.0, Lon: 5.5},
	{ID: 15, Name: "Oisans", Lat: 45.0, Lon: 6.3},
	{ID: 16, Name: "Pelvoux", Lat: 44.9, Lon: 6.4},
	// Southern Alps
	{ID: 17, Name: "Queyras", Lat: 44.7, Lon: 6.8},
	{ID: 18, Name: "Dévoluy", Lat: 44.7, Lon: 5.9},
	{ID: 19, Name: "Champsaur", Lat: 44.7, Lon: 6.2},
	{ID: 20, Name: "Embrunais-Parpaillon", Lat: 44.5, Lon: 6.5},
	{ID: 21, Name: "Ubaye", Lat: 44.4, Lon: 6.7},
	{ID: 22, Name: "Mercantour", Lat: 44.1, Lon: 7.4},
	{ID: 23, Name: "Alpes-Azur", Lat: 43.9, Lon: 7.2},
	// Pyrenees
	{ID: 40, Name: "Pays-Basque", Lat: 43.0, Lon: -1.0},
	{ID: 41, Name: "Aspe-Ossau", Lat: 42.9, Lon: -0.4},
	{ID: 42, Name: "Haute-Bigorre", Lat: 42.8, Lon: 0.1},
	{ID: 43, Name: "Aure-Louron", Lat: 42.8, Lon: 0.4},
	{ID: 44, Name: "Luchonnais", Lat: 42.8, Lon: 0.6},
	{ID: 45, Name: "Couserans", Lat: 42.8, Lon: 1.0},
	{ID: 46, Name: "Haute-Ariège", Lat: 42.6, Lon: 1.5},
	{ID: 47, Name: "Orlu-St-Barthélémy", Lat: 42.6, Lon: 1.9},
	{ID: 48, Name: "Capcir-Puymorens", Lat: 42.5, Lon: 2.0},
	{ID: 49, Name: "Cerdagne-Canigou", Lat: 42.5, Lon: 2.3},
	{ID: 50, Name: "Andorre", Lat: 42.6, Lon: 1.6},
	// Corsica
	{ID: 70, Name: "Corse", Lat: 42.2, Lon: 9.0},
}

// Massifs returns the full massif catalog.
func Massifs() []Massif {
	out := make([]Massif, len(massifs))
	copy(out, massifs)
	return out
}

// MassifByID looks up a massif by its numeric id.
func MassifByID(id int) (Massif, bool) {
	for _, m := range massifs {
		if m.ID == id {
			return m, true
		}
	}
	return Massif{}, false
}

// NearestMassif returns the massif whose center is closest to the given
// coordinate by great-circle distance, and that distance in kilometers.
func NearestMassif(lat, lon float64) (Massif, float64) {
	var nearest Massif
	minDistance := -1.0

	for _, m := range massifs {
		d := Distance(lat, lon, m.Lat, m.Lon)
		if minDistance < 0 || d < minDistance {
			minDistance = d
			nearest = m
		}
	}
	return nearest, minDistance
}
