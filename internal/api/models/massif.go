package models

// MassifInfo is one entry of the massif catalog.
type MassifInfo struct {
	ID        int     `json:"id"`
	Name      string  `json:"name"`
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
}

// NearestMassifResponse is the closest massif to a coordinate.
type NearestMassifResponse struct {
	Massif     MassifInfo `json:"massif"`
	DistanceKm float64    `json:"distanceKm"`
}

// MassifListResponse lists the known massifs.
type MassifListResponse struct {
	Massifs []MassifInfo `json:"massifs"`
}
