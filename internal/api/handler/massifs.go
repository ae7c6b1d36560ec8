package handler

import (
	"net/http"
	"strconv"

	"github.com/serac-weather/serac/internal/api/models"
	"github.com/serac-weather/serac/internal/api/response"
	"github.com/serac-weather/serac/internal/location"
)

// MassifHandler handles massif catalog endpoints.
type MassifHandler struct{}

// NewMassifHandler creates a new MassifHandler.
func NewMassifHandler() *MassifHandler {
	return &MassifHandler{}
}

// ListMassifs handles GET /v1/massifs - the full massif catalog.
func (h *MassifHandler) ListMassifs(w http.ResponseWriter, r *http.Request) {
	catalog := location.Massifs()
	massifs := make([]models.MassifInfo, 0, len(catalog))
	for _, m := range catalog {
		massifs = append(massifs, massifInfo(m))
	}
	response.JSON(w, r, http.StatusOK, models.MassifListResponse{Massifs: massifs})
}

// NearestMassif handles GET /v1/massifs/nearest?lat=..&lon=.. - the
// closest massif to a coordinate.
func (h *MassifHandler) NearestMassif(w http.ResponseWriter, r *http.Request) {
	lat, err := strconv.ParseFloat(r.URL.Query().Get("lat"), 64)
	if err != nil {
		response.BadRequest(w, r, "lat must be a number")
		return
	}
	lon, err := strconv.ParseFloat(r.URL.Query().Get("lon"), 64)
	if err != nil {
		response.BadRequest(w, r, "lon must be a number")
		return
	}
	if lat < -90 || lat > 90 || lon < -180 || lon > 180 {
		response.BadRequest(w, r, "coordinate out of range")
		return
	}

	massif, distanceKm := location.NearestMassif(lat, lon)
	response.JSON(w, r, http.StatusOK, models.NearestMassifResponse{
		Massif:     massifInfo(massif),
		DistanceKm: distanceKm,
	})
}

func massifInfo(m location.Massif) models.MassifInfo {
	return models.MassifInfo{
		ID:        m.ID,
		Name:      m.Name,
		Latitude:  m.Lat,
		Longitude: m.Lon,
	}
}
