package handler

import (
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/serac-weather/serac/internal/api/models"
	"github.com/serac-weather/serac/internal/api/response"
	"github.com/serac-weather/serac/internal/avalanche"
	"github.com/serac-weather/serac/internal/location"
)

// BulletinProvider exposes one massif's bulletin coordinator state.
type BulletinProvider interface {
	Massif() location.Massif
	Bulletin() (*avalanche.Bulletin, bool)
	LastError() error
}

// AvalancheHandler handles avalanche bulletin endpoints.
type AvalancheHandler struct {
	providers []BulletinProvider
}

// NewAvalancheHandler creates a new AvalancheHandler.
func NewAvalancheHandler(providers []BulletinProvider) *AvalancheHandler {
	return &AvalancheHandler{providers: providers}
}

// ListBulletins handles GET /v1/avalanche - every monitored massif's
// bulletin. Massifs whose first poll has not completed are skipped.
func (h *AvalancheHandler) ListBulletins(w http.ResponseWriter, r *http.Request) {
	bulletins := make([]models.AvalancheBulletin, 0, len(h.providers))
	for _, p := range h.providers {
		if bulletin, ok := p.Bulletin(); ok {
			bulletins = append(bulletins, models.AvalancheFromBulletin(bulletin))
		}
	}
	response.JSON(w, r, http.StatusOK, models.AvalancheResponse{Bulletins: bulletins})
}

// GetBulletin handles GET /v1/avalanche/{massifID} - one massif's bulletin.
func (h *AvalancheHandler) GetBulletin(w http.ResponseWriter, r *http.Request) {
	massifID, err := strconv.Atoi(chi.URLParam(r, "massifID"))
	if err != nil {
		response.BadRequest(w, r, "massifID must be an integer")
		return
	}

	for _, p := range h.providers {
		if p.Massif().ID != massifID {
			continue
		}
		bulletin, ok := p.Bulletin()
		if !ok {
			response.ServiceUnavailable(w, r, "bulletin not fetched yet")
			return
		}
		response.JSON(w, r, http.StatusOK, models.AvalancheFromBulletin(bulletin))
		return
	}

	response.NotFound(w, r, "massif is not monitored")
}
