package storefront

import (
	"log/slog"
	"net/http"

	"github.com/asifratul/dokan/internal/handler"
	"github.com/asifratul/dokan/internal/location"
)

// LocationHandler serves the delivery-area directory
type LocationHandler struct {
	directory *location.Directory
	logger    *slog.Logger
}

// NewLocationHandler creates a new location handler
func NewLocationHandler(directory *location.Directory, logger *slog.Logger) *LocationHandler {
	if logger == nil {
		logger = slog.Default()
	}
	return &LocationHandler{directory: directory, logger: logger}
}

type districtResponse struct {
	Districts []string `json:"districts"`
}

type areaResponse struct {
	District string   `json:"district"`
	Zone     string   `json:"zone"`
	Charge   int64    `json:"delivery_charge"`
	Areas    []string `json:"areas"`
}

// Districts handles GET /districts?q=
func (h *LocationHandler) Districts(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query().Get("q")

	names := h.directory.SearchDistricts(query)
	if names == nil {
		names = []string{}
	}
	handler.RespondJSON(w, http.StatusOK, districtResponse{Districts: names})
}

// Areas handles GET /districts/{district}/areas?q=
// Unknown districts still answer with the fallback zone and charge so
// the storefront can always show a delivery fee.
func (h *LocationHandler) Areas(w http.ResponseWriter, r *http.Request) {
	district := r.PathValue("district")
	query := r.URL.Query().Get("q")

	zone, charge := h.directory.ResolveZone(district)
	areas := h.directory.SearchAreas(district, query)
	if areas == nil {
		areas = []string{}
	}

	handler.RespondJSON(w, http.StatusOK, areaResponse{
		District: district,
		Zone:     string(zone),
		Charge:   charge,
		Areas:    areas,
	})
}
