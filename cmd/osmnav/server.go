package main

import (
	"context"
	"encoding/json"
	"net/http"
	"strconv"
	"time"

	"github.com/LdDl/osmnav"
	"github.com/gorilla/mux"
	"github.com/paulmach/osm"
	"github.com/pkg/errors"
	"golang.org/x/exp/slog"
)

type Position struct {
	Latitude  float64 `json:"lat"`
	Longitude float64 `json:"lon"`
}

type RouteRequest struct {
	From Position `json:"from"`
	To   Position `json:"to"`
}

type StepResponse struct {
	Turn        string  `json:"turn"`
	Distance    float64 `json:"distance_meters"`
	Label       string  `json:"distance"`
	WayName     string  `json:"way_name"`
	Instruction string  `json:"instruction"`
}

type RouteResponse struct {
	Reachable        bool            `json:"reachable"`
	StartingRoad     string          `json:"starting_road"`
	DestinationRoad  string          `json:"destination_road"`
	TotalDistance    float64         `json:"total_distance"`
	EstimatedSeconds float64         `json:"estimated_seconds"`
	Steps            []StepResponse  `json:"steps"`
	Geometry         json.RawMessage `json:"geometry,omitempty"`
}

type NetworkResponse struct {
	Nodes         int       `json:"nodes"`
	Ways          int       `json:"ways"`
	Intersections int       `json:"intersections"`
	Bound         []float64 `json:"bbox"`
}

type RouteHandler struct {
	nav     *osmnav.Navigator
	timeout time.Duration
	logger  *slog.Logger
}

func NewRouteHandler(nav *osmnav.Navigator, timeout time.Duration, logger *slog.Logger) *RouteHandler {
	return &RouteHandler{
		nav:     nav,
		timeout: timeout,
		logger:  logger,
	}
}

func (h *RouteHandler) RegisterRoutes(router *mux.Router) {
	router.HandleFunc("/route", h.CalculateRoute).Methods("POST")
	router.HandleFunc("/network", h.GetNetwork).Methods("GET")
	router.HandleFunc("/ways/{id:[0-9]+}", h.GetWay).Methods("GET")
}

func (h *RouteHandler) CalculateRoute(w http.ResponseWriter, r *http.Request) {
	var req RouteRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	ctx, cancel := context.WithTimeout(r.Context(), h.timeout)
	defer cancel()
	from := osmnav.GeoPoint{Lat: req.From.Latitude, Lon: req.From.Longitude}
	to := osmnav.GeoPoint{Lat: req.To.Latitude, Lon: req.To.Longitude}
	route, err := h.nav.Navigate(ctx, from, to)
	if err != nil {
		h.logger.Warn("Route request failed", "from", from, "to", to, "error", err)
		writeError(w, statusFromError(err), err.Error())
		return
	}
	resp := RouteResponse{
		Reachable:        route.Reachable(),
		StartingRoad:     route.StartingRoad,
		DestinationRoad:  route.DestinationRoad,
		TotalDistance:    route.TotalDistance,
		EstimatedSeconds: route.EstimatedDuration().Seconds(),
		Steps:            make([]StepResponse, 0, len(route.Steps)),
	}
	for _, step := range route.Steps {
		resp.Steps = append(resp.Steps, StepResponse{
			Turn:        step.Turn.String(),
			Distance:    step.Distance,
			Label:       step.DistanceLabel,
			WayName:     step.WayName,
			Instruction: step.Instruction(),
		})
	}
	if route.Reachable() {
		geom, err := route.GeoJSON()
		if err != nil {
			writeError(w, http.StatusInternalServerError, err.Error())
			return
		}
		resp.Geometry = geom
	}
	writeJSON(w, http.StatusOK, resp)
}

func (h *RouteHandler) GetNetwork(w http.ResponseWriter, r *http.Request) {
	net := h.nav.Network()
	bound := net.Bound()
	writeJSON(w, http.StatusOK, NetworkResponse{
		Nodes:         len(net.Nodes()),
		Ways:          len(net.Ways()),
		Intersections: len(net.Intersections()),
		Bound:         []float64{bound.Min.Lon(), bound.Min.Lat(), bound.Max.Lon(), bound.Max.Lat()},
	})
}

func (h *RouteHandler) GetWay(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(mux.Vars(r)["id"], 10, 64)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid way id")
		return
	}
	way, err := h.nav.Network().Way(osm.WayID(id))
	if err != nil {
		writeError(w, statusFromError(err), err.Error())
		return
	}
	geom := osmnav.PrepareGeoJSONLinestring(way.Geom())
	if geom == "" {
		geom = "null"
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"id":            way.ID,
		"name":          way.Name,
		"highway":       way.Highway.String(),
		"length_meters": way.LengthMeters(),
		"geometry":      json.RawMessage(geom),
	})
}

func statusFromError(err error) int {
	switch {
	case errors.Is(err, osmnav.ErrNotFound), errors.Is(err, osmnav.ErrEmptyNetwork):
		return http.StatusNotFound
	case errors.Is(err, osmnav.ErrSearchLimit), errors.Is(err, context.DeadlineExceeded):
		return http.StatusServiceUnavailable
	default:
		return http.StatusInternalServerError
	}
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}
