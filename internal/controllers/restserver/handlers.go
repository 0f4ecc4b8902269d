package restserver

import (
	"errors"
	"fmt"
	"math"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/gorilla/mux"

	"github.com/chrissnell/skychart/pkg/astrotime"
	"github.com/chrissnell/skychart/pkg/ephemeris"
	"github.com/chrissnell/skychart/pkg/houses"
	"github.com/chrissnell/skychart/pkg/lunar"
	"github.com/chrissnell/skychart/pkg/responseformat"
)

var errNotFound = errors.New("not found")

// Handlers contains all HTTP handlers for the REST server
type Handlers struct {
	controller *Controller
	formatter  *responseformat.Formatter
}

// NewHandlers creates a new handlers instance
func NewHandlers(ctrl *Controller) *Handlers {
	return &Handlers{
		controller: ctrl,
		formatter:  responseformat.NewFormatter(),
	}
}

// badRequest is a client input error, answered with 400
type badRequest struct {
	err error
}

func (b badRequest) Error() string { return b.err.Error() }
func (b badRequest) Unwrap() error { return b.err }

func badRequestf(format string, args ...interface{}) error {
	return badRequest{err: fmt.Errorf(format, args...)}
}

// writeError maps err to a status code and writes it as an ErrorResponse
func (h *Handlers) writeError(w http.ResponseWriter, req *http.Request, err error) {
	status := http.StatusInternalServerError

	var br badRequest
	switch {
	case errors.As(err, &br),
		errors.Is(err, houses.ErrInvalidLocation),
		errors.Is(err, houses.ErrUnknownSystem),
		errors.Is(err, houses.ErrInvalidDate),
		errors.Is(err, ephemeris.ErrInvalidDate):
		status = http.StatusBadRequest
	case errors.Is(err, ephemeris.ErrUnknownBody):
		status = http.StatusNotFound
	}

	if status == http.StatusInternalServerError {
		h.controller.logger.Errorw("request failed",
			"path", req.URL.Path,
			"request_id", requestIDFromContext(req.Context()),
			"error", err,
		)
	}

	if werr := h.formatter.WriteError(w, req, status, err); werr != nil {
		h.controller.logger.Errorf("error writing response: %v", werr)
	}
}

func (h *Handlers) write(w http.ResponseWriter, req *http.Request, data any) {
	if err := h.formatter.WriteResponse(w, req, data, nil); err != nil {
		h.controller.logger.Errorf("error writing response: %v", err)
	}
}

// parseJulianDay reads the moment from either jd (a Julian Date) or time
// (RFC 3339). With neither present the current time is used.
func parseJulianDay(req *http.Request, now time.Time) (float64, error) {
	q := req.URL.Query()
	jdParam, timeParam := q.Get("jd"), q.Get("time")

	switch {
	case jdParam != "" && timeParam != "":
		return 0, badRequestf("specify either jd or time, not both")
	case jdParam != "":
		jd, err := strconv.ParseFloat(jdParam, 64)
		if err != nil || math.IsNaN(jd) || math.IsInf(jd, 0) {
			return 0, badRequestf("invalid jd %q", jdParam)
		}
		return jd, nil
	case timeParam != "":
		t, err := time.Parse(time.RFC3339, timeParam)
		if err != nil {
			return 0, badRequestf("invalid time %q: expected RFC 3339", timeParam)
		}
		return astrotime.FromTime(t), nil
	}
	return astrotime.FromTime(now), nil
}

// parseLocation reads lat and lon, falling back to the configured default
// for whichever is absent.
func (h *Handlers) parseLocation(req *http.Request) (houses.Location, error) {
	loc := h.controller.defaultLocation
	q := req.URL.Query()

	for _, p := range []struct {
		name string
		dst  *float64
	}{
		{"lat", &loc.Latitude},
		{"lon", &loc.Longitude},
	} {
		raw := q.Get(p.name)
		if raw == "" {
			continue
		}
		v, err := strconv.ParseFloat(raw, 64)
		if err != nil {
			return houses.Location{}, badRequestf("invalid %s %q", p.name, raw)
		}
		*p.dst = v
	}

	return loc, loc.Validate()
}

// parseBodies reads a comma-separated bodies list; empty means all bodies
func parseBodies(req *http.Request) ([]ephemeris.Body, error) {
	raw := req.URL.Query().Get("bodies")
	if raw == "" {
		return ephemeris.AllBodies(), nil
	}

	var bodies []ephemeris.Body
	for _, name := range strings.Split(raw, ",") {
		b, err := ephemeris.ParseBody(strings.TrimSpace(name))
		if err != nil {
			return nil, badRequest{err: err}
		}
		bodies = append(bodies, b)
	}
	return bodies, nil
}

func formatJD(jd float64) string {
	return astrotime.ToTime(jd).Round(time.Second).Format(time.RFC3339)
}

// GetPositions handles /positions
func (h *Handlers) GetPositions(w http.ResponseWriter, req *http.Request) {
	jd, err := parseJulianDay(req, time.Now())
	if err != nil {
		h.writeError(w, req, err)
		return
	}

	bodies, err := parseBodies(req)
	if err != nil {
		h.writeError(w, req, err)
		return
	}

	resp := PositionsResponse{
		JulianDay: jd,
		Time:      formatJD(jd),
		Positions: make(map[string]ephemeris.Position, len(bodies)),
	}
	for _, b := range bodies {
		p, err := h.controller.calculator.Position(b, jd)
		if err != nil {
			h.writeError(w, req, fmt.Errorf("%s: %w", b, err))
			return
		}
		resp.Positions[b.String()] = p
		h.controller.metrics.RecordPosition(b.String())
	}

	h.write(w, req, resp)
}

// GetPosition handles /positions/{body}
func (h *Handlers) GetPosition(w http.ResponseWriter, req *http.Request) {
	body, err := ephemeris.ParseBody(mux.Vars(req)["body"])
	if err != nil {
		h.writeError(w, req, err)
		return
	}

	jd, err := parseJulianDay(req, time.Now())
	if err != nil {
		h.writeError(w, req, err)
		return
	}

	p, err := h.controller.calculator.Position(body, jd)
	if err != nil {
		h.writeError(w, req, err)
		return
	}
	h.controller.metrics.RecordPosition(body.String())

	h.write(w, req, PositionResponse{
		JulianDay: jd,
		Time:      formatJD(jd),
		Body:      body.String(),
		Position:  p,
	})
}

// GetHouses handles /houses
func (h *Handlers) GetHouses(w http.ResponseWriter, req *http.Request) {
	jd, err := parseJulianDay(req, time.Now())
	if err != nil {
		h.writeError(w, req, err)
		return
	}

	loc, err := h.parseLocation(req)
	if err != nil {
		h.writeError(w, req, err)
		return
	}

	system := h.controller.defaultSystem
	if name := req.URL.Query().Get("system"); name != "" {
		if system, err = houses.ParseSystem(name); err != nil {
			h.writeError(w, req, err)
			return
		}
	}

	result, err := h.controller.engine.Calculate(jd, loc, system)
	if err != nil {
		h.writeError(w, req, err)
		return
	}

	h.write(w, req, HousesResponse{Time: formatJD(jd), Result: result})
}

// GetMoonPhase handles /moon
func (h *Handlers) GetMoonPhase(w http.ResponseWriter, req *http.Request) {
	jd, err := parseJulianDay(req, time.Now())
	if err != nil {
		h.writeError(w, req, err)
		return
	}

	phase, err := lunar.Phase(jd)
	if err != nil {
		h.writeError(w, req, err)
		return
	}

	h.write(w, req, MoonPhaseResponse{JulianDay: jd, Time: formatJD(jd), MoonPhase: phase})
}

// GetSystems handles /systems
func (h *Handlers) GetSystems(w http.ResponseWriter, req *http.Request) {
	resp := SystemsResponse{Default: h.controller.defaultSystem.String()}
	for _, s := range houses.Systems() {
		resp.Systems = append(resp.Systems, SystemInfo{
			Name:             s.String(),
			Code:             s.Code(),
			UsesLatitude:     s.UsesLatitude(),
			PorphyryFallback: s.FallsBack(),
		})
	}
	h.write(w, req, resp)
}

// NotFound answers unknown routes in the service's error format
func (h *Handlers) NotFound(w http.ResponseWriter, req *http.Request) {
	if err := h.formatter.WriteError(w, req, http.StatusNotFound, fmt.Errorf("%w: %s", errNotFound, req.URL.Path)); err != nil {
		h.controller.logger.Errorf("error writing response: %v", err)
	}
}
