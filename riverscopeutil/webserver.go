/*
Copyright © 2026 the RiverScope authors.
This file is part of RiverScope.

RiverScope is free software: you can redistribute it and/or modify
it under the terms of the GNU General Public License as published by
the Free Software Foundation, either version 3 of the License, or
(at your option) any later version.

RiverScope is distributed in the hope that it will be useful,
but WITHOUT ANY WARRANTY; without even the implied warranty of
MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
GNU General Public License for more details.

You should have received a copy of the GNU General Public License
along with RiverScope.  If not, see <http://www.gnu.org/licenses/>.
*/

package riverscopeutil

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/watermodel/riverscope"
	"github.com/watermodel/riverscope/background"
	"github.com/watermodel/riverscope/report"
)

// ServerConfig holds the API server configuration.
type ServerConfig struct {
	// BackgroundData is the path to the processed background medians
	// table.
	BackgroundData string

	// HazardIndexThreshold and CombinedMCL configure the simulator;
	// see riverscope.Config.
	HazardIndexThreshold float64
	CombinedMCL          float64
}

// Server is the simulation HTTP API. The engine itself is
// HTTP-agnostic; this layer only translates between JSON and engine
// types.
type Server struct {
	// Log receives request logging. Defaults to the standard logger.
	Log *logrus.Logger

	cfg    ServerConfig
	sim    *riverscope.Simulator
	loader *background.Loader
	mux    *http.ServeMux
}

// NewServer creates the API server.
func NewServer(cfg ServerConfig) *Server {
	s := &Server{
		Log:    logrus.StandardLogger(),
		cfg:    cfg,
		loader: new(background.Loader),
		sim: riverscope.NewSimulator(riverscope.Config{
			HazardIndexThreshold: cfg.HazardIndexThreshold,
			CombinedMCL:          cfg.CombinedMCL,
		}),
	}
	s.mux = http.NewServeMux()
	s.mux.HandleFunc("/api/health", s.health)
	s.mux.HandleFunc("/api/simulate", s.simulate)
	s.mux.HandleFunc("/api/report", s.report)
	return s
}

func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	s.mux.ServeHTTP(w, r)
	s.Log.WithFields(logrus.Fields{
		"method":   r.Method,
		"path":     r.URL.Path,
		"duration": time.Since(start).String(),
	}).Info("request")
}

// SimulateRequest is the JSON body accepted by the simulate and
// report endpoints.
type SimulateRequest struct {
	// Region is the background region (state abbreviation). Regions
	// without data fall back to national medians.
	Region string `json:"region"`

	UpstreamFlow  float64            `json:"upstream_flow_mgd"`
	DischargeFlow float64            `json:"discharge_flow_mgd"`
	FlowCondition string             `json:"flow_condition"`
	Discharge     map[string]float64 `json:"discharge_ppt"`

	// SiteName is shown in the PDF report header; the simulate
	// endpoint ignores it.
	SiteName string `json:"site_name,omitempty"`
}

func (s *Server) health(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	fmt.Fprintf(w, `{"status":"ok","version":%q}`, riverscope.Version)
}

func (s *Server) simulate(w http.ResponseWriter, r *http.Request) {
	result, _, ok := s.runRequest(w, r)
	if !ok {
		return
	}
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(result); err != nil {
		s.Log.WithError(err).Error("encoding simulation result")
	}
}

func (s *Server) report(w http.ResponseWriter, r *http.Request) {
	result, req, ok := s.runRequest(w, r)
	if !ok {
		return
	}
	w.Header().Set("Content-Type", "application/pdf")
	w.Header().Set("Content-Disposition", `attachment; filename="riskreport.pdf"`)
	meta := report.Meta{SiteName: req.SiteName, Region: req.Region}
	if err := report.Write(w, result, meta); err != nil {
		s.Log.WithError(err).Error("rendering report")
	}
}

// runRequest decodes the request body and runs the simulation,
// writing an error response and returning ok=false on failure.
func (s *Server) runRequest(w http.ResponseWriter, r *http.Request) (*riverscope.Result, *SimulateRequest, bool) {
	if r.Method != http.MethodPost {
		s.httpError(w, http.StatusMethodNotAllowed, fmt.Errorf("method %s not allowed", r.Method))
		return nil, nil, false
	}
	var req SimulateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.httpError(w, http.StatusBadRequest, fmt.Errorf("decoding request body: %v", err))
		return nil, nil, false
	}

	fc, err := riverscope.ParseFlowCondition(req.FlowCondition)
	if err != nil {
		s.httpError(w, http.StatusBadRequest, err)
		return nil, nil, false
	}

	table, err := s.loader.Table(r.Context(), s.cfg.BackgroundData)
	if err != nil {
		s.httpError(w, http.StatusInternalServerError, err)
		return nil, nil, false
	}

	result, err := s.sim.RunWithStats(table.Region(req.Region), table.RegionStats(req.Region), &riverscope.DischargeScenario{
		Discharge:     req.Discharge,
		DischargeFlow: req.DischargeFlow,
		UpstreamFlow:  req.UpstreamFlow,
		FlowCondition: fc,
	})
	if err != nil {
		var invalid *riverscope.InvalidInputError
		var unknown *riverscope.UnknownCompoundError
		switch {
		case errors.As(err, &invalid):
			s.httpError(w, http.StatusBadRequest, err)
		case errors.As(err, &unknown):
			s.httpError(w, http.StatusUnprocessableEntity, err)
		default:
			s.httpError(w, http.StatusInternalServerError, err)
		}
		return nil, nil, false
	}
	return result, &req, true
}

func (s *Server) httpError(w http.ResponseWriter, code int, err error) {
	s.Log.WithError(err).WithField("code", code).Warn("request failed")
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	json.NewEncoder(w).Encode(map[string]string{"error": err.Error()})
}

// StartWebServer runs the API server at addr until it fails.
func StartWebServer(addr string, cfg ServerConfig) error {
	logger := logrus.StandardLogger()
	logrus.SetFormatter(&logrus.TextFormatter{
		ForceColors:     true,
		FullTimestamp:   true,
		TimestampFormat: time.RFC3339Nano,
		DisableSorting:  true,
	})

	s := NewServer(cfg)
	s.Log = logger

	srv := &http.Server{
		Addr:              addr,
		Handler:           s,
		ReadHeaderTimeout: 5 * time.Second,
		IdleTimeout:       120 * time.Second,
		MaxHeaderBytes:    1 << 20,
	}
	logger.Infof("listening on http://%s\n", addr)
	return srv.ListenAndServe()
}
