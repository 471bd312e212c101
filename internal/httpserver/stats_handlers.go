package httpserver

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/gorilla/mux"
)

// aliasAndLane pulls the subject alias from the path and the lane from the
// query string; both are required.
func (s *Server) aliasAndLane(w http.ResponseWriter, r *http.Request) (string, string, bool) {
	alias := mux.Vars(r)["alias"]
	lane := r.URL.Query().Get("lane")
	if alias == "" || lane == "" {
		s.writeErrorResponse(w, "Missing required fields: alias, lane", http.StatusBadRequest)
		return "", "", false
	}
	return alias, lane, true
}

// handleCounters serves the subject's matchup table, hardest opponents first
func (s *Server) handleCounters(w http.ResponseWriter, r *http.Request) {
	alias, lane, ok := s.aliasAndLane(w, r)
	if !ok {
		return
	}

	counters := s.stats.Counters(r.Context(), alias, lane)
	s.writeResponse(w, &StatsResponse{Success: true, Data: counters})
}

// handleCounterpicks serves the opponents ranked by inverted win rate
func (s *Server) handleCounterpicks(w http.ResponseWriter, r *http.Request) {
	alias, lane, ok := s.aliasAndLane(w, r)
	if !ok {
		return
	}

	picks := s.stats.BestCounterpicks(r.Context(), alias, lane)
	s.writeResponse(w, &StatsResponse{Success: true, Data: picks})
}

// handleBuild serves the recommended item build
func (s *Server) handleBuild(w http.ResponseWriter, r *http.Request) {
	alias, lane, ok := s.aliasAndLane(w, r)
	if !ok {
		return
	}

	build := s.stats.Build(r.Context(), alias, lane)
	s.writeResponse(w, &StatsResponse{Success: true, Data: build})
}

// handleRunes serves the recommended rune pages
func (s *Server) handleRunes(w http.ResponseWriter, r *http.Request) {
	alias, lane, ok := s.aliasAndLane(w, r)
	if !ok {
		return
	}

	pages := s.stats.RecommendedRunes(r.Context(), alias, lane)
	s.writeResponse(w, &StatsResponse{Success: true, Data: pages})
}

// handleSkills serves the recommended ability order
func (s *Server) handleSkills(w http.ResponseWriter, r *http.Request) {
	alias, lane, ok := s.aliasAndLane(w, r)
	if !ok {
		return
	}

	plan := s.stats.SkillPlan(r.Context(), alias, lane)
	s.writeResponse(w, &StatsResponse{Success: true, Data: plan})
}

// handleBestPick ranks answers to a group of enemies. enemies is a required
// comma-separated alias list; allies is an optional comma-separated list of
// numeric champion keys for the synergy adjustment.
func (s *Server) handleBestPick(w http.ResponseWriter, r *http.Request) {
	lane := r.URL.Query().Get("lane")
	enemies := splitList(r.URL.Query().Get("enemies"))
	if lane == "" || len(enemies) == 0 {
		s.writeErrorResponse(w, "Missing required fields: enemies, lane", http.StatusBadRequest)
		return
	}

	var allyKeys []int
	for _, raw := range splitList(r.URL.Query().Get("allies")) {
		key, err := strconv.Atoi(raw)
		if err != nil {
			s.writeErrorResponse(w, "Invalid ally key: "+raw, http.StatusBadRequest)
			return
		}
		allyKeys = append(allyKeys, key)
	}

	suggestions := s.stats.BestOverallPick(r.Context(), enemies, lane, allyKeys)
	s.writeResponse(w, &StatsResponse{Success: true, Data: suggestions})
}

// handleCacheReset drops every cached slice
func (s *Server) handleCacheReset(w http.ResponseWriter, r *http.Request) {
	s.stats.Reset()
	s.writeResponse(w, &StatsResponse{Success: true})
}

func splitList(raw string) []string {
	if raw == "" {
		return nil
	}
	parts := strings.Split(raw, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}
