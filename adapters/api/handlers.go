package api

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"pointconfig/app"
	"pointconfig/domain/core"
	"pointconfig/domain/geometry"
	"pointconfig/internal/errors"
	"pointconfig/internal/incidence"
	"pointconfig/internal/scoring"
)

type scoreRequest struct {
	Prime int    `json:"prime" validate:"required,gt=2"`
	Word  string `json:"word" validate:"required"`
}

type batchRequest struct {
	Prime int      `json:"prime" validate:"required,gt=2"`
	Words []string `json:"words" validate:"required,min=1,max=10000"`
}

type batchResponse struct {
	Scores []int `json:"scores"`
}

type equidistributionRequest struct {
	Prime     int   `json:"prime" validate:"required,gt=1"`
	Dimension int   `json:"dimension" validate:"required,gte=1,lte=6"`
	Points    []int `json:"points" validate:"required"`
}

type equidistributionResponse struct {
	Directions [][]int `json:"directions"`
	Count      int     `json:"count"`
}

type interceptRequest struct {
	Prime     int   `json:"prime" validate:"required,gt=1"`
	Point     []int `json:"point" validate:"required,min=1,max=8"`
	Direction []int `json:"direction" validate:"required,min=1,max=8"`
}

type interceptResponse struct {
	Point          []int `json:"point"`
	PointIndex     int   `json:"point_index"`
	Direction      []int `json:"direction"`
	DirectionIndex int   `json:"direction_index"`
	PlaneIntercept int   `json:"plane_intercept"`
	LineIntercept  []int `json:"line_intercept"`
	LineIndex      int   `json:"line_index"`
}

type errorResponse struct {
	Error string `json:"error"`
	Code  string `json:"code"`
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// handleScore scores one word
func (s *Server) handleScore(w http.ResponseWriter, r *http.Request) {
	var req scoreRequest
	if !s.decode(w, r, &req) {
		return
	}
	scorer, ok := s.scorerFor(w, req.Prime)
	if !ok {
		return
	}
	word, err := scoring.ParseWord(req.Word)
	if err != nil {
		s.writeError(w, err)
		return
	}
	result, err := scorer.Evaluate(word)
	if err != nil {
		s.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, result)
}

// handleScoreBatch scores many words in parallel
func (s *Server) handleScoreBatch(w http.ResponseWriter, r *http.Request) {
	var req batchRequest
	if !s.decode(w, r, &req) {
		return
	}
	scorer, ok := s.scorerFor(w, req.Prime)
	if !ok {
		return
	}
	words := make([]scoring.Word, len(req.Words))
	for i, text := range req.Words {
		word, err := scoring.ParseWord(text)
		if err != nil {
			s.writeError(w, err)
			return
		}
		words[i] = word
	}
	scores, err := scorer.ScoreWords(r.Context(), words)
	if err != nil {
		s.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, batchResponse{Scores: scores})
}

// handleThresholds lists the cumulative stage boundaries of a prime
func (s *Server) handleThresholds(w http.ResponseWriter, r *http.Request) {
	prime, err := strconv.Atoi(chi.URLParam(r, "prime"))
	if err != nil {
		s.writeError(w, core.NewValidationError("prime", "must be an integer"))
		return
	}
	if err := geometry.CheckPrimeDim(prime, scoring.Dimension); err != nil {
		s.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, scoring.Thresholds(prime))
}

// handleEquidistribution lists the directions along which a point set is
// spread evenly over the hyperplanes
func (s *Server) handleEquidistribution(w http.ResponseWriter, r *http.Request) {
	var req equidistributionRequest
	if !s.decode(w, r, &req) {
		return
	}
	space, err := geometry.NewSpace(req.Prime, req.Dimension)
	if err != nil {
		s.writeError(w, err)
		return
	}
	if space.TotalPoints() > s.deps.MaxPrime*s.deps.MaxPrime*s.deps.MaxPrime {
		s.writeError(w, core.NewValidationError("dimension", "space too large"))
		return
	}
	indices, err := incidence.EquidistributedDirections(s.deps.Cache, space, req.Points)
	if err != nil {
		s.writeError(w, err)
		return
	}

	directions := make([][]int, len(indices))
	for i, d := range indices {
		if directions[i], err = geometry.IndexToDirection(space, d); err != nil {
			s.writeError(w, err)
			return
		}
	}
	writeJSON(w, http.StatusOK, equidistributionResponse{Directions: directions, Count: len(directions)})
}

func (s *Server) handleRunExamples(w http.ResponseWriter, r *http.Request) {
	runID, err := core.ParseRunID(chi.URLParam(r, "id"))
	if err != nil {
		s.writeError(w, err)
		return
	}
	if s.deps.Examples == nil {
		s.writeError(w, core.NewNotFoundError("run", runID.String()))
		return
	}
	examples, err := s.deps.Examples.List(r.Context(), runID)
	if err != nil {
		s.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, examples)
}

func (s *Server) handleRunReport(w http.ResponseWriter, r *http.Request) {
	runID, err := core.ParseRunID(chi.URLParam(r, "id"))
	if err != nil {
		s.writeError(w, err)
		return
	}
	var stage *scoring.Stage
	if name := r.URL.Query().Get("stage"); name != "" {
		stage = new(scoring.Stage)
		if err := stage.UnmarshalText([]byte(name)); err != nil {
			s.writeError(w, core.NewValidationError("stage", err.Error()))
			return
		}
	}
	reports, err := s.examine.ExamineRun(r.Context(), runID)
	if err != nil {
		s.writeError(w, err)
		return
	}
	if stage != nil {
		reports = app.FilterReports(reports, *stage)
	}
	writeJSON(w, http.StatusOK, reports)
}

// handleIntercepts locates the hyperplane and the line through a point along
// a direction, given as coordinate vectors of any dimension
func (s *Server) handleIntercepts(w http.ResponseWriter, r *http.Request) {
	var req interceptRequest
	if !s.decode(w, r, &req) {
		return
	}
	point, direction, err := geometry.CheckPrimeDimPointDir(req.Prime, len(req.Point), req.Point, req.Direction)
	if err != nil {
		s.writeError(w, err)
		return
	}
	normalized, err := geometry.Normalize(req.Prime, direction)
	if err != nil {
		s.writeError(w, err)
		return
	}
	line, err := geometry.LineIntercept(req.Prime, point, normalized)
	if err != nil {
		s.writeError(w, err)
		return
	}

	space := geometry.Space{Prime: req.Prime, Dimension: len(point)}
	writeJSON(w, http.StatusOK, interceptResponse{
		Point:          point,
		PointIndex:     geometry.PointToIndex(space, point),
		Direction:      normalized,
		DirectionIndex: geometry.DirectionToIndex(space, normalized),
		PlaneIntercept: geometry.PlaneIntercept(req.Prime, point, normalized),
		LineIntercept:  line,
		LineIndex:      geometry.InterceptToIndex(space, line),
	})
}

func (s *Server) decode(w http.ResponseWriter, r *http.Request, dst any) bool {
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		s.writeError(w, core.NewValidationError("body", err.Error()))
		return false
	}
	if err := s.validate.Struct(dst); err != nil {
		s.writeError(w, core.NewValidationError("body", err.Error()))
		return false
	}
	return true
}

func (s *Server) scorerFor(w http.ResponseWriter, prime int) (*scoring.Scorer, bool) {
	if prime > s.deps.MaxPrime {
		s.writeError(w, core.NewValidationError("prime", fmt.Sprintf("must not exceed %d", s.deps.MaxPrime)))
		return nil, false
	}
	scorer, err := s.scorer(prime)
	if err != nil {
		s.writeError(w, err)
		return nil, false
	}
	return scorer, true
}

func (s *Server) writeError(w http.ResponseWriter, err error) {
	classified := errors.Classify(err)
	code := errors.GetCode(classified)

	status := http.StatusInternalServerError
	switch code {
	case errors.CodeValidationError, errors.CodeInvalidInput:
		status = http.StatusBadRequest
	case errors.CodeNotFound:
		status = http.StatusNotFound
	default:
		s.logger.Error("request failed: %v", err)
	}
	writeJSON(w, status, errorResponse{Error: err.Error(), Code: code})
}

func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(body)
}
