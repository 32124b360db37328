// Package api serves proof generation, verification and eligibility checks over HTTP.
package api

import (
	"context"
	"errors"
	"net/http"

	"github.com/IronJam11/injective-hack/circuit"
	"github.com/IronJam11/injective-hack/eligibility"
	"github.com/IronJam11/injective-hack/proof"
	"github.com/IronJam11/injective-hack/proofstore"
	"github.com/IronJam11/injective-hack/types"
	"github.com/ethereum/go-ethereum/common/hexutil"
	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"
)

// Store is the persistence the server needs. *proofstore.Store implements it.
type Store interface {
	Save(ctx context.Context, p *proof.Proof, digest string, verified bool) (*proofstore.Record, error)
	Get(ctx context.Context, id string) (*proofstore.Record, error)
}

type Server struct {
	engine   *proof.Engine
	store    Store
	pipeline *eligibility.WeightedPipeline
}

// NewServer builds a server. A nil store disables persistence and GET /proof/:id.
func NewServer(engine *proof.Engine, store Store) *Server {
	if engine == nil {
		engine = proof.NewEngine()
	}
	return &Server{
		engine:   engine,
		store:    store,
		pipeline: eligibility.NewWeightedPipeline(engine),
	}
}

func (s *Server) Router() *gin.Engine {
	router := gin.New()
	router.Use(gin.Recovery())
	router.GET("/health", healthCheck)
	router.POST("/proof", s.generateProof)
	router.POST("/verify", s.verifyProof)
	router.GET("/proof/:id", s.getProof)
	router.POST("/eligibility", s.evaluateEligibility)
	router.POST("/eligibility/verify", s.checkEligibility)
	return router
}

func healthCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":  "ok",
		"message": "Health check passed",
	})
}

type ProofRequest struct {
	Circuit types.CircuitRaw `json:"circuit"`
	Witness types.WitnessRaw `json:"witness"`
}

type ProofResponse struct {
	ID       string         `json:"id,omitempty"`
	Digest   string         `json:"digest"`
	Proof    types.ProofRaw `json:"proof"`
	Binary   hexutil.Bytes  `json:"binary"`
	Verified bool           `json:"verified"`
}

type VerifyRequest struct {
	Circuit types.CircuitRaw `json:"circuit"`
	Proof   *types.ProofRaw  `json:"proof,omitempty"`
	Binary  hexutil.Bytes    `json:"binary,omitempty"`
	// Witness re-binds the circuit before verification. When absent the proof's own witness is
	// bound.
	Witness types.WitnessRaw `json:"witness,omitempty"`
}

type VerifyResponse struct {
	Valid  bool   `json:"valid"`
	Reason string `json:"reason,omitempty"`
}

type EligibilityResponse struct {
	Score string        `json:"score"`
	Proof hexutil.Bytes `json:"proof"`
}

type EligibilityCheckRequest struct {
	Stats  eligibility.Stats `json:"stats"`
	Amount uint64            `json:"amount"`
	Proof  hexutil.Bytes     `json:"proof"`
}

type EligibilityCheckResponse struct {
	Eligible bool `json:"eligible"`
}

func abort(c *gin.Context, status int, err error) {
	c.JSON(status, gin.H{"error": err.Error()})
}

func (s *Server) generateProof(c *gin.Context) {
	var req ProofRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abort(c, http.StatusBadRequest, err)
		return
	}
	cs, err := types.DeserializeCircuit(req.Circuit)
	if err != nil {
		abort(c, http.StatusBadRequest, err)
		return
	}
	w, err := types.DeserializeWitness(req.Witness)
	if err != nil {
		abort(c, http.StatusBadRequest, err)
		return
	}
	if err := cs.Bind(w); err != nil {
		abort(c, http.StatusBadRequest, err)
		return
	}
	digest, err := types.CircuitDigest(req.Circuit)
	if err != nil {
		abort(c, http.StatusInternalServerError, err)
		return
	}

	p := s.engine.Generate(cs, w)
	checkErr := s.engine.Check(p, cs)
	if errors.Is(checkErr, circuit.ErrUnsupportedOperation) {
		abort(c, http.StatusUnprocessableEntity, checkErr)
		return
	}
	binary, err := p.MarshalBinary()
	if err != nil {
		abort(c, http.StatusInternalServerError, err)
		return
	}

	resp := ProofResponse{
		Digest:   digest.Hex(),
		Proof:    types.FromProof(p),
		Binary:   binary,
		Verified: checkErr == nil,
	}
	if s.store != nil {
		rec, err := s.store.Save(c.Request.Context(), p, resp.Digest, resp.Verified)
		if err != nil {
			abort(c, http.StatusInternalServerError, err)
			return
		}
		resp.ID = rec.ID
	}
	log.Info().Str("digest", resp.Digest).Bool("verified", resp.Verified).Msg("proof generated")
	c.JSON(http.StatusOK, resp)
}

func (s *Server) verifyProof(c *gin.Context) {
	var req VerifyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abort(c, http.StatusBadRequest, err)
		return
	}
	cs, err := types.DeserializeCircuit(req.Circuit)
	if err != nil {
		abort(c, http.StatusBadRequest, err)
		return
	}

	var p *proof.Proof
	switch {
	case len(req.Binary) > 0:
		p, err = proof.Decode(req.Binary)
	case req.Proof != nil:
		p, err = req.Proof.ToProof()
	default:
		err = errors.New("proof or binary is required")
	}
	if err != nil {
		abort(c, http.StatusBadRequest, err)
		return
	}

	if req.Witness != nil {
		w, err := types.DeserializeWitness(req.Witness)
		if err == nil {
			err = cs.Bind(w)
		}
		if err != nil {
			abort(c, http.StatusBadRequest, err)
			return
		}
	} else if err := cs.BindBigInts(p.Witness); err != nil {
		abort(c, http.StatusBadRequest, err)
		return
	}

	err = s.engine.Check(p, cs)
	if errors.Is(err, circuit.ErrUnsupportedOperation) {
		abort(c, http.StatusUnprocessableEntity, err)
		return
	}
	resp := VerifyResponse{Valid: err == nil}
	if err != nil {
		resp.Reason = err.Error()
	}
	c.JSON(http.StatusOK, resp)
}

func (s *Server) getProof(c *gin.Context) {
	if s.store == nil {
		abort(c, http.StatusNotFound, proofstore.ErrNotFound)
		return
	}
	rec, err := s.store.Get(c.Request.Context(), c.Param("id"))
	if errors.Is(err, proofstore.ErrNotFound) {
		abort(c, http.StatusNotFound, err)
		return
	}
	if err != nil {
		abort(c, http.StatusInternalServerError, err)
		return
	}
	p, err := rec.Proof()
	if err != nil {
		abort(c, http.StatusInternalServerError, err)
		return
	}
	c.JSON(http.StatusOK, ProofResponse{
		ID:       rec.ID,
		Digest:   rec.CircuitDigest,
		Proof:    types.FromProof(p),
		Binary:   rec.Payload,
		Verified: rec.Verified,
	})
}

func (s *Server) evaluateEligibility(c *gin.Context) {
	var stats eligibility.Stats
	if err := c.ShouldBindJSON(&stats); err != nil {
		abort(c, http.StatusBadRequest, err)
		return
	}
	score, data, err := s.pipeline.Evaluate(stats)
	if err != nil {
		abort(c, http.StatusInternalServerError, err)
		return
	}
	c.JSON(http.StatusOK, EligibilityResponse{Score: score.String(), Proof: data})
}

func (s *Server) checkEligibility(c *gin.Context) {
	var req EligibilityCheckRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abort(c, http.StatusBadRequest, err)
		return
	}
	ok, err := s.pipeline.Check(req.Stats, req.Amount, req.Proof)
	if errors.Is(err, eligibility.ErrMalformedProof) {
		abort(c, http.StatusBadRequest, err)
		return
	}
	if err != nil {
		abort(c, http.StatusUnprocessableEntity, err)
		return
	}
	c.JSON(http.StatusOK, EligibilityCheckResponse{Eligible: ok})
}
