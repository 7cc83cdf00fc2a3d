// Package httpd exposes the royalty ledger over HTTP for its external
// actors: collection contracts reporting sales and forwarding funds, the
// off-chain service actor publishing distribution roots, admins, and end
// users claiming royalties.
package httpd

import (
	"encoding/hex"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/bsv-blockchain/go-sdk/chainhash"
	"github.com/gorilla/mux"
	"go.uber.org/zap"

	"github.com/openroyalty/libroyalty-go/ledger"
	"github.com/openroyalty/libroyalty-go/types"
)

// Server is the HTTP front end over a Ledger. Mutating requests carry a
// bearer API key that resolves to the actor address the ledger sees as the
// caller; the ledger itself decides what that actor may do.
type Server struct {
	ledger *ledger.Ledger
	log    *zap.Logger
	actors map[string]types.Address
	router *mux.Router
}

// NewServer wires the routes. actors maps bearer keys to actor addresses.
func NewServer(l *ledger.Ledger, log *zap.Logger, actors map[string]types.Address) *Server {
	s := &Server{
		ledger: l,
		log:    log,
		actors: actors,
		router: mux.NewRouter(),
	}
	s.routes()
	return s
}

// ServeHTTP implements http.Handler.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

func (s *Server) routes() {
	r := s.router

	// Role administration.
	r.HandleFunc("/roles/{role}/{account}", s.handleGrantRole).Methods("PUT")
	r.HandleFunc("/roles/{role}/{account}", s.handleRevokeRole).Methods("DELETE")

	// Registry administration.
	r.HandleFunc("/collections", s.handleRegisterCollection).Methods("POST")
	r.HandleFunc("/collections/{collection}", s.handleGetConfig).Methods("GET")
	r.HandleFunc("/collections/{collection}/creator", s.handleUpdateCreator).Methods("PUT")

	// Attribution pipeline.
	r.HandleFunc("/collections/{collection}/royalty-data", s.handleBatchAttribution).Methods("POST")

	// Deposits and manual accrual.
	r.HandleFunc("/collections/{collection}/deposits", s.handleDeposit).Methods("POST")
	r.HandleFunc("/collections/{collection}/deposits/token", s.handleTokenDeposit).Methods("POST")
	r.HandleFunc("/collections/{collection}/accruals", s.handleUpdateAccrued).Methods("POST")

	// Off-chain distribution tooling.
	r.HandleFunc("/merkle/tree", s.handleBuildTree).Methods("POST")

	// Pull claims and Merkle claims.
	r.HandleFunc("/collections/{collection}/claims", s.handleClaim).Methods("POST")
	r.HandleFunc("/collections/{collection}/merkle-root", s.handleSubmitRoot).Methods("POST")
	r.HandleFunc("/collections/{collection}/merkle-root/token", s.handleSubmitTokenRoot).Methods("POST")
	r.HandleFunc("/collections/{collection}/merkle-claims", s.handleMerkleClaim).Methods("POST")
	r.HandleFunc("/collections/{collection}/merkle-claims/token", s.handleTokenMerkleClaim).Methods("POST")

	// Oracle rate limiter.
	r.HandleFunc("/collections/{collection}/oracle-interval", s.handleSetOracleInterval).Methods("PUT")
	r.HandleFunc("/collections/{collection}/oracle-update", s.handleOracleUpdate).Methods("POST")

	// Manual sync hooks.
	r.HandleFunc("/collections/{collection}/tokens/{tokenId}/holder", s.handleUpdateHolder).Methods("PUT")
	r.HandleFunc("/collections/{collection}/tokens/{tokenId}/minter", s.handleSetMinter).Methods("PUT")

	// Read-only state surface.
	r.HandleFunc("/collections/{collection}/analytics", s.handleGetAnalytics).Methods("GET")
	r.HandleFunc("/collections/{collection}/tokens/{tokenId}", s.handleGetTokenRecord).Methods("GET")
	r.HandleFunc("/collections/{collection}/pool", s.handleGetPool).Methods("GET")
	r.HandleFunc("/collections/{collection}/claimable/{recipient}", s.handleGetClaimable).Methods("GET")
	r.HandleFunc("/collections/{collection}/distribution", s.handleGetDistribution).Methods("GET")
	r.HandleFunc("/totals", s.handleGetTotals).Methods("GET")
	r.HandleFunc("/healthz", s.handleHealth).Methods("GET")
}

// caller resolves the actor address behind the request's bearer key.
func (s *Server) caller(r *http.Request) (types.Address, error) {
	auth := r.Header.Get("Authorization")
	const prefix = "Bearer "
	if len(auth) <= len(prefix) || auth[:len(prefix)] != prefix {
		return types.ZeroAddress, errUnauthorized
	}
	actor, ok := s.actors[auth[len(prefix):]]
	if !ok {
		return types.ZeroAddress, errUnauthorized
	}
	return actor, nil
}

var errUnauthorized = errors.New("httpd: missing or unknown api key")

func (s *Server) writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		s.log.Error("encode response", zap.Error(err))
	}
}

func (s *Server) writeError(w http.ResponseWriter, r *http.Request, err error) {
	status := statusFor(err)
	if status >= http.StatusInternalServerError {
		s.log.Error("request failed", zap.String("path", r.URL.Path), zap.Error(err))
	} else {
		s.log.Info("request rejected", zap.String("path", r.URL.Path), zap.Error(err))
	}
	s.writeJSON(w, status, map[string]string{"error": err.Error()})
}

// pathAddress parses an address path variable.
func pathAddress(r *http.Request, name string) (types.Address, error) {
	return types.ParseAddress(mux.Vars(r)[name])
}

// parseHash decodes a 32-byte hex hash (roots, proof nodes, tx hashes).
// No byte reversal: the wire form is the raw digest.
func parseHash(s string) (chainhash.Hash, error) {
	var h chainhash.Hash
	raw, err := hex.DecodeString(s)
	if err != nil {
		return h, err
	}
	if len(raw) != chainhash.HashSize {
		return h, errors.New("httpd: hash must be 32 bytes")
	}
	copy(h[:], raw)
	return h, nil
}

func hashHex(h chainhash.Hash) string {
	return hex.EncodeToString(h[:])
}

func parseProof(nodes []string) ([]chainhash.Hash, error) {
	proof := make([]chainhash.Hash, len(nodes))
	for i, n := range nodes {
		h, err := parseHash(n)
		if err != nil {
			return nil, err
		}
		proof[i] = h
	}
	return proof, nil
}
