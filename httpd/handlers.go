package httpd

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"github.com/bsv-blockchain/go-sdk/chainhash"
	"github.com/gorilla/mux"
	"go.uber.org/zap"

	"github.com/openroyalty/libroyalty-go/ledger"
	"github.com/openroyalty/libroyalty-go/merkle"
	"github.com/openroyalty/libroyalty-go/types"
)

// errBadRequest wraps malformed request bodies and path parameters.
var errBadRequest = errors.New("httpd: bad request")

func badRequest(err error) error {
	return fmt.Errorf("%w: %v", errBadRequest, err)
}

func (s *Server) decode(r *http.Request, v interface{}) error {
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	if err := dec.Decode(v); err != nil {
		return badRequest(err)
	}
	return nil
}

func pathTokenID(r *http.Request) (uint64, error) {
	id, err := strconv.ParseUint(mux.Vars(r)["tokenId"], 10, 64)
	if err != nil {
		return 0, badRequest(err)
	}
	return id, nil
}

// --- role administration ---

func (s *Server) roleChange(r *http.Request) (caller, account types.Address, role string, err error) {
	caller, err = s.caller(r)
	if err != nil {
		return
	}
	account, err = pathAddress(r, "account")
	if err != nil {
		err = badRequest(err)
		return
	}
	role = mux.Vars(r)["role"]
	if role != "admin" && role != "service" {
		err = badRequest(fmt.Errorf("unknown role %q", role))
	}
	return
}

func (s *Server) handleGrantRole(w http.ResponseWriter, r *http.Request) {
	caller, account, role, err := s.roleChange(r)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	auth := s.ledger.Authorizer()
	if role == "admin" {
		err = auth.GrantAdmin(caller, account)
	} else {
		err = auth.GrantService(caller, account)
	}
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	s.log.Info("role granted",
		zap.String("role", role),
		zap.String("account", account.String()))
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleRevokeRole(w http.ResponseWriter, r *http.Request) {
	caller, account, role, err := s.roleChange(r)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	auth := s.ledger.Authorizer()
	if role == "admin" {
		err = auth.RevokeAdmin(caller, account)
	} else {
		err = auth.RevokeService(caller, account)
	}
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	s.log.Info("role revoked",
		zap.String("role", role),
		zap.String("account", account.String()))
	w.WriteHeader(http.StatusNoContent)
}

// --- registry ---

type registerRequest struct {
	Collection      string `json:"collection"`
	FeeNumerator    uint16 `json:"fee_numerator"`
	MinterShareBps  uint16 `json:"minter_share_bps"`
	CreatorShareBps uint16 `json:"creator_share_bps"`
	Creator         string `json:"creator"`
}

func (s *Server) handleRegisterCollection(w http.ResponseWriter, r *http.Request) {
	caller, err := s.caller(r)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	var req registerRequest
	if err := s.decode(r, &req); err != nil {
		s.writeError(w, r, err)
		return
	}
	collection, err := types.ParseAddress(req.Collection)
	if err != nil {
		s.writeError(w, r, badRequest(err))
		return
	}
	creator, err := types.ParseAddress(req.Creator)
	if err != nil {
		s.writeError(w, r, badRequest(err))
		return
	}
	cfg := ledger.CollectionConfig{
		FeeNumerator:    req.FeeNumerator,
		MinterShareBps:  req.MinterShareBps,
		CreatorShareBps: req.CreatorShareBps,
		Creator:         creator,
	}
	if err := s.ledger.RegisterCollection(caller, collection, cfg); err != nil {
		s.writeError(w, r, err)
		return
	}
	s.log.Info("collection registered",
		zap.String("collection", collection.String()),
		zap.Uint16("fee_numerator", req.FeeNumerator))
	s.writeJSON(w, http.StatusCreated, configResponse(collection, cfg))
}

type configPayload struct {
	Collection      string `json:"collection"`
	FeeNumerator    uint16 `json:"fee_numerator"`
	MinterShareBps  uint16 `json:"minter_share_bps"`
	CreatorShareBps uint16 `json:"creator_share_bps"`
	Creator         string `json:"creator"`
}

func configResponse(collection types.Address, cfg ledger.CollectionConfig) configPayload {
	return configPayload{
		Collection:      collection.String(),
		FeeNumerator:    cfg.FeeNumerator,
		MinterShareBps:  cfg.MinterShareBps,
		CreatorShareBps: cfg.CreatorShareBps,
		Creator:         cfg.Creator.String(),
	}
}

func (s *Server) handleGetConfig(w http.ResponseWriter, r *http.Request) {
	collection, err := pathAddress(r, "collection")
	if err != nil {
		s.writeError(w, r, badRequest(err))
		return
	}
	cfg, err := s.ledger.Config(collection)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	s.writeJSON(w, http.StatusOK, configResponse(collection, cfg))
}

func (s *Server) handleUpdateCreator(w http.ResponseWriter, r *http.Request) {
	caller, err := s.caller(r)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	collection, err := pathAddress(r, "collection")
	if err != nil {
		s.writeError(w, r, badRequest(err))
		return
	}
	var req struct {
		Creator string `json:"creator"`
	}
	if err := s.decode(r, &req); err != nil {
		s.writeError(w, r, err)
		return
	}
	creator, err := types.ParseAddress(req.Creator)
	if err != nil {
		s.writeError(w, r, badRequest(err))
		return
	}
	if err := s.ledger.UpdateCreatorAddress(caller, collection, creator); err != nil {
		s.writeError(w, r, err)
		return
	}
	s.log.Info("creator updated",
		zap.String("collection", collection.String()),
		zap.String("creator", creator.String()))
	w.WriteHeader(http.StatusNoContent)
}

// --- attribution ---

type saleRecord struct {
	TokenID   uint64 `json:"token_id"`
	Minter    string `json:"minter"`
	SalePrice uint64 `json:"sale_price"`
	TxHash    string `json:"tx_hash"`
}

type attributionPayload struct {
	TokenID      uint64 `json:"token_id"`
	Minter       string `json:"minter"`
	Creator      string `json:"creator"`
	SalePrice    uint64 `json:"sale_price"`
	Royalty      uint64 `json:"royalty"`
	MinterShare  uint64 `json:"minter_share"`
	CreatorShare uint64 `json:"creator_share"`
	TxHash       string `json:"tx_hash"`
}

func (s *Server) handleBatchAttribution(w http.ResponseWriter, r *http.Request) {
	caller, err := s.caller(r)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	collection, err := pathAddress(r, "collection")
	if err != nil {
		s.writeError(w, r, badRequest(err))
		return
	}
	var req struct {
		Sales []saleRecord `json:"sales"`
	}
	if err := s.decode(r, &req); err != nil {
		s.writeError(w, r, err)
		return
	}

	n := len(req.Sales)
	tokenIDs := make([]uint64, n)
	minters := make([]types.Address, n)
	salePrices := make([]uint64, n)
	txHashes := make([]chainhash.Hash, n)
	for i, sale := range req.Sales {
		minter, err := types.ParseAddress(sale.Minter)
		if err != nil {
			s.writeError(w, r, badRequest(err))
			return
		}
		txHash, err := parseHash(sale.TxHash)
		if err != nil {
			s.writeError(w, r, badRequest(err))
			return
		}
		tokenIDs[i] = sale.TokenID
		minters[i] = minter
		salePrices[i] = sale.SalePrice
		txHashes[i] = txHash
	}

	records, err := s.ledger.BatchUpdateRoyaltyData(caller, collection, tokenIDs, minters, salePrices, txHashes)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	s.log.Info("royalty data ingested",
		zap.String("collection", collection.String()),
		zap.Int("sales", len(records)))

	out := make([]attributionPayload, len(records))
	for i, rec := range records {
		out[i] = attributionPayload{
			TokenID:      rec.TokenID,
			Minter:       rec.Minter.String(),
			Creator:      rec.Creator.String(),
			SalePrice:    rec.SalePrice,
			Royalty:      rec.Royalty,
			MinterShare:  rec.MinterShare,
			CreatorShare: rec.CreatorShare,
			TxHash:       hashHex(rec.TxHash),
		}
	}
	s.writeJSON(w, http.StatusOK, map[string]interface{}{"attributions": out})
}

// --- deposits and accrual ---

func (s *Server) handleDeposit(w http.ResponseWriter, r *http.Request) {
	collection, err := pathAddress(r, "collection")
	if err != nil {
		s.writeError(w, r, badRequest(err))
		return
	}
	var req struct {
		Amount uint64 `json:"amount"`
	}
	if err := s.decode(r, &req); err != nil {
		s.writeError(w, r, err)
		return
	}
	if err := s.ledger.AddCollectionRoyalties(collection, req.Amount); err != nil {
		s.writeError(w, r, err)
		return
	}
	s.log.Info("royalties deposited",
		zap.String("collection", collection.String()),
		zap.Uint64("amount", req.Amount))
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleTokenDeposit(w http.ResponseWriter, r *http.Request) {
	caller, err := s.caller(r)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	collection, err := pathAddress(r, "collection")
	if err != nil {
		s.writeError(w, r, badRequest(err))
		return
	}
	var req struct {
		Token  string `json:"token"`
		Amount uint64 `json:"amount"`
	}
	if err := s.decode(r, &req); err != nil {
		s.writeError(w, r, err)
		return
	}
	token, err := types.ParseAddress(req.Token)
	if err != nil {
		s.writeError(w, r, badRequest(err))
		return
	}
	if err := s.ledger.AddCollectionTokenRoyalties(r.Context(), caller, collection, token, req.Amount); err != nil {
		s.writeError(w, r, err)
		return
	}
	s.log.Info("token royalties deposited",
		zap.String("collection", collection.String()),
		zap.String("token", token.String()),
		zap.Uint64("amount", req.Amount))
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleUpdateAccrued(w http.ResponseWriter, r *http.Request) {
	caller, err := s.caller(r)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	collection, err := pathAddress(r, "collection")
	if err != nil {
		s.writeError(w, r, badRequest(err))
		return
	}
	var req struct {
		Recipients []string `json:"recipients"`
		Amounts    []uint64 `json:"amounts"`
	}
	if err := s.decode(r, &req); err != nil {
		s.writeError(w, r, err)
		return
	}
	recipients := make([]types.Address, len(req.Recipients))
	for i, rec := range req.Recipients {
		addr, err := types.ParseAddress(rec)
		if err != nil {
			s.writeError(w, r, badRequest(err))
			return
		}
		recipients[i] = addr
	}
	if err := s.ledger.UpdateAccruedRoyalties(caller, collection, recipients, req.Amounts); err != nil {
		s.writeError(w, r, err)
		return
	}
	s.log.Info("accruals recorded",
		zap.String("collection", collection.String()),
		zap.Int("recipients", len(recipients)))
	w.WriteHeader(http.StatusNoContent)
}

// --- distribution tooling ---

type distributionEntry struct {
	Recipient string `json:"recipient"`
	Amount    uint64 `json:"amount"`
}

// handleBuildTree computes a distribution tree for the service actor: given
// the recipient/amount entries (and a token address for token-currency
// distributions), it returns the root to submit and one proof per entry.
func (s *Server) handleBuildTree(w http.ResponseWriter, r *http.Request) {
	if _, err := s.caller(r); err != nil {
		s.writeError(w, r, err)
		return
	}
	var req struct {
		Token   string              `json:"token"`
		Entries []distributionEntry `json:"entries"`
	}
	if err := s.decode(r, &req); err != nil {
		s.writeError(w, r, err)
		return
	}

	var token types.Address
	if req.Token != "" {
		var err error
		token, err = types.ParseAddress(req.Token)
		if err != nil {
			s.writeError(w, r, badRequest(err))
			return
		}
	}

	leaves := make([]chainhash.Hash, len(req.Entries))
	total := uint64(0)
	for i, entry := range req.Entries {
		recipient, err := types.ParseAddress(entry.Recipient)
		if err != nil {
			s.writeError(w, r, badRequest(err))
			return
		}
		if req.Token != "" {
			leaves[i] = merkle.LeafToken(recipient, token, entry.Amount)
		} else {
			leaves[i] = merkle.LeafNative(recipient, entry.Amount)
		}
		sum := total + entry.Amount
		if sum < total {
			s.writeError(w, r, badRequest(errors.New("total amount overflows uint64")))
			return
		}
		total = sum
	}

	tree, err := merkle.NewTree(leaves)
	if err != nil {
		s.writeError(w, r, badRequest(err))
		return
	}

	proofs := make([][]string, len(leaves))
	for i := range leaves {
		proof, err := tree.Proof(i)
		if err != nil {
			s.writeError(w, r, err)
			return
		}
		hexProof := make([]string, len(proof))
		for j, p := range proof {
			hexProof[j] = hashHex(p)
		}
		proofs[i] = hexProof
	}

	s.writeJSON(w, http.StatusOK, map[string]interface{}{
		"root":         hashHex(tree.Root()),
		"total_amount": total,
		"proofs":       proofs,
	})
}

// --- pull claims ---

func (s *Server) handleClaim(w http.ResponseWriter, r *http.Request) {
	caller, err := s.caller(r)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	collection, err := pathAddress(r, "collection")
	if err != nil {
		s.writeError(w, r, badRequest(err))
		return
	}
	var req struct {
		Amount uint64 `json:"amount"`
	}
	if err := s.decode(r, &req); err != nil {
		s.writeError(w, r, err)
		return
	}
	if err := s.ledger.ClaimRoyalties(r.Context(), caller, collection, req.Amount); err != nil {
		s.writeError(w, r, err)
		return
	}
	s.log.Info("royalties claimed",
		zap.String("collection", collection.String()),
		zap.String("recipient", caller.String()),
		zap.Uint64("amount", req.Amount))
	w.WriteHeader(http.StatusNoContent)
}

// --- merkle distributions ---

func (s *Server) handleSubmitRoot(w http.ResponseWriter, r *http.Request) {
	caller, err := s.caller(r)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	collection, err := pathAddress(r, "collection")
	if err != nil {
		s.writeError(w, r, badRequest(err))
		return
	}
	var req struct {
		Root        string `json:"root"`
		TotalAmount uint64 `json:"total_amount"`
	}
	if err := s.decode(r, &req); err != nil {
		s.writeError(w, r, err)
		return
	}
	root, err := parseHash(req.Root)
	if err != nil {
		s.writeError(w, r, badRequest(err))
		return
	}
	if err := s.ledger.SubmitRoyaltyMerkleRoot(caller, collection, root, req.TotalAmount); err != nil {
		s.writeError(w, r, err)
		return
	}
	s.log.Info("merkle root published",
		zap.String("collection", collection.String()),
		zap.String("root", hashHex(root)),
		zap.Uint64("total", req.TotalAmount))
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleSubmitTokenRoot(w http.ResponseWriter, r *http.Request) {
	caller, err := s.caller(r)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	collection, err := pathAddress(r, "collection")
	if err != nil {
		s.writeError(w, r, badRequest(err))
		return
	}
	var req struct {
		Token       string `json:"token"`
		Root        string `json:"root"`
		TotalAmount uint64 `json:"total_amount"`
	}
	if err := s.decode(r, &req); err != nil {
		s.writeError(w, r, err)
		return
	}
	token, err := types.ParseAddress(req.Token)
	if err != nil {
		s.writeError(w, r, badRequest(err))
		return
	}
	root, err := parseHash(req.Root)
	if err != nil {
		s.writeError(w, r, badRequest(err))
		return
	}
	if err := s.ledger.SubmitTokenRoyaltyMerkleRoot(caller, collection, token, root, req.TotalAmount); err != nil {
		s.writeError(w, r, err)
		return
	}
	s.log.Info("token merkle root published",
		zap.String("collection", collection.String()),
		zap.String("token", token.String()),
		zap.String("root", hashHex(root)),
		zap.Uint64("total", req.TotalAmount))
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleMerkleClaim(w http.ResponseWriter, r *http.Request) {
	collection, err := pathAddress(r, "collection")
	if err != nil {
		s.writeError(w, r, badRequest(err))
		return
	}
	var req struct {
		Recipient string   `json:"recipient"`
		Amount    uint64   `json:"amount"`
		Proof     []string `json:"proof"`
	}
	if err := s.decode(r, &req); err != nil {
		s.writeError(w, r, err)
		return
	}
	recipient, err := types.ParseAddress(req.Recipient)
	if err != nil {
		s.writeError(w, r, badRequest(err))
		return
	}
	proof, err := parseProof(req.Proof)
	if err != nil {
		s.writeError(w, r, badRequest(err))
		return
	}
	if err := s.ledger.ClaimRoyaltiesMerkle(r.Context(), collection, recipient, req.Amount, proof); err != nil {
		s.writeError(w, r, err)
		return
	}
	s.log.Info("merkle claim paid",
		zap.String("collection", collection.String()),
		zap.String("recipient", recipient.String()),
		zap.Uint64("amount", req.Amount))
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleTokenMerkleClaim(w http.ResponseWriter, r *http.Request) {
	collection, err := pathAddress(r, "collection")
	if err != nil {
		s.writeError(w, r, badRequest(err))
		return
	}
	var req struct {
		Recipient string   `json:"recipient"`
		Token     string   `json:"token"`
		Amount    uint64   `json:"amount"`
		Proof     []string `json:"proof"`
	}
	if err := s.decode(r, &req); err != nil {
		s.writeError(w, r, err)
		return
	}
	recipient, err := types.ParseAddress(req.Recipient)
	if err != nil {
		s.writeError(w, r, badRequest(err))
		return
	}
	token, err := types.ParseAddress(req.Token)
	if err != nil {
		s.writeError(w, r, badRequest(err))
		return
	}
	proof, err := parseProof(req.Proof)
	if err != nil {
		s.writeError(w, r, badRequest(err))
		return
	}
	if err := s.ledger.ClaimTokenRoyaltiesMerkle(r.Context(), collection, recipient, token, req.Amount, proof); err != nil {
		s.writeError(w, r, err)
		return
	}
	s.log.Info("token merkle claim paid",
		zap.String("collection", collection.String()),
		zap.String("token", token.String()),
		zap.String("recipient", recipient.String()),
		zap.Uint64("amount", req.Amount))
	w.WriteHeader(http.StatusNoContent)
}

// --- oracle ---

func (s *Server) handleSetOracleInterval(w http.ResponseWriter, r *http.Request) {
	caller, err := s.caller(r)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	collection, err := pathAddress(r, "collection")
	if err != nil {
		s.writeError(w, r, badRequest(err))
		return
	}
	var req struct {
		MinBlockInterval uint64 `json:"min_block_interval"`
	}
	if err := s.decode(r, &req); err != nil {
		s.writeError(w, r, err)
		return
	}
	if err := s.ledger.SetOracleUpdateMinBlockInterval(caller, collection, req.MinBlockInterval); err != nil {
		s.writeError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// handleOracleUpdate is deliberately unauthenticated: the rate limiter, not
// an actor role, gates the refresh.
func (s *Server) handleOracleUpdate(w http.ResponseWriter, r *http.Request) {
	collection, err := pathAddress(r, "collection")
	if err != nil {
		s.writeError(w, r, badRequest(err))
		return
	}
	if err := s.ledger.UpdateRoyaltyDataViaOracle(collection); err != nil {
		s.writeError(w, r, err)
		return
	}
	s.log.Info("oracle refresh", zap.String("collection", collection.String()))
	w.WriteHeader(http.StatusNoContent)
}

// --- sync hooks ---

func (s *Server) handleUpdateHolder(w http.ResponseWriter, r *http.Request) {
	caller, err := s.caller(r)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	collection, err := pathAddress(r, "collection")
	if err != nil {
		s.writeError(w, r, badRequest(err))
		return
	}
	tokenID, err := pathTokenID(r)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	var req struct {
		Holder string `json:"holder"`
	}
	if err := s.decode(r, &req); err != nil {
		s.writeError(w, r, err)
		return
	}
	holder, err := types.ParseAddress(req.Holder)
	if err != nil {
		s.writeError(w, r, badRequest(err))
		return
	}
	if err := s.ledger.UpdateTokenHolder(caller, collection, tokenID, holder); err != nil {
		s.writeError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleSetMinter(w http.ResponseWriter, r *http.Request) {
	caller, err := s.caller(r)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	collection, err := pathAddress(r, "collection")
	if err != nil {
		s.writeError(w, r, badRequest(err))
		return
	}
	tokenID, err := pathTokenID(r)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	var req struct {
		Minter string `json:"minter"`
	}
	if err := s.decode(r, &req); err != nil {
		s.writeError(w, r, err)
		return
	}
	minter, err := types.ParseAddress(req.Minter)
	if err != nil {
		s.writeError(w, r, badRequest(err))
		return
	}
	if err := s.ledger.SetTokenMinter(caller, collection, tokenID, minter); err != nil {
		s.writeError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// --- read-only views ---

func (s *Server) handleGetAnalytics(w http.ResponseWriter, r *http.Request) {
	collection, err := pathAddress(r, "collection")
	if err != nil {
		s.writeError(w, r, badRequest(err))
		return
	}
	a, err := s.ledger.Analytics(collection)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	tokenCollected := make(map[string]uint64, len(a.TokenRoyaltyCollected))
	for token, amount := range a.TokenRoyaltyCollected {
		tokenCollected[token.String()] = amount
	}
	s.writeJSON(w, http.StatusOK, map[string]interface{}{
		"collection":                     collection.String(),
		"total_volume":                   a.TotalVolume,
		"last_oracle_update_block":       a.LastOracleUpdateBlock,
		"oracle_min_block_interval":      a.OracleMinBlockInterval,
		"total_royalty_collected_native": a.TotalRoyaltyCollectedNative,
		"token_royalty_collected":        tokenCollected,
	})
}

func (s *Server) handleGetTokenRecord(w http.ResponseWriter, r *http.Request) {
	collection, err := pathAddress(r, "collection")
	if err != nil {
		s.writeError(w, r, badRequest(err))
		return
	}
	tokenID, err := pathTokenID(r)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	rec, err := s.ledger.TokenRecord(collection, tokenID)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	s.writeJSON(w, http.StatusOK, map[string]interface{}{
		"collection":             collection.String(),
		"token_id":               tokenID,
		"minter":                 rec.Minter.String(),
		"current_holder":         rec.CurrentHolder.String(),
		"sale_count":             rec.SaleCount,
		"cumulative_volume":      rec.CumulativeVolume,
		"minter_royalty_earned":  rec.MinterRoyaltyEarned,
		"creator_royalty_earned": rec.CreatorRoyaltyEarned,
	})
}

func (s *Server) handleGetPool(w http.ResponseWriter, r *http.Request) {
	collection, err := pathAddress(r, "collection")
	if err != nil {
		s.writeError(w, r, badRequest(err))
		return
	}
	if tokenStr := r.URL.Query().Get("token"); tokenStr != "" {
		token, err := types.ParseAddress(tokenStr)
		if err != nil {
			s.writeError(w, r, badRequest(err))
			return
		}
		pool, err := s.ledger.TokenPoolBalance(collection, token)
		if err != nil {
			s.writeError(w, r, err)
			return
		}
		s.writeJSON(w, http.StatusOK, map[string]interface{}{
			"collection": collection.String(),
			"token":      token.String(),
			"pool":       pool,
		})
		return
	}
	pool, err := s.ledger.PoolBalance(collection)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	s.writeJSON(w, http.StatusOK, map[string]interface{}{
		"collection": collection.String(),
		"pool":       pool,
	})
}

func (s *Server) handleGetClaimable(w http.ResponseWriter, r *http.Request) {
	collection, err := pathAddress(r, "collection")
	if err != nil {
		s.writeError(w, r, badRequest(err))
		return
	}
	recipient, err := pathAddress(r, "recipient")
	if err != nil {
		s.writeError(w, r, badRequest(err))
		return
	}
	balance, err := s.ledger.ClaimableBalance(collection, recipient)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	s.writeJSON(w, http.StatusOK, map[string]interface{}{
		"collection": collection.String(),
		"recipient":  recipient.String(),
		"claimable":  balance,
	})
}

func (s *Server) handleGetDistribution(w http.ResponseWriter, r *http.Request) {
	collection, err := pathAddress(r, "collection")
	if err != nil {
		s.writeError(w, r, badRequest(err))
		return
	}
	var dist ledger.Distribution
	payload := map[string]interface{}{"collection": collection.String()}
	if tokenStr := r.URL.Query().Get("token"); tokenStr != "" {
		token, err := types.ParseAddress(tokenStr)
		if err != nil {
			s.writeError(w, r, badRequest(err))
			return
		}
		dist, err = s.ledger.ActiveTokenDistribution(collection, token)
		if err != nil {
			s.writeError(w, r, err)
			return
		}
		payload["token"] = token.String()
	} else {
		dist, err = s.ledger.ActiveDistribution(collection)
		if err != nil {
			s.writeError(w, r, err)
			return
		}
	}
	payload["root"] = hashHex(dist.Root)
	payload["total_committed"] = dist.TotalCommitted
	payload["claimed_amount"] = dist.ClaimedAmount
	payload["unclaimed"] = dist.Unclaimed()
	payload["generation"] = dist.Generation
	payload["published_at"] = dist.PublishedAt
	s.writeJSON(w, http.StatusOK, payload)
}

func (s *Server) handleGetTotals(w http.ResponseWriter, r *http.Request) {
	totals, err := s.ledger.Totals()
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	s.writeJSON(w, http.StatusOK, map[string]uint64{
		"accrued":   totals.Accrued,
		"claimed":   totals.Claimed,
		"unclaimed": totals.Unclaimed,
	})
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	s.writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}
