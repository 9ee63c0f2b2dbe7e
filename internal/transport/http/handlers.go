package httptransport

import (
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"

	"tokenbound/internal/asset"
	"tokenbound/internal/licensing"
	"tokenbound/internal/royalty"
	"tokenbound/pkg/domain"
	dErrors "tokenbound/pkg/domainerrors"
	"tokenbound/pkg/platform/httputil"
)

// Handler wires registry endpoints to the domain services.
type Handler struct {
	assets      *asset.Service
	derivatives *licensing.Service
	royalties   *royalty.Service
	logger      *slog.Logger
}

// NewHandler constructs the HTTP handler with its dependencies.
func NewHandler(assets *asset.Service, derivatives *licensing.Service, royalties *royalty.Service, logger *slog.Logger) *Handler {
	return &Handler{
		assets:      assets,
		derivatives: derivatives,
		royalties:   royalties,
		logger:      logger,
	}
}

func (h *Handler) handleHealth(w http.ResponseWriter, _ *http.Request) {
	httputil.WriteJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

type registerAssetRequest struct {
	ChainID       int64  `json:"chain_id"`
	TokenContract string `json:"token_contract"`
	TokenID       uint64 `json:"token_id"`
	Caller        string `json:"caller"`
}

type assetResponse struct {
	AssetID       domain.Address `json:"asset_id"`
	AccountID     domain.Address `json:"account_id"`
	ChainID       int64          `json:"chain_id"`
	TokenContract domain.Address `json:"token_contract"`
	TokenID       uint64         `json:"token_id"`
	Name          string         `json:"name"`
	URI           string         `json:"uri"`
	RegisteredAt  time.Time      `json:"registered_at"`
}

func toAssetResponse(record asset.Record) assetResponse {
	return assetResponse{
		AssetID:       record.AccountID,
		AccountID:     record.AccountID,
		ChainID:       record.Key.ChainID,
		TokenContract: record.Key.TokenContract,
		TokenID:       record.Key.TokenID,
		Name:          record.Name,
		URI:           record.URI,
		RegisteredAt:  record.RegisteredAt,
	}
}

func (h *Handler) handleRegisterAsset(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	req, ok := httputil.Decode[registerAssetRequest](w, r, h.logger)
	if !ok {
		return
	}
	key, caller, err := parseKeyAndCaller(req.ChainID, req.TokenContract, req.TokenID, req.Caller)
	if err != nil {
		httputil.WriteError(w, err)
		return
	}

	record, created, err := h.assets.Register(ctx, key, caller)
	if err != nil {
		h.logger.ErrorContext(ctx, "asset registration failed",
			"key", key.String(),
			"error", err,
		)
		httputil.WriteError(w, err)
		return
	}
	status := http.StatusOK
	if created {
		status = http.StatusCreated
	}
	httputil.WriteJSON(w, status, toAssetResponse(record))
}

func (h *Handler) handleGetAsset(w http.ResponseWriter, r *http.Request) {
	chainID, err := strconv.ParseInt(chi.URLParam(r, "chainID"), 10, 64)
	if err != nil {
		httputil.WriteError(w, dErrors.New(dErrors.CodeInvalidInput, "invalid chain id"))
		return
	}
	contract, err := domain.ParseAddress(chi.URLParam(r, "tokenContract"))
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	tokenID, err := strconv.ParseUint(chi.URLParam(r, "tokenID"), 10, 64)
	if err != nil {
		httputil.WriteError(w, dErrors.New(dErrors.CodeInvalidInput, "invalid token id"))
		return
	}
	key, err := domain.NewKey(chainID, contract, tokenID)
	if err != nil {
		httputil.WriteError(w, err)
		return
	}

	record, err := h.assets.Lookup(r.Context(), key)
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, toAssetResponse(record))
}

type deriveResponse struct {
	AccountID domain.Address `json:"account_id"`
}

// handleDeriveAccount previews the deterministic address without side
// effects, for pre-creation labeling and verification.
func (h *Handler) handleDeriveAccount(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	chainID, err := strconv.ParseInt(q.Get("chain_id"), 10, 64)
	if err != nil {
		httputil.WriteError(w, dErrors.New(dErrors.CodeInvalidInput, "invalid chain id"))
		return
	}
	contract, err := domain.ParseAddress(q.Get("token_contract"))
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	tokenID, err := strconv.ParseUint(q.Get("token_id"), 10, 64)
	if err != nil {
		httputil.WriteError(w, dErrors.New(dErrors.CodeInvalidInput, "invalid token id"))
		return
	}
	key, err := domain.NewKey(chainID, contract, tokenID)
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, deriveResponse{AccountID: h.assets.DeriveAddress(key)})
}

type registerDerivativeRequest struct {
	AssetID         string   `json:"asset_id"`
	LicenseTokenIDs []uint64 `json:"license_token_ids"`
	RoyaltyContext  []byte   `json:"royalty_context"`
	Caller          string   `json:"caller"`
}

func (h *Handler) handleRegisterDerivative(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	req, ok := httputil.Decode[registerDerivativeRequest](w, r, h.logger)
	if !ok {
		return
	}
	assetID, err := domain.ParseAddress(req.AssetID)
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	caller, err := domain.ParseAddress(req.Caller)
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	if err := h.derivatives.RegisterDerivative(ctx, assetID, req.LicenseTokenIDs, req.RoyaltyContext, caller); err != nil {
		h.logger.ErrorContext(ctx, "derivative registration failed",
			"asset_id", assetID.String(),
			"error", err,
		)
		httputil.WriteError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

type snapshotIntervalRequest struct {
	Interval string `json:"interval"`
}

type snapshotIntervalResponse struct {
	Interval string `json:"interval"`
}

func (h *Handler) handleSetSnapshotInterval(w http.ResponseWriter, r *http.Request) {
	req, ok := httputil.Decode[snapshotIntervalRequest](w, r, h.logger)
	if !ok {
		return
	}
	interval, err := time.ParseDuration(req.Interval)
	if err != nil {
		httputil.WriteError(w, dErrors.New(dErrors.CodeInvalidInput, "invalid duration"))
		return
	}
	if err := h.royalties.SetSnapshotInterval(r.Context(), interval); err != nil {
		httputil.WriteError(w, err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, snapshotIntervalResponse{Interval: interval.String()})
}

func (h *Handler) handleGetSnapshotInterval(w http.ResponseWriter, _ *http.Request) {
	httputil.WriteJSON(w, http.StatusOK, snapshotIntervalResponse{
		Interval: h.royalties.SnapshotInterval().String(),
	})
}

func parseKeyAndCaller(chainID int64, contract string, tokenID uint64, caller string) (domain.Key, domain.Address, error) {
	contractAddr, err := domain.ParseAddress(contract)
	if err != nil {
		return domain.Key{}, domain.Address{}, err
	}
	callerAddr, err := domain.ParseAddress(caller)
	if err != nil {
		return domain.Key{}, domain.Address{}, err
	}
	key, err := domain.NewKey(chainID, contractAddr, tokenID)
	if err != nil {
		return domain.Key{}, domain.Address{}, err
	}
	return key, callerAddr, nil
}
