package httptransport

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"tokenbound/internal/account"
	"tokenbound/internal/asset"
	"tokenbound/internal/derive"
	"tokenbound/internal/licensing"
	"tokenbound/internal/royalty"
	"tokenbound/pkg/domain"
	"tokenbound/pkg/platform/events"
	"tokenbound/pkg/testutil"
)

const (
	adminToken    = "secret-token"
	tokenContract = "0x00000000000000000000000000000000000000aa"
	ownerAddr     = "0x00000000000000000000000000000000000000cc"
	strangerAddr  = "0x00000000000000000000000000000000000000dd"
)

// ownerEverything answers every ownership lookup with one fixed owner.
type ownerEverything struct {
	owner domain.Address
}

func (o ownerEverything) OwnerOf(context.Context, domain.Key) (domain.Address, error) {
	return o.owner, nil
}

// recordingLicensing captures delegated derivative registrations.
type recordingLicensing struct {
	calls int
}

func (c *recordingLicensing) RegisterDerivative(context.Context, domain.Address, []uint64, []byte, domain.Address) error {
	c.calls++
	return nil
}

type env struct {
	router    http.Handler
	sink      *events.MemorySink
	licensing *recordingLicensing
	royalties *royalty.Service
}

func newEnv(t *testing.T) *env {
	t.Helper()
	logger := slog.Default()
	owner, err := domain.ParseAddress(ownerAddr)
	require.NoError(t, err)

	registryID, err := domain.ParseAddress("0x0000000000000000000000000000000000000101")
	require.NoError(t, err)
	implID, err := domain.ParseAddress("0x0000000000000000000000000000000000000202")
	require.NoError(t, err)

	sink := events.NewMemorySink()
	pub := events.NewPublisher(sink)
	t.Cleanup(pub.Close)

	deriver := derive.New(registryID, implID, derive.DefaultSalt)
	accounts := account.NewService(deriver, account.NewInMemoryStore(), pub, logger, nil)
	assets := asset.NewService(
		accounts,
		asset.NewInMemoryStore(),
		ownerEverything{owner: owner},
		asset.Naming{Label: "Ape", BaseURI: "https://assets.example.com/tokens"},
		pub,
		logger,
		nil,
	)
	lic := &recordingLicensing{}
	derivatives := licensing.NewService(assets, lic, logger)
	royalties := royalty.NewService(24*time.Hour, logger)

	handler := NewHandler(assets, derivatives, royalties, logger)
	return &env{
		router:    NewRouter(handler, adminToken),
		sink:      sink,
		licensing: lic,
		royalties: royalties,
	}
}

func (e *env) do(t *testing.T, method, path string, payload any, header map[string]string) *httptest.ResponseRecorder {
	t.Helper()
	req := testutil.NewJSONRequest(t, method, path, payload)
	for k, v := range header {
		req.Header.Set(k, v)
	}
	return testutil.DoRequest(e.router, req)
}

type assetReply struct {
	AssetID   string `json:"asset_id"`
	AccountID string `json:"account_id"`
	Name      string `json:"name"`
	URI       string `json:"uri"`
}

func registerPayload(caller string) map[string]any {
	return map[string]any{
		"chain_id":       1,
		"token_contract": tokenContract,
		"token_id":       42,
		"caller":         caller,
	}
}

func TestRegisterAsset(t *testing.T) {
	e := newEnv(t)

	rec := e.do(t, http.MethodPost, "/assets/register", registerPayload(ownerAddr), nil)
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())

	resp := testutil.UnmarshalResponse[assetReply](t, rec)
	assert.Equal(t, resp.AssetID, resp.AccountID)
	assert.Equal(t, "1: Ape #42", resp.Name)
	assert.Equal(t, "https://assets.example.com/tokens/42", resp.URI)

	// Repeat registration is a 200 with the same record and no new events.
	emitted := len(e.sink.All())
	rec = e.do(t, http.MethodPost, "/assets/register", registerPayload(ownerAddr), nil)
	require.Equal(t, http.StatusOK, rec.Code)
	repeat := testutil.UnmarshalResponse[assetReply](t, rec)
	assert.Equal(t, resp.AssetID, repeat.AssetID)
	assert.Len(t, e.sink.All(), emitted)
}

func TestRegisterAsset_Unauthorized(t *testing.T) {
	e := newEnv(t)

	rec := e.do(t, http.MethodPost, "/assets/register", registerPayload(strangerAddr), nil)
	require.Equal(t, http.StatusForbidden, rec.Code)
	assert.Empty(t, e.sink.All())
}

func TestRegisterAsset_MalformedKey(t *testing.T) {
	e := newEnv(t)

	payload := registerPayload(ownerAddr)
	payload["chain_id"] = 0
	rec := e.do(t, http.MethodPost, "/assets/register", payload, nil)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestGetAsset(t *testing.T) {
	e := newEnv(t)
	rec := e.do(t, http.MethodPost, "/assets/register", registerPayload(ownerAddr), nil)
	require.Equal(t, http.StatusCreated, rec.Code)

	path := fmt.Sprintf("/assets/1/%s/42", tokenContract)
	rec = e.do(t, http.MethodGet, path, nil, nil)
	require.Equal(t, http.StatusOK, rec.Code)

	rec = e.do(t, http.MethodGet, fmt.Sprintf("/assets/1/%s/43", tokenContract), nil, nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestDeriveAccount_MatchesRegistration(t *testing.T) {
	e := newEnv(t)

	path := fmt.Sprintf("/accounts/derive?chain_id=1&token_contract=%s&token_id=42", tokenContract)
	rec := e.do(t, http.MethodGet, path, nil, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	preview := testutil.UnmarshalResponse[assetReply](t, rec)

	rec = e.do(t, http.MethodPost, "/assets/register", registerPayload(ownerAddr), nil)
	require.Equal(t, http.StatusCreated, rec.Code)
	resp := testutil.UnmarshalResponse[assetReply](t, rec)

	assert.Equal(t, preview.AccountID, resp.AccountID, "derive preview must match the created account")
}

func TestRegisterDerivative(t *testing.T) {
	e := newEnv(t)
	rec := e.do(t, http.MethodPost, "/assets/register", registerPayload(ownerAddr), nil)
	require.Equal(t, http.StatusCreated, rec.Code)
	resp := testutil.UnmarshalResponse[assetReply](t, rec)

	payload := map[string]any{
		"asset_id":          resp.AssetID,
		"license_token_ids": []uint64{7, 8},
		"caller":            ownerAddr,
	}
	rec = e.do(t, http.MethodPost, "/derivatives/register", payload, nil)
	require.Equal(t, http.StatusNoContent, rec.Code, rec.Body.String())
	assert.Equal(t, 1, e.licensing.calls)
}

func TestRegisterDerivative_UnregisteredAsset(t *testing.T) {
	e := newEnv(t)

	payload := map[string]any{
		"asset_id":          "0x00000000000000000000000000000000000000ee",
		"license_token_ids": []uint64{7},
		"caller":            ownerAddr,
	}
	rec := e.do(t, http.MethodPost, "/derivatives/register", payload, nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, 0, e.licensing.calls)
}

func TestSnapshotInterval_AdminGatedAndIndependent(t *testing.T) {
	e := newEnv(t)

	// No admin token.
	rec := e.do(t, http.MethodPost, "/admin/royalty/snapshot-interval", map[string]string{"interval": "168h"}, nil)
	require.Equal(t, http.StatusUnauthorized, rec.Code)

	header := map[string]string{"X-Admin-Token": adminToken}
	rec = e.do(t, http.MethodPost, "/admin/royalty/snapshot-interval", map[string]string{"interval": "168h"}, header)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, 7*24*time.Hour, e.royalties.SnapshotInterval())

	// Changing the interval must not affect registration behavior or events.
	rec = e.do(t, http.MethodPost, "/assets/register", registerPayload(ownerAddr), nil)
	require.Equal(t, http.StatusCreated, rec.Code)
	assert.Len(t, e.sink.ByKind(events.KindAssetRegistered), 1)

	rec = e.do(t, http.MethodPost, "/admin/royalty/snapshot-interval", map[string]string{"interval": "-1h"}, header)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestHealthz(t *testing.T) {
	e := newEnv(t)
	rec := e.do(t, http.MethodGet, "/healthz", nil, nil)
	assert.Equal(t, http.StatusOK, rec.Code)
}
