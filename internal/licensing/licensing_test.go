package licensing_test

import (
	"context"
	"errors"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"tokenbound/internal/licensing"
	"tokenbound/internal/licensing/mocks"
	"tokenbound/pkg/domain"
	dErrors "tokenbound/pkg/domainerrors"
)

func mustAddress(t *testing.T, s string) domain.Address {
	t.Helper()
	a, err := domain.ParseAddress(s)
	require.NoError(t, err)
	return a
}

func TestRegisterDerivative_DelegatesForRegisteredAsset(t *testing.T) {
	ctrl := gomock.NewController(t)
	assets := mocks.NewMockRegistrationChecker(ctrl)
	client := mocks.NewMockClient(ctrl)
	svc := licensing.NewService(assets, client, slog.Default())

	assetID := mustAddress(t, "0x00000000000000000000000000000000000000bb")
	caller := mustAddress(t, "0x00000000000000000000000000000000000000cc")
	tokens := []uint64{7, 8}
	royaltyCtx := []byte{0xde, 0xad}

	assets.EXPECT().IsRegistered(gomock.Any(), assetID).Return(true, nil)
	client.EXPECT().RegisterDerivative(gomock.Any(), assetID, tokens, royaltyCtx, caller).Return(nil)

	err := svc.RegisterDerivative(context.Background(), assetID, tokens, royaltyCtx, caller)
	assert.NoError(t, err)
}

func TestRegisterDerivative_RefusesUnregisteredAsset(t *testing.T) {
	ctrl := gomock.NewController(t)
	assets := mocks.NewMockRegistrationChecker(ctrl)
	client := mocks.NewMockClient(ctrl) // no expectations: must not be reached
	svc := licensing.NewService(assets, client, slog.Default())

	assetID := mustAddress(t, "0x00000000000000000000000000000000000000bb")
	assets.EXPECT().IsRegistered(gomock.Any(), assetID).Return(false, nil)

	err := svc.RegisterDerivative(context.Background(), assetID, []uint64{7}, nil, assetID)
	require.Error(t, err)
	assert.Equal(t, dErrors.CodeNotFound, dErrors.CodeOf(err))
}

func TestRegisterDerivative_EmptyLicenseTokensRejected(t *testing.T) {
	ctrl := gomock.NewController(t)
	svc := licensing.NewService(mocks.NewMockRegistrationChecker(ctrl), mocks.NewMockClient(ctrl), slog.Default())

	assetID := mustAddress(t, "0x00000000000000000000000000000000000000bb")
	err := svc.RegisterDerivative(context.Background(), assetID, nil, nil, assetID)
	require.Error(t, err)
	assert.Equal(t, dErrors.CodeInvalidInput, dErrors.CodeOf(err))
}

func TestRegisterDerivative_DelegatedErrorsPassThroughUnchanged(t *testing.T) {
	ctrl := gomock.NewController(t)
	assets := mocks.NewMockRegistrationChecker(ctrl)
	client := mocks.NewMockClient(ctrl)
	svc := licensing.NewService(assets, client, slog.Default())

	assetID := mustAddress(t, "0x00000000000000000000000000000000000000bb")
	delegated := errors.New("license token 7 not owned by caller")

	assets.EXPECT().IsRegistered(gomock.Any(), assetID).Return(true, nil)
	client.EXPECT().RegisterDerivative(gomock.Any(), assetID, []uint64{7}, gomock.Nil(), assetID).Return(delegated)

	err := svc.RegisterDerivative(context.Background(), assetID, []uint64{7}, nil, assetID)
	assert.ErrorIs(t, err, delegated)
}
