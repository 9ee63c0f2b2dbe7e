// Package licensing gates derivative-work registration on asset
// registration state. All license-token validation and royalty-context
// interpretation belong to the external licensing module; this service only
// refuses calls for assets the registry does not know.
package licensing

//go:generate mockgen -source=licensing.go -destination=mocks/mocks.go -package=mocks

import (
	"context"
	"log/slog"

	"tokenbound/pkg/domain"
	dErrors "tokenbound/pkg/domainerrors"
)

// Client is the external licensing module boundary. Delegated errors pass
// through to callers unchanged.
type Client interface {
	RegisterDerivative(ctx context.Context, assetID domain.Address, licenseTokenIDs []uint64, royaltyContext []byte, caller domain.Address) error
}

// RegistrationChecker is the read-only capability check against the asset
// registry. Satisfied by *asset.Service.
type RegistrationChecker interface {
	IsRegistered(ctx context.Context, assetID domain.Address) (bool, error)
}

// Service is the derivative registration gate.
type Service struct {
	assets RegistrationChecker
	client Client
	logger *slog.Logger
}

// NewService constructs the gate over the asset registry and the external
// licensing client.
func NewService(assets RegistrationChecker, client Client, logger *slog.Logger) *Service {
	return &Service{assets: assets, client: client, logger: logger}
}

// RegisterDerivative associates assetID with the given license tokens.
//
// Preconditions: assetID must name an already-registered asset and
// licenseTokenIDs must be non-empty. License-token ownership checks are the
// external module's concern and its errors are returned unchanged.
//
// Errors: CodeNotFound when assetID has no asset record, CodeInvalidInput
// for an empty license token list.
func (s *Service) RegisterDerivative(ctx context.Context, assetID domain.Address, licenseTokenIDs []uint64, royaltyContext []byte, caller domain.Address) error {
	if len(licenseTokenIDs) == 0 {
		return dErrors.New(dErrors.CodeInvalidInput, "license token ids cannot be empty")
	}
	registered, err := s.assets.IsRegistered(ctx, assetID)
	if err != nil {
		return err
	}
	if !registered {
		return dErrors.Newf(dErrors.CodeNotFound, "asset %s is not registered", assetID)
	}
	if err := s.client.RegisterDerivative(ctx, assetID, licenseTokenIDs, royaltyContext, caller); err != nil {
		return err
	}
	s.logger.InfoContext(ctx, "derivative registered",
		"asset_id", assetID.String(),
		"license_tokens", len(licenseTokenIDs),
	)
	return nil
}
