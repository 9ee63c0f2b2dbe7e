package asset

import (
	"fmt"
	"strconv"
	"strings"

	"tokenbound/pkg/domain"
)

// Naming derives asset display names and URIs from the key. Both are pure
// functions of (chainID, tokenID) plus fixed configuration, so auditors can
// reproduce them from the registration event alone.
type Naming struct {
	// Label is the collection label in "{chainID}: {Label} #{tokenID}".
	Label string
	// BaseURI is prepended to the token id to form the asset URI.
	BaseURI string
}

// Name returns the display name for key.
func (n Naming) Name(key domain.Key) string {
	return fmt.Sprintf("%d: %s #%d", key.ChainID, n.Label, key.TokenID)
}

// URI returns the metadata URI for key.
func (n Naming) URI(key domain.Key) string {
	base := n.BaseURI
	if !strings.HasSuffix(base, "/") {
		base += "/"
	}
	return base + strconv.FormatUint(key.TokenID, 10)
}
