package domain

import (
	"strings"

	"github.com/ethereum/go-ethereum/common"
)

// AssetKey identifies an asset on the ledger: (asset contract address, asset id)
type AssetKey struct {
	Contract string `json:"contract"`
	AssetID  string `json:"asset_id"`
}

// NewAssetKey returns an asset key with a normalized contract address
func NewAssetKey(contract, assetID string) AssetKey {
	return AssetKey{Contract: NormalizeAddress(contract), AssetID: assetID}
}

// String returns the key in "contract:assetID" form
func (k AssetKey) String() string {
	return k.Contract + ":" + k.AssetID
}

// NormalizeAddress returns the EIP-55 checksummed form of a hex address.
// Inputs that are not hex addresses are returned unchanged.
func NormalizeAddress(address string) string {
	if !common.IsHexAddress(address) {
		return address
	}
	return common.HexToAddress(address).Hex()
}

// SameAddress compares two ledger addresses case-insensitively
func SameAddress(a, b string) bool {
	if a == "" || b == "" {
		return false
	}
	return strings.EqualFold(NormalizeAddress(a), NormalizeAddress(b))
}
