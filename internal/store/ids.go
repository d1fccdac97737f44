package store

import "github.com/google/uuid"

// ledgerListingNamespace scopes the name-based UUIDs of ledger-originated listings
var ledgerListingNamespace = uuid.MustParse("6f1c2b9e-5d0a-4c8e-9a43-2b7f3e1d8c55")

// LedgerListingUUID returns the local id for a listing first seen on the ledger.
// The id is derived from the ledger listing id so that a replay produces the same row.
func LedgerListingUUID(ledgerListingID string) string {
	return uuid.NewSHA1(ledgerListingNamespace, []byte(ledgerListingID)).String()
}

// NewDraftListingID returns a random local id for a draft listing
func NewDraftListingID() string {
	return uuid.New().String()
}
