package domain

import "errors"

var (
	// ErrNoRPCEndpoint is returned when no ledger RPC endpoint is configured
	ErrNoRPCEndpoint = errors.New("no ledger rpc endpoint configured")

	// ErrRPCUnreachable is returned when none of the configured RPC endpoints can be dialed
	ErrRPCUnreachable = errors.New("no ledger rpc endpoint reachable")

	// ErrListenerStuck is returned when a block range exhausted its retry budget
	ErrListenerStuck = errors.New("listener stuck: block range retries exhausted")

	// ErrAlreadyRunning is returned when Start is called on a running loop
	ErrAlreadyRunning = errors.New("already running")

	// ErrUnknownEventKind is returned when an entry carries a kind outside the closed set
	ErrUnknownEventKind = errors.New("unknown event kind")

	// ErrMissingTxHash is returned when a log has no usable transaction hash
	ErrMissingTxHash = errors.New("log has no transaction hash")

	// ErrAssetNotIndexed is returned when an event references an asset that has not been projected yet
	ErrAssetNotIndexed = errors.New("asset not indexed yet")

	// ErrListingNotFound is returned when a listing cannot be found
	ErrListingNotFound = errors.New("listing not found")

	// ErrInvalidListingTransition is returned when a write-side request does not fit the listing's status
	ErrInvalidListingTransition = errors.New("invalid listing status transition")
)
