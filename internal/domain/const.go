package domain

const (
	// Ledger constants
	ETHEREUM_ZERO_ADDRESS = "0x0000000000000000000000000000000000000000"
	ETHEREUM_ZERO_HASH    = "0x0000000000000000000000000000000000000000000000000000000000000000"

	// DEFAULT_LISTENER_ID is the checkpoint identity used when none is configured
	DEFAULT_LISTENER_ID = "rental-listener"

	// PROJECTION_SUBJECT_PREFIX prefixes every projection change notification subject
	PROJECTION_SUBJECT_PREFIX = "projections"
)
