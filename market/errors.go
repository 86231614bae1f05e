package market

import "fmt"

// ValidationError rejects viewer input before any collaborator is called.
// Recoverable by re-entry.
type ValidationError struct {
	Reason string
}

func (e *ValidationError) Error() string {
	return "invalid input: " + e.Reason
}

// InconsistencyError marks a two-phase sequence whose first call committed
// while the second failed, e.g. an item listed in the ledger but never
// escrowed to the marketplace account, or a payment transferred without
// the purchase completing. The core never retries these; they need
// out-of-band resolution.
type InconsistencyError struct {
	AssetId string
	Step    string
	Err     error
}

func (e *InconsistencyError) Error() string {
	return fmt.Sprintf("inconsistent state for asset %s at %s: %v", e.AssetId, e.Step, e.Err)
}

func (e *InconsistencyError) Unwrap() error {
	return e.Err
}
