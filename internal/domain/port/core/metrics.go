package core

// Metrics records business events for the monitoring backend
type Metrics interface {
	// ImageGenerated counts a finished generation attempt by outcome (success, rejected, failed)
	ImageGenerated(outcome string)
	// CreditsConsumed adds n to the consumed credit counter
	CreditsConsumed(n int64)
	// PaymentSettled counts a credited purchase of the given plan
	PaymentSettled(plan string, credits int64)
	// UserRegistered counts a new account
	UserRegistered()
}
