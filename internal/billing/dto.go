// AngelaMos | 2026
// dto.go

package billing

const (
	EventTest            = "TEST"
	EventInitialPurchase = "INITIAL_PURCHASE"
	EventRenewal         = "RENEWAL"
	EventCancellation    = "CANCELLATION"
	EventExpiration      = "EXPIRATION"
)

const (
	StatusOK               = "ok"
	StatusError            = "error"
	StatusTestSuccess      = "test_success"
	StatusMissingFields    = "missing_fields"
	StatusInvalidPayload   = "invalid_payload"
	StatusRedisUnavailable = "redis_unavailable"
)

// Event is the part of a RevenueCat webhook event the service reads.
type Event struct {
	ID        string `json:"id,omitempty"`
	Type      string `json:"type"        validate:"required"`
	AppUserID string `json:"app_user_id" validate:"required,max=128"`
	ProductID string `json:"product_id"`
}

type WebhookPayload struct {
	APIVersion string `json:"api_version,omitempty"`
	Event      *Event `json:"event"`
}

type WebhookResponse struct {
	Status string `json:"status"`
}
