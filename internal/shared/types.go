package shared

// Asynq task types
const (
	TypeSendModerationOutcome = "moderation:outcome_email"
	TypeSendModerationDigest  = "moderation:digest_email"
	TypeProcessProductImage   = "product:process_image"
)

// Asynq queue names
const (
	QueueModeration = "moderation"
	QueueDefault    = "default"
)

// ModerationOutcomePayload carries the data needed to notify a submitter
// that their product was approved or rejected.
type ModerationOutcomePayload struct {
	ProductID   string `json:"productId"`
	ProductName string `json:"productName"`
	Email       string `json:"email"`
	Approved    bool   `json:"approved"`
	Reason      string `json:"reason,omitempty"`
}

// ModerationDigestPayload triggers the scheduled pending-queue summary email
type ModerationDigestPayload struct{}

// ProcessProductImagePayload triggers background image variant generation
type ProcessProductImagePayload struct {
	ProductID string `json:"productId"`
	ObjectKey string `json:"objectKey"`
}
