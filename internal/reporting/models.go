package reporting

import "time"

// Outcome is one routed event as seen by the delivery counters.
// Reason is the router's drop reason, or "delivered".
type Outcome struct {
	GuildID   int64
	Delivered bool
	Reason    string
	At        time.Time
}

// DeliveryStats aggregates outcomes for one guild since the process started.
// Guild isolation: GuildID is required.
type DeliveryStats struct {
	GuildID int64 `json:"guild_id"`

	Routed       int64            `json:"routed"`
	Delivered    int64            `json:"delivered"`
	SendFailures int64            `json:"send_failures"`
	Dropped      map[string]int64 `json:"dropped"`

	LastDeliveredAt *time.Time `json:"last_delivered_at,omitempty"`
	Since           time.Time  `json:"since"`
}

// DeliveryRate is delivered / routed, or 0 when nothing was routed.
func (s DeliveryStats) DeliveryRate() float64 {
	if s.Routed == 0 {
		return 0
	}
	return float64(s.Delivered) / float64(s.Routed)
}

const ReasonSendFailed = "send_failed"
