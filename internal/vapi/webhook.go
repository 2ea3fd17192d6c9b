package vapi

import "sync"

// WebhookStore keeps the most recent webhook payload for debugging.
type WebhookStore struct {
	mu   sync.Mutex
	last map[string]any
}

func NewWebhookStore() *WebhookStore {
	return &WebhookStore{}
}

func (s *WebhookStore) SetLast(payload map[string]any) {
	s.mu.Lock()
	s.last = payload
	s.mu.Unlock()
}

func (s *WebhookStore) Last() map[string]any {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.last
}

// BookingSummary extracts the fields worth logging from a webhook event.
// Each logical field is read from an ordered list of locations, first
// present wins; absent fields are omitted.
func BookingSummary(event map[string]any) map[string]any {
	fields := map[string]any{}
	for _, key := range []string{"id", "status", "runId", "callId"} {
		if v, ok := event[key]; ok {
			fields[key] = v
		}
	}

	booking, _ := event["booking"].(map[string]any)
	business, _ := event["business"].(map[string]any)

	pick := func(out string, candidates ...any) {
		for _, c := range candidates {
			if c != nil {
				fields[out] = c
				return
			}
		}
	}

	pick("chosen_date", event["chosen_date"], event["date"], nested(booking, "date"))
	pick("chosen_time", event["chosen_time"], event["time"], nested(booking, "time"))
	pick("price", event["price"], nested(booking, "price"))
	pick("duration", event["duration"], nested(booking, "duration"))
	pick("business_name", nested(business, "name"), event["business_name"])
	pick("business_address", nested(business, "address"), event["business_address"])
	pick("business_phone", nested(business, "phone"), event["business_phone"])

	return fields
}

func nested(obj map[string]any, key string) any {
	if obj == nil {
		return nil
	}
	return obj[key]
}
