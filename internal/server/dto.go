package server

import "clanker/internal/directory"

type createConversationRequest struct {
	UserRequest string `json:"user_request"`
}

type createConversationResponse struct {
	ConversationID string        `json:"conversation_id"`
	Businesses     []businessDTO `json:"businesses"`
}

type continueConversationRequest struct {
	ConversationID string `json:"conversation_id"`
	UserRequest    string `json:"user_request"`
}

type continueConversationResponse struct {
	ResponseMessage string `json:"response_message"`
}

type triggerRequest struct {
	WorkflowID     string `json:"workflowId"`
	User           string `json:"user"`
	ServiceType    string `json:"serviceType"`
	Window         string `json:"window"`
	CustomerNumber string `json:"customerNumber"`
	PhoneNumberID  string `json:"phoneNumberId"`
}

type errorResponse struct {
	Error string `json:"error"`
}

// businessDTO carries the record plus its name for the ordered response
// array. Field names follow the interchange contract.
type businessDTO struct {
	Name       string   `json:"name"`
	Number     *string  `json:"number"`
	Hours      *string  `json:"hours"`
	Stars      *float64 `json:"stars"`
	PriceRange *string  `json:"price_range"`
}

func toBusinessDTOs(dir *directory.Directory) []businessDTO {
	sorted := dir.Sorted()
	out := make([]businessDTO, 0, len(sorted))
	for _, b := range sorted {
		out = append(out, businessDTO{
			Name:       b.Name,
			Number:     b.Number,
			Hours:      b.Hours,
			Stars:      b.Stars,
			PriceRange: b.PriceRange,
		})
	}
	return out
}
