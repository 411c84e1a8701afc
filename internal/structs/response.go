package structs

// Response is the gateway's uniform reply envelope.
type Response struct {
	Status      int         `json:"status"`
	Description string      `json:"description"`
	Payload     interface{} `json:"payload,omitempty"`
}
