package models

// WebSocket message types
type WSMessage struct {
	Type    string      `json:"type"` // "exchange"
	Payload interface{} `json:"payload"`
}

const WSTypeExchange = "exchange"
