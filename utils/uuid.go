package utils

import (
	"github.com/google/uuid"
)

// GenerateID returns a new unique identifier string. Auction, bid and
// websocket observer ids all come from here.
func GenerateID() string {
	return uuid.New().String()
}
