package utils

import (
	"log"
	"time"
)

// GetJSTLocation returns the Asia/Tokyo location. All market window math
// runs in JST.
func GetJSTLocation() *time.Location {
	loc, err := time.LoadLocation("Asia/Tokyo")
	if err != nil {
		log.Fatal("Failed to load location", err)
	}
	return loc
}
