package redis

import "fmt"

const ns = "gigledger:v1"

func KeyConcertSummary(concertID int64) string {
	return fmt.Sprintf("%s:concert:%d:summary", ns, concertID)
}

func KeyConcertState(concertID int64) string {
	return fmt.Sprintf("%s:concert:%d:state", ns, concertID)
}

func KeyRateLimit(scope string) string {
	return fmt.Sprintf("%s:rl:%s", ns, scope)
}

func KeyIdemPurchase(concertID int64, buyer, idemKey string) string {
	return fmt.Sprintf("%s:idem:purchase:%d:%s:%s", ns, concertID, buyer, idemKey)
}

func ChannelConcertStatus() string {
	return ns + ":concerts:status"
}
