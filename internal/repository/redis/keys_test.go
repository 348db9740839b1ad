package redis

import "testing"

func TestKeysAreNamespacedAndDistinct(t *testing.T) {
	keys := []string{
		KeyConcertSummary(1),
		KeyConcertState(1),
		KeyConcertSummary(10),
		KeyRateLimit("buy"),
		KeyIdemPurchase(1, "0xabc", "k1"),
		KeyIdemPurchase(1, "0xabd", "k1"),
		ChannelConcertStatus(),
	}

	seen := map[string]bool{}
	for _, k := range keys {
		if len(k) <= len(ns) || k[:len(ns)] != ns {
			t.Errorf("key %q is outside namespace %q", k, ns)
		}
		if seen[k] {
			t.Errorf("duplicate key %q", k)
		}
		seen[k] = true
	}
}
