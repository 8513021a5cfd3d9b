package idhash

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"time"
)

const dateLayout = "2006-01-02"

// ComputeRunID computes a deterministic run_id using SHA256.
// Formula: SHA256(symbol|strategy_id|window_start|window_end)
// Returns hex-encoded hash (64 characters). An unbounded window side is
// encoded as "open" so that open and explicit windows never collide.
func ComputeRunID(symbol, strategyID string, windowStart, windowEnd time.Time) string {
	data := fmt.Sprintf("%s|%s|%s|%s",
		symbol,
		strategyID,
		formatBound(windowStart),
		formatBound(windowEnd),
	)

	hash := sha256.Sum256([]byte(data))
	return hex.EncodeToString(hash[:])
}

func formatBound(t time.Time) string {
	if t.IsZero() {
		return "open"
	}
	return t.UTC().Format(dateLayout)
}
