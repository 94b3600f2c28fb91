package id

import (
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"strconv"
	"time"
)

const requestIDBytes = 8

// Generator creates opaque IDs used to correlate one scrape request across logs.
type Generator interface {
	NewID() (string, error)
}

type RandomGenerator struct {
	size int
}

func NewRandomGenerator() *RandomGenerator {
	return &RandomGenerator{size: requestIDBytes}
}

func (g *RandomGenerator) NewID() (string, error) {
	size := requestIDBytes
	if g != nil && g.size > 0 {
		size = g.size
	}

	buf := make([]byte, size)
	if _, err := rand.Read(buf); err != nil {
		return "", fmt.Errorf("read random bytes: %w", err)
	}

	return hex.EncodeToString(buf), nil
}

// NewIDOrTimestamp never fails; it falls back to a nanosecond timestamp.
func NewIDOrTimestamp(g Generator) string {
	if g != nil {
		if v, err := g.NewID(); err == nil && v != "" {
			return v
		}
	}
	return "ts-" + strconv.FormatInt(time.Now().UnixNano(), 36)
}
