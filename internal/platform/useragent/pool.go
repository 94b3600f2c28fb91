package useragent

import (
	"math/rand/v2"
	"strings"

	crerr "github.com/cockroachdb/errors"
)

var ErrEmptyPool = crerr.New("user agent pool is empty")

var defaultIdentities = [...]string{
	"Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/124.0 Safari/537.36",
	"Mozilla/5.0 (Macintosh; Intel Mac OS X 10_15_7) AppleWebKit/605.1.15 (KHTML, like Gecko) Version/17.0 Safari/605.1.15",
	"Mozilla/5.0 (X11; Linux x86_64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/123.0 Safari/537.36",
}

// Pool is a read-only set of browser identities. Safe for concurrent use.
type Pool struct {
	identities []string
	intn       func(n int) int
}

// DefaultPool returns the built-in desktop browser identities.
func DefaultPool() *Pool {
	pool, _ := NewPool(defaultIdentities[:])
	return pool
}

func NewPool(identities []string) (*Pool, error) {
	cleaned := make([]string, 0, len(identities))
	for _, identity := range identities {
		identity = strings.TrimSpace(identity)
		if identity == "" {
			continue
		}
		cleaned = append(cleaned, identity)
	}
	if len(cleaned) == 0 {
		return nil, ErrEmptyPool
	}

	return &Pool{
		identities: cleaned,
		intn:       rand.IntN,
	}, nil
}

// Pick returns one identity chosen uniformly at random.
func (p *Pool) Pick() string {
	if p == nil || len(p.identities) == 0 {
		return defaultIdentities[0]
	}
	return p.identities[p.intn(len(p.identities))]
}

func (p *Pool) Len() int {
	if p == nil {
		return 0
	}
	return len(p.identities)
}

// Identities returns a copy of the pool contents.
func (p *Pool) Identities() []string {
	if p == nil {
		return nil
	}
	out := make([]string, len(p.identities))
	copy(out, p.identities)
	return out
}
