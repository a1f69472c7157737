package order

import (
	"crypto/rand"
	"fmt"
	"math/big"
	"sync"

	"github.com/ethereum/go-ethereum/common"
)

const (
	ExpiryNonceStrategy    = "expiry"
	MonotonicNonceStrategy = "monotonic"
	RandomNonceStrategy    = "random"

	RANDOM_NONCE_BITS = 96
)

type NonceSource interface {
	// Nonce returns the nonce for a new order of the benefactor expiring at expiry.
	Nonce(benefactor common.Address, expiry uint64) (*big.Int, error)
}

// NewNonceSource returns the nonce source for the configured strategy.
func NewNonceSource(strategy string) (NonceSource, error) {
	switch strategy {
	case ExpiryNonceStrategy:
		return ExpiryNonce{}, nil
	case MonotonicNonceStrategy, "":
		return NewMonotonicNonce(), nil
	case RandomNonceStrategy:
		return RandomNonce{}, nil
	default:
		return nil, fmt.Errorf("unknown nonce strategy %s", strategy)
	}
}

// ExpiryNonce reuses the order expiry as the nonce.
type ExpiryNonce struct{}

func (ExpiryNonce) Nonce(_ common.Address, expiry uint64) (*big.Int, error) {
	return new(big.Int).SetUint64(expiry), nil
}

// MonotonicNonce hands out nonces that never repeat for a benefactor within
// the process while staying equal to the expiry whenever possible.
type MonotonicNonce struct {
	lock sync.Mutex
	last map[common.Address]*big.Int
}

func NewMonotonicNonce() *MonotonicNonce {
	return &MonotonicNonce{
		last: make(map[common.Address]*big.Int),
	}
}

func (n *MonotonicNonce) Nonce(benefactor common.Address, expiry uint64) (*big.Int, error) {
	n.lock.Lock()
	defer n.lock.Unlock()

	nonce := new(big.Int).SetUint64(expiry)
	last, ok := n.last[benefactor]
	if ok && nonce.Cmp(last) <= 0 {
		nonce = new(big.Int).Add(last, big.NewInt(1))
	}

	n.last[benefactor] = nonce
	return new(big.Int).Set(nonce), nil
}

// RandomNonce draws a random 96 bit nonce.
type RandomNonce struct{}

func (RandomNonce) Nonce(_ common.Address, _ uint64) (*big.Int, error) {
	limit := new(big.Int).Lsh(big.NewInt(1), RANDOM_NONCE_BITS)
	nonce, err := rand.Int(rand.Reader, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to generate nonce: %w", err)
	}
	return nonce, nil
}
