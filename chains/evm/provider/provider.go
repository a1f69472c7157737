package provider

import (
	"context"
	"errors"
	"fmt"
	"math/big"
	"sync"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/event"
	"github.com/ethereum/go-ethereum/signer/core/apitypes"
	"github.com/rs/zerolog/log"
)

const (
	LocalProviderType  = "local"
	RemoteProviderType = "remote"
)

var ErrProviderUnavailable = errors.New("provider unavailable")

type ConnectEvent struct {
	ChainID *big.Int
	Err     error
}

// Provider is the signing capability of the benefactor: it signs typed data
// and sends transactions from the benefactor account.
type Provider interface {
	Address() common.Address
	SignTypedData(ctx context.Context, typedData apitypes.TypedData) (string, error)
	Transact(ctx context.Context, to common.Address, data []byte) (common.Hash, error)
	// SubscribeConnect delivers the connect event of the provider. The event is
	// sent only once so callers should check ConnectState after subscribing.
	SubscribeConnect(ch chan<- ConnectEvent) event.Subscription
	ConnectState() (ConnectEvent, bool)
	Close()
}

// Acquire blocks until the provider reports it is connected.
func Acquire(ctx context.Context, p Provider) error {
	connectChn := make(chan ConnectEvent, 1)
	sub := p.SubscribeConnect(connectChn)
	defer sub.Unsubscribe()

	ev, connected := p.ConnectState()
	if !connected {
		select {
		case ev = <-connectChn:
		case <-ctx.Done():
			return fmt.Errorf("%w: %s", ErrProviderUnavailable, ctx.Err())
		}
	}

	if ev.Err != nil {
		return fmt.Errorf("%w: %s", ErrProviderUnavailable, ev.Err)
	}

	log.Info().Str("address", p.Address().Hex()).Msgf("Connected to chain: %s", ev.ChainID)
	return nil
}

// connector keeps the one-shot connect state shared by provider implementations.
type connector struct {
	feed event.Feed

	lock      sync.RWMutex
	connected bool
	state     ConnectEvent
}

func (c *connector) SubscribeConnect(ch chan<- ConnectEvent) event.Subscription {
	return c.feed.Subscribe(ch)
}

func (c *connector) ConnectState() (ConnectEvent, bool) {
	c.lock.RLock()
	defer c.lock.RUnlock()
	return c.state, c.connected
}

func (c *connector) emit(ev ConnectEvent) {
	c.lock.Lock()
	if c.connected {
		c.lock.Unlock()
		return
	}
	c.connected = true
	c.state = ev
	c.lock.Unlock()

	c.feed.Send(ev)
}
