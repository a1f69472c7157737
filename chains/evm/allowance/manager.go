package allowance

import (
	"context"
	"fmt"
	"math/big"
	"sync"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/common/math"
	"github.com/ethereum/go-ethereum/core/types"
	"github.com/rs/zerolog/log"
	"github.com/sprintertech/sprinter-minting/config"
)

type ERC20 interface {
	Allowance(ctx context.Context, owner common.Address, spender common.Address) (*big.Int, error)
	Approve(ctx context.Context, spender common.Address, amount *big.Int) (common.Hash, error)
}

// TokenFactory returns the ERC-20 binding of the token address.
type TokenFactory func(token common.Address) ERC20

type ConfirmationWatcher interface {
	WaitForConfirmations(ctx context.Context, txHash common.Hash) (*types.Receipt, error)
}

// ApprovalError is returned when an approval transaction could not be sent or confirmed.
type ApprovalError struct {
	Token common.Address
	Err   error
}

func (e *ApprovalError) Error() string {
	return fmt.Sprintf("approval of token %s failed: %s", e.Token.Hex(), e.Err)
}

func (e *ApprovalError) Unwrap() error {
	return e.Err
}

type Manager struct {
	tokens      TokenFactory
	watcher     ConfirmationWatcher
	explorerURL string

	lock  sync.Mutex
	locks map[string]*sync.Mutex
}

func NewManager(tokens TokenFactory, watcher ConfirmationWatcher, explorerURL string) *Manager {
	return &Manager{
		tokens:      tokens,
		watcher:     watcher,
		explorerURL: explorerURL,
		locks:       make(map[string]*sync.Mutex),
	}
}

// EnsureAllowance makes sure spender can transfer at least required of the token on behalf
// of owner. It returns the hashes of the approval transactions, which is empty when the
// current allowance already suffices. On error it still returns every transaction that was
// broadcast, including one whose confirmation failed.
func (m *Manager) EnsureAllowance(
	ctx context.Context,
	token config.TokenConfig,
	spender common.Address,
	owner common.Address,
	required *big.Int,
	allowInfinite bool,
) ([]common.Hash, error) {
	unlock := m.lockPair(owner, token.Address)
	defer unlock()

	erc20 := m.tokens(token.Address)
	current, err := erc20.Allowance(ctx, owner, spender)
	if err != nil {
		return nil, fmt.Errorf("failed to read allowance: %w", err)
	}

	log.Info().
		Str("token", token.Address.Hex()).
		Str("owner", owner.Hex()).
		Msgf("Current allowance %s, required %s", current, required)
	if current.Cmp(required) >= 0 {
		return []common.Hash{}, nil
	}

	txs := make([]common.Hash, 0, 2)
	if token.ResetAllowance && current.Sign() > 0 {
		hash, err := m.approve(ctx, erc20, token.Address, spender, big.NewInt(0))
		if err != nil {
			return appendSent(txs, hash), err
		}
		log.Info().Msgf("Revoke submitted: %s", m.txLink(hash))
		txs = append(txs, hash)
	}

	amount := new(big.Int).Set(required)
	if allowInfinite {
		amount = new(big.Int).Set(math.MaxBig256)
	}

	hash, err := m.approve(ctx, erc20, token.Address, spender, amount)
	if err != nil {
		return appendSent(txs, hash), err
	}
	log.Info().Msgf("Approval submitted: %s", m.txLink(hash))
	txs = append(txs, hash)

	return txs, nil
}

func (m *Manager) approve(
	ctx context.Context,
	erc20 ERC20,
	token common.Address,
	spender common.Address,
	amount *big.Int,
) (common.Hash, error) {
	hash, err := erc20.Approve(ctx, spender, amount)
	if err != nil {
		return common.Hash{}, &ApprovalError{Token: token, Err: err}
	}

	receipt, err := m.watcher.WaitForConfirmations(ctx, hash)
	if err != nil {
		return hash, &ApprovalError{Token: token, Err: err}
	}

	if receipt != nil {
		log.Info().Str("token", token.Hex()).Msgf("Approval of %s confirmed in block %s", amount, receipt.BlockNumber)
	}
	return hash, nil
}

// appendSent adds hash unless the transaction was never broadcast.
func appendSent(txs []common.Hash, hash common.Hash) []common.Hash {
	if hash == (common.Hash{}) {
		return txs
	}
	return append(txs, hash)
}

// lockPair serializes allowance changes of the same owner and token.
func (m *Manager) lockPair(owner common.Address, token common.Address) func() {
	key := owner.Hex() + token.Hex()

	m.lock.Lock()
	l, ok := m.locks[key]
	if !ok {
		l = &sync.Mutex{}
		m.locks[key] = l
	}
	m.lock.Unlock()

	l.Lock()
	return l.Unlock
}

func (m *Manager) txLink(hash common.Hash) string {
	if m.explorerURL == "" {
		return hash.Hex()
	}
	return fmt.Sprintf("%s/tx/%s", m.explorerURL, hash.Hex())
}
