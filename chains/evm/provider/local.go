package provider

import (
	"context"
	"crypto/ecdsa"
	"fmt"
	"math/big"
	"os"
	"strings"

	"github.com/ethereum/go-ethereum/accounts/keystore"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/common/hexutil"
	"github.com/ethereum/go-ethereum/core/types"
	"github.com/ethereum/go-ethereum/crypto"
	"github.com/ethereum/go-ethereum/signer/core/apitypes"
	"github.com/sprintertech/sprinter-minting/chains/evm/calls/transactor"
	"github.com/sprintertech/sprinter-minting/chains/evm/signature"
)

// LocalProvider signs with a private key held in process memory.
type LocalProvider struct {
	connector

	key        *ecdsa.PrivateKey
	address    common.Address
	chainID    *big.Int
	transactor *transactor.SignedTransactor
}

func NewLocalProvider(key *ecdsa.PrivateKey, chainID *big.Int, client transactor.TxClient) *LocalProvider {
	p := &LocalProvider{
		key:     key,
		address: crypto.PubkeyToAddress(key.PublicKey),
		chainID: chainID,
	}
	p.transactor = transactor.NewSignedTransactor(client, p, chainID)
	return p
}

// KeyFromHex parses a hex encoded secp256k1 private key.
func KeyFromHex(hexKey string) (*ecdsa.PrivateKey, error) {
	key, err := crypto.HexToECDSA(strings.TrimPrefix(strings.TrimSpace(hexKey), "0x"))
	if err != nil {
		return nil, fmt.Errorf("invalid private key: %w", err)
	}
	return key, nil
}

// KeyFromKeystore decrypts an encrypted keystore file.
func KeyFromKeystore(path string, password string) (*ecdsa.PrivateKey, error) {
	keyJSON, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read keystore: %w", err)
	}

	key, err := keystore.DecryptKey(keyJSON, password)
	if err != nil {
		return nil, fmt.Errorf("failed to decrypt keystore: %w", err)
	}
	return key.PrivateKey, nil
}

// Start marks the provider as connected. A local key needs no handshake.
func (p *LocalProvider) Start(ctx context.Context) {
	go p.emit(ConnectEvent{ChainID: p.chainID})
}

func (p *LocalProvider) Address() common.Address {
	return p.address
}

func (p *LocalProvider) SignTypedData(ctx context.Context, typedData apitypes.TypedData) (string, error) {
	hash, err := signature.Hash(typedData)
	if err != nil {
		return "", err
	}

	sig, err := crypto.Sign(hash, p.key)
	if err != nil {
		return "", err
	}
	sig[64] += 27

	return hexutil.Encode(sig), nil
}

func (p *LocalProvider) SignTx(tx *types.Transaction, chainID *big.Int) (*types.Transaction, error) {
	return types.SignTx(tx, types.LatestSignerForChainID(chainID), p.key)
}

func (p *LocalProvider) Transact(ctx context.Context, to common.Address, data []byte) (common.Hash, error) {
	return p.transactor.Transact(ctx, to, data)
}

func (p *LocalProvider) Close() {}
