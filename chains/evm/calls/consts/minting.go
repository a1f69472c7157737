package consts

import (
	"strings"

	"github.com/ethereum/go-ethereum/accounts/abi"
)

var MintingABI, _ = abi.JSON(strings.NewReader(`[{
  "name": "verifyOrder",
  "type": "function",
  "stateMutability": "view",
  "inputs": [
    {
      "name": "order",
      "type": "tuple",
      "components": [
        {"name": "order_id", "type": "string"},
        {"name": "order_type", "type": "uint8"},
        {"name": "expiry", "type": "uint256"},
        {"name": "nonce", "type": "uint256"},
        {"name": "benefactor", "type": "address"},
        {"name": "beneficiary", "type": "address"},
        {"name": "collateral_asset", "type": "address"},
        {"name": "collateral_amount", "type": "uint256"},
        {"name": "usde_amount", "type": "uint256"}
      ]
    },
    {
      "name": "signature",
      "type": "tuple",
      "components": [
        {"name": "signature_type", "type": "uint8"},
        {"name": "signature_bytes", "type": "bytes"}
      ]
    }
  ],
  "outputs": [{"name": "", "type": "bool"}]
}]`))
