// Package onchain holds the helpers for the trust boundary with the
// chain: addresses and transaction hashes are validated for shape here,
// but the events themselves are accepted as already verified input.
package onchain

import (
	"strings"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/common/hexutil"
)

// NormalizeAddress validates a 20-byte hex address and returns its
// canonical lowercase form.
func NormalizeAddress(s string) (string, bool) {
	if !common.IsHexAddress(s) {
		return "", false
	}
	return strings.ToLower(common.HexToAddress(s).Hex()), true
}

// IsTxHash reports whether s is a 32-byte 0x-prefixed hex hash.
func IsTxHash(s string) bool {
	if !strings.HasPrefix(s, "0x") {
		return false
	}
	b, err := hexutil.Decode(s)
	return err == nil && len(b) == common.HashLength
}

// NormalizeTxHash returns the lowercase form of a transaction hash.
func NormalizeTxHash(s string) string {
	return strings.ToLower(s)
}
