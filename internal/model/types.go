package model

import (
	"fmt"
	"math/big"
	"strings"
	"time"
)

// ZeroAddress marks mints and burns in token transfer feeds.
const ZeroAddress = "0x0000000000000000000000000000000000000000"

// -----------------------------------------------------------------------------
// Feed Items
// -----------------------------------------------------------------------------

// Transaction is a top-level transaction from the explorer.
type Transaction struct {
	Hash           string // Primary key (0x-prefixed, lowercase)
	From           string // Sender address
	To             string // Recipient address (empty for contract creation)
	FromIsContract bool
	ToIsContract   bool
	Value          *big.Int // Native value in wei
	Method         string   // Decoded method name, if any
	TxTypes        []string // Explorer classification (coin_transfer, contract_call, ...)
	Status         string   // ok / error
	Timestamp      time.Time
}

// Key returns the cursor key for a transaction.
func (t Transaction) Key() string { return t.Hash }

// IsCoinTransfer reports whether the explorer classified this as a plain
// native transfer.
func (t Transaction) IsCoinTransfer() bool {
	for _, tt := range t.TxTypes {
		if tt == "coin_transfer" {
			return true
		}
	}
	return false
}

// InternalTransaction is a message call executed inside a transaction.
type InternalTransaction struct {
	TxHash       string
	Index        int64 // Position within the parent transaction
	From         string
	To           string
	ToIsContract bool
	Value        *big.Int // wei
	CallType     string
	Timestamp    time.Time
}

// Key returns the cursor key for an internal transaction. A transaction can
// contain several internal calls, so the index disambiguates.
func (it InternalTransaction) Key() string {
	return fmt.Sprintf("%s:%d", it.TxHash, it.Index)
}

// LogEntry is a contract event log.
type LogEntry struct {
	TxHash      string
	BlockNumber int64
	Index       int64 // Log index within the block
	Address     string
	Topics      []string
	Params      []LogParam // Decoded parameters, when the explorer decoded them
	Timestamp   time.Time
}

// LogParam is one decoded event parameter.
type LogParam struct {
	Name  string
	Type  string
	Value string
}

// Key returns the cursor key for a log entry. Block number plus log index is
// stable across fetches; the transaction hash is the fallback when the
// explorer omits the block number.
func (l LogEntry) Key() string {
	if l.BlockNumber > 0 {
		return fmt.Sprintf("%d:%d", l.BlockNumber, l.Index)
	}
	return l.TxHash
}

// Param returns the decoded parameter with the given name, or "".
func (l LogEntry) Param(name string) string {
	for _, p := range l.Params {
		if p.Name == name {
			return p.Value
		}
	}
	return ""
}

// TokenTransfer is an ERC-20 transfer attached to a transaction.
type TokenTransfer struct {
	TxHash string
	From   string
	To     string
	Token  TokenInfo
	Amount *big.Int // Raw token units
}

// IsMint reports a transfer from the zero address.
func (tt TokenTransfer) IsMint() bool { return SameAddr(tt.From, ZeroAddress) }

// IsBurn reports a transfer to the zero address.
func (tt TokenTransfer) IsBurn() bool { return SameAddr(tt.To, ZeroAddress) }

// -----------------------------------------------------------------------------
// Tokens and Pairs
// -----------------------------------------------------------------------------

// TokenInfo describes an ERC-20 token.
type TokenInfo struct {
	Address  string
	Name     string
	Symbol   string
	Decimals int
}

// Pair is a W-Swap liquidity pair.
type Pair struct {
	Address string
	Token0  TokenInfo
	Token1  TokenInfo
}

// CounterToken returns the pair token that is not the given address.
func (p Pair) CounterToken(addr string) TokenInfo {
	if SameAddr(p.Token0.Address, addr) {
		return p.Token1
	}
	return p.Token0
}

// Contains reports whether either side of the pair is the given token.
func (p Pair) Contains(addr string) bool {
	return SameAddr(p.Token0.Address, addr) || SameAddr(p.Token1.Address, addr)
}

// -----------------------------------------------------------------------------
// Network Stats
// -----------------------------------------------------------------------------

// NetworkStats is a point-in-time snapshot of chain-wide counters.
type NetworkStats struct {
	TotalTransactions int64
	TotalAddresses    int64
	TotalBlocks       int64
	AverageBlockTime  time.Duration
}

// SupplyInfo holds token supply figures in wei.
type SupplyInfo struct {
	Total       *big.Int
	Circulating *big.Int
}

// SameAddr compares two hex addresses case-insensitively.
func SameAddr(a, b string) bool {
	return a != "" && strings.EqualFold(a, b)
}
