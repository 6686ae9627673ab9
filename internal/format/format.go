// Package format renders on-chain amounts and addresses for Telegram
// messages. All conversions stay on math/big so large wei values never
// lose precision.
package format

import (
	"fmt"
	"math/big"
	"strconv"
	"strings"
)

// weiPerWCO is 10^18, the native token's base-unit scale.
var weiPerWCO = new(big.Int).Exp(big.NewInt(10), big.NewInt(18), nil)

// WCOToWei converts a whole-token amount to wei.
func WCOToWei(wco int64) *big.Int {
	return new(big.Int).Mul(big.NewInt(wco), weiPerWCO)
}

// ParseWei parses a decimal base-unit string as emitted by the explorer.
func ParseWei(s string) (*big.Int, error) {
	if s == "" {
		return big.NewInt(0), nil
	}
	v, ok := new(big.Int).SetString(s, 10)
	if !ok {
		return nil, fmt.Errorf("invalid amount %q", s)
	}
	return v, nil
}

// WCO renders a wei amount as a human token amount with thousands
// separators and two fractional digits, e.g. "1,250,000.50".
func WCO(wei *big.Int) string {
	return Units(wei, 18)
}

// Units renders a raw token amount with the given decimals.
func Units(raw *big.Int, decimals int) string {
	if raw == nil {
		return "0.00"
	}
	scale := new(big.Int).Exp(big.NewInt(10), big.NewInt(int64(decimals)), nil)

	abs := new(big.Int).Abs(raw)
	whole, rem := new(big.Int).QuoRem(abs, scale, new(big.Int))

	// Two fractional digits, truncated.
	cents := new(big.Int).Div(new(big.Int).Mul(rem, big.NewInt(100)), scale)

	out := fmt.Sprintf("%s.%02d", comma(whole.String()), cents.Int64())
	if raw.Sign() < 0 {
		return "-" + out
	}
	return out
}

// USD renders a dollar valuation, e.g. "$12,345.67".
func USD(v *big.Rat) string {
	if v == nil {
		return "$0.00"
	}
	s := v.FloatString(2)
	neg := strings.HasPrefix(s, "-")
	s = strings.TrimPrefix(s, "-")

	dot := strings.IndexByte(s, '.')
	out := "$" + comma(s[:dot]) + s[dot:]
	if neg {
		return "-" + out
	}
	return out
}

// Price renders a small USD price with four fractional digits.
func Price(v *big.Rat) string {
	if v == nil {
		return "$0.0000"
	}
	return "$" + v.FloatString(4)
}

// Comma formats a non-negative count with thousands separators.
func Comma(n int64) string {
	return comma(strconv.FormatInt(n, 10))
}

// comma inserts thousands separators into a digit string.
func comma(digits string) string {
	n := len(digits)
	if n <= 3 {
		return digits
	}
	var b strings.Builder
	head := n % 3
	if head > 0 {
		b.WriteString(digits[:head])
	}
	for i := head; i < n; i += 3 {
		if b.Len() > 0 {
			b.WriteByte(',')
		}
		b.WriteString(digits[i : i+3])
	}
	return b.String()
}

// ShortAddr abbreviates a hex address for display.
func ShortAddr(addr string) string {
	if len(addr) <= 12 {
		return addr
	}
	return addr[:6] + "..." + addr[len(addr)-4:]
}

// markdownV2Escaper covers the characters Telegram requires escaped in
// MarkdownV2 text.
var markdownV2Escaper = strings.NewReplacer(
	"_", "\\_", "*", "\\*", "[", "\\[", "]", "\\]", "(", "\\(", ")", "\\)",
	"~", "\\~", "`", "\\`", ">", "\\>", "#", "\\#", "+", "\\+", "-", "\\-",
	"=", "\\=", "|", "\\|", "{", "\\{", "}", "\\}", ".", "\\.", "!", "\\!",
)

// EscapeMarkdownV2 escapes user-controlled text for MarkdownV2 messages.
func EscapeMarkdownV2(s string) string {
	return markdownV2Escaper.Replace(s)
}

// TxLink builds an explorer link for a transaction hash.
func TxLink(explorerBase, hash string) string {
	return strings.TrimRight(explorerBase, "/") + "/tx/" + hash
}

// AddrLink builds an explorer link for an address.
func AddrLink(explorerBase, addr string) string {
	return strings.TrimRight(explorerBase, "/") + "/address/" + addr
}
