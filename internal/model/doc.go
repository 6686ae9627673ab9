// Package model defines the domain types shared across the bot.
//
// Feed items (transactions, internal transactions, event logs, token
// transfers) carry a stable Key used for cursor tracking. Native amounts
// are wei (*big.Int); nothing in this package converts to floating point.
package model
