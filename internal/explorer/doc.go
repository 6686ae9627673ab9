// Package explorer provides the W-Chain Blockscout API client.
//
// REST base (v2 API): https://scan.w-chain.com/api/v2
//
// Feeds used by the watchers: address transactions (with direction
// filter), address internal transactions, address logs, network-wide
// validated transactions, and per-transaction token transfers. The
// price oracle client lives here too and caches its answers briefly.
package explorer
