package explorer

// Wire types mirroring Blockscout v2 response shapes. Addresses come as
// objects, numeric amounts as decimal strings.

type wireAddr struct {
	Hash       string `json:"hash"`
	IsContract bool   `json:"is_contract"`
}

type wireTx struct {
	Hash      string    `json:"hash"`
	From      *wireAddr `json:"from"`
	To        *wireAddr `json:"to"`
	Value     string    `json:"value"`
	Method    string    `json:"method"`
	TxTypes   []string  `json:"tx_types"`
	Status    string    `json:"status"`
	Timestamp string    `json:"timestamp"`
}

type txPage struct {
	Items []wireTx `json:"items"`
}

type wireInternalTx struct {
	TransactionHash string    `json:"transaction_hash"`
	Index           int64     `json:"index"`
	From            *wireAddr `json:"from"`
	To              *wireAddr `json:"to"`
	Value           string    `json:"value"`
	Type            string    `json:"type"`
	Timestamp       string    `json:"timestamp"`
}

type internalTxPage struct {
	Items []wireInternalTx `json:"items"`
}

type wireLogParam struct {
	Name  string `json:"name"`
	Type  string `json:"type"`
	Value string `json:"value"`
}

type wireDecoded struct {
	MethodCall string         `json:"method_call"`
	Parameters []wireLogParam `json:"parameters"`
}

type wireLog struct {
	TransactionHash string       `json:"transaction_hash"`
	BlockNumber     int64        `json:"block_number"`
	Index           int64        `json:"index"`
	Address         *wireAddr    `json:"address"`
	Topics          []string     `json:"topics"`
	Decoded         *wireDecoded `json:"decoded"`
}

type logPage struct {
	Items []wireLog `json:"items"`
}

type wireToken struct {
	Address  string `json:"address"`
	Name     string `json:"name"`
	Symbol   string `json:"symbol"`
	Decimals string `json:"decimals"`
}

type wireTotal struct {
	Value    string `json:"value"`
	Decimals string `json:"decimals"`
}

type wireTokenTransfer struct {
	TransactionHash string    `json:"transaction_hash"`
	From            *wireAddr `json:"from"`
	To              *wireAddr `json:"to"`
	Token           wireToken `json:"token"`
	Total           wireTotal `json:"total"`
	Type            string    `json:"type"`
}

type tokenTransferPage struct {
	Items []wireTokenTransfer `json:"items"`
}

type wireStats struct {
	TotalTransactions string  `json:"total_transactions"`
	TotalAddresses    string  `json:"total_addresses"`
	TotalBlocks       string  `json:"total_blocks"`
	AverageBlockTime  float64 `json:"average_block_time"` // milliseconds
}
