package tx

import (
	ec "github.com/bsv-blockchain/go-sdk/primitives/ec"
)

// TokenAnnotation marks a UTXO as carrying token balance in addition to
// its satoshi value.
type TokenAnnotation struct {
	TokenID string `json:"token_id"` // hex-encoded genesis txid
	Amount  uint64 `json:"amount"`   // raw token quantity
}

// UTXO represents an unspent transaction output tracked by the wallet.
type UTXO struct {
	TxID         []byte           `json:"txid"`          // 32 bytes
	Vout         uint32           `json:"vout"`
	Amount       uint64           `json:"amount"`        // satoshis
	ScriptPubKey []byte           `json:"script_pubkey"` // locking script bytes
	Token        *TokenAnnotation `json:"token,omitempty"`
	PrivateKey   *ec.PrivateKey   `json:"-"` // signing key (not serialized)
}

// CarriesToken reports whether the UTXO holds balance of the given token.
func (u *UTXO) CarriesToken(tokenID string) bool {
	return u.Token != nil && u.Token.TokenID == tokenID && u.Token.Amount > 0
}
