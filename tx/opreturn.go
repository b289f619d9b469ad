// Package tx implements token-aware coin selection and transaction
// assembly for SLP-style token sends on a UTXO ledger.
package tx

import (
	"bytes"
	"encoding/binary"
	"encoding/hex"
	"fmt"

	"github.com/bsv-blockchain/go-sdk/script"
)

// Token overlay protocol constants.
var (
	// LokadIDBytes is the protocol flag: "SLP" followed by a NUL byte.
	LokadIDBytes = []byte{0x53, 0x4c, 0x50, 0x00}

	// SendActionBytes identifies a SEND payload.
	SendActionBytes = []byte("SEND")

	// tokenTypeBytes is the fungible token type marker.
	tokenTypeBytes = []byte{0x01}
)

const (
	// TokenIDLen is the length of a decoded token id.
	TokenIDLen = 32

	// QuantityLen is the length of one encoded quantity field.
	QuantityLen = 8

	// MaxSendQuantities caps the quantity fields in one SEND payload.
	MaxSendQuantities = 19
)

// BuildSendData constructs the OP_RETURN data pushes for a token send.
//
// Layout:
//
//	pushdata[0]: LokadID     (4 bytes, "SLP\x00")
//	pushdata[1]: TokenType   (1 byte, 0x01)
//	pushdata[2]: Action      (4 bytes, "SEND")
//	pushdata[3]: TokenID     (32 bytes)
//	pushdata[4..]: Quantity  (8 bytes big-endian, one per output)
//
// quantities[0] is the amount sent to the receiver; quantities[1], when
// present, is the token change returned to the sender.
func BuildSendData(tokenID string, quantities []uint64) ([][]byte, error) {
	idBytes, err := hex.DecodeString(tokenID)
	if err != nil {
		return nil, fmt.Errorf("%w: %q: %w", ErrInvalidTokenID, tokenID, err)
	}
	if len(idBytes) != TokenIDLen {
		return nil, fmt.Errorf("%w: got %d bytes", ErrInvalidTokenID, len(idBytes))
	}
	if len(quantities) == 0 || len(quantities) > MaxSendQuantities {
		return nil, fmt.Errorf("%w: got %d", ErrInvalidQuantities, len(quantities))
	}

	pushes := [][]byte{
		LokadIDBytes,
		tokenTypeBytes,
		SendActionBytes,
		idBytes,
	}
	for _, q := range quantities {
		buf := make([]byte, QuantityLen)
		binary.BigEndian.PutUint64(buf, q)
		pushes = append(pushes, buf)
	}

	return pushes, nil
}

// BuildSendScript creates the OP_RETURN locking script for a token send.
func BuildSendScript(tokenID string, quantities []uint64) (*script.Script, error) {
	pushes, err := BuildSendData(tokenID, quantities)
	if err != nil {
		return nil, err
	}
	s := &script.Script{}
	*s = append(*s, script.OpRETURN)
	for _, push := range pushes {
		if err := s.AppendPushData(push); err != nil {
			return nil, fmt.Errorf("%w: OP_RETURN push data: %w", ErrScriptBuild, err)
		}
	}
	return s, nil
}

// ParseSendScript extracts the token id and quantities from an OP_RETURN
// locking script produced by BuildSendScript.
func ParseSendScript(s *script.Script) (tokenID string, quantities []uint64, err error) {
	if s == nil || len(*s) == 0 || []byte(*s)[0] != script.OpRETURN {
		return "", nil, fmt.Errorf("%w: script does not start with OP_RETURN", ErrNotTokenSend)
	}
	chunks, err := s.ParseOps()
	if err != nil {
		return "", nil, fmt.Errorf("%w: %w", ErrInvalidOPReturn, err)
	}
	var pushes [][]byte
	for _, c := range chunks[1:] {
		pushes = append(pushes, c.Data)
	}
	return ParseSendData(pushes)
}

// ParseSendData extracts the token id and quantities from OP_RETURN data
// pushes produced by BuildSendData.
func ParseSendData(pushes [][]byte) (tokenID string, quantities []uint64, err error) {
	if len(pushes) < 5 {
		return "", nil, fmt.Errorf("%w: expected at least 5 data pushes, got %d",
			ErrInvalidOPReturn, len(pushes))
	}
	if !bytes.Equal(pushes[0], LokadIDBytes) {
		return "", nil, fmt.Errorf("%w: missing protocol flag", ErrNotTokenSend)
	}
	if !bytes.Equal(pushes[1], tokenTypeBytes) {
		return "", nil, fmt.Errorf("%w: unsupported token type", ErrNotTokenSend)
	}
	if !bytes.Equal(pushes[2], SendActionBytes) {
		return "", nil, fmt.Errorf("%w: action is not SEND", ErrNotTokenSend)
	}
	if len(pushes[3]) != TokenIDLen {
		return "", nil, fmt.Errorf("%w: token id must be %d bytes, got %d",
			ErrInvalidOPReturn, TokenIDLen, len(pushes[3]))
	}

	for i, push := range pushes[4:] {
		if len(push) != QuantityLen {
			return "", nil, fmt.Errorf("%w: quantity[%d] must be %d bytes, got %d",
				ErrInvalidOPReturn, i, QuantityLen, len(push))
		}
		quantities = append(quantities, binary.BigEndian.Uint64(push))
	}

	return hex.EncodeToString(pushes[3]), quantities, nil
}
