package wallet

import (
	"bytes"
	"encoding/binary"
	"encoding/gob"
	"fmt"
	"os"
	"path/filepath"

	"go.etcd.io/bbolt"

	"github.com/slporg/libslp-go/tx"
)

var (
	bucketUTXOs    = []byte("utxos")
	bucketCounters = []byte("counters")
)

// counter keys, one per derivation chain.
var counterKeys = map[uint32][]byte{
	ExternalChain: []byte("next_external"),
	InternalChain: []byte("next_internal"),
}

// StoredUTXO is the persisted form of a spendable output. The signing key
// is not stored; it is re-derived from the chain and key index.
type StoredUTXO struct {
	TxID     []byte
	Vout     uint32
	Amount   uint64
	Token    *tx.TokenAnnotation
	Chain    uint32 // derivation chain of the owning address
	KeyIndex uint32 // derivation index of the owning address
}

// Store wraps a bbolt database holding the wallet's spendable-output set
// and its address-derivation counters.
type Store struct {
	db *bbolt.DB
}

// OpenStore opens or creates the bbolt database at dbPath. The parent
// directory is created if it does not exist.
func OpenStore(dbPath string) (*Store, error) {
	if err := os.MkdirAll(filepath.Dir(dbPath), 0700); err != nil {
		return nil, fmt.Errorf("wallet: create directory: %w", err)
	}
	db, err := bbolt.Open(dbPath, 0600, nil)
	if err != nil {
		return nil, fmt.Errorf("wallet: open bolt db: %w", err)
	}

	err = db.Update(func(btx *bbolt.Tx) error {
		for _, name := range [][]byte{bucketUTXOs, bucketCounters} {
			if _, err := btx.CreateBucketIfNotExists(name); err != nil {
				return fmt.Errorf("wallet: create bucket %q: %w", name, err)
			}
		}
		return nil
	})
	if err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("wallet: create buckets: %w", err)
	}

	return &Store{db: db}, nil
}

// Close closes the underlying database.
func (s *Store) Close() error { return s.db.Close() }

// utxoKey builds the bucket key: txid || vout (big-endian).
func utxoKey(txid []byte, vout uint32) []byte {
	key := make([]byte, len(txid)+4)
	copy(key, txid)
	binary.BigEndian.PutUint32(key[len(txid):], vout)
	return key
}

// PutUTXO inserts or replaces a spendable output.
func (s *Store) PutUTXO(u StoredUTXO) error {
	var buf bytes.Buffer
	if err := gob.NewEncoder(&buf).Encode(u); err != nil {
		return fmt.Errorf("wallet: encode utxo: %w", err)
	}
	return s.db.Update(func(btx *bbolt.Tx) error {
		return btx.Bucket(bucketUTXOs).Put(utxoKey(u.TxID, u.Vout), buf.Bytes())
	})
}

// RemoveUTXO deletes a spent output. Removing an unknown output fails
// with ErrUTXONotFound.
func (s *Store) RemoveUTXO(txid []byte, vout uint32) error {
	return s.db.Update(func(btx *bbolt.Tx) error {
		b := btx.Bucket(bucketUTXOs)
		key := utxoKey(txid, vout)
		if b.Get(key) == nil {
			return fmt.Errorf("%w: %x:%d", ErrUTXONotFound, txid, vout)
		}
		return b.Delete(key)
	})
}

// UTXOs returns a point-in-time snapshot of the spendable-output set.
// The snapshot is a copy; later store mutations do not affect it, which
// keeps an in-flight coin selection consistent.
func (s *Store) UTXOs() ([]StoredUTXO, error) {
	var out []StoredUTXO
	err := s.db.View(func(btx *bbolt.Tx) error {
		return btx.Bucket(bucketUTXOs).ForEach(func(_, v []byte) error {
			var u StoredUTXO
			if err := gob.NewDecoder(bytes.NewReader(v)).Decode(&u); err != nil {
				return fmt.Errorf("wallet: decode utxo: %w", err)
			}
			out = append(out, u)
			return nil
		})
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

// NextAddressIndex returns the next unused derivation index for the given
// chain and advances the persisted counter, so the index is never handed
// out twice.
func (s *Store) NextAddressIndex(chain uint32) (uint32, error) {
	key, ok := counterKeys[chain]
	if !ok {
		return 0, fmt.Errorf("%w: %d", ErrUnknownChain, chain)
	}

	var next uint32
	err := s.db.Update(func(btx *bbolt.Tx) error {
		b := btx.Bucket(bucketCounters)
		if v := b.Get(key); len(v) == 4 {
			next = binary.BigEndian.Uint32(v)
		}
		if next > MaxAddressIndex {
			return fmt.Errorf("%w: chain %d", ErrIndexOutOfRange, chain)
		}
		buf := make([]byte, 4)
		binary.BigEndian.PutUint32(buf, next+1)
		return b.Put(key, buf)
	})
	if err != nil {
		return 0, err
	}
	return next, nil
}
