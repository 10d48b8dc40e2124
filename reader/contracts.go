package reader

import (
	"bytes"
	"encoding/hex"
	"errors"
	"fmt"

	"github.com/NethermindEth/makimono/core"
	"github.com/NethermindEth/makimono/core/felt"
	"github.com/NethermindEth/makimono/db"
)

type ContractInfo struct {
	// Rendered with all 32 bytes, except for keys shorter than an address
	// which are rendered as stored.
	Address   string     `json:"address"`
	ClassHash *felt.Felt `json:"class_hash"`
	Nonce     *uint64    `json:"nonce"`
}

type StorageEntry struct {
	Key   string    `json:"key"`
	Value felt.Felt `json:"value"`
}

// optional turns ErrNotFound into a nil result.
func optional[T any](v T, err error) (*T, error) {
	if errors.Is(err, ErrNotFound) {
		return nil, nil
	} else if err != nil {
		return nil, err
	}
	return &v, nil
}

func (r *Reader) classHashAt(addr []byte) (*felt.Felt, error) {
	return optional(record(r, db.ContractClassHashes, addr, core.UnmarshalFelt))
}

func (r *Reader) nonceAt(addr []byte) (*uint64, error) {
	return optional(record(r, db.ContractNonces, addr, core.UnmarshalNonce))
}

// Contract merges the class hash and nonce of address. Either may be absent,
// ErrNotFound is returned when both are.
func (r *Reader) Contract(address string) (*ContractInfo, error) {
	addr, err := felt.Parse(address)
	if err != nil {
		return nil, ErrNotFound
	}
	key := addr.Marshal()

	classHash, err := r.classHashAt(key)
	if err != nil {
		return nil, err
	}
	nonce, err := r.nonceAt(key)
	if err != nil {
		return nil, err
	}
	if classHash == nil && nonce == nil {
		return nil, ErrNotFound
	}
	return &ContractInfo{
		Address:   addr.FullHex(),
		ClassHash: classHash,
		Nonce:     nonce,
	}, nil
}

// ContractStorage returns up to limit storage slots of address in key order.
func (r *Reader) ContractStorage(address string, limit int) ([]StorageEntry, error) {
	entries := []StorageEntry{}
	addr, err := felt.Parse(address)
	if err != nil || limit <= 0 {
		return entries, nil
	}
	prefix := addr.Marshal()

	it, err := r.store.NewIterator(db.ContractStorage, prefix, false)
	if err != nil {
		return nil, fmt.Errorf("iterate %s: %w", db.ContractStorage, err)
	}
	defer it.Close()

	for it.Next() {
		key := it.Key()
		if len(key) < db.ContractStorageKeySize {
			continue
		}
		if !bytes.Equal(key[:felt.Bytes], prefix) {
			break
		}

		value, err := it.Value()
		if err != nil {
			return nil, fmt.Errorf("read %s: %w", db.ContractStorage, err)
		}
		slot, err := core.UnmarshalFelt(value)
		if err != nil {
			r.decodeFailed(db.ContractStorage, key, value, err)
			continue
		}

		entries = append(entries, StorageEntry{
			Key:   "0x" + hex.EncodeToString(key[felt.Bytes:db.ContractStorageKeySize]),
			Value: slot,
		})
		if len(entries) >= limit {
			break
		}
	}
	return entries, nil
}

// ListContracts returns up to limit contracts in address order.
func (r *Reader) ListContracts(limit int) ([]ContractInfo, error) {
	contracts := []ContractInfo{}
	if limit <= 0 {
		return contracts, nil
	}

	it, err := r.store.NewIterator(db.ContractClassHashes, nil, false)
	if err != nil {
		return nil, fmt.Errorf("iterate %s: %w", db.ContractClassHashes, err)
	}
	defer it.Close()

	for it.Next() {
		key := it.Key()
		if len(key) == 0 {
			continue
		}

		value, err := it.Value()
		if err != nil {
			return nil, fmt.Errorf("read %s: %w", db.ContractClassHashes, err)
		}
		contract := ContractInfo{Address: "0x" + hex.EncodeToString(key)}
		if classHash, err := core.UnmarshalFelt(value); err == nil {
			contract.ClassHash = &classHash
		} else {
			r.decodeFailed(db.ContractClassHashes, key, value, err)
		}

		if len(key) >= felt.Bytes {
			addr := key[:felt.Bytes]
			contract.Address = "0x" + hex.EncodeToString(addr)
			if contract.Nonce, err = r.nonceAt(addr); err != nil {
				return nil, err
			}
		}

		contracts = append(contracts, contract)
		if len(contracts) >= limit {
			break
		}
	}
	return contracts, nil
}
