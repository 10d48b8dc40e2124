package reader

import (
	"errors"
	"fmt"

	"github.com/NethermindEth/makimono/core"
	"github.com/NethermindEth/makimono/core/felt"
	"github.com/NethermindEth/makimono/db"
	"github.com/jinzhu/copier"
)

type ClassInfo struct {
	ClassHash string         `json:"class_hash"`
	ClassType core.ClassType `json:"class_type"`
	// Only known after a full decode, see ClassDetail
	CompiledClassHash *felt.Felt `json:"compiled_class_hash"`
}

type EntryPointCounts struct {
	Constructor int `json:"constructor"`
	External    int `json:"external"`
	L1Handler   int `json:"l1_handler"`
}

type SierraClassDetail struct {
	ProgramLength        int              `json:"program_length"`
	ContractClassVersion string           `json:"contract_class_version"`
	EntryPoints          EntryPointCounts `json:"entry_points"`
	Abi                  string           `json:"abi"`
}

type LegacyEntryPoint struct {
	Offset   uint64    `json:"offset"`
	Selector felt.Felt `json:"selector"`
}

type LegacyEntryPoints struct {
	Constructor []LegacyEntryPoint `json:"constructor"`
	External    []LegacyEntryPoint `json:"external"`
	L1Handler   []LegacyEntryPoint `json:"l1_handler"`
}

type LegacyClassDetail struct {
	// Size of the compressed program
	ProgramSize int                   `json:"program_size"`
	EntryPoints LegacyEntryPoints     `json:"entry_points"`
	Abi         []core.LegacyAbiEntry `json:"abi"`
}

type ClassDetail struct {
	ClassInfo
	Sierra *SierraClassDetail `json:"sierra,omitempty"`
	Legacy *LegacyClassDetail `json:"legacy,omitempty"`
}

func parseClassHash(hash string) ([]byte, error) {
	f, err := felt.Parse(hash)
	if err != nil {
		return nil, ErrNotFound
	}
	return f.Marshal(), nil
}

// Class classifies the class by the discriminant of its record without decoding
// the body, so CompiledClassHash is always nil. Use ClassDetail for the rest.
func (r *Reader) Class(hash string) (*ClassInfo, error) {
	key, err := parseClassHash(hash)
	if err != nil {
		return nil, err
	}
	classType, err := record(r, db.ClassInfo, key, func(value []byte) (core.ClassType, error) {
		if len(value) == 0 {
			return core.UnknownClassType, ErrNotFound
		}
		return core.ClassTypeOf(value), nil
	})
	if err != nil {
		return nil, err
	}
	return &ClassInfo{
		ClassHash: felt.FromBytes(key).FullHex(),
		ClassType: classType,
	}, nil
}

// ClassDetail decodes the whole class record. Unlike the other lookups a record
// that does not decode is reported as an error rather than as ErrNotFound.
func (r *Reader) ClassDetail(hash string) (*ClassDetail, error) {
	key, err := parseClassHash(hash)
	if err != nil {
		return nil, err
	}
	value, err := db.GetCopy(r.store, db.ClassInfo, key)
	if err != nil {
		if errors.Is(err, db.ErrKeyNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("read %s: %w", db.ClassInfo, err)
	}
	info, err := core.UnmarshalClassInfo(value)
	if err != nil {
		r.decodeFailed(db.ClassInfo, key, value, err)
		return nil, fmt.Errorf("decode class %s: %w", felt.FromBytes(key).FullHex(), err)
	}

	detail := &ClassDetail{
		ClassInfo: ClassInfo{
			ClassHash:         felt.FromBytes(key).FullHex(),
			ClassType:         info.Class.ClassType(),
			CompiledClassHash: info.CompiledClassHash,
		},
	}
	switch class := info.Class.(type) {
	case *core.SierraClass:
		detail.Sierra = &SierraClassDetail{
			ProgramLength:        len(class.Program),
			ContractClassVersion: class.ContractVersion,
			EntryPoints: EntryPointCounts{
				Constructor: len(class.EntryPoints.Constructor),
				External:    len(class.EntryPoints.External),
				L1Handler:   len(class.EntryPoints.L1Handler),
			},
			Abi: class.Abi,
		}
	case *core.LegacyClass:
		legacy := &LegacyClassDetail{
			ProgramSize: len(class.Program),
			Abi:         class.Abi,
		}
		if err = copier.Copy(&legacy.EntryPoints, &class.EntryPoints); err != nil {
			return nil, fmt.Errorf("copy entry points: %w", err)
		}
		detail.Legacy = legacy
	default:
		return nil, fmt.Errorf("unexpected class type %T", class)
	}
	return detail, nil
}

// ListClasses returns up to limit classes in hash order. Keys that are not
// exactly one hash long are skipped.
func (r *Reader) ListClasses(limit int) ([]ClassInfo, error) {
	classes := []ClassInfo{}
	if limit <= 0 {
		return classes, nil
	}

	it, err := r.store.NewIterator(db.ClassInfo, nil, false)
	if err != nil {
		return nil, fmt.Errorf("iterate %s: %w", db.ClassInfo, err)
	}
	defer it.Close()

	for it.Next() {
		key := it.Key()
		if len(key) != felt.Bytes {
			continue
		}
		value, err := it.Value()
		if err != nil {
			return nil, fmt.Errorf("read %s: %w", db.ClassInfo, err)
		}

		classes = append(classes, ClassInfo{
			ClassHash: felt.FromBytes(key).FullHex(),
			ClassType: core.ClassTypeOf(value),
		})
		if len(classes) >= limit {
			break
		}
	}
	return classes, nil
}
