package core

import (
	"github.com/NethermindEth/makimono/core/felt"
	"github.com/NethermindEth/makimono/encoder/bincode"
)

type ClassType uint8

const (
	SierraClassType ClassType = iota
	LegacyClassType
	UnknownClassType
)

func (t ClassType) String() string {
	switch t {
	case SierraClassType:
		return "Sierra"
	case LegacyClassType:
		return "Legacy"
	default:
		return "Unknown"
	}
}

func (t ClassType) MarshalText() ([]byte, error) {
	return []byte(t.String()), nil
}

// ClassTypeOf classifies a class_info value by its first byte, which is the
// class enum discriminant. The rest of the value is not looked at.
func ClassTypeOf(value []byte) ClassType {
	if len(value) == 0 {
		return UnknownClassType
	}
	switch value[0] {
	case 0:
		return SierraClassType
	case 1:
		return LegacyClassType
	default:
		return UnknownClassType
	}
}

// Class is either a *SierraClass or a *LegacyClass.
type Class interface {
	ClassType() ClassType
	isClass()
}

var (
	_ Class = (*SierraClass)(nil)
	_ Class = (*LegacyClass)(nil)
)

type SierraEntryPoint struct {
	Selector felt.Felt
	Index    uint64
}

func decodeSierraEntryPoint(d *bincode.Decoder) SierraEntryPoint {
	return SierraEntryPoint{
		Selector: decodeFelt(d),
		Index:    d.U64(),
	}
}

type SierraEntryPointsByType struct {
	Constructor []SierraEntryPoint
	External    []SierraEntryPoint
	L1Handler   []SierraEntryPoint
}

// SierraClass is a Cairo 1 class in its flattened form.
type SierraClass struct {
	Program         []felt.Felt
	ContractVersion string
	EntryPoints     SierraEntryPointsByType
	// Json encoded
	Abi string
}

type LegacyEntryPoint struct {
	Offset   uint64
	Selector felt.Felt
}

func decodeLegacyEntryPoint(d *bincode.Decoder) LegacyEntryPoint {
	return LegacyEntryPoint{
		Offset:   d.U64(),
		Selector: decodeFelt(d),
	}
}

type LegacyEntryPointsByType struct {
	Constructor []LegacyEntryPoint
	External    []LegacyEntryPoint
	L1Handler   []LegacyEntryPoint
}

// LegacyClass is a Cairo 0 class.
type LegacyClass struct {
	// Compressed program json
	Program     []byte
	EntryPoints LegacyEntryPointsByType
	// nil when the class was declared without an abi
	Abi []LegacyAbiEntry
}

func (*SierraClass) ClassType() ClassType { return SierraClassType }
func (*LegacyClass) ClassType() ClassType { return LegacyClassType }

func (*SierraClass) isClass() {}
func (*LegacyClass) isClass() {}

type AbiParam struct {
	Name string `json:"name"`
	Type string `json:"type"`
}

func decodeAbiParam(d *bincode.Decoder) AbiParam {
	return AbiParam{
		Name: d.Text(),
		Type: d.Text(),
	}
}

type AbiOutput struct {
	Type string `json:"type"`
}

type AbiMember struct {
	Name   string `json:"name"`
	Type   string `json:"type"`
	Offset uint64 `json:"offset"`
}

// LegacyAbiEntry is a *LegacyAbiFunction, *LegacyAbiEvent or *LegacyAbiStruct.
type LegacyAbiEntry interface {
	EntryName() string
	isLegacyAbiEntry()
}

type LegacyAbiFunction struct {
	Type    string      `json:"type"`
	Name    string      `json:"name"`
	Inputs  []AbiParam  `json:"inputs"`
	Outputs []AbiOutput `json:"outputs"`
}

const (
	LegacyAbiEventType  = "event"
	LegacyAbiStructType = "struct"
)

type LegacyAbiEvent struct {
	Type string     `json:"type"`
	Name string     `json:"name"`
	Data []AbiParam `json:"data"`
	Keys []AbiParam `json:"keys"`
}

type LegacyAbiStruct struct {
	Type    string      `json:"type"`
	Name    string      `json:"name"`
	Size    uint64      `json:"size"`
	Members []AbiMember `json:"members"`
}

func (e *LegacyAbiFunction) EntryName() string { return e.Name }
func (e *LegacyAbiEvent) EntryName() string    { return e.Name }
func (e *LegacyAbiStruct) EntryName() string   { return e.Name }

func (*LegacyAbiFunction) isLegacyAbiEntry() {}
func (*LegacyAbiEvent) isLegacyAbiEntry()    {}
func (*LegacyAbiStruct) isLegacyAbiEntry()   {}

// Legacy ABI entries carry no enum tag, the body that follows type and name
// depends on the value of type.
func decodeLegacyAbiEntry(d *bincode.Decoder) LegacyAbiEntry {
	entryType, name := d.Text(), d.Text()
	switch entryType {
	case LegacyAbiEventType:
		return &LegacyAbiEvent{
			Type: entryType,
			Name: name,
			Data: bincode.Seq(d, decodeAbiParam),
			Keys: bincode.Seq(d, decodeAbiParam),
		}
	case LegacyAbiStructType:
		return &LegacyAbiStruct{
			Type: entryType,
			Name: name,
			Size: d.U64(),
			Members: bincode.Seq(d, func(d *bincode.Decoder) AbiMember {
				return AbiMember{Name: d.Text(), Type: d.Text(), Offset: d.U64()}
			}),
		}
	default:
		return &LegacyAbiFunction{
			Type:   entryType,
			Name:   name,
			Inputs: bincode.Seq(d, decodeAbiParam),
			Outputs: bincode.Seq(d, func(d *bincode.Decoder) AbiOutput {
				return AbiOutput{Type: d.Text()}
			}),
		}
	}
}

func decodeClass(d *bincode.Decoder) Class {
	switch v := d.Variant(); v {
	case 0:
		return &SierraClass{
			Program:         decodeFelts(d),
			ContractVersion: d.Text(),
			EntryPoints: SierraEntryPointsByType{
				Constructor: bincode.Seq(d, decodeSierraEntryPoint),
				External:    bincode.Seq(d, decodeSierraEntryPoint),
				L1Handler:   bincode.Seq(d, decodeSierraEntryPoint),
			},
			Abi: d.Text(),
		}
	case 1:
		c := &LegacyClass{
			Program: d.Bytes(),
			EntryPoints: LegacyEntryPointsByType{
				Constructor: bincode.Seq(d, decodeLegacyEntryPoint),
				External:    bincode.Seq(d, decodeLegacyEntryPoint),
				L1Handler:   bincode.Seq(d, decodeLegacyEntryPoint),
			},
		}
		if d.Option() {
			c.Abi = bincode.Seq(d, decodeLegacyAbiEntry)
		}
		return c
	default:
		d.UnknownVariant("ContractClass", v)
		return nil
	}
}

// ClassInfo is the record stored in the class_info column.
type ClassInfo struct {
	Class             Class
	CompiledClassHash *felt.Felt
}

func decodeClassInfo(d *bincode.Decoder) *ClassInfo {
	return &ClassInfo{
		Class:             decodeClass(d),
		CompiledClassHash: decodeOptionalFelt(d),
	}
}

// UnmarshalClassInfo fully decodes a class_info value.
func UnmarshalClassInfo(b []byte) (*ClassInfo, error) {
	return bincode.Unmarshal(b, decodeClassInfo)
}
