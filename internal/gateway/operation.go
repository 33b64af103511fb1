package gateway

import (
	"fmt"
	"math"
	"strconv"
	"strings"
)

// Operation is a dispatch selector. The numbering is part of the host
// contract and must not be reordered.
type Operation uint8

const (
	OpOpen Operation = iota
	OpClose
	OpHas
	OpGet
	OpScan
	OpPut
	OpDel
	OpBeginSync

	operationCount = iota
)

var operationNames = [operationCount]string{
	OpOpen:      "open",
	OpClose:     "close",
	OpHas:       "has",
	OpGet:       "get",
	OpScan:      "scan",
	OpPut:       "put",
	OpDel:       "del",
	OpBeginSync: "beginSync",
}

func (o Operation) String() string {
	if int(o) < len(operationNames) {
		return operationNames[o]
	}
	return "Operation(" + strconv.Itoa(int(o)) + ")"
}

// ParseOperation resolves a raw selector. Codes outside the operation set
// are rejected with [ErrInvalidRPC].
func ParseOperation(rpc uint8) (Operation, error) {
	if int(rpc) >= operationCount {
		return 0, fmt.Errorf("%w: %d", ErrInvalidRPC, rpc)
	}
	return Operation(rpc), nil
}

// LookupOperation resolves either a decimal selector or an operation name
// (case-insensitive).
func LookupOperation(s string) (Operation, error) {
	if n, err := strconv.ParseUint(s, 10, 8); err == nil {
		return ParseOperation(uint8(n))
	}

	for i, name := range operationNames {
		if strings.EqualFold(name, s) {
			return Operation(i), nil
		}
	}

	return 0, fmt.Errorf("%w: %q", ErrInvalidRPC, s)
}

// SelectorFromNumber narrows a host number (JavaScript has no integer type)
// to a raw selector byte. Fractions, NaN, infinities and values outside
// 0..255 are rejected with [ErrInvalidRPC]; range against the operation set
// is left to Dispatch.
func SelectorFromNumber(f float64) (uint8, error) {
	if f != math.Trunc(f) || f < 0 || f > math.MaxUint8 {
		return 0, fmt.Errorf("%w: %v", ErrInvalidRPC, f)
	}
	return uint8(f), nil
}
