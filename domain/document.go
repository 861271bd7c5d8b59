package domain

import (
	"encoding/json"
	"time"
)

// OperationKind enumerates the asset operations a document can describe.
type OperationKind string

const (
	OperationCreation       OperationKind = "creation"
	OperationTransference   OperationKind = "transference"
	OperationGrouping       OperationKind = "grouping"
	OperationUngrouping     OperationKind = "ungrouping"
	OperationTransformation OperationKind = "transformation"
	OperationSplitting      OperationKind = "splitting"
	OperationInactivation   OperationKind = "inactivation"
)

// Document is one persisted record describing an asset-related operation.
// Documents are append-only: each operation on an asset produces a new
// document keyed by IDDocument, it never overwrites a prior one.
//
// Data, IDExternal, GroupedBy and GroupedAssets are logically arrays at the
// API boundary but clients send them in varying shapes (native arrays,
// JSON-encoded strings, bare scalars), so they are held loosely typed here
// and normalized at the storage edge.
type Document struct {
	IDDocument        string        `json:"idDocument,omitempty"`
	IDAsset           string        `json:"idAsset"`
	OwnerAddress      string        `json:"ownerAddress"`
	Operation         OperationKind `json:"operation"`
	Process           string        `json:"process"`
	Nature            string        `json:"nature"`
	Stage             string        `json:"stage"`
	Data              interface{}   `json:"data"`
	DataHash          string        `json:"dataHash"`
	ChannelName       string        `json:"channelName"`
	DateTime          string        `json:"dateTime"`
	HashTransaction   string        `json:"hashTransaction,omitempty"`
	BlockNumber       int64         `json:"blockNumber,omitempty"`
	StatusTransaction string        `json:"statusTransaction,omitempty"`
	Status            string        `json:"status,omitempty"`
	Amount            float64       `json:"amount,omitempty"`
	InitialAmount     float64       `json:"initialAmount,omitempty"`
	IDOrg             string        `json:"idOrg,omitempty"`
	OwnershipType     string        `json:"ownershipType,omitempty"`
	GroupedBy         interface{}   `json:"groupedBy,omitempty"`
	GroupedAssets     interface{}   `json:"groupedAssets,omitempty"`
	IDExternal        interface{}   `json:"idExternal,omitempty"`
	IDPersonTarget    string        `json:"idPersonTarget,omitempty"`
	IDLocalTarget     string        `json:"idLocalTarget,omitempty"`
	AmountMoved       float64       `json:"amountMoved,omitempty"`
	CreatedAt         time.Time     `json:"createdAt,omitempty"`
}

// UpdatableFields is the allow-list of externally mutable document fields.
// Everything else is immutable after insert.
var UpdatableFields = map[string]struct{}{
	"hashTransaction":   {},
	"blockNumber":       {},
	"status":            {},
	"statusTransaction": {},
	"amount":            {},
	"idLocalTarget":     {},
	"dataHash":          {},
}

// NormalizeUpdateValue coerces an update value to the storage type of its
// column. JSON decoding turns every number into float64, which the bigint
// blockNumber column rejects, so integer fields are converted back to int64
// before reaching the store.
func NormalizeUpdateValue(field string, value interface{}) interface{} {
	if field != "blockNumber" {
		return value
	}
	switch n := value.(type) {
	case float64:
		return int64(n)
	case json.Number:
		if i, err := n.Int64(); err == nil {
			return i
		}
		return value
	case int:
		return int64(n)
	default:
		return value
	}
}

// SearchField identifies a non-unique secondary lookup column.
type SearchField string

const (
	SearchByAsset       SearchField = "idAsset"
	SearchByTransaction SearchField = "hashTransaction"
)

// IsValidSearchField reports whether s names a searchable field.
func IsValidSearchField(s string) bool {
	return s == string(SearchByAsset) || s == string(SearchByTransaction)
}
