package cassandra

import (
	"encoding/json"
	"time"

	"go.uber.org/zap"

	"github.com/jminango20/data-docs-api/domain"
)

// record is the fixed-column storage shape of a document. The variably
// shaped client fields are pinned down here: data as a JSON string, the
// relationship fields as native text lists.
type record struct {
	ID                string
	IDAsset           string
	OwnerAddress      string
	Operation         string
	Process           string
	Nature            string
	Stage             string
	Data              string
	DataHash          string
	ChannelName       string
	DateTime          string
	HashTransaction   string
	BlockNumber       int64
	StatusTransaction string
	Status            string
	Amount            float64
	InitialAmount     float64
	IDOrg             string
	OwnershipType     string
	GroupedBy         []string
	GroupedAssets     []string
	IDExternal        []string
	IDPersonTarget    string
	IDLocalTarget     string
	AmountMoved       float64
	CreatedAt         time.Time
}

// toStorageRecord normalizes a document into its storage shape. It never
// fails: unparseable list fields degrade to single-element lists with a
// warning. Applying it twice yields the same record as applying it once.
func toStorageRecord(doc *domain.Document, logger *zap.Logger) *record {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &record{
		ID:                doc.IDDocument,
		IDAsset:           doc.IDAsset,
		OwnerAddress:      doc.OwnerAddress,
		Operation:         string(doc.Operation),
		Process:           doc.Process,
		Nature:            doc.Nature,
		Stage:             doc.Stage,
		Data:              serializeData(doc.Data),
		DataHash:          doc.DataHash,
		ChannelName:       doc.ChannelName,
		DateTime:          doc.DateTime,
		HashTransaction:   doc.HashTransaction,
		BlockNumber:       doc.BlockNumber,
		StatusTransaction: doc.StatusTransaction,
		Status:            doc.Status,
		Amount:            doc.Amount,
		InitialAmount:     doc.InitialAmount,
		IDOrg:             doc.IDOrg,
		OwnershipType:     doc.OwnershipType,
		GroupedBy:         normalizeList(doc.GroupedBy, "groupedBy", logger),
		GroupedAssets:     normalizeList(doc.GroupedAssets, "groupedAssets", logger),
		IDExternal:        normalizeList(doc.IDExternal, "idExternal", logger),
		IDPersonTarget:    doc.IDPersonTarget,
		IDLocalTarget:     doc.IDLocalTarget,
		AmountMoved:       doc.AmountMoved,
		CreatedAt:         doc.CreatedAt,
	}
}

// fromRecord rebuilds the domain document, deserializing the data column so
// the storage representation never leaks into the domain type.
func fromRecord(rec *record) *domain.Document {
	doc := &domain.Document{
		IDDocument:        rec.ID,
		IDAsset:           rec.IDAsset,
		OwnerAddress:      rec.OwnerAddress,
		Operation:         domain.OperationKind(rec.Operation),
		Process:           rec.Process,
		Nature:            rec.Nature,
		Stage:             rec.Stage,
		DataHash:          rec.DataHash,
		ChannelName:       rec.ChannelName,
		DateTime:          rec.DateTime,
		HashTransaction:   rec.HashTransaction,
		BlockNumber:       rec.BlockNumber,
		StatusTransaction: rec.StatusTransaction,
		Status:            rec.Status,
		Amount:            rec.Amount,
		InitialAmount:     rec.InitialAmount,
		IDOrg:             rec.IDOrg,
		OwnershipType:     rec.OwnershipType,
		IDPersonTarget:    rec.IDPersonTarget,
		IDLocalTarget:     rec.IDLocalTarget,
		AmountMoved:       rec.AmountMoved,
		CreatedAt:         rec.CreatedAt,
	}
	if rec.Data != "" {
		var parsed interface{}
		if err := json.Unmarshal([]byte(rec.Data), &parsed); err == nil {
			doc.Data = parsed
		} else {
			doc.Data = rec.Data
		}
	}
	if rec.GroupedBy != nil {
		doc.GroupedBy = rec.GroupedBy
	}
	if rec.GroupedAssets != nil {
		doc.GroupedAssets = rec.GroupedAssets
	}
	if rec.IDExternal != nil {
		doc.IDExternal = rec.IDExternal
	}
	return doc
}

// normalizeList coerces a logically list-typed value into []string. Strings
// are parsed as JSON arrays first; on parse failure the raw string becomes a
// one-element list. Non-array values are wrapped the same way. Element order
// is preserved.
func normalizeList(v interface{}, field string, logger *zap.Logger) []string {
	if logger == nil {
		logger = zap.NewNop()
	}
	switch val := v.(type) {
	case nil:
		return nil
	case []string:
		out := make([]string, len(val))
		copy(out, val)
		return out
	case string:
		var parsed interface{}
		if err := json.Unmarshal([]byte(val), &parsed); err != nil {
			logger.Warn("list field is not a JSON array, wrapping raw value",
				zap.String("field", field))
			return []string{val}
		}
		if arr, ok := parsed.([]interface{}); ok {
			return coerceElements(arr)
		}
		return []string{coerceString(parsed)}
	case []interface{}:
		return coerceElements(val)
	default:
		return []string{coerceString(v)}
	}
}

func coerceElements(arr []interface{}) []string {
	out := make([]string, 0, len(arr))
	for _, el := range arr {
		out = append(out, coerceString(el))
	}
	return out
}

// coerceString renders a value as a string, via JSON for non-strings so the
// rendering is stable across round trips.
func coerceString(v interface{}) string {
	if s, ok := v.(string); ok {
		return s
	}
	b, err := json.Marshal(v)
	if err != nil {
		return ""
	}
	return string(b)
}

// serializeData flattens the free-form data field to a JSON string unless it
// already is one.
func serializeData(v interface{}) string {
	switch val := v.(type) {
	case nil:
		return ""
	case string:
		return val
	default:
		return coerceString(v)
	}
}
