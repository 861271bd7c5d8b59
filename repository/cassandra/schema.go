package cassandra

// table is the wide table holding every document, keyed by id_document.
const table = "documents"

// columnByField is the single declarative external-name → storage-column
// mapping. Both the insert column list and the update key translation
// consult it so the two paths cannot drift.
var columnByField = map[string]string{
	"idDocument":        "id_document",
	"idAsset":           "id_asset",
	"ownerAddress":      "owner_address",
	"operation":         "operation",
	"process":           "process",
	"nature":            "nature",
	"stage":             "stage",
	"data":              "data",
	"dataHash":          "data_hash",
	"channelName":       "channel_name",
	"dateTime":          "date_time",
	"hashTransaction":   "hash_transaction",
	"blockNumber":       "block_number",
	"statusTransaction": "status_transaction",
	"status":            "status",
	"amount":            "amount",
	"initialAmount":     "initial_amount",
	"idOrg":             "id_org",
	"ownershipType":     "ownership_type",
	"groupedBy":         "grouped_by",
	"groupedAssets":     "grouped_assets",
	"idExternal":        "id_external",
	"idPersonTarget":    "id_person_target",
	"idLocalTarget":     "id_local_target",
	"amountMoved":       "amount_moved",
	"createdAt":         "created_at",
}

// columns fixes the column order shared by the insert statement and every
// select, so scan destinations line up.
const columns = `id_document, id_asset, owner_address, operation, process, nature, stage, ` +
	`data, data_hash, channel_name, date_time, hash_transaction, block_number, ` +
	`status_transaction, status, amount, initial_amount, id_org, ownership_type, ` +
	`grouped_by, grouped_assets, id_external, id_person_target, id_local_target, ` +
	`amount_moved, created_at`

const placeholders = `?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?`

// columnFor translates an external field name to its storage column.
// Unrecognized names pass through unchanged.
func columnFor(field string) string {
	if col, ok := columnByField[field]; ok {
		return col
	}
	return field
}
