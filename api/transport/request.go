package transport

// DocumentPayload is one client-supplied draft document. The list-typed
// fields stay loosely typed because clients send them as arrays, JSON
// strings or bare scalars; normalization happens at the storage edge.
type DocumentPayload struct {
	IDAsset           string      `json:"idAsset" validate:"required"`
	OwnerAddress      string      `json:"ownerAddress" validate:"required"`
	Operation         string      `json:"operation" validate:"required,oneof=creation transference grouping ungrouping transformation splitting inactivation"`
	Process           string      `json:"process" validate:"required"`
	Nature            string      `json:"nature" validate:"required"`
	Stage             string      `json:"stage" validate:"required"`
	Data              interface{} `json:"data" validate:"required"`
	DataHash          string      `json:"dataHash" validate:"required"`
	ChannelName       string      `json:"channelName" validate:"required"`
	DateTime          string      `json:"dateTime" validate:"required"`
	HashTransaction   string      `json:"hashTransaction"`
	BlockNumber       int64       `json:"blockNumber"`
	StatusTransaction string      `json:"statusTransaction"`
	Status            string      `json:"status"`
	Amount            float64     `json:"amount"`
	InitialAmount     float64     `json:"initialAmount"`
	IDOrg             string      `json:"idOrg"`
	OwnershipType     string      `json:"ownershipType"`
	GroupedBy         interface{} `json:"groupedBy"`
	GroupedAssets     interface{} `json:"groupedAssets"`
	IDExternal        interface{} `json:"idExternal"`
	IDPersonTarget    string      `json:"idPersonTarget"`
	IDLocalTarget     string      `json:"idLocalTarget"`
	AmountMoved       float64     `json:"amountMoved"`
}

type AddDocumentsRequest struct {
	Documents []DocumentPayload `json:"documents" validate:"required,min=1,dive"`
}

type RemoveDocumentsRequest struct {
	IDDocuments []string `json:"idDocuments" validate:"required,min=1,dive,required"`
}

type UpdateDocumentsRequest struct {
	IDDocuments []string               `json:"idDocuments" validate:"required,min=1,dive,required"`
	Fields      map[string]interface{} `json:"fields" validate:"required"`
}

// SearchRequest addresses one indexed field with either a single value
// (paged) or a bounded value set (batch, unpaged).
type SearchRequest struct {
	Field     string   `json:"field" validate:"required,oneof=idAsset hashTransaction"`
	Value     string   `json:"value"`
	Values    []string `json:"values" validate:"omitempty,max=50,dive,required"`
	PageSize  int      `json:"pageSize" validate:"omitempty,min=1"`
	PageState string   `json:"pageState"`
}
