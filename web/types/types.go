package types

// GenerateRequest is the JSON body of POST /v1/readings/generate. Lang is a
// pointer so an absent field can be told apart from an empty code.
type GenerateRequest struct {
	UserID      string   `json:"user_id"`
	Symbols     []string `json:"symbols"`
	CultureMode bool     `json:"culture_mode"`
	Lang        *string  `json:"lang"`
	Region      string   `json:"region"`
}

// GenerateResponse carries the delivered reading.
type GenerateResponse struct {
	Text string `json:"text"`
}

// ErrorResponse is returned for every non-2xx answer.
type ErrorResponse struct {
	Error string `json:"error"`
}

// StatsResponse reports in-memory store sizes.
type StatsResponse struct {
	Users           int `json:"users"`
	Readings        int `json:"readings"`
	TemplateRecords int `json:"template_records"`
	CatalogSymbols  int `json:"catalog_symbols"`
}
