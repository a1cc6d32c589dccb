package viewmodels

// ImportBatch is the JSON shape of a batch returned by the import API.
type ImportBatch struct {
	ID           string            `json:"id"`
	Type         string            `json:"type"`
	FileName     string            `json:"file_name,omitempty"`
	Mapping      map[string]string `json:"mapping,omitempty"`
	TotalRows    int               `json:"total_rows"`
	SuccessCount int               `json:"success_count"`
	FailedCount  int               `json:"failed_count"`
	Status       string            `json:"status"`
	CreatedAt    string            `json:"created_at"`
	CompletedAt  string            `json:"completed_at,omitempty"`
}

type ImportError struct {
	Row   int    `json:"row"`
	Field string `json:"field"`
	Error string `json:"error"`
}
