package api

type Column struct {
	Name string `json:"name"`
	Type string `json:"type"`
}

type Table struct {
	Table   string   `json:"table"`
	Columns []Column `json:"columns"`
}

type SchemaResponse struct {
	Tables []Table `json:"tables"`
}

type SQLRequest struct {
	SQL string `json:"sql" validate:"required"`
}

type SQLResponse struct {
	Rows []map[string]any `json:"rows"`
}
