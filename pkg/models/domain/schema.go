package domain

type Column struct {
	Name string
	Type string
}

type Table struct {
	Name    string
	Columns []Column
}

// Row is one result row of an ad-hoc query keyed by column name.
type Row map[string]any
