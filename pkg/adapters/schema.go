package adapters

import (
	"github.com/de-tools/revenue-atlas/pkg/models/api"
	"github.com/de-tools/revenue-atlas/pkg/models/domain"
)

func MapTableDomainToApi(t domain.Table) api.Table {
	columns := make([]api.Column, 0, len(t.Columns))
	for _, c := range t.Columns {
		columns = append(columns, api.Column{Name: c.Name, Type: c.Type})
	}
	return api.Table{Table: t.Name, Columns: columns}
}

func MapTablesDomainToApi(tables []domain.Table) api.SchemaResponse {
	res := api.SchemaResponse{Tables: make([]api.Table, 0, len(tables))}
	for _, t := range tables {
		res.Tables = append(res.Tables, MapTableDomainToApi(t))
	}
	return res
}

func MapRowsDomainToApi(rows []domain.Row) api.SQLResponse {
	res := api.SQLResponse{Rows: make([]map[string]any, 0, len(rows))}
	for _, r := range rows {
		res.Rows = append(res.Rows, r)
	}
	return res
}
