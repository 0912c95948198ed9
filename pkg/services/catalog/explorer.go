package catalog

import (
	"context"
	"strings"

	"github.com/de-tools/revenue-atlas/pkg/models/domain"
	"github.com/de-tools/revenue-atlas/pkg/models/store"
	"github.com/rs/zerolog"
)

// forbiddenTokens is a coarse keyword guard; the connection is read-only as well.
var forbiddenTokens = []string{
	"update ", "delete ", "insert ", "drop ", "alter ", "create ", "attach ", "pragma ",
}

const (
	msgOnlySelect   = "Only SELECT queries are allowed."
	msgMustBeSelect = "Query must start with SELECT."
)

type Reader interface {
	ListTables(ctx context.Context) ([]store.Table, error)
	Query(ctx context.Context, query string) ([]store.Row, error)
}

// Explorer lists the tables of the sales database and runs read-only queries on it.
type Explorer interface {
	ListTables(ctx context.Context) ([]domain.Table, error)
	ExecuteQuery(ctx context.Context, query string) ([]domain.Row, error)
}

type explorer struct {
	reader Reader
}

func NewExplorer(reader Reader) Explorer {
	return &explorer{reader: reader}
}

func (e *explorer) ListTables(ctx context.Context) ([]domain.Table, error) {
	tables, err := e.reader.ListTables(ctx)
	if err != nil {
		return nil, err
	}

	result := make([]domain.Table, 0, len(tables))
	for _, t := range tables {
		result = append(result, mapStoreTableToDomain(t))
	}
	return result, nil
}

func (e *explorer) ExecuteQuery(ctx context.Context, query string) ([]domain.Row, error) {
	query, err := NormalizeQuery(query)
	if err != nil {
		zerolog.Ctx(ctx).Warn().Err(err).Msg("rejected query")
		return nil, err
	}

	rows, err := e.reader.Query(ctx, query)
	if err != nil {
		return nil, &QueryError{Err: err}
	}

	result := make([]domain.Row, 0, len(rows))
	for _, r := range rows {
		result = append(result, domain.Row(r))
	}
	return result, nil
}

// NormalizeQuery trims whitespace and trailing semicolons and rejects anything
// that does not look like a single SELECT statement.
func NormalizeQuery(query string) (string, error) {
	query = strings.TrimRight(strings.TrimSpace(query), ";")
	lowered := strings.ToLower(query)

	for _, tok := range forbiddenTokens {
		if strings.Contains(lowered, tok) {
			return "", &QueryRejectedError{Msg: msgOnlySelect}
		}
	}
	if !strings.HasPrefix(lowered, "select") {
		return "", &QueryRejectedError{Msg: msgMustBeSelect}
	}
	return query, nil
}

func mapStoreTableToDomain(t store.Table) domain.Table {
	columns := make([]domain.Column, 0, len(t.Columns))
	for _, c := range t.Columns {
		columns = append(columns, domain.Column{Name: c.Name, Type: c.Type})
	}
	return domain.Table{Name: t.Name, Columns: columns}
}
