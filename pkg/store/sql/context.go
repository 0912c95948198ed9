package sql

import (
	"context"
	"database/sql"
)

type connKey struct{}

// WithConn pins conn to ctx so that every store call made with the returned
// context runs on the same connection. The caller owns conn and must close it.
func WithConn(ctx context.Context, conn *sql.Conn) context.Context {
	return context.WithValue(ctx, connKey{}, conn)
}

func GetConn(ctx context.Context) *sql.Conn {
	conn, _ := ctx.Value(connKey{}).(*sql.Conn)
	return conn
}
