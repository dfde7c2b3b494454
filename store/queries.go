package store

import (
	"database/sql"
	"embed"
	"io/fs"
	"path/filepath"
	"strings"

	"github.com/jmoiron/sqlx"
	"github.com/pkg/errors"
	"github.com/qustavo/dotsql"
)

//go:embed queries/*.sql
var queriesFS embed.FS

// Queries runs the named queries of queries/*.sql against a DB or a Tx. The
// files use `?` placeholders; Rebind turns them into `$n` for PostgreSQL.
type Queries struct {
	dot *dotsql.DotSql
}

func LoadQueries() (*Queries, error) {
	builder := strings.Builder{}
	err := fs.WalkDir(queriesFS, "queries", func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() || filepath.Ext(path) != ".sql" {
			return nil
		}
		content, err := queriesFS.ReadFile(path)
		if err != nil {
			return err
		}
		builder.Write(content)
		builder.WriteString("\n")
		return nil
	})
	if err != nil {
		return nil, errors.Wrap(err, "store.LoadQueries error")
	}

	dot, err := dotsql.LoadFromString(builder.String())
	if err != nil {
		return nil, errors.Wrap(err, "store.LoadQueries error: parse")
	}
	return &Queries{dot: dot}, nil
}

func (r *Queries) raw(name string) (string, error) {
	query, err := r.dot.Raw(name)
	if err != nil {
		return "", errors.Errorf("store: query `%s` not found", name)
	}
	return query, nil
}

func (r *Queries) Exec(db sqlx.Ext, name string, args ...any) (sql.Result, error) {
	query, err := r.raw(name)
	if err != nil {
		return nil, err
	}
	return db.Exec(db.Rebind(query), args...)
}

func (r *Queries) Get(db sqlx.Ext, name string, dest any, args ...any) error {
	query, err := r.raw(name)
	if err != nil {
		return err
	}
	return sqlx.Get(db, dest, db.Rebind(query), args...)
}

func (r *Queries) Select(db sqlx.Ext, name string, dest any, args ...any) error {
	query, err := r.raw(name)
	if err != nil {
		return err
	}
	return sqlx.Select(db, dest, db.Rebind(query), args...)
}
