package store

import (
	"database/sql"
	"encoding/json"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/pkg/errors"
	"github.com/thanhnguyen2187/gom-savior/gom/gnode"
	"github.com/thanhnguyen2187/gom-savior/gom/gvalue"
)

type (
	// ImportID is a UUIDv7, so ids sort by creation time.
	ImportID string

	Store struct {
		db      *sqlx.DB
		queries *Queries
	}

	ImportRow struct {
		ImportID  ImportID `db:"import_id"`
		Source    string   `db:"source"`
		CreatedAt string   `db:"created_at"`
		NumNodes  int      `db:"num_nodes"`
	}
	NodeRow struct {
		ImportID ImportID `db:"import_id"`
		Position int      `db:"position"`
		NodeID   string   `db:"node_id"`
		FQN      string   `db:"fqn"`
		Path     string   `db:"path"`
		FileName string   `db:"file_name"`
	}
	// FieldRow keeps the value in its wire form, compacted. TypeCode holds
	// the bits of the uint64 code.
	FieldRow struct {
		FieldID   string `db:"field_id"`
		TypeCode  int64  `db:"type_code"`
		ValueJSON string `db:"value_json"`
	}
)

// createdAtLayout has a fixed width so that the text sorts by time.
const createdAtLayout = "2006-01-02T15:04:05.000000Z"

var ErrNotFound = errors.New("store: not found")

func NewImportID() ImportID {
	return ImportID(uuid.Must(uuid.NewV7()).String())
}

// Connect opens dbURL, brings its schema up to date and loads the queries.
func Connect(dbURL string) (*Store, error) {
	db, err := Open(dbURL)
	if err != nil {
		return nil, err
	}
	if err := Migrate(db); err != nil {
		db.Close()
		return nil, err
	}
	store, err := New(db)
	if err != nil {
		db.Close()
		return nil, err
	}
	return store, nil
}

func New(db *sqlx.DB) (*Store, error) {
	queries, err := LoadQueries()
	if err != nil {
		return nil, err
	}
	return &Store{
		db:      db,
		queries: queries,
	}, nil
}

func (r *Store) Close() error {
	return r.db.Close()
}

// SaveImport writes one import run with all of its nodes and fields in a
// single transaction.
func (r *Store) SaveImport(source string, pairs []gnode.NodeObjPair) (ImportID, error) {
	importID := NewImportID()
	createdAt := time.Now().UTC().Format(createdAtLayout)

	tx, err := r.db.Beginx()
	if err != nil {
		return "", errors.Wrap(err, "store.SaveImport error")
	}
	err = r.saveImport(tx, importID, source, createdAt, pairs)
	if err != nil {
		tx.Rollback()
		return "", errors.Wrap(err, "store.SaveImport error")
	}
	if err := tx.Commit(); err != nil {
		return "", errors.Wrap(err, "store.SaveImport error: commit")
	}
	return importID, nil
}

func (r *Store) saveImport(
	tx *sqlx.Tx,
	importID ImportID,
	source string,
	createdAt string,
	pairs []gnode.NodeObjPair,
) error {
	_, err := r.queries.Exec(tx, "insert-import", importID, source, createdAt, len(pairs))
	if err != nil {
		return err
	}
	for position, pair := range pairs {
		_, err := r.queries.Exec(
			tx, "insert-node",
			importID, position,
			pair.Node.ID, pair.Node.FQN, pair.Node.Path, pair.Node.FileName,
		)
		if err != nil {
			return errors.Wrapf(err, "node %q", pair.Node.ID)
		}
		for fieldPosition, field := range pair.Fields {
			valueJSON, err := json.Marshal(gvalue.ToWire(field.Value))
			if err != nil {
				return errors.Wrapf(err, "node %q field %q", pair.Node.ID, field.ID)
			}
			_, err = r.queries.Exec(
				tx, "insert-field",
				importID, position, fieldPosition,
				field.ID, int64(field.Value.TypeCode()), string(valueJSON),
			)
			if err != nil {
				return errors.Wrapf(err, "node %q field %q", pair.Node.ID, field.ID)
			}
		}
	}
	return nil
}

func (r *Store) GetImport(importID ImportID) (*ImportRow, error) {
	row := ImportRow{}
	err := r.queries.Get(r.db, "get-import", &row, importID)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, errors.Wrapf(ErrNotFound, "import `%s`", importID)
	}
	if err != nil {
		return nil, errors.Wrap(err, "store.GetImport error")
	}
	return &row, nil
}

func (r *Store) ListImports() ([]ImportRow, error) {
	rows := make([]ImportRow, 0)
	if err := r.queries.Select(r.db, "list-imports", &rows); err != nil {
		return nil, errors.Wrap(err, "store.ListImports error")
	}
	return rows, nil
}

// FindNode returns the node with the given FQN from the most recent import
// that has one.
func (r *Store) FindNode(fqn string) (*NodeRow, error) {
	row := NodeRow{}
	err := r.queries.Get(r.db, "find-node-by-fqn", &row, fqn)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, errors.Wrapf(ErrNotFound, "node `%s`", fqn)
	}
	if err != nil {
		return nil, errors.Wrap(err, "store.FindNode error")
	}
	return &row, nil
}

func (r *Store) ListFields(node NodeRow) ([]FieldRow, error) {
	rows := make([]FieldRow, 0)
	err := r.queries.Select(r.db, "list-fields", &rows, node.ImportID, node.Position)
	if err != nil {
		return nil, errors.Wrap(err, "store.ListFields error")
	}
	return rows, nil
}

func (r *Store) CountNodes(importID ImportID) (int, error) {
	count := 0
	if err := r.queries.Get(r.db, "count-nodes", &count, importID); err != nil {
		return 0, errors.Wrap(err, "store.CountNodes error")
	}
	return count, nil
}

// Decode turns the stored wire form back into a typed field.
func (r FieldRow) Decode() (gnode.Field, error) {
	value, err := gvalue.Decode(json.RawMessage(r.ValueJSON), gvalue.TypeCode(uint64(r.TypeCode)))
	if err != nil {
		return gnode.Field{}, errors.Wrapf(err, "store.FieldRow.Decode error: field %q", r.FieldID)
	}
	return gnode.Field{
		ID:    r.FieldID,
		Value: value,
	}, nil
}
