package storage

import (
	"context"
	"time"

	"github.com/danielledeleo/createpage/wiki"
)

// Page repository methods for sqliteDb

func (db *sqliteDb) SelectPageExists(ctx context.Context, namespace wiki.NamespaceID, dbkey string) (bool, error) {
	var exists bool
	err := db.SelectPageExistsStmt.GetContext(ctx, &exists, int(namespace), dbkey)
	return exists, err
}

func (db *sqliteDb) InsertPage(ctx context.Context, namespace wiki.NamespaceID, dbkey string) error {
	result, err := db.conn.ExecContext(ctx,
		`INSERT INTO Page (namespace, title, created) VALUES (?, ?, ?) ON CONFLICT(namespace, title) DO NOTHING`,
		int(namespace), dbkey, time.Now().Unix())
	if err != nil {
		return err
	}
	n, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return wiki.ErrPageAlreadyExists
	}
	return nil
}

func (db *sqliteDb) DeletePage(ctx context.Context, namespace wiki.NamespaceID, dbkey string) error {
	result, err := db.conn.ExecContext(ctx,
		`DELETE FROM Page WHERE namespace = ? AND title = ?`, int(namespace), dbkey)
	if err != nil {
		return err
	}
	n, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return wiki.ErrGenericNotFound
	}
	return nil
}

// pageRow mirrors the Page table; created is stored as unix seconds.
type pageRow struct {
	ID        int    `db:"id"`
	Namespace int    `db:"namespace"`
	Title     string `db:"title"`
	Created   int64  `db:"created"`
}

func (db *sqliteDb) SelectAllPages(ctx context.Context) ([]*wiki.PageSummary, error) {
	var rows []pageRow
	err := db.conn.SelectContext(ctx, &rows,
		`SELECT id, namespace, title, created FROM Page ORDER BY namespace ASC, title ASC`)
	if err != nil {
		return nil, err
	}

	pages := make([]*wiki.PageSummary, 0, len(rows))
	for _, r := range rows {
		pages = append(pages, &wiki.PageSummary{
			ID:        r.ID,
			Namespace: wiki.NamespaceID(r.Namespace),
			DBKey:     r.Title,
			Created:   time.Unix(r.Created, 0).UTC(),
		})
	}
	return pages, nil
}
