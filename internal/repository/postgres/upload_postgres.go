package postgres

import (
	"context"
	"database/sql"

	"docscan/internal/model"
	"docscan/internal/repository"
)

// UploadPostgres is a PostgreSQL implementation of repository.UploadRepository.
type UploadPostgres struct {
	db *sql.DB
}

// NewUploadPostgres creates a new UploadPostgres repository.
func NewUploadPostgres(db *sql.DB) *UploadPostgres {
	return &UploadPostgres{db: db}
}

var _ repository.UploadRepository = (*UploadPostgres)(nil)

// Record upserts on stored_name so the ledger keeps the last write.
func (r *UploadPostgres) Record(ctx context.Context, rec *model.UploadRecord) (*model.UploadRecord, error) {
	const q = `
		INSERT INTO uploads (id, stored_name, original_name, size, content_type, uploaded_at)
		VALUES ($1, $2, $3, $4, $5, $6)
		ON CONFLICT (stored_name) DO UPDATE SET
			original_name = EXCLUDED.original_name,
			size          = EXCLUDED.size,
			content_type  = EXCLUDED.content_type,
			uploaded_at   = EXCLUDED.uploaded_at
		RETURNING id, stored_name, original_name, size, content_type, uploaded_at
	`
	row := r.db.QueryRowContext(ctx, q,
		rec.ID,
		rec.StoredName,
		rec.OriginalName,
		rec.Size,
		rec.ContentType,
		rec.UploadedAt,
	)
	var out model.UploadRecord
	if err := scanUpload(row, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// List returns ledger rows using LIMIT/OFFSET pagination and a total count.
func (r *UploadPostgres) List(ctx context.Context, pq repository.PageQuery) (*repository.PageResult[model.UploadRecord], error) {
	const qCount = `SELECT COUNT(*) FROM uploads`
	var total int
	if err := r.db.QueryRowContext(ctx, qCount).Scan(&total); err != nil {
		return nil, err
	}

	const qList = `
		SELECT id, stored_name, original_name, size, content_type, uploaded_at
		FROM uploads
		ORDER BY uploaded_at DESC, stored_name DESC
		LIMIT $1 OFFSET $2
	`
	rows, err := r.db.QueryContext(ctx, qList, pq.Limit, pq.Offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	items := make([]model.UploadRecord, 0)
	for rows.Next() {
		var u model.UploadRecord
		if err := scanUpload(rows, &u); err != nil {
			return nil, err
		}
		items = append(items, u)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	return &repository.PageResult[model.UploadRecord]{
		Items: items,
		Total: total,
	}, nil
}

type scanner interface {
	Scan(dest ...any) error
}

func scanUpload(s scanner, u *model.UploadRecord) error {
	return s.Scan(
		&u.ID,
		&u.StoredName,
		&u.OriginalName,
		&u.Size,
		&u.ContentType,
		&u.UploadedAt,
	)
}
