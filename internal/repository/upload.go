package repository

import (
	"context"

	"docscan/internal/model"
)

// UploadRepository persists the upload ledger using SQL queries only.
// The ledger is an audit trail; listing documents never reads it.
type UploadRepository interface {
	// Record stores one accepted upload. A second record for the same stored
	// name replaces the first, matching the storage overwrite.
	Record(ctx context.Context, rec *model.UploadRecord) (*model.UploadRecord, error)

	// List returns a page of ledger rows, newest first, and the total row count.
	List(ctx context.Context, pq PageQuery) (*PageResult[model.UploadRecord], error)
}

// PageQuery holds limit/offset pagination parameters.
type PageQuery struct {
	Limit  int
	Offset int
}

// PageResult is a generic pagination result wrapper.
// T is typically a model type.
type PageResult[T any] struct {
	Items []T
	Total int
}
