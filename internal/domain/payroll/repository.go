package payroll

import "context"

type RecordRepository interface {
	Create(ctx context.Context, r Record) (Record, error)
	GetByID(ctx context.Context, id int64) (Record, error)
	Update(ctx context.Context, r Record) (Record, error)
	Delete(ctx context.Context, id int64) error
	List(ctx context.Context, filter RecordFilter) ([]Record, error)

	// Archive moves every active record of the given kinds into the archive
	// table and returns how many rows moved.
	Archive(ctx context.Context, kinds []Kind, archivedBy *int64) (int64, error)
}
