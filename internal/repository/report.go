package repository

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v4"
	"github.com/rmaciel/atendimento/internal/model"
	"github.com/rmaciel/atendimento/pkg/db/transactor"
)

// ReportRepository persists simulation reports together with their served
// entries. Multi-statement writes run inside the transactor's transaction.
type ReportRepository interface {
	Create(context.Context, *model.Report) error
	FindLatest(context.Context) (*model.Report, error)
	DeleteEntry(ctx context.Context, reportID string, position int) error
}

type postgresReportRepository struct {
	trx transactor.PgxTransactor
}

// NewPostgresReportRepository builds postgres report repository
func NewPostgresReportRepository(trx transactor.PgxTransactor) ReportRepository {
	return &postgresReportRepository{trx: trx}
}

func (r *postgresReportRepository) Create(ctx context.Context, rep *model.Report) error {
	q := `INSERT INTO reports(id, generated_at, served, total_wait, mean_wait, total_service_time,
                              structure, algorithm, reorder_rule, complexity_hint, undo_recorded)
          VALUES($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)`
	stats := rep.Statistics
	_, err := r.trx.Executor(ctx).Exec(ctx, q,
		rep.ID, rep.GeneratedAt, stats.Served, stats.TotalWait, stats.MeanWait,
		stats.TotalServiceTime, stats.Structure, stats.Algorithm, stats.ReorderRule, stats.ComplexityHint,
		rep.UndoRecorded)
	if err != nil {
		return err
	}

	eq := `INSERT INTO report_entries(report_id, position, customer_id, name, type,
                                      service_time, arrival, service_start, service_end)
           VALUES($1, $2, $3, $4, $5, $6, $7, $8, $9)`
	for i := range rep.Served {
		e := &rep.Served[i]
		_, err := r.trx.Executor(ctx).Exec(ctx, eq,
			rep.ID, i, e.ID, e.Name, e.Type, e.ServiceTime, e.Arrival, e.ServiceStart, e.ServiceEnd)
		if err != nil {
			return err
		}
	}
	return nil
}

func (r *postgresReportRepository) FindLatest(ctx context.Context) (*model.Report, error) {
	q := `SELECT id, generated_at, served, total_wait, mean_wait, total_service_time,
                 structure, algorithm, reorder_rule, complexity_hint, undo_recorded
          FROM reports ORDER BY generated_at DESC LIMIT 1`

	var rep model.Report
	stats := &rep.Statistics
	row := r.trx.Executor(ctx).QueryRow(ctx, q)
	err := row.Scan(&rep.ID, &rep.GeneratedAt, &stats.Served, &stats.TotalWait, &stats.MeanWait,
		&stats.TotalServiceTime, &stats.Structure, &stats.Algorithm, &stats.ReorderRule, &stats.ComplexityHint,
		&rep.UndoRecorded)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}

	eq := `SELECT customer_id, name, type, service_time, arrival, service_start, service_end
           FROM report_entries WHERE report_id = $1 ORDER BY position`

	rows, err := r.trx.Executor(ctx).Query(ctx, eq, rep.ID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	rep.Served = make([]model.ServedCustomer, 0)
	for rows.Next() {
		var e model.ServedCustomer
		if err := rows.Scan(&e.ID, &e.Name, &e.Type, &e.ServiceTime, &e.Arrival, &e.ServiceStart, &e.ServiceEnd); err != nil {
			return nil, err
		}
		rep.Served = append(rep.Served, e)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}
	return &rep, nil
}

func (r *postgresReportRepository) DeleteEntry(ctx context.Context, reportID string, position int) error {
	q := "DELETE FROM report_entries WHERE report_id = $1 AND position = $2"
	if _, err := r.trx.Executor(ctx).Exec(ctx, q, reportID, position); err != nil {
		return err
	}
	return nil
}
