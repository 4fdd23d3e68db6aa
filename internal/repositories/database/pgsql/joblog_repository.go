package pgsql

import (
	"context"

	"github.com/daybook-app/daybook_backend/internal/apperrors"
	"github.com/daybook-app/daybook_backend/internal/core/domain"
	portsrepo "github.com/daybook-app/daybook_backend/internal/core/ports/repositories"
	"github.com/jackc/pgx/v5/pgxpool"
)

type PgxJobLogRepository struct {
	BaseRepository
}

// newPgxJobLogRepository creates the append-only job outcome log.
func newPgxJobLogRepository(pool *pgxpool.Pool) portsrepo.JobLogRepositoryFacade {
	return &PgxJobLogRepository{
		BaseRepository: BaseRepository{Pool: pool},
	}
}

// Ensure PgxJobLogRepository implements portsrepo.JobLogRepositoryFacade
var _ portsrepo.JobLogRepositoryFacade = (*PgxJobLogRepository)(nil)

// InsertJobLog appends one background job outcome.
func (r *PgxJobLogRepository) InsertJobLog(ctx context.Context, log domain.JobLog) error {
	query := `
		INSERT INTO job_logs (user_id, job_type, status, error, created_at)
		VALUES ($1, $2, $3, $4, NOW());`
	_, err := r.Pool.Exec(ctx, query, log.UserID, log.JobType, string(log.Status), log.Error)
	if err != nil {
		return apperrors.NewAppError(500, "failed to insert job log", err)
	}
	return nil
}
