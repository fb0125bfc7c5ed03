package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/phoenixpgs/guardian-api/internal/model"
	"github.com/phoenixpgs/guardian-api/internal/repository"
)

type observationRepository struct {
	BaseRepository
}

func NewObservationRepository(base BaseRepository) repository.ObservationRepository {
	return &observationRepository{base}
}

func (r *observationRepository) Create(ctx context.Context, observation *model.Observation) error {
	observation.ID = uuid.New()
	observation.CreatedAt = time.Now()
	observation.UpdatedAt = time.Now()

	return r.WithTx(ctx, func(tx *sqlx.Tx) error {
		query := `
			INSERT INTO observations (
				id, user_id, standard_id, time_observed, total_sams,
				observed_performance, pump_score, pace, utilization, methods,
				comments, best_practices_checked, process_adherence_checked,
				delays, observation_reason, start_time, end_time, is_finalized,
				created_at, updated_at
			) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10,
				$11, $12, $13, $14, $15, $16, $17, $18, $19, $20)
		`
		_, err := tx.ExecContext(ctx, query,
			observation.ID,
			observation.UserID,
			observation.StandardID,
			observation.TimeObserved,
			observation.TotalSams,
			observation.ObservedPerformance,
			observation.PumpScore,
			observation.Pace,
			observation.Utilization,
			observation.Methods,
			observation.Comments,
			observation.BestPracticesChecked,
			observation.ProcessAdherenceChecked,
			observation.Delays,
			observation.ObservationReason,
			observation.StartTime,
			observation.EndTime,
			observation.IsFinalized,
			observation.CreatedAt,
			observation.UpdatedAt,
		)
		if err != nil {
			return fmt.Errorf("failed to create observation: %w", err)
		}

		for _, d := range observation.Data {
			d.ID = uuid.New()
			d.ObservationID = observation.ID
			d.CreatedAt = observation.CreatedAt
			d.UpdatedAt = observation.UpdatedAt

			_, err := tx.ExecContext(ctx, `
				INSERT INTO observation_data (
					id, observation_id, uom_entry_id, uom, quantity, sam_value,
					created_at, updated_at
				) VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
			`,
				d.ID,
				d.ObservationID,
				d.UomEntryID,
				d.Uom,
				d.Quantity,
				d.SamValue,
				d.CreatedAt,
				d.UpdatedAt,
			)
			if err != nil {
				return fmt.Errorf("failed to create observation data: %w", err)
			}
		}
		return nil
	})
}

func (r *observationRepository) Get(ctx context.Context, id uuid.UUID) (*model.Observation, error) {
	query := `
		SELECT * FROM observations
		WHERE id = $1 AND deleted_at IS NULL
	`
	var observation model.Observation
	if err := r.db.GetContext(ctx, &observation, query, id); err != nil {
		return nil, fmt.Errorf("failed to get observation: %w", err)
	}

	dataQuery := `
		SELECT * FROM observation_data
		WHERE observation_id = $1
		ORDER BY created_at, id
	`
	if err := r.db.SelectContext(ctx, &observation.Data, dataQuery, id); err != nil {
		return nil, fmt.Errorf("failed to get observation data: %w", err)
	}
	return &observation, nil
}

func (r *observationRepository) Finalize(ctx context.Context, id uuid.UUID) error {
	query := `
		UPDATE observations
		SET is_finalized = true, updated_at = $1
		WHERE id = $2 AND NOT is_finalized
	`
	result, err := r.db.ExecContext(ctx, query, time.Now(), id)
	if err != nil {
		return fmt.Errorf("failed to finalize observation: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rows == 0 {
		return fmt.Errorf("observation not found or already finalized")
	}

	return nil
}

func (r *observationRepository) List(ctx context.Context, filter *model.ObservationFilter) ([]*model.Observation, error) {
	query := `
		SELECT * FROM observations
		WHERE deleted_at IS NULL
	`
	args := []interface{}{}
	if filter != nil && filter.UserID != uuid.Nil {
		args = append(args, filter.UserID)
		query += fmt.Sprintf(" AND user_id = $%d", len(args))
	}
	if filter != nil && filter.StandardID != uuid.Nil {
		args = append(args, filter.StandardID)
		query += fmt.Sprintf(" AND standard_id = $%d", len(args))
	}
	if filter != nil && !filter.StartDate.IsZero() {
		args = append(args, filter.StartDate)
		query += fmt.Sprintf(" AND start_time >= $%d", len(args))
	}
	if filter != nil && !filter.EndDate.IsZero() {
		args = append(args, filter.EndDate)
		query += fmt.Sprintf(" AND end_time <= $%d", len(args))
	}
	if filter != nil && filter.FinalizedOnly {
		query += " AND is_finalized"
	}
	query += " ORDER BY start_time DESC"

	var observations []*model.Observation
	if err := r.db.SelectContext(ctx, &observations, query, args...); err != nil {
		return nil, fmt.Errorf("failed to list observations: %w", err)
	}
	return observations, nil
}
