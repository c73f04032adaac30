package repository

import (
	"context"

	"church-calendar/internal/model"
	apperrors "church-calendar/pkg/app_errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type EventRepository interface {
	Create(ctx context.Context, event *model.Event) (*model.Event, error)
	List(ctx context.Context) ([]*model.Event, error)
	FindByExternalID(ctx context.Context, externalID string) (*model.Event, error)
	UpdateByExternalID(ctx context.Context, event *model.Event) (*model.Event, error)
	DeleteAll(ctx context.Context) (int64, error)
	GetImage(ctx context.Context, id int) ([]byte, error)
	SetImage(ctx context.Context, id int, data []byte) error
	ListImages(ctx context.Context) ([]*model.StoredImage, error)
}

type EventRepositoryImpl struct {
	pool *pgxpool.Pool
}

func NewEventRepository(pool *pgxpool.Pool) EventRepository {
	return &EventRepositoryImpl{
		pool: pool,
	}
}

// selectColumns matches scanEvent. Nullable text columns are coalesced to
// "" and date/time columns are formatted server-side so the model only
// ever carries "YYYY-MM-DD" / "HH:MM" strings (empty when absent).
const selectColumns = `
	id, external_id,
	COALESCE(event_status, ''), COALESCE(ministry, ''), COALESCE(organizer, ''),
	COALESCE(publish_trigger, ''), COALESCE(registration, ''), title,
	to_char(start_date, 'YYYY-MM-DD'), to_char(start_time, 'HH24:MI'),
	COALESCE(to_char(end_date, 'YYYY-MM-DD'), ''), COALESCE(to_char(end_time, 'HH24:MI'), ''),
	COALESCE(location, ''), COALESCE(description, ''), COALESCE(image_url, '')
`

func scanEvent(row pgx.Row) (*model.Event, error) {
	var event model.Event
	err := row.Scan(
		&event.ID,
		&event.ExternalID,
		&event.Status,
		&event.Ministry,
		&event.Organizer,
		&event.PublishTrigger,
		&event.Registration,
		&event.Title,
		&event.StartDate,
		&event.StartTime,
		&event.EndDate,
		&event.EndTime,
		&event.Location,
		&event.Description,
		&event.ImageURL,
	)
	if err != nil {
		return nil, err
	}
	return &event, nil
}

func (r *EventRepositoryImpl) Create(ctx context.Context, event *model.Event) (*model.Event, error) {
	query := `
		INSERT INTO events (
			external_id, event_status, ministry, organizer, publish_trigger, registration,
			title, start_date, start_time, end_date, end_time, location, description,
			image_url, image_data
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8::date, $9::time,
			NULLIF($10, '')::date, NULLIF($11, '')::time, $12, $13, $14, $15)
		RETURNING ` + selectColumns

	created, err := scanEvent(r.pool.QueryRow(ctx, query,
		event.ExternalID, event.Status, event.Ministry, event.Organizer,
		event.PublishTrigger, event.Registration, event.Title,
		event.StartDate, event.StartTime, event.EndDate, event.EndTime,
		event.Location, event.Description, event.ImageURL, event.ImageData,
	))
	if err != nil {
		return nil, err
	}
	return created, nil
}

func (r *EventRepositoryImpl) List(ctx context.Context) ([]*model.Event, error) {
	query := `SELECT ` + selectColumns + ` FROM events ORDER BY start_date, start_time, id`

	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	events := make([]*model.Event, 0)
	for rows.Next() {
		event, err := scanEvent(rows)
		if err != nil {
			return nil, err
		}
		events = append(events, event)
	}
	return events, rows.Err()
}

func (r *EventRepositoryImpl) FindByExternalID(ctx context.Context, externalID string) (*model.Event, error) {
	query := `SELECT ` + selectColumns + ` FROM events WHERE external_id = $1`

	event, err := scanEvent(r.pool.QueryRow(ctx, query, externalID))
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, apperrors.ErrEventNotFound
		}
		return nil, err
	}
	return event, nil
}

// UpdateByExternalID overwrites every compared field of the row holding
// the event's external id. The reconciler always writes the full draft,
// never a partial patch.
func (r *EventRepositoryImpl) UpdateByExternalID(ctx context.Context, event *model.Event) (*model.Event, error) {
	if event.ExternalID == nil || *event.ExternalID == "" {
		return nil, apperrors.ErrInvalidInput
	}

	query := `
		UPDATE events
		SET event_status = $1,
			ministry = $2,
			organizer = $3,
			publish_trigger = $4,
			registration = $5,
			title = $6,
			start_date = $7::date,
			start_time = $8::time,
			end_date = NULLIF($9, '')::date,
			end_time = NULLIF($10, '')::time,
			location = $11,
			description = $12,
			image_url = $13
		WHERE external_id = $14
		RETURNING ` + selectColumns

	updated, err := scanEvent(r.pool.QueryRow(ctx, query,
		event.Status, event.Ministry, event.Organizer, event.PublishTrigger,
		event.Registration, event.Title, event.StartDate, event.StartTime,
		event.EndDate, event.EndTime, event.Location, event.Description,
		event.ImageURL, *event.ExternalID,
	))
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, apperrors.ErrEventNotFound
		}
		return nil, err
	}
	return updated, nil
}

func (r *EventRepositoryImpl) DeleteAll(ctx context.Context) (int64, error) {
	tag, err := r.pool.Exec(ctx, `DELETE FROM events`)
	if err != nil {
		return 0, err
	}
	return tag.RowsAffected(), nil
}

func (r *EventRepositoryImpl) GetImage(ctx context.Context, id int) ([]byte, error) {
	var data []byte
	err := r.pool.QueryRow(ctx, `SELECT image_data FROM events WHERE id = $1`, id).Scan(&data)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, apperrors.ErrEventNotFound
		}
		return nil, err
	}
	if len(data) == 0 {
		return nil, apperrors.ErrImageNotFound
	}
	return data, nil
}

func (r *EventRepositoryImpl) SetImage(ctx context.Context, id int, data []byte) error {
	tag, err := r.pool.Exec(ctx, `UPDATE events SET image_data = $1 WHERE id = $2`, data, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrEventNotFound
	}
	return nil
}

// ListImages returns id and stored bytes for every event carrying image
// data; used by the compression maintenance pass.
func (r *EventRepositoryImpl) ListImages(ctx context.Context) ([]*model.StoredImage, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT id, image_data FROM events WHERE image_data IS NOT NULL AND length(image_data) > 0`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	images := make([]*model.StoredImage, 0)
	for rows.Next() {
		var img model.StoredImage
		if err := rows.Scan(&img.EventID, &img.Data); err != nil {
			return nil, err
		}
		images = append(images, &img)
	}
	return images, rows.Err()
}
