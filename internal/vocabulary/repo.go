package vocabulary

import (
	"context"

	"github.com/wodwise/wodwise/internal/telemetry/tracing"

	"github.com/jackc/pgx/v5/pgxpool"
)

// Repo reads caller-maintained movement catalog rows from postgres.
// The rows are merged over the built-in defaults at server startup.
type Repo struct {
	db *pgxpool.Pool
}

func NewRepo(db *pgxpool.Pool) *Repo {
	return &Repo{
		db: db,
	}
}

func (r *Repo) ListAll(ctx context.Context) (_ []Entry, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.vocabulary.listAll")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()

	rows, err := r.db.Query(
		ctx,
		`SELECT canonical_key, display_name, modality, category, aliases, competition_count
			FROM movement
			ORDER BY canonical_key;`,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var entries []Entry
	for rows.Next() {
		var (
			entry        Entry
			modalityCode string
			aliases      []string
		)
		if err := rows.Scan(
			&entry.Key, &entry.DisplayName, &modalityCode,
			&entry.Category, &aliases, &entry.CompetitionCount,
		); err != nil {
			return nil, err
		}
		entry.Modality = ParseModality(modalityCode)
		entry.Aliases = aliases
		entries = append(entries, entry)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	return entries, nil
}
