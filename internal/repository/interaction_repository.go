package repository

import (
	"context"
	"fmt"

	"service-timetable-assistant/internal/domain"
)

type InteractionRepository interface {
	Insert(ctx context.Context, interaction domain.Interaction) error
}

type InteractionSQLRepository struct {
	execer  Execer
	dialect Dialect
}

func NewInteractionSQLRepository(execer Execer, dialect Dialect) *InteractionSQLRepository {
	return &InteractionSQLRepository{execer: execer, dialect: dialect}
}

func (r *InteractionSQLRepository) Insert(ctx context.Context, interaction domain.Interaction) error {
	p := r.dialect.placeholder
	query := fmt.Sprintf(`
INSERT INTO %s (
	id,
	session,
	intent,
	query_text,
	reply,
	created_at
) VALUES (%s, %s, %s, %s, %s, %s)
`, r.dialect.InteractionTable, p(1), p(2), p(3), p(4), p(5), p(6))

	_, err := r.execer.ExecContext(
		ctx,
		query,
		interaction.ID.String(),
		interaction.Session,
		interaction.Intent,
		interaction.QueryText,
		interaction.Reply,
		interaction.CreatedAt.UTC(),
	)
	return err
}
