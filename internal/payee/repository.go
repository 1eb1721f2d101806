package payee

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/Niiaks/pixcode/internal/model"
)

var ErrPayeeNotFound = errors.New("payee not found")

// PayeeRepository reads payee profiles. Profiles are owned by another
// system and never written here.
type PayeeRepository interface {
	GetPayee(ctx context.Context, id uuid.UUID) (*model.Payee, error)
}

type PayeeRepo struct {
	db *pgxpool.Pool
}

func NewPayeeRepository(db *pgxpool.Pool) *PayeeRepo {
	return &PayeeRepo{db: db}
}

func (pr *PayeeRepo) GetPayee(ctx context.Context, id uuid.UUID) (*model.Payee, error) {
	sql := `SELECT id, pix_key, key_type, name, city, created_at, updated_at FROM payees WHERE id = $1`

	var p model.Payee
	err := pr.db.QueryRow(ctx, sql, id).Scan(
		&p.ID,
		&p.PixKey,
		&p.KeyType,
		&p.Name,
		&p.City,
		&p.CreatedAt,
		&p.UpdatedAt,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrPayeeNotFound
	}
	if err != nil {
		return nil, err
	}
	return &p, nil
}
