package repo

import (
	"context"
	"database/sql"
	"encoding/json"
	"time"
)

// Procedure is one saved descent-parameter snapshot. Params holds the raw
// JSON the tools accept, so the library never interprets it.
type Procedure struct {
	ID        int             `json:"id"`
	Name      string          `json:"name"`
	Params    json.RawMessage `json:"params"`
	CreatedAt time.Time       `json:"created_at"`
}

type Repository interface {
	CreateUser(ctx context.Context, login, email, password string) (int, error)
	GetByLogin(ctx context.Context, login string) (int, string, error)
	SaveProcedure(ctx context.Context, userID int, name string, params json.RawMessage) (int, error)
	ListProcedures(ctx context.Context, userID int) ([]Procedure, error)
	GetProcedure(ctx context.Context, userID, id int) (Procedure, error)
}

type PostgresRepository struct {
	db *sql.DB
}

func NewPostgresDB(db *sql.DB) *PostgresRepository {
	return &PostgresRepository{db: db}
}

func (r *PostgresRepository) CreateUser(ctx context.Context, login, email, password string) (int, error) {
	var id int
	query := "INSERT INTO users (login, email, password) VALUES ($1, $2, $3) RETURNING id"
	err := r.db.QueryRowContext(ctx, query, login, email, password).Scan(&id)
	return id, err
}

func (r *PostgresRepository) GetByLogin(ctx context.Context, login string) (int, string, error) {
	var id int
	var hash string

	query := "SELECT id, password FROM users WHERE login=$1"

	err := r.db.QueryRowContext(ctx, query, login).Scan(&id, &hash)
	if err != nil {
		if err == sql.ErrNoRows {
			return 0, "", nil
		}
		return 0, "", err
	}
	return id, hash, nil
}

func (r *PostgresRepository) SaveProcedure(ctx context.Context, userID int, name string, params json.RawMessage) (int, error) {
	var id int
	query := "INSERT INTO procedures (user_id, name, params, created_at) VALUES ($1, $2, $3, NOW()) RETURNING id"
	err := r.db.QueryRowContext(ctx, query, userID, name, []byte(params)).Scan(&id)
	return id, err
}

func (r *PostgresRepository) ListProcedures(ctx context.Context, userID int) ([]Procedure, error) {
	query := "SELECT id, name, params, created_at FROM procedures WHERE user_id=$1 ORDER BY created_at DESC"
	rows, err := r.db.QueryContext(ctx, query, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var procs []Procedure
	for rows.Next() {
		var p Procedure
		var raw []byte
		if err := rows.Scan(&p.ID, &p.Name, &raw, &p.CreatedAt); err != nil {
			return nil, err
		}
		p.Params = json.RawMessage(raw)
		procs = append(procs, p)
	}
	return procs, rows.Err()
}

func (r *PostgresRepository) GetProcedure(ctx context.Context, userID, id int) (Procedure, error) {
	var p Procedure
	var raw []byte
	query := "SELECT id, name, params, created_at FROM procedures WHERE user_id=$1 AND id=$2"
	err := r.db.QueryRowContext(ctx, query, userID, id).Scan(&p.ID, &p.Name, &raw, &p.CreatedAt)
	if err != nil {
		return Procedure{}, err
	}
	p.Params = json.RawMessage(raw)
	return p, nil
}
