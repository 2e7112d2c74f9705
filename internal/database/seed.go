package database

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/blucialabs/backend/internal/config"
	"github.com/blucialabs/backend/internal/utils"
)

// EnsureAdminUser seeds the single admin-designated account. An existing
// row matched by username or email is promoted to admin and its password
// and email reset to the configured values, so the admin credentials in the
// environment always win.
func EnsureAdminUser(ctx context.Context, pool *pgxpool.Pool, cfg config.AdminConfig) error {
	hash, err := utils.HashPassword(cfg.Password)
	if err != nil {
		return fmt.Errorf("failed to hash admin password: %w", err)
	}

	var id uuid.UUID
	err = pool.QueryRow(ctx,
		`SELECT id FROM users WHERE username = $1 OR email = $2 LIMIT 1`,
		cfg.Username, cfg.Email,
	).Scan(&id)

	if errors.Is(err, pgx.ErrNoRows) {
		_, err = pool.Exec(ctx,
			`INSERT INTO users (name, username, email, password_hash, role)
			 VALUES ($1, $2, $3, $4, 'admin')`,
			cfg.Name, cfg.Username, cfg.Email, hash,
		)
		return err
	}
	if err != nil {
		return err
	}

	_, err = pool.Exec(ctx,
		`UPDATE users
		 SET username = $1, role = 'admin', password_hash = $2, email = $3, updated_at = NOW()
		 WHERE id = $4`,
		cfg.Username, hash, cfg.Email, id,
	)
	return err
}
