package repositories

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/blucialabs/backend/internal/apperrors"
	"github.com/blucialabs/backend/internal/models"
)

const userColumns = `id, name, username, email, COALESCE(password_hash, ''), COALESCE(phone, ''),
	COALESCE(google_id, ''), COALESCE(avatar_url, ''), role, created_at, updated_at`

type UserRepository struct {
	pool *pgxpool.Pool
}

func NewUserRepository(pool *pgxpool.Pool) *UserRepository {
	return &UserRepository{pool: pool}
}

func scanUser(row pgx.Row) (*models.User, error) {
	var user models.User
	err := row.Scan(
		&user.ID,
		&user.Name,
		&user.Username,
		&user.Email,
		&user.PasswordHash,
		&user.Phone,
		&user.GoogleID,
		&user.AvatarURL,
		&user.Role,
		&user.CreatedAt,
		&user.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return &user, nil
}

// translateUnique maps a storage-level unique violation to the same Conflict
// error the pre-insert probes produce, so a register race that slips past
// the check still answers the caller identically.
func translateUnique(err error) error {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == "23505" {
		switch {
		case strings.Contains(pgErr.ConstraintName, "email"):
			return apperrors.Conflict("User already exists with this email")
		case strings.Contains(pgErr.ConstraintName, "username"):
			return apperrors.Conflict("Username already taken")
		case strings.Contains(pgErr.ConstraintName, "google_id"):
			return apperrors.Conflict("Google account already linked to another user")
		}
	}
	return err
}

func (r *UserRepository) Create(ctx context.Context, user *models.User) error {
	user.Prepare()
	if user.ID == uuid.Nil {
		user.ID = uuid.New()
	}
	if user.Role == "" {
		user.Role = models.RoleClient
	}

	query := `
		INSERT INTO users (id, name, username, email, password_hash, phone, google_id, avatar_url, role)
		VALUES ($1, $2, NULLIF($3, ''), $4, NULLIF($5, ''), NULLIF($6, ''), NULLIF($7, ''), NULLIF($8, ''), $9)
		RETURNING created_at, updated_at
	`

	err := r.pool.QueryRow(ctx, query,
		user.ID,
		user.Name,
		user.Username,
		user.Email,
		user.PasswordHash,
		user.Phone,
		user.GoogleID,
		user.AvatarURL,
		user.Role,
	).Scan(&user.CreatedAt, &user.UpdatedAt)
	if err != nil {
		return translateUnique(err)
	}
	return nil
}

func (r *UserRepository) FindByID(ctx context.Context, id uuid.UUID) (*models.User, error) {
	query := `SELECT ` + userColumns + ` FROM users WHERE id = $1`
	return scanUser(r.pool.QueryRow(ctx, query, id))
}

func (r *UserRepository) FindByEmail(ctx context.Context, email string) (*models.User, error) {
	query := `SELECT ` + userColumns + ` FROM users WHERE email = $1`
	return scanUser(r.pool.QueryRow(ctx, query, email))
}

func (r *UserRepository) FindByUsername(ctx context.Context, username string) (*models.User, error) {
	query := `SELECT ` + userColumns + ` FROM users WHERE username = $1`
	return scanUser(r.pool.QueryRow(ctx, query, username))
}

func (r *UserRepository) FindByGoogleID(ctx context.Context, googleID string) (*models.User, error) {
	query := `SELECT ` + userColumns + ` FROM users WHERE google_id = $1`
	return scanUser(r.pool.QueryRow(ctx, query, googleID))
}

// LinkGoogleAccount attaches an external identity to the existing row
// matched by email. Role and password are deliberately left untouched.
func (r *UserRepository) LinkGoogleAccount(ctx context.Context, email, googleID, avatarURL string) (*models.User, error) {
	query := `
		UPDATE users
		SET google_id = $1, avatar_url = NULLIF($2, ''), updated_at = NOW()
		WHERE email = $3
		RETURNING ` + userColumns
	user, err := scanUser(r.pool.QueryRow(ctx, query, googleID, avatarURL, email))
	if err != nil {
		return nil, translateUnique(err)
	}
	return user, nil
}

// UpdateProfile applies the set fields of a patch as one parameterized
// UPDATE. Column names come from this function alone, never from input.
func (r *UserRepository) UpdateProfile(ctx context.Context, id uuid.UUID, patch *models.ProfilePatch) (*models.User, error) {
	sets := make([]string, 0, 4)
	args := make([]interface{}, 0, 5)

	add := func(column string, value string) {
		args = append(args, value)
		sets = append(sets, fmt.Sprintf("%s = $%d", column, len(args)))
	}

	if patch.Name != nil {
		add("name", *patch.Name)
	}
	if patch.Username != nil {
		add("username", *patch.Username)
	}
	if patch.Email != nil {
		add("email", *patch.Email)
	}
	if patch.Phone != nil {
		add("phone", *patch.Phone)
	}
	if len(sets) == 0 {
		return r.FindByID(ctx, id)
	}

	args = append(args, id)
	query := fmt.Sprintf(
		`UPDATE users SET %s, updated_at = NOW() WHERE id = $%d RETURNING %s`,
		strings.Join(sets, ", "), len(args), userColumns,
	)

	user, err := scanUser(r.pool.QueryRow(ctx, query, args...))
	if err != nil {
		return nil, translateUnique(err)
	}
	return user, nil
}

// EmailTaken reports whether another account already uses the email.
func (r *UserRepository) EmailTaken(ctx context.Context, email string, excludeID uuid.UUID) (bool, error) {
	var exists bool
	err := r.pool.QueryRow(ctx,
		`SELECT EXISTS(SELECT 1 FROM users WHERE email = $1 AND id != $2)`,
		email, excludeID,
	).Scan(&exists)
	return exists, err
}

// UsernameTaken reports whether another account already uses the username.
func (r *UserRepository) UsernameTaken(ctx context.Context, username string, excludeID uuid.UUID) (bool, error) {
	var exists bool
	err := r.pool.QueryRow(ctx,
		`SELECT EXISTS(SELECT 1 FROM users WHERE username = $1 AND id != $2)`,
		username, excludeID,
	).Scan(&exists)
	return exists, err
}

// CountByRole returns total users plus the client/admin split for the
// admin dashboard.
func (r *UserRepository) CountByRole(ctx context.Context) (total, clients, admins int, err error) {
	query := `
		SELECT
			COUNT(*),
			COUNT(*) FILTER (WHERE role = 'client'),
			COUNT(*) FILTER (WHERE role = 'admin')
		FROM users
	`
	err = r.pool.QueryRow(ctx, query).Scan(&total, &clients, &admins)
	return
}
