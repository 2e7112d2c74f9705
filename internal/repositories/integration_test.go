//go:build integration

package repositories

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/testcontainers/testcontainers-go"
	tcpostgres "github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"

	"github.com/blucialabs/backend/internal/apperrors"
	"github.com/blucialabs/backend/internal/database"
	"github.com/blucialabs/backend/internal/models"
)

func setupPool(t *testing.T) *pgxpool.Pool {
	t.Helper()
	ctx := context.Background()

	container, err := tcpostgres.Run(ctx, "postgres:16-alpine",
		tcpostgres.WithDatabase("blucia_labs_test"),
		tcpostgres.WithUsername("postgres"),
		tcpostgres.WithPassword("postgres"),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(30*time.Second),
		),
	)
	if err != nil {
		t.Fatalf("failed to start postgres container: %v", err)
	}
	t.Cleanup(func() {
		if err := container.Terminate(context.Background()); err != nil {
			t.Logf("failed to terminate container: %v", err)
		}
	})

	dsn, err := container.ConnectionString(ctx, "sslmode=disable")
	if err != nil {
		t.Fatalf("failed to get connection string: %v", err)
	}

	pool, err := pgxpool.New(ctx, dsn)
	if err != nil {
		t.Fatalf("failed to create pool: %v", err)
	}
	t.Cleanup(pool.Close)

	if err := database.RunMigrations(ctx, pool); err != nil {
		t.Fatalf("failed to run migrations: %v", err)
	}
	return pool
}

func newUser(username, email string) *models.User {
	return &models.User{
		Name:         "Test " + username,
		Username:     username,
		Email:        email,
		PasswordHash: "$2a$10$fakefakefakefakefakefakefakefakefakefakefakefakefakef",
		Role:         models.RoleClient,
	}
}

func newRequest(userID uuid.UUID) *models.ServiceRequest {
	return &models.ServiceRequest{
		UserID:             userID,
		Name:               "Asha Mrema",
		Email:              "asha@example.com",
		Phone:              "+255700000001",
		ClientType:         models.ClientIndividual,
		ServiceType:        "web-development",
		ProjectDescription: "Company website",
		BudgetCurrency:     models.DefaultCurrency,
	}
}

func TestUserRepositoryRoundTrip(t *testing.T) {
	pool := setupPool(t)
	ctx := context.Background()
	repo := NewUserRepository(pool)

	user := newUser("asha", "asha@example.com")
	if err := repo.Create(ctx, user); err != nil {
		t.Fatalf("Create failed: %v", err)
	}
	if user.ID == uuid.Nil || user.CreatedAt.IsZero() {
		t.Fatalf("server-assigned fields missing: %+v", user)
	}

	byEmail, err := repo.FindByEmail(ctx, "asha@example.com")
	if err != nil {
		t.Fatalf("FindByEmail failed: %v", err)
	}
	if byEmail == nil || byEmail.ID != user.ID {
		t.Fatalf("FindByEmail = %+v", byEmail)
	}

	byUsername, err := repo.FindByUsername(ctx, "asha")
	if err != nil || byUsername == nil || byUsername.ID != user.ID {
		t.Fatalf("FindByUsername = %+v, err %v", byUsername, err)
	}

	missing, err := repo.FindByEmail(ctx, "nobody@example.com")
	if err != nil {
		t.Fatalf("FindByEmail(missing) errored: %v", err)
	}
	if missing != nil {
		t.Fatalf("missing user = %+v", missing)
	}
}

func TestUserRepositoryUniqueViolationBecomesConflict(t *testing.T) {
	pool := setupPool(t)
	ctx := context.Background()
	repo := NewUserRepository(pool)

	if err := repo.Create(ctx, newUser("asha", "asha@example.com")); err != nil {
		t.Fatalf("seed failed: %v", err)
	}

	err := repo.Create(ctx, newUser("other", "asha@example.com"))
	if apperrors.KindOf(err) != apperrors.KindConflict {
		t.Fatalf("duplicate email: got %v", err)
	}
	if got := apperrors.Message(err); got != "User already exists with this email" {
		t.Errorf("message = %q", got)
	}

	err = repo.Create(ctx, newUser("asha", "fresh@example.com"))
	if got := apperrors.Message(err); got != "Username already taken" {
		t.Errorf("duplicate username message = %q", got)
	}
}

func TestUserRepositoryLinkAndPatch(t *testing.T) {
	pool := setupPool(t)
	ctx := context.Background()
	repo := NewUserRepository(pool)

	user := newUser("asha", "asha@example.com")
	if err := repo.Create(ctx, user); err != nil {
		t.Fatalf("seed failed: %v", err)
	}

	linked, err := repo.LinkGoogleAccount(ctx, "asha@example.com", "sub-123", "https://lh3.example.com/a.png")
	if err != nil {
		t.Fatalf("LinkGoogleAccount failed: %v", err)
	}
	if linked.GoogleID != "sub-123" {
		t.Errorf("google id = %q", linked.GoogleID)
	}
	if !linked.HasPassword() {
		t.Error("linking dropped the password hash")
	}

	byGoogle, err := repo.FindByGoogleID(ctx, "sub-123")
	if err != nil || byGoogle == nil || byGoogle.ID != user.ID {
		t.Fatalf("FindByGoogleID = %+v, err %v", byGoogle, err)
	}

	name := "Asha M."
	phone := "+255700000002"
	patched, err := repo.UpdateProfile(ctx, user.ID, &models.ProfilePatch{Name: &name, Phone: &phone})
	if err != nil {
		t.Fatalf("UpdateProfile failed: %v", err)
	}
	if patched.Name != "Asha M." || patched.Phone != "+255700000002" {
		t.Errorf("patched = %+v", patched)
	}
	if patched.Username != "asha" || patched.Email != "asha@example.com" {
		t.Errorf("unset fields changed: %+v", patched)
	}

	taken, err := repo.EmailTaken(ctx, "asha@example.com", user.ID)
	if err != nil || taken {
		t.Errorf("own email reported taken (%v, %v)", taken, err)
	}
	taken, err = repo.EmailTaken(ctx, "asha@example.com", uuid.New())
	if err != nil || !taken {
		t.Errorf("foreign probe reported free (%v, %v)", taken, err)
	}
}

func TestRequestRepositoryLifecycle(t *testing.T) {
	pool := setupPool(t)
	ctx := context.Background()
	users := NewUserRepository(pool)
	requests := NewRequestRepository(pool)

	owner := newUser("asha", "asha@example.com")
	if err := users.Create(ctx, owner); err != nil {
		t.Fatalf("seed user failed: %v", err)
	}
	stranger := newUser("bakari", "bakari@example.com")
	if err := users.Create(ctx, stranger); err != nil {
		t.Fatalf("seed user failed: %v", err)
	}

	req := newRequest(owner.ID)
	if err := requests.Create(ctx, req); err != nil {
		t.Fatalf("Create failed: %v", err)
	}
	if req.Status != models.StatusPending {
		t.Errorf("status = %q", req.Status)
	}

	mine, err := requests.ListByUser(ctx, owner.ID)
	if err != nil || len(mine) != 1 {
		t.Fatalf("ListByUser = %d requests, err %v", len(mine), err)
	}
	theirs, err := requests.ListByUser(ctx, stranger.ID)
	if err != nil || len(theirs) != 0 {
		t.Fatalf("stranger sees %d requests, err %v", len(theirs), err)
	}

	if got, err := requests.FindByIDForUser(ctx, req.ID, stranger.ID); err != nil || got != nil {
		t.Errorf("ownership scoping broken: %+v, %v", got, err)
	}

	withOwner, err := requests.FindByIDWithOwner(ctx, req.ID)
	if err != nil || withOwner == nil {
		t.Fatalf("FindByIDWithOwner = %+v, err %v", withOwner, err)
	}
	if withOwner.UserEmail != "asha@example.com" {
		t.Errorf("joined owner email = %q", withOwner.UserEmail)
	}

	updated, err := requests.UpdateStatus(ctx, req.ID, models.StatusCompleted)
	if err != nil {
		t.Fatalf("UpdateStatus failed: %v", err)
	}
	if updated.Status != models.StatusCompleted {
		t.Errorf("status = %q", updated.Status)
	}
	if !updated.UpdatedAt.After(updated.CreatedAt) {
		t.Errorf("updated_at did not advance: %+v", updated)
	}

	counts, err := requests.StatusCounts(ctx)
	if err != nil {
		t.Fatalf("StatusCounts failed: %v", err)
	}
	if counts.Total != 1 || counts.Completed != 1 {
		t.Errorf("counts = %+v", counts)
	}
}

func TestDeletingUserCascadesToRequests(t *testing.T) {
	pool := setupPool(t)
	ctx := context.Background()
	users := NewUserRepository(pool)
	requests := NewRequestRepository(pool)

	owner := newUser("asha", "asha@example.com")
	if err := users.Create(ctx, owner); err != nil {
		t.Fatalf("seed user failed: %v", err)
	}
	if err := requests.Create(ctx, newRequest(owner.ID)); err != nil {
		t.Fatalf("seed request failed: %v", err)
	}

	if _, err := pool.Exec(ctx, `DELETE FROM users WHERE id = $1`, owner.ID); err != nil {
		t.Fatalf("delete user failed: %v", err)
	}

	counts, err := requests.StatusCounts(ctx)
	if err != nil {
		t.Fatalf("StatusCounts failed: %v", err)
	}
	if counts.Total != 0 {
		t.Errorf("requests survived owner deletion: %+v", counts)
	}
}
