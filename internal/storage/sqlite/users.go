package sqlite

import (
	"context"

	"github.com/doug-martin/goqu/v9"
	"github.com/doug-martin/goqu/v9/exp"
	"github.com/google/uuid"

	"github.com/mmynk/splitledger/internal/models"
	"github.com/mmynk/splitledger/pkg/serrors"
)

// CreateUser inserts a new user into the database.
func (s *SQLiteStore) CreateUser(ctx context.Context, user *models.User) error {
	ctx, cancel := s.withTimeout(ctx)
	defer cancel()

	if user.ID == "" {
		user.ID = uuid.New().String()
	}
	if user.CreatedAt == 0 {
		user.CreatedAt = s.now().Unix()
	}

	_, err := s.builder.Insert(usersTable).
		Rows(userRowFrom(user)).
		Executor().ExecContext(ctx)
	if err != nil {
		err = classify(ctx, err, "failed to create user")
		if serrors.KindOf(err) == serrors.ErrConflict {
			return serrors.Wrap(serrors.ErrConflict, err, "email %s is already registered", user.Email)
		}
		return err
	}

	return nil
}

// GetUser retrieves a user by their ID.
func (s *SQLiteStore) GetUser(ctx context.Context, userID string) (*models.User, error) {
	ctx, cancel := s.withTimeout(ctx)
	defer cancel()

	return getUserWhere(ctx, s.builder, goqu.I("id").Eq(userID), "user "+userID)
}

// GetUserByEmail retrieves a user by their email address.
func (s *SQLiteStore) GetUserByEmail(ctx context.Context, email string) (*models.User, error) {
	ctx, cancel := s.withTimeout(ctx)
	defer cancel()

	return getUserWhere(ctx, s.builder, goqu.I("email").Eq(email), "user with email "+email)
}

func getUserWhere(ctx context.Context, b Builder, cond exp.Expression, what string) (*models.User, error) {
	var row userRow
	found, err := b.From(usersTable).
		Where(cond).
		Executor().ScanStructContext(ctx, &row)
	if err != nil {
		return nil, classify(ctx, err, "failed to get user")
	}
	if !found {
		return nil, serrors.With(serrors.ErrNotFound, "%s not found", what)
	}

	return row.toModel(), nil
}

// ListUsers returns all users ordered by name.
func (s *SQLiteStore) ListUsers(ctx context.Context) ([]*models.User, error) {
	ctx, cancel := s.withTimeout(ctx)
	defer cancel()

	var rows []userRow
	err := s.builder.From(usersTable).
		Order(goqu.I("name").Asc(), goqu.I("created_at").Asc()).
		Executor().ScanStructsContext(ctx, &rows)
	if err != nil {
		return nil, classify(ctx, err, "failed to list users")
	}

	users := make([]*models.User, len(rows))
	for i, r := range rows {
		users[i] = r.toModel()
	}

	return users, nil
}
