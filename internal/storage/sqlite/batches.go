package sqlite

import (
	"context"
	"strings"

	"github.com/doug-martin/goqu/v9"
	"github.com/google/uuid"

	"github.com/mmynk/splitledger/internal/models"
	"github.com/mmynk/splitledger/pkg/serrors"
)

// CreateBatch persists a new batch and its members in one transaction.
func (s *SQLiteStore) CreateBatch(ctx context.Context, batch *models.Batch) error {
	batch.Name = strings.TrimSpace(batch.Name)
	if batch.Name == "" {
		return serrors.With(serrors.ErrInvalidInput, "batch name is required")
	}
	members, err := dedupeIDs(batch.MemberIDs)
	if err != nil {
		return err
	}

	ctx, cancel := s.withTimeout(ctx)
	defer cancel()

	if batch.ID == "" {
		batch.ID = uuid.New().String()
	}
	if batch.CreatedAt == 0 {
		batch.CreatedAt = s.now().Unix()
	}
	batch.MemberIDs = members

	err = s.inTx(ctx, func(b Builder) error {
		_, err := b.Insert(batchesTable).
			Rows(batchRow{
				ID:          batch.ID,
				Name:        batch.Name,
				Description: batch.Description,
				CreatedAt:   batch.CreatedAt,
			}).
			Executor().ExecContext(ctx)
		if err != nil {
			return classify(ctx, err, "failed to insert batch")
		}

		return insertMembers(ctx, b, batch.ID, members, batch.CreatedAt)
	})

	return classify(ctx, err, "failed to create batch")
}

// GetBatch retrieves a batch by ID, including its member IDs.
func (s *SQLiteStore) GetBatch(ctx context.Context, batchID string) (*models.Batch, error) {
	ctx, cancel := s.withTimeout(ctx)
	defer cancel()

	batch, err := getBatch(ctx, s.builder, batchID)
	if err != nil {
		return nil, classify(ctx, err, "failed to get batch")
	}

	return batch, nil
}

// AddBatchMembers appends users to an existing batch, skipping users that
// are already members.
func (s *SQLiteStore) AddBatchMembers(ctx context.Context, batchID string, userIDs []string) (*models.Batch, error) {
	ids, err := dedupeIDs(userIDs)
	if err != nil {
		return nil, err
	}

	ctx, cancel := s.withTimeout(ctx)
	defer cancel()

	var batch *models.Batch
	err = s.inTx(ctx, func(b Builder) error {
		current, err := getBatch(ctx, b, batchID)
		if err != nil {
			return err
		}

		var toAdd []string
		for _, id := range ids {
			if !current.HasMember(id) {
				toAdd = append(toAdd, id)
			}
		}
		if err := insertMembers(ctx, b, batchID, toAdd, s.now().Unix()); err != nil {
			return err
		}

		current.MemberIDs = append(current.MemberIDs, toAdd...)
		batch = current
		return nil
	})
	if err != nil {
		return nil, classify(ctx, err, "failed to add batch members")
	}

	return batch, nil
}

// ListBatchMembers returns the users of a batch in the order they joined.
func (s *SQLiteStore) ListBatchMembers(ctx context.Context, batchID string) ([]*models.User, error) {
	ctx, cancel := s.withTimeout(ctx)
	defer cancel()

	if err := batchExists(ctx, s.builder, batchID); err != nil {
		return nil, classify(ctx, err, "failed to list batch members")
	}

	users, err := batchMembers(ctx, s.builder, batchID)
	if err != nil {
		return nil, classify(ctx, err, "failed to list batch members")
	}
	return users, nil
}

func batchMembers(ctx context.Context, b Builder, batchID string) ([]*models.User, error) {
	var rows []userRow
	err := b.From(goqu.T(batchMembersTable).As("bm")).
		Join(goqu.T(usersTable).As("u"), goqu.On(goqu.I("u.id").Eq(goqu.I("bm.user_id")))).
		Select(
			goqu.I("u.id").As("id"),
			goqu.I("u.name").As("name"),
			goqu.I("u.email").As("email"),
			goqu.I("u.mobile").As("mobile"),
			goqu.I("u.password_hash").As("password_hash"),
			goqu.I("u.created_at").As("created_at"),
		).
		Where(goqu.I("bm.batch_id").Eq(batchID)).
		Order(goqu.I("bm.rowid").Asc()).
		Executor().ScanStructsContext(ctx, &rows)
	if err != nil {
		return nil, err
	}

	users := make([]*models.User, len(rows))
	for i, r := range rows {
		users[i] = r.toModel()
	}

	return users, nil
}

func getBatch(ctx context.Context, b Builder, batchID string) (*models.Batch, error) {
	var row batchRow
	found, err := b.From(batchesTable).
		Where(goqu.I("id").Eq(batchID)).
		Executor().ScanStructContext(ctx, &row)
	if err != nil {
		return nil, err
	}
	if !found {
		return nil, serrors.With(serrors.ErrNotFound, "batch %s not found", batchID)
	}

	members, err := memberIDs(ctx, b, batchID)
	if err != nil {
		return nil, err
	}

	return &models.Batch{
		ID:          row.ID,
		Name:        row.Name,
		Description: row.Description,
		MemberIDs:   members,
		CreatedAt:   row.CreatedAt,
	}, nil
}

func batchExists(ctx context.Context, b Builder, batchID string) error {
	var id string
	found, err := b.From(batchesTable).
		Select("id").
		Where(goqu.I("id").Eq(batchID)).
		Executor().ScanValContext(ctx, &id)
	if err != nil {
		return err
	}
	if !found {
		return serrors.With(serrors.ErrNotFound, "batch %s not found", batchID)
	}
	return nil
}

// memberIDs returns the member user IDs of a batch in member order.
func memberIDs(ctx context.Context, b Builder, batchID string) ([]string, error) {
	ids := []string{}
	err := b.From(batchMembersTable).
		Select("user_id").
		Where(goqu.I("batch_id").Eq(batchID)).
		Order(goqu.I("rowid").Asc()).
		Executor().ScanValsContext(ctx, &ids)
	if err != nil {
		return nil, err
	}
	return ids, nil
}

func insertMembers(ctx context.Context, b Builder, batchID string, userIDs []string, joinedAt int64) error {
	if len(userIDs) == 0 {
		return nil
	}

	rows := make([]memberRow, len(userIDs))
	for i, id := range userIDs {
		rows[i] = memberRow{BatchID: batchID, UserID: id, JoinedAt: joinedAt}
	}

	_, err := b.Insert(batchMembersTable).Rows(rows).Executor().ExecContext(ctx)
	if err != nil {
		err = classify(ctx, err, "failed to insert batch members")
		if serrors.KindOf(err) == serrors.ErrConflict {
			return serrors.Wrap(serrors.ErrConflict, err, "batch members must be existing users")
		}
		return err
	}

	return nil
}

// dedupeIDs drops repeated IDs, keeping first-occurrence order.
func dedupeIDs(ids []string) ([]string, error) {
	seen := make(map[string]bool, len(ids))
	out := make([]string, 0, len(ids))
	for _, id := range ids {
		if id == "" {
			return nil, serrors.With(serrors.ErrInvalidInput, "member id cannot be empty")
		}
		if seen[id] {
			continue
		}
		seen[id] = true
		out = append(out, id)
	}
	return out, nil
}
