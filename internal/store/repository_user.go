package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/MKhiriev/go-microblog/internal/logger"
	"github.com/MKhiriev/go-microblog/models"
)

// userRepository is the SQL implementation of [UserRepository].
//
// All methods obtain a context-scoped logger via [logger.FromContext] for
// structured, request-level tracing of database interactions.
type userRepository struct {
	logger *logger.Logger
	db     *DB
}

// NewUserRepository constructs a [UserRepository] backed by the provided
// database connection and logger.
func NewUserRepository(db *DB, logger *logger.Logger) UserRepository {
	logger.Debug().Msg("creating user repository")
	return &userRepository{
		db:     db,
		logger: logger,
	}
}

// CreateUser persists a new account. Zero timestamps are filled with the
// current time.
//
// Error handling:
//   - unique violation on lower(email) → [ErrEmailAlreadyExists].
//   - any other driver-level error → wrapped [ErrExecutingStatement].
func (r *userRepository) CreateUser(ctx context.Context, user models.User) (models.User, error) {
	log := logger.FromContext(ctx)

	now := r.db.now()
	if user.CreatedAt.IsZero() {
		user.CreatedAt = now
	}
	if user.UpdatedAt.IsZero() {
		user.UpdatedAt = user.CreatedAt
	}

	query, args, err := buildInsertUserQuery(r.db.builder, user)
	if err != nil {
		log.Err(err).Str("func", "*userRepository.CreateUser").Msg("error building query")
		return models.User{}, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	if err = r.db.QueryRowContext(ctx, query, args...).Scan(&user.ID); err != nil {
		log.Err(err).Str("func", "*userRepository.CreateUser").Msg("error inserting user")
		return models.User{}, r.db.translate(err, ErrExecutingStatement)
	}

	return user, nil
}

// FindUserByID returns the account with the given id or [ErrUserNotFound].
func (r *userRepository) FindUserByID(ctx context.Context, id int64) (models.User, error) {
	query, args, err := buildSelectUserByIDQuery(r.db.builder, id)
	if err != nil {
		return models.User{}, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}
	return r.queryUser(ctx, "*userRepository.FindUserByID", query, args)
}

// FindUserByEmail looks the account up case-insensitively.
func (r *userRepository) FindUserByEmail(ctx context.Context, email string) (models.User, error) {
	query, args, err := buildSelectUserByEmailQuery(r.db.builder, email)
	if err != nil {
		return models.User{}, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}
	return r.queryUser(ctx, "*userRepository.FindUserByEmail", query, args)
}

// UpdateUser applies changes and returns the updated account.
func (r *userRepository) UpdateUser(ctx context.Context, id int64, changes models.UserChanges) (models.User, error) {
	if changes.IsEmpty() {
		return r.FindUserByID(ctx, id)
	}

	query, args, err := buildUpdateUserQuery(r.db.builder, id, changes, r.db.now())
	if err != nil {
		return models.User{}, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}
	return r.queryUser(ctx, "*userRepository.UpdateUser", query, args)
}

// ActivateUser implements [UserRepository].
func (r *userRepository) ActivateUser(ctx context.Context, id int64, expectedDigest *string) (models.User, error) {
	query, args, err := buildActivateUserQuery(r.db.builder, id, expectedDigest, r.db.now())
	if err != nil {
		return models.User{}, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	user, err := r.queryUser(ctx, "*userRepository.ActivateUser", query, args)
	if errors.Is(err, ErrUserNotFound) && expectedDigest != nil {
		return models.User{}, r.mismatchOrMissing(ctx, id)
	}
	return user, err
}

// SetRememberDigest stores digest, or clears it when digest is nil.
func (r *userRepository) SetRememberDigest(ctx context.Context, id int64, digest *string) error {
	query, args, err := buildSetRememberDigestQuery(r.db.builder, id, digest, r.db.now())
	if err != nil {
		return fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}
	return r.execOne(ctx, "*userRepository.SetRememberDigest", query, args)
}

// SetResetDigest records a pending password reset.
func (r *userRepository) SetResetDigest(ctx context.Context, id int64, digest string, sentAt time.Time) error {
	query, args, err := buildSetResetDigestQuery(r.db.builder, id, digest, sentAt, r.db.now())
	if err != nil {
		return fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}
	return r.execOne(ctx, "*userRepository.SetResetDigest", query, args)
}

// ConsumeResetDigest implements [UserRepository].
func (r *userRepository) ConsumeResetDigest(ctx context.Context, id int64, expectedDigest, passwordDigest string) (models.User, error) {
	query, args, err := buildConsumeResetDigestQuery(r.db.builder, id, expectedDigest, passwordDigest, r.db.now())
	if err != nil {
		return models.User{}, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	user, err := r.queryUser(ctx, "*userRepository.ConsumeResetDigest", query, args)
	if errors.Is(err, ErrUserNotFound) {
		return models.User{}, r.mismatchOrMissing(ctx, id)
	}
	return user, err
}

// ClearResetDigest drops a pending reset. Clearing an absent reset is a no-op.
func (r *userRepository) ClearResetDigest(ctx context.Context, id int64) error {
	query, args, err := buildClearResetDigestQuery(r.db.builder, id, r.db.now())
	if err != nil {
		return fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}
	return r.execOne(ctx, "*userRepository.ClearResetDigest", query, args)
}

// SetAdmin grants or revokes the admin flag.
func (r *userRepository) SetAdmin(ctx context.Context, id int64, admin bool) (models.User, error) {
	query, args, err := buildSetAdminQuery(r.db.builder, id, admin, r.db.now())
	if err != nil {
		return models.User{}, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}
	return r.queryUser(ctx, "*userRepository.SetAdmin", query, args)
}

// ListActivatedUsers returns one page of activated accounts ordered by id.
func (r *userRepository) ListActivatedUsers(ctx context.Context, page models.Page) ([]models.User, error) {
	log := logger.FromContext(ctx)

	query, args, err := buildListActivatedUsersQuery(r.db.builder, page)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		log.Err(err).Str("func", "*userRepository.ListActivatedUsers").Msg("error querying users")
		return nil, fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}
	defer rows.Close()

	users := make([]models.User, 0, page.Limit())
	for rows.Next() {
		user, err := scanUser(rows)
		if err != nil {
			log.Err(err).Str("func", "*userRepository.ListActivatedUsers").Msg("error scanning user")
			return nil, fmt.Errorf("%w: %w", ErrScanningRows, err)
		}
		users = append(users, user)
	}
	if err = rows.Err(); err != nil {
		log.Err(err).Str("func", "*userRepository.ListActivatedUsers").Msg("error iterating users")
		return nil, fmt.Errorf("%w: %w", ErrScanningRows, err)
	}

	return users, nil
}

// DeleteUser removes, in this order and in one transaction, every edge
// where the account is follower or followed, every post it owns and the
// account row itself. A missing account rolls everything back.
func (r *userRepository) DeleteUser(ctx context.Context, id int64) (models.DeletionReport, error) {
	log := logger.FromContext(ctx)
	report := models.DeletionReport{UserID: id}

	err := r.db.WithTx(ctx, func(ctx context.Context, tx DBTX) error {
		report = models.DeletionReport{UserID: id}

		steps := []struct {
			name  string
			build func() (string, []any, error)
			count *int64
		}{
			{name: "relationships", build: func() (string, []any, error) { return buildDeleteUserEdgesQuery(r.db.builder, id) }, count: &report.RelationshipsDeleted},
			{name: "posts", build: func() (string, []any, error) { return buildDeletePostsByUserQuery(r.db.builder, id) }, count: &report.PostsDeleted},
		}

		for _, step := range steps {
			query, args, err := step.build()
			if err != nil {
				return fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
			}
			res, err := tx.ExecContext(ctx, query, args...)
			if err != nil {
				log.Err(err).Str("func", "*userRepository.DeleteUser").Str("step", step.name).Int64("user_id", id).Msg("error deleting dependents")
				return fmt.Errorf("%w: %w", ErrExecutingStatement, err)
			}
			if *step.count, err = res.RowsAffected(); err != nil {
				return fmt.Errorf("%w: %w", ErrExecutingStatement, err)
			}
		}

		query, args, err := buildDeleteUserQuery(r.db.builder, id)
		if err != nil {
			return fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
		}
		res, err := tx.ExecContext(ctx, query, args...)
		if err != nil {
			log.Err(err).Str("func", "*userRepository.DeleteUser").Int64("user_id", id).Msg("error deleting user")
			return r.db.translate(err, ErrExecutingStatement)
		}
		affected, err := res.RowsAffected()
		if err != nil {
			return fmt.Errorf("%w: %w", ErrExecutingStatement, err)
		}
		if affected == 0 {
			return ErrUserNotFound
		}
		return nil
	})
	if err != nil {
		return models.DeletionReport{}, err
	}

	log.Info().Str("func", "*userRepository.DeleteUser").
		Int64("user_id", id).
		Int64("posts_deleted", report.PostsDeleted).
		Int64("relationships_deleted", report.RelationshipsDeleted).
		Msg("user deleted")

	return report, nil
}

// queryUser runs a statement returning a single user row.
// No row means [ErrUserNotFound].
func (r *userRepository) queryUser(ctx context.Context, funcName, query string, args []any) (models.User, error) {
	log := logger.FromContext(ctx)

	user, err := scanUser(r.db.QueryRowContext(ctx, query, args...))
	if errors.Is(err, sql.ErrNoRows) {
		return models.User{}, ErrUserNotFound
	}
	if err != nil {
		log.Err(err).Str("func", funcName).Msg("error querying user")
		return models.User{}, r.db.translate(err, ErrExecutingQuery)
	}

	return user, nil
}

// execOne runs a statement that must touch exactly one account row.
func (r *userRepository) execOne(ctx context.Context, funcName, query string, args []any) error {
	log := logger.FromContext(ctx)

	res, err := r.db.ExecContext(ctx, query, args...)
	if err != nil {
		log.Err(err).Str("func", funcName).Msg("error executing statement")
		return r.db.translate(err, ErrExecutingStatement)
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: %w", ErrExecutingStatement, err)
	}
	if affected == 0 {
		return ErrUserNotFound
	}

	return nil
}

// mismatchOrMissing tells a failed compare-and-swap on an existing account
// apart from a missing account.
func (r *userRepository) mismatchOrMissing(ctx context.Context, id int64) error {
	if _, err := r.FindUserByID(ctx, id); err != nil {
		return err
	}
	return ErrDigestMismatch
}
