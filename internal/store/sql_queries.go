package store

import (
	"strings"
	"time"

	sq "github.com/Masterminds/squirrel"
	"github.com/MKhiriev/go-microblog/models"
)

const (
	usersTable         = "users"
	postsTable         = "posts"
	relationshipsTable = "relationships"
)

var userColumns = []string{
	"id",
	"name",
	"email",
	"password_digest",
	"admin",
	"activated",
	"activated_at",
	"activation_digest",
	"activation_sent_at",
	"remember_digest",
	"reset_digest",
	"reset_sent_at",
	"created_at",
	"updated_at",
}

var postColumns = []string{"id", "user_id", "content", "created_at"}

// returningUser is appended to UPDATE statements so the new row comes back
// in the same round trip.
var returningUser = "RETURNING " + strings.Join(userColumns, ", ")

// ── users ────────────────────────────────────────────────────────────────────

func buildInsertUserQuery(b sq.StatementBuilderType, user models.User) (string, []any, error) {
	return b.Insert(usersTable).
		Columns(
			"name", "email", "password_digest", "admin", "activated", "activated_at",
			"activation_digest", "activation_sent_at", "created_at", "updated_at",
		).
		Values(
			user.Name, user.Email, user.PasswordDigest, user.Admin, user.Activated, user.ActivatedAt,
			user.ActivationDigest, user.ActivationSentAt, user.CreatedAt, user.UpdatedAt,
		).
		Suffix("RETURNING id").
		ToSql()
}

func buildSelectUserByIDQuery(b sq.StatementBuilderType, id int64) (string, []any, error) {
	return b.Select(userColumns...).From(usersTable).Where(sq.Eq{"id": id}).ToSql()
}

func buildSelectUserByEmailQuery(b sq.StatementBuilderType, email string) (string, []any, error) {
	return b.Select(userColumns...).From(usersTable).Where(sq.Expr("lower(email) = lower(?)", email)).ToSql()
}

func buildUpdateUserQuery(b sq.StatementBuilderType, id int64, changes models.UserChanges, now time.Time) (string, []any, error) {
	q := b.Update(usersTable).Set("updated_at", now)
	if changes.Name != nil {
		q = q.Set("name", *changes.Name)
	}
	if changes.Email != nil {
		q = q.Set("email", *changes.Email)
	}
	if changes.PasswordDigest != nil {
		q = q.Set("password_digest", *changes.PasswordDigest)
	}
	return q.Where(sq.Eq{"id": id}).Suffix(returningUser).ToSql()
}

// buildActivateUserQuery activates the account. Without an expected digest
// the statement is idempotent and keeps the first activation time.
func buildActivateUserQuery(b sq.StatementBuilderType, id int64, expectedDigest *string, now time.Time) (string, []any, error) {
	q := b.Update(usersTable).
		Set("activated", true).
		Set("activated_at", sq.Expr("COALESCE(activated_at, ?)", now)).
		Set("activation_digest", nil).
		Set("updated_at", now).
		Where(sq.Eq{"id": id})
	if expectedDigest != nil {
		q = q.Where(sq.Eq{"activation_digest": *expectedDigest})
	}
	return q.Suffix(returningUser).ToSql()
}

func buildSetRememberDigestQuery(b sq.StatementBuilderType, id int64, digest *string, now time.Time) (string, []any, error) {
	return b.Update(usersTable).
		Set("remember_digest", digest).
		Set("updated_at", now).
		Where(sq.Eq{"id": id}).
		ToSql()
}

func buildSetResetDigestQuery(b sq.StatementBuilderType, id int64, digest string, sentAt time.Time, now time.Time) (string, []any, error) {
	return b.Update(usersTable).
		Set("reset_digest", digest).
		Set("reset_sent_at", sentAt).
		Set("updated_at", now).
		Where(sq.Eq{"id": id}).
		ToSql()
}

func buildConsumeResetDigestQuery(b sq.StatementBuilderType, id int64, expectedDigest, passwordDigest string, now time.Time) (string, []any, error) {
	return b.Update(usersTable).
		Set("password_digest", passwordDigest).
		Set("reset_digest", nil).
		Set("reset_sent_at", nil).
		Set("updated_at", now).
		Where(sq.Eq{"id": id, "reset_digest": expectedDigest}).
		Suffix(returningUser).
		ToSql()
}

func buildClearResetDigestQuery(b sq.StatementBuilderType, id int64, now time.Time) (string, []any, error) {
	return b.Update(usersTable).
		Set("reset_digest", nil).
		Set("reset_sent_at", nil).
		Set("updated_at", now).
		Where(sq.Eq{"id": id}).
		ToSql()
}

func buildSetAdminQuery(b sq.StatementBuilderType, id int64, admin bool, now time.Time) (string, []any, error) {
	return b.Update(usersTable).
		Set("admin", admin).
		Set("updated_at", now).
		Where(sq.Eq{"id": id}).
		Suffix(returningUser).
		ToSql()
}

func buildListActivatedUsersQuery(b sq.StatementBuilderType, page models.Page) (string, []any, error) {
	return b.Select(userColumns...).
		From(usersTable).
		Where(sq.Eq{"activated": true}).
		OrderBy("id ASC").
		Limit(page.Limit()).
		Offset(page.Offset()).
		ToSql()
}

func buildDeleteUserEdgesQuery(b sq.StatementBuilderType, id int64) (string, []any, error) {
	return b.Delete(relationshipsTable).
		Where(sq.Or{sq.Eq{"follower_id": id}, sq.Eq{"followed_id": id}}).
		ToSql()
}

func buildDeleteUserQuery(b sq.StatementBuilderType, id int64) (string, []any, error) {
	return b.Delete(usersTable).Where(sq.Eq{"id": id}).ToSql()
}

// ── relationships ────────────────────────────────────────────────────────────

func buildFollowQuery(b sq.StatementBuilderType, followerID, followedID int64, now time.Time) (string, []any, error) {
	return b.Insert(relationshipsTable).
		Columns("follower_id", "followed_id", "created_at").
		Values(followerID, followedID, now).
		Suffix("ON CONFLICT (follower_id, followed_id) DO NOTHING").
		ToSql()
}

func buildUnfollowQuery(b sq.StatementBuilderType, followerID, followedID int64) (string, []any, error) {
	return b.Delete(relationshipsTable).
		Where(sq.Eq{"follower_id": followerID, "followed_id": followedID}).
		ToSql()
}

func buildCountEdgesQuery(b sq.StatementBuilderType, where sq.Eq) (string, []any, error) {
	return b.Select("COUNT(*)").From(relationshipsTable).Where(where).ToSql()
}

// buildEdgeIDsQuery selects the column opposite to the filtered one, e.g.
// follower ids of a followed account.
func buildEdgeIDsQuery(b sq.StatementBuilderType, column string, where sq.Eq) (string, []any, error) {
	return b.Select(column).From(relationshipsTable).Where(where).OrderBy(column + " ASC").ToSql()
}

// ── posts ────────────────────────────────────────────────────────────────────

func buildInsertPostQuery(b sq.StatementBuilderType, post models.Post) (string, []any, error) {
	return b.Insert(postsTable).
		Columns("user_id", "content", "created_at").
		Values(post.UserID, post.Content, post.CreatedAt).
		Suffix("RETURNING id").
		ToSql()
}

func buildPostsByUserQuery(b sq.StatementBuilderType, userID int64, page models.Page) (string, []any, error) {
	return b.Select(postColumns...).
		From(postsTable).
		Where(sq.Eq{"user_id": userID}).
		OrderBy("created_at DESC", "id DESC").
		Limit(page.Limit()).
		Offset(page.Offset()).
		ToSql()
}

func buildCountPostsByUserQuery(b sq.StatementBuilderType, userID int64) (string, []any, error) {
	return b.Select("COUNT(*)").From(postsTable).Where(sq.Eq{"user_id": userID}).ToSql()
}

func buildDeletePostsByUserQuery(b sq.StatementBuilderType, userID int64) (string, []any, error) {
	return b.Delete(postsTable).Where(sq.Eq{"user_id": userID}).ToSql()
}

// buildFeedQuery selects the viewer's own posts and the posts of followed
// accounts, keyset-paged on (created_at, id) descending.
func buildFeedQuery(b sq.StatementBuilderType, viewerID int64, cursor models.FeedCursor, limit uint64) (string, []any, error) {
	// rendered with "?" placeholders; the outer builder numbers them
	followed := sq.Select("followed_id").From(relationshipsTable).Where(sq.Eq{"follower_id": viewerID})
	followedSQL, followedArgs, err := followed.ToSql()
	if err != nil {
		return "", nil, err
	}

	q := b.Select(postColumns...).
		From(postsTable).
		Where(sq.Or{
			sq.Eq{"user_id": viewerID},
			sq.Expr("user_id IN ("+followedSQL+")", followedArgs...),
		})

	if !cursor.IsZero() {
		// stored timestamps are UTC; sqlite compares them as text
		at := cursor.CreatedAt.UTC().Truncate(time.Microsecond)
		q = q.Where(sq.Or{
			sq.Lt{"created_at": at},
			sq.And{sq.Eq{"created_at": at}, sq.Lt{"id": cursor.ID}},
		})
	}

	return q.OrderBy("created_at DESC", "id DESC").Limit(limit).ToSql()
}
