package store

import (
	"context"
	"testing"
	"time"

	"github.com/MKhiriev/go-microblog/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSQLite_EmailUniqueCaseInsensitive(t *testing.T) {
	s := newSQLiteStorages(t)
	ctx := context.Background()

	created := seedUser(t, s, "alice")

	found, err := s.UserRepository.FindUserByEmail(ctx, "ALICE@Example.com")
	require.NoError(t, err)
	assert.Equal(t, created.ID, found.ID)

	_, err = s.UserRepository.CreateUser(ctx, models.User{Name: "Other", Email: "Alice@EXAMPLE.com", PasswordDigest: "d"})
	assert.ErrorIs(t, err, ErrEmailAlreadyExists)

	bob := seedUser(t, s, "bob")
	_, err = s.UserRepository.UpdateUser(ctx, bob.ID, models.UserChanges{Email: ptr("ALICE@example.com")})
	assert.ErrorIs(t, err, ErrEmailAlreadyExists)
}

func TestSQLite_ActivationIsSingleUse(t *testing.T) {
	s := newSQLiteStorages(t)
	ctx := context.Background()

	user, err := s.UserRepository.CreateUser(ctx, models.User{
		Name: "carol", Email: "carol@example.com", PasswordDigest: "d",
		ActivationDigest: ptr("act"), ActivationSentAt: ptr(time.Now().UTC()),
	})
	require.NoError(t, err)

	activated, err := s.UserRepository.ActivateUser(ctx, user.ID, ptr("act"))
	require.NoError(t, err)
	assert.True(t, activated.Activated)
	assert.Nil(t, activated.ActivationDigest)
	require.NotNil(t, activated.ActivatedAt)

	_, err = s.UserRepository.ActivateUser(ctx, user.ID, ptr("act"))
	assert.ErrorIs(t, err, ErrDigestMismatch)

	// administrative activation stays idempotent and keeps the first timestamp
	again, err := s.UserRepository.ActivateUser(ctx, user.ID, nil)
	require.NoError(t, err)
	assert.True(t, again.ActivatedAt.Equal(*activated.ActivatedAt))
}

func TestSQLite_ResetIsSingleUse(t *testing.T) {
	s := newSQLiteStorages(t)
	ctx := context.Background()
	user := seedUser(t, s, "dave")

	sentAt := time.Now().UTC().Truncate(time.Microsecond)
	require.NoError(t, s.UserRepository.SetResetDigest(ctx, user.ID, "reset", sentAt))

	pending, err := s.UserRepository.FindUserByID(ctx, user.ID)
	require.NoError(t, err)
	require.NotNil(t, pending.ResetDigest)
	require.NotNil(t, pending.ResetSentAt)
	assert.True(t, pending.ResetSentAt.Equal(sentAt))

	updated, err := s.UserRepository.ConsumeResetDigest(ctx, user.ID, "reset", "new-digest")
	require.NoError(t, err)
	assert.Equal(t, "new-digest", updated.PasswordDigest)
	assert.Nil(t, updated.ResetDigest)
	assert.Nil(t, updated.ResetSentAt)

	_, err = s.UserRepository.ConsumeResetDigest(ctx, user.ID, "reset", "other")
	assert.ErrorIs(t, err, ErrDigestMismatch)
}

func TestSQLite_RememberDigest(t *testing.T) {
	s := newSQLiteStorages(t)
	ctx := context.Background()
	user := seedUser(t, s, "erin")

	require.NoError(t, s.UserRepository.SetRememberDigest(ctx, user.ID, ptr("remember")))
	found, err := s.UserRepository.FindUserByID(ctx, user.ID)
	require.NoError(t, err)
	require.NotNil(t, found.RememberDigest)

	require.NoError(t, s.UserRepository.SetRememberDigest(ctx, user.ID, nil))
	require.NoError(t, s.UserRepository.SetRememberDigest(ctx, user.ID, nil))
	found, err = s.UserRepository.FindUserByID(ctx, user.ID)
	require.NoError(t, err)
	assert.Nil(t, found.RememberDigest)
}

func TestSQLite_FollowGraph(t *testing.T) {
	s := newSQLiteStorages(t)
	ctx := context.Background()
	graph := s.RelationshipRepository

	a := seedUser(t, s, "a")
	b := seedUser(t, s, "b")
	c := seedUser(t, s, "c")

	created, err := graph.Follow(ctx, a.ID, b.ID)
	require.NoError(t, err)
	assert.True(t, created)

	created, err = graph.Follow(ctx, a.ID, b.ID)
	require.NoError(t, err)
	assert.False(t, created, "duplicate follow must not create a second edge")

	_, err = graph.Follow(ctx, c.ID, b.ID)
	require.NoError(t, err)

	following, err := graph.IsFollowing(ctx, a.ID, b.ID)
	require.NoError(t, err)
	assert.True(t, following)

	followers, err := graph.FollowerIDs(ctx, b.ID)
	require.NoError(t, err)
	assert.Equal(t, []int64{a.ID, c.ID}, followers)

	n, err := graph.CountFollowers(ctx, b.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(2), n)

	removed, err := graph.Unfollow(ctx, a.ID, b.ID)
	require.NoError(t, err)
	assert.True(t, removed)

	removed, err = graph.Unfollow(ctx, a.ID, b.ID)
	require.NoError(t, err)
	assert.False(t, removed)

	following, err = graph.IsFollowing(ctx, a.ID, b.ID)
	require.NoError(t, err)
	assert.False(t, following)

	_, err = graph.Follow(ctx, a.ID, 9999)
	assert.ErrorIs(t, err, ErrUserNotFound)
}

func TestSQLite_FeedOrderingAndMembership(t *testing.T) {
	s := newSQLiteStorages(t)
	ctx := context.Background()

	viewer := seedUser(t, s, "viewer")
	followed := seedUser(t, s, "followed")
	stranger := seedUser(t, s, "stranger")

	_, err := s.RelationshipRepository.Follow(ctx, viewer.ID, followed.ID)
	require.NoError(t, err)

	base := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	mk := func(owner models.User, content string, at time.Time) models.Post {
		p, err := s.PostRepository.CreatePost(ctx, models.Post{UserID: owner.ID, Content: content, CreatedAt: at})
		require.NoError(t, err)
		return p
	}

	own := mk(viewer, "own", base.Add(1*time.Minute))
	tieLow := mk(followed, "tie-low", base.Add(2*time.Minute))
	tieHigh := mk(followed, "tie-high", base.Add(2*time.Minute))
	mk(stranger, "stranger", base.Add(3*time.Minute))
	newest := mk(followed, "newest", base.Add(4*time.Minute))

	all, err := s.PostRepository.Feed(ctx, viewer.ID, models.FeedCursor{}, 10)
	require.NoError(t, err)

	ids := make([]int64, 0, len(all))
	for _, p := range all {
		ids = append(ids, p.ID)
	}
	assert.Equal(t, []int64{newest.ID, tieHigh.ID, tieLow.ID, own.ID}, ids)

	// keyset paging yields the same sequence
	first, err := s.PostRepository.Feed(ctx, viewer.ID, models.FeedCursor{}, 2)
	require.NoError(t, err)
	require.Len(t, first, 2)
	second, err := s.PostRepository.Feed(ctx, viewer.ID, models.CursorAfter(first[1]), 2)
	require.NoError(t, err)
	require.Len(t, second, 2)
	assert.Equal(t, tieLow.ID, second[0].ID)
	assert.Equal(t, own.ID, second[1].ID)

	// unfollowing removes the followed account's posts
	_, err = s.RelationshipRepository.Unfollow(ctx, viewer.ID, followed.ID)
	require.NoError(t, err)
	after, err := s.PostRepository.Feed(ctx, viewer.ID, models.FeedCursor{}, 10)
	require.NoError(t, err)
	require.Len(t, after, 1)
	assert.Equal(t, own.ID, after[0].ID)
}

func TestSQLite_FeedCursorIgnoresOffset(t *testing.T) {
	s := newSQLiteStorages(t)
	ctx := context.Background()

	author := seedUser(t, s, "author")

	base := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	var posts []models.Post
	for i := range 3 {
		p, err := s.PostRepository.CreatePost(ctx, models.Post{UserID: author.ID, Content: "post", CreatedAt: base.Add(time.Duration(i) * time.Minute)})
		require.NoError(t, err)
		posts = append(posts, p)
	}
	newest := posts[2]

	utc := models.CursorAfter(newest)
	shifted := models.FeedCursor{CreatedAt: newest.CreatedAt.In(time.FixedZone("UTC+5", 5*60*60)), ID: newest.ID}

	fromUTC, err := s.PostRepository.Feed(ctx, author.ID, utc, 10)
	require.NoError(t, err)
	fromShifted, err := s.PostRepository.Feed(ctx, author.ID, shifted, 10)
	require.NoError(t, err)

	require.Len(t, fromUTC, 2)
	require.Len(t, fromShifted, 2)
	assert.Equal(t, posts[1].ID, fromShifted[0].ID)
	assert.Equal(t, posts[0].ID, fromShifted[1].ID)
}

func TestSQLite_DeleteUserCascade(t *testing.T) {
	s := newSQLiteStorages(t)
	ctx := context.Background()

	victim := seedUser(t, s, "victim")
	fan := seedUser(t, s, "fan")
	idol := seedUser(t, s, "idol")

	_, err := s.RelationshipRepository.Follow(ctx, victim.ID, idol.ID)
	require.NoError(t, err)
	_, err = s.RelationshipRepository.Follow(ctx, fan.ID, victim.ID)
	require.NoError(t, err)
	_, err = s.RelationshipRepository.Follow(ctx, fan.ID, idol.ID)
	require.NoError(t, err)

	for _, content := range []string{"one", "two"} {
		_, err = s.PostRepository.CreatePost(ctx, models.Post{UserID: victim.ID, Content: content})
		require.NoError(t, err)
	}
	_, err = s.PostRepository.CreatePost(ctx, models.Post{UserID: idol.ID, Content: "stays"})
	require.NoError(t, err)

	report, err := s.UserRepository.DeleteUser(ctx, victim.ID)
	require.NoError(t, err)
	assert.Equal(t, models.DeletionReport{UserID: victim.ID, PostsDeleted: 2, RelationshipsDeleted: 2}, report)

	_, err = s.UserRepository.FindUserByID(ctx, victim.ID)
	assert.ErrorIs(t, err, ErrUserNotFound)

	fanFollowing, err := s.RelationshipRepository.FollowingIDs(ctx, fan.ID)
	require.NoError(t, err)
	assert.Equal(t, []int64{idol.ID}, fanFollowing)

	idolPosts, err := s.PostRepository.CountPostsByUser(ctx, idol.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(1), idolPosts)

	// an account without dependents is deleted with zero counts
	lonely, err := s.UserRepository.DeleteUser(ctx, fan.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(1), lonely.RelationshipsDeleted)
	assert.Zero(t, lonely.PostsDeleted)

	_, err = s.UserRepository.DeleteUser(ctx, victim.ID)
	assert.ErrorIs(t, err, ErrUserNotFound)
}

func TestSQLite_ListActivatedUsers(t *testing.T) {
	s := newSQLiteStorages(t)
	ctx := context.Background()

	active := seedUser(t, s, "active")
	seedUser(t, s, "inactive")
	_, err := s.UserRepository.ActivateUser(ctx, active.ID, nil)
	require.NoError(t, err)

	users, err := s.UserRepository.ListActivatedUsers(ctx, models.Page{Number: 1, PerPage: 10})
	require.NoError(t, err)
	require.Len(t, users, 1)
	assert.Equal(t, active.ID, users[0].ID)

	admin, err := s.UserRepository.SetAdmin(ctx, active.ID, true)
	require.NoError(t, err)
	assert.True(t, admin.Admin)
}
