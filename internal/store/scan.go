package store

import (
	"github.com/MKhiriev/go-microblog/models"
)

// rowScanner is satisfied by *sql.Row and *sql.Rows.
type rowScanner interface {
	Scan(dest ...any) error
}

// scanUser reads one row selected with userColumns.
func scanUser(row rowScanner) (models.User, error) {
	var user models.User
	err := row.Scan(
		&user.ID,
		&user.Name,
		&user.Email,
		&user.PasswordDigest,
		&user.Admin,
		&user.Activated,
		&user.ActivatedAt,
		&user.ActivationDigest,
		&user.ActivationSentAt,
		&user.RememberDigest,
		&user.ResetDigest,
		&user.ResetSentAt,
		&user.CreatedAt,
		&user.UpdatedAt,
	)
	return user, err
}

// scanPost reads one row selected with postColumns.
func scanPost(row rowScanner) (models.Post, error) {
	var post models.Post
	err := row.Scan(&post.ID, &post.UserID, &post.Content, &post.CreatedAt)
	return post, err
}
