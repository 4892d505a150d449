package service

// UserServiceWrapper decorates a UserService with additional behavior such
// as input validation.
type UserServiceWrapper interface {
	Wrap(UserService) UserService
}

// PostServiceWrapper decorates a PostService.
type PostServiceWrapper interface {
	Wrap(PostService) PostService
}
