package user

import "context"

// Repository provides persistence for users.
type Repository interface {
	Create(ctx context.Context, u *User) error
	Get(ctx context.Context, id string) (*User, error)
	GetByEmail(ctx context.Context, email string) (*User, error)
	List(ctx context.Context) ([]User, error)
	// Update writes name, phone and avatar URL.
	Update(ctx context.Context, u *User) error
}

// FileStore keeps avatar images. Exists reports an error for locators the
// store did not issue.
type FileStore interface {
	Store(ctx context.Context, name string, data []byte) (string, error)
	Exists(ctx context.Context, locator string) (bool, error)
	Delete(ctx context.Context, locator string) error
}
