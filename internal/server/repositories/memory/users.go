package memory

import (
	"context"
	"strings"

	"github.com/dmitrijs2005/gophcatalog/internal/common"
	"github.com/dmitrijs2005/gophcatalog/internal/server/models"
	"github.com/dmitrijs2005/gophcatalog/internal/server/repositories/users"
	"github.com/google/uuid"
)

type UsersRepository struct {
	s *Store
}

func (r *UsersRepository) Create(ctx context.Context, user *models.User) (*models.User, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	if err := r.conflict(uuid.Nil, user.Username, user.Email); err != nil {
		return nil, err
	}

	user.ID = uuid.New()
	user.CreatedAt = r.s.now()
	r.s.users[user.ID] = *user

	return user, nil
}

func (r *UsersRepository) GetByID(ctx context.Context, id uuid.UUID) (*models.User, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	u, ok := r.s.users[id]
	if !ok {
		return nil, common.ErrorNotFound
	}
	return &u, nil
}

func (r *UsersRepository) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	return r.find(func(u models.User) bool { return u.Email == email })
}

func (r *UsersRepository) GetByUsername(ctx context.Context, username string) (*models.User, error) {
	return r.find(func(u models.User) bool { return u.Username == username })
}

func (r *UsersRepository) Update(ctx context.Context, id uuid.UUID, username, email *string) (*models.User, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	u, ok := r.s.users[id]
	if !ok {
		return nil, common.ErrorNotFound
	}
	if username != nil {
		u.Username = *username
	}
	if email != nil {
		u.Email = *email
	}
	if err := r.conflict(id, u.Username, u.Email); err != nil {
		return nil, err
	}

	r.s.users[id] = u
	return &u, nil
}

func (r *UsersRepository) find(match func(models.User) bool) (*models.User, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	for _, u := range r.s.users {
		if match(u) {
			return &u, nil
		}
	}
	return nil, common.ErrorNotFound
}

// conflict mimics the unique constraints on username and email.
// Callers hold the lock.
func (r *UsersRepository) conflict(self uuid.UUID, username, email string) error {
	for id, u := range r.s.users {
		if id == self {
			continue
		}
		if u.Username == username {
			return users.ErrUsernameTaken
		}
		if strings.EqualFold(u.Email, email) {
			return users.ErrEmailTaken
		}
	}
	return nil
}
