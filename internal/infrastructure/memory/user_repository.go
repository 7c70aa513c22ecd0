package memory

import (
	"github.com/jhoicas/donaciones-api/internal/domain"
	"github.com/jhoicas/donaciones-api/internal/domain/entity"
	"github.com/jhoicas/donaciones-api/internal/domain/repository"
)

var _ repository.UserRepository = (*UserRepo)(nil)

// UserRepo implementación en memoria de UserRepository.
type UserRepo struct {
	session
}

// NewUserRepository construye el repo sobre el store.
func NewUserRepository(store *Store) *UserRepo {
	return &UserRepo{session{store: store}}
}

// Create persiste un usuario. Email duplicado => domain.ErrEmailAlreadyExists.
func (r *UserRepo) Create(user *entity.User) error {
	defer r.lock()()
	for _, u := range r.store.users {
		if u.Email == user.Email {
			return domain.ErrEmailAlreadyExists
		}
	}
	r.store.users[user.ID] = cloneUser(user)
	return nil
}

// GetByID obtiene un usuario por ID.
func (r *UserRepo) GetByID(id string) (*entity.User, error) {
	defer r.lock()()
	u, ok := r.store.users[id]
	if !ok {
		return nil, nil
	}
	return cloneUser(u), nil
}

// FindByEmail obtiene un usuario por email.
func (r *UserRepo) FindByEmail(email string) (*entity.User, error) {
	defer r.lock()()
	for _, u := range r.store.users {
		if u.Email == email {
			return cloneUser(u), nil
		}
	}
	return nil, nil
}

// Update actualiza un usuario.
func (r *UserRepo) Update(user *entity.User) error {
	defer r.lock()()
	if _, ok := r.store.users[user.ID]; !ok {
		return domain.ErrNotFound
	}
	for _, u := range r.store.users {
		if u.ID != user.ID && u.Email == user.Email {
			return domain.ErrEmailAlreadyExists
		}
	}
	r.store.users[user.ID] = cloneUser(user)
	return nil
}
