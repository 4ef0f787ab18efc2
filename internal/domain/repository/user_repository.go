package repository

import "github.com/amortiplus/consola-api/internal/domain/entity"

// UserRepository puerto de persistencia para operadores de la consola.
type UserRepository interface {
	Create(user *entity.User) error
	GetByID(id string) (*entity.User, error)
	GetByEmail(email string) (*entity.User, error)
}
