package repository

import (
	"context"
	"fmt"

	"planboard/internal/domain"

	"github.com/go-kivik/kivik/v4"
)

type UserRepository interface {
	Create(user *domain.User) error
	FindByID(id string) (*domain.User, error)
	FindByEmail(email string) (*domain.User, error)
	EmailExists(email string) (bool, error)
}

type userRepository struct {
	client *kivik.Client
	dbName string
}

func NewUserRepository(client *kivik.Client, dbName string) UserRepository {
	return &userRepository{
		client: client,
		dbName: dbName,
	}
}

func userDocID(id string) string {
	return fmt.Sprintf("user:%s", id)
}

func (r *userRepository) Create(user *domain.User) error {
	db := r.client.DB(r.dbName)

	_, err := db.Put(context.Background(), userDocID(user.ID), user)
	if err != nil {
		return fmt.Errorf("failed to create user: %w", err)
	}

	return nil
}

func (r *userRepository) FindByID(id string) (*domain.User, error) {
	db := r.client.DB(r.dbName)

	row := db.Get(context.Background(), userDocID(id))

	var user domain.User
	if err := row.ScanDoc(&user); err != nil {
		return nil, fmt.Errorf("failed to find user: %w", err)
	}

	return &user, nil
}

func (r *userRepository) FindByEmail(email string) (*domain.User, error) {
	db := r.client.DB(r.dbName)

	query := map[string]interface{}{
		"selector": map[string]interface{}{
			"_id":   map[string]interface{}{"$gte": "user:", "$lt": "user:￰"},
			"email": email,
		},
		"limit": 1,
	}

	rows := db.Find(context.Background(), query)
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to find user by email: %w", err)
	}
	defer rows.Close()

	if !rows.Next() {
		return nil, fmt.Errorf("user not found")
	}

	var user domain.User
	if err := rows.ScanDoc(&user); err != nil {
		return nil, fmt.Errorf("failed to scan user: %w", err)
	}

	return &user, nil
}

func (r *userRepository) EmailExists(email string) (bool, error) {
	_, err := r.FindByEmail(email)
	if err != nil {
		return false, nil
	}
	return true, nil
}
