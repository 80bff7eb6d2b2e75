// Package testutil provides in-memory repositories for service and router tests.
package testutil

import (
	"context"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/lojinha-dev/lojinha/internal/models"
	"github.com/lojinha-dev/lojinha/internal/store"
)

func stamp(base *models.BaseModel) {
	if base.ID == uuid.Nil {
		base.ID = uuid.New()
	}

	now := time.Now()
	if base.CreatedAt.IsZero() {
		base.CreatedAt = now
	}
	base.UpdatedAt = now
}

type Users struct {
	mu    sync.Mutex
	users map[uuid.UUID]models.User
}

func NewUsers() *Users {
	return &Users{users: map[uuid.UUID]models.User{}}
}

func (r *Users) Create(_ context.Context, user *models.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, existing := range r.users {
		if existing.Email == user.Email {
			return store.ErrDuplicate
		}
	}

	stamp(&user.BaseModel)
	r.users[user.ID] = *user

	return nil
}

func (r *Users) FindByEmail(_ context.Context, email string) (*models.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, user := range r.users {
		if user.Email == email {
			u := user
			return &u, nil
		}
	}

	return nil, store.ErrNotFound
}

type Clients struct {
	mu      sync.Mutex
	clients map[uuid.UUID]models.Client
}

func NewClients() *Clients {
	return &Clients{clients: map[uuid.UUID]models.Client{}}
}

func (r *Clients) Create(_ context.Context, client *models.Client) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	stamp(&client.BaseModel)
	r.clients[client.ID] = *client

	return nil
}

func (r *Clients) FindByID(_ context.Context, id uuid.UUID) (*models.Client, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	client, ok := r.clients[id]
	if !ok {
		return nil, store.ErrNotFound
	}

	return &client, nil
}

func (r *Clients) Update(_ context.Context, id uuid.UUID, changes map[string]interface{}) (*models.Client, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	client, ok := r.clients[id]
	if !ok {
		return nil, store.ErrNotFound
	}

	for column, value := range changes {
		switch column {
		case "full_name":
			client.FullName = value.(string)
		case "contact":
			client.Contact = value.(string)
		case "address":
			client.Address = value.(string)
		case "active":
			client.Active = value.(bool)
		}
	}

	client.UpdatedAt = time.Now()
	r.clients[id] = client

	return &client, nil
}

func (r *Clients) Delete(_ context.Context, id uuid.UUID) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.clients[id]; !ok {
		return store.ErrNotFound
	}

	delete(r.clients, id)

	return nil
}

func (r *Clients) List(_ context.Context, filter store.ClientFilter) ([]models.Client, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	clients := []models.Client{}

	for _, client := range r.clients {
		if filter.FullName != "" && !strings.Contains(strings.ToLower(client.FullName), strings.ToLower(filter.FullName)) {
			continue
		}
		if filter.Active != nil && client.Active != *filter.Active {
			continue
		}
		if filter.UserID != nil && client.UserID != *filter.UserID {
			continue
		}
		clients = append(clients, client)
	}

	sort.Slice(clients, func(i, j int) bool { return clients[i].FullName < clients[j].FullName })

	return clients, nil
}
