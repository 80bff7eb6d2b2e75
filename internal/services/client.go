package services

import (
	"context"

	"github.com/google/uuid"
	"github.com/lojinha-dev/lojinha/internal/models"
	"github.com/lojinha-dev/lojinha/internal/store"
)

type ClientInput struct {
	FullName string
	Contact  string
	Address  string
	Active   bool
	UserID   uuid.UUID
}

// ClientChanges holds a partial update; nil fields are left as they are.
type ClientChanges struct {
	FullName *string
	Contact  *string
	Address  *string
	Active   *bool
}

type ClientService struct {
	clients ClientRepository
}

func NewClientService(clients ClientRepository) *ClientService {
	return &ClientService{clients: clients}
}

func (s *ClientService) Create(ctx context.Context, in ClientInput) (*models.Client, error) {
	client := &models.Client{
		FullName: in.FullName,
		Contact:  in.Contact,
		Address:  in.Address,
		Active:   in.Active,
		UserID:   in.UserID,
	}

	if err := s.clients.Create(ctx, client); err != nil {
		return nil, err
	}

	return client, nil
}

func (s *ClientService) Get(ctx context.Context, id uuid.UUID) (*models.Client, error) {
	return s.clients.FindByID(ctx, id)
}

func (s *ClientService) Update(ctx context.Context, id uuid.UUID, in ClientChanges) (*models.Client, error) {
	changes := map[string]interface{}{}

	if in.FullName != nil {
		changes["full_name"] = *in.FullName
	}
	if in.Contact != nil {
		changes["contact"] = *in.Contact
	}
	if in.Address != nil {
		changes["address"] = *in.Address
	}
	if in.Active != nil {
		changes["active"] = *in.Active
	}

	return s.clients.Update(ctx, id, changes)
}

func (s *ClientService) Delete(ctx context.Context, id uuid.UUID) error {
	return s.clients.Delete(ctx, id)
}

func (s *ClientService) List(ctx context.Context, filter store.ClientFilter) ([]models.Client, error) {
	return s.clients.List(ctx, filter)
}
