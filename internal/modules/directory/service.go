package directory

import (
	"context"

	"barbershop/internal/domain"
	"barbershop/internal/repository"
)

// Service groups the plain CRUD over clients, staff and services. No
// referential-integrity enforcement on delete: the legacy ledger keeps
// appointments pointing at removed rows, and callers know it.
type Service struct {
	clients  *repository.ClientRepository
	staff    *repository.StaffRepository
	services *repository.ServiceRepository
}

func NewService(
	clients *repository.ClientRepository,
	staff *repository.StaffRepository,
	services *repository.ServiceRepository,
) *Service {
	return &Service{
		clients:  clients,
		staff:    staff,
		services: services,
	}
}

/* ---------- CLIENTS ---------- */

func (s *Service) CreateClient(ctx context.Context, req CreateClientRequest) (*domain.Client, error) {
	c := &domain.Client{Name: req.Name, Phone: req.Phone, Email: req.Email}
	if err := s.clients.Create(ctx, c); err != nil {
		return nil, err
	}
	return c, nil
}

func (s *Service) ListClients(ctx context.Context) ([]domain.Client, error) {
	return s.clients.GetAll(ctx)
}

func (s *Service) UpdateClient(ctx context.Context, id int64, req UpdateClientRequest) (*domain.Client, error) {
	c := &domain.Client{ID: id, Name: req.Name, Phone: req.Phone, Email: req.Email}
	if err := s.clients.Update(ctx, c); err != nil {
		return nil, err
	}
	return s.clients.GetByID(ctx, id)
}

func (s *Service) DeleteClient(ctx context.Context, id int64) error {
	return s.clients.Delete(ctx, id)
}

/* ---------- STAFF ---------- */

func (s *Service) CreateStaff(ctx context.Context, req CreateStaffRequest) (*domain.Staff, error) {
	m := &domain.Staff{Name: req.Name, Specialty: req.Specialty}
	if err := s.staff.Create(ctx, m); err != nil {
		return nil, err
	}
	return m, nil
}

func (s *Service) ListStaff(ctx context.Context) ([]domain.Staff, error) {
	return s.staff.GetAll(ctx)
}

func (s *Service) UpdateStaff(ctx context.Context, id int64, req UpdateStaffRequest) (*domain.Staff, error) {
	m := &domain.Staff{ID: id, Name: req.Name, Specialty: req.Specialty}
	if err := s.staff.Update(ctx, m); err != nil {
		return nil, err
	}
	return s.staff.GetByID(ctx, id)
}

func (s *Service) DeleteStaff(ctx context.Context, id int64) error {
	return s.staff.Delete(ctx, id)
}

/* ---------- SERVICES ---------- */

func (s *Service) CreateService(ctx context.Context, req CreateServiceRequest) (*domain.Service, error) {
	m := &domain.Service{Name: req.Name, Price: req.Price, DurationMinutes: req.DurationMinutes}
	if err := s.services.Create(ctx, m); err != nil {
		return nil, err
	}
	return m, nil
}

func (s *Service) ListServices(ctx context.Context) ([]domain.Service, error) {
	return s.services.GetAll(ctx)
}

func (s *Service) UpdateService(ctx context.Context, id int64, req UpdateServiceRequest) (*domain.Service, error) {
	m := &domain.Service{ID: id, Name: req.Name, Price: req.Price, DurationMinutes: req.DurationMinutes}
	if err := s.services.Update(ctx, m); err != nil {
		return nil, err
	}
	return s.services.GetByID(ctx, id)
}

func (s *Service) DeleteService(ctx context.Context, id int64) error {
	return s.services.Delete(ctx, id)
}
