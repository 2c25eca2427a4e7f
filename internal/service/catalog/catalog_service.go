package catalog

import (
	"context"
	"errors"

	"github.com/Domenick1991/resortbooking/internal/domain"
)

var ErrAddOnNotFound = errors.New("add-on not found")

type CatalogUseCase interface {
	Villas(ctx context.Context) ([]domain.Villa, error)
	AddOns(ctx context.Context) ([]domain.AddOn, error)
	AddOnByID(ctx context.Context, id string) (*domain.AddOn, error)
	Categories(ctx context.Context) ([]CategoryGroup, error)
	Resort(ctx context.Context) (domain.ResortConfig, error)
	Snapshot(ctx context.Context) (Snapshot, error)
}

type CategoryGroup struct {
	Category domain.AddOnCategory `json:"category"`
	Label    string               `json:"label"`
	AddOns   []domain.AddOn       `json:"addOns"`
}

// Snapshot is the static offering handed to renderers.
type Snapshot struct {
	Villas           []domain.Villa      `json:"villas"`
	Categories       []CategoryGroup     `json:"categories"`
	Resort           domain.ResortConfig `json:"resort"`
	Steps            []domain.StepConfig `json:"steps"`
	SpecialOccasions []string            `json:"specialOccasions"`
	ArrivalTimes     []string            `json:"arrivalTimes"`
}

type CatalogService struct {
	villas []domain.Villa
	addOns []domain.AddOn
	resort domain.ResortConfig
}

func NewCatalogService(villas []domain.Villa, addOns []domain.AddOn, resort domain.ResortConfig) *CatalogService {
	return &CatalogService{villas: villas, addOns: addOns, resort: resort}
}

// NewDefaultCatalogService serves the resort's single villa and add-on list.
func NewDefaultCatalogService(resort domain.ResortConfig) *CatalogService {
	return NewCatalogService([]domain.Villa{domain.VillaData}, domain.AddOnsData, resort)
}

func (s *CatalogService) Villas(ctx context.Context) ([]domain.Villa, error) {
	return s.villas, nil
}

func (s *CatalogService) AddOns(ctx context.Context) ([]domain.AddOn, error) {
	return s.addOns, nil
}

func (s *CatalogService) AddOnByID(ctx context.Context, id string) (*domain.AddOn, error) {
	addon, ok := domain.FindAddOn(s.addOns, id)
	if !ok {
		return nil, ErrAddOnNotFound
	}
	return &addon, nil
}

func (s *CatalogService) Categories(ctx context.Context) ([]CategoryGroup, error) {
	groups := make([]CategoryGroup, 0, len(domain.AddOnCategories))
	for _, c := range domain.AddOnCategories {
		g := CategoryGroup{Category: c, Label: c.Label(), AddOns: []domain.AddOn{}}
		for _, a := range s.addOns {
			if a.Category == c {
				g.AddOns = append(g.AddOns, a)
			}
		}
		groups = append(groups, g)
	}
	return groups, nil
}

func (s *CatalogService) Resort(ctx context.Context) (domain.ResortConfig, error) {
	return s.resort, nil
}

func (s *CatalogService) Snapshot(ctx context.Context) (Snapshot, error) {
	categories, err := s.Categories(ctx)
	if err != nil {
		return Snapshot{}, err
	}
	return Snapshot{
		Villas:           s.villas,
		Categories:       categories,
		Resort:           s.resort,
		Steps:            domain.BookingSteps,
		SpecialOccasions: domain.SpecialOccasions,
		ArrivalTimes:     domain.ArrivalTimes,
	}, nil
}

var _ CatalogUseCase = (*CatalogService)(nil)
