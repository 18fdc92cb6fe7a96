package services

import (
	"context"
	"slices"
	"sync"

	"github.com/dmitrijs2005/feedbackboard/internal/client/client"
	"github.com/dmitrijs2005/feedbackboard/internal/client/domain"
	"github.com/dmitrijs2005/feedbackboard/internal/logging"
)

// Uncategorized is shown for a category ID that is not known.
const Uncategorized = "Uncategorized"

type CategoryService interface {
	List(ctx context.Context) ([]domain.Category, error)
	// Name resolves id against the last fetched list.
	Name(id int64) string
}

type categoryService struct {
	client client.Client
	log    logging.Logger

	mu     sync.RWMutex
	cached []domain.Category
}

func NewCategoryService(c client.Client, log logging.Logger) CategoryService {
	return &categoryService{client: c, log: log}
}

func (s *categoryService) List(ctx context.Context) ([]domain.Category, error) {
	cats, err := s.client.ListCategories(ctx)
	if err != nil {
		logFailure(ctx, s.log, "categories.list", err)
		return nil, err
	}
	s.mu.Lock()
	s.cached = slices.Clone(cats)
	s.mu.Unlock()
	return cats, nil
}

func (s *categoryService) Name(id int64) string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, c := range s.cached {
		if c.ID == id {
			return c.Name
		}
	}
	return Uncategorized
}
