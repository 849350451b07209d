package service

import (
	"context"
	"errors"
	"fmt"

	"sports-federation-backend/app/formengine"
	"sports-federation-backend/app/repository"
)

// ModelService mengekspos katalog model referensi untuk builder form.
type ModelService interface {
	ListModels(ctx context.Context) ([]formengine.ModelInfo, error)
	ListModelFields(ctx context.Context, key string) ([]string, error)
	ListModelRecords(ctx context.Context, key string) ([]formengine.Record, error)
}

type modelService struct {
	catalog repository.ModelCatalogRepository
}

func NewModelService(catalog repository.ModelCatalogRepository) ModelService {
	return &modelService{catalog: catalog}
}

func unknownModel(err error) error {
	if errors.Is(err, repository.ErrUnknownModel) {
		return fmt.Errorf("%w: %v", ErrNotFound, err)
	}
	return err
}

func (s *modelService) ListModels(ctx context.Context) ([]formengine.ModelInfo, error) {
	return s.catalog.ListModels(ctx)
}

func (s *modelService) ListModelFields(ctx context.Context, key string) ([]string, error) {
	fields, err := s.catalog.ListModelFields(ctx, key)
	if err != nil {
		return nil, unknownModel(err)
	}
	return fields, nil
}

func (s *modelService) ListModelRecords(ctx context.Context, key string) ([]formengine.Record, error) {
	records, err := s.catalog.ListModelRecords(ctx, key)
	if err != nil {
		return nil, unknownModel(err)
	}
	return records, nil
}
