package services

import (
	"context"

	"virtualconf/internal/domain"
)

type contentService struct {
	content domain.ContentStore
	catalog Snapshots
}

// NewContentService serves products and speakers from the store and the
// site setting from the catalog snapshot.
func NewContentService(content domain.ContentStore, snapshots Snapshots) domain.ContentService {
	return &contentService{content: content, catalog: snapshots}
}

func (c *contentService) Products(ctx context.Context) ([]*domain.Product, error) {
	return c.content.ListProducts(ctx)
}

func (c *contentService) Speakers(ctx context.Context) ([]*domain.Speaker, error) {
	return c.content.ListSpeakers(ctx)
}

func (c *contentService) SiteSetting(ctx context.Context) (*domain.SiteSetting, error) {
	snap, err := c.catalog.Snapshot(ctx)
	if err != nil {
		return nil, err
	}
	if snap.Site == nil {
		return &domain.SiteSetting{}, nil
	}
	return snap.Site, nil
}
