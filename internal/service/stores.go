package service

import (
	"context"

	"github.com/jengzang/pace-analyzer/internal/analysis"
	"github.com/jengzang/pace-analyzer/internal/models"
)

// RunStore persists analyzed runs
type RunStore interface {
	Create(ctx context.Context, run *models.Run) error
	GetByID(ctx context.Context, id int64, userID string) (*models.Run, error)
	ListByUser(ctx context.Context, userID string, filter models.RunFilter) ([]models.Run, int64, error)
	Delete(ctx context.Context, id int64, userID string) error
}

// ProfileStore persists runner profiles
type ProfileStore interface {
	Get(ctx context.Context, userID string) (*models.Profile, error)
	Upsert(ctx context.Context, p *models.Profile) error
}

// ResultCache caches analysis results by content key. A miss is (nil, nil).
type ResultCache interface {
	Get(ctx context.Context, key string) (*analysis.Result, error)
	Set(ctx context.Context, key string, res *analysis.Result) error
}
