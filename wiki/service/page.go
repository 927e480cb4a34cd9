package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/danielledeleo/createpage/wiki"
	"github.com/danielledeleo/createpage/wiki/repository"
)

// PageService defines the interface for page store operations.
type PageService interface {
	// PageExists reports whether title is stored. Any store failure is
	// returned as wiki.ErrStoreUnavailable, never as "does not exist".
	PageExists(ctx context.Context, title *wiki.Title) (bool, error)

	// CreatePage records title in the store.
	CreatePage(ctx context.Context, title *wiki.Title) error

	// DeletePage removes title from the store.
	DeletePage(ctx context.Context, title *wiki.Title) error

	// ListPages returns every stored page.
	ListPages(ctx context.Context) ([]*wiki.PageSummary, error)
}

// pageService is the default implementation of PageService.
type pageService struct {
	repo repository.PageRepository
}

// NewPageService creates a new PageService.
func NewPageService(repo repository.PageRepository) PageService {
	return &pageService{repo: repo}
}

func (s *pageService) PageExists(ctx context.Context, title *wiki.Title) (bool, error) {
	exists, err := s.repo.SelectPageExists(ctx, title.Namespace, title.DBKey())
	if err != nil {
		slog.Warn("page existence check failed", "category", "page", "action", "exists", "page", title.PrefixedText(), "error", err)
		return false, fmt.Errorf("%w: %w", wiki.ErrStoreUnavailable, err)
	}
	return exists, nil
}

func (s *pageService) CreatePage(ctx context.Context, title *wiki.Title) error {
	err := s.repo.InsertPage(ctx, title.Namespace, title.DBKey())
	if err != nil {
		if !errors.Is(err, wiki.ErrPageAlreadyExists) {
			return fmt.Errorf("%w: %w", wiki.ErrStoreUnavailable, err)
		}
		return err
	}
	slog.Info("page created", "category", "page", "action", "create", "page", title.PrefixedText())
	return nil
}

func (s *pageService) DeletePage(ctx context.Context, title *wiki.Title) error {
	err := s.repo.DeletePage(ctx, title.Namespace, title.DBKey())
	if err != nil {
		if !errors.Is(err, wiki.ErrGenericNotFound) {
			return fmt.Errorf("%w: %w", wiki.ErrStoreUnavailable, err)
		}
		return err
	}
	slog.Info("page deleted", "category", "page", "action", "delete", "page", title.PrefixedText())
	return nil
}

func (s *pageService) ListPages(ctx context.Context) ([]*wiki.PageSummary, error) {
	pages, err := s.repo.SelectAllPages(ctx)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", wiki.ErrStoreUnavailable, err)
	}
	return pages, nil
}
