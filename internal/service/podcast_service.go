package service

import (
	"context"
	"encoding/json"

	"github.com/podhaven/podhaven-backend/internal/domain"
	"github.com/podhaven/podhaven-backend/internal/repository"
	"github.com/podhaven/podhaven-backend/pkg/cache"
	pkglogger "github.com/podhaven/podhaven-backend/pkg/logger"
)

// PodcastService handles the podcast catalog
type PodcastService interface {
	Create(req *domain.CreatePodcastRequest) (*domain.Podcast, error)
	GetByID(ctx context.Context, id string) (*domain.Podcast, error)
	List(category, searchTitle string, page, limit int) ([]domain.Podcast, int64, error)
	Update(ctx context.Context, id string, req *domain.UpdatePodcastRequest) (*domain.Podcast, error)
	Delete(ctx context.Context, id string) error
}

type podcastService struct {
	podcastRepo repository.PodcastRepository
	cache       cache.Service
}

// NewPodcastService creates a new PodcastService
func NewPodcastService(podcastRepo repository.PodcastRepository, cacheSvc cache.Service) PodcastService {
	return &podcastService{podcastRepo: podcastRepo, cache: cacheSvc}
}

func (s *podcastService) Create(req *domain.CreatePodcastRequest) (*domain.Podcast, error) {
	podcast := &domain.Podcast{
		Title:       req.Title,
		Description: req.Description,
		FeedURL:     req.FeedURL,
		AuthorName:  req.AuthorName,
		ImageURL:    req.ImageURL,
		Category:    req.Category,
		IsExplicit:  req.IsExplicit,
	}
	if err := s.podcastRepo.Create(podcast); err != nil {
		return nil, err
	}
	return podcast, nil
}

// GetByID serves from the Redis cache when possible. Cache failures are
// logged and the read falls through to the database.
func (s *podcastService) GetByID(ctx context.Context, id string) (*domain.Podcast, error) {
	if s.cache.IsAvailable() {
		if data, err := s.cache.GetPodcast(ctx, id); err == nil {
			var podcast domain.Podcast
			if err := json.Unmarshal(data, &podcast); err == nil {
				return &podcast, nil
			}
		}
	}

	podcast, err := s.podcastRepo.FindByID(id)
	if err != nil {
		return nil, err
	}

	if err := s.cache.SetPodcast(ctx, id, podcast); err != nil {
		pkglogger.GetLogger().Warn().Err(err).Str("podcast_id", id).Msg("podcast cache write failed")
	}
	return podcast, nil
}

func (s *podcastService) List(category, searchTitle string, page, limit int) ([]domain.Podcast, int64, error) {
	if page < 1 {
		page = 1
	}
	if limit < 1 || limit > 100 {
		limit = 20
	}
	return s.podcastRepo.List(category, searchTitle, page, limit)
}

func (s *podcastService) Update(ctx context.Context, id string, req *domain.UpdatePodcastRequest) (*domain.Podcast, error) {
	podcast, err := s.podcastRepo.FindByID(id)
	if err != nil {
		return nil, err
	}

	if req.Title != nil {
		podcast.Title = *req.Title
	}
	if req.Description != nil {
		podcast.Description = *req.Description
	}
	if req.AuthorName != nil {
		podcast.AuthorName = *req.AuthorName
	}
	if req.ImageURL != nil {
		podcast.ImageURL = *req.ImageURL
	}
	if req.Category != nil {
		podcast.Category = *req.Category
	}
	if req.IsExplicit != nil {
		podcast.IsExplicit = *req.IsExplicit
	}

	if err := s.podcastRepo.Update(podcast); err != nil {
		return nil, err
	}

	s.invalidate(ctx, id)
	return podcast, nil
}

func (s *podcastService) Delete(ctx context.Context, id string) error {
	if _, err := s.podcastRepo.FindByID(id); err != nil {
		return err
	}
	if err := s.podcastRepo.Delete(id); err != nil {
		return err
	}
	s.invalidate(ctx, id)
	return nil
}

func (s *podcastService) invalidate(ctx context.Context, id string) {
	if err := s.cache.InvalidatePodcast(ctx, id); err != nil {
		pkglogger.GetLogger().Warn().Err(err).Str("podcast_id", id).Msg("podcast cache invalidation failed")
	}
	if err := s.cache.InvalidateEpisodes(ctx, id); err != nil {
		pkglogger.GetLogger().Warn().Err(err).Str("podcast_id", id).Msg("episode cache invalidation failed")
	}
}
