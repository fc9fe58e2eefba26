package service

import (
	"context"
	"encoding/json"

	"github.com/podhaven/podhaven-backend/internal/domain"
	"github.com/podhaven/podhaven-backend/internal/repository"
	"github.com/podhaven/podhaven-backend/pkg/cache"
	"github.com/podhaven/podhaven-backend/pkg/elasticsearch"
	pkglogger "github.com/podhaven/podhaven-backend/pkg/logger"
)

// EpisodeService handles episodes and title search
type EpisodeService interface {
	Create(ctx context.Context, req *domain.CreateEpisodeRequest) (*domain.Episode, error)
	GetByID(id string) (*domain.Episode, error)
	List(ctx context.Context, query domain.EpisodeListQuery) ([]domain.Episode, int64, error)
	Update(ctx context.Context, id string, req *domain.UpdateEpisodeRequest) (*domain.Episode, error)
	Delete(ctx context.Context, id string) error
}

type episodeService struct {
	episodeRepo repository.EpisodeRepository
	podcastRepo repository.PodcastRepository
	cache       cache.Service
	es          *elasticsearch.Client // nil when search indexing is disabled
}

// NewEpisodeService creates a new EpisodeService
func NewEpisodeService(
	episodeRepo repository.EpisodeRepository,
	podcastRepo repository.PodcastRepository,
	cacheSvc cache.Service,
	es *elasticsearch.Client,
) EpisodeService {
	return &episodeService{
		episodeRepo: episodeRepo,
		podcastRepo: podcastRepo,
		cache:       cacheSvc,
		es:          es,
	}
}

func (s *episodeService) Create(ctx context.Context, req *domain.CreateEpisodeRequest) (*domain.Episode, error) {
	if _, err := s.podcastRepo.FindByID(req.PodcastID); err != nil {
		return nil, err
	}

	episode := &domain.Episode{
		PodcastID:   req.PodcastID,
		Title:       req.Title,
		Description: req.Description,
		MediaURL:    req.MediaURL,
		Duration:    req.Duration,
		PubDate:     req.PubDate,
		IsExplicit:  req.IsExplicit,
	}
	if err := s.episodeRepo.Create(episode); err != nil {
		return nil, err
	}

	s.indexEpisode(ctx, episode)
	s.invalidateEpisodes(ctx, episode.PodcastID)
	return episode, nil
}

func (s *episodeService) GetByID(id string) (*domain.Episode, error) {
	return s.episodeRepo.FindByID(id)
}

// List returns episodes for the query. Title searches go through
// Elasticsearch when it is up; podcast-scoped lists without a search term
// are served from the Redis cache.
func (s *episodeService) List(ctx context.Context, query domain.EpisodeListQuery) ([]domain.Episode, int64, error) {
	if query.Page < 1 {
		query.Page = 1
	}
	if query.Limit < 1 || query.Limit > 100 {
		query.Limit = 20
	}

	if query.SearchTitle != "" && s.es != nil {
		episodes, total, err := s.searchByTitle(ctx, query)
		if err == nil {
			return episodes, total, nil
		}
		// fall back to the database LIKE filter
		pkglogger.GetLogger().Warn().Err(err).Msg("elasticsearch search failed, falling back to database")
	}

	cacheable := query.PodcastID != "" && query.SearchTitle == ""
	if cacheable && s.cache.IsAvailable() {
		type cachedPage struct {
			Episodes []domain.Episode `json:"episodes"`
			Total    int64            `json:"total"`
		}
		if data, err := s.cache.GetEpisodes(ctx, query.PodcastID, query.Page, query.Limit); err == nil {
			var page cachedPage
			if err := json.Unmarshal(data, &page); err == nil {
				return page.Episodes, page.Total, nil
			}
		}

		episodes, total, err := s.episodeRepo.List(query)
		if err != nil {
			return nil, 0, err
		}
		if err := s.cache.SetEpisodes(ctx, query.PodcastID, query.Page, query.Limit, cachedPage{Episodes: episodes, Total: total}); err != nil {
			pkglogger.GetLogger().Warn().Err(err).Str("podcast_id", query.PodcastID).Msg("episode cache write failed")
		}
		return episodes, total, nil
	}

	return s.episodeRepo.List(query)
}

// searchByTitle resolves ids from Elasticsearch and hydrates them from the
// database. Relevance order from the search is preserved.
func (s *episodeService) searchByTitle(ctx context.Context, query domain.EpisodeListQuery) ([]domain.Episode, int64, error) {
	from := (query.Page - 1) * query.Limit
	resp, err := s.es.SearchTitle(ctx, elasticsearch.EpisodeIndex, query.SearchTitle, from, query.Limit)
	if err != nil {
		return nil, 0, err
	}

	ids := make([]string, 0, len(resp.Results))
	for _, hit := range resp.Results {
		if query.PodcastID != "" {
			podcastID, _ := hit.Source["podcast_id"].(string)
			if podcastID != query.PodcastID {
				continue
			}
		}
		ids = append(ids, hit.ID)
	}

	episodes, err := s.episodeRepo.FindByIDs(ids)
	if err != nil {
		return nil, 0, err
	}

	byID := make(map[string]domain.Episode, len(episodes))
	for _, e := range episodes {
		byID[e.ID] = e
	}
	ordered := make([]domain.Episode, 0, len(ids))
	for _, id := range ids {
		if e, ok := byID[id]; ok {
			ordered = append(ordered, e)
		}
	}
	return ordered, resp.Total, nil
}

func (s *episodeService) Update(ctx context.Context, id string, req *domain.UpdateEpisodeRequest) (*domain.Episode, error) {
	episode, err := s.episodeRepo.FindByID(id)
	if err != nil {
		return nil, err
	}

	if req.Title != nil {
		episode.Title = *req.Title
	}
	if req.Description != nil {
		episode.Description = *req.Description
	}
	if req.MediaURL != nil {
		episode.MediaURL = *req.MediaURL
	}
	if req.Duration != nil {
		episode.Duration = *req.Duration
	}
	if req.PubDate != nil {
		episode.PubDate = req.PubDate
	}
	if req.IsExplicit != nil {
		episode.IsExplicit = *req.IsExplicit
	}

	// Save would also write the preloaded Podcast association
	episode.Podcast = nil
	if err := s.episodeRepo.Update(episode); err != nil {
		return nil, err
	}

	s.indexEpisode(ctx, episode)
	s.invalidateEpisodes(ctx, episode.PodcastID)
	return episode, nil
}

func (s *episodeService) Delete(ctx context.Context, id string) error {
	episode, err := s.episodeRepo.FindByID(id)
	if err != nil {
		return err
	}
	if err := s.episodeRepo.Delete(id); err != nil {
		return err
	}

	if s.es != nil {
		if err := s.es.DeleteDocument(ctx, elasticsearch.EpisodeIndex, id); err != nil {
			pkglogger.GetLogger().Warn().Err(err).Str("episode_id", id).Msg("episode deindex failed")
		}
	}
	s.invalidateEpisodes(ctx, episode.PodcastID)
	return nil
}

// indexEpisode is best-effort; a search index miss never fails the write
func (s *episodeService) indexEpisode(ctx context.Context, episode *domain.Episode) {
	if s.es == nil {
		return
	}
	doc := domain.EpisodeDocument{Title: episode.Title, PodcastID: episode.PodcastID}
	if err := s.es.IndexDocument(ctx, elasticsearch.EpisodeIndex, episode.ID, doc); err != nil {
		pkglogger.GetLogger().Warn().Err(err).Str("episode_id", episode.ID).Msg("episode index failed")
	}
}

func (s *episodeService) invalidateEpisodes(ctx context.Context, podcastID string) {
	if err := s.cache.InvalidateEpisodes(ctx, podcastID); err != nil {
		pkglogger.GetLogger().Warn().Err(err).Str("podcast_id", podcastID).Msg("episode cache invalidation failed")
	}
}
