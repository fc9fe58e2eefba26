package service

import (
	"fmt"

	"github.com/podhaven/podhaven-backend/internal/common"
	"github.com/podhaven/podhaven-backend/internal/domain"
	"github.com/podhaven/podhaven-backend/internal/repository"
)

// chaptersVersion is the chapters-file format version served to players
const chaptersVersion = "1.2.0"

// MediaRefService handles clips (time ranges within an episode)
type MediaRefService interface {
	Create(ownerID string, req *domain.CreateMediaRefRequest) (*domain.MediaRef, error)
	GetByID(id, requesterID string) (*domain.MediaRef, error)
	ListByEpisode(episodeID, requesterID string, page, limit int) ([]domain.MediaRef, int64, error)
	Chapters(mediaURL string) (*domain.ChaptersFile, error)
	Update(id, requesterID string, req *domain.UpdateMediaRefRequest) (*domain.MediaRef, error)
	Delete(id, requesterID string) error
}

type mediaRefService struct {
	mediaRefRepo repository.MediaRefRepository
	episodeRepo  repository.EpisodeRepository
	userRepo     repository.UserRepository
}

// NewMediaRefService creates a new MediaRefService
func NewMediaRefService(
	mediaRefRepo repository.MediaRefRepository,
	episodeRepo repository.EpisodeRepository,
	userRepo repository.UserRepository,
) MediaRefService {
	return &mediaRefService{
		mediaRefRepo: mediaRefRepo,
		episodeRepo:  episodeRepo,
		userRepo:     userRepo,
	}
}

func (s *mediaRefService) Create(ownerID string, req *domain.CreateMediaRefRequest) (*domain.MediaRef, error) {
	if err := validateClipRange(req.StartTime, req.EndTime); err != nil {
		return nil, err
	}
	if _, err := s.episodeRepo.FindByID(req.EpisodeID); err != nil {
		return nil, err
	}

	mediaRef := &domain.MediaRef{
		EpisodeID: req.EpisodeID,
		OwnerID:   ownerID,
		Title:     req.Title,
		StartTime: req.StartTime,
		EndTime:   req.EndTime,
		IsPublic:  req.IsPublic,
	}
	if err := s.mediaRefRepo.Create(mediaRef); err != nil {
		return nil, err
	}
	return mediaRef, nil
}

// GetByID returns a clip. Private clips are only visible to their owner;
// a non-owner gets not-found rather than forbidden so private clip ids
// are not confirmed to exist.
func (s *mediaRefService) GetByID(id, requesterID string) (*domain.MediaRef, error) {
	mediaRef, err := s.mediaRefRepo.FindByID(id)
	if err != nil {
		return nil, err
	}
	if !mediaRef.IsPublic && mediaRef.OwnerID != requesterID {
		return nil, common.ErrMediaRefNotFound
	}
	return mediaRef, nil
}

// ListByEpisode returns an episode's clips; requesters who are not admins
// see only public ones
func (s *mediaRefService) ListByEpisode(episodeID, requesterID string, page, limit int) ([]domain.MediaRef, int64, error) {
	if page < 1 {
		page = 1
	}
	if limit < 1 || limit > 100 {
		limit = 20
	}

	publicOnly := true
	if requesterID != "" {
		if user, err := s.userRepo.FindByID(requesterID); err == nil && user.IsAdmin() {
			publicOnly = false
		}
	}
	return s.mediaRefRepo.ListByEpisode(episodeID, publicOnly, page, limit)
}

// Chapters projects an episode's public clips into a chapters file keyed
// by the episode's media URL
func (s *mediaRefService) Chapters(mediaURL string) (*domain.ChaptersFile, error) {
	if _, err := s.episodeRepo.FindByMediaURL(mediaURL); err != nil {
		return nil, err
	}

	mediaRefs, err := s.mediaRefRepo.ListPublicByEpisodeMediaURL(mediaURL)
	if err != nil {
		return nil, err
	}

	chapters := make([]domain.ChapterEntry, 0, len(mediaRefs))
	for _, m := range mediaRefs {
		chapters = append(chapters, domain.ChapterEntry{
			StartTime: m.StartTime,
			EndTime:   m.EndTime,
			Title:     m.Title,
		})
	}
	return &domain.ChaptersFile{Version: chaptersVersion, Chapters: chapters}, nil
}

func (s *mediaRefService) Update(id, requesterID string, req *domain.UpdateMediaRefRequest) (*domain.MediaRef, error) {
	mediaRef, err := s.authorize(id, requesterID)
	if err != nil {
		return nil, err
	}

	if req.Title != nil {
		mediaRef.Title = *req.Title
	}
	if req.StartTime != nil {
		mediaRef.StartTime = *req.StartTime
	}
	if req.EndTime != nil {
		mediaRef.EndTime = req.EndTime
	}
	if req.IsPublic != nil {
		mediaRef.IsPublic = *req.IsPublic
	}

	if err := validateClipRange(mediaRef.StartTime, mediaRef.EndTime); err != nil {
		return nil, err
	}

	mediaRef.Episode = nil
	if err := s.mediaRefRepo.Update(mediaRef); err != nil {
		return nil, err
	}
	return mediaRef, nil
}

func (s *mediaRefService) Delete(id, requesterID string) error {
	if _, err := s.authorize(id, requesterID); err != nil {
		return err
	}
	return s.mediaRefRepo.Delete(id)
}

// authorize loads the clip and checks the requester owns it or is admin
func (s *mediaRefService) authorize(id, requesterID string) (*domain.MediaRef, error) {
	mediaRef, err := s.mediaRefRepo.FindByID(id)
	if err != nil {
		return nil, err
	}
	if mediaRef.OwnerID == requesterID {
		return mediaRef, nil
	}
	if user, err := s.userRepo.FindByID(requesterID); err == nil && user.IsAdmin() {
		return mediaRef, nil
	}
	return nil, common.ErrForbidden
}

func validateClipRange(startTime int, endTime *int) error {
	if startTime < 0 {
		return fmt.Errorf("%w: startTime must not be negative", common.ErrInvalidInput)
	}
	if endTime != nil && *endTime <= startTime {
		return fmt.Errorf("%w: endTime must be greater than startTime", common.ErrInvalidInput)
	}
	return nil
}
