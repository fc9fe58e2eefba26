package service

import (
	"fmt"
	"time"

	"github.com/podhaven/podhaven-backend/internal/common"
	"github.com/podhaven/podhaven-backend/internal/domain"
	"github.com/podhaven/podhaven-backend/internal/repository"
)

// Page size bounds for the history feed
const (
	historyDefaultTake = 20
	historyMaxTake     = 50
)

// HistoryService owns the per-user playback-history ledger: one record per
// (owner, content reference), ordered by recency for the "continue
// listening" feed.
//
// Concurrent upserts for the same reference are not serialized; the
// read-then-save sequence resolves last-write-wins, which is acceptable
// for playback-position tracking.
type HistoryService interface {
	List(ownerID string, skip, take int) ([]domain.HistoryItemResponse, error)
	ListMetadata(ownerID string) ([]domain.HistoryItemMetadata, error)
	AddOrUpdate(ownerID string, req *domain.AddHistoryItemRequest) error
	RemoveByKey(ownerID string, episodeID, mediaRefID string) error
	RemoveByEpisode(ownerID, episodeID string) error
	RemoveByMediaRef(ownerID, mediaRefID string) error
	RemoveAll(ownerID string) error
}

type historyService struct {
	repo repository.UserHistoryItemRepository
	now  func() time.Time
}

// NewHistoryService creates a new HistoryService
func NewHistoryService(repo repository.UserHistoryItemRepository) HistoryService {
	return &historyService{repo: repo, now: time.Now}
}

// List returns a page of the owner's history feed, most recently played
// first, with display metadata joined from the referenced content
func (s *historyService) List(ownerID string, skip, take int) ([]domain.HistoryItemResponse, error) {
	if skip < 0 {
		skip = 0
	}
	if take < 1 || take > historyMaxTake {
		take = historyDefaultTake
	}

	rows, err := s.repo.ListByOwner(ownerID, skip, take)
	if err != nil {
		return nil, err
	}

	responses := make([]domain.HistoryItemResponse, 0, len(rows))
	for i := range rows {
		responses = append(responses, toHistoryItemResponse(&rows[i]))
	}
	return responses, nil
}

// toHistoryItemResponse picks the projection by content-reference variant.
// Clip-backed items source episode/podcast fields through the clip's
// parent episode and omit the playback position; the position for a clip
// is carried by the clip's own metadata, not the feed view.
func toHistoryItemResponse(row *repository.HistoryItemRow) domain.HistoryItemResponse {
	deref := func(p *string) string {
		if p == nil {
			return ""
		}
		return *p
	}

	if row.ClipID != nil {
		return domain.HistoryItemResponse{
			ID:                 row.ID,
			MediaRefID:         row.ClipID,
			MediaRefTitle:      row.ClipTitle,
			EpisodeID:          deref(row.ClipEpisodeID),
			EpisodeTitle:       deref(row.ClipEpisodeTitle),
			EpisodeDescription: deref(row.ClipEpisodeDescription),
			PodcastID:          deref(row.ClipPodcastID),
			PodcastTitle:       deref(row.ClipPodcastTitle),
		}
	}

	position := row.LastPlaybackPosition
	return domain.HistoryItemResponse{
		ID:                   row.ID,
		LastPlaybackPosition: &position,
		EpisodeID:            deref(row.EpisodeID),
		EpisodeTitle:         deref(row.EpisodeTitle),
		EpisodeDescription:   deref(row.EpisodeDescription),
		PodcastID:            deref(row.PodcastID),
		PodcastTitle:         deref(row.PodcastTitle),
	}
}

// ListMetadata returns the owner's full history in recency order without
// display joins or pagination
func (s *historyService) ListMetadata(ownerID string) ([]domain.HistoryItemMetadata, error) {
	return s.repo.ListMetadataByOwner(ownerID)
}

// AddOrUpdate records a playback-progress event for one content reference.
//
// An existing record for the same reference is updated in place, so the
// owner never accumulates more than one record per episode or per clip.
// The record's reference variant never switches: the episode lookup
// excludes clip-backed records, even ones referencing the same episode.
//
// The recency timestamp is always stamped at creation; on update it only
// advances when forceUpdateOrderDate is set. This lets frequent position
// pings avoid reshuffling the feed while an explicit resume/open event
// promotes the item to the front.
func (s *historyService) AddOrUpdate(ownerID string, req *domain.AddHistoryItemRequest) error {
	if err := validateContentRef(req.EpisodeID, req.MediaRefID); err != nil {
		return err
	}
	if req.LastPlaybackPosition == nil {
		return fmt.Errorf("%w: a lastPlaybackPosition must be provided", common.ErrInvalidInput)
	}
	// 0 is a valid resume point; only negatives are rejected
	if *req.LastPlaybackPosition < 0 {
		return fmt.Errorf("%w: lastPlaybackPosition must not be negative", common.ErrInvalidInput)
	}

	item, err := s.resolve(ownerID, req.EpisodeID, req.MediaRefID)
	if err != nil {
		return err
	}

	if item == nil {
		item = &domain.UserHistoryItem{OrderChangedDate: s.now()}
	} else if req.ForceUpdateOrderDate {
		item.OrderChangedDate = s.now()
	}

	item.OwnerID = ownerID
	item.EpisodeID = req.EpisodeID
	item.MediaRefID = req.MediaRefID
	item.LastPlaybackPosition = *req.LastPlaybackPosition

	return s.repo.Save(item)
}

// RemoveByKey deletes the owner's record for the given content reference
func (s *historyService) RemoveByKey(ownerID string, episodeID, mediaRefID string) error {
	var episodeRef, mediaRefRef *string
	if episodeID != "" {
		episodeRef = &episodeID
	}
	if mediaRefID != "" {
		mediaRefRef = &mediaRefID
	}
	if err := validateContentRef(episodeRef, mediaRefRef); err != nil {
		return err
	}

	item, err := s.resolve(ownerID, episodeRef, mediaRefRef)
	if err != nil {
		return err
	}
	if item == nil {
		return common.ErrHistoryItemNotFound
	}
	return s.repo.DeleteByID(item.ID)
}

// RemoveByEpisode deletes the owner's episode-backed record
func (s *historyService) RemoveByEpisode(ownerID, episodeID string) error {
	item, err := s.repo.FindByOwnerAndEpisode(ownerID, episodeID)
	if err != nil {
		return err
	}
	if item == nil {
		return common.ErrHistoryItemNotFound
	}
	return s.repo.DeleteByID(item.ID)
}

// RemoveByMediaRef deletes the owner's clip-backed record
func (s *historyService) RemoveByMediaRef(ownerID, mediaRefID string) error {
	item, err := s.repo.FindByOwnerAndMediaRef(ownerID, mediaRefID)
	if err != nil {
		return err
	}
	if item == nil {
		return common.ErrHistoryItemNotFound
	}
	return s.repo.DeleteByID(item.ID)
}

// RemoveAll deletes every record the owner has; vacuously succeeds when
// there are none
func (s *historyService) RemoveAll(ownerID string) error {
	_, err := s.repo.DeleteAllByOwner(ownerID)
	return err
}

// resolve finds the owner's existing record for a content reference.
// Deletion and upsert share this lookup so both address rows by resolved
// identity, never by a client-supplied record id.
func (s *historyService) resolve(ownerID string, episodeID, mediaRefID *string) (*domain.UserHistoryItem, error) {
	if mediaRefID != nil {
		return s.repo.FindByOwnerAndMediaRef(ownerID, *mediaRefID)
	}
	return s.repo.FindByOwnerAndEpisode(ownerID, *episodeID)
}

func validateContentRef(episodeID, mediaRefID *string) error {
	if episodeID == nil && mediaRefID == nil {
		return fmt.Errorf("%w: an episodeId or mediaRefId must be provided", common.ErrInvalidInput)
	}
	if episodeID != nil && mediaRefID != nil {
		return fmt.Errorf("%w: either an episodeId or mediaRefId must be provided, but not both", common.ErrInvalidInput)
	}
	return nil
}
