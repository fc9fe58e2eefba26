package service

import (
	"testing"

	"github.com/podhaven/podhaven-backend/internal/common"
	"github.com/podhaven/podhaven-backend/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

// MockMediaRefRepository is a mock implementation of MediaRefRepository
type MockMediaRefRepository struct {
	mock.Mock
}

func (m *MockMediaRefRepository) Create(mediaRef *domain.MediaRef) error {
	args := m.Called(mediaRef)
	return args.Error(0)
}

func (m *MockMediaRefRepository) FindByID(id string) (*domain.MediaRef, error) {
	args := m.Called(id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.MediaRef), args.Error(1)
}

func (m *MockMediaRefRepository) ListByEpisode(episodeID string, publicOnly bool, page, limit int) ([]domain.MediaRef, int64, error) {
	args := m.Called(episodeID, publicOnly, page, limit)
	if args.Get(0) == nil {
		return nil, 0, args.Error(2)
	}
	return args.Get(0).([]domain.MediaRef), args.Get(1).(int64), args.Error(2)
}

func (m *MockMediaRefRepository) ListPublicByEpisodeMediaURL(mediaURL string) ([]domain.MediaRef, error) {
	args := m.Called(mediaURL)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.MediaRef), args.Error(1)
}

func (m *MockMediaRefRepository) Update(mediaRef *domain.MediaRef) error {
	args := m.Called(mediaRef)
	return args.Error(0)
}

func (m *MockMediaRefRepository) Delete(id string) error {
	args := m.Called(id)
	return args.Error(0)
}

// MockEpisodeRepository is a mock implementation of EpisodeRepository
type MockEpisodeRepository struct {
	mock.Mock
}

func (m *MockEpisodeRepository) Create(episode *domain.Episode) error {
	args := m.Called(episode)
	return args.Error(0)
}

func (m *MockEpisodeRepository) FindByID(id string) (*domain.Episode, error) {
	args := m.Called(id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Episode), args.Error(1)
}

func (m *MockEpisodeRepository) FindByIDs(ids []string) ([]domain.Episode, error) {
	args := m.Called(ids)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Episode), args.Error(1)
}

func (m *MockEpisodeRepository) FindByMediaURL(mediaURL string) (*domain.Episode, error) {
	args := m.Called(mediaURL)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Episode), args.Error(1)
}

func (m *MockEpisodeRepository) List(query domain.EpisodeListQuery) ([]domain.Episode, int64, error) {
	args := m.Called(query)
	if args.Get(0) == nil {
		return nil, 0, args.Error(2)
	}
	return args.Get(0).([]domain.Episode), args.Get(1).(int64), args.Error(2)
}

func (m *MockEpisodeRepository) Update(episode *domain.Episode) error {
	args := m.Called(episode)
	return args.Error(0)
}

func (m *MockEpisodeRepository) Delete(id string) error {
	args := m.Called(id)
	return args.Error(0)
}

func TestMediaRefCreate_ValidatesRange(t *testing.T) {
	mediaRefRepo := new(MockMediaRefRepository)
	episodeRepo := new(MockEpisodeRepository)
	userRepo := new(MockUserRepository)
	svc := NewMediaRefService(mediaRefRepo, episodeRepo, userRepo)

	end := 10
	_, err := svc.Create("owner-1", &domain.CreateMediaRefRequest{
		EpisodeID: "ep-1",
		StartTime: 30,
		EndTime:   &end,
	})

	assert.ErrorIs(t, err, common.ErrInvalidInput)
	mediaRefRepo.AssertNotCalled(t, "Create", mock.Anything)
}

func TestMediaRefCreate_SetsOwner(t *testing.T) {
	mediaRefRepo := new(MockMediaRefRepository)
	episodeRepo := new(MockEpisodeRepository)
	userRepo := new(MockUserRepository)
	svc := NewMediaRefService(mediaRefRepo, episodeRepo, userRepo)

	episodeRepo.On("FindByID", "ep-1").Return(&domain.Episode{ID: "ep-1"}, nil)
	mediaRefRepo.On("Create", mock.MatchedBy(func(m *domain.MediaRef) bool {
		return m.OwnerID == "owner-1" && m.EpisodeID == "ep-1" && m.StartTime == 30
	})).Return(nil)

	mediaRef, err := svc.Create("owner-1", &domain.CreateMediaRefRequest{
		EpisodeID: "ep-1",
		Title:     "Best part",
		StartTime: 30,
	})

	require.NoError(t, err)
	assert.Equal(t, "owner-1", mediaRef.OwnerID)
	mediaRefRepo.AssertExpectations(t)
}

func TestMediaRefGet_PrivateHiddenFromNonOwner(t *testing.T) {
	mediaRefRepo := new(MockMediaRefRepository)
	episodeRepo := new(MockEpisodeRepository)
	userRepo := new(MockUserRepository)
	svc := NewMediaRefService(mediaRefRepo, episodeRepo, userRepo)

	private := &domain.MediaRef{ID: "clip-1", OwnerID: "owner-1", IsPublic: false}
	mediaRefRepo.On("FindByID", "clip-1").Return(private, nil)

	_, err := svc.GetByID("clip-1", "someone-else")
	assert.ErrorIs(t, err, common.ErrMediaRefNotFound)

	got, err := svc.GetByID("clip-1", "owner-1")
	assert.NoError(t, err)
	assert.Equal(t, "clip-1", got.ID)
}

func TestMediaRefUpdate_NonOwnerForbidden(t *testing.T) {
	mediaRefRepo := new(MockMediaRefRepository)
	episodeRepo := new(MockEpisodeRepository)
	userRepo := new(MockUserRepository)
	svc := NewMediaRefService(mediaRefRepo, episodeRepo, userRepo)

	mediaRefRepo.On("FindByID", "clip-1").Return(&domain.MediaRef{ID: "clip-1", OwnerID: "owner-1"}, nil)
	userRepo.On("FindByID", "intruder").Return(&domain.User{ID: "intruder", Level: 1}, nil)

	title := "hijacked"
	_, err := svc.Update("clip-1", "intruder", &domain.UpdateMediaRefRequest{Title: &title})

	assert.ErrorIs(t, err, common.ErrForbidden)
	mediaRefRepo.AssertNotCalled(t, "Update", mock.Anything)
}

func TestMediaRefDelete_AdminAllowed(t *testing.T) {
	mediaRefRepo := new(MockMediaRefRepository)
	episodeRepo := new(MockEpisodeRepository)
	userRepo := new(MockUserRepository)
	svc := NewMediaRefService(mediaRefRepo, episodeRepo, userRepo)

	mediaRefRepo.On("FindByID", "clip-1").Return(&domain.MediaRef{ID: "clip-1", OwnerID: "owner-1"}, nil)
	userRepo.On("FindByID", "admin-1").Return(&domain.User{ID: "admin-1", Level: 10}, nil)
	mediaRefRepo.On("Delete", "clip-1").Return(nil)

	assert.NoError(t, svc.Delete("clip-1", "admin-1"))
	mediaRefRepo.AssertExpectations(t)
}

func TestChapters_ProjectsPublicClips(t *testing.T) {
	mediaRefRepo := new(MockMediaRefRepository)
	episodeRepo := new(MockEpisodeRepository)
	userRepo := new(MockUserRepository)
	svc := NewMediaRefService(mediaRefRepo, episodeRepo, userRepo)

	mediaURL := "https://media.example.com/1.mp3"
	episodeRepo.On("FindByMediaURL", mediaURL).Return(&domain.Episode{ID: "ep-1", MediaURL: mediaURL}, nil)

	end := 90
	clips := []domain.MediaRef{
		{ID: "clip-1", Title: "Intro", StartTime: 0, EndTime: &end, IsPublic: true},
		{ID: "clip-2", Title: "Interview", StartTime: 90, IsPublic: true},
	}
	mediaRefRepo.On("ListPublicByEpisodeMediaURL", mediaURL).Return(clips, nil)

	chapters, err := svc.Chapters(mediaURL)

	require.NoError(t, err)
	require.Len(t, chapters.Chapters, 2)
	assert.Equal(t, "Intro", chapters.Chapters[0].Title)
	assert.Equal(t, 0, chapters.Chapters[0].StartTime)
	assert.Equal(t, 90, *chapters.Chapters[0].EndTime)
	assert.Nil(t, chapters.Chapters[1].EndTime)
	assert.NotEmpty(t, chapters.Version)
}

func TestChapters_UnknownMediaURL(t *testing.T) {
	mediaRefRepo := new(MockMediaRefRepository)
	episodeRepo := new(MockEpisodeRepository)
	userRepo := new(MockUserRepository)
	svc := NewMediaRefService(mediaRefRepo, episodeRepo, userRepo)

	episodeRepo.On("FindByMediaURL", "https://nowhere.example.com/x.mp3").Return(nil, common.ErrEpisodeNotFound)

	_, err := svc.Chapters("https://nowhere.example.com/x.mp3")

	assert.ErrorIs(t, err, common.ErrEpisodeNotFound)
}
