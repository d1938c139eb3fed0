package poi

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"testing"

	jsonpatch "github.com/evanphx/json-patch/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/FACorreiaa/go-cityinfo-api/app/observability/metrics"
	"github.com/FACorreiaa/go-cityinfo-api/internal/models"
	"github.com/FACorreiaa/go-cityinfo-api/internal/repository"
	"github.com/FACorreiaa/go-cityinfo-api/internal/types"
)

// MockRepository is a mock implementation of repository.Repository
type MockRepository struct {
	mock.Mock
}

func (m *MockRepository) CityExists(ctx context.Context, cityID int) (bool, error) {
	args := m.Called(ctx, cityID)
	return args.Bool(0), args.Error(1)
}

func (m *MockRepository) GetCities(ctx context.Context, filter types.CityFilter) ([]models.City, error) {
	args := m.Called(ctx, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.City), args.Error(1)
}

func (m *MockRepository) GetCity(ctx context.Context, cityID int, includePointsOfInterest bool) (*models.City, error) {
	args := m.Called(ctx, cityID, includePointsOfInterest)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.City), args.Error(1)
}

func (m *MockRepository) GetPointsOfInterestForCity(ctx context.Context, cityID int) ([]models.PointOfInterest, error) {
	args := m.Called(ctx, cityID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.PointOfInterest), args.Error(1)
}

func (m *MockRepository) GetPointOfInterest(ctx context.Context, cityID, poiID int) (*models.PointOfInterest, error) {
	args := m.Called(ctx, cityID, poiID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.PointOfInterest), args.Error(1)
}

func (m *MockRepository) AddPointOfInterest(ctx context.Context, cityID int, cmd repository.AddPointOfInterestCommand) (*models.PointOfInterest, error) {
	args := m.Called(ctx, cityID, cmd)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.PointOfInterest), args.Error(1)
}

func (m *MockRepository) UpdatePointOfInterest(ctx context.Context, cmd repository.UpdatePointOfInterestCommand) error {
	args := m.Called(ctx, cmd)
	return args.Error(0)
}

func (m *MockRepository) DeletePointOfInterest(ctx context.Context, cmd repository.DeletePointOfInterestCommand) error {
	args := m.Called(ctx, cmd)
	return args.Error(0)
}

func (m *MockRepository) Save(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

// MockMailService is a mock implementation of notification.MailService
type MockMailService struct {
	mock.Mock
}

func (m *MockMailService) Send(ctx context.Context, subject, message string) error {
	args := m.Called(ctx, subject, message)
	return args.Error(0)
}

func setupServiceTest(t *testing.T) (*ServiceImpl, *MockRepository, *MockMailService) {
	t.Helper()
	mockRepo := new(MockRepository)
	mockMailer := new(MockMailService)
	m, err := metrics.New()
	require.NoError(t, err)
	logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelDebug}))
	return NewServiceImpl(mockRepo, mockMailer, m, logger), mockRepo, mockMailer
}

func mustPatch(t *testing.T, doc string) jsonpatch.Patch {
	t.Helper()
	patch, err := DecodePatch([]byte(doc))
	require.NoError(t, err)
	return patch
}

func centralPark() *models.PointOfInterest {
	return &models.PointOfInterest{
		Base:        models.Base{ID: 1},
		CityID:      1,
		Name:        "Central Park",
		Description: "The most visited urban park in the United States.",
	}
}

func TestServiceImpl_CityNotFoundBeforeAnyLookup(t *testing.T) {
	ctx := context.Background()
	calls := map[string]func(s *ServiceImpl) error{
		"list": func(s *ServiceImpl) error {
			_, err := s.GetPointsOfInterest(ctx, 42)
			return err
		},
		"get": func(s *ServiceImpl) error {
			_, err := s.GetPointOfInterest(ctx, 42, 1)
			return err
		},
		"create": func(s *ServiceImpl) error {
			_, err := s.CreatePointOfInterest(ctx, 42, types.PointOfInterestForCreationDto{Name: "n", Description: "d"})
			return err
		},
		"update": func(s *ServiceImpl) error {
			return s.UpdatePointOfInterest(ctx, 42, 1, types.PointOfInterestForUpdateDto{Name: "n", Description: "d"})
		},
		"patch": func(s *ServiceImpl) error {
			return s.PartiallyUpdatePointOfInterest(ctx, 42, 1, mustPatch(t, `[]`))
		},
		"delete": func(s *ServiceImpl) error {
			return s.DeletePointOfInterest(ctx, 42, 1)
		},
	}

	for name, call := range calls {
		t.Run(name, func(t *testing.T) {
			service, mockRepo, mockMailer := setupServiceTest(t)
			mockRepo.On("CityExists", mock.Anything, 42).Return(false, nil).Once()

			err := call(service)
			assert.ErrorIs(t, err, types.ErrCityNotFound)

			mockRepo.AssertExpectations(t)
			mockRepo.AssertNotCalled(t, "GetPointOfInterest", mock.Anything, mock.Anything, mock.Anything)
			mockRepo.AssertNotCalled(t, "GetPointsOfInterestForCity", mock.Anything, mock.Anything)
			mockMailer.AssertNotCalled(t, "Send", mock.Anything, mock.Anything, mock.Anything)
		})
	}
}

func TestServiceImpl_GetPointsOfInterest(t *testing.T) {
	ctx := context.Background()

	t.Run("success", func(t *testing.T) {
		service, mockRepo, _ := setupServiceTest(t)
		mockRepo.On("CityExists", mock.Anything, 1).Return(true, nil).Once()
		mockRepo.On("GetPointsOfInterestForCity", mock.Anything, 1).Return([]models.PointOfInterest{*centralPark()}, nil).Once()

		pois, err := service.GetPointsOfInterest(ctx, 1)
		require.NoError(t, err)
		require.Len(t, pois, 1)
		assert.Equal(t, "Central Park", pois[0].Name)
		mockRepo.AssertExpectations(t)
	})

	t.Run("store error", func(t *testing.T) {
		service, mockRepo, _ := setupServiceTest(t)
		dbErr := errors.New("db down")
		mockRepo.On("CityExists", mock.Anything, 1).Return(false, dbErr).Once()

		_, err := service.GetPointsOfInterest(ctx, 1)
		assert.ErrorIs(t, err, dbErr)
		assert.NotErrorIs(t, err, types.ErrNotFound)
		mockRepo.AssertExpectations(t)
	})
}

func TestServiceImpl_GetPointOfInterest(t *testing.T) {
	ctx := context.Background()

	t.Run("missing point of interest", func(t *testing.T) {
		service, mockRepo, _ := setupServiceTest(t)
		mockRepo.On("CityExists", mock.Anything, 1).Return(true, nil).Once()
		mockRepo.On("GetPointOfInterest", mock.Anything, 1, 99).
			Return(nil, fmt.Errorf("lookup: %w", types.ErrPointOfInterestNotFound)).Once()

		poi, err := service.GetPointOfInterest(ctx, 1, 99)
		assert.Nil(t, poi)
		assert.ErrorIs(t, err, types.ErrPointOfInterestNotFound)
		mockRepo.AssertExpectations(t)
	})

	t.Run("success", func(t *testing.T) {
		service, mockRepo, _ := setupServiceTest(t)
		mockRepo.On("CityExists", mock.Anything, 1).Return(true, nil).Once()
		mockRepo.On("GetPointOfInterest", mock.Anything, 1, 1).Return(centralPark(), nil).Once()

		poi, err := service.GetPointOfInterest(ctx, 1, 1)
		require.NoError(t, err)
		assert.Equal(t, types.PointOfInterestDto{ID: 1, Name: "Central Park", Description: "The most visited urban park in the United States."}, *poi)
		mockRepo.AssertExpectations(t)
	})
}

func TestServiceImpl_CreatePointOfInterest(t *testing.T) {
	ctx := context.Background()

	t.Run("success", func(t *testing.T) {
		service, mockRepo, _ := setupServiceTest(t)
		dto := types.PointOfInterestForCreationDto{Name: "Bryant Park", Description: "A park in Midtown."}
		cmd := repository.AddPointOfInterestCommand{Name: dto.Name, Description: dto.Description}

		mockRepo.On("CityExists", mock.Anything, 1).Return(true, nil).Once()
		mockRepo.On("AddPointOfInterest", mock.Anything, 1, cmd).
			Return(&models.PointOfInterest{Base: models.Base{ID: 7}, CityID: 1, Name: dto.Name, Description: dto.Description}, nil).Once()
		mockRepo.On("Save", mock.Anything).Return(nil).Once()

		created, err := service.CreatePointOfInterest(ctx, 1, dto)
		require.NoError(t, err)
		assert.Equal(t, 7, created.ID)
		assert.Equal(t, dto.Name, created.Name)
		mockRepo.AssertExpectations(t)
	})

	t.Run("name equal to description is rejected before the store is touched", func(t *testing.T) {
		service, mockRepo, _ := setupServiceTest(t)

		_, err := service.CreatePointOfInterest(ctx, 1, types.PointOfInterestForCreationDto{Name: "Same", Description: "Same"})

		var verr *types.ValidationError
		require.True(t, errors.As(err, &verr))
		assert.Equal(t, []string{"The provided description should be different from the name."}, verr.Errors["description"])
		mockRepo.AssertNotCalled(t, "CityExists", mock.Anything, mock.Anything)
		mockRepo.AssertNotCalled(t, "AddPointOfInterest", mock.Anything, mock.Anything, mock.Anything)
	})
}

func TestServiceImpl_UpdatePointOfInterest(t *testing.T) {
	ctx := context.Background()
	dto := types.PointOfInterestForUpdateDto{Name: "Central Park", Description: "Updated."}

	t.Run("success", func(t *testing.T) {
		service, mockRepo, _ := setupServiceTest(t)
		mockRepo.On("CityExists", mock.Anything, 1).Return(true, nil).Once()
		mockRepo.On("GetPointOfInterest", mock.Anything, 1, 1).Return(centralPark(), nil).Once()
		mockRepo.On("UpdatePointOfInterest", mock.Anything, repository.UpdatePointOfInterestCommand{
			CityID: 1, PointOfInterestID: 1, Name: dto.Name, Description: dto.Description,
		}).Return(nil).Once()
		mockRepo.On("Save", mock.Anything).Return(nil).Once()

		require.NoError(t, service.UpdatePointOfInterest(ctx, 1, 1, dto))
		mockRepo.AssertExpectations(t)
	})

	t.Run("missing point of interest is not updated", func(t *testing.T) {
		service, mockRepo, _ := setupServiceTest(t)
		mockRepo.On("CityExists", mock.Anything, 1).Return(true, nil).Once()
		mockRepo.On("GetPointOfInterest", mock.Anything, 1, 5).Return(nil, types.ErrPointOfInterestNotFound).Once()

		err := service.UpdatePointOfInterest(ctx, 1, 5, dto)
		assert.ErrorIs(t, err, types.ErrNotFound)
		mockRepo.AssertNotCalled(t, "UpdatePointOfInterest", mock.Anything, mock.Anything)
		mockRepo.AssertExpectations(t)
	})
}

func TestServiceImpl_PartiallyUpdatePointOfInterest(t *testing.T) {
	ctx := context.Background()

	t.Run("replace name", func(t *testing.T) {
		service, mockRepo, _ := setupServiceTest(t)
		mockRepo.On("CityExists", mock.Anything, 1).Return(true, nil).Once()
		mockRepo.On("GetPointOfInterest", mock.Anything, 1, 1).Return(centralPark(), nil).Once()
		mockRepo.On("UpdatePointOfInterest", mock.Anything, repository.UpdatePointOfInterestCommand{
			CityID: 1, PointOfInterestID: 1,
			Name:        "Central Park NYC",
			Description: "The most visited urban park in the United States.",
		}).Return(nil).Once()
		mockRepo.On("Save", mock.Anything).Return(nil).Once()

		err := service.PartiallyUpdatePointOfInterest(ctx, 1, 1,
			mustPatch(t, `[{"op":"replace","path":"/name","value":"Central Park NYC"}]`))
		require.NoError(t, err)
		mockRepo.AssertExpectations(t)
	})

	t.Run("patched document is validated", func(t *testing.T) {
		service, mockRepo, _ := setupServiceTest(t)
		mockRepo.On("CityExists", mock.Anything, 1).Return(true, nil).Once()
		mockRepo.On("GetPointOfInterest", mock.Anything, 1, 1).Return(centralPark(), nil).Once()

		err := service.PartiallyUpdatePointOfInterest(ctx, 1, 1,
			mustPatch(t, `[{"op":"replace","path":"/description","value":"Central Park"}]`))

		var verr *types.ValidationError
		require.True(t, errors.As(err, &verr))
		assert.Contains(t, verr.Errors, "description")
		mockRepo.AssertNotCalled(t, "UpdatePointOfInterest", mock.Anything, mock.Anything)
	})

	t.Run("removing the name fails validation", func(t *testing.T) {
		service, mockRepo, _ := setupServiceTest(t)
		mockRepo.On("CityExists", mock.Anything, 1).Return(true, nil).Once()
		mockRepo.On("GetPointOfInterest", mock.Anything, 1, 1).Return(centralPark(), nil).Once()

		err := service.PartiallyUpdatePointOfInterest(ctx, 1, 1, mustPatch(t, `[{"op":"remove","path":"/name"}]`))

		var verr *types.ValidationError
		require.True(t, errors.As(err, &verr))
		assert.Equal(t, []string{"You should provide a name value."}, verr.Errors["name"])
	})

	t.Run("unknown member is rejected", func(t *testing.T) {
		service, mockRepo, _ := setupServiceTest(t)
		mockRepo.On("CityExists", mock.Anything, 1).Return(true, nil).Once()
		mockRepo.On("GetPointOfInterest", mock.Anything, 1, 1).Return(centralPark(), nil).Once()

		err := service.PartiallyUpdatePointOfInterest(ctx, 1, 1,
			mustPatch(t, `[{"op":"add","path":"/rating","value":5}]`))

		var verr *types.ValidationError
		require.True(t, errors.As(err, &verr))
		assert.Contains(t, verr.Errors, patchDocumentField)
	})

	t.Run("failed test operation", func(t *testing.T) {
		service, mockRepo, _ := setupServiceTest(t)
		mockRepo.On("CityExists", mock.Anything, 1).Return(true, nil).Once()
		mockRepo.On("GetPointOfInterest", mock.Anything, 1, 1).Return(centralPark(), nil).Once()

		err := service.PartiallyUpdatePointOfInterest(ctx, 1, 1,
			mustPatch(t, `[{"op":"test","path":"/name","value":"Hyde Park"}]`))

		var verr *types.ValidationError
		require.True(t, errors.As(err, &verr))
		assert.Contains(t, verr.Errors, patchDocumentField)
	})
}

func TestServiceImpl_DeletePointOfInterest(t *testing.T) {
	ctx := context.Background()
	cmd := repository.DeletePointOfInterestCommand{CityID: 1, PointOfInterestID: 1}

	t.Run("deletes and sends mail", func(t *testing.T) {
		service, mockRepo, mockMailer := setupServiceTest(t)
		mockRepo.On("CityExists", mock.Anything, 1).Return(true, nil).Once()
		mockRepo.On("GetPointOfInterest", mock.Anything, 1, 1).Return(centralPark(), nil).Once()
		mockRepo.On("DeletePointOfInterest", mock.Anything, cmd).Return(nil).Once()
		mockRepo.On("Save", mock.Anything).Return(nil).Once()
		mockMailer.On("Send", mock.Anything, "Point of interest deleted.",
			"Point of interest Central Park with id 1 was deleted.").Return(nil).Once()

		require.NoError(t, service.DeletePointOfInterest(ctx, 1, 1))
		mockRepo.AssertExpectations(t)
		mockMailer.AssertExpectations(t)
	})

	t.Run("mail failure does not fail the deletion", func(t *testing.T) {
		service, mockRepo, mockMailer := setupServiceTest(t)
		mockRepo.On("CityExists", mock.Anything, 1).Return(true, nil).Once()
		mockRepo.On("GetPointOfInterest", mock.Anything, 1, 1).Return(centralPark(), nil).Once()
		mockRepo.On("DeletePointOfInterest", mock.Anything, cmd).Return(nil).Once()
		mockRepo.On("Save", mock.Anything).Return(nil).Once()
		mockMailer.On("Send", mock.Anything, mock.Anything, mock.Anything).Return(errors.New("smtp down")).Once()

		assert.NoError(t, service.DeletePointOfInterest(ctx, 1, 1))
		mockMailer.AssertExpectations(t)
	})

	t.Run("missing point of interest sends nothing", func(t *testing.T) {
		service, mockRepo, mockMailer := setupServiceTest(t)
		mockRepo.On("CityExists", mock.Anything, 1).Return(true, nil).Once()
		mockRepo.On("GetPointOfInterest", mock.Anything, 1, 9).Return(nil, types.ErrPointOfInterestNotFound).Once()

		err := service.DeletePointOfInterest(ctx, 1, 9)
		assert.ErrorIs(t, err, types.ErrPointOfInterestNotFound)
		mockRepo.AssertNotCalled(t, "DeletePointOfInterest", mock.Anything, mock.Anything)
		mockMailer.AssertNotCalled(t, "Send", mock.Anything, mock.Anything, mock.Anything)
	})
}
