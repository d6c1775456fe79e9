package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/zoobutik/zoobutik.bg/internal/domain"
	apperrors "github.com/zoobutik/zoobutik.bg/pkg/errors"
)

// --- Mock Repository ---

type mockCategoryRepository struct {
	mock.Mock
}

func (m *mockCategoryRepository) Create(ctx context.Context, c *domain.Category) error {
	args := m.Called(ctx, c)
	return args.Error(0)
}

func (m *mockCategoryRepository) GetByID(ctx context.Context, id int64) (*domain.Category, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Category), args.Error(1)
}

func (m *mockCategoryRepository) GetBySlug(ctx context.Context, slug string) (*domain.Category, error) {
	args := m.Called(ctx, slug)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Category), args.Error(1)
}

func (m *mockCategoryRepository) ListAll(ctx context.Context) ([]domain.Category, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Category), args.Error(1)
}

func (m *mockCategoryRepository) Update(ctx context.Context, c *domain.Category) error {
	args := m.Called(ctx, c)
	return args.Error(0)
}

func (m *mockCategoryRepository) Delete(ctx context.Context, id int64) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func newNavigationService(repo *mockCategoryRepository) *NavigationService {
	return NewNavigationService(repo, newTestLogger())
}

// --- Tree ---

func TestTree_BuildsFromRepository(t *testing.T) {
	repo := new(mockCategoryRepository)
	svc := newNavigationService(repo)
	ctx := context.Background()

	parent := int64(2)
	repo.On("ListAll", ctx).Return([]domain.Category{
		{ID: 1, Name: "Кучета", Visible: true, SortOrder: 2},
		{ID: 2, Name: "Котки", Visible: true, SortOrder: 1},
		{ID: 3, Name: "Храна за котки", ParentID: &parent, Visible: true, SortOrder: 1},
	}, nil)

	tree, err := svc.Tree(ctx)

	require.NoError(t, err)
	require.Len(t, tree, 2)
	assert.Equal(t, "Котки", tree[0].Name)
	require.Len(t, tree[0].Children, 1)
	assert.Equal(t, "Храна за котки", tree[0].Children[0].Name)
}

// --- CreateCategory ---

func TestCreateCategory_DerivesSlugFromCyrillicName(t *testing.T) {
	repo := new(mockCategoryRepository)
	svc := newNavigationService(repo)
	ctx := context.Background()

	repo.On("Create", ctx, mock.AnythingOfType("*domain.Category")).Return(nil)

	c, err := svc.CreateCategory(ctx, CategoryInput{
		Name:    "Щастливи лапи",
		Visible: true,
	})

	require.NoError(t, err)
	assert.Equal(t, "shtastlivi-lapi", c.Slug)
	assert.WithinDuration(t, time.Now().UTC(), c.CreatedAt, time.Minute)
}

func TestCreateCategory_ExplicitSlugWins(t *testing.T) {
	repo := new(mockCategoryRepository)
	svc := newNavigationService(repo)
	ctx := context.Background()

	repo.On("Create", ctx, mock.AnythingOfType("*domain.Category")).Return(nil)

	c, err := svc.CreateCategory(ctx, CategoryInput{Name: "Кучета", Slug: "dogs", Visible: true})

	require.NoError(t, err)
	assert.Equal(t, "dogs", c.Slug)
}

func TestCreateCategory_RejectsNestedParent(t *testing.T) {
	repo := new(mockCategoryRepository)
	svc := newNavigationService(repo)
	ctx := context.Background()

	grandparent := int64(1)
	repo.On("GetByID", ctx, int64(5)).Return(&domain.Category{ID: 5, ParentID: &grandparent}, nil)

	parent := int64(5)
	_, err := svc.CreateCategory(ctx, CategoryInput{Name: "Трето ниво", ParentID: &parent})

	assert.ErrorIs(t, err, apperrors.ErrInvalidInput)
	repo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestUpdateCategory_RejectsSelfParent(t *testing.T) {
	repo := new(mockCategoryRepository)
	svc := newNavigationService(repo)

	self := int64(7)
	_, err := svc.UpdateCategory(context.Background(), 7, CategoryInput{Name: "Кучета", ParentID: &self})

	assert.ErrorIs(t, err, apperrors.ErrInvalidInput)
}
