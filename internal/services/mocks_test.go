package services

import (
	"context"
	"io"
	"iter"
	"time"

	"plastwarehouse/internal/models"
	"plastwarehouse/internal/query"

	"github.com/stretchr/testify/mock"
)

type MockPlasticsRepository struct {
	mock.Mock
}

func (m *MockPlasticsRepository) Fetch(ctx context.Context, filter query.Compiled) ([]*models.PlasticRow, error) {
	args := m.Called(ctx, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*models.PlasticRow), args.Error(1)
}

func (m *MockPlasticsRepository) Stream(ctx context.Context, filter query.Compiled) iter.Seq2[*models.PlasticRow, error] {
	args := m.Called(ctx, filter)
	return args.Get(0).(iter.Seq2[*models.PlasticRow, error])
}

func (m *MockPlasticsRepository) Insert(ctx context.Context, plastic *models.NewPlastic) (int64, error) {
	args := m.Called(ctx, plastic)
	return args.Get(0).(int64), args.Error(1)
}

type MockCatalogRepository struct {
	mock.Mock
}

func (m *MockCatalogRepository) ListMaterials(ctx context.Context) ([]*models.MaterialType, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*models.MaterialType), args.Error(1)
}

type MockUserRepository struct {
	mock.Mock
}

func (m *MockUserRepository) Upsert(ctx context.Context, user *models.BotUser) error {
	args := m.Called(ctx, user)
	return args.Error(0)
}

func (m *MockUserRepository) List(ctx context.Context) ([]*models.BotUser, error) {
	args := m.Called(ctx)
	return args.Get(0).([]*models.BotUser), args.Error(1)
}

type MockCacheService struct {
	mock.Mock
}

func (m *MockCacheService) GetMaterials(ctx context.Context) ([]*models.MaterialType, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*models.MaterialType), args.Error(1)
}

func (m *MockCacheService) SetMaterials(ctx context.Context, materials []*models.MaterialType, ttl time.Duration) error {
	args := m.Called(ctx, materials, ttl)
	return args.Error(0)
}

func (m *MockCacheService) InvalidateMaterials(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockCacheService) Ping(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

type MockMinioService struct {
	mock.Mock
}

func (m *MockMinioService) UploadObject(ctx context.Context, bucketName, objectName string, reader io.Reader, objectSize int64, contentType string) error {
	args := m.Called(ctx, bucketName, objectName, reader, objectSize, contentType)
	return args.Error(0)
}

func (m *MockMinioService) GetPresignedURL(ctx context.Context, bucketName, objectName string, expiry time.Duration) (string, error) {
	args := m.Called(ctx, bucketName, objectName, expiry)
	return args.String(0), args.Error(1)
}

func (m *MockMinioService) EnsureBucketExists(ctx context.Context, bucketName string) error {
	args := m.Called(ctx, bucketName)
	return args.Error(0)
}

func (m *MockMinioService) Ping(ctx context.Context, bucketName string) error {
	args := m.Called(ctx, bucketName)
	return args.Error(0)
}
