package mocks

import (
	"context"
	"io"

	"blogapi/internal/model"
	"blogapi/internal/service"
	"blogapi/internal/storage"
	"github.com/stretchr/testify/mock"
)

type MockArticleService struct {
	mock.Mock
}

func (m *MockArticleService) Create(ctx context.Context, fields model.ArticleFields) (*model.Article, error) {
	args := m.Called(ctx, fields)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Article), args.Error(1)
}

func (m *MockArticleService) Get(ctx context.Context, id string) (*model.Article, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Article), args.Error(1)
}

func (m *MockArticleService) List(ctx context.Context, q service.ListQuery) (*service.ArticleListResult, error) {
	args := m.Called(ctx, q)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*service.ArticleListResult), args.Error(1)
}

func (m *MockArticleService) Update(ctx context.Context, id string, fields model.ArticleFields, img *service.ImageUpload) (*service.CommitResult, error) {
	args := m.Called(ctx, id, fields, img)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*service.CommitResult), args.Error(1)
}

func (m *MockArticleService) ReplaceImage(ctx context.Context, id string, img *service.ImageUpload) (*service.CommitResult, error) {
	args := m.Called(ctx, id, img)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*service.CommitResult), args.Error(1)
}

func (m *MockArticleService) Delete(ctx context.Context, id string) (*service.CommitResult, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*service.CommitResult), args.Error(1)
}

func (m *MockArticleService) Image(ctx context.Context, name string) (io.ReadCloser, storage.ObjectInfo, error) {
	args := m.Called(ctx, name)
	rc, _ := args.Get(0).(io.ReadCloser)
	info, _ := args.Get(1).(storage.ObjectInfo)
	return rc, info, args.Error(2)
}
