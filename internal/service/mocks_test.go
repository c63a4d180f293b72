package service

import (
	"testing"
	"time"

	"github.com/stretchr/testify/mock"

	"github.com/yourusername/survey-api/internal/domain/entity"
	"github.com/yourusername/survey-api/internal/repository/postgres"
	"github.com/yourusername/survey-api/internal/testutil"
)

// MockCacheRepository implements repository.CacheRepository
type MockCacheRepository struct {
	mock.Mock
}

func (m *MockCacheRepository) SetJSON(key string, value interface{}, expiration time.Duration) error {
	args := m.Called(key, value, expiration)
	return args.Error(0)
}

func (m *MockCacheRepository) GetJSON(key string, dest interface{}) error {
	args := m.Called(key, dest)
	return args.Error(0)
}

func (m *MockCacheRepository) Delete(key string) error {
	args := m.Called(key)
	return args.Error(0)
}

// MockPersonRepository implements repository.PersonRepository
type MockPersonRepository struct {
	mock.Mock
}

func (m *MockPersonRepository) Create(p *entity.Person) error {
	args := m.Called(p)
	return args.Error(0)
}

func (m *MockPersonRepository) GetByID(id uint) (*entity.Person, error) {
	args := m.Called(id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.Person), args.Error(1)
}

func (m *MockPersonRepository) GetByEmail(email string) (*entity.Person, error) {
	args := m.Called(email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.Person), args.Error(1)
}

// MockTokenIssuer implements TokenIssuer
type MockTokenIssuer struct {
	mock.Mock
}

func (m *MockTokenIssuer) GenerateToken(personID uint, role string) (string, time.Time, error) {
	args := m.Called(personID, role)
	return args.String(0), args.Get(1).(time.Time), args.Error(2)
}

func newTestStore(t *testing.T) *postgres.Store {
	t.Helper()
	return postgres.NewStore(testutil.NewSQLite(t))
}
