package inmemorycache

import "github.com/stretchr/testify/mock"

type MockInMemoryCache struct {
	mock.Mock
}

func (m *MockInMemoryCache) Get(key []byte) ([]byte, error) {
	args := m.Called(key)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]byte), args.Error(1)
}

func (m *MockInMemoryCache) Set(key, value []byte) error {
	args := m.Called(key, value)
	return args.Error(0)
}

func (m *MockInMemoryCache) SetEx(key, value []byte, expiryInSec int) error {
	args := m.Called(key, value, expiryInSec)
	return args.Error(0)
}

func (m *MockInMemoryCache) Delete(key []byte) bool {
	args := m.Called(key)
	return args.Bool(0)
}
