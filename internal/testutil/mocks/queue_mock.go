package mocks

import "github.com/stretchr/testify/mock"

// MockQueue is a mock implementation of jobs.Queue
type MockQueue struct {
	mock.Mock
}

func (m *MockQueue) EnqueueShareInvitation(toEmail, collectionName, inviteLink string) error {
	args := m.Called(toEmail, collectionName, inviteLink)
	return args.Error(0)
}
