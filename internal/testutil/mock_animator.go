//go:build !production

package testutil

import (
	"github.com/stretchr/testify/mock"

	"github.com/palemoky/go-fish/internal/anim"
)

// MockAnimator 实现 anim.Animator 的 mock
type MockAnimator struct {
	mock.Mock
}

func (m *MockAnimator) RequestMove(req anim.MoveRequest) {
	m.Called(req)
}
