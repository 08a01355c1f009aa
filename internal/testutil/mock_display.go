//go:build !production

package testutil

import "github.com/stretchr/testify/mock"

// MockDisplay 实现 layout.Display 的 mock
type MockDisplay struct {
	mock.Mock
}

func (m *MockDisplay) Size() (width, height int) {
	args := m.Called()
	return args.Int(0), args.Int(1)
}

// FixedDisplay is a resizable display surface for tests.
type FixedDisplay struct {
	Width, Height int
}

func (d *FixedDisplay) Size() (width, height int) {
	return d.Width, d.Height
}
