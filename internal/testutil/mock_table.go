//go:build !production

package testutil

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/palemoky/go-fish/internal/protocol"
	"github.com/palemoky/go-fish/internal/sound"
)

// MockFeed 模拟事件流连接
type MockFeed struct {
	mock.Mock
}

func (m *MockFeed) Connect(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockFeed) Send(msg *protocol.Message) error {
	args := m.Called(msg)
	return args.Error(0)
}

func (m *MockFeed) Close() {
	m.Called()
}

// MockCuePlayer 模拟音效播放
type MockCuePlayer struct {
	mock.Mock
}

func (m *MockCuePlayer) Play(cue sound.Cue) {
	m.Called(cue)
}

// MockSnapshotSaver 模拟快照存储
type MockSnapshotSaver struct {
	mock.Mock
}

func (m *MockSnapshotSaver) Save(ctx context.Context, tableID string, snap *protocol.TableSnapshot) error {
	args := m.Called(ctx, tableID, snap)
	return args.Error(0)
}

func (m *MockSnapshotSaver) Delete(ctx context.Context, tableID string) error {
	args := m.Called(ctx, tableID)
	return args.Error(0)
}

// MockBookRecorder 模拟书堆计分
type MockBookRecorder struct {
	mock.Mock
}

func (m *MockBookRecorder) Record(ctx context.Context, tableID, playerID string) (int, error) {
	args := m.Called(ctx, tableID, playerID)
	return args.Int(0), args.Error(1)
}

func (m *MockBookRecorder) Reset(ctx context.Context, tableID string) error {
	args := m.Called(ctx, tableID)
	return args.Error(0)
}
