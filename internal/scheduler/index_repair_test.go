package scheduler

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/MrSnakeDoc/bookmarks/internal/logger"
)

type mockPruner struct {
	mock.Mock
}

func (m *mockPruner) PruneIndex(ctx context.Context) (int, error) {
	args := m.Called(ctx)
	return args.Int(0), args.Error(1)
}

type countingPruner struct {
	calls atomic.Int32
}

func (c *countingPruner) PruneIndex(context.Context) (int, error) {
	c.calls.Add(1)
	return 0, nil
}

func TestRepairReportsRemoved(t *testing.T) {
	ctx := context.Background()
	p := new(mockPruner)
	p.On("PruneIndex", ctx).Return(3, nil).Once()

	r := NewIndexRepairer(p, logger.NewNop(), time.Hour)
	assert.Equal(t, 3, r.Repair(ctx))
	p.AssertExpectations(t)
}

func TestRepairSwallowsErrors(t *testing.T) {
	ctx := context.Background()
	p := new(mockPruner)
	p.On("PruneIndex", ctx).Return(0, errors.New("redis down")).Once()

	r := NewIndexRepairer(p, logger.NewNop(), time.Hour)
	assert.Zero(t, r.Repair(ctx))
	p.AssertExpectations(t)
}

func TestStartRunsImmediatelyAndPeriodically(t *testing.T) {
	p := &countingPruner{}
	r := NewIndexRepairer(p, logger.NewNop(), 10*time.Millisecond)

	r.Start(context.Background())
	assert.GreaterOrEqual(t, p.calls.Load(), int32(1))

	assert.Eventually(t, func() bool { return p.calls.Load() >= 3 }, time.Second, 5*time.Millisecond)
	r.Stop()

	after := p.calls.Load()
	time.Sleep(30 * time.Millisecond)
	assert.Equal(t, after, p.calls.Load(), "no repair after Stop")
}

func TestStopAfterContextCancel(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	r := NewIndexRepairer(&countingPruner{}, logger.NewNop(), time.Hour)

	r.Start(ctx)
	cancel()
	r.Stop()
}

func TestStopWithoutStart(t *testing.T) {
	r := NewIndexRepairer(&countingPruner{}, logger.NewNop(), time.Hour)
	r.Stop()
	r.Stop()
}
