package ledger

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nicole276/Api-Stockbar/internal/core/apperror"
)

type fakeRepo struct {
	stock       map[int64]int64
	lockedReads int
}

func newFakeRepo(stock map[int64]int64) *fakeRepo {
	return &fakeRepo{stock: stock}
}

func (r *fakeRepo) GetForUpdate(_ context.Context, productID int64) (*StockLevel, error) {
	r.lockedReads++
	return r.Get(context.Background(), productID)
}

func (r *fakeRepo) Get(_ context.Context, productID int64) (*StockLevel, error) {
	qty, ok := r.stock[productID]
	if !ok {
		return nil, apperror.NewNotFound("product", productID)
	}
	return &StockLevel{ProductID: productID, Stock: qty}, nil
}

func (r *fakeRepo) AddStock(_ context.Context, productID int64, delta int64) (*StockLevel, error) {
	qty, ok := r.stock[productID]
	if !ok {
		return nil, apperror.NewNotFound("product", productID)
	}
	r.stock[productID] = qty + delta
	return &StockLevel{ProductID: productID, Stock: r.stock[productID]}, nil
}

type passthroughTxManager struct{}

func (passthroughTxManager) RunInTransaction(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

func TestApplyDelta_Increase(t *testing.T) {
	repo := newFakeRepo(map[int64]int64{1: 10})
	svc := NewService(repo, passthroughTxManager{})

	level, err := svc.ApplyDelta(context.Background(), 1, 5)
	require.NoError(t, err)
	assert.Equal(t, int64(15), level.Stock)
	assert.Zero(t, repo.lockedReads, "positive deltas must not lock")
}

func TestApplyDelta_DecreaseLocksRow(t *testing.T) {
	repo := newFakeRepo(map[int64]int64{1: 10})
	svc := NewService(repo, passthroughTxManager{})

	level, err := svc.ApplyDelta(context.Background(), 1, -4)
	require.NoError(t, err)
	assert.Equal(t, int64(6), level.Stock)
	assert.Equal(t, 1, repo.lockedReads)
}

func TestApplyDelta_InsufficientStock(t *testing.T) {
	repo := newFakeRepo(map[int64]int64{1: 3})
	svc := NewService(repo, passthroughTxManager{})

	_, err := svc.ApplyDelta(context.Background(), 1, -5)
	require.Error(t, err)
	assert.True(t, apperror.IsInsufficientStock(err))
	assert.Equal(t, int64(3), repo.stock[1], "failed delta must not change stock")
}

func TestApplyDelta_ExactDrain(t *testing.T) {
	repo := newFakeRepo(map[int64]int64{1: 5})
	svc := NewService(repo, passthroughTxManager{})

	level, err := svc.ApplyDelta(context.Background(), 1, -5)
	require.NoError(t, err)
	assert.Equal(t, int64(0), level.Stock)
}

func TestApplyDelta_UnknownProduct(t *testing.T) {
	repo := newFakeRepo(map[int64]int64{})
	svc := NewService(repo, passthroughTxManager{})

	_, err := svc.ApplyDelta(context.Background(), 99, -1)
	require.Error(t, err)
	assert.True(t, apperror.IsNotFound(err))
}

func TestApplyDeltas_StopsOnFirstFailure(t *testing.T) {
	repo := newFakeRepo(map[int64]int64{1: 10, 2: 1, 3: 10})
	svc := NewService(repo, passthroughTxManager{})

	err := svc.ApplyDeltas(context.Background(), []Requirement{
		{ProductID: 1, Quantity: 2},
		{ProductID: 2, Quantity: 5},
		{ProductID: 3, Quantity: 1},
	}, -1)
	require.Error(t, err)
	assert.True(t, apperror.IsInsufficientStock(err))
	assert.Equal(t, int64(10), repo.stock[3], "later deltas must not run after a failure")
}

func TestCheckAvailability(t *testing.T) {
	repo := newFakeRepo(map[int64]int64{1: 10, 2: 2})
	svc := NewService(repo, passthroughTxManager{})

	err := svc.CheckAvailability(context.Background(), []Requirement{
		{ProductID: 1, Quantity: 10},
		{ProductID: 2, Quantity: 2},
	})
	require.NoError(t, err)

	err = svc.CheckAvailability(context.Background(), []Requirement{
		{ProductID: 2, Quantity: 3},
	})
	require.Error(t, err)

	appErr, ok := apperror.AsAppError(err)
	require.True(t, ok)
	assert.Equal(t, apperror.CodeInsufficientStock, appErr.Code)
	assert.EqualValues(t, 2, appErr.Details["available"])
	assert.EqualValues(t, 3, appErr.Details["requested"])
}

func TestAdjust(t *testing.T) {
	tests := []struct {
		name      string
		quantity  int64
		direction Direction
		want      int64
		wantErr   bool
	}{
		{name: "increase", quantity: 5, direction: DirectionIncrease, want: 15},
		{name: "decrease", quantity: 4, direction: DirectionDecrease, want: 6},
		{name: "decrease below zero", quantity: 11, direction: DirectionDecrease, wantErr: true},
		{name: "zero quantity", quantity: 0, direction: DirectionIncrease, wantErr: true},
		{name: "negative quantity", quantity: -2, direction: DirectionDecrease, wantErr: true},
		{name: "bad direction", quantity: 1, direction: Direction("sideways"), wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := newFakeRepo(map[int64]int64{1: 10})
			svc := NewService(repo, passthroughTxManager{})

			level, err := svc.Adjust(context.Background(), 1, tt.quantity, tt.direction)
			if tt.wantErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, level.Stock)
		})
	}
}
