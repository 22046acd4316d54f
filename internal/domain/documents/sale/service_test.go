package sale

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nicole276/Api-Stockbar/internal/core/apperror"
	"github.com/nicole276/Api-Stockbar/internal/core/types"
	"github.com/nicole276/Api-Stockbar/internal/domain/ledger"
)

type fakeRepo struct {
	nextID      int64
	sales       map[int64]*Sale
	lines       map[int64][]Line
	lockedReads int
}

func newFakeRepo() *fakeRepo {
	return &fakeRepo{nextID: 1, sales: make(map[int64]*Sale), lines: make(map[int64][]Line)}
}

func (r *fakeRepo) InsertHeader(_ context.Context, s *Sale) error {
	s.ID = r.nextID
	r.nextID++
	copied := *s
	r.sales[s.ID] = &copied
	return nil
}

func (r *fakeRepo) InsertLines(_ context.Context, saleID int64, lines []Line) error {
	r.lines[saleID] = lines
	return nil
}

func (r *fakeRepo) GetByID(_ context.Context, id int64) (*Sale, error) {
	s, ok := r.sales[id]
	if !ok {
		return nil, apperror.NewNotFound("sale", id)
	}
	copied := *s
	return &copied, nil
}

func (r *fakeRepo) GetByIDForUpdate(ctx context.Context, id int64) (*Sale, error) {
	r.lockedReads++
	return r.GetByID(ctx, id)
}

func (r *fakeRepo) GetLines(_ context.Context, saleID int64) ([]Line, error) {
	return r.lines[saleID], nil
}

func (r *fakeRepo) List(_ context.Context, _ Filter) ([]*Sale, error) {
	out := make([]*Sale, 0, len(r.sales))
	for _, s := range r.sales {
		out = append(out, s)
	}
	return out, nil
}

func (r *fakeRepo) UpdateState(_ context.Context, id int64, state State) error {
	s, ok := r.sales[id]
	if !ok {
		return apperror.NewNotFound("sale", id)
	}
	s.State = state
	return nil
}

func (r *fakeRepo) DeleteLines(_ context.Context, saleID int64) error {
	delete(r.lines, saleID)
	return nil
}

func (r *fakeRepo) DeleteHeader(_ context.Context, id int64) error {
	delete(r.sales, id)
	return nil
}

type fakeLedger struct {
	stock  map[int64]int64
	deltas []int64
}

func (l *fakeLedger) ApplyDelta(_ context.Context, productID int64, delta int64) (*ledger.StockLevel, error) {
	if delta < 0 && l.stock[productID]+delta < 0 {
		return nil, apperror.NewInsufficientStock(productID, -delta, l.stock[productID])
	}
	l.stock[productID] += delta
	l.deltas = append(l.deltas, delta)
	return &ledger.StockLevel{ProductID: productID, Stock: l.stock[productID]}, nil
}

func (l *fakeLedger) CheckAvailability(_ context.Context, reqs []ledger.Requirement) error {
	for _, req := range reqs {
		if l.stock[req.ProductID] < req.Quantity {
			return apperror.NewInsufficientStock(req.ProductID, req.Quantity, l.stock[req.ProductID])
		}
	}
	return nil
}

type passthroughTxManager struct{}

func (passthroughTxManager) RunInTransaction(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

type recordingAuditor struct {
	actions []string
}

func (a *recordingAuditor) RecordQuiet(_ context.Context, _ string, _ int64, action string, _ any) {
	a.actions = append(a.actions, action)
}

func setup(stock map[int64]int64) (*Service, *fakeRepo, *fakeLedger, *recordingAuditor) {
	repo := newFakeRepo()
	led := &fakeLedger{stock: stock}
	auditor := &recordingAuditor{}
	return NewService(repo, led, passthroughTxManager{}, auditor), repo, led, auditor
}

func validSale() *Sale {
	return &Sale{
		ClientID: 3,
		State:    StatePending,
		Lines: []Line{
			{ProductID: 1, Quantity: 2, UnitPrice: types.MustMoney("5.00")},
			{ProductID: 2, Quantity: 1, UnitPrice: types.MustMoney("3.50")},
		},
	}
}

func TestCreate_ConsumesStock(t *testing.T) {
	svc, repo, led, _ := setup(map[int64]int64{1: 10, 2: 5})

	doc, err := svc.Create(context.Background(), validSale())
	require.NoError(t, err)

	assert.Equal(t, int64(8), led.stock[1])
	assert.Equal(t, int64(4), led.stock[2])
	assert.Len(t, repo.lines[doc.ID], 2)
	assert.True(t, doc.Total.Equal(types.MustMoney("13.50")))
}

func TestCreate_InsufficientStockWritesNothing(t *testing.T) {
	svc, repo, led, _ := setup(map[int64]int64{1: 10, 2: 0})

	_, err := svc.Create(context.Background(), validSale())
	require.Error(t, err)
	assert.True(t, apperror.IsInsufficientStock(err))

	assert.Empty(t, repo.sales, "failed sales must not be written")
	assert.Empty(t, led.deltas, "availability fails before any delta runs")
	assert.Equal(t, int64(10), led.stock[1])
}

func TestCreate_VoidedTouchesNoStock(t *testing.T) {
	svc, repo, led, _ := setup(map[int64]int64{1: 0, 2: 0})

	doc := validSale()
	doc.State = StateVoided

	created, err := svc.Create(context.Background(), doc)
	require.NoError(t, err, "voided sales post even with zero stock")
	assert.Empty(t, led.deltas)
	assert.Equal(t, StateVoided, repo.sales[created.ID].State)
}

func TestCreate_Validation(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Sale)
	}{
		{name: "missing client", mutate: func(s *Sale) { s.ClientID = 0 }},
		{name: "no lines", mutate: func(s *Sale) { s.Lines = nil }},
		{name: "zero quantity", mutate: func(s *Sale) { s.Lines[0].Quantity = 0 }},
		{name: "unknown state", mutate: func(s *Sale) { s.State = State(7) }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc, repo, _, _ := setup(map[int64]int64{1: 10, 2: 10})

			doc := validSale()
			tt.mutate(doc)

			_, err := svc.Create(context.Background(), doc)
			require.Error(t, err)
			assert.Empty(t, repo.sales)
		})
	}
}

func TestChangeState_VoidReturnsStock(t *testing.T) {
	svc, repo, led, auditor := setup(map[int64]int64{1: 10, 2: 5})

	doc, err := svc.Create(context.Background(), validSale())
	require.NoError(t, err)

	change, err := svc.ChangeState(context.Background(), doc.ID, StateVoided)
	require.NoError(t, err)

	assert.Equal(t, StatePending, change.PreviousState)
	assert.Equal(t, StateVoided, change.NewState)
	assert.Equal(t, int64(10), led.stock[1], "voiding returns the full quantity")
	assert.Equal(t, int64(5), led.stock[2])
	assert.Equal(t, StateVoided, repo.sales[doc.ID].State)
	assert.Contains(t, auditor.actions, "void")
	assert.Equal(t, 1, repo.lockedReads)
}

func TestChangeState_ReactivateConsumesStockAgain(t *testing.T) {
	svc, _, led, auditor := setup(map[int64]int64{1: 10, 2: 5})

	doc, err := svc.Create(context.Background(), validSale())
	require.NoError(t, err)

	_, err = svc.ChangeState(context.Background(), doc.ID, StateVoided)
	require.NoError(t, err)
	_, err = svc.ChangeState(context.Background(), doc.ID, StatePending)
	require.NoError(t, err)

	// Void then reactivate conserves stock.
	assert.Equal(t, int64(8), led.stock[1])
	assert.Equal(t, int64(4), led.stock[2])
	assert.Contains(t, auditor.actions, "reactivate")
}

func TestChangeState_ReactivateFailsWhenStockGone(t *testing.T) {
	svc, repo, led, _ := setup(map[int64]int64{1: 2, 2: 1})

	doc, err := svc.Create(context.Background(), validSale())
	require.NoError(t, err)
	_, err = svc.ChangeState(context.Background(), doc.ID, StateVoided)
	require.NoError(t, err)

	// Someone else takes the returned stock.
	led.stock[1] = 0

	_, err = svc.ChangeState(context.Background(), doc.ID, StatePending)
	require.Error(t, err)
	assert.True(t, apperror.IsInsufficientStock(err))
	assert.Equal(t, StateVoided, repo.sales[doc.ID].State, "state stays Voided on failure")
}

func TestChangeState_PendingCompletedNoStockMovement(t *testing.T) {
	svc, repo, led, _ := setup(map[int64]int64{1: 10, 2: 5})

	doc, err := svc.Create(context.Background(), validSale())
	require.NoError(t, err)
	deltasAfterCreate := len(led.deltas)

	_, err = svc.ChangeState(context.Background(), doc.ID, StateCompleted)
	require.NoError(t, err)
	_, err = svc.ChangeState(context.Background(), doc.ID, StatePending)
	require.NoError(t, err)

	assert.Len(t, led.deltas, deltasAfterCreate, "stock-holding transitions leave the ledger untouched")
	assert.Equal(t, StatePending, repo.sales[doc.ID].State)
}

func TestChangeState_SameStateNoOp(t *testing.T) {
	svc, _, led, auditor := setup(map[int64]int64{1: 10, 2: 5})

	doc, err := svc.Create(context.Background(), validSale())
	require.NoError(t, err)
	deltasAfterCreate := len(led.deltas)
	auditsAfterCreate := len(auditor.actions)

	change, err := svc.ChangeState(context.Background(), doc.ID, StatePending)
	require.NoError(t, err)
	assert.Equal(t, StatePending, change.PreviousState)
	assert.Equal(t, StatePending, change.NewState)
	assert.Len(t, led.deltas, deltasAfterCreate)
	assert.Len(t, auditor.actions, auditsAfterCreate)
}

func TestChangeState_DoubleVoidReturnsStockOnce(t *testing.T) {
	svc, _, led, _ := setup(map[int64]int64{1: 10, 2: 5})

	doc, err := svc.Create(context.Background(), validSale())
	require.NoError(t, err)

	_, err = svc.ChangeState(context.Background(), doc.ID, StateVoided)
	require.NoError(t, err)
	_, err = svc.ChangeState(context.Background(), doc.ID, StateVoided)
	require.NoError(t, err)

	assert.Equal(t, int64(10), led.stock[1], "second void must not credit stock again")
}

func TestChangeState_UnknownState(t *testing.T) {
	svc, _, _, _ := setup(map[int64]int64{1: 10, 2: 5})

	doc, err := svc.Create(context.Background(), validSale())
	require.NoError(t, err)

	_, err = svc.ChangeState(context.Background(), doc.ID, State(5))
	require.Error(t, err)

	appErr, ok := apperror.AsAppError(err)
	require.True(t, ok)
	assert.Equal(t, apperror.CodeValidation, appErr.Code)
}

func TestChangeState_CorruptStoredState(t *testing.T) {
	svc, repo, _, _ := setup(map[int64]int64{})
	repo.sales[1] = &Sale{ID: 1, ClientID: 3, State: State(9)}

	_, err := svc.ChangeState(context.Background(), 1, StateVoided)
	require.Error(t, err)

	appErr, ok := apperror.AsAppError(err)
	require.True(t, ok)
	assert.Equal(t, apperror.CodeInvalidState, appErr.Code)
}

func TestChangeState_NotFound(t *testing.T) {
	svc, _, _, _ := setup(map[int64]int64{})

	_, err := svc.ChangeState(context.Background(), 999, StateVoided)
	assert.True(t, apperror.IsNotFound(err))
}

func TestDelete_ReturnsStockForActiveSale(t *testing.T) {
	svc, repo, led, _ := setup(map[int64]int64{1: 10, 2: 5})

	doc, err := svc.Create(context.Background(), validSale())
	require.NoError(t, err)

	err = svc.Delete(context.Background(), doc.ID)
	require.NoError(t, err)

	assert.Equal(t, int64(10), led.stock[1])
	assert.Equal(t, int64(5), led.stock[2])
	assert.Empty(t, repo.sales)
	assert.Empty(t, repo.lines)
}

func TestDelete_VoidedSaleReturnsNothing(t *testing.T) {
	svc, repo, led, _ := setup(map[int64]int64{1: 10, 2: 5})

	doc, err := svc.Create(context.Background(), validSale())
	require.NoError(t, err)
	_, err = svc.ChangeState(context.Background(), doc.ID, StateVoided)
	require.NoError(t, err)

	err = svc.Delete(context.Background(), doc.ID)
	require.NoError(t, err)

	// Void already returned the stock; delete must not credit it again.
	assert.Equal(t, int64(10), led.stock[1])
	assert.Equal(t, int64(5), led.stock[2])
	assert.Empty(t, repo.sales)
}

func TestDelete_NotFound(t *testing.T) {
	svc, _, _, _ := setup(map[int64]int64{})

	err := svc.Delete(context.Background(), 42)
	assert.True(t, apperror.IsNotFound(err))
}

func TestGetByID_IncludesLines(t *testing.T) {
	svc, _, _, _ := setup(map[int64]int64{1: 10, 2: 5})

	doc, err := svc.Create(context.Background(), validSale())
	require.NoError(t, err)

	got, err := svc.GetByID(context.Background(), doc.ID)
	require.NoError(t, err)
	assert.Len(t, got.Lines, 2)
}

// ledgerStore backs the real ledger service in the scenario test.
type ledgerStore struct {
	stock map[int64]int64
}

func (r *ledgerStore) GetForUpdate(ctx context.Context, productID int64) (*ledger.StockLevel, error) {
	return r.Get(ctx, productID)
}

func (r *ledgerStore) Get(_ context.Context, productID int64) (*ledger.StockLevel, error) {
	qty, ok := r.stock[productID]
	if !ok {
		return nil, apperror.NewNotFound("product", productID)
	}
	return &ledger.StockLevel{ProductID: productID, Stock: qty}, nil
}

func (r *ledgerStore) AddStock(_ context.Context, productID int64, delta int64) (*ledger.StockLevel, error) {
	r.stock[productID] += delta
	return &ledger.StockLevel{ProductID: productID, Stock: r.stock[productID]}, nil
}

func TestLifecycleScenario(t *testing.T) {
	// Product starts at 10; +5 intake; sell 12 completed; void; reactivate.
	store := &ledgerStore{stock: map[int64]int64{1: 10}}
	ledgerSvc := ledger.NewService(store, passthroughTxManager{})
	svc := NewService(newFakeRepo(), ledgerSvc, passthroughTxManager{}, &recordingAuditor{})
	ctx := context.Background()

	_, err := ledgerSvc.ApplyDelta(ctx, 1, 5)
	require.NoError(t, err)
	assert.Equal(t, int64(15), store.stock[1])

	doc, err := svc.Create(ctx, &Sale{
		ClientID: 1,
		State:    StateCompleted,
		Lines:    []Line{{ProductID: 1, Quantity: 12, UnitPrice: types.MustMoney("2.00")}},
	})
	require.NoError(t, err)
	assert.Equal(t, int64(3), store.stock[1])

	_, err = svc.ChangeState(ctx, doc.ID, StateVoided)
	require.NoError(t, err)
	assert.Equal(t, int64(15), store.stock[1])

	// A concurrent sale drains 10 units; reactivation must fail cleanly.
	_, err = ledgerSvc.ApplyDelta(ctx, 1, -10)
	require.NoError(t, err)

	_, err = svc.ChangeState(ctx, doc.ID, StateCompleted)
	require.Error(t, err)
	assert.True(t, apperror.IsInsufficientStock(err))
	assert.Equal(t, int64(5), store.stock[1], "failed reactivation leaves stock untouched")

	got, err := svc.GetByID(ctx, doc.ID)
	require.NoError(t, err)
	assert.Equal(t, StateVoided, got.State)
}
