package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"brewline/internal/domain"
	"brewline/internal/order/repository"
)

type mockOrderLister struct {
	FindByIDFunc    func(ctx context.Context, id uint) (*domain.Order, error)
	ListFunc        func(ctx context.Context, f repository.ListFilter) ([]domain.Order, int, error)
	ListByPhoneFunc func(ctx context.Context, phone string) ([]domain.Order, error)
}

func (m *mockOrderLister) FindByID(ctx context.Context, id uint) (*domain.Order, error) {
	return m.FindByIDFunc(ctx, id)
}

func (m *mockOrderLister) List(ctx context.Context, f repository.ListFilter) ([]domain.Order, int, error) {
	return m.ListFunc(ctx, f)
}

func (m *mockOrderLister) ListByPhone(ctx context.Context, phone string) ([]domain.Order, error) {
	return m.ListByPhoneFunc(ctx, phone)
}

type mockOrderItemReader struct {
	FindByOrderIDsFunc func(ctx context.Context, orderIDs []uint) ([]domain.OrderItem, error)
}

func (m *mockOrderItemReader) FindByOrderIDs(ctx context.Context, orderIDs []uint) ([]domain.OrderItem, error) {
	return m.FindByOrderIDsFunc(ctx, orderIDs)
}

type mockStatusHistoryReader struct {
	FindByOrderIDsFunc func(ctx context.Context, orderIDs []uint) ([]domain.OrderStatusHistory, error)
}

func (m *mockStatusHistoryReader) FindByOrderIDs(ctx context.Context, orderIDs []uint) ([]domain.OrderStatusHistory, error) {
	return m.FindByOrderIDsFunc(ctx, orderIDs)
}

func emptyReaders() (*mockOrderItemReader, *mockStatusHistoryReader) {
	items := &mockOrderItemReader{
		FindByOrderIDsFunc: func(ctx context.Context, orderIDs []uint) ([]domain.OrderItem, error) {
			return nil, nil
		},
	}
	history := &mockStatusHistoryReader{
		FindByOrderIDsFunc: func(ctx context.Context, orderIDs []uint) ([]domain.OrderStatusHistory, error) {
			return nil, nil
		},
	}
	return items, history
}

func TestListOrdersPagination(t *testing.T) {
	var gotFilter repository.ListFilter
	lister := &mockOrderLister{
		ListFunc: func(ctx context.Context, f repository.ListFilter) ([]domain.Order, int, error) {
			gotFilter = f
			return []domain.Order{{ID: 1}, {ID: 2}}, 101, nil
		},
	}
	items, history := emptyReaders()
	svc := NewQueryService(lister, items, history)

	page, err := svc.ListOrders(context.Background(), ListOrdersQuery{Page: 3, Limit: 10})
	require.NoError(t, err)

	assert.Equal(t, 10, gotFilter.Limit)
	assert.Equal(t, 20, gotFilter.Offset)
	assert.Equal(t, 101, page.TotalCount)
	assert.Equal(t, 11, page.TotalPages)
	assert.Equal(t, 3, page.CurrentPage)
}

func TestListOrdersDefaults(t *testing.T) {
	var gotFilter repository.ListFilter
	lister := &mockOrderLister{
		ListFunc: func(ctx context.Context, f repository.ListFilter) ([]domain.Order, int, error) {
			gotFilter = f
			return nil, 0, nil
		},
	}
	items, history := emptyReaders()
	svc := NewQueryService(lister, items, history)

	page, err := svc.ListOrders(context.Background(), ListOrdersQuery{Page: 0, Limit: -1})
	require.NoError(t, err)

	assert.Equal(t, 50, gotFilter.Limit)
	assert.Equal(t, 0, gotFilter.Offset)
	assert.Equal(t, 1, page.CurrentPage)
	assert.Equal(t, 0, page.TotalPages)
}

func TestGetOrderEmbedsAggregates(t *testing.T) {
	lister := &mockOrderLister{
		FindByIDFunc: func(ctx context.Context, id uint) (*domain.Order, error) {
			return &domain.Order{ID: id, OrderStatus: domain.OrderStatusPending}, nil
		},
	}
	items := &mockOrderItemReader{
		FindByOrderIDsFunc: func(ctx context.Context, orderIDs []uint) ([]domain.OrderItem, error) {
			return []domain.OrderItem{
				{ID: 10, OrderID: 5, ItemName: "Espresso"},
				{ID: 11, OrderID: 5, ItemName: "Croissant"},
			}, nil
		},
	}
	history := &mockStatusHistoryReader{
		FindByOrderIDsFunc: func(ctx context.Context, orderIDs []uint) ([]domain.OrderStatusHistory, error) {
			return []domain.OrderStatusHistory{
				{ID: 1, OrderID: 5, NewStatus: domain.OrderStatusPending},
			}, nil
		},
	}
	svc := NewQueryService(lister, items, history)

	order, err := svc.GetOrder(context.Background(), 5)
	require.NoError(t, err)

	require.Len(t, order.Items, 2)
	assert.Equal(t, "Espresso", order.Items[0].ItemName)
	require.Len(t, order.StatusHistory, 1)
}

func TestListOrdersGroupsAggregatesByOrder(t *testing.T) {
	lister := &mockOrderLister{
		ListFunc: func(ctx context.Context, f repository.ListFilter) ([]domain.Order, int, error) {
			return []domain.Order{{ID: 1}, {ID: 2}}, 2, nil
		},
	}
	items := &mockOrderItemReader{
		FindByOrderIDsFunc: func(ctx context.Context, orderIDs []uint) ([]domain.OrderItem, error) {
			return []domain.OrderItem{
				{ID: 10, OrderID: 1},
				{ID: 11, OrderID: 2},
				{ID: 12, OrderID: 2},
			}, nil
		},
	}
	history := &mockStatusHistoryReader{
		FindByOrderIDsFunc: func(ctx context.Context, orderIDs []uint) ([]domain.OrderStatusHistory, error) {
			return nil, nil
		},
	}
	svc := NewQueryService(lister, items, history)

	page, err := svc.ListOrders(context.Background(), ListOrdersQuery{})
	require.NoError(t, err)

	require.Len(t, page.Orders, 2)
	assert.Len(t, page.Orders[0].Items, 1)
	assert.Len(t, page.Orders[1].Items, 2)
}
