package service

import (
	"context"
	"time"

	"brewline/internal/domain"
	"brewline/internal/order/repository"
)

type OrderLister interface {
	FindByID(ctx context.Context, id uint) (*domain.Order, error)
	List(ctx context.Context, f repository.ListFilter) ([]domain.Order, int, error)
	ListByPhone(ctx context.Context, phone string) ([]domain.Order, error)
}

type OrderItemReader interface {
	FindByOrderIDs(ctx context.Context, orderIDs []uint) ([]domain.OrderItem, error)
}

type StatusHistoryReader interface {
	FindByOrderIDs(ctx context.Context, orderIDs []uint) ([]domain.OrderStatusHistory, error)
}

type ListOrdersQuery struct {
	Page      int
	Limit     int
	Status    string
	Phone     string
	StartDate *time.Time
	EndDate   *time.Time
}

type OrderPage struct {
	Orders      []domain.Order
	TotalCount  int
	TotalPages  int
	CurrentPage int
}

// QueryService assembles order aggregates (order + line items + status
// history) for the read endpoints.
type QueryService struct {
	orderRepo   OrderLister
	itemRepo    OrderItemReader
	historyRepo StatusHistoryReader
}

func NewQueryService(orderRepo OrderLister, itemRepo OrderItemReader, historyRepo StatusHistoryReader) *QueryService {
	return &QueryService{
		orderRepo:   orderRepo,
		itemRepo:    itemRepo,
		historyRepo: historyRepo,
	}
}

func (s *QueryService) GetOrder(ctx context.Context, id uint) (*domain.Order, error) {
	order, err := s.orderRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	orders := []domain.Order{*order}
	if err := s.embedAggregates(ctx, orders); err != nil {
		return nil, err
	}

	return &orders[0], nil
}

func (s *QueryService) ListOrders(ctx context.Context, q ListOrdersQuery) (*OrderPage, error) {
	page := q.Page
	if page < 1 {
		page = 1
	}
	limit := q.Limit
	if limit < 1 {
		limit = 50
	}

	orders, total, err := s.orderRepo.List(ctx, repository.ListFilter{
		Status:    q.Status,
		Phone:     q.Phone,
		StartDate: q.StartDate,
		EndDate:   q.EndDate,
		Limit:     limit,
		Offset:    (page - 1) * limit,
	})
	if err != nil {
		return nil, err
	}

	if err := s.embedAggregates(ctx, orders); err != nil {
		return nil, err
	}

	totalPages := (total + limit - 1) / limit

	return &OrderPage{
		Orders:      orders,
		TotalCount:  total,
		TotalPages:  totalPages,
		CurrentPage: page,
	}, nil
}

func (s *QueryService) ListOrdersByPhone(ctx context.Context, phone string) ([]domain.Order, error) {
	orders, err := s.orderRepo.ListByPhone(ctx, phone)
	if err != nil {
		return nil, err
	}

	if err := s.embedAggregates(ctx, orders); err != nil {
		return nil, err
	}

	return orders, nil
}

func (s *QueryService) embedAggregates(ctx context.Context, orders []domain.Order) error {
	if len(orders) == 0 {
		return nil
	}

	ids := make([]uint, len(orders))
	for i, o := range orders {
		ids[i] = o.ID
	}

	items, err := s.itemRepo.FindByOrderIDs(ctx, ids)
	if err != nil {
		return err
	}

	history, err := s.historyRepo.FindByOrderIDs(ctx, ids)
	if err != nil {
		return err
	}

	itemsByOrder := make(map[uint][]domain.OrderItem, len(orders))
	for _, item := range items {
		itemsByOrder[item.OrderID] = append(itemsByOrder[item.OrderID], item)
	}

	historyByOrder := make(map[uint][]domain.OrderStatusHistory, len(orders))
	for _, h := range history {
		historyByOrder[h.OrderID] = append(historyByOrder[h.OrderID], h)
	}

	for i := range orders {
		orders[i].Items = itemsByOrder[orders[i].ID]
		orders[i].StatusHistory = historyByOrder[orders[i].ID]
	}

	return nil
}
