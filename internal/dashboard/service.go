package dashboard

import (
	"context"
	"fmt"
	"time"

	"github.com/ipang84/retailmaster/internal/domain"
	"github.com/jonboulle/clockwork"
)

// Summary is everything the dashboard screen shows.
type Summary struct {
	GeneratedAt time.Time          `json:"generatedAt"`
	Today       DailySales         `json:"today"`
	Inventory   InventoryValuation `json:"inventory"`
	TopSellers  []TopSeller        `json:"topSellers"`
	LowStock    []LowStockItem     `json:"lowStock"`
}

type Service struct {
	products domain.ProductCatalog
	orders   domain.OrderHistory
	clock    clockwork.Clock
	loc      *time.Location
	top      int
}

// NewService creates the dashboard service. loc decides where "today" starts; nil means time.Local.
func NewService(products domain.ProductCatalog, orders domain.OrderHistory, clock clockwork.Clock, loc *time.Location, top int) *Service {
	if loc == nil {
		loc = time.Local
	}
	return &Service{products: products, orders: orders, clock: clock, loc: loc, top: top}
}

func (s *Service) Summary(ctx context.Context) (Summary, error) {
	products, err := s.products.ListProducts(ctx)
	if err != nil {
		return Summary{}, fmt.Errorf("dashboard products: %w", err)
	}
	orders, err := s.orders.ListOrders(ctx)
	if err != nil {
		return Summary{}, fmt.Errorf("dashboard orders: %w", err)
	}

	now := s.clock.Now()
	return Summary{
		GeneratedAt: now.In(s.loc),
		Today:       TodaysSales(orders, now, s.loc),
		Inventory:   InventoryValue(products),
		TopSellers:  TopSellers(orders, s.top),
		LowStock:    LowStock(products),
	}, nil
}
