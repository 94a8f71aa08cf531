package dashboard

import (
	"sort"
	"time"

	"github.com/ipang84/retailmaster/internal/domain"
)

const defaultTopSellers = 5

type DailySales struct {
	Date       string       `json:"date"`
	OrderCount int          `json:"orderCount"`
	Gross      domain.Cents `json:"gross"`
	Refunds    domain.Cents `json:"refunds"`
	Net        domain.Cents `json:"net"`
}

type InventoryValuation struct {
	Products    int          `json:"products"`
	Units       int          `json:"units"`
	CostValue   domain.Cents `json:"costValue"`
	RetailValue domain.Cents `json:"retailValue"`
}

type TopSeller struct {
	ProductID string       `json:"productId"`
	Name      string       `json:"name"`
	Units     int          `json:"units"`
	Revenue   domain.Cents `json:"revenue"`
}

type LowStockItem struct {
	ProductID string `json:"productId"`
	Name      string `json:"name"`
	Image     string `json:"image,omitempty"`
	Inventory int    `json:"inventory"`
	MinStock  int    `json:"minStock"`
}

// TodaysSales totals the sale-status orders placed on now's calendar day in loc.
func TodaysSales(orders []domain.Order, now time.Time, loc *time.Location) DailySales {
	if loc == nil {
		loc = time.Local
	}
	local := now.In(loc)
	dayStart := time.Date(local.Year(), local.Month(), local.Day(), 0, 0, 0, 0, loc)
	dayEnd := dayStart.AddDate(0, 0, 1)

	sales := DailySales{Date: dayStart.Format(time.DateOnly)}
	for _, o := range orders {
		if !o.Status.CountsAsSale() {
			continue
		}
		if o.Timestamp.Before(dayStart) || !o.Timestamp.Before(dayEnd) {
			continue
		}
		sales.OrderCount++
		sales.Gross += o.Total
		sales.Refunds += o.RefundedTotal()
	}
	sales.Net = sales.Gross - sales.Refunds
	return sales
}

// InventoryValue prices on-hand stock at cost and at retail. Negative stock counts as zero.
func InventoryValue(products []domain.Product) InventoryValuation {
	v := InventoryValuation{Products: len(products)}
	for _, p := range products {
		units := max(p.Inventory, 0)
		v.Units += units
		v.CostValue += p.Cost * domain.Cents(units)
		v.RetailValue += p.Price * domain.Cents(units)
	}
	return v
}

// TopSellers ranks products by net units sold (sold minus refunded) over sale-status orders.
// Ties go to higher revenue, then name. n <= 0 uses the default of 5.
func TopSellers(orders []domain.Order, n int) []TopSeller {
	if n <= 0 {
		n = defaultTopSellers
	}

	byProduct := make(map[string]*TopSeller)
	entry := func(item domain.OrderItem) *TopSeller {
		id := item.ProductID
		if id == "" {
			id = item.Name
		}
		s, ok := byProduct[id]
		if !ok {
			s = &TopSeller{ProductID: id, Name: item.Name}
			byProduct[id] = s
		}
		if s.Name == "" {
			s.Name = item.Name
		}
		return s
	}

	for _, o := range orders {
		if !o.Status.CountsAsSale() {
			continue
		}
		for _, item := range o.Items {
			s := entry(item)
			s.Units += item.Quantity
			s.Revenue += item.Price * domain.Cents(item.Quantity)
		}
		for _, r := range o.Refunds {
			for _, item := range r.Items {
				s := entry(item)
				s.Units -= item.Quantity
				s.Revenue -= item.Price * domain.Cents(item.Quantity)
			}
		}
	}

	ranked := make([]TopSeller, 0, len(byProduct))
	for _, s := range byProduct {
		if s.Units > 0 {
			ranked = append(ranked, *s)
		}
	}
	sort.Slice(ranked, func(i, j int) bool {
		a, b := ranked[i], ranked[j]
		if a.Units != b.Units {
			return a.Units > b.Units
		}
		if a.Revenue != b.Revenue {
			return a.Revenue > b.Revenue
		}
		return a.Name < b.Name
	})
	if len(ranked) > n {
		ranked = ranked[:n]
	}
	return ranked
}

// LowStock lists products at or below their minimum stock level, lowest inventory first.
// Products without a minimum (MinStock <= 0) are never low.
func LowStock(products []domain.Product) []LowStockItem {
	var items []LowStockItem
	for _, p := range products {
		if p.MinStock <= 0 || p.Inventory > p.MinStock {
			continue
		}
		items = append(items, LowStockItem{
			ProductID: p.ID,
			Name:      p.Name,
			Image:     p.Image,
			Inventory: p.Inventory,
			MinStock:  p.MinStock,
		})
	}
	sort.SliceStable(items, func(i, j int) bool {
		if items[i].Inventory != items[j].Inventory {
			return items[i].Inventory < items[j].Inventory
		}
		return items[i].Name < items[j].Name
	})
	return items
}
