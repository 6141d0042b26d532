package response

import (
	"storefront-admin/internal/aggregate"
	"storefront-admin/internal/data/entity"
)

type OrderStats struct {
	Count             int                        `json:"count"`
	Revenue           float64                    `json:"revenue"`
	AverageOrderValue float64                    `json:"average_order_value"`
	ByStatus          map[entity.OrderStatus]int `json:"by_status"`
}

type DashboardResponse struct {
	Orders      OrderStats              `json:"orders"`
	Reviews     ReviewStats             `json:"reviews"`
	UsersByRole map[entity.UserRole]int `json:"users_by_role"`
}

func OrderStatsToResponse(stats aggregate.OrderStats) OrderStats {
	return OrderStats{
		Count:             stats.Count,
		Revenue:           aggregate.RoundHalfUp(stats.Revenue, 2),
		AverageOrderValue: aggregate.RoundHalfUp(stats.AverageOrderValue, 2),
		ByStatus:          stats.ByStatus,
	}
}
