package tools

import (
	"context"
	"fmt"
	"math"
)

// Revenue for an order line is UnitPrice * Quantity * (1 - Discount). Both
// rollups order by revenue descending with a name tie-break so equal-revenue
// rows always come back in the same order.
const salesByCategorySQL = `
SELECT
    c.CategoryName,
    COUNT(od.OrderID) AS TotalOrders,
    SUM(od.Quantity) AS TotalQuantity,
    SUM(od.UnitPrice * od.Quantity * (1 - od.Discount)) AS TotalRevenue,
    AVG(od.UnitPrice * od.Quantity * (1 - od.Discount)) AS AvgOrderValue
FROM OrderDetails od
JOIN Products p ON od.ProductID = p.ProductID
JOIN Categories c ON p.CategoryID = c.CategoryID
GROUP BY c.CategoryName
ORDER BY TotalRevenue DESC, c.CategoryName`

// Products without order lines stay in the result with zero totals via the
// LEFT JOIN and COALESCE.
const topProductsSQL = `
SELECT
    p.ProductName,
    c.CategoryName,
    COALESCE(SUM(od.Quantity), 0) AS TotalQuantitySold,
    COALESCE(SUM(od.UnitPrice * od.Quantity * (1 - od.Discount)), 0) AS TotalRevenue
FROM Products p
JOIN Categories c ON p.CategoryID = c.CategoryID
LEFT JOIN OrderDetails od ON p.ProductID = od.ProductID
GROUP BY p.ProductName, c.CategoryName
ORDER BY TotalRevenue DESC, p.ProductName
LIMIT ?`

const defaultTopProductsLimit = 10

func (r *Registry) salesByCategory(ctx context.Context, _ map[string]any) (string, bool) {
	result, err := r.querier.Query(ctx, salesByCategorySQL)
	if err != nil {
		return fmt.Sprintf("Error analyzing sales: %v", err), true
	}
	text, err := encodeJSON(result.Rows)
	if err != nil {
		return fmt.Sprintf("Error analyzing sales: %v", err), true
	}
	return text, false
}

func (r *Registry) topProducts(ctx context.Context, args map[string]any) (string, bool) {
	limit := defaultTopProductsLimit
	if raw, ok := args["limit"]; ok {
		value, err := intArg(raw)
		if err != nil {
			return fmt.Sprintf("Error getting top products: %v", err), true
		}
		limit = value
	}
	if limit < 0 {
		return "Error getting top products: limit must not be negative", true
	}

	result, err := r.querier.Query(ctx, topProductsSQL, limit)
	if err != nil {
		return fmt.Sprintf("Error getting top products: %v", err), true
	}
	text, err := encodeJSON(result.Rows)
	if err != nil {
		return fmt.Sprintf("Error getting top products: %v", err), true
	}
	return text, false
}

// intArg accepts the numeric shapes a JSON decoder can hand over for an
// integer argument.
func intArg(raw any) (int, error) {
	switch value := raw.(type) {
	case float64:
		if value != math.Trunc(value) {
			return 0, fmt.Errorf("limit must be an integer, got %v", value)
		}
		return int(value), nil
	case int:
		return value, nil
	case int64:
		return int(value), nil
	default:
		return 0, fmt.Errorf("limit must be a number, got %T", raw)
	}
}
