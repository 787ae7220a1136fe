package store

import (
	"context"
	"database/sql"
	"fmt"
)

type seedTable struct {
	insert string
	rows   [][]any
}

// Fixture rows, inserted in foreign-key order. Order 10249 belongs to
// employee 3 so the Orders -> Employees constraint holds under
// foreign_keys=ON.
var seedTables = []seedTable{
	{
		insert: `INSERT OR IGNORE INTO Categories VALUES (?, ?, ?)`,
		rows: [][]any{
			{1, "Beverages", "Soft drinks, coffees, teas, beers, and ales"},
			{2, "Condiments", "Sweet and savory sauces, relishes, spreads, and seasonings"},
			{3, "Dairy Products", "Cheeses"},
			{4, "Grains/Cereals", "Breads, crackers, pasta, and cereal"},
			{5, "Seafood", "Seaweed and fish"},
		},
	},
	{
		insert: `INSERT OR IGNORE INTO Suppliers VALUES (?, ?, ?, ?)`,
		rows: [][]any{
			{1, "Exotic Liquids", "Charlotte Cooper", "UK"},
			{2, "New Orleans Cajun Delights", "Shelley Burke", "USA"},
			{3, "Tokyo Traders", "Yoshi Nagase", "Japan"},
			{4, "Nord-Ost-Fisch", "Sven Petersen", "Germany"},
			{5, "Formaggi Fortini", "Elio Rossi", "Italy"},
		},
	},
	{
		insert: `INSERT OR IGNORE INTO Products VALUES (?, ?, ?, ?, ?, ?)`,
		rows: [][]any{
			{1, "Chai", 1, 1, 18.0, 39},
			{2, "Chang", 1, 1, 19.0, 17},
			{3, "Aniseed Syrup", 2, 1, 10.0, 13},
			{4, "Chef Anton Cajun Seasoning", 2, 2, 22.0, 53},
			{5, "Gumbo Mix", 2, 2, 21.35, 0},
			{6, "Mozzarella di Giovanni", 3, 5, 34.8, 14},
			{7, "Gorgonzola Telino", 3, 5, 12.5, 0},
			{8, "Mascarpone Fabioli", 3, 5, 32.0, 9},
			{9, "Røgede sild", 5, 4, 9.65, 5},
			{10, "Spegesild", 5, 4, 12.0, 95},
		},
	},
	{
		insert: `INSERT OR IGNORE INTO Customers VALUES (?, ?, ?, ?, ?)`,
		rows: [][]any{
			{"ALFKI", "Alfreds Futterkiste", "Maria Anders", "Germany", "Berlin"},
			{"ANATR", "Ana Trujillo Emparedados", "Ana Trujillo", "Mexico", "México D.F."},
			{"BERGS", "Berglunds snabbköp", "Christina Berglund", "Sweden", "Luleå"},
			{"BLAUS", "Blauer See Delikatessen", "Hanna Moos", "Germany", "Mannheim"},
			{"BOLID", "Bólido Comidas", "Martín Sommer", "Spain", "Madrid"},
		},
	},
	{
		insert: `INSERT OR IGNORE INTO Employees VALUES (?, ?, ?, ?, ?, ?)`,
		rows: [][]any{
			{1, "Nancy", "Davolio", "Sales Representative", "1992-05-01", "USA"},
			{2, "Andrew", "Fuller", "Vice President, Sales", "1992-08-14", "USA"},
			{3, "Janet", "Leverling", "Sales Representative", "1992-04-01", "USA"},
			{4, "Margaret", "Peacock", "Sales Representative", "1993-05-03", "USA"},
			{5, "Steven", "Buchanan", "Sales Manager", "1993-10-17", "UK"},
		},
	},
	{
		insert: `INSERT OR IGNORE INTO Shippers VALUES (?, ?, ?)`,
		rows: [][]any{
			{1, "Speedy Express", "(503) 555-9831"},
			{2, "United Package", "(503) 555-3199"},
			{3, "Federal Shipping", "(503) 555-9931"},
		},
	},
	{
		insert: `INSERT OR IGNORE INTO Orders VALUES (?, ?, ?, ?, ?, ?)`,
		rows: [][]any{
			{10248, "ALFKI", 5, "1996-07-04", 3, "Germany"},
			{10249, "BERGS", 3, "1996-07-05", 1, "Sweden"},
			{10250, "BLAUS", 4, "1996-07-08", 2, "Germany"},
		},
	},
	{
		insert: `INSERT OR IGNORE INTO OrderDetails VALUES (?, ?, ?, ?, ?)`,
		rows: [][]any{
			{10248, 1, 18.0, 12, 0.0},
			{10248, 2, 19.0, 10, 0.0},
			{10249, 3, 10.0, 5, 0.0},
			{10250, 4, 22.0, 15, 0.15},
		},
	},
	{
		insert: `INSERT OR IGNORE INTO Region VALUES (?, ?)`,
		rows: [][]any{
			{1, "Eastern"},
			{2, "Western"},
			{3, "Northern"},
			{4, "Southern"},
		},
	},
	{
		insert: `INSERT OR IGNORE INTO Territories VALUES (?, ?, ?)`,
		rows: [][]any{
			{"01581", "Westboro", 1},
			{"01730", "Bedford", 1},
			{"98004", "Bellevue", 2},
			{"98052", "Redmond", 2},
			{"03049", "Hollis", 3},
			{"29202", "Columbia", 4},
		},
	},
	{
		insert: `INSERT OR IGNORE INTO EmployeeTerritories VALUES (?, ?)`,
		rows: [][]any{
			{1, "01581"},
			{1, "01730"},
			{2, "98004"},
			{3, "98052"},
			{4, "03049"},
			{5, "29202"},
		},
	},
}

func ensureSeed(ctx context.Context, db *sql.DB) error {
	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin seed transaction: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	for _, table := range seedTables {
		stmt, err := tx.PrepareContext(ctx, table.insert)
		if err != nil {
			return fmt.Errorf("prepare seed insert: %w", err)
		}
		for _, row := range table.rows {
			if _, err := stmt.ExecContext(ctx, row...); err != nil {
				_ = stmt.Close()
				return fmt.Errorf("seed row: %w", err)
			}
		}
		if err := stmt.Close(); err != nil {
			return fmt.Errorf("close seed statement: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit seed: %w", err)
	}
	return nil
}
