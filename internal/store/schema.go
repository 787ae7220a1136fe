package store

import (
	"context"
	"database/sql"
	"fmt"
)

// The eleven fixture tables. Statement order respects foreign key
// dependencies so a fresh file can be built in one pass.
var schemaStatements = []string{
	`CREATE TABLE IF NOT EXISTS Categories (
		CategoryID INTEGER PRIMARY KEY,
		CategoryName TEXT NOT NULL,
		Description TEXT
	)`,
	`CREATE TABLE IF NOT EXISTS Suppliers (
		SupplierID INTEGER PRIMARY KEY,
		CompanyName TEXT NOT NULL,
		ContactName TEXT,
		Country TEXT
	)`,
	`CREATE TABLE IF NOT EXISTS Products (
		ProductID INTEGER PRIMARY KEY,
		ProductName TEXT NOT NULL,
		CategoryID INTEGER,
		SupplierID INTEGER,
		UnitPrice REAL,
		UnitsInStock INTEGER,
		FOREIGN KEY (CategoryID) REFERENCES Categories(CategoryID),
		FOREIGN KEY (SupplierID) REFERENCES Suppliers(SupplierID)
	)`,
	`CREATE TABLE IF NOT EXISTS Customers (
		CustomerID TEXT PRIMARY KEY,
		CompanyName TEXT NOT NULL,
		ContactName TEXT,
		Country TEXT,
		City TEXT
	)`,
	`CREATE TABLE IF NOT EXISTS Employees (
		EmployeeID INTEGER PRIMARY KEY,
		FirstName TEXT NOT NULL,
		LastName TEXT NOT NULL,
		Title TEXT,
		HireDate DATE,
		Country TEXT
	)`,
	`CREATE TABLE IF NOT EXISTS Shippers (
		ShipperID INTEGER PRIMARY KEY,
		CompanyName TEXT NOT NULL,
		Phone TEXT
	)`,
	`CREATE TABLE IF NOT EXISTS Orders (
		OrderID INTEGER PRIMARY KEY,
		CustomerID TEXT,
		EmployeeID INTEGER,
		OrderDate DATE,
		ShipperID INTEGER,
		ShipCountry TEXT,
		FOREIGN KEY (CustomerID) REFERENCES Customers(CustomerID),
		FOREIGN KEY (EmployeeID) REFERENCES Employees(EmployeeID),
		FOREIGN KEY (ShipperID) REFERENCES Shippers(ShipperID)
	)`,
	`CREATE TABLE IF NOT EXISTS OrderDetails (
		OrderID INTEGER,
		ProductID INTEGER,
		UnitPrice REAL,
		Quantity INTEGER,
		Discount REAL,
		PRIMARY KEY (OrderID, ProductID),
		FOREIGN KEY (OrderID) REFERENCES Orders(OrderID),
		FOREIGN KEY (ProductID) REFERENCES Products(ProductID)
	)`,
	`CREATE TABLE IF NOT EXISTS Region (
		RegionID INTEGER PRIMARY KEY,
		RegionDescription TEXT NOT NULL
	)`,
	`CREATE TABLE IF NOT EXISTS Territories (
		TerritoryID TEXT PRIMARY KEY,
		TerritoryDescription TEXT NOT NULL,
		RegionID INTEGER,
		FOREIGN KEY (RegionID) REFERENCES Region(RegionID)
	)`,
	`CREATE TABLE IF NOT EXISTS EmployeeTerritories (
		EmployeeID INTEGER,
		TerritoryID TEXT,
		PRIMARY KEY (EmployeeID, TerritoryID),
		FOREIGN KEY (EmployeeID) REFERENCES Employees(EmployeeID),
		FOREIGN KEY (TerritoryID) REFERENCES Territories(TerritoryID)
	)`,
}

func ensureSchema(ctx context.Context, db *sql.DB) error {
	for _, statement := range schemaStatements {
		if _, err := db.ExecContext(ctx, statement); err != nil {
			return fmt.Errorf("create table: %w", err)
		}
	}
	return nil
}
