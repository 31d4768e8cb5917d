// Package database provides the data access layer for the application.
//
// # Architecture
//
// The database layer is organized into domain-specific sub-packages:
//
//	database/
//	├── database.go      # Connection setup, pool limits, schema initialization
//	├── errors.go        # Storage fault sentinel and constraint detection
//	├── books/           # Book catalog CRUD and title search
//	├── apikeys/         # Stored API key credentials
//	└── audit/           # Audit trail of catalog mutations
//
// # Using Sub-packages
//
// Each sub-package provides a Repository type built on a *Database:
//
//	db, err := database.NewDatabase("./library.db")
//
//	booksRepo := books.NewRepository(db)
//	created, err := booksRepo.Create(ctx, &book)
//
// Repositories obtain a fresh session per call through Database.Conn, so a
// single repository value is shared by all request handlers.
//
// # Errors
//
// Absence is never an error: lookups return nil and mutations return false.
// Driver failures are wrapped with ErrStorageUnavailable:
//
//	if errors.Is(err, database.ErrStorageUnavailable) { ... }
package database
