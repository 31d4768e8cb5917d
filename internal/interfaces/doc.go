// Package interfaces documents the core abstractions used throughout the application.
//
// # Interface Categories
//
// ## Data Access Interfaces
//
//   - BookService: Catalog persistence (internal/services/interfaces.go)
//   - KeyStore: Hashed API key records (internal/auth/service.go)
//
// ## Validation Interfaces
//
//   - BookValidator: Field rules checked before a write (internal/services/interfaces.go)
//
// # Adding a New Book Store
//
// To back the catalog with another store:
//
//  1. Create sub-package: internal/database/<name>/
//
//  2. Implement every BookService method. Absence is not an error:
//     GetByISBN returns a nil book, Update and Delete return false, and
//     Create returns false when the ISBN is taken. Store failures wrap
//     database.ErrStorageUnavailable so handlers can answer 503.
//
//  3. Add compile-time check:
//
//     var _ services.BookService = (*Repository)(nil)
//
//  4. Pass it as RouterConfig.Books in entrypoint.go
//
// # Compile-Time Interface Checks
//
// All implementations should include compile-time checks to ensure they satisfy
// their interfaces. This catches missing methods at compile time rather than runtime:
//
//	var _ SomeInterface = (*MyImplementation)(nil)
//
// See checks.go for examples.
package interfaces
