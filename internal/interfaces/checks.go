package interfaces

// This file contains compile-time interface implementation checks.
// These ensure that concrete types satisfy their interfaces at compile time,
// catching missing methods before runtime.

import (
	"github.com/mrlokans/library/internal/auth"
	"github.com/mrlokans/library/internal/database/apikeys"
	"github.com/mrlokans/library/internal/database/books"
	"github.com/mrlokans/library/internal/services"
	"github.com/mrlokans/library/internal/validation"
)

// =============================================================================
// Data Access Layer
// =============================================================================

// BookService implementations
var _ services.BookService = (*books.Repository)(nil)

// KeyStore implementations
var _ auth.KeyStore = (*apikeys.Repository)(nil)

// =============================================================================
// Validation
// =============================================================================

// BookValidator implementations
var _ services.BookValidator = (*validation.Validator)(nil)
