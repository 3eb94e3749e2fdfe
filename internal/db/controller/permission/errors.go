package permission

import "errors"

// ErrInvalidPermission is returned for a module/action pair outside the catalog.
var ErrInvalidPermission = errors.New("invalid permission: unknown module/action pair")
