package handler

const (
	// RouterRootPath is the root path of a route group.
	RouterRootPath = "/"

	// IDParam is the route parameter holding numeric ids.
	IDParam = "id"

	// ErrNilACDFatalLogMsg is used if router, cfg or auth service is nil.
	ErrNilACDFatalLogMsg = "router, cfg or auth service is nil"
)
