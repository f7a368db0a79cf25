package handler

const (
	// BaseLayout is the default path for layout templates.
	BaseLayout = "layouts/base"

	// RootPath is the root path the route group.
	RootPath = "/"

	// RouterRootPath is the path of a group's own root.
	RouterRootPath = "/"

	// ErrNilACDFatalLogMsg is used if app or cfg or shell var pointer is nil.
	ErrNilACDFatalLogMsg = "app, cfg or shell is nil"

	// NoticeQuery carries one-shot success messages across redirects.
	NoticeQuery = "notice"
	// ErrorQuery carries one-shot error messages across redirects.
	ErrorQuery = "error"
)
