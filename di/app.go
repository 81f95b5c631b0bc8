package di

import (
	"hotelier/internal/domains/reconciliation/scheduler"
	"hotelier/transport/http"
)

// App bundles the long-running pieces of the service: the HTTP server
// and the nightly reconciliation scheduler.
type App struct {
	HTTP      *http.HTTP
	Scheduler *scheduler.Scheduler
}
