package services

import (
	"time"

	"go.uber.org/zap"

	"github.com/shelfwatch/shelfwatch/cooldown"
	"github.com/shelfwatch/shelfwatch/eventlog"
	"github.com/shelfwatch/shelfwatch/push"
)

// Services holds all service instances
type Services struct {
	Alert  AlertService
	Report ReportService
}

// Deps are the external collaborators the services compose. Notifier may
// be nil when push delivery is unconfigured.
type Deps struct {
	Store      eventlog.Store
	Notifier   push.Client
	Gate       *cooldown.Gate
	Logger     *zap.Logger
	FetchLimit int
	TargetURL  string
}

// NewServices creates and initializes all service instances
func NewServices(deps Deps) *Services {
	return &Services{
		Alert:  NewAlertService(deps.Store, deps.Notifier, deps.Gate, deps.Logger, deps.TargetURL),
		Report: NewReportService(deps.Store, deps.FetchLimit),
	}
}

// nowFunc is replaced in tests to pin the clock.
type nowFunc func() time.Time
