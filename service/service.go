package service

import (
	"safetrack/config"
	"safetrack/pkg/alert"
	"safetrack/pkg/logger"
	"safetrack/pkg/mailer"
	"safetrack/pkg/token"
	"safetrack/storage"
)

type IServiceManager interface {
	Auth() AuthService
	Driver() DriverService
	Vehicle() VehicleService
	Event() EventService
	Rule() RuleService
	User() UserService
	Notification() NotificationService
	Analytics() AnalyticsService
}

type service struct {
	authService         AuthService
	driverService       DriverService
	vehicleService      VehicleService
	eventService        EventService
	ruleService         RuleService
	userService         UserService
	notificationService NotificationService
	analyticsService    AnalyticsService
}

func New(stg storage.IStorage, tokens *token.Manager, mail mailer.Mailer, alerts alert.Notifier, cfg config.Config, log logger.ILogger) IServiceManager {
	notificationService := NewNotificationService(stg, log)
	return &service{
		authService:         NewAuthService(stg, tokens, mail, cfg, log),
		driverService:       NewDriverService(stg, log),
		vehicleService:      NewVehicleService(stg, log),
		eventService:        NewEventService(stg, notificationService, alerts, log),
		ruleService:         NewRuleService(stg, log),
		userService:         NewUserService(stg, log),
		notificationService: notificationService,
		analyticsService:    NewAnalyticsService(stg, log),
	}
}

func (s *service) Auth() AuthService                 { return s.authService }
func (s *service) Driver() DriverService             { return s.driverService }
func (s *service) Vehicle() VehicleService           { return s.vehicleService }
func (s *service) Event() EventService               { return s.eventService }
func (s *service) Rule() RuleService                 { return s.ruleService }
func (s *service) User() UserService                 { return s.userService }
func (s *service) Notification() NotificationService { return s.notificationService }
func (s *service) Analytics() AnalyticsService       { return s.analyticsService }
