package services

// ServiceContainer holds instances of all the application services. It is the
// main entry point for accessing service functionality from the handlers.
type ServiceContainer struct {
	Country CountrySvcFacade
	Refresh RefreshSvcFacade
	Image   ImageSvcFacade
}
