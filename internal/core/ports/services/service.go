package services

// ServiceContainer holds instances of all the application services. Handlers
// receive this container and pick the facades they need.
type ServiceContainer struct {
	Account     AccountSvcFacade
	Journal     JournalSvcFacade
	Period      PeriodSvcFacade
	Posting     PostingSvcFacade
	Reporting   ReportingSvcFacade
	User        UserSvcFacade
	Token       TokenSvcFacade
	GoogleOAuth GoogleOAuthSvcFacade
}
