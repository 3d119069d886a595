package services

import (
	"github.com/schoolhub/backend/internal/app/repositories"
	"github.com/schoolhub/backend/internal/pkg/filestorage"
	"github.com/schoolhub/backend/internal/pkg/httpclient"
)

// Services bundles all entity services for dependency wiring.
type Services struct {
	CampusService            *CampusService
	FeeTemplateService       *FeeTemplateService
	FeeService               *FeeService
	PaymentService           *PaymentService
	SyllabusService          *SyllabusService
	StudentRecordService     *StudentRecordService
	LeavePolicyService       *LeavePolicyService
	ParentFeedControlService *ParentFeedControlService
	ChatPreferenceService    *ChatPreferenceService
	DeviceService            *DeviceService
	QuizSessionService       *QuizSessionService
	AppBuildService          *AppBuildService
	GeoService               *GeoService
}

// NewServices wires all services to their repositories and collaborators.
func NewServices(repos *repositories.Repositories, storage filestorage.Storage, geoClient *httpclient.Client, geoBaseURL string) *Services {
	return &Services{
		CampusService:            NewCampusService(repos.CampusRepository),
		FeeTemplateService:       NewFeeTemplateService(repos.FeeTemplateRepository),
		FeeService:               NewFeeService(repos.FeeRepository),
		PaymentService:           NewPaymentService(repos.PaymentRepository, repos.FeeRepository),
		SyllabusService:          NewSyllabusService(repos.SyllabusRepository),
		StudentRecordService:     NewStudentRecordService(repos.StudentRecordRepository),
		LeavePolicyService:       NewLeavePolicyService(repos.LeavePolicyRepository),
		ParentFeedControlService: NewParentFeedControlService(repos.ParentFeedControlRepository),
		ChatPreferenceService:    NewChatPreferenceService(repos.ChatPreferenceRepository),
		DeviceService:            NewDeviceService(repos.DeviceRepository),
		QuizSessionService:       NewQuizSessionService(repos.QuizSessionRepository),
		AppBuildService:          NewAppBuildService(repos.AppBuildRepository, storage),
		GeoService:               NewGeoService(geoClient, geoBaseURL),
	}
}
