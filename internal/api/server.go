package api

import (
	"github.com/olenak/lingocards/internal/auth"
	"github.com/olenak/lingocards/internal/services"
)

// Server holds the HTTP surface's dependencies
type Server struct {
	AuthService       services.AuthService
	CollectionService services.CollectionService
	FlashcardService  services.FlashcardService
	ShareService      services.ShareService
	StudyService      services.StudyService
	StatsService      services.StatsService
	DictionaryService services.DictionaryService
	MediaService      services.MediaService

	JWT      *auth.JWTManager
	MediaDir string
	DevMode  bool
}
