package wire

import (
	"Inkstone/internal/api"
	"Inkstone/internal/api/handler"
	"Inkstone/internal/job"
	"Inkstone/internal/pkg/cron"
	"Inkstone/internal/repository"
	"Inkstone/internal/service"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// ApplicationContainer 封装了应用运行所需的所有顶级组件
type ApplicationContainer struct {
	Router  *gin.Engine
	DB      *gorm.DB
	CronMgr *cron.Manager
}

func BuildApplication(db *gorm.DB) (*ApplicationContainer, error) {
	userRepo := repository.NewUserRepo(db)
	noteRepo := repository.NewNoteRepo(db)
	noteActionRepo := repository.NewNoteActionRepo(db)
	folderRepo := repository.NewFolderRepo(db)
	followRepo := repository.NewFollowRepo(db)
	commentRepo := repository.NewCommentRepo(db)
	mediaRefRepo := repository.NewMediaRefRepo(db)

	userService := service.NewUserService(userRepo)
	noteService := service.NewNoteService(noteRepo, noteActionRepo)
	noteActionService := service.NewNoteActionService(noteRepo, noteActionRepo)
	folderService := service.NewFolderService(folderRepo, noteRepo)
	socialService := service.NewSocialService(followRepo, commentRepo, userRepo, noteRepo)
	uploadService := service.NewUploadService()

	handlers := &api.HandlersGroup{
		UserHandler:   handler.NewUserHandler(userService),
		NoteHandler:   handler.NewNoteHandler(noteService, noteActionService),
		FolderHandler: handler.NewFolderHandler(folderService),
		SocialHandler: handler.NewSocialHandler(socialService),
		UploadHandler: handler.NewUploadHandler(uploadService),
	}

	router := api.SetupRouter(handlers)

	mediaSweeper := job.NewMediaSweeper(mediaRefRepo)
	cronMgr := cron.NewCronManager(mediaSweeper)

	return &ApplicationContainer{
		Router:  router,
		DB:      db,
		CronMgr: cronMgr,
	}, nil
}
