package api

import (
	"Inkstone/internal/api/middleware"
	"Inkstone/internal/pkg/logger"
	"Inkstone/internal/service"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
)

func SetupRouter(group *HandlersGroup) *gin.Engine {
	r := gin.New()
	_ = r.SetTrustedProxies([]string{"localhost"})

	// TraceId & Logger & CORS
	r.Use(middleware.TraceMiddleware())
	r.Use(middleware.AuditMiddleware())
	r.Use(middleware.CORSMiddleware())
	logger.SetupGin(r)

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status":    "ok",
			"message":   "Inkstone API 运行中",
			"timestamp": time.Now().Format(time.RFC3339),
		})
	})

	apiGroup := r.Group("/api")
	{
		userGroup := apiGroup.Group("/users")
		{
			// 无需登录即可访问的接口
			userGroup.POST("/register", group.UserHandler.Register)
			userGroup.POST("/login", group.UserHandler.Login)

			authOptGroup := userGroup.Group("")
			authOptGroup.Use(middleware.AuthOptionalMiddleware())
			{
				authOptGroup.GET("", group.UserHandler.GetAllUsers)
				authOptGroup.GET("/:id", group.UserHandler.GetUserById)
			}

			authGroup := userGroup.Group("")
			authGroup.Use(middleware.AuthMiddleware())
			{
				authGroup.POST("/logout", group.UserHandler.Logout)
				authGroup.GET("/info", group.UserHandler.GetUserInfo)
				authGroup.PUT("/password", group.UserHandler.UpdatePassword)
				authGroup.PUT("/profile", group.UserHandler.UpdateProfile)
				authGroup.DELETE("/:id", group.UserHandler.DeleteUser)
			}
		}

		noteGroup := apiGroup.Group("/notes")
		{
			authOptGroup := noteGroup.Group("")
			authOptGroup.Use(middleware.AuthOptionalMiddleware())
			{
				authOptGroup.GET("", group.NoteHandler.GetNotes)
				authOptGroup.GET("/:id", group.NoteHandler.GetNoteById)
			}

			authGroup := noteGroup.Group("")
			authGroup.Use(middleware.AuthMiddleware())
			{
				authGroup.POST("", group.NoteHandler.CreateNote)
				authGroup.PUT("/:id", group.NoteHandler.UpdateNote)
				authGroup.DELETE("/:id", group.NoteHandler.DeleteNote)
				authGroup.POST("/:id/like", group.NoteHandler.ToggleLike)
				authGroup.POST("/:id/collect", group.NoteHandler.ToggleCollect)
			}
		}

		folderGroup := apiGroup.Group("/folders")
		folderGroup.Use(middleware.AuthMiddleware())
		{
			folderGroup.GET("", group.FolderHandler.GetFolders)
			folderGroup.POST("", group.FolderHandler.CreateFolder)
			folderGroup.PUT("/:id", group.FolderHandler.RenameFolder)
			folderGroup.DELETE("/:id", group.FolderHandler.DeleteFolder)
			folderGroup.GET("/:id/notes", group.FolderHandler.GetFolderNotes)
			folderGroup.POST("/:id/notes", group.FolderHandler.AddNote)
			folderGroup.DELETE("/:id/notes/:noteId", group.FolderHandler.RemoveNote)
		}

		socialGroup := apiGroup.Group("/social")
		{
			authOptGroup := socialGroup.Group("")
			authOptGroup.Use(middleware.AuthOptionalMiddleware())
			{
				authOptGroup.GET("/comments", group.SocialHandler.GetComments)
			}

			authGroup := socialGroup.Group("")
			authGroup.Use(middleware.AuthMiddleware())
			{
				authGroup.POST("/follow", group.SocialHandler.ToggleFollow)
				authGroup.GET("/following", group.SocialHandler.GetFollowing)
				authGroup.GET("/followers", group.SocialHandler.GetFollowers)
				authGroup.POST("/comments", group.SocialHandler.CreateComment)
				authGroup.POST("/comments/like", group.SocialHandler.ToggleCommentLike)
			}
		}

		uploadGroup := apiGroup.Group("/upload")
		uploadGroup.Use(middleware.AuthMiddleware())
		{
			// 请求体上限在文件大小限制外预留 1MB 的 multipart 开销
			uploadGroup.POST("/image",
				middleware.BodyLimitMiddleware(service.MaxImageSize+1<<20), group.UploadHandler.UploadImage)
			uploadGroup.POST("/video",
				middleware.BodyLimitMiddleware(service.MaxVideoSize+1<<20), group.UploadHandler.UploadVideo)
			uploadGroup.GET("/credential", group.UploadHandler.GetUploadCredential)
		}
	}

	return r
}
