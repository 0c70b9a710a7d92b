package routes

import (
	"TeamChat/controllers"
	"TeamChat/middlewares"

	"github.com/gin-gonic/gin"
)

func RegisterRoutes(r *gin.Engine, tokens middlewares.TokenValidator) {
	auth := middlewares.AuthMiddleware(tokens)

	// Public routes
	r.GET("/health", controllers.Health)
	r.POST("/auth/sign-up", controllers.SignUp)
	r.POST("/auth/sign-in", controllers.SignIn)

	r.GET("/ws", auth, controllers.ServeWs)

	users := r.Group("/users")
	users.Use(auth)
	{
		users.GET("/me", controllers.CurrentUser)
		users.PATCH("/me", controllers.UpdateProfile)
	}

	// The chat list degrades to an empty page without a token.
	r.GET("/chats", middlewares.OptionalAuth(tokens), controllers.ListChats)

	chats := r.Group("/chats")
	chats.Use(auth)
	{
		chats.POST("", controllers.CreateChat)
		chats.GET("/current-user", controllers.GetChatCurrentUser)
		chats.GET("/:chatId", controllers.GetChat)
		chats.DELETE("/:chatId", controllers.DeleteChat)
		chats.GET("/:chatId/messages", controllers.GetMessages)
		chats.POST("/:chatId/messages", controllers.SendMessage)
		chats.POST("/:chatId/read", controllers.MarkChatRead)
		chats.POST("/:chatId/files", controllers.AttachFile)
		chats.PUT("/:chatId/mute", controllers.SetMuted)
	}

	messages := r.Group("/messages")
	messages.Use(auth)
	{
		messages.POST("/:messageId/read", controllers.MarkMessageRead)
		messages.GET("/:messageId/thread", controllers.GetThread)
		messages.PATCH("/:messageId", controllers.EditMessage)
		messages.DELETE("/:messageId", controllers.DeleteMessage)
		messages.POST("/:messageId/reactions", controllers.ToggleReaction)
		messages.PUT("/:messageId/pin", controllers.PinMessage)
	}
}
