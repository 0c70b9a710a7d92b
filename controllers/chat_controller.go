package controllers

import (
	"TeamChat/middlewares"
	"TeamChat/services"
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
)

var chatService ChatServiceInterface

func SetChatService(service ChatServiceInterface) {
	chatService = service
}

func CreateChat(c *gin.Context) {
	var input services.CreateChatInput
	if err := c.ShouldBindJSON(&input); err != nil {
		badRequest(c, err)
		return
	}

	chatID, err := chatService.Create(c.Request.Context(), middlewares.UserID(c), input)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"chatId": chatID})
}

// ListChats serves one page of the chat list. Unauthenticated callers get an
// empty page.
func ListChats(c *gin.Context) {
	limit := 0
	if raw := c.Query("limit"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil {
			badRequest(c, errors.New("limit must be an integer"))
			return
		}
		limit = n
	}

	result, err := chatService.List(c.Request.Context(), middlewares.UserID(c), limit, c.Query("cursor"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, result)
}

func GetChat(c *gin.Context) {
	chat, err := chatService.Get(c.Request.Context(), middlewares.UserID(c), c.Param("chatId"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, chat)
}

func GetChatCurrentUser(c *gin.Context) {
	user, err := chatService.GetCurrentUser(c.Request.Context(), middlewares.UserID(c))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, user)
}

func GetMessages(c *gin.Context) {
	messages, err := chatService.GetMessages(c.Request.Context(), middlewares.UserID(c), c.Param("chatId"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, messages)
}

func GetThread(c *gin.Context) {
	replies, err := chatService.GetThread(c.Request.Context(), middlewares.UserID(c), c.Param("messageId"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, replies)
}

func SendMessage(c *gin.Context) {
	var input struct {
		Content         string  `json:"content"`
		ParentMessageID *string `json:"parentMessageId"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		badRequest(c, err)
		return
	}

	messageID, err := chatService.SendMessage(c.Request.Context(), middlewares.UserID(c), services.SendMessageInput{
		ChatID:          c.Param("chatId"),
		Content:         input.Content,
		ParentMessageID: input.ParentMessageID,
	})
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"messageId": messageID})
}

func MarkMessageRead(c *gin.Context) {
	ok, err := chatService.MarkMessageRead(c.Request.Context(), middlewares.UserID(c), c.Param("messageId"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": ok})
}

func MarkChatRead(c *gin.Context) {
	ok, err := chatService.MarkChatRead(c.Request.Context(), middlewares.UserID(c), c.Param("chatId"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": ok})
}

func DeleteChat(c *gin.Context) {
	ok, err := chatService.DeleteChat(c.Request.Context(), middlewares.UserID(c), c.Param("chatId"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": ok})
}

func EditMessage(c *gin.Context) {
	var input struct {
		Content string `json:"content"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		badRequest(c, err)
		return
	}

	msg, err := chatService.EditMessage(c.Request.Context(), middlewares.UserID(c), c.Param("messageId"), input.Content)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, msg)
}

func DeleteMessage(c *gin.Context) {
	ok, err := chatService.DeleteMessage(c.Request.Context(), middlewares.UserID(c), c.Param("messageId"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": ok})
}

func ToggleReaction(c *gin.Context) {
	var input struct {
		Reaction string `json:"reaction"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		badRequest(c, err)
		return
	}

	set, err := chatService.ToggleReaction(c.Request.Context(), middlewares.UserID(c), c.Param("messageId"), input.Reaction)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"reacted": set})
}

func PinMessage(c *gin.Context) {
	var input struct {
		Pinned *bool `json:"pinned" binding:"required"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		badRequest(c, err)
		return
	}

	if err := chatService.PinMessage(c.Request.Context(), middlewares.UserID(c), c.Param("messageId"), *input.Pinned); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true})
}

func AttachFile(c *gin.Context) {
	var input services.AttachFileInput
	if err := c.ShouldBindJSON(&input); err != nil {
		badRequest(c, err)
		return
	}

	upload, err := chatService.AttachFile(c.Request.Context(), middlewares.UserID(c), c.Param("chatId"), input)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, upload)
}

func SetMuted(c *gin.Context) {
	var input struct {
		Muted *bool `json:"muted" binding:"required"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		badRequest(c, err)
		return
	}

	if err := chatService.SetMuted(c.Request.Context(), middlewares.UserID(c), c.Param("chatId"), *input.Muted); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true})
}
