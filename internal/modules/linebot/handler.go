package linebot

import (
	"fmt"
	"log"
	"net/http"
	"net/url"

	"github.com/gin-gonic/gin"

	"roomreserve/internal/pkg/response"
)

// WebhookEvent mirrors the relevant fields of a LINE platform event. Only
// text message events are acted on; everything else is skipped.
type WebhookEvent struct {
	Type       string `json:"type"`
	ReplyToken string `json:"replyToken"`
	Source     struct {
		UserID string `json:"userId"`
	} `json:"source"`
	Message struct {
		Type string `json:"type"`
		Text string `json:"text"`
	} `json:"message"`
}

type webhookPayload struct {
	Events []WebhookEvent `json:"events"`
}

type Handler struct {
	service *Service
	appURL  string
	liffID  string
}

func NewHandler(service *Service, appURL, liffID string) *Handler {
	return &Handler{service: service, appURL: appURL, liffID: liffID}
}

func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.POST("/line/webhook", h.Webhook)
	rg.GET("/line/liff", h.LiffRedirect)
}

// RegisterProtected registers the routes that need an authenticated session.
func (h *Handler) RegisterProtected(rg *gin.RouterGroup) {
	rg.POST("/line/link", h.LinkAccount)
}

// Webhook handles a batch of platform events. Every event is processed even
// if an earlier one fails; a single failure turns the response into a 500,
// which makes the platform redeliver the batch.
func (h *Handler) Webhook(c *gin.Context) {
	var payload webhookPayload
	if err := c.ShouldBindJSON(&payload); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Error"})
		return
	}

	failed := false
	for _, ev := range payload.Events {
		if ev.Type != "message" || ev.Message.Type != "text" {
			continue
		}
		if err := h.service.HandleTextMessage(c.Request.Context(), ev.ReplyToken, ev.Source.UserID, ev.Message.Text); err != nil {
			log.Printf("line_webhook_event_failed line_user_id=%s error=%q", ev.Source.UserID, err)
			failed = true
		}
	}

	if failed {
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Error"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "OK"})
}

// LiffRedirect forwards a chat identity into the room-selection entry point.
func (h *Handler) LiffRedirect(c *gin.Context) {
	lineUserID := c.Query("lineUserId")
	if lineUserID == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "LINE user ID is required"})
		return
	}

	if h.liffID == "" {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "LIFF ID is not configured"})
		return
	}

	q := url.Values{"lineUserId": {lineUserID}}
	c.Redirect(http.StatusFound, fmt.Sprintf("%s/?%s", h.appURL, q.Encode()))
}

type linkRequest struct {
	LineUserID string `json:"line_user_id" binding:"required"`
}

func (h *Handler) LinkAccount(c *gin.Context) {
	userID := c.GetInt64("user_id")
	if userID == 0 {
		response.Error(c, http.StatusUnauthorized, "UNAUTHORIZED", "Authentication required")
		return
	}

	var req linkRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid request body")
		return
	}

	if err := h.service.LinkAccount(c.Request.Context(), userID, req.LineUserID); err != nil {
		c.Error(err)
		response.Error(c, http.StatusInternalServerError, "STORE_ERROR", "Failed to link LINE account")
		return
	}

	response.Success(c, http.StatusOK, gin.H{"linked": true})
}
