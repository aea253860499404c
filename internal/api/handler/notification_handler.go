package handler

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"go.uber.org/zap"

	"github.com/d60-Lab/schoolbooks/pkg/logger"
	"github.com/d60-Lab/schoolbooks/pkg/response"
)

// ListNotifications 我的通知
// @Summary 通知列表
// @Tags 通知
// @Security BearerAuth
// @Param page query int false "页码" default(1)
// @Param page_size query int false "每页数量" default(20)
// @Success 200 {object} response.Response
// @Router /api/v1/notifications [get]
func (h *Handler) ListNotifications(c *gin.Context) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	pageSize, _ := strconv.Atoi(c.DefaultQuery("page_size", "20"))
	userID := currentUserID(c)
	list, err := h.notifService.ListForUser(c.Request.Context(), userID, page, pageSize)
	if err != nil {
		response.InternalError(c, err)
		return
	}
	unread, err := h.notifService.UnreadCount(c.Request.Context(), userID)
	if err != nil {
		response.InternalError(c, err)
		return
	}
	response.Success(c, gin.H{"page": page, "page_size": pageSize, "unread": unread, "list": list})
}

// ReadNotification 标记单条已读
// @Summary 标记已读
// @Tags 通知
// @Security BearerAuth
// @Param id path string true "通知ID"
// @Success 200 {object} response.Response
// @Router /api/v1/notifications/{id}/read [post]
func (h *Handler) ReadNotification(c *gin.Context) {
	if err := h.notifService.MarkRead(c.Request.Context(), currentUserID(c), c.Param("id")); err != nil {
		writeServiceError(c, err)
		return
	}
	response.Success(c, nil)
}

// ReadAllNotifications 全部标记已读
// @Summary 全部已读
// @Tags 通知
// @Security BearerAuth
// @Success 200 {object} response.Response
// @Router /api/v1/notifications/read-all [post]
func (h *Handler) ReadAllNotifications(c *gin.Context) {
	if err := h.notifService.MarkAllRead(c.Request.Context(), currentUserID(c)); err != nil {
		writeServiceError(c, err)
		return
	}
	response.Success(c, nil)
}

var wsUpgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	// 鉴权走 JWT 中间件，跨域交给部署层
	CheckOrigin: func(r *http.Request) bool { return true },
}

// Notifications websocket：连接后收到本人 user.{id} 频道的实时事件
// @Summary 实时通知通道
// @Tags 通知
// @Security BearerAuth
// @Router /api/v1/ws [get]
func (h *Handler) NotificationSocket(c *gin.Context) {
	userID := currentUserID(c)
	conn, err := wsUpgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		logger.L().Debug("websocket upgrade failed", zap.Error(err))
		return
	}
	h.hub.Attach(userID, conn)
	// 只推不收：读循环仅用于感知断开
	go func() {
		defer func() {
			h.hub.Detach(userID, conn)
			_ = conn.Close()
		}()
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				return
			}
		}
	}()
}
