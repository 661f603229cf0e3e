package handlers

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/gorilla/websocket"

	"github.com/rgomide/gerenciador-torneio-sub001/live"
	"github.com/rgomide/gerenciador-torneio-sub001/services"
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin: func(r *http.Request) bool {
		// TODO: ограничить Origin доменом фронтенда перед продакшеном.
		return true
	},
}

type WebSocketHandler struct {
	hub          *live.Hub
	matchService services.MatchService
	logger       *slog.Logger
}

func NewWebSocketHandler(hub *live.Hub, ms services.MatchService, logger *slog.Logger) *WebSocketHandler {
	return &WebSocketHandler{
		hub:          hub,
		matchService: ms,
		logger:       logger,
	}
}

// ServeMatch подключает клиента к live-комнате матча.
// Клиент подключается к /ws/matches/{matchID}.
func (h *WebSocketHandler) ServeMatch(w http.ResponseWriter, r *http.Request) {
	matchID, err := getIDFromURL(r, "matchID")
	if err != nil {
		badRequestResponse(w, r, err)
		return
	}

	// Комната не создаётся для несуществующего матча.
	if _, err := h.matchService.GetMatchDetails(r.Context(), matchID, false); err != nil {
		if errors.Is(err, services.ErrMatchNotFound) {
			notFoundResponse(w, r)
			return
		}
		serverErrorResponse(w, r, err)
		return
	}

	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		h.logger.Error("failed to upgrade websocket connection", "match_id", matchID, "error", err)
		return
	}

	client := live.NewClient(h.hub, conn, live.MatchRoom(matchID))
	h.hub.Register(client)

	go client.WritePump()
	go client.ReadPump()
}
