package routes

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/coder/websocket"
	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"ragbot/ragbot/controllers"
	"ragbot/ragbot/orchestrator"
	"ragbot/ragbot/types"
	"ragbot/ragbot/utils/logging"
)

func ChatRoutes(ctrl *controllers.ChatController) chi.Router {
	r := chi.NewRouter()

	// POST /chat : send one message, get the grounded prompt back
	r.Post("/", func(w http.ResponseWriter, r *http.Request) {
		var req types.ChatRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
		resp, err := ctrl.Chat(r.Context(), req)
		if err != nil {
			http.Error(w, err.Error(), chatErrorStatus(err))
			return
		}
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(resp)
	})

	// GET /chat/{user_id}/messages : message log, optionally ?limit=N for
	// the trailing window only
	r.Get("/{user_id}/messages", func(w http.ResponseWriter, r *http.Request) {
		userID := chi.URLParam(r, "user_id")
		w.Header().Set("Content-Type", "application/json")
		if raw := r.URL.Query().Get("limit"); raw != "" {
			limit, err := strconv.Atoi(raw)
			if err != nil {
				http.Error(w, "limit must be an integer", http.StatusBadRequest)
				return
			}
			json.NewEncoder(w).Encode(ctrl.RecentMessages(userID, limit))
			return
		}
		json.NewEncoder(w).Encode(ctrl.Messages(userID))
	})

	// GET /chat/{user_id}/summary : plain-text diagnostic view of the state
	r.Get("/{user_id}/summary", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/plain; charset=utf-8")
		w.Write([]byte(ctrl.Summary(chi.URLParam(r, "user_id"))))
	})

	// DELETE /chat/{user_id} : reset the user's conversation
	r.Delete("/{user_id}", func(w http.ResponseWriter, r *http.Request) {
		ctrl.Reset(chi.URLParam(r, "user_id"))
		w.WriteHeader(http.StatusNoContent)
	})

	// GET /chat/ws : one chat request per frame, prompt or error back
	r.HandleFunc("/ws", func(w http.ResponseWriter, r *http.Request) {
		conn, err := websocket.Accept(w, r, &websocket.AcceptOptions{InsecureSkipVerify: true})
		if err != nil {
			logging.ErrorLogger.Error("websocket accept error", zap.Error(err))
			return
		}
		defer conn.Close(websocket.StatusInternalError, "internal error")

		ctx := r.Context()
		for {
			typ, data, err := conn.Read(ctx)
			if err != nil {
				return
			}
			if typ != websocket.MessageText {
				conn.Close(websocket.StatusUnsupportedData, "unsupported data")
				return
			}
			var req types.ChatRequest
			if err := json.Unmarshal(data, &req); err != nil {
				conn.Write(ctx, websocket.MessageText, []byte(`{"error":"invalid json"}`))
				continue
			}
			resp, err := ctrl.Chat(ctx, req)
			if err != nil {
				payload, _ := json.Marshal(map[string]string{"error": err.Error()})
				conn.Write(ctx, websocket.MessageText, payload)
				continue
			}
			payload, _ := json.Marshal(resp)
			if err := conn.Write(ctx, websocket.MessageText, payload); err != nil {
				logging.ErrorLogger.Error("websocket write error", zap.Error(err))
				return
			}
		}
	})

	return r
}

// chatErrorStatus maps turn failures to 502 (an upstream collaborator broke)
// and caller mistakes to 400.
func chatErrorStatus(err error) int {
	var terr *orchestrator.TurnError
	if errors.As(err, &terr) {
		return http.StatusBadGateway
	}
	if errors.Is(err, controllers.ErrEmptyContent) {
		return http.StatusBadRequest
	}
	return http.StatusInternalServerError
}
