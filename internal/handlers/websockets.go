package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"stepping_debug/internal/timeline"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
)

// Send/receive timing configuration and message size limits.
const (
	writeWait  = 10 * time.Second
	pongWait   = 60 * time.Second
	pingPeriod = (pongWait * 9) / 10
	maxMsgSize = 1 << 12 // 4 KB
)

// Message types of the range session.
const (
	wsTypeExtent  = "extent"
	wsTypeRows    = "rows"
	wsTypeError   = "error"
	wsTypeRange   = "range"
	wsTypeRefresh = "refresh"
)

// Envelope used for server to client WebSocket messages.
type wsEnvelope struct {
	Type  string      `json:"type"`
	Data  interface{} `json:"data,omitempty"`
	Error string      `json:"error,omitempty"`
}

// wsClientMessage is what the dashboard sends: a new range or a refresh request.
type wsClientMessage struct {
	Type string `json:"type"`
	Min  string `json:"min,omitempty"`
	Max  string `json:"max,omitempty"`
}

// wsRowsPayload is the data of a "rows" envelope.
type wsRowsPayload struct {
	Interval *RangeDTO           `json:"interval"`
	Count    int                 `json:"count"`
	Rows     []timeline.ChartRow `json:"rows"`
}

type wsInbound struct {
	msg wsClientMessage
	err error
}

// Upgrader for HTTP -> WebSocket. Consider tightening CheckOrigin in production.
var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool { return true },
}

// @Summary      Timeline range session
// @Description  WebSocket. Server sends "extent" then "rows"; client sends {"type":"range","min","max"} or {"type":"refresh"}. Invalid ranges are ignored.
// @Tags         timeline
// @Param        access_token  query  string  false  "Bearer token when headers cannot be set"
// @Success      101
// @Failure      401  {object}  map[string]string
// @Failure      403  {object}  map[string]string
// @Router       /ws/timeline [get]
// @Security     BearerAuth
func (h *Handler) wsTimeline(c *gin.Context) {
	conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		if h.log != nil {
			h.log.Errorw("ws_upgrade_failed", "err", err)
		}
		return
	}
	defer func() { _ = conn.Close() }()

	// Configure read limits and pong handler to extend read deadline.
	conn.SetReadLimit(maxMsgSize)
	_ = conn.SetReadDeadline(time.Now().Add(pongWait))
	conn.SetPongHandler(func(string) error {
		return conn.SetReadDeadline(time.Now().Add(pongWait))
	})

	ctx := c.Request.Context()

	view, err := h.loadView(ctx)
	if err != nil {
		if h.log != nil {
			h.log.Errorw("ws_timeline_load_failed", "err", err)
		}
		_ = writeEnvelope(conn, wsEnvelope{Type: wsTypeError, Error: errLoadTimeline})
		return
	}
	if err := sendSnapshot(conn, view); err != nil {
		if h.log != nil {
			h.log.Infow("ws_write_failed_initial", "err", err)
		}
		return
	}

	// The reader only forwards; the loop below owns view, so one recompute runs at a time.
	inbound := make(chan wsInbound)
	quit := make(chan struct{})
	defer close(quit)
	done := make(chan struct{})
	go h.startReader(conn, inbound, quit, done)

	ping := time.NewTicker(pingPeriod)
	defer ping.Stop()

	for {
		select {
		case <-done:
			return
		case <-ctx.Done():
			return
		case <-ping.C:
			_ = conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				if h.log != nil {
					h.log.Infow("ws_ping_failed", "err", err)
				}
				return
			}
		case in := <-inbound:
			next, err := h.handleClientMessage(ctx, conn, view, in)
			if err != nil {
				if h.log != nil {
					h.log.Infow("ws_write_failed", "err", err)
				}
				return
			}
			view = next
		}
	}
}

// handleClientMessage applies one client message and returns the view to keep using.
// Only write errors are returned; they end the session.
func (h *Handler) handleClientMessage(ctx context.Context, conn *websocket.Conn, view *timeline.RangeView, in wsInbound) (*timeline.RangeView, error) {
	if in.err != nil {
		return view, writeEnvelope(conn, wsEnvelope{Type: wsTypeError, Error: "malformed message"})
	}

	switch in.msg.Type {
	case wsTypeRange:
		if _, changed := view.Apply(in.msg.Min, in.msg.Max); !changed {
			// Invalid range: the previous rows stay on screen.
			if h.log != nil {
				h.log.Debugw("ws_range_ignored", "min", in.msg.Min, "max", in.msg.Max)
			}
			return view, nil
		}
		return view, sendRows(conn, view)

	case wsTypeRefresh:
		next, err := h.loadView(ctx)
		if err != nil {
			if h.log != nil {
				h.log.Errorw("ws_timeline_refresh_failed", "err", err)
			}
			return view, writeEnvelope(conn, wsEnvelope{Type: wsTypeError, Error: errLoadTimeline})
		}
		return next, sendSnapshot(conn, next)

	default:
		return view, writeEnvelope(conn, wsEnvelope{Type: wsTypeError, Error: "unknown message type: " + in.msg.Type})
	}
}

func (h *Handler) loadView(ctx context.Context) (*timeline.RangeView, error) {
	snap, err := h.services.Timeline.Snapshot(ctx)
	if err != nil {
		return nil, err
	}
	return timeline.NewRangeView(snap.Rows), nil
}

// sendSnapshot writes the extent envelope (null data when empty) followed by the current rows.
func sendSnapshot(conn *websocket.Conn, view *timeline.RangeView) error {
	var extent *RangeDTO
	if iv, ok := view.Extent(); ok {
		extent = newRangeDTO(&iv)
	}
	// Data is omitted by omitempty when nil; send an explicit null instead.
	msg := struct {
		Type string    `json:"type"`
		Data *RangeDTO `json:"data"`
	}{Type: wsTypeExtent, Data: extent}
	_ = conn.SetWriteDeadline(time.Now().Add(writeWait))
	if err := conn.WriteJSON(msg); err != nil {
		return err
	}
	return sendRows(conn, view)
}

func sendRows(conn *websocket.Conn, view *timeline.RangeView) error {
	p := wsRowsPayload{Rows: view.Rows()}
	if iv, ok := view.Interval(); ok {
		p.Interval = newRangeDTO(&iv)
	}
	p.Count = len(p.Rows)
	return writeEnvelope(conn, wsEnvelope{Type: wsTypeRows, Data: p})
}

func writeEnvelope(conn *websocket.Conn, env wsEnvelope) error {
	_ = conn.SetWriteDeadline(time.Now().Add(writeWait))
	return conn.WriteJSON(env)
}

// startReader decodes client messages and hands them to the session loop until the
// connection fails or the loop quits.
func (h *Handler) startReader(conn *websocket.Conn, out chan<- wsInbound, quit <-chan struct{}, done chan<- struct{}) {
	defer close(done)
	for {
		_, data, err := conn.ReadMessage()
		if err != nil {
			if h.log != nil {
				h.log.Infow("ws_read_closed", "err", err)
			}
			return
		}
		var in wsInbound
		in.err = json.Unmarshal(data, &in.msg)
		select {
		case out <- in:
		case <-quit:
			return
		}
	}
}
