package server

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"image/png"
	"log/slog"
	"net/http"
	"time"

	"github.com/coder/websocket"

	"github.com/df07/go-whitted-raytracer/pkg/core"
	"github.com/df07/go-whitted-raytracer/pkg/renderer"
	"github.com/df07/go-whitted-raytracer/pkg/scene"
)

const writeWait = 10 * time.Second

// Message types sent over /api/render/ws
const (
	MessageStart    = "start"
	MessageTile     = "tile"
	MessageConsole  = "console"
	MessageComplete = "complete"
	MessageError    = "error"
)

// TileUpdate carries one finished tile
type TileUpdate struct {
	TileX      int    `json:"tileX"`
	TileY      int    `json:"tileY"`
	X          int    `json:"x"` // Pixel offset of the tile
	Y          int    `json:"y"`
	ImageData  string `json:"imageData"` // Base64 encoded PNG
	TileNumber int    `json:"tileNumber"`
	TotalTiles int    `json:"totalTiles"`
}

// StreamMessage is a single websocket message
type StreamMessage struct {
	Type      string          `json:"type"`
	RenderID  string          `json:"renderId"`
	Request   *RenderRequest  `json:"request,omitempty"`
	Tile      *TileUpdate     `json:"tile,omitempty"`
	Console   *ConsoleMessage `json:"console,omitempty"`
	ImageData string          `json:"imageData,omitempty"` // Base64 encoded PNG of the full frame
	Stats     *Stats          `json:"stats,omitempty"`
	Error     string          `json:"error,omitempty"`
}

func (s *Server) newTileRenderer(sceneObj *scene.Scene, logger core.Logger) *renderer.TileRenderer {
	return renderer.NewTileRenderer(sceneObj.Camera, sceneObj.World, renderer.RenderConfig{
		TileSize:   s.config.TileSize,
		NumWorkers: s.config.Workers,
	}, logger)
}

// handleRender renders a scene and responds with the PNG
func (s *Server) handleRender(w http.ResponseWriter, r *http.Request) {
	req, err := s.parseRenderRequest(r.URL.Query())
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request: "+err.Error())
		return
	}

	sceneObj, err := s.createScene(req)
	if errors.Is(err, scene.ErrUnknownScene) {
		writeError(w, http.StatusNotFound, "Unknown scene: "+req.Scene)
		return
	}
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	renderID := newRenderID()
	logger := core.NewSlogLogger(slog.Default(), "render", renderID)

	canvas, _, err := s.newTileRenderer(sceneObj, logger).Render(r.Context(), nil)
	if err != nil {
		if r.Context().Err() != nil {
			// client went away
			return
		}
		writeError(w, http.StatusInternalServerError, "Render error: "+err.Error())
		return
	}

	var buf bytes.Buffer
	if err := png.Encode(&buf, canvas.ToImage()); err != nil {
		writeError(w, http.StatusInternalServerError, "Encode error: "+err.Error())
		return
	}

	w.Header().Set("Content-Type", "image/png")
	w.Header().Set("Access-Control-Allow-Origin", "*")
	w.Header().Set("X-Render-Id", renderID)
	w.WriteHeader(http.StatusOK)
	w.Write(buf.Bytes())
}

type renderResult struct {
	canvas *core.Canvas
	stats  renderer.RenderStats
	err    error
}

// handleRenderWebSocket streams tiles, console output and the final frame
func (s *Server) handleRenderWebSocket(w http.ResponseWriter, r *http.Request) {
	req, err := s.parseRenderRequest(r.URL.Query())
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request: "+err.Error())
		return
	}
	sceneObj, err := s.createScene(req)
	if errors.Is(err, scene.ErrUnknownScene) {
		writeError(w, http.StatusNotFound, "Unknown scene: "+req.Scene)
		return
	}
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	conn, err := websocket.Accept(w, r, &websocket.AcceptOptions{
		OriginPatterns: s.config.AllowedOrigins,
	})
	if err != nil {
		slog.Error("websocket accept", "error", err)
		return
	}
	defer conn.Close(websocket.StatusInternalError, "render aborted")

	renderID := newRenderID()
	log := slog.With("render", renderID, "conn", newConnectionID())
	log.Info("render stream opened", "scene", req.Scene, "width", req.Width, "height", req.Height)

	// Clients only listen; a read failure means they went away
	ctx := conn.CloseRead(r.Context())

	if err := writeMessage(ctx, conn, StreamMessage{Type: MessageStart, RenderID: renderID, Request: req}); err != nil {
		log.Debug("write error", "error", err)
		return
	}

	consoleChan := make(chan ConsoleMessage, 100)
	tileChan := make(chan TileUpdate, 64)
	done := make(chan renderResult, 1)
	start := time.Now()

	go func() {
		tr := s.newTileRenderer(sceneObj, NewWebLogger(renderID, consoleChan))
		canvas, stats, err := tr.Render(ctx, func(tc renderer.TileCompletion) {
			imageData, err := imageToBase64PNG(tc.TileImage)
			if err != nil {
				log.Warn("encode tile", "error", err)
				return
			}
			update := TileUpdate{
				TileX:      tc.TileX,
				TileY:      tc.TileY,
				X:          tc.Bounds.Min.X,
				Y:          tc.Bounds.Min.Y,
				ImageData:  imageData,
				TileNumber: tc.TileNumber,
				TotalTiles: tc.TotalTiles,
			}
			select {
			case tileChan <- update:
			case <-ctx.Done():
			}
		})
		done <- renderResult{canvas: canvas, stats: stats, err: err}
	}()

	send := func(msg StreamMessage) bool {
		msg.RenderID = renderID
		if err := writeMessage(ctx, conn, msg); err != nil {
			log.Debug("write error", "error", err)
			return false
		}
		return true
	}

	for {
		select {
		case c := <-consoleChan:
			if !send(StreamMessage{Type: MessageConsole, Console: &c}) {
				return
			}
		case t := <-tileChan:
			if !send(StreamMessage{Type: MessageTile, Tile: &t}) {
				return
			}
		case res := <-done:
			// every tile callback has returned, so the channels hold the rest
			if !drain(tileChan, consoleChan, send) {
				return
			}
			if res.err != nil {
				log.Warn("render failed", "error", res.err)
				send(StreamMessage{Type: MessageError, Error: res.err.Error()})
				conn.Close(websocket.StatusInternalError, "render failed")
				return
			}

			imageData, err := imageToBase64PNG(res.canvas.ToImage())
			if err != nil {
				send(StreamMessage{Type: MessageError, Error: err.Error()})
				return
			}
			if !send(StreamMessage{
				Type:      MessageComplete,
				ImageData: imageData,
				Stats: &Stats{
					TotalPixels: res.stats.TotalPixels,
					TotalTiles:  res.stats.TotalTiles,
					NumWorkers:  res.stats.NumWorkers,
					ElapsedMs:   time.Since(start).Milliseconds(),
				},
			}) {
				return
			}
			log.Info("render stream completed", "duration", time.Since(start))
			conn.Close(websocket.StatusNormalClosure, "")
			return
		case <-ctx.Done():
			log.Info("client disconnected, render cancelled")
			return
		}
	}
}

// drain sends whatever is left in the tile and console channels
func drain(tiles <-chan TileUpdate, console <-chan ConsoleMessage, send func(StreamMessage) bool) bool {
	for {
		select {
		case t := <-tiles:
			if !send(StreamMessage{Type: MessageTile, Tile: &t}) {
				return false
			}
		case c := <-console:
			if !send(StreamMessage{Type: MessageConsole, Console: &c}) {
				return false
			}
		default:
			return true
		}
	}
}

func writeMessage(ctx context.Context, conn *websocket.Conn, msg StreamMessage) error {
	data, err := json.Marshal(msg)
	if err != nil {
		return err
	}
	writeCtx, cancel := context.WithTimeout(ctx, writeWait)
	defer cancel()
	return conn.Write(writeCtx, websocket.MessageText, data)
}
