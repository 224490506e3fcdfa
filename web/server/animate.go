package server

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"time"

	"github.com/google/uuid"

	"github.com/df07/go-mirror-raytracer/pkg/core"
	"github.com/df07/go-mirror-raytracer/pkg/renderer"
)

// FrameUpdate represents a single animation frame sent via SSE
type FrameUpdate struct {
	RenderID    string  `json:"renderId"`
	FrameNumber int     `json:"frameNumber"` // 1-based
	TotalFrames int     `json:"totalFrames"`
	Time        float64 `json:"time"`
	Width       int     `json:"width"`
	Height      int     `json:"height"`
	ImageData   string  `json:"imageData"` // Base64 encoded PNG
	FrameMs     int64   `json:"frameMs"`
	ElapsedMs   int64   `json:"elapsedMs"`
	IsLast      bool    `json:"isLast"`
}

// SSEEvent represents a unified SSE event for thread-safe writing
type SSEEvent struct {
	Type string `json:"type"` // "start", "console", "frame", "error", "complete"
	Data string `json:"data"` // JSON-encoded data
}

// handleAnimate renders a sequence of frames and streams each one via SSE
func (s *Server) handleAnimate(w http.ResponseWriter, r *http.Request) {
	s.setSSEHeaders(w)

	ctx, cancel := context.WithCancel(r.Context())
	defer cancel()

	// Create unified SSE event channel for thread-safe writing
	sseEventChan := make(chan SSEEvent, 100)
	writerDone := make(chan struct{})

	// Start single SSE writer goroutine
	go func() {
		defer close(writerDone)
		s.writeSSEEvents(w, ctx, sseEventChan)
	}()
	defer func() {
		close(sseEventChan)
		<-writerDone
	}()

	req, err := s.parseFrameRequest(r)
	if err != nil {
		s.handleError(ctx, sseEventChan, fmt.Sprintf("Invalid request: %v", err))
		return
	}

	// Setup console logging and streaming
	renderID, consoleChan, webLogger := s.setupConsoleLogging()
	consoleDone := make(chan struct{})
	go func() {
		defer close(consoleDone)
		s.streamConsoleMessages(ctx, consoleChan, sseEventChan)
	}()
	defer func() {
		close(consoleChan)
		<-consoleDone
	}()

	rend, err := s.createRenderer(req, webLogger)
	if err != nil {
		s.handleError(ctx, sseEventChan, err.Error())
		return
	}

	start, _ := json.Marshal(map[string]interface{}{"renderId": renderID, "totalFrames": req.Frames})
	s.sendEvent(ctx, sseEventChan, SSEEvent{Type: "start", Data: string(start)})

	startTime := time.Now()
	times := renderer.FrameTimes(req.Time, req.End, req.Frames)
	frameChan, errChan := renderer.Animate(ctx, rend, times, webLogger)

	s.handleRenderingEvents(ctx, cancel, sseEventChan, frameChan, errChan, renderID, req, startTime)
}

// setSSEHeaders sets the required headers for Server-Sent Events
func (s *Server) setSSEHeaders(w http.ResponseWriter) {
	w.Header().Set("Content-Type", "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Connection", "keep-alive")
	w.Header().Set("Access-Control-Allow-Origin", "*")
}

// setupConsoleLogging creates a render ID, console channel and web logger for a render
func (s *Server) setupConsoleLogging() (string, chan ConsoleMessage, core.Logger) {
	consoleChan := make(chan ConsoleMessage, 50)
	renderID := uuid.New().String()
	webLogger := NewWebLogger(renderID, consoleChan)
	return renderID, consoleChan, webLogger
}

// writeSSEEvents handles writing all SSE events in a single goroutine (thread-safe)
func (s *Server) writeSSEEvents(w http.ResponseWriter, ctx context.Context, sseEventChan <-chan SSEEvent) {
	for {
		select {
		case event, ok := <-sseEventChan:
			if !ok {
				// Channel closed
				return
			}

			_, err := fmt.Fprintf(w, "event: %s\ndata: %s\n\n", event.Type, event.Data)
			if err != nil {
				// Client disconnected during write
				return
			}
			if flusher, ok := w.(http.Flusher); ok {
				flusher.Flush()
			}

		case <-ctx.Done():
			// Client disconnected
			return
		}
	}
}

// streamConsoleMessages forwards console messages until the channel closes
func (s *Server) streamConsoleMessages(ctx context.Context, consoleChan <-chan ConsoleMessage, sseEventChan chan<- SSEEvent) {
	for {
		select {
		case consoleMsg, ok := <-consoleChan:
			if !ok {
				return
			}

			data, err := json.Marshal(consoleMsg)
			if err != nil {
				log.Printf("Error marshaling console message: %v", err)
				continue
			}

			select {
			case sseEventChan <- SSEEvent{Type: "console", Data: string(data)}:
			case <-ctx.Done():
				return
			default:
				// Channel full, skip message to avoid blocking
			}

		case <-ctx.Done():
			return
		}
	}
}

// handleRenderingEvents processes the main rendering event loop.
// It returns only after the animation goroutine has stopped, so the logger is no longer in use.
func (s *Server) handleRenderingEvents(ctx context.Context, cancel context.CancelFunc, sseEventChan chan<- SSEEvent,
	frameChan <-chan renderer.FrameResult, errChan <-chan error,
	renderID string, req *FrameRequest, startTime time.Time) {

	for result := range frameChan {
		imageData, err := frameToBase64PNG(result.Frame, req.Thumb)
		if err != nil {
			s.handleError(ctx, sseEventChan, fmt.Sprintf("Failed to encode frame: %v", err))
			cancel()
			drain(frameChan, errChan)
			return
		}

		update := FrameUpdate{
			RenderID:    renderID,
			FrameNumber: result.Index + 1,
			TotalFrames: result.Total,
			Time:        result.Frame.Time,
			Width:       result.Frame.Width,
			Height:      result.Frame.Height,
			ImageData:   imageData,
			FrameMs:     result.Duration.Milliseconds(),
			ElapsedMs:   time.Since(startTime).Milliseconds(),
			IsLast:      result.IsLast,
		}
		data, err := json.Marshal(update)
		if err != nil {
			log.Printf("Error marshaling frame update: %v", err)
			continue
		}
		s.sendEvent(ctx, sseEventChan, SSEEvent{Type: "frame", Data: string(data)})
	}

	if err := <-errChan; err != nil {
		s.handleError(ctx, sseEventChan, fmt.Sprintf("Rendering failed: %v", err))
		return
	}

	s.sendEvent(ctx, sseEventChan, SSEEvent{Type: "complete", Data: "Rendering completed"})
}

// drain waits for a cancelled animation to stop
func drain(frameChan <-chan renderer.FrameResult, errChan <-chan error) {
	for range frameChan {
	}
	<-errChan
}

// sendEvent queues an event unless the client has gone away
func (s *Server) sendEvent(ctx context.Context, sseEventChan chan<- SSEEvent, event SSEEvent) {
	select {
	case sseEventChan <- event:
	case <-ctx.Done():
	}
}

// handleError sends an error event to the SSE channel
func (s *Server) handleError(ctx context.Context, sseEventChan chan<- SSEEvent, message string) {
	s.sendEvent(ctx, sseEventChan, SSEEvent{Type: "error", Data: message})
}
