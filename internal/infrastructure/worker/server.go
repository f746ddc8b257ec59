package worker

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"runtime"
	"runtime/debug"

	"screen-agent/internal/application/port/output"
	"screen-agent/internal/domain/entity"
)

// ImageLoader reads an image payload from path, downscaled to maxWidth.
type ImageLoader func(path string, maxWidth int) (output.Image, error)

// Server runs one generation per process: it builds the back-end for the
// requested model, answers the request and releases the model again.
type Server struct {
	factory output.GenerationFactory
	images  ImageLoader
	logger  output.LoggerPort
}

func NewServer(factory output.GenerationFactory, images ImageLoader, logger output.LoggerPort) *Server {
	return &Server{
		factory: factory,
		images:  images,
		logger:  logger,
	}
}

// Serve reads one Request from in and writes one Response to out. A failed
// request is still answered, with Error set, and the error is returned so the
// process can exit non-zero.
func (s *Server) Serve(ctx context.Context, in io.Reader, out io.Writer) error {
	var req Request
	if err := json.NewDecoder(in).Decode(&req); err != nil {
		return s.reply(out, Response{}, fmt.Errorf("decode request: %w", err))
	}

	log := s.logger.WithFields(map[string]any{"request": req.ID, "model": req.Model.Name})
	log.Info("Request received", "messages", len(req.Messages), "backend", req.Model.Backend)

	text, err := s.generate(ctx, req, log)
	if err != nil {
		log.Error("Generation failed", "error", err)
		return s.reply(out, Response{ID: req.ID}, err)
	}

	log.Info("Generation finished", "chars", len(text))
	return s.reply(out, Response{ID: req.ID, Text: text}, nil)
}

func (s *Server) generate(ctx context.Context, req Request, log output.LoggerPort) (string, error) {
	backend, err := s.factory(ctx, req.Model)
	if err != nil {
		return "", fmt.Errorf("load model %s: %w", req.Model.Name, err)
	}
	defer release(backend, log)

	images, err := s.loadImages(req)
	if err != nil {
		return "", err
	}

	text, err := backend.Generate(ctx, output.GenerationRequest{
		Messages: req.Messages,
		Images:   images,
	})
	if err != nil {
		return "", fmt.Errorf("generate: %w", err)
	}
	return text, nil
}

func (s *Server) loadImages(req Request) (map[string]output.Image, error) {
	images := make(map[string]output.Image)
	for _, m := range req.Messages {
		for _, p := range m.Parts {
			if p.Type != entity.CapabilityImage {
				continue
			}
			if _, ok := images[p.Value]; ok {
				continue
			}
			img, err := s.images(p.Value, req.Model.ImageMaxWidth)
			if err != nil {
				return nil, fmt.Errorf("load image %s: %w", p.Value, err)
			}
			images[p.Value] = img
		}
	}
	return images, nil
}

// release closes the back-end and hands freed memory back to the OS, on
// success and failure alike.
func release(backend output.GenerationPort, log output.LoggerPort) {
	if err := backend.Close(); err != nil {
		log.Warn("Closing model failed", "error", err)
	}
	runtime.GC()
	debug.FreeOSMemory()
	log.Debug("Model released")
}

func (s *Server) reply(out io.Writer, resp Response, cause error) error {
	if cause != nil {
		resp.Error = cause.Error()
		resp.Text = ""
	}
	if err := json.NewEncoder(out).Encode(resp); err != nil {
		if cause != nil {
			return fmt.Errorf("%w (write response: %v)", cause, err)
		}
		return fmt.Errorf("write response: %w", err)
	}
	return cause
}
