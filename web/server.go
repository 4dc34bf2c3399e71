// Copyright 2025 Caselens Authors
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.


package web

import (
	"log/slog"

	"github.com/gin-gonic/gin"

	"github.com/caselens/caselens/ai"
	"github.com/caselens/caselens/search"
)

// DefaultMaxUploadBytes caps PDF uploads at 10 MB.
const DefaultMaxUploadBytes = 10 << 20

// Server wires the HTTP handlers to the search and AI services.
type Server struct {
	engine         *gin.Engine
	searcher       *search.Searcher
	explainer      ai.Explainer
	maxHits        int
	maxUploadBytes int64
	logger         *slog.Logger
}

// Option configures a Server.
type Option func(*Server)

// WithLogger sets a custom logger.
// Default is slog.Default().
func WithLogger(logger *slog.Logger) Option {
	return func(s *Server) {
		if logger != nil {
			s.logger = logger
		}
	}
}

// WithMaxHits sets the number of results returned per search.
// Default is search.DefaultMaxHits.
func WithMaxHits(n int) Option {
	return func(s *Server) {
		if n > 0 {
			s.maxHits = n
		}
	}
}

// WithMaxUploadBytes caps the size of uploaded PDFs.
// Default is DefaultMaxUploadBytes.
func WithMaxUploadBytes(n int64) Option {
	return func(s *Server) {
		if n > 0 {
			s.maxUploadBytes = n
		}
	}
}

// NewServer creates the HTTP server.
func NewServer(searcher *search.Searcher, provider ai.Provider, opts ...Option) (*Server, error) {
	if searcher == nil {
		return nil, ErrSearcherRequired
	}
	if provider == nil {
		return nil, ErrAIProviderRequired
	}

	s := &Server{
		searcher:       searcher,
		explainer:      provider.Explainer(),
		maxHits:        search.DefaultMaxHits,
		maxUploadBytes: DefaultMaxUploadBytes,
		logger:         slog.Default().With("component", "web"),
	}
	for _, opt := range opts {
		opt(s)
	}

	gin.SetMode(gin.ReleaseMode)
	engine := gin.New()
	engine.Use(gin.Recovery(), requestID(), requestLogger(s.logger))
	engine.MaxMultipartMemory = s.maxUploadBytes

	api := engine.Group("/api")
	api.POST("/search", s.handleSearch)
	api.POST("/chat", s.handleChat)
	api.GET("/health", s.handleHealth)
	api.GET("/test-ai", s.handleTestAI)
	api.GET("/theme", s.handleGetTheme)
	api.PUT("/theme", s.handleSetTheme)

	s.engine = engine
	return s, nil
}

// Handler returns the HTTP handler, for tests and custom servers.
func (s *Server) Handler() *gin.Engine {
	return s.engine
}

// Run starts serving on addr. Blocks until the listener fails.
func (s *Server) Run(addr string) error {
	s.logger.Info("listening", "addr", addr)
	return s.engine.Run(addr)
}
