// Package cli implements the interactive client: a REPL whose command set
// is gated on the session state, with screens for the auth flows and the
// file catalog.
package cli

import (
	"bufio"
	"context"
	"io"
	"net/http"
	"os"
	"sync/atomic"

	"github.com/jkuschner/Document-Storage-App/internal/client/config"
	"github.com/jkuschner/Document-Storage-App/internal/client/files"
	"github.com/jkuschner/Document-Storage-App/internal/client/session"
	"github.com/jkuschner/Document-Storage-App/internal/logging"
)

type App struct {
	config      *config.Config
	resolver    *session.Resolver
	fileService *files.Service
	logger      logging.Logger

	reader *bufio.Reader
	out    io.Writer

	authState session.AuthState

	// listGen discards late results of superseded list fetches.
	listGen  atomic.Int64
	lastList []files.FileMetadata
}

func NewApp(c *config.Config) (*App, error) {
	logger := logging.NewJSONLogger(io.Discard)

	// Large object-store transfers get their own client without the API
	// deadline; presigned PUT/GET can legitimately outlive RequestTimeout.
	apiHTTP := &http.Client{Timeout: c.RequestTimeout}
	resolver := session.NewResolver(c.ServerBaseURL, apiHTTP, c.PasswordPolicy, logger)
	fileService := files.NewService(resolver.API(), resolver, nil, logger)

	return &App{
		config:      c,
		resolver:    resolver,
		fileService: fileService,
		logger:      logger,
		reader:      bufio.NewReader(os.Stdin),
		out:         os.Stdout,
		authState:   session.StateLoading,
	}, nil
}

// resolveSession refetches the session state. Called on startup and after
// every sign-in/out; the guards consult the cached state in between.
func (a *App) resolveSession(ctx context.Context) {
	state, err := a.resolver.Resolve(ctx)
	if err != nil {
		// Transport trouble; leave the state unauthenticated rather than
		// blocking the prompt.
		a.authState = session.StateUnauthenticated
		return
	}
	if state.Authenticated {
		a.authState = session.StateAuthenticated
	} else {
		a.authState = session.StateUnauthenticated
	}
}

func (a *App) isLoggedIn() bool {
	return a.authState == session.StateAuthenticated
}

func (a *App) Run(ctx context.Context) {
	a.resolveSession(ctx)
	a.Root(ctx)
}
