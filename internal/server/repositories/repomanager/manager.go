// Package repomanager wires concrete repositories to database handles so
// services can obtain per-call repositories bound to either *sql.DB or an
// open transaction.
package repomanager

import (
	"context"
	"database/sql"

	"github.com/jkuschner/Document-Storage-App/internal/dbx"
	"github.com/jkuschner/Document-Storage-App/internal/server/repositories/files"
	"github.com/jkuschner/Document-Storage-App/internal/server/repositories/refreshtokens"
	"github.com/jkuschner/Document-Storage-App/internal/server/repositories/shares"
	"github.com/jkuschner/Document-Storage-App/internal/server/repositories/users"
)

type RepositoryManager interface {
	Users(db dbx.DBTX) users.Repository
	Files(db dbx.DBTX) files.Repository
	Shares(db dbx.DBTX) shares.Repository
	RefreshTokens(db dbx.DBTX) refreshtokens.Repository
	RunMigrations(ctx context.Context, db *sql.DB) error
}
