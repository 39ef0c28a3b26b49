// Package repomanager vends the per-entity repository set for a chosen
// backend. Both implementations satisfy the same interface so the rest of
// the server never knows which backend it is talking to.
package repomanager

import (
	"context"
	"database/sql"

	"github.com/heirloomhq/heirloom/internal/server/repositories/capsules"
	"github.com/heirloomhq/heirloom/internal/server/repositories/comments"
	"github.com/heirloomhq/heirloom/internal/server/repositories/families"
	"github.com/heirloomhq/heirloom/internal/server/repositories/highlights"
	"github.com/heirloomhq/heirloom/internal/server/repositories/importjobs"
	"github.com/heirloomhq/heirloom/internal/server/repositories/memories"
	"github.com/heirloomhq/heirloom/internal/server/repositories/settings"
	"github.com/heirloomhq/heirloom/internal/server/repositories/stories"
	"github.com/heirloomhq/heirloom/internal/server/repositories/subscriptions"
	"github.com/heirloomhq/heirloom/internal/server/repositories/users"
)

type RepositoryManager interface {
	RunMigrations(context.Context, *sql.DB) error

	Users() users.Repository
	Families() families.Repository
	Memories() memories.Repository
	Comments() comments.Repository
	Stories() stories.Repository
	Highlights() highlights.Repository
	Capsules() capsules.Repository
	ImportJobs() importjobs.Repository
	Settings() settings.Repository
	Subscriptions() subscriptions.Repository
}
