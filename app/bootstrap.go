package app

import (
	"context"
	"log"

	"libstack/db"
	"libstack/models"

	"github.com/google/uuid"
)

// BootstrapFirstAdmin promotes BOOTSTRAP_ADMIN_EMAIL to ADMIN on startup,
// creating the account if needed. No-op once any admin exists.
func BootstrapFirstAdmin(ctx context.Context, cfg Config, repo *db.Repo) {
	if cfg.BootstrapAdminEmail == "" {
		return
	}
	n, err := repo.CountAdmins(ctx)
	if err != nil {
		log.Printf("bootstrap: count admins: %v", err)
		return
	}
	if n > 0 {
		return
	}

	u, err := repo.FindOrCreateUser(ctx, cfg.BootstrapAdminEmail, "", uuid.NewString())
	if err != nil {
		log.Printf("bootstrap: create admin user: %v", err)
		return
	}
	if _, err := repo.SetUserRole(ctx, u.ID, models.RoleAdmin); err != nil {
		log.Printf("bootstrap: promote admin: %v", err)
		return
	}
	log.Printf("[BOOTSTRAP] no admin found, promoted %s", u.Email)
}
