// Command addrole grants a role to an existing user account. It is the
// operator-side counterpart to the admin role-edit screen, useful for
// bootstrapping the first administrator:
//
//	addrole -email admin@example.com -role ROLE_ADMIN
package main

import (
	"flag"
	"log/slog"
	"os"

	"actuweb/internal/config"
	"actuweb/internal/database"
	"actuweb/internal/models"
	"actuweb/internal/store"
)

func main() {
	email := flag.String("email", "", "email of the user to modify")
	role := flag.String("role", "", "role to grant (ROLE_USER or ROLE_ADMIN)")
	flag.Parse()

	logger := slog.New(slog.NewTextHandler(os.Stderr, nil))
	slog.SetDefault(logger)

	if *email == "" || *role == "" {
		flag.Usage()
		os.Exit(2)
	}
	if !models.ValidRole(*role) {
		slog.Error("unknown role", "role", *role)
		os.Exit(2)
	}

	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load configuration", "error", err)
		os.Exit(1)
	}

	db, err := database.Connect(cfg.DSN())
	if err != nil {
		slog.Error("failed to connect to database", "error", err)
		os.Exit(1)
	}
	defer db.Close()

	users := store.NewUserStore(db)

	user, err := users.FindByEmail(*email)
	if err != nil {
		slog.Error("failed to look up user", "email", *email, "error", err)
		os.Exit(1)
	}
	if user == nil {
		slog.Error("no user with this email", "email", *email)
		os.Exit(1)
	}

	if user.HasRole(*role) {
		slog.Warn("user already has this role, nothing to do", "email", *email, "role", *role)
		return
	}

	if err := user.AddRole(*role); err != nil {
		slog.Error("failed to add role", "error", err)
		os.Exit(1)
	}
	if err := users.UpdateRoles(user.ID, user.Roles); err != nil {
		slog.Error("failed to save roles", "email", *email, "error", err)
		os.Exit(1)
	}

	slog.Info("role granted", "email", *email, "role", *role, "roles", user.Roles)
}
