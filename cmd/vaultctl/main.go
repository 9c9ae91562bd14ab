// vaultctl provisions user accounts from the command line. The web
// interface has no self-signup, so the first admin is always created here.
package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"text/tabwriter"
	"time"

	"gamevault/internal/app"
	"gamevault/internal/config"
	"gamevault/internal/domain/user"
	"gamevault/internal/repository"
	"gamevault/pkg/password"
	"gamevault/pkg/rbac"
	"gamevault/pkg/rbac/presets"
	"gamevault/pkg/validator"

	"github.com/joho/godotenv"
)

const (
	envFilePath    = ".env"
	commandTimeout = 30 * time.Second
)

func main() {
	if err := godotenv.Load(envFilePath); err == nil {
		log.Println("Loaded environment from .env")
	}

	if len(os.Args) < 2 {
		usage()
		os.Exit(2)
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	store, err := app.OpenStore(cfg)
	if err != nil {
		log.Fatalf("Failed to open record store: %v", err)
	}
	defer store.Close()

	ctx, cancel := context.WithTimeout(context.Background(), commandTimeout)
	defer cancel()

	checker := rbac.MustNew(presets.Collection())

	switch os.Args[1] {
	case "create":
		err = createUser(ctx, cfg, store, checker, os.Args[2:])
	case "list":
		err = listUsers(ctx, store)
	case "set-role":
		err = setRole(ctx, store, checker, os.Args[2:])
	case "delete":
		err = deleteUser(ctx, store, os.Args[2:])
	default:
		usage()
		os.Exit(2)
	}

	if err != nil {
		log.Fatalf("%s failed: %v", os.Args[1], err)
	}
}

func usage() {
	fmt.Fprintln(os.Stderr, `Usage: vaultctl <command> [flags]

Commands:
  create    -username <name> -password <pass> -role <admin|editor|viewer>
  list
  set-role  -id <id> -role <admin|editor|viewer>
  delete    -id <id>`)
}

func createUser(ctx context.Context, cfg *config.Config, store repository.Store, checker *rbac.Checker, args []string) error {
	fs := flag.NewFlagSet("create", flag.ExitOnError)
	username := fs.String("username", "", "username for the new account")
	pass := fs.String("password", "", "password for the new account")
	roleName := fs.String("role", string(presets.RoleViewer), "role for the new account")
	if err := fs.Parse(args); err != nil {
		return err
	}

	if err := validator.Username(*username); err != nil {
		return err
	}
	if err := validator.Password(*pass); err != nil {
		return err
	}

	role, err := checker.ValidateRole(*roleName)
	if err != nil {
		return err
	}

	hasher, err := password.NewHasher(cfg.Security.BcryptCost)
	if err != nil {
		return err
	}

	hash, err := hasher.Hash(*pass)
	if err != nil {
		return err
	}

	u, err := store.Users().Create(ctx, user.CreateUserInput{
		Username:     *username,
		PasswordHash: hash,
		Role:         role,
	})
	if err != nil {
		return err
	}

	fmt.Printf("Created user %d (%s) with role %s\n", u.ID, u.Username, u.Role)
	return nil
}

func listUsers(ctx context.Context, store repository.Store) error {
	users, err := store.Users().List(ctx)
	if err != nil {
		return err
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tUSERNAME\tROLE\tCREATED")
	for _, u := range users {
		fmt.Fprintf(w, "%d\t%s\t%s\t%s\n", u.ID, u.Username, u.Role, u.CreatedAt.Format(time.RFC3339))
	}
	return w.Flush()
}

func setRole(ctx context.Context, store repository.Store, checker *rbac.Checker, args []string) error {
	fs := flag.NewFlagSet("set-role", flag.ExitOnError)
	id := fs.Int64("id", 0, "user id")
	roleName := fs.String("role", "", "new role")
	if err := fs.Parse(args); err != nil {
		return err
	}

	role, err := checker.ValidateRole(*roleName)
	if err != nil {
		return err
	}

	if err := store.Users().UpdateRole(ctx, *id, role); err != nil {
		return err
	}

	fmt.Printf("Updated user %d role to %s\n", *id, role)
	return nil
}

func deleteUser(ctx context.Context, store repository.Store, args []string) error {
	fs := flag.NewFlagSet("delete", flag.ExitOnError)
	id := fs.Int64("id", 0, "user id")
	if err := fs.Parse(args); err != nil {
		return err
	}

	if err := store.Users().Delete(ctx, *id); err != nil {
		return err
	}

	fmt.Printf("Deleted user %d\n", *id)
	return nil
}
