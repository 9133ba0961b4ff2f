// Package cli implements the command-line subcommands that run outside
// the HTTP server.
package cli

import (
	"flag"
	"fmt"
	"os"
	"strings"

	"golang.org/x/term"

	"github.com/ekurtoglu/guidance/internal/auth"
	"github.com/ekurtoglu/guidance/internal/config"
	"github.com/ekurtoglu/guidance/internal/database"
)

// CreateUserCommand creates a counselor account from the terminal.
type CreateUserCommand struct {
	Email        string
	Password     string
	FirstName    string
	LastName     string
	DatabasePath string
}

func NewCreateUserCommand() *CreateUserCommand {
	return &CreateUserCommand{}
}

func (cmd *CreateUserCommand) ParseFlags(args []string) error {
	fs := flag.NewFlagSet("create-user", flag.ExitOnError)

	fs.StringVar(&cmd.Email, "email", "", "Email address for the new account (required)")
	fs.StringVar(&cmd.Password, "password", "", "Password (prompted interactively when omitted)")
	fs.StringVar(&cmd.FirstName, "first-name", "", "First name (required)")
	fs.StringVar(&cmd.LastName, "last-name", "", "Last name (required)")
	fs.StringVar(&cmd.DatabasePath, "db", config.DefaultDatabasePath, "Path to the application database")

	fs.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage: %s create-user -email <email> -first-name <name> -last-name <name> [options]\n\n", os.Args[0])
		fmt.Fprintf(os.Stderr, "Create a counselor account. When -password is omitted the password\n")
		fmt.Fprintf(os.Stderr, "is read from the terminal without echo.\n\n")
		fmt.Fprintf(os.Stderr, "Options:\n")
		fs.PrintDefaults()
	}

	if err := fs.Parse(args); err != nil {
		return err
	}

	if cmd.Email == "" {
		return fmt.Errorf("required flag -email not provided")
	}
	if cmd.FirstName == "" || cmd.LastName == "" {
		return fmt.Errorf("required flags -first-name and -last-name not provided")
	}

	return nil
}

func (cmd *CreateUserCommand) Run() error {
	password := cmd.Password
	if password == "" {
		entered, err := promptPassword()
		if err != nil {
			return err
		}
		password = entered
	}

	db, err := database.NewDatabase(cmd.DatabasePath)
	if err != nil {
		return fmt.Errorf("failed to open database: %w", err)
	}
	defer db.Close()

	// The session secret is irrelevant here; only the bcrypt cost is
	// used on this path.
	service := auth.NewService(db.DB, config.NewConfig().Auth)

	user, err := service.Register(cmd.Email, password, cmd.FirstName, cmd.LastName)
	if err != nil {
		return fmt.Errorf("failed to create user: %w", err)
	}

	fmt.Printf("Created user %s (%s)\n", user.FullName(), user.Email)
	return nil
}

func promptPassword() (string, error) {
	fmt.Fprint(os.Stderr, "Password: ")
	first, err := term.ReadPassword(int(os.Stdin.Fd()))
	fmt.Fprintln(os.Stderr)
	if err != nil {
		return "", fmt.Errorf("failed to read password: %w", err)
	}

	fmt.Fprint(os.Stderr, "Confirm password: ")
	second, err := term.ReadPassword(int(os.Stdin.Fd()))
	fmt.Fprintln(os.Stderr)
	if err != nil {
		return "", fmt.Errorf("failed to read password: %w", err)
	}

	if string(first) != string(second) {
		return "", fmt.Errorf("passwords do not match")
	}
	return strings.TrimSpace(string(first)), nil
}
