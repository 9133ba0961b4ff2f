package cli

import (
	"flag"
	"fmt"
	"os"

	"github.com/ekurtoglu/guidance/internal/auth"
)

// GenerateSecretCommand prints a fresh SESSION_SECRET value.
type GenerateSecretCommand struct{}

func NewGenerateSecretCommand() *GenerateSecretCommand {
	return &GenerateSecretCommand{}
}

func (cmd *GenerateSecretCommand) ParseFlags(args []string) error {
	fs := flag.NewFlagSet("generate-secret", flag.ExitOnError)
	fs.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage: %s generate-secret\n\n", os.Args[0])
		fmt.Fprintf(os.Stderr, "Generate a random secret suitable for the SESSION_SECRET environment variable.\n")
	}
	return fs.Parse(args)
}

func (cmd *GenerateSecretCommand) Run() error {
	secret, err := auth.GenerateSessionSecret()
	if err != nil {
		return fmt.Errorf("failed to generate secret: %w", err)
	}
	fmt.Println(secret)
	return nil
}
