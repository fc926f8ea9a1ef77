package cmd

import (
	"fmt"
	"math/big"
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/AINative-studio/ainative-code/internal/client"
	"github.com/AINative-studio/ainative-code/internal/logger"
)

var (
	clientServerAddr string
	clientUser       string
	clientPassword   string
	clientParamsFile string
)

var clientCmd = &cobra.Command{
	Use:   "client",
	Short: "Register and authenticate against a cp-zkp-auth server",
	RunE:  runClient,
}

func init() {
	clientCmd.Flags().StringVar(&clientServerAddr, "server", "127.0.0.1:8080", "server address")
	clientCmd.Flags().StringVar(&clientUser, "user", "", "username")
	clientCmd.Flags().StringVar(&clientPassword, "password", "", "secret (prompted interactively if omitted)")
	clientCmd.Flags().StringVar(&clientParamsFile, "params", "", "group parameter file (KEY=value), env overrides")
}

func runClient(cmd *cobra.Command, args []string) error {
	params, err := loadGroupParams(clientParamsFile)
	if err != nil {
		return err
	}

	user := clientUser
	if user == "" {
		fmt.Fprint(os.Stdout, "Username: ")
		if _, err := fmt.Fscanln(os.Stdin, &user); err != nil {
			return fmt.Errorf("reading username: %w", err)
		}
	}

	secret, err := resolveSecret()
	if err != nil {
		return err
	}
	x := secretToScalar(secret)

	driver := client.New(clientServerAddr, params)
	if err := driver.Connect(); err != nil {
		return err
	}
	defer driver.Close()

	if err := driver.Register(user, x); err != nil {
		logger.WarnWithFields("register failed, continuing to authenticate", map[string]interface{}{"error": err.Error()})
	}

	sessionID, err := driver.Authenticate(user, x)
	if err != nil {
		return err
	}

	fmt.Fprintf(os.Stdout, "authenticated: session_id=%s\n", sessionID)
	return nil
}

// resolveSecret returns the secret from --password, or prompts for it
// with echo suppressed via golang.org/x/term; the prompt fails with an
// error when stdin is not a terminal.
func resolveSecret() (string, error) {
	if clientPassword != "" {
		return clientPassword, nil
	}

	fmt.Fprint(os.Stdout, "Password: ")
	bytePassword, err := term.ReadPassword(int(os.Stdin.Fd()))
	fmt.Fprintln(os.Stdout)
	if err != nil {
		return "", fmt.Errorf("reading password: %w", err)
	}
	return string(bytePassword), nil
}

// secretToScalar derives the secret exponent x from the raw secret
// string by treating its bytes as a big-endian integer. A real
// deployment would derive x via a memory-hard KDF instead; password
// hardening is out of scope here.
func secretToScalar(secret string) *big.Int {
	x := new(big.Int).SetBytes([]byte(secret))
	return x
}
