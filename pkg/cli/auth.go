package cli

import (
	"fmt"

	"github.com/mchmarny/trustmeter/pkg/auth"
	"github.com/urfave/cli/v2"
)

const clientID = "f1b500ebdf533aa8a3e2"

var authCmd = &cli.Command{
	Name:            "auth",
	HideHelpCommand: true,
	Usage:           "Authenticate to GitHub to obtain an access token",
	Action:          cmdInitAuthFlow,
}

func cmdInitAuthFlow(c *cli.Context) error {
	cfg := getConfig(c)

	code, err := auth.GetDeviceCode(c.Context, clientID)
	if err != nil {
		return fmt.Errorf("getting device code: %w", err)
	}

	fmt.Printf("1). Copy this code: %s\n", code.UserCode)
	fmt.Printf("2). Navigate to this URL in your browser to authenticate: %s\n", code.VerificationURL)
	fmt.Print("3). Hit enter to complete the process:\n")
	fmt.Print(">")

	if _, err = fmt.Scanln(); err != nil {
		return fmt.Errorf("reading user input: %w", err)
	}

	token, err := auth.GetToken(c.Context, clientID, code)
	if err != nil {
		return fmt.Errorf("getting token: %w", err)
	}

	if err = auth.SaveToken(cfg.HomeDir, token.AccessToken); err != nil {
		return fmt.Errorf("saving token: %w", err)
	}

	fmt.Println("Token saved")
	return nil
}
