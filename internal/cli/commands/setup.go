package commands

import (
	"fmt"
	"os"
	"strings"
	"syscall"

	"github.com/AlecAivazis/survey/v2"
	"github.com/urfave/cli/v2"
	"golang.org/x/term"

	"github.com/daybookhq/daybook/internal/client"
	"github.com/daybookhq/daybook/internal/config"
)

func NewSetupCommand() *cli.Command {
	return &cli.Command{
		Name:  "setup",
		Usage: "Configure the CLI with user authentication",
		Subcommands: []*cli.Command{
			{
				Name:  "register",
				Usage: "Register a new account",
				Flags: []cli.Flag{apiURLFlag()},
				Action: func(c *cli.Context) error {
					return handleRegister(c.String("api-url"))
				},
			},
			{
				Name:  "login",
				Usage: "Login with existing credentials",
				Flags: []cli.Flag{apiURLFlag()},
				Action: func(c *cli.Context) error {
					return handleLogin(c.String("api-url"))
				},
			},
			{
				Name:  "api-key",
				Usage: "Manually set an API key",
				Action: func(c *cli.Context) error {
					return handleManualAPIKey()
				},
			},
			{
				Name:  "show",
				Usage: "Show the current configuration",
				Action: func(c *cli.Context) error {
					return handleShowConfig()
				},
			},
		},
		Action: func(c *cli.Context) error {
			return cli.ShowCommandHelp(c, "setup")
		},
	}
}

func apiURLFlag() cli.Flag {
	return &cli.StringFlag{
		Name:  "api-url",
		Usage: "API base URL to save in the CLI config",
	}
}

func promptCredentials() (email, password string, err error) {
	if err = survey.AskOne(&survey.Input{Message: "Email:"}, &email, survey.WithValidator(survey.Required)); err != nil {
		return "", "", err
	}

	fmt.Print("Password: ")
	raw, err := term.ReadPassword(int(syscall.Stdin))
	fmt.Println()
	if err != nil {
		return "", "", fmt.Errorf("could not read password: %w", err)
	}
	return strings.TrimSpace(email), string(raw), nil
}

func saveLogin(baseURL, email, apiKey string) error {
	cfg, err := config.LoadCLIConfig()
	if err != nil {
		cfg = &config.CLIConfig{}
	}
	if baseURL != "" {
		cfg.APIBaseURL = baseURL
	}
	cfg.Email = email
	if err := config.SaveCLIConfig(cfg); err != nil {
		return fmt.Errorf("could not save config: %w", err)
	}
	if err := config.StoreAPIKey(apiKey); err != nil {
		return fmt.Errorf("could not store API key: %w", err)
	}
	return nil
}

func handleRegister(baseURL string) error {
	email, password, err := promptCredentials()
	if err != nil {
		return err
	}

	apiClient := client.NewClient()
	if baseURL != "" {
		apiClient.BaseURL = baseURL
	}
	result, err := apiClient.Register(email, password)
	if err != nil {
		return fmt.Errorf("registration failed: %w", err)
	}

	if err := saveLogin(baseURL, email, result.APIKey); err != nil {
		return err
	}

	fmt.Println("✅ Account registered successfully!")
	fmt.Println("✅ API key stored in the system keyring.")
	return nil
}

func handleLogin(baseURL string) error {
	email, password, err := promptCredentials()
	if err != nil {
		return err
	}

	apiClient := client.NewClient()
	if baseURL != "" {
		apiClient.BaseURL = baseURL
	}
	result, err := apiClient.Login(email, password)
	if err != nil {
		return fmt.Errorf("login failed: %w", err)
	}

	if err := saveLogin(baseURL, email, result.APIKey); err != nil {
		return err
	}

	fmt.Println("✅ Login successful!")
	fmt.Println("✅ API key stored in the system keyring.")
	return nil
}

func handleManualAPIKey() error {
	fmt.Print("Enter your API key: ")
	raw, err := term.ReadPassword(int(syscall.Stdin))
	fmt.Println()
	if err != nil {
		return fmt.Errorf("could not read API key: %w", err)
	}
	key := strings.TrimSpace(string(raw))
	if key == "" {
		return fmt.Errorf("API key is required")
	}

	if err := config.StoreAPIKey(key); err != nil {
		return fmt.Errorf("could not store API key: %w", err)
	}
	fmt.Println("✅ API key stored successfully!")
	return nil
}

func handleShowConfig() error {
	cfg, err := config.LoadCLIConfig()
	if err != nil {
		return err
	}

	path, _ := config.GetCLIConfigPath()
	fmt.Printf("Config file: %s\n", path)
	if cfg.APIBaseURL != "" {
		fmt.Printf("API base URL: %s\n", cfg.APIBaseURL)
	} else {
		fmt.Println("API base URL: (default http://localhost:8080)")
	}
	if cfg.Email != "" {
		fmt.Printf("Email: %s\n", cfg.Email)
	}
	if config.LoadAPIKey() != "" {
		fmt.Println("API key: stored")
	} else {
		fmt.Println("API key: not set")
		fmt.Println("💡 Run 'daybook setup login' to authenticate.")
	}

	if envURL := os.Getenv("DAYBOOK_API_URL"); envURL != "" {
		fmt.Printf("DAYBOOK_API_URL override: %s\n", envURL)
	}
	return nil
}
