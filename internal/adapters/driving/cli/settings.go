package cli

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/custodia-labs/docdeck/internal/core/domain"
)

var settingsCmd = &cobra.Command{
	Use:   "settings",
	Short: "Manage application settings",
	Long: `View and configure the AI provider and record storage.

Provider API keys may also be set through GEMINI_API_KEY, OPENAI_API_KEY or
ANTHROPIC_API_KEY, in the environment or in a .env file.`,
	RunE: runSettingsShow,
}

var settingsShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show current settings",
	RunE:  runSettingsShow,
}

var settingsLLMCmd = &cobra.Command{
	Use:   "llm",
	Short: "Configure the AI provider interactively",
	RunE:  runSettingsLLM,
}

var settingsSetCmd = &cobra.Command{
	Use:   "set",
	Short: "Configure the AI provider from flags",
	Long: `Sets the AI provider without prompting.

Examples:
  docdeck settings set --provider gemini --api-key KEY
  docdeck settings set --provider ollama --model llama3.2 --base-url http://localhost:11434
  docdeck settings set --rate 0.5 --burst 2`,
	Args: cobra.NoArgs,
	RunE: runSettingsSet,
}

var settingsStorageCmd = &cobra.Command{
	Use:   "storage",
	Short: "Configure record storage",
	Long: `Selects where documents, summaries and presentations are kept.

Backends:
  sqlite - single database file (default)
  file   - one JSON file per collection
  memory - nothing is kept after exit`,
	Args: cobra.NoArgs,
	RunE: runSettingsStorage,
}

var settingsValidateCmd = &cobra.Command{
	Use:   "validate",
	Short: "Check settings and ping the AI provider",
	Args:  cobra.NoArgs,
	RunE:  runSettingsValidate,
}

var (
	setProvider string
	setModel    string
	setAPIKey   string
	setBaseURL  string
	setRate     float64
	setBurst    int

	storageBackend string
	storageDir     string
)

func init() {
	flags := settingsSetCmd.Flags()
	flags.StringVar(&setProvider, "provider", "", "AI provider: gemini, openai, anthropic or ollama")
	flags.StringVar(&setModel, "model", "", "model name (default: provider default)")
	flags.StringVar(&setAPIKey, "api-key", "", "API key (default: from environment)")
	flags.StringVar(&setBaseURL, "base-url", "", "API endpoint override")
	flags.Float64Var(&setRate, "rate", 0, "requests per second (0 disables limiting)")
	flags.IntVar(&setBurst, "burst", 0, "maximum burst when limiting")

	settingsStorageCmd.Flags().StringVar(&storageBackend, "backend", "", "storage backend: sqlite, file or memory")
	settingsStorageCmd.Flags().StringVar(&storageDir, "dir", "", "data directory (default: <config-dir>/data)")
	_ = settingsStorageCmd.MarkFlagRequired("backend")

	settingsCmd.AddCommand(settingsShowCmd)
	settingsCmd.AddCommand(settingsLLMCmd)
	settingsCmd.AddCommand(settingsSetCmd)
	settingsCmd.AddCommand(settingsStorageCmd)
	settingsCmd.AddCommand(settingsValidateCmd)
	rootCmd.AddCommand(settingsCmd)
}

func runSettingsShow(cmd *cobra.Command, _ []string) error {
	if settingsService == nil {
		return notConfigured("settings service")
	}

	settings, err := settingsService.Get()
	if err != nil {
		return fmt.Errorf("failed to get settings: %w", err)
	}

	cmd.Println("Current Settings")
	cmd.Println("================")
	cmd.Println()

	cmd.Println("[AI Provider]")
	cmd.Printf("  Provider: %s\n", settings.LLM.Provider.Description())
	cmd.Printf("  Model: %s\n", settings.LLM.Model)
	if settings.LLM.BaseURL != "" {
		cmd.Printf("  Base URL: %s\n", settings.LLM.BaseURL)
	}
	if settings.LLM.Provider.RequiresAPIKey() {
		if settings.LLM.APIKey != "" {
			cmd.Printf("  API Key: %s\n", maskAPIKey(settings.LLM.APIKey))
		} else {
			cmd.Printf("  API Key: (not set, export %s)\n", settings.LLM.Provider.APIKeyEnv())
		}
	}
	if settings.LLM.RequestsPerSecond > 0 {
		cmd.Printf("  Rate limit: %g/s, burst %d\n", settings.LLM.RequestsPerSecond, settings.LLM.Burst)
	} else {
		cmd.Println("  Rate limit: off")
	}
	status := "configured"
	if !settings.LLM.IsConfigured() {
		status = "not configured (AI features use fallbacks)"
	}
	cmd.Printf("  Status: %s\n", status)
	cmd.Println()

	cmd.Println("[Storage]")
	cmd.Printf("  Backend: %s\n", settings.Storage.Backend)
	dir := settings.Storage.Dir
	if dir == "" {
		dir = "(default)"
	}
	cmd.Printf("  Directory: %s\n", dir)
	cmd.Println()

	if err := settingsService.Validate(); err != nil {
		cmd.Printf("Warning: %v\n", err)
		cmd.Println("Run 'docdeck settings llm' to fix configuration issues.")
	} else {
		cmd.Println("Configuration is valid.")
	}

	return nil
}

func runSettingsLLM(cmd *cobra.Command, _ []string) error {
	if settingsService == nil {
		return notConfigured("settings service")
	}

	reader := bufio.NewReader(cmd.InOrStdin())
	return configureLLMProvider(cmd, reader)
}

func configureLLMProvider(cmd *cobra.Command, reader *bufio.Reader) error {
	cmd.Println("Select AI Provider")
	providers := domain.AllAIProviders()
	for i, p := range providers {
		cmd.Printf("  %d. %s\n", i+1, p.Description())
	}
	cmd.Print("\nEnter choice [1]: ")
	input := readLine(reader)
	idx := parseChoice(input, len(providers), 1)
	selectedProvider := providers[idx-1]

	defaultModel := domain.DefaultLLMModels()[selectedProvider]
	cmd.Printf("Enter model name [%s]: ", defaultModel)
	model := readLine(reader)
	if model == "" {
		model = defaultModel
	}

	var apiKey string
	if selectedProvider.RequiresAPIKey() {
		cmd.Printf("Enter API key (blank to use %s): ", selectedProvider.APIKeyEnv())
		apiKey = readPassword(cmd.InOrStdin(), reader)
		cmd.Println()
	}

	if err := settingsService.SetLLMProvider(selectedProvider, model, apiKey); err != nil {
		return fmt.Errorf("failed to configure AI provider: %w", err)
	}

	cmd.Print("Validating configuration... ")
	if err := settingsService.ValidateLLMConfig(); err != nil {
		cmd.Printf("FAILED: %v\n", err)
		return fmt.Errorf("AI provider validation failed: %w", err)
	}
	cmd.Println("OK")

	cmd.Printf("AI provider configured: %s (%s)\n", selectedProvider.Description(), model)
	return nil
}

func runSettingsSet(cmd *cobra.Command, _ []string) error {
	if settingsService == nil {
		return notConfigured("settings service")
	}

	flags := cmd.Flags()
	if flags.Changed("provider") {
		provider := domain.AIProvider(strings.ToLower(setProvider))
		if err := settingsService.SetLLMProvider(provider, setModel, setAPIKey); err != nil {
			return fmt.Errorf("failed to set provider: %w", err)
		}
	}

	settings, err := settingsService.Get()
	if err != nil {
		return fmt.Errorf("failed to get settings: %w", err)
	}
	if flags.Changed("model") {
		settings.LLM.Model = setModel
	}
	if flags.Changed("api-key") {
		settings.LLM.APIKey = setAPIKey
	}
	if flags.Changed("base-url") {
		settings.LLM.BaseURL = setBaseURL
	}
	if flags.Changed("rate") {
		settings.LLM.RequestsPerSecond = setRate
	}
	if flags.Changed("burst") {
		settings.LLM.Burst = setBurst
	}
	if err := settingsService.Save(settings); err != nil {
		return fmt.Errorf("failed to save settings: %w", err)
	}
	if err := settingsService.Validate(); err != nil {
		return err
	}

	cmd.Printf("AI provider: %s (%s)\n", settings.LLM.Provider.Description(), settings.LLM.Model)
	return nil
}

func runSettingsStorage(cmd *cobra.Command, _ []string) error {
	if settingsService == nil {
		return notConfigured("settings service")
	}

	backend := domain.StorageBackend(strings.ToLower(storageBackend))
	if err := settingsService.SetStorage(backend, storageDir); err != nil {
		return fmt.Errorf("failed to set storage: %w", err)
	}
	cmd.Printf("Storage backend set to %s. It takes effect on the next command.\n", backend)
	return nil
}

func runSettingsValidate(cmd *cobra.Command, _ []string) error {
	if settingsService == nil {
		return notConfigured("settings service")
	}

	if err := settingsService.Validate(); err != nil {
		return err
	}
	cmd.Println("Settings: OK")

	settings, err := settingsService.Get()
	if err != nil {
		return fmt.Errorf("failed to get settings: %w", err)
	}
	if !settings.LLM.IsConfigured() {
		cmd.Println("AI provider: not configured")
		return nil
	}

	cmd.Print("AI provider: ")
	if err := settingsService.ValidateLLMConfig(); err != nil {
		cmd.Printf("FAILED: %v\n", err)
		return errors.New("AI provider is unreachable")
	}
	cmd.Println("OK")
	return nil
}

// Helper functions.

//nolint:errcheck // CLI helper, error ignored for UX
func readLine(reader *bufio.Reader) string {
	input, _ := reader.ReadString('\n')
	return strings.TrimSpace(input)
}

func parseChoice(input string, maxVal, defaultVal int) int {
	if input == "" {
		return defaultVal
	}
	val, err := strconv.Atoi(input)
	if err != nil || val < 1 || val > maxVal {
		return defaultVal
	}
	return val
}

// readPassword reads without echo when in is a terminal.
func readPassword(in io.Reader, reader *bufio.Reader) string {
	if f, ok := in.(*os.File); ok && term.IsTerminal(int(f.Fd())) {
		password, err := term.ReadPassword(int(f.Fd()))
		if err == nil {
			return strings.TrimSpace(string(password))
		}
	}
	return readLine(reader)
}

func maskAPIKey(key string) string {
	if len(key) <= 8 {
		return "****"
	}
	return key[:4] + "..." + key[len(key)-4:]
}
