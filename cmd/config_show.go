package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"gitjrnl/config"
)

var configShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show active configuration values.",
	Long: `Display the currently loaded configuration and the resolved config file path.

This command validates the configuration before printing values.`,
	Example: `
  # Show active configuration
  gitjrnl config show
`,
	Run: func(cmd *cobra.Command, args []string) {
		cfg, err := config.LoadAndValidate()
		if err != nil {
			fmt.Println("Invalid config:", err)
			return
		}

		if configPath := viper.ConfigFileUsed(); configPath != "" {
			fmt.Println("Config file loaded from:", configPath)
		}
		fmt.Println("Configuration:")
		fmt.Printf("github.api_url: %s\n", cfg.GitHub.APIURL)
		fmt.Printf("github.user_agent: %s\n", cfg.GitHub.UserAgent)
		if cfg.GitHub.Token != "" {
			fmt.Println("github.token: (set)")
		} else {
			fmt.Println("github.token: (not set)")
		}
		fmt.Printf("fetch.page_size: %d\n", cfg.Fetch.PageSize)
		fmt.Printf("fetch.default_branch: %s\n", cfg.Fetch.DefaultBranch)
		fmt.Printf("save.debounce_ms: %d\n", cfg.Save.DebounceMS)
		fmt.Printf("export.format: %s\n", cfg.Export.Format)
	},
}

func init() {
	configCmd.AddCommand(configShowCmd)
}
