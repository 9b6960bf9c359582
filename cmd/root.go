package cmd

import (
	"fmt"
	"os"

	"fyne.io/fyne/v2/app"
	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/ytget/aprit/internal/config"
	"github.com/ytget/aprit/internal/download"
	"github.com/ytget/aprit/internal/logging"
	"github.com/ytget/aprit/internal/ui"
)

// AppID scopes the preference store to this application
const AppID = "com.ytget.aprit"

// Version is set by Execute from the build version
var Version = "dev"

var (
	configPath string
	helperPath string
	debug      bool
)

var rootCmd = &cobra.Command{
	Use:           "aprit",
	Short:         "Aprit is a lightweight download tool based on aria2",
	Args:          cobra.NoArgs,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		// A missing .env is not an error
		_ = godotenv.Load()
		logging.Init(debug)
	},
	RunE: func(cmd *cobra.Command, args []string) error {
		helperCfg, err := loadHelperConfig()
		if err != nil {
			return err
		}
		runGUI(helperCfg)
		return nil
	},
}

// Execute runs the root command
func Execute(version string) {
	Version = version
	rootCmd.Version = version
	if err := rootCmd.Execute(); err != nil {
		printError(os.Stderr, err.Error())
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&configPath, "config", "c", "", "Path to YAML helper configuration")
	rootCmd.PersistentFlags().StringVar(&helperPath, "helper", "", "Path to the aria2c executable (overrides config and "+config.EnvHelper+")")
	rootCmd.PersistentFlags().BoolVar(&debug, "debug", false, "Enable debug logging")

	rootCmd.AddCommand(getCmd)
}

// loadHelperConfig merges defaults, the config file, the environment and flags
func loadHelperConfig() (config.HelperConfig, error) {
	cfg := config.DefaultHelperConfig()
	if configPath != "" {
		loaded, err := config.LoadHelperConfig(configPath)
		if err != nil {
			return config.HelperConfig{}, fmt.Errorf("load %s: %w", configPath, err)
		}
		cfg = loaded
	}
	cfg.ApplyEnv()
	if helperPath != "" {
		cfg.Helper = helperPath
	}
	if err := cfg.Validate(); err != nil {
		return config.HelperConfig{}, err
	}
	return cfg, nil
}

func runGUI(helperCfg config.HelperConfig) {
	a := app.NewWithID(AppID)
	a.Settings().SetTheme(ui.NewAppTheme())

	w := a.NewWindow("Aprit")
	w.SetMaster()

	ui.NewRootUI(a, w, ui.Options{
		Version:   Version,
		Launcher:  download.ExecLauncher(helperCfg.Launcher()),
		ExtraArgs: helperCfg.ExtraArgs,
	})

	w.ShowAndRun()
}
