package cli

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/claudiu-carv/ats-mock-simulator/pkg/config"
	"github.com/claudiu-carv/ats-mock-simulator/pkg/engine"
	"github.com/claudiu-carv/ats-mock-simulator/pkg/logging"
)

type serveFlags struct {
	configFile string
	mockPort   int
	adminPort  int
	logLevel   string
	logFormat  string
}

var serveFlagVals serveFlags

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the mock simulator (foreground)",
	Long: `Start the mock simulator. Serves mock endpoint traffic on the mock
port and the management REST API on the admin port.

Endpoints can be preloaded from the configuration file and managed at
runtime through the admin API.`,
	Example: `  # Start with defaults
  atsmock serve

  # Start with a config file on custom ports
  atsmock serve --config atsmock.yaml --port 9000 --admin-port 9001`,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runServe(&serveFlagVals)
	},
}

func init() {
	rootCmd.AddCommand(serveCmd)

	f := &serveFlagVals
	serveCmd.Flags().StringVarP(&f.configFile, "config", "c", "", "Path to configuration file")
	serveCmd.Flags().IntVarP(&f.mockPort, "port", "p", 0, "Mock traffic port (overrides config)")
	serveCmd.Flags().IntVarP(&f.adminPort, "admin-port", "a", -1, "Admin API port, 0 disables (overrides config)")
	serveCmd.Flags().StringVar(&f.logLevel, "log-level", "", "Log level: debug, info, warn, error")
	serveCmd.Flags().StringVar(&f.logFormat, "log-format", "", "Log format: text or json")
}

func runServe(f *serveFlags) error {
	cfg, err := loadServeConfig(f)
	if err != nil {
		return err
	}

	log := logging.New(logging.Config{
		Level:  logging.ParseLevel(cfg.Logging.Level),
		Format: logging.ParseFormat(cfg.Logging.Format),
		Output: os.Stderr,
	})

	srv := engine.NewServer(cfg, engine.WithLogger(log))
	if err := srv.LoadEndpoints(config.BaseDir(f.configFile)); err != nil {
		return err
	}
	if err := srv.Start(); err != nil {
		return err
	}

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	sig := <-sigCh
	log.Info("shutting down", "signal", sig.String())

	return srv.Stop()
}

func loadServeConfig(f *serveFlags) (*config.Config, error) {
	cfg := config.DefaultConfig()
	if f.configFile != "" {
		loaded, err := config.LoadFile(f.configFile)
		if err != nil {
			return nil, err
		}
		cfg = loaded
	}

	// Flags override the config file.
	if f.mockPort > 0 {
		cfg.MockPort = f.mockPort
	}
	if f.adminPort >= 0 {
		cfg.AdminPort = f.adminPort
	}
	if f.logLevel != "" {
		cfg.Logging.Level = f.logLevel
	}
	if f.logFormat != "" {
		cfg.Logging.Format = f.logFormat
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	return cfg, nil
}
