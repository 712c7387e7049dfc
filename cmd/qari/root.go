package cmd

import (
	"context"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/kerbaras/qari/pkg/app"
	"github.com/kerbaras/qari/pkg/config"
	"github.com/kerbaras/qari/pkg/services"
	"github.com/kerbaras/qari/pkg/utils"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
)

var (
	cfg       *config.Config
	logCloser io.Closer
)

var rootCmd = &cobra.Command{
	Use:   "qari",
	Short: "Read and listen to the Quran in your terminal",
	Long:  "Browse the surahs, read their text and follow the recitation with a TUI, or export them as an EPUB",
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		var err error
		if cfg, err = loadConfig(cmd); err != nil {
			return err
		}

		// the TUI owns the terminal, subcommands log to stderr
		if cmd == rootCmd {
			logCloser, err = utils.SetupFileLogger(cfg.LogFile, cfg.Debug)
			return err
		}
		utils.SetupConsoleLogger(cfg.Debug)
		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		if logCloser != nil {
			logCloser.Close()
		}
	},
	Run: func(cmd *cobra.Command, args []string) {
		ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
		defer stop()

		controller, err := services.NewController(cfg)
		cobra.CheckErr(err)
		defer func() {
			if err := controller.Close(); err != nil {
				log.Warn().Err(err).Msg("failed to close controller")
			}
		}()

		log.Info().Str("reciter", cfg.ReciterID).Bool("audio", !cfg.NoAudio).Msg("starting reader")
		if err := app.NewApp(controller).Run(ctx); err != nil && ctx.Err() == nil {
			cobra.CheckErr(err)
		}
	},
}

func init() {
	flags := rootCmd.PersistentFlags()
	flags.String("reciter", config.DefaultReciter, "Reciter edition, also used for the text")
	flags.String("api-base", config.DefaultAPIBase, "Base URL of the Quran API")
	flags.String("audio-cdn", config.DefaultAudioCDNBase, "Base URL of the recitation CDN")
	flags.Bool("no-audio", false, "Disable the audio device")
	flags.Bool("debug", false, "Enable debug logging")
}

// loadConfig layers flags the user set explicitly on top of the environment.
func loadConfig(cmd *cobra.Command) (*config.Config, error) {
	c, err := config.Load()
	if err != nil {
		return nil, err
	}

	flags := cmd.Flags()
	if flags.Changed("reciter") {
		c.ReciterID, _ = flags.GetString("reciter")
	}
	if flags.Changed("api-base") {
		c.APIBase, _ = flags.GetString("api-base")
	}
	if flags.Changed("audio-cdn") {
		c.AudioCDNBase, _ = flags.GetString("audio-cdn")
	}
	if flags.Changed("no-audio") {
		c.NoAudio, _ = flags.GetBool("no-audio")
	}
	if flags.Changed("debug") {
		c.Debug, _ = flags.GetBool("debug")
	}
	return c, c.Validate()
}

func Execute() {
	if err := rootCmd.ExecuteContext(context.Background()); err != nil {
		os.Exit(1)
	}
}
