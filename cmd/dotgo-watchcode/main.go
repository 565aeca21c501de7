// Command dotgo-watchcode watches a single input directory for media
// files, probes newly stabilized files, expands a declarative transcode
// profile into a plan, and executes it via ffmpeg. A single flat flag
// set, no subcommands, no viper — the profile file, not a layered config
// system, is the only configuration surface here.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/dotsoulja/dotgo-watchcode/internal/applog"
	"github.com/dotsoulja/dotgo-watchcode/internal/profile"
	"github.com/dotsoulja/dotgo-watchcode/orchestrator"
)

var (
	inputDir    string
	outputDir   string
	profilePath string
	watch       bool
	debug       bool
)

var rootCmd = &cobra.Command{
	Use:   "dotgo-watchcode",
	Short: "Directory-driven media transcoding orchestrator",
	Long: `dotgo-watchcode watches an input directory for media files, probes each
one, expands a declarative profile into a plan of ffmpeg invocations, and
runs them one at a time, recording already-processed files so they are
never reprocessed.`,
	SilenceUsage:  true,
	SilenceErrors: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		return run()
	},
}

func init() {
	rootCmd.Flags().StringVarP(&inputDir, "input", "i", "", "input directory to watch (required)")
	rootCmd.Flags().StringVarP(&outputDir, "output", "o", "", "output directory to write to (required)")
	rootCmd.Flags().StringVarP(&profilePath, "profile", "p", "", "path to the profile file (required)")
	rootCmd.Flags().BoolVarP(&watch, "watch", "w", false, "keep watching after the initial scan")
	rootCmd.Flags().BoolVarP(&debug, "debug", "v", false, "verbose logging")

	for _, name := range []string{"input", "output", "profile"} {
		if err := rootCmd.MarkFlagRequired(name); err != nil {
			panic(err)
		}
	}
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "dotgo-watchcode: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	logger := &applog.ConsoleLogger{Verbose: debug}

	p, err := profile.Load(profilePath)
	if err != nil {
		logger.Errorf("failed to load profile: %v", err)
		return err
	}

	if inputDir != "" {
		p.Input.Directory = inputDir
	}
	if outputDir != "" {
		p.Output.Directory = outputDir
	}
	if err := profile.Validate(*p); err != nil {
		logger.Errorf("invalid profile: %v", err)
		return err
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		<-sigCh
		logger.Infof("shutting down")
		cancel()
	}()

	orch := orchestrator.New(p, logger, watch)
	if err := orch.Run(ctx); err != nil {
		logger.Errorf("fatal: %v", err)
		return err
	}
	return nil
}
