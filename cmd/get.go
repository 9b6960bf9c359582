package cmd

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/ytget/aprit/internal/download"
	"github.com/ytget/aprit/internal/model"
	"github.com/ytget/aprit/internal/platform"
)

// Errors reported by the get command
var (
	errInterrupted = errors.New("download interrupted")
	errHelperExit  = errors.New("helper exited with an error")
)

// getSessionID names the only session of a headless download
const getSessionID = "get"

var (
	getDir         string
	getConnections int
	getInterval    time.Duration
)

var getCmd = &cobra.Command{
	Use:   "get <url>",
	Short: "Download one URL with aria2c without opening the window",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		helperCfg, err := loadHelperConfig()
		if err != nil {
			return err
		}

		dir := getDir
		if dir == "" {
			if dir, err = platform.GetHomeDownloadsDir(); err != nil {
				return err
			}
		}
		fs := platform.NewFS()
		if err := platform.CreateDirectoryIfNotExists(fs, dir); err != nil {
			return err
		}
		if err := platform.CheckWritableDir(fs, dir); err != nil {
			return err
		}

		ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
		defer stop()

		job := getJob{
			Launcher:    download.ExecLauncher(helperCfg.Launcher()),
			ExtraArgs:   helperCfg.ExtraArgs,
			URL:         args[0],
			Dir:         dir,
			Connections: getConnections,
			Interval:    getInterval,
		}
		return job.run(ctx, cmd.OutOrStdout())
	},
}

func init() {
	getCmd.Flags().StringVarP(&getDir, "dir", "d", "", "Destination directory (defaults to ~/Downloads)")
	getCmd.Flags().IntVarP(&getConnections, "connections", "n", model.DefaultConnections,
		fmt.Sprintf("Connections per download (%d-%d)", model.MinConnections, model.MaxConnections))
	getCmd.Flags().DurationVar(&getInterval, "interval", 2*time.Second, "How often to report helper usage")
}

// getJob runs a single session in the foreground
type getJob struct {
	Launcher    download.Launcher
	ExtraArgs   []string
	URL         string
	Dir         string
	Connections int
	Interval    time.Duration
}

// run starts the session and blocks until the helper exits or ctx is cancelled,
// in which case the helper is stopped first.
func (j getJob) run(ctx context.Context, out io.Writer) error {
	session := download.NewSession(getSessionID, getSessionID, model.SessionConfig{}, j.Launcher, j.ExtraArgs...)
	session.Configure(j.URL, j.Dir, j.Connections)

	// A session emits at most three events per start
	events := make(chan model.Event, 4)
	session.SetUpdateCallback(func(ev model.Event) {
		select {
		case events <- ev:
		default:
		}
	})

	if err := session.Start(); err != nil {
		return err
	}

	snap := session.Snapshot()
	printHeader(out, snap.Config.URL)
	printInfo(out, fmt.Sprintf("helper started, PID %d, %d connections, saving to %s",
		snap.PID, snap.Config.Connections, snap.Config.DestinationDir))

	interval := j.Interval
	if interval <= 0 {
		interval = 2 * time.Second
	}
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			printWarning(out, "interrupted, stopping helper")
			session.Stop()
			return errInterrupted
		case ev := <-events:
			if ev.To != model.SessionIdle {
				continue
			}
			if ev.ExitCode != 0 {
				if last := session.LastOutput(); last != "" {
					printStream(out, last)
				}
				return fmt.Errorf("%w: exit code %d", errHelperExit, ev.ExitCode)
			}
			printSuccess(out, "download finished")
			return nil
		case <-ticker.C:
			if usage, err := session.Usage(); err == nil {
				printStream(out, usage.String())
			}
			if last := session.LastOutput(); last != "" {
				printStream(out, last)
			}
		}
	}
}
