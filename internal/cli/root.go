// Package cli provides the command-line interface for sshconfgen.
package cli

import (
	"context"
	"fmt"
	"log/slog"
	"strconv"
	"time"

	"github.com/spf13/cobra"

	"github.com/treykane/sshconfgen/internal/appconfig"
	"github.com/treykane/sshconfgen/internal/doctor"
	"github.com/treykane/sshconfgen/internal/events"
	"github.com/treykane/sshconfgen/internal/generator"
	"github.com/treykane/sshconfgen/internal/logging"
	"github.com/treykane/sshconfgen/internal/monitor"
	"github.com/treykane/sshconfgen/internal/probe"
	"github.com/treykane/sshconfgen/internal/rules"
	"github.com/treykane/sshconfgen/internal/util"
)

// Version is stamped at build time via -ldflags.
var Version = "dev"

const rootLong = `sshconfgen generates a new SSH client config by alphabetically merging
.sshconf fragments found in ~/.ssh/conf.d/.

Each fragment may carry four marker-delimited sections: CONDITIONS,
GLOBAL CONFIG, LOCAL CONFIG and REMOTE CONFIG. The conditions decide,
per fragment, whether the local or remote section is included:

  # CONDITIONS BEGIN
  LocalSSID foo,bar5ghz
  LocalGateway 192.168.1.1|00:11:22:33:44:55
  LocalPing 192.168.1.100,172.16.1.100
  # CONDITIONS END

LocalSSID succeeds when the current wireless network matches any listed
name. LocalGateway succeeds when any listed ip|mac pair matches the ARP
table. LocalPing succeeds when any listed address answers a ping; note
that unreachable addresses delay generation. The first success selects
the local section; otherwise the remote section is used. Global sections
are always included. The previous config is kept as a backup until the
new one is verified.`

// NewRootCommand creates the root cobra command.
func NewRootCommand() *cobra.Command {
	var (
		verbose     bool
		showVersion bool
	)

	root := &cobra.Command{
		Use:   "sshconfgen",
		Short: "Generate ~/.ssh/config from network-aware fragments",
		Long:  rootLong,
		RunE: func(cmd *cobra.Command, args []string) error {
			if showVersion {
				fmt.Fprintln(cmd.OutOrStdout(), Version)
				return nil
			}

			log := logging.New(logging.Config{Verbose: verbose})
			gen, err := newGenerator(log)
			if err != nil {
				return err
			}

			monitorFlag := cmd.Flags().Lookup("monitor-ssid")
			var interval time.Duration
			if monitorFlag.Changed {
				secs, err := strconv.Atoi(monitorFlag.Value.String())
				if err != nil || secs <= 0 {
					return fmt.Errorf("invalid duration specified for --monitor-ssid: %q", monitorFlag.Value.String())
				}
				interval = time.Duration(secs) * time.Second
			}

			if err := gen.Run(); err != nil {
				return err
			}
			if !monitorFlag.Changed {
				return nil
			}

			m := &monitor.Monitor{
				Probe:    gen.Probe,
				Gen:      gen,
				Interval: interval,
				Log:      log,
			}
			return m.Poll(context.Background())
		},
	}

	root.Flags().BoolVarP(&verbose, "verbose", "v", false, "enable diagnostic logging")
	root.Flags().BoolVarP(&showVersion, "version", "V", false, "print version information")
	root.Flags().String("monitor-ssid", "", "regenerate when the SSID changes, polling every # seconds")
	root.Flags().Lookup("monitor-ssid").NoOptDefVal = strconv.Itoa(util.DefaultPollSeconds)

	root.AddCommand(newWatchCmd(), newDoctorCmd(), newEventsCmd())
	return root
}

// newGenerator builds the full pipeline from the app config and the real
// environment probe.
func newGenerator(log *slog.Logger) (*generator.Generator, error) {
	cfg, err := appconfig.Load()
	if err != nil {
		return nil, err
	}
	fragmentDir, outputPath, err := appconfig.ResolvePaths(cfg)
	if err != nil {
		return nil, err
	}

	journal, err := events.NewStore()
	if err != nil {
		log.Warn("event journal unavailable", "error", err)
		journal = nil
	}

	p := probe.New(log, probe.Options{
		PingTimeout:  time.Duration(cfg.Ping.TimeoutSeconds) * time.Second,
		PingAttempts: cfg.Ping.Attempts,
	})
	return &generator.Generator{
		FragmentDir: fragmentDir,
		OutputPath:  outputPath,
		Extension:   cfg.Extension,
		Probe:       p,
		Rules:       rules.Options{},
		Log:         log,
		Journal:     journal,
	}, nil
}

func newWatchCmd() *cobra.Command {
	var verbose bool
	cmd := &cobra.Command{
		Use:   "watch",
		Short: "Regenerate whenever fragment files change",
		RunE: func(cmd *cobra.Command, args []string) error {
			log := logging.New(logging.Config{Verbose: verbose})
			gen, err := newGenerator(log)
			if err != nil {
				return err
			}
			if err := gen.Run(); err != nil {
				return err
			}
			m := &monitor.Monitor{Probe: gen.Probe, Gen: gen, Log: log}
			return m.Watch(cmd.Context(), gen.FragmentDir, gen.Extension)
		},
	}
	cmd.Flags().BoolVarP(&verbose, "verbose", "v", false, "enable diagnostic logging")
	return cmd
}

func newDoctorCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "doctor",
		Short: "Diagnose fragment and probe setup",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := appconfig.Load()
			if err != nil {
				return err
			}
			fragmentDir, _, err := appconfig.ResolvePaths(cfg)
			if err != nil {
				return err
			}
			report := doctor.Run(fragmentDir, cfg.Extension)
			fmt.Fprint(cmd.OutOrStdout(), report.Render())
			return nil
		},
	}
}

func newEventsCmd() *cobra.Command {
	var (
		limit     int
		eventType string
	)
	cmd := &cobra.Command{
		Use:   "events",
		Short: "Show the generation journal",
		RunE: func(cmd *cobra.Command, args []string) error {
			store, err := events.NewStore()
			if err != nil {
				return err
			}
			evts, err := store.Read(events.Query{EventType: eventType, Limit: limit})
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "%-25s %-9s %-10s %s\n", "TIMESTAMP", "TYPE", "FRAGMENTS", "OUTPUT")
			for _, evt := range evts {
				fmt.Fprintf(out, "%-25s %-9s %-10d %s\n",
					evt.Timestamp.Format(time.RFC3339), evt.EventType, len(evt.Fragments), util.EmptyDash(evt.Output))
			}
			return nil
		},
	}
	cmd.Flags().IntVar(&limit, "limit", 20, "maximum number of events to show")
	cmd.Flags().StringVar(&eventType, "type", "", "filter by event type (commit, restore, empty)")
	return cmd
}
