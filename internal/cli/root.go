package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"time"

	"github.com/apex/log"
	logcli "github.com/apex/log/handlers/cli"
	"github.com/spf13/cobra"

	"github.com/wesleyorama2/jobboard/internal/config"
	"github.com/wesleyorama2/jobboard/internal/http"
	"github.com/wesleyorama2/jobboard/internal/jobs"
	"github.com/wesleyorama2/jobboard/internal/output"
)

// errDeclined is returned when the user answers No to a confirmation prompt.
var errDeclined = errors.New("operation cancelled by user")

// app carries the state shared by every command of one invocation.
type app struct {
	stdout io.Writer
	stderr io.Writer

	configPath string
	debug      bool
	verbose    bool
	noColor    bool
	format     string
	timeout    time.Duration

	cfg *config.Config

	// confirm asks a yes/no question; it is replaced in tests.
	confirm func(message string) (bool, error)

	// jobsAPI returns the positions backend for target.
	jobsAPI func(client *http.Client, target string) jobs.API
}

func newApp(stdout, stderr io.Writer) *app {
	return &app{
		stdout:  stdout,
		stderr:  stderr,
		cfg:     config.Default(),
		confirm: surveyConfirm,
		jobsAPI: func(client *http.Client, target string) jobs.API {
			return jobs.NewService(client, target)
		},
	}
}

// rootCmd builds the command tree.
func (a *app) rootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "jobboard",
		Short:   "Search job listings and talk to JSON APIs from the terminal",
		Version: http.Version,
		Long: `jobboard searches a public job listings API and doubles as a small HTTP
client for JSON APIs: every request is classified, timed and can be
inspected with JSON paths and JSON schemas.`,
		SilenceErrors: true,
		SilenceUsage:  true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return a.setup(cmd)
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return cmd.Help()
		},
	}
	cmd.SetOut(a.stdout)
	cmd.SetErr(a.stderr)

	flags := cmd.PersistentFlags()
	flags.StringVar(&a.configPath, "config", "", "Config file (YAML or JSON)")
	flags.BoolVar(&a.debug, "debug", false, "Enable debug logging")
	flags.BoolVarP(&a.verbose, "verbose", "v", false, "Enable verbose output")
	flags.BoolVar(&a.noColor, "no-color", false, "Disable colored output")
	flags.StringVarP(&a.format, "output", "o", "", "Output format: text, json or yaml (default text)")
	flags.DurationVarP(&a.timeout, "timeout", "t", 30*time.Second, "Request timeout")

	cmd.AddCommand(
		a.getCmd(),
		a.postCmd(),
		a.putCmd(),
		a.deleteCmd(),
		a.positionsCmd(),
	)
	return cmd
}

// setup configures logging and loads the config file. Flags given on the
// command line win over the file.
func (a *app) setup(cmd *cobra.Command) error {
	log.SetHandler(logcli.New(a.stderr))
	log.SetLevel(log.InfoLevel)
	if a.debug {
		log.SetLevel(log.DebugLevel)
		log.Debugf("jobboard version %s", http.Version)
	}

	if a.configPath != "" {
		log.Debugf("reading config file from %s", a.configPath)
		cfg, err := config.LoadConfig(a.configPath)
		if err != nil {
			return err
		}
		a.cfg = cfg
	}

	flags := cmd.Flags()
	if !flags.Changed("timeout") && a.cfg.Timeout > 0 {
		a.timeout = time.Duration(a.cfg.Timeout)
	}
	if !flags.Changed("output") {
		a.format = a.cfg.Output
	}
	if !flags.Changed("no-color") && !output.ColorEnabled(os.Stdout) {
		a.noColor = true
	}
	return nil
}

// formatter returns the FormatProvider selected by --output.
func (a *app) formatter() (output.FormatProvider, error) {
	format, err := output.ParseFormat(a.format)
	if err != nil {
		return nil, err
	}
	return output.GetFormatter(format, a.verbose, a.noColor), nil
}

// newClient builds a client from the config file and flags.
func (a *app) newClient() *http.Client {
	options := []http.ClientOption{
		http.WithTimeout(a.timeout),
		http.WithLogger(log.Log),
	}
	if a.cfg.NoDefaultHeaders {
		options = append(options, http.WithDefaultHeaders(http.Headers{}))
	}
	for key, value := range a.cfg.Headers {
		options = append(options, http.WithDefaultHeader(key, value))
	}
	if a.cfg.UserAgent != "" {
		options = append(options, http.WithUserAgent(a.cfg.UserAgent))
	}
	return http.NewClient(options...)
}

// execute runs cmd and reports its error. Cancellations are printed as a
// notice and are not failures.
func (a *app) execute(ctx context.Context, cmd *cobra.Command) error {
	err := cmd.ExecuteContext(ctx)
	switch {
	case err == nil:
		return nil
	case errors.Is(err, errDeclined):
		fmt.Fprintf(a.stderr, "%s %s\n", output.InfoIcon(a.noColor), "Cancelled, nothing was sent")
		return nil
	case http.IsCancelled(err):
		fmt.Fprint(a.stderr, output.FormatError(err, a.noColor))
		return nil
	}
	fmt.Fprint(a.stderr, output.FormatError(err, a.noColor))
	return err
}

// Execute runs the jobboard command line. Interrupts cancel the request in
// flight.
func Execute() error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	a := newApp(os.Stdout, os.Stderr)
	return a.execute(ctx, a.rootCmd())
}
