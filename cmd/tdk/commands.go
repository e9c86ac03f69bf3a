package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	sozluk "github.com/clydeofficial/tdk-sozluk"
	"github.com/clydeofficial/tdk-sozluk/pkg/querier"
)

var errUsage = errors.New("invalid usage")

type flags struct {
	host     string
	protocol string
	timeout  time.Duration
	retries  int
	debug    bool
	compact  bool
	save     string

	noCompounds    bool
	noProverbs     bool
	noSignLanguage bool
}

type app struct {
	flags  flags
	stdout io.Writer
	stderr io.Writer
	logger *zap.Logger
	client *sozluk.Client
}

func newRootCmd(stdout, stderr io.Writer) *cobra.Command {
	a := &app{stdout: stdout, stderr: stderr}
	root := &cobra.Command{
		Use:           "tdk",
		Short:         "Look words up in the dictionaries of the Turkish Language Association",
		Version:       sozluk.Version,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			a.logger = newLogger(a.stderr, a.flags.debug)
			a.client = sozluk.New(nil, a.logger, &sozluk.Config{
				Config: querier.Config{
					Host:     a.flags.host,
					Protocol: a.flags.protocol,
				},
			})
			return nil
		},
		PersistentPostRunE: func(cmd *cobra.Command, args []string) error {
			_ = a.logger.Sync()
			return a.client.Close(cmd.Context())
		},
	}

	pf := root.PersistentFlags()
	pf.StringVar(&a.flags.host, "host", "", "dictionary host (default sozluk.gov.tr)")
	pf.StringVar(&a.flags.protocol, "protocol", "", "dictionary protocol (default https)")
	pf.DurationVarP(&a.flags.timeout, "timeout", "t", querier.DefaultTimeout, "timeout of a single request attempt")
	pf.IntVarP(&a.flags.retries, "retries", "r", 3, "number of retries after a failed request")
	pf.BoolVarP(&a.flags.debug, "debug", "d", false, "log every request attempt")
	pf.BoolVar(&a.flags.compact, "compact", false, "print JSON on a single line")
	pf.StringVarP(&a.flags.save, "save", "s", "", "file where the result will be saved as well")

	for _, d := range sozluk.Catalog() {
		root.AddCommand(a.newDictionaryCmd(d))
	}
	root.AddCommand(a.newAllCmd())
	return root
}

func (a *app) newDictionaryCmd(d sozluk.Dictionary) *cobra.Command {
	cmd := &cobra.Command{
		Use:   d.Endpoint() + " <term>",
		Short: "Search the " + d.Name(),
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			searchable, ok := a.client.Lookup(d.Endpoint())
			if !ok {
				return fmt.Errorf("%w: unknown dictionary %s", errUsage, d.Endpoint())
			}
			result, err := searchable.Search(cmd.Context(), strings.Join(args, " "), a.searchOptions(cmd)...)
			if err != nil {
				return err
			}
			return a.print(result)
		},
	}
	if d.Endpoint() == sozluk.CurrentTurkishDictionary.Endpoint() {
		cmd.Flags().BoolVar(&a.flags.noCompounds, "no-compounds", false, "leave compound words out")
		cmd.Flags().BoolVar(&a.flags.noProverbs, "no-proverbs", false, "leave proverbs out")
		cmd.Flags().BoolVar(&a.flags.noSignLanguage, "no-sign-language", false, "leave sign language images out")
	}
	return cmd
}

func (a *app) newAllCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "all <term>",
		Short: "Search every dictionary at once",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			results, err := a.client.SearchAll(cmd.Context(), strings.Join(args, " "), a.searchOptions(cmd)...)
			if err != nil {
				return err
			}
			return a.print(results)
		},
	}
}

// searchOptions turns flags into lookup options. Timeout and retries are
// only passed when set so that the client configuration applies otherwise.
func (a *app) searchOptions(cmd *cobra.Command) []sozluk.Option {
	opts := []sozluk.Option{
		sozluk.WithDebug(a.flags.debug),
		sozluk.WithCompounds(!a.flags.noCompounds),
		sozluk.WithProverbs(!a.flags.noProverbs),
		sozluk.WithSignLanguage(!a.flags.noSignLanguage),
	}
	if cmd.Flags().Changed("timeout") {
		opts = append(opts, sozluk.WithTimeout(a.flags.timeout))
	}
	if cmd.Flags().Changed("retries") {
		opts = append(opts, sozluk.WithRetries(a.flags.retries))
	}
	return opts
}

func (a *app) print(v interface{}) error {
	var (
		s   []byte
		err error
	)
	if a.flags.compact {
		s, err = json.Marshal(v)
	} else {
		s, err = json.MarshalIndent(v, "", "\t")
	}
	if err != nil {
		return fmt.Errorf("can not marshal result: %w", err)
	}
	if a.flags.save != "" {
		if err := os.WriteFile(a.flags.save, append(s, '\n'), 0o660); err != nil {
			return fmt.Errorf("can not save result to %s: %w", a.flags.save, err)
		}
	}
	_, err = fmt.Fprintf(a.stdout, "%s\n", s)
	return err
}

func newLogger(w io.Writer, debug bool) *zap.Logger {
	level := zapcore.WarnLevel
	if debug {
		level = zapcore.DebugLevel
	}
	core := zapcore.NewCore(
		zapcore.NewConsoleEncoder(zap.NewDevelopmentEncoderConfig()),
		zapcore.AddSync(w),
		level,
	)
	return zap.New(core).Named("tdk")
}
