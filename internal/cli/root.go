package cli

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/2beens/prtracker/internal/credentials"
	"github.com/2beens/prtracker/internal/router"
	"github.com/2beens/prtracker/internal/terminal"
)

var ErrCannotClear = errors.New("credential storage cannot forget the token")

type runner struct {
	setup       Setup
	interactive func() bool

	opts    GlobalOptions
	fields  []string
	choices []string
	noInput bool
}

// NewRootCmd creates the top-level "prtracker" command.
// interactive reports whether prompts can be shown; nil means never.
func NewRootCmd(setup Setup, interactive func() bool) *cobra.Command {
	r := &runner{setup: setup, interactive: interactive}

	root := &cobra.Command{
		Use:          "prtracker",
		Short:        "Personal records tracker client",
		SilenceUsage: true,
	}
	flags := root.PersistentFlags()
	flags.StringVar(&r.opts.Env, "env", "development", "environment [prod | production | dev | development]")
	flags.StringVar(&r.opts.ConfigPath, "config", "./config.toml", "path for the TOML config file")
	flags.StringArrayVar(&r.fields, "field", nil, "preset a form field, name=value (repeatable)")
	flags.StringArrayVar(&r.choices, "choose", nil, "preset a selection, select=value or label (repeatable)")
	flags.BoolVar(&r.noInput, "no-input", false, "never prompt, use presets only")

	root.AddCommand(
		r.openCmd(),
		r.pageCmd("login", "Log in and store the token", func(*Session) string { return router.LoginPage }),
		r.pageCmd("register", "Create an account", func(*Session) string { return router.RegisterPage }),
		r.pageCmd("add-pr", "Add a personal record", func(*Session) string { return router.RecordFormPage }),
		r.pageCmd("records", "Browse personal records", func(s *Session) string { return s.IndexPath }),
		r.logoutCmd(),
	)

	return root
}

func (r *runner) openCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "open <path>",
		Short: "Open any page by path",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return r.browse(cmd, func(*Session) string { return args[0] })
		},
	}
}

func (r *runner) pageCmd(use, short string, path func(*Session) string) *cobra.Command {
	return &cobra.Command{
		Use:   use,
		Short: short,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return r.browse(cmd, path)
		},
	}
}

func (r *runner) logoutCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "logout",
		Short: "Forget the stored token",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return r.withSession(cmd.Context(), cmd, func(s *Session) error {
				clearer, ok := s.Store.(credentials.Clearer)
				if !ok {
					return fmt.Errorf("%w: %T", ErrCannotClear, s.Store)
				}
				if err := clearer.Clear(cmd.Context()); err != nil {
					return err
				}
				fmt.Fprintln(cmd.OutOrStdout(), "Déconnecté.")
				return nil
			})
		},
	}
}

func (r *runner) browse(cmd *cobra.Command, path func(*Session) string) error {
	presets, err := parsePresets(r.fields, r.choices)
	if err != nil {
		return err
	}

	var prompter terminal.Prompter = terminal.PresetPrompter{Presets: presets}
	if !r.noInput && r.interactive != nil && r.interactive() {
		prompter = terminal.HuhPrompter{Presets: presets}
	}

	return r.withSession(cmd.Context(), cmd, func(s *Session) error {
		final, err := s.NewBrowser(prompter).Open(cmd.Context(), path(s))
		if err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "page : %s\n", final)
		return nil
	})
}

func (r *runner) withSession(ctx context.Context, cmd *cobra.Command, fn func(*Session) error) error {
	session, err := r.setup(ctx, r.opts, cmd.OutOrStdout())
	if err != nil {
		return err
	}
	defer session.Close()
	return fn(session)
}

func parsePresets(fields, choices []string) (terminal.Presets, error) {
	presets := terminal.Presets{
		Fields:  map[string]string{},
		Choices: map[string]string{},
	}
	for _, f := range fields {
		name, value, ok := strings.Cut(f, "=")
		if !ok || name == "" {
			return presets, fmt.Errorf("--field %q: expected name=value", f)
		}
		presets.Fields[name] = value
	}
	for _, c := range choices {
		selectID, value, ok := strings.Cut(c, "=")
		if !ok || selectID == "" {
			return presets, fmt.Errorf("--choose %q: expected select=value", c)
		}
		presets.Choices[selectID] = value
	}
	return presets, nil
}
