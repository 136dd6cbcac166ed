package main

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"unicode/utf8"

	"github.com/BurntSushi/toml"
	"github.com/alimpfard/cprompt"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"
)

type config struct {
	Message    string            `toml:"message"`
	Hint       string            `toml:"hint"`
	CommandKey string            `toml:"command_key"`
	Limit      int               `toml:"limit"`
	Styles     map[string]string `toml:"styles"`
}

func defaultConfig() config {
	return config{
		Message:    "> ",
		CommandKey: "ctrl-o",
		Styles: map[string]string{
			"go":   "#00ADD8",
			"exit": "#FF5F87",
		},
	}
}

func loadConfig(path string) (config, error) {
	cfg := defaultConfig()
	if path == "" {
		return cfg, nil
	}
	if _, err := toml.DecodeFile(path, &cfg); err != nil {
		return cfg, fmt.Errorf("parse %s: %w", path, err)
	}
	return cfg, nil
}

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	var (
		configPath string
		styled     bool
		debug      bool
		override   config
	)

	cmd := &cobra.Command{
		Use:          "example",
		Short:        "Read one line with live highlighting",
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, _ []string) error {
			logger := log.NewWithOptions(os.Stderr, log.Options{ReportTimestamp: true})
			if debug {
				logger.SetLevel(log.DebugLevel)
			}
			cprompt.SetLogger(logger)

			cfg, err := loadConfig(configPath)
			if err != nil {
				return err
			}
			flags := cmd.Flags()
			if flags.Changed("message") {
				cfg.Message = override.Message
			}
			if flags.Changed("hint") {
				cfg.Hint = override.Hint
			}
			if flags.Changed("command-key") {
				cfg.CommandKey = override.CommandKey
			}
			if flags.Changed("limit") {
				cfg.Limit = override.Limit
			}

			return run(cfg, styled, logger)
		},
	}

	flags := cmd.Flags()
	flags.StringVarP(&configPath, "config", "c", "", "TOML file with message, hint, command_key, limit and [styles]")
	flags.StringVarP(&override.Message, "message", "m", "> ", "prompt message")
	flags.StringVar(&override.Hint, "hint", "", "hint shown while the line is empty")
	flags.StringVar(&override.CommandKey, "command-key", "ctrl-o", "key that opens the command prompt")
	flags.IntVar(&override.Limit, "limit", 0, "maximum line width (0 = terminal width)")
	flags.BoolVar(&styled, "styled", false, "print the line with highlighted words styled")
	flags.BoolVar(&debug, "debug", false, "enable debug logging")
	return cmd
}

func run(cfg config, styled bool, logger *log.Logger) error {
	styles := make(map[string]lipgloss.Style, len(cfg.Styles))
	for word, color := range cfg.Styles {
		styles[word] = lipgloss.NewStyle().Foreground(lipgloss.Color(color)).Bold(true)
	}

	opts := cprompt.Options{
		Limit: cfg.Limit,
		Conditions: []cprompt.Condition{
			cprompt.KeyBindings(cprompt.DefaultKeyBindings()),
			highlight(styles),
			exitOn(cprompt.Token{Key: cprompt.KeyCtrl, Rune: 'd'}),
		},
	}

	var host cprompt.Prompt
	var err error
	if cfg.Hint != "" {
		host, err = cprompt.NewHint(cfg.Message, lipgloss.NewStyle().Faint(true).Render(cfg.Hint), opts)
	} else {
		host, err = cprompt.New(cfg.Message, opts)
	}
	if err != nil {
		return err
	}

	command, err := cprompt.NewCommand(":", cfg.CommandKey, cprompt.Options{Terminal: host.Terminal()})
	if err != nil {
		return err
	}
	err = host.AddCondition(func(p cprompt.Prompt) cprompt.Result {
		text, ok, err := command.Show(p)
		if err != nil {
			return cprompt.Fatal(err)
		}
		if ok {
			logger.Debug("command entered", "command", text)
			p.SetReturnedValue(text)
		}
		return cprompt.Continue
	})
	if err != nil {
		return err
	}

	var line string
	if styled {
		line, err = host.RunStyled()
	} else {
		line, err = host.Run()
	}
	if errors.Is(err, cprompt.ErrInterrupted) {
		return nil
	}
	if err != nil {
		return err
	}

	fmt.Println(line)
	if v, ok := host.ReturnedValue(); ok {
		fmt.Printf("last command: %s\n", v)
	}
	return nil
}

// highlight restyles a word from styles once it is finished with a space or
// the line is confirmed.
func highlight(styles map[string]lipgloss.Style) cprompt.Condition {
	return func(p cprompt.Prompt) cprompt.Result {
		if k := p.LastKey().Key; k != cprompt.KeySpace && k != cprompt.KeyEnter {
			return cprompt.Continue
		}
		buf := p.Buffer()
		word := buf.WordBeforeCursor()
		style, ok := styles[word]
		if !ok || !strings.HasSuffix(buf.TextBeforeCursor(), word) {
			return cprompt.Continue
		}
		if _, done := buf.Formatted()[word]; done {
			return cprompt.Continue
		}
		for n := utf8.RuneCountInString(word); n > 0; n-- {
			buf.Remove()
		}
		if err := buf.InsertText(style.Render(word)); err != nil {
			return cprompt.Fatal(err)
		}
		return cprompt.Continue
	}
}

func exitOn(key cprompt.Token) cprompt.Condition {
	return func(p cprompt.Prompt) cprompt.Result {
		if p.LastKey() == key {
			return cprompt.Terminate
		}
		return cprompt.Continue
	}
}
