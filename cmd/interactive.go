package cmd

import (
	"fmt"
	"strings"

	"github.com/elk-language/go-prompt"
	istrings "github.com/elk-language/go-prompt/strings"
	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/wazuh-tools/wazuh-cli/internal/display"
	"github.com/wazuh-tools/wazuh-cli/internal/logging"
)

// InteractiveSession holds the state for an interactive shell session.
type InteractiveSession struct {
	app       *App
	exitFlag  bool
	sessionID string
}

// NewInteractiveCmd creates the interactive command.
func NewInteractiveCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:     "interactive",
		Aliases: []string{"i", "shell"},
		Short:   "Start interactive mode",
		RunE: func(cmd *cobra.Command, args []string) error {
			return app.runInteractive()
		},
	}
}

// runInteractive starts the interactive shell with a REPL interface.
// Input lines are tokenized and dispatched through the same command tree
// the non-interactive CLI uses.
func (app *App) runInteractive() error {
	session := &InteractiveSession{
		app:       app,
		sessionID: uuid.New().String(),
	}

	logging.Debug("interactive session started", logging.Fields{"session_id": session.sessionID})

	fmt.Println("Wazuh CLI - Interactive Mode")
	fmt.Printf("Connected to: %s\n", app.cfg.APIURL())
	fmt.Println("Type 'help' for commands, 'exit' or Ctrl+D to quit")
	fmt.Println()

	p := prompt.New(
		session.executor,
		prompt.WithCompleter(session.completer),
		prompt.WithPrefix("wazuh> "),
		prompt.WithTitle("Wazuh CLI"),
		prompt.WithPrefixTextColor(prompt.Green),
		prompt.WithSuggestionBGColor(prompt.DarkBlue),
		prompt.WithSuggestionTextColor(prompt.White),
		prompt.WithSelectedSuggestionBGColor(prompt.Cyan),
		prompt.WithSelectedSuggestionTextColor(prompt.Black),
		prompt.WithDescriptionBGColor(prompt.DarkBlue),
		prompt.WithDescriptionTextColor(prompt.LightGray),
		prompt.WithSelectedDescriptionBGColor(prompt.Cyan),
		prompt.WithSelectedDescriptionTextColor(prompt.Black),
		prompt.WithMaxSuggestion(12),
		prompt.WithCompletionOnDown(),
		prompt.WithExitChecker(func(in string, breakline bool) bool {
			return session.exitFlag
		}),
		prompt.WithKeyBind(prompt.KeyBind{
			Key: prompt.ControlC,
			Fn: func(p *prompt.Prompt) bool {
				fmt.Println("\nGoodbye!")
				session.exitFlag = true
				return false
			},
		}),
		prompt.WithKeyBind(prompt.KeyBind{
			Key: prompt.ControlD,
			Fn: func(p *prompt.Prompt) bool {
				if p.Buffer().Text() == "" {
					fmt.Println("Goodbye!")
					session.exitFlag = true
				}
				return false
			},
		}),
	)

	p.Run()
	return nil
}

// executor handles one line of shell input.
func (s *InteractiveSession) executor(input string) {
	input = strings.TrimSpace(input)
	if input == "" {
		return
	}

	parts := strings.Fields(input)
	switch parts[0] {
	case "exit", "quit", "q":
		fmt.Println("Goodbye!")
		s.exitFlag = true
	case "help", "?":
		s.showHelp()
	case "clear":
		fmt.Print("\x1b[2J\x1b[1;1H")
	default:
		s.dispatch(parts)
	}
}

// dispatch runs a tokenized command through a fresh command tree, so the
// interactive shell and the CLI surface never diverge.
func (s *InteractiveSession) dispatch(args []string) {
	root := &cobra.Command{
		Use:           "wazuh",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.AddCommand(NewAgentCmd(s.app))
	root.AddCommand(NewControlCmd(s.app))
	root.AddCommand(NewConfigCmd(s.app))
	root.AddCommand(NewLoginCmd(s.app))
	root.AddCommand(NewLogoutCmd(s.app))
	root.AddCommand(NewStatusCmd(s.app))
	root.SetArgs(args)

	if err := root.Execute(); err != nil {
		display.ShowError(err.Error())
	}
}

// completer suggests commands and subcommands as the user types.
func (s *InteractiveSession) completer(d prompt.Document) ([]prompt.Suggest, istrings.RuneNumber, istrings.RuneNumber) {
	text := d.TextBeforeCursor()
	endIndex := d.CurrentRuneIndex()
	w := d.GetWordBeforeCursor()
	startIndex := endIndex - istrings.RuneCountInString(w)

	fields := strings.Fields(text)
	typingFirstWord := len(fields) == 0 || (len(fields) == 1 && !strings.HasSuffix(text, " "))

	if typingFirstWord {
		suggestions := []prompt.Suggest{
			{Text: "agent", Description: "Manage Wazuh agents"},
			{Text: "control", Description: "Control manager services"},
			{Text: "config", Description: "Manage configuration"},
			{Text: "login", Description: "Authenticate with the API"},
			{Text: "logout", Description: "Discard the session token"},
			{Text: "status", Description: "Show authentication status"},
			{Text: "help", Description: "Show available commands"},
			{Text: "clear", Description: "Clear the screen"},
			{Text: "exit", Description: "Exit interactive mode"},
		}
		return prompt.FilterHasPrefix(suggestions, w, true), startIndex, endIndex
	}

	var suggestions []prompt.Suggest
	switch fields[0] {
	case "agent", "agents", "a":
		suggestions = []prompt.Suggest{
			{Text: "list", Description: "List all agents"},
			{Text: "get", Description: "Show agent details"},
			{Text: "add", Description: "Add a new agent"},
			{Text: "remove", Description: "Remove an agent"},
			{Text: "restart", Description: "Restart an agent"},
			{Text: "upgrade", Description: "Upgrade an agent"},
			{Text: "key", Description: "Get agent registration key"},
		}
	case "control", "ctl":
		suggestions = []prompt.Suggest{
			{Text: "status", Description: "Show service status"},
			{Text: "start", Description: "Start manager services"},
			{Text: "stop", Description: "Stop manager services"},
			{Text: "restart", Description: "Restart manager services"},
			{Text: "info", Description: "Show manager information"},
		}
	case "config", "cfg":
		suggestions = []prompt.Suggest{
			{Text: "show", Description: "Show current configuration"},
			{Text: "get", Description: "Get a configuration value"},
			{Text: "set", Description: "Set a configuration value"},
			{Text: "init", Description: "Initialize a configuration file"},
			{Text: "edit", Description: "Edit the configuration file"},
			{Text: "path", Description: "Show the configuration file path"},
		}
	}

	return prompt.FilterHasPrefix(suggestions, w, true), startIndex, endIndex
}

func (s *InteractiveSession) showHelp() {
	fmt.Println("Available Commands:")
	fmt.Println()
	fmt.Println("  agent    - List and manage agents (list, get, add, remove, restart, upgrade, key)")
	fmt.Println("  control  - Control manager services (status, start, stop, restart, info)")
	fmt.Println("  config   - Manage configuration (show, get, set, init, edit, path)")
	fmt.Println("  login    - Authenticate with the API")
	fmt.Println("  logout   - Discard the session token")
	fmt.Println("  status   - Show authentication status")
	fmt.Println("  clear    - Clear the screen")
	fmt.Println("  exit     - Exit interactive mode")
	fmt.Println()
	fmt.Println("Commands accept the same flags as the CLI, e.g. 'agent list --status active'")
}
