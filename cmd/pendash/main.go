package main

import (
	"context"
	"fmt"
	"os"
	"os/exec"
	"runtime"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/creativeDevHealer/fountain-pen-frontend/internal/catalog"
	"github.com/creativeDevHealer/fountain-pen-frontend/internal/config"
	"github.com/creativeDevHealer/fountain-pen-frontend/internal/dashboard"
	"github.com/creativeDevHealer/fountain-pen-frontend/internal/logging"
	"github.com/creativeDevHealer/fountain-pen-frontend/internal/model"
	"github.com/creativeDevHealer/fountain-pen-frontend/internal/session"
	"github.com/creativeDevHealer/fountain-pen-frontend/internal/ui"
)

var apiBase string

var rootCmd = &cobra.Command{
	Use:   "pendash",
	Short: "Terminal dashboard for the rare pen catalog",
	Long: `pendash browses a remote pen catalog from the terminal:
today's listings, the last three days, and your saved pens,
with search, save toggling, and viewed tracking.`,
	SilenceUsage: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		return run()
	},
}

func init() {
	rootCmd.Flags().StringVar(&apiBase, "api", "", "catalog service base URL (overrides config)")
}

func run() error {
	if err := logging.Init(); err != nil {
		fmt.Fprintf(os.Stderr, "Warning: logging disabled: %v\n", err)
	}
	defer logging.Close()

	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	if apiBase != "" {
		cfg.API.BaseURL = apiBase
	}

	sess := session.NewStore(config.TokenPath())
	if err := sess.Load(); err != nil {
		logging.Warn("session load failed", "error", err)
	}

	client := catalog.New(cfg.API.BaseURL, cfg.Timeout(), cfg.API.RequestsPerSecond, sess)
	events := sess.Subscribe()

	cmds := ui.Commands{
		LoadItems: func(view model.View, query string) tea.Cmd {
			fetchID := uuid.NewString()[:8]
			return func() tea.Msg {
				items, err := client.ListItems(context.Background(), view, query)
				return ui.ItemsLoaded{View: view, Query: query, FetchID: fetchID, Items: items, Err: err}
			}
		},
		LoadStats: func() tea.Cmd {
			return func() tea.Msg {
				counts, err := client.FetchStats(context.Background())
				return ui.StatsLoaded{Counts: counts, Err: err}
			}
		},
		SaveItem: func(item model.Item) tea.Cmd {
			return func() tea.Msg {
				updated, err := client.SetItemFlag(context.Background(), item, "saved", item.Saved)
				return ui.SaveResult{ID: item.ID, Item: updated, Err: err}
			}
		},
		MarkViewed: func(item model.Item) tea.Cmd {
			return func() tea.Msg {
				_, err := client.SetItemFlag(context.Background(), item, "viewed", true)
				return ui.ViewedResult{ID: item.ID, Err: err}
			}
		},
		Login: func(username, password string) tea.Cmd {
			return func() tea.Msg {
				token, err := client.Login(context.Background(), username, password)
				if err != nil {
					return ui.LoginResult{Err: err}
				}
				if err := sess.Set(token); err != nil {
					return ui.LoginResult{Err: err}
				}
				return ui.LoginResult{}
			}
		},
		ChangeCreds: func(newUsername, newPassword string) tea.Cmd {
			return func() tea.Msg {
				if err := client.ChangeCredentials(context.Background(), newUsername, newPassword); err != nil {
					return ui.ChangeResult{Err: err}
				}
				// The service invalidates existing tokens on success.
				if err := sess.Clear(); err != nil {
					logging.Warn("session clear failed", "error", err)
				}
				return ui.ChangeResult{}
			}
		},
		WatchSession: func() tea.Cmd {
			return func() tea.Msg {
				ev, ok := <-events
				if !ok {
					return nil
				}
				return ui.SessionChanged{Token: ev.Token}
			}
		},
		OpenURL: openURL,
	}

	app := ui.NewApp(cmds, dashboard.New(), cfg.Debounce(), sess.Authenticated())

	p := tea.NewProgram(app, tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("run ui: %w", err)
	}
	return nil
}

// openURL hands a link to the system browser. Failures are logged; opening
// must never block the UI.
func openURL(u string) {
	var cmd *exec.Cmd
	switch runtime.GOOS {
	case "darwin":
		cmd = exec.Command("open", u)
	case "windows":
		cmd = exec.Command("rundll32", "url.dll,FileProtocolHandler", u)
	default:
		cmd = exec.Command("xdg-open", u)
	}
	if err := cmd.Start(); err != nil {
		logging.Warn("open url failed", "url", u, "error", err)
	}
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
