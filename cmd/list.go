package cmd

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/jfmyers9/spotcast/internal/feed"
	"github.com/mattn/go-runewidth"
	"github.com/spf13/cobra"
)

var listDataDir string

const listTitleWidth = 40

// listCmd represents the list command
var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List subscribed shows",
	Long: `List all subscribed shows with their episode counts.

Shows are listed in subscription order. The episode count is the number
of episodes the daemon has seen so far, not the show's total.`,
	RunE: runList,
}

func init() {
	rootCmd.AddCommand(listCmd)
	listCmd.Flags().StringVar(&listDataDir, "data-dir", "", "Data directory for cache and database (default: ~/.local/share/spotcast)")
}

func runList(cmd *cobra.Command, args []string) error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	dataDir, err := resolveDataDir(listDataDir)
	if err != nil {
		return err
	}

	st, err := openStore(dataDir)
	if err != nil {
		return err
	}
	defer st.Close()

	subs, err := st.List(ctx)
	if err != nil {
		return err
	}

	if len(subs) == 0 {
		fmt.Println("No subscriptions. Use 'spotcast add' to subscribe to a show.")
		return nil
	}

	fmt.Printf("%s  %8s  %s\n", padToWidth("TITLE", listTitleWidth), "EPISODES", "URL")
	for _, sub := range subs {
		seen, err := st.SeenGUIDs(ctx, sub.ShowID)
		if err != nil {
			return err
		}

		title := sub.Title
		if title == "" {
			title = sub.ShowID
		}
		url := sub.URL
		if url == "" {
			url = feed.ShowURL(sub.ShowID)
		}
		fmt.Printf("%s  %8d  %s\n", padToWidth(title, listTitleWidth), len(seen), url)
	}

	return nil
}

// padToWidth pads or truncates text to a fixed display width.
// Width is measured in display columns, accounting for Unicode characters.
// If text is longer than width, truncates with "..." suffix.
// If text is shorter than width, pads with spaces.
func padToWidth(text string, width int) string {
	if width <= 0 {
		return text
	}

	currentWidth := runewidth.StringWidth(text)

	if currentWidth > width {
		ellipsis := "..."
		ellipsisWidth := runewidth.StringWidth(ellipsis)

		if width <= ellipsisWidth {
			return runewidth.Truncate(ellipsis, width, "")
		}

		truncated := runewidth.Truncate(text, width-ellipsisWidth, "")
		result := truncated + ellipsis

		// Truncate can undershoot on wide characters, so re-check
		resultWidth := runewidth.StringWidth(result)
		if resultWidth < width {
			return result + strings.Repeat(" ", width-resultWidth)
		} else if resultWidth > width {
			return runewidth.Truncate(result, width, "")
		}
		return result
	} else if currentWidth < width {
		return text + strings.Repeat(" ", width-currentWidth)
	}

	return text
}
