package main

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"

	"github.com/spf13/cobra"
)

var (
	dryRun   bool
	location string
	output   string
)

func init() {
	rootCmd.AddCommand(healthCmd)
	rootCmd.AddCommand(stateCmd)
	rootCmd.AddCommand(makeCmd)
	rootCmd.AddCommand(missCmd)
	rootCmd.AddCommand(reboundCmd)
	rootCmd.AddCommand(statCmd)
	rootCmd.AddCommand(periodCmd)
	rootCmd.AddCommand(undoCmd)
	rootCmd.AddCommand(resetCmd)
	rootCmd.AddCommand(timerCmd)
	rootCmd.AddCommand(submitCmd)
	rootCmd.AddCommand(gamesCmd)
	rootCmd.AddCommand(deleteCmd)
	rootCmd.AddCommand(exportCmd)
	rootCmd.AddCommand(importCmd)
	rootCmd.AddCommand(metricsCmd)

	for _, cmd := range []*cobra.Command{makeCmd, missCmd} {
		cmd.Flags().StringVar(&location, "at", "", "Court location as x,y percentages, e.g. 50,30")
	}
	exportCmd.Flags().StringVarP(&output, "output", "o", "", "Write the CSV to this file instead of stdout")
	importCmd.Flags().BoolVar(&dryRun, "dry-run", false, "Validate the file without saving anything")
}

var healthCmd = &cobra.Command{
	Use:   "health",
	Short: "Check the health of the server",
	RunE: func(cmd *cobra.Command, args []string) error {
		return performGetRequest("/health")
	},
}

var stateCmd = &cobra.Command{
	Use:   "state",
	Short: "Show the game in progress",
	RunE: func(cmd *cobra.Command, args []string) error {
		return performGetRequest("/game")
	},
}

var makeCmd = &cobra.Command{
	Use:       "make [fg|fg3|ft]",
	Short:     "Record a made shot",
	Args:      cobra.ExactArgs(1),
	ValidArgs: []string{"fg", "fg3", "ft"},
	RunE: func(cmd *cobra.Command, args []string) error {
		return shotAction("make", args[0])
	},
}

var missCmd = &cobra.Command{
	Use:       "miss [fg|fg3|ft]",
	Short:     "Record a missed shot",
	Args:      cobra.ExactArgs(1),
	ValidArgs: []string{"fg", "fg3", "ft"},
	RunE: func(cmd *cobra.Command, args []string) error {
		return shotAction("miss", args[0])
	},
}

var reboundCmd = &cobra.Command{
	Use:       "rebound [off|def]",
	Short:     "Record a rebound",
	Args:      cobra.ExactArgs(1),
	ValidArgs: []string{"off", "def"},
	RunE: func(cmd *cobra.Command, args []string) error {
		return performJSONRequest(http.MethodPost, "/game/actions", map[string]any{"kind": "rebound", "rebound": args[0]})
	},
}

var statCmd = &cobra.Command{
	Use:       "stat [assists|steals|blocks|turnovers|fouls]",
	Short:     "Record an assist, steal, block, turnover or foul",
	Args:      cobra.ExactArgs(1),
	ValidArgs: []string{"assists", "steals", "blocks", "turnovers", "fouls"},
	RunE: func(cmd *cobra.Command, args []string) error {
		return performJSONRequest(http.MethodPost, "/game/actions", map[string]any{"kind": "stat", "stat": args[0]})
	},
}

var periodCmd = &cobra.Command{
	Use:       "period [next|prev]",
	Short:     "Move to the next or previous period",
	Args:      cobra.ExactArgs(1),
	ValidArgs: []string{"next", "prev"},
	RunE: func(cmd *cobra.Command, args []string) error {
		direction := 1
		if args[0] == "prev" {
			direction = -1
		}
		return performJSONRequest(http.MethodPost, "/game/actions", map[string]any{"kind": "period", "direction": direction})
	},
}

var undoCmd = &cobra.Command{
	Use:   "undo",
	Short: "Undo the last recorded action",
	RunE: func(cmd *cobra.Command, args []string) error {
		return performJSONRequest(http.MethodPost, "/game/undo", nil)
	},
}

var resetCmd = &cobra.Command{
	Use:   "reset",
	Short: "Discard the game in progress",
	RunE: func(cmd *cobra.Command, args []string) error {
		return performJSONRequest(http.MethodPost, "/game/reset", nil)
	},
}

var timerCmd = &cobra.Command{
	Use:       "timer [enable|disable|toggle]",
	Short:     "Control the period clock",
	Args:      cobra.ExactArgs(1),
	ValidArgs: []string{"enable", "disable", "toggle"},
	RunE: func(cmd *cobra.Command, args []string) error {
		return performJSONRequest(http.MethodPost, "/game/timer", map[string]string{"op": args[0]})
	},
}

var submitCmd = &cobra.Command{
	Use:   "submit <home> <away> [homeScore awayScore]",
	Short: "Fill in the game details and save the game",
	Args:  cobra.RangeArgs(2, 4),
	RunE: func(cmd *cobra.Command, args []string) error {
		details := map[string]string{"homeTeam": args[0], "awayTeam": args[1]}
		if len(args) == 4 {
			details["homeScore"], details["awayScore"] = args[2], args[3]
		}
		if err := performJSONRequest(http.MethodPut, "/game/details", details); err != nil {
			return err
		}
		return performJSONRequest(http.MethodPost, "/game/submit", nil)
	},
}

var gamesCmd = &cobra.Command{
	Use:   "games",
	Short: "List saved games",
	RunE: func(cmd *cobra.Command, args []string) error {
		return performGetRequest("/games")
	},
}

var deleteCmd = &cobra.Command{
	Use:   "delete <id>",
	Short: "Delete a saved game",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return performJSONRequest(http.MethodDelete, "/games/"+args[0], nil)
	},
}

var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Download saved games as CSV",
	RunE: func(cmd *cobra.Command, args []string) error {
		resp, err := http.Get(host + "/games/export.csv")
		if err != nil {
			return fmt.Errorf("failed to make request: %w", err)
		}
		defer resp.Body.Close()
		if resp.StatusCode != http.StatusOK {
			return fmt.Errorf("export failed with status %d", resp.StatusCode)
		}
		if output == "" {
			_, err = io.Copy(os.Stdout, resp.Body)
			return err
		}
		f, err := os.Create(output)
		if err != nil {
			return fmt.Errorf("failed to create %s: %w", output, err)
		}
		defer f.Close()
		if _, err := io.Copy(f, resp.Body); err != nil {
			return fmt.Errorf("failed to write %s: %w", output, err)
		}
		fmt.Printf("Exported games to %s\n", output)
		return nil
	},
}

var importCmd = &cobra.Command{
	Use:   "import <file.csv>",
	Short: "Import games from a CSV file",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		data, err := os.ReadFile(args[0])
		if err != nil {
			return fmt.Errorf("failed to read %s: %w", args[0], err)
		}
		endpoint := "/games/import"
		if dryRun {
			endpoint += "?dry_run=true"
		}
		return performRequest(http.MethodPost, endpoint, "text/csv", bytes.NewReader(data))
	},
}

var metricsCmd = &cobra.Command{
	Use:   "metrics",
	Short: "Get application metrics",
	RunE: func(cmd *cobra.Command, args []string) error {
		return performGetRequest("/metrics")
	},
}

func shotAction(kind, category string) error {
	body := map[string]any{"kind": kind, "category": category}
	if location != "" {
		var x, y float64
		if _, err := fmt.Sscanf(location, "%g,%g", &x, &y); err != nil {
			return fmt.Errorf("invalid location %q, expected x,y", location)
		}
		body["location"] = map[string]float64{"x": x, "y": y}
	}
	return performJSONRequest(http.MethodPost, "/game/actions", body)
}

func performGetRequest(endpoint string) error {
	return performRequest(http.MethodGet, endpoint, "", nil)
}

func performJSONRequest(method, endpoint string, payload any) error {
	if payload == nil {
		return performRequest(method, endpoint, "", nil)
	}
	data, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("failed to encode request: %w", err)
	}
	return performRequest(method, endpoint, "application/json", bytes.NewReader(data))
}

func performRequest(method, endpoint, contentType string, body io.Reader) error {
	url := host + endpoint
	fmt.Printf("Making %s request to %s\n", method, url)

	req, err := http.NewRequest(method, url, body)
	if err != nil {
		return fmt.Errorf("failed to build request: %w", err)
	}
	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}
	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		return fmt.Errorf("failed to make request: %w", err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("failed to read response body: %w", err)
	}

	fmt.Printf("Status Code: %d\n", resp.StatusCode)
	fmt.Println("Response Body:")
	fmt.Println(string(data))

	if resp.StatusCode >= http.StatusBadRequest {
		return fmt.Errorf("request failed with status %d", resp.StatusCode)
	}
	return nil
}
