package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/jwulff/glucowise-go/internal/nutrition"
	"github.com/jwulff/glucowise-go/internal/nutritionix"
	"github.com/jwulff/glucowise-go/internal/tracker"
)

var (
	userEmail string
	dayFlag   string
	foodQty   float64
	foodUnit  string
)

var seedCmd = &cobra.Command{
	Use:   "seed",
	Short: "Create the demo account with a day of sample data",
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := openApp()
		if err != nil {
			return err
		}
		defer a.Close()

		user, err := a.tracker.SeedDemo(cmd.Context())
		if errors.Is(err, tracker.ErrEmailTaken) {
			fmt.Fprintf(cmd.OutOrStdout(), "Demo account %s already exists\n", tracker.DemoEmail)
			return nil
		}
		if err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Created %s (%s), password %s\n", user.Email, user.ID, tracker.DemoPassword)
		return nil
	},
}

var hba1cCmd = &cobra.Command{
	Use:   "hba1c [days]",
	Short: "Estimate HbA1c from the glucose readings of the last days",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		days := "90"
		if len(args) == 1 {
			days = args[0]
		}

		a, err := openApp()
		if err != nil {
			return err
		}
		defer a.Close()

		user, err := a.userByEmail(cmd.Context(), userEmail)
		if err != nil {
			return err
		}
		estimate, err := a.tracker.EstimateHbA1c(cmd.Context(), user.ID, days)
		if err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Estimated HbA1c over %s days: %.1f%%\n", strings.TrimSpace(days), estimate)
		return nil
	},
}

var summaryCmd = &cobra.Command{
	Use:   "summary",
	Short: "Print the daily summary of a user as JSON",
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := openApp()
		if err != nil {
			return err
		}
		defer a.Close()

		day, err := a.day(dayFlag)
		if err != nil {
			return err
		}
		user, err := a.userByEmail(cmd.Context(), userEmail)
		if err != nil {
			return err
		}

		summary, err := a.tracker.DailySummary(cmd.Context(), user.ID, day)
		if err != nil {
			return err
		}
		totals, err := a.tracker.DailyNutrition(cmd.Context(), user.ID, day)
		if err != nil {
			return err
		}
		insights, err := a.tracker.Insights(cmd.Context(), user.ID, day)
		if err != nil {
			return err
		}

		enc := json.NewEncoder(cmd.OutOrStdout())
		enc.SetIndent("", "  ")
		return enc.Encode(map[string]any{
			"summary":   summary,
			"nutrition": totals,
			"glucose":   insights,
		})
	},
}

var chartCmd = &cobra.Command{
	Use:   "chart",
	Short: "Draw a day of glucose readings",
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := openApp()
		if err != nil {
			return err
		}
		defer a.Close()

		day, err := a.day(dayFlag)
		if err != nil {
			return err
		}
		user, err := a.userByEmail(cmd.Context(), userEmail)
		if err != nil {
			return err
		}
		chart, err := a.tracker.Chart(cmd.Context(), user.ID, day)
		if err != nil {
			return err
		}
		if chart == "" {
			fmt.Fprintln(cmd.OutOrStdout(), "No readings")
			return nil
		}
		fmt.Fprint(cmd.OutOrStdout(), chart)
		return nil
	},
}

var importDexcomCmd = &cobra.Command{
	Use:   "import-dexcom",
	Short: "Import recent Dexcom readings once",
	RunE: func(cmd *cobra.Command, args []string) error {
		if !cfg.DexcomEnabled() {
			return fmt.Errorf("dexcom credentials are not configured (set DEXCOM_USERNAME and DEXCOM_PASSWORD)")
		}
		if err := cfg.Validate(); err != nil {
			return err
		}

		a, err := openApp()
		if err != nil {
			return err
		}
		defer a.Close()

		importer, err := a.dexcomImporter(cmd.Context())
		if err != nil {
			return err
		}
		n, err := importer.Sync(cmd.Context())
		if err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Imported %d new readings\n", n)
		return nil
	},
}

var foodCmd = &cobra.Command{
	Use:   "food",
	Short: "Look up nutrition data",
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		if err := rootCmd.PersistentPreRunE(cmd, args); err != nil {
			return err
		}
		if !cfg.NutritionixEnabled() {
			return fmt.Errorf("nutritionix credentials are not configured (set NUTRITIONIX_APP_ID and NUTRITIONIX_APP_KEY)")
		}
		return nil
	},
}

var foodSearchCmd = &cobra.Command{
	Use:   "search <query>",
	Short: "Search common foods",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		client := nutritionix.NewClient(cfg.Nutritionix.AppID, cfg.Nutritionix.AppKey)
		hits, err := client.Search(cmd.Context(), strings.Join(args, " "))
		if err != nil {
			return err
		}
		w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
		for _, h := range hits {
			fmt.Fprintf(w, "%s\t%s %s\n", h.Name, strconv.FormatFloat(h.ServingQty, 'f', -1, 64), h.ServingUnit)
		}
		return w.Flush()
	},
}

var foodLookupCmd = &cobra.Command{
	Use:   "lookup <query>",
	Short: "Show the nutrients of a food portion",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		client := nutritionix.NewClient(cfg.Nutritionix.AppID, cfg.Nutritionix.AppKey)
		food, err := client.Lookup(cmd.Context(), strings.Join(args, " "))
		if err != nil {
			return err
		}
		qty := foodQty
		if qty <= 0 {
			qty = food.ServingQty
		}
		item, err := food.Portion(qty, foodUnit)
		if err != nil {
			return err
		}

		out := cmd.OutOrStdout()
		fmt.Fprintf(out, "%s, %s %s\n", item.Name, strconv.FormatFloat(qty, 'f', -1, 64), unitOr(foodUnit, food.ServingUnit))
		fmt.Fprintf(out, "  Calories  %.0f kcal\n", item.Calories)
		fmt.Fprintf(out, "  Carbs     %.1f g\n", item.Carbs)
		fmt.Fprintf(out, "  Fats      %.1f g\n", item.Fats)
		fmt.Fprintf(out, "  Proteins  %.1f g\n", item.Proteins)
		fmt.Fprintf(out, "  Fiber     %.1f g\n", item.Fiber)
		fmt.Fprintf(out, "  Walk %d min to burn it off\n", nutrition.BurnMinutes(item.Calories))
		fmt.Fprintf(out, "  Measures: %s\n", strings.Join(food.Measures(), ", "))
		return nil
	},
}

func unitOr(unit, fallback string) string {
	if unit == "" {
		return fallback
	}
	return unit
}

func init() {
	for _, cmd := range []*cobra.Command{hba1cCmd, summaryCmd, chartCmd} {
		cmd.Flags().StringVarP(&userEmail, "email", "e", tracker.DemoEmail, "Email of the user")
	}
	for _, cmd := range []*cobra.Command{summaryCmd, chartCmd} {
		cmd.Flags().StringVarP(&dayFlag, "date", "d", "", "Day as YYYY-MM-DD (default today)")
	}

	foodLookupCmd.Flags().Float64Var(&foodQty, "qty", 0, "Quantity (default one serving)")
	foodLookupCmd.Flags().StringVar(&foodUnit, "measure", "", "Measure (default the serving unit)")
	foodCmd.AddCommand(foodSearchCmd, foodLookupCmd)
}
