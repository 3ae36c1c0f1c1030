package commands

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/stelliumhq/stellium/chartstore"
	"github.com/stelliumhq/stellium/errors"
)

// ChartsCmd groups the natal chart inspection commands.
var ChartsCmd = &cobra.Command{
	Use:   "charts",
	Short: "Inspect and manage stored natal charts",
	Long: `Work with the natal chart store directly, without going through the
MCP server. Charts are keyed by (name, birth date), so the same name can
hold charts for several people.`,
}

var (
	chartName      string
	chartBirthDate string
)

func init() {
	chartsListCmd := &cobra.Command{
		Use:   "list",
		Short: "List stored natal charts",
		RunE:  runChartsList,
	}

	chartsShowCmd := &cobra.Command{
		Use:   "show",
		Short: "Show a stored natal chart as JSON",
		RunE:  runChartsShow,
	}
	chartsShowCmd.Flags().StringVar(&chartName, "name", "", "Chart name (required)")
	chartsShowCmd.Flags().StringVar(&chartBirthDate, "birth-date", "", "Birth date YYYY-MM-DD (optional when the name is unique)")
	chartsShowCmd.MarkFlagRequired("name")

	chartsDeleteCmd := &cobra.Command{
		Use:   "delete",
		Short: "Delete a stored natal chart",
		RunE:  runChartsDelete,
	}
	chartsDeleteCmd.Flags().StringVar(&chartName, "name", "", "Chart name (required)")
	chartsDeleteCmd.Flags().StringVar(&chartBirthDate, "birth-date", "", "Birth date YYYY-MM-DD (required)")
	chartsDeleteCmd.MarkFlagRequired("name")
	chartsDeleteCmd.MarkFlagRequired("birth-date")

	ChartsCmd.AddCommand(chartsListCmd, chartsShowCmd, chartsDeleteCmd)
}

func openStore(cmd *cobra.Command) (*chartstore.Store, error) {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return nil, err
	}
	store, err := chartstore.Load(cfg.Storage.Path)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to open chart store at %s", cfg.Storage.Path)
	}
	return store, nil
}

func runChartsList(cmd *cobra.Command, args []string) error {
	store, err := openStore(cmd)
	if err != nil {
		return err
	}

	charts := store.List()
	if len(charts) == 0 {
		fmt.Printf("No charts stored in %s\n", store.Path())
		return nil
	}

	fmt.Printf("%d chart(s) in %s:\n", len(charts), store.Path())
	for _, c := range charts {
		fmt.Printf("  %s  born %s in %s\n", c.Name, c.BirthDate, c.BirthLocation)
	}
	return nil
}

func runChartsShow(cmd *cobra.Command, args []string) error {
	store, err := openStore(cmd)
	if err != nil {
		return err
	}

	var chart *chartstore.NatalChart
	var ok bool
	if chartBirthDate != "" {
		chart, ok = store.GetExact(chartName, chartBirthDate)
	} else {
		chart, ok = store.GetByName(chartName)
	}
	if !ok {
		return errors.Newf("no chart found for %q", chartName)
	}

	output, err := json.MarshalIndent(chart, "", "  ")
	if err != nil {
		return errors.Wrap(err, "failed to format chart")
	}
	fmt.Println(string(output))
	return nil
}

func runChartsDelete(cmd *cobra.Command, args []string) error {
	store, err := openStore(cmd)
	if err != nil {
		return err
	}

	removed, err := store.DeleteExact(chartName, chartBirthDate)
	if err != nil {
		return errors.Wrap(err, "failed to delete chart")
	}
	if !removed {
		return errors.Newf("no chart found for %q born %s", chartName, chartBirthDate)
	}

	fmt.Printf("Deleted chart for %s (born %s)\n", chartName, chartBirthDate)
	return nil
}
