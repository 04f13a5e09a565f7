package main

import (
	"fmt"
	"io"
	"strconv"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"agrow/pkg/catalog"
	"agrow/pkg/engine"
	"agrow/pkg/logging"
)

var catalogCmd = &cobra.Command{
	Use:   "catalog",
	Short: "Print the effective crop catalog, or rank it against a soil sample.",
	Example: `  agrow catalog
  agrow catalog --soil ph=6.5,n=70,p=40,k=40,temp=27,humidity=65,rain=180`,
	RunE: func(cmd *cobra.Command, args []string) error {
		src, err := catalog.FromFile(cfg.CatalogFile)
		if err != nil {
			logging.Log.WithError(err).WithField("file", cfg.CatalogFile).Warn("[catalog] override not loaded")
		}
		profiles, err := src.Profiles(cmd.Context())
		if err != nil {
			return err
		}

		soil, _ := cmd.Flags().GetString("soil")
		if soil == "" {
			printCatalog(cmd.OutOrStdout(), profiles)
			return nil
		}
		s, err := parseSoil(soil)
		if err != nil {
			return err
		}
		printRanking(cmd.OutOrStdout(), engine.Evaluate(s, profiles))
		return nil
	},
}

func init() {
	catalogCmd.Flags().String("soil", "", "soil sample as key=value pairs: ph, n, p, k (required), temp, humidity, rain")
}

// parseSoil reads "ph=6.5,n=70,..." into a sample. ph, n, p and k are required.
func parseSoil(s string) (engine.SoilSample, error) {
	var out engine.SoilSample
	seen := map[string]bool{}
	for _, kv := range strings.Split(s, ",") {
		k, v, ok := strings.Cut(strings.TrimSpace(kv), "=")
		if !ok {
			return out, fmt.Errorf("bad soil pair %q, want key=value", kv)
		}
		f, err := strconv.ParseFloat(strings.TrimSpace(v), 64)
		if err != nil {
			return out, fmt.Errorf("soil %s: %w", k, err)
		}
		switch strings.ToLower(strings.TrimSpace(k)) {
		case "ph":
			out.Ph = f
			seen["ph"] = true
		case "n", "nitrogen":
			out.Nitrogen = f
			seen["n"] = true
		case "p", "phosphorus":
			out.Phosphorus = f
			seen["p"] = true
		case "k", "potassium":
			out.Potassium = f
			seen["k"] = true
		case "temp", "temperature":
			out.Temperature = &f
		case "humidity":
			out.Humidity = &f
		case "rain", "rainfall":
			out.Rainfall = &f
		default:
			return out, fmt.Errorf("unknown soil key %q", k)
		}
	}
	for _, k := range []string{"ph", "n", "p", "k"} {
		if !seen[k] {
			return out, fmt.Errorf("soil %s is required", k)
		}
	}
	return out, nil
}

func printCatalog(out io.Writer, ps []catalog.CropProfile) {
	w := tabwriter.NewWriter(out, 0, 0, 3, ' ', 0)
	fmt.Fprintln(w, "CROP\tPH\tCOST/ACRE\tYIELD/ACRE\tPRICE\tROI\t")
	for _, p := range ps {
		fmt.Fprintf(w, "%s\t%g-%g\t%.0f\t%g\t%g\t%.2f\t\n",
			p.Name, p.IdealPh.Min, p.IdealPh.Max, p.CostPerAcre, p.YieldPerAcre, p.UnitPrice, engine.ROI(p, p.UnitPrice))
	}
	w.Flush()
}

func printRanking(out io.Writer, cs []engine.ScoredCrop) {
	w := tabwriter.NewWriter(out, 0, 0, 3, ' ', 0)
	fmt.Fprintln(w, "#\tCROP\tSCORE\tCONFIDENCE\tRATIONALE\t")
	for i, c := range cs {
		fmt.Fprintf(w, "%d\t%s\t%.1f\t%d%%\t%s\t\n", i+1, c.Name, c.SuitabilityScore, c.ConfidencePercentage, c.Rationale)
	}
	w.Flush()
}
