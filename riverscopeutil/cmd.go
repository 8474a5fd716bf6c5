/*
Copyright © 2026 the RiverScope authors.
This file is part of RiverScope.

RiverScope is free software: you can redistribute it and/or modify
it under the terms of the GNU General Public License as published by
the Free Software Foundation, either version 3 of the License, or
(at your option) any later version.

RiverScope is distributed in the hope that it will be useful,
but WITHOUT ANY WARRANTY; without even the implied warranty of
MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
GNU General Public License for more details.

You should have received a copy of the GNU General Public License
along with RiverScope.  If not, see <http://www.gnu.org/licenses/>.
*/

// Package riverscopeutil holds the configuration and command layer for
// the RiverScope model.
package riverscopeutil

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/lnashier/viper"
	"github.com/skratchdot/open-golang/open"
	"github.com/spf13/cast"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/watermodel/riverscope"
	"github.com/watermodel/riverscope/background"
	"github.com/watermodel/riverscope/report"
)

// Cfg holds configuration information.
var Cfg *viper.Viper

var options []struct {
	name, usage, shorthand string
	defaultVal             interface{}
	flagsets               []*pflag.FlagSet
}

func init() {
	// Options are the configuration options available to RiverScope.
	options = []struct {
		name, usage, shorthand string
		defaultVal             interface{}
		flagsets               []*pflag.FlagSet
	}{
		{
			name: "config",
			usage: `
              config specifies the configuration file location.`,
			defaultVal: "",
			flagsets:   []*pflag.FlagSet{Root.PersistentFlags()},
		},
		{
			name: "BackgroundData",
			usage: `
              BackgroundData is the path to the processed background medians
              table (CSV) produced by the ingest command.`,
			defaultVal: "data/ucmr5_medians.csv",
			flagsets:   []*pflag.FlagSet{runCmd.Flags(), reportCmd.Flags(), serveCmd.Flags()},
		},
		{
			name: "Region",
			usage: `
              Region is the region (state abbreviation) whose background
              concentrations should be used. It is overridden by a Region
              setting in the scenario file. Regions without their own data
              fall back to national medians ("US").`,
			shorthand:  "r",
			defaultVal: background.NationalRegion,
			flagsets:   []*pflag.FlagSet{runCmd.Flags(), reportCmd.Flags()},
		},
		{
			name: "ScenarioFile",
			usage: `
              ScenarioFile is the path to the TOML discharge scenario to
              simulate.`,
			defaultVal: "scenario.toml",
			flagsets:   []*pflag.FlagSet{runCmd.Flags(), reportCmd.Flags()},
		},
		{
			name: "OutputFile",
			usage: `
              OutputFile is the path the result should be written to. The
              run command writes JSON to standard output if OutputFile is
              empty; the report command requires it.`,
			shorthand:  "o",
			defaultVal: "",
			flagsets:   []*pflag.FlagSet{runCmd.Flags(), reportCmd.Flags(), ingestCmd.Flags()},
		},
		{
			name: "SiteName",
			usage: `
              SiteName is a site description shown in the report header.`,
			defaultVal: "",
			flagsets:   []*pflag.FlagSet{reportCmd.Flags()},
		},
		{
			name: "RawData",
			usage: `
              RawData is the path to the raw tab-delimited UCMR occurrence
              export to be ingested.`,
			defaultVal: "data/UCMR5_All.txt",
			flagsets:   []*pflag.FlagSet{ingestCmd.Flags()},
		},
		{
			name: "Regions",
			usage: `
              Regions limits ingestion to the listed regions (state
              abbreviations). An empty list keeps every region.`,
			defaultVal: []string{},
			flagsets:   []*pflag.FlagSet{ingestCmd.Flags()},
		},
		{
			name: "HazardIndexThreshold",
			usage: `
              HazardIndexThreshold is the hazard index level above which the
              mixture is considered a concern.`,
			defaultVal: 1.0,
			flagsets:   []*pflag.FlagSet{runCmd.Flags(), reportCmd.Flags(), serveCmd.Flags()},
		},
		{
			name: "CombinedMCL",
			usage: `
              CombinedMCL is the combined PFOA+PFOS limit in ppt. Set to 0
              to omit the combined assessment.`,
			defaultVal: 8.0,
			flagsets:   []*pflag.FlagSet{runCmd.Flags(), reportCmd.Flags(), serveCmd.Flags()},
		},
		{
			name: "addr",
			usage: `
              addr is the address for the API server to listen on.`,
			defaultVal: ":8080",
			flagsets:   []*pflag.FlagSet{serveCmd.Flags()},
		},
		{
			name: "open",
			usage: `
              open specifies whether to open the server address in a
              browser after startup.`,
			defaultVal: false,
			flagsets:   []*pflag.FlagSet{serveCmd.Flags()},
		},
	}

	Cfg = viper.New()

	// Set the prefix for configuration environment variables.
	Cfg.SetEnvPrefix("RIVERSCOPE")

	for _, option := range options {
		for i, set := range option.flagsets {
			if i != 0 { // We don't want to create the same flag twice.
				set.AddFlag(option.flagsets[0].Lookup(option.name))
				continue
			}
			switch option.defaultVal.(type) {
			case string:
				if option.shorthand == "" {
					set.String(option.name, option.defaultVal.(string), option.usage)
				} else {
					set.StringP(option.name, option.shorthand, option.defaultVal.(string), option.usage)
				}
			case []string:
				if option.shorthand == "" {
					set.StringSlice(option.name, option.defaultVal.([]string), option.usage)
				} else {
					set.StringSliceP(option.name, option.shorthand, option.defaultVal.([]string), option.usage)
				}
			case bool:
				if option.shorthand == "" {
					set.Bool(option.name, option.defaultVal.(bool), option.usage)
				} else {
					set.BoolP(option.name, option.shorthand, option.defaultVal.(bool), option.usage)
				}
			case float64:
				if option.shorthand == "" {
					set.Float64(option.name, option.defaultVal.(float64), option.usage)
				} else {
					set.Float64P(option.name, option.shorthand, option.defaultVal.(float64), option.usage)
				}
			default:
				panic("invalid argument type")
			}
			Cfg.BindPFlag(option.name, set.Lookup(option.name))
		}
	}
}

func init() {
	// Link the commands together.
	Root.AddCommand(versionCmd)
	Root.AddCommand(runCmd)
	Root.AddCommand(ingestCmd)
	Root.AddCommand(reportCmd)
	Root.AddCommand(serveCmd)
}

// setConfig finds and reads in the configuration file, if there is one.
func setConfig() error {
	if cfgpath := Cfg.GetString("config"); cfgpath != "" {
		Cfg.SetConfigFile(cfgpath)
		if err := Cfg.ReadInConfig(); err != nil {
			return fmt.Errorf("riverscope: problem reading configuration file: %v", err)
		}
	}
	return nil
}

// Root is the main command.
var Root = &cobra.Command{
	Use:   "riverscope",
	Short: "A reduced-form surface-water PFAS discharge risk model.",
	Long: `RiverScope estimates downstream PFAS concentrations and regulatory risk
when a point-source discharge mixes into a receiving water body.
Use the subcommands specified below to access the model functionality.

Configuration can be changed by using a configuration file (and providing the
path to the file using the --config flag), by using command-line arguments,
or by setting environment variables in the format 'RIVERSCOPE_var' where 'var'
is the name of the variable to be set.
Refer to https://github.com/spf13/viper for additional configuration information.`,
	DisableAutoGenTag: true,
	PersistentPreRunE: func(*cobra.Command, []string) error { return setConfig() },
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the version number",
	Long:  "version prints the version number of this version of RiverScope.",
	Run: func(cmd *cobra.Command, args []string) {
		cmd.Printf("RiverScope v%s\n", riverscope.Version)
	},
	DisableAutoGenTag: true,
}

// runCmd simulates a scenario and prints the result as JSON.
var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Simulate a discharge scenario.",
	Long: `run mixes the scenario in ScenarioFile into the background
concentrations for the configured region and prints the assessment
as JSON.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		result, _, err := simulateScenario()
		if err != nil {
			return err
		}
		b, err := json.MarshalIndent(result, "", "  ")
		if err != nil {
			return err
		}
		b = append(b, '\n')
		if out := os.ExpandEnv(Cfg.GetString("OutputFile")); out != "" {
			return writeFileAtomic(out, b)
		}
		_, err = cmd.OutOrStdout().Write(b)
		return err
	},
	DisableAutoGenTag: true,
}

// reportCmd simulates a scenario and renders a PDF summary.
var reportCmd = &cobra.Command{
	Use:   "report",
	Short: "Render a PDF risk report for a scenario.",
	Long: `report simulates the scenario in ScenarioFile and writes a one-page
PDF summary to OutputFile.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		result, region, err := simulateScenario()
		if err != nil {
			return err
		}
		out := os.ExpandEnv(Cfg.GetString("OutputFile"))
		if out == "" {
			return fmt.Errorf("riverscope: report requires an OutputFile")
		}
		f, err := os.Create(out)
		if err != nil {
			return err
		}
		defer f.Close()
		meta := report.Meta{
			SiteName: Cfg.GetString("SiteName"),
			Region:   region,
		}
		return report.Write(f, result, meta)
	},
	DisableAutoGenTag: true,
}

// ingestCmd cleans a raw UCMR occurrence export into the processed
// background medians table.
var ingestCmd = &cobra.Command{
	Use:   "ingest",
	Short: "Build the background medians table from raw UCMR data.",
	Long: `ingest reads the raw tab-delimited UCMR occurrence export at RawData,
filters it to tracked PFAS, converts concentrations from µg/L to ppt,
aggregates per-region medians, and writes the table to OutputFile.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		f, err := os.Open(os.ExpandEnv(Cfg.GetString("RawData")))
		if err != nil {
			return err
		}
		defer f.Close()
		samples, err := background.ReadUCMR(f)
		if err != nil {
			return err
		}
		regions, err := cast.ToStringSliceE(Cfg.Get("Regions"))
		if err != nil {
			return fmt.Errorf("riverscope: reading 'Regions': %v", err)
		}
		samples = filterRegions(samples, regions)
		if len(samples) == 0 {
			return fmt.Errorf("riverscope: no tracked PFAS samples in %s", Cfg.GetString("RawData"))
		}
		table := background.Aggregate(samples)

		out := os.ExpandEnv(Cfg.GetString("OutputFile"))
		if out == "" {
			out = Cfg.GetString("BackgroundData")
		}
		w, err := os.Create(out)
		if err != nil {
			return err
		}
		defer w.Close()
		if err := background.WriteTable(w, table); err != nil {
			return err
		}
		cmd.Printf("wrote %d samples in %d regions to %s\n", len(samples), len(table.Regions()), out)
		return nil
	},
	DisableAutoGenTag: true,
}

// serveCmd starts the HTTP API.
var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the simulation API server.",
	Long: `serve starts an HTTP server exposing the simulation and report
endpoints at /api/simulate, /api/report, and /api/health.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		addr := Cfg.GetString("addr")
		if Cfg.GetBool("open") {
			if err := open.Run("http://localhost" + addr); err != nil {
				return err
			}
		}
		return StartWebServer(addr, ServerConfig{
			BackgroundData:       os.ExpandEnv(Cfg.GetString("BackgroundData")),
			HazardIndexThreshold: Cfg.GetFloat64("HazardIndexThreshold"),
			CombinedMCL:          Cfg.GetFloat64("CombinedMCL"),
		})
	},
	DisableAutoGenTag: true,
}

// filterRegions drops samples outside the listed regions. An empty
// list keeps everything.
func filterRegions(samples []background.Sample, regions []string) []background.Sample {
	if len(regions) == 0 {
		return samples
	}
	keep := make(map[string]bool, len(regions))
	for _, r := range regions {
		keep[strings.ToUpper(strings.TrimSpace(r))] = true
	}
	var out []background.Sample
	for _, s := range samples {
		if keep[s.Region] {
			out = append(out, s)
		}
	}
	return out
}

// simulateScenario runs the simulation described by the current
// configuration and returns the result along with the region whose
// background data was used.
func simulateScenario() (*riverscope.Result, string, error) {
	f, err := os.Open(os.ExpandEnv(Cfg.GetString("ScenarioFile")))
	if err != nil {
		return nil, "", err
	}
	defer f.Close()
	spec, err := ReadScenario(f)
	if err != nil {
		return nil, "", err
	}

	region := spec.Region
	if region == "" {
		region = Cfg.GetString("Region")
	}

	table, err := bgLoader.Table(context.Background(), os.ExpandEnv(Cfg.GetString("BackgroundData")))
	if err != nil {
		return nil, "", err
	}
	scenario, err := spec.Scenario()
	if err != nil {
		return nil, "", err
	}

	sim := riverscope.NewSimulator(riverscope.Config{
		HazardIndexThreshold: Cfg.GetFloat64("HazardIndexThreshold"),
		CombinedMCL:          Cfg.GetFloat64("CombinedMCL"),
	})
	result, err := sim.RunWithStats(table.Region(region), table.RegionStats(region), scenario)
	if err != nil {
		return nil, "", err
	}
	return result, region, nil
}

// bgLoader is shared across command invocations so that the run and
// report paths reuse one parsed background table per path.
var bgLoader = new(background.Loader)

// writeFileAtomic writes b to path via a temporary file in the same
// directory, so a failed write cannot truncate an existing output.
func writeFileAtomic(path string, b []byte) error {
	tmp := path + ".tmp"
	f, err := os.Create(tmp)
	if err != nil {
		return err
	}
	if _, err := f.Write(b); err != nil {
		f.Close()
		os.Remove(tmp)
		return err
	}
	if err := f.Close(); err != nil {
		os.Remove(tmp)
		return err
	}
	return os.Rename(tmp, path)
}
