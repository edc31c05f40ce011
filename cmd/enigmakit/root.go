package enigmakit

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strings"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/tldr-it-stepankutaj/enigmakit/internal/app"
	"github.com/tldr-it-stepankutaj/enigmakit/internal/batch"
	"github.com/tldr-it-stepankutaj/enigmakit/internal/enigma"
	"github.com/tldr-it-stepankutaj/enigmakit/internal/inventory"
	"github.com/tldr-it-stepankutaj/enigmakit/internal/models"
	"github.com/tldr-it-stepankutaj/enigmakit/internal/reports"
	"github.com/tldr-it-stepankutaj/enigmakit/internal/tui"
	"github.com/tldr-it-stepankutaj/enigmakit/internal/workspace"
	"github.com/tldr-it-stepankutaj/enigmakit/pkg/version"
)

var rootCmd = &cobra.Command{
	Use:           "enigmakit",
	Short:         "enigmakit: Enigma cipher machine simulator (CLI/TUI)",
	Long:          "enigmakit simulates the Enigma I, M3 and M4 cipher machines. Use the CLI by default or the keyboard TUI with --tui.",
	SilenceUsage: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		if viper.GetBool("tui") {
			appCtx, err := createAppContext()
			if err != nil {
				return err
			}
			// The engine logs rejected keys; keep them off the screen.
			logFile, err := os.OpenFile(appCtx.Workspace.Path("logs", "tui.log"), os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
			if err != nil {
				return err
			}
			defer logFile.Close()
			level, _ := app.ParseLevel(appCtx.Config.LogLevel)
			appCtx.Logger = app.NewLogger(level, logFile)
			return tui.Run(appCtx)
		}
		return cmd.Help()
	},
}

func init() {
	cobra.OnInitialize(initConfig)

	// Persistent flags (available to all subcommands).
	rootCmd.PersistentFlags().String("config", "", "Config file (default: enigmakit.yaml in the workspace or current directory)")
	rootCmd.PersistentFlags().String("workspace", "./work", "Path to workspace root")
	rootCmd.PersistentFlags().Bool("tui", false, "Run in TUI mode")
	rootCmd.PersistentFlags().String("log-level", "info", "Log level (debug|info|warn|error)")
	rootCmd.PersistentFlags().String("inventory", "", "YAML or TOML file with extra rotors, reflectors and entry discs")

	// Bind flags to Viper.
	_ = viper.BindPFlag("config", rootCmd.PersistentFlags().Lookup("config"))
	_ = viper.BindPFlag("workspace", rootCmd.PersistentFlags().Lookup("workspace"))
	_ = viper.BindPFlag("tui", rootCmd.PersistentFlags().Lookup("tui"))
	_ = viper.BindPFlag("log_level", rootCmd.PersistentFlags().Lookup("log-level"))
	_ = viper.BindPFlag("inventory", rootCmd.PersistentFlags().Lookup("inventory"))

	// Env support: ENIGMAKIT_WORKSPACE, ENIGMAKIT_MACHINE_START, etc.
	app.SetDefaults(viper.GetViper())
	app.BindEnv(viper.GetViper())

	rootCmd.AddCommand(initCmd)
	rootCmd.AddCommand(encodeCmd)
	rootCmd.AddCommand(batchCmd)
	rootCmd.AddCommand(modelsCmd)
	rootCmd.AddCommand(inventoryCmd)
	rootCmd.AddCommand(versionCmd)
}

func initConfig() {
	if file := viper.GetString("config"); file != "" {
		viper.SetConfigFile(file)
	} else {
		viper.SetConfigName("enigmakit")
		viper.SetConfigType("yaml")
		viper.AddConfigPath(viper.GetString("workspace"))
		viper.AddConfigPath(".")
	}
	if err := viper.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			fmt.Fprintf(os.Stderr, "[!] Failed to read config: %v\n", err)
		}
	}
}

// Helper to create app context
func createAppContext() (app.Context, error) {
	cfg, err := app.LoadConfig(viper.GetViper())
	if err != nil {
		return app.Context{}, err
	}
	ws, err := workspace.Ensure(cfg.Workspace)
	if err != nil {
		return app.Context{}, err
	}
	inv, err := app.LoadInventory(cfg.InventoryFile)
	if err != nil {
		return app.Context{}, err
	}
	level, _ := app.ParseLevel(cfg.LogLevel)
	return app.Context{
		Ctx:       context.Background(),
		Config:    cfg,
		Workspace: ws,
		Now:       time.Now(),
		Logger:    app.NewLogger(level, os.Stderr),
		Inventory: inv,
		Models:    models.Standard(),
	}, nil
}

// `init` subcommand: workspace structure plus a default config file.
var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Initialize workspace structure and write a default config",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := app.LoadConfig(viper.GetViper())
		if err != nil {
			return err
		}
		ws, err := workspace.Ensure(cfg.Workspace)
		if err != nil {
			return err
		}
		fmt.Printf("Workspace ready at: %s\n", ws.Root)

		force, _ := cmd.Flags().GetBool("force")
		path, err := ws.WriteConfig(cfg, force)
		if errors.Is(err, workspace.ErrExists) {
			fmt.Printf("Config kept: %s (use --force to overwrite)\n", path)
			return nil
		}
		if err != nil {
			return err
		}
		fmt.Printf("Config written: %s\n", path)
		return nil
	},
}

func init() {
	initCmd.Flags().Bool("force", false, "Overwrite an existing config file")
}

// `encode` subcommand: runs text through the configured machine. The
// machine is reciprocal, so this also decodes.
var encodeCmd = &cobra.Command{
	Use:   "encode [text...]",
	Short: "Encode or decode text (reads stdin when no text is given)",
	RunE: func(cmd *cobra.Command, args []string) error {
		appCtx, err := createAppContext()
		if err != nil {
			return err
		}

		mc := appCtx.Config.Machine
		flags := cmd.Flags()
		if flags.Changed("model") {
			mc.Model, _ = flags.GetString("model")
		}
		if flags.Changed("reflector") {
			mc.Reflector, _ = flags.GetString("reflector")
		}
		if flags.Changed("entry-disc") {
			mc.EntryDisc, _ = flags.GetString("entry-disc")
		}
		if flags.Changed("rotors") {
			mc.Rotors, _ = flags.GetStringSlice("rotors")
		}
		if flags.Changed("ring") {
			mc.RingSettings, _ = flags.GetString("ring")
		}
		if flags.Changed("plugs") {
			mc.Plugs, _ = flags.GetString("plugs")
		}
		if flags.Changed("start") {
			mc.Start, _ = flags.GetString("start")
		}

		m, err := app.BuildMachine(mc, appCtx.Inventory, appCtx.Models, appCtx.Logger)
		if err != nil {
			return err
		}

		kinds, _ := flags.GetStringSlice("events")
		if len(kinds) == 0 {
			kinds = appCtx.Config.Events
		}
		if len(kinds) > 0 {
			m.Listen("cli", eventPrinter(os.Stderr, kinds))
		}

		text := strings.Join(args, " ")
		if text == "" {
			data, err := io.ReadAll(bufio.NewReader(os.Stdin))
			if err != nil {
				return fmt.Errorf("failed to read stdin: %w", err)
			}
			text = string(data)
		}

		out, err := m.Translate(enigma.Letters(m.Windows()), text)
		if err != nil {
			return err
		}
		if grouped, _ := flags.GetBool("group"); grouped {
			out = group(out, 5)
		}
		fmt.Println(out)
		appCtx.Logger.Debug("encoded", "machine", m.Name(), "letters", len(out), "end", m.Windows())
		return nil
	},
}

func init() {
	encodeCmd.Flags().String("model", "", "Machine model to check the setup against (I, M3, M4)")
	encodeCmd.Flags().String("reflector", "", "Reflector name")
	encodeCmd.Flags().String("entry-disc", "", "Entry disc name")
	encodeCmd.Flags().StringSlice("rotors", nil, "Rotors left to right, e.g. II,IV,V")
	encodeCmd.Flags().String("ring", "", "Ring settings, letters (BUL) or numbers (2,21,12)")
	encodeCmd.Flags().String("plugs", "", "Plug pairs, e.g. \"AV BS CG\"")
	encodeCmd.Flags().String("start", "", "Start positions left to right, e.g. BLA")
	encodeCmd.Flags().StringSlice("events", nil, "Print events of these kinds to stderr (step, double-step, input, output, translate, all)")
	encodeCmd.Flags().Bool("group", false, "Print output in groups of five letters")
}

// eventPrinter writes event descriptions of the selected kinds to w.
func eventPrinter(w io.Writer, kinds []string) enigma.Listener {
	want := make(map[enigma.EventKind]bool, len(kinds))
	all := false
	for _, k := range kinds {
		k = strings.ToLower(strings.TrimSpace(k))
		if k == "all" {
			all = true
		}
		want[enigma.EventKind(k)] = true
	}
	return enigma.ListenerFunc(func(e enigma.Event) {
		if all || want[e.Kind] {
			fmt.Fprintf(w, "[%s] %s\n", e.Kind, e.Description)
		}
	})
}

func group(s string, n int) string {
	var sb strings.Builder
	for i, r := range s {
		if i > 0 && i%n == 0 {
			sb.WriteByte(' ')
		}
		sb.WriteRune(r)
	}
	return sb.String()
}

// `batch` subcommand: run files of messages and report on them.
var batchCmd = &cobra.Command{
	Use:   "batch",
	Short: "Run batch jobs of messages",
}

var batchRunCmd = &cobra.Command{
	Use:   "run",
	Short: "Run a predefined or custom batch job",
	RunE: func(cmd *cobra.Command, args []string) error {
		appCtx, err := createAppContext()
		if err != nil {
			return err
		}

		name, _ := cmd.Flags().GetString("name")
		file, _ := cmd.Flags().GetString("file")

		var job *batch.Job
		if file != "" {
			job, err = batch.LoadJob(file)
			if err != nil {
				return fmt.Errorf("failed to load job: %w", err)
			}
		} else if name != "" {
			var ok bool
			job, ok = batch.GetPredefinedJob(name)
			if !ok {
				return fmt.Errorf("unknown job: %s (available: %s)", name, strings.Join(batch.ListPredefinedJobs(), ", "))
			}
		} else {
			return fmt.Errorf("job name or file is required")
		}

		ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
		defer stop()
		appCtx.Ctx = ctx

		run, runErr := batch.Execute(appCtx, job)
		if run == nil {
			return runErr
		}

		format, _ := cmd.Flags().GetString("format")
		output, _ := cmd.Flags().GetString("output")
		report := reports.FromRun(run, reports.Metadata{
			GeneratedAt:   appCtx.Now,
			WorkspacePath: appCtx.Workspace.Path(),
			ReportFormat:  format,
		})
		if output == "" {
			output = appCtx.Workspace.Path("reports", report.Filename(format))
		}
		if err := report.Export(output); err != nil {
			return err
		}

		fmt.Printf("[+] Report generated: %s\n", output)
		fmt.Printf("    Messages: %d\n", report.Statistics.TotalMessages)
		fmt.Printf("    Passed: %d, Failed: %d, Errors: %d, Skipped: %d\n", run.Passed, run.Failed, run.Errors, run.Skipped)

		if runErr != nil {
			return runErr
		}
		if run.Status != batch.StatusPassed {
			return fmt.Errorf("job %s: %s", job.Name, run.Status)
		}
		return nil
	},
}

var batchListCmd = &cobra.Command{
	Use:   "list",
	Short: "List available predefined jobs",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Println("Available jobs:")
		for _, name := range batch.ListPredefinedJobs() {
			if job, ok := batch.GetPredefinedJob(name); ok {
				fmt.Printf("  %s - %s (%d messages)\n", name, job.Description, len(job.Messages))
			}
		}
	},
}

func init() {
	batchRunCmd.Flags().String("name", "", "Predefined job name")
	batchRunCmd.Flags().String("file", "", "Path to job YAML or TOML file")
	batchRunCmd.Flags().String("format", "md", "Report format (md, html, json)")
	batchRunCmd.Flags().String("output", "", "Report file path (default: workspace/reports/)")

	batchCmd.AddCommand(batchRunCmd)
	batchCmd.AddCommand(batchListCmd)
}

// `models` subcommand.
var modelsCmd = &cobra.Command{
	Use:   "models",
	Short: "List supported machine models",
	Run: func(cmd *cobra.Command, args []string) {
		for _, m := range models.Standard().All() {
			fmt.Printf("%-4s %s\n", m.Name, m.Description)
			fmt.Printf("     reflectors: %s\n", strings.Join(m.Reflectors, " "))
			fmt.Printf("     rotors:     %s\n", strings.Join(m.Rotors, " "))
			if len(m.FixedRotors) > 0 {
				fmt.Printf("     leftmost:   %s\n", strings.Join(m.FixedRotors, " "))
			}
		}
	},
}

// `inventory` subcommand.
var inventoryCmd = &cobra.Command{
	Use:   "inventory",
	Short: "List rotors, reflectors and entry discs",
	RunE: func(cmd *cobra.Command, args []string) error {
		inv, err := app.LoadInventory(viper.GetString("inventory"))
		if err != nil {
			return err
		}

		filter := inventory.All
		if fixed, _ := cmd.Flags().GetBool("fixed"); fixed {
			filter = inventory.Fixed
		}
		if stepping, _ := cmd.Flags().GetBool("stepping"); stepping {
			filter = inventory.Stepping
		}

		fmt.Println("Rotors:")
		for _, name := range inv.RotorNames(filter) {
			r, _ := inv.Rotor(name)
			turnovers := r.Turnovers
			if r.Fixed() {
				turnovers = "fixed"
			}
			fmt.Printf("  %-8s %s  %s\n", name, r.Wiring, turnovers)
		}
		fmt.Println("Reflectors:")
		for _, name := range inv.ReflectorNames() {
			r, _ := inv.Reflector(name)
			fmt.Printf("  %-8s %s\n", name, r.Wiring)
		}
		fmt.Println("Entry discs:")
		for _, name := range inv.EntryDiscNames() {
			e, _ := inv.EntryDisc(name)
			fmt.Printf("  %-8s %s\n", name, e.Wiring)
		}
		return nil
	},
}

func init() {
	inventoryCmd.Flags().Bool("fixed", false, "Only list rotors that never step")
	inventoryCmd.Flags().Bool("stepping", false, "Only list rotors that step")
	inventoryCmd.MarkFlagsMutuallyExclusive("fixed", "stepping")
}

// `version` subcommand.
var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print version information",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Println(version.String())
	},
}

// Execute runs the command tree.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
