// Package cli provides the Cobra-based CLI for scalepos.
package cli

import (
	"bufio"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"strings"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"scalepos/domain"
	"scalepos/pos"
	"scalepos/report"
	"scalepos/store"
)

var (
	rootCmd = &cobra.Command{
		Use:   "scalepos",
		Short: "A point-of-sale and inventory tracker for weight-priced goods",
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			// IMPORTANT: allow tests to inject register
			if register != nil {
				return nil
			}

			if cfg := viper.GetString("config"); cfg != "" {
				viper.SetConfigFile(cfg)
				if err := viper.ReadInConfig(); err != nil {
					return err
				}
			}

			lvlStr := strings.ToLower(viper.GetString("log-level"))
			lvl := slog.LevelInfo
			switch lvlStr {
			case "debug":
				lvl = slog.LevelDebug
			case "warn", "warning":
				lvl = slog.LevelWarn
			case "error":
				lvl = slog.LevelError
			}
			slog.SetDefault(slog.New(
				slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: lvl}),
			))

			blobs, err := store.NewStore(
				viper.GetString("store"),
				viper.GetString("data-dir"),
			)
			if err != nil {
				return err
			}
			register = pos.Open(context.Background(), blobs)
			return nil
		},
	}

	register *pos.Register
)

func currency() string {
	c := viper.GetString("currency")
	if c == "" {
		c = "Bs. "
	}
	return c
}

func init() {
	// shell
	shellCmd := &cobra.Command{
		Use:   "shell",
		Short: "Interactive shell mode",
		RunE: func(cmd *cobra.Command, args []string) error {
			r := bufio.NewReader(os.Stdin)
			for {
				fmt.Print("scalepos> ")
				line, err := r.ReadString('\n')
				if err != nil {
					return nil
				}
				line = strings.TrimSpace(line)
				if line == "" {
					continue
				}
				if line == "exit" || line == "quit" {
					return nil
				}
				rootCmd.SetArgs(strings.Fields(line))
				if err := rootCmd.Execute(); err != nil {
					fmt.Fprintln(os.Stderr, err)
				}
				rootCmd.SetArgs(nil)
			}
		},
	}
	rootCmd.AddCommand(shellCmd)

	rootCmd.PersistentFlags().String("store", "file", "store backend: memory|file")
	rootCmd.PersistentFlags().String("data-dir", "data", "data directory for the file store")
	rootCmd.PersistentFlags().String("currency", "Bs. ", "currency prefix for money output")
	rootCmd.PersistentFlags().String("config", "", "config file")
	rootCmd.PersistentFlags().String("log-level", "info", "log level")

	viper.BindPFlag("store", rootCmd.PersistentFlags().Lookup("store"))
	viper.BindPFlag("data-dir", rootCmd.PersistentFlags().Lookup("data-dir"))
	viper.BindPFlag("currency", rootCmd.PersistentFlags().Lookup("currency"))
	viper.BindPFlag("config", rootCmd.PersistentFlags().Lookup("config"))
	viper.BindPFlag("log-level", rootCmd.PersistentFlags().Lookup("log-level"))
	viper.SetEnvPrefix("SCALEPOS")
	viper.AutomaticEnv()

	// add
	var name string
	var price, stock float64
	addCmd := &cobra.Command{
		Use:   "add",
		Short: "Add a product to the catalog",
		RunE: func(cmd *cobra.Command, args []string) error {
			start := time.Now()
			p, err := register.AddProduct(context.Background(), name, price, stock)
			if err != nil {
				slog.Error("add failed", "name", name, "error", err)
				return err
			}
			slog.Info("product added", "product_id", p.ID, "duration_ms", time.Since(start).Milliseconds())
			b, _ := json.MarshalIndent(p, "", "  ")
			fmt.Println(string(b))
			return nil
		},
	}
	addCmd.Flags().StringVar(&name, "name", "", "product name")
	addCmd.Flags().Float64Var(&price, "price", 0, "price per kg")
	addCmd.Flags().Float64Var(&stock, "stock", 0, "stock in kg")
	rootCmd.AddCommand(addCmd)

	// edit
	var eName string
	var ePrice, eStock float64
	editCmd := &cobra.Command{
		Use:   "edit <id>",
		Short: "Edit a product",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id := args[0]

			p, err := register.Product(id)
			if err != nil {
				return err
			}

			if cmd.Flags().Changed("name") {
				p.Name = eName
			}
			if cmd.Flags().Changed("price") {
				p.PriceKg = ePrice
			}
			if cmd.Flags().Changed("stock") {
				p.StockKg = eStock
			}

			start := time.Now()
			p, err = register.EditProduct(context.Background(), id, p.Name, p.PriceKg, p.StockKg)
			if err != nil {
				slog.Error("edit failed", "product_id", id, "error", err)
				return err
			}

			slog.Info(
				"product updated",
				"product_id", id,
				"duration_ms", time.Since(start).Milliseconds(),
			)

			b, _ := json.MarshalIndent(p, "", "  ")
			fmt.Println(string(b))
			return nil
		},
	}
	editCmd.Flags().StringVar(&eName, "name", "", "product name")
	editCmd.Flags().Float64Var(&ePrice, "price", 0, "price per kg")
	editCmd.Flags().Float64Var(&eStock, "stock", 0, "stock in kg")
	rootCmd.AddCommand(editCmd)

	// list
	var lOutput string
	listCmd := &cobra.Command{
		Use:   "list",
		Short: "List catalog products",
		RunE: func(cmd *cobra.Command, args []string) error {
			out := register.Products()
			if lOutput == "json" {
				b, _ := json.MarshalIndent(out, "", "  ")
				fmt.Println(string(b))
				return nil
			}
			for _, p := range out {
				fmt.Printf("%s | %s | %s/kg | Stock %s\n",
					p.ID, p.Name,
					domain.FormatMoney(currency(), p.PriceKg),
					domain.FormatKg(p.StockKg))
			}
			return nil
		},
	}
	listCmd.Flags().StringVar(&lOutput, "output", "", "output format")
	rootCmd.AddCommand(listCmd)

	// delete
	var force bool
	deleteCmd := &cobra.Command{
		Use:   "delete <id>",
		Short: "Delete a product",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if !force {
				fmt.Printf("Delete %s? (y/N): ", args[0])
				var resp string
				if _, err := fmt.Scanln(&resp); err != nil || (resp != "y" && resp != "Y") {
					fmt.Println("aborted")
					return nil
				}
			}
			if err := register.DeleteProduct(context.Background(), args[0]); err != nil {
				return err
			}
			fmt.Println("deleted")
			return nil
		},
	}
	deleteCmd.Flags().BoolVar(&force, "force", false, "skip confirmation")
	rootCmd.AddCommand(deleteCmd)

	// sell
	var amount float64
	sellCmd := &cobra.Command{
		Use:   "sell <product-id>",
		Short: "Register a sale from a tendered money amount",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			start := time.Now()
			s, err := register.RegisterSale(context.Background(), args[0], amount)
			if err != nil {
				slog.Error("sale rejected", "product_id", args[0], "amount", amount, "error", err)
				return err
			}
			slog.Info(
				"sale registered",
				"sale_id", s.ID,
				"product_id", s.ProductID,
				"kg", s.Kg,
				"duration_ms", time.Since(start).Milliseconds(),
			)
			b, _ := json.MarshalIndent(s, "", "  ")
			fmt.Println(string(b))
			return nil
		},
	}
	sellCmd.Flags().Float64Var(&amount, "amount", 0, "tendered amount in money units")
	rootCmd.AddCommand(sellCmd)

	// sales
	var limit int
	salesCmd := &cobra.Command{
		Use:   "sales",
		Short: "Show recent sales and the running total",
		RunE: func(cmd *cobra.Command, args []string) error {
			all := register.Sales()
			n := len(all)
			if limit > 0 && limit < n {
				n = limit
			}
			for _, s := range all[:n] {
				fmt.Printf("%s — %s • %s (%s)\n",
					s.Name,
					domain.FormatKg(s.Kg),
					domain.FormatMoney(currency(), s.TotalBs),
					s.Date.Local().Format("2006-01-02 15:04:05"))
			}
			fmt.Printf("Total: %s\n", domain.FormatMoney(currency(), register.LedgerTotal()))
			return nil
		},
	}
	salesCmd.Flags().IntVar(&limit, "limit", 30, "max sales to show")
	rootCmd.AddCommand(salesCmd)

	// report
	var outDir, fromStr, toStr string
	reportCmd := &cobra.Command{
		Use:   "report daily|monthly|range",
		Short: "Export a sales report with an inventory snapshot",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			builder := report.Builder{Currency: currency()}
			products := register.Products()
			sales := register.Sales()

			var rep report.Report
			switch args[0] {
			case "daily":
				rep = builder.Daily(products, sales)
			case "monthly":
				rep = builder.Monthly(products, sales)
			case "range":
				if fromStr == "" || toStr == "" {
					return errors.New("--from and --to required for range reports")
				}
				from, err := time.ParseInLocation("2006-01-02", fromStr, time.Local)
				if err != nil {
					return err
				}
				to, err := time.ParseInLocation("2006-01-02", toStr, time.Local)
				if err != nil {
					return err
				}
				// include the whole of the --to day
				to = to.AddDate(0, 0, 1).Add(-time.Nanosecond)
				title := fmt.Sprintf("Reporte Ventas %s a %s", fromStr, toStr)
				rep = builder.Build(title, from, to, products, sales)
			default:
				return fmt.Errorf("unknown report kind: %s", args[0])
			}

			sink := &report.TextSink{Dir: outDir}
			if err := sink.Write(rep); err != nil {
				slog.Error("report export failed", "title", rep.Title, "error", err)
				return err
			}
			slog.Info("report exported", "title", rep.Title, "rows", len(rep.Rows))
			fmt.Printf("%s (%d sales, total %s)\n", rep.Filename, len(rep.Rows), rep.GrandTotal)
			return nil
		},
	}
	reportCmd.Flags().StringVar(&outDir, "out", "reports", "output directory")
	reportCmd.Flags().StringVar(&fromStr, "from", "", "range start (YYYY-MM-DD)")
	reportCmd.Flags().StringVar(&toStr, "to", "", "range end (YYYY-MM-DD)")
	rootCmd.AddCommand(reportCmd)

	// reset
	var resetForce bool
	resetCmd := &cobra.Command{
		Use:   "reset",
		Short: "Clear all products and sales",
		RunE: func(cmd *cobra.Command, args []string) error {
			if !resetForce {
				fmt.Print("Delete all local data (products + sales)? (y/N): ")
				var resp string
				if _, err := fmt.Scanln(&resp); err != nil || (resp != "y" && resp != "Y") {
					fmt.Println("aborted")
					return nil
				}
			}
			register.Reset(context.Background())
			fmt.Println("data cleared")
			return nil
		},
	}
	resetCmd.Flags().BoolVar(&resetForce, "force", false, "skip confirmation")
	rootCmd.AddCommand(resetCmd)
}

func Execute() error {
	return rootCmd.Execute()
}
