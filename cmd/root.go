package cmd

import (
	"fmt"
	"os"
	"time"

	"github.com/ckarenz/floorsim/internal/models"
	"github.com/ckarenz/floorsim/internal/simulator"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var cfgFile string

var rootCmd = &cobra.Command{
	Use:   "floorsim",
	Short: "Simulates a restaurant dining floor as streaming event data",
	Long:  `floorsim is a CLI tool that runs a discrete-time simulation of a restaurant service: customers arrive and claim tables, waiters take orders and carry plates, chefs cook at stations and stage food on the pass counter, while the whole service is emitted as event streams for downstream pipelines.`,
	Run: func(cmd *cobra.Command, args []string) {
		cfg, err := models.LoadConfig(cfgFile)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error loading config: %v\n", err)
			os.Exit(1)
		}

		sim := simulator.NewSimulator(cfg)
		sim.Run()
	},
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is examples/config.json)")

	rootCmd.Flags().Int64("seed", 42, "Random seed for the run")
	rootCmd.Flags().String("start-time", time.Now().Format(time.RFC3339), "Service start time")
	rootCmd.Flags().String("service-duration", "8h", "How long the service lasts")
	rootCmd.Flags().String("tick-interval", "500ms", "Simulated time per tick")
	rootCmd.Flags().Int("num-tables", 12, "Number of tables on the floor")
	rootCmd.Flags().Int("num-waiters", 3, "Number of waiters")
	rootCmd.Flags().Int("num-chefs", 2, "Number of chefs")
	rootCmd.Flags().Float64("arrival-rate", 24.0, "Customer arrivals per hour")
	rootCmd.Flags().Float64("peak-hour-factor", 1.5, "Arrival multiplier during peak hours")
	rootCmd.Flags().Float64("weekend-factor", 1.2, "Arrival multiplier on weekends")
	rootCmd.Flags().Float64("starting-funds", 200.0, "Opening balance in the till")
	rootCmd.Flags().Bool("kafka-enabled", false, "Enable Kafka output")
	rootCmd.Flags().String("kafka-broker-list", "localhost:9092", "Kafka broker list")
	rootCmd.Flags().String("output-path", "", "Output directory (if not using Kafka)")
	rootCmd.Flags().String("output-format", "json", "Output format: json, csv or parquet")
	rootCmd.Flags().Bool("continuous", false, "Run in continuous wall-clock mode")
	rootCmd.Flags().Bool("resume", false, "Resume from the latest database snapshot")

	viper.BindPFlags(rootCmd.Flags())
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
