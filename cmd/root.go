package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var cfgFile string

var rootCmd = &cobra.Command{
	Use:   "shopctl",
	Short: "Command-line client for the ShopHub marketplace",
	Long: `shopctl is a CLI client for the ShopHub e-commerce platform: browse and
track your orders, manage a local cart, check out with card or cash on
delivery, and keep a local snapshot of your order history.`,
	Run: func(cmd *cobra.Command, args []string) {
		_ = cmd.Help()
	},
}

func init() {
	cobra.OnInitialize(initConfig)
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is $HOME/.shopctl.yaml)")

	rootCmd.PersistentFlags().String("api-base-url", "", "ShopHub API base URL")
	rootCmd.PersistentFlags().String("user", "", "Act as this user id without a login session (demo mode)")
	rootCmd.PersistentFlags().Bool("events-enabled", false, "Emit client activity events")
	rootCmd.PersistentFlags().String("events-sink", "console", "Activity event sink (console, file, kafka)")
	rootCmd.PersistentFlags().String("kafka-broker-list", "localhost:9092", "Kafka broker list for the event sink")

	viper.BindPFlag("api_base_url", rootCmd.PersistentFlags().Lookup("api-base-url"))
	viper.BindPFlag("events_enabled", rootCmd.PersistentFlags().Lookup("events-enabled"))
	viper.BindPFlag("events_sink", rootCmd.PersistentFlags().Lookup("events-sink"))
	viper.BindPFlag("kafka_broker_list", rootCmd.PersistentFlags().Lookup("kafka-broker-list"))
}

func initConfig() {
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		home, err := os.UserHomeDir()
		cobra.CheckErr(err)

		viper.AddConfigPath(home)
		viper.SetConfigType("yaml")
		viper.SetConfigName(".shopctl")
	}

	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err == nil {
		fmt.Fprintln(os.Stderr, "Using config file:", viper.ConfigFileUsed())
	}
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
