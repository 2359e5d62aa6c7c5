package cmd

import (
	"context"
	"log"
	"os"

	"github.com/spf13/cobra"

	"github.com/ledgerhub/go-bank-ledger/cmd/setup"
	"github.com/ledgerhub/go-bank-ledger/internal/common/graceful"
	"github.com/ledgerhub/go-bank-ledger/internal/common/logger"
	"github.com/ledgerhub/go-bank-ledger/internal/deliveries/consumer"
	kafkaconsumer "github.com/ledgerhub/go-bank-ledger/internal/deliveries/consumer/kafka"
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "consumer",
	Short: "Consumer is a consumer application for handling ledger transaction messages or dlq",
	Long:  ``,
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func init() {
	rootCmd.AddCommand(runConsumerCmd)

	runConsumerCmd.Flags().StringP(runConsumerCmdName, "n", "", "consumer name")
	runConsumerCmd.MarkFlagRequired(runConsumerCmdName)
}

var (
	runConsumerCmd = &cobra.Command{
		Use:     "run",
		Short:   "Run consumer",
		Long:    `Run consumer for handling ledger transaction messages or dlq, available consumer type: ledger_applier, dlq_retrier`,
		Example: "consumer run -n={consumer-type-name}",
		Run:     runConsumer,
	}
	runConsumerCmdName = "name"
)

func runConsumer(ccmd *cobra.Command, args []string) {
	var (
		ctx      = context.Background()
		starters []graceful.ProcessStarter
		stoppers []graceful.ProcessStopper
	)

	consumerName, _ := ccmd.Flags().GetString(runConsumerCmdName)

	s, stopperContract, err := setup.Init("consumer-" + consumerName)
	if err != nil {
		log.Fatalf("failed to setup app: %v", err)
	}

	consumerProcess, consumerStoppers, err := consumer.NewKafkaConsumer(ctx, consumerName, s.Config, s.Service, s)
	if err != nil {
		logger.Fatal(ctx, "failed to setup consumer", logger.Err(err))
	}

	healthCheckProcess := kafkaconsumer.NewHTTPServer(ctx, s.Config, s.Metrics)

	starters = append(starters, consumerProcess.Start(), healthCheckProcess.Start())
	stoppers = append(stoppers, stopperContract...)
	stoppers = append(stoppers, consumerStoppers...)
	stoppers = append(stoppers, consumerProcess.Stop())
	stoppers = append(stoppers, healthCheckProcess.Stop())

	logger.Info(ctx, "starting consumer", logger.String("consumer", consumerName))
	graceful.StartProcessAtBackground(starters...)
	graceful.StopProcessAtBackground(s.Config.App.GracefulTimeout, stoppers...)

	logger.Info(ctx, "consumer stopped!", logger.String("consumer", consumerName))
}
