package main

import (
	"log"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"github.com/votecard/cardflow/agent"
	"github.com/votecard/cardflow/config"
)

type cfg struct {
	config.Config
}
type cli struct {
	cfg cfg
}

func setupFlags(cmd *cobra.Command) error {
	cmd.Flags().String("config-file", "", "Path to config file.")
	cmd.Flags().String("redis-addr", "localhost:6379", "comma separated list of redis host:port")
	cmd.Flags().String("namespace", "cardflow", "namespace used in storage")
	cmd.Flags().Int("http-port", 8080, "http port for rest endpoints")
	cmd.Flags().String("storage-impl", "memory", "implementation of underline storage")
	cmd.Flags().String("verifier-impl", "heuristic", "implementation of the verification gateway")
	cmd.Flags().String("fraud-service-url", "http://localhost:9090/fraud", "url of the fraud detection service")
	cmd.Flags().String("legitimacy-service-url", "http://localhost:9090/legitimacy", "url of the order verification service")
	cmd.Flags().Int("verify-timeout", 3, "verification call timeout in seconds")
	cmd.Flags().Int("verifier-capacity", 512, "verification worker capacity")
	cmd.Flags().Int("run-ttl", 1800, "seconds an abandoned run is kept")
	cmd.Flags().String("analytics-file", "cardflow_analytics.log", "file submission outcomes are recorded to")
	return viper.BindPFlags(cmd.Flags())
}

func (c *cli) setupConfig(cmd *cobra.Command, args []string) error {
	var err error

	configFile, err := cmd.Flags().GetString("config-file")
	if err != nil {
		return err
	}
	viper.SetConfigFile(configFile)

	if err = viper.ReadInConfig(); err != nil {
		// it's ok if config file doesn't exist
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return err
		}
	}

	c.cfg.RedisConfig.Addrs = strings.Split(viper.GetString("redis-addr"), ",")
	c.cfg.RedisConfig.Namespace = viper.GetString("namespace")
	c.cfg.HttpPort = viper.GetInt("http-port")
	c.cfg.StorageType = config.StorageType(viper.GetString("storage-impl"))
	c.cfg.VerifierType = config.VerifierType(viper.GetString("verifier-impl"))
	c.cfg.FraudServiceUrl = viper.GetString("fraud-service-url")
	c.cfg.LegitimacyServiceUrl = viper.GetString("legitimacy-service-url")
	c.cfg.VerifyTimeoutSeconds = viper.GetInt("verify-timeout")
	c.cfg.VerifierCapacity = viper.GetInt("verifier-capacity")
	c.cfg.RunTTLSeconds = viper.GetInt("run-ttl")
	c.cfg.AnalyticsFile = viper.GetString("analytics-file")
	return nil
}

func (c *cli) run(cmd *cobra.Command, args []string) error {
	agent, err := agent.New(c.cfg.Config)
	if err != nil {
		panic(err)
	}
	err = agent.Start()
	if err != nil {
		panic(err)
	}
	sigc := make(chan os.Signal, 1)
	signal.Notify(sigc, syscall.SIGINT, syscall.SIGTERM)
	<-sigc
	return agent.Shutdown()
}

func main() {
	cli := &cli{}

	cmd := &cobra.Command{
		Use:     "cardflow",
		PreRunE: cli.setupConfig,
		RunE:    cli.run,
	}

	if err := setupFlags(cmd); err != nil {
		log.Fatal(err)
	}

	if err := cmd.Execute(); err != nil {
		log.Fatal(err)
	}
}
