package cmd

import (
	"net"
	"net/rpc"

	"github.com/spf13/cobra"

	"github.com/AINative-studio/ainative-code/internal/config"
	"github.com/AINative-studio/ainative-code/internal/group"
	"github.com/AINative-studio/ainative-code/internal/logger"
	"github.com/AINative-studio/ainative-code/internal/service"
)

var (
	serverAddr       string
	serverParamsFile string
)

var serverCmd = &cobra.Command{
	Use:   "server",
	Short: "Run the authentication server",
	RunE:  runServer,
}

func init() {
	serverCmd.Flags().StringVar(&serverAddr, "addr", "127.0.0.1:8080", "address to listen on")
	serverCmd.Flags().StringVar(&serverParamsFile, "params", "", "group parameter file (KEY=value), env overrides")
}

func runServer(cmd *cobra.Command, args []string) error {
	params, err := loadGroupParams(serverParamsFile)
	if err != nil {
		return err
	}

	svc := service.New(params)
	rpcServer := rpc.NewServer()
	if err := service.Bind(rpcServer, svc); err != nil {
		return err
	}

	listener, err := net.Listen("tcp", serverAddr)
	if err != nil {
		return err
	}
	defer listener.Close()

	logger.InfoWithFields("server listening", map[string]interface{}{"addr": serverAddr})
	rpcServer.Accept(listener)
	return nil
}

// loadGroupParams loads GroupParams from paramsFile if given, falling
// back to environment variables.
func loadGroupParams(paramsFile string) (*group.Params, error) {
	if paramsFile != "" {
		return config.LoadFromFile(paramsFile)
	}
	return config.LoadFromEnv()
}
