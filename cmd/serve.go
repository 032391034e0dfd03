/*
Copyright © 2025 NAME HERE <EMAIL ADDRESS>
*/
package cmd

import (
	"presale-relay/internal/config"
	"presale-relay/internal/errs"
	"presale-relay/internal/handler"
	"presale-relay/internal/svc"

	"github.com/common-nighthawk/go-figure"
	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"github.com/zeromicro/go-zero/core/conf"
	"github.com/zeromicro/go-zero/core/logx"
	"github.com/zeromicro/go-zero/rest"
	"github.com/zeromicro/go-zero/rest/httpx"
)

// serveCmd represents the serve command
var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "run the presale relay HTTP server",
	Long:  `run the presale relay HTTP server`,
	Run: func(cmd *cobra.Command, args []string) {
		Serve(cfgFile)
	},
}

func init() {
	rootCmd.AddCommand(serveCmd)
}

func Serve(cfgFile string) {
	godotenv.Load()

	var c config.Config
	conf.MustLoad(cfgFile, &c)
	logx.MustSetup(c.Log.LogConf)

	figure.NewColorFigure(c.Banner.Text, c.Banner.FontName, c.Banner.Color, true).Print()

	svcCtx := svc.NewServiceContext(c)
	if _, err := svcCtx.PresaleWallet(); err != nil {
		// Not fatal: /health must come up regardless, and the transaction
		// routes report the configuration error per request.
		logx.Errorf("presale wallet not ready: %v", err)
	}

	server := rest.MustNewServer(
		c.Rest.RestConf,
		rest.WithCors(),
		rest.WithNotFoundHandler(handler.NotFoundHandler()),
	)
	defer server.Stop()

	httpx.SetErrorHandlerCtx(errs.Handle)
	handler.RegisterHandlers(server, svcCtx)

	logx.Infof("presale relay listening at %s:%d, rpc endpoint %s", c.Rest.Host, c.Rest.Port, c.Presale.RpcEndpoint)
	server.Start()
}
