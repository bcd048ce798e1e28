package main

import (
	"strconv"

	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"
	"github.com/valyala/fasthttp"
	"go.uber.org/zap"

	"faraid-engine/internal/handler"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the calculation API over HTTP",
	RunE: func(cmd *cobra.Command, args []string) error {
		addr := ":" + strconv.Itoa(cfg.Server.Port)
		h := handler.New(eng)

		zap.L().Info("faraid engine starting", zap.String("addr", addr))
		if err := fasthttp.ListenAndServe(addr, h.Serve); err != nil {
			return eris.Wrap(err, "serve: listen")
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(serveCmd)
}
