package cmd

import (
	"fmt"

	"github.com/gin-gonic/gin"
	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"sift/internal/apihandlers"
)

var (
	serveAddr string
	servePort string
)

// serveCmd represents the serve command
var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run sift as an HTTP API server",
	Long: `Starts an HTTP server exposing classification and filtering as a
RESTful API for other tools or browser clients.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		appInstance, err := GetAppFromContext(cmd.Context())
		if err != nil {
			return err
		}

		if mode := appInstance.Config.Server.Mode; mode != "" {
			gin.SetMode(mode)
		}
		router := gin.New()
		router.Use(gin.Recovery())
		router.Use(apihandlers.RequestID())
		router.Use(apihandlers.CORS(appInstance.Config.CORS.Origins))

		apiHandler := apihandlers.NewAPIHandler(appInstance)

		router.GET("/", apiHandler.HealthHandler)
		api := router.Group("/api")
		{
			api.POST("/classify", apiHandler.ClassifyHandler)
			api.POST("/filter", apiHandler.FilterHandler)
		}

		// Flags override the config file.
		if serveAddr == "" {
			serveAddr = appInstance.Config.Server.Addr
		}
		if servePort == "" {
			servePort = appInstance.Config.Server.Port
		}
		listenAddr := fmt.Sprintf("%s:%s", serveAddr, servePort)
		log.Infof("starting sift API server on http://%s (provider=%s, model=%s)",
			listenAddr, appInstance.Embedder.Name(), appInstance.Embedder.ModelName())

		if err := router.Run(listenAddr); err != nil {
			return fmt.Errorf("failed to run API server: %w", err)
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(serveCmd)

	serveCmd.Flags().StringVar(&serveAddr, "addr", "", "Address to listen on (e.g. '0.0.0.0' for all interfaces)")
	serveCmd.Flags().StringVar(&servePort, "port", "", "Port to listen on")
}
