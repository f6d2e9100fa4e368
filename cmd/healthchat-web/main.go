package main

import (
	"flag"
	"log"
	"os"

	"healthchat/internal/api"
	"healthchat/internal/config"
	"healthchat/internal/tools"

	"github.com/gin-gonic/gin"
)

func main() {
	configFlag := flag.String("config", "", "path to the configuration file")
	flag.Parse()

	cfgPath := *configFlag
	if cfgPath == "" {
		cfgPath = os.Getenv("HEALTHCHAT_CONFIG")
	}
	cfg, err := config.Load(cfgPath)
	if err != nil {
		log.Fatalf("load config: %v", err)
	}

	dispatcher := tools.NewDispatcher(cfg.BasicConfig.DatabasePath)
	handler := api.NewHandler(dispatcher)

	router := gin.Default()
	handler.RegisterRoutes(router)

	addr := cfg.BasicConfig.ServerAddress
	if addr == "" {
		addr = ":8090"
	}
	if err := router.Run(addr); err != nil {
		log.Fatalf("server stopped: %v", err)
	}
}
