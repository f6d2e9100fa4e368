package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"

	"healthchat/internal/chat"
	"healthchat/internal/config"
	"healthchat/internal/service/ai"
	"healthchat/internal/tools"
)

func main() {
	modelFlag := flag.String("model", "", "model name to use (defaults to the provider's configured model)")
	providerFlag := flag.String("provider", "", "completion provider: openai, claude or gemini")
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

	provider := *providerFlag
	if provider == "" {
		provider = cfg.BasicConfig.Provider
	}
	provCfg, ok := cfg.Providers[provider]
	if !ok {
		log.Fatalf("provider %s not configured", provider)
	}

	envVar := ai.APIKeyEnv(provider)
	apiKey := os.Getenv(envVar)
	if apiKey == "" {
		fmt.Fprintf(os.Stderr, "Error: %s not found in environment variables.\n", envVar)
		fmt.Fprintf(os.Stderr, "Export your %s API key before starting a conversation.\n", provider)
		fmt.Fprintf(os.Stderr, "Example: export %s=your_key_here\n", envVar)
		os.Exit(1)
	}

	ctx := context.Background()
	service, err := ai.NewService(ctx, provider, *modelFlag, apiKey, provCfg, tools.Specs(), cfg.BasicConfig.Stream)
	if err != nil {
		log.Fatalf("init completion service: %v", err)
	}
	dispatcher := tools.NewDispatcher(cfg.BasicConfig.DatabasePath)

	systemPrompt := cfg.BasicConfig.SystemPrompt
	if systemPrompt == "" {
		systemPrompt = chat.DefaultSystemPrompt
	}
	conv := chat.NewConversation(systemPrompt)

	fmt.Println("Healthcare Agent Chat")
	fmt.Printf("Using model: %s\n", service.Model())
	fmt.Println("Type 'exit' or 'quit' to end the conversation.")
	fmt.Println()

	if err := chat.Run(ctx, conv, service, dispatcher, os.Stdin, os.Stdout); err != nil {
		log.Fatalf("chat loop: %v", err)
	}
}
