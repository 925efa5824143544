package main

import (
	"context"
	"log"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/subosito/gotenv"

	"github.com/MauricioIPastora/portfolio-assistant/adapters/http"
	"github.com/MauricioIPastora/portfolio-assistant/adapters/llm"
	"github.com/MauricioIPastora/portfolio-assistant/config"
	"github.com/MauricioIPastora/portfolio-assistant/domain"
	"github.com/MauricioIPastora/portfolio-assistant/usecase"
)

func main() {
	gotenv.Load()

	cfg, err := config.FromEnv()
	if err != nil {
		log.Fatal(err)
	}

	ctx := context.Background()

	var generator domain.AnswerGenerator
	if cfg.UseKnowledgeBase() {
		generator, err = llm.NewBedrockGenerator(ctx, cfg.AWS)
		if err != nil {
			log.Fatal(err)
		}
		log.Printf("Using Bedrock knowledge base %s in %s", cfg.AWS.KnowledgeBaseID, cfg.AWS.Region)
	} else {
		generator, err = llm.NewGeminiGenerator(ctx, cfg.Gemini)
		if err != nil {
			log.Fatal(err)
		}
		log.Println("No knowledge base configured, using direct Gemini generation")
	}

	assistant := usecase.NewAssistantService(generator)
	handler := http.NewChatHandler(assistant)

	e := echo.New()

	// Security middleware
	e.Use(middleware.Logger())
	e.Use(middleware.Recover())
	e.Use(middleware.Secure())

	// CORS for the portfolio frontend
	e.Use(middleware.CORSWithConfig(middleware.CORSConfig{
		AllowOrigins: []string{"*"}, // In production, specify exact origins
		AllowMethods: []string{echo.GET, echo.POST, echo.OPTIONS},
		AllowHeaders: []string{
			echo.HeaderOrigin,
			echo.HeaderContentType,
			echo.HeaderAccept,
		},
		MaxAge: 86400, // 24 hours
	}))

	// Chat bodies are small; anything bigger is not a conversation
	e.Use(middleware.BodyLimit("1MB"))

	api := e.Group("/api")
	api.GET("/health", handler.HealthCheck)
	api.POST("/chat", handler.Chat)

	log.Println("Starting server on :" + cfg.Port)
	log.Println("Available endpoints:")
	log.Println("  GET  /api/health - Health check")
	log.Println("  POST /api/chat   - Assistant chat")
	log.Fatal(e.Start(":" + cfg.Port))
}
