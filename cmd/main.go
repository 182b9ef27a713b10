package main

import (
	"fmt"
	"os"

	"generate-story-lambda/application/ports/outbound"
	"generate-story-lambda/application/services"
	"generate-story-lambda/config"
	"generate-story-lambda/infrastructure/adapters"
	"generate-story-lambda/infrastructure/gin_interface/controllers"
	"generate-story-lambda/middleware"
	mockgenerator "generate-story-lambda/mock"
	"github.com/aws/aws-sdk-go/aws/session"
	"github.com/aws/aws-sdk-go/service/dynamodb"
	"github.com/aws/aws-sdk-go/service/s3"
	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"github.com/panjf2000/ants/v2"
	"github.com/rs/zerolog/log"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Debug().Err(err).Msg("No .env file loaded")
	}

	sess := session.Must(session.NewSessionWithOptions(session.Options{
		SharedConfigState: session.SharedConfigEnable,
	}))

	elevenLabsConfig, err := config.GetElevenLabsConfig()
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to get eleven labs config")
	}

	s3Config, err := config.GetS3Config()
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to get s3 config")
	}

	dynamoConfig, err := config.GetDynamoConfig()
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to get dynamo config")
	}

	publisherConfig, err := config.GetPublisherConfig()
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to get publisher config")
	}

	retryConfig, err := config.GetRetryConfig()
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to get retry config")
	}

	pipelineConfig, err := config.GetPipelineConfig()
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to get pipeline config")
	}

	safetyConfig := config.GetSafetyConfig()

	jwksUrl := os.Getenv("JWKS_URL")
	if jwksUrl == "" {
		log.Fatal().Msg("JWKS_URL is not set!")
	}

	zeroLogger := adapters.NewZerologWrapper()

	panicHandler := func(p interface{}) {
		zeroLogger.Error(fmt.Errorf("%v", p), "Panic in worker pool")
	}

	workerPool, err := ants.NewPool(120, ants.WithPanicHandler(panicHandler))
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to create worker pool")
	}
	defer workerPool.Release()

	s3Client := s3.New(sess)
	dynamoClient := dynamodb.New(sess)

	contentFetcher := adapters.NewContentFetcher(zeroLogger)

	var promptProvider outbound.PromptProviderPort
	var streamGenerator outbound.StoryStreamGeneratorPort
	var metadataGenerator outbound.MetadataGeneratorPort
	if os.Getenv("MOCK_MODE") == "true" {
		zeroLogger.Warn("Running in mock mode, story generation is scripted")
		promptProvider = mockgenerator.NewStaticPromptProvider(adapters.DefaultStoryPrompt)
		chunkReader := mockgenerator.NewFileChunkReader(zeroLogger)
		streamGenerator = mockgenerator.NewScriptedStoryStream(chunkReader, "mock/story.json", workerPool, zeroLogger)
		metadataGenerator = adapters.NewGeminiMetadataGenerator(contentFetcher, &config.GeminiConfig{}, zeroLogger)
	} else {
		geminiConfig, err := config.GetGeminiConfig()
		if err != nil {
			log.Fatal().Err(err).Msg("Failed to get gemini config")
		}
		promptProvider = adapters.NewGeminiPromptGenerator(contentFetcher, geminiConfig, zeroLogger)
		streamGenerator = adapters.NewGeminiStoryStream(geminiConfig, workerPool, zeroLogger)
		metadataGenerator = adapters.NewGeminiMetadataGenerator(contentFetcher, geminiConfig, zeroLogger)
	}

	audioSynthesizer := adapters.NewElevenLabsAudioSynthesizer(contentFetcher, elevenLabsConfig, zeroLogger)
	sceneCreator := adapters.NewFFmpegSceneCreator(zeroLogger)
	videoConcatenate := adapters.NewFFmpegVideoConcatenate(zeroLogger)
	thumbnailRenderer := adapters.NewFFmpegThumbnailRenderer(zeroLogger)

	artifactStore := adapters.NewS3ArtifactStore(zeroLogger, s3Client, s3Config)
	videoPublisher := adapters.NewS3VideoPublisher(zeroLogger, s3Client, s3Config)
	runArchive := adapters.NewDynamoRunArchive(zeroLogger, dynamoClient, dynamoConfig)

	authorizer := adapters.NewCognitoAuthorizer(zeroLogger, publisherConfig)
	metadataPublisher := adapters.NewContentApiMetadataPublisher(zeroLogger, publisherConfig, authorizer)

	textProcessor := services.NewStoryTextProcessor(zeroLogger)
	validator := services.NewContentValidator()

	orchestrator := services.NewStoryPipelineOrchestrator(zeroLogger, promptProvider, streamGenerator,
		textProcessor, validator, services.OrchestratorParams{
			MinSegments:      pipelineConfig.MinSegments,
			MaxStoryAttempts: pipelineConfig.MaxStoryAttempts,
			AspectRatio:      pipelineConfig.AspectRatio,
			Safety:           safetyConfig.Settings,
			ApiRetry:         retryConfig.ToPolicy(),
		})

	handoff := services.NewContentHandoff(zeroLogger, workerPool, audioSynthesizer, sceneCreator,
		videoConcatenate, thumbnailRenderer, metadataGenerator, artifactStore, videoPublisher, metadataPublisher)

	videoPipeline := services.NewStoryVideoPipeline(zeroLogger, orchestrator, handoff, runArchive)

	storyPipelineController := controllers.NewStoryPipelineController(zeroLogger, videoPipeline)

	router := gin.Default()

	err = router.SetTrustedProxies(nil)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to set trusted proxies!")
	}

	authHandler, err := middleware.NewAuthHandler(jwksUrl, zeroLogger)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to create auth handler!")
	}

	router.Use(authHandler.AuthMiddleware())
	router.Use(middleware.SSEMiddleware(workerPool))

	storyPipelineController.RegisterRoutes(router)

	err = router.Run(":8080")
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to start server!")
	}
}
