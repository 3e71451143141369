package main

import (
	"context"
	"net/http"
	"os"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/xavierca1/ligue-crm-sync/internal/infra/database"
	"github.com/xavierca1/ligue-crm-sync/internal/infra/http/handlers"
	appmiddleware "github.com/xavierca1/ligue-crm-sync/internal/infra/http/middleware"
	"github.com/xavierca1/ligue-crm-sync/internal/infra/integration/hubspot"
	"github.com/xavierca1/ligue-crm-sync/internal/infra/integration/portal"
	"github.com/xavierca1/ligue-crm-sync/internal/infra/mail"
	"github.com/xavierca1/ligue-crm-sync/internal/infra/queue"
	appworker "github.com/xavierca1/ligue-crm-sync/internal/infra/worker"
	"github.com/xavierca1/ligue-crm-sync/internal/usecase"
)

func main() {
	godotenv.Load()

	if os.Getenv("APP_ENV") != "production" {
		log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr})
	}

	db, err := database.NewDBConnection(os.Getenv("DATABASE_URL"))
	if err != nil {
		log.Fatal().Err(err).Msg("❌ Falha ao conectar no Postgres")
	}
	defer db.Close()

	rabbitMQ, err := queue.NewRabbitMQ(
		os.Getenv("RABBITMQ_USER"), os.Getenv("RABBITMQ_PASS"),
		os.Getenv("RABBITMQ_HOST"), os.Getenv("RABBITMQ_PORT"),
	)
	if err != nil {
		log.Fatal().Err(err).Msg("❌ Falha ao conectar no RabbitMQ")
	}
	defer rabbitMQ.Conn.Close()
	defer rabbitMQ.Ch.Close()

	// 1. Repositórios
	contactRepo := database.NewContactRepository(db)
	companyRepo := database.NewCompanyRepository(db)
	dealRepo := database.NewDealRepository(db)
	lineItemRepo := database.NewLineItemRepository(db)

	// 2. Gateways e Adapters
	crmClient := hubspot.NewClient(
		os.Getenv("HUBSPOT_TOKEN"),
		getenv("HUBSPOT_BASE_URL", "https://api.hubapi.com"),
	)
	portalClient := portal.NewClient(
		os.Getenv("PORTAL_URL"),
		os.Getenv("PORTAL_CLIENT_ID"),
		os.Getenv("PORTAL_CLIENT_SECRET"),
	)
	producer := queue.NewProducer(rabbitMQ.Conn, rabbitMQ.Ch)
	mailSender := mail.NewEmailSender(
		os.Getenv("MAIL_HOST"), mailPort(), os.Getenv("MAIL_USER"), os.Getenv("MAIL_PASS"),
		getenv("OPS_EMAIL", "ops@liguemedicina.com"),
	)

	// 3. Workers (fila de resultados + reconciliação do Portal)
	resultWorker := queue.NewWorker(rabbitMQ.Ch, mailSender)
	go resultWorker.Start(queue.QueueName)

	// 4. UseCase (orquestrador do pipeline)
	processUC := usecase.NewProcessWebhookUseCase(
		contactRepo, companyRepo, dealRepo, lineItemRepo,
		crmClient, portalClient, producer,
	)

	resyncWorker := appworker.NewPortalResyncWorker(contactRepo, processUC)
	go resyncWorker.Start(context.Background())

	// 5. Handlers
	webhookHandler := handlers.NewWebhookHandler(processUC)
	contactHandler := handlers.NewContactHandler(contactRepo, processUC)
	healthHandler := handlers.NewHealthHandler(db, rabbitMQ.Conn, crmClient)

	// 6. Router
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(appmiddleware.RequestLogger(log.Logger))
	r.Use(appmiddleware.Metrics)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: []string{"*"},
		AllowedMethods: []string{"GET", "POST", "OPTIONS"},
	}))

	webhookSecret := os.Getenv("HUBSPOT_WEBHOOK_SECRET")
	signatureBypass := os.Getenv("WEBHOOK_SIGNATURE_BYPASS") == "true" && os.Getenv("APP_ENV") != "production"

	r.With(appmiddleware.Signature(webhookSecret, signatureBypass)).
		Post("/webhook/hubspot", webhookHandler.Handle)

	r.Get("/health", healthHandler.Handle)
	r.Get("/contacts/{remoteID}", contactHandler.HandleGet)
	r.Get("/contacts/{remoteID}/sync-status", contactHandler.HandleGetSyncStatus)
	r.Post("/sync/contacts/{remoteID}", contactHandler.HandleResync)
	r.Handle("/metrics", promhttp.Handler())

	port := ":8080"
	log.Info().Str("port", port).Msg("🔥 Server Ligue CRM Sync rodando")
	http.ListenAndServe(port, r)
}

func getenv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func mailPort() int {
	if p, err := strconv.Atoi(os.Getenv("MAIL_PORT")); err == nil {
		return p
	}
	return 587
}
