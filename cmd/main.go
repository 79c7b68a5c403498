package main

import (
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/segmentio/kafka-go"

	"github.com/mvineethr/virtual-closet-docker/internal/models"
	"github.com/mvineethr/virtual-closet-docker/internal/server"
	"github.com/mvineethr/virtual-closet-docker/internal/storage"
	"github.com/mvineethr/virtual-closet-docker/internal/upload"
)

func main() {
	cfg, err := models.LoadConfig("config.yaml")
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	db, err := storage.NewStorage(cfg.DatabaseURL)
	if err != nil {
		log.Fatalf("failed to init storage: %v", err)
	}
	defer db.Close()

	uploads, err := upload.NewSaver(cfg.UploadDir, cfg.UploadRoute)
	if err != nil {
		log.Fatalf("failed to init upload directory: %v", err)
	}

	// Kafka producer, only when a broker is configured
	var producer *kafka.Writer
	if cfg.KafkaBroker != "" {
		producer = kafka.NewWriter(kafka.WriterConfig{
			Brokers: []string{cfg.KafkaBroker},
			Topic:   cfg.KafkaTopic,
		})
	}

	srv := server.NewServer(cfg, db, uploads, producer)

	go func() {
		if err := srv.Start(); err != nil {
			log.Fatalf("failed to start server: %v", err)
		}
	}()

	// Graceful shutdown
	sig := make(chan os.Signal, 1)
	signal.Notify(sig, syscall.SIGINT, syscall.SIGTERM)
	<-sig

	srv.Stop()
	if producer != nil {
		producer.Close()
	}
}
