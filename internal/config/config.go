package config

import (
	"os"
	"path/filepath"
	"strconv"
)

type Config struct {
	Port                 int
	DatabasePath         string
	UploadDirectory      string
	ProcessedDirectory   string
	StaticDirectory      string
	ModelPath            string
	ConfigPath           string
	OracleMode           string  // "net" loads the DNN model, "stub" uses the demo classifier
	DetectionThreshold   float64 // minimum confidence the net oracle reports
	LivePersistThreshold float64 // 0 disables persisting live-frame detections
	MaxUploadSize        int64
	LogDirectory         string
	KafkaBroker          string // empty disables the event publisher
	KafkaTopic           string
}

func Load() *Config {
	return &Config{
		Port:                 getEnvAsInt("PORT", 8080),
		DatabasePath:         getEnv("DATABASE_PATH", filepath.Join(".", "data", "wastetrack.db")),
		UploadDirectory:      getEnv("UPLOAD_DIR", filepath.Join(".", "static", "uploads")),
		ProcessedDirectory:   getEnv("PROCESSED_DIR", filepath.Join(".", "static", "processed_videos")),
		StaticDirectory:      getEnv("STATIC_DIR", filepath.Join(".", "static")),
		ModelPath:            getEnv("MODEL_PATH", filepath.Join(".", "models", "frozen_inference_graph.pb")),
		ConfigPath:           getEnv("CONFIG_PATH", filepath.Join(".", "models", "ssd_mobilenet_v1_coco_2017_11_17.pbtxt")),
		OracleMode:           getEnv("ORACLE_MODE", "stub"),
		DetectionThreshold:   getEnvAsFloat("DETECTION_THRESHOLD", 0.5),
		LivePersistThreshold: getEnvAsFloat("LIVE_PERSIST_THRESHOLD", 0),
		MaxUploadSize:        getEnvAsInt64("MAX_UPLOAD_SIZE", 16*1024*1024),
		LogDirectory:         getEnv("LOG_DIR", filepath.Join(".", "logs")),
		KafkaBroker:          getEnv("KAFKA_BROKER", ""),
		KafkaTopic:           getEnv("KAFKA_TOPIC", "trash_detections"),
	}
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvAsInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.Atoi(value); err == nil {
			return intValue
		}
	}
	return defaultValue
}

func getEnvAsInt64(key string, defaultValue int64) int64 {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.ParseInt(value, 10, 64); err == nil {
			return intValue
		}
	}
	return defaultValue
}

func getEnvAsFloat(key string, defaultValue float64) float64 {
	if value := os.Getenv(key); value != "" {
		if floatValue, err := strconv.ParseFloat(value, 64); err == nil {
			return floatValue
		}
	}
	return defaultValue
}
