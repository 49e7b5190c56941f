package config

import (
	"os"
	"testing"
	"time"
)

func TestLoad_Defaults(t *testing.T) {
	os.Clearenv()

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg == nil {
		t.Fatal("Load returned nil config")
	}
	if cfg.HTTPAddr != ":8083" {
		t.Errorf("HTTPAddr = %q, want %q", cfg.HTTPAddr, ":8083")
	}
	if cfg.WorkerHTTPAddr != ":8084" {
		t.Errorf("WorkerHTTPAddr = %q, want %q", cfg.WorkerHTTPAddr, ":8084")
	}
	if cfg.ActivityKafkaTopic != "sensor-data" {
		t.Errorf("ActivityKafkaTopic = %q, want %q", cfg.ActivityKafkaTopic, "sensor-data")
	}
	if cfg.CommandKafkaTopic != "attention-commands" {
		t.Errorf("CommandKafkaTopic = %q, want %q", cfg.CommandKafkaTopic, "attention-commands")
	}
	if cfg.KafkaGroupID != "jiaa-data-group" {
		t.Errorf("KafkaGroupID = %q, want %q", cfg.KafkaGroupID, "jiaa-data-group")
	}
	if cfg.ClassifierTimeout != "3s" {
		t.Errorf("ClassifierTimeout = %q, want %q", cfg.ClassifierTimeout, "3s")
	}
}

func TestLoad_EnvVarOverride(t *testing.T) {
	os.Clearenv()
	os.Setenv("HTTP_ADDR", ":9000")
	os.Setenv("KAFKA_BROKERS", "kafka-1:9092, kafka-2:9092")
	os.Setenv("ACTIVITY_KAFKA_TOPIC", "activity-v2")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.HTTPAddr != ":9000" {
		t.Errorf("HTTPAddr = %q, want %q", cfg.HTTPAddr, ":9000")
	}
	if cfg.ActivityKafkaTopic != "activity-v2" {
		t.Errorf("ActivityKafkaTopic = %q, want %q", cfg.ActivityKafkaTopic, "activity-v2")
	}

	brokers := cfg.KafkaBrokersList()
	if len(brokers) != 2 {
		t.Fatalf("KafkaBrokersList len = %d, want 2", len(brokers))
	}
	if brokers[0] != "kafka-1:9092" || brokers[1] != "kafka-2:9092" {
		t.Errorf("KafkaBrokersList = %v, want trimmed broker addresses", brokers)
	}
}

func TestLoad_ProductionRequiresJWTSecret(t *testing.T) {
	os.Clearenv()
	os.Setenv("APP_ENV", "production")

	if _, err := Load(); err == nil {
		t.Fatal("Load should fail when APP_ENV=production and JWT_SECRET is empty")
	}

	os.Setenv("JWT_SECRET", "shared-secret")
	if _, err := Load(); err != nil {
		t.Fatalf("Load with JWT_SECRET: %v", err)
	}
}

func TestKafkaBrokersList_Empty(t *testing.T) {
	cfg := &Config{KafkaBrokers: ""}
	if got := cfg.KafkaBrokersList(); got != nil {
		t.Errorf("KafkaBrokersList = %v, want nil", got)
	}
}

func TestVerifyTimeout(t *testing.T) {
	tests := []struct {
		raw  string
		want time.Duration
	}{
		{"3s", 3 * time.Second},
		{"250ms", 250 * time.Millisecond},
		{"", 3 * time.Second},
		{"garbage", 3 * time.Second},
		{"-5s", 3 * time.Second},
	}
	for _, tt := range tests {
		cfg := &Config{ClassifierTimeout: tt.raw}
		if got := cfg.VerifyTimeout(); got != tt.want {
			t.Errorf("VerifyTimeout(%q) = %v, want %v", tt.raw, got, tt.want)
		}
	}
}
