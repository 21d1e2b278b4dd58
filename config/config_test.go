package config

import "testing"

func TestLoadConfigDefaults(t *testing.T) {
	LoadConfig()
	if AppConfig.AppPort != "8080" {
		t.Fatalf("expected default port, got %s", AppConfig.AppPort)
	}
	if AppConfig.Env != "development" {
		t.Fatalf("expected default env, got %s", AppConfig.Env)
	}
	if AppConfig.BookingScope != "user" {
		t.Fatalf("expected per-user booking scope by default, got %s", AppConfig.BookingScope)
	}
	if AppConfig.AppID != "default-app-id" {
		t.Fatalf("expected app id fallback, got %s", AppConfig.AppID)
	}
	if AppConfig.BookingCollection != "bookings" {
		t.Fatalf("expected bookings collection, got %s", AppConfig.BookingCollection)
	}
	if AppConfig.MessageDisplayMS != 5000 {
		t.Fatalf("expected 5s message display, got %d", AppConfig.MessageDisplayMS)
	}
	if AppConfig.GatewayDriver != "firestore" {
		t.Fatalf("expected firestore driver by default, got %s", AppConfig.GatewayDriver)
	}
	if IsProduction() {
		t.Fatalf("development must not report production")
	}
}

func TestLoadConfigEnvOverrides(t *testing.T) {
	t.Setenv("APP_PORT", "9191")
	t.Setenv("BOOKING_SCOPE", "shared")
	t.Setenv("GATEWAY_DRIVER", "mongo")
	t.Setenv("MESSAGE_DISPLAY_MS", "2500")

	LoadConfig()
	if AppConfig.AppPort != "9191" {
		t.Fatalf("expected port override, got %s", AppConfig.AppPort)
	}
	if AppConfig.BookingScope != "shared" {
		t.Fatalf("expected scope override, got %s", AppConfig.BookingScope)
	}
	if AppConfig.GatewayDriver != "mongo" {
		t.Fatalf("expected driver override, got %s", AppConfig.GatewayDriver)
	}
	if AppConfig.MessageDisplayMS != 2500 {
		t.Fatalf("expected display override, got %d", AppConfig.MessageDisplayMS)
	}
}
