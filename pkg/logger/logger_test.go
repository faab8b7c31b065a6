package logger

import (
	"bytes"
	"encoding/json"
	"errors"
	"strings"
	"testing"
)

func TestLogrusLogger_WritesJSONFields(t *testing.T) {
	var buf bytes.Buffer
	log := NewLoggerWithOutput("info", &buf)

	log.Error("falha ao salvar", "error", errors.New("conexão recusada"), "product_id", "p-1")

	var entry map[string]interface{}
	if err := json.Unmarshal(buf.Bytes(), &entry); err != nil {
		t.Fatalf("output is not JSON: %v (%s)", err, buf.String())
	}
	if entry["msg"] != "falha ao salvar" || entry["level"] != "error" {
		t.Fatalf("unexpected entry %v", entry)
	}
	if entry["error"] != "conexão recusada" || entry["product_id"] != "p-1" {
		t.Fatalf("fields not written: %v", entry)
	}
}

func TestLogrusLogger_RespectsLevel(t *testing.T) {
	var buf bytes.Buffer
	log := NewLoggerWithOutput("warn", &buf)

	log.Debug("debug")
	log.Info("info")
	if buf.Len() != 0 {
		t.Fatalf("expected nothing below warn, got %s", buf.String())
	}

	log.Warn("aviso")
	if !strings.Contains(buf.String(), "aviso") {
		t.Fatalf("expected warn entry, got %s", buf.String())
	}
}

func TestFields_OddKeys(t *testing.T) {
	f := fields([]interface{}{"a", 1, "b"})
	if f["a"] != 1 || f["b"] != "MISSING" {
		t.Fatalf("unexpected fields %v", f)
	}
}

func TestWithFields(t *testing.T) {
	var buf bytes.Buffer
	log := WithFields(NewLoggerWithOutput("info", &buf), "component", "orders")

	log.Info("pedido criado", "order_id", "o-1")

	var entry map[string]interface{}
	if err := json.Unmarshal(buf.Bytes(), &entry); err != nil {
		t.Fatalf("output is not JSON: %v (%s)", err, buf.String())
	}
	if entry["component"] != "orders" || entry["order_id"] != "o-1" {
		t.Fatalf("fixed fields not written: %v", entry)
	}

	if _, ok := WithFields(Nop{}, "component", "x").(Nop); !ok {
		t.Fatal("loggers without With must be returned unchanged")
	}
}
