package bootstrap

import (
	"testing"

	"go.uber.org/zap"
)

func TestValidateConfig(t *testing.T) {
	logger := zap.NewNop()

	good := AppConfig{MongoURI: "mongodb://localhost:27017", MongoDatabase: "jamcore"}
	if err := ValidateConfig(nil, good, logger); err != nil {
		t.Errorf("expected valid config to pass, got %v", err)
	}

	badURI := AppConfig{MongoURI: "http://not-mongo", MongoDatabase: "jamcore"}
	if err := ValidateConfig(nil, badURI, logger); err == nil {
		t.Error("expected an invalid MongoDB URI to be rejected")
	}

	noDB := AppConfig{MongoURI: "mongodb://localhost:27017"}
	if err := ValidateConfig(nil, noDB, logger); err == nil {
		t.Error("expected an empty database name to be rejected")
	}
}
