package domain

import "testing"

func TestDefaultSettings(t *testing.T) {
	s := DefaultSettings()

	if s.QdrantCollection != "wordpress_posts" {
		t.Errorf("unexpected default collection: %s", s.QdrantCollection)
	}
	if s.BatchSize != 5 {
		t.Errorf("unexpected default batch size: %d", s.BatchSize)
	}
	if len(s.EnabledTypes) != 2 {
		t.Errorf("unexpected default types: %v", s.EnabledTypes)
	}
	if err := s.Validate(); err != nil {
		t.Errorf("default settings should validate, got %v", err)
	}
}

func TestSettings_Validate(t *testing.T) {
	s := DefaultSettings()
	s.QdrantCollection = ""
	if err := s.Validate(); err != ErrConfig {
		t.Errorf("expected ErrConfig for missing collection, got %v", err)
	}

	s = DefaultSettings()
	s.BatchSize = 0
	if err := s.Validate(); err != ErrConfig {
		t.Errorf("expected ErrConfig for zero batch size, got %v", err)
	}

	s = DefaultSettings()
	s.EnabledTypes = nil
	if err := s.Validate(); err != ErrConfig {
		t.Errorf("expected ErrConfig for no enabled types, got %v", err)
	}

	s = DefaultSettings()
	s.EmbeddingProvider = "quantum"
	if err := s.Validate(); err != ErrInvalidProvider {
		t.Errorf("expected ErrInvalidProvider, got %v", err)
	}
}
