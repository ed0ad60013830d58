package storage

import (
	"testing"

	"github.com/google/uuid"
)

func TestNewWithoutCredentialsDisablesStorage(t *testing.T) {
	c, err := New("", "eu-central", "", "", "avatars", "")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if c != nil {
		t.Fatal("expected nil client when endpoint and credentials are empty")
	}
}

func TestExtractKeyRoundTrip(t *testing.T) {
	c, err := New("https://s3.example.com/", "eu-central", "ak", "sk", "media", "")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	id := uuid.New()
	key := AvatarKey(id, ".png")
	url := c.FileURL(key)

	got, ok := c.ExtractKey(url)
	if !ok {
		t.Fatalf("expected %q to belong to this storage", url)
	}
	if got != key {
		t.Fatalf("extracted key = %q, want %q", got, key)
	}

	if _, ok := c.ExtractKey("https://elsewhere.example.com/media/" + key); ok {
		t.Fatal("foreign URL must not yield a key")
	}
}

func TestExtractKeyPrefersPublicURL(t *testing.T) {
	c, err := New("https://s3.example.com", "eu-central", "ak", "sk", "media", "https://cdn.example.com/")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	got, ok := c.ExtractKey("https://cdn.example.com/avatars/x.webp")
	if !ok || got != "avatars/x.webp" {
		t.Fatalf("ExtractKey = (%q, %v), want (avatars/x.webp, true)", got, ok)
	}
}

func TestAvatarKeyChangesWithExtension(t *testing.T) {
	id := uuid.New()
	if AvatarKey(id, ".png") == AvatarKey(id, ".webp") {
		t.Fatal("keys for different extensions must differ")
	}
}
