package imagehost

import (
	"context"
	"crypto/sha1"
	"encoding/hex"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

/* ───────── 設定検証 ───────── */

func TestConfigValidate(t *testing.T) {
	tests := []struct {
		name    string
		cfg     Config
		wantErr bool
	}{
		{
			name: "valid",
			cfg:  Config{CloudName: "demo", APIKey: "key", APISecret: "secret"},
		},
		{
			name:    "missing cloud name",
			cfg:     Config{APIKey: "key", APISecret: "secret"},
			wantErr: true,
		},
		{
			name:    "missing api key",
			cfg:     Config{CloudName: "demo", APISecret: "secret"},
			wantErr: true,
		},
		{
			name:    "missing api secret",
			cfg:     Config{CloudName: "demo", APIKey: "key"},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.cfg.Validate()
			if (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestNewCloudinary_InvalidConfig(t *testing.T) {
	if _, err := NewCloudinary(Config{}, nil); err == nil {
		t.Error("NewCloudinary() should reject empty config")
	}
}

/* ───────── アップロード ───────── */

func TestUpload_Success(t *testing.T) {
	const secret = "shhh"

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			t.Errorf("method = %s, want POST", r.Method)
		}
		if r.URL.Path != "/v1_1/demo/auto/upload" {
			t.Errorf("path = %s, want /v1_1/demo/auto/upload", r.URL.Path)
		}
		if err := r.ParseForm(); err != nil {
			t.Fatalf("parse form: %v", err)
		}
		if got := r.PostFormValue("file"); got != "data:image/png;base64,AAAA" {
			t.Errorf("file = %q", got)
		}
		if got := r.PostFormValue("api_key"); got != "key123" {
			t.Errorf("api_key = %q, want key123", got)
		}

		// 署名はソート済みパラメータ+シークレットのSHA-1
		toSign := fmt.Sprintf("public_id=%s&timestamp=%s%s",
			r.PostFormValue("public_id"), r.PostFormValue("timestamp"), secret)
		sum := sha1.Sum([]byte(toSign))
		if got := r.PostFormValue("signature"); got != hex.EncodeToString(sum[:]) {
			t.Errorf("signature = %q, want %q", got, hex.EncodeToString(sum[:]))
		}

		w.Header().Set("Content-Type", "application/json")
		fmt.Fprint(w, `{"secure_url": "https://res.example/demo/banner-1.png"}`)
	}))
	defer srv.Close()

	c, err := NewCloudinary(Config{
		CloudName: "demo",
		APIKey:    "key123",
		APISecret: secret,
		BaseURL:   srv.URL,
	}, srv.Client())
	if err != nil {
		t.Fatalf("NewCloudinary() error = %v", err)
	}

	url, err := c.Upload(context.Background(), "data:image/png;base64,AAAA", "banner-1")
	if err != nil {
		t.Fatalf("Upload() error = %v", err)
	}
	if url != "https://res.example/demo/banner-1.png" {
		t.Errorf("url = %q", url)
	}
}

func TestUpload_HostRejects(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		http.Error(w, `{"error": {"message": "Invalid image file"}}`, http.StatusBadRequest)
	}))
	defer srv.Close()

	c, err := NewCloudinary(Config{
		CloudName: "demo",
		APIKey:    "key123",
		APISecret: "shhh",
		BaseURL:   srv.URL,
	}, srv.Client())
	if err != nil {
		t.Fatalf("NewCloudinary() error = %v", err)
	}

	// 400はリトライ対象外なので即座に返る
	_, err = c.Upload(context.Background(), "data:image/png;base64,AAAA", "banner-1")
	if err == nil {
		t.Fatal("Upload() should fail on 400")
	}
	if !strings.Contains(err.Error(), "Invalid image file") {
		t.Errorf("error = %v, want host message preserved", err)
	}
}

func TestUpload_MissingSecureURL(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		fmt.Fprint(w, `{}`)
	}))
	defer srv.Close()

	c, err := NewCloudinary(Config{
		CloudName: "demo",
		APIKey:    "key123",
		APISecret: "shhh",
		BaseURL:   srv.URL,
	}, srv.Client())
	if err != nil {
		t.Fatalf("NewCloudinary() error = %v", err)
	}

	if _, err := c.Upload(context.Background(), "data:image/png;base64,AAAA", "banner-1"); err == nil {
		t.Error("Upload() should fail when secure_url is absent")
	}
}

/* ───────── NoOp ───────── */

func TestNoOpUpload(t *testing.T) {
	got, err := NewNoOp().Upload(context.Background(), "data:image/png;base64,AAAA", "ignored")
	if err != nil {
		t.Fatalf("Upload() error = %v", err)
	}
	if got != "data:image/png;base64,AAAA" {
		t.Errorf("url = %q, want input unchanged", got)
	}
}
